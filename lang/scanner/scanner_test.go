package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scriptum-lang/scriptum/lang/scanner"
	"github.com/scriptum-lang/scriptum/lang/token"
)

func kinds(t *testing.T, tokens []token.Token) []token.Kind {
	t.Helper()
	ks := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		ks[i] = tok.Kind
	}
	return ks
}

func TestScanKeywordsAndIdents(t *testing.T) {
	tokens, err := scanner.Scan(`functio add mutabilis`)
	require.NoError(t, err)
	require.Equal(t, []token.Kind{token.KwFunctio, token.IDENT, token.KwMutabilis, token.EOF}, kinds(t, tokens))
}

func TestScanLiterals(t *testing.T) {
	tokens, err := scanner.Scan(`42 3.14 "hi"`)
	require.NoError(t, err)
	require.Equal(t, []token.Kind{token.NUMBER, token.NUMBER, token.STRING, token.EOF}, kinds(t, tokens))
	require.Equal(t, "42", tokens[0].Lexeme)
	require.Equal(t, "3.14", tokens[1].Lexeme)
	require.Equal(t, `"hi"`, tokens[2].Lexeme)
}

func TestScanWhitespaceAndCommentsAreDiscarded(t *testing.T) {
	src := "a // a line comment\n  /* a block\ncomment */ b"
	tokens, err := scanner.Scan(src)
	require.NoError(t, err)
	require.Equal(t, []token.Kind{token.IDENT, token.IDENT, token.EOF}, kinds(t, tokens))
}

func TestScanMultiCharOperatorsPreferLongestMatch(t *testing.T) {
	tokens, err := scanner.Scan(`=== == = != !==`)
	require.NoError(t, err)
	require.Equal(t, []token.Kind{
		token.TripleEqual, token.DoubleEqual, token.Equal,
		token.BangEqual, token.BangDoubleEqual, token.EOF,
	}, kinds(t, tokens))
}

func TestScanDistinguishesSimilarPunctuation(t *testing.T) {
	tokens, err := scanner.Scan(`?? ?. ? -> :: : .`)
	require.NoError(t, err)
	require.Equal(t, []token.Kind{
		token.QuestionQuestion, token.QuestionDot, token.Question,
		token.Arrow, token.ColonColon, token.Colon, token.Dot, token.EOF,
	}, kinds(t, tokens))
}

func TestScanSpans(t *testing.T) {
	tokens, err := scanner.Scan(`ab cd`)
	require.NoError(t, err)
	require.Equal(t, uint32(0), tokens[0].Span.Start)
	require.Equal(t, uint32(2), tokens[0].Span.End)
	require.Equal(t, uint32(3), tokens[1].Span.Start)
	require.Equal(t, uint32(5), tokens[1].Span.End)
}

func TestScanIllegalCharacterStopsWithPartialTokens(t *testing.T) {
	tokens, err := scanner.Scan(`a @ b`)
	require.Error(t, err)
	var lexErr *scanner.LexError
	require.ErrorAs(t, err, &lexErr)
	require.Equal(t, []token.Kind{token.IDENT}, kinds(t, tokens))
	require.Equal(t, 1, lexErr.Pos.Line)
	require.Equal(t, 3, lexErr.Pos.Column)
}

func TestScanEmptySourceYieldsOnlyEOF(t *testing.T) {
	tokens, err := scanner.Scan(``)
	require.NoError(t, err)
	require.Equal(t, []token.Kind{token.EOF}, kinds(t, tokens))
}
