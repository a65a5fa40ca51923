package ast

import (
	"fmt"
	"strings"

	"github.com/scriptum-lang/scriptum/lang/intern"
)

// Print renders module as an indented, parenthesized tree, resolving
// interned symbols back to their source text. It is used by the `ast` CLI
// subcommand.
func Print(m *Module) string {
	var sb strings.Builder
	p := &printer{in: m.Interner, sb: &sb}
	p.module(m)
	return sb.String()
}

type printer struct {
	in    *intern.Interner
	sb    *strings.Builder
	depth int
}

func (p *printer) line(format string, args ...interface{}) {
	p.sb.WriteString(strings.Repeat("  ", p.depth))
	fmt.Fprintf(p.sb, format, args...)
	p.sb.WriteByte('\n')
}

func (p *printer) indented(f func()) {
	p.depth++
	f()
	p.depth--
}

func (p *printer) name(s intern.Symbol) string { return p.in.Resolve(s) }

func (p *printer) module(m *Module) {
	p.line("(module")
	p.indented(func() {
		for _, item := range m.Items {
			p.item(item)
		}
	})
	p.line(")")
}

func (p *printer) item(item Item) {
	switch it := item.(type) {
	case *Function:
		p.line("(functio %s", p.name(it.Name))
		p.indented(func() { p.block(it.Body) })
		p.line(")")
	case *GlobalVar:
		p.varDecl(it.Decl)
	}
}

func (p *printer) block(b *Block) {
	p.line("(block")
	p.indented(func() {
		for _, s := range b.Statements {
			p.stmt(s)
		}
	})
	p.line(")")
}

func (p *printer) varDecl(d *VarDecl) {
	kw := "constans"
	if d.Mutable {
		kw = "mutabilis"
	}
	p.line("(%s %s)", kw, p.name(d.Name))
}

func (p *printer) stmt(s Stmt) {
	switch st := s.(type) {
	case *VarDecl:
		p.varDecl(st)
	case *ExprStmt:
		p.line("(expr %s)", p.expr(st.X))
	case *ReturnStmt:
		if st.Value != nil {
			p.line("(redde %s)", p.expr(st.Value))
		} else {
			p.line("(redde)")
		}
	case *IfStmt:
		p.line("(si %s)", p.expr(st.Cond))
	case *WhileStmt:
		p.line("(dum %s)", p.expr(st.Cond))
	case *ForStmt:
		p.line("(pro %s in %s)", p.name(st.Binding), p.expr(st.Iter))
	case *BreakStmt:
		p.line("(frange)")
	case *ContinueStmt:
		p.line("(perge)")
	case *Block:
		p.block(st)
	case *BadStmt:
		p.line("(bad-stmt)")
	}
}

// expr renders an expression inline, since expressions rarely need their
// own indentation level in the printed tree.
func (p *printer) expr(e Expr) string {
	switch ex := e.(type) {
	case *Literal:
		switch ex.Kind {
		case LitNumber:
			return fmt.Sprintf("%g", ex.Num)
		case LitText:
			return fmt.Sprintf("%q", ex.Text)
		case LitBool:
			return fmt.Sprintf("%t", ex.Bool)
		case LitNull:
			return "nullum"
		default:
			return "indefinitum"
		}
	case *Identifier:
		return p.name(ex.Name)
	case *UnaryExpr:
		return fmt.Sprintf("(unary %s)", p.expr(ex.Operand))
	case *BinaryExpr:
		return fmt.Sprintf("(binop %s %s)", p.expr(ex.Left), p.expr(ex.Right))
	case *LogicalExpr:
		return fmt.Sprintf("(logical %s %s)", p.expr(ex.Left), p.expr(ex.Right))
	case *NullishCoalesceExpr:
		return fmt.Sprintf("(?? %s %s)", p.expr(ex.Left), p.expr(ex.Right))
	case *ConditionalExpr:
		return fmt.Sprintf("(? %s %s %s)", p.expr(ex.Cond), p.expr(ex.Then), p.expr(ex.Else))
	case *AssignmentExpr:
		return fmt.Sprintf("(= %s %s)", p.expr(ex.Target), p.expr(ex.Value))
	case *CallExpr:
		return fmt.Sprintf("(call %s)", p.expr(ex.Callee))
	case *IndexExpr:
		return fmt.Sprintf("(index %s %s)", p.expr(ex.Target), p.expr(ex.Index))
	case *MemberExpr:
		return fmt.Sprintf("(member %s %s)", p.expr(ex.Target), p.name(ex.Name))
	case *ArrayLiteralExpr:
		return "(array)"
	case *ObjectLiteralExpr:
		return "(object)"
	case *LambdaExpr:
		return "(lambda)"
	case *BadExpr:
		return "(bad-expr)"
	default:
		return "(?)"
	}
}
