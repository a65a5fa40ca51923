package ast

// Visitor's Visit method is invoked for each node encountered by Walk. If
// it returns non-nil, Walk visits each child of the node with that
// visitor, then calls Visit(nil) once the children have been visited
// (mirroring go/ast.Visit).
type Visitor interface {
	Visit(node Node) Visitor
}

// Walk traverses an AST in depth-first order, calling v.Visit for node and
// every descendant.
func Walk(v Visitor, node Node) {
	if node == nil {
		return
	}
	v = v.Visit(node)
	if v == nil {
		return
	}
	switch n := node.(type) {
	case *Module:
		for _, item := range n.Items {
			Walk(v, item)
		}
	case *Function:
		for _, p := range n.Params {
			if p.Type != nil {
				Walk(v, p.Type)
			}
		}
		if n.ReturnType != nil {
			Walk(v, n.ReturnType)
		}
		Walk(v, n.Body)
	case *GlobalVar:
		Walk(v, n.Decl)
	case *Block:
		for _, s := range n.Statements {
			Walk(v, s)
		}
	case *VarDecl:
		if n.Type != nil {
			Walk(v, n.Type)
		}
		if n.Init != nil {
			Walk(v, n.Init)
		}
	case *ExprStmt:
		Walk(v, n.X)
	case *ReturnStmt:
		if n.Value != nil {
			Walk(v, n.Value)
		}
	case *IfStmt:
		Walk(v, n.Cond)
		Walk(v, n.Then)
		if n.Else != nil {
			Walk(v, n.Else)
		}
	case *WhileStmt:
		Walk(v, n.Cond)
		Walk(v, n.Body)
	case *ForStmt:
		Walk(v, n.Iter)
		Walk(v, n.Body)
	case *BreakStmt, *ContinueStmt, *BadStmt, *BadExpr, *Identifier, *Literal:
		// leaves
	case *UnaryExpr:
		Walk(v, n.Operand)
	case *BinaryExpr:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *LogicalExpr:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *NullishCoalesceExpr:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *ConditionalExpr:
		Walk(v, n.Cond)
		Walk(v, n.Then)
		Walk(v, n.Else)
	case *AssignmentExpr:
		Walk(v, n.Target)
		Walk(v, n.Value)
	case *CallExpr:
		Walk(v, n.Callee)
		for _, a := range n.Args {
			Walk(v, a)
		}
	case *IndexExpr:
		Walk(v, n.Target)
		Walk(v, n.Index)
	case *MemberExpr:
		Walk(v, n.Target)
	case *ArrayLiteralExpr:
		for _, e := range n.Elements {
			Walk(v, e)
		}
	case *ObjectLiteralExpr:
		for _, f := range n.Fields {
			Walk(v, f.Value)
		}
	case *LambdaExpr:
		for _, p := range n.Params {
			if p.Type != nil {
				Walk(v, p.Type)
			}
		}
		if n.ReturnType != nil {
			Walk(v, n.ReturnType)
		}
		Walk(v, n.Body)
	case *SimpleTypeExpr:
		// leaf
	case *ArrayTypeExpr:
		Walk(v, n.Elem)
	case *ObjectTypeExpr:
		for _, f := range n.Fields {
			Walk(v, f.Type)
		}
	case *FunctionTypeExpr:
		for _, p := range n.Params {
			Walk(v, p)
		}
		if n.Return != nil {
			Walk(v, n.Return)
		}
	case *OptionalTypeExpr:
		Walk(v, n.Elem)
	case *TupleTypeExpr:
		for _, e := range n.Elements {
			Walk(v, e)
		}
	default:
		panic("ast: Walk: unexpected node type")
	}
	v.Visit(nil)
}
