package ast

import (
	"fmt"
	"strings"

	"nodelang.dev/nodec/pkg/parsetree"
	"nodelang.dev/nodec/pkg/token"
)

// LowerError reports a parse-tree shape the lowering pass did not
// expect — a programmer error in the parser/lowerer pairing, not a
// user-facing diagnostic, exactly like converter.go's arity-mismatch
// errors in _examples/shadowCow-cow-lang-go's lang/converter package.
type LowerError struct {
	Where string
	Got   string
}

func (e *LowerError) Error() string {
	return fmt.Sprintf("internal error lowering %s: unexpected shape %s", e.Where, e.Got)
}

// lowerer carries the parse tree being consumed; all methods are
// pure reads over it.
type lowerer struct {
	tree *parsetree.Tree
}

// Lower converts a completed parsetree.Tree into a Program, performing
// left-associativity rebalancing and literal folding along the way
// (spec.md §4.2).
func Lower(tree *parsetree.Tree) (*Program, error) {
	l := &lowerer{tree: tree}
	return l.program(0)
}

func (l *lowerer) sym(idx int) parsetree.Symbol { return l.tree.Symbol(idx) }
func (l *lowerer) kids(idx int) []int           { return l.tree.Children(idx) }

// expectChildren returns the children of idx, failing with a
// LowerError unless there are exactly `want` of them, the way
// converter.go asserts arity before recursing.
func (l *lowerer) expectChildren(idx int, where string, want int) ([]int, error) {
	kids := l.kids(idx)
	if len(kids) != want {
		return nil, &LowerError{Where: where, Got: fmt.Sprintf("%d children, expected %d", len(kids), want)}
	}
	return kids, nil
}

func isEmpty(sym parsetree.Symbol) bool { return sym.Kind == parsetree.Empty }

func (l *lowerer) program(idx int) (*Program, error) {
	kids, err := l.expectChildren(idx, "Program", 1)
	if err != nil {
		return nil, err
	}
	nodes, err := l.nodeSeq(kids[0])
	if err != nil {
		return nil, err
	}
	return &Program{Nodes: nodes}, nil
}

func (l *lowerer) nodeSeq(idx int) ([]*DeclareNode, error) {
	kids := l.kids(idx)
	if len(kids) == 1 && isEmpty(l.sym(kids[0])) {
		return nil, nil
	}
	if len(kids) != 2 {
		return nil, &LowerError{Where: "NodeSeq", Got: fmt.Sprintf("%d children", len(kids))}
	}
	node, err := l.declareNode(kids[0])
	if err != nil {
		return nil, err
	}
	rest, err := l.nodeSeq(kids[1])
	if err != nil {
		return nil, err
	}
	return append([]*DeclareNode{node}, rest...), nil
}

// DeclareNode -> 'node' Identifier NodeHeader '{' TLStmtSeq '}'
func (l *lowerer) declareNode(idx int) (*DeclareNode, error) {
	kids, err := l.expectChildren(idx, "DeclareNode", 6)
	if err != nil {
		return nil, err
	}
	name := l.sym(kids[1]).Token.Lexeme
	deps, err := l.nodeHeader(kids[2])
	if err != nil {
		return nil, err
	}
	funcs, err := l.tlStmtSeq(kids[4])
	if err != nil {
		return nil, err
	}
	return &DeclareNode{Name: name, DependsOn: deps, Functions: funcs}, nil
}

func (l *lowerer) nodeHeader(idx int) ([]string, error) {
	kids := l.kids(idx)
	if len(kids) == 1 && isEmpty(l.sym(kids[0])) {
		return nil, nil
	}
	if len(kids) != 2 {
		return nil, &LowerError{Where: "NodeHeader", Got: fmt.Sprintf("%d children", len(kids))}
	}
	return l.identList(kids[1])
}

func (l *lowerer) identList(idx int) ([]string, error) {
	names := []string{}
	for _, k := range l.kids(idx) {
		s := l.sym(k)
		if s.Kind == parsetree.Terminal && s.Token.Tag == token.Identifier {
			names = append(names, s.Token.Lexeme)
		}
	}
	return names, nil
}

func (l *lowerer) tlStmtSeq(idx int) ([]*DeclareFunc, error) {
	kids := l.kids(idx)
	if len(kids) == 1 && isEmpty(l.sym(kids[0])) {
		return nil, nil
	}
	if len(kids) != 2 {
		return nil, &LowerError{Where: "TLStmtSeq", Got: fmt.Sprintf("%d children", len(kids))}
	}
	fn, err := l.tlStmt(kids[0])
	if err != nil {
		return nil, err
	}
	rest, err := l.tlStmtSeq(kids[1])
	if err != nil {
		return nil, err
	}
	return append([]*DeclareFunc{fn}, rest...), nil
}

// TLStmt -> 'export' DeclareFunc | DeclareFunc
func (l *lowerer) tlStmt(idx int) (*DeclareFunc, error) {
	kids := l.kids(idx)
	switch len(kids) {
	case 1:
		return l.declareFunc(kids[0])
	case 2:
		fn, err := l.declareFunc(kids[1])
		if err != nil {
			return nil, err
		}
		fn.Exported = true
		return fn, nil
	default:
		return nil, &LowerError{Where: "TLStmt", Got: fmt.Sprintf("%d children", len(kids))}
	}
}

// DeclareFunc -> 'fn' Identifier '(' ParamList ')' ReturnType Block
func (l *lowerer) declareFunc(idx int) (*DeclareFunc, error) {
	kids, err := l.expectChildren(idx, "DeclareFunc", 7)
	if err != nil {
		return nil, err
	}
	name := l.sym(kids[1]).Token.Lexeme
	params, err := l.paramList(kids[3])
	if err != nil {
		return nil, err
	}
	ret, err := l.returnType(kids[5])
	if err != nil {
		return nil, err
	}
	body, err := l.block(kids[6])
	if err != nil {
		return nil, err
	}
	return &DeclareFunc{Name: name, Params: params, Return: ret, Body: body}, nil
}

func (l *lowerer) paramList(idx int) ([]Param, error) {
	kids := l.kids(idx)
	if len(kids) == 1 && isEmpty(l.sym(kids[0])) {
		return nil, nil
	}
	params := []Param{}
	for _, k := range kids {
		s := l.sym(k)
		if s.Kind == parsetree.Nonterminal && s.Name == "Param" {
			p, err := l.param(k)
			if err != nil {
				return nil, err
			}
			params = append(params, p)
		}
	}
	return params, nil
}

func (l *lowerer) param(idx int) (Param, error) {
	kids, err := l.expectChildren(idx, "Param", 3)
	if err != nil {
		return Param{}, err
	}
	name := l.sym(kids[0]).Token.Lexeme
	typ, err := l.typ(kids[2])
	if err != nil {
		return Param{}, err
	}
	return Param{Name: name, Type: typ}, nil
}

// ReturnType -> '->' Type | '->' '(' ')' | '->' '!'
// The parser appends a Void or NoReturn marker after the matched
// punctuation, so the deciding child is always the last one.
func (l *lowerer) returnType(idx int) (string, error) {
	kids := l.kids(idx)
	if len(kids) < 2 {
		return "", &LowerError{Where: "ReturnType", Got: fmt.Sprintf("%d children", len(kids))}
	}
	last := kids[len(kids)-1]
	second := l.sym(last)
	switch {
	case second.Kind == parsetree.Nonterminal && second.Name == "Type":
		return l.typ(last)
	case second.Kind == parsetree.Nonterminal && second.Name == "Void":
		return "", nil // types.Void
	case second.Kind == parsetree.Nonterminal && second.Name == "NoReturn":
		return "!", nil // types.NoReturn
	default:
		return "", &LowerError{Where: "ReturnType", Got: "unrecognized second child"}
	}
}

// Type -> primitive | Identifier | '[' Type ';' IntegerLit ']'
func (l *lowerer) typ(idx int) (string, error) {
	kids := l.kids(idx)
	if len(kids) == 1 {
		tok := l.sym(kids[0]).Token
		return tok.Lexeme, nil
	}
	if len(kids) != 5 {
		return "", &LowerError{Where: "Type", Got: fmt.Sprintf("%d children", len(kids))}
	}
	elem, err := l.typ(kids[1])
	if err != nil {
		return "", err
	}
	n := l.sym(kids[3]).Token.IntVal
	return fmt.Sprintf("[%s; %d]", elem, n), nil
}

func (l *lowerer) block(idx int) ([]Stmt, error) {
	kids, err := l.expectChildren(idx, "Block", 3)
	if err != nil {
		return nil, err
	}
	return l.stmtSeq(kids[1])
}

func (l *lowerer) stmtSeq(idx int) ([]Stmt, error) {
	kids := l.kids(idx)
	if len(kids) == 1 && isEmpty(l.sym(kids[0])) {
		return nil, nil
	}
	if len(kids) != 2 {
		return nil, &LowerError{Where: "StmtSeq", Got: fmt.Sprintf("%d children", len(kids))}
	}
	stmt, err := l.stmt(kids[0])
	if err != nil {
		return nil, err
	}
	rest, err := l.stmtSeq(kids[1])
	if err != nil {
		return nil, err
	}
	return append([]Stmt{stmt}, rest...), nil
}

func (l *lowerer) stmt(idx int) (Stmt, error) {
	kids, err := l.expectChildren(idx, "Stmt", 1)
	if err != nil {
		return nil, err
	}
	inner := l.sym(kids[0])
	switch inner.Name {
	case "DeclareVarStmt":
		return l.declareVarStmt(kids[0])
	case "DeclareConstStmt":
		return l.declareConstStmt(kids[0])
	case "IdentStmt":
		return l.identStmt(kids[0])
	case "WhileStmt":
		return l.whileStmt(kids[0])
	case "IfStmt":
		return l.ifStmt(kids[0])
	case "ReturnStmt":
		return l.returnStmt(kids[0])
	default:
		return nil, &LowerError{Where: "Stmt", Got: inner.Name}
	}
}

func (l *lowerer) declareVarStmt(idx int) (Stmt, error) {
	kids, err := l.expectChildren(idx, "DeclareVarStmt", 7)
	if err != nil {
		return nil, err
	}
	name := l.sym(kids[1]).Token.Lexeme
	typ, err := l.typ(kids[3])
	if err != nil {
		return nil, err
	}
	init, err := l.expression(kids[5])
	if err != nil {
		return nil, err
	}
	return DeclareVar{Name: name, Type: typ, Init: init}, nil
}

func (l *lowerer) declareConstStmt(idx int) (Stmt, error) {
	kids, err := l.expectChildren(idx, "DeclareConstStmt", 7)
	if err != nil {
		return nil, err
	}
	name := l.sym(kids[1]).Token.Lexeme
	typ, err := l.typ(kids[3])
	if err != nil {
		return nil, err
	}
	init, err := l.expression(kids[5])
	if err != nil {
		return nil, err
	}
	return DeclareConst{Name: name, Type: typ, Init: init}, nil
}

// IdentStmt is either a call statement (Identifier '(' ArgList ')' ';')
// or an assignment (Identifier IndexList '=' Expression ';').
// Disambiguated on the kind of the second child.
func (l *lowerer) identStmt(idx int) (Stmt, error) {
	kids := l.kids(idx)
	if len(kids) < 2 {
		return nil, &LowerError{Where: "IdentStmt", Got: fmt.Sprintf("%d children", len(kids))}
	}
	name := l.sym(kids[0]).Token.Lexeme
	second := l.sym(kids[1])

	if second.Kind == parsetree.Terminal && second.Token.Tag == token.LParen {
		if len(kids) != 5 {
			return nil, &LowerError{Where: "IdentStmt(call)", Got: fmt.Sprintf("%d children", len(kids))}
		}
		args, err := l.argList(kids[2])
		if err != nil {
			return nil, err
		}
		return CallStmt{Call: &FnCall{Name: name, Args: args}}, nil
	}

	if len(kids) != 5 {
		return nil, &LowerError{Where: "IdentStmt(assign)", Got: fmt.Sprintf("%d children", len(kids))}
	}
	indices, err := l.indexList(kids[1])
	if err != nil {
		return nil, err
	}
	value, err := l.expression(kids[3])
	if err != nil {
		return nil, err
	}
	return Assign{Name: name, Indices: indices, Value: value}, nil
}

func (l *lowerer) indexList(idx int) ([]Expr, error) {
	kids := l.kids(idx)
	if len(kids) == 1 && isEmpty(l.sym(kids[0])) {
		return nil, nil
	}
	if len(kids) != 4 {
		return nil, &LowerError{Where: "IndexList", Got: fmt.Sprintf("%d children", len(kids))}
	}
	first, err := l.expression(kids[1])
	if err != nil {
		return nil, err
	}
	rest, err := l.indexList(kids[3])
	if err != nil {
		return nil, err
	}
	return append([]Expr{first}, rest...), nil
}

func (l *lowerer) whileStmt(idx int) (Stmt, error) {
	kids, err := l.expectChildren(idx, "WhileStmt", 3)
	if err != nil {
		return nil, err
	}
	cond, err := l.expression(kids[1])
	if err != nil {
		return nil, err
	}
	body, err := l.block(kids[2])
	if err != nil {
		return nil, err
	}
	return WhileLoop{Cond: cond, Body: body}, nil
}

func (l *lowerer) ifStmt(idx int) (Stmt, error) {
	kids, err := l.expectChildren(idx, "IfStmt", 4)
	if err != nil {
		return nil, err
	}
	cond, err := l.expression(kids[1])
	if err != nil {
		return nil, err
	}
	then, err := l.block(kids[2])
	if err != nil {
		return nil, err
	}
	els, err := l.elseOpt(kids[3])
	if err != nil {
		return nil, err
	}
	return IfStmt{Cond: cond, Then: then, Else: els}, nil
}

func (l *lowerer) elseOpt(idx int) ([]Stmt, error) {
	kids := l.kids(idx)
	if len(kids) == 1 && isEmpty(l.sym(kids[0])) {
		return nil, nil
	}
	if len(kids) != 2 {
		return nil, &LowerError{Where: "ElseOpt", Got: fmt.Sprintf("%d children", len(kids))}
	}
	return l.block(kids[1])
}

func (l *lowerer) returnStmt(idx int) (Stmt, error) {
	kids, err := l.expectChildren(idx, "ReturnStmt", 3)
	if err != nil {
		return nil, err
	}
	expr, err := l.expression(kids[1])
	if err != nil {
		return nil, err
	}
	return ReturnValue{Expr: expr}, nil
}

func (l *lowerer) argList(idx int) ([]Expr, error) {
	kids := l.kids(idx)
	if len(kids) == 1 && isEmpty(l.sym(kids[0])) {
		return nil, nil
	}
	args := []Expr{}
	for _, k := range kids {
		s := l.sym(k)
		if s.Kind == parsetree.Nonterminal && s.Name == "Expression" {
			e, err := l.expression(k)
			if err != nil {
				return nil, err
			}
			args = append(args, e)
		}
	}
	return args, nil
}

// --- Expression grammar tiers, with left-associativity rebalancing ---
//
// Each tier's parse-tree shape is `Head HeadPrime`, where HeadPrime is
// either Empty or `Op Head HeadPrime` (a right-leaning spine). We first
// lower the spine into a right-leaning chain of BinOp values, then
// rebalance it into a left-leaning chain (spec.md §4.2, §8 invariant 2,
// scenario S7).

func (l *lowerer) expression(idx int) (Expr, error) {
	kids, err := l.expectChildren(idx, "Expression", 2)
	if err != nil {
		return nil, err
	}
	head, err := l.boolTerm(kids[0])
	if err != nil {
		return nil, err
	}
	chain, err := l.expressionPrimeChain(kids[1])
	if err != nil {
		return nil, err
	}
	return rebalanceComparisonTree(head, chain), nil
}

type opOperand struct {
	op  string
	rhs Expr
}

// expressionPrimeChain flattens the ExpressionPrime right-spine
// (`|| BoolTerm ExpressionPrime | ε`) into an ordered list of
// (operator, operand) pairs, left-to-right in source order.
func (l *lowerer) expressionPrimeChain(idx int) ([]opOperand, error) {
	kids := l.kids(idx)
	if len(kids) == 1 && isEmpty(l.sym(kids[0])) {
		return nil, nil
	}
	if len(kids) != 3 {
		return nil, &LowerError{Where: "ExpressionPrime", Got: fmt.Sprintf("%d children", len(kids))}
	}
	rhs, err := l.boolTerm(kids[1])
	if err != nil {
		return nil, err
	}
	rest, err := l.expressionPrimeChain(kids[2])
	if err != nil {
		return nil, err
	}
	return append([]opOperand{{op: OpOr, rhs: rhs}}, rest...), nil
}

func (l *lowerer) boolTerm(idx int) (Expr, error) {
	kids, err := l.expectChildren(idx, "BoolTerm", 2)
	if err != nil {
		return nil, err
	}
	head, err := l.comparison(kids[0])
	if err != nil {
		return nil, err
	}
	chain, err := l.boolTermPrimeChain(kids[1])
	if err != nil {
		return nil, err
	}
	return rebalanceBoolTermTree(head, chain), nil
}

func (l *lowerer) boolTermPrimeChain(idx int) ([]opOperand, error) {
	kids := l.kids(idx)
	if len(kids) == 1 && isEmpty(l.sym(kids[0])) {
		return nil, nil
	}
	if len(kids) != 3 {
		return nil, &LowerError{Where: "BoolTermPrime", Got: fmt.Sprintf("%d children", len(kids))}
	}
	rhs, err := l.comparison(kids[1])
	if err != nil {
		return nil, err
	}
	rest, err := l.boolTermPrimeChain(kids[2])
	if err != nil {
		return nil, err
	}
	return append([]opOperand{{op: OpAnd, rhs: rhs}}, rest...), nil
}

var comparisonOps = map[token.Tag]string{
	token.Eq: OpEq, token.Neq: OpNeq, token.Lt: OpLess,
	token.Gt: OpGreater, token.Leq: OpLeq, token.Geq: OpGeq,
}

// Comparison is not a chain: at most one operator, so no rebalancing
// is needed at this tier (spec.md §4.2).
func (l *lowerer) comparison(idx int) (Expr, error) {
	kids := l.kids(idx)
	lhs, err := l.arithExpr(kids[0])
	if err != nil {
		return nil, err
	}
	if len(kids) == 1 {
		return lhs, nil
	}
	if len(kids) != 3 {
		return nil, &LowerError{Where: "Comparison", Got: fmt.Sprintf("%d children", len(kids))}
	}
	op := comparisonOps[l.sym(kids[1]).Token.Tag]
	rhs, err := l.arithExpr(kids[2])
	if err != nil {
		return nil, err
	}
	return BinOp{Op: op, Lhs: lhs, Rhs: rhs}, nil
}

func (l *lowerer) arithExpr(idx int) (Expr, error) {
	kids, err := l.expectChildren(idx, "ArithExpr", 2)
	if err != nil {
		return nil, err
	}
	head, err := l.term(kids[0])
	if err != nil {
		return nil, err
	}
	chain, err := l.arithExprPrimeChain(kids[1])
	if err != nil {
		return nil, err
	}
	return rebalanceExpressionTree(head, chain), nil
}

func (l *lowerer) arithExprPrimeChain(idx int) ([]opOperand, error) {
	kids := l.kids(idx)
	if len(kids) == 1 && isEmpty(l.sym(kids[0])) {
		return nil, nil
	}
	if len(kids) != 3 {
		return nil, &LowerError{Where: "ArithExprPrime", Got: fmt.Sprintf("%d children", len(kids))}
	}
	opTok := l.sym(kids[0]).Token
	op := OpAdd
	if opTok.Tag == token.Minus {
		op = OpSub
	}
	rhs, err := l.term(kids[1])
	if err != nil {
		return nil, err
	}
	rest, err := l.arithExprPrimeChain(kids[2])
	if err != nil {
		return nil, err
	}
	return append([]opOperand{{op: op, rhs: rhs}}, rest...), nil
}

func (l *lowerer) term(idx int) (Expr, error) {
	kids, err := l.expectChildren(idx, "Term", 2)
	if err != nil {
		return nil, err
	}
	head, err := l.factor(kids[0])
	if err != nil {
		return nil, err
	}
	chain, err := l.termPrimeChain(kids[1])
	if err != nil {
		return nil, err
	}
	return rebalanceTermTree(head, chain), nil
}

func (l *lowerer) termPrimeChain(idx int) ([]opOperand, error) {
	kids := l.kids(idx)
	if len(kids) == 1 && isEmpty(l.sym(kids[0])) {
		return nil, nil
	}
	if len(kids) != 3 {
		return nil, &LowerError{Where: "TermPrime", Got: fmt.Sprintf("%d children", len(kids))}
	}
	opTok := l.sym(kids[0]).Token
	op := OpMul
	if opTok.Tag == token.Slash {
		op = OpDiv
	}
	rhs, err := l.factor(kids[1])
	if err != nil {
		return nil, err
	}
	rest, err := l.termPrimeChain(kids[2])
	if err != nil {
		return nil, err
	}
	return append([]opOperand{{op: op, rhs: rhs}}, rest...), nil
}

func (l *lowerer) factor(idx int) (Expr, error) {
	kids := l.kids(idx)
	if len(kids) == 0 {
		return nil, &LowerError{Where: "Factor", Got: "no children"}
	}
	first := l.sym(kids[0])

	switch {
	case first.Kind == parsetree.Terminal && first.Token.Tag == token.LParen:
		return l.expression(kids[1])

	case first.Kind == parsetree.Terminal && first.Token.Tag == token.Minus:
		inner, err := l.factor(kids[1])
		if err != nil {
			return nil, err
		}
		// Unary minus on a numeric literal folds directly into a
		// negative literal at lowering time (spec.md §4.2).
		switch v := inner.(type) {
		case Integer:
			return Integer{Value: -v.Value}, nil
		case Float:
			return Float{Value: -v.Value}, nil
		default:
			return BinOp{Op: OpSub, Lhs: Integer{Value: 0}, Rhs: inner}, nil
		}

	case first.Kind == parsetree.Terminal && first.Token.Tag == token.Identifier:
		return l.factorIdent(first.Token.Lexeme, kids[1])

	case first.Kind == parsetree.Terminal && first.Token.Tag == token.LBracket: // '[' ArrayItems ']'
		items, err := l.arrayItems(kids[1])
		if err != nil {
			return nil, err
		}
		return ArrayLit{Elems: items}, nil

	default:
		return l.literal(first.Token)
	}
}

func (l *lowerer) literal(tok token.Token) (Expr, error) {
	switch tok.Tag {
	case token.IntegerLit:
		return Integer{Value: tok.IntVal}, nil
	case token.FloatLit:
		return Float{Value: tok.FloatVal}, nil
	case token.CharLit:
		return Character{Value: tok.CharVal}, nil
	case token.StringLit:
		return StringLit{Value: tok.StrVal}, nil
	case token.BoolLit:
		return BoolLit{Value: tok.BoolVal}, nil
	default:
		return nil, &LowerError{Where: "Factor literal", Got: tok.String()}
	}
}

// factorIdent lowers FactorIdentTail: '(' ArgList ')' | IndexList | ε.
func (l *lowerer) factorIdent(name string, tailIdx int) (Expr, error) {
	kids := l.kids(tailIdx)
	if len(kids) == 0 {
		return nil, &LowerError{Where: "FactorIdentTail", Got: "no children"}
	}
	first := l.sym(kids[0])

	if first.Kind == parsetree.Terminal && first.Token.Tag == token.LParen {
		args, err := l.argList(kids[1])
		if err != nil {
			return nil, err
		}
		return FnCall{Name: name, Args: args}, nil
	}

	// IndexList (possibly empty): zero or more `[expr]` read indices.
	indices, err := l.indexList(kids[0])
	if err != nil {
		return nil, err
	}
	var result Expr = Identifier{Name: name}
	for _, idxExpr := range indices {
		result = Index{Base: result, Idx: idxExpr}
	}
	return result, nil
}

func (l *lowerer) arrayItems(idx int) ([]Expr, error) {
	kids := l.kids(idx)
	if len(kids) == 1 && isEmpty(l.sym(kids[0])) {
		return nil, nil
	}
	items := []Expr{}
	for _, k := range kids {
		s := l.sym(k)
		if s.Kind == parsetree.Nonterminal && s.Name == "Expression" {
			e, err := l.expression(k)
			if err != nil {
				return nil, err
			}
			items = append(items, e)
		}
	}
	return items, nil
}

// --- Left-associativity rebalancing ---
//
// Named exactly per spec.md §4.2's lowering contract:
// rebalance_expression_tree, rebalance_term_tree,
// rebalance_comparison_tree, rebalance_bool_term_tree. The grammar
// nonterminal names in this parser don't line up one-to-one with those
// four names (our "Comparison" nonterminal is the non-chained ==/!=/...
// tier, unrelated to the '||' tier) — see DESIGN.md for the mapping
// decision. All four share the same fold: given a head expression and
// an ordered (operator, operand) chain collected from a right-leaning
// parse-tree spine, left-fold it into a left-leaning BinOp chain so
// that `a - b - c` becomes `(a - b) - c`, not `a - (b - c)`.

func leftFold(head Expr, chain []opOperand) Expr {
	result := head
	for _, step := range chain {
		result = BinOp{Op: step.op, Lhs: result, Rhs: step.rhs}
	}
	return result
}

// rebalanceExpressionTree handles the '+'/'-' (ArithExpr) tier.
func rebalanceExpressionTree(head Expr, chain []opOperand) Expr { return leftFold(head, chain) }

// rebalanceTermTree handles the '*'/'/' (Term) tier.
func rebalanceTermTree(head Expr, chain []opOperand) Expr { return leftFold(head, chain) }

// rebalanceBoolTermTree handles the '&&' (BoolTerm) tier.
func rebalanceBoolTermTree(head Expr, chain []opOperand) Expr { return leftFold(head, chain) }

// rebalanceComparisonTree handles the '||' (Expression) tier.
func rebalanceComparisonTree(head Expr, chain []opOperand) Expr { return leftFold(head, chain) }

// String renders the operator tag in parentheses, e.g. "(Add)".
func (b BinOp) String() string {
	return strings.Join([]string{"(", b.Op, ")"}, "")
}
