// Package ll1 implements the predictive (LL(1)) parser of spec.md §4.2.
// Each grammar rule is a method that dispatches on one token of
// lookahead — the "FIRST/FOLLOW encoded implicitly as match arms" the
// spec describes — and builds the parsetree.Tree in lockstep with
// recognition, the way _examples/shadowCow-cow-lang-go's
// tooling/ll1/parser.go drives its nodeStack from a table lookup and
// _examples/original_source/src/parser.rs drives its SyntaxTree from
// literal (nonterminal, token) match arms. Recursive descent realizes
// the symbol stack on the Go call stack instead of an explicit
// LinkedList, which is an implementation detail; the lookahead
// decision at each step is still exactly one token, matching the
// predictive parsing contract.
package ll1

import (
	"fmt"

	"nodelang.dev/nodec/pkg/parsetree"
	"nodelang.dev/nodec/pkg/token"
)

// SyntaxError is a grammar mismatch: the parser found no production
// matching (current nonterminal, lookahead). Fatal, no recovery
// (spec.md §4.2, §7).
type SyntaxError struct {
	Context string
	Got     token.Token
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: syntax error: %s, got %s", e.Got.Pos, e.Context, e.Got)
}

// Parser drives a parsetree.Tree from a flat token stream.
type Parser struct {
	tokens []token.Token
	pos    int
	tree   *parsetree.Tree
}

// New constructs a Parser over tokens, which must end in a token.EOF
// (as produced by lexer.Lexer.Tokenize).
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens, tree: parsetree.New()}
}

func (p *Parser) cur() token.Token { return p.tokens[p.pos] }

func (p *Parser) advance() token.Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

// match consumes the current token if its tag equals want, attaching
// it as a Terminal child of parent; otherwise it returns a SyntaxError.
func (p *Parser) match(parent int, want token.Tag, context string) (int, error) {
	if p.cur().Tag != want {
		return 0, &SyntaxError{Context: context, Got: p.cur()}
	}
	tok := p.advance()
	idx := p.tree.AddChild(parent, parsetree.Symbol{Kind: parsetree.Terminal, Token: tok})
	return idx, nil
}

func (p *Parser) nonterminal(parent int, name string) int {
	return p.tree.AddChild(parent, parsetree.Symbol{Kind: parsetree.Nonterminal, Name: name})
}

func (p *Parser) empty(parent int) int {
	return p.tree.AddChild(parent, parsetree.Symbol{Kind: parsetree.Empty})
}

// Parse runs the full grammar starting from Program and returns the
// completed parse tree, or the first syntax error encountered.
func (p *Parser) Parse() (*parsetree.Tree, error) {
	root := p.tree.SetRoot(parsetree.Symbol{Kind: parsetree.Nonterminal, Name: "Program"})
	if err := p.parseProgram(root); err != nil {
		return nil, err
	}
	if p.cur().Tag != token.EOF {
		return nil, &SyntaxError{Context: "expected end of input", Got: p.cur()}
	}
	return p.tree, nil
}

// Program -> NodeSeq
func (p *Parser) parseProgram(idx int) error {
	seq := p.nonterminal(idx, "NodeSeq")
	return p.parseNodeSeq(seq)
}

// NodeSeq -> DeclareNode NodeSeq | ε
func (p *Parser) parseNodeSeq(idx int) error {
	if p.cur().Tag != token.KwNode {
		p.empty(idx)
		return nil
	}
	decl := p.nonterminal(idx, "DeclareNode")
	if err := p.parseDeclareNode(decl); err != nil {
		return err
	}
	rest := p.nonterminal(idx, "NodeSeq")
	return p.parseNodeSeq(rest)
}

// DeclareNode -> 'node' Identifier NodeHeader '{' TLStmtSeq '}'
func (p *Parser) parseDeclareNode(idx int) error {
	if _, err := p.match(idx, token.KwNode, "expected 'node'"); err != nil {
		return err
	}
	if _, err := p.match(idx, token.Identifier, "expected node name"); err != nil {
		return err
	}
	header := p.nonterminal(idx, "NodeHeader")
	if err := p.parseNodeHeader(header); err != nil {
		return err
	}
	if _, err := p.match(idx, token.LBrace, "expected '{' to open node body"); err != nil {
		return err
	}
	body := p.nonterminal(idx, "TLStmtSeq")
	if err := p.parseTLStmtSeq(body); err != nil {
		return err
	}
	if _, err := p.match(idx, token.RBrace, "expected '}' to close node body"); err != nil {
		return err
	}
	return nil
}

// NodeHeader -> ':' IdentList | ε
func (p *Parser) parseNodeHeader(idx int) error {
	if p.cur().Tag != token.Colon {
		p.empty(idx)
		return nil
	}
	if _, err := p.match(idx, token.Colon, "expected ':'"); err != nil {
		return err
	}
	list := p.nonterminal(idx, "IdentList")
	return p.parseIdentList(list)
}

// IdentList -> Identifier (',' Identifier)*
func (p *Parser) parseIdentList(idx int) error {
	if _, err := p.match(idx, token.Identifier, "expected dependency node name"); err != nil {
		return err
	}
	for p.cur().Tag == token.Comma {
		if _, err := p.match(idx, token.Comma, "expected ','"); err != nil {
			return err
		}
		if _, err := p.match(idx, token.Identifier, "expected dependency node name"); err != nil {
			return err
		}
	}
	return nil
}

// TLStmtSeq -> TLStmt TLStmtSeq | ε
func (p *Parser) parseTLStmtSeq(idx int) error {
	if p.cur().Tag != token.KwExport && p.cur().Tag != token.KwFn {
		p.empty(idx)
		return nil
	}
	stmt := p.nonterminal(idx, "TLStmt")
	if err := p.parseTLStmt(stmt); err != nil {
		return err
	}
	rest := p.nonterminal(idx, "TLStmtSeq")
	return p.parseTLStmtSeq(rest)
}

// TLStmt -> 'export' DeclareFunc | DeclareFunc
func (p *Parser) parseTLStmt(idx int) error {
	if p.cur().Tag == token.KwExport {
		if _, err := p.match(idx, token.KwExport, "expected 'export'"); err != nil {
			return err
		}
	}
	fn := p.nonterminal(idx, "DeclareFunc")
	return p.parseDeclareFunc(fn)
}

// DeclareFunc -> 'fn' Identifier '(' ParamList ')' ReturnType Block
func (p *Parser) parseDeclareFunc(idx int) error {
	if _, err := p.match(idx, token.KwFn, "expected 'fn'"); err != nil {
		return err
	}
	if _, err := p.match(idx, token.Identifier, "expected function name"); err != nil {
		return err
	}
	if _, err := p.match(idx, token.LParen, "expected '('"); err != nil {
		return err
	}
	params := p.nonterminal(idx, "ParamList")
	if err := p.parseParamList(params); err != nil {
		return err
	}
	if _, err := p.match(idx, token.RParen, "expected ')'"); err != nil {
		return err
	}
	ret := p.nonterminal(idx, "ReturnType")
	if err := p.parseReturnType(ret); err != nil {
		return err
	}
	block := p.nonterminal(idx, "Block")
	return p.parseBlock(block)
}

// ParamList -> ε | Param (',' Param)*
func (p *Parser) parseParamList(idx int) error {
	if p.cur().Tag != token.Identifier {
		p.empty(idx)
		return nil
	}
	param := p.nonterminal(idx, "Param")
	if err := p.parseParam(param); err != nil {
		return err
	}
	for p.cur().Tag == token.Comma {
		if _, err := p.match(idx, token.Comma, "expected ','"); err != nil {
			return err
		}
		next := p.nonterminal(idx, "Param")
		if err := p.parseParam(next); err != nil {
			return err
		}
	}
	return nil
}

// Param -> Identifier ':' Type
func (p *Parser) parseParam(idx int) error {
	if _, err := p.match(idx, token.Identifier, "expected parameter name"); err != nil {
		return err
	}
	if _, err := p.match(idx, token.Colon, "expected ':'"); err != nil {
		return err
	}
	typ := p.nonterminal(idx, "Type")
	return p.parseType(typ)
}

// ReturnType -> '->' Type | '->' '(' ')' | '->' '!'
func (p *Parser) parseReturnType(idx int) error {
	if _, err := p.match(idx, token.Arrow, "expected '->'"); err != nil {
		return err
	}
	switch p.cur().Tag {
	case token.LParen:
		if _, err := p.match(idx, token.LParen, "expected '('"); err != nil {
			return err
		}
		if _, err := p.match(idx, token.RParen, "expected ')' to close void return type"); err != nil {
			return err
		}
		p.nonterminal(idx, "Void")
	case token.Not:
		if _, err := p.match(idx, token.Not, "expected '!'"); err != nil {
			return err
		}
		p.nonterminal(idx, "NoReturn")
	default:
		typ := p.nonterminal(idx, "Type")
		return p.parseType(typ)
	}
	return nil
}

// Type -> 'int' | 'float' | 'bool' | 'char' | Identifier | '[' Type ';' IntegerLit ']'
func (p *Parser) parseType(idx int) error {
	switch p.cur().Tag {
	case token.KwInt, token.KwFloat, token.KwBool, token.KwChar, token.Identifier:
		_, err := p.match(idx, p.cur().Tag, "expected type")
		return err
	case token.LBracket:
		if _, err := p.match(idx, token.LBracket, "expected '['"); err != nil {
			return err
		}
		elem := p.nonterminal(idx, "Type")
		if err := p.parseType(elem); err != nil {
			return err
		}
		if _, err := p.match(idx, token.Semicolon, "expected ';' in array type"); err != nil {
			return err
		}
		if _, err := p.match(idx, token.IntegerLit, "expected array length"); err != nil {
			return err
		}
		if _, err := p.match(idx, token.RBracket, "expected ']' to close array type"); err != nil {
			return err
		}
		return nil
	default:
		return &SyntaxError{Context: "expected a type", Got: p.cur()}
	}
}

// Block -> '{' StmtSeq '}'
func (p *Parser) parseBlock(idx int) error {
	if _, err := p.match(idx, token.LBrace, "expected '{'"); err != nil {
		return err
	}
	seq := p.nonterminal(idx, "StmtSeq")
	if err := p.parseStmtSeq(seq); err != nil {
		return err
	}
	if _, err := p.match(idx, token.RBrace, "expected '}'"); err != nil {
		return err
	}
	return nil
}

var stmtStarters = map[token.Tag]bool{
	token.KwVar: true, token.KwConst: true, token.Identifier: true,
	token.KwWhile: true, token.KwIf: true, token.KwReturn: true,
}

// StmtSeq -> Stmt StmtSeq | ε
func (p *Parser) parseStmtSeq(idx int) error {
	if !stmtStarters[p.cur().Tag] {
		p.empty(idx)
		return nil
	}
	stmt := p.nonterminal(idx, "Stmt")
	if err := p.parseStmt(stmt); err != nil {
		return err
	}
	rest := p.nonterminal(idx, "StmtSeq")
	return p.parseStmtSeq(rest)
}

// Stmt -> DeclareVarStmt | DeclareConstStmt | AssignStmt | CallStmt |
//         WhileStmt | IfStmt | ReturnStmt
func (p *Parser) parseStmt(idx int) error {
	switch p.cur().Tag {
	case token.KwVar:
		n := p.nonterminal(idx, "DeclareVarStmt")
		return p.parseDeclareVarStmt(n)
	case token.KwConst:
		n := p.nonterminal(idx, "DeclareConstStmt")
		return p.parseDeclareConstStmt(n)
	case token.Identifier:
		n := p.nonterminal(idx, "IdentStmt")
		return p.parseIdentifierStmt(n)
	case token.KwWhile:
		n := p.nonterminal(idx, "WhileStmt")
		return p.parseWhileStmt(n)
	case token.KwIf:
		n := p.nonterminal(idx, "IfStmt")
		return p.parseIfStmt(n)
	case token.KwReturn:
		n := p.nonterminal(idx, "ReturnStmt")
		return p.parseReturnStmt(n)
	default:
		return &SyntaxError{Context: "expected a statement", Got: p.cur()}
	}
}

// DeclareVarStmt -> 'var' Identifier ':' Type '=' Expression ';'
func (p *Parser) parseDeclareVarStmt(idx int) error {
	if _, err := p.match(idx, token.KwVar, "expected 'var'"); err != nil {
		return err
	}
	return p.parseDeclTail(idx)
}

// DeclareConstStmt -> 'const' Identifier ':' Type '=' Expression ';'
func (p *Parser) parseDeclareConstStmt(idx int) error {
	if _, err := p.match(idx, token.KwConst, "expected 'const'"); err != nil {
		return err
	}
	return p.parseDeclTail(idx)
}

func (p *Parser) parseDeclTail(idx int) error {
	if _, err := p.match(idx, token.Identifier, "expected declared name"); err != nil {
		return err
	}
	if _, err := p.match(idx, token.Colon, "expected ':'"); err != nil {
		return err
	}
	typ := p.nonterminal(idx, "Type")
	if err := p.parseType(typ); err != nil {
		return err
	}
	if _, err := p.match(idx, token.Assign, "expected '='"); err != nil {
		return err
	}
	expr := p.nonterminal(idx, "Expression")
	if err := p.parseExpression(expr); err != nil {
		return err
	}
	_, err := p.match(idx, token.Semicolon, "expected ';'")
	return err
}

// Identifier-led statement: AssignStmt | CallStmt.
// AssignStmt -> Identifier IndexList '=' Expression ';'
// CallStmt   -> Identifier '(' ArgList ')' ';'
func (p *Parser) parseIdentifierStmt(idx int) error {
	if _, err := p.match(idx, token.Identifier, "expected identifier"); err != nil {
		return err
	}
	if p.cur().Tag == token.LParen {
		if _, err := p.match(idx, token.LParen, "expected '('"); err != nil {
			return err
		}
		args := p.nonterminal(idx, "ArgList")
		if err := p.parseArgList(args); err != nil {
			return err
		}
		if _, err := p.match(idx, token.RParen, "expected ')'"); err != nil {
			return err
		}
		_, err := p.match(idx, token.Semicolon, "expected ';'")
		return err
	}

	indices := p.nonterminal(idx, "IndexList")
	if err := p.parseIndexList(indices); err != nil {
		return err
	}
	if _, err := p.match(idx, token.Assign, "expected '='"); err != nil {
		return err
	}
	expr := p.nonterminal(idx, "Expression")
	if err := p.parseExpression(expr); err != nil {
		return err
	}
	_, err := p.match(idx, token.Semicolon, "expected ';'")
	return err
}

// IndexList -> ('[' Expression ']')*
func (p *Parser) parseIndexList(idx int) error {
	if p.cur().Tag != token.LBracket {
		p.empty(idx)
		return nil
	}
	if _, err := p.match(idx, token.LBracket, "expected '['"); err != nil {
		return err
	}
	expr := p.nonterminal(idx, "Expression")
	if err := p.parseExpression(expr); err != nil {
		return err
	}
	if _, err := p.match(idx, token.RBracket, "expected ']'"); err != nil {
		return err
	}
	rest := p.nonterminal(idx, "IndexList")
	return p.parseIndexList(rest)
}

// WhileStmt -> 'while' Expression Block
func (p *Parser) parseWhileStmt(idx int) error {
	if _, err := p.match(idx, token.KwWhile, "expected 'while'"); err != nil {
		return err
	}
	cond := p.nonterminal(idx, "Expression")
	if err := p.parseExpression(cond); err != nil {
		return err
	}
	block := p.nonterminal(idx, "Block")
	return p.parseBlock(block)
}

// IfStmt -> 'if' Expression Block ElseOpt
func (p *Parser) parseIfStmt(idx int) error {
	if _, err := p.match(idx, token.KwIf, "expected 'if'"); err != nil {
		return err
	}
	cond := p.nonterminal(idx, "Expression")
	if err := p.parseExpression(cond); err != nil {
		return err
	}
	block := p.nonterminal(idx, "Block")
	if err := p.parseBlock(block); err != nil {
		return err
	}
	elseOpt := p.nonterminal(idx, "ElseOpt")
	return p.parseElseOpt(elseOpt)
}

// ElseOpt -> 'else' Block | ε
func (p *Parser) parseElseOpt(idx int) error {
	if p.cur().Tag != token.KwElse {
		p.empty(idx)
		return nil
	}
	if _, err := p.match(idx, token.KwElse, "expected 'else'"); err != nil {
		return err
	}
	block := p.nonterminal(idx, "Block")
	return p.parseBlock(block)
}

// ReturnStmt -> 'return' Expression ';'
func (p *Parser) parseReturnStmt(idx int) error {
	if _, err := p.match(idx, token.KwReturn, "expected 'return'"); err != nil {
		return err
	}
	expr := p.nonterminal(idx, "Expression")
	if err := p.parseExpression(expr); err != nil {
		return err
	}
	_, err := p.match(idx, token.Semicolon, "expected ';'")
	return err
}

// ArgList -> ε | Expression (',' Expression)*
func (p *Parser) parseArgList(idx int) error {
	if p.cur().Tag == token.RParen {
		p.empty(idx)
		return nil
	}
	first := p.nonterminal(idx, "Expression")
	if err := p.parseExpression(first); err != nil {
		return err
	}
	for p.cur().Tag == token.Comma {
		if _, err := p.match(idx, token.Comma, "expected ','"); err != nil {
			return err
		}
		next := p.nonterminal(idx, "Expression")
		if err := p.parseExpression(next); err != nil {
			return err
		}
	}
	return nil
}

// Expression -> BoolTerm ExpressionPrime
// ExpressionPrime -> '||' BoolTerm ExpressionPrime | ε
//
// Right-recursive by design: this produces the right-leaning spine
// that pkg/ast's rebalanceComparisonTree later reshapes into a
// left-associative Or tree (spec.md §4.2's left-associativity fix-up;
// see DESIGN.md for why the '||' tier is rebalanced by the function
// named "comparison" rather than "bool_term").
func (p *Parser) parseExpression(idx int) error {
	lhs := p.nonterminal(idx, "BoolTerm")
	if err := p.parseBoolTerm(lhs); err != nil {
		return err
	}
	prime := p.nonterminal(idx, "ExpressionPrime")
	return p.parseExpressionPrime(prime)
}

func (p *Parser) parseExpressionPrime(idx int) error {
	if p.cur().Tag != token.OrOr {
		p.empty(idx)
		return nil
	}
	if _, err := p.match(idx, token.OrOr, "expected '||'"); err != nil {
		return err
	}
	rhs := p.nonterminal(idx, "BoolTerm")
	if err := p.parseBoolTerm(rhs); err != nil {
		return err
	}
	rest := p.nonterminal(idx, "ExpressionPrime")
	return p.parseExpressionPrime(rest)
}

// BoolTerm -> Comparison BoolTermPrime
// BoolTermPrime -> '&&' Comparison BoolTermPrime | ε
func (p *Parser) parseBoolTerm(idx int) error {
	lhs := p.nonterminal(idx, "Comparison")
	if err := p.parseComparison(lhs); err != nil {
		return err
	}
	prime := p.nonterminal(idx, "BoolTermPrime")
	return p.parseBoolTermPrime(prime)
}

func (p *Parser) parseBoolTermPrime(idx int) error {
	if p.cur().Tag != token.AndAnd {
		p.empty(idx)
		return nil
	}
	if _, err := p.match(idx, token.AndAnd, "expected '&&'"); err != nil {
		return err
	}
	rhs := p.nonterminal(idx, "Comparison")
	if err := p.parseComparison(rhs); err != nil {
		return err
	}
	rest := p.nonterminal(idx, "BoolTermPrime")
	return p.parseBoolTermPrime(rest)
}

var compOps = map[token.Tag]bool{
	token.Eq: true, token.Neq: true, token.Lt: true,
	token.Leq: true, token.Gt: true, token.Geq: true,
}

// Comparison -> ArithExpr (CompOp ArithExpr)?
//
// Not a chain: comparisons don't associate (spec.md §4.3 requires
// exactly two operands), so there is no ComparisonPrime and no
// rebalancing at this tier.
func (p *Parser) parseComparison(idx int) error {
	lhs := p.nonterminal(idx, "ArithExpr")
	if err := p.parseArithExpr(lhs); err != nil {
		return err
	}
	if compOps[p.cur().Tag] {
		if _, err := p.match(idx, p.cur().Tag, "expected comparison operator"); err != nil {
			return err
		}
		rhs := p.nonterminal(idx, "ArithExpr")
		return p.parseArithExpr(rhs)
	}
	return nil
}

// ArithExpr -> Term ArithExprPrime
// ArithExprPrime -> ('+' | '-') Term ArithExprPrime | ε
func (p *Parser) parseArithExpr(idx int) error {
	lhs := p.nonterminal(idx, "Term")
	if err := p.parseTerm(lhs); err != nil {
		return err
	}
	prime := p.nonterminal(idx, "ArithExprPrime")
	return p.parseArithExprPrime(prime)
}

func (p *Parser) parseArithExprPrime(idx int) error {
	if p.cur().Tag != token.Plus && p.cur().Tag != token.Minus {
		p.empty(idx)
		return nil
	}
	if _, err := p.match(idx, p.cur().Tag, "expected '+' or '-'"); err != nil {
		return err
	}
	rhs := p.nonterminal(idx, "Term")
	if err := p.parseTerm(rhs); err != nil {
		return err
	}
	rest := p.nonterminal(idx, "ArithExprPrime")
	return p.parseArithExprPrime(rest)
}

// Term -> Factor TermPrime
// TermPrime -> ('*' | '/') Factor TermPrime | ε
func (p *Parser) parseTerm(idx int) error {
	lhs := p.nonterminal(idx, "Factor")
	if err := p.parseFactor(lhs); err != nil {
		return err
	}
	prime := p.nonterminal(idx, "TermPrime")
	return p.parseTermPrime(prime)
}

func (p *Parser) parseTermPrime(idx int) error {
	if p.cur().Tag != token.Star && p.cur().Tag != token.Slash {
		p.empty(idx)
		return nil
	}
	if _, err := p.match(idx, p.cur().Tag, "expected '*' or '/'"); err != nil {
		return err
	}
	rhs := p.nonterminal(idx, "Factor")
	if err := p.parseFactor(rhs); err != nil {
		return err
	}
	rest := p.nonterminal(idx, "TermPrime")
	return p.parseTermPrime(rest)
}

// Factor -> '(' Expression ')' | '-' Factor | Identifier FactorIdentTail |
//           IntegerLit | FloatLit | CharLit | StringLit | BoolLit |
//           '[' ArrayItems ']'
func (p *Parser) parseFactor(idx int) error {
	switch p.cur().Tag {
	case token.LParen:
		if _, err := p.match(idx, token.LParen, "expected '('"); err != nil {
			return err
		}
		expr := p.nonterminal(idx, "Expression")
		if err := p.parseExpression(expr); err != nil {
			return err
		}
		_, err := p.match(idx, token.RParen, "expected ')'")
		return err
	case token.Minus:
		if _, err := p.match(idx, token.Minus, "expected unary '-'"); err != nil {
			return err
		}
		inner := p.nonterminal(idx, "Factor")
		return p.parseFactor(inner)
	case token.Identifier:
		if _, err := p.match(idx, token.Identifier, "expected identifier"); err != nil {
			return err
		}
		tail := p.nonterminal(idx, "FactorIdentTail")
		return p.parseFactorIdentTail(tail)
	case token.IntegerLit, token.FloatLit, token.CharLit, token.StringLit, token.BoolLit:
		_, err := p.match(idx, p.cur().Tag, "expected a literal")
		return err
	case token.LBracket:
		if _, err := p.match(idx, token.LBracket, "expected '['"); err != nil {
			return err
		}
		items := p.nonterminal(idx, "ArrayItems")
		if err := p.parseArrayItems(items); err != nil {
			return err
		}
		_, err := p.match(idx, token.RBracket, "expected ']'")
		return err
	default:
		return &SyntaxError{Context: "expected an expression", Got: p.cur()}
	}
}

// FactorIdentTail -> '(' ArgList ')' | IndexList | ε
func (p *Parser) parseFactorIdentTail(idx int) error {
	if p.cur().Tag == token.LParen {
		if _, err := p.match(idx, token.LParen, "expected '('"); err != nil {
			return err
		}
		args := p.nonterminal(idx, "ArgList")
		if err := p.parseArgList(args); err != nil {
			return err
		}
		_, err := p.match(idx, token.RParen, "expected ')'")
		return err
	}
	indices := p.nonterminal(idx, "IndexList")
	return p.parseIndexList(indices)
}

// ArrayItems -> ε | Expression (',' Expression)*
func (p *Parser) parseArrayItems(idx int) error {
	if p.cur().Tag == token.RBracket {
		p.empty(idx)
		return nil
	}
	first := p.nonterminal(idx, "Expression")
	if err := p.parseExpression(first); err != nil {
		return err
	}
	for p.cur().Tag == token.Comma {
		if _, err := p.match(idx, token.Comma, "expected ','"); err != nil {
			return err
		}
		next := p.nonterminal(idx, "Expression")
		if err := p.parseExpression(next); err != nil {
			return err
		}
	}
	return nil
}
