package sema

import (
	"nodelang.dev/nodec/pkg/ast"
	"nodelang.dev/nodec/pkg/symtab"
	"nodelang.dev/nodec/pkg/types"
)

// checkReturns runs Pass 5 (spec.md §4.3): verify every function's body
// satisfies its declared return discipline.
//
//   - Return type "" (void): no ReturnValue statement may carry an
//     expression (ReturnValueInVoid); the grammar has no bare `return;`,
//     so any return statement fails here, and falling off the end is fine.
//   - Return type "!" (non-returning): the body must begin with a while
//     loop (NoReturnMissingLoop) and must contain no ReturnValue
//     statement at all, anywhere, at any nesting depth
//     (ReturnInNonReturning) — the function is expected to loop forever.
//   - Any other declared type T: spec.md §4.3 Pass 5 requires "at least
//     one ReturnValue node of type T ... reachable in the body"
//     (existential, not "every path terminates") — MissingReturn fires
//     only when the body contains no ReturnValue carrying a value at
//     all, anywhere at any nesting depth. The expression's type against
//     T is checked in Pass 4 (pkg/sema/typecheck.go), since that pass
//     already computes it while walking the same tree.
func checkReturns(table *symtab.Table) error {
	for _, nodeName := range table.Nodes.Keys() {
		node, _ := table.Nodes.Get(nodeName)
		for _, fnName := range node.Functions.Keys() {
			fn, _ := node.Functions.Get(fnName)
			if err := checkFunctionReturns(fn); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkFunctionReturns(fn *symtab.FunctionEntry) error {
	switch fn.Return {
	case types.Void:
		return walkNoValueInVoid(fn.Body)
	case types.NoReturn:
		if len(fn.Body) == 0 {
			return fail(NoReturnMissingLoop, "function %q declared '!' but has an empty body", fn.Name)
		}
		if _, ok := fn.Body[0].(ast.WhileLoop); !ok {
			return fail(NoReturnMissingLoop, "function %q declared '!' must begin with a while loop", fn.Name)
		}
		return walkNoReturnStmt(fn.Body, fn.Name)
	default:
		if !containsReturnValue(fn.Body) {
			return fail(MissingReturn, "function %q has no return value of the declared type %s", fn.Name, fn.Return)
		}
		return nil
	}
}

func walkNoValueInVoid(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case ast.ReturnValue:
			if s.Expr != nil {
				return fail(ReturnValueInVoid, "void function returns a value")
			}
		case ast.WhileLoop:
			if err := walkNoValueInVoid(s.Body); err != nil {
				return err
			}
		case ast.IfStmt:
			if err := walkNoValueInVoid(s.Then); err != nil {
				return err
			}
			if err := walkNoValueInVoid(s.Else); err != nil {
				return err
			}
		}
	}
	return nil
}

func walkNoReturnStmt(stmts []ast.Stmt, fnName string) error {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case ast.ReturnValue:
			return fail(ReturnInNonReturning, "function %q is declared '!' and may not return", fnName)
		case ast.WhileLoop:
			if err := walkNoReturnStmt(s.Body, fnName); err != nil {
				return err
			}
		case ast.IfStmt:
			if err := walkNoReturnStmt(s.Then, fnName); err != nil {
				return err
			}
			if err := walkNoReturnStmt(s.Else, fnName); err != nil {
				return err
			}
		}
	}
	return nil
}

// containsReturnValue reports whether a ReturnValue carrying an expression
// is reachable anywhere in stmts, at any nesting depth. This is existential,
// not exhaustive: `fn f() -> int { if c { return 1; } return 2; }` qualifies
// even though the if has no else, since a trailing `return 2;` is reachable.
func containsReturnValue(stmts []ast.Stmt) bool {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case ast.ReturnValue:
			if s.Expr != nil {
				return true
			}
		case ast.WhileLoop:
			if containsReturnValue(s.Body) {
				return true
			}
		case ast.IfStmt:
			if containsReturnValue(s.Then) {
				return true
			}
			if containsReturnValue(s.Else) {
				return true
			}
		}
	}
	return false
}
