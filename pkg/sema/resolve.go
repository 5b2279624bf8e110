package sema

import (
	"nodelang.dev/nodec/pkg/ast"
	"nodelang.dev/nodec/pkg/symtab"
)

var builtins = map[string]bool{
	"print_int": true, "print_float": true, "print_bool": true,
	"print_char": true, "println": true,
}

// resolveScopes runs Pass 3 (spec.md §4.3): for every function body,
// seed a scope stack with one Func(name) marker per function declared
// in any node (the flat, cross-node namespace) and one Variable marker
// per parameter, then walk the body enforcing strict no-shadowing and
// that every reference resolves.
func resolveScopes(table *symtab.Table) error {
	base := newScopeStack()
	for _, nodeName := range table.Nodes.Keys() {
		node, _ := table.Nodes.Get(nodeName)
		for _, fnName := range node.Functions.Keys() {
			base.push(ScopeMarker{Kind: markerCallable, Name: fnName})
		}
	}

	for _, nodeName := range table.Nodes.Keys() {
		node, _ := table.Nodes.Get(nodeName)
		for _, fnName := range node.Functions.Keys() {
			fn, _ := node.Functions.Get(fnName)

			scope := newScopeStack()
			for m := range base.markers.Iterator() {
				scope.push(m)
			}
			scope.push(ScopeMarker{Kind: markerFunc, Name: fn.Name})
			for _, p := range fn.Params {
				scope.push(ScopeMarker{Kind: markerVariable, Name: p.Name, Type: p.Type})
			}

			if err := resolveStmts(fn.Body, scope); err != nil {
				return err
			}
		}
	}
	return nil
}

func resolveStmts(stmts []ast.Stmt, scope *ScopeStack) error {
	for _, stmt := range stmts {
		if err := resolveStmt(stmt, scope); err != nil {
			return err
		}
	}
	return nil
}

func resolveStmt(stmt ast.Stmt, scope *ScopeStack) error {
	switch s := stmt.(type) {
	case ast.DeclareVar:
		if err := resolveExpr(s.Init, scope); err != nil {
			return err
		}
		if scope.hasVariableOrConst(s.Name) {
			return fail(DuplicateLocalOrConst, "%q", s.Name)
		}
		scope.push(ScopeMarker{Kind: markerVariable, Name: s.Name, Type: s.Type})

	case ast.DeclareConst:
		if err := resolveExpr(s.Init, scope); err != nil {
			return err
		}
		if scope.hasVariableOrConst(s.Name) {
			return fail(DuplicateLocalOrConst, "%q", s.Name)
		}
		scope.push(ScopeMarker{Kind: markerConst, Name: s.Name, Type: s.Type})

	case ast.Assign:
		if !scope.hasVariableOrConst(s.Name) {
			return fail(AssignToNonVariable, "%q", s.Name)
		}
		if m, _ := scope.resolveVariable(s.Name); m.Kind == markerConst {
			return fail(AssignToNonVariable, "%q is declared const", s.Name)
		}
		for _, idx := range s.Indices {
			if err := resolveExpr(idx, scope); err != nil {
				return err
			}
		}
		if err := resolveExpr(s.Value, scope); err != nil {
			return err
		}

	case ast.CallStmt:
		if err := resolveExpr(*s.Call, scope); err != nil {
			return err
		}

	case ast.WhileLoop:
		if err := resolveExpr(s.Cond, scope); err != nil {
			return err
		}
		scope.push(ScopeMarker{Kind: markerWhile})
		if err := resolveStmts(s.Body, scope); err != nil {
			return err
		}
		scope.popTo(markerWhile)

	case ast.IfStmt:
		if err := resolveExpr(s.Cond, scope); err != nil {
			return err
		}
		scope.push(ScopeMarker{Kind: markerIf})
		if err := resolveStmts(s.Then, scope); err != nil {
			return err
		}
		scope.popTo(markerIf)
		if s.Else != nil {
			scope.push(ScopeMarker{Kind: markerElse})
			if err := resolveStmts(s.Else, scope); err != nil {
				return err
			}
			scope.popTo(markerElse)
		}

	case ast.ReturnValue:
		return resolveExpr(s.Expr, scope)
	}
	return nil
}

func resolveExpr(expr ast.Expr, scope *ScopeStack) error {
	switch e := expr.(type) {
	case ast.Identifier:
		if !scope.hasVariableOrConst(e.Name) {
			return fail(UnknownIdentifier, "%q", e.Name)
		}
	case ast.Index:
		if err := resolveExpr(e.Base, scope); err != nil {
			return err
		}
		return resolveExpr(e.Idx, scope)
	case ast.FnCall:
		if !builtins[e.Name] && !scope.hasCallable(e.Name) {
			return fail(CallToNonFunction, "%q", e.Name)
		}
		for _, arg := range e.Args {
			if err := resolveExpr(arg, scope); err != nil {
				return err
			}
		}
	case ast.BinOp:
		if err := resolveExpr(e.Lhs, scope); err != nil {
			return err
		}
		return resolveExpr(e.Rhs, scope)
	case ast.ArrayLit:
		for _, el := range e.Elems {
			if err := resolveExpr(el, scope); err != nil {
				return err
			}
		}
	}
	return nil
}
