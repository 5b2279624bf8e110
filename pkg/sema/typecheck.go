package sema

import (
	"nodelang.dev/nodec/pkg/ast"
	"nodelang.dev/nodec/pkg/symtab"
	"nodelang.dev/nodec/pkg/types"
)

// checkTypes runs Pass 4 (spec.md §4.3): re-walks every function body,
// independently of Pass 3, computing and verifying the type of every
// expression and statement. Kept as a second full walk rather than
// folded into resolveScopes, mirroring
// _examples/original_source/src/source.rs's separate check_semantics
// and check_types passes over the same tree. The function's declared
// return type threads through every recursive call so a ReturnValue
// statement can be checked against it (spec.md §4.3 Pass 5: "a
// ReturnValue node of type T").
func checkTypes(table *symtab.Table) error {
	for _, nodeName := range table.Nodes.Keys() {
		node, _ := table.Nodes.Get(nodeName)
		for _, fnName := range node.Functions.Keys() {
			fn, _ := node.Functions.Get(fnName)

			scope := newScopeStack()
			for _, p := range fn.Params {
				scope.push(ScopeMarker{Kind: markerVariable, Name: p.Name, Type: p.Type})
			}

			if err := checkStmts(fn.Body, scope, table, fn.Return); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkStmts(stmts []ast.Stmt, scope *ScopeStack, table *symtab.Table, retType string) error {
	for _, stmt := range stmts {
		if err := checkStmt(stmt, scope, table, retType); err != nil {
			return err
		}
	}
	return nil
}

func checkStmt(stmt ast.Stmt, scope *ScopeStack, table *symtab.Table, retType string) error {
	switch s := stmt.(type) {
	case ast.DeclareVar:
		t, err := exprType(s.Init, scope, table)
		if err != nil {
			return err
		}
		if t != s.Type {
			return fail(TypeMismatchDeclare, "%q declared as %s but initializer is %s", s.Name, s.Type, t)
		}
		scope.push(ScopeMarker{Kind: markerVariable, Name: s.Name, Type: s.Type})

	case ast.DeclareConst:
		t, err := exprType(s.Init, scope, table)
		if err != nil {
			return err
		}
		if t != s.Type {
			return fail(TypeMismatchDeclare, "%q declared as %s but initializer is %s", s.Name, s.Type, t)
		}
		scope.push(ScopeMarker{Kind: markerConst, Name: s.Name, Type: s.Type})

	case ast.Assign:
		marker, _ := scope.resolveVariable(s.Name)
		target := marker.Type
		for range s.Indices {
			elem, _, err := types.Decompose(target)
			if err != nil {
				return fail(MalformedArrayType, "%q is not indexable: %v", s.Name, err)
			}
			target = elem
		}
		for _, idx := range s.Indices {
			it, err := exprType(idx, scope, table)
			if err != nil {
				return err
			}
			if it != types.Int {
				return fail(NonIntegerIndex, "index into %q", s.Name)
			}
		}
		vt, err := exprType(s.Value, scope, table)
		if err != nil {
			return err
		}
		if vt != target {
			return fail(TypeMismatchAssign, "%q is %s, value is %s", s.Name, target, vt)
		}

	case ast.CallStmt:
		if _, err := exprType(*s.Call, scope, table); err != nil {
			return err
		}

	case ast.WhileLoop:
		ct, err := exprType(s.Cond, scope, table)
		if err != nil {
			return err
		}
		if ct != types.Bool {
			return fail(TypeMismatchBoolean, "while condition is %s", ct)
		}
		scope.push(ScopeMarker{Kind: markerWhile})
		if err := checkStmts(s.Body, scope, table, retType); err != nil {
			return err
		}
		scope.popTo(markerWhile)

	case ast.IfStmt:
		ct, err := exprType(s.Cond, scope, table)
		if err != nil {
			return err
		}
		if ct != types.Bool {
			return fail(TypeMismatchBoolean, "if condition is %s", ct)
		}
		scope.push(ScopeMarker{Kind: markerIf})
		if err := checkStmts(s.Then, scope, table, retType); err != nil {
			return err
		}
		scope.popTo(markerIf)
		if s.Else != nil {
			scope.push(ScopeMarker{Kind: markerElse})
			if err := checkStmts(s.Else, scope, table, retType); err != nil {
				return err
			}
			scope.popTo(markerElse)
		}

	case ast.ReturnValue:
		if s.Expr != nil {
			rt, err := exprType(s.Expr, scope, table)
			if err != nil {
				return err
			}
			// Void and '!' functions are left to Pass 5, which reports
			// ReturnValueInVoid / ReturnInNonReturning for them.
			if retType != types.Void && retType != types.NoReturn && rt != retType {
				return fail(MissingReturn, "function returns %s but is declared to return %s", rt, retType)
			}
		}
	}
	return nil
}

func exprType(expr ast.Expr, scope *ScopeStack, table *symtab.Table) (string, error) {
	switch e := expr.(type) {
	case ast.Integer:
		return types.Int, nil
	case ast.Float:
		return types.Float, nil
	case ast.Character:
		return types.Char, nil
	case ast.BoolLit:
		return types.Bool, nil
	case ast.StringLit:
		return types.Array(types.Char, len(e.Value)), nil

	case ast.Identifier:
		m, ok := scope.resolveVariable(e.Name)
		if !ok {
			return "", fail(UnknownIdentifier, "%q", e.Name)
		}
		return m.Type, nil

	case ast.Index:
		bt, err := exprType(e.Base, scope, table)
		if err != nil {
			return "", err
		}
		it, err := exprType(e.Idx, scope, table)
		if err != nil {
			return "", err
		}
		if it != types.Int {
			return "", fail(NonIntegerIndex, "array index")
		}
		elem, _, err := types.Decompose(bt)
		if err != nil {
			return "", fail(MalformedArrayType, "%v", err)
		}
		return elem, nil

	case ast.FnCall:
		argTypes := make([]string, len(e.Args))
		for i, a := range e.Args {
			t, err := exprType(a, scope, table)
			if err != nil {
				return "", err
			}
			argTypes[i] = t
		}
		if builtins[e.Name] {
			return types.Void, nil
		}
		fn, err := table.LookupAny(e.Name)
		if err != nil {
			return "", fail(UnknownFunction, "%q", e.Name)
		}
		want := fn.ParamTypes()
		if len(want) != len(argTypes) {
			return "", fail(CallSignatureMismatch, "%q expects %d argument(s), got %d", e.Name, len(want), len(argTypes))
		}
		for i := range want {
			if want[i] != argTypes[i] {
				return "", fail(CallSignatureMismatch, "%q argument %d: expected %s, got %s", e.Name, i+1, want[i], argTypes[i])
			}
		}
		return fn.Return, nil

	case ast.BinOp:
		lt, err := exprType(e.Lhs, scope, table)
		if err != nil {
			return "", err
		}
		rt, err := exprType(e.Rhs, scope, table)
		if err != nil {
			return "", err
		}
		switch e.Op {
		case ast.OpAnd, ast.OpOr:
			if lt != types.Bool || rt != types.Bool {
				return "", fail(TypeMismatchBoolean, "operands of %s must be bool", e.Op)
			}
			return types.Bool, nil
		case ast.OpEq, ast.OpNeq:
			if lt != rt {
				return "", fail(TypeMismatchComparison, "%s vs %s", lt, rt)
			}
			return types.Bool, nil
		case ast.OpLess, ast.OpGreater, ast.OpLeq, ast.OpGeq:
			if !types.IsNumeric(lt) || lt != rt {
				return "", fail(TypeMismatchComparison, "%s vs %s", lt, rt)
			}
			return types.Bool, nil
		case ast.OpMul, ast.OpDiv:
			// The bytecode ISA has no mul.char/div.char opcode family
			// (spec.md §4.4), so char only ever joins add/sub.
			if lt != types.Int && lt != types.Float {
				return "", fail(TypeMismatchOperand, "%s vs %s", lt, rt)
			}
			if lt != rt {
				return "", fail(TypeMismatchOperand, "%s vs %s", lt, rt)
			}
			return lt, nil
		default: // OpAdd, OpSub
			if !types.IsNumeric(lt) || lt != rt {
				return "", fail(TypeMismatchOperand, "%s vs %s", lt, rt)
			}
			return lt, nil
		}

	case ast.ArrayLit:
		if len(e.Elems) == 0 {
			return "", fail(HeterogeneousArray, "empty array literal has no element type")
		}
		first, err := exprType(e.Elems[0], scope, table)
		if err != nil {
			return "", err
		}
		for _, el := range e.Elems[1:] {
			t, err := exprType(el, scope, table)
			if err != nil {
				return "", err
			}
			if t != first {
				return "", fail(HeterogeneousArray, "%s vs %s", first, t)
			}
		}
		return types.Array(first, len(e.Elems)), nil
	}
	return "", fail(TypeMismatchOperand, "unrecognized expression")
}
