package codegen

import (
	"fmt"

	"nodelang.dev/nodec/pkg/ast"
	"nodelang.dev/nodec/pkg/bytecode"
	"nodelang.dev/nodec/pkg/types"
)

// emitExpr emits the bytecode that leaves expr's value on top of the
// stack and returns its canonical type. pkg/sema has already proven the
// program type-sound, so every error path here indicates an internal
// inconsistency between sema and codegen rather than a source error.
func emitExpr(fs *funcState, expr ast.Expr) (string, error) {
	switch e := expr.(type) {
	case ast.Integer:
		fs.buf.WriteOp(bytecode.PushI32)
		fs.buf.WriteI32(e.Value)
		return types.Int, nil

	case ast.Float:
		fs.buf.WriteOp(bytecode.PushF32)
		fs.buf.WriteF32(e.Value)
		return types.Float, nil

	case ast.BoolLit:
		fs.buf.WriteOp(bytecode.PushBool)
		fs.buf.WriteBool(e.Value)
		return types.Bool, nil

	case ast.Character:
		fs.buf.WriteOp(bytecode.PushChar)
		fs.buf.WriteU8(uint8(e.Value))
		return types.Char, nil

	case ast.StringLit:
		// A string literal lowers to a char array literal of its runes,
		// matching the `"[T; N]"` array representation used everywhere
		// else; there is no dedicated string opcode.
		return emitStringLit(fs, e.Value)

	case ast.Identifier:
		v, ok := fs.vars[e.Name]
		if !ok {
			return "", fmt.Errorf("unallocated identifier %q", e.Name)
		}
		fs.buf.WriteOp(bytecode.LoadOpFor(v.Type))
		fs.buf.WriteU32(v.Addr)
		return v.Type, nil

	case ast.Index:
		name, indices, err := flattenIndex(e)
		if err != nil {
			return "", err
		}
		v, ok := fs.vars[name]
		if !ok {
			return "", fmt.Errorf("unallocated identifier %q", name)
		}
		elemType, err := emitIndexOffset(fs, indices, v.Type)
		if err != nil {
			return "", err
		}
		fs.buf.WriteOp(bytecode.LoadArrOpFor(elemType))
		fs.buf.WriteU32(v.Addr)
		return elemType, nil

	case ast.FnCall:
		return emitCall(fs, e)

	case ast.BinOp:
		return emitBinOp(fs, e)

	case ast.ArrayLit:
		return emitArrayLit(fs, e)
	}
	return "", fmt.Errorf("unrecognized expression node %T", expr)
}

// flattenIndex unwraps nested Index nodes (a[i][j] lowers to
// Index{Index{a,i},j}) back into the base identifier and its ordered
// index expressions, the shape emitIndexOffset expects.
func flattenIndex(e ast.Index) (string, []ast.Expr, error) {
	var indices []ast.Expr
	var cur ast.Expr = e
	for {
		idx, ok := cur.(ast.Index)
		if !ok {
			break
		}
		indices = append([]ast.Expr{idx.Idx}, indices...)
		cur = idx.Base
	}
	id, ok := cur.(ast.Identifier)
	if !ok {
		return "", nil, fmt.Errorf("array index base is not an identifier")
	}
	return id.Name, indices, nil
}

func emitBinOp(fs *funcState, e ast.BinOp) (string, error) {
	lt, err := emitExpr(fs, e.Lhs)
	if err != nil {
		return "", err
	}
	if _, err := emitExpr(fs, e.Rhs); err != nil {
		return "", err
	}

	switch e.Op {
	case ast.OpAdd:
		fs.buf.WriteOp(bytecode.AddOpFor(lt))
		return lt, nil
	case ast.OpSub:
		fs.buf.WriteOp(bytecode.SubOpFor(lt))
		return lt, nil
	case ast.OpMul:
		fs.buf.WriteOp(bytecode.MulOpFor(lt))
		return lt, nil
	case ast.OpDiv:
		fs.buf.WriteOp(bytecode.DivOpFor(lt))
		return lt, nil
	case ast.OpAnd:
		fs.buf.WriteOp(bytecode.And)
		return types.Bool, nil
	case ast.OpOr:
		fs.buf.WriteOp(bytecode.Or)
		return types.Bool, nil
	case ast.OpEq:
		fs.buf.WriteOp(bytecode.CmpOpFor(lt, bytecode.CmpEq))
		return types.Bool, nil
	case ast.OpNeq:
		fs.buf.WriteOp(bytecode.CmpOpFor(lt, bytecode.CmpNeq))
		return types.Bool, nil
	case ast.OpLess:
		fs.buf.WriteOp(bytecode.CmpOpFor(lt, bytecode.CmpLt))
		return types.Bool, nil
	case ast.OpGreater:
		fs.buf.WriteOp(bytecode.CmpOpFor(lt, bytecode.CmpGt))
		return types.Bool, nil
	case ast.OpLeq:
		fs.buf.WriteOp(bytecode.CmpOpFor(lt, bytecode.CmpLeq))
		return types.Bool, nil
	case ast.OpGeq:
		fs.buf.WriteOp(bytecode.CmpOpFor(lt, bytecode.CmpGeq))
		return types.Bool, nil
	}
	return "", fmt.Errorf("unrecognized operator %q", e.Op)
}

// emitCall implements spec.md §4.4's "Call sequence": push a
// placeholder return address, marshal arguments in reverse source
// order (so the callee's left-to-right bind preamble pops them
// correctly), jump to the callee, and record the jump's placeholder for
// end-of-node fixup.
func emitCall(fs *funcState, e ast.FnCall) (string, error) {
	if builtinRetType, ok := builtinSignature(e.Name); ok {
		fs.buf.WriteOp(bytecode.PushI32)
		retPatch := fs.buf.Len()
		fs.buf.WriteI32(0)

		for i := len(e.Args) - 1; i >= 0; i-- {
			if _, err := emitExpr(fs, e.Args[i]); err != nil {
				return "", err
			}
		}

		fs.buf.WriteOp(bytecode.Jmp)
		*fs.pending = append(*fs.pending, pendingCall{offset: fs.buf.Len(), name: e.Name})
		fs.buf.WriteU32(0)
		fs.buf.PatchU32(retPatch, fs.buf.Len())
		return builtinRetType, nil
	}

	fn, err := fs.table.LookupAny(e.Name)
	if err != nil {
		return "", err
	}

	fs.buf.WriteOp(bytecode.PushI32)
	retPatch := fs.buf.Len()
	fs.buf.WriteI32(0)

	for i := len(e.Args) - 1; i >= 0; i-- {
		if _, err := emitExpr(fs, e.Args[i]); err != nil {
			return "", err
		}
	}

	fs.buf.WriteOp(bytecode.Jmp)
	*fs.pending = append(*fs.pending, pendingCall{offset: fs.buf.Len(), name: e.Name})
	fs.buf.WriteU32(0)

	fs.buf.PatchU32(retPatch, fs.buf.Len())
	return fn.Return, nil
}

func emitArrayLit(fs *funcState, e ast.ArrayLit) (string, error) {
	n := len(e.Elems)
	var elemType string
	for i := n - 1; i >= 0; i-- {
		t, err := emitExpr(fs, e.Elems[i])
		if err != nil {
			return "", err
		}
		elemType = t
		fs.buf.WriteOp(bytecode.PushI32)
		fs.buf.WriteI32(int32(i))
	}
	return types.Array(elemType, n), nil
}

func emitStringLit(fs *funcState, s string) (string, error) {
	runes := []rune(s)
	n := len(runes)
	for i := n - 1; i >= 0; i-- {
		fs.buf.WriteOp(bytecode.PushChar)
		fs.buf.WriteU8(uint8(runes[i]))
		fs.buf.WriteOp(bytecode.PushI32)
		fs.buf.WriteI32(int32(i))
	}
	return types.Array(types.Char, n), nil
}
