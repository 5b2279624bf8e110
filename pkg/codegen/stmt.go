package codegen

import (
	"fmt"

	"nodelang.dev/nodec/pkg/ast"
	"nodelang.dev/nodec/pkg/bytecode"
	"nodelang.dev/nodec/pkg/types"
)

func emitStmts(fs *funcState, stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		if err := emitStmt(fs, stmt); err != nil {
			return err
		}
	}
	return nil
}

func emitStmt(fs *funcState, stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case ast.DeclareVar:
		if _, err := emitExpr(fs, s.Init); err != nil {
			return err
		}
		v := fs.vars[s.Name]
		fs.buf.WriteOp(bytecode.StoreOpFor(v.Type))
		fs.buf.WriteU32(v.Addr)

	case ast.DeclareConst:
		if _, err := emitExpr(fs, s.Init); err != nil {
			return err
		}
		v := fs.vars[s.Name]
		fs.buf.WriteOp(bytecode.StoreOpFor(v.Type))
		fs.buf.WriteU32(v.Addr)

	case ast.Assign:
		v, ok := fs.vars[s.Name]
		if !ok {
			return fmt.Errorf("assign to unallocated variable %q", s.Name)
		}
		if len(s.Indices) == 0 {
			if _, err := emitExpr(fs, s.Value); err != nil {
				return err
			}
			fs.buf.WriteOp(bytecode.StoreOpFor(v.Type))
			fs.buf.WriteU32(v.Addr)
			return nil
		}
		elemType, err := emitIndexOffset(fs, s.Indices, v.Type)
		if err != nil {
			return err
		}
		if _, err := emitExpr(fs, s.Value); err != nil {
			return err
		}
		fs.buf.WriteOp(bytecode.StoreArrOpFor(elemType))
		fs.buf.WriteU32(v.Addr)

	case ast.CallStmt:
		if _, err := emitExpr(fs, *s.Call); err != nil {
			return err
		}

	case ast.WhileLoop:
		start := fs.buf.Len()
		if _, err := emitExpr(fs, s.Cond); err != nil {
			return err
		}
		fs.buf.WriteOp(bytecode.JmpIfFalse)
		exitPatch := fs.buf.Len()
		fs.buf.WriteU32(0)
		if err := emitStmts(fs, s.Body); err != nil {
			return err
		}
		fs.buf.WriteOp(bytecode.Jmp)
		fs.buf.WriteU32(start)
		fs.buf.PatchU32(exitPatch, fs.buf.Len())

	case ast.IfStmt:
		if _, err := emitExpr(fs, s.Cond); err != nil {
			return err
		}
		fs.buf.WriteOp(bytecode.JmpIfFalse)
		elsePatch := fs.buf.Len()
		fs.buf.WriteU32(0)
		if err := emitStmts(fs, s.Then); err != nil {
			return err
		}
		if s.Else != nil {
			fs.buf.WriteOp(bytecode.Jmp)
			endPatch := fs.buf.Len()
			fs.buf.WriteU32(0)
			fs.buf.PatchU32(elsePatch, fs.buf.Len())
			if err := emitStmts(fs, s.Else); err != nil {
				return err
			}
			fs.buf.PatchU32(endPatch, fs.buf.Len())
		} else {
			fs.buf.PatchU32(elsePatch, fs.buf.Len())
		}

	case ast.ReturnValue:
		if s.Expr != nil {
			if _, err := emitExpr(fs, s.Expr); err != nil {
				return err
			}
			fs.buf.WriteOp(bytecode.RetVal)
		} else {
			fs.buf.WriteOp(bytecode.RetVoid)
		}
	}
	return nil
}

// emitIndexOffset emits, for a chain of indices applied to a variable
// of type baseType, the bytecode that leaves a single combined byte
// offset on the stack: each index is multiplied by its dimension's
// element stride and accumulated, per spec.md §4.4 "Array lowering" —
// "a nested [[T; M]; N] strides by size_of(T)*M at its outer dimension".
// Returns the element type reached after applying every index.
func emitIndexOffset(fs *funcState, indices []ast.Expr, baseType string) (string, error) {
	current := baseType
	for i, idx := range indices {
		elem, _, err := types.Decompose(current)
		if err != nil {
			return "", fmt.Errorf("indexing non-array type %q: %w", current, err)
		}
		stride, err := types.StorageSize(elem)
		if err != nil {
			return "", err
		}
		if _, err := emitExpr(fs, idx); err != nil {
			return "", err
		}
		fs.buf.WriteOp(bytecode.PushI32)
		fs.buf.WriteI32(int32(stride))
		fs.buf.WriteOp(bytecode.MulI32)
		if i > 0 {
			fs.buf.WriteOp(bytecode.AddI32)
		}
		current = elem
	}
	return current, nil
}
