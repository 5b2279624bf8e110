package codegen

import (
	"nodelang.dev/nodec/pkg/ast"
	"nodelang.dev/nodec/pkg/bytecode"
	"nodelang.dev/nodec/pkg/symtab"
	"nodelang.dev/nodec/pkg/types"
)

// emitFunction writes a function's full preamble-plus-body: (a) an
// allocation instruction for every parameter and local variable it will
// ever use, addresses assigned by a monotonically increasing cursor
// starting at 0 (spec.md §4.4 "Address assignment"); (b) a binding
// instruction per parameter, moving caller-pushed argument values into
// their allocated slots; (c) the body itself.
func emitFunction(fs *funcState, fn *symtab.FunctionEntry) error {
	order, err := collectLocals(fn, fs.vars)
	if err != nil {
		return err
	}

	for _, name := range order {
		v := fs.vars[name]
		emitAlloc(fs.buf, v.Type, v.Addr)
	}
	for _, p := range fn.Params {
		v := fs.vars[p.Name]
		emitBind(fs.buf, v.Type, v.Addr)
	}

	if err := emitStmts(fs, fn.Body); err != nil {
		return err
	}

	if fn.Return == types.Void {
		fs.buf.WriteOp(bytecode.RetVoid)
	}
	return nil
}

// collectLocals walks a function's parameters then its body in
// declaration order, assigning each distinct name a byte address. Since
// spec.md Pass 3 already enforces no shadowing across the whole
// function, one flat name->slot map is safe: no two declarations in the
// same function ever share a name.
func collectLocals(fn *symtab.FunctionEntry, vars map[string]localVar) ([]string, error) {
	var order []string
	var cursor uint32

	assign := func(name, typ string) error {
		size, err := types.StorageSize(typ)
		if err != nil {
			return err
		}
		vars[name] = localVar{Type: typ, Addr: cursor}
		order = append(order, name)
		cursor += size
		return nil
	}

	for _, p := range fn.Params {
		if err := assign(p.Name, p.Type); err != nil {
			return nil, err
		}
	}

	var walk func(stmts []ast.Stmt) error
	walk = func(stmts []ast.Stmt) error {
		for _, stmt := range stmts {
			switch s := stmt.(type) {
			case ast.DeclareVar:
				if err := assign(s.Name, s.Type); err != nil {
					return err
				}
			case ast.DeclareConst:
				if err := assign(s.Name, s.Type); err != nil {
					return err
				}
			case ast.WhileLoop:
				if err := walk(s.Body); err != nil {
					return err
				}
			case ast.IfStmt:
				if err := walk(s.Then); err != nil {
					return err
				}
				if err := walk(s.Else); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if err := walk(fn.Body); err != nil {
		return nil, err
	}

	return order, nil
}

func emitAlloc(buf *bytecode.Buffer, t string, addr uint32) {
	if types.IsArray(t) {
		elem, n, _ := types.Decompose(t)
		stride, _ := types.StorageSize(elem)
		buf.WriteOp(bytecode.AllocArr)
		buf.WriteU32(addr)
		buf.WriteU8(uint8(stride))
		buf.WriteI32(int32(n))
		return
	}
	buf.WriteOp(bytecode.AllocOpFor(t))
	buf.WriteU32(addr)
}

// emitBind moves a caller-marshalled argument into its parameter slot.
// Scalars pop the value the call sequence pushed; arrays record the
// caller-side base address and element layout via bind.arr, per spec.md
// §9's note that parameter binding is an implementation choice.
func emitBind(buf *bytecode.Buffer, t string, addr uint32) {
	if types.IsArray(t) {
		elem, n, _ := types.Decompose(t)
		stride, _ := types.StorageSize(elem)
		buf.WriteOp(bytecode.BindArr)
		buf.WriteU32(addr)
		buf.WriteU8(uint8(stride))
		buf.WriteI32(int32(n))
		return
	}
	buf.WriteOp(bytecode.StoreOpFor(t))
	buf.WriteU32(addr)
}
