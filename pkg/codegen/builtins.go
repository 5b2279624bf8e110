package codegen

import (
	"nodelang.dev/nodec/pkg/bytecode"
	"nodelang.dev/nodec/pkg/types"
)

// builtinOrder fixes the stub layout every emitted node file carries,
// per spec.md §6: "Compiler-injected built-ins... lower to fixed short
// stubs in every emitted file."
var builtinOrder = []string{"print_int", "print_float", "print_bool", "print_char", "println"}

var builtins = map[string]bool{
	"print_int": true, "print_float": true, "print_bool": true,
	"print_char": true, "println": true,
}

// builtinSignature reports the declared return type of a compiler
// built-in, treating every one of them as void and polymorphic over its
// single argument (spec.md §4.3 Pass 4: "exempt from overload
// matching").
func builtinSignature(name string) (string, bool) {
	if builtins[name] {
		return types.Void, true
	}
	return "", false
}

// emitBuiltinStubs appends the five fixed print stubs (four 2-byte
// print.X; ret.void stubs, then the 4-byte push.char 0x0A; print.char;
// ret.void stub for println) and
// records their entry offsets in the node's function-offset map so
// emitCall's fixups resolve exactly like any user-declared function.
func emitBuiltinStubs(buf *bytecode.Buffer, offsets map[string]uint32) {
	offsets["print_int"] = buf.Len()
	buf.WriteOp(bytecode.PrintInt)
	buf.WriteOp(bytecode.RetVoid)

	offsets["print_float"] = buf.Len()
	buf.WriteOp(bytecode.PrintFloat)
	buf.WriteOp(bytecode.RetVoid)

	offsets["print_bool"] = buf.Len()
	buf.WriteOp(bytecode.PrintBool)
	buf.WriteOp(bytecode.RetVoid)

	offsets["print_char"] = buf.Len()
	buf.WriteOp(bytecode.PrintChar)
	buf.WriteOp(bytecode.RetVoid)

	offsets["println"] = buf.Len()
	buf.WriteOp(bytecode.PushChar)
	buf.WriteU8(0x0A)
	buf.WriteOp(bytecode.PrintChar)
	buf.WriteOp(bytecode.RetVoid)
}
