// Package bytecode defines the stack-based instruction set of spec.md
// §4.4: opcode constants and big-endian encoding helpers for the
// per-node binary files pkg/codegen emits. Mirrors the layered,
// table-driven opcode style of
// _examples/its-hmny-nand2tetris/code/pkg/hack/codegen.go, adapted from
// a Hack-assembly mnemonic table to this language's stack machine.
package bytecode

import (
	"encoding/binary"
	"math"
)

type Op byte

const (
	PushI32  Op = 0x10
	PushF32  Op = 0x11
	PushBool Op = 0x14
	PushChar Op = 0x15

	AllocI32  Op = 0x20
	AllocF32  Op = 0x21
	LoadI32   Op = 0x22
	LoadF32   Op = 0x23
	StoreI32  Op = 0x24
	StoreF32  Op = 0x25
	AllocBool Op = 0x28
	LoadBool  Op = 0x29
	StoreBool Op = 0x2A
	AllocChar Op = 0x2C
	LoadChar  Op = 0x2D
	StoreChar Op = 0x2E

	AddI32  Op = 0x30
	AddF32  Op = 0x31
	SubI32  Op = 0x32
	SubF32  Op = 0x33
	MulI32  Op = 0x34
	MulF32  Op = 0x35
	DivI32  Op = 0x36
	DivF32  Op = 0x37
	AddChar Op = 0x38
	SubChar Op = 0x39

	And Op = 0x58
	Or  Op = 0x59

	JmpIfFalse Op = 0x51
	CmpI32Eq   Op = 0x52
	CmpI32Neq  Op = 0x53
	CmpI32Lt   Op = 0x54
	CmpI32Leq  Op = 0x55
	CmpI32Gt   Op = 0x56
	CmpI32Geq  Op = 0x57
	Jmp        Op = 0x5A
	RetVal     Op = 0x5B
	CmpF32Eq   Op = 0x5C
	CmpF32Neq  Op = 0x5D
	CmpF32Lt   Op = 0x5E
	CmpF32Leq  Op = 0x5F
	CmpF32Gt   Op = 0x60
	CmpF32Geq  Op = 0x61
	CmpBoolEq  Op = 0x62
	CmpBoolNeq Op = 0x63
	RetVoid    Op = 0x64

	AllocArr   Op = 0x80
	BindArr    Op = 0x81
	LoadArrI32 Op = 0x82
	LoadArrF32 Op = 0x83
	LoadArrBool Op = 0x84
	LoadArrChar Op = 0x85
	StoreArrI32 Op = 0x87
	StoreArrF32 Op = 0x88
	StoreArrBool Op = 0x89
	StoreArrChar Op = 0x8A

	PrintInt   Op = 0x90
	PrintFloat Op = 0x91
	PrintBool  Op = 0x92
	PrintChar  Op = 0x93
)

// CmpKind selects one of the six comparison operators a typed cmp
// family (i32/f32/bool) exposes; bool only implements Eq/Neq.
type CmpKind int

const (
	CmpEq CmpKind = iota
	CmpNeq
	CmpLt
	CmpLeq
	CmpGt
	CmpGeq
)

// Buffer is an append-only byte sink with big-endian encoding helpers
// and offset-addressed back-patching, used by pkg/codegen to build one
// node's instruction stream.
type Buffer struct {
	bytes []byte
}

func (b *Buffer) Len() uint32 { return uint32(len(b.bytes)) }

func (b *Buffer) Bytes() []byte { return b.bytes }

func (b *Buffer) WriteOp(op Op) {
	b.bytes = append(b.bytes, byte(op))
}

func (b *Buffer) WriteU8(v uint8) {
	b.bytes = append(b.bytes, v)
}

func (b *Buffer) WriteU32(v uint32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	b.bytes = append(b.bytes, buf[:]...)
}

func (b *Buffer) WriteI32(v int32) {
	b.WriteU32(uint32(v))
}

func (b *Buffer) WriteF32(v float32) {
	b.WriteU32(math.Float32bits(v))
}

func (b *Buffer) WriteBool(v bool) {
	if v {
		b.WriteU8(1)
	} else {
		b.WriteU8(0)
	}
}

// PatchU32 overwrites the 4 bytes at offset with v, used for forward-
// reference jump targets and call-site fixups.
func (b *Buffer) PatchU32(offset uint32, v uint32) {
	binary.BigEndian.PutUint32(b.bytes[offset:offset+4], v)
}

// AllocOpFor/LoadOpFor/StoreOpFor/AddOpFor/SubOpFor/MulOpFor/DivOpFor
// map a canonical primitive type string to the opcode family member
// for that type. t must be one of pkg/types' primitive constants.
func AllocOpFor(t string) Op {
	switch t {
	case "int":
		return AllocI32
	case "float":
		return AllocF32
	case "bool":
		return AllocBool
	case "char":
		return AllocChar
	default:
		return AllocI32
	}
}

func LoadOpFor(t string) Op {
	switch t {
	case "int":
		return LoadI32
	case "float":
		return LoadF32
	case "bool":
		return LoadBool
	case "char":
		return LoadChar
	default:
		return LoadI32
	}
}

func StoreOpFor(t string) Op {
	switch t {
	case "int":
		return StoreI32
	case "float":
		return StoreF32
	case "bool":
		return StoreBool
	case "char":
		return StoreChar
	default:
		return StoreI32
	}
}

func LoadArrOpFor(t string) Op {
	switch t {
	case "int":
		return LoadArrI32
	case "float":
		return LoadArrF32
	case "bool":
		return LoadArrBool
	case "char":
		return LoadArrChar
	default:
		return LoadArrI32
	}
}

func StoreArrOpFor(t string) Op {
	switch t {
	case "int":
		return StoreArrI32
	case "float":
		return StoreArrF32
	case "bool":
		return StoreArrBool
	case "char":
		return StoreArrChar
	default:
		return StoreArrI32
	}
}

func AddOpFor(t string) Op {
	if t == "float" {
		return AddF32
	}
	if t == "char" {
		return AddChar
	}
	return AddI32
}

func SubOpFor(t string) Op {
	if t == "float" {
		return SubF32
	}
	if t == "char" {
		return SubChar
	}
	return SubI32
}

func MulOpFor(t string) Op {
	if t == "float" {
		return MulF32
	}
	return MulI32
}

func DivOpFor(t string) Op {
	if t == "float" {
		return DivF32
	}
	return DivI32
}

// CmpOpFor resolves the comparison opcode for operand type t (int,
// float, or bool) and CmpKind. Callers never request Lt/Leq/Gt/Geq for
// bool operands (the type checker rejects ordered comparisons on bool).
func CmpOpFor(t string, kind CmpKind) Op {
	if t == "bool" {
		if kind == CmpNeq {
			return CmpBoolNeq
		}
		return CmpBoolEq
	}
	if t == "float" {
		return [...]Op{CmpF32Eq, CmpF32Neq, CmpF32Lt, CmpF32Leq, CmpF32Gt, CmpF32Geq}[kind]
	}
	return [...]Op{CmpI32Eq, CmpI32Neq, CmpI32Lt, CmpI32Leq, CmpI32Gt, CmpI32Geq}[kind]
}
