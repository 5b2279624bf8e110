package bytecode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nodelang.dev/nodec/pkg/bytecode"
)

func TestBufferEncodesBigEndian(t *testing.T) {
	buf := &bytecode.Buffer{}
	buf.WriteU32(0x01020304)
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, buf.Bytes())
}

func TestPatchU32Rewrites(t *testing.T) {
	buf := &bytecode.Buffer{}
	buf.WriteOp(bytecode.Jmp)
	offset := buf.Len()
	buf.WriteU32(0)
	buf.PatchU32(offset, 0xAABBCCDD)
	assert.Equal(t, []byte{0xAA, 0xBB, 0xCC, 0xDD}, buf.Bytes()[offset:])
}

func TestOpFamilySelection(t *testing.T) {
	assert.Equal(t, bytecode.AllocI32, bytecode.AllocOpFor("int"))
	assert.Equal(t, bytecode.AllocF32, bytecode.AllocOpFor("float"))
	assert.Equal(t, bytecode.AllocBool, bytecode.AllocOpFor("bool"))
	assert.Equal(t, bytecode.AllocChar, bytecode.AllocOpFor("char"))

	assert.Equal(t, bytecode.AddF32, bytecode.AddOpFor("float"))
	assert.Equal(t, bytecode.AddChar, bytecode.AddOpFor("char"))
	assert.Equal(t, bytecode.AddI32, bytecode.AddOpFor("int"))
}

func TestCmpOpFor(t *testing.T) {
	assert.Equal(t, bytecode.CmpI32Lt, bytecode.CmpOpFor("int", bytecode.CmpLt))
	assert.Equal(t, bytecode.CmpF32Geq, bytecode.CmpOpFor("float", bytecode.CmpGeq))
	assert.Equal(t, bytecode.CmpBoolEq, bytecode.CmpOpFor("bool", bytecode.CmpEq))
	assert.Equal(t, bytecode.CmpBoolNeq, bytecode.CmpOpFor("bool", bytecode.CmpNeq))
}
