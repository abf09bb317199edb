package ppc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fuzziqersoftware/resource-dasm-sub002/memory"
)

func newRoomyProgram(t *testing.T, base uint32, size int, src string) *Interpreter {
	t.Helper()
	result, err := Assemble(src, nil, base)
	require.NoError(t, err)
	mem := memory.New(base, size)
	require.NoError(t, mem.WriteBytes(base, result.Code))
	return NewInterpreter(mem)
}

func TestInterpreterStmwLmwRoundTrip(t *testing.T) {
	it := newRoomyProgram(t, 0x8000, 0x200,
		"ori r1, r0, 0x8080\naddi r31, r0, 1234\nstmw r31, 0(r1)\naddi r31, r0, 0\nlmw r31, 0(r1)\n")
	for i := 0; i < 5; i++ {
		_, err := it.Step()
		require.NoError(t, err)
	}
	require.Equal(t, uint32(1234), it.Regs.GPR[31])
}

func TestInterpreterLwarxStwcxAlwaysSucceeds(t *testing.T) {
	it := newRoomyProgram(t, 0x8100, 0x200,
		"ori r1, r0, 0x8180\naddi r3, r0, 77\nstwcx. r3, r0, r1\nlwarx r4, r0, r1\n")
	for i := 0; i < 4; i++ {
		_, err := it.Step()
		require.NoError(t, err)
	}
	require.Equal(t, uint32(77), it.Regs.GPR[4])
	require.True(t, it.Regs.CRBit(2), "stwcx. must report success in CR0 EQ")
}

func TestInterpreterDcbzZeroesCacheLine(t *testing.T) {
	it := newRoomyProgram(t, 0x8200, 0x200,
		"ori r1, r0, 0x8280\naddi r3, r0, -1\nstw r3, 0(r1)\ndcbz r0, r1\n")
	for i := 0; i < 4; i++ {
		_, err := it.Step()
		require.NoError(t, err)
	}
	v, err := it.Mem.ReadUint32(0x8280)
	require.NoError(t, err)
	require.Equal(t, uint32(0), v)
}

func TestInterpreterLoadStoreByte(t *testing.T) {
	it := newRoomyProgram(t, 0x8300, 0x200,
		"ori r1, r0, 0x8380\naddi r3, r0, 0xAB\nstb r3, 0(r1)\nlbz r4, 0(r1)\n")
	for i := 0; i < 4; i++ {
		_, err := it.Step()
		require.NoError(t, err)
	}
	require.Equal(t, uint32(0xAB), it.Regs.GPR[4])
}

func TestInterpreterLhaSignExtends(t *testing.T) {
	it := newRoomyProgram(t, 0x8400, 0x200,
		"ori r1, r0, 0x8480\naddi r3, r0, -1\nsth r3, 0(r1)\nlha r4, 0(r1)\n")
	for i := 0; i < 4; i++ {
		_, err := it.Step()
		require.NoError(t, err)
	}
	require.Equal(t, int32(-1), int32(it.Regs.GPR[4]))
}
