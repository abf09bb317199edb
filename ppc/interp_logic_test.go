package ppc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInterpreterRlwinmExtractsBitField(t *testing.T) {
	it := newProgram(t, 0x7000, "addi r3, r0, 0xFF\nrlwinm r4, r3, 0, 24, 31\n")
	_, err := it.Step()
	require.NoError(t, err)
	_, err = it.Step()
	require.NoError(t, err)
	require.Equal(t, uint32(0xFF), it.Regs.GPR[4])
}

func TestInterpreterSlwiShiftsLeft(t *testing.T) {
	it := newProgram(t, 0x7100, "addi r3, r0, 1\nslwi r4, r3, 4\n")
	for i := 0; i < 2; i++ {
		_, err := it.Step()
		require.NoError(t, err)
	}
	require.Equal(t, uint32(16), it.Regs.GPR[4])
}

func TestInterpreterSrawiPreservesSign(t *testing.T) {
	it := newProgram(t, 0x7200, "addi r3, r0, -8\nsrawi r4, r3, 2\n")
	for i := 0; i < 2; i++ {
		_, err := it.Step()
		require.NoError(t, err)
	}
	require.Equal(t, int32(-2), int32(it.Regs.GPR[4]))
}

func TestInterpreterCntlzwCountsLeadingZeros(t *testing.T) {
	it := newProgram(t, 0x7300, "addi r3, r0, 1\ncntlzw r4, r3\n")
	for i := 0; i < 2; i++ {
		_, err := it.Step()
		require.NoError(t, err)
	}
	require.Equal(t, uint32(31), it.Regs.GPR[4])
}

func TestInterpreterCntlzwOfZeroIs32(t *testing.T) {
	require.Equal(t, uint32(32), execCntlzw(0))
}

func TestInterpreterCmpSetsConditionRegister(t *testing.T) {
	it := newProgram(t, 0x7400, "addi r3, r0, 5\naddi r4, r0, 10\ncmp r3, r4\n")
	for i := 0; i < 3; i++ {
		_, err := it.Step()
		require.NoError(t, err)
	}
	require.True(t, it.Regs.CRBit(0), "LT bit must be set since 5 < 10")
}

func TestInterpreterAndiRecSetsCR0(t *testing.T) {
	it := newProgram(t, 0x7500, "addi r3, r0, 0\nandi. r4, r3, 0xFF\n")
	for i := 0; i < 2; i++ {
		_, err := it.Step()
		require.NoError(t, err)
	}
	require.True(t, it.Regs.CRBit(2), "EQ bit must be set since result is zero")
}

func TestMaskRangeWraps(t *testing.T) {
	require.Equal(t, uint32(0xFFFFFFFF), maskRange(0, 31))
	require.Equal(t, uint32(0xF0000000), maskRange(0, 3))
	require.Equal(t, uint32(0xF000000F), maskRange(28, 3), "mb > me wraps around bit 31/0")
}

func TestRotl32(t *testing.T) {
	require.Equal(t, uint32(0x00000001), rotl32(0x80000000, 1))
	require.Equal(t, uint32(0x80000000), rotl32(0x00000001, 31))
}
