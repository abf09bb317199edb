package ppc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCRFieldAccess(t *testing.T) {
	var r Registers
	r.SetCRField(0, 0xB)
	require.Equal(t, uint32(0xB), r.CRField(0))
	r.SetCRField(7, 0x4)
	require.Equal(t, uint32(0x4), r.CRField(7))
	require.Equal(t, uint32(0xB), r.CRField(0), "setting field 7 must not disturb field 0")
}

func TestCRBitAccess(t *testing.T) {
	var r Registers
	r.SetCRBit(2, true) // CR0 EQ
	require.True(t, r.CRBit(2))
	require.Equal(t, uint32(0x2), r.CRField(0))
	r.SetCRBit(2, false)
	require.False(t, r.CRBit(2))
	require.Equal(t, uint32(0), r.CRField(0))
}

func TestSetCR0(t *testing.T) {
	var r Registers
	r.SetCR0(-5)
	require.Equal(t, uint32(0x8), r.CRField(0))

	r.SetCR0(5)
	require.Equal(t, uint32(0x4), r.CRField(0))

	r.SetCR0(0)
	require.Equal(t, uint32(0x2), r.CRField(0))

	r.SetXERSO(true)
	r.SetCR0(0)
	require.Equal(t, uint32(0x3), r.CRField(0), "SO must be ORed into the low bit")
}

func TestSetCRFromCompare(t *testing.T) {
	var r Registers
	r.SetCRFromCompare(1, true, false, false)
	require.Equal(t, uint32(0x8), r.CRField(1))
	r.SetCRFromCompare(1, false, false, true)
	require.Equal(t, uint32(0x2), r.CRField(1))
}

func TestXEROverflowIsSticky(t *testing.T) {
	var r Registers
	require.False(t, r.XERSO())
	r.SetXEROV(true)
	require.True(t, r.XEROV())
	require.True(t, r.XERSO())

	r.SetXEROV(false)
	require.False(t, r.XEROV())
	require.True(t, r.XERSO(), "SO stays set until explicitly cleared")
}

func TestXERCarry(t *testing.T) {
	var r Registers
	r.SetXERCA(true)
	require.True(t, r.XERCA())
	r.SetXERCA(false)
	require.False(t, r.XERCA())
}

func TestRegistersSnapshotRoundTrip(t *testing.T) {
	var r Registers
	r.GPR[3] = 0xDEADBEEF
	r.FPR[1] = 3.5
	r.CR = 0x12345678
	r.LR = 0x8000100
	r.PC = 0x8000000

	snap := r.Export()

	var r2 Registers
	r2.Import(snap)
	require.Equal(t, r, r2)
}
