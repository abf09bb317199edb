package ppc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInterpreterMtlrMflrRoundTrip(t *testing.T) {
	it := newProgram(t, 0x9000, "addi r3, r0, 0x1234\nmtlr r3\naddi r4, r0, 0\nmflr r4\n")
	for i := 0; i < 4; i++ {
		_, err := it.Step()
		require.NoError(t, err)
	}
	require.Equal(t, uint32(0x1234), it.Regs.LR)
	require.Equal(t, uint32(0x1234), it.Regs.GPR[4])
}

func TestInterpreterMtctrMfctrRoundTrip(t *testing.T) {
	it := newProgram(t, 0x9100, "addi r3, r0, 99\nmtctr r3\nmfctr r4\n")
	for i := 0; i < 3; i++ {
		_, err := it.Step()
		require.NoError(t, err)
	}
	require.Equal(t, uint32(99), it.Regs.CTR)
	require.Equal(t, uint32(99), it.Regs.GPR[4])
}

func TestInterpreterMtxerMfxerRoundTrip(t *testing.T) {
	it := newProgram(t, 0x9200, "lis r3, 0x2000\nmtxer r3\nmfxer r4\n")
	for i := 0; i < 3; i++ {
		_, err := it.Step()
		require.NoError(t, err)
	}
	require.Equal(t, uint32(0x20000000), it.Regs.XER)
	require.Equal(t, uint32(0x20000000), it.Regs.GPR[4])
}

func TestInterpreterMfcrReadsConditionRegister(t *testing.T) {
	it := newProgram(t, 0x9300, "addi r3, r0, -1\nmfcr r4\n")
	_, err := it.Step()
	require.NoError(t, err)
	it.Regs.CR = 0xF0000000
	_, err = it.Step()
	require.NoError(t, err)
	require.Equal(t, uint32(0xF0000000), it.Regs.GPR[4])
}

func TestInterpreterMtcrfWritesSelectedNibblesOnly(t *testing.T) {
	it := newProgram(t, 0x9400, "addi r3, r0, -1\nmtcrf 0x80, r3\n")
	it.Regs.CR = 0
	for i := 0; i < 2; i++ {
		_, err := it.Step()
		require.NoError(t, err)
	}
	require.Equal(t, uint32(0xF0000000), it.Regs.CR, "only the top nibble (mask bit 7) must be written")
}

func TestInterpreterMftbReadsLowTimebase(t *testing.T) {
	it := newProgram(t, 0x9500, "mftb r3, 268\n")
	it.Regs.TBR = 0x1122334455667788
	_, err := it.Step()
	require.NoError(t, err)
	require.Equal(t, uint32(0x55667788), it.Regs.GPR[3])
}
