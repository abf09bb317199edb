package ppc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExecSubficCarryReflectsBorrow(t *testing.T) {
	// subfic r3, r4, 5 with GPR[4]=16: 5-16 borrows, so CA must clear.
	it := newProgram(t, 0x9000, "addi r4, r0, 16\nsubfic r3, r4, 5\n")
	for i := 0; i < 2; i++ {
		_, err := it.Step()
		require.NoError(t, err)
	}
	require.Equal(t, uint32(0xFFFFFFF5), it.Regs.GPR[3], "5 - 16 = -11")
	require.False(t, it.Regs.XERCA(), "5 < 16 borrows, CA must be clear")
}

func TestExecSubficCarrySetsOnNoBorrow(t *testing.T) {
	// subfic r3, r4, 16 with GPR[4]=5: 16-5 does not borrow, CA must set.
	it := newProgram(t, 0x9100, "addi r4, r0, 5\nsubfic r3, r4, 16\n")
	for i := 0; i < 2; i++ {
		_, err := it.Step()
		require.NoError(t, err)
	}
	require.Equal(t, uint32(11), it.Regs.GPR[3])
	require.True(t, it.Regs.XERCA(), "16 >= 5, no borrow, CA must be set")
}

func TestExecAddcSetsCarryOnUnsignedOverflow(t *testing.T) {
	it := newProgram(t, 0x9200, "addi r3, r0, -1\naddi r4, r0, 1\naddc r5, r3, r4\n")
	for i := 0; i < 3; i++ {
		_, err := it.Step()
		require.NoError(t, err)
	}
	require.Equal(t, uint32(0), it.Regs.GPR[5])
	require.True(t, it.Regs.XERCA(), "0xFFFFFFFF + 1 wraps, CA must be set")
}

func TestExecAddcClearsCarryWithoutUnsignedOverflow(t *testing.T) {
	it := newProgram(t, 0x9300, "addi r3, r0, 2\naddi r4, r0, 3\naddc r5, r3, r4\n")
	for i := 0; i < 3; i++ {
		_, err := it.Step()
		require.NoError(t, err)
	}
	require.Equal(t, uint32(5), it.Regs.GPR[5])
	require.False(t, it.Regs.XERCA())
}

func TestExecSubfcCarryReflectsNoBorrow(t *testing.T) {
	// subfc computes rB - rA; rA=5, rB=3: 3-5 borrows, CA clear.
	it := newProgram(t, 0x9400, "addi r3, r0, 5\naddi r4, r0, 3\nsubfc r5, r3, r4\n")
	for i := 0; i < 3; i++ {
		_, err := it.Step()
		require.NoError(t, err)
	}
	require.False(t, it.Regs.XERCA(), "3 - 5 borrows, CA must be clear")

	it2 := newProgram(t, 0x9500, "addi r3, r0, 3\naddi r4, r0, 5\nsubfc r5, r3, r4\n")
	for i := 0; i < 3; i++ {
		_, err := it2.Step()
		require.NoError(t, err)
	}
	require.True(t, it2.Regs.XERCA(), "5 - 3 does not borrow, CA must be set")
}

func TestExecAddeAddsCarryInAndSetsCarryOut(t *testing.T) {
	// Prime CA via a carrying addc, then adde should fold in the +1.
	it := newProgram(t, 0x9600, "addi r3, r0, -1\naddi r4, r0, 1\naddc r5, r3, r4\naddi r6, r0, 10\naddi r7, r0, 20\nadde r8, r6, r7\n")
	for i := 0; i < 6; i++ {
		_, err := it.Step()
		require.NoError(t, err)
	}
	require.Equal(t, uint32(31), it.Regs.GPR[8], "10 + 20 + carry-in(1) = 31")
}

func TestExecSubfeBorrowsWhenCarryClear(t *testing.T) {
	// subfe with CA clear behaves like subf with an extra -1 (borrow in).
	it := newProgram(t, 0x9700, "addi r3, r0, 1\naddi r4, r0, 1\nsubfc r5, r3, r4\n")
	for i := 0; i < 3; i++ {
		_, err := it.Step()
		require.NoError(t, err)
	}
	require.True(t, it.Regs.XERCA(), "1 - 1 does not borrow")

	it2 := newProgram(t, 0x9800, "addi r3, r0, 2\naddi r4, r0, 1\nsubfc r5, r3, r4\naddi r6, r0, 10\naddi r7, r0, 20\nsubfe r8, r6, r7\n")
	for i := 0; i < 5; i++ {
		_, err := it2.Step()
		require.NoError(t, err)
	}
	require.False(t, it2.Regs.XERCA(), "1 - 2 borrows, so CA is clear going into subfe")
	_, err := it2.Step()
	require.NoError(t, err)
	require.Equal(t, uint32(20-10-1), it2.Regs.GPR[8], "subfe subtracts 1 extra when carry-in is clear")
}

func TestExecAddoSetsOverflowOnSignedOverflow(t *testing.T) {
	// 0x7FFFFFFF + 1 overflows a signed 32-bit add.
	it := newProgram(t, 0x9900, "lis r3, 0x7FFF\nori r3, r3, 0xFFFF\naddi r4, r0, 1\naddo r5, r3, r4\n")
	for i := 0; i < 4; i++ {
		_, err := it.Step()
		require.NoError(t, err)
	}
	require.Equal(t, uint32(0x80000000), it.Regs.GPR[5])
	require.True(t, it.Regs.XEROV(), "0x7FFFFFFF + 1 crosses the signed boundary, OV must be set")
}

func TestExecAddoClearsOverflowWithinSignedRange(t *testing.T) {
	it := newProgram(t, 0x9A00, "addi r3, r0, 100\naddi r4, r0, 200\naddo r5, r3, r4\n")
	for i := 0; i < 3; i++ {
		_, err := it.Step()
		require.NoError(t, err)
	}
	require.Equal(t, uint32(300), it.Regs.GPR[5])
	require.False(t, it.Regs.XEROV())
}

func TestExecSubfoSetsOverflowOnSignedOverflow(t *testing.T) {
	// subfo computes rB - rA; INT_MIN - 1 crosses the negative boundary.
	it := newProgram(t, 0x9B00, "lis r3, 0x8000\naddi r4, r0, 1\nsubfo r5, r4, r3\n")
	for i := 0; i < 3; i++ {
		_, err := it.Step()
		require.NoError(t, err)
	}
	require.Equal(t, uint32(0x7FFFFFFF), it.Regs.GPR[5])
	require.True(t, it.Regs.XEROV(), "INT_MIN - 1 crosses the signed boundary, OV must be set")
}

func TestExecSubfoClearsOverflowWithinSignedRange(t *testing.T) {
	it := newProgram(t, 0x9C00, "addi r3, r0, 1\naddi r4, r0, 100\nsubfo r5, r3, r4\n")
	for i := 0; i < 3; i++ {
		_, err := it.Step()
		require.NoError(t, err)
	}
	require.Equal(t, uint32(99), it.Regs.GPR[5])
	require.False(t, it.Regs.XEROV())
}
