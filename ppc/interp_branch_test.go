package ppc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fuzziqersoftware/resource-dasm-sub002/memory"
)

func TestInterpreterBcSkipsWhenConditionFalse(t *testing.T) {
	// BO=4 (0b00100, branch if CR bit clear, ignore CTR), BI=2 (EQ of cr0).
	it := newProgram(t, 0xA000, "cmpi cr0, r3, 5\nbc 4, 2, target\naddi r5, r0, 111\ntarget:\naddi r6, r0, 222\n")
	for i := 0; i < 3; i++ {
		_, err := it.Step()
		require.NoError(t, err)
	}
	require.Equal(t, uint32(0), it.Regs.GPR[5], "r3 (0) != 5 so EQ is false and branch-if-clear must be taken, skipping addi r5")
	require.Equal(t, uint32(222), it.Regs.GPR[6], "the third step runs the instruction at target")
}

func TestInterpreterBclrReturnsToLinkRegister(t *testing.T) {
	it := newProgram(t, 0xA100, "mtlr r3\nblr\naddi r5, r0, 999\n")
	it.Regs.GPR[3] = 0xA108
	_, err := it.Step()
	require.NoError(t, err)
	_, err = it.Step()
	require.NoError(t, err)
	require.Equal(t, uint32(0xA108), it.Regs.PC)
}

func TestInterpreterBcctrJumpsToCountRegister(t *testing.T) {
	it := newProgram(t, 0xA200, "mtctr r3\nbctr\naddi r5, r0, 999\n")
	it.Regs.GPR[3] = 0xA208
	for i := 0; i < 2; i++ {
		_, err := it.Step()
		require.NoError(t, err)
	}
	require.Equal(t, uint32(0xA208), it.Regs.PC)
}

func TestInterpreterBcDecrementsCTRAndBranchesWhileNonZero(t *testing.T) {
	// BO=16 (0b10000: ignore CR, branch if CTR != 0 after decrement).
	it := newProgram(t, 0xA300, "mtctr r3\nbc 16, 0, back\nback:\n")
	it.Regs.GPR[3] = 2
	_, err := it.Step() // mtctr
	require.NoError(t, err)
	_, err = it.Step() // bc: CTR 2->1, not zero, taken (branches to self/back which is this same addr+4)
	require.NoError(t, err)
	require.Equal(t, uint32(1), it.Regs.CTR)
}

func TestInterpreterMcrfCopiesConditionField(t *testing.T) {
	it := newProgram(t, 0xA400, "mcrf cr1, cr0\n")
	it.Regs.CR = 0xF0000000
	_, err := it.Step()
	require.NoError(t, err)
	require.Equal(t, uint32(0xF), it.Regs.CRField(1))
}

func TestInterpreterCrandCombinesBits(t *testing.T) {
	it := newProgram(t, 0xA500, "crand 10, 0, 1\n")
	it.Regs.SetCRBit(0, true)
	it.Regs.SetCRBit(1, true)
	_, err := it.Step()
	require.NoError(t, err)
	require.True(t, it.Regs.CRBit(10))
}

func TestBranchTakenDecrementsCTROnlyWhenBOAsksForIt(t *testing.T) {
	it := NewInterpreter(memory.New(0, 4))
	it.Regs.CTR = 5
	branchTaken(it, 20, 0) // BO=20 (0b10100): CTR test disabled
	require.Equal(t, uint32(5), it.Regs.CTR, "BO bit 2 set means CTR must not be touched")

	branchTaken(it, 0, 0) // BO=0: CTR test enabled
	require.Equal(t, uint32(4), it.Regs.CTR)
}
