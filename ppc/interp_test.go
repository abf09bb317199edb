package ppc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fuzziqersoftware/resource-dasm-sub002/memory"
)

func newProgram(t *testing.T, base uint32, src string) *Interpreter {
	t.Helper()
	result, err := Assemble(src, nil, base)
	require.NoError(t, err)
	mem := memory.New(base, len(result.Code))
	require.NoError(t, mem.WriteBytes(base, result.Code))
	return NewInterpreter(mem)
}

func TestInterpreterArithmetic(t *testing.T) {
	it := newProgram(t, 0x1000, "addi r3, r0, 2\naddi r4, r0, 3\nadd r5, r3, r4\n")
	for i := 0; i < 3; i++ {
		outcome, err := it.Step()
		require.NoError(t, err)
		require.Equal(t, Continue, outcome)
	}
	require.Equal(t, uint32(5), it.Regs.GPR[5])
	require.Equal(t, uint32(0x1000+12), it.Regs.PC)
}

func TestInterpreterStoreAndLoad(t *testing.T) {
	it := newProgram(t, 0x2000, "addi r3, r0, 99\nstw r3, 0(r1)\nlwz r4, 0(r1)\n")
	it.Regs.GPR[1] = 0x2000 // scratch write target inside the mapped code region

	for i := 0; i < 3; i++ {
		_, err := it.Step()
		require.NoError(t, err)
	}
	require.Equal(t, uint32(99), it.Regs.GPR[4])
}

func TestInterpreterBranchAlwaysTaken(t *testing.T) {
	it := newProgram(t, 0x3000, "b target\naddi r3, r0, 111\ntarget:\naddi r4, r0, 222\n")
	outcome, err := it.Step()
	require.NoError(t, err)
	require.Equal(t, Continue, outcome)
	require.Equal(t, uint32(0x3000+8), it.Regs.PC, "branch must skip the addi at +4")

	_, err = it.Step()
	require.NoError(t, err)
	require.Equal(t, uint32(222), it.Regs.GPR[4])
	require.Equal(t, uint32(0), it.Regs.GPR[3], "the skipped instruction must not have run")
}

func TestInterpreterUnimplementedFloatTraps(t *testing.T) {
	// fadd has no assembler encoder (floating point is disassembly-only in
	// this interpreter), so its word is built by hand from the same
	// bitfield helpers the encoders use: op 63, short subopcode 21.
	op, _ := EncodeOp(63)
	sub, _ := EncodeShortSubopcode(21)
	rd, _ := EncodeReg1(1)
	ra, _ := EncodeReg2(2)
	rb, _ := EncodeReg3(3)
	word := op | rd | ra | rb | sub

	entry := Decode(word)
	require.NotNil(t, entry)
	require.Equal(t, "fadd", entry.Mnemonic)
	require.Nil(t, entry.Exec)

	mem := memory.New(0x4000, 4)
	require.NoError(t, mem.WriteUint32(0x4000, word))
	it := NewInterpreter(mem)

	outcome, err := it.Step()
	require.Equal(t, Halt, outcome)
	require.Error(t, err)
	var unimpl *UnimplementedError
	require.ErrorAs(t, err, &unimpl)
}

func TestInterpreterSyscallHandlerControlsHalt(t *testing.T) {
	it := newProgram(t, 0x5000, "addi r3, r0, 1\nsc\naddi r3, r0, 2\n")
	it.SetSyscallHandler(func(it *Interpreter) (StepOutcome, error) {
		return Halt, nil
	})
	err := it.Execute()
	require.NoError(t, err)
	require.Equal(t, uint32(1), it.Regs.GPR[3], "execution must stop at the syscall")
}

func TestInterpreterStateSnapshotRoundTrip(t *testing.T) {
	it := newProgram(t, 0x6000, "addi r3, r0, 7\n")
	_, err := it.Step()
	require.NoError(t, err)
	snap := it.ExportState()

	it2 := newProgram(t, 0x6000, "addi r3, r0, 7\n")
	it2.ImportState(snap)
	require.Equal(t, it.Regs.GPR[3], it2.Regs.GPR[3])
	require.Equal(t, it.InstructionsExecuted(), it2.InstructionsExecuted())
}
