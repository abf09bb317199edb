package ppc

import (
	"fmt"

	"github.com/fuzziqersoftware/resource-dasm-sub002/memory"
)

// StepOutcome tells the interpreter's fetch/decode/execute loop whether to
// keep running. It replaces the exception-based termination the original
// emulator used: hooks and syscall handlers return a StepOutcome instead of
// throwing to unwind the call stack.
type StepOutcome int

const (
	// Continue asks Execute to fetch and run the next instruction.
	Continue StepOutcome = iota
	// Halt asks Execute to return immediately, leaving PC at the
	// instruction that produced Halt (not advanced past it).
	Halt
)

// SyscallHandler is invoked on every sc instruction. It receives the live
// Interpreter so it can read/write registers and memory, and returns the
// StepOutcome that decides whether execution continues.
type SyscallHandler func(it *Interpreter) (StepOutcome, error)

// DebugHook is invoked before every instruction is executed, receiving the
// word about to run. Returning Halt stops execution before the instruction
// takes effect, which is how a single-step debugger or breakpoint list is
// implemented on top of this interpreter.
type DebugHook func(it *Interpreter, pc uint32, word uint32) (StepOutcome, error)

// InterruptManager is polled once per loop iteration before fetch, letting
// a host environment deliver an asynchronous interrupt (e.g. a BMS driver
// tick) between instructions.
type InterruptManager func(it *Interpreter) (StepOutcome, error)

// Interpreter executes PowerPC 603/750 user-mode code against a
// memory.Context. It holds the only live mutable borrow of that Context;
// callers must not touch the Context directly while Execute is running.
type Interpreter struct {
	Regs Registers
	Mem  *memory.Context

	syscall  SyscallHandler
	debug    DebugHook
	interupt InterruptManager

	instructionsExecuted uint64

	// branched is set by SetPC to tell Step that the instruction just
	// executed redirected control flow itself, even if the new PC happens
	// to equal the instruction's own address (a "b ." self-loop). Step
	// clears it before every Exec call and consults it afterward instead
	// of comparing PC against its pre-exec value.
	branched bool
}

// SetPC redirects control flow to target. Every branch-family Exec
// handler (b, bc, bclr, bcctr) calls this instead of assigning it.Regs.PC
// directly, so Step can tell a taken branch apart from a fall-through even
// when the branch target is the instruction's own address.
func (it *Interpreter) SetPC(target uint32) {
	it.Regs.PC = target
	it.branched = true
}

// NewInterpreter creates an interpreter bound to mem, with PC initialized
// to the memory context's base address.
func NewInterpreter(mem *memory.Context) *Interpreter {
	it := &Interpreter{Mem: mem}
	it.Regs.PC = mem.Base()
	return it
}

// SetSyscallHandler installs the handler invoked on sc.
func (it *Interpreter) SetSyscallHandler(h SyscallHandler) {
	it.syscall = h
}

// SetDebugHook installs the handler invoked before every instruction.
func (it *Interpreter) SetDebugHook(h DebugHook) {
	it.debug = h
}

// SetInterruptManager installs the handler polled once per loop iteration.
func (it *Interpreter) SetInterruptManager(h InterruptManager) {
	it.interupt = h
}

// InstructionsExecuted returns the number of instructions the interpreter
// has successfully executed since construction (or the last ImportState).
func (it *Interpreter) InstructionsExecuted() uint64 {
	return it.instructionsExecuted
}

// Step fetches, decodes and executes exactly one instruction at the
// current PC. On Continue it advances PC by 4 unless the executed
// instruction itself altered PC (a branch); on Halt or error, PC is left
// pointing at the instruction that produced the outcome.
func (it *Interpreter) Step() (StepOutcome, error) {
	if it.interupt != nil {
		outcome, err := it.interupt(it)
		if err != nil || outcome == Halt {
			return outcome, err
		}
	}

	pc := it.Regs.PC
	word, err := it.Mem.Fetch(pc)
	if err != nil {
		return Halt, err
	}

	if it.debug != nil {
		outcome, err := it.debug(it, pc, word)
		if err != nil || outcome == Halt {
			return outcome, err
		}
	}

	entry := Decode(word)
	if entry == nil {
		return Halt, &InvalidError{PC: pc, Word: word}
	}
	if entry.Exec == nil {
		return Halt, &UnimplementedError{PC: pc, Word: word, Disassembly: disassembleOne(word, pc, nil, nil)}
	}

	nextPC := pc + 4
	it.branched = false
	outcome, err := entry.Exec(it, word)
	if err != nil {
		return Halt, err
	}
	it.instructionsExecuted++
	if !it.branched && outcome != Halt {
		it.Regs.PC = nextPC
	}
	return outcome, nil
}

// Execute runs instructions until a hook or instruction returns Halt, or a
// fault occurs. It returns the fault as an error; a clean Halt (e.g. the
// syscall handler asking to stop) returns nil.
func (it *Interpreter) Execute() error {
	for {
		outcome, err := it.Step()
		if err != nil {
			return err
		}
		if outcome == Halt {
			return nil
		}
	}
}

// InterpreterSnapshot captures everything needed to resume execution
// later: the register file and the instruction counter. Memory contents
// are not included; callers that need full state snapshots own the
// memory.Context lifetime themselves.
type InterpreterSnapshot struct {
	Registers            Snapshot
	InstructionsExecuted uint64
}

// ExportState captures the interpreter's register file and counters.
func (it *Interpreter) ExportState() InterpreterSnapshot {
	return InterpreterSnapshot{
		Registers:            it.Regs.Export(),
		InstructionsExecuted: it.instructionsExecuted,
	}
}

// ImportState restores a previously exported snapshot.
func (it *Interpreter) ImportState(s InterpreterSnapshot) {
	it.Regs.Import(s.Registers)
	it.instructionsExecuted = s.InstructionsExecuted
}

// DisassembleAt renders the single instruction at pc without advancing or
// mutating interpreter state, using the live memory context as the byte
// source. It formats the one word the same way the package-level
// Disassemble formats each instruction text, without labels or imports.
func (it *Interpreter) DisassembleAt(pc uint32) (string, error) {
	word, err := it.Mem.ReadUint32(pc)
	if err != nil {
		return "", err
	}
	return disassembleOne(word, pc, nil, nil), nil
}

func fault(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("ppc: %w", err)
}
