package bms

import "fmt"

// Opcode values recognized by Track.step. A byte below opNoteOff is a bare
// wait: the track sleeps for that many ticks before fetching its next
// instruction, the same "delta time as an opcode" encoding MIDI-derived
// sequence formats use.
const (
	opNoteOff   byte = 0x80
	opNoteOn    byte = 0x81
	opSetVolume byte = 0x82
	opSetPan    byte = 0x83
	opSetPitch  byte = 0x84
	opSetBank   byte = 0x85
	opJump      byte = 0x86
	opCall      byte = 0x87
	opReturn    byte = 0x88
	opSetTempo  byte = 0x89
	opFork      byte = 0x8A
	opSetReg    byte = 0x8B
	opAddReg    byte = 0x8C
	opLoopStart byte = 0x8D
	opLoopEnd   byte = 0x8E
	opEnd       byte = 0xFF
)

// Track is one voice of the register-machine sequence program: its own
// program counter, call stack, 256 general registers, a Channel of
// continuously-ramping mix parameters, and the set of currently sounding
// Voices it has triggered.
type Track struct {
	Program []byte
	PC      uint32

	callStack []uint32
	loopStack []loopFrame

	Regs [256]int16

	Channel *Channel
	Voices  map[uint8]*Voice

	TicksPerFrame uint32 // tempo, in audio frames per sequencer tick
	waitTicks     uint32

	done bool
	name string
}

type loopFrame struct {
	pc    uint32
	count int
}

// NewTrack creates a track ready to run program from address 0.
func NewTrack(name string, program []byte) *Track {
	return &Track{
		Program:       program,
		Channel:       NewChannel(),
		Voices:        map[uint8]*Voice{},
		TicksPerFrame: 1,
		name:          name,
	}
}

// Done reports whether the track has run off the end of its program or
// executed an explicit end opcode.
func (t *Track) Done() bool {
	return t.done
}

func (t *Track) fetch() (byte, error) {
	if int(t.PC) >= len(t.Program) {
		return 0, fmt.Errorf("bms: track %q ran off the end of its program at 0x%X", t.name, t.PC)
	}
	b := t.Program[t.PC]
	t.PC++
	return b, nil
}

func (t *Track) fetchU32() (uint32, error) {
	if int(t.PC)+4 > len(t.Program) {
		return 0, fmt.Errorf("bms: track %q truncated operand at 0x%X", t.name, t.PC)
	}
	v := uint32(t.Program[t.PC])<<24 | uint32(t.Program[t.PC+1])<<16 | uint32(t.Program[t.PC+2])<<8 | uint32(t.Program[t.PC+3])
	t.PC += 4
	return v, nil
}

// run executes opcodes until the track issues a wait (returning the
// number of ticks to sleep), ends, or faults.
func (vm *VM) runTrack(t *Track) (waitTicks uint32, err error) {
	for {
		op, err := t.fetch()
		if err != nil {
			return 0, err
		}

		if op < opNoteOff {
			return uint32(op), nil
		}

		switch op {
		case opNoteOff:
			note, err := t.fetch()
			if err != nil {
				return 0, err
			}
			if v, ok := t.Voices[note]; ok {
				v.Release(t.TicksPerFrame * 8)
			}
		case opNoteOn:
			note, err := t.fetch()
			if err != nil {
				return 0, err
			}
			velocity, err := t.fetch()
			if err != nil {
				return 0, err
			}
			sample := vm.lookupSample(t.Channel.Bank, t.Channel.Program)
			if sample != nil {
				t.Voices[note] = NewVoice(sample, note, int32(velocity), vm.OutputRate)
			}
		case opSetVolume:
			v, err := t.fetch()
			if err != nil {
				return 0, err
			}
			t.Channel.Volume.SetTarget(int32(v), 0)
		case opSetPan:
			v, err := t.fetch()
			if err != nil {
				return 0, err
			}
			t.Channel.Pan.SetTarget(int32(v), 0)
		case opSetPitch:
			v, err := t.fetch()
			if err != nil {
				return 0, err
			}
			t.Channel.Pitch.SetTarget(int32(int8(v)), 0)
		case opSetBank:
			bank, err := t.fetch()
			if err != nil {
				return 0, err
			}
			program, err := t.fetch()
			if err != nil {
				return 0, err
			}
			t.Channel.Bank, t.Channel.Program = bank, program
		case opJump:
			addr, err := t.fetchU32()
			if err != nil {
				return 0, err
			}
			t.PC = addr
		case opCall:
			addr, err := t.fetchU32()
			if err != nil {
				return 0, err
			}
			t.callStack = append(t.callStack, t.PC)
			t.PC = addr
		case opReturn:
			if len(t.callStack) == 0 {
				t.done = true
				return 0, nil
			}
			t.PC = t.callStack[len(t.callStack)-1]
			t.callStack = t.callStack[:len(t.callStack)-1]
		case opSetTempo:
			ticks, err := t.fetch()
			if err != nil {
				return 0, err
			}
			t.TicksPerFrame = uint32(ticks)
		case opFork:
			addr, err := t.fetchU32()
			if err != nil {
				return 0, err
			}
			child := NewTrack(fmt.Sprintf("%s/fork@%04x", t.name, addr), t.Program)
			child.PC = addr
			child.TicksPerFrame = t.TicksPerFrame
			vm.AddTrack(child)
		case opSetReg:
			idx, err := t.fetch()
			if err != nil {
				return 0, err
			}
			hi, err := t.fetch()
			if err != nil {
				return 0, err
			}
			lo, err := t.fetch()
			if err != nil {
				return 0, err
			}
			t.Regs[idx] = int16(uint16(hi)<<8 | uint16(lo))
		case opAddReg:
			idx, err := t.fetch()
			if err != nil {
				return 0, err
			}
			delta, err := t.fetch()
			if err != nil {
				return 0, err
			}
			t.Regs[idx] += int16(int8(delta))
		case opLoopStart:
			count, err := t.fetch()
			if err != nil {
				return 0, err
			}
			t.loopStack = append(t.loopStack, loopFrame{pc: t.PC, count: int(count)})
		case opLoopEnd:
			if len(t.loopStack) == 0 {
				break
			}
			top := &t.loopStack[len(t.loopStack)-1]
			top.count--
			if top.count > 0 {
				t.PC = top.pc
			} else {
				t.loopStack = t.loopStack[:len(t.loopStack)-1]
			}
		case opEnd:
			t.done = true
			return 0, nil
		default:
			return 0, fmt.Errorf("bms: track %q unknown opcode 0x%02X at 0x%X", t.name, op, t.PC-1)
		}
	}
}
