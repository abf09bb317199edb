package ppc

import "fmt"

// ExecFunc performs the register/memory side effects of one decoded
// instruction. It returns StepOutcome so hooks (syscall, breakpoint,
// interrupt) can ask the interpreter loop to stop without panicking or
// throwing, and an error for faults (memory access, divide by zero is NOT
// an error on this ISA: divw/divwu leave the result undefined instead).
type ExecFunc func(it *Interpreter, w uint32) (StepOutcome, error)

// DasmFunc renders one decoded instruction as assembly text. pc is the
// instruction's own address, used by branch-target formatting.
type DasmFunc func(w uint32, pc uint32) string

// opcodeEntry is one row of the opcode table: everything the disassembler
// and interpreter need to handle a specific (sub)opcode.
type opcodeEntry struct {
	Mnemonic string
	Exec     ExecFunc // nil means the opcode decodes but has no interpreter support
	Dasm     DasmFunc // nil falls back to a generic "mnemonic rD, rA, rB" rendering
}

// primaryTable is indexed directly by the 6-bit primary opcode (GetOp).
var primaryTable [64]*opcodeEntry

// Extended subopcode tables, keyed by GetSubopcode (10-bit) for the X/XO/XL
// forms, for the four primary opcodes that carry one: 0x13, 0x1F, 0x3B,
// 0x3F (byte values 0x4C, 0x7C, 0xEC, 0xFC).
var (
	ext19 = map[uint32]*opcodeEntry{} // primary 0x13 (0x4C): branch/CR/system
	ext31 = map[uint32]*opcodeEntry{} // primary 0x1F (0x7C): integer/memory/system
	ext59 = map[uint32]*opcodeEntry{} // primary 0x3B (0xEC): single-precision float
	ext63 = map[uint32]*opcodeEntry{} // primary 0x3F (0xFC): double-precision float
)

// ext59Short and ext63Short key the A-form float arithmetic ops by their
// 5-bit short subopcode (GetShortSubopcode), checked before the 10-bit
// tables above.
var (
	ext59Short = map[uint32]*opcodeEntry{}
	ext63Short = map[uint32]*opcodeEntry{}
)

func reg(table *map[uint32]*opcodeEntry, subop uint32, e *opcodeEntry) {
	(*table)[subop] = e
}

// Decode resolves a fetched instruction word to its opcode table entry. It
// returns nil when the word does not correspond to any known (sub)opcode;
// the caller reports InvalidError in that case.
func Decode(w uint32) *opcodeEntry {
	op := GetOp(w)
	switch op {
	case 0x13:
		return ext19[GetSubopcode(w)]
	case 0x1F:
		return ext31[GetSubopcode(w)]
	case 0x3B:
		if e, ok := ext59Short[GetShortSubopcode(w)]; ok {
			return e
		}
		return ext59[GetSubopcode(w)]
	case 0x3F:
		if e, ok := ext63Short[GetShortSubopcode(w)]; ok {
			return e
		}
		return ext63[GetSubopcode(w)]
	default:
		return primaryTable[op]
	}
}

// sprNames maps well-known SPR numbers to their canonical mnemonic operand,
// used by the disassembler. The assembler's synthetic mflr/mtlr/mfctr/mtctr
// rewrites spell their SPR numbers directly.
var sprNames = map[uint32]string{
	1:   "xer",
	8:   "lr",
	9:   "ctr",
	18:  "dsisr",
	19:  "dar",
	22:  "dec",
	25:  "sdr1",
	26:  "srr0",
	27:  "srr1",
	272: "sprg0",
	273: "sprg1",
	274: "sprg2",
	275: "sprg3",
	282: "ear",
	287: "pvr",
	528: "ibat0u",
	529: "ibat0l",
	530: "ibat1u",
	531: "ibat1l",
	532: "ibat2u",
	533: "ibat2l",
	534: "ibat3u",
	535: "ibat3l",
	536: "dbat0u",
	537: "dbat0l",
	538: "dbat1u",
	539: "dbat1l",
	540: "dbat2u",
	541: "dbat2l",
	542: "dbat3u",
	543: "dbat3l",
	1008: "hid0",
	1009: "hid1",
	1013: "dabr",
	1023: "pir",
}

// sprName returns the canonical name for an SPR number, or a raw numeric
// fallback ("spr1022" style) if it has no well-known name.
func sprName(spr uint32) string {
	if name, ok := sprNames[spr]; ok {
		return name
	}
	return fmt.Sprintf("spr%d", spr)
}

// crConditionSuffix maps the low 2 bits of BI (the bit within a CR field)
// to the canonical branch mnemonic suffix for "branch if condition true"
// (lt/gt/eq/so), used by the disassembler to prefer "beq" over
// "bc 12,2,...".
var crConditionSuffix = [4]string{"lt", "gt", "eq", "so"}

// crConditionSuffixNegated is crConditionSuffix with each test inverted
// (ge/le/ne/ns), used when BO calls for "branch if condition false".
var crConditionSuffixNegated = [4]string{"ge", "le", "ne", "ns"}

// branchMnemonicSuffix folds a BO/BI pair down to the canonical suffix a
// real assembler would print (e.g. "eq", "dnz", "" for branch-always),
// along with a cr field suffix for conditions tested against a non-zero
// CR field. ok is false when BO mixes CTR and CR tests in a way that has
// no single canonical mnemonic, and the caller should fall back to the
// numeric "bc BO, BI" form.
func branchMnemonicSuffix(bo, bi uint32) (suffix string, crSuffix string, ok bool) {
	ignoreCR := bo&0x10 != 0
	ignoreCTR := bo&0x04 != 0

	crField := bi >> 2
	if crField != 0 {
		crSuffix = fmt.Sprintf("cr%d, ", crField)
	}

	switch {
	case ignoreCR && ignoreCTR:
		return "", "", true
	case !ignoreCR && ignoreCTR:
		if bo&0x08 != 0 {
			return crConditionSuffix[bi&0x3], crSuffix, true
		}
		return crConditionSuffixNegated[bi&0x3], crSuffix, true
	case ignoreCR && !ignoreCTR:
		if bo&0x02 != 0 {
			return "dz", "", true
		}
		return "dnz", "", true
	default:
		return "", "", false
	}
}

func init() {
	registerBranchOpcodes()
	registerIntegerOpcodes()
	registerLogicalOpcodes()
	registerMemoryOpcodes()
	registerSystemOpcodes()
	registerFloatOpcodes()
}
