package ppc

import "fmt"

// addCarryOut reports whether a + b overflows an unsigned 32-bit sum.
func addCarryOut(a, b uint32) bool {
	return uint64(a)+uint64(b) > 0xFFFFFFFF
}

// addOverflows reports whether the signed 32-bit addition a + b overflows.
func addOverflows(a, b, result int32) bool {
	return (a >= 0 && b >= 0 && result < 0) || (a < 0 && b < 0 && result >= 0)
}

// subOverflows reports whether the signed 32-bit subtraction a - b
// overflows.
func subOverflows(a, b, result int32) bool {
	return (a >= 0 && b < 0 && result < 0) || (a < 0 && b >= 0 && result >= 0)
}

func registerIntegerOpcodes() {
	primaryTable[14] = &opcodeEntry{Mnemonic: "addi", Exec: execAddi, Dasm: dasmAddi}
	primaryTable[15] = &opcodeEntry{Mnemonic: "addis", Exec: execAddis, Dasm: dasmAddis}
	primaryTable[12] = &opcodeEntry{Mnemonic: "addic", Exec: execAddic(false), Dasm: dasmD("addic")}
	primaryTable[13] = &opcodeEntry{Mnemonic: "addic.", Exec: execAddic(true), Dasm: dasmD("addic.")}
	primaryTable[7] = &opcodeEntry{Mnemonic: "mulli", Exec: execMulli, Dasm: dasmD("mulli")}
	primaryTable[8] = &opcodeEntry{Mnemonic: "subfic", Exec: execSubfic, Dasm: dasmD("subfic")}

	reg(&ext31, 266, xoEntry("add", execXOAdd))
	reg(&ext31, 10, xoEntry("addc", execXOAddc))
	reg(&ext31, 138, xoEntry("adde", execXOAdde))
	reg(&ext31, 234, xoEntry("addme", execXOAddme))
	reg(&ext31, 202, xoEntry("addze", execXOAddze))
	reg(&ext31, 40, xoEntry("subf", execXOSubf))
	reg(&ext31, 8, xoEntry("subfc", execXOSubfc))
	reg(&ext31, 136, xoEntry("subfe", execXOSubfe))
	reg(&ext31, 232, xoEntry("subfme", execXOSubfme))
	reg(&ext31, 200, xoEntry("subfze", execXOSubfze))
	reg(&ext31, 104, xoEntry("neg", execXONeg))
	reg(&ext31, 235, xoEntry("mullw", execXOMullw))
	reg(&ext31, 75, xoEntry("mulhw", execXOMulhw))
	reg(&ext31, 11, xoEntry("mulhwu", execXOMulhwu))
	reg(&ext31, 491, xoEntry("divw", execXODivw))
	reg(&ext31, 459, xoEntry("divwu", execXODivwu))

	// The OE bit sits at the top of the 10-bit subopcode field, so the OE=1
	// forms (addo, subfo, ...) decode through the same entries.
	for _, subop := range []uint32{266, 10, 138, 234, 202, 40, 8, 136, 232, 200, 104, 235, 491, 459} {
		ext31[subop|0x200] = ext31[subop]
	}
}

// xoEntry builds an opcode table entry for an XO-form ALU op whose
// register fields, OE and Rec bits it handles generically; the passed fn
// computes the 32-bit result (and any side effects like carry/overflow).
func xoEntry(mnemonic string, fn func(it *Interpreter, rA, rB uint32) (result uint32, carry, overflow bool)) *opcodeEntry {
	return &opcodeEntry{
		Mnemonic: mnemonic,
		Dasm: func(w uint32, pc uint32) string {
			rd, ra, rb := GetReg1(w), GetReg2(w), GetReg3(w)
			name := mnemonic
			if GetO(w) {
				name += "o"
			}
			if GetRec(w) {
				name += "."
			}
			return fmt.Sprintf("%-8s r%d, r%d, r%d", name, rd, ra, rb)
		},
		Exec: func(it *Interpreter, w uint32) (StepOutcome, error) {
			rd, ra, rb := GetReg1(w), GetReg2(w), GetReg3(w)
			result, carry, overflow := fn(it, ra, rb)
			it.Regs.GPR[rd] = result
			if GetRec(w) {
				it.Regs.SetCR0(int32(result))
			}
			if GetO(w) {
				it.Regs.SetXEROV(overflow)
			}
			_ = carry
			return Continue, nil
		},
	}
}

func execAddi(it *Interpreter, w uint32) (StepOutcome, error) {
	rd, ra := GetReg1(w), GetReg2(w)
	imm := GetImmExt(w)
	base := int32(0)
	if ra != 0 {
		base = int32(it.Regs.GPR[ra])
	}
	it.Regs.GPR[rd] = uint32(base + imm)
	return Continue, nil
}

func execAddis(it *Interpreter, w uint32) (StepOutcome, error) {
	rd, ra := GetReg1(w), GetReg2(w)
	imm := int32(GetImm(w)) << 16
	base := int32(0)
	if ra != 0 {
		base = int32(it.Regs.GPR[ra])
	}
	it.Regs.GPR[rd] = uint32(base + imm)
	return Continue, nil
}

func execAddic(rec bool) ExecFunc {
	return func(it *Interpreter, w uint32) (StepOutcome, error) {
		rd, ra := GetReg1(w), GetReg2(w)
		imm := GetImmExt(w)
		a := it.Regs.GPR[ra]
		result := a + uint32(imm)
		it.Regs.SetXERCA(addCarryOut(a, uint32(imm)))
		it.Regs.GPR[rd] = result
		if rec {
			it.Regs.SetCR0(int32(result))
		}
		return Continue, nil
	}
}

func execSubfic(it *Interpreter, w uint32) (StepOutcome, error) {
	rd, ra := GetReg1(w), GetReg2(w)
	imm := GetImmExt(w)
	a := int32(it.Regs.GPR[ra])
	result := imm - a
	it.Regs.GPR[rd] = uint32(result)
	it.Regs.SetXERCA(uint32(imm) >= it.Regs.GPR[ra])
	return Continue, nil
}

func execMulli(it *Interpreter, w uint32) (StepOutcome, error) {
	rd, ra := GetReg1(w), GetReg2(w)
	imm := GetImmExt(w)
	it.Regs.GPR[rd] = uint32(int32(it.Regs.GPR[ra]) * imm)
	return Continue, nil
}

func execXOAdd(it *Interpreter, ra, rb uint32) (uint32, bool, bool) {
	a, b := it.Regs.GPR[ra], it.Regs.GPR[rb]
	result := a + b
	return result, addCarryOut(a, b), addOverflows(int32(a), int32(b), int32(result))
}

func execXOAddc(it *Interpreter, ra, rb uint32) (uint32, bool, bool) {
	a, b := it.Regs.GPR[ra], it.Regs.GPR[rb]
	result := a + b
	carry := addCarryOut(a, b)
	it.Regs.SetXERCA(carry)
	return result, carry, addOverflows(int32(a), int32(b), int32(result))
}

func execXOAdde(it *Interpreter, ra, rb uint32) (uint32, bool, bool) {
	a, b := it.Regs.GPR[ra], it.Regs.GPR[rb]
	var ci uint32
	if it.Regs.XERCA() {
		ci = 1
	}
	result := a + b + ci
	carry := uint64(a)+uint64(b)+uint64(ci) > 0xFFFFFFFF
	it.Regs.SetXERCA(carry)
	return result, carry, addOverflows(int32(a), int32(b), int32(result))
}

func execXOAddme(it *Interpreter, ra, rb uint32) (uint32, bool, bool) {
	a := it.Regs.GPR[ra]
	var ci uint32 = 0xFFFFFFFF
	if it.Regs.XERCA() {
		ci = 0
	}
	result := a + ci
	carry := uint64(a)+uint64(ci) > 0xFFFFFFFF
	it.Regs.SetXERCA(carry)
	return result, carry, addOverflows(int32(a), -1, int32(result))
}

func execXOAddze(it *Interpreter, ra, rb uint32) (uint32, bool, bool) {
	a := it.Regs.GPR[ra]
	var ci uint32
	if it.Regs.XERCA() {
		ci = 1
	}
	result := a + ci
	carry := uint64(a)+uint64(ci) > 0xFFFFFFFF
	it.Regs.SetXERCA(carry)
	return result, carry, addOverflows(int32(a), 0, int32(result))
}

func execXOSubf(it *Interpreter, ra, rb uint32) (uint32, bool, bool) {
	a, b := it.Regs.GPR[ra], it.Regs.GPR[rb]
	result := b - a
	return result, b >= a, subOverflows(int32(b), int32(a), int32(result))
}

func execXOSubfc(it *Interpreter, ra, rb uint32) (uint32, bool, bool) {
	a, b := it.Regs.GPR[ra], it.Regs.GPR[rb]
	result := b - a
	carry := b >= a
	it.Regs.SetXERCA(carry)
	return result, carry, subOverflows(int32(b), int32(a), int32(result))
}

func execXOSubfe(it *Interpreter, ra, rb uint32) (uint32, bool, bool) {
	a, b := it.Regs.GPR[ra], it.Regs.GPR[rb]
	var ci uint64
	if it.Regs.XERCA() {
		ci = 1
	}
	sum := uint64(^a) + uint64(b) + ci
	result := uint32(sum)
	carry := sum > 0xFFFFFFFF
	it.Regs.SetXERCA(carry)
	return result, carry, subOverflows(int32(b), int32(a), int32(result))
}

func execXOSubfme(it *Interpreter, ra, rb uint32) (uint32, bool, bool) {
	a := it.Regs.GPR[ra]
	var ci uint64
	if it.Regs.XERCA() {
		ci = 1
	}
	sum := uint64(^a) + 0xFFFFFFFF + ci
	result := uint32(sum)
	carry := sum > 0xFFFFFFFF
	it.Regs.SetXERCA(carry)
	return result, carry, subOverflows(-1, int32(a), int32(result))
}

func execXOSubfze(it *Interpreter, ra, rb uint32) (uint32, bool, bool) {
	a := it.Regs.GPR[ra]
	var ci uint64
	if it.Regs.XERCA() {
		ci = 1
	}
	sum := uint64(^a) + ci
	result := uint32(sum)
	carry := sum > 0xFFFFFFFF
	it.Regs.SetXERCA(carry)
	return result, carry, subOverflows(0, int32(a), int32(result))
}

func execXONeg(it *Interpreter, ra, rb uint32) (uint32, bool, bool) {
	a := int32(it.Regs.GPR[ra])
	result := -a
	return uint32(result), false, a == int32(-2147483648)
}

func execXOMullw(it *Interpreter, ra, rb uint32) (uint32, bool, bool) {
	a, b := int64(int32(it.Regs.GPR[ra])), int64(int32(it.Regs.GPR[rb]))
	full := a * b
	result := int32(full)
	return uint32(result), false, full != int64(result)
}

func execXOMulhw(it *Interpreter, ra, rb uint32) (uint32, bool, bool) {
	a, b := int64(int32(it.Regs.GPR[ra])), int64(int32(it.Regs.GPR[rb]))
	full := a * b
	return uint32(full >> 32), false, false
}

func execXOMulhwu(it *Interpreter, ra, rb uint32) (uint32, bool, bool) {
	a, b := uint64(it.Regs.GPR[ra]), uint64(it.Regs.GPR[rb])
	full := a * b
	return uint32(full >> 32), false, false
}

func execXODivw(it *Interpreter, ra, rb uint32) (uint32, bool, bool) {
	a, b := int32(it.Regs.GPR[ra]), int32(it.Regs.GPR[rb])
	if b == 0 || (a == int32(-2147483648) && b == -1) {
		return 0, false, true
	}
	return uint32(a / b), false, false
}

func execXODivwu(it *Interpreter, ra, rb uint32) (uint32, bool, bool) {
	a, b := it.Regs.GPR[ra], it.Regs.GPR[rb]
	if b == 0 {
		return 0, false, true
	}
	return a / b, false, false
}

func dasmD(mnemonic string) DasmFunc {
	return func(w uint32, pc uint32) string {
		rd, ra := GetReg1(w), GetReg2(w)
		return fmt.Sprintf("%-8s r%d, r%d, %d", mnemonic, rd, ra, GetImmExt(w))
	}
}

func dasmAddi(w uint32, pc uint32) string {
	rd, ra := GetReg1(w), GetReg2(w)
	if ra == 0 {
		return fmt.Sprintf("%-8s r%d, 0x%04X", "li", rd, uint32(GetImmExt(w)))
	}
	return fmt.Sprintf("%-8s r%d, r%d, %d", "addi", rd, ra, GetImmExt(w))
}

func dasmAddis(w uint32, pc uint32) string {
	rd, ra := GetReg1(w), GetReg2(w)
	if ra == 0 {
		return fmt.Sprintf("%-8s r%d, 0x%04X", "lis", rd, uint16(GetImm(w)))
	}
	return fmt.Sprintf("%-8s r%d, r%d, %d", "addis", rd, ra, int32(GetImm(w)))
}
