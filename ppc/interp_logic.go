package ppc

import "fmt"

func registerLogicalOpcodes() {
	primaryTable[24] = &opcodeEntry{Mnemonic: "ori", Exec: execOri, Dasm: dasmLogicImm("ori")}
	primaryTable[25] = &opcodeEntry{Mnemonic: "oris", Exec: execOris, Dasm: dasmLogicImm("oris")}
	primaryTable[26] = &opcodeEntry{Mnemonic: "xori", Exec: execXori, Dasm: dasmLogicImm("xori")}
	primaryTable[27] = &opcodeEntry{Mnemonic: "xoris", Exec: execXoris, Dasm: dasmLogicImm("xoris")}
	primaryTable[28] = &opcodeEntry{Mnemonic: "andi.", Exec: execAndiRec, Dasm: dasmLogicImm("andi.")}
	primaryTable[29] = &opcodeEntry{Mnemonic: "andis.", Exec: execAndisRec, Dasm: dasmLogicImm("andis.")}

	primaryTable[11] = &opcodeEntry{Mnemonic: "cmpi", Exec: execCmpi, Dasm: dasmCmpi}
	primaryTable[10] = &opcodeEntry{Mnemonic: "cmpli", Exec: execCmpli, Dasm: dasmCmpli}

	primaryTable[20] = &opcodeEntry{Mnemonic: "rlwimi", Exec: execRlwimi, Dasm: dasmRotate("rlwimi")}
	primaryTable[21] = &opcodeEntry{Mnemonic: "rlwinm", Exec: execRlwinm, Dasm: dasmRotate("rlwinm")}
	primaryTable[23] = &opcodeEntry{Mnemonic: "rlwnm", Exec: execRlwnm, Dasm: dasmRotateReg("rlwnm")}

	reg(&ext31, 28, logicEntry("and", func(a, b uint32) uint32 { return a & b }))
	reg(&ext31, 444, logicEntry("or", func(a, b uint32) uint32 { return a | b }))
	reg(&ext31, 316, logicEntry("xor", func(a, b uint32) uint32 { return a ^ b }))
	reg(&ext31, 476, logicEntry("nand", func(a, b uint32) uint32 { return ^(a & b) }))
	reg(&ext31, 124, logicEntry("nor", func(a, b uint32) uint32 { return ^(a | b) }))
	reg(&ext31, 60, logicEntry("andc", func(a, b uint32) uint32 { return a &^ b }))
	reg(&ext31, 412, logicEntry("orc", func(a, b uint32) uint32 { return a | ^b }))
	reg(&ext31, 284, logicEntry("eqv", func(a, b uint32) uint32 { return ^(a ^ b) }))

	reg(&ext31, 0, cmpEntry("cmp", true))
	reg(&ext31, 32, cmpEntry("cmpl", false))

	reg(&ext31, 24, shiftEntry("slw", execSlw))
	reg(&ext31, 536, shiftEntry("srw", execSrw))
	reg(&ext31, 792, shiftEntry("sraw", execSraw))
	reg(&ext31, 824, shiftImmEntry("srawi", execSrawi))

	reg(&ext31, 26, countEntry("cntlzw", execCntlzw))
}

func logicEntry(mnemonic string, fn func(a, b uint32) uint32) *opcodeEntry {
	return &opcodeEntry{
		Mnemonic: mnemonic,
		Dasm: func(w uint32, pc uint32) string {
			rs, ra, rb := GetReg1(w), GetReg2(w), GetReg3(w)
			name := mnemonic
			if GetRec(w) {
				name += "."
			}
			return fmt.Sprintf("%-8s r%d, r%d, r%d", name, ra, rs, rb)
		},
		Exec: func(it *Interpreter, w uint32) (StepOutcome, error) {
			rs, ra, rb := GetReg1(w), GetReg2(w), GetReg3(w)
			result := fn(it.Regs.GPR[rs], it.Regs.GPR[rb])
			it.Regs.GPR[ra] = result
			if GetRec(w) {
				it.Regs.SetCR0(int32(result))
			}
			return Continue, nil
		},
	}
}

func dasmLogicImm(mnemonic string) DasmFunc {
	return func(w uint32, pc uint32) string {
		rs, ra := GetReg1(w), GetReg2(w)
		return fmt.Sprintf("%-8s r%d, r%d, 0x%X", mnemonic, ra, rs, GetImm(w))
	}
}

func execOri(it *Interpreter, w uint32) (StepOutcome, error) {
	rs, ra := GetReg1(w), GetReg2(w)
	it.Regs.GPR[ra] = it.Regs.GPR[rs] | uint32(GetImm(w))
	return Continue, nil
}

func execOris(it *Interpreter, w uint32) (StepOutcome, error) {
	rs, ra := GetReg1(w), GetReg2(w)
	it.Regs.GPR[ra] = it.Regs.GPR[rs] | (uint32(GetImm(w)) << 16)
	return Continue, nil
}

func execXori(it *Interpreter, w uint32) (StepOutcome, error) {
	rs, ra := GetReg1(w), GetReg2(w)
	it.Regs.GPR[ra] = it.Regs.GPR[rs] ^ uint32(GetImm(w))
	return Continue, nil
}

func execXoris(it *Interpreter, w uint32) (StepOutcome, error) {
	rs, ra := GetReg1(w), GetReg2(w)
	it.Regs.GPR[ra] = it.Regs.GPR[rs] ^ (uint32(GetImm(w)) << 16)
	return Continue, nil
}

func execAndiRec(it *Interpreter, w uint32) (StepOutcome, error) {
	rs, ra := GetReg1(w), GetReg2(w)
	result := it.Regs.GPR[rs] & uint32(GetImm(w))
	it.Regs.GPR[ra] = result
	it.Regs.SetCR0(int32(result))
	return Continue, nil
}

func execAndisRec(it *Interpreter, w uint32) (StepOutcome, error) {
	rs, ra := GetReg1(w), GetReg2(w)
	result := it.Regs.GPR[rs] & (uint32(GetImm(w)) << 16)
	it.Regs.GPR[ra] = result
	it.Regs.SetCR0(int32(result))
	return Continue, nil
}

func cmpEntry(mnemonic string, signed bool) *opcodeEntry {
	return &opcodeEntry{
		Mnemonic: mnemonic,
		Dasm: func(w uint32, pc uint32) string {
			field := GetReg1(w) >> 2
			ra, rb := GetReg2(w), GetReg3(w)
			return fmt.Sprintf("%-8s cr%d, r%d, r%d", mnemonic, field, ra, rb)
		},
		Exec: func(it *Interpreter, w uint32) (StepOutcome, error) {
			field := GetReg1(w) >> 2
			ra, rb := GetReg2(w), GetReg3(w)
			a, b := it.Regs.GPR[ra], it.Regs.GPR[rb]
			var lt, gt bool
			if signed {
				lt, gt = int32(a) < int32(b), int32(a) > int32(b)
			} else {
				lt, gt = a < b, a > b
			}
			it.Regs.SetCRFromCompare(field, lt, gt, a == b)
			return Continue, nil
		},
	}
}

func execCmpi(it *Interpreter, w uint32) (StepOutcome, error) {
	field := GetReg1(w) >> 2
	ra := GetReg2(w)
	a, b := int32(it.Regs.GPR[ra]), GetImmExt(w)
	it.Regs.SetCRFromCompare(field, a < b, a > b, a == b)
	return Continue, nil
}

func dasmCmpi(w uint32, pc uint32) string {
	field := GetReg1(w) >> 2
	ra := GetReg2(w)
	return fmt.Sprintf("%-8s cr%d, r%d, %d", "cmpi", field, ra, GetImmExt(w))
}

func execCmpli(it *Interpreter, w uint32) (StepOutcome, error) {
	field := GetReg1(w) >> 2
	ra := GetReg2(w)
	a, b := it.Regs.GPR[ra], uint32(GetImm(w))
	it.Regs.SetCRFromCompare(field, a < b, a > b, a == b)
	return Continue, nil
}

func dasmCmpli(w uint32, pc uint32) string {
	field := GetReg1(w) >> 2
	ra := GetReg2(w)
	return fmt.Sprintf("%-8s cr%d, r%d, 0x%X", "cmpli", field, ra, GetImm(w))
}

// maskRange builds the rotate-mask used by rlwinm/rlwimi/rlwnm: bits mb
// through me inclusive, set, wrapping around if mb > me (as the hardware
// spec requires).
func maskRange(mb, me uint32) uint32 {
	var mask uint32
	for i := uint32(0); i < 32; i++ {
		bit := uint32(1) << (31 - i)
		if mb <= me {
			if i >= mb && i <= me {
				mask |= bit
			}
		} else {
			if i >= mb || i <= me {
				mask |= bit
			}
		}
	}
	return mask
}

func rotl32(v uint32, sh uint32) uint32 {
	sh &= 31
	return (v << sh) | (v >> (32 - sh))
}

func execRlwinm(it *Interpreter, w uint32) (StepOutcome, error) {
	rs, ra := GetReg1(w), GetReg2(w)
	sh := GetReg3(w)
	mb := GetReg4(w)
	me := GetReg5(w)
	result := rotl32(it.Regs.GPR[rs], sh) & maskRange(mb, me)
	it.Regs.GPR[ra] = result
	if GetRec(w) {
		it.Regs.SetCR0(int32(result))
	}
	return Continue, nil
}

func execRlwimi(it *Interpreter, w uint32) (StepOutcome, error) {
	rs, ra := GetReg1(w), GetReg2(w)
	sh := GetReg3(w)
	mb := GetReg4(w)
	me := GetReg5(w)
	mask := maskRange(mb, me)
	result := (rotl32(it.Regs.GPR[rs], sh) & mask) | (it.Regs.GPR[ra] &^ mask)
	it.Regs.GPR[ra] = result
	if GetRec(w) {
		it.Regs.SetCR0(int32(result))
	}
	return Continue, nil
}

func execRlwnm(it *Interpreter, w uint32) (StepOutcome, error) {
	rs, ra, rb := GetReg1(w), GetReg2(w), GetReg3(w)
	mb := GetReg4(w)
	me := GetReg5(w)
	sh := it.Regs.GPR[rb] & 0x1F
	result := rotl32(it.Regs.GPR[rs], sh) & maskRange(mb, me)
	it.Regs.GPR[ra] = result
	if GetRec(w) {
		it.Regs.SetCR0(int32(result))
	}
	return Continue, nil
}

func dasmRotate(mnemonic string) DasmFunc {
	return func(w uint32, pc uint32) string {
		rs, ra := GetReg1(w), GetReg2(w)
		sh, mb, me := GetReg3(w), GetReg4(w), GetReg5(w)
		name := mnemonic
		if GetRec(w) {
			name += "."
		}
		return fmt.Sprintf("%-8s r%d, r%d, %d, %d, %d", name, ra, rs, sh, mb, me)
	}
}

func dasmRotateReg(mnemonic string) DasmFunc {
	return func(w uint32, pc uint32) string {
		rs, ra, rb := GetReg1(w), GetReg2(w), GetReg3(w)
		mb, me := GetReg4(w), GetReg5(w)
		name := mnemonic
		if GetRec(w) {
			name += "."
		}
		return fmt.Sprintf("%-8s r%d, r%d, r%d, %d, %d", name, ra, rs, rb, mb, me)
	}
}

func shiftEntry(mnemonic string, fn func(it *Interpreter, rs, rb uint32) uint32) *opcodeEntry {
	return &opcodeEntry{
		Mnemonic: mnemonic,
		Dasm: func(w uint32, pc uint32) string {
			rs, ra, rb := GetReg1(w), GetReg2(w), GetReg3(w)
			name := mnemonic
			if GetRec(w) {
				name += "."
			}
			return fmt.Sprintf("%-8s r%d, r%d, r%d", name, ra, rs, rb)
		},
		Exec: func(it *Interpreter, w uint32) (StepOutcome, error) {
			rs, ra, rb := GetReg1(w), GetReg2(w), GetReg3(w)
			result := fn(it, rs, rb)
			it.Regs.GPR[ra] = result
			if GetRec(w) {
				it.Regs.SetCR0(int32(result))
			}
			return Continue, nil
		},
	}
}

func execSlw(it *Interpreter, rs, rb uint32) uint32 {
	sh := it.Regs.GPR[rb] & 0x3F
	if sh >= 32 {
		return 0
	}
	return it.Regs.GPR[rs] << sh
}

func execSrw(it *Interpreter, rs, rb uint32) uint32 {
	sh := it.Regs.GPR[rb] & 0x3F
	if sh >= 32 {
		return 0
	}
	return it.Regs.GPR[rs] >> sh
}

func execSraw(it *Interpreter, rs, rb uint32) uint32 {
	sh := it.Regs.GPR[rb] & 0x3F
	v := int32(it.Regs.GPR[rs])
	if sh >= 32 {
		if v < 0 {
			it.Regs.SetXERCA(true)
			return 0xFFFFFFFF
		}
		it.Regs.SetXERCA(false)
		return 0
	}
	result := v >> sh
	carry := v < 0 && (uint32(v)<<(32-sh)) != 0
	it.Regs.SetXERCA(carry)
	return uint32(result)
}

func shiftImmEntry(mnemonic string, fn func(it *Interpreter, rs, sh uint32) uint32) *opcodeEntry {
	return &opcodeEntry{
		Mnemonic: mnemonic,
		Dasm: func(w uint32, pc uint32) string {
			rs, ra, sh := GetReg1(w), GetReg2(w), GetReg3(w)
			name := mnemonic
			if GetRec(w) {
				name += "."
			}
			return fmt.Sprintf("%-8s r%d, r%d, %d", name, ra, rs, sh)
		},
		Exec: func(it *Interpreter, w uint32) (StepOutcome, error) {
			rs, ra, sh := GetReg1(w), GetReg2(w), GetReg3(w)
			result := fn(it, rs, sh)
			it.Regs.GPR[ra] = result
			if GetRec(w) {
				it.Regs.SetCR0(int32(result))
			}
			return Continue, nil
		},
	}
}

func execSrawi(it *Interpreter, rs, sh uint32) uint32 {
	v := int32(it.Regs.GPR[rs])
	result := v >> sh
	carry := v < 0 && (uint32(v)<<(32-sh)) != 0
	if sh == 0 {
		carry = false
	}
	it.Regs.SetXERCA(carry)
	return uint32(result)
}

func countEntry(mnemonic string, fn func(v uint32) uint32) *opcodeEntry {
	return &opcodeEntry{
		Mnemonic: mnemonic,
		Dasm: func(w uint32, pc uint32) string {
			rs, ra := GetReg1(w), GetReg2(w)
			name := mnemonic
			if GetRec(w) {
				name += "."
			}
			return fmt.Sprintf("%-8s r%d, r%d", name, ra, rs)
		},
		Exec: func(it *Interpreter, w uint32) (StepOutcome, error) {
			rs, ra := GetReg1(w), GetReg2(w)
			result := fn(it.Regs.GPR[rs])
			it.Regs.GPR[ra] = result
			if GetRec(w) {
				it.Regs.SetCR0(int32(result))
			}
			return Continue, nil
		},
	}
}

func execCntlzw(v uint32) uint32 {
	if v == 0 {
		return 32
	}
	var n uint32
	for v&0x80000000 == 0 {
		v <<= 1
		n++
	}
	return n
}
