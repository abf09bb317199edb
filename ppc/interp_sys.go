package ppc

import "fmt"

func registerSystemOpcodes() {
	reg(&ext31, 339, &opcodeEntry{Mnemonic: "mfspr", Exec: execMfspr, Dasm: dasmSPRMove("mfspr", true)})
	reg(&ext31, 467, &opcodeEntry{Mnemonic: "mtspr", Exec: execMtspr, Dasm: dasmSPRMove("mtspr", false)})
	reg(&ext31, 371, &opcodeEntry{Mnemonic: "mftb", Exec: execMftb, Dasm: dasmSPRMove("mftb", true)})

	reg(&ext31, 19, &opcodeEntry{Mnemonic: "mfcr", Exec: execMfcr, Dasm: func(w uint32, pc uint32) string {
		return fmt.Sprintf("%-8s r%d", "mfcr", GetReg1(w))
	}})
	reg(&ext31, 144, &opcodeEntry{Mnemonic: "mtcrf", Exec: execMtcrf, Dasm: dasmMtcrf})

	reg(&ext31, 83, &opcodeEntry{Mnemonic: "mfmsr", Dasm: func(w uint32, pc uint32) string {
		return fmt.Sprintf("%-8s r%d", "mfmsr", GetReg1(w))
	}})
	reg(&ext31, 146, &opcodeEntry{Mnemonic: "mtmsr", Dasm: func(w uint32, pc uint32) string {
		return fmt.Sprintf("%-8s r%d", "mtmsr", GetReg1(w))
	}})
	reg(&ext19, 50, &opcodeEntry{Mnemonic: "rfi", Dasm: func(w uint32, pc uint32) string { return "rfi" }})

	reg(&ext31, 306, &opcodeEntry{Mnemonic: "tlbie", Exec: execNop, Dasm: func(w uint32, pc uint32) string {
		return fmt.Sprintf("%-8s r%d", "tlbie", GetReg3(w))
	}})
	reg(&ext31, 370, &opcodeEntry{Mnemonic: "tlbia", Exec: execNop, Dasm: func(w uint32, pc uint32) string { return "tlbia" }})
	reg(&ext31, 566, &opcodeEntry{Mnemonic: "tlbsync", Exec: execNop, Dasm: func(w uint32, pc uint32) string { return "tlbsync" }})

	reg(&ext31, 4, &opcodeEntry{Mnemonic: "tw", Dasm: func(w uint32, pc uint32) string {
		return fmt.Sprintf("%-8s %d, r%d, r%d", "tw", GetReg1(w), GetReg2(w), GetReg3(w))
	}})
	primaryTable[3] = &opcodeEntry{Mnemonic: "twi", Dasm: func(w uint32, pc uint32) string {
		return fmt.Sprintf("%-8s %d, r%d, %d", "twi", GetReg1(w), GetReg2(w), GetImmExt(w))
	}}

	reg(&ext31, 595, &opcodeEntry{Mnemonic: "mfsr", Dasm: func(w uint32, pc uint32) string {
		return fmt.Sprintf("%-8s r%d, %d", "mfsr", GetReg1(w), GetReg2(w)&0xF)
	}})
	reg(&ext31, 210, &opcodeEntry{Mnemonic: "mtsr", Dasm: func(w uint32, pc uint32) string {
		return fmt.Sprintf("%-8s %d, r%d", "mtsr", GetReg2(w)&0xF, GetReg1(w))
	}})

	reg(&ext31, 533, &opcodeEntry{Mnemonic: "lswx", Dasm: dasmXForm("lswx")})
	reg(&ext31, 597, &opcodeEntry{Mnemonic: "lswi", Dasm: dasmXForm("lswi")})
	reg(&ext31, 725, &opcodeEntry{Mnemonic: "stswi", Dasm: dasmXForm("stswi")})
	reg(&ext31, 661, &opcodeEntry{Mnemonic: "stswx", Dasm: dasmXForm("stswx")})
	reg(&ext31, 438, &opcodeEntry{Mnemonic: "eciwx", Dasm: dasmXForm("eciwx")})
	reg(&ext31, 662, &opcodeEntry{Mnemonic: "ecowx", Dasm: dasmXForm("ecowx")})
	reg(&ext31, 758, &opcodeEntry{Mnemonic: "dcba", Dasm: dasmXForm("dcba")})
}

func execMfspr(it *Interpreter, w uint32) (StepOutcome, error) {
	rd := GetReg1(w)
	spr := GetSPR(w)
	switch spr {
	case 1:
		it.Regs.GPR[rd] = it.Regs.XER
	case 8:
		it.Regs.GPR[rd] = it.Regs.LR
	case 9:
		it.Regs.GPR[rd] = it.Regs.CTR
	default:
		it.Regs.GPR[rd] = 0
	}
	return Continue, nil
}

func execMtspr(it *Interpreter, w uint32) (StepOutcome, error) {
	rs := GetReg1(w)
	spr := GetSPR(w)
	switch spr {
	case 1:
		it.Regs.XER = it.Regs.GPR[rs]
	case 8:
		it.Regs.LR = it.Regs.GPR[rs]
	case 9:
		it.Regs.CTR = it.Regs.GPR[rs]
	}
	return Continue, nil
}

func execMftb(it *Interpreter, w uint32) (StepOutcome, error) {
	rd := GetReg1(w)
	tbr := GetTBR(w)
	if tbr == 269 {
		it.Regs.GPR[rd] = uint32(it.Regs.TBR >> 32)
	} else {
		it.Regs.GPR[rd] = uint32(it.Regs.TBR)
	}
	return Continue, nil
}

func dasmSPRMove(mnemonic string, destFirst bool) DasmFunc {
	return func(w uint32, pc uint32) string {
		r := GetReg1(w)
		spr := sprName(GetSPR(w))
		if destFirst {
			return fmt.Sprintf("%-8s r%d, %s", mnemonic, r, spr)
		}
		return fmt.Sprintf("%-8s %s, r%d", mnemonic, spr, r)
	}
}

func execMfcr(it *Interpreter, w uint32) (StepOutcome, error) {
	it.Regs.GPR[GetReg1(w)] = it.Regs.CR
	return Continue, nil
}

func execMtcrf(it *Interpreter, w uint32) (StepOutcome, error) {
	rs := GetReg1(w)
	mask := (w >> 12) & 0xFF
	var full uint32
	for i := uint32(0); i < 8; i++ {
		if mask&(1<<i) != 0 {
			full |= 0xF << (i * 4)
		}
	}
	it.Regs.CR = (it.Regs.CR &^ full) | (it.Regs.GPR[rs] & full)
	return Continue, nil
}

func dasmMtcrf(w uint32, pc uint32) string {
	mask := (w >> 12) & 0xFF
	return fmt.Sprintf("%-8s 0x%02X, r%d", "mtcrf", mask, GetReg1(w))
}

// registerFloatOpcodes registers decoding/disassembly metadata for the
// floating-point instruction set. None carry an Exec function: floating
// point execution is outside this interpreter's scope, so these
// instructions decode and disassemble correctly but trap as
// UnimplementedError if actually run.
func registerFloatOpcodes() {
	floatLoadStore("lfs", 48, 49, false)
	floatLoadStore("lfd", 50, 51, false)
	floatLoadStore("stfs", 52, 53, true)
	floatLoadStore("stfd", 54, 55, true)

	reg(&ext31, 535, &opcodeEntry{Mnemonic: "lfsx", Dasm: dasmFXForm("lfsx")})
	reg(&ext31, 599, &opcodeEntry{Mnemonic: "lfdx", Dasm: dasmFXForm("lfdx")})
	reg(&ext31, 663, &opcodeEntry{Mnemonic: "stfsx", Dasm: dasmFXForm("stfsx")})
	reg(&ext31, 727, &opcodeEntry{Mnemonic: "stfdx", Dasm: dasmFXForm("stfdx")})

	reg(&ext63Short, 21, &opcodeEntry{Mnemonic: "fadd", Dasm: dasmFAForm("fadd")})
	reg(&ext63Short, 20, &opcodeEntry{Mnemonic: "fsub", Dasm: dasmFAForm("fsub")})
	reg(&ext63Short, 25, &opcodeEntry{Mnemonic: "fmul", Dasm: dasmFAMulForm("fmul")})
	reg(&ext63Short, 18, &opcodeEntry{Mnemonic: "fdiv", Dasm: dasmFAForm("fdiv")})
	reg(&ext59Short, 21, &opcodeEntry{Mnemonic: "fadds", Dasm: dasmFAForm("fadds")})
	reg(&ext59Short, 20, &opcodeEntry{Mnemonic: "fsubs", Dasm: dasmFAForm("fsubs")})
	reg(&ext59Short, 25, &opcodeEntry{Mnemonic: "fmuls", Dasm: dasmFAMulForm("fmuls")})
	reg(&ext59Short, 18, &opcodeEntry{Mnemonic: "fdivs", Dasm: dasmFAForm("fdivs")})

	reg(&ext63, 72, &opcodeEntry{Mnemonic: "fmr", Dasm: dasmFRForm("fmr")})
	reg(&ext63, 40, &opcodeEntry{Mnemonic: "fneg", Dasm: dasmFRForm("fneg")})
	reg(&ext63, 136, &opcodeEntry{Mnemonic: "fnabs", Dasm: dasmFRForm("fnabs")})
	reg(&ext63, 264, &opcodeEntry{Mnemonic: "fabs", Dasm: dasmFRForm("fabs")})
	reg(&ext63, 12, &opcodeEntry{Mnemonic: "frsp", Dasm: dasmFRForm("frsp")})
	reg(&ext63, 14, &opcodeEntry{Mnemonic: "fctiw", Dasm: dasmFRForm("fctiw")})
	reg(&ext63, 15, &opcodeEntry{Mnemonic: "fctiwz", Dasm: dasmFRForm("fctiwz")})
	reg(&ext63, 32, &opcodeEntry{Mnemonic: "fcmpu", Dasm: dasmFCmpForm("fcmpu")})
	reg(&ext63, 64, &opcodeEntry{Mnemonic: "fcmpo", Dasm: dasmFCmpForm("fcmpo")})
	reg(&ext63, 583, &opcodeEntry{Mnemonic: "mffs", Dasm: func(w uint32, pc uint32) string {
		return fmt.Sprintf("%-8s f%d", "mffs", GetReg1(w))
	}})
	reg(&ext63, 711, &opcodeEntry{Mnemonic: "mtfsf", Dasm: func(w uint32, pc uint32) string {
		return fmt.Sprintf("%-8s %d, f%d", "mtfsf", (w>>17)&0xFF, GetReg3(w))
	}})
}

func floatLoadStore(mnemonic string, op, opUpdate uint32, store bool) {
	entry := &opcodeEntry{Mnemonic: mnemonic, Dasm: dasmDForm(mnemonic)}
	entryU := &opcodeEntry{Mnemonic: mnemonic + "u", Dasm: dasmDForm(mnemonic + "u")}
	primaryTable[op] = entry
	primaryTable[opUpdate] = entryU
}

func dasmFXForm(mnemonic string) DasmFunc {
	return func(w uint32, pc uint32) string {
		return fmt.Sprintf("%-8s f%d, r%d, r%d", mnemonic, GetReg1(w), GetReg2(w), GetReg3(w))
	}
}

func dasmFAForm(mnemonic string) DasmFunc {
	return func(w uint32, pc uint32) string {
		return fmt.Sprintf("%-8s f%d, f%d, f%d", mnemonic, GetReg1(w), GetReg2(w), GetReg3(w))
	}
}

func dasmFAMulForm(mnemonic string) DasmFunc {
	return func(w uint32, pc uint32) string {
		return fmt.Sprintf("%-8s f%d, f%d, f%d", mnemonic, GetReg1(w), GetReg2(w), GetReg4(w))
	}
}

func dasmFRForm(mnemonic string) DasmFunc {
	return func(w uint32, pc uint32) string {
		return fmt.Sprintf("%-8s f%d, f%d", mnemonic, GetReg1(w), GetReg3(w))
	}
}

func dasmFCmpForm(mnemonic string) DasmFunc {
	return func(w uint32, pc uint32) string {
		return fmt.Sprintf("%-8s cr%d, f%d, f%d", mnemonic, GetReg1(w)>>2, GetReg2(w), GetReg3(w))
	}
}
