package ppc

import "fmt"

// registerMemoryOpcodes wires every D-form and X-form load/store. Update
// forms (lwzu, lwzux, ...) get their own entries from the *Update
// constructors (dFormLoadUpdate and friends), which reuse the sibling's
// load/store function and also write the effective address back to rA.
func registerMemoryOpcodes() {
	primaryTable[34] = dFormLoad("lbz", loadZeroExtend(1))
	primaryTable[35] = dFormLoadUpdate("lbzu", loadZeroExtend(1))
	primaryTable[40] = dFormLoad("lhz", loadZeroExtend(2))
	primaryTable[41] = dFormLoadUpdate("lhzu", loadZeroExtend(2))
	primaryTable[42] = dFormLoad("lha", loadSignExtend(2))
	primaryTable[43] = dFormLoadUpdate("lhau", loadSignExtend(2))
	primaryTable[32] = dFormLoad("lwz", loadZeroExtend(4))
	primaryTable[33] = dFormLoadUpdate("lwzu", loadZeroExtend(4))

	primaryTable[38] = dFormStore("stb", 1)
	primaryTable[39] = dFormStoreUpdate("stbu", 1)
	primaryTable[44] = dFormStore("sth", 2)
	primaryTable[45] = dFormStoreUpdate("sthu", 2)
	primaryTable[36] = dFormStore("stw", 4)
	primaryTable[37] = dFormStoreUpdate("stwu", 4)

	primaryTable[46] = &opcodeEntry{Mnemonic: "lmw", Exec: execLmw, Dasm: dasmMultiple("lmw")}
	primaryTable[47] = &opcodeEntry{Mnemonic: "stmw", Exec: execStmw, Dasm: dasmMultiple("stmw")}

	reg(&ext31, 87, xFormLoad("lbzx", loadZeroExtend(1)))
	reg(&ext31, 119, xFormLoadUpdate("lbzux", loadZeroExtend(1)))
	reg(&ext31, 279, xFormLoad("lhzx", loadZeroExtend(2)))
	reg(&ext31, 311, xFormLoadUpdate("lhzux", loadZeroExtend(2)))
	reg(&ext31, 343, xFormLoad("lhax", loadSignExtend(2)))
	reg(&ext31, 375, xFormLoadUpdate("lhaux", loadSignExtend(2)))
	reg(&ext31, 23, xFormLoad("lwzx", loadZeroExtend(4)))
	reg(&ext31, 55, xFormLoadUpdate("lwzux", loadZeroExtend(4)))

	reg(&ext31, 215, xFormStore("stbx", 1))
	reg(&ext31, 247, xFormStoreUpdate("stbux", 1))
	reg(&ext31, 407, xFormStore("sthx", 2))
	reg(&ext31, 439, xFormStoreUpdate("sthux", 2))
	reg(&ext31, 151, xFormStore("stwx", 4))
	reg(&ext31, 183, xFormStoreUpdate("stwux", 4))

	reg(&ext31, 20, &opcodeEntry{Mnemonic: "lwarx", Exec: execLwarx, Dasm: dasmXForm("lwarx")})
	reg(&ext31, 150, &opcodeEntry{Mnemonic: "stwcx.", Exec: execStwcx, Dasm: dasmXForm("stwcx.")})

	reg(&ext31, 278, &opcodeEntry{Mnemonic: "dcbt", Exec: execNop3, Dasm: dasmXForm("dcbt")})
	reg(&ext31, 246, &opcodeEntry{Mnemonic: "dcbtst", Exec: execNop3, Dasm: dasmXForm("dcbtst")})
	reg(&ext31, 86, &opcodeEntry{Mnemonic: "dcbf", Exec: execNop3, Dasm: dasmXForm("dcbf")})
	reg(&ext31, 1014, &opcodeEntry{Mnemonic: "dcbz", Exec: execDcbz, Dasm: dasmXForm("dcbz")})
	reg(&ext31, 982, &opcodeEntry{Mnemonic: "icbi", Exec: execNop3, Dasm: dasmXForm("icbi")})
	reg(&ext31, 598, &opcodeEntry{Mnemonic: "sync", Exec: execNop, Dasm: func(w uint32, pc uint32) string { return "sync" }})
	reg(&ext31, 854, &opcodeEntry{Mnemonic: "eieio", Exec: execNop, Dasm: func(w uint32, pc uint32) string { return "eieio" }})
}

func loadZeroExtend(size int) func(it *Interpreter, addr uint32) (uint32, error) {
	return func(it *Interpreter, addr uint32) (uint32, error) {
		switch size {
		case 1:
			v, err := it.Mem.ReadUint8(addr)
			return uint32(v), err
		case 2:
			v, err := it.Mem.ReadUint16(addr)
			return uint32(v), err
		default:
			return it.Mem.ReadUint32(addr)
		}
	}
}

func loadSignExtend(size int) func(it *Interpreter, addr uint32) (uint32, error) {
	return func(it *Interpreter, addr uint32) (uint32, error) {
		v, err := it.Mem.ReadUint16(addr)
		return uint32(int32(int16(v))), err
	}
}

func dFormLoad(mnemonic string, load func(it *Interpreter, addr uint32) (uint32, error)) *opcodeEntry {
	return &opcodeEntry{
		Mnemonic: mnemonic,
		Dasm:     dasmDForm(mnemonic),
		Exec: func(it *Interpreter, w uint32) (StepOutcome, error) {
			rd, ra := GetReg1(w), GetReg2(w)
			base := uint32(0)
			if ra != 0 {
				base = it.Regs.GPR[ra]
			}
			addr := base + uint32(GetImmExt(w))
			value, err := load(it, addr)
			if err != nil {
				return Halt, err
			}
			it.Regs.GPR[rd] = value
			return Continue, nil
		},
	}
}

func dFormLoadUpdate(mnemonic string, load func(it *Interpreter, addr uint32) (uint32, error)) *opcodeEntry {
	return &opcodeEntry{
		Mnemonic: mnemonic,
		Dasm:     dasmDForm(mnemonic),
		Exec: func(it *Interpreter, w uint32) (StepOutcome, error) {
			rd, ra := GetReg1(w), GetReg2(w)
			addr := it.Regs.GPR[ra] + uint32(GetImmExt(w))
			value, err := load(it, addr)
			if err != nil {
				return Halt, err
			}
			it.Regs.GPR[rd] = value
			it.Regs.GPR[ra] = addr
			return Continue, nil
		},
	}
}

func dFormStore(mnemonic string, size int) *opcodeEntry {
	return &opcodeEntry{
		Mnemonic: mnemonic,
		Dasm:     dasmDForm(mnemonic),
		Exec: func(it *Interpreter, w uint32) (StepOutcome, error) {
			rs, ra := GetReg1(w), GetReg2(w)
			base := uint32(0)
			if ra != 0 {
				base = it.Regs.GPR[ra]
			}
			addr := base + uint32(GetImmExt(w))
			if err := storeSized(it, addr, it.Regs.GPR[rs], size); err != nil {
				return Halt, err
			}
			return Continue, nil
		},
	}
}

func dFormStoreUpdate(mnemonic string, size int) *opcodeEntry {
	return &opcodeEntry{
		Mnemonic: mnemonic,
		Dasm:     dasmDForm(mnemonic),
		Exec: func(it *Interpreter, w uint32) (StepOutcome, error) {
			rs, ra := GetReg1(w), GetReg2(w)
			addr := it.Regs.GPR[ra] + uint32(GetImmExt(w))
			if err := storeSized(it, addr, it.Regs.GPR[rs], size); err != nil {
				return Halt, err
			}
			it.Regs.GPR[ra] = addr
			return Continue, nil
		},
	}
}

func storeSized(it *Interpreter, addr uint32, value uint32, size int) error {
	switch size {
	case 1:
		return it.Mem.WriteUint8(addr, uint8(value))
	case 2:
		return it.Mem.WriteUint16(addr, uint16(value))
	default:
		return it.Mem.WriteUint32(addr, value)
	}
}

func dasmDForm(mnemonic string) DasmFunc {
	return func(w uint32, pc uint32) string {
		rd, ra := GetReg1(w), GetReg2(w)
		return fmt.Sprintf("%-8s r%d, %s", mnemonic, rd, memOperand(ra, GetImmExt(w)))
	}
}

// memOperand renders a D-form displacement memory reference as the
// bracket syntax real PowerPC disassemblers use: "[rA]" when there is no
// displacement, "[rA + disp]"/"[rA - disp]" otherwise.
func memOperand(ra uint32, disp int32) string {
	switch {
	case disp == 0:
		return fmt.Sprintf("[r%d]", ra)
	case disp > 0:
		return fmt.Sprintf("[r%d + %d]", ra, disp)
	default:
		return fmt.Sprintf("[r%d - %d]", ra, -disp)
	}
}

func xFormLoad(mnemonic string, load func(it *Interpreter, addr uint32) (uint32, error)) *opcodeEntry {
	return &opcodeEntry{
		Mnemonic: mnemonic,
		Dasm:     dasmXForm(mnemonic),
		Exec: func(it *Interpreter, w uint32) (StepOutcome, error) {
			rd, ra, rb := GetReg1(w), GetReg2(w), GetReg3(w)
			base := uint32(0)
			if ra != 0 {
				base = it.Regs.GPR[ra]
			}
			addr := base + it.Regs.GPR[rb]
			value, err := load(it, addr)
			if err != nil {
				return Halt, err
			}
			it.Regs.GPR[rd] = value
			return Continue, nil
		},
	}
}

func xFormLoadUpdate(mnemonic string, load func(it *Interpreter, addr uint32) (uint32, error)) *opcodeEntry {
	return &opcodeEntry{
		Mnemonic: mnemonic,
		Dasm:     dasmXForm(mnemonic),
		Exec: func(it *Interpreter, w uint32) (StepOutcome, error) {
			rd, ra, rb := GetReg1(w), GetReg2(w), GetReg3(w)
			addr := it.Regs.GPR[ra] + it.Regs.GPR[rb]
			value, err := load(it, addr)
			if err != nil {
				return Halt, err
			}
			it.Regs.GPR[rd] = value
			it.Regs.GPR[ra] = addr
			return Continue, nil
		},
	}
}

func xFormStore(mnemonic string, size int) *opcodeEntry {
	return &opcodeEntry{
		Mnemonic: mnemonic,
		Dasm:     dasmXForm(mnemonic),
		Exec: func(it *Interpreter, w uint32) (StepOutcome, error) {
			rs, ra, rb := GetReg1(w), GetReg2(w), GetReg3(w)
			base := uint32(0)
			if ra != 0 {
				base = it.Regs.GPR[ra]
			}
			addr := base + it.Regs.GPR[rb]
			if err := storeSized(it, addr, it.Regs.GPR[rs], size); err != nil {
				return Halt, err
			}
			return Continue, nil
		},
	}
}

func xFormStoreUpdate(mnemonic string, size int) *opcodeEntry {
	return &opcodeEntry{
		Mnemonic: mnemonic,
		Dasm:     dasmXForm(mnemonic),
		Exec: func(it *Interpreter, w uint32) (StepOutcome, error) {
			rs, ra, rb := GetReg1(w), GetReg2(w), GetReg3(w)
			addr := it.Regs.GPR[ra] + it.Regs.GPR[rb]
			if err := storeSized(it, addr, it.Regs.GPR[rs], size); err != nil {
				return Halt, err
			}
			it.Regs.GPR[ra] = addr
			return Continue, nil
		},
	}
}

func dasmXForm(mnemonic string) DasmFunc {
	return func(w uint32, pc uint32) string {
		rd, ra, rb := GetReg1(w), GetReg2(w), GetReg3(w)
		return fmt.Sprintf("%-8s r%d, [(r%d) + r%d]", mnemonic, rd, ra, rb)
	}
}

func execLmw(it *Interpreter, w uint32) (StepOutcome, error) {
	rd, ra := GetReg1(w), GetReg2(w)
	base := uint32(0)
	if ra != 0 {
		base = it.Regs.GPR[ra]
	}
	addr := base + uint32(GetImmExt(w))
	for r := rd; r < 32; r++ {
		v, err := it.Mem.ReadUint32(addr)
		if err != nil {
			return Halt, err
		}
		it.Regs.GPR[r] = v
		addr += 4
	}
	return Continue, nil
}

func execStmw(it *Interpreter, w uint32) (StepOutcome, error) {
	rs, ra := GetReg1(w), GetReg2(w)
	base := uint32(0)
	if ra != 0 {
		base = it.Regs.GPR[ra]
	}
	addr := base + uint32(GetImmExt(w))
	for r := rs; r < 32; r++ {
		if err := it.Mem.WriteUint32(addr, it.Regs.GPR[r]); err != nil {
			return Halt, err
		}
		addr += 4
	}
	return Continue, nil
}

func dasmMultiple(mnemonic string) DasmFunc {
	return func(w uint32, pc uint32) string {
		rd, ra := GetReg1(w), GetReg2(w)
		return fmt.Sprintf("%-8s r%d, %s", mnemonic, rd, memOperand(ra, GetImmExt(w)))
	}
}

// execLwarx and execStwcx implement the load-and-reserve / store-
// conditional pair in their single-core form: the reservation always
// holds, so stwcx. always succeeds and sets CR0 EQ.
func execLwarx(it *Interpreter, w uint32) (StepOutcome, error) {
	rd, ra, rb := GetReg1(w), GetReg2(w), GetReg3(w)
	base := uint32(0)
	if ra != 0 {
		base = it.Regs.GPR[ra]
	}
	addr := base + it.Regs.GPR[rb]
	v, err := it.Mem.ReadUint32(addr)
	if err != nil {
		return Halt, err
	}
	it.Regs.GPR[rd] = v
	return Continue, nil
}

func execStwcx(it *Interpreter, w uint32) (StepOutcome, error) {
	rs, ra, rb := GetReg1(w), GetReg2(w), GetReg3(w)
	base := uint32(0)
	if ra != 0 {
		base = it.Regs.GPR[ra]
	}
	addr := base + it.Regs.GPR[rb]
	if err := it.Mem.WriteUint32(addr, it.Regs.GPR[rs]); err != nil {
		return Halt, err
	}
	it.Regs.SetCRField(0, 0x2)
	return Continue, nil
}

func execNop3(it *Interpreter, w uint32) (StepOutcome, error) {
	return Continue, nil
}

func execDcbz(it *Interpreter, w uint32) (StepOutcome, error) {
	ra, rb := GetReg2(w), GetReg3(w)
	base := uint32(0)
	if ra != 0 {
		base = it.Regs.GPR[ra]
	}
	addr := (base + it.Regs.GPR[rb]) &^ 0x1F
	if err := it.Mem.WriteBytes(addr, make([]byte, 32)); err != nil {
		return Halt, err
	}
	return Continue, nil
}
