package ppc

import "fmt"

func requireArgs(args []Argument, n int) error {
	if len(args) != n {
		return fmt.Errorf("expected %d argument(s), got %d", n, len(args))
	}
	return nil
}

func pack(op uint32, fields ...uint32) uint32 {
	w, _ := EncodeOp(op)
	for _, f := range fields {
		w |= f
	}
	return w
}

// registerDFormEncoders covers the immediate ALU D-form ops: addi/addis/
// addic/addic./subfic/mulli, each "rD, rA, SIMM".
func registerDFormEncoders() {
	dForm := func(op uint32) encodeFunc {
		return func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
			if err := requireArgs(args, 3); err != nil {
				return 0, err
			}
			imm, err := resolveImmediate(args[2], offsets, site, false)
			if err != nil {
				return 0, err
			}
			if op == 15 && imm > 0x7FFF && imm <= 0xFFFF {
				// addis also accepts the unsigned 16-bit spelling of its
				// immediate, the form the disassembler prints for lis.
				imm -= 0x10000
			}
			immField, err := EncodeImmExt(int32(imm))
			if err != nil {
				return 0, err
			}
			ra, err := EncodeReg2(args[1].Reg)
			if err != nil {
				return 0, err
			}
			rd, err := EncodeReg1(args[0].Reg)
			if err != nil {
				return 0, err
			}
			return pack(op, rd, ra, immField), nil
		}
	}
	instructionEncoders["addi"] = dForm(14)
	instructionEncoders["addis"] = dForm(15)
	instructionEncoders["addic"] = dForm(12)
	instructionEncoders["addic."] = dForm(13)
	instructionEncoders["subfic"] = dForm(8)
	instructionEncoders["mulli"] = dForm(7)
}

// registerLogicEncoders covers ori/oris/xori/xoris/andi./andis. ("rA, rS,
// UIMM") and the X-form logical ops and rotate-family instructions.
func registerLogicEncoders() {
	logicImm := func(op uint32) encodeFunc {
		return func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
			if err := requireArgs(args, 3); err != nil {
				return 0, err
			}
			imm, err := resolveImmediate(args[2], offsets, site, false)
			if err != nil {
				return 0, err
			}
			immField, err := EncodeImm(uint32(imm))
			if err != nil {
				return 0, err
			}
			rs, err := EncodeReg1(args[1].Reg)
			if err != nil {
				return 0, err
			}
			ra, err := EncodeReg2(args[0].Reg)
			if err != nil {
				return 0, err
			}
			return pack(op, rs, ra, immField), nil
		}
	}
	instructionEncoders["ori"] = logicImm(24)
	instructionEncoders["oris"] = logicImm(25)
	instructionEncoders["xori"] = logicImm(26)
	instructionEncoders["xoris"] = logicImm(27)
	instructionEncoders["andi."] = logicImm(28)
	instructionEncoders["andis."] = logicImm(29)

	registerXForm3 := func(names []string, subop uint32, order [3]int) {
		for _, name := range names {
			rec := name[len(name)-1] == '.'
			s := subop
			n := name
			instructionEncoders[n] = func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
				if err := requireArgs(args, 3); err != nil {
					return 0, err
				}
				rs, err := EncodeReg1(args[order[0]].Reg)
				if err != nil {
					return 0, err
				}
				ra, err := EncodeReg2(args[order[1]].Reg)
				if err != nil {
					return 0, err
				}
				rb, err := EncodeReg3(args[order[2]].Reg)
				if err != nil {
					return 0, err
				}
				sub, _ := EncodeSubopcode(s)
				return pack(31, rs, ra, rb, sub, EncodeRec(rec)), nil
			}
		}
	}
	// X-form logical: written "op rA, rS, rB"; encoded reg1=rS, reg2=rA, reg3=rB.
	registerXForm3([]string{"and", "and."}, 28, [3]int{1, 0, 2})
	registerXForm3([]string{"or", "or."}, 444, [3]int{1, 0, 2})
	registerXForm3([]string{"xor", "xor."}, 316, [3]int{1, 0, 2})
	registerXForm3([]string{"nand", "nand."}, 476, [3]int{1, 0, 2})
	registerXForm3([]string{"nor", "nor."}, 124, [3]int{1, 0, 2})
	registerXForm3([]string{"andc", "andc."}, 60, [3]int{1, 0, 2})
	registerXForm3([]string{"orc", "orc."}, 412, [3]int{1, 0, 2})
	registerXForm3([]string{"eqv", "eqv."}, 284, [3]int{1, 0, 2})

	registerShift := func(names []string, subop uint32) {
		for _, name := range names {
			rec := name[len(name)-1] == '.'
			s := subop
			instructionEncoders[name] = func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
				if err := requireArgs(args, 3); err != nil {
					return 0, err
				}
				rs, err := EncodeReg1(args[1].Reg)
				if err != nil {
					return 0, err
				}
				ra, err := EncodeReg2(args[0].Reg)
				if err != nil {
					return 0, err
				}
				rb, err := EncodeReg3(args[2].Reg)
				if err != nil {
					return 0, err
				}
				sub, _ := EncodeSubopcode(s)
				return pack(31, rs, ra, rb, sub, EncodeRec(rec)), nil
			}
		}
	}
	registerShift([]string{"slw", "slw."}, 24)
	registerShift([]string{"srw", "srw."}, 536)
	registerShift([]string{"sraw", "sraw."}, 792)

	for _, name := range []string{"srawi", "srawi."} {
		rec := name[len(name)-1] == '.'
		instructionEncoders[name] = func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
			if err := requireArgs(args, 3); err != nil {
				return 0, err
			}
			rs, err := EncodeReg1(args[1].Reg)
			if err != nil {
				return 0, err
			}
			ra, err := EncodeReg2(args[0].Reg)
			if err != nil {
				return 0, err
			}
			sh, err := EncodeReg3(uint32(args[2].Imm))
			if err != nil {
				return 0, err
			}
			sub, _ := EncodeSubopcode(824)
			return pack(31, rs, ra, sh, sub, EncodeRec(rec)), nil
		}
	}

	for _, name := range []string{"cntlzw", "cntlzw."} {
		rec := name[len(name)-1] == '.'
		instructionEncoders[name] = func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
			if err := requireArgs(args, 2); err != nil {
				return 0, err
			}
			rs, err := EncodeReg1(args[1].Reg)
			if err != nil {
				return 0, err
			}
			ra, err := EncodeReg2(args[0].Reg)
			if err != nil {
				return 0, err
			}
			sub, _ := EncodeSubopcode(26)
			return pack(31, rs, ra, sub, EncodeRec(rec)), nil
		}
	}

	rotate := func(op uint32, mnemonics []string) {
		for _, name := range mnemonics {
			rec := name[len(name)-1] == '.'
			o := op
			instructionEncoders[name] = func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
				if err := requireArgs(args, 5); err != nil {
					return 0, err
				}
				rs, err := EncodeReg1(args[1].Reg)
				if err != nil {
					return 0, err
				}
				ra, err := EncodeReg2(args[0].Reg)
				if err != nil {
					return 0, err
				}
				sh, err := EncodeReg3(uint32(args[2].Imm))
				if err != nil {
					return 0, err
				}
				mb, err := EncodeReg4(uint32(args[3].Imm))
				if err != nil {
					return 0, err
				}
				me, err := EncodeReg5(uint32(args[4].Imm))
				if err != nil {
					return 0, err
				}
				return pack(o, rs, ra, sh, mb, me, EncodeRec(rec)), nil
			}
		}
	}
	rotate(20, []string{"rlwimi", "rlwimi."})
	rotate(21, []string{"rlwinm", "rlwinm."})

	for _, name := range []string{"rlwnm", "rlwnm."} {
		rec := name[len(name)-1] == '.'
		instructionEncoders[name] = func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
			if err := requireArgs(args, 5); err != nil {
				return 0, err
			}
			rs, err := EncodeReg1(args[1].Reg)
			if err != nil {
				return 0, err
			}
			ra, err := EncodeReg2(args[0].Reg)
			if err != nil {
				return 0, err
			}
			rb, err := EncodeReg3(args[2].Reg)
			if err != nil {
				return 0, err
			}
			mb, err := EncodeReg4(uint32(args[3].Imm))
			if err != nil {
				return 0, err
			}
			me, err := EncodeReg5(uint32(args[4].Imm))
			if err != nil {
				return 0, err
			}
			return pack(23, rs, ra, rb, mb, me, EncodeRec(rec)), nil
		}
	}

	instructionEncoders["cmpi"] = cmpEncoder(11, true, true)
	instructionEncoders["cmpli"] = cmpEncoder(10, true, false)
	instructionEncoders["cmp"] = cmpEncoder(0, false, true)
	instructionEncoders["cmpl"] = cmpEncoder(32, false, false)
}

// cmpEncoder handles cmpi/cmpli/cmp/cmpl, which all take an optional
// leading crN field argument defaulting to cr0.
func cmpEncoder(opOrSubop uint32, immediate, signed bool) encodeFunc {
	return func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
		field := uint32(0)
		rest := args
		if len(args) > 0 && args[0].Kind == argCRField {
			field = args[0].Reg
			rest = args[1:]
		}
		if err := requireArgs(rest, 2); err != nil {
			return 0, err
		}
		ra, err := EncodeReg2(rest[0].Reg)
		if err != nil {
			return 0, err
		}
		bf, err := EncodeReg1(field << 2)
		if err != nil {
			return 0, err
		}
		if immediate {
			imm, err := resolveImmediate(rest[1], offsets, site, false)
			if err != nil {
				return 0, err
			}
			if signed {
				immField, err := EncodeImmExt(int32(imm))
				if err != nil {
					return 0, err
				}
				return pack(opOrSubop, bf, ra, immField), nil
			}
			immField, err := EncodeImm(uint32(imm))
			if err != nil {
				return 0, err
			}
			return pack(opOrSubop, bf, ra, immField), nil
		}
		rb, err := EncodeReg3(rest[1].Reg)
		if err != nil {
			return 0, err
		}
		sub, _ := EncodeSubopcode(opOrSubop)
		return pack(31, bf, ra, rb, sub), nil
	}
}

// xoSubops maps every XO-form base mnemonic, each of which carries the
// overflow-enable (OE) bit in addition to the record (Rec) bit, to its
// subopcode.
var xoSubops = map[string]uint32{
	"add": 266, "addc": 10, "adde": 138, "addme": 234, "addze": 202,
	"subf": 40, "subfc": 8, "subfe": 136, "subfme": 232, "subfze": 200,
	"neg": 104, "mullw": 235, "mulhw": 75, "mulhwu": 11, "divw": 491, "divwu": 459,
}

// xoTwoOperand is the set of XO-form ops that take only rD, rA (no rB):
// neg, addme, addze, subfme, subfze.
var xoTwoOperand = map[string]bool{
	"neg": true, "addme": true, "addze": true, "subfme": true, "subfze": true,
}

func registerXOEncoders() {
	for base, subop := range xoSubops {
		registerXOVariants(base, subop, xoTwoOperand[base])
	}
}

func registerXOVariants(base string, subop uint32, twoOperand bool) {
	for _, oe := range []bool{false, true} {
		for _, rec := range []bool{false, true} {
			name := base
			if oe {
				name += "o"
			}
			if rec {
				name += "."
			}
			o, r, s := oe, rec, subop
			instructionEncoders[name] = func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
				n := 3
				if twoOperand {
					n = 2
				}
				if err := requireArgs(args, n); err != nil {
					return 0, err
				}
				rd, err := EncodeReg1(args[0].Reg)
				if err != nil {
					return 0, err
				}
				ra, err := EncodeReg2(args[1].Reg)
				if err != nil {
					return 0, err
				}
				var rb uint32
				if !twoOperand {
					rb, err = EncodeReg3(args[2].Reg)
					if err != nil {
						return 0, err
					}
				}
				sub, _ := EncodeSubopcode(s)
				return pack(31, rd, ra, rb, sub, EncodeO(o), EncodeRec(r)), nil
			}
		}
	}
}
