package ppc

// dFormMemOps maps every D-form load/store mnemonic (base and update
// forms) to its primary opcode.
var dFormMemOps = map[string]uint32{
	"lbz": 34, "lbzu": 35, "lhz": 40, "lhzu": 41, "lha": 42, "lhau": 43,
	"lwz": 32, "lwzu": 33,
	"stb": 38, "stbu": 39, "sth": 44, "sthu": 45, "stw": 36, "stwu": 37,
}

// xFormMemOps maps every X-form indexed load/store mnemonic to its
// extended subopcode under primary 0x1F.
var xFormMemOps = map[string]uint32{
	"lbzx": 87, "lbzux": 119, "lhzx": 279, "lhzux": 311,
	"lhax": 343, "lhaux": 375, "lwzx": 23, "lwzux": 55,
	"stbx": 215, "stbux": 247, "sthx": 407, "sthux": 439,
	"stwx": 151, "stwux": 183,
}

func registerMemoryEncoders() {
	for name, op := range dFormMemOps {
		o := op
		instructionEncoders[name] = func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
			if err := requireArgs(args, 2); err != nil {
				return 0, err
			}
			if args[1].Kind != argMemory {
				return 0, &ParseError{Reason: "expected disp(rA) operand"}
			}
			disp, err := resolveImmediate(args[1], offsets, site, false)
			if err != nil {
				return 0, err
			}
			immField, err := EncodeImmExt(int32(disp))
			if err != nil {
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
			return pack(o, rd, ra, immField), nil
		}
	}

	for name, subop := range xFormMemOps {
		s := subop
		instructionEncoders[name] = func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
			if err := requireArgs(args, 3); err != nil {
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
			rb, err := EncodeReg3(args[2].Reg)
			if err != nil {
				return 0, err
			}
			sub, _ := EncodeSubopcode(s)
			return pack(31, rd, ra, rb, sub), nil
		}
	}

	instructionEncoders["lwarx"] = xFormMemEncoder(20)
	instructionEncoders["stwcx."] = xFormMemEncoder(150)

	instructionEncoders["lmw"] = dFormMemEncoder(46)
	instructionEncoders["stmw"] = dFormMemEncoder(47)

	for name, subop := range map[string]uint32{
		"dcbt": 278, "dcbtst": 246, "dcbf": 86, "dcbz": 1014, "icbi": 982, "dcba": 758,
	} {
		s := subop
		instructionEncoders[name] = func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
			if err := requireArgs(args, 2); err != nil {
				return 0, err
			}
			ra, err := EncodeReg2(args[0].Reg)
			if err != nil {
				return 0, err
			}
			rb, err := EncodeReg3(args[1].Reg)
			if err != nil {
				return 0, err
			}
			sub, _ := EncodeSubopcode(s)
			return pack(31, ra, rb, sub), nil
		}
	}

	instructionEncoders["sync"] = noArgX(31, 598)
	instructionEncoders["eieio"] = noArgX(31, 854)
	instructionEncoders["tlbia"] = noArgX(31, 370)
	instructionEncoders["tlbsync"] = noArgX(31, 566)
}

func xFormMemEncoder(subop uint32) encodeFunc {
	return func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
		if err := requireArgs(args, 3); err != nil {
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
		rb, err := EncodeReg3(args[2].Reg)
		if err != nil {
			return 0, err
		}
		sub, _ := EncodeSubopcode(subop)
		return pack(31, rd, ra, rb, sub), nil
	}
}

func dFormMemEncoder(op uint32) encodeFunc {
	return func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
		if err := requireArgs(args, 2); err != nil {
			return 0, err
		}
		if args[1].Kind != argMemory {
			return 0, &ParseError{Reason: "expected disp(rA) operand"}
		}
		disp, err := resolveImmediate(args[1], offsets, site, false)
		if err != nil {
			return 0, err
		}
		immField, err := EncodeImmExt(int32(disp))
		if err != nil {
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
		return pack(op, rd, ra, immField), nil
	}
}

func noArgX(op, subop uint32) encodeFunc {
	return func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
		if err := requireArgs(args, 0); err != nil {
			return 0, err
		}
		sub, _ := EncodeSubopcode(subop)
		return pack(op, sub), nil
	}
}
