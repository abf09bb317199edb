package ppc

func registerBranchEncoders() {
	for _, abs := range []bool{false, true} {
		for _, link := range []bool{false, true} {
			name := "b"
			if abs {
				name += "a"
			}
			if link {
				name += "l"
			}
			a, l := abs, link
			instructionEncoders[name] = func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
				if err := requireArgs(args, 1); err != nil {
					return 0, err
				}
				target, err := resolveImmediate(args[0], offsets, site, false)
				if err != nil {
					return 0, err
				}
				var disp int32
				if a {
					disp = int32(target)
				} else {
					disp = int32(target) - int32(site)
				}
				if disp < -0x02000000 || disp > 0x01FFFFFF {
					return 0, &BranchOutOfRangeError{Site: site, Target: target, MaxDistance: 0x02000000}
				}
				li, err := EncodeBTarget(disp)
				if err != nil {
					return 0, err
				}
				return pack(18, li, EncodeBAbs(a), EncodeBLink(l)), nil
			}
		}
	}

	for _, abs := range []bool{false, true} {
		for _, link := range []bool{false, true} {
			name := "bc"
			if abs {
				name += "a"
			}
			if link {
				name += "l"
			}
			a, l := abs, link
			instructionEncoders[name] = func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
				if err := requireArgs(args, 3); err != nil {
					return 0, err
				}
				bo, err := EncodeBO(uint32(args[0].Imm))
				if err != nil {
					return 0, err
				}
				bi, err := EncodeBI(uint32(args[1].Imm))
				if err != nil {
					return 0, err
				}
				target, err := resolveImmediate(args[2], offsets, site, false)
				if err != nil {
					return 0, err
				}
				var disp int32
				if a {
					disp = int32(target)
				} else {
					disp = int32(target) - int32(site)
				}
				if disp < -0x8000 || disp > 0x7FFF {
					return 0, &BranchOutOfRangeError{Site: site, Target: target, MaxDistance: 0x8000}
				}
				bd, err := EncodeBDisp(disp)
				if err != nil {
					return 0, err
				}
				return pack(16, bo, bi, bd, EncodeBAbs(a), EncodeBLink(l)), nil
			}
		}
	}

	for _, link := range []bool{false, true} {
		name := "bclr"
		if link {
			name += "l"
		}
		l := link
		instructionEncoders[name] = func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
			if err := requireArgs(args, 2); err != nil {
				return 0, err
			}
			bo, err := EncodeBO(uint32(args[0].Imm))
			if err != nil {
				return 0, err
			}
			bi, err := EncodeBI(uint32(args[1].Imm))
			if err != nil {
				return 0, err
			}
			sub, _ := EncodeSubopcode(16)
			return pack(19, bo, bi, sub, EncodeBLink(l)), nil
		}
	}

	for _, link := range []bool{false, true} {
		name := "bcctr"
		if link {
			name += "l"
		}
		l := link
		instructionEncoders[name] = func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
			if err := requireArgs(args, 2); err != nil {
				return 0, err
			}
			bo, err := EncodeBO(uint32(args[0].Imm))
			if err != nil {
				return 0, err
			}
			bi, err := EncodeBI(uint32(args[1].Imm))
			if err != nil {
				return 0, err
			}
			sub, _ := EncodeSubopcode(528)
			return pack(19, bo, bi, sub, EncodeBLink(l)), nil
		}
	}

	instructionEncoders["sc"] = func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
		if err := requireArgs(args, 0); err != nil {
			return 0, err
		}
		return pack(17, 1<<1), nil
	}

	instructionEncoders["mcrf"] = func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
		if err := requireArgs(args, 2); err != nil {
			return 0, err
		}
		bf, _ := EncodeReg1(args[0].Reg << 2)
		bfa, _ := EncodeReg2(args[1].Reg << 2)
		sub, _ := EncodeSubopcode(0)
		return pack(19, bf, bfa, sub), nil
	}

	instructionEncoders["mcrxr"] = func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
		if err := requireArgs(args, 1); err != nil {
			return 0, err
		}
		bf, _ := EncodeReg1(args[0].Reg << 2)
		sub, _ := EncodeSubopcode(512)
		return pack(31, bf, sub), nil
	}

	crLogic := map[string]uint32{
		"crand": 257, "cror": 449, "crxor": 193, "crnand": 225,
		"crnor": 33, "crandc": 129, "creqv": 289, "crorc": 417,
	}
	for name, subop := range crLogic {
		s := subop
		instructionEncoders[name] = func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
			if err := requireArgs(args, 3); err != nil {
				return 0, err
			}
			bt, _ := EncodeReg1(uint32(args[0].Imm))
			ba, _ := EncodeReg2(uint32(args[1].Imm))
			bb, _ := EncodeReg3(uint32(args[2].Imm))
			sub, _ := EncodeSubopcode(s)
			return pack(19, bt, ba, bb, sub), nil
		}
	}

	noArgBranchLike := map[string][2]uint32{
		"isync": {19, 150},
		"rfi":   {19, 50},
	}
	for name, pair := range noArgBranchLike {
		op, sub := pair[0], pair[1]
		instructionEncoders[name] = func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
			if err := requireArgs(args, 0); err != nil {
				return 0, err
			}
			s, _ := EncodeSubopcode(sub)
			return pack(op, s), nil
		}
	}
}
