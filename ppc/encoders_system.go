package ppc

func registerSystemEncoders() {
	instructionEncoders["mfspr"] = func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
		if err := requireArgs(args, 2); err != nil {
			return 0, err
		}
		rd, err := EncodeReg1(args[0].Reg)
		if err != nil {
			return 0, err
		}
		spr, err := EncodeSPR(uint32(args[1].Imm))
		if err != nil {
			return 0, err
		}
		sub, _ := EncodeSubopcode(339)
		return pack(31, rd, spr, sub), nil
	}

	instructionEncoders["mtspr"] = func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
		if err := requireArgs(args, 2); err != nil {
			return 0, err
		}
		spr, err := EncodeSPR(uint32(args[0].Imm))
		if err != nil {
			return 0, err
		}
		rs, err := EncodeReg1(args[1].Reg)
		if err != nil {
			return 0, err
		}
		sub, _ := EncodeSubopcode(467)
		return pack(31, rs, spr, sub), nil
	}

	instructionEncoders["mftb"] = func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
		if err := requireArgs(args, 2); err != nil {
			return 0, err
		}
		rd, err := EncodeReg1(args[0].Reg)
		if err != nil {
			return 0, err
		}
		tbr, err := EncodeTBR(uint32(args[1].Imm))
		if err != nil {
			return 0, err
		}
		sub, _ := EncodeSubopcode(371)
		return pack(31, rd, tbr, sub), nil
	}

	instructionEncoders["mfcr"] = func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
		if err := requireArgs(args, 1); err != nil {
			return 0, err
		}
		rd, err := EncodeReg1(args[0].Reg)
		if err != nil {
			return 0, err
		}
		sub, _ := EncodeSubopcode(19)
		return pack(31, rd, sub), nil
	}

	instructionEncoders["mtcrf"] = func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
		if err := requireArgs(args, 2); err != nil {
			return 0, err
		}
		mask := uint32(args[0].Imm)
		if mask > 0xFF {
			return 0, &EncodeRangeError{Field: "FXM", Value: int64(mask), Min: 0, Max: 0xFF}
		}
		rs, err := EncodeReg1(args[1].Reg)
		if err != nil {
			return 0, err
		}
		sub, _ := EncodeSubopcode(144)
		return pack(31, rs, mask<<12, sub), nil
	}

	instructionEncoders["mfmsr"] = func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
		if err := requireArgs(args, 1); err != nil {
			return 0, err
		}
		rd, err := EncodeReg1(args[0].Reg)
		if err != nil {
			return 0, err
		}
		sub, _ := EncodeSubopcode(83)
		return pack(31, rd, sub), nil
	}

	instructionEncoders["mtmsr"] = func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
		if err := requireArgs(args, 1); err != nil {
			return 0, err
		}
		rs, err := EncodeReg1(args[0].Reg)
		if err != nil {
			return 0, err
		}
		sub, _ := EncodeSubopcode(146)
		return pack(31, rs, sub), nil
	}

	instructionEncoders["mfsr"] = func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
		if err := requireArgs(args, 2); err != nil {
			return 0, err
		}
		rd, err := EncodeReg1(args[0].Reg)
		if err != nil {
			return 0, err
		}
		sr, err := EncodeReg2(uint32(args[1].Imm))
		if err != nil {
			return 0, err
		}
		sub, _ := EncodeSubopcode(595)
		return pack(31, rd, sr, sub), nil
	}

	instructionEncoders["mtsr"] = func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
		if err := requireArgs(args, 2); err != nil {
			return 0, err
		}
		sr, err := EncodeReg2(uint32(args[0].Imm))
		if err != nil {
			return 0, err
		}
		rs, err := EncodeReg1(args[1].Reg)
		if err != nil {
			return 0, err
		}
		sub, _ := EncodeSubopcode(210)
		return pack(31, rs, sr, sub), nil
	}

	instructionEncoders["tlbie"] = func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
		if err := requireArgs(args, 1); err != nil {
			return 0, err
		}
		rb, err := EncodeReg3(args[0].Reg)
		if err != nil {
			return 0, err
		}
		sub, _ := EncodeSubopcode(306)
		return pack(31, rb, sub), nil
	}

	instructionEncoders["tw"] = func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
		if err := requireArgs(args, 3); err != nil {
			return 0, err
		}
		to, err := EncodeReg1(uint32(args[0].Imm))
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
		sub, _ := EncodeSubopcode(4)
		return pack(31, to, ra, rb, sub), nil
	}

	instructionEncoders["twi"] = func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
		if err := requireArgs(args, 3); err != nil {
			return 0, err
		}
		to, err := EncodeReg1(uint32(args[0].Imm))
		if err != nil {
			return 0, err
		}
		ra, err := EncodeReg2(args[1].Reg)
		if err != nil {
			return 0, err
		}
		imm, err := resolveImmediate(args[2], offsets, site, false)
		if err != nil {
			return 0, err
		}
		immField, err := EncodeImmExt(int32(imm))
		if err != nil {
			return 0, err
		}
		return pack(3, to, ra, immField), nil
	}
}
