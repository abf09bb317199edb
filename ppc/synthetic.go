package ppc

// expandSynthetic rewrites a synthetic (pseudo) mnemonic and its arguments
// into the canonical mnemonic/argument list the real hardware encodes,
// exactly as the extended mnemonics defined by the PowerPC assembler
// language spec do. It runs once at the assembler's encoder entry point,
// before any table lookup.
func expandSynthetic(mnemonic string, args []Argument) (string, []Argument) {
	r0 := Argument{Kind: argRegister, Reg: 0}
	switch mnemonic {
	case "mr", "mr.":
		rec := mnemonic == "mr."
		m := "or"
		if rec {
			m += "."
		}
		return m, []Argument{args[0], args[1], args[1]}
	case "not", "not.":
		rec := mnemonic == "not."
		m := "nor"
		if rec {
			m += "."
		}
		return m, []Argument{args[0], args[1], args[1]}
	case "li":
		return "addi", []Argument{args[0], r0, args[1]}
	case "lis":
		return "addis", []Argument{args[0], r0, args[1]}
	case "la":
		return "addi", []Argument{args[0], {Kind: argRegister, Reg: args[1].Reg}, args[1]}
	case "nop":
		return "ori", []Argument{r0, r0, {Kind: argImmediate, Imm: 0}}
	case "subi":
		return "addi", negateImm(args)
	case "subis":
		return "addis", negateImm(args)
	case "sub", "sub.", "subo", "subo.":
		return xoSuffix("subf", mnemonic), []Argument{args[0], args[2], args[1]}
	case "slwi", "slwi.":
		rec := mnemonic == "slwi."
		sh := args[2]
		m := "rlwinm"
		if rec {
			m += "."
		}
		return m, []Argument{args[0], args[1], sh, {Kind: argImmediate, Imm: 0}, {Kind: argImmediate, Imm: 31 - sh.Imm}}
	case "srwi", "srwi.":
		rec := mnemonic == "srwi."
		n := args[2].Imm
		m := "rlwinm"
		if rec {
			m += "."
		}
		return m, []Argument{args[0], args[1], {Kind: argImmediate, Imm: 32 - n}, {Kind: argImmediate, Imm: n}, {Kind: argImmediate, Imm: 31}}
	case "rotlwi", "rotlwi.":
		rec := mnemonic == "rotlwi."
		m := "rlwinm"
		if rec {
			m += "."
		}
		return m, []Argument{args[0], args[1], args[2], {Kind: argImmediate, Imm: 0}, {Kind: argImmediate, Imm: 31}}
	case "rotlw", "rotlw.":
		rec := mnemonic == "rotlw."
		m := "rlwnm"
		if rec {
			m += "."
		}
		return m, []Argument{args[0], args[1], args[2], {Kind: argImmediate, Imm: 0}, {Kind: argImmediate, Imm: 31}}
	case "clrlwi", "clrlwi.":
		rec := mnemonic == "clrlwi."
		m := "rlwinm"
		if rec {
			m += "."
		}
		return m, []Argument{args[0], args[1], {Kind: argImmediate, Imm: 0}, args[2], {Kind: argImmediate, Imm: 31}}
	case "extlwi", "extlwi.":
		rec := mnemonic == "extlwi."
		n, b := args[2].Imm, args[3].Imm
		m := "rlwinm"
		if rec {
			m += "."
		}
		return m, []Argument{args[0], args[1], {Kind: argImmediate, Imm: b}, {Kind: argImmediate, Imm: 0}, {Kind: argImmediate, Imm: n - 1}}
	case "mtlr":
		return "mtspr", []Argument{{Kind: argImmediate, Imm: 8}, args[0]}
	case "mflr":
		return "mfspr", []Argument{args[0], {Kind: argImmediate, Imm: 8}}
	case "mtctr":
		return "mtspr", []Argument{{Kind: argImmediate, Imm: 9}, args[0]}
	case "mfctr":
		return "mfspr", []Argument{args[0], {Kind: argImmediate, Imm: 9}}
	case "mtxer":
		return "mtspr", []Argument{{Kind: argImmediate, Imm: 1}, args[0]}
	case "mfxer":
		return "mfspr", []Argument{args[0], {Kind: argImmediate, Imm: 1}}
	case "crset":
		return "creqv", []Argument{args[0], args[0], args[0]}
	case "crclr":
		return "crxor", []Argument{args[0], args[0], args[0]}
	case "crmove":
		return "cror", []Argument{args[0], args[1], args[1]}
	case "crnot":
		return "crnor", []Argument{args[0], args[1], args[1]}
	case "blr":
		return "bclr", []Argument{{Kind: argImmediate, Imm: 20}, {Kind: argImmediate, Imm: 0}}
	case "blrl":
		return "bclrl", []Argument{{Kind: argImmediate, Imm: 20}, {Kind: argImmediate, Imm: 0}}
	case "bctr":
		return "bcctr", []Argument{{Kind: argImmediate, Imm: 20}, {Kind: argImmediate, Imm: 0}}
	case "bctrl":
		return "bcctrl", []Argument{{Kind: argImmediate, Imm: 20}, {Kind: argImmediate, Imm: 0}}
	}

	if m, newArgs, ok := expandConditionalBranch(mnemonic, args); ok {
		return m, newArgs
	}

	return mnemonic, args
}

func negateImm(args []Argument) []Argument {
	out := append([]Argument(nil), args...)
	last := &out[len(out)-1]
	last.Imm = -last.Imm
	return out
}

func xoSuffix(base, mnemonic string) string {
	rec := ""
	if len(mnemonic) > 0 && mnemonic[len(mnemonic)-1] == '.' {
		rec = "."
		mnemonic = mnemonic[:len(mnemonic)-1]
	}
	if len(mnemonic) > 3 && mnemonic[len(mnemonic)-1] == 'o' {
		return base + "o" + rec
	}
	return base + rec
}

// conditionalBranchSuffixes maps the condition suffix of a synthetic
// conditional branch ("eq" of "beq", "ne" of "bne", ...) to its BO value
// and the offset of the tested bit within the CR field.
var conditionalBranchSuffixes = map[string]struct {
	bo     uint32
	bitOff uint32
}{
	"lt": {12, 0}, "le": {4, 1}, "eq": {12, 2}, "ge": {4, 0},
	"gt": {12, 1}, "ne": {4, 2}, "so": {12, 3}, "ns": {4, 3},
}

// expandConditionalBranch rewrites "beq", "bne cr1", "bnel", etc into bc/
// bcl/bca/bcla with the BO/BI fields the condition implies. The optional
// leading crN argument selects the CR field (default 0); trailing "l"/"a"
// letters select link/absolute exactly as they do on the real branch
// mnemonics.
func expandConditionalBranch(mnemonic string, args []Argument) (string, []Argument, bool) {
	if len(mnemonic) < 3 || mnemonic[0] != 'b' {
		return "", nil, false
	}
	rest := mnemonic[1:]
	link := false
	abs := false
	for len(rest) > 0 {
		switch rest[len(rest)-1] {
		case 'l':
			link = true
			rest = rest[:len(rest)-1]
			continue
		case 'a':
			abs = true
			rest = rest[:len(rest)-1]
			continue
		}
		break
	}
	cond, ok := conditionalBranchSuffixes[rest]
	if !ok {
		return "", nil, false
	}

	field := uint32(0)
	rest2 := args
	if len(args) > 0 && args[0].Kind == argCRField {
		field = args[0].Reg
		rest2 = args[1:]
	}
	_ = rest2

	m := "bc"
	if abs {
		m += "a"
	}
	if link {
		m += "l"
	}
	biArg := Argument{Kind: argImmediate, Imm: int64(field*4 + cond.bitOff)}
	boArg := Argument{Kind: argImmediate, Imm: int64(cond.bo)}
	newArgs := append([]Argument{boArg, biArg}, rest2...)
	return m, newArgs, true
}
