package ppc

import (
	"strconv"
	"strings"
)

// argKind identifies what an Argument token parsed as.
type argKind int

const (
	argRegister argKind = iota
	argFPRegister
	argCRField
	argImmediate
	argLabel
	argMemory // "disp(rA)" form
)

// Argument is a tagged union over the operand forms the assembler's
// tokenizer produces: a GPR/FPR/CR number, a bare integer, a label
// reference to be resolved in the second pass, or a "disp(rA)" memory
// operand.
type Argument struct {
	Kind  argKind
	Reg   uint32 // argRegister, argFPRegister, argCRField, argMemory's base register
	Imm   int64  // argImmediate, argMemory's displacement
	Label string // argLabel, or an unresolved label used as argMemory's displacement
}

// resolveImmediate returns the argument's integer value, resolving a label
// reference against offsets (the label table built during the first
// assembler pass). siteAddr is the address of the instruction being
// encoded, used to compute PC-relative displacements for branch operands.
func resolveImmediate(arg Argument, offsets map[string]uint32, siteAddr uint32, pcRelative bool) (int64, error) {
	switch arg.Kind {
	case argImmediate:
		return arg.Imm, nil
	case argLabel:
		target, ok := offsets[arg.Label]
		if !ok {
			return 0, &UnknownLabelError{Name: arg.Label}
		}
		if pcRelative {
			return int64(target) - int64(siteAddr), nil
		}
		return int64(target), nil
	case argMemory:
		if arg.Label != "" {
			target, ok := offsets[arg.Label]
			if !ok {
				return 0, &UnknownLabelError{Name: arg.Label}
			}
			return int64(target), nil
		}
		return arg.Imm, nil
	default:
		return int64(arg.Reg), nil
	}
}

func parseArgument(tok string) (Argument, error) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return Argument{}, &ParseError{Reason: "empty argument"}
	}

	if strings.HasPrefix(tok, "r") || strings.HasPrefix(tok, "R") {
		if n, err := strconv.ParseUint(tok[1:], 10, 8); err == nil && n <= 31 {
			return Argument{Kind: argRegister, Reg: uint32(n)}, nil
		}
	}
	if strings.HasPrefix(tok, "f") || strings.HasPrefix(tok, "F") {
		if n, err := strconv.ParseUint(tok[1:], 10, 8); err == nil && n <= 31 {
			return Argument{Kind: argFPRegister, Reg: uint32(n)}, nil
		}
	}
	if strings.HasPrefix(tok, "cr") {
		if n, err := strconv.ParseUint(tok[2:], 10, 8); err == nil && n <= 7 {
			return Argument{Kind: argCRField, Reg: uint32(n)}, nil
		}
	}

	if idx := strings.IndexByte(tok, '('); idx >= 0 && strings.HasSuffix(tok, ")") {
		dispText := tok[:idx]
		regText := tok[idx+1 : len(tok)-1]
		regArg, err := parseArgument(regText)
		if err != nil || regArg.Kind != argRegister {
			return Argument{}, &ParseError{Reason: "expected register inside parentheses: " + tok}
		}
		if dispText == "" {
			return Argument{Kind: argMemory, Reg: regArg.Reg}, nil
		}
		if imm, ok := parseIntLiteral(dispText); ok {
			return Argument{Kind: argMemory, Reg: regArg.Reg, Imm: imm}, nil
		}
		return Argument{Kind: argMemory, Reg: regArg.Reg, Label: dispText}, nil
	}

	if imm, ok := parseIntLiteral(tok); ok {
		return Argument{Kind: argImmediate, Imm: imm}, nil
	}

	return Argument{Kind: argLabel, Label: tok}, nil
}

func parseIntLiteral(tok string) (int64, bool) {
	neg := false
	if strings.HasPrefix(tok, "-") {
		neg = true
		tok = tok[1:]
	}
	var v uint64
	var err error
	switch {
	case strings.HasPrefix(tok, "0x") || strings.HasPrefix(tok, "0X"):
		v, err = strconv.ParseUint(tok[2:], 16, 64)
	case strings.HasPrefix(tok, "0b") || strings.HasPrefix(tok, "0B"):
		v, err = strconv.ParseUint(tok[2:], 2, 64)
	default:
		v, err = strconv.ParseUint(tok, 10, 64)
	}
	if err != nil {
		return 0, false
	}
	if neg {
		return -int64(v), true
	}
	return int64(v), true
}
