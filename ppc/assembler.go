package ppc

import (
	"fmt"
	"strings"
)

// IncludeResolver fetches the source text of an .include target by name,
// the same indirection the original assembler used to pull in shared
// register-name headers without hard-coding a filesystem.
type IncludeResolver func(name string) (string, error)

// AssembleResult is the output of Assemble: the encoded bytes and the
// final address of every label the source declared, so a caller can stash
// them (e.g. to locate an entry point or a jump table).
type AssembleResult struct {
	Code         []byte
	LabelOffsets map[string]uint32
}

type encodeFunc func(args []Argument, site uint32, offsets map[string]uint32) (uint32, error)

var instructionEncoders = map[string]encodeFunc{}

func init() {
	registerDFormEncoders()
	registerLogicEncoders()
	registerXOEncoders()
	registerBranchEncoders()
	registerMemoryEncoders()
	registerSystemEncoders()
}

// pendingItem is one fully-tokenized, size-resolved unit produced by the
// assembler's first pass: either a real instruction (mnemonic still
// unexpanded, so label-relative encoding can happen in the second pass)
// or a raw data blob.
type pendingItem struct {
	Address  uint32
	Mnemonic string
	Args     []Argument
	Line     int
	Data     []byte // non-nil for .data/.zero/.binary/.offsetof items
	DataRef  string // label name for a pending .offsetof fixup
}

// Assemble performs the two-pass assembly described by the instruction
// set: pass one tokenizes the source, expands .include, and assigns every
// label and instruction an address; pass two encodes every instruction and
// resolves label references now that all addresses are known.
func Assemble(source string, includes IncludeResolver, startAddress uint32) (AssembleResult, error) {
	lines, err := tokenizeSource(source)
	if err != nil {
		return AssembleResult{}, err
	}
	expanded, err := expandIncludes(lines, includes, map[string]bool{})
	if err != nil {
		return AssembleResult{}, err
	}

	offsets := map[string]uint32{}
	firstSeen := map[string]int{}
	items := make([]pendingItem, 0, len(expanded))
	addr := startAddress

	for _, sl := range expanded {
		if sl.Label != "" {
			if prevLine, dup := firstSeen[sl.Label]; dup {
				return AssembleResult{}, &DuplicateLabelError{Name: sl.Label, FirstLine: prevLine, SecondLine: sl.LineNo}
			}
			firstSeen[sl.Label] = sl.LineNo
			offsets[sl.Label] = addr
		}

		switch {
		case sl.Directive != "":
			item, size, err := resolveDirective(sl, addr, offsets)
			if err != nil {
				return AssembleResult{}, err
			}
			if item != nil {
				items = append(items, *item)
			}
			addr += size
		case sl.Mnemonic != "":
			args, err := parseArgList(sl.Args)
			if err != nil {
				return AssembleResult{}, &ParseError{Line: sl.LineNo, Reason: err.Error()}
			}
			items = append(items, pendingItem{Address: addr, Mnemonic: sl.Mnemonic, Args: args, Line: sl.LineNo})
			addr += 4
		}
	}

	var out []byte
	for _, item := range items {
		if item.Data != nil {
			if item.DataRef != "" {
				target, ok := offsets[item.DataRef]
				if !ok {
					return AssembleResult{}, &UnknownLabelError{Name: item.DataRef}
				}
				item.Data = encodeUint32BE(target)
			}
			out = append(out, item.Data...)
			continue
		}

		mnemonic, args := expandSynthetic(item.Mnemonic, item.Args)
		word, err := encodeInstruction(mnemonic, args, item.Address, offsets)
		if err != nil {
			if _, ok := err.(*EncodeRangeError); ok {
				return AssembleResult{}, err
			}
			return AssembleResult{}, fmt.Errorf("ppc: line %d: %w", item.Line, err)
		}
		out = append(out, encodeUint32BE(word)...)
	}

	return AssembleResult{Code: out, LabelOffsets: offsets}, nil
}

func encodeInstruction(mnemonic string, args []Argument, site uint32, offsets map[string]uint32) (uint32, error) {
	fn, ok := instructionEncoders[mnemonic]
	if !ok {
		return 0, fmt.Errorf("unknown mnemonic %q", mnemonic)
	}
	return fn(args, site, offsets)
}

func parseArgList(raw []string) ([]Argument, error) {
	out := make([]Argument, len(raw))
	for i, tok := range raw {
		arg, err := parseArgument(tok)
		if err != nil {
			return nil, err
		}
		out[i] = arg
	}
	return out, nil
}

func encodeUint32BE(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

// expandIncludes recursively replaces .include directives with the
// tokenized contents of the resolved source, tracking the names currently
// being expanded to reject a cycle.
func expandIncludes(lines []*sourceLine, includes IncludeResolver, active map[string]bool) ([]*sourceLine, error) {
	out := make([]*sourceLine, 0, len(lines))
	for _, sl := range lines {
		if sl.Directive != ".include" {
			out = append(out, sl)
			continue
		}
		if len(sl.Args) != 1 {
			return nil, &ParseError{Line: sl.LineNo, Reason: ".include requires exactly one argument"}
		}
		name := strings.Trim(sl.Args[0], `"`)
		if active[name] {
			return nil, &IncludeCycleError{Name: name}
		}
		if includes == nil {
			return nil, &ParseError{Line: sl.LineNo, Reason: "no include resolver configured"}
		}
		text, err := includes(name)
		if err != nil {
			return nil, err
		}
		childLines, err := tokenizeSource(text)
		if err != nil {
			return nil, err
		}
		active[name] = true
		expandedChild, err := expandIncludes(childLines, includes, active)
		delete(active, name)
		if err != nil {
			return nil, err
		}
		out = append(out, expandedChild...)
	}
	return out, nil
}

// resolveDirective handles .data/.zero/.binary/.offsetof, returning the
// pendingItem to emit (nil for directives with no byte payload) and the
// number of bytes it occupies in the address space.
func resolveDirective(sl *sourceLine, addr uint32, offsets map[string]uint32) (*pendingItem, uint32, error) {
	switch sl.Directive {
	case ".zero":
		if len(sl.Args) != 1 {
			return nil, 0, &ParseError{Line: sl.LineNo, Reason: ".zero requires one argument"}
		}
		n, ok := parseIntLiteral(sl.Args[0])
		if !ok || n < 0 {
			return nil, 0, &ParseError{Line: sl.LineNo, Reason: ".zero argument must be a non-negative integer"}
		}
		return &pendingItem{Address: addr, Data: make([]byte, n)}, uint32(n), nil

	case ".data":
		var data []byte
		for _, tok := range sl.Args {
			v, ok := parseIntLiteral(tok)
			if !ok {
				return nil, 0, &ParseError{Line: sl.LineNo, Reason: "invalid .data literal: " + tok}
			}
			data = append(data, encodeUint32BE(uint32(v))...)
		}
		return &pendingItem{Address: addr, Data: data}, uint32(len(data)), nil

	case ".binary":
		if len(sl.Args) != 1 {
			return nil, 0, &ParseError{Line: sl.LineNo, Reason: ".binary requires one quoted hex argument"}
		}
		hexText := strings.Trim(sl.Args[0], `"`)
		data, err := decodeHexString(hexText)
		if err != nil {
			return nil, 0, &ParseError{Line: sl.LineNo, Reason: err.Error()}
		}
		return &pendingItem{Address: addr, Data: data}, uint32(len(data)), nil

	case ".offsetof":
		if len(sl.Args) != 1 {
			return nil, 0, &ParseError{Line: sl.LineNo, Reason: ".offsetof requires one label argument"}
		}
		return &pendingItem{Address: addr, Data: make([]byte, 4), DataRef: sl.Args[0]}, 4, nil

	default:
		return nil, 0, &ParseError{Line: sl.LineNo, Reason: "unknown directive " + sl.Directive}
	}
}

func decodeHexString(s string) ([]byte, error) {
	s = strings.ReplaceAll(s, " ", "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("odd-length hex string")
	}
	out := make([]byte, len(s)/2)
	for i := range out {
		var b byte
		_, err := fmt.Sscanf(s[i*2:i*2+2], "%02x", &b)
		if err != nil {
			return nil, fmt.Errorf("invalid hex byte %q", s[i*2:i*2+2])
		}
		out[i] = b
	}
	return out, nil
}
