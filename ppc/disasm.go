package ppc

import (
	"fmt"
	"sort"
	"strings"
)

// LabelMap associates an address with the symbol names that should be
// printed as a label line immediately before the instruction at that
// address. The disassembler also synthesizes "label_XXXXXXXX" (or
// "fn_XXXXXXXX" for a call target, LK=1) labels for any branch target that
// falls inside the disassembled range and has no entry here.
type LabelMap map[uint32][]string

// Disassemble renders code (a byte slice of 4-byte-aligned instructions)
// as assembly text. base is the address of code[0]; labels supplies
// caller-known symbol names (e.g. from a REL's imported symbol table);
// imports, if non-empty, is printed as a comment block of import names
// ahead of the code, and each D-form load/store off r2 whose displacement
// maps to an import ordinal is annotated with that import's name.
//
// This is a two-pass disassembler: the first pass decodes every
// instruction and collects every in-range branch target into a label set
// merged with labels; the second pass renders final text using the
// complete label set, so a forward branch's target label is already known
// when the branch itself is printed.
func Disassemble(code []byte, base uint32, labels LabelMap, imports []string) string {
	n := len(code) / 4
	words := make([]uint32, n)
	for i := 0; i < n; i++ {
		words[i] = uint32(code[i*4])<<24 | uint32(code[i*4+1])<<16 | uint32(code[i*4+2])<<8 | uint32(code[i*4+3])
	}

	allLabels := LabelMap{}
	for addr, names := range labels {
		allLabels[addr] = append([]string(nil), names...)
	}

	for i, w := range words {
		pc := base + uint32(i*4)
		target, ok := branchTargetOf(w, pc)
		if !ok {
			continue
		}
		if target < base || target >= base+uint32(len(code)) {
			continue
		}
		if _, has := allLabels[target]; !has {
			// LK=1 (bl/bcl) marks a call: name the target like a function
			// rather than a bare branch label.
			prefix := "label"
			if GetBLink(w) {
				prefix = "fn"
			}
			allLabels[target] = []string{fmt.Sprintf("%s_%08X", prefix, target)}
		}
	}

	var out strings.Builder
	if len(imports) > 0 {
		out.WriteString("# imports:\n")
		for _, imp := range imports {
			out.WriteString(fmt.Sprintf("#   %s\n", imp))
		}
		out.WriteString("\n")
	}

	for i, w := range words {
		pc := base + uint32(i*4)
		for _, name := range misalignedLabelsBefore(allLabels, pc) {
			out.WriteString(name)
			out.WriteString(": // (misaligned)\n")
		}
		if names, ok := allLabels[pc]; ok {
			for _, name := range names {
				out.WriteString(name)
				out.WriteString(":\n")
			}
		}
		text := disassembleOne(w, pc, allLabels, nil)
		text += importAnnotation(w, imports)
		out.WriteString(fmt.Sprintf("%08X  %08X  %s\n", pc, w, text))
	}
	return out.String()
}

// misalignedLabelsBefore returns the names of any caller-supplied labels
// that fall strictly between pc and the next instruction word (pc+4):
// addresses the decoded instruction stream never visits because it only
// steps by 4. These would otherwise be silently dropped.
func misalignedLabelsBefore(allLabels LabelMap, pc uint32) []string {
	var names []string
	for addr := pc + 1; addr < pc+4; addr++ {
		names = append(names, allLabels[addr]...)
	}
	return names
}

// importEligibleOps lists the D-form load/store opcodes whose displacement
// operand is eligible for import annotation.
var importEligibleOps = map[uint32]bool{
	32: true, 33: true, 34: true, 35: true, 36: true, 37: true,
	38: true, 39: true, 40: true, 41: true, 42: true, 43: true,
	44: true, 45: true, 46: true, 47: true, 48: true, 49: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true,
}

// importAnnotation computes the trailing "/* import N => name */" comment
// for a D-form memory reference off r2: the small-data base register GC/Wii
// REL files route imported-symbol accesses through. N is the import table
// ordinal the linker would have resolved disp to: (disp+0x8000)/4.
func importAnnotation(w uint32, imports []string) string {
	if len(imports) == 0 || !importEligibleOps[GetOp(w)] {
		return ""
	}
	if GetReg2(w) != 2 {
		return ""
	}
	idx := (GetImmExt(w) + 0x8000) / 4
	if idx < 0 || int(idx) >= len(imports) {
		return ""
	}
	return fmt.Sprintf(" /* import %d => %s */", idx, imports[idx])
}

// branchTargetOf returns the absolute address a branch-class instruction
// targets, and whether w is such an instruction at all.
func branchTargetOf(w uint32, pc uint32) (uint32, bool) {
	switch GetOp(w) {
	case 18:
		disp := GetBTarget(w)
		if GetBAbs(w) {
			return uint32(disp), true
		}
		return pc + uint32(disp), true
	case 16:
		disp := GetBDisp(w)
		if GetBAbs(w) {
			return uint32(disp), true
		}
		return pc + uint32(disp), true
	default:
		return 0, false
	}
}

// disassembleOne renders a single instruction word. labels, when non-nil,
// is consulted to print a symbolic name instead of a raw hex address for
// branch targets; sortedNames is reserved for callers that want
// deterministic multi-name label rendering and may be nil.
func disassembleOne(w uint32, pc uint32, labels LabelMap, sortedNames []string) string {
	entry := Decode(w)
	if entry == nil {
		return fmt.Sprintf(".invalid  # 0x%08X", w)
	}
	if entry.Dasm == nil {
		return genericDasm(entry.Mnemonic, w)
	}
	text := entry.Dasm(w, pc)
	if labels == nil {
		return text
	}
	if target, ok := branchTargetOf(w, pc); ok {
		if names, has := labels[target]; has && len(names) > 0 {
			name := names[0]
			return replaceHexTarget(text, target, name)
		}
	}
	return text
}

// replaceHexTarget swaps the trailing "0x%08X" rendering of target for a
// symbolic name, used once the label pass has resolved it.
func replaceHexTarget(text string, target uint32, name string) string {
	hex := fmt.Sprintf("0x%08X", target)
	if idx := strings.LastIndex(text, hex); idx >= 0 {
		return text[:idx] + name + text[idx+len(hex):]
	}
	return text
}

// genericDasm renders an opcode with no custom formatter as "mnemonic rD,
// rA, rB", the fallback used by entries that only need disassembly
// plumbing (floating point, cache management, etc. where no format
// function was registered).
func genericDasm(mnemonic string, w uint32) string {
	return fmt.Sprintf("%-8s r%d, r%d, r%d", mnemonic, GetReg1(w), GetReg2(w), GetReg3(w))
}

// SortedAddresses returns the addresses of m in ascending order, a small
// convenience for callers rendering a LabelMap outside of Disassemble.
func (m LabelMap) SortedAddresses() []uint32 {
	addrs := make([]uint32, 0, len(m))
	for a := range m {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	return addrs
}
