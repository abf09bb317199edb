package container

import "fmt"

// PEFF is a minimal stub for the classic Mac OS "Preferred Executable
// Format" container. PPC code resources are occasionally shipped inside a
// PEFF container rather than a bare code blob; this loader only goes as
// far as locating the code section bytes, since everything downstream
// (the PowerPC disassembler, assembler and interpreter) operates on plain
// byte slices regardless of which container produced them.
type PEFF struct {
	CodeSection []byte
}

const peffMagic = 0x4A6F7921 // "Joy!"

// LoadPEFF validates the container header and returns the bytes of the
// first entry in its section table; the kind of that section is not
// checked. It does not resolve imports/exports or loader
// relocations; those are out of scope for this engine, which only needs
// the raw instruction bytes.
func LoadPEFF(data []byte) (*PEFF, error) {
	if len(data) < 40 {
		return nil, fmt.Errorf("container: PEFF header truncated")
	}
	magic := uint32(data[0])<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3])
	if magic != peffMagic {
		return nil, fmt.Errorf("container: not a PEFF container (bad magic 0x%08X)", magic)
	}
	sectionCount := int(data[32])<<8 | int(data[33])
	if sectionCount == 0 {
		return nil, fmt.Errorf("container: PEFF has no sections")
	}

	headerEnd := 40 + sectionCount*28
	if headerEnd > len(data) {
		return nil, fmt.Errorf("container: PEFF section table exceeds file length")
	}
	sectionHeader := data[40:headerEnd]
	containerOffset := int(sectionHeader[20])<<24 | int(sectionHeader[21])<<16 | int(sectionHeader[22])<<8 | int(sectionHeader[23])
	packedSize := int(sectionHeader[24])<<24 | int(sectionHeader[25])<<16 | int(sectionHeader[26])<<8 | int(sectionHeader[27])
	if containerOffset+packedSize > len(data) {
		return nil, fmt.Errorf("container: PEFF code section exceeds file length")
	}

	return &PEFF{CodeSection: data[containerOffset : containerOffset+packedSize]}, nil
}
