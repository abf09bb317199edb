package container

import (
	"encoding/binary"
	"fmt"

	"github.com/fuzziqersoftware/resource-dasm-sub002/memory"
)

// RelocationType identifies the patch a single relocation record applies,
// following the typed set the Dolphin/Wii REL format defines.
type RelocationType uint8

// The relocation types this loader understands. Unrecognized types are
// surfaced as an error from (*Relocation).Apply rather than silently
// skipped, since an unhandled patch would leave the target module with a
// dangling reference.
const (
	RelocationAddr32 RelocationType = 1
	RelocationAddr24 RelocationType = 2
	RelocationAddr16 RelocationType = 3
	RelocationAddr16Lo RelocationType = 4
	RelocationAddr16Hi RelocationType = 5
	RelocationAddr16Ha RelocationType = 6
	RelocationAddr14 RelocationType = 7
	// RelocationAddr14BrTaken and RelocationAddr14BrNotTaken carry the same
	// branch-prediction hint PowerPC conditional branches encode in their
	// low bits; the patch they apply is identical to RelocationAddr14
	// (low 14 bits of the instruction word), the prediction hint is just
	// metadata for the linker, not something Apply needs to treat
	// differently.
	RelocationAddr14BrTaken    RelocationType = 8
	RelocationAddr14BrNotTaken RelocationType = 9
	RelocationRel24 RelocationType = 10
	RelocationRel14 RelocationType = 11
	RelocationNop      RelocationType = 201
	RelocationSection  RelocationType = 202
	RelocationStop     RelocationType = 203
)

// SectionHeader describes one section of a REL module: its offset within
// the file (with the low bit stolen as an "executable" flag, matching the
// on-disk encoding) and its length.
type SectionHeader struct {
	Offset     uint32
	Length     uint32
	Executable bool
}

// REL is a parsed relocatable module: a module id, its section table, and
// the raw relocation byte stream (decoded lazily by Relocations, since
// applying relocations requires knowing where every other loaded module
// ended up).
type REL struct {
	ModuleID   uint32
	Sections   []SectionHeader
	relocData  []byte
	raw        []byte
}

// LoadREL parses a REL module header and section table. relocOffset and
// relocSize locate the relocation byte stream within data; the caller
// reads them from whatever import-table structure precedes the
// relocations (outside the scope of this minimal loader).
func LoadREL(data []byte, sectionCount int, sectionTableOffset uint32, relocOffset, relocSize uint32) (*REL, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("container: REL header truncated")
	}
	r := &REL{ModuleID: be32(data, 0), raw: data}

	if uint64(sectionTableOffset)+uint64(sectionCount)*8 > uint64(len(data)) {
		return nil, fmt.Errorf("container: REL section table exceeds file length")
	}
	r.Sections = make([]SectionHeader, sectionCount)
	for i := 0; i < sectionCount; i++ {
		off := sectionTableOffset + uint32(i*8)
		raw := be32(data, int(off))
		r.Sections[i] = SectionHeader{
			Offset:     raw &^ 1,
			Executable: raw&1 != 0,
			Length:     be32(data, int(off)+4),
		}
	}

	if uint64(relocOffset)+uint64(relocSize) > uint64(len(data)) {
		return nil, fmt.Errorf("container: REL relocation stream exceeds file length")
	}
	r.relocData = data[relocOffset : relocOffset+relocSize]

	return r, nil
}

// Relocation is one decoded patch record: where to write (Section,
// Offset), what kind of patch (Type), and the symbol address it
// references (Symbol, already resolved by the caller from the target
// module's export table or its own section base).
type Relocation struct {
	Section uint8
	Offset  uint32
	Type    RelocationType
	Symbol  uint32
}

// Relocations decodes the REL's relocation stream into an ordered list,
// replaying the same running-offset cursor the original format uses: each
// record's Offset field is a 16-bit delta added to the previous record's
// address, reset to zero whenever a SECTION record switches the active
// target section.
func (r *REL) Relocations() ([]Relocation, error) {
	var out []Relocation
	var cursor uint32
	var section uint8

	buf := r.relocData
	for i := 0; i+8 <= len(buf); i += 8 {
		delta := binary.BigEndian.Uint16(buf[i:])
		typ := RelocationType(buf[i+2])
		sectionField := buf[i+3]
		addend := binary.BigEndian.Uint32(buf[i+4:])

		switch typ {
		case RelocationStop:
			return out, nil
		case RelocationSection:
			section = sectionField
			cursor = 0
			continue
		case RelocationNop:
			cursor += uint32(delta)
			continue
		}

		cursor += uint32(delta)
		out = append(out, Relocation{Section: section, Offset: cursor, Type: typ, Symbol: addend})
	}
	return out, fmt.Errorf("container: relocation stream ended without a STOP record")
}

// Apply writes the patch r describes into mem, at sectionBase+r.Offset
// (sectionBase is the address the target section was loaded at).
func (r *Relocation) Apply(mem *memory.Context, sectionBase uint32) error {
	addr := sectionBase + r.Offset
	switch r.Type {
	case RelocationAddr32:
		return mem.WriteUint32(addr, r.Symbol)
	case RelocationAddr24:
		word, err := mem.ReadUint32(addr)
		if err != nil {
			return err
		}
		word = (word &^ 0x03FFFFFC) | (r.Symbol & 0x03FFFFFC)
		return mem.WriteUint32(addr, word)
	case RelocationAddr16:
		return mem.WriteUint16(addr, uint16(r.Symbol))
	case RelocationAddr16Lo:
		return mem.WriteUint16(addr, uint16(r.Symbol&0xFFFF))
	case RelocationAddr16Hi:
		return mem.WriteUint16(addr, uint16(r.Symbol>>16))
	case RelocationAddr16Ha:
		adjusted := r.Symbol
		if r.Symbol&0x8000 != 0 {
			adjusted += 0x10000
		}
		return mem.WriteUint16(addr, uint16(adjusted>>16))
	case RelocationAddr14, RelocationAddr14BrTaken, RelocationAddr14BrNotTaken:
		word, err := mem.ReadUint32(addr)
		if err != nil {
			return err
		}
		word = (word &^ 0xFFFC) | (r.Symbol & 0xFFFC)
		return mem.WriteUint32(addr, word)
	case RelocationRel24:
		word, err := mem.ReadUint32(addr)
		if err != nil {
			return err
		}
		disp := r.Symbol - addr
		word = (word &^ 0x03FFFFFC) | (disp & 0x03FFFFFC)
		return mem.WriteUint32(addr, word)
	case RelocationRel14:
		word, err := mem.ReadUint32(addr)
		if err != nil {
			return err
		}
		disp := r.Symbol - addr
		word = (word &^ 0xFFFC) | (disp & 0xFFFC)
		return mem.WriteUint32(addr, word)
	default:
		return fmt.Errorf("container: unsupported relocation type %d at 0x%08X", r.Type, addr)
	}
}
