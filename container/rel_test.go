package container

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fuzziqersoftware/resource-dasm-sub002/memory"
)

func relRecord(delta uint16, typ RelocationType, section uint8, addend uint32) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint16(buf[0:], delta)
	buf[2] = byte(typ)
	buf[3] = section
	binary.BigEndian.PutUint32(buf[4:], addend)
	return buf
}

func TestLoadRELParsesHeaderAndSections(t *testing.T) {
	data := make([]byte, 0x20)
	binary.BigEndian.PutUint32(data[0:], 42) // module id
	binary.BigEndian.PutUint32(data[0x10:], 0x80003001) // offset with executable bit set
	binary.BigEndian.PutUint32(data[0x14:], 0x100)       // length

	r, err := LoadREL(data, 1, 0x10, 0, 0)
	require.NoError(t, err)
	require.Equal(t, uint32(42), r.ModuleID)
	require.Len(t, r.Sections, 1)
	require.Equal(t, uint32(0x80003000), r.Sections[0].Offset)
	require.True(t, r.Sections[0].Executable)
	require.Equal(t, uint32(0x100), r.Sections[0].Length)
}

func TestRELRelocationsDecodesCursorAndSection(t *testing.T) {
	var buf []byte
	buf = append(buf, relRecord(0, RelocationSection, 1, 0)...)
	buf = append(buf, relRecord(4, RelocationAddr32, 0, 0x80001000)...)
	buf = append(buf, relRecord(8, RelocationAddr32, 0, 0x80002000)...)
	buf = append(buf, relRecord(0, RelocationStop, 0, 0)...)

	header := make([]byte, 4)
	data := append(header, buf...)
	r, err := LoadREL(data, 0, 0, 4, uint32(len(buf)))
	require.NoError(t, err)

	relocs, err := r.Relocations()
	require.NoError(t, err)
	require.Len(t, relocs, 2)
	require.Equal(t, uint8(1), relocs[0].Section)
	require.Equal(t, uint32(4), relocs[0].Offset)
	require.Equal(t, uint32(12), relocs[1].Offset, "cursor accumulates deltas")
}

func TestRELRelocationsRequiresStop(t *testing.T) {
	buf := relRecord(4, RelocationAddr32, 0, 0x1000)
	data := append(make([]byte, 4), buf...)
	r, err := LoadREL(data, 0, 0, 4, uint32(len(buf)))
	require.NoError(t, err)
	_, err = r.Relocations()
	require.Error(t, err)
}

func TestRelocationApplyAddr32(t *testing.T) {
	mem := memory.New(0x80000000, 0x100)
	reloc := &Relocation{Offset: 0x10, Type: RelocationAddr32, Symbol: 0xCAFEBABE}
	require.NoError(t, reloc.Apply(mem, 0x80000000))
	v, err := mem.ReadUint32(0x80000010)
	require.NoError(t, err)
	require.Equal(t, uint32(0xCAFEBABE), v)
}

func TestRelocationApplyRel24PatchesInPlace(t *testing.T) {
	mem := memory.New(0x80000000, 0x100)
	require.NoError(t, mem.WriteUint32(0x80000020, 0x48000001)) // bl opcode, placeholder target
	reloc := &Relocation{Offset: 0x20, Type: RelocationRel24, Symbol: 0x80000040}
	require.NoError(t, reloc.Apply(mem, 0x80000000))
	v, err := mem.ReadUint32(0x80000020)
	require.NoError(t, err)
	require.Equal(t, uint32(1), v&1, "opcode bits outside the displacement field must survive")
}

func TestRelocationApplyAddr14BranchHintVariantsPatchLike14(t *testing.T) {
	for _, typ := range []RelocationType{RelocationAddr14, RelocationAddr14BrTaken, RelocationAddr14BrNotTaken} {
		mem := memory.New(0x80000000, 0x100)
		require.NoError(t, mem.WriteUint32(0x80000030, 0x41820000)) // bc opcode, zero displacement
		reloc := &Relocation{Offset: 0x30, Type: typ, Symbol: 0x80001FFC}
		require.NoError(t, reloc.Apply(mem, 0x80000000))
		v, err := mem.ReadUint32(0x80000030)
		require.NoError(t, err)
		require.Equal(t, uint32(0x41821FFC), v, "type %d must patch the low 14 bits exactly like ADDR14", typ)
	}
}

func TestRelocationApplyUnsupportedTypeErrors(t *testing.T) {
	mem := memory.New(0, 0x10)
	reloc := &Relocation{Type: RelocationType(99)}
	require.Error(t, reloc.Apply(mem, 0))
}
