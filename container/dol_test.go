package container

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fuzziqersoftware/resource-dasm-sub002/memory"
)

// buildDOL assembles a minimal but valid DOL image with one text segment
// holding code, one data segment holding data, a BSS region, and an entry
// point, matching the fixed header layout LoadDOL expects.
func buildDOL(t *testing.T, code, data []byte, bssAddr, bssSize, entry uint32) []byte {
	t.Helper()
	const headerSize = 0x100
	codeOff := uint32(headerSize)
	dataOff := codeOff + uint32(len(code))
	buf := make([]byte, int(dataOff)+len(data))

	put := func(off int, v uint32) { binary.BigEndian.PutUint32(buf[off:], v) }

	put(0x00, codeOff)       // text segment 0 offset
	put(0x1C, dataOff)       // data segment 0 offset
	put(0x48, 0x80003000)    // text segment 0 address
	put(0x64, 0x80004000)    // data segment 0 address
	put(0x90, uint32(len(code)))
	put(0xAC, uint32(len(data)))
	put(0xD8, bssAddr)
	put(0xDC, bssSize)
	put(0xE0, entry)

	copy(buf[codeOff:], code)
	copy(buf[dataOff:], data)
	return buf
}

func TestLoadDOLParsesHeader(t *testing.T) {
	code := []byte{0x60, 0x00, 0x00, 0x00}
	data := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	raw := buildDOL(t, code, data, 0x80005000, 0x100, 0x80003000)

	d, err := LoadDOL(raw)
	require.NoError(t, err)
	require.Equal(t, uint32(0x80003000), d.TextSegments[0].Address)
	require.Equal(t, uint32(len(code)), d.TextSegments[0].Size)
	require.Equal(t, uint32(0x80004000), d.DataSegments[0].Address)
	require.Equal(t, uint32(0x80005000), d.BSSAddress)
	require.Equal(t, uint32(0x80003000), d.EntryPoint)
}

func TestLoadDOLRejectsTruncatedHeader(t *testing.T) {
	_, err := LoadDOL(make([]byte, 0x50))
	require.Error(t, err)
}

func TestLoadDOLRejectsSegmentBeyondFile(t *testing.T) {
	raw := buildDOL(t, []byte{1, 2, 3, 4}, nil, 0, 0, 0)
	binary.BigEndian.PutUint32(raw[0x90:], 0xFFFFFFFF) // corrupt text segment 0 size
	_, err := LoadDOL(raw)
	require.Error(t, err)
}

func TestDOLLoadIntoCopiesSegmentsAndZeroesBSS(t *testing.T) {
	code := []byte{0x60, 0x00, 0x00, 0x00}
	data := []byte{0xAA, 0xBB, 0xCC, 0xDD}
	raw := buildDOL(t, code, data, 0x80005000, 0x10, 0x80003000)
	d, err := LoadDOL(raw)
	require.NoError(t, err)

	low, high := d.AddressRange()
	mem := memory.New(low, int(high-low))
	require.NoError(t, d.LoadInto(mem))

	got, err := mem.ReadBytes(0x80003000, len(code))
	require.NoError(t, err)
	require.Equal(t, code, got)

	got, err = mem.ReadBytes(0x80004000, len(data))
	require.NoError(t, err)
	require.Equal(t, data, got)

	bss, err := mem.ReadBytes(0x80005000, 0x10)
	require.NoError(t, err)
	require.Equal(t, make([]byte, 0x10), bss)
}

func TestDOLAddressRangeCoversBSS(t *testing.T) {
	raw := buildDOL(t, []byte{1, 2, 3, 4}, nil, 0x80010000, 0x1000, 0x80003000)
	d, err := LoadDOL(raw)
	require.NoError(t, err)
	low, high := d.AddressRange()
	require.Equal(t, uint32(0x80003000), low)
	require.Equal(t, uint32(0x80010000+0x1000), high)
}
