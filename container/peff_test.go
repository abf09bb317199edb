package container

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildPEFF assembles a minimal PEFF container: magic, a one-entry section
// table, and the code bytes the table's first entry points at.
func buildPEFF(t *testing.T, code []byte) []byte {
	t.Helper()
	put32 := func(buf []byte, off int, v uint32) {
		buf[off], buf[off+1], buf[off+2], buf[off+3] = byte(v>>24), byte(v>>16), byte(v>>8), byte(v)
	}

	const headerEnd = 40 + 28
	codeOff := headerEnd
	buf := make([]byte, codeOff+len(code))

	put32(buf, 0, peffMagic)
	buf[32], buf[33] = 0, 1 // sectionCount = 1
	put32(buf, 40+20, uint32(codeOff))
	put32(buf, 40+24, uint32(len(code)))
	copy(buf[codeOff:], code)
	return buf
}

func TestLoadPEFFExtractsCodeSection(t *testing.T) {
	code := []byte{0x4E, 0x80, 0x00, 0x20}
	raw := buildPEFF(t, code)
	p, err := LoadPEFF(raw)
	require.NoError(t, err)
	require.Equal(t, code, p.CodeSection)
}

func TestLoadPEFFRejectsBadMagic(t *testing.T) {
	raw := buildPEFF(t, []byte{1, 2, 3, 4})
	raw[0] = 0
	_, err := LoadPEFF(raw)
	require.Error(t, err)
}

func TestLoadPEFFRejectsTruncatedHeader(t *testing.T) {
	_, err := LoadPEFF(make([]byte, 10))
	require.Error(t, err)
}

func TestLoadPEFFRejectsOversizedCodeSection(t *testing.T) {
	raw := buildPEFF(t, []byte{1, 2, 3, 4})
	// Corrupt the packed size field to claim more bytes than the file has.
	raw[40+24], raw[40+25], raw[40+26], raw[40+27] = 0xFF, 0xFF, 0xFF, 0xFF
	_, err := LoadPEFF(raw)
	require.Error(t, err)
}
