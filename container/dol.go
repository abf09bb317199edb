// Package container loads the DOL, REL and PEFF executable formats these
// PowerPC images ship in. It is a pure byte-slice reader: it touches a
// memory.Context only when explicitly asked to, via DOL.LoadInto (copying
// segment bytes) or Relocation.Apply (patching one relocation site).
package container

import (
	"encoding/binary"
	"fmt"

	"github.com/fuzziqersoftware/resource-dasm-sub002/memory"
)

const (
	dolTextSegmentCount = 7
	dolDataSegmentCount = 11
	dolHeaderSize       = 0x100
)

// Segment is one loadable region of a DOL: a file offset, the address it
// maps to in the target's address space, and its size in bytes.
type Segment struct {
	Offset  uint32
	Address uint32
	Size    uint32
}

// DOL is a parsed Nintendo "Dolphin" executable: up to 7 text segments and
// 11 data segments, an uninitialized BSS region, and an entry point.
type DOL struct {
	TextSegments [dolTextSegmentCount]Segment
	DataSegments [dolDataSegmentCount]Segment
	BSSAddress   uint32
	BSSSize      uint32
	EntryPoint   uint32

	raw []byte
}

// LoadDOL parses a raw DOL image. It validates that every segment's
// [offset, offset+size) range fits inside data but does not copy any
// bytes; call LoadInto to actually map the image.
func LoadDOL(data []byte) (*DOL, error) {
	if len(data) < dolHeaderSize {
		return nil, fmt.Errorf("container: DOL header truncated (%d bytes)", len(data))
	}

	d := &DOL{raw: data}
	for i := 0; i < dolTextSegmentCount; i++ {
		d.TextSegments[i].Offset = be32(data, 0x00+i*4)
	}
	for i := 0; i < dolDataSegmentCount; i++ {
		d.DataSegments[i].Offset = be32(data, 0x1C+i*4)
	}
	for i := 0; i < dolTextSegmentCount; i++ {
		d.TextSegments[i].Address = be32(data, 0x48+i*4)
	}
	for i := 0; i < dolDataSegmentCount; i++ {
		d.DataSegments[i].Address = be32(data, 0x64+i*4)
	}
	for i := 0; i < dolTextSegmentCount; i++ {
		d.TextSegments[i].Size = be32(data, 0x90+i*4)
	}
	for i := 0; i < dolDataSegmentCount; i++ {
		d.DataSegments[i].Size = be32(data, 0xAC+i*4)
	}
	d.BSSAddress = be32(data, 0xD8)
	d.BSSSize = be32(data, 0xDC)
	d.EntryPoint = be32(data, 0xE0)

	for _, seg := range d.allSegments() {
		if seg.Size == 0 {
			continue
		}
		end := uint64(seg.Offset) + uint64(seg.Size)
		if end > uint64(len(data)) {
			return nil, fmt.Errorf("container: DOL segment at offset 0x%X size 0x%X exceeds file length", seg.Offset, seg.Size)
		}
	}

	return d, nil
}

func (d *DOL) allSegments() []Segment {
	out := make([]Segment, 0, dolTextSegmentCount+dolDataSegmentCount)
	out = append(out, d.TextSegments[:]...)
	out = append(out, d.DataSegments[:]...)
	return out
}

// LoadInto copies every non-empty segment's bytes into mem at its mapped
// address, and zeroes the BSS region. mem must already cover every
// segment's address range and the BSS range; callers typically size it
// from the lowest segment address to the highest segment end or BSS end.
func (d *DOL) LoadInto(mem *memory.Context) error {
	for _, seg := range d.allSegments() {
		if seg.Size == 0 {
			continue
		}
		if err := mem.WriteBytes(seg.Address, d.raw[seg.Offset:seg.Offset+seg.Size]); err != nil {
			return fmt.Errorf("container: loading DOL segment at 0x%08X: %w", seg.Address, err)
		}
	}
	if d.BSSSize > 0 {
		if err := mem.WriteBytes(d.BSSAddress, make([]byte, d.BSSSize)); err != nil {
			return fmt.Errorf("container: zeroing DOL BSS at 0x%08X: %w", d.BSSAddress, err)
		}
	}
	return nil
}

// AddressRange returns the lowest mapped address and the address one past
// the highest mapped byte (including BSS), a convenience for sizing a
// memory.Context before calling LoadInto.
func (d *DOL) AddressRange() (low, high uint32) {
	first := true
	consider := func(addr, size uint32) {
		if size == 0 {
			return
		}
		end := addr + size
		if first {
			low, high = addr, end
			first = false
			return
		}
		if addr < low {
			low = addr
		}
		if end > high {
			high = end
		}
	}
	for _, seg := range d.allSegments() {
		consider(seg.Address, seg.Size)
	}
	consider(d.BSSAddress, d.BSSSize)
	return low, high
}

func be32(data []byte, offset int) uint32 {
	return binary.BigEndian.Uint32(data[offset:])
}
