// Package memory implements a logically flat 32-bit address space with
// big-endian typed accessors, as used by the PowerPC interpreter,
// disassembler and the DOL/REL/PEFF container loaders.
//
// A Context owns one contiguous byte region mapped at a base address. The
// interpreter holds the only live mutable borrow of a Context while it is
// running; disassemblers operate on byte slices passed explicitly and never
// touch a Context at all.
package memory

import (
	"encoding/binary"
	"fmt"
)

// Kind identifies the access that faulted.
type Kind int

// The following constants define the three ways an access can fault.
const (
	KindRead Kind = iota
	KindWrite
	KindExecute
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindRead:
		return "read"
	case KindWrite:
		return "write"
	case KindExecute:
		return "execute"
	default:
		return "unknown"
	}
}

// Fault indicates an out-of-range memory access.
type Fault struct {
	Address uint32
	Size    uint32
	Kind    Kind
}

// Error implements error.
func (f *Fault) Error() string {
	return fmt.Sprintf("memory: %s fault at 0x%08X (size %d)", f.Kind, f.Address, f.Size)
}

// Context is a flat 32-bit address space backed by a single byte slice
// mapped at Base. Reads and writes outside [Base, Base+len(data)) fault.
type Context struct {
	base uint32
	data []byte

	lastAccess uint32
}

// New allocates a zeroed region of size bytes mapped at base.
func New(base uint32, size int) *Context {
	return &Context{base: base, data: make([]byte, size)}
}

// NewFromBytes wraps already-loaded bytes as the backing region mapped at
// base. The loader retains ownership of data until it hands the Context to
// an interpreter.
func NewFromBytes(base uint32, data []byte) *Context {
	return &Context{base: base, data: data}
}

// Base returns the address of the first mapped byte.
func (c *Context) Base() uint32 {
	return c.base
}

// Size returns the number of mapped bytes.
func (c *Context) Size() int {
	return len(c.data)
}

// LastAccess returns the effective address of the most recent successful
// access, for post-mortem debug dumps.
func (c *Context) LastAccess() uint32 {
	return c.lastAccess
}

func (c *Context) span(addr uint32, size uint32, kind Kind) (int, error) {
	if addr < c.base {
		return 0, &Fault{Address: addr, Size: size, Kind: kind}
	}
	off64 := uint64(addr) - uint64(c.base)
	if off64+uint64(size) > uint64(len(c.data)) {
		return 0, &Fault{Address: addr, Size: size, Kind: kind}
	}
	c.lastAccess = addr
	return int(off64), nil
}

// ReadUint8 reads a single byte at addr.
func (c *Context) ReadUint8(addr uint32) (uint8, error) {
	off, err := c.span(addr, 1, KindRead)
	if err != nil {
		return 0, err
	}
	return c.data[off], nil
}

// WriteUint8 writes a single byte at addr.
func (c *Context) WriteUint8(addr uint32, value uint8) error {
	off, err := c.span(addr, 1, KindWrite)
	if err != nil {
		return err
	}
	c.data[off] = value
	return nil
}

// ReadUint16 reads a big-endian 16-bit value at addr.
func (c *Context) ReadUint16(addr uint32) (uint16, error) {
	off, err := c.span(addr, 2, KindRead)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(c.data[off:]), nil
}

// WriteUint16 writes a big-endian 16-bit value at addr.
func (c *Context) WriteUint16(addr uint32, value uint16) error {
	off, err := c.span(addr, 2, KindWrite)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint16(c.data[off:], value)
	return nil
}

// ReadUint32 reads a big-endian 32-bit value at addr.
func (c *Context) ReadUint32(addr uint32) (uint32, error) {
	off, err := c.span(addr, 4, KindRead)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(c.data[off:]), nil
}

// WriteUint32 writes a big-endian 32-bit value at addr.
func (c *Context) WriteUint32(addr uint32, value uint32) error {
	off, err := c.span(addr, 4, KindWrite)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint32(c.data[off:], value)
	return nil
}

// ReadUint64 reads a big-endian 64-bit value at addr (used for FPR loads).
func (c *Context) ReadUint64(addr uint32) (uint64, error) {
	off, err := c.span(addr, 8, KindRead)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(c.data[off:]), nil
}

// WriteUint64 writes a big-endian 64-bit value at addr.
func (c *Context) WriteUint64(addr uint32, value uint64) error {
	off, err := c.span(addr, 8, KindWrite)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint64(c.data[off:], value)
	return nil
}

// ReadBytes returns a copy of size bytes starting at addr.
func (c *Context) ReadBytes(addr uint32, size int) ([]byte, error) {
	off, err := c.span(addr, uint32(size), KindRead)
	if err != nil {
		return nil, err
	}
	out := make([]byte, size)
	copy(out, c.data[off:off+size])
	return out, nil
}

// WriteBytes writes data verbatim starting at addr.
func (c *Context) WriteBytes(addr uint32, data []byte) error {
	off, err := c.span(addr, uint32(len(data)), KindWrite)
	if err != nil {
		return err
	}
	copy(c.data[off:], data)
	return nil
}

// Fetch reads a big-endian 32-bit instruction word at addr, faulting with
// KindExecute instead of KindRead.
func (c *Context) Fetch(addr uint32) (uint32, error) {
	off, err := c.span(addr, 4, KindExecute)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(c.data[off:]), nil
}
