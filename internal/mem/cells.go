// Package mem provides sparse, paged memory for integer machines.
package mem

import (
	"errors"
	"fmt"
)

// DefaultPageSize provides a default for Cells.PageSize.
const DefaultPageSize = 256

// MaxSnapshot caps the number of cells that Snapshot will densify.
const MaxSnapshot = 1 << 24

// ErrImageTooLarge is returned by Snapshot when memory extends past
// MaxSnapshot cells.
var ErrImageTooLarge = errors.New("memory image too large")

// Cells implements a paged memory of int64 cells, addressed from 0.
//
// Only pages that have been stored into are allocated; every other address
// reads as 0. Pages may not necessarily be the same size: a page allocated
// into a hole below an existing page is trimmed to fit the hole.
type Cells struct {
	// PageSize specifies the length for newly allocated pages.
	PageSize uint

	// Limit specifies the highest usable address when non-zero; any load or
	// store that touches an address above it fails.
	Limit uint

	pages []page
	len   uint
}

type page struct {
	base uint
	vals []int64
}

func (pg page) end() uint { return pg.base + uint(len(pg.vals)) }

// LimitError indicates that a load or store went past Cells.Limit; Addr is
// the last address the operation would have touched.
type LimitError struct {
	Addr uint
	Op   string
}

func (lim LimitError) Error() string {
	return fmt.Sprintf("memory limit exceeded by %v @%v", lim.Op, lim.Addr)
}

// Len returns one past the highest address ever stored to.
func (m *Cells) Len() uint { return m.len }

// Size returns one past the last address covered by an allocated page.
func (m *Cells) Size() uint {
	if i := len(m.pages) - 1; i >= 0 {
		return m.pages[i].end()
	}
	return 0
}

// Load returns the value at addr, or 0 if addr has never been stored to.
// Loading never allocates.
func (m *Cells) Load(addr uint) (int64, error) {
	if err := m.checkLimit(addr, "load"); err != nil {
		return 0, err
	}
	if len(m.pages) == 0 {
		return 0, nil
	}
	pg := m.pages[m.findPage(addr)]
	if addr >= pg.base && addr < pg.end() {
		return pg.vals[addr-pg.base], nil
	}
	return 0, nil
}

// LoadInto reads len(buf) values starting at addr, zeroing any part of buf
// that falls into unallocated space.
// Returns an error if Limit would be exceeded; no partial load is done.
func (m *Cells) LoadInto(addr uint, buf []int64) error {
	if len(buf) == 0 {
		return nil
	}
	end := addr + uint(len(buf))
	if err := m.checkLimit(end-1, "load"); err != nil {
		return err
	}

	for i := range buf {
		buf[i] = 0
	}
	for id := m.findPage(addr); id < len(m.pages); id++ {
		pg := m.pages[id]
		if pg.base >= end {
			break
		}
		if pg.end() <= addr {
			continue
		}
		lo, hi := pg.base, pg.end()
		if lo < addr {
			lo = addr
		}
		if hi > end {
			hi = end
		}
		copy(buf[lo-addr:hi-addr], pg.vals[lo-pg.base:hi-pg.base])
	}
	return nil
}

// Stor stores values starting at addr, allocating pages as needed; the gap
// between the old extent and addr stays zero.
// Returns an error if Limit would be exceeded; no partial store is done.
func (m *Cells) Stor(addr uint, values ...int64) error {
	if len(values) == 0 {
		return nil
	}
	end := addr + uint(len(values))
	if err := m.checkLimit(end-1, "stor"); err != nil {
		return err
	}
	if m.PageSize == 0 {
		m.PageSize = DefaultPageSize
	}

	for id := m.findPage(addr); addr < end; id++ {
		pg := m.allocPage(id, addr)
		if addr >= pg.end() {
			continue
		}
		n := copy(pg.vals[addr-pg.base:], values)
		values = values[n:]
		addr += uint(n)
	}
	if end > m.len {
		m.len = end
	}
	return nil
}

// Snapshot returns a dense copy of memory from 0 up to Len, or
// ErrImageTooLarge if Len exceeds MaxSnapshot.
func (m *Cells) Snapshot() ([]int64, error) {
	if m.len > MaxSnapshot {
		return nil, fmt.Errorf("%w: %v cells", ErrImageTooLarge, m.len)
	}
	buf := make([]int64, m.len)
	if err := m.LoadInto(0, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Pages calls each with the base address and values of every allocated page,
// in address order. The values alias memory and must not be retained.
func (m *Cells) Pages(each func(base uint, vals []int64)) {
	for _, pg := range m.pages {
		each(pg.base, pg.vals)
	}
}

// findPage returns the index of the last page whose base is <= addr; it
// returns 0 when addr falls below every page, and the page count when no page
// exists yet.
func (m *Cells) findPage(addr uint) int {
	i, j := 0, len(m.pages)
	for i < j {
		h := int(uint(i+j)>>1) + 1
		if h < len(m.pages) && m.pages[h].base <= addr {
			i = h
		} else {
			j = h - 1
		}
	}
	return i
}

// allocPage returns the page at id that should hold addr, appending a page
// past the end or inserting one into the hole below page id as needed.
func (m *Cells) allocPage(id int, addr uint) page {
	if id == len(m.pages) {
		base := addr / m.PageSize * m.PageSize
		size := m.PageSize
		if i := len(m.pages) - 1; i >= 0 {
			if lastEnd := m.pages[i].end(); base < lastEnd {
				size -= lastEnd - base
				base = lastEnd
			}
		}
		pg := page{base, make([]int64, size)}
		m.pages = append(m.pages, pg)
		return pg
	}

	pg := m.pages[id]
	if addr >= pg.base {
		return pg
	}

	base := addr / m.PageSize * m.PageSize
	if id > 0 {
		if prevEnd := m.pages[id-1].end(); base < prevEnd {
			base = prevEnd
		}
	}
	size := m.PageSize
	if gap := pg.base - base; size > gap {
		size = gap
	}
	pg = page{base, make([]int64, size)}
	m.pages = append(m.pages, page{})
	copy(m.pages[id+1:], m.pages[id:])
	m.pages[id] = pg
	return pg
}

func (m *Cells) checkLimit(addr uint, op string) error {
	if lim := m.Limit; lim != 0 && addr > lim {
		return LimitError{addr, op}
	}
	return nil
}
