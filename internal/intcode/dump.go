package intcode

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
)

const dumpRowWidth = 8

// Dump writes the VM registers and memory image to w, eight cells to a row,
// marking the cell under the program counter with '>'. Only rows within
// allocated pages are written; unallocated gaps and rows of zeros are elided.
func (vm *VM) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# VM Dump %v\n", vm.name)
	fmt.Fprintf(bw, "  state: %v\n", vm.state)
	if vm.err != nil {
		fmt.Fprintf(bw, "  error: %v\n", vm.err)
	}
	fmt.Fprintf(bw, "  pc: %v\n", vm.pc)
	fmt.Fprintf(bw, "  base: %v\n", vm.base)
	if inst, err := Decode(vm.load0(vm.pc)); err == nil {
		fmt.Fprintf(bw, "  next: %v\n", inst)
	}

	rows := vm.dumpRows()
	addrWidth := 1
	if n := len(rows); n > 0 {
		addrWidth = len(strconv.FormatUint(uint64(rows[n-1]), 10))
	}
	var (
		buf    [dumpRowWidth]int64
		next   uint
		elided bool
	)
	for _, addr := range rows {
		row := buf[:]
		if n := vm.mem.Len() - addr; n < dumpRowWidth {
			row = row[:n]
		}
		vm.mem.LoadInto(addr, row)
		if addr > next && !elided {
			bw.WriteString("  ...\n")
			elided = true
		}
		next = addr + uint(len(row))
		hasPC := vm.pc >= int64(addr) && vm.pc < int64(next)
		if !hasPC && allZero(row) {
			if !elided {
				bw.WriteString("  ...\n")
				elided = true
			}
			continue
		}
		elided = false
		fmt.Fprintf(bw, "  @%*d", addrWidth, addr)
		for i, val := range row {
			if int64(addr)+int64(i) == vm.pc {
				bw.WriteString(" >")
			} else {
				bw.WriteString("  ")
			}
			bw.WriteString(strconv.FormatInt(val, 10))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// dumpRows returns the start address of every row that overlaps an
// allocated page below the memory extent, plus the row holding the program
// counter, in address order.
func (vm *VM) dumpRows() []uint {
	end := vm.mem.Len()
	var rows []uint
	vm.mem.Pages(func(base uint, vals []int64) {
		pageEnd := base + uint(len(vals))
		for addr := base / dumpRowWidth * dumpRowWidth; addr < pageEnd && addr < end; addr += dumpRowWidth {
			if n := len(rows); n == 0 || rows[n-1] < addr {
				rows = append(rows, addr)
			}
		}
	})
	if vm.pc >= 0 && uint(vm.pc) < end {
		addr := uint(vm.pc) / dumpRowWidth * dumpRowWidth
		if i, found := slices.BinarySearch(rows, addr); !found {
			rows = slices.Insert(rows, i, addr)
		}
	}
	return rows
}

// load0 is load without halting, for diagnostics.
func (vm *VM) load0(addr int64) int64 {
	if addr < 0 {
		return 0
	}
	val, _ := vm.mem.Load(uint(addr))
	return val
}

func allZero(vals []int64) bool {
	for _, val := range vals {
		if val != 0 {
			return false
		}
	}
	return true
}
