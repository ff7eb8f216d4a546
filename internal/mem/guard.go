package mem

import (
	gomem "github.com/shirou/gopsutil/v3/mem"
)

// canAllocate reports whether the host currently has enough available
// memory for a region of the given size. When the host stats cannot be
// read the guard stays permissive and lets the allocator decide.
func canAllocate(size uint64) bool {
	vm, err := gomem.VirtualMemory()
	if err != nil {
		return true
	}
	return size <= vm.Available
}
