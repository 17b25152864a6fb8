package core

import (
	"fmt"
	"log/slog"
	"sync"
)

const (
	memoryBase      = 0x10000
	bytesPerBurstMs = 10
)

// MemorySimulator logs a fake heap block per process: allocated when the
// process is created, released each time a run completes it and freed when
// the process leaves the registry. No memory is actually reserved.
type MemorySimulator struct {
	mu     sync.Mutex
	logger *slog.Logger
	next   uintptr
	blocks map[ProcessID]memoryBlock
}

type memoryBlock struct {
	addr uintptr
	size int
}

func NewMemorySimulator(logger *slog.Logger) *MemorySimulator {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemorySimulator{
		logger: logger,
		next:   memoryBase,
		blocks: make(map[ProcessID]memoryBlock),
	}
}

func (m *MemorySimulator) ProcessCreated(spec ProcessSpec) {
	m.mu.Lock()
	defer m.mu.Unlock()

	block := memoryBlock{addr: m.next, size: spec.Burst * bytesPerBurstMs}
	m.next += uintptr(block.size)
	m.blocks[spec.ID] = block

	m.logger.Info("memory block allocated",
		"pid", spec.ID,
		"address", fmt.Sprintf("%#x", block.addr),
		"size", block.size,
	)
}

func (m *MemorySimulator) ProcessCompleted(spec ProcessSpec, at int) {
	m.mu.Lock()
	block, ok := m.blocks[spec.ID]
	m.mu.Unlock()
	if !ok {
		return
	}

	m.logger.Info("memory block released",
		"pid", spec.ID,
		"address", fmt.Sprintf("%#x", block.addr),
		"at", at,
	)
}

// ProcessRemoved drops the block of a process cleared from the registry.
func (m *MemorySimulator) ProcessRemoved(spec ProcessSpec) {
	m.mu.Lock()
	block, ok := m.blocks[spec.ID]
	delete(m.blocks, spec.ID)
	m.mu.Unlock()
	if !ok {
		return
	}

	m.logger.Info("memory block freed",
		"pid", spec.ID,
		"address", fmt.Sprintf("%#x", block.addr),
	)
}

// Allocated reports the simulated block of pid.
func (m *MemorySimulator) Allocated(pid ProcessID) (addr uintptr, size int, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	block, ok := m.blocks[pid]
	return block.addr, block.size, ok
}
