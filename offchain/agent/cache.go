package agent

import (
	"sync"
)

// PoolCache is a thread-safe cache of pool settlement views
type PoolCache struct {
	pools map[string]*PoolInfo
	mu    sync.RWMutex
}

// NewPoolCache creates a new pool cache
func NewPoolCache() *PoolCache {
	return &PoolCache{
		pools: make(map[string]*PoolInfo),
	}
}

// Get retrieves a pool from the cache
func (c *PoolCache) Get(poolID string) (*PoolInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	info, exists := c.pools[poolID]
	return info, exists
}

// Set stores a pool in the cache
func (c *PoolCache) Set(info *PoolInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pools[info.PoolID] = info
}

// Delete removes a pool from the cache
func (c *PoolCache) Delete(poolID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pools, poolID)
}

// Len returns the number of pools in the cache
func (c *PoolCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pools)
}

// GetAll returns all pools in the cache
func (c *PoolCache) GetAll() []*PoolInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	pools := make([]*PoolInfo, 0, len(c.pools))
	for _, info := range c.pools {
		pools = append(pools, info)
	}
	return pools
}

// GetByManager returns all pools settled by a specific manager
func (c *PoolCache) GetByManager(manager string) []*PoolInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	pools := make([]*PoolInfo, 0)
	for _, info := range c.pools {
		if info.Manager == manager {
			pools = append(pools, info)
		}
	}
	return pools
}

// InstructionBuffer is a thread-safe buffer for distributions pending
// submission
type InstructionBuffer struct {
	instructions []*DistributionInstruction
	maxSize      int
	mu           sync.Mutex
}

// NewInstructionBuffer creates a new buffer with the given max batch size
func NewInstructionBuffer(maxSize int) *InstructionBuffer {
	if maxSize <= 0 {
		maxSize = 50
	}
	return &InstructionBuffer{
		instructions: make([]*DistributionInstruction, 0, maxSize),
		maxSize:      maxSize,
	}
}

// Add adds an instruction to the buffer
func (b *InstructionBuffer) Add(instruction *DistributionInstruction) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.instructions = append(b.instructions, instruction)
}

// Flush returns all instructions and clears the buffer
func (b *InstructionBuffer) Flush() []*DistributionInstruction {
	b.mu.Lock()
	defer b.mu.Unlock()
	instructions := b.instructions
	b.instructions = make([]*DistributionInstruction, 0, b.maxSize)
	return instructions
}

// FlushBatch returns up to maxSize instructions and removes them
func (b *InstructionBuffer) FlushBatch() []*DistributionInstruction {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.instructions) == 0 {
		return nil
	}

	count := b.maxSize
	if len(b.instructions) < count {
		count = len(b.instructions)
	}

	batch := b.instructions[:count]
	b.instructions = b.instructions[count:]
	return batch
}

// Len returns the number of instructions in the buffer
func (b *InstructionBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.instructions)
}

// IsFull returns true if the buffer is at or above max size
func (b *InstructionBuffer) IsFull() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.instructions) >= b.maxSize
}

// Clear removes all instructions from the buffer
func (b *InstructionBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.instructions = make([]*DistributionInstruction, 0, b.maxSize)
}

// Peek returns the instructions without removing them
func (b *InstructionBuffer) Peek() []*DistributionInstruction {
	b.mu.Lock()
	defer b.mu.Unlock()
	result := make([]*DistributionInstruction, len(b.instructions))
	copy(result, b.instructions)
	return result
}
