package bcc

import "sync"

// OrphanBlockPool holds blocks that arrived before their parent, keyed by
// signing-root (§4.D). It is safe for concurrent use.
type OrphanBlockPool struct {
	mu   sync.RWMutex
	pool map[Hash32]*BeaconBlock
}

// NewOrphanBlockPool returns an empty pool.
func NewOrphanBlockPool() *OrphanBlockPool {
	return NewOrphanBlockPoolWithCapacity(0)
}

// NewOrphanBlockPoolWithCapacity returns an empty pool whose backing map is
// preallocated for capacity entries, sized from Config.NewBlockBufferSize by
// callers that expect sustained out-of-order block arrival.
func NewOrphanBlockPoolWithCapacity(capacity int) *OrphanBlockPool {
	return &OrphanBlockPool{pool: make(map[Hash32]*BeaconBlock, capacity)}
}

// Contains reports whether root is already pooled as an orphan.
func (p *OrphanBlockPool) Contains(root Hash32) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.pool[root]
	return ok
}

// Get returns the pooled orphan with this signing-root, or
// ErrBlockNotFound.
func (p *OrphanBlockPool) Get(root Hash32) (*BeaconBlock, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	block, ok := p.pool[root]
	if !ok {
		return nil, ErrBlockNotFound
	}
	return block, nil
}

// Add pools block if it is not already present.
func (p *OrphanBlockPool) Add(block *BeaconBlock) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.pool[block.SigningRoot]; !ok {
		p.pool[block.SigningRoot] = block
	}
}

// PopChildren removes and returns every pooled block whose parent root is
// parentRoot.
func (p *OrphanBlockPool) PopChildren(parentRoot Hash32) []*BeaconBlock {
	p.mu.Lock()
	defer p.mu.Unlock()
	var children []*BeaconBlock
	for root, block := range p.pool {
		if block.ParentRoot == parentRoot {
			children = append(children, block)
			delete(p.pool, root)
		}
	}
	return children
}
