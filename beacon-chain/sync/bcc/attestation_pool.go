package bcc

import "sync"

// AttestationPool holds attestations not yet included on chain, keyed by
// hash-tree-root (§4.C). It is safe for concurrent use.
type AttestationPool struct {
	mu   sync.RWMutex
	pool map[Hash32]*Attestation
}

// NewAttestationPool returns an empty pool.
func NewAttestationPool() *AttestationPool {
	return NewAttestationPoolWithCapacity(0)
}

// NewAttestationPoolWithCapacity returns an empty pool whose backing map is
// preallocated for capacity entries, sized from Config.AttestationBufferSize
// by callers that expect sustained attestation traffic.
func NewAttestationPoolWithCapacity(capacity int) *AttestationPool {
	return &AttestationPool{pool: make(map[Hash32]*Attestation, capacity)}
}

// Contains reports whether root is already pooled.
func (p *AttestationPool) Contains(root Hash32) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.pool[root]
	return ok
}

// Get returns the pooled attestation with this root, or
// ErrAttestationNotFound.
func (p *AttestationPool) Get(root Hash32) (*Attestation, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	att, ok := p.pool[root]
	if !ok {
		return nil, ErrAttestationNotFound
	}
	return att, nil
}

// GetAll returns every pooled attestation, in no particular order.
func (p *AttestationPool) GetAll() []*Attestation {
	p.mu.RLock()
	defer p.mu.RUnlock()
	atts := make([]*Attestation, 0, len(p.pool))
	for _, att := range p.pool {
		atts = append(atts, att)
	}
	return atts
}

// Add pools attestation if it is not already present.
func (p *AttestationPool) Add(attestation *Attestation) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.pool[attestation.HashTreeRoot]; !ok {
		p.pool[attestation.HashTreeRoot] = attestation
	}
}

// BatchAdd pools every attestation not already present.
func (p *AttestationPool) BatchAdd(attestations []*Attestation) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, att := range attestations {
		if _, ok := p.pool[att.HashTreeRoot]; !ok {
			p.pool[att.HashTreeRoot] = att
		}
	}
}

// Remove drops attestation from the pool, if present.
func (p *AttestationPool) Remove(attestation Attestation) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.pool, attestation.HashTreeRoot)
}

// BatchRemove drops every given attestation from the pool, if present.
func (p *AttestationPool) BatchRemove(attestations []Attestation) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, att := range attestations {
		delete(p.pool, att.HashTreeRoot)
	}
}
