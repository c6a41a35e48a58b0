// Package testing provides in-memory fakes satisfying the external
// collaborator contracts sync/bcc consumes (chain DB, state machine, peer
// set), for use in that package's tests without pulling in bbolt or real
// state-transition logic.
package testing

import (
	"sync"

	"github.com/prysmaticlabs/eth2-types"

	"github.com/prysmaticlabs/bcc/beacon-chain/sync/bcc"
)

// FakeState is a minimal bcc.State backed by a single slot.
type FakeState struct {
	slot types.Slot
}

// Slot implements bcc.State.
func (s *FakeState) Slot() types.Slot { return s.slot }

// FakeStateTransition fast-forwards by returning a new FakeState at
// futureSlot, never failing.
type FakeStateTransition struct{}

// ApplyStateTransition implements bcc.StateTransition.
func (FakeStateTransition) ApplyStateTransition(state bcc.State, futureSlot types.Slot) (bcc.State, error) {
	return &FakeState{slot: futureSlot}, nil
}

// FakeAttestationValidator accepts every attestation except those whose
// root a test has explicitly passed to Reject.
type FakeAttestationValidator struct {
	mu          sync.Mutex
	rejectRoots map[bcc.Hash32]bool
}

// NewFakeAttestationValidator returns a validator that accepts everything
// until told otherwise.
func NewFakeAttestationValidator() *FakeAttestationValidator {
	return &FakeAttestationValidator{rejectRoots: make(map[bcc.Hash32]bool)}
}

// Reject marks root for rejection by future ValidateAttestation calls.
func (v *FakeAttestationValidator) Reject(root bcc.Hash32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rejectRoots[root] = true
}

// ValidateAttestation implements bcc.AttestationValidator.
func (v *FakeAttestationValidator) ValidateAttestation(state bcc.State, att *bcc.Attestation) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.rejectRoots[att.HashTreeRoot] {
		return &bcc.ValidationError{Reason: "rejected by test fixture"}
	}
	return nil
}

// FakeStateMachine pairs a FakeStateTransition with a
// FakeAttestationValidator.
type FakeStateMachine struct {
	Transition FakeStateTransition
	Validator  *FakeAttestationValidator
}

// StateTransition implements bcc.StateMachine.
func (m *FakeStateMachine) StateTransition() bcc.StateTransition { return m.Transition }

// AttestationValidator implements bcc.StateMachine.
func (m *FakeStateMachine) AttestationValidator() bcc.AttestationValidator { return m.Validator }

// FakeChain is an in-memory bcc.Chain, safe for concurrent use.
type FakeChain struct {
	mu sync.Mutex

	blocksByRoot     map[bcc.Hash32]*bcc.BeaconBlock
	blocksBySlot     map[types.Slot]*bcc.BeaconBlock
	attestationsSeen map[bcc.Hash32]bool
	rejectImport     map[bcc.Hash32]bool

	head         *FakeState
	stateMachine *FakeStateMachine
}

// NewFakeChain returns an empty chain with head slot 0.
func NewFakeChain() *FakeChain {
	return &FakeChain{
		blocksByRoot:     make(map[bcc.Hash32]*bcc.BeaconBlock),
		blocksBySlot:     make(map[types.Slot]*bcc.BeaconBlock),
		attestationsSeen: make(map[bcc.Hash32]bool),
		rejectImport:     make(map[bcc.Hash32]bool),
		head:             &FakeState{},
		stateMachine:     &FakeStateMachine{Validator: NewFakeAttestationValidator()},
	}
}

// GetBlockByRoot implements bcc.Chain.
func (c *FakeChain) GetBlockByRoot(root bcc.Hash32) (*bcc.BeaconBlock, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	block, ok := c.blocksByRoot[root]
	if !ok {
		return nil, bcc.ErrBlockNotFound
	}
	return block, nil
}

// GetCanonicalBlockBySlot implements bcc.Chain.
func (c *FakeChain) GetCanonicalBlockBySlot(slot types.Slot) (*bcc.BeaconBlock, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	block, ok := c.blocksBySlot[slot]
	if !ok {
		return nil, bcc.ErrBlockNotFound
	}
	return block, nil
}

// ImportBlock implements bcc.Chain. A block whose root was passed to
// RejectImport is rejected with a *bcc.ValidationError instead of stored.
func (c *FakeChain) ImportBlock(block *bcc.BeaconBlock) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rejectImport[block.SigningRoot] {
		return &bcc.ValidationError{Reason: "rejected by test fixture"}
	}
	c.blocksByRoot[block.SigningRoot] = block
	c.blocksBySlot[block.Slot] = block
	return nil
}

// RejectImport marks root so that a future ImportBlock for a block with
// that signing-root fails.
func (c *FakeChain) RejectImport(root bcc.Hash32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rejectImport[root] = true
}

// AttestationExists implements bcc.Chain.
func (c *FakeChain) AttestationExists(root bcc.Hash32) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attestationsSeen[root]
}

// MarkAttestationSeen records root as already durably observed.
func (c *FakeChain) MarkAttestationSeen(root bcc.Hash32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attestationsSeen[root] = true
}

// GetHeadState implements bcc.Chain.
func (c *FakeChain) GetHeadState() bcc.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.head
}

// SetHeadSlot sets the current head state's slot.
func (c *FakeChain) SetHeadSlot(slot types.Slot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.head.slot = slot
}

// GetStateMachine implements bcc.Chain.
func (c *FakeChain) GetStateMachine() bcc.StateMachine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateMachine
}

// RejectAttestation marks root so that ValidateAttestation fails for any
// attestation with that hash-tree-root.
func (c *FakeChain) RejectAttestation(root bcc.Hash32) {
	c.stateMachine.Validator.Reject(root)
}

var _ bcc.Chain = (*FakeChain)(nil)
