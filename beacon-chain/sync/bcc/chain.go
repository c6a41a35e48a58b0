package bcc

import "github.com/prysmaticlabs/eth2-types"

// State is the subset of head-state this layer inspects: the current slot,
// used to judge whether a pooled attestation is still eligible for
// inclusion. Everything else about state (balances, committees, the
// validator registry) belongs to the state-transition function and is
// opaque here.
type State interface {
	Slot() types.Slot
}

// StateTransition fast-forwards a state to evaluate an attestation as if it
// were being included at futureSlot, mirroring
// apply_state_transition(state, future_slot=...). The state-transition
// function itself is an external collaborator; this layer only calls it.
type StateTransition interface {
	ApplyStateTransition(state State, futureSlot types.Slot) (State, error)
}

// AttestationValidator checks full attestation validity (signature,
// source/target checkpoints, committee membership) against a given state.
// A ValidationError return means the attestation is rejected, not that the
// call failed.
type AttestationValidator interface {
	ValidateAttestation(state State, attestation *Attestation) error
}

// StateMachine groups the fork-specific collaborators this layer needs.
type StateMachine interface {
	StateTransition() StateTransition
	AttestationValidator() AttestationValidator
}

// Chain is the external surface this subprotocol core drives: block
// storage and import, attestation presence, and access to the current head
// state and its state machine. The chain database, state-transition
// function, and fork-choice rule that back it are out of scope here; they
// are consumed, not implemented, by this package.
type Chain interface {
	// GetBlockByRoot looks up a block by signing-root, returning
	// ErrBlockNotFound on a miss.
	GetBlockByRoot(root Hash32) (*BeaconBlock, error)
	// GetCanonicalBlockBySlot looks up the canonical chain's block at slot,
	// returning ErrBlockNotFound on a miss.
	GetCanonicalBlockBySlot(slot types.Slot) (*BeaconBlock, error)
	// ImportBlock attempts to import block onto the chain. A
	// *ValidationError return means the block was rejected; any other error
	// is unexpected and should propagate.
	ImportBlock(block *BeaconBlock) error
	// AttestationExists reports whether an attestation with this
	// hash-tree-root has already been durably recorded.
	AttestationExists(root Hash32) bool
	// GetHeadState returns the current head state.
	GetHeadState() State
	// GetStateMachine returns the state machine active for the head state's
	// fork.
	GetStateMachine() StateMachine
}
