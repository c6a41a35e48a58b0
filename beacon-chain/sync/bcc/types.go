// Package bcc implements the "bcc" beacon-chain peer subprotocol: the
// message-level state machine by which a beacon node exchanges blocks and
// attestations with peers, and the in-memory pools that back it.
package bcc

import (
	"fmt"

	"github.com/prysmaticlabs/eth2-types"
)

// Hash32 identifies a block (signing-root) or an attestation
// (hash-tree-root). It is opaque outside of equality and map-key use.
type Hash32 [32]byte

// String implements fmt.Stringer for debug logging.
func (h Hash32) String() string {
	return fmt.Sprintf("%#x", [32]byte(h))
}

// IsZero reports whether h is the zero hash, used as the sentinel parent
// root for genesis.
func (h Hash32) IsZero() bool {
	return h == Hash32{}
}

// AttestationData is the subset of attestation data this layer inspects;
// everything else about an attestation (source/target checkpoints,
// signature) is opaque and owned by the state-transition function.
type AttestationData struct {
	Slot types.Slot
}

// Attestation is a value type once decoded off the wire. Two attestations
// are the same attestation iff their HashTreeRoot are equal.
type Attestation struct {
	Data            AttestationData
	HashTreeRoot    Hash32
	AggregationBits []byte
}

// BeaconBlockBody carries the attestations a block includes. Everything
// else in a real block body (deposits, slashings, randao, graffiti, ...) is
// opaque to this layer.
type BeaconBlockBody struct {
	Attestations []Attestation
}

// BeaconBlock is a value type once decoded off the wire. A block's identity
// is its SigningRoot, which is assumed unique and is supplied alongside the
// block rather than recomputed on every access (mirroring how the source
// treats signing_root as a cached property of a decoded block).
type BeaconBlock struct {
	Slot        types.Slot
	ParentRoot  Hash32
	SigningRoot Hash32
	Body        BeaconBlockBody
}

// BlockSlotOrRoot is the tagged union carried by GetBeaconBlocks: callers
// ask for a starting block either by slot or by signing-root, never both.
// Modeled as an explicit sum type rather than an empty interface, per the
// wire payload's SSZ type-tag dispatch.
type BlockSlotOrRoot struct {
	IsRoot bool
	Slot   types.Slot
	Root   Hash32
}

// SlotOrRootFromSlot builds a BlockSlotOrRoot selecting by slot.
func SlotOrRootFromSlot(slot types.Slot) BlockSlotOrRoot {
	return BlockSlotOrRoot{IsRoot: false, Slot: slot}
}

// SlotOrRootFromRoot builds a BlockSlotOrRoot selecting by signing-root.
func SlotOrRootFromRoot(root Hash32) BlockSlotOrRoot {
	return BlockSlotOrRoot{IsRoot: true, Root: root}
}
