package bcc

import (
	"testing"

	"github.com/prysmaticlabs/eth2-types"
)

func TestBlockCodec_RoundTrip(t *testing.T) {
	block := &BeaconBlock{
		Slot:        types.Slot(5),
		ParentRoot:  Hash32{1},
		SigningRoot: Hash32{2},
		Body: BeaconBlockBody{
			Attestations: []Attestation{
				{Data: AttestationData{Slot: types.Slot(4)}, HashTreeRoot: Hash32{3}, AggregationBits: []byte{0xff}},
			},
		},
	}

	encoded, err := EncodeBlock(block)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := DecodeBlock(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.SigningRoot != block.SigningRoot {
		t.Fatalf("signing root mismatch: got %s want %s", decoded.SigningRoot, block.SigningRoot)
	}
	if decoded.Slot != block.Slot {
		t.Fatalf("slot mismatch: got %d want %d", decoded.Slot, block.Slot)
	}
	if len(decoded.Body.Attestations) != 1 {
		t.Fatalf("expected 1 attestation, got %d", len(decoded.Body.Attestations))
	}
}

func TestAttestationCodec_RoundTrip(t *testing.T) {
	att := &Attestation{
		Data:            AttestationData{Slot: types.Slot(7)},
		HashTreeRoot:    Hash32{9},
		AggregationBits: []byte{0x01, 0x02},
	}

	encoded, err := EncodeAttestation(att)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := DecodeAttestation(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.HashTreeRoot != att.HashTreeRoot {
		t.Fatalf("hash tree root mismatch: got %s want %s", decoded.HashTreeRoot, att.HashTreeRoot)
	}
	if decoded.Data.Slot != att.Data.Slot {
		t.Fatalf("slot mismatch: got %d want %d", decoded.Data.Slot, att.Data.Slot)
	}
}

func TestHash32_IsZero(t *testing.T) {
	var h Hash32
	if !h.IsZero() {
		t.Fatal("expected zero-value Hash32 to report IsZero")
	}
	h[0] = 1
	if h.IsZero() {
		t.Fatal("expected non-zero Hash32 to not report IsZero")
	}
}

func TestSlotOrRoot_Constructors(t *testing.T) {
	bySlot := SlotOrRootFromSlot(types.Slot(3))
	if bySlot.IsRoot {
		t.Fatal("expected IsRoot=false for SlotOrRootFromSlot")
	}
	if bySlot.Slot != types.Slot(3) {
		t.Fatalf("unexpected slot: %d", bySlot.Slot)
	}

	root := Hash32{7}
	byRoot := SlotOrRootFromRoot(root)
	if !byRoot.IsRoot {
		t.Fatal("expected IsRoot=true for SlotOrRootFromRoot")
	}
	if byRoot.Root != root {
		t.Fatalf("unexpected root: %s", byRoot.Root)
	}
}
