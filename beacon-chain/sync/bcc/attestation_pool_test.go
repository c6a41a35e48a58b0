package bcc

import "testing"

func TestAttestationPool_AddIsIdempotent(t *testing.T) {
	pool := NewAttestationPool()
	att := &Attestation{HashTreeRoot: Hash32{1}}

	pool.Add(att)
	pool.Add(att)

	if len(pool.GetAll()) != 1 {
		t.Fatalf("expected 1 pooled attestation, got %d", len(pool.GetAll()))
	}
}

func TestAttestationPool_ContainsAndGet(t *testing.T) {
	pool := NewAttestationPool()
	att := &Attestation{HashTreeRoot: Hash32{2}}

	if pool.Contains(att.HashTreeRoot) {
		t.Fatal("expected pool to not contain attestation before Add")
	}
	pool.Add(att)
	if !pool.Contains(att.HashTreeRoot) {
		t.Fatal("expected pool to contain attestation after Add")
	}
	got, err := pool.Get(att.HashTreeRoot)
	if err != nil {
		t.Fatal(err)
	}
	if got != att {
		t.Fatal("expected Get to return the same attestation pointer")
	}

	if _, err := pool.Get(Hash32{99}); err != ErrAttestationNotFound {
		t.Fatalf("expected ErrAttestationNotFound, got %v", err)
	}
}

func TestAttestationPool_BatchAddAndRemove(t *testing.T) {
	pool := NewAttestationPool()
	atts := []*Attestation{
		{HashTreeRoot: Hash32{1}},
		{HashTreeRoot: Hash32{2}},
		{HashTreeRoot: Hash32{3}},
	}
	pool.BatchAdd(atts)
	if len(pool.GetAll()) != 3 {
		t.Fatalf("expected 3 pooled attestations, got %d", len(pool.GetAll()))
	}

	pool.BatchRemove([]Attestation{{HashTreeRoot: Hash32{1}}, {HashTreeRoot: Hash32{2}}})
	remaining := pool.GetAll()
	if len(remaining) != 1 {
		t.Fatalf("expected 1 pooled attestation after BatchRemove, got %d", len(remaining))
	}
	if remaining[0].HashTreeRoot != (Hash32{3}) {
		t.Fatalf("unexpected remaining attestation: %s", remaining[0].HashTreeRoot)
	}
}

func TestAttestationPool_Remove(t *testing.T) {
	pool := NewAttestationPool()
	att := &Attestation{HashTreeRoot: Hash32{4}}
	pool.Add(att)
	pool.Remove(*att)
	if pool.Contains(att.HashTreeRoot) {
		t.Fatal("expected attestation to be removed")
	}
	// Removing again should be a no-op, not a panic.
	pool.Remove(*att)
}
