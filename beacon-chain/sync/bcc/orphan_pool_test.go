package bcc

import "testing"

func TestOrphanBlockPool_AddIsIdempotent(t *testing.T) {
	pool := NewOrphanBlockPool()
	block := &BeaconBlock{SigningRoot: Hash32{1}, ParentRoot: Hash32{0}}

	pool.Add(block)
	pool.Add(block)

	if !pool.Contains(block.SigningRoot) {
		t.Fatal("expected pool to contain block after Add")
	}
	children := pool.PopChildren(Hash32{0})
	if len(children) != 1 {
		t.Fatalf("expected 1 child popped, got %d", len(children))
	}
}

func TestOrphanBlockPool_PopChildrenRemovesThem(t *testing.T) {
	pool := NewOrphanBlockPool()
	parent := Hash32{1}
	child1 := &BeaconBlock{SigningRoot: Hash32{2}, ParentRoot: parent}
	child2 := &BeaconBlock{SigningRoot: Hash32{3}, ParentRoot: parent}
	unrelated := &BeaconBlock{SigningRoot: Hash32{4}, ParentRoot: Hash32{9}}

	pool.Add(child1)
	pool.Add(child2)
	pool.Add(unrelated)

	children := pool.PopChildren(parent)
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}
	if pool.Contains(child1.SigningRoot) || pool.Contains(child2.SigningRoot) {
		t.Fatal("expected popped children to be removed from the pool")
	}
	if !pool.Contains(unrelated.SigningRoot) {
		t.Fatal("expected unrelated block to remain in the pool")
	}

	// Popping again yields nothing.
	if children := pool.PopChildren(parent); len(children) != 0 {
		t.Fatalf("expected no children on second pop, got %d", len(children))
	}
}

func TestOrphanBlockPool_GetMiss(t *testing.T) {
	pool := NewOrphanBlockPool()
	if _, err := pool.Get(Hash32{5}); err != ErrBlockNotFound {
		t.Fatalf("expected ErrBlockNotFound, got %v", err)
	}
}
