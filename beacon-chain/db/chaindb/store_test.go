package chaindb

import (
	"testing"

	"github.com/prysmaticlabs/eth2-types"

	"github.com/prysmaticlabs/bcc/beacon-chain/sync/bcc"
)

func setupDB(t *testing.T) *Store {
	db, err := NewKVStore(t.TempDir())
	if err != nil {
		t.Fatalf("could not open test db: %v", err)
	}
	return db
}

func teardownDB(t *testing.T, db *Store) {
	if err := db.Close(); err != nil {
		t.Fatalf("could not close test db: %v", err)
	}
}

func TestStore_BlockCRUD(t *testing.T) {
	db := setupDB(t)
	defer teardownDB(t, db)

	block := &bcc.BeaconBlock{
		Slot:        types.Slot(5),
		ParentRoot:  bcc.Hash32{1},
		SigningRoot: bcc.Hash32{2},
	}
	if err := db.SaveBlock(block); err != nil {
		t.Fatal(err)
	}

	got, err := db.GetBlockByRoot(block.SigningRoot)
	if err != nil {
		t.Fatal(err)
	}
	if got.Slot != block.Slot || got.SigningRoot != block.SigningRoot {
		t.Errorf("got %+v, wanted %+v", got, block)
	}

	bySlot, err := db.GetCanonicalBlockBySlot(block.Slot)
	if err != nil {
		t.Fatal(err)
	}
	if bySlot.SigningRoot != block.SigningRoot {
		t.Errorf("got root %v, wanted %v", bySlot.SigningRoot, block.SigningRoot)
	}
}

func TestStore_GetBlockByRoot_NotFound(t *testing.T) {
	db := setupDB(t)
	defer teardownDB(t, db)

	if _, err := db.GetBlockByRoot(bcc.Hash32{9}); err != bcc.ErrBlockNotFound {
		t.Errorf("got err %v, wanted %v", err, bcc.ErrBlockNotFound)
	}
}

func TestStore_GetCanonicalBlockBySlot_NotFound(t *testing.T) {
	db := setupDB(t)
	defer teardownDB(t, db)

	if _, err := db.GetCanonicalBlockBySlot(types.Slot(42)); err != bcc.ErrBlockNotFound {
		t.Errorf("got err %v, wanted %v", err, bcc.ErrBlockNotFound)
	}
}

func TestStore_AttestationExists(t *testing.T) {
	db := setupDB(t)
	defer teardownDB(t, db)

	root := bcc.Hash32{3}
	if db.AttestationExists(root) {
		t.Fatal("expected attestation to not exist yet")
	}
	if err := db.SaveAttestationSeen(root); err != nil {
		t.Fatal(err)
	}
	if !db.AttestationExists(root) {
		t.Error("expected attestation to exist after SaveAttestationSeen")
	}
}

func TestStore_HeadBlockRoot(t *testing.T) {
	db := setupDB(t)
	defer teardownDB(t, db)

	root, err := db.HeadBlockRoot()
	if err != nil {
		t.Fatal(err)
	}
	if !root.IsZero() {
		t.Errorf("expected zero head root before any is set, got %v", root)
	}

	want := bcc.Hash32{4}
	if err := db.SetHeadBlockRoot(want); err != nil {
		t.Fatal(err)
	}
	got, err := db.HeadBlockRoot()
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("got %v, wanted %v", got, want)
	}
}

func TestStore_ClearDB(t *testing.T) {
	dir := t.TempDir()
	db, err := NewKVStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}
	if err := db.ClearDB(); err != nil {
		t.Fatal(err)
	}
}
