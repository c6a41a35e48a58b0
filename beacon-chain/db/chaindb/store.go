// Package chaindb provides a bbolt-backed reference implementation of the
// block and attestation storage contract the bcc subprotocol core consumes
// as an external collaborator (chain DB, fork-choice, and state-transition
// are out of this repository's scope; this package is the "here is a
// conforming store" stand-in used by its tests).
package chaindb

import (
	"encoding/binary"
	"os"
	"path"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/eth2-types"
	bolt "go.etcd.io/bbolt"

	"github.com/prysmaticlabs/bcc/beacon-chain/sync/bcc"
	"github.com/prysmaticlabs/bcc/shared/bytesutil"
)

const (
	databaseFileName = "bcc-chain.db"
	// blockCacheSize is the block cache's ristretto MaxCost. Every cached
	// block is stored with cost 1, so this bounds the number of entries.
	blockCacheSize = int64(1 << 21)
)

// Store is a bbolt-backed implementation of the block/attestation storage
// contract, with a ristretto read cache in front of block lookups.
type Store struct {
	db           *bolt.DB
	databasePath string
	blockCache   *ristretto.Cache
}

// NewKVStore opens (creating if necessary) a bbolt database under dirPath
// and prepares its buckets.
func NewKVStore(dirPath string) (*Store, error) {
	if err := os.MkdirAll(dirPath, 0700); err != nil {
		return nil, err
	}
	datafile := path.Join(dirPath, databaseFileName)
	db, err := bolt.Open(datafile, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		if err == bolt.ErrTimeout {
			return nil, errors.New("cannot obtain database lock, database may be in use by another process")
		}
		return nil, err
	}

	blockCache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1000,
		MaxCost:     blockCacheSize,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	store := &Store{db: db, databasePath: dirPath, blockCache: blockCache}
	if err := store.db.Update(func(tx *bolt.Tx) error {
		return createBuckets(tx, blocksBucket, blockSlotIndicesBucket, attestationsBucket, metadataBucket)
	}); err != nil {
		return nil, err
	}
	return store, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// DatabasePath is the directory this store writes files under.
func (s *Store) DatabasePath() string {
	return s.databasePath
}

// ClearDB removes the previously stored database file.
func (s *Store) ClearDB() error {
	if _, err := os.Stat(s.databasePath); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(path.Join(s.databasePath, databaseFileName))
}

func createBuckets(tx *bolt.Tx, buckets ...[]byte) error {
	for _, b := range buckets {
		if _, err := tx.CreateBucketIfNotExists(b); err != nil {
			return err
		}
	}
	return nil
}

func slotKey(slot uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, slot)
	return b
}

// SaveBlock persists block, indexing it by slot as part of the canonical
// chain. Callers decide canonicity before calling this; the store does not
// second-guess it.
func (s *Store) SaveBlock(block *bcc.BeaconBlock) error {
	encoded, err := bcc.EncodeBlock(block)
	if err != nil {
		return errors.Wrap(err, "could not encode block")
	}
	root := block.SigningRoot
	if err := s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(blocksBucket).Put(root[:], encoded); err != nil {
			return err
		}
		return tx.Bucket(blockSlotIndicesBucket).Put(slotKey(uint64(block.Slot)), root[:])
	}); err != nil {
		return err
	}
	s.blockCache.Set(root[:], block, 1)
	return nil
}

// GetBlockByRoot returns the block with the given signing-root, or
// bcc.ErrBlockNotFound.
func (s *Store) GetBlockByRoot(root bcc.Hash32) (*bcc.BeaconBlock, error) {
	if cached, ok := s.blockCache.Get(root[:]); ok {
		return cached.(*bcc.BeaconBlock), nil
	}

	var encoded []byte
	if err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(blocksBucket).Get(root[:])
		if v == nil {
			return nil
		}
		encoded = make([]byte, len(v))
		copy(encoded, v)
		return nil
	}); err != nil {
		return nil, err
	}
	if encoded == nil {
		return nil, bcc.ErrBlockNotFound
	}
	block, err := bcc.DecodeBlock(encoded)
	if err != nil {
		return nil, errors.Wrap(err, "could not decode block")
	}
	s.blockCache.Set(root[:], block, 1)
	return block, nil
}

// GetCanonicalBlockBySlot returns the canonical chain's block at slot, or
// bcc.ErrBlockNotFound.
func (s *Store) GetCanonicalBlockBySlot(slot types.Slot) (*bcc.BeaconBlock, error) {
	var root bcc.Hash32
	found := false
	if err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(blockSlotIndicesBucket).Get(slotKey(uint64(slot)))
		if v == nil {
			return nil
		}
		root = bcc.Hash32(bytesutil.ToBytes32(v))
		found = true
		return nil
	}); err != nil {
		return nil, err
	}
	if !found {
		return nil, bcc.ErrBlockNotFound
	}
	return s.GetBlockByRoot(root)
}

// SaveAttestationSeen records that an attestation with this hash-tree-root
// has been durably observed, for AttestationExists.
func (s *Store) SaveAttestationSeen(root bcc.Hash32) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(attestationsBucket).Put(root[:], []byte{1})
	})
}

// AttestationExists reports whether an attestation with this
// hash-tree-root has been recorded via SaveAttestationSeen.
func (s *Store) AttestationExists(root bcc.Hash32) bool {
	exists := false
	_ = s.db.View(func(tx *bolt.Tx) error {
		exists = tx.Bucket(attestationsBucket).Get(root[:]) != nil
		return nil
	})
	return exists
}

// HeadBlockRoot returns the persisted head block root, or the zero hash if
// none has been set.
func (s *Store) HeadBlockRoot() (bcc.Hash32, error) {
	var root bcc.Hash32
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(metadataBucket).Get(headBlockRootKey)
		if v == nil {
			return nil
		}
		root = bcc.Hash32(bytesutil.ToBytes32(v))
		return nil
	})
	return root, err
}

// SetHeadBlockRoot persists root as the current head block root.
func (s *Store) SetHeadBlockRoot(root bcc.Hash32) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(metadataBucket).Put(headBlockRootKey, root[:])
	})
}
