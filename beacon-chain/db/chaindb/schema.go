package chaindb

// Bucket layout for the bbolt-backed chain database.
//
// blocksBucket:            signing_root -> encoded block
// blockSlotIndicesBucket:  slot (8 bytes, big-endian) -> signing_root, canonical chain only
// attestationsBucket:      hash_tree_root -> sentinel byte, presence only
// metadataBucket:          fixed keys below -> value
var (
	blocksBucket            = []byte("blocks")
	blockSlotIndicesBucket  = []byte("block-slot-indices")
	attestationsBucket      = []byte("attestations-seen")
	metadataBucket          = []byte("chain-metadata")
	headBlockRootKey        = []byte("head-block-root")
)
