package bcc

import "github.com/prysmaticlabs/eth2-types"

// localCmdID is a message's id local to the "bcc" subprotocol, before the
// peer's command-id offset is added in (§4.A).
type localCmdID uint64

const (
	cmdStatus          localCmdID = 0
	cmdGetBeaconBlocks localCmdID = 1
	cmdBeaconBlocks    localCmdID = 2
	cmdAttestations    localCmdID = 3
	cmdNewBeaconBlock  localCmdID = 4
)

// StatusMessage is sent by each side immediately after connection as the
// subprotocol handshake.
type StatusMessage struct {
	ProtocolVersion uint32
	NetworkID       uint64
	GenesisRoot     Hash32
	HeadSlot        types.Slot
}

// GetBeaconBlocksMessage requests up to MaxBlocks blocks starting at
// BlockSlotOrRoot.
type GetBeaconBlocksMessage struct {
	RequestID       uint64
	BlockSlotOrRoot BlockSlotOrRoot
	MaxBlocks       uint64
}

// BeaconBlocksMessage replies to a GetBeaconBlocks request. EncodedBlocks
// holds pre-encoded block bytes: list elements are not recursively decoded
// by the codec, so a requester must decode each one itself (§4.A).
type BeaconBlocksMessage struct {
	RequestID     uint64
	EncodedBlocks [][]byte
}

// AttestationsMessage gossips one or more attestations. Elements are
// pre-encoded bytes for the same reason as BeaconBlocksMessage.
type AttestationsMessage struct {
	EncodedAttestations [][]byte
}

// NewBeaconBlockMessage announces a single newly produced or received
// block.
type NewBeaconBlockMessage struct {
	EncodedBlock []byte
}
