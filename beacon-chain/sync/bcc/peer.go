package bcc

import peerlib "github.com/libp2p/go-libp2p-core/peer"

// PeerID is the remote node identity used for "skip the sender" broadcast
// comparisons (§4.F). Reusing libp2p's peer.ID keeps this layer consistent with
// the rest of a Prysm-style p2p stack even though the transport itself is
// out of scope here.
type PeerID = peerlib.ID

// Transport is the minimal send-only surface the protocol driver needs.
// Framing, handshake receipt, and compression negotiation live in the peer
// pool / transport layer, out of scope for this subprotocol core (§1, §6).
type Transport interface {
	Send(header Header, body []byte) error
}

// Peer is one connected remote speaking the "bcc" subprotocol.
type Peer interface {
	// RemoteID is this peer's node identity, used for echo-suppression.
	RemoteID() PeerID
	// IsOperational reports whether the peer's session is live and
	// accepting messages. Owned by the peer layer; the receive server only
	// reads it.
	IsOperational() bool
	// Driver returns the per-peer protocol driver used to send messages to
	// this peer.
	Driver() Driver
}

// Driver is the subset of *Protocol (or *ProxyProtocol) that the receive
// and request servers need: enough to push messages at one peer without
// depending on which concrete driver backs it.
type Driver interface {
	SendGetBlocks(target BlockSlotOrRoot, maxBlocks uint64, requestID uint64) error
	SendBlocks(blocks []*BeaconBlock, requestID uint64) error
	SendAttestationRecords(attestations []*Attestation) error
	SendNewBlock(block *BeaconBlock) error
}

// PeerSet enumerates currently connected peers, the way
// beacon-chain/sync/regular_sync.go iterates rs.p2p's connected nodes when
// broadcasting.
type PeerSet interface {
	Connected() []Peer
}
