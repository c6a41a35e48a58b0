package bcc

import "github.com/prysmaticlabs/eth2-types"

// Wire-level constants for the "bcc" subprotocol, the Go analogue of
// shared/params/network_config.go's NetworkConfig for this subprotocol.
const (
	// ProtocolName identifies this devp2p-style subprotocol.
	ProtocolName = "bcc"
	// ProtocolVersion is the only version this driver speaks.
	ProtocolVersion = uint32(0)
	// CmdLength is the number of distinct message ids the subprotocol
	// reserves in the shared per-connection command-id space.
	CmdLength = 5
)

// Consensus-ish constants the receive server and ready-attestation query
// consult. In a full node these live in the state-transition config; this
// subprotocol core only needs the two used for inclusion-delay math, so
// they're kept here rather than pulling in the whole config package the
// way beacon-chain/core would.
const (
	// MinAttestationInclusionDelay is the number of slots that must pass
	// after an attestation's slot before it may be included on chain.
	MinAttestationInclusionDelay = types.Slot(1)
	// SlotsPerEpoch is the number of slots in one epoch.
	SlotsPerEpoch = types.Slot(32)
)

// Config sets the initial map capacities of a receive server's attestation
// pool, orphan pool, and pending-request table, mirroring
// beacon-chain/sync/regular_sync.go's Config/DefaultConfig split.
type Config struct {
	AttestationBufferSize  int
	NewBlockBufferSize     int
	BeaconBlocksBufferSize int
}

// DefaultConfig provides the default configuration for a receive server.
func DefaultConfig() *Config {
	return &Config{
		AttestationBufferSize:  100,
		NewBlockBufferSize:     100,
		BeaconBlocksBufferSize: 100,
	}
}
