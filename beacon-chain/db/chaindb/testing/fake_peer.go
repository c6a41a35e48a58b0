package testing

import (
	"sync"

	peerlib "github.com/libp2p/go-libp2p-core/peer"

	"github.com/prysmaticlabs/bcc/beacon-chain/sync/bcc"
)

// FakeDriver records every Driver call made against it instead of sending
// anything over a transport.
type FakeDriver struct {
	mu sync.Mutex

	GetBlocksCalls []GetBlocksCall
	BlocksSent     [][]*bcc.BeaconBlock
	Attestations   [][]*bcc.Attestation
	NewBlocks      []*bcc.BeaconBlock

	// SendErr, if set, is returned by every call.
	SendErr error
}

// GetBlocksCall captures one SendGetBlocks invocation.
type GetBlocksCall struct {
	Target    bcc.BlockSlotOrRoot
	MaxBlocks uint64
	RequestID uint64
}

// SendGetBlocks implements bcc.Driver.
func (d *FakeDriver) SendGetBlocks(target bcc.BlockSlotOrRoot, maxBlocks uint64, requestID uint64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.SendErr != nil {
		return d.SendErr
	}
	d.GetBlocksCalls = append(d.GetBlocksCalls, GetBlocksCall{Target: target, MaxBlocks: maxBlocks, RequestID: requestID})
	return nil
}

// SendBlocks implements bcc.Driver.
func (d *FakeDriver) SendBlocks(blocks []*bcc.BeaconBlock, requestID uint64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.SendErr != nil {
		return d.SendErr
	}
	d.BlocksSent = append(d.BlocksSent, blocks)
	return nil
}

// SendAttestationRecords implements bcc.Driver.
func (d *FakeDriver) SendAttestationRecords(attestations []*bcc.Attestation) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.SendErr != nil {
		return d.SendErr
	}
	d.Attestations = append(d.Attestations, attestations)
	return nil
}

// SendNewBlock implements bcc.Driver.
func (d *FakeDriver) SendNewBlock(block *bcc.BeaconBlock) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.SendErr != nil {
		return d.SendErr
	}
	d.NewBlocks = append(d.NewBlocks, block)
	return nil
}

var _ bcc.Driver = (*FakeDriver)(nil)

// FakePeer is a bcc.Peer backed by a FakeDriver.
type FakePeer struct {
	ID          peerlib.ID
	Operational bool
	Drv         *FakeDriver
}

// NewFakePeer returns an operational peer with id and a fresh driver.
func NewFakePeer(id peerlib.ID) *FakePeer {
	return &FakePeer{ID: id, Operational: true, Drv: &FakeDriver{}}
}

// RemoteID implements bcc.Peer.
func (p *FakePeer) RemoteID() bcc.PeerID { return p.ID }

// IsOperational implements bcc.Peer.
func (p *FakePeer) IsOperational() bool { return p.Operational }

// Driver implements bcc.Peer.
func (p *FakePeer) Driver() bcc.Driver { return p.Drv }

var _ bcc.Peer = (*FakePeer)(nil)

// FakePeerSet is a bcc.PeerSet over an explicit peer slice.
type FakePeerSet struct {
	Peers []bcc.Peer
}

// Connected implements bcc.PeerSet.
func (s *FakePeerSet) Connected() []bcc.Peer { return s.Peers }

var _ bcc.PeerSet = (*FakePeerSet)(nil)
