package bcc

// EventBus is the minimal publish surface a ProxyProtocol needs to hand a
// locally-produced block off to whatever component actually owns a real
// peer connection. It stands in for an out-of-process event bus; this
// subprotocol core only needs to be able to publish on it.
type EventBus interface {
	Publish(event interface{}) error
}

// SendBeaconBlocksEvent is the event a ProxyProtocol publishes for
// SendBlocks. It carries the same payload SendBlocks would otherwise have
// SSZ-encoded onto the wire, plus the remote peer identity as a routing
// key, so whatever is listening on the bus knows which peer to deliver to.
type SendBeaconBlocksEvent struct {
	Remote    PeerID
	Blocks    []*BeaconBlock
	RequestID uint64
}

// ProxyProtocol is a stand-in Driver for a peer that lives in another
// process: every operation except SendBlocks is unsupported, mirroring the
// upstream proxy's single-operation contract. It exists so that code
// written against the Driver interface can run unmodified against a peer
// reached only through an event bus.
type ProxyProtocol struct {
	remote PeerID
	bus    EventBus
}

// NewProxyProtocol builds a proxy driver for the peer identified by
// remote, publishing onto bus.
func NewProxyProtocol(remote PeerID, bus EventBus) *ProxyProtocol {
	return &ProxyProtocol{remote: remote, bus: bus}
}

// SendBlocks is the only implemented operation: it publishes a
// SendBeaconBlocksEvent carrying this proxy's remote peer identity, rather
// than encoding onto a transport.
func (p *ProxyProtocol) SendBlocks(blocks []*BeaconBlock, requestID uint64) error {
	return p.bus.Publish(SendBeaconBlocksEvent{Remote: p.remote, Blocks: blocks, RequestID: requestID})
}

// SendGetBlocks is unsupported on a proxy.
func (p *ProxyProtocol) SendGetBlocks(target BlockSlotOrRoot, maxBlocks uint64, requestID uint64) error {
	return ErrProxyNotImplemented
}

// SendAttestationRecords is unsupported on a proxy.
func (p *ProxyProtocol) SendAttestationRecords(attestations []*Attestation) error {
	return ErrProxyNotImplemented
}

// SendNewBlock is unsupported on a proxy.
func (p *ProxyProtocol) SendNewBlock(block *BeaconBlock) error {
	return ErrProxyNotImplemented
}

var _ Driver = (*ProxyProtocol)(nil)
