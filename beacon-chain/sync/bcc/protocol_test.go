package bcc

import (
	"errors"
	"testing"

	peerlib "github.com/libp2p/go-libp2p-core/peer"
	"github.com/prysmaticlabs/eth2-types"
)

type recordingTransport struct {
	headers []Header
	bodies  [][]byte
	err     error
}

func (t *recordingTransport) Send(header Header, body []byte) error {
	if t.err != nil {
		return t.err
	}
	t.headers = append(t.headers, header)
	t.bodies = append(t.bodies, body)
	return nil
}

func TestProtocol_SendHandshake_VersionMismatch(t *testing.T) {
	p := NewProtocol(&recordingTransport{}, 0, false)
	err := p.SendHandshake(HandshakeParams{ProtocolVersion: ProtocolVersion + 1})
	var verr *VersionMismatchError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *VersionMismatchError, got %v", err)
	}
}

func TestProtocol_SendHandshake_AppliesCmdOffset(t *testing.T) {
	transport := &recordingTransport{}
	p := NewProtocol(transport, 16, false)

	if err := p.SendHandshake(HandshakeParams{ProtocolVersion: ProtocolVersion, NetworkID: 1, HeadSlot: types.Slot(3)}); err != nil {
		t.Fatal(err)
	}
	if len(transport.headers) != 1 {
		t.Fatalf("expected exactly one send, got %d", len(transport.headers))
	}
	if transport.headers[0].CommandID != 16+uint64(cmdStatus) {
		t.Fatalf("unexpected command id: %d", transport.headers[0].CommandID)
	}
}

func TestProtocol_TransportFailureWrapped(t *testing.T) {
	transport := &recordingTransport{err: errors.New("boom")}
	p := NewProtocol(transport, 0, false)

	err := p.SendHandshake(HandshakeParams{ProtocolVersion: ProtocolVersion})
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected *TransportError, got %v", err)
	}
}

func TestProtocol_SendBlocksEncodesEach(t *testing.T) {
	transport := &recordingTransport{}
	p := NewProtocol(transport, 0, false)

	blocks := []*BeaconBlock{
		{Slot: 1, SigningRoot: Hash32{1}},
		{Slot: 2, SigningRoot: Hash32{2}},
	}
	if err := p.SendBlocks(blocks, 42); err != nil {
		t.Fatal(err)
	}
	if len(transport.headers) != 1 {
		t.Fatalf("expected one frame for the batch, got %d", len(transport.headers))
	}
}

func TestProxyProtocol_OnlySendBlocksImplemented(t *testing.T) {
	var published []interface{}
	bus := publishFunc(func(event interface{}) error {
		published = append(published, event)
		return nil
	})
	remote := peerlib.ID("remote-peer")
	p := NewProxyProtocol(remote, bus)

	if err := p.SendBlocks([]*BeaconBlock{{Slot: 1}}, 7); err != nil {
		t.Fatal(err)
	}
	if len(published) != 1 {
		t.Fatalf("expected SendBlocks to publish one event, got %d", len(published))
	}
	event, ok := published[0].(SendBeaconBlocksEvent)
	if !ok {
		t.Fatalf("expected a SendBeaconBlocksEvent, got %T", published[0])
	}
	if event.Remote != remote {
		t.Fatalf("expected the event to carry the proxy's remote peer identity, got %v", event.Remote)
	}

	if err := p.SendGetBlocks(SlotOrRootFromSlot(types.Slot(0)), 1, 1); err != ErrProxyNotImplemented {
		t.Fatalf("expected ErrProxyNotImplemented, got %v", err)
	}
	if err := p.SendAttestationRecords(nil); err != ErrProxyNotImplemented {
		t.Fatalf("expected ErrProxyNotImplemented, got %v", err)
	}
	if err := p.SendNewBlock(&BeaconBlock{}); err != ErrProxyNotImplemented {
		t.Fatalf("expected ErrProxyNotImplemented, got %v", err)
	}
}

type publishFunc func(event interface{}) error

func (f publishFunc) Publish(event interface{}) error { return f(event) }
