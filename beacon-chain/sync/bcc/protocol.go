package bcc

import "github.com/prysmaticlabs/eth2-types"

// HandshakeParams is the immutable tuple exchanged at connection time,
// kept as one value rather than four loose arguments (mirrors the
// original's BCCHandshakeParams NamedTuple).
type HandshakeParams struct {
	ProtocolVersion uint32
	NetworkID       uint64
	GenesisRoot     Hash32
	HeadSlot        types.Slot
}

// Protocol is the per-peer send side of the "bcc" subprotocol: the
// bridge and the bridge only (§4.B). It holds no state beyond the
// command-id offset, the compression flag (both inside codec), and a
// reference to the transport; it does not hold the peer's identity.
type Protocol struct {
	codec     *Codec
	transport Transport
}

// NewProtocol builds a driver bound to one peer's transport, command-id
// offset, and compression preference.
func NewProtocol(transport Transport, cmdOffset uint64, useSnappy bool) *Protocol {
	return &Protocol{
		codec:     NewCodec(cmdOffset, useSnappy),
		transport: transport,
	}
}

func (p *Protocol) send(header Header, body []byte, err error) error {
	if err != nil {
		return err
	}
	if err := p.transport.Send(header, body); err != nil {
		return &TransportError{Cause: err}
	}
	return nil
}

// SendHandshake fails fast with VersionMismatchError if params don't match
// this driver's compiled protocol version, otherwise sends a Status
// message.
func (p *Protocol) SendHandshake(params HandshakeParams) error {
	if params.ProtocolVersion != ProtocolVersion {
		return &VersionMismatchError{Wanted: ProtocolVersion, Got: params.ProtocolVersion}
	}
	header, body, err := p.codec.EncodeStatus(&StatusMessage{
		ProtocolVersion: params.ProtocolVersion,
		NetworkID:       params.NetworkID,
		GenesisRoot:     params.GenesisRoot,
		HeadSlot:        params.HeadSlot,
	})
	return p.send(header, body, err)
}

// SendGetBlocks requests up to maxBlocks blocks starting at target.
func (p *Protocol) SendGetBlocks(target BlockSlotOrRoot, maxBlocks uint64, requestID uint64) error {
	header, body, err := p.codec.EncodeGetBeaconBlocks(&GetBeaconBlocksMessage{
		RequestID:       requestID,
		BlockSlotOrRoot: target,
		MaxBlocks:       maxBlocks,
	})
	return p.send(header, body, err)
}

// SendBlocks replies to a GetBeaconBlocks request with blocks, pre-encoding
// each one individually (§4.A).
func (p *Protocol) SendBlocks(blocks []*BeaconBlock, requestID uint64) error {
	encoded := make([][]byte, len(blocks))
	for i, b := range blocks {
		eb, err := EncodeBlock(b)
		if err != nil {
			return err
		}
		encoded[i] = eb
	}
	header, body, err := p.codec.EncodeBeaconBlocks(&BeaconBlocksMessage{
		RequestID:     requestID,
		EncodedBlocks: encoded,
	})
	return p.send(header, body, err)
}

// SendAttestationRecords gossips attestations, each pre-encoded
// individually.
func (p *Protocol) SendAttestationRecords(attestations []*Attestation) error {
	encoded := make([][]byte, len(attestations))
	for i, a := range attestations {
		ea, err := EncodeAttestation(a)
		if err != nil {
			return err
		}
		encoded[i] = ea
	}
	header, body, err := p.codec.EncodeAttestations(&AttestationsMessage{
		EncodedAttestations: encoded,
	})
	return p.send(header, body, err)
}

// SendNewBlock announces a single block.
func (p *Protocol) SendNewBlock(block *BeaconBlock) error {
	encoded, err := EncodeBlock(block)
	if err != nil {
		return err
	}
	header, body, err := p.codec.EncodeNewBeaconBlock(&NewBeaconBlockMessage{
		EncodedBlock: encoded,
	})
	return p.send(header, body, err)
}

var _ Driver = (*Protocol)(nil)
