package bcc

import (
	"bytes"
	"fmt"

	"github.com/prysmaticlabs/go-ssz"

	"github.com/prysmaticlabs/bcc/beacon-chain/p2p/encoder"
)

// Header is the shared frame header: the absolute command id (the peer's
// cmd-id offset plus this subprotocol's local id) and whether the body is
// snappy-compressed. The transport is responsible for getting (header,
// body) to the other side; framing them onto the wire is its concern, not
// this codec's (§4.A).
type Header struct {
	CommandID  uint64
	Compressed bool
}

// Codec encodes and decodes the five bcc messages for one peer, applying
// that peer's command-id offset and compression preference. It holds no
// other state, matching the source's observation that the driver carries
// nothing besides the offset, the compression flag, and its transport.
type Codec struct {
	CmdOffset uint64
	UseSnappy bool
}

// NewCodec builds a Codec for a peer that negotiated cmdOffset as its base
// command id for this subprotocol.
func NewCodec(cmdOffset uint64, useSnappy bool) *Codec {
	return &Codec{CmdOffset: cmdOffset, UseSnappy: useSnappy}
}

func (c *Codec) encoding() encoder.SszNetworkEncoder {
	return encoder.SszNetworkEncoder{UseSnappyCompression: c.UseSnappy}
}

func (c *Codec) encode(local localCmdID, msg interface{}) (Header, []byte, error) {
	var buf bytes.Buffer
	if _, err := c.encoding().Encode(&buf, msg); err != nil {
		return Header{}, nil, err
	}
	return Header{
		CommandID:  c.CmdOffset + uint64(local),
		Compressed: c.UseSnappy,
	}, buf.Bytes(), nil
}

// EncodeStatus encodes a Status message.
func (c *Codec) EncodeStatus(msg *StatusMessage) (Header, []byte, error) {
	return c.encode(cmdStatus, msg)
}

// EncodeGetBeaconBlocks encodes a GetBeaconBlocks message.
func (c *Codec) EncodeGetBeaconBlocks(msg *GetBeaconBlocksMessage) (Header, []byte, error) {
	return c.encode(cmdGetBeaconBlocks, msg)
}

// EncodeBeaconBlocks encodes a BeaconBlocks message.
func (c *Codec) EncodeBeaconBlocks(msg *BeaconBlocksMessage) (Header, []byte, error) {
	return c.encode(cmdBeaconBlocks, msg)
}

// EncodeAttestations encodes an Attestations message.
func (c *Codec) EncodeAttestations(msg *AttestationsMessage) (Header, []byte, error) {
	return c.encode(cmdAttestations, msg)
}

// EncodeNewBeaconBlock encodes a NewBeaconBlock message.
func (c *Codec) EncodeNewBeaconBlock(msg *NewBeaconBlockMessage) (Header, []byte, error) {
	return c.encode(cmdNewBeaconBlock, msg)
}

// Decode dispatches on header.CommandID (relative to c.CmdOffset) and
// decodes body into the matching message type. The returned value is one
// of *StatusMessage, *GetBeaconBlocksMessage, *BeaconBlocksMessage,
// *AttestationsMessage, or *NewBeaconBlockMessage.
func (c *Codec) Decode(header Header, body []byte) (interface{}, error) {
	if header.CommandID < c.CmdOffset {
		return nil, fmt.Errorf("bcc: command id %d below offset %d", header.CommandID, c.CmdOffset)
	}
	e := encoder.SszNetworkEncoder{UseSnappyCompression: header.Compressed}
	switch localCmdID(header.CommandID - c.CmdOffset) {
	case cmdStatus:
		msg := &StatusMessage{}
		if err := e.Decode(body, msg); err != nil {
			return nil, err
		}
		return msg, nil
	case cmdGetBeaconBlocks:
		msg := &GetBeaconBlocksMessage{}
		if err := e.Decode(body, msg); err != nil {
			return nil, err
		}
		return msg, nil
	case cmdBeaconBlocks:
		msg := &BeaconBlocksMessage{}
		if err := e.Decode(body, msg); err != nil {
			return nil, err
		}
		return msg, nil
	case cmdAttestations:
		msg := &AttestationsMessage{}
		if err := e.Decode(body, msg); err != nil {
			return nil, err
		}
		return msg, nil
	case cmdNewBeaconBlock:
		msg := &NewBeaconBlockMessage{}
		if err := e.Decode(body, msg); err != nil {
			return nil, err
		}
		return msg, nil
	default:
		return nil, fmt.Errorf("bcc: unrecognized local command id for header %d", header.CommandID)
	}
}

// EncodeBlock SSZ-encodes a single block. Used for the pre-encoded entries
// carried inside BeaconBlocksMessage/NewBeaconBlockMessage: the application
// layer, not this frame codec, is responsible for (de)serializing list
// elements (§4.A, §9).
func EncodeBlock(block *BeaconBlock) ([]byte, error) {
	return ssz.Marshal(block)
}

// DecodeBlock decodes a single pre-encoded block.
func DecodeBlock(b []byte) (*BeaconBlock, error) {
	block := &BeaconBlock{}
	if err := ssz.Unmarshal(b, block); err != nil {
		return nil, err
	}
	return block, nil
}

// EncodeAttestation SSZ-encodes a single attestation.
func EncodeAttestation(att *Attestation) ([]byte, error) {
	return ssz.Marshal(att)
}

// DecodeAttestation decodes a single pre-encoded attestation.
func DecodeAttestation(b []byte) (*Attestation, error) {
	att := &Attestation{}
	if err := ssz.Unmarshal(b, att); err != nil {
		return nil, err
	}
	return att, nil
}
