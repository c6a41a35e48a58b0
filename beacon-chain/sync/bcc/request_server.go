package bcc

import (
	"context"
	"errors"

	"github.com/prysmaticlabs/eth2-types"
	"go.opencensus.io/trace"
)

// RequestServer answers GetBeaconBlocks requests from peers (§4.E). It
// touches nothing but the chain; broadcast and pool bookkeeping belong to
// ReceiveServer.
type RequestServer struct {
	chain Chain
}

// NewRequestServer builds a server backed by chain.
func NewRequestServer(chain Chain) *RequestServer {
	return &RequestServer{chain: chain}
}

// HandleGetBeaconBlocks resolves msg against the chain and replies to peer
// with whatever connected run of blocks it can serve, possibly empty.
func (s *RequestServer) HandleGetBeaconBlocks(ctx context.Context, peer Peer, msg *GetBeaconBlocksMessage) error {
	ctx, span := trace.StartSpan(ctx, "bcc.HandleGetBeaconBlocks")
	defer span.End()

	startBlock, err := s.resolveStart(msg.BlockSlotOrRoot)
	if err != nil && !errors.Is(err, ErrBlockNotFound) {
		return err
	}

	var blocks []*BeaconBlock
	if startBlock != nil {
		log.Debugf("peer %s requested %d blocks starting at %s", peer.RemoteID(), msg.MaxBlocks, startBlock.SigningRoot)
		blocks, err = s.collectBlocks(ctx, startBlock, msg.MaxBlocks)
		if err != nil {
			return err
		}
	} else {
		log.Debugf("peer %s requested unknown start block", peer.RemoteID())
	}

	log.Debugf("replying to peer %s with %d blocks", peer.RemoteID(), len(blocks))
	return peer.Driver().SendBlocks(blocks, msg.RequestID)
}

func (s *RequestServer) resolveStart(target BlockSlotOrRoot) (*BeaconBlock, error) {
	if target.IsRoot {
		return s.chain.GetBlockByRoot(target.Root)
	}
	return s.chain.GetCanonicalBlockBySlot(target.Slot)
}

// collectBlocks walks the canonical chain forward from start, stopping as
// soon as either maxBlocks is reached or the chain breaks (the next slot's
// canonical block does not have the prior block as its parent, which can
// happen if start was not canonical or the canonical chain reorgs mid-walk).
func (s *RequestServer) collectBlocks(ctx context.Context, start *BeaconBlock, maxBlocks uint64) ([]*BeaconBlock, error) {
	_, span := trace.StartSpan(ctx, "bcc.collectBlocks")
	defer span.End()

	if maxBlocks == 0 {
		return nil, nil
	}

	blocks := []*BeaconBlock{start}
	parent := start
	for slot := start.Slot + 1; slot < start.Slot+types.Slot(maxBlocks); slot++ {
		block, err := s.chain.GetCanonicalBlockBySlot(slot)
		if errors.Is(err, ErrBlockNotFound) {
			break
		}
		if err != nil {
			return nil, err
		}
		if block.ParentRoot != parent.SigningRoot {
			break
		}
		blocks = append(blocks, block)
		parent = block
	}
	return blocks, nil
}
