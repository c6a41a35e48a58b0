package bcc

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.opencensus.io/trace"
	"golang.org/x/exp/rand"
)

// ReceiveServer handles attestations, block replies, and block
// announcements arriving from peers (§4.F). It owns the attestation pool
// and the orphan block pool; HandleBeaconBlocks and HandleNewBeaconBlock
// both funnel into processReceivedBlock.
type ReceiveServer struct {
	chain Chain
	peers PeerSet

	attestationPool *AttestationPool
	orphanPool      *OrphanBlockPool

	mu              sync.Mutex
	pendingRequests map[uint64]Hash32
}

// NewReceiveServer builds a server backed by chain, broadcasting to and
// requesting from peers, using DefaultConfig's buffer sizing.
func NewReceiveServer(chain Chain, peers PeerSet) *ReceiveServer {
	return NewReceiveServerWithConfig(chain, peers, DefaultConfig())
}

// NewReceiveServerWithConfig builds a server as NewReceiveServer does, but
// sizes the attestation pool, orphan pool, and pending-request table from
// cfg rather than DefaultConfig.
func NewReceiveServerWithConfig(chain Chain, peers PeerSet, cfg *Config) *ReceiveServer {
	return &ReceiveServer{
		chain:           chain,
		peers:           peers,
		attestationPool: NewAttestationPoolWithCapacity(cfg.AttestationBufferSize),
		orphanPool:      NewOrphanBlockPoolWithCapacity(cfg.NewBlockBufferSize),
		pendingRequests: make(map[uint64]Hash32, cfg.BeaconBlocksBufferSize),
	}
}

// AttestationPool exposes the pool backing this server, for
// GetReadyAttestations and for tests.
func (s *ReceiveServer) AttestationPool() *AttestationPool { return s.attestationPool }

// OrphanBlockPool exposes the pool backing this server.
func (s *ReceiveServer) OrphanBlockPool() *OrphanBlockPool { return s.orphanPool }

// HandleAttestations decodes, validates, dedups, pools, and rebroadcasts
// attestations arriving from peer.
func (s *ReceiveServer) HandleAttestations(ctx context.Context, peer Peer, msg *AttestationsMessage) error {
	ctx, span := trace.StartSpan(ctx, "bcc.HandleAttestations")
	defer span.End()

	if !peer.IsOperational() {
		return nil
	}

	attestations := make([]*Attestation, 0, len(msg.EncodedAttestations))
	for _, enc := range msg.EncodedAttestations {
		att, err := DecodeAttestation(enc)
		if err != nil {
			return err
		}
		attestations = append(attestations, att)
	}
	log.Debugf("received %d attestations from peer %s", len(attestations), peer.RemoteID())

	valid := s.validateAttestations(ctx, attestations)
	if len(valid) == 0 {
		return nil
	}

	fresh := make([]*Attestation, 0, len(valid))
	for _, att := range valid {
		if s.isAttestationNew(att) {
			fresh = append(fresh, att)
		}
	}
	if len(fresh) == 0 {
		return nil
	}

	s.attestationPool.BatchAdd(fresh)
	attestationsPooledCounter.Add(float64(len(fresh)))
	s.broadcastAttestations(ctx, fresh, peer)
	return nil
}

func (s *ReceiveServer) validateAttestations(ctx context.Context, attestations []*Attestation) []*Attestation {
	_, span := trace.StartSpan(ctx, "bcc.validateAttestations")
	defer span.End()

	sm := s.chain.GetStateMachine()
	state := s.chain.GetHeadState()
	valid := make([]*Attestation, 0, len(attestations))
	for _, att := range attestations {
		// Fast forward to the state at the slot this attestation would be
		// included at, so slot-range validation below sees the right state.
		futureSlot := att.Data.Slot + MinAttestationInclusionDelay
		futureState, err := sm.StateTransition().ApplyStateTransition(state, futureSlot)
		if err != nil {
			log.WithError(err).Debug("could not fast-forward state for attestation validation")
			continue
		}
		if err := sm.AttestationValidator().ValidateAttestation(futureState, att); err != nil {
			continue
		}
		valid = append(valid, att)
	}
	return valid
}

func (s *ReceiveServer) isAttestationNew(att *Attestation) bool {
	if s.attestationPool.Contains(att.HashTreeRoot) {
		return false
	}
	return !s.chain.AttestationExists(att.HashTreeRoot)
}

func (s *ReceiveServer) broadcastAttestations(ctx context.Context, attestations []*Attestation, from Peer) {
	_, span := trace.StartSpan(ctx, "bcc.broadcastAttestations")
	defer span.End()

	for _, peer := range s.peers.Connected() {
		if from != nil && peer.RemoteID() == from.RemoteID() {
			continue
		}
		if err := peer.Driver().SendAttestationRecords(attestations); err != nil {
			log.WithError(err).Debugf("failed to send attestations to peer %s", peer.RemoteID())
			continue
		}
		attestationsBroadcastCounter.Add(float64(len(attestations)))
	}
}

// HandleBeaconBlocks resolves a reply against the pending request table and
// hands the block to processReceivedBlock.
func (s *ReceiveServer) HandleBeaconBlocks(ctx context.Context, peer Peer, msg *BeaconBlocksMessage) error {
	ctx, span := trace.StartSpan(ctx, "bcc.HandleBeaconBlocks")
	defer span.End()

	if !peer.IsOperational() {
		return nil
	}

	s.mu.Lock()
	root, ok := s.pendingRequests[msg.RequestID]
	s.mu.Unlock()
	if !ok {
		return ErrUnknownRequestID
	}

	if len(msg.EncodedBlocks) != 1 {
		return ErrWrongReplyCardinality
	}
	block, err := DecodeBlock(msg.EncodedBlocks[0])
	if err != nil {
		return err
	}
	if block.SigningRoot != root {
		return ErrBlockRootMismatch
	}

	log.Debugf("received request_id=%d block=%s", msg.RequestID, block.SigningRoot)
	if _, err := s.processReceivedBlock(ctx, block); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.pendingRequests, msg.RequestID)
	s.mu.Unlock()
	return nil
}

// HandleNewBeaconBlock imports an announced block and rebroadcasts it if
// the import succeeded.
func (s *ReceiveServer) HandleNewBeaconBlock(ctx context.Context, peer Peer, msg *NewBeaconBlockMessage) error {
	ctx, span := trace.StartSpan(ctx, "bcc.HandleNewBeaconBlock")
	defer span.End()

	if !peer.IsOperational() {
		return nil
	}
	block, err := DecodeBlock(msg.EncodedBlock)
	if err != nil {
		return err
	}
	if s.isBlockSeen(block.SigningRoot) {
		return ErrDuplicateBlock
	}
	log.Debugf("received new block=%s", block.SigningRoot)

	imported, err := s.processReceivedBlock(ctx, block)
	if err != nil {
		return err
	}
	if imported {
		s.broadcastBlock(ctx, block, peer)
	}
	return nil
}

// processReceivedBlock parks block in the orphan pool and requests its
// parent if the parent is unknown, otherwise attempts to import it,
// reporting whether the caller should broadcast it onward.
func (s *ReceiveServer) processReceivedBlock(ctx context.Context, block *BeaconBlock) (bool, error) {
	ctx, span := trace.StartSpan(ctx, "bcc.processReceivedBlock")
	defer span.End()

	_, err := s.chain.GetBlockByRoot(block.ParentRoot)
	if errors.Is(err, ErrBlockNotFound) {
		if !s.orphanPool.Contains(block.SigningRoot) {
			log.Debugf("found orphan block=%s", block.SigningRoot)
			s.orphanPool.Add(block)
			blocksOrphanedCounter.Inc()
			s.requestBlockFromPeers(ctx, block.ParentRoot)
		}
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := s.chain.ImportBlock(block); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			blocksRejectedCounter.Inc()
			return false, nil
		}
		return false, err
	}

	blocksImportedCounter.Inc()
	if err := s.tryImportOrphanBlocks(ctx, block.SigningRoot); err != nil {
		return false, err
	}
	s.attestationPool.BatchRemove(block.Body.Attestations)
	return true, nil
}

// tryImportOrphanBlocks walks the orphan pool breadth-first from parentRoot,
// importing every child whose parent is now known. A child that fails
// consensus validation still has its attestations removed from the pool,
// mirroring this server's import-success bookkeeping rather than guarding
// it on success; any other import error is fatal and propagates to the
// caller, same as processReceivedBlock's own ImportBlock call.
func (s *ReceiveServer) tryImportOrphanBlocks(ctx context.Context, parentRoot Hash32) error {
	_, span := trace.StartSpan(ctx, "bcc.tryImportOrphanBlocks")
	defer span.End()

	queue := []Hash32{parentRoot}
	for len(queue) > 0 {
		currentParent := queue[0]
		queue = queue[1:]

		if _, err := s.chain.GetBlockByRoot(currentParent); err != nil {
			continue
		}

		children := s.orphanPool.PopChildren(currentParent)
		for _, block := range children {
			if err := s.chain.ImportBlock(block); err != nil {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					return err
				}
				log.WithError(err).Debugf("failed to import orphan block=%s", block.SigningRoot)
				s.attestationPool.BatchRemove(block.Body.Attestations)
				continue
			}
			log.Debugf("successfully imported orphan block=%s", block.SigningRoot)
			blocksImportedCounter.Inc()
			s.attestationPool.BatchRemove(block.Body.Attestations)
			queue = append(queue, block.SigningRoot)
		}
	}
	return nil
}

func (s *ReceiveServer) requestBlockFromPeers(ctx context.Context, blockRoot Hash32) {
	_, span := trace.StartSpan(ctx, "bcc.requestBlockFromPeers")
	defer span.End()

	for _, peer := range s.peers.Connected() {
		requestID := rand.Uint64()
		log.Debugf("send block request request_id=%d root=%s to peer=%s", requestID, blockRoot, peer.RemoteID())

		s.mu.Lock()
		s.pendingRequests[requestID] = blockRoot
		s.mu.Unlock()

		if err := peer.Driver().SendGetBlocks(SlotOrRootFromRoot(blockRoot), 1, requestID); err != nil {
			log.WithError(err).Debugf("failed to request block from peer %s", peer.RemoteID())
		}
	}
}

func (s *ReceiveServer) broadcastBlock(ctx context.Context, block *BeaconBlock, from Peer) {
	_, span := trace.StartSpan(ctx, "bcc.broadcastBlock")
	defer span.End()

	for _, peer := range s.peers.Connected() {
		if from != nil && peer.RemoteID() == from.RemoteID() {
			continue
		}
		if err := peer.Driver().SendNewBlock(block); err != nil {
			log.WithError(err).Debugf("failed to broadcast block to peer %s", peer.RemoteID())
			continue
		}
		blocksBroadcastCounter.Inc()
	}
}

func (s *ReceiveServer) isBlockSeen(root Hash32) bool {
	if s.orphanPool.Contains(root) {
		return true
	}
	_, err := s.chain.GetBlockByRoot(root)
	return err == nil
}
