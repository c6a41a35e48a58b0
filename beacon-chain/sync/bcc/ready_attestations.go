package bcc

import "github.com/prysmaticlabs/eth2-types"

// GetReadyAttestations returns the pooled attestations whose slot falls
// within the window eligible for inclusion in a block built on top of the
// current head state (§4.G).
func (s *ReceiveServer) GetReadyAttestations() []*Attestation {
	state := s.chain.GetHeadState()
	ready := make([]*Attestation, 0)
	for _, att := range s.attestationPool.GetAll() {
		if isAttestationSlotReady(att.Data.Slot, state.Slot()) {
			ready = append(ready, att)
		}
	}
	return ready
}

// isAttestationSlotReady reports whether an attestation made at
// attestationSlot may still be included in a block at stateSlot: at least
// MinAttestationInclusionDelay slots must have passed, and no more than
// SlotsPerEpoch.
func isAttestationSlotReady(attestationSlot, stateSlot types.Slot) bool {
	if attestationSlot+MinAttestationInclusionDelay > stateSlot {
		return false
	}
	if stateSlot > attestationSlot+SlotsPerEpoch {
		return false
	}
	return true
}
