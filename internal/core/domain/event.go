package domain

import (
	"encoding/hex"
	"fmt"
	"time"

	bin "github.com/gagliardetto/binary"
	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// EventKind names the operation a journal entry records.
type EventKind string

const (
	EventInitializeCollection    EventKind = "INITIALIZE_COLLECTION"
	EventAddNft                  EventKind = "ADD_NFT"
	EventPayLabel                EventKind = "PAY_LABEL"
	EventDistributeSecondaryPool EventKind = "DISTRIBUTE_SECONDARY_POOL"
	EventPayLicensingFee         EventKind = "PAY_LICENSING_FEE"
	EventMemberWithdraw          EventKind = "MEMBER_WITHDRAW"
	EventArtistWithdraw          EventKind = "ARTIST_WITHDRAW"
)

// IsDeposit reports whether the kind moves funds into the vault.
func (k EventKind) IsDeposit() bool {
	switch k {
	case EventAddNft, EventPayLabel, EventDistributeSecondaryPool, EventPayLicensingFee:
		return true
	}
	return false
}

// IsWithdrawal reports whether the kind moves funds out of the vault.
func (k EventKind) IsWithdrawal() bool {
	return k == EventMemberWithdraw || k == EventArtistWithdraw
}

// RoyaltyEvent is an append-only journal entry. Each entry's hash covers the
// previous entry's hash, so rewriting history breaks the chain.
type RoyaltyEvent struct {
	ID           uuid.UUID `json:"id"`
	Sequence     int64     `json:"sequence"`
	ProgramID    Identity  `json:"program_id"`
	Kind         EventKind `json:"kind"`
	Actor        Identity  `json:"actor"`
	Subject      Identity  `json:"subject"`
	Amount       uint64    `json:"amount"`
	ArtistAmount uint64    `json:"artist_amount"`
	LabelAmount  uint64    `json:"label_amount"`
	Retained     uint64    `json:"retained"`
	ReferenceID  string    `json:"reference_id,omitempty"`
	PrevHash     string    `json:"prev_hash"`
	Hash         string    `json:"hash"`
	CreatedAt    time.Time `json:"created_at"`
	// Replayed is set when the event was served from the idempotency log
	// instead of being applied again. It is not part of the hash.
	Replayed bool `json:"replayed,omitempty"`
}

// NewRoyaltyEvent builds the journal entry for an outcome and seals it onto prevHash.
func NewRoyaltyEvent(programID Identity, out *Outcome, referenceID, prevHash string, now time.Time) (*RoyaltyEvent, error) {
	e := &RoyaltyEvent{
		ID:           uuid.New(),
		ProgramID:    programID,
		Kind:         out.Kind,
		Actor:        out.Actor,
		Subject:      out.Subject,
		Amount:       out.Amount,
		ArtistAmount: out.ArtistAmount,
		LabelAmount:  out.LabelAmount,
		Retained:     out.Retained,
		ReferenceID:  referenceID,
		PrevHash:     prevHash,
		CreatedAt:    now.UTC().Truncate(time.Microsecond),
	}
	hash, err := e.ComputeHash()
	if err != nil {
		return nil, err
	}
	e.Hash = hash
	return e, nil
}

type eventDigest struct {
	ID           [16]byte
	ProgramID    [32]byte
	Kind         string
	Actor        [32]byte
	Subject      [32]byte
	Amount       uint64
	ArtistAmount uint64
	LabelAmount  uint64
	Retained     uint64
	ReferenceID  string
	CreatedAt    int64
}

// ComputeHash returns hex(blake2b-256(prev hash bytes || borsh(entry))).
func (e *RoyaltyEvent) ComputeHash() (string, error) {
	prev, err := hex.DecodeString(e.PrevHash)
	if err != nil {
		return "", fmt.Errorf("decode prev hash: %w", err)
	}
	body, err := bin.MarshalBorsh(eventDigest{
		ID:           e.ID,
		ProgramID:    e.ProgramID,
		Kind:         string(e.Kind),
		Actor:        e.Actor,
		Subject:      e.Subject,
		Amount:       e.Amount,
		ArtistAmount: e.ArtistAmount,
		LabelAmount:  e.LabelAmount,
		Retained:     e.Retained,
		ReferenceID:  e.ReferenceID,
		CreatedAt:    e.CreatedAt.UnixMicro(),
	})
	if err != nil {
		return "", fmt.Errorf("encode event: %w", err)
	}
	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}
	h.Write(prev)
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// VerifyJournal checks that events, oldest first, form an unbroken hash chain.
func VerifyJournal(events []RoyaltyEvent) error {
	prev := ""
	for i := range events {
		e := &events[i]
		if e.PrevHash != prev {
			return fmt.Errorf("event %s: prev hash does not match predecessor", e.ID)
		}
		hash, err := e.ComputeHash()
		if err != nil {
			return fmt.Errorf("event %s: %w", e.ID, err)
		}
		if hash != e.Hash {
			return fmt.Errorf("event %s: hash mismatch", e.ID)
		}
		prev = e.Hash
	}
	return nil
}

// EventStats aggregates the journal for reporting.
type EventStats struct {
	TotalEvents      int64  `json:"total_events"`
	NftsRegistered   int64  `json:"nfts_registered"`
	TotalDeposited   uint64 `json:"total_deposited"`
	TotalWithdrawn   uint64 `json:"total_withdrawn"`
	ArtistCredited   uint64 `json:"artist_credited"`
	LabelCredited    uint64 `json:"label_credited"`
	RoundingRetained uint64 `json:"rounding_retained"`
}
