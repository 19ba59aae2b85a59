// Package codec encodes collection state in the on-chain account layout: an
// 8-byte account discriminator followed by the Borsh-encoded body, fields in
// declaration order, identities as raw 32-byte keys and sequences prefixed
// with a little-endian u32 length.
package codec

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"

	"nft-royalty-vault/internal/core/domain"

	bin "github.com/gagliardetto/binary"
)

// DiscriminatorSize is the length of the account type prefix.
const DiscriminatorSize = 8

// Account type names used to derive discriminators.
const (
	AccountCollectionConfiguration = "CollectionConfiguration"
	AccountArtistBalanceLedger     = "ArtistBalanceLedger"
	AccountNftBalanceLedger        = "NftBalanceLedger"
)

var (
	// ErrShortData is returned when data cannot hold a discriminator.
	ErrShortData = errors.New("account data too short")
	// ErrDiscriminatorMismatch is returned when data belongs to another account type.
	ErrDiscriminatorMismatch = errors.New("account discriminator mismatch")
)

// Discriminator returns sha256("account:<name>")[:8].
func Discriminator(name string) [DiscriminatorSize]byte {
	sum := sha256.Sum256([]byte("account:" + name))
	var d [DiscriminatorSize]byte
	copy(d[:], sum[:DiscriminatorSize])
	return d
}

type artistPercentage struct {
	ArtistAddress       [32]byte
	AllocatedPercentage uint64
}

type collectionConfiguration struct {
	CollectionAuthority       [32]byte
	ArtistMintPercentage      uint64
	LabelMintPercentage       uint64
	ArtistSecondaryPercentage uint64
	LabelSecondaryPercentage  uint64
	ArtistSplits              []artistPercentage
}

type artistBalance struct {
	ArtistAddress    [32]byte
	RoyaltiesBalance uint64
}

type artistBalanceLedger struct {
	ArtistBalances []artistBalance
	Size           uint64
}

type nftBalance struct {
	NftAddress       [32]byte
	RoyaltiesBalance uint64
}

type nftBalanceLedger struct {
	NftBalances []nftBalance
	Size        uint64
}

// EncodeCollectionConfig encodes cfg as a CollectionConfiguration account.
func EncodeCollectionConfig(cfg *domain.CollectionConfig) ([]byte, error) {
	acc := collectionConfiguration{
		CollectionAuthority:       cfg.Authority,
		ArtistMintPercentage:      cfg.ArtistMintBP,
		LabelMintPercentage:       cfg.LabelMintBP,
		ArtistSecondaryPercentage: cfg.ArtistSecondaryBP,
		LabelSecondaryPercentage:  cfg.LabelSecondaryBP,
		ArtistSplits:              make([]artistPercentage, len(cfg.ArtistSplits)),
	}
	for i, s := range cfg.ArtistSplits {
		acc.ArtistSplits[i] = artistPercentage{ArtistAddress: s.Beneficiary, AllocatedPercentage: s.BasisPoints}
	}
	return encode(AccountCollectionConfiguration, acc)
}

// DecodeCollectionConfig decodes a CollectionConfiguration account. The result is
// not re-validated; stored configs were validated when created.
func DecodeCollectionConfig(data []byte) (*domain.CollectionConfig, error) {
	var acc collectionConfiguration
	if err := decode(AccountCollectionConfiguration, data, &acc); err != nil {
		return nil, err
	}
	cfg := &domain.CollectionConfig{
		Authority:         domain.Identity(acc.CollectionAuthority),
		ArtistMintBP:      acc.ArtistMintPercentage,
		LabelMintBP:       acc.LabelMintPercentage,
		ArtistSecondaryBP: acc.ArtistSecondaryPercentage,
		LabelSecondaryBP:  acc.LabelSecondaryPercentage,
		ArtistSplits:      make([]domain.PercentageSplit, len(acc.ArtistSplits)),
	}
	for i, s := range acc.ArtistSplits {
		cfg.ArtistSplits[i] = domain.PercentageSplit{Beneficiary: domain.Identity(s.ArtistAddress), BasisPoints: s.AllocatedPercentage}
	}
	return cfg, nil
}

// EncodeArtistLedger encodes l as an ArtistBalanceLedger account.
func EncodeArtistLedger(l *domain.ArtistLedger) ([]byte, error) {
	acc := artistBalanceLedger{ArtistBalances: make([]artistBalance, len(l.Balances)), Size: l.Count}
	for i, b := range l.Balances {
		acc.ArtistBalances[i] = artistBalance{ArtistAddress: b.Artist, RoyaltiesBalance: b.Accrued}
	}
	return encode(AccountArtistBalanceLedger, acc)
}

// DecodeArtistLedger decodes an ArtistBalanceLedger account.
func DecodeArtistLedger(data []byte) (*domain.ArtistLedger, error) {
	var acc artistBalanceLedger
	if err := decode(AccountArtistBalanceLedger, data, &acc); err != nil {
		return nil, err
	}
	l := &domain.ArtistLedger{Balances: make([]domain.ArtistBalance, len(acc.ArtistBalances)), Count: acc.Size}
	for i, b := range acc.ArtistBalances {
		l.Balances[i] = domain.ArtistBalance{Artist: domain.Identity(b.ArtistAddress), Accrued: b.RoyaltiesBalance}
	}
	if !l.Consistent() {
		return nil, fmt.Errorf("artist ledger size %d does not match %d rows", acc.Size, len(acc.ArtistBalances))
	}
	return l, nil
}

// EncodeNftLedger encodes l as an NftBalanceLedger account.
func EncodeNftLedger(l *domain.NftLedger) ([]byte, error) {
	acc := nftBalanceLedger{NftBalances: make([]nftBalance, len(l.Balances)), Size: l.Count}
	for i, b := range l.Balances {
		acc.NftBalances[i] = nftBalance{NftAddress: b.Nft, RoyaltiesBalance: b.Accrued}
	}
	return encode(AccountNftBalanceLedger, acc)
}

// DecodeNftLedger decodes an NftBalanceLedger account.
func DecodeNftLedger(data []byte) (*domain.NftLedger, error) {
	var acc nftBalanceLedger
	if err := decode(AccountNftBalanceLedger, data, &acc); err != nil {
		return nil, err
	}
	l := &domain.NftLedger{Balances: make([]domain.NftBalance, len(acc.NftBalances)), Count: acc.Size}
	for i, b := range acc.NftBalances {
		l.Balances[i] = domain.NftBalance{Nft: domain.Identity(b.NftAddress), Accrued: b.RoyaltiesBalance}
	}
	if !l.Consistent() {
		return nil, fmt.Errorf("nft ledger size %d does not match %d rows", acc.Size, len(acc.NftBalances))
	}
	return l, nil
}

func encode(name string, v interface{}) ([]byte, error) {
	body, err := bin.MarshalBorsh(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", name, err)
	}
	d := Discriminator(name)
	out := make([]byte, 0, DiscriminatorSize+len(body))
	out = append(out, d[:]...)
	return append(out, body...), nil
}

func decode(name string, data []byte, v interface{}) error {
	if len(data) < DiscriminatorSize {
		return fmt.Errorf("decode %s: %w", name, ErrShortData)
	}
	d := Discriminator(name)
	if !bytes.Equal(data[:DiscriminatorSize], d[:]) {
		return fmt.Errorf("decode %s: %w", name, ErrDiscriminatorMismatch)
	}
	if err := bin.UnmarshalBorsh(v, data[DiscriminatorSize:]); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
