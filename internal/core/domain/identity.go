package domain

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Identity is a 32-byte principal: a wallet, an NFT mint, or a program-derived address.
type Identity = solana.PublicKey

// Fixed seeds for the collection's program-derived addresses.
const (
	SeedCollectionConfig = "collection-config"
	SeedArtistLedger     = "artist-ledger"
	SeedNftLedger        = "nft-ledger"
	SeedVault            = "vault"
)

// SystemOwner owns plain wallet accounts.
var SystemOwner = solana.SystemProgramID

// ParseIdentity decodes a base58 identity.
func ParseIdentity(s string) (Identity, error) {
	id, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return Identity{}, fmt.Errorf("parse identity %q: %w", s, err)
	}
	return id, nil
}

// DeriveAddress derives the program-controlled address for a seed. No private
// key exists for the result, so only the program can authorize transfers from it.
func DeriveAddress(seed string, programID Identity) (Identity, error) {
	addr, _, err := solana.FindProgramAddress([][]byte{[]byte(seed)}, programID)
	if err != nil {
		return Identity{}, fmt.Errorf("derive %s address: %w", seed, err)
	}
	return addr, nil
}

// ProgramAddresses holds every derived address of one collection.
type ProgramAddresses struct {
	ProgramID    Identity `json:"program_id"`
	Config       Identity `json:"config"`
	ArtistLedger Identity `json:"artist_ledger"`
	NftLedger    Identity `json:"nft_ledger"`
	Vault        Identity `json:"vault"`
}

// DeriveProgramAddresses derives the config, ledger and vault addresses of programID.
func DeriveProgramAddresses(programID Identity) (ProgramAddresses, error) {
	addrs := ProgramAddresses{ProgramID: programID}
	targets := []struct {
		seed string
		dst  *Identity
	}{
		{SeedCollectionConfig, &addrs.Config},
		{SeedArtistLedger, &addrs.ArtistLedger},
		{SeedNftLedger, &addrs.NftLedger},
		{SeedVault, &addrs.Vault},
	}
	for _, t := range targets {
		addr, err := DeriveAddress(t.seed, programID)
		if err != nil {
			return ProgramAddresses{}, err
		}
		*t.dst = addr
	}
	return addrs, nil
}

// IsProgramAddress reports whether addr is one of the collection's derived addresses.
func (a ProgramAddresses) IsProgramAddress(addr Identity) bool {
	return addr.Equals(a.Config) || addr.Equals(a.ArtistLedger) ||
		addr.Equals(a.NftLedger) || addr.Equals(a.Vault)
}

func containsSigner(signers []Identity, id Identity) bool {
	for _, s := range signers {
		if s.Equals(id) {
			return true
		}
	}
	return false
}
