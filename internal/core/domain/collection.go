package domain

import "nft-royalty-vault/pkg/apperror"

// TransferAuthority says who authorizes a value transfer.
type TransferAuthority string

const (
	// AuthorityHolder transfers are signed by the source account's holder.
	AuthorityHolder TransferAuthority = "HOLDER"
	// AuthorityProgram transfers leave the vault under the program's derived-address authority.
	AuthorityProgram TransferAuthority = "PROGRAM"
)

// Transfer is a native value movement the host must apply alongside the ledger change.
type Transfer struct {
	From      Identity          `json:"from"`
	To        Identity          `json:"to"`
	Amount    uint64            `json:"amount"`
	Authority TransferAuthority `json:"authority"`
}

// Outcome describes the effect of one successful collection operation.
type Outcome struct {
	Kind         EventKind
	Actor        Identity
	Subject      Identity
	Amount       uint64
	ArtistAmount uint64
	LabelAmount  uint64
	Retained     uint64
	Transfer     *Transfer
	// Skipped lists split beneficiaries missing from the artist ledger.
	Skipped []Identity
}

// Collection is the aggregate of a collection's config, ledgers and vault.
// Every operation either applies completely or leaves the collection unchanged.
type Collection struct {
	Addresses ProgramAddresses
	Config    *CollectionConfig
	Artists   *ArtistLedger
	Nfts      *NftLedger
	Vault     *Vault
}

// RestoreCollection assembles a collection from stored state.
func RestoreCollection(addrs ProgramAddresses, cfg *CollectionConfig, artists *ArtistLedger, nfts *NftLedger, vaultBalance uint64) *Collection {
	return &Collection{
		Addresses: addrs,
		Config:    cfg,
		Artists:   artists,
		Nfts:      nfts,
		Vault:     RestoreVault(addrs.Vault, vaultBalance),
	}
}

// InitializeCollectionParams are the inputs of InitializeCollection.
type InitializeCollectionParams struct {
	Authority         Identity
	ArtistMintBP      uint64
	LabelMintBP       uint64
	ArtistSecondaryBP uint64
	LabelSecondaryBP  uint64
	ArtistSplits      []PercentageSplit
	Signers           []Identity
}

// InitializeCollection validates the splits and creates the config, an artist
// ledger seeded from the splits and an empty NFT ledger. The signing authority
// becomes the collection authority.
func InitializeCollection(addrs ProgramAddresses, vaultBalance uint64, p InitializeCollectionParams) (*Collection, *Outcome, error) {
	if !containsSigner(p.Signers, p.Authority) {
		return nil, nil, apperror.ErrMissingSigner()
	}
	cfg, err := NewCollectionConfig(p.Authority, p.ArtistMintBP, p.LabelMintBP, p.ArtistSecondaryBP, p.LabelSecondaryBP, p.ArtistSplits)
	if err != nil {
		return nil, nil, err
	}

	c := RestoreCollection(addrs, cfg, NewArtistLedger(cfg.ArtistSplits), NewNftLedger(), vaultBalance)
	return c, &Outcome{
		Kind:    EventInitializeCollection,
		Actor:   p.Authority,
		Subject: addrs.Config,
	}, nil
}

// AddNftParams are the inputs of AddNft.
type AddNftParams struct {
	Authority  Identity
	Payer      Identity
	Nft        Identity
	AmountPaid uint64
	Signers    []Identity
}

// CheckSigners verifies the claimed authority and any paying account signed
// the request. It needs no collection state.
func (p AddNftParams) CheckSigners() error {
	if !containsSigner(p.Signers, p.Authority) {
		return apperror.ErrMissingCollectionAuthoritySignature()
	}
	if p.AmountPaid > 0 && !containsSigner(p.Signers, p.Payer) {
		return apperror.ErrMissingSigner()
	}
	return nil
}

// AddNft registers a minted NFT and distributes its mint proceeds. The first
// mint routes everything to the artists; later mints split by the mint
// percentages, the label part spread evenly over the NFTs already registered.
func (c *Collection) AddNft(p AddNftParams) (*Outcome, error) {
	if !p.Authority.Equals(c.Config.Authority) {
		return nil, apperror.ErrMissingCollectionAuthoritySignature()
	}
	if err := p.CheckSigners(); err != nil {
		return nil, err
	}

	return c.mutate(func(next *Collection) (*Outcome, error) {
		if _, exists := next.Nfts.Balance(p.Nft); exists {
			return nil, apperror.ErrDuplicateNft()
		}

		out := &Outcome{Kind: EventAddNft, Actor: p.Authority, Subject: p.Nft, Amount: p.AmountPaid}
		if next.Nfts.Count == 0 {
			dist, err := next.Artists.DistributeArtist(p.AmountPaid, next.Config.ArtistSplits)
			if err != nil {
				return nil, err
			}
			out.ArtistAmount, out.Skipped = dist.Credited, dist.Skipped
		} else {
			dist, err := next.Artists.DistributeArtist(shareOf(p.AmountPaid, next.Config.ArtistMintBP), next.Config.ArtistSplits)
			if err != nil {
				return nil, err
			}
			label, err := next.Nfts.DistributeEven(shareOf(p.AmountPaid, next.Config.LabelMintBP))
			if err != nil {
				return nil, err
			}
			out.ArtistAmount, out.LabelAmount, out.Skipped = dist.Credited, label, dist.Skipped
		}

		if err := next.Nfts.Add(p.Nft); err != nil {
			return nil, err
		}
		if err := next.deposit(out, p.Payer); err != nil {
			return nil, err
		}
		return out, nil
	})
}

// DepositParams are the inputs of the payer-funded deposit operations.
type DepositParams struct {
	Payer   Identity
	Amount  uint64
	Signers []Identity
}

// PayLabel spreads amount evenly over every registered NFT and moves it into the vault.
func (c *Collection) PayLabel(p DepositParams) (*Outcome, error) {
	if err := p.Check(); err != nil {
		return nil, err
	}
	return c.mutate(func(next *Collection) (*Outcome, error) {
		label, err := next.Nfts.DistributeEven(p.Amount)
		if err != nil {
			return nil, err
		}
		out := &Outcome{Kind: EventPayLabel, Actor: p.Payer, Subject: p.Payer, Amount: p.Amount, LabelAmount: label}
		if err := next.deposit(out, p.Payer); err != nil {
			return nil, err
		}
		return out, nil
	})
}

// DistributeSecondaryPool settles resale earnings using the secondary percentages.
func (c *Collection) DistributeSecondaryPool(p DepositParams) (*Outcome, error) {
	return c.secondary(EventDistributeSecondaryPool, p)
}

// PayLicensingFee settles a licensing payment using the secondary percentages.
func (c *Collection) PayLicensingFee(p DepositParams) (*Outcome, error) {
	return c.secondary(EventPayLicensingFee, p)
}

func (c *Collection) secondary(kind EventKind, p DepositParams) (*Outcome, error) {
	if err := p.Check(); err != nil {
		return nil, err
	}
	return c.mutate(func(next *Collection) (*Outcome, error) {
		if next.Nfts.Count == 0 {
			return nil, apperror.ErrInvalidRoyaltiesDistribution()
		}
		dist, err := next.Artists.DistributeArtist(shareOf(p.Amount, next.Config.ArtistSecondaryBP), next.Config.ArtistSplits)
		if err != nil {
			return nil, err
		}
		label, err := next.Nfts.DistributeEven(shareOf(p.Amount, next.Config.LabelSecondaryBP))
		if err != nil {
			return nil, err
		}
		out := &Outcome{
			Kind:         kind,
			Actor:        p.Payer,
			Subject:      p.Payer,
			Amount:       p.Amount,
			ArtistAmount: dist.Credited,
			LabelAmount:  label,
			Skipped:      dist.Skipped,
		}
		if err := next.deposit(out, p.Payer); err != nil {
			return nil, err
		}
		return out, nil
	})
}

// MemberWithdrawParams are the inputs of MemberWithdraw.
type MemberWithdrawParams struct {
	Caller  Identity
	Nft     Identity
	Holding TokenHolding
	Ledger  Identity
	Signers []Identity
}

// MemberWithdraw pays an NFT holder the royalties accrued to that NFT. The row
// is zeroed in the same step that sizes the transfer, so a repeated withdrawal
// pays nothing.
func (c *Collection) MemberWithdraw(p MemberWithdrawParams) (*Outcome, error) {
	if !p.Ledger.Equals(c.Addresses.NftLedger) {
		return nil, apperror.ErrInvalidBalanceLedger()
	}
	if !containsSigner(p.Signers, p.Caller) {
		return nil, apperror.ErrMissingSigner()
	}
	if !p.Holding.Mint.Equals(p.Nft) {
		return nil, apperror.ErrInvalidNftAssociatedAccount()
	}
	if p.Holding.Amount == 0 {
		return nil, apperror.ErrAssociatedAccountBalanceZero()
	}
	if !p.Holding.Owner.Equals(p.Caller) {
		return nil, apperror.ErrNftNotOwnedByWithdrawer()
	}

	return c.mutate(func(next *Collection) (*Outcome, error) {
		owed, err := next.Nfts.EmptyAndReturn(p.Nft)
		if err != nil {
			return nil, err
		}
		out := &Outcome{Kind: EventMemberWithdraw, Actor: p.Caller, Subject: p.Nft, Amount: owed}
		if err := next.payout(out, p.Caller); err != nil {
			return nil, err
		}
		return out, nil
	})
}

// ArtistWithdrawParams are the inputs of ArtistWithdraw.
type ArtistWithdrawParams struct {
	Caller  Identity
	Artist  Identity
	Ledger  Identity
	Signers []Identity
}

// ArtistWithdraw pays an artist's accrued royalties to the artist's address.
// The artist or the collection authority may trigger it.
func (c *Collection) ArtistWithdraw(p ArtistWithdrawParams) (*Outcome, error) {
	if !p.Ledger.Equals(c.Addresses.ArtistLedger) {
		return nil, apperror.ErrInvalidBalanceLedger()
	}
	if !containsSigner(p.Signers, p.Caller) {
		return nil, apperror.ErrMissingSigner()
	}
	if !p.Caller.Equals(p.Artist) && !p.Caller.Equals(c.Config.Authority) {
		return nil, apperror.ErrInvalidWithdrawer()
	}

	return c.mutate(func(next *Collection) (*Outcome, error) {
		owed, err := next.Artists.EmptyAndReturn(p.Artist)
		if err != nil {
			return nil, err
		}
		out := &Outcome{Kind: EventArtistWithdraw, Actor: p.Caller, Subject: p.Artist, Amount: owed}
		if err := next.payout(out, p.Artist); err != nil {
			return nil, err
		}
		return out, nil
	})
}

// Reconciliation compares ledger obligations with vault custody.
type Reconciliation struct {
	VaultBalance  uint64 `json:"vault_balance"`
	ArtistAccrued uint64 `json:"artist_accrued"`
	NftAccrued    uint64 `json:"nft_accrued"`
	Unassigned    uint64 `json:"unassigned"`
}

// Reconcile fails with ConservationViolation when the ledgers owe more than the vault holds.
func (c *Collection) Reconcile() (Reconciliation, error) {
	artists, err := c.Artists.Total()
	if err != nil {
		return Reconciliation{}, err
	}
	nfts, err := c.Nfts.Total()
	if err != nil {
		return Reconciliation{}, err
	}
	owed, err := checkedAdd(artists, nfts)
	if err != nil {
		return Reconciliation{}, err
	}
	if owed > c.Vault.Balance() {
		return Reconciliation{}, apperror.ErrConservationViolation()
	}
	return Reconciliation{
		VaultBalance:  c.Vault.Balance(),
		ArtistAccrued: artists,
		NftAccrued:    nfts,
		Unassigned:    c.Vault.Balance() - owed,
	}, nil
}

// Check verifies the amount and that the payer signed.
func (p DepositParams) Check() error {
	if p.Amount == 0 {
		return apperror.ErrInvalidAmount()
	}
	if !containsSigner(p.Signers, p.Payer) {
		return apperror.ErrMissingSigner()
	}
	return nil
}

// deposit moves out.Amount from payer into the vault and records the rounding remainder.
func (c *Collection) deposit(out *Outcome, payer Identity) error {
	if err := c.Vault.deposit(out.Amount); err != nil {
		return err
	}
	out.Retained = out.Amount - out.ArtistAmount - out.LabelAmount
	out.Transfer = &Transfer{From: payer, To: c.Vault.Address(), Amount: out.Amount, Authority: AuthorityHolder}
	return nil
}

func (c *Collection) payout(out *Outcome, to Identity) error {
	if err := c.Vault.withdraw(out.Amount); err != nil {
		return err
	}
	out.Transfer = &Transfer{From: c.Vault.Address(), To: to, Amount: out.Amount, Authority: AuthorityProgram}
	return nil
}

func (c *Collection) mutate(fn func(next *Collection) (*Outcome, error)) (*Outcome, error) {
	next := &Collection{
		Addresses: c.Addresses,
		Config:    c.Config.clone(),
		Artists:   c.Artists.clone(),
		Nfts:      c.Nfts.clone(),
		Vault:     c.Vault.clone(),
	}
	out, err := fn(next)
	if err != nil {
		return nil, err
	}
	*c = *next
	return out, nil
}
