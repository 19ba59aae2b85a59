package domain

import (
	"math/rand"
	"testing"

	"nft-royalty-vault/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collectionFixture struct {
	addrs     ProgramAddresses
	authority Identity
	payer     Identity
	artists   []Identity
}

func newCollectionFixture(t *testing.T, artists int) collectionFixture {
	t.Helper()
	addrs, err := DeriveProgramAddresses(testProgramID)
	require.NoError(t, err)

	f := collectionFixture{addrs: addrs, authority: newIdentity(), payer: newIdentity()}
	for i := 0; i < artists; i++ {
		f.artists = append(f.artists, newIdentity())
	}
	return f
}

func (f collectionFixture) init(t *testing.T, splits []uint64, mintArtist, mintLabel, secArtist, secLabel uint64) *Collection {
	t.Helper()
	ps := make([]PercentageSplit, len(splits))
	for i, bp := range splits {
		ps[i] = PercentageSplit{Beneficiary: f.artists[i], BasisPoints: bp}
	}
	c, out, err := InitializeCollection(f.addrs, 0, InitializeCollectionParams{
		Authority:         f.authority,
		ArtistMintBP:      mintArtist,
		LabelMintBP:       mintLabel,
		ArtistSecondaryBP: secArtist,
		LabelSecondaryBP:  secLabel,
		ArtistSplits:      ps,
		Signers:           []Identity{f.authority},
	})
	require.NoError(t, err)
	require.Equal(t, EventInitializeCollection, out.Kind)
	return c
}

func (f collectionFixture) addNft(t *testing.T, c *Collection, amount uint64) Identity {
	t.Helper()
	nft := newIdentity()
	_, err := c.AddNft(AddNftParams{
		Authority:  f.authority,
		Payer:      f.payer,
		Nft:        nft,
		AmountPaid: amount,
		Signers:    []Identity{f.authority, f.payer},
	})
	require.NoError(t, err)
	return nft
}

type collectionSnapshot struct {
	artists []ArtistBalance
	nfts    []NftBalance
	count   uint64
	vault   uint64
}

func snapshot(c *Collection) collectionSnapshot {
	return collectionSnapshot{
		artists: append([]ArtistBalance(nil), c.Artists.Balances...),
		nfts:    append([]NftBalance(nil), c.Nfts.Balances...),
		count:   c.Nfts.Count,
		vault:   c.Vault.Balance(),
	}
}

func TestInitializeCollection(t *testing.T) {
	f := newCollectionFixture(t, 2)
	c := f.init(t, []uint64{6000, 4000}, 7000, 3000, 5000, 5000)

	assert.True(t, c.Config.Authority.Equals(f.authority))
	assert.Equal(t, uint64(2), c.Artists.Count)
	assert.Zero(t, c.Nfts.Count)
	assert.Empty(t, c.Nfts.Balances)
	assert.True(t, c.Vault.Address().Equals(f.addrs.Vault))
}

func TestInitializeCollection_RejectsInvalidSplits(t *testing.T) {
	f := newCollectionFixture(t, 1)

	_, _, err := InitializeCollection(f.addrs, 0, InitializeCollectionParams{
		Authority:         f.authority,
		ArtistMintBP:      7000,
		LabelMintBP:       2999,
		ArtistSecondaryBP: 5000,
		LabelSecondaryBP:  5000,
		ArtistSplits:      []PercentageSplit{{Beneficiary: f.artists[0], BasisPoints: 10000}},
		Signers:           []Identity{f.authority},
	})
	assert.Equal(t, "ROY_001", apperror.CodeOf(err))
}

func TestInitializeCollection_RequiresAuthoritySignature(t *testing.T) {
	f := newCollectionFixture(t, 1)

	_, _, err := InitializeCollection(f.addrs, 0, InitializeCollectionParams{
		Authority:         f.authority,
		ArtistMintBP:      7000,
		LabelMintBP:       3000,
		ArtistSecondaryBP: 5000,
		LabelSecondaryBP:  5000,
		ArtistSplits:      []PercentageSplit{{Beneficiary: f.artists[0], BasisPoints: 10000}},
	})
	assert.Equal(t, "SEC_001", apperror.CodeOf(err))
}

func TestAddNft_FirstMintGoesToArtists(t *testing.T) {
	f := newCollectionFixture(t, 1)
	c := f.init(t, []uint64{10000}, 7000, 3000, 5000, 5000)
	nft := newIdentity()

	out, err := c.AddNft(AddNftParams{
		Authority:  f.authority,
		Payer:      f.payer,
		Nft:        nft,
		AmountPaid: 1000,
		Signers:    []Identity{f.authority, f.payer},
	})
	require.NoError(t, err)

	accrued, _ := c.Artists.Balance(f.artists[0])
	assert.Equal(t, uint64(1000), accrued)
	nftAccrued, ok := c.Nfts.Balance(nft)
	require.True(t, ok)
	assert.Zero(t, nftAccrued)
	assert.Equal(t, uint64(1), c.Nfts.Count)
	assert.Equal(t, uint64(1000), c.Vault.Balance())

	assert.Equal(t, EventAddNft, out.Kind)
	assert.Equal(t, uint64(1000), out.ArtistAmount)
	assert.Zero(t, out.LabelAmount)
	assert.Zero(t, out.Retained)
	require.NotNil(t, out.Transfer)
	assert.True(t, out.Transfer.From.Equals(f.payer))
	assert.True(t, out.Transfer.To.Equals(f.addrs.Vault))
	assert.Equal(t, AuthorityHolder, out.Transfer.Authority)
}

func TestAddNft_LaterMintSplitsByMintPercentages(t *testing.T) {
	f := newCollectionFixture(t, 1)
	c := f.init(t, []uint64{10000}, 7000, 3000, 5000, 5000)
	first := f.addNft(t, c, 1000)

	second := newIdentity()
	out, err := c.AddNft(AddNftParams{
		Authority:  f.authority,
		Payer:      f.payer,
		Nft:        second,
		AmountPaid: 1000,
		Signers:    []Identity{f.authority, f.payer},
	})
	require.NoError(t, err)

	accrued, _ := c.Artists.Balance(f.artists[0])
	assert.Equal(t, uint64(1700), accrued)
	firstAccrued, _ := c.Nfts.Balance(first)
	assert.Equal(t, uint64(300), firstAccrued)
	secondAccrued, _ := c.Nfts.Balance(second)
	assert.Zero(t, secondAccrued, "new NFT joins after the label split")
	assert.Equal(t, uint64(700), out.ArtistAmount)
	assert.Equal(t, uint64(300), out.LabelAmount)
	assert.Equal(t, uint64(2000), c.Vault.Balance())
}

func TestAddNft_Unauthorized(t *testing.T) {
	f := newCollectionFixture(t, 1)
	c := f.init(t, []uint64{10000}, 7000, 3000, 5000, 5000)
	f.addNft(t, c, 500)
	before := snapshot(c)

	intruder := newIdentity()
	tests := []struct {
		name   string
		params AddNftParams
	}{
		{"wrong authority", AddNftParams{Authority: intruder, Payer: intruder, Nft: newIdentity(), AmountPaid: 100, Signers: []Identity{intruder}}},
		{"authority did not sign", AddNftParams{Authority: f.authority, Payer: f.payer, Nft: newIdentity(), AmountPaid: 100, Signers: []Identity{f.payer}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.AddNft(tt.params)
			require.Error(t, err)
			assert.Equal(t, "ROY_010", apperror.CodeOf(err))
			assert.Equal(t, before, snapshot(c))
		})
	}
}

func TestAddNft_PayerMustSign(t *testing.T) {
	f := newCollectionFixture(t, 1)
	c := f.init(t, []uint64{10000}, 7000, 3000, 5000, 5000)

	_, err := c.AddNft(AddNftParams{Authority: f.authority, Payer: f.payer, Nft: newIdentity(), AmountPaid: 10, Signers: []Identity{f.authority}})
	assert.Equal(t, "SEC_001", apperror.CodeOf(err))
}

func TestAddNftParams_CheckSigners(t *testing.T) {
	authority, payer := newIdentity(), newIdentity()

	tests := []struct {
		name   string
		params AddNftParams
		code   string
	}{
		{"authority and payer signed", AddNftParams{Authority: authority, Payer: payer, AmountPaid: 5, Signers: []Identity{authority, payer}}, ""},
		{"free mint needs no payer", AddNftParams{Authority: authority, Payer: payer, Signers: []Identity{authority}}, ""},
		{"authority missing", AddNftParams{Authority: authority, Payer: payer, AmountPaid: 5, Signers: []Identity{payer}}, "ROY_010"},
		{"payer missing", AddNftParams{Authority: authority, Payer: payer, AmountPaid: 5, Signers: []Identity{authority}}, "SEC_001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, apperror.CodeOf(tt.params.CheckSigners()))
		})
	}
}

func TestDepositParams_Check(t *testing.T) {
	payer := newIdentity()

	assert.NoError(t, DepositParams{Payer: payer, Amount: 1, Signers: []Identity{payer}}.Check())
	assert.Equal(t, "PAY_002", apperror.CodeOf(DepositParams{Payer: payer, Signers: []Identity{payer}}.Check()))
	assert.Equal(t, "SEC_001", apperror.CodeOf(DepositParams{Payer: payer, Amount: 1, Signers: []Identity{newIdentity()}}.Check()))
}

func TestAddNft_Duplicate(t *testing.T) {
	f := newCollectionFixture(t, 1)
	c := f.init(t, []uint64{10000}, 7000, 3000, 5000, 5000)
	nft := f.addNft(t, c, 1000)
	before := snapshot(c)

	_, err := c.AddNft(AddNftParams{Authority: f.authority, Payer: f.payer, Nft: nft, AmountPaid: 1000, Signers: []Identity{f.authority, f.payer}})
	require.Error(t, err)
	assert.Equal(t, "ROY_014", apperror.CodeOf(err))
	assert.Equal(t, before, snapshot(c))
}

func TestPayLabel_EvenDistribution(t *testing.T) {
	f := newCollectionFixture(t, 1)
	c := f.init(t, []uint64{10000}, 7000, 3000, 5000, 5000)
	nfts := []Identity{f.addNft(t, c, 0), f.addNft(t, c, 0), f.addNft(t, c, 0)}

	out, err := c.PayLabel(DepositParams{Payer: f.payer, Amount: 100, Signers: []Identity{f.payer}})
	require.NoError(t, err)

	for _, nft := range nfts {
		accrued, _ := c.Nfts.Balance(nft)
		assert.Equal(t, uint64(33), accrued)
	}
	assert.Equal(t, uint64(100), c.Vault.Balance())
	assert.Equal(t, uint64(99), out.LabelAmount)
	assert.Equal(t, uint64(1), out.Retained)

	rec, err := c.Reconcile()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), rec.Unassigned)
}

func TestPayLabel_Failures(t *testing.T) {
	f := newCollectionFixture(t, 1)
	c := f.init(t, []uint64{10000}, 7000, 3000, 5000, 5000)

	_, err := c.PayLabel(DepositParams{Payer: f.payer, Amount: 100, Signers: []Identity{f.payer}})
	assert.Equal(t, "ROY_008", apperror.CodeOf(err), "no NFTs minted")

	f.addNft(t, c, 0)
	_, err = c.PayLabel(DepositParams{Payer: f.payer, Amount: 0, Signers: []Identity{f.payer}})
	assert.Equal(t, "PAY_002", apperror.CodeOf(err))

	_, err = c.PayLabel(DepositParams{Payer: f.payer, Amount: 10})
	assert.Equal(t, "SEC_001", apperror.CodeOf(err))
	assert.Zero(t, c.Vault.Balance())
}

func TestSecondaryOperations(t *testing.T) {
	for _, kind := range []EventKind{EventDistributeSecondaryPool, EventPayLicensingFee} {
		t.Run(string(kind), func(t *testing.T) {
			f := newCollectionFixture(t, 1)
			c := f.init(t, []uint64{10000}, 7000, 3000, 4000, 6000)
			a, b := f.addNft(t, c, 0), f.addNft(t, c, 0)

			p := DepositParams{Payer: f.payer, Amount: 101, Signers: []Identity{f.payer}}
			var out *Outcome
			var err error
			if kind == EventDistributeSecondaryPool {
				out, err = c.DistributeSecondaryPool(p)
			} else {
				out, err = c.PayLicensingFee(p)
			}
			require.NoError(t, err)

			assert.Equal(t, kind, out.Kind)
			artist, _ := c.Artists.Balance(f.artists[0])
			assert.Equal(t, uint64(40), artist)
			for _, nft := range []Identity{a, b} {
				accrued, _ := c.Nfts.Balance(nft)
				assert.Equal(t, uint64(30), accrued)
			}
			assert.Equal(t, uint64(40), out.ArtistAmount)
			assert.Equal(t, uint64(60), out.LabelAmount)
			assert.Equal(t, uint64(1), out.Retained)
			assert.Equal(t, uint64(101), c.Vault.Balance())
		})
	}
}

func TestSecondary_NoNftsFailsWithoutCreditingArtists(t *testing.T) {
	f := newCollectionFixture(t, 1)
	c := f.init(t, []uint64{10000}, 7000, 3000, 5000, 5000)
	before := snapshot(c)

	_, err := c.DistributeSecondaryPool(DepositParams{Payer: f.payer, Amount: 100, Signers: []Identity{f.payer}})
	assert.Equal(t, "ROY_008", apperror.CodeOf(err))
	assert.Equal(t, before, snapshot(c))
}

func TestMemberWithdraw_AtMostOnce(t *testing.T) {
	f := newCollectionFixture(t, 1)
	c := f.init(t, []uint64{10000}, 7000, 3000, 5000, 5000)
	nft := f.addNft(t, c, 1000)
	f.addNft(t, c, 1000)

	holder := newIdentity()
	params := MemberWithdrawParams{
		Caller:  holder,
		Nft:     nft,
		Holding: TokenHolding{Address: newIdentity(), Mint: nft, Owner: holder, Amount: 1},
		Ledger:  f.addrs.NftLedger,
		Signers: []Identity{holder},
	}

	first, err := c.MemberWithdraw(params)
	require.NoError(t, err)
	assert.Equal(t, uint64(300), first.Amount)
	assert.True(t, first.Transfer.From.Equals(f.addrs.Vault))
	assert.True(t, first.Transfer.To.Equals(holder))
	assert.Equal(t, AuthorityProgram, first.Transfer.Authority)

	second, err := c.MemberWithdraw(params)
	require.NoError(t, err)
	assert.Zero(t, second.Amount)
	assert.Zero(t, second.Transfer.Amount)
	assert.Equal(t, uint64(1700), c.Vault.Balance())
}

func TestMemberWithdraw_Rejections(t *testing.T) {
	f := newCollectionFixture(t, 1)
	c := f.init(t, []uint64{10000}, 7000, 3000, 5000, 5000)
	nft := f.addNft(t, c, 1000)
	f.addNft(t, c, 1000)
	holder := newIdentity()
	other := newIdentity()

	valid := func() MemberWithdrawParams {
		return MemberWithdrawParams{
			Caller:  holder,
			Nft:     nft,
			Holding: TokenHolding{Mint: nft, Owner: holder, Amount: 1},
			Ledger:  f.addrs.NftLedger,
			Signers: []Identity{holder},
		}
	}

	tests := []struct {
		name   string
		mutate func(p *MemberWithdrawParams)
		code   string
	}{
		{"caller did not sign", func(p *MemberWithdrawParams) { p.Signers = nil }, "SEC_001"},
		{"holding for another mint", func(p *MemberWithdrawParams) { p.Holding.Mint = other }, "ROY_005"},
		{"empty holding", func(p *MemberWithdrawParams) { p.Holding.Amount = 0 }, "ROY_006"},
		{"holding owned by someone else", func(p *MemberWithdrawParams) { p.Holding.Owner = other }, "ROY_007"},
		{"spoofed ledger", func(p *MemberWithdrawParams) { p.Ledger = other }, "ROY_002"},
		{"nft not in ledger", func(p *MemberWithdrawParams) { p.Nft = other; p.Holding.Mint = other }, "ROY_003"},
		{"spoofed ledger checked before holding", func(p *MemberWithdrawParams) {
			p.Ledger = other
			p.Holding.Owner = other
			p.Holding.Amount = 0
		}, "ROY_002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := snapshot(c)
			p := valid()
			tt.mutate(&p)

			_, err := c.MemberWithdraw(p)
			require.Error(t, err)
			assert.Equal(t, tt.code, apperror.CodeOf(err))
			assert.Equal(t, before, snapshot(c))
		})
	}
}

func TestArtistWithdraw(t *testing.T) {
	f := newCollectionFixture(t, 2)
	c := f.init(t, []uint64{5000, 5000}, 7000, 3000, 5000, 5000)
	f.addNft(t, c, 1000)

	out, err := c.ArtistWithdraw(ArtistWithdrawParams{
		Caller:  f.artists[0],
		Artist:  f.artists[0],
		Ledger:  f.addrs.ArtistLedger,
		Signers: []Identity{f.artists[0]},
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(500), out.Amount)

	again, err := c.ArtistWithdraw(ArtistWithdrawParams{
		Caller:  f.artists[0],
		Artist:  f.artists[0],
		Ledger:  f.addrs.ArtistLedger,
		Signers: []Identity{f.artists[0]},
	})
	require.NoError(t, err)
	assert.Zero(t, again.Amount)

	// The authority may trigger a payout, but funds still go to the artist.
	byAuthority, err := c.ArtistWithdraw(ArtistWithdrawParams{
		Caller:  f.authority,
		Artist:  f.artists[1],
		Ledger:  f.addrs.ArtistLedger,
		Signers: []Identity{f.authority},
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(500), byAuthority.Amount)
	assert.True(t, byAuthority.Transfer.To.Equals(f.artists[1]))
	assert.Zero(t, c.Vault.Balance())
}

func TestArtistWithdraw_Rejections(t *testing.T) {
	f := newCollectionFixture(t, 1)
	c := f.init(t, []uint64{10000}, 7000, 3000, 5000, 5000)
	f.addNft(t, c, 1000)
	stranger := newIdentity()
	artist := f.artists[0]

	tests := []struct {
		name   string
		params ArtistWithdrawParams
		code   string
	}{
		{"spoofed ledger", ArtistWithdrawParams{Caller: artist, Artist: artist, Ledger: f.addrs.NftLedger, Signers: []Identity{artist}}, "ROY_002"},
		{"caller did not sign", ArtistWithdrawParams{Caller: artist, Artist: artist, Ledger: f.addrs.ArtistLedger}, "SEC_001"},
		{"stranger drains artist", ArtistWithdrawParams{Caller: stranger, Artist: artist, Ledger: f.addrs.ArtistLedger, Signers: []Identity{stranger}}, "ROY_011"},
		{"unknown artist", ArtistWithdrawParams{Caller: stranger, Artist: stranger, Ledger: f.addrs.ArtistLedger, Signers: []Identity{stranger}}, "ROY_004"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := snapshot(c)
			_, err := c.ArtistWithdraw(tt.params)
			require.Error(t, err)
			assert.Equal(t, tt.code, apperror.CodeOf(err))
			assert.Equal(t, before, snapshot(c))
		})
	}
}

func TestReconcile_DetectsCorruption(t *testing.T) {
	f := newCollectionFixture(t, 1)
	c := f.init(t, []uint64{10000}, 7000, 3000, 5000, 5000)
	f.addNft(t, c, 1000)

	c.Artists.Balances[0].Accrued = 5000

	_, err := c.Reconcile()
	assert.Equal(t, "ROY_015", apperror.CodeOf(err))

	_, err = c.ArtistWithdraw(ArtistWithdrawParams{
		Caller:  f.artists[0],
		Artist:  f.artists[0],
		Ledger:  f.addrs.ArtistLedger,
		Signers: []Identity{f.artists[0]},
	})
	assert.Equal(t, "ROY_015", apperror.CodeOf(err), "vault must never pay more than it holds")
}

func TestConservationUnderRounding(t *testing.T) {
	f := newCollectionFixture(t, 3)
	c := f.init(t, []uint64{3333, 3333, 3334}, 6500, 3500, 4500, 5500)
	rng := rand.New(rand.NewSource(42))

	var nfts []Identity
	var retained, calls uint64
	signers := []Identity{f.authority, f.payer}

	for step := 0; step < 500; step++ {
		amount := uint64(rng.Intn(10_000) + 1)
		var out *Outcome
		var err error

		switch op := rng.Intn(6); {
		case op == 0 || len(nfts) == 0:
			nft := newIdentity()
			out, err = c.AddNft(AddNftParams{Authority: f.authority, Payer: f.payer, Nft: nft, AmountPaid: amount, Signers: signers})
			nfts = append(nfts, nft)
		case op == 1:
			out, err = c.PayLabel(DepositParams{Payer: f.payer, Amount: amount, Signers: signers})
		case op == 2:
			out, err = c.DistributeSecondaryPool(DepositParams{Payer: f.payer, Amount: amount, Signers: signers})
		case op == 3:
			out, err = c.PayLicensingFee(DepositParams{Payer: f.payer, Amount: amount, Signers: signers})
		case op == 4:
			nft := nfts[rng.Intn(len(nfts))]
			holder := newIdentity()
			out, err = c.MemberWithdraw(MemberWithdrawParams{
				Caller:  holder,
				Nft:     nft,
				Holding: TokenHolding{Mint: nft, Owner: holder, Amount: 1},
				Ledger:  f.addrs.NftLedger,
				Signers: []Identity{holder},
			})
		default:
			artist := f.artists[rng.Intn(len(f.artists))]
			out, err = c.ArtistWithdraw(ArtistWithdrawParams{Caller: artist, Artist: artist, Ledger: f.addrs.ArtistLedger, Signers: []Identity{artist}})
		}
		require.NoError(t, err, "step %d", step)

		if out.Kind.IsDeposit() {
			calls++
			retained += out.Retained
			assert.Equal(t, out.Amount, out.ArtistAmount+out.LabelAmount+out.Retained)
		}

		rec, err := c.Reconcile()
		require.NoError(t, err, "step %d", step)
		assert.Equal(t, retained, rec.Unassigned, "step %d", step)
	}

	maxRecipients := uint64(len(f.artists)+len(nfts)) + 2
	assert.LessOrEqual(t, retained, calls*maxRecipients)
	assert.True(t, c.Nfts.Consistent())
	assert.True(t, c.Artists.Consistent())
}
