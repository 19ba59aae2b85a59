package domain

import "nft-royalty-vault/pkg/apperror"

// ArtistBalance is an artist's accrued, unwithdrawn royalties.
type ArtistBalance struct {
	Artist  Identity `json:"artist"`
	Accrued uint64   `json:"accrued"`
}

// ArtistLedger holds one row per configured artist, seeded at initialization.
type ArtistLedger struct {
	Balances []ArtistBalance `json:"balances"`
	Count    uint64          `json:"count"`
}

// NewArtistLedger seeds a zero row for every split beneficiary.
func NewArtistLedger(splits []PercentageSplit) *ArtistLedger {
	l := &ArtistLedger{Balances: make([]ArtistBalance, 0, len(splits))}
	for _, s := range splits {
		l.Balances = append(l.Balances, ArtistBalance{Artist: s.Beneficiary})
		l.Count++
	}
	return l
}

// ArtistDistribution reports what DistributeArtist credited.
type ArtistDistribution struct {
	Credited uint64
	// Skipped lists split beneficiaries with no ledger row. Non-empty means the
	// ledger and the config disagree.
	Skipped []Identity
}

// DistributeArtist credits amount*bp/10000 to each split's artist row. Splits
// naming an artist absent from the ledger are skipped and reported. Either every
// credit applies or none does.
func (l *ArtistLedger) DistributeArtist(amount uint64, splits []PercentageSplit) (ArtistDistribution, error) {
	if l.Count == 0 || len(l.Balances) == 0 {
		return ArtistDistribution{}, apperror.ErrArtistLedgerNotInitialized()
	}

	next := make([]uint64, len(l.Balances))
	for i, b := range l.Balances {
		next[i] = b.Accrued
	}

	var res ArtistDistribution
	for _, s := range splits {
		idx := l.indexOf(s.Beneficiary)
		if idx < 0 {
			res.Skipped = append(res.Skipped, s.Beneficiary)
			continue
		}
		share := shareOf(amount, s.BasisPoints)
		sum, err := checkedAdd(next[idx], share)
		if err != nil {
			return ArtistDistribution{}, err
		}
		next[idx] = sum
		res.Credited += share
	}

	for i := range l.Balances {
		l.Balances[i].Accrued = next[i]
	}
	return res, nil
}

// EmptyAndReturn zeroes the artist's row and returns what it held.
func (l *ArtistLedger) EmptyAndReturn(artist Identity) (uint64, error) {
	idx := l.indexOf(artist)
	if idx < 0 {
		return 0, apperror.ErrInvalidArtist()
	}
	owed := l.Balances[idx].Accrued
	l.Balances[idx].Accrued = 0
	return owed, nil
}

// Balance returns the artist's accrued royalties.
func (l *ArtistLedger) Balance(artist Identity) (uint64, bool) {
	idx := l.indexOf(artist)
	if idx < 0 {
		return 0, false
	}
	return l.Balances[idx].Accrued, true
}

// Total sums every row.
func (l *ArtistLedger) Total() (uint64, error) {
	var total uint64
	for _, b := range l.Balances {
		var err error
		if total, err = checkedAdd(total, b.Accrued); err != nil {
			return 0, err
		}
	}
	return total, nil
}

// Consistent reports whether count matches the rows.
func (l *ArtistLedger) Consistent() bool {
	return l.Count == uint64(len(l.Balances))
}

func (l *ArtistLedger) indexOf(artist Identity) int {
	for i, b := range l.Balances {
		if b.Artist.Equals(artist) {
			return i
		}
	}
	return -1
}

func (l *ArtistLedger) clone() *ArtistLedger {
	return &ArtistLedger{Balances: append([]ArtistBalance(nil), l.Balances...), Count: l.Count}
}

// NftBalance is the label royalties accrued to one minted NFT.
type NftBalance struct {
	Nft     Identity `json:"nft"`
	Accrued uint64   `json:"accrued"`
}

// NftLedger grows by one row per registered NFT. Count == 0 means nothing minted yet.
type NftLedger struct {
	Balances []NftBalance `json:"balances"`
	Count    uint64       `json:"count"`
}

// NewNftLedger returns an empty ledger.
func NewNftLedger() *NftLedger {
	return &NftLedger{Balances: []NftBalance{}}
}

// DistributeEven credits amount/count to every row and returns the total credited.
// The remainder stays unassigned in the vault.
func (l *NftLedger) DistributeEven(amount uint64) (uint64, error) {
	if l.Count == 0 || len(l.Balances) == 0 {
		return 0, apperror.ErrInvalidRoyaltiesDistribution()
	}

	perNft := amount / l.Count
	next := make([]uint64, len(l.Balances))
	for i, b := range l.Balances {
		sum, err := checkedAdd(b.Accrued, perNft)
		if err != nil {
			return 0, err
		}
		next[i] = sum
	}
	for i := range l.Balances {
		l.Balances[i].Accrued = next[i]
	}
	return perNft * uint64(len(l.Balances)), nil
}

// Add appends a zero row for nft.
func (l *NftLedger) Add(nft Identity) error {
	if l.indexOf(nft) >= 0 {
		return apperror.ErrDuplicateNft()
	}
	l.Balances = append(l.Balances, NftBalance{Nft: nft})
	l.Count++
	return nil
}

// EmptyAndReturn zeroes the NFT's row and returns what it held.
func (l *NftLedger) EmptyAndReturn(nft Identity) (uint64, error) {
	idx := l.indexOf(nft)
	if idx < 0 {
		return 0, apperror.ErrInvalidNft()
	}
	owed := l.Balances[idx].Accrued
	l.Balances[idx].Accrued = 0
	return owed, nil
}

// Balance returns the NFT's accrued royalties.
func (l *NftLedger) Balance(nft Identity) (uint64, bool) {
	idx := l.indexOf(nft)
	if idx < 0 {
		return 0, false
	}
	return l.Balances[idx].Accrued, true
}

// Total sums every row.
func (l *NftLedger) Total() (uint64, error) {
	var total uint64
	for _, b := range l.Balances {
		var err error
		if total, err = checkedAdd(total, b.Accrued); err != nil {
			return 0, err
		}
	}
	return total, nil
}

// Consistent reports whether count matches the rows.
func (l *NftLedger) Consistent() bool {
	return l.Count == uint64(len(l.Balances))
}

func (l *NftLedger) indexOf(nft Identity) int {
	for i, b := range l.Balances {
		if b.Nft.Equals(nft) {
			return i
		}
	}
	return -1
}

func (l *NftLedger) clone() *NftLedger {
	return &NftLedger{Balances: append([]NftBalance{}, l.Balances...), Count: l.Count}
}
