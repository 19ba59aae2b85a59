package domain

import "nft-royalty-vault/pkg/apperror"

// CollectionConfig is the immutable split configuration of a collection.
type CollectionConfig struct {
	Authority         Identity          `json:"authority"`
	ArtistMintBP      uint64            `json:"artist_mint_bp"`
	LabelMintBP       uint64            `json:"label_mint_bp"`
	ArtistSecondaryBP uint64            `json:"artist_secondary_bp"`
	LabelSecondaryBP  uint64            `json:"label_secondary_bp"`
	ArtistSplits      []PercentageSplit `json:"artist_splits"`
}

// NewCollectionConfig validates and builds a config. The splits slice is copied.
func NewCollectionConfig(
	authority Identity,
	artistMintBP, labelMintBP, artistSecondaryBP, labelSecondaryBP uint64,
	artistSplits []PercentageSplit,
) (*CollectionConfig, error) {
	cfg := &CollectionConfig{
		Authority:         authority,
		ArtistMintBP:      artistMintBP,
		LabelMintBP:       labelMintBP,
		ArtistSecondaryBP: artistSecondaryBP,
		LabelSecondaryBP:  labelSecondaryBP,
		ArtistSplits:      append([]PercentageSplit(nil), artistSplits...),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the mint pair, the secondary pair and the artist splits
// each sum to exactly 10000 and that no artist appears twice.
func (c *CollectionConfig) Validate() error {
	pairs := [][2]uint64{
		{c.ArtistMintBP, c.LabelMintBP},
		{c.ArtistSecondaryBP, c.LabelSecondaryBP},
	}
	for _, p := range pairs {
		if p[0] > OneHundredPercent || p[1] > OneHundredPercent || p[0]+p[1] != OneHundredPercent {
			return apperror.ErrInvalidCollectionConfig()
		}
	}

	if len(c.ArtistSplits) == 0 {
		return apperror.ErrInvalidCollectionConfig()
	}
	total, ok := sumBasisPoints(c.ArtistSplits)
	if !ok || total != OneHundredPercent {
		return apperror.ErrInvalidCollectionConfig()
	}
	seen := make(map[Identity]struct{}, len(c.ArtistSplits))
	for _, s := range c.ArtistSplits {
		if _, dup := seen[s.Beneficiary]; dup {
			return apperror.ErrInvalidCollectionConfig()
		}
		seen[s.Beneficiary] = struct{}{}
	}
	return nil
}

// IsArtist reports whether id has a configured split.
func (c *CollectionConfig) IsArtist(id Identity) bool {
	for _, s := range c.ArtistSplits {
		if s.Beneficiary.Equals(id) {
			return true
		}
	}
	return false
}

func (c *CollectionConfig) clone() *CollectionConfig {
	cp := *c
	cp.ArtistSplits = append([]PercentageSplit(nil), c.ArtistSplits...)
	return &cp
}
