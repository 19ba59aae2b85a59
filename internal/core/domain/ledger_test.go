package domain

import (
	"math"
	"testing"

	"nft-royalty-vault/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArtistLedger_SeedsZeroRows(t *testing.T) {
	a, b := newIdentity(), newIdentity()
	l := NewArtistLedger([]PercentageSplit{{Beneficiary: a, BasisPoints: 5000}, {Beneficiary: b, BasisPoints: 5000}})

	assert.Equal(t, uint64(2), l.Count)
	assert.True(t, l.Consistent())
	for _, row := range l.Balances {
		assert.Zero(t, row.Accrued)
	}
}

func TestArtistLedger_DistributeArtist(t *testing.T) {
	a, b := newIdentity(), newIdentity()
	splits := []PercentageSplit{{Beneficiary: a, BasisPoints: 6667}, {Beneficiary: b, BasisPoints: 3333}}
	l := NewArtistLedger(splits)

	res, err := l.DistributeArtist(10, splits)
	require.NoError(t, err)

	got, _ := l.Balance(a)
	assert.Equal(t, uint64(6), got)
	got, _ = l.Balance(b)
	assert.Equal(t, uint64(3), got)
	assert.Equal(t, uint64(9), res.Credited)
	assert.Empty(t, res.Skipped)
}

func TestArtistLedger_DistributeArtist_SkipsUnknownArtist(t *testing.T) {
	a, stranger := newIdentity(), newIdentity()
	l := NewArtistLedger([]PercentageSplit{{Beneficiary: a, BasisPoints: 10000}})

	res, err := l.DistributeArtist(100, []PercentageSplit{
		{Beneficiary: a, BasisPoints: 5000},
		{Beneficiary: stranger, BasisPoints: 5000},
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(50), res.Credited)
	require.Len(t, res.Skipped, 1)
	assert.True(t, res.Skipped[0].Equals(stranger))
}

func TestArtistLedger_DistributeArtist_EmptyLedger(t *testing.T) {
	l := &ArtistLedger{}

	_, err := l.DistributeArtist(100, []PercentageSplit{{Beneficiary: newIdentity(), BasisPoints: 10000}})
	require.Error(t, err)
	assert.Equal(t, "ROY_009", apperror.CodeOf(err))
}

func TestArtistLedger_DistributeArtist_OverflowLeavesRowsUntouched(t *testing.T) {
	a, b := newIdentity(), newIdentity()
	splits := []PercentageSplit{{Beneficiary: a, BasisPoints: 5000}, {Beneficiary: b, BasisPoints: 5000}}
	l := NewArtistLedger(splits)
	l.Balances[1].Accrued = math.MaxUint64

	_, err := l.DistributeArtist(100, splits)
	require.Error(t, err)
	assert.Equal(t, "ROY_016", apperror.CodeOf(err))

	got, _ := l.Balance(a)
	assert.Zero(t, got, "first row must not be credited when a later row overflows")
}

func TestArtistLedger_EmptyAndReturn(t *testing.T) {
	a := newIdentity()
	l := NewArtistLedger([]PercentageSplit{{Beneficiary: a, BasisPoints: 10000}})
	l.Balances[0].Accrued = 42

	owed, err := l.EmptyAndReturn(a)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), owed)

	owed, err = l.EmptyAndReturn(a)
	require.NoError(t, err)
	assert.Zero(t, owed)

	_, err = l.EmptyAndReturn(newIdentity())
	assert.Equal(t, "ROY_004", apperror.CodeOf(err))
}

func TestNftLedger_DistributeEven(t *testing.T) {
	l := NewNftLedger()
	for i := 0; i < 3; i++ {
		require.NoError(t, l.Add(newIdentity()))
	}

	credited, err := l.DistributeEven(100)
	require.NoError(t, err)

	assert.Equal(t, uint64(99), credited)
	for _, row := range l.Balances {
		assert.Equal(t, uint64(33), row.Accrued)
	}
	total, err := l.Total()
	require.NoError(t, err)
	assert.Equal(t, uint64(99), total)
}

func TestNftLedger_DistributeEven_EmptyLedger(t *testing.T) {
	l := NewNftLedger()

	_, err := l.DistributeEven(100)
	require.Error(t, err)
	assert.Equal(t, "ROY_008", apperror.CodeOf(err))
}

func TestNftLedger_DistributeEven_AmountBelowCount(t *testing.T) {
	l := NewNftLedger()
	for i := 0; i < 5; i++ {
		require.NoError(t, l.Add(newIdentity()))
	}

	credited, err := l.DistributeEven(4)
	require.NoError(t, err)
	assert.Zero(t, credited)
}

func TestNftLedger_Add(t *testing.T) {
	l := NewNftLedger()
	nft := newIdentity()

	require.NoError(t, l.Add(nft))
	assert.Equal(t, uint64(1), l.Count)
	assert.True(t, l.Consistent())

	err := l.Add(nft)
	require.Error(t, err)
	assert.Equal(t, "ROY_014", apperror.CodeOf(err))
	assert.Equal(t, uint64(1), l.Count)
}

func TestNftLedger_EmptyAndReturn(t *testing.T) {
	l := NewNftLedger()
	nft := newIdentity()
	require.NoError(t, l.Add(nft))
	l.Balances[0].Accrued = 7

	owed, err := l.EmptyAndReturn(nft)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), owed)

	owed, err = l.EmptyAndReturn(nft)
	require.NoError(t, err)
	assert.Zero(t, owed)

	_, err = l.EmptyAndReturn(newIdentity())
	assert.Equal(t, "ROY_003", apperror.CodeOf(err))
}
