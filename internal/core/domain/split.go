package domain

import (
	"math/bits"

	"nft-royalty-vault/pkg/apperror"
)

// OneHundredPercent in basis points.
const OneHundredPercent uint64 = 10000

// PercentageSplit is a basis-point share owed to one beneficiary.
type PercentageSplit struct {
	Beneficiary Identity `json:"beneficiary"`
	BasisPoints uint64   `json:"basis_points"`
}

// shareOf returns amount*bp/10000 truncated. The product is computed in 128 bits
// so large amounts cannot wrap; bp must not exceed OneHundredPercent.
func shareOf(amount, bp uint64) uint64 {
	hi, lo := bits.Mul64(amount, bp)
	q, _ := bits.Div64(hi, lo, OneHundredPercent)
	return q
}

func checkedAdd(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, apperror.ErrArithmeticOverflow()
	}
	return sum, nil
}

// sumBasisPoints totals a split group; ok is false when any share exceeds 100%.
func sumBasisPoints(splits []PercentageSplit) (total uint64, ok bool) {
	for _, s := range splits {
		if s.BasisPoints > OneHundredPercent {
			return 0, false
		}
		total += s.BasisPoints
	}
	return total, true
}
