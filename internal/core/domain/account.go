package domain

import "time"

// Account is a native-balance account held by the host: a wallet, or one of a
// collection's derived addresses carrying encoded state in Data.
type Account struct {
	Address   Identity  `json:"address"`
	Owner     Identity  `json:"owner"`
	Lamports  uint64    `json:"lamports"`
	Data      []byte    `json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsProgramOwned reports whether the account belongs to programID.
func (a *Account) IsProgramOwned(programID Identity) bool {
	return a.Owner.Equals(programID)
}

// TokenHolding is an NFT holding record: which mint it holds, who owns it and how many units.
type TokenHolding struct {
	Address   Identity  `json:"address"`
	Mint      Identity  `json:"mint"`
	Owner     Identity  `json:"owner"`
	Amount    uint64    `json:"amount"`
	UpdatedAt time.Time `json:"updated_at"`
}
