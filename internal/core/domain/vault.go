package domain

import "nft-royalty-vault/pkg/apperror"

// Vault is the pooled custodial balance at the collection's vault address.
// Its balance is only changed by Collection operations.
type Vault struct {
	address Identity
	balance uint64
}

// RestoreVault rebuilds a vault from its stored account balance.
func RestoreVault(address Identity, balance uint64) *Vault {
	return &Vault{address: address, balance: balance}
}

// Address returns the vault's derived address.
func (v *Vault) Address() Identity { return v.address }

// Balance returns the custodial balance.
func (v *Vault) Balance() uint64 { return v.balance }

func (v *Vault) deposit(amount uint64) error {
	sum, err := checkedAdd(v.balance, amount)
	if err != nil {
		return err
	}
	v.balance = sum
	return nil
}

// withdraw fails with ConservationViolation: a ledger row never owes more than
// the vault holds unless state was corrupted.
func (v *Vault) withdraw(amount uint64) error {
	if amount > v.balance {
		return apperror.ErrConservationViolation()
	}
	v.balance -= amount
	return nil
}

func (v *Vault) clone() *Vault {
	cp := *v
	return &cp
}
