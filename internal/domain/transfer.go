package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Transfer moves amount, in the source currency, from one account to
// another. Both accounts are locked in ID order for the whole operation;
// if either leg fails both balances are restored and the error returned.
func Transfer(from, to *Account, amount decimal.Decimal) (*Transaction, error) {
	if from == nil || to == nil {
		return nil, ErrAccountNotFound
	}
	if from == to || from.id == to.id {
		return nil, ErrSameAccount
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	unlock := lockAccounts(from, to)
	defer unlock()

	var tx *Transaction
	err := atomically(func() error {
		if err := from.withdraw(amount, from.currency); err != nil {
			return err
		}
		if err := to.deposit(amount, from.currency); err != nil {
			return err
		}

		var err error
		tx, err = NewTransaction(from, to, amount, from.currency,
			fmt.Sprintf("Transfer from %s to %s", from.id, to.id))
		return err
	}, from, to)
	if err != nil {
		return nil, err
	}

	from.appendHistory(tx)
	to.appendHistory(tx)

	return tx, nil
}

// lockAccounts acquires the account locks in ascending ID order
// (DEADLOCK PREVENTION) and returns the matching unlock.
func lockAccounts(a, b *Account) func() {
	first, second := a, b
	if second.id < first.id {
		first, second = second, first
	}
	first.mu.Lock()
	second.mu.Lock()

	return func() {
		second.mu.Unlock()
		first.mu.Unlock()
	}
}

type balanceSnapshot struct {
	account *Account
	balance decimal.Decimal
}

// atomically runs fn and restores the balances of accounts unless fn
// returns nil. Callers must hold the locks of every account passed.
func atomically(fn func() error, accounts ...*Account) error {
	snapshots := make([]balanceSnapshot, len(accounts))
	for i, a := range accounts {
		snapshots[i] = balanceSnapshot{account: a, balance: a.balance}
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		for _, s := range snapshots {
			s.account.balance = s.balance
		}
	}()

	if err := fn(); err != nil {
		return err
	}
	committed = true

	return nil
}
