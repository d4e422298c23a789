// package wallet implements the per-user wallet ledger: a mutable balance plus
// an append-only transaction history kept consistent under a single lock.
package wallet

import (
	"fmt"
	"sync"
	"time"

	"github.com/desertthunder/encore/internal/models"
	"github.com/desertthunder/encore/internal/shared"
)

// Ledger tracks one user's balance and transaction log.
//
// Invariant: Balance() always equals the opening balance plus the sum of
// deposit amounts minus the sum of tip and withdrawal amounts. Refunds count
// as credits. Every mutation appends exactly one transaction; balance and log
// are updated under the same lock, so no reader observes a half-applied state.
type Ledger struct {
	mu           sync.Mutex
	userID       string
	balance      models.Amount
	transactions []models.Transaction
	now          func() time.Time
}

// NewLedger creates a ledger for the given user with an opening balance.
func NewLedger(userID string, opening models.Amount) *Ledger {
	return &Ledger{
		userID:  userID,
		balance: opening,
		now:     time.Now,
	}
}

// SetClock overrides the ledger's time source. Intended for tests.
func (l *Ledger) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

// UserID returns the owning user's id.
func (l *Ledger) UserID() string {
	return l.userID
}

// Balance returns the current balance.
func (l *Ledger) Balance() models.Amount {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// Transactions returns a copy of the transaction log, newest first.
func (l *Ledger) Transactions() []models.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Transaction, len(l.transactions))
	for i, tx := range l.transactions {
		out[len(out)-1-i] = tx
	}
	return out
}

// Deposit credits the balance and appends a deposit transaction.
// Fails with [shared.ErrInvalidAmount] for non-positive amounts, leaving
// balance and log untouched.
func (l *Ledger) Deposit(amount models.Amount) (models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if amount <= 0 {
		return models.Transaction{}, fmt.Errorf("%w: deposit of %s", shared.ErrInvalidAmount, amount)
	}

	tx := l.append(models.TxDeposit, amount, "", "", nil)
	l.balance += amount
	return tx, nil
}

// Withdraw debits the balance and appends a withdrawal transaction.
// Fails with [shared.ErrInvalidAmount] for non-positive amounts and
// [shared.ErrInsufficientFunds] when the balance cannot cover the amount.
func (l *Ledger) Withdraw(amount models.Amount) (models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if amount <= 0 {
		return models.Transaction{}, fmt.Errorf("%w: withdrawal of %s", shared.ErrInvalidAmount, amount)
	}
	if amount > l.balance {
		return models.Transaction{}, fmt.Errorf("%w: withdrawal of %s exceeds balance %s", shared.ErrInsufficientFunds, amount, l.balance)
	}

	tx := l.append(models.TxWithdrawal, amount, "", "", nil)
	l.balance -= amount
	return tx, nil
}

// DebitTip debits a tip destined for a DJ, recording the recipient by stable
// id with the display name as a derived field, and the tipped song.
func (l *Ledger) DebitTip(amount models.Amount, recipientID, recipientName string, song models.Song) (models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if amount <= 0 {
		return models.Transaction{}, fmt.Errorf("%w: tip of %s", shared.ErrInvalidAmount, amount)
	}
	if amount > l.balance {
		return models.Transaction{}, fmt.Errorf("%w: tip of %s exceeds balance %s", shared.ErrInsufficientFunds, amount, l.balance)
	}

	tx := l.append(models.TxTip, amount, recipientID, recipientName, &song)
	l.balance -= amount
	return tx, nil
}

// Refund credits a previously debited tip back to the wallet, e.g. when the
// target DJ rejects the request.
func (l *Ledger) Refund(amount models.Amount, recipientID, recipientName string, song models.Song) (models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if amount <= 0 {
		return models.Transaction{}, fmt.Errorf("%w: refund of %s", shared.ErrInvalidAmount, amount)
	}

	tx := l.append(models.TxRefund, amount, recipientID, recipientName, &song)
	l.balance += amount
	return tx, nil
}

// append records a transaction. Caller must hold l.mu.
func (l *Ledger) append(kind models.TransactionType, amount models.Amount, recipientID, recipientName string, song *models.Song) models.Transaction {
	tx := models.Transaction{
		ID:            shared.GenerateID(),
		Type:          kind,
		Amount:        amount,
		Timestamp:     l.now(),
		RecipientID:   recipientID,
		RecipientName: recipientName,
	}
	if song != nil {
		s := *song
		tx.Song = &s
	}
	l.transactions = append(l.transactions, tx)
	return tx
}
