package wallet

import (
	"errors"
	"testing"

	"github.com/desertthunder/encore/internal/models"
	"github.com/desertthunder/encore/internal/shared"
)

var song = models.Song{
	ID:            "101",
	Title:         "Blinding Lights",
	Artist:        "The Weeknd",
	Album:         "After Hours",
	AlbumCoverURL: "https://example.com/cover.jpg",
}

func TestLedgerDeposit(t *testing.T) {
	t.Run("Credits Balance", func(t *testing.T) {
		ledger := NewLedger("user1", 0)

		tx, err := ledger.Deposit(5000)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if tx.Type != models.TxDeposit {
			t.Errorf("expected deposit transaction, got %s", tx.Type)
		}
		if tx.Amount != 5000 {
			t.Errorf("expected amount 5000, got %d", tx.Amount)
		}
		if ledger.Balance() != 5000 {
			t.Errorf("expected balance 5000, got %d", ledger.Balance())
		}
	})

	t.Run("Rejects Non Positive Amounts", func(t *testing.T) {
		ledger := NewLedger("user1", 1000)

		for _, amount := range []models.Amount{0, -500} {
			_, err := ledger.Deposit(amount)
			if !errors.Is(err, shared.ErrInvalidAmount) {
				t.Errorf("expected ErrInvalidAmount for %d, got %v", amount, err)
			}
		}

		if ledger.Balance() != 1000 {
			t.Errorf("balance must be untouched, got %d", ledger.Balance())
		}
		if len(ledger.Transactions()) != 0 {
			t.Error("transaction log must be untouched")
		}
	})
}

func TestLedgerWithdraw(t *testing.T) {
	t.Run("Debits Balance", func(t *testing.T) {
		ledger := NewLedger("user1", 5000)

		tx, err := ledger.Withdraw(2000)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if tx.Type != models.TxWithdrawal {
			t.Errorf("expected withdrawal transaction, got %s", tx.Type)
		}
		if ledger.Balance() != 3000 {
			t.Errorf("expected balance 3000, got %d", ledger.Balance())
		}
	})

	t.Run("Rejects Overdraft", func(t *testing.T) {
		ledger := NewLedger("user1", 1000)

		_, err := ledger.Withdraw(1500)
		if !errors.Is(err, shared.ErrInsufficientFunds) {
			t.Errorf("expected ErrInsufficientFunds, got %v", err)
		}
		if ledger.Balance() != 1000 {
			t.Errorf("balance must be untouched, got %d", ledger.Balance())
		}
	})

	t.Run("Rejects Non Positive Amounts", func(t *testing.T) {
		ledger := NewLedger("user1", 1000)
		if _, err := ledger.Withdraw(0); !errors.Is(err, shared.ErrInvalidAmount) {
			t.Errorf("expected ErrInvalidAmount, got %v", err)
		}
	})
}

func TestLedgerDebitTip(t *testing.T) {
	t.Run("Records Recipient And Song", func(t *testing.T) {
		ledger := NewLedger("user1", 3500)

		tx, err := ledger.DebitTip(1500, "dj-spinz", "DJ Spinz", song)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if tx.Type != models.TxTip {
			t.Errorf("expected tip transaction, got %s", tx.Type)
		}
		if tx.RecipientID != "dj-spinz" || tx.RecipientName != "DJ Spinz" {
			t.Errorf("unexpected recipient: %s / %s", tx.RecipientID, tx.RecipientName)
		}
		if tx.Song == nil || tx.Song.Title != "Blinding Lights" {
			t.Error("expected tipped song on transaction")
		}
		if ledger.Balance() != 2000 {
			t.Errorf("expected balance 2000, got %d", ledger.Balance())
		}
	})

	t.Run("Rejects Overdraft", func(t *testing.T) {
		ledger := NewLedger("user1", 1000)
		if _, err := ledger.DebitTip(1500, "dj-spinz", "DJ Spinz", song); !errors.Is(err, shared.ErrInsufficientFunds) {
			t.Errorf("expected ErrInsufficientFunds, got %v", err)
		}
	})
}

func TestLedgerRefund(t *testing.T) {
	ledger := NewLedger("user1", 3500)

	if _, err := ledger.DebitTip(1500, "dj-spinz", "DJ Spinz", song); err != nil {
		t.Fatalf("tip failed: %v", err)
	}

	tx, err := ledger.Refund(1500, "dj-spinz", "DJ Spinz", song)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if tx.Type != models.TxRefund {
		t.Errorf("expected refund transaction, got %s", tx.Type)
	}
	if ledger.Balance() != 3500 {
		t.Errorf("expected balance restored to 3500, got %d", ledger.Balance())
	}
}

// The balance invariant: opening + deposits - tips - withdrawals, exact for
// two-decimal currency values.
func TestLedgerBalanceInvariant(t *testing.T) {
	ledger := NewLedger("user1", 3500)

	deposits := []models.Amount{5000, 1250, 33}
	tips := []models.Amount{1500, 999}
	withdrawals := []models.Amount{250}

	for _, d := range deposits {
		if _, err := ledger.Deposit(d); err != nil {
			t.Fatalf("deposit failed: %v", err)
		}
	}
	for _, tip := range tips {
		if _, err := ledger.DebitTip(tip, "dj-spinz", "DJ Spinz", song); err != nil {
			t.Fatalf("tip failed: %v", err)
		}
	}
	for _, w := range withdrawals {
		if _, err := ledger.Withdraw(w); err != nil {
			t.Fatalf("withdrawal failed: %v", err)
		}
	}

	want := models.Amount(3500 + 5000 + 1250 + 33 - 1500 - 999 - 250)
	if got := ledger.Balance(); got != want {
		t.Errorf("expected balance %d, got %d", want, got)
	}

	if got := len(ledger.Transactions()); got != 6 {
		t.Errorf("expected 6 transactions, got %d", got)
	}
}

func TestLedgerTransactionsNewestFirst(t *testing.T) {
	ledger := NewLedger("user1", 0)

	ledger.Deposit(100)
	ledger.Deposit(200)
	ledger.Deposit(300)

	txs := ledger.Transactions()
	if len(txs) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(txs))
	}
	if txs[0].Amount != 300 || txs[2].Amount != 100 {
		t.Errorf("expected newest first ordering, got %d then %d", txs[0].Amount, txs[2].Amount)
	}

	// Returned slice is a copy; mutating it must not affect the ledger.
	txs[0].Amount = 1
	if ledger.Transactions()[0].Amount != 300 {
		t.Error("expected ledger log to be isolated from returned slice")
	}
}
