package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/encore/internal/models"
	"github.com/desertthunder/encore/internal/shared"
)

// TransactionRepository persists [models.Transaction] ledger entries.
// The table is append-only; there is deliberately no update or delete path.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new [TransactionRepository] with the given database connection
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create appends a ledger entry for the given user.
func (r *TransactionRepository) Create(userID string, tx *models.Transaction) error {
	if userID == "" {
		return fmt.Errorf("%w: missing user id", shared.ErrInvalidArgument)
	}

	sequence, err := NextSequence(r.db, "transactions")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	if tx.ID == "" {
		tx.ID = shared.GenerateID()
	}
	if tx.Timestamp.IsZero() {
		tx.Timestamp = time.Now()
	}

	if err := tx.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	var song models.Song
	if tx.Song != nil {
		song = *tx.Song
	}

	query := `
		INSERT INTO transactions (
			id, sequence, user_id, type, amount, recipient_id, recipient_name,
			song_id, song_title, song_artist, song_album, song_cover_url, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		tx.ID, sequence, userID, string(tx.Type), int64(tx.Amount),
		tx.RecipientID, tx.RecipientName,
		song.ID, song.Title, song.Artist, song.Album, song.AlbumCoverURL,
		tx.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// Get retrieves a ledger entry by ID.
func (r *TransactionRepository) Get(id string) (*models.Transaction, error) {
	query := selectTransactions + " WHERE id = ?"

	tx, err := scanTransaction(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: transaction %s", shared.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}

	return tx, nil
}

// ListByUser retrieves a user's ledger entries newest first.
func (r *TransactionRepository) ListByUser(userID string) ([]*models.Transaction, error) {
	query := selectTransactions + " WHERE user_id = ? ORDER BY sequence DESC"

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return transactions, nil
}

const selectTransactions = `
	SELECT id, type, amount, recipient_id, recipient_name,
	       song_id, song_title, song_artist, song_album, song_cover_url, created_at
	FROM transactions
`

func scanTransaction(row scanner) (*models.Transaction, error) {
	var (
		tx     models.Transaction
		txType string
		amount int64
		song   models.Song
	)

	err := row.Scan(&tx.ID, &txType, &amount, &tx.RecipientID, &tx.RecipientName,
		&song.ID, &song.Title, &song.Artist, &song.Album, &song.AlbumCoverURL, &tx.Timestamp)
	if err != nil {
		return nil, err
	}

	tx.Type = models.TransactionType(txType)
	tx.Amount = models.Amount(amount)
	if song.ID != "" {
		tx.Song = &song
	}

	return &tx, nil
}
