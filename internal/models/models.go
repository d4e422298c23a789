// package models defines the data model for the encore song request service
package models

import (
	"fmt"
	"time"
)

// Amount is a monetary value in cents. Arithmetic on Amount is exact for
// two-decimal currency values.
type Amount int64

// Dollars returns the amount as a floating point dollar value for display.
func (a Amount) Dollars() float64 {
	return float64(a) / 100
}

// String formats the amount as a dollar string, e.g. "$15.00".
func (a Amount) String() string {
	sign := ""
	v := a
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s$%d.%02d", sign, v/100, v%100)
}

// RequestStatus is the lifecycle state of a [SongRequest].
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusAccepted RequestStatus = "accepted"
	StatusRejected RequestStatus = "rejected"
	StatusPlayed   RequestStatus = "played"
)

// Valid reports whether the status is one of the four lifecycle states.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusPlayed:
		return true
	}
	return false
}

// TransactionType categorizes wallet ledger entries.
type TransactionType string

const (
	TxDeposit    TransactionType = "deposit"
	TxTip        TransactionType = "tip"
	TxWithdrawal TransactionType = "withdrawal"
	TxRefund     TransactionType = "refund"
)

// Song represents a track from the catalog (Spotify or the built-in mock set).
// Immutable once constructed.
type Song struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Artist        string `json:"artist"`
	Album         string `json:"album,omitempty"`
	AlbumCoverURL string `json:"album_cover_url"`
}

// Validate checks the shape contract shared by catalog and mock songs:
// id, title, artist, and album cover URL must all be non-empty.
func (s Song) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("song id is empty")
	}
	if s.Title == "" {
		return fmt.Errorf("song title is empty")
	}
	if s.Artist == "" {
		return fmt.Errorf("song artist is empty")
	}
	if s.AlbumCoverURL == "" {
		return fmt.Errorf("song album cover URL is empty")
	}
	return nil
}

// Requester identifies the customer who submitted a request.
type Requester struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// SongRequest is a customer's request for a song, carrying a tip.
//
// Created in [StatusPending]; mutated only by the lifecycle manager's
// accept/reject/played transitions, which are one-way.
type SongRequest struct {
	ID        string        `json:"id"`
	Song      Song          `json:"song"`
	Requester Requester     `json:"requester"`
	DJID      string        `json:"dj_id"`
	Message   string        `json:"message,omitempty"`
	TipAmount Amount        `json:"tip_amount"`
	Timestamp time.Time     `json:"timestamp"`
	Status    RequestStatus `json:"status"`
}

// Validate checks invariants that hold for every stored request.
func (r SongRequest) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("request id is empty")
	}
	if r.TipAmount <= 0 {
		return fmt.Errorf("tip amount must be positive, got %s", r.TipAmount)
	}
	if r.DJID == "" {
		return fmt.Errorf("request has no target DJ")
	}
	if !r.Status.Valid() {
		return fmt.Errorf("invalid request status %q", r.Status)
	}
	if r.Requester.ID == "" {
		return fmt.Errorf("request has no requester")
	}
	return nil
}

// Transaction is an append-only wallet ledger entry. Never mutated or deleted.
//
// RecipientID is the stable DJ foreign key; RecipientName is a derived display
// field and carries no identity.
type Transaction struct {
	ID            string          `json:"id"`
	Type          TransactionType `json:"type"`
	Amount        Amount          `json:"amount"`
	Timestamp     time.Time       `json:"timestamp"`
	RecipientID   string          `json:"recipient_id,omitempty"`
	RecipientName string          `json:"recipient_name,omitempty"`
	Song          *Song           `json:"song,omitempty"`
}

// Validate checks ledger entry invariants.
func (t Transaction) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("transaction id is empty")
	}
	if t.Amount <= 0 {
		return fmt.Errorf("transaction amount must be positive, got %s", t.Amount)
	}
	switch t.Type {
	case TxDeposit, TxTip, TxWithdrawal, TxRefund:
	default:
		return fmt.Errorf("invalid transaction type %q", t.Type)
	}
	return nil
}

// DJ represents a disc jockey profile. Read-mostly; IsLive and Rating are
// presentation fields with no update path in this service.
type DJ struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Club      string    `json:"club"`
	Location  string    `json:"location"`
	Genres    []string  `json:"genres"`
	Rating    float64   `json:"rating"`
	IsLive    bool      `json:"is_live"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Validate checks DJ profile invariants.
func (d DJ) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("dj id is empty")
	}
	if d.Name == "" {
		return fmt.Errorf("dj name is empty")
	}
	if d.Rating < 0 || d.Rating > 5 {
		return fmt.Errorf("dj rating must be in [0,5], got %v", d.Rating)
	}
	return nil
}
