// package session provides the per-user state container binding a wallet
// ledger and a request book, and a store creating sessions on first use.
package session

import (
	"sync"

	"github.com/desertthunder/encore/internal/models"
	"github.com/desertthunder/encore/internal/requests"
	"github.com/desertthunder/encore/internal/wallet"
)

// Session owns the mutable state for one user: their wallet and their song
// requests. Handlers never touch ambient globals; all mutation goes through
// the session's ledger and book, each of which serializes its own operations.
type Session struct {
	User   models.Requester
	Ledger *wallet.Ledger
	Book   *requests.Book
}

// Store hands out sessions keyed by user id, creating them on first use with
// the configured opening balance and refund policy.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	opening  models.Amount
	refund   bool
}

// NewStore creates a session store. New sessions start with the given opening
// balance; refundOnReject sets the book's rejection refund policy.
func NewStore(opening models.Amount, refundOnReject bool) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		opening:  opening,
		refund:   refundOnReject,
	}
}

// Get returns the session for the user, creating it on first use. The user's
// display fields are recorded on creation and left alone afterwards.
func (s *Store) Get(user models.Requester) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[user.ID]; ok {
		return sess
	}

	ledger := wallet.NewLedger(user.ID, s.opening)
	sess := &Session{
		User:   user,
		Ledger: ledger,
		Book:   requests.NewBook(ledger, requests.WithRefundOnReject(s.refund)),
	}
	s.sessions[user.ID] = sess
	return sess
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
