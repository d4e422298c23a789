// package requests implements the song request lifecycle: submission with an
// atomic wallet debit, one-way accept/reject/played transitions, tip-ordered
// presentation of the pending queue, and per-DJ earnings.
package requests

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/desertthunder/encore/internal/models"
	"github.com/desertthunder/encore/internal/shared"
	"github.com/desertthunder/encore/internal/wallet"
)

// Book owns one user session's song requests and their status transitions.
//
// Requests enter in pending state via [Book.Submit] and leave the pending set
// through exactly one of Accept or Reject; accepted requests may later be
// marked played. Transitions never go back to pending. All operations are
// serialized by the Book's lock.
type Book struct {
	mu       sync.Mutex
	ledger   *wallet.Ledger
	refund   bool
	requests map[string]*models.SongRequest
	order    []string
	earnings map[string]models.Amount
	now      func() time.Time
}

// Option configures a Book.
type Option func(*Book)

// WithRefundOnReject controls whether rejecting a request credits the tip
// back to the requester's wallet. Defaults to true.
func WithRefundOnReject(refund bool) Option {
	return func(b *Book) { b.refund = refund }
}

// WithClock overrides the Book's time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(b *Book) { b.now = now }
}

// NewBook creates a request book debiting tips from the given ledger.
func NewBook(ledger *wallet.Ledger, opts ...Option) *Book {
	b := &Book{
		ledger:   ledger,
		refund:   true,
		requests: make(map[string]*models.SongRequest),
		earnings: make(map[string]models.Amount),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Submit creates a pending request for a song targeted at a DJ, debiting the
// tip from the wallet and appending a tip transaction as one unit: on any
// failure no request is created and the wallet is untouched. The tip
// transaction is returned alongside the request so callers can persist both.
//
// Fails with [shared.ErrInvalidTip] for a non-positive tip,
// [shared.ErrNoTargetDJ] when no DJ is selected, and
// [shared.ErrInsufficientFunds] when the wallet cannot cover the tip.
func (b *Book) Submit(song models.Song, tip models.Amount, message string, requester models.Requester, dj models.DJ) (models.SongRequest, models.Transaction, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if tip <= 0 {
		return models.SongRequest{}, models.Transaction{}, fmt.Errorf("%w: got %s", shared.ErrInvalidTip, tip)
	}
	if dj.ID == "" {
		return models.SongRequest{}, models.Transaction{}, shared.ErrNoTargetDJ
	}
	if requester.ID == "" {
		return models.SongRequest{}, models.Transaction{}, fmt.Errorf("%w: requester id is required", shared.ErrInvalidRequest)
	}

	tx, err := b.ledger.DebitTip(tip, dj.ID, dj.Name, song)
	if err != nil {
		return models.SongRequest{}, models.Transaction{}, err
	}

	req := &models.SongRequest{
		ID:        shared.GenerateID(),
		Song:      song,
		Requester: requester,
		DJID:      dj.ID,
		Message:   message,
		TipAmount: tip,
		Timestamp: b.now(),
		Status:    models.StatusPending,
	}

	b.requests[req.ID] = req
	b.order = append(b.order, req.ID)

	return *req, tx, nil
}

// Restore inserts already-persisted requests without touching the wallet:
// their tips were debited when they were first submitted. Earnings are
// rebuilt from restored accepted requests. Requests with ids already present
// in the book are skipped.
func (b *Book) Restore(reqs []models.SongRequest) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, req := range reqs {
		if req.ID == "" || !req.Status.Valid() {
			continue
		}
		if _, ok := b.requests[req.ID]; ok {
			continue
		}

		restored := req
		b.requests[req.ID] = &restored
		b.order = append(b.order, req.ID)

		if req.Status == models.StatusAccepted || req.Status == models.StatusPlayed {
			b.earnings[req.DJID] += req.TipAmount
		}
	}
}

// Accept transitions a pending request to accepted and credits the target
// DJ's earnings by the tip amount. Fails with [shared.ErrNotFound] when no
// pending request matches the id; a second Accept or Reject on the same id
// fails the same way.
func (b *Book) Accept(id string) (models.SongRequest, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	req, err := b.pending(id)
	if err != nil {
		return models.SongRequest{}, err
	}

	req.Status = models.StatusAccepted
	b.earnings[req.DJID] += req.TipAmount

	return *req, nil
}

// Reject transitions a pending request to rejected. When the book was built
// with refunds enabled (the default), the tip is credited back to the wallet
// and the refund transaction is returned; with refunds disabled the tip is
// forfeit and the returned transaction is nil.
func (b *Book) Reject(id string) (models.SongRequest, *models.Transaction, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	req, err := b.pending(id)
	if err != nil {
		return models.SongRequest{}, nil, err
	}

	req.Status = models.StatusRejected

	if !b.refund {
		return *req, nil, nil
	}

	refund, err := b.ledger.Refund(req.TipAmount, req.DJID, "", req.Song)
	if err != nil {
		// Refund amounts are always positive here, so this is unreachable
		// short of a programming error; surface it rather than swallow it.
		return models.SongRequest{}, nil, fmt.Errorf("refund failed: %w", err)
	}

	return *req, &refund, nil
}

// MarkPlayed transitions an accepted request to played. Fails with
// [shared.ErrNotFound] unless the request exists and is currently accepted.
func (b *Book) MarkPlayed(id string) (models.SongRequest, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	req, ok := b.requests[id]
	if !ok || req.Status != models.StatusAccepted {
		return models.SongRequest{}, fmt.Errorf("%w: no accepted request %s", shared.ErrNotFound, id)
	}

	req.Status = models.StatusPlayed
	return *req, nil
}

// Get returns the request with the given id regardless of status.
func (b *Book) Get(id string) (models.SongRequest, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	req, ok := b.requests[id]
	if !ok {
		return models.SongRequest{}, fmt.Errorf("%w: request %s", shared.ErrNotFound, id)
	}
	return *req, nil
}

// Pending returns the pending queue in presentation order: tip amount
// descending, ties broken by earlier submission first. The sort is stable, so
// equal tips keep their submission order.
func (b *Book) Pending() []models.SongRequest {
	b.mu.Lock()
	defer b.mu.Unlock()

	queue := b.byStatus(models.StatusPending)
	sort.SliceStable(queue, func(i, j int) bool {
		return queue[i].TipAmount > queue[j].TipAmount
	})
	return queue
}

// Accepted returns accepted requests in submission order.
func (b *Book) Accepted() []models.SongRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.byStatus(models.StatusAccepted)
}

// All returns every request in submission order.
func (b *Book) All() []models.SongRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.byStatus("")
}

// Earnings returns the accumulated earnings for a DJ across accepted requests.
func (b *Book) Earnings(djID string) models.Amount {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.earnings[djID]
}

// byStatus collects requests in submission order, filtered by status when
// status is non-empty. Caller must hold b.mu.
func (b *Book) byStatus(status models.RequestStatus) []models.SongRequest {
	out := []models.SongRequest{}
	for _, id := range b.order {
		req := b.requests[id]
		if status == "" || req.Status == status {
			out = append(out, *req)
		}
	}
	return out
}

// pending looks up a request that must currently be pending. Caller must
// hold b.mu.
func (b *Book) pending(id string) (*models.SongRequest, error) {
	req, ok := b.requests[id]
	if !ok || req.Status != models.StatusPending {
		return nil, fmt.Errorf("%w: no pending request %s", shared.ErrNotFound, id)
	}
	return req, nil
}
