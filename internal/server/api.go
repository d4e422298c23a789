package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/encore/internal/models"
	"github.com/desertthunder/encore/internal/repositories"
	"github.com/desertthunder/encore/internal/services"
	"github.com/desertthunder/encore/internal/session"
	"github.com/desertthunder/encore/internal/shared"
)

// APIHandler serves the wallet, request, DJ, and catalog endpoints.
//
// State lives in per-user sessions resolved from the X-User-ID header, falling
// back to the configured default user. Requests and ledger entries are written
// through to the repositories when they are wired; the in-memory session
// remains the source of truth for balances and queue ordering.
type APIHandler struct {
	store    *session.Store
	user     models.Requester
	catalog  services.Catalog
	fallback services.Catalog
	djs      *repositories.DJRepository
	requests *repositories.RequestRepository
	ledger   *repositories.TransactionRepository
	logger   *log.Logger
}

// APIHandlerOpts configures an [APIHandler].
type APIHandlerOpts struct {
	Store    *session.Store
	User     models.Requester
	Catalog  services.Catalog // primary track catalog, may be nil
	Fallback services.Catalog // used when the primary is nil or failing
	DJs      *repositories.DJRepository
	Requests *repositories.RequestRepository
	Ledger   *repositories.TransactionRepository
	Logger   *log.Logger
}

// NewAPIHandler creates the API handler.
func NewAPIHandler(opts APIHandlerOpts) *APIHandler {
	return &APIHandler{
		store:    opts.Store,
		user:     opts.User,
		catalog:  opts.Catalog,
		fallback: opts.Fallback,
		djs:      opts.DJs,
		requests: opts.Requests,
		ledger:   opts.Ledger,
		logger:   opts.Logger,
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *APIHandler) Routes() []string {
	return []string{
		"GET /api/health",
		"GET /api/wallet",
		"POST /api/wallet",
		"GET /api/transactions",
		"GET /api/requests",
		"POST /api/requests",
		"POST /api/requests/{id}/{action}",
		"GET /api/djs",
		"GET /api/search",
	}
}

// ServeHTTP dispatches to the endpoint handlers.
func (h *APIHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if id := r.PathValue("id"); id != "" {
		h.handleRequestAction(w, r, id, r.PathValue("action"))
		return
	}

	switch r.URL.Path {
	case "/api/health":
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	case "/api/wallet":
		if r.Method == http.MethodPost {
			h.handleWalletPost(w, r)
		} else {
			h.handleWalletGet(w, r)
		}
	case "/api/transactions":
		h.handleTransactions(w, r)
	case "/api/requests":
		if r.Method == http.MethodPost {
			h.handleSubmit(w, r)
		} else {
			h.handleRequests(w, r)
		}
	case "/api/djs":
		h.handleDJs(w, r)
	case "/api/search":
		h.handleSearch(w, r)
	default:
		respondWithError(w, http.StatusNotFound, "Not found")
	}
}

// sessionFor resolves the caller's session. Display fields only matter on
// first use; afterwards the id alone selects the session.
func (h *APIHandler) sessionFor(r *http.Request) *session.Session {
	user := h.user
	if id := r.Header.Get("X-User-ID"); id != "" {
		user = models.Requester{ID: id, Name: r.Header.Get("X-User-Name")}
	}
	return h.store.Get(user)
}

func (h *APIHandler) handleWalletGet(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionFor(r)
	balance := sess.Ledger.Balance()

	respondWithJSON(w, http.StatusOK, map[string]any{
		"user_id":       sess.User.ID,
		"balance_cents": int64(balance),
		"balance":       balance.String(),
	})
}

type walletOp struct {
	Type        string `json:"type"`
	AmountCents int64  `json:"amount_cents"`
}

func (h *APIHandler) handleWalletPost(w http.ResponseWriter, r *http.Request) {
	var op walletOp
	if err := json.NewDecoder(r.Body).Decode(&op); err != nil {
		respondWithError(w, http.StatusBadRequest, "Malformed JSON body")
		return
	}

	sess := h.sessionFor(r)
	amount := models.Amount(op.AmountCents)

	var (
		tx  models.Transaction
		err error
	)
	switch op.Type {
	case string(models.TxDeposit):
		tx, err = sess.Ledger.Deposit(amount)
	case string(models.TxWithdrawal):
		tx, err = sess.Ledger.Withdraw(amount)
	default:
		respondWithError(w, http.StatusBadRequest, "Unknown wallet operation")
		return
	}
	if err != nil {
		respondWithError(w, statusForError(err), err.Error())
		return
	}

	h.persistTransaction(sess.User.ID, tx)

	respondWithJSON(w, http.StatusCreated, map[string]any{
		"transaction":   tx,
		"balance_cents": int64(sess.Ledger.Balance()),
	})
}

func (h *APIHandler) handleTransactions(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionFor(r)
	respondWithJSON(w, http.StatusOK, sess.Ledger.Transactions())
}

type submitRequest struct {
	Song     models.Song `json:"song"`
	DJID     string      `json:"dj_id"`
	TipCents int64       `json:"tip_cents"`
	Message  string      `json:"message"`
}

func (h *APIHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var body submitRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Malformed JSON body")
		return
	}

	if err := body.Song.Validate(); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if body.DJID == "" {
		respondWithError(w, statusForError(shared.ErrNoTargetDJ), shared.ErrNoTargetDJ.Error())
		return
	}

	dj := models.DJ{ID: body.DJID}
	if h.djs != nil {
		found, err := h.djs.Get(body.DJID)
		if err != nil {
			respondWithError(w, statusForError(err), err.Error())
			return
		}
		dj = *found
	}

	sess := h.sessionFor(r)
	req, tip, err := sess.Book.Submit(body.Song, models.Amount(body.TipCents), body.Message, sess.User, dj)
	if err != nil {
		respondWithError(w, statusForError(err), err.Error())
		return
	}

	h.persistRequest(req)
	h.persistTransaction(sess.User.ID, tip)

	respondWithJSON(w, http.StatusCreated, req)
}

func (h *APIHandler) handleRequests(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionFor(r)

	switch r.URL.Query().Get("status") {
	case string(models.StatusPending):
		respondWithJSON(w, http.StatusOK, sess.Book.Pending())
	case string(models.StatusAccepted):
		respondWithJSON(w, http.StatusOK, sess.Book.Accepted())
	case "":
		respondWithJSON(w, http.StatusOK, sess.Book.All())
	default:
		respondWithError(w, http.StatusBadRequest, "Unknown status filter")
	}
}

func (h *APIHandler) handleRequestAction(w http.ResponseWriter, r *http.Request, id, action string) {
	sess := h.sessionFor(r)

	var (
		req    models.SongRequest
		refund *models.Transaction
		err    error
	)
	switch action {
	case "accept":
		req, err = sess.Book.Accept(id)
	case "reject":
		req, refund, err = sess.Book.Reject(id)
	case "played":
		req, err = sess.Book.MarkPlayed(id)
	default:
		respondWithError(w, http.StatusNotFound, "Unknown action")
		return
	}
	if err != nil {
		respondWithError(w, statusForError(err), err.Error())
		return
	}

	if h.requests != nil {
		if err := h.requests.UpdateStatus(req.ID, req.Status); err != nil && !errors.Is(err, shared.ErrNotFound) {
			h.logger.Warn("failed to persist request status", "id", req.ID, "err", err)
		}
	}
	if refund != nil {
		h.persistTransaction(sess.User.ID, *refund)
	}

	respondWithJSON(w, http.StatusOK, req)
}

type djEntry struct {
	models.DJ
	EarningsCents int64 `json:"earnings_cents"`
}

func (h *APIHandler) handleDJs(w http.ResponseWriter, r *http.Request) {
	if h.djs == nil {
		respondWithJSON(w, http.StatusOK, []djEntry{})
		return
	}

	criteria := map[string]any{}
	if r.URL.Query().Get("live") == "true" {
		criteria["is_live"] = true
	}

	djs, err := h.djs.List(criteria)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list DJs")
		return
	}

	sess := h.sessionFor(r)
	entries := make([]djEntry, 0, len(djs))
	for _, dj := range djs {
		entries = append(entries, djEntry{
			DJ:            *dj,
			EarningsCents: int64(sess.Book.Earnings(dj.ID)),
		})
	}
	respondWithJSON(w, http.StatusOK, entries)
}

func (h *APIHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	songs, err := h.search(r, query, limit)
	if err != nil {
		h.logger.Warn("catalog search failed", "err", err)
		songs = []models.Song{}
	}
	respondWithJSON(w, http.StatusOK, songs)
}

// search tries the primary catalog, then the fallback. Both failing is not an
// error surface for clients: they get an empty result set.
func (h *APIHandler) search(r *http.Request, query string, limit int) ([]models.Song, error) {
	if h.catalog != nil {
		songs, err := h.catalog.SearchTracks(r.Context(), query, limit)
		if err == nil {
			return songs, nil
		}
		h.logger.Warn("primary catalog unavailable", "catalog", h.catalog.Name(), "err", err)
	}

	if h.fallback != nil {
		return h.fallback.SearchTracks(r.Context(), query, limit)
	}
	return []models.Song{}, nil
}

func (h *APIHandler) persistRequest(req models.SongRequest) {
	if h.requests == nil {
		return
	}
	if err := h.requests.Create(&req); err != nil {
		h.logger.Warn("failed to persist request", "id", req.ID, "err", err)
	}
}

func (h *APIHandler) persistTransaction(userID string, tx models.Transaction) {
	if h.ledger == nil {
		return
	}
	if err := h.ledger.Create(userID, &tx); err != nil {
		h.logger.Warn("failed to persist transaction", "id", tx.ID, "err", err)
	}
}
