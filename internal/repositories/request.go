package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/encore/internal/models"
	"github.com/desertthunder/encore/internal/shared"
)

// RequestRepository persists [models.SongRequest] records. Song and requester
// fields are denormalized into the requests table so historical rows survive
// catalog changes.
type RequestRepository struct {
	db *sql.DB
}

// NewRequestRepository creates a new [RequestRepository] with the given database connection
func NewRequestRepository(db *sql.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// Create inserts a new song request.
func (r *RequestRepository) Create(request *models.SongRequest) error {
	sequence, err := NextSequence(r.db, "requests")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	if request.ID == "" {
		request.ID = shared.GenerateID()
	}
	if request.Status == "" {
		request.Status = models.StatusPending
	}
	if request.Timestamp.IsZero() {
		request.Timestamp = time.Now()
	}

	if err := request.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO requests (
			id, sequence, song_id, song_title, song_artist, song_album, song_cover_url,
			requester_id, requester_name, requester_avatar_url,
			dj_id, message, tip_amount, status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		request.ID, sequence,
		request.Song.ID, request.Song.Title, request.Song.Artist, request.Song.Album, request.Song.AlbumCoverURL,
		request.Requester.ID, request.Requester.Name, request.Requester.AvatarURL,
		request.DJID, request.Message, int64(request.TipAmount), string(request.Status),
		request.Timestamp, request.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert request: %w", err)
	}

	return nil
}

// Get retrieves a request by ID.
func (r *RequestRepository) Get(id string) (*models.SongRequest, error) {
	query := selectRequests + " WHERE id = ?"

	request, err := scanRequest(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: request %s", shared.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query request: %w", err)
	}

	return request, nil
}

// UpdateStatus transitions a request to the given status.
func (r *RequestRepository) UpdateStatus(id string, status models.RequestStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid status %q", status)
	}

	query := `
		UPDATE requests
		SET status = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query, string(status), time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update request: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: request %s", shared.ErrNotFound, id)
	}

	return nil
}

// List retrieves requests matching the given criteria. Pending requests sort
// highest tip first with submission order breaking ties; other listings use
// submission order.
func (r *RequestRepository) List(criteria map[string]any) ([]*models.SongRequest, error) {
	query := selectRequests + " WHERE 1=1"

	args := []any{}

	status, filtered := criteria["status"].(string)
	if filtered && status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}
	if djID, ok := criteria["dj_id"].(string); ok && djID != "" {
		query += " AND dj_id = ?"
		args = append(args, djID)
	}

	if filtered && status == string(models.StatusPending) {
		query += " ORDER BY tip_amount DESC, sequence ASC"
	} else {
		query += " ORDER BY sequence ASC"
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.SongRequest
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return requests, nil
}

const selectRequests = `
	SELECT id, song_id, song_title, song_artist, song_album, song_cover_url,
	       requester_id, requester_name, requester_avatar_url,
	       dj_id, message, tip_amount, status, created_at
	FROM requests
`

func scanRequest(row scanner) (*models.SongRequest, error) {
	var (
		request models.SongRequest
		tip     int64
		status  string
	)

	err := row.Scan(&request.ID,
		&request.Song.ID, &request.Song.Title, &request.Song.Artist, &request.Song.Album, &request.Song.AlbumCoverURL,
		&request.Requester.ID, &request.Requester.Name, &request.Requester.AvatarURL,
		&request.DJID, &request.Message, &tip, &status, &request.Timestamp)
	if err != nil {
		return nil, err
	}

	request.TipAmount = models.Amount(tip)
	request.Status = models.RequestStatus(status)

	return &request, nil
}
