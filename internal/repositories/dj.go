package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/encore/internal/models"
	"github.com/desertthunder/encore/internal/shared"
)

// DJRepository persists [models.DJ] profiles.
type DJRepository struct {
	db *sql.DB
}

// NewDJRepository creates a new [DJRepository] with the given database connection
func NewDJRepository(db *sql.DB) *DJRepository {
	return &DJRepository{db: db}
}

// Create inserts a new DJ into the database. A missing ID is generated.
func (r *DJRepository) Create(dj *models.DJ) error {
	sequence, err := NextSequence(r.db, "djs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	if dj.ID == "" {
		dj.ID = shared.GenerateID()
	}
	if dj.CreatedAt.IsZero() {
		dj.CreatedAt = time.Now()
	}

	if err := dj.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO djs (id, sequence, name, avatar_url, club, location, genres, rating, is_live, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, dj.ID, sequence, dj.Name, dj.AvatarURL, dj.Club, dj.Location,
		strings.Join(dj.Genres, ","), dj.Rating, dj.IsLive, dj.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert dj: %w", err)
	}

	return nil
}

// Get retrieves a DJ by ID.
func (r *DJRepository) Get(id string) (*models.DJ, error) {
	query := `
		SELECT id, name, avatar_url, club, location, genres, rating, is_live, created_at
		FROM djs
		WHERE id = ?
	`

	dj, err := scanDJ(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: dj %s", shared.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query dj: %w", err)
	}

	return dj, nil
}

// Update modifies an existing DJ profile.
func (r *DJRepository) Update(dj *models.DJ) error {
	if err := dj.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		UPDATE djs
		SET name = ?, avatar_url = ?, club = ?, location = ?, genres = ?, rating = ?, is_live = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query, dj.Name, dj.AvatarURL, dj.Club, dj.Location,
		strings.Join(dj.Genres, ","), dj.Rating, dj.IsLive, dj.ID)
	if err != nil {
		return fmt.Errorf("failed to update dj: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: dj %s", shared.ErrNotFound, dj.ID)
	}

	return nil
}

// List retrieves DJs matching the given criteria in insertion order.
func (r *DJRepository) List(criteria map[string]any) ([]*models.DJ, error) {
	query := `
		SELECT id, name, avatar_url, club, location, genres, rating, is_live, created_at
		FROM djs
		WHERE 1=1
	`

	args := []any{}

	if live, ok := criteria["is_live"].(bool); ok {
		query += " AND is_live = ?"
		args = append(args, live)
	}
	if club, ok := criteria["club"].(string); ok && club != "" {
		query += " AND club = ?"
		args = append(args, club)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query djs: %w", err)
	}
	defer rows.Close()

	var djs []*models.DJ
	for rows.Next() {
		dj, err := scanDJ(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dj: %w", err)
		}
		djs = append(djs, dj)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return djs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDJ(row scanner) (*models.DJ, error) {
	var (
		dj     models.DJ
		genres string
	)

	err := row.Scan(&dj.ID, &dj.Name, &dj.AvatarURL, &dj.Club, &dj.Location,
		&genres, &dj.Rating, &dj.IsLive, &dj.CreatedAt)
	if err != nil {
		return nil, err
	}

	if genres != "" {
		dj.Genres = strings.Split(genres, ",")
	}

	return &dj, nil
}
