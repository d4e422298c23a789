package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/encore/internal/formatter"
	"github.com/desertthunder/encore/internal/models"
	"github.com/desertthunder/encore/internal/repositories"
	"github.com/desertthunder/encore/internal/shared"
	"github.com/urfave/cli/v3"
)

// RequestSubmit searches the catalog for the requested track and submits the
// first match with a tip.
func (r *Runner) RequestSubmit(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))
	query := cmd.String("song")
	djID := cmd.String("dj")
	tip := cmd.Int("tip")
	message := cmd.String("message")

	searchPath := fmt.Sprintf("/api/search?q=%s&limit=1", url.QueryEscape(query))
	searchResp, err := r.apiGet(ctx, config, searchPath)
	if err != nil {
		return err
	}
	if searchResp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s", shared.ErrAPIRequest, searchResp.errorMessage())
	}

	var songs []models.Song
	if err := searchResp.decode(&songs); err != nil {
		return err
	}
	if len(songs) == 0 {
		return fmt.Errorf("%w: no tracks matched %q", shared.ErrNotFound, query)
	}
	song := songs[0]

	resp, err := r.apiPost(ctx, config, "/api/requests", map[string]any{
		"song":      song,
		"dj_id":     djID,
		"tip_cents": tip,
		"message":   message,
	})
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("%w: %s", shared.ErrAPIRequest, resp.errorMessage())
	}

	var req models.SongRequest
	if err := resp.decode(&req); err != nil {
		return err
	}

	r.writePlain("✓ Requested %s - %s with a %s tip\n", song.Artist, song.Title, req.TipAmount)
	r.writePlain("Request ID: %s\n", req.ID)
	return nil
}

// RequestList shows the session's song requests, optionally filtered by status.
func (r *Runner) RequestList(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))
	status := cmd.String("status")
	useJSON := cmd.Bool("json")

	path := "/api/requests"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}

	resp, err := r.apiGet(ctx, config, path)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s", shared.ErrAPIRequest, resp.errorMessage())
	}

	var requests []models.SongRequest
	if err := resp.decode(&requests); err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(requests, true)
	}

	text, err := formatter.QueueToText(requests)
	if err != nil {
		return fmt.Errorf("failed to format requests: %w", err)
	}
	return r.writePlain("%s", text)
}

// RequestAccept accepts a pending request, crediting the DJ's tip.
func (r *Runner) RequestAccept(ctx context.Context, cmd *cli.Command) error {
	return r.requestAction(ctx, cmd, "accept")
}

// RequestReject rejects a pending request.
func (r *Runner) RequestReject(ctx context.Context, cmd *cli.Command) error {
	return r.requestAction(ctx, cmd, "reject")
}

// RequestPlayed marks an accepted request as played.
func (r *Runner) RequestPlayed(ctx context.Context, cmd *cli.Command) error {
	return r.requestAction(ctx, cmd, "played")
}

func (r *Runner) requestAction(ctx context.Context, cmd *cli.Command, action string) error {
	config := r.loadConfig(cmd.String("config"))

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: a request id is required", shared.ErrMissingArgument)
	}

	resp, err := r.apiPost(ctx, config, fmt.Sprintf("/api/requests/%s/%s", url.PathEscape(id), action), nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s", shared.ErrAPIRequest, resp.errorMessage())
	}

	var req models.SongRequest
	if err := resp.decode(&req); err != nil {
		return err
	}

	r.writePlain("✓ %s - %s is now %s\n", req.Song.Artist, req.Song.Title, req.Status)
	return nil
}

// RequestExport writes stored requests to CSV and JSON files, reading the
// database directly so it works without a running service.
func (r *Runner) RequestExport(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))
	djID := cmd.String("dj")
	output := cmd.String("output")
	if output == "" {
		output = "encore_requests"
	}

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	criteria := map[string]any{}
	if djID != "" {
		criteria["dj_id"] = djID
	}

	repo := repositories.NewRequestRepository(db)
	stored, err := repo.List(criteria)
	if err != nil {
		return fmt.Errorf("failed to list requests: %w", err)
	}

	requests := make([]models.SongRequest, 0, len(stored))
	for _, req := range stored {
		requests = append(requests, *req)
	}

	result, err := formatter.WriteQueueExport(requests, output)
	if err != nil {
		return fmt.Errorf("failed to export requests: %w", err)
	}

	r.logger.Infof("exported %v requests", len(requests))
	r.writePlain("✓ Exported %d requests\n", len(requests))
	r.writePlain("  CSV: %s\n", result.CSVFile)
	r.writePlain("  JSON: %s\n", result.JSONFile)
	return nil
}
