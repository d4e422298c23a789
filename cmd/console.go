package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/encore/internal/models"
	"github.com/desertthunder/encore/internal/repositories"
	"github.com/desertthunder/encore/internal/requests"
	"github.com/desertthunder/encore/internal/shared"
	"github.com/desertthunder/encore/internal/ui"
	"github.com/desertthunder/encore/internal/wallet"
	"github.com/urfave/cli/v3"
)

// Console launches the interactive DJ console against the stored request
// queue for a DJ.
func (r *Runner) Console(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))
	djID := cmd.String("dj")

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	djRepo := repositories.NewDJRepository(db)
	dj, err := djRepo.Get(djID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return fmt.Errorf("%w: no DJ with id %q, run 'encore setup' to seed the roster", shared.ErrNotFound, djID)
		}
		return fmt.Errorf("failed to load DJ profile: %w", err)
	}

	reqRepo := repositories.NewRequestRepository(db)
	stored, err := reqRepo.List(map[string]any{"dj_id": djID})
	if err != nil {
		return fmt.Errorf("failed to load requests: %w", err)
	}

	// The console's book is backed by a throwaway ledger, not the customer's
	// wallet, so refunds issued here would credit nobody. Console rejects are
	// status-only; refunds go through the serve API, which owns the wallet.
	ledger := wallet.NewLedger("console", 0)
	book := requests.NewBook(ledger, requests.WithRefundOnReject(false))

	restored := make([]models.SongRequest, 0, len(stored))
	for _, req := range stored {
		restored = append(restored, *req)
	}
	book.Restore(restored)

	// Redirect logs to file to avoid interfering with rendering
	fileLogger, err := shared.NewFileLogger("./tmp/encore-console.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	onTransition := func(req models.SongRequest) {
		if err := reqRepo.UpdateStatus(req.ID, req.Status); err != nil && !errors.Is(err, shared.ErrNotFound) {
			r.logger.Warn("failed to persist request status", "id", req.ID, "err", err)
		}
	}

	model := ui.NewModel(book, *dj, onTransition)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running console: %w", err)
	}

	return nil
}
