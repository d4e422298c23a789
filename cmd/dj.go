package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/encore/internal/repositories"
	"github.com/desertthunder/encore/internal/shared"
	"github.com/urfave/cli/v3"
)

// DJList shows the stored DJ roster.
func (r *Runner) DJList(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))
	liveOnly := cmd.Bool("live")
	useJSON := cmd.Bool("json")

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	criteria := map[string]any{}
	if liveOnly {
		criteria["is_live"] = true
	}

	djs, err := repositories.NewDJRepository(db).List(criteria)
	if err != nil {
		return fmt.Errorf("failed to list DJs: %w", err)
	}

	if useJSON {
		return r.writeJSON(djs, true)
	}

	r.writePlain("Found %d DJs:\n\n", len(djs))
	for i, dj := range djs {
		status := "offline"
		if dj.IsLive {
			status = "LIVE"
		}
		r.writePlain("%d. %s (%s) — %s\n", i+1, dj.Name, dj.ID, status)
		r.writePlain("   %s, %s\n", dj.Club, dj.Location)
		if len(dj.Genres) > 0 {
			r.writePlain("   Genres: %s\n", strings.Join(dj.Genres, ", "))
		}
		r.writePlain("   Rating: %.1f\n\n", dj.Rating)
	}

	return nil
}
