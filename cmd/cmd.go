// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand handles setup operations for the database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Initialize configuration, database, and seed data",
		Flags:  []cli.Flag{configFlag()},
		Action: r.SetupDatabase,
	}
}

// serveCommand starts the HTTP service.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the song request HTTP service",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "mock",
				Usage: "Serve the built-in demo catalog instead of Spotify",
			},
		},
		Action: r.Serve,
	}
}

// spotifyCommand handles Spotify operations
func spotifyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "spotify",
		Aliases: []string{"spot"},
		Usage:   "Spotify catalog operations",
		Commands: []*cli.Command{
			{
				Name:   "auth",
				Usage:  "Authenticate with Spotify using OAuth2",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SpotifyAuth,
			},
			{
				Name:  "search",
				Usage: "Search the Spotify track catalog",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags: []cli.Flag{
					configFlag(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of tracks to return",
						Value: 10,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.SpotifySearch,
			},
			{
				Name:  "playlists",
				Usage: "List Spotify playlists",
				Flags: []cli.Flag{
					configFlag(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of playlists to return",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.SpotifyPlaylists,
			},
		},
	}
}

// walletCommand handles wallet operations against a running service.
func walletCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "wallet",
		Usage: "Wallet operations (requires a running serve instance)",
		Commands: []*cli.Command{
			{
				Name:   "balance",
				Usage:  "Show the current wallet balance",
				Flags:  []cli.Flag{configFlag()},
				Action: r.WalletBalance,
			},
			{
				Name:  "deposit",
				Usage: "Add funds to the wallet",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "cents"},
				},
				Flags:  []cli.Flag{configFlag()},
				Action: r.WalletDeposit,
			},
			{
				Name:  "withdraw",
				Usage: "Withdraw funds from the wallet",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "cents"},
				},
				Flags:  []cli.Flag{configFlag()},
				Action: r.WalletWithdraw,
			},
			{
				Name:  "history",
				Usage: "Show the wallet transaction history",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.WalletHistory,
			},
		},
	}
}

// requestCommand handles song request operations.
func requestCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "request",
		Aliases: []string{"req"},
		Usage:   "Song request operations (requires a running serve instance)",
		Commands: []*cli.Command{
			{
				Name:  "submit",
				Usage: "Submit a song request with a tip",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "song",
						Usage:    "Track search query, first match is requested",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "dj",
						Usage:    "Target DJ id",
						Required: true,
					},
					&cli.IntFlag{
						Name:     "tip",
						Usage:    "Tip amount in cents",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "message",
						Usage: "Optional message to the DJ",
					},
				},
				Action: r.RequestSubmit,
			},
			{
				Name:  "list",
				Usage: "List song requests",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "status",
						Usage: "Filter by status (pending, accepted)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.RequestList,
			},
			{
				Name:  "accept",
				Usage: "Accept a pending request",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  []cli.Flag{configFlag()},
				Action: r.RequestAccept,
			},
			{
				Name:  "reject",
				Usage: "Reject a pending request",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  []cli.Flag{configFlag()},
				Action: r.RequestReject,
			},
			{
				Name:  "played",
				Usage: "Mark an accepted request as played",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  []cli.Flag{configFlag()},
				Action: r.RequestPlayed,
			},
			{
				Name:  "export",
				Usage: "Export stored requests to CSV and JSON (reads the database directly)",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "dj",
						Usage: "Filter by DJ id",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Base path for exported files",
					},
				},
				Action: r.RequestExport,
			},
		},
	}
}

// djCommand lists DJ profiles.
func djCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "dj",
		Usage: "DJ profile operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List DJ profiles (reads the database directly)",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "live",
						Usage: "Only show DJs currently live",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.DJList,
			},
		},
	}
}

// consoleCommand launches the interactive DJ console.
func consoleCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "console",
		Aliases: []string{"tui"},
		Usage:   "Launch the interactive DJ console",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "dj",
				Usage: "DJ id to run the console as",
				Value: "dj-spinz",
			},
		},
		Action: r.Console,
	}
}
