// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
		},
		&cli.BoolFlag{
			Name:  "save",
			Usage: "Save results locally",
		},
		&cli.StringFlag{
			Name:  "output-dir",
			Usage: "Directory for saved results (default: [output] dir from config)",
		},
	}
}

// discoverCommand searches and ranks mood playlists
func discoverCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "discover",
		Aliases: []string{"search"},
		Usage:   "Find popular playlists for a mood or time of day",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags: append([]cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Search results requested per query variant (1-50)",
			},
			&cli.IntFlag{
				Name:  "min-tracks",
				Usage: "Minimum number of tracks",
			},
			&cli.IntFlag{
				Name:  "min-followers",
				Usage: "Minimum number of followers",
			},
			&cli.StringFlag{
				Name:  "curator",
				Usage: "Owner ID whose playlists are ignored",
			},
			&cli.BoolFlag{
				Name:  "report",
				Usage: "Include every skipped playlist and its reason",
			},
		}, outputFlags()...),
		Action: r.Discover,
	}
}

// genresCommand resolves per-track genres for a playlist
func genresCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "genres",
		Usage: "Resolve the genres of every track in a playlist",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     "id",
				Usage:    "Playlist ID",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Format for saved results: json, csv, markdown or txt (default: [output] format from config)",
			},
			&cli.BoolFlag{
				Name:  "no-spinner",
				Usage: "Disable the progress spinner",
			},
		}, outputFlags()...),
		Action: r.Genres,
	}
}

// tuiCommand launches the interactive picker
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Interactively browse playlists for a mood and their genres",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where logs are written while the TUI is running",
				Value: "./tmp/moodlists-tui.log",
			},
		},
		Action: r.TUI,
	}
}

// setupCommand handles configuration setup.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write a config.toml template and check credentials",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing configuration file",
					},
					&cli.StringFlag{
						Name:  "client-id",
						Usage: "Spotify client ID to store in the configuration file",
					},
					&cli.StringFlag{
						Name:  "client-secret",
						Usage: "Spotify client secret to store in the configuration file",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}
