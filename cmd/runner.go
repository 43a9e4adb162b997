package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodlists/internal/services"
	"github.com/desertthunder/moodlists/internal/shared"
	"github.com/desertthunder/moodlists/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	catalog services.Catalog
	logger  *log.Logger
	output  io.Writer
	engine  *tasks.Engine
	sleep   tasks.SleepFunc
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Catalog services.Catalog
	Logger  *log.Logger
	Output  io.Writer
	Sleep   tasks.SleepFunc // Overrides the rate-limit wait, mainly for tests
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	r := &Runner{
		config:  opts.Config,
		catalog: opts.Catalog,
		logger:  opts.Logger,
		output:  opts.Output,
		sleep:   opts.Sleep,
	}
	r.engine = r.newEngine()
	return r
}

func (r *Runner) newEngine() *tasks.Engine {
	if r.catalog == nil {
		return nil
	}
	return tasks.NewEngine(r.catalog, r.logger, r.backoffPolicy())
}

// backoffPolicy converts the [shared.GenresConfig] seconds into a [tasks.BackoffPolicy].
func (r *Runner) backoffPolicy() tasks.BackoffPolicy {
	g := r.config.Genres
	return tasks.BackoffPolicy{
		DefaultRetryAfter: time.Duration(g.DefaultRetryAfter) * time.Second,
		MaxDelay:          time.Duration(g.MaxRetryAfter) * time.Second,
		MaxRetries:        g.MaxRetries,
		Sleep:             r.sleep,
	}
}

// SetLogger replaces the logger used by the runner and its engine.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
	r.engine = r.newEngine()
}

// requireEngine reports a missing catalog as a credentials problem.
func (r *Runner) requireEngine() error {
	if r.engine == nil {
		return fmt.Errorf("%w: set SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET or run 'moodlists setup config'", shared.ErrMissingCredentials)
	}
	return nil
}

func (r *Runner) globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level (debug, info, warn, error)",
		},
	}
}

// before applies global flags ahead of any command action.
func (r *Runner) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if name := cmd.String("log-level"); name != "" {
		level, err := shared.ParseLevel(name)
		if err != nil {
			return ctx, err
		}
		shared.SetLogLevel(r.logger, level)
	}
	return ctx, nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		discoverCommand, genresCommand, tuiCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
