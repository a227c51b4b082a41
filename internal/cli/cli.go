// Package cli implements the mstcc command-line interface.
//
// Commands:
//   - solve: build an initial spanning tree and improve it by local search
//   - check: verify solution lines against an instance
//   - generate: write a random instance
//   - config: print the default parameter file
//   - cache: manage the solution cache
//
// Logs and status lines go to stderr. Result lines go to stdout so that runs
// can be appended to a results file.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mstcc/pkg/buildinfo"
	"github.com/matzehuels/mstcc/pkg/cache"
	"github.com/matzehuels/mstcc/pkg/errors"
	"github.com/matzehuels/mstcc/pkg/pipeline"
	"github.com/matzehuels/mstcc/pkg/problem"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "mstcc"

	// redisPrefix namespaces solver keys on a shared Redis server.
	redisPrefix = appName + ":"
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer // result lines
}

// New creates a CLI that logs to w at the given level and writes results to
// stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var (
		verbose  bool
		logLevel string
	)

	root := &cobra.Command{
		Use:   appName,
		Short: "mstcc finds low-cost spanning trees under conflict constraints",
		Long: `mstcc is a heuristic solver for the minimum spanning tree problem with
conflict constraints. It builds an initial tree and improves it with edge
exchange local search, optionally inside iterated local search.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := parseLogLevel(logLevel)
			if err != nil {
				return err
			}
			if verbose {
				level = LogDebug
			}
			c.SetLogLevel(level)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&logLevel, "log", "info", "log level: off, info, debug")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. The caller closes the
// runner's cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool, redisAddr string) (*pipeline.Runner, error) {
	store, keyer, err := c.newCache(ctx, noCache, redisAddr)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

// newCache opens the solution cache: Redis when an address is given, the
// XDG file cache otherwise. A missing home directory disables caching.
func (c *CLI) newCache(ctx context.Context, noCache bool, redisAddr string) (cache.Cache, cache.Keyer, error) {
	if noCache {
		return cache.NewNullCache(), nil, nil
	}
	if redisAddr != "" {
		if err := errors.ValidateAddr(redisAddr); err != nil {
			return nil, nil, err
		}
		rc, err := cache.NewRedisCache(ctx, redisAddr, redisPrefix)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeCache, err, "open redis cache")
		}
		c.Logger.Debug("Using redis cache", "addr", redisAddr)
		return rc, cache.NewScopedKeyer(cache.NewDefaultKeyer(), redisPrefix), nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("Solution cache disabled", "err", err)
		return cache.NewNullCache(), nil, nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeCache, err, "open file cache")
	}
	return fc, nil, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/mstcc/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// readInstance reads an instance file, or stdin when path is "-".
func readInstance(path string) (*problem.Problem, error) {
	if path == "-" {
		return problem.Read(os.Stdin)
	}
	return problem.ReadFile(path)
}

// writeFile writes data to path after validating it as an output path.
func writeFile(path string, data []byte) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
