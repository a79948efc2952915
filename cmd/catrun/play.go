package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/catrun/internal/audio"
	"github.com/vovakirdan/catrun/internal/core"
	"github.com/vovakirdan/catrun/internal/identity"
	"github.com/vovakirdan/catrun/internal/platform/tui"
	"github.com/vovakirdan/catrun/internal/scoring"
	"github.com/vovakirdan/catrun/internal/storage"
)

var flagMute bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a run",
	Long: `Start the runner in this terminal.

Controls:
  Space/Up   - Jump (hold for a higher jump)
  Down       - Slide
  P/Esc      - Pause
  R          - Restart
  M          - Mute
  Tab        - Leaderboard
  Ctrl+S     - Screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Slower progression, reaches top speed after two minutes
  normal - Default progression
  hard   - Starts faster, reaches top speed after one minute
  fixed  - No progression, stays at the initial speed

Examples:
  catrun play
  catrun play --difficulty easy
  catrun play --seed 42 --difficulty fixed
  catrun play --config ./my-runner.yaml --mute`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := play(tui.Run); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// play sets up storage, identity and audio, runs the game with runGame and
// releases everything before returning.
func play(runGame func(tui.Options) error) error {
	cfg, err := loadRunnerConfig()
	if err != nil {
		return err
	}
	seed, err := resolveSeed()
	if err != nil {
		return err
	}

	var logOut io.Writer = io.Discard
	if f, logErr := openLogFile(); logErr == nil {
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(logOut, "catrun")
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
		Version:  version,
		GroupID:  cfg.Storage.GroupID,
	}

	profile := identity.Open(identity.AppName, logger)

	opts := tui.Options{
		Config:  cfg,
		Runtime: runtime,
		Profile: profile,
		Logger:  logger,
	}

	// Open score storage
	store, err := storage.Open(resolveDBPath(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("running without score storage", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
		store.SetTopN(cfg.Storage.TopRankN)
		reporter := scoring.NewReporter(store, logger, scoring.ReporterConfig{
			UserID:  profile.UserID(),
			Version: version,
			GroupID: cfg.Storage.GroupID,
		})
		// Runs after the game and before the store closes, so the last run
		// reaches the store.
		defer reporter.Close()
		opts.Reporter = reporter
		opts.Runs = store
	}

	if !flagMute {
		sounds := audio.NewSoundManager()
		if initErr := sounds.Initialize(); initErr != nil {
			logger.Warn("audio unavailable", "error", initErr)
		} else {
			defer sounds.Cleanup()
		}
		opts.Sounds = sounds
	}

	logger.Info("starting run", "seed", seed, "difficulty", flagDifficulty, "user", profile.UserID())
	if err := runGame(opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
