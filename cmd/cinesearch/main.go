package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/cinesearch/internal/adapter"
	adaptercatalog "github.com/mmcdole/cinesearch/internal/adapter/catalog"
	"github.com/mmcdole/cinesearch/internal/catalog"
	"github.com/mmcdole/cinesearch/internal/domain"
	"github.com/mmcdole/cinesearch/internal/store"
	"github.com/mmcdole/cinesearch/internal/tui"
	"github.com/mmcdole/cinesearch/internal/watchlist"
)

// Version is set at build time via -ldflags
var Version = "dev"

const (
	shutdownTimeout = 5 * time.Second
	verifyTimeout   = 15 * time.Second

	// Any title works for checking a key
	verifyTitleID = "tt0078748"
)

func main() {
	var (
		showVersion bool
		configPath  string
		reset       bool
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.BoolVar(&reset, "reset", false, "delete the saved watchlist and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("cinesearch %s\n", Version)
		return
	}

	if err := run(configPath, reset); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, reset bool) error {
	// Load configuration
	cfg, err := adapter.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, logCloser, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger, logCloser = adapter.NullLogger(), io.NopCloser(nil)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	logger.Info("starting cinesearch", "version", Version)

	if reset {
		if cfg.Storage.Dir == "" {
			fmt.Println("Storage is memory-only, nothing to reset")
			return nil
		}
		if err := store.Remove(cfg.Storage.Dir); err != nil {
			return fmt.Errorf("failed to reset watchlist: %w", err)
		}
		fmt.Println("✓ Watchlist deleted")
		return nil
	}

	// Check if configured
	if !cfg.IsConfigured() {
		if err := runSetupFlow(cfg, logger); err != nil {
			return err
		}
	}

	// Open storage and load the watchlist
	records, err := store.NewRecordStore(cfg.Storage.Dir)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer records.Close()

	observer := tui.NewChannelObserver()
	wl := watchlist.NewStore(records, logger)
	unsubscribe := wl.Subscribe(observer)
	defer unsubscribe()
	wl.Initialize()

	// Create catalog client
	repo, err := adaptercatalog.NewClientFromConfig(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create catalog client: %w", err)
	}
	catalogSvc := catalog.NewService(repo, logger)

	launcher := adapter.NewLauncher(cfg.Browser.Command, cfg.Browser.Args, logger)

	// Create TUI model
	model := tui.NewModel(catalogSvc, wl, launcher, observer, logger)

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	_, runErr := p.Run()
	if runErr != nil {
		logger.Error("TUI error", "error", runErr)
	}

	logger.Info("shutting down")

	// Persist anything still pending before closing storage
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := wl.Close(ctx); err != nil {
		logger.Error("failed to save watchlist on exit", "error", err)
		fmt.Fprintf(os.Stderr, "Warning: watchlist changes may not have been saved: %v\n", err)
	}

	if runErr != nil {
		return fmt.Errorf("TUI error: %w", runErr)
	}
	return nil
}

// runSetupFlow asks for an OMDb API key, checks it and saves the config
func runSetupFlow(cfg *adapter.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to cinesearch!")
	fmt.Println()
	fmt.Println("An OMDb API key is required. Get a free one at https://www.omdbapi.com/apikey.aspx")
	fmt.Println()

	for {
		// Prompt for key (hidden input)
		fmt.Print("API key: ")
		keyBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read api key: %w", err)
		}

		apiKey := strings.TrimSpace(string(keyBytes))
		if apiKey == "" {
			fmt.Println("API key cannot be empty. Please try again.")
			continue
		}
		cfg.OMDb.APIKey = apiKey

		fmt.Println("Checking key...")
		err = verifyKey(cfg, logger)
		if errors.Is(err, domain.ErrAuthFailed) {
			fmt.Println("✗ OMDb rejected that key. Please try again.")
			fmt.Println()
			continue
		}
		if err != nil {
			// Keep the key; the catalog may just be unreachable right now
			logger.Warn("could not verify api key", "error", err)
			fmt.Printf("! Could not verify key: %s\n", catalog.FailureReason("lookup", err))
		} else {
			fmt.Println("✓ Key accepted")
		}
		break
	}

	if err := adapter.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Printf("✓ Configuration saved to %s\n", adapter.ConfigFile())
	fmt.Println()
	return nil
}

// verifyKey looks up a known title with the configured key
func verifyKey(cfg *adapter.Config, logger *slog.Logger) error {
	repo, err := adaptercatalog.NewClientFromConfig(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	defer cancel()

	_, err = repo.Lookup(ctx, verifyTitleID)
	return err
}
