package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"ghsearch/internal/config"
	"ghsearch/internal/eventbus"
	"ghsearch/internal/github"
	"ghsearch/internal/ui"
	"ghsearch/internal/ui/coordinator"
)

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if opts.showVersion {
		fmt.Print(versionString())
		os.Exit(0)
	}

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	// Subscribe the UI before anything publishes; delivery starts with the program
	bridge := ui.NewBridge()
	defer bridge.Close()
	bridge.ForwardEvents(bus,
		eventbus.EventConfigLoaded,
		eventbus.EventSearchQueued,
		eventbus.EventSearchRequested,
		eventbus.EventSearchCompleted,
		eventbus.EventSearchFailed,
		eventbus.EventUserSelected,
	)

	// Load configuration, falling back to defaults
	configSvc := config.NewConfigServiceWithBus(bus, opts.configPath)
	cfg, err := configSvc.Load()
	if err != nil {
		if opts.writeConfig {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error loading config: %v (using defaults)\n", err)
		cfg = config.DefaultConfig()
	}
	opts.apply(cfg)

	if opts.writeConfig {
		if err := writeConfig(configSvc, cfg, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Set up logging; the terminal belongs to the TUI
	if cfg.Log.File != "" {
		logFile, err := tea.LogToFile(cfg.Log.File, "ghsearch")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
			os.Exit(1)
		}
		defer logFile.Close()
	} else {
		log.SetOutput(io.Discard)
	}
	log.Printf("Config: %s", configSvc.Path())

	client, err := github.NewClient(github.Options{
		BaseURL:   cfg.API.BaseURL,
		UserAgent: cfg.API.UserAgent,
		Timeout:   cfg.API.Timeout.Std(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	vm := coordinator.NewCoordinator(coordinator.Options{
		Searcher: client,
		Bus:      bus,
		Debounce: cfg.Search.Debounce.Std(),
	})
	defer vm.Close()

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle termination signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	uiModel := ui.NewModel(vm, cfg)
	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithContext(ctx))
	uiModel.SetProgram(p)

	bridge.Bind(vm)
	bridge.Start(p.Send)

	// Run the UI
	_, runErr := p.Run()
	bridge.Close()
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", runErr)
		vm.Close()
		os.Exit(1)
	}
}

// writeConfig saves cfg to the service's file and reports where it went
func writeConfig(svc config.ConfigService, cfg *config.Config, out io.Writer) error {
	if err := svc.Save(cfg); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s\n", svc.Path())
	return nil
}
