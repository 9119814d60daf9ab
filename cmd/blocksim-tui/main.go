package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"

	"github.com/blocksim/tui-go/internal/api"
	"github.com/blocksim/tui-go/internal/config"
	"github.com/blocksim/tui-go/internal/logging"
	"github.com/blocksim/tui-go/internal/recovery"
	"github.com/blocksim/tui-go/internal/session"
	"github.com/blocksim/tui-go/internal/store"
	"github.com/blocksim/tui-go/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	dir, err := config.Dir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot create state directory: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs go to a file under the state dir.
	logger, err := logging.Init(dir, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot open log file: %v\n", err)
		os.Exit(1)
	}

	client := api.NewClient(cfg.APIBaseURL, logger)
	sess := session.NewManager(store.NewFileStore(dir), client, logger)
	client.SetTokenSource(sess.Token)
	client.SetAuthFailureHandler(sess.HandleAuthFailure)

	flow := recovery.NewFlow(client, store.NewTransient(), logger)

	p := tea.NewProgram(
		tui.NewModel(cfg, client, sess, flow, logger, clockwork.NewRealClock()),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
