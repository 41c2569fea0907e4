package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/wdjumin/constellation-terminal/internal/astronomy"
	"github.com/wdjumin/constellation-terminal/internal/config"
	"github.com/wdjumin/constellation-terminal/internal/logging"
	"github.com/wdjumin/constellation-terminal/internal/places"
	"github.com/wdjumin/constellation-terminal/internal/ui"
)

func main() {
	location := flag.String("location", "", "Location to resolve at startup (e.g. \"Singapore\")")
	logFile := flag.String("log", "", "Write diagnostics to this file (disabled when empty)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	closer, err := logging.Setup(*logFile, *logLevel)
	if err != nil {
		fmt.Printf("Error opening log file: %v\n", err)
		os.Exit(1)
	}
	if closer != nil {
		defer closer.Close()
	}

	cfg := config.Load()

	model := ui.NewModel(cfg, places.NewClient(cfg), astronomy.NewClient(cfg), *location)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("application exited with error")
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}
