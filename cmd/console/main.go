package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"jewel-lending/backend/config"
	"jewel-lending/backend/global"
	"jewel-lending/backend/initialize"
	"jewel-lending/cmd/console/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to YAML config")
	envFile := flag.String("env", ".env", "Optional dotenv file")
	logFile := flag.String("log", "console.log", "Log file (the terminal is taken by the UI)")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "load env file:", err)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open log file:", err)
		os.Exit(1)
	}
	defer f.Close()
	global.Logger = initialize.NewLogger(f, cfg.Log.Level, "json")

	core, err := initialize.NewCore(context.Background(), cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open database:", err)
		os.Exit(1)
	}
	defer core.Close()

	p := tea.NewProgram(ui.NewRootModel(ui.ServiceBackend{Lending: core.Lending, Jewels: core.Jewels}), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "console:", err)
		os.Exit(1)
	}
}
