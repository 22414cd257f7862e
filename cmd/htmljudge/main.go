package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"htmljudge/internal/config"
	"htmljudge/internal/judge"
	"htmljudge/internal/reconcile"
	"htmljudge/internal/session"
	"htmljudge/internal/ui"
)

func main() {
	if err := godotenv.Load(); err != nil {
		// No .env file is the normal case outside development
		log.Printf("[main] no .env file loaded")
	}

	legacyTiers := flag.Bool("legacy-tiers", false, "use the legacy 60-point mid score threshold")
	docPath := flag.String("open", "", "HTML file to load into the editor at startup")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: bad config at %s: %v\n", config.ConfigPath(), err)
		os.Exit(1)
	}

	var evaluator judge.Evaluator
	if cfg.MockMode() {
		log.Printf("[main] no evaluator endpoint configured, using mock evaluator")
		evaluator = judge.Mock{}
	} else {
		evaluator = judge.NewClient(cfg.Evaluator.Endpoint, cfg.Timeout())
	}

	tiers := reconcile.TierPolicy{High: cfg.Scoring.HighThreshold, Mid: cfg.Scoring.MidThreshold}
	if *legacyTiers {
		tiers = reconcile.LegacyTierPolicy()
	}

	sess := session.New(evaluator, tiers)

	if *docPath != "" {
		data, err := os.ReadFile(*docPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: read %s: %v\n", *docPath, err)
			os.Exit(1)
		}
		sess.ApplyFix(string(data))
	}

	p := tea.NewProgram(ui.New(sess, cfg.Export.Dir), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
