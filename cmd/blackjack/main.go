package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/cardhouse/blackjack/internal/config"
	"github.com/cardhouse/blackjack/internal/tui"
	"github.com/cardhouse/blackjack/pkg/blackjack"
	bankrollRepo "github.com/cardhouse/blackjack/pkg/repositories/bankroll"
	historyRepo "github.com/cardhouse/blackjack/pkg/repositories/history"
	bankrollSvc "github.com/cardhouse/blackjack/pkg/services/bankroll"
	tableSvc "github.com/cardhouse/blackjack/pkg/services/table"
)

type CLI struct {
	DB     string `help:"Path to the SQLite database (overrides DB_PATH)."`
	Memory bool   `help:"Keep the bankroll in memory for a throwaway session." short:"m"`
	Seed   int64  `help:"Shuffle seed, 0 means time-based." default:"0"`
	Player string `help:"Player ID (overrides PLAYER_ID)." short:"p"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", "error", err)
	}
	if cli.DB != "" {
		cfg.DBPath = cli.DB
	}
	if cli.Player != "" {
		cfg.PlayerID = cli.Player
	}

	// Log to a file so structured output does not fight the TUI frames.
	logFile, err := os.OpenFile(filepath.Join(cfg.DataDir, "blackjack.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Fatal("Failed to open log file", "error", err)
	}
	defer logFile.Close()

	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	if cfg.IsDevelopment() {
		logger.SetLevel(log.DebugLevel)
	}

	if err := run(cli, cfg, logger); err != nil {
		logger.Error("session ended with error", "error", err)
		fmt.Fprintln(os.Stderr, err)
		kctx.Exit(1)
	}
	kctx.Exit(0)
}

func run(cli CLI, cfg *config.Config, logger *log.Logger) error {
	var (
		bankrolls bankrollRepo.Repository
		rounds    historyRepo.Repository
		err       error
	)

	if cli.Memory {
		bankrolls = bankrollRepo.NewMemoryRepository()
		rounds = historyRepo.NewMemoryRepository()
	} else {
		bankrolls, err = bankrollRepo.NewSQLiteRepository(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening bankroll store: %w", err)
		}
		rounds, err = historyRepo.NewSQLiteRepository(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening round store: %w", err)
		}
	}
	defer bankrolls.Close()
	defer rounds.Close()

	seed := cli.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	rules := blackjack.Rules{
		HitSoft17:        cfg.HitSoft17,
		DoubleAfterSplit: cfg.DoubleAfterSplit,
		ResplitAces:      cfg.ResplitAces,
		SplitAceOneCard:  cfg.SplitAceOneCard,
		LateSurrender:    cfg.LateSurrender,
		MaxHands:         cfg.MaxHands,
		PayoutNum:        3,
		PayoutDen:        2,
	}
	limits := blackjack.Limits{
		MinBet: cfg.MinBet,
		MaxBet: cfg.MaxBet,
		Step:   cfg.BetStep,
	}

	engine, err := blackjack.NewGame(rules, limits, rng)
	if err != nil {
		return fmt.Errorf("building engine: %w", err)
	}

	bankrollService := bankrollSvc.NewService(bankrolls, cfg.StartingBalance, logger)
	tableService := tableSvc.NewService(engine, bankrollService, rounds, cfg.PlayerID, logger)

	logger.Info("table open", "player", cfg.PlayerID, "seed", seed,
		"min", limits.MinBet, "max", limits.MaxBet, "step", limits.Step)

	program := tea.NewProgram(tui.New(tableService, logger))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}
