package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KirkDiggler/mine/internal/config"
	"github.com/KirkDiggler/mine/internal/console"
	"github.com/KirkDiggler/mine/internal/definitions"
	"github.com/KirkDiggler/mine/internal/logging"
	"github.com/KirkDiggler/mine/internal/repositories/results"
	"github.com/KirkDiggler/mine/internal/services"
	combatsvc "github.com/KirkDiggler/mine/internal/services/combat"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	flag.StringVar(&cfg.Definitions, "definitions", cfg.Definitions, "definitions YAML file (default: built-in set)")
	flag.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "scenario to play")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed; batch run i uses seed+i")
	flag.IntVar(&cfg.Runs, "n", cfg.Runs, "number of combats; more than one prints a summary")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "combats run at once in a batch")
	interactive := flag.Bool("interactive", false, "let the scenario's human units be controlled from stdin")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	catalog, err := loadCatalog(cfg.Definitions)
	if err != nil {
		logger.Fatal("Failed to load definitions", zap.Error(err))
	}

	repo, closeRepo := openRepository(cfg.Redis, logger)
	defer closeRepo()

	provider, err := services.NewProvider(&services.ProviderConfig{
		Catalog:          catalog,
		ResultRepository: repo,
		Logger:           logger,
	})
	if err != nil {
		logger.Fatal("Failed to create services", zap.Error(err))
	}
	svc := provider.CombatService

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Runs > 1 {
		if *interactive {
			logger.Warn("Ignoring -interactive for a batch run")
		}
		if err := runBatch(ctx, svc, cfg); err != nil {
			logger.Fatal("Batch failed", zap.Error(err))
		}
		return
	}

	if err := runOne(ctx, svc, cfg, *interactive); err != nil {
		logger.Fatal("Combat failed", zap.Error(err))
	}
}

func loadCatalog(path string) (*definitions.Catalog, error) {
	if path == "" {
		return definitions.Default()
	}
	return definitions.Load(path)
}

// openRepository uses Redis when it is configured and reachable, otherwise
// results live only as long as the process
func openRepository(cfg config.RedisConfig, logger *zap.Logger) (results.Repository, func()) {
	noop := func() {}
	if cfg.URL == "" {
		logger.Debug("No REDIS_URL found, keeping results in memory")
		return results.NewInMemoryRepository(), noop
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		logger.Warn("Failed to parse Redis URL, keeping results in memory", zap.Error(err))
		return results.NewInMemoryRepository(), noop
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		logger.Warn("Failed to connect to Redis, keeping results in memory", zap.Error(err))
		return results.NewInMemoryRepository(), noop
	}

	logger.Info("Using Redis for results", zap.String("addr", opts.Addr))
	return results.NewRedis(client), func() { _ = client.Close() }
}

func runOne(ctx context.Context, svc combatsvc.Service, cfg *config.Config, interactive bool) error {
	input := &combatsvc.SimulateInput{
		Scenario:    cfg.Scenario,
		Seed:        cfg.Seed,
		Interactive: interactive,
		Renderer:    console.NewRenderer(os.Stdout),
	}
	if interactive {
		input.Selector = console.NewPrompter(os.Stdin, os.Stdout)
	}

	record, err := svc.Simulate(ctx, input)
	if err != nil {
		return err
	}

	for _, line := range record.Log {
		fmt.Println(line)
	}
	fmt.Println()
	if record.Draw() {
		fmt.Printf("Draw after %d events.\n", record.Events)
	} else {
		fmt.Printf("Winners: %s after %d events.\n", strings.Join(record.Winners, ", "), record.Events)
	}
	fmt.Printf("Result %s\n", record.ID)
	return nil
}

func runBatch(ctx context.Context, svc combatsvc.Service, cfg *config.Config) error {
	summary, err := svc.SimulateBatch(ctx, &combatsvc.BatchInput{
		Scenario: cfg.Scenario,
		Seed:     cfg.Seed,
		Runs:     cfg.Runs,
		Workers:  cfg.Workers,
		Store:    true,
	})
	if err != nil {
		return err
	}

	teams := make([]string, 0, len(summary.Wins))
	for team := range summary.Wins {
		teams = append(teams, team)
	}
	sort.Strings(teams)

	fmt.Printf("%s: %d combats, %d events\n", summary.Scenario, summary.Runs, summary.Events)
	for _, team := range teams {
		wins := summary.Wins[team]
		fmt.Printf("  %-12s %5d wins (%.1f%%)\n", team, wins, 100*float64(wins)/float64(summary.Runs))
	}
	fmt.Printf("  %-12s %5d\n", "draws", summary.Draws)
	return nil
}
