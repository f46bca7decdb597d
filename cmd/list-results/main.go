package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/mine/internal/repositories/results"
)

func main() {
	ctx := context.Background()

	limit := flag.Int("limit", 20, "how many results to show")
	winner := flag.String("winner", "", "only show results this team won")
	flag.Parse()

	// Set up Redis
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)
	defer client.Close()

	// Test connection
	if _, pingErr := client.Ping(ctx).Result(); pingErr != nil {
		log.Fatalf("Failed to connect to Redis: %v", pingErr)
	}

	repo := results.NewRedis(client)

	var records []*results.Record
	if *winner != "" {
		records, err = repo.ListByWinner(ctx, *winner)
		if err == nil && *limit > 0 && len(records) > *limit {
			records = records[:*limit]
		}
	} else {
		records, err = repo.List(ctx, *limit)
	}
	if err != nil {
		log.Fatalf("Failed to list results: %v", err)
	}

	fmt.Printf("Found %d results:\n", len(records))
	for _, r := range records {
		outcome := "draw"
		if !r.Draw() {
			outcome = strings.Join(r.Winners, "+")
		}
		fmt.Printf("  %s  %s  %-10s seed=%-6d events=%-5d %s\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"), r.ID, r.Scenario, r.Seed, r.Events, outcome)
	}
}
