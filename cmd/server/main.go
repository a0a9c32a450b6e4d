// Game master API server.
//
// Modes:
//
//	server                       serve the HTTP API (default)
//	server review [n]            print the last n logged completions
//	server rate <id> <1-5> [notes]  grade a logged completion
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/MrPingoo/iut-jdr-api-2026/internal/debug"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/game/actors"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/game/narration"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/game/tables"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/llm"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/logging"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/observability"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/server"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded:", err)
	}

	cfg, err := server.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "serve":
		case "review", "--review":
			runReview(cfg)
			return
		case "rate":
			runRate(cfg)
			return
		default:
			fmt.Printf("unknown mode %q (expected serve, review, or rate)\n", os.Args[1])
			os.Exit(2)
		}
	}

	runServe(cfg)
}

func runServe(cfg server.Config) {
	if cfg.OpenAIAPIKey == "" {
		log.Fatal("OPENAI_API_KEY must be set")
	}
	if cfg.Model == "" {
		cfg.Model = llm.DefaultModel
	}

	ctx := context.Background()

	tp, err := observability.InitTracing(ctx, observability.LoadConfigFromEnv())
	if err != nil {
		log.Printf("tracing disabled: %v", err)
	} else {
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				log.Printf("tracer shutdown: %v", err)
			}
		}()
	}

	var tbl tables.Tables
	if cfg.TablesPath != "" {
		tbl, err = tables.LoadFile(cfg.TablesPath)
	} else {
		tbl, err = tables.Load()
	}
	if err != nil {
		log.Fatalf("load tables: %v", err)
	}

	audit, err := logging.NewCompletionLogger(cfg.CompletionsDB)
	if err != nil {
		log.Fatalf("open completion log: %v", err)
	}
	defer audit.Close()

	characters, err := store.NewCharacterStore(cfg.CharactersDB)
	if err != nil {
		log.Fatalf("open character store: %v", err)
	}
	defer characters.Close()

	dbg := debug.NewLogger(cfg.Debug, cfg.DebugLogPath)
	gateway := llm.NewService(cfg.OpenAIAPIKey, cfg.Model, dbg)
	srv := server.New(cfg, gateway, actors.NewGenerator(tbl), narration.NewBuilder(tbl), characters, audit)

	log.Printf("listening on %s (model %s)", cfg.Addr, cfg.Model)
	log.Fatal(http.ListenAndServe(cfg.Addr, srv.Handler()))
}

func runReview(cfg server.Config) {
	limit := 10
	if len(os.Args) > 2 {
		n, err := strconv.Atoi(os.Args[2])
		if err != nil || n < 1 {
			fmt.Printf("Invalid count: %s\n", os.Args[2])
			return
		}
		limit = n
	}

	logger, err := logging.NewCompletionLogger(cfg.CompletionsDB)
	if err != nil {
		fmt.Printf("Failed to open completion database: %v\n", err)
		return
	}
	defer logger.Close()

	completions, err := logger.GetRecentCompletions(limit)
	if err != nil {
		fmt.Printf("Failed to get completions: %v\n", err)
		return
	}

	if len(completions) == 0 {
		fmt.Println("No completions found. Run a session first to generate data!")
		return
	}

	fmt.Printf("Recent completions (%d):\n\n", len(completions))

	for _, comp := range completions {
		var metadata logging.CompletionMetadata
		if err := json.Unmarshal([]byte(comp.Metadata), &metadata); err == nil {
			fmt.Printf("[%d] %s | %s | %v\n",
				comp.ID,
				comp.Timestamp.Format("15:04:05"),
				comp.Kind,
				metadata.ResponseTime)
		} else {
			fmt.Printf("[%d] %s | %s\n", comp.ID, comp.Timestamp.Format("15:04:05"), comp.Kind)
		}

		fmt.Printf("Input: %s\n", comp.UserInput)
		fmt.Printf("Response: %s\n", comp.Response)
		if comp.Rating != nil {
			fmt.Printf("Rating: %d/5", *comp.Rating)
			if comp.Notes != nil {
				fmt.Printf(" - %s", *comp.Notes)
			}
		} else {
			fmt.Printf("Rating: not rated")
		}
		fmt.Println("\n" + strings.Repeat("-", 50))
	}

	fmt.Println("\nTo rate a completion: server rate <id> <rating> [notes]")
}

func runRate(cfg server.Config) {
	if len(os.Args) < 4 {
		fmt.Println("Usage: server rate <id> <rating> [notes]")
		return
	}

	id, err := strconv.Atoi(os.Args[2])
	if err != nil {
		fmt.Printf("Invalid ID: %v\n", err)
		return
	}

	rating, err := strconv.Atoi(os.Args[3])
	if err != nil {
		fmt.Printf("Invalid rating: %v\n", err)
		return
	}

	var notes string
	if len(os.Args) > 4 {
		notes = strings.Join(os.Args[4:], " ")
	}

	logger, err := logging.NewCompletionLogger(cfg.CompletionsDB)
	if err != nil {
		fmt.Printf("Failed to open completion database: %v\n", err)
		return
	}
	defer logger.Close()

	if err := logger.RateCompletion(id, rating, notes); err != nil {
		fmt.Printf("Failed to rate completion: %v\n", err)
		return
	}

	fmt.Printf("Rated completion %d as %d/5", id, rating)
	if notes != "" {
		fmt.Printf(" with notes: %s", notes)
	}
	fmt.Println()
}
