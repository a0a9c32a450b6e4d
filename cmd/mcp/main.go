// MCP tool server: exposes companion generation, system prompt
// assembly, and event extraction to agent tooling over stdio.
package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrPingoo/iut-jdr-api-2026/internal/game/actors"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/game/narration"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/game/tables"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/mcp"
)

func main() {
	// stdout belongs to the protocol; everything else goes to stderr.
	_ = godotenv.Load()

	tbl, err := loadTables()
	if err != nil {
		log.Fatalf("load tables: %v", err)
	}

	if err := mcp.Serve(context.Background(), actors.NewGenerator(tbl), narration.NewBuilder(tbl)); err != nil {
		log.Fatal(err)
	}
}

func loadTables() (tables.Tables, error) {
	if path := os.Getenv("JDR_TABLES_PATH"); path != "" {
		return tables.LoadFile(path)
	}
	return tables.Load()
}
