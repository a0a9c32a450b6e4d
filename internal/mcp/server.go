// Package mcp exposes the game core to agent tooling over the Model
// Context Protocol: companion generation, system prompt assembly, and
// event extraction as typed tools.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/MrPingoo/iut-jdr-api-2026/internal/game/actors"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/game/narration"
)

const (
	serverName    = "jdr-api"
	serverVersion = "v1.0.0"
)

func NewToolServer(generator *actors.Generator, builder *narration.Builder) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, nil)

	mcp.AddTool(server, GenerateNPCsTool(), GenerateNPCsHandler(generator))
	mcp.AddTool(server, BuildSystemPromptTool(), BuildSystemPromptHandler(builder))
	mcp.AddTool(server, ExtractEventsTool(), ExtractEventsHandler())

	return server
}

// Serve runs the tool server over stdio until the context ends.
func Serve(ctx context.Context, generator *actors.Generator, builder *narration.Builder) error {
	return NewToolServer(generator, builder).Run(ctx, &mcp.StdioTransport{})
}
