package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/MrPingoo/iut-jdr-api-2026/internal/game"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/game/actors"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/game/events"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/game/narration"
)

type GenerateNPCsInput struct {
	Character game.Character `json:"character" jsonschema:"the player character the companions accompany"`
	Count     int            `json:"count" jsonschema:"how many companions to generate"`
}

type GenerateNPCsOutput struct {
	NPCs []game.NPC `json:"npcs" jsonschema:"generated companions"`
}

type BuildSystemPromptInput struct {
	Character   game.Character `json:"character" jsonschema:"the player character"`
	PlayerCount int            `json:"playerCount" jsonschema:"players at the table"`
	Setting     string         `json:"setting" jsonschema:"campaign setting description"`
	NPCs        []game.NPC     `json:"npcs,omitempty" jsonschema:"companions travelling with the party"`
}

type BuildSystemPromptOutput struct {
	SystemPrompt string `json:"systemPrompt" jsonschema:"assembled game master instructions"`
}

type ExtractEventsInput struct {
	Text string `json:"text" jsonschema:"narrative text that may contain state-change lines"`
}

type ExtractEventsOutput struct {
	Events    []events.Event `json:"events" jsonschema:"parsed state changes in source order"`
	Narrative string         `json:"narrative" jsonschema:"the text with well-formed state-change lines removed"`
}

func GenerateNPCsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "generate_npcs",
		Description: "Generates companion NPCs with unique names and race/class pairs",
	}
}

func GenerateNPCsHandler(generator *actors.Generator) mcp.ToolHandlerFor[GenerateNPCsInput, GenerateNPCsOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GenerateNPCsInput) (*mcp.CallToolResult, GenerateNPCsOutput, error) {
		npcs, err := generator.Generate(input.Character, input.Count)
		if err != nil {
			return nil, GenerateNPCsOutput{}, err
		}
		return nil, GenerateNPCsOutput{NPCs: npcs}, nil
	}
}

func BuildSystemPromptTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "build_system_prompt",
		Description: "Assembles the game master system prompt for a session",
	}
}

func BuildSystemPromptHandler(builder *narration.Builder) mcp.ToolHandlerFor[BuildSystemPromptInput, BuildSystemPromptOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input BuildSystemPromptInput) (*mcp.CallToolResult, BuildSystemPromptOutput, error) {
		prompt := builder.BuildSystemPrompt(input.Character, input.PlayerCount, input.Setting, input.NPCs)
		return nil, BuildSystemPromptOutput{SystemPrompt: prompt}, nil
	}
}

func ExtractEventsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "extract_events",
		Description: "Parses HP and XP state-change lines out of narrative text",
	}
}

func ExtractEventsHandler() mcp.ToolHandlerFor[ExtractEventsInput, ExtractEventsOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ExtractEventsInput) (*mcp.CallToolResult, ExtractEventsOutput, error) {
		extracted := events.Extract(input.Text)
		if extracted == nil {
			extracted = []events.Event{}
		}
		return nil, ExtractEventsOutput{
			Events:    extracted,
			Narrative: events.Scrub(input.Text),
		}, nil
	}
}
