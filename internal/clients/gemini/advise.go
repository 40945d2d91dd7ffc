package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/smartfund/smartfund/internal/models"
)

const advisorSystemInstruction = `You are a professional financial advisor specializing in the Chinese mutual fund market.
Current Portfolio Context: %s

1. If the user asks about specific funds in their portfolio, analyze the performance based on Cost vs Current NAV.
2. If the user asks for recommendations, use Google Search to find trending or high-performing funds relevant to their request.
3. Always explain risks.
4. Format money values in CNY.
5. Use emojis to make the conversation engaging.
6. Keep responses concise but informative.`

// Advise answers a user message given the full prior conversation and a
// read-only snapshot of current holdings. The conversation is supplied in
// full on every call; no server-side session is kept.
func (c *Client) Advise(ctx context.Context, history []models.ChatMessage, message string, snapshot []models.HoldingSnapshot) (*models.AdvisorReply, error) {
	if snapshot == nil {
		snapshot = []models.HoldingSnapshot{}
	}
	portfolioContext, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode portfolio snapshot: %w", err)
	}

	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: fmt.Sprintf(advisorSystemInstruction, portfolioContext)}},
		},
	}

	priorTurns := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		priorTurns = append(priorTurns, &genai.Content{
			Role:  string(m.Role),
			Parts: []*genai.Part{{Text: m.Text}},
		})
	}

	chat, err := c.client.Chats.Create(ctx, c.model, config, priorTurns)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}

	result, err := chat.Send(ctx, &genai.Part{Text: message})
	if err != nil {
		return nil, fmt.Errorf("failed to send chat message: %w", err)
	}

	text, err := extractTextFromResponse(result)
	if err != nil {
		return nil, err
	}

	return &models.AdvisorReply{
		Text:    text,
		Sources: extractSources(result),
	}, nil
}
