package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/smartfund/smartfund/internal/models"
)

// MaxRecommendations caps how many funds a screening call asks for.
const MaxRecommendations = 5

var screenSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"code":         {Type: genai.TypeString},
			"name":         {Type: genai.TypeString},
			"type":         {Type: genai.TypeString},
			"returnRate1Y": {Type: genai.TypeString},
			"risk":         {Type: genai.TypeString},
			"reason":       {Type: genai.TypeString},
		},
	},
}

// ScreenFunds returns up to MaxRecommendations candidate funds matching
// the criteria, with rationale text.
func (c *Client) ScreenFunds(ctx context.Context, criteria models.ScreenCriteria) ([]models.FundRecommendation, error) {
	prompt := fmt.Sprintf(`Recommend %d Chinese mutual funds that match these criteria:
- Type: %s
- Risk Level: %s
- Fund Manager/Company: %s
- Minimum 1-Year Return: %s

Use Google Search to find real, currently active funds.
Return a JSON array.`,
		MaxRecommendations,
		orAny(criteria.Type),
		orAny(criteria.Risk),
		orAny(criteria.Company),
		orAny(criteria.MinReturn),
	)

	text, err := c.generateJSON(ctx, prompt, screenSchema)
	if err != nil {
		return nil, err
	}

	recs, err := parseRecommendations(text)
	if err != nil {
		return nil, err
	}
	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs, nil
}

func orAny(s string) string {
	if s == "" {
		return "Any"
	}
	return s
}
