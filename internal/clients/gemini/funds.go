package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/smartfund/smartfund/internal/models"
)

// lookupSchema constrains a fund lookup response to one flat object.
var lookupSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"code": {Type: genai.TypeString},
		"name": {Type: genai.TypeString},
		"nav":  {Type: genai.TypeNumber},
		"date": {Type: genai.TypeString},
	},
}

// quoteSchema constrains a batch refresh response to an array of
// code/nav pairs.
var quoteSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"code": {Type: genai.TypeString},
			"nav":  {Type: genai.TypeNumber},
		},
	},
}

// SearchFund finds the best-match fund identity and latest NAV for a
// free-text code-or-name query. A malformed or incomplete response yields
// nil without error; only transport failures return an error.
func (c *Client) SearchFund(ctx context.Context, query string) (*models.FundLookupResult, error) {
	prompt := fmt.Sprintf(`Find the latest Net Asset Value (NAV/单位净值) for the Chinese mutual fund: %q.
If the user provided a code, verify the name. If the user provided a name, find the code.
Return the data in JSON format with keys: code, name, nav (number), and date (YYYY-MM-DD).`, query)

	text, err := c.generateJSON(ctx, prompt, lookupSchema)
	if err != nil {
		return nil, err
	}

	result := parseLookupResult(text)
	if result == nil {
		c.logger.Warn().Str("query", query).Msg("Fund lookup returned no usable result")
	}
	return result, nil
}

// RefreshNAVs resolves the latest NAV for each holding by fund code.
// An empty holdings list returns an empty result with no network call.
func (c *Client) RefreshNAVs(ctx context.Context, holdings []models.Holding) ([]models.NavQuote, error) {
	if len(holdings) == 0 {
		return []models.NavQuote{}, nil
	}

	labels := make([]string, len(holdings))
	for i, h := range holdings {
		labels[i] = fmt.Sprintf("%s (%s)", h.Code, h.Name)
	}

	prompt := fmt.Sprintf(`Find the latest Net Asset Value (单位净值) for these Chinese funds: %s.
Return a JSON array where each object contains: "code" (string) and "nav" (number).
Ensure the nav is the most recent available from the search results.`, strings.Join(labels, ", "))

	text, err := c.generateJSON(ctx, prompt, quoteSchema)
	if err != nil {
		return nil, err
	}

	quotes, err := parseNavQuotes(text)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().Int("holdings", len(holdings)).Int("quotes", len(quotes)).Msg("NAV refresh complete")
	return quotes, nil
}
