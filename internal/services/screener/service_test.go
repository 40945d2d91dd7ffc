package screener

import (
	"context"
	"errors"
	"testing"

	"github.com/smartfund/smartfund/internal/common"
	"github.com/smartfund/smartfund/internal/models"
)

type mockGeminiClient struct {
	recs     []models.FundRecommendation
	err      error
	criteria []models.ScreenCriteria
}

func (m *mockGeminiClient) SearchFund(_ context.Context, _ string) (*models.FundLookupResult, error) {
	return nil, nil
}

func (m *mockGeminiClient) RefreshNAVs(_ context.Context, _ []models.Holding) ([]models.NavQuote, error) {
	return nil, nil
}

func (m *mockGeminiClient) ScreenFunds(_ context.Context, criteria models.ScreenCriteria) ([]models.FundRecommendation, error) {
	m.criteria = append(m.criteria, criteria)
	return m.recs, m.err
}

func (m *mockGeminiClient) Advise(_ context.Context, _ []models.ChatMessage, _ string, _ []models.HoldingSnapshot) (*models.AdvisorReply, error) {
	return nil, nil
}

func TestScreen(t *testing.T) {
	gemini := &mockGeminiClient{
		recs: []models.FundRecommendation{
			{Code: "001234", Name: "Alpha Equity", Type: "股票型", Risk: "高", Reason: "sector tailwind"},
		},
	}
	svc := NewService(gemini, common.NewSilentLogger())

	criteria := models.ScreenCriteria{Type: "股票型", Risk: "高"}
	recs := svc.Screen(context.Background(), criteria)

	if len(recs) != 1 || recs[0].Code != "001234" {
		t.Fatalf("recs = %+v", recs)
	}
	if len(gemini.criteria) != 1 || gemini.criteria[0] != criteria {
		t.Errorf("criteria passed to gateway = %+v", gemini.criteria)
	}
}

func TestScreen_GatewayFailureIsEmptyResult(t *testing.T) {
	gemini := &mockGeminiClient{err: errors.New("gateway unreachable")}
	svc := NewService(gemini, common.NewSilentLogger())

	recs := svc.Screen(context.Background(), models.ScreenCriteria{})

	if recs == nil {
		t.Fatal("recs is nil, want empty slice")
	}
	if len(recs) != 0 {
		t.Fatalf("recs = %+v, want empty", recs)
	}
}

func TestScreen_NilClientIsEmptyResult(t *testing.T) {
	svc := NewService(nil, common.NewSilentLogger())

	recs := svc.Screen(context.Background(), models.ScreenCriteria{})

	if recs == nil || len(recs) != 0 {
		t.Fatalf("recs = %v, want empty slice", recs)
	}
}

func TestScreen_NilResultNormalized(t *testing.T) {
	svc := NewService(&mockGeminiClient{recs: nil}, common.NewSilentLogger())

	recs := svc.Screen(context.Background(), models.ScreenCriteria{})

	if recs == nil {
		t.Fatal("recs is nil, want empty slice")
	}
}
