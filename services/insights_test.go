package services

import (
	"context"
	"strings"
	"testing"

	"github.com/budgetme/admin-api/models"
)

func TestGenerateTrendInsightFallsBackWithoutKey(t *testing.T) {
	svc := &InsightsService{apiKey: ""}

	insight := svc.GenerateTrendInsight(context.Background(), models.TrendResult{
		IncomeTrendPct:  5,
		ExpenseTrendPct: -2,
		SavingsTrendPct: 12.5,
	})

	if insight.Title != "Savings trending up" {
		t.Errorf("Title = %q", insight.Title)
	}
	if !strings.Contains(insight.Description, "12.5%") {
		t.Errorf("Description = %q, want the savings percentage", insight.Description)
	}
	if insight.Category != "trend" {
		t.Errorf("Category = %q", insight.Category)
	}
}

func TestFallbackTrendInsightDirections(t *testing.T) {
	down := fallbackTrendInsight(models.TrendResult{SavingsTrendPct: -7.3})
	if down.Title != "Savings trending down" {
		t.Errorf("down Title = %q", down.Title)
	}
	if !strings.Contains(down.Description, "7.3%") {
		t.Errorf("down Description = %q, want positive magnitude", down.Description)
	}

	flat := fallbackTrendInsight(models.TrendResult{})
	if flat.Title != "Finances holding steady" {
		t.Errorf("flat Title = %q", flat.Title)
	}
}

func TestSplitInsightText(t *testing.T) {
	title, description := splitInsightText("A clear title\nFirst sentence. Second sentence.\n")
	if title != "A clear title" {
		t.Errorf("title = %q", title)
	}
	if description != "First sentence. Second sentence." {
		t.Errorf("description = %q", description)
	}

	title, description = splitInsightText("only a title")
	if title != "only a title" || description != "" {
		t.Errorf("single line = (%q, %q)", title, description)
	}
}
