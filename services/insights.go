package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/budgetme/admin-api/models"
)

// ============================================================================
// AI INSIGHTS SERVICE - Generates spending insights from trend results via
// OpenRouter. Falls back to templated insights when no key is configured or
// the upstream call fails.
// ============================================================================

const (
	openRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultModel      = "openai/gpt-oss-20b:free"
)

type InsightsService struct {
	apiKey     string
	model      string
	maxTokens  int
	httpClient *http.Client
}

type chatRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Messages  []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

func NewInsightsService() *InsightsService {
	model := os.Getenv("OPENROUTER_MODEL")
	if model == "" {
		model = defaultModel
	}

	return &InsightsService{
		apiKey:     os.Getenv("OPENROUTER_API_KEY"),
		model:      model,
		maxTokens:  500,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// GenerateTrendInsight produces one insight about the user's trailing-window
// trends. Upstream failures never propagate: the templated fallback is used.
func (s *InsightsService) GenerateTrendInsight(ctx context.Context, trends models.TrendResult) models.AIInsight {
	if s.apiKey == "" {
		return fallbackTrendInsight(trends)
	}

	prompt := fmt.Sprintf(
		"You are a personal finance assistant. Given these month-over-baseline changes "+
			"(income %+.1f%%, expenses %+.1f%%, savings %+.1f%%), write a one-sentence title "+
			"and a two-sentence observation about the user's financial direction. "+
			"Respond as plain text: first line title, rest description.",
		trends.IncomeTrendPct, trends.ExpenseTrendPct, trends.SavingsTrendPct)

	text, err := s.callOpenRouter(ctx, prompt)
	if err != nil {
		log.Printf("⚠️ Insight generation failed, using fallback: %v", err)
		return fallbackTrendInsight(trends)
	}

	title, description := splitInsightText(text)
	return models.AIInsight{
		Title:       title,
		Description: description,
		Category:    "trend",
		Confidence:  0.8,
	}
}

func (s *InsightsService) callOpenRouter(ctx context.Context, prompt string) (string, error) {
	requestBody := chatRequest{
		Model:     s.model,
		MaxTokens: s.maxTokens,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", openRouterBaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	log.Printf("[OpenRouter] Model: %s | Tokens: In %d / Out %d",
		chatResp.Model, chatResp.Usage.PromptTokens, chatResp.Usage.CompletionTokens)

	return chatResp.Choices[0].Message.Content, nil
}

// fallbackTrendInsight is the templated insight used whenever the model is
// unavailable, keyed on the dominant direction of the savings trend.
func fallbackTrendInsight(trends models.TrendResult) models.AIInsight {
	switch {
	case trends.SavingsTrendPct > 0:
		return models.AIInsight{
			Title:       "Savings trending up",
			Description: fmt.Sprintf("Savings are up %.1f%% against the prior-month average. Keeping expenses flat would extend the streak.", trends.SavingsTrendPct),
			Category:    "trend",
			Confidence:  0.5,
		}
	case trends.SavingsTrendPct < 0:
		return models.AIInsight{
			Title:       "Savings trending down",
			Description: fmt.Sprintf("Savings fell %.1f%% against the prior-month average. Reviewing the largest expense categories is the quickest lever.", -trends.SavingsTrendPct),
			Category:    "trend",
			Confidence:  0.5,
		}
	default:
		return models.AIInsight{
			Title:       "Finances holding steady",
			Description: "Income, expenses and savings are all tracking their recent averages.",
			Category:    "trend",
			Confidence:  0.5,
		}
	}
}

func splitInsightText(text string) (title, description string) {
	title, description, _ = strings.Cut(strings.TrimSpace(text), "\n")
	return title, strings.TrimSpace(description)
}
