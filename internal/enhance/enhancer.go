// Package enhance layers model-written narrative over the heuristic audit
// result. The model is asked for structured JSON and the response is validated
// against the result schema; on any failure the caller keeps the heuristic
// result, so enhancement can never make an audit fail.
package enhance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/leadai/readiness/internal/domain"
)

var (
	ErrNotConfigured = errors.New("enhance: no API credential configured")
	ErrEmptyResponse = errors.New("enhance: empty model response")
)

const (
	defaultModel   = openai.GPT4o
	maxTokens      = 3000
	temperature    = 0.7
	requestTimeout = 30 * time.Second
)

// ChatCompleter is the slice of the OpenAI client the enhancer uses.
// *openai.Client satisfies it.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Enhancer sends one chat-completion request per audit. A zero credential
// produces a disabled enhancer; callers must check Enabled before invoking.
type Enhancer struct {
	client ChatCompleter
	model  string
}

// New builds an Enhancer from the API key. An empty key yields a disabled
// enhancer rather than an error so the heuristic path stays available.
func New(apiKey, model string) *Enhancer {
	if apiKey == "" {
		return &Enhancer{}
	}
	if model == "" {
		model = defaultModel
	}
	return &Enhancer{client: openai.NewClient(apiKey), model: model}
}

// NewWithClient wires a custom ChatCompleter. Intended for tests.
func NewWithClient(client ChatCompleter, model string) *Enhancer {
	if model == "" {
		model = defaultModel
	}
	return &Enhancer{client: client, model: model}
}

func (e *Enhancer) Enabled() bool {
	return e != nil && e.client != nil
}

// Enhance asks the model for a consultant-grade assessment and merges the
// validated response with the heuristic result. Fails when the enhancer is
// disabled, the call errors, the response is empty, or the body is not the
// requested JSON shape.
func (e *Enhancer) Enhance(ctx context.Context, dom, email string, categories []domain.Category, heuristic *domain.AuditResult) (*domain.AuditResult, error) {
	if !e.Enabled() {
		return nil, ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You are a senior business consultant specializing in digital transformation " +
					"and AI readiness assessments. Provide detailed, actionable insights based on business analysis. " +
					"Respond with a single JSON object only.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(dom, email, categories, heuristic),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("enhance.Enhancer.Enhance: chat completion: %w", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return nil, ErrEmptyResponse
	}

	parsed, err := decodeResponse(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("enhance.Enhancer.Enhance: %w", err)
	}

	return merge(heuristic, parsed, categories), nil
}

func buildPrompt(dom, email string, categories []domain.Category, heuristic *domain.AuditResult) string {
	labels := make([]string, len(categories))
	for i, c := range categories {
		labels[i] = c.Label()
	}

	heuristicJSON, _ := json.Marshal(heuristic)

	var b strings.Builder
	b.WriteString("Analyze the business readiness for AI adoption and digital transformation.\n\n")
	fmt.Fprintf(&b, "Business Domain: %s\n", dom)
	fmt.Fprintf(&b, "Email: %s\n", email)
	fmt.Fprintf(&b, "Analysis Areas: %s\n\n", strings.Join(labels, ", "))
	fmt.Fprintf(&b, "Preliminary heuristic assessment (context):\n%s\n\n", heuristicJSON)
	b.WriteString("Respond with a JSON object with these keys:\n")
	b.WriteString(`  "overall_score": integer 0-100 based on AI readiness and digital maturity` + "\n")
	b.WriteString(`  "summary": executive summary, 2-3 sentences on overall readiness` + "\n")
	b.WriteString(`  "action_plan": 5-6 prioritized recommendations` + "\n")
	b.WriteString(`  "opportunities": 4-5 AI/digital opportunities` + "\n")
	b.WriteString(`  "risks": 3-4 key risks to address` + "\n")
	b.WriteString(`  "competitive_advantages": 3-4 ways AI can differentiate` + "\n\n")
	b.WriteString("Be specific and actionable.\n")

	return b.String()
}
