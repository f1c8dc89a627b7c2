// Package assistant answers natural-language questions about the current
// workforce dataset via an LLM with injected summary context.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/retentionai/retention-cli/internal/config"
	"github.com/retentionai/retention-cli/internal/model"
	"github.com/retentionai/retention-cli/pkg/anthropic"
)

const unavailableMsg = "AI Service Unavailable."

const persona = "You are an expert HR Analytics Assistant named 'RetentionAI'. " +
	"Your goal is to help HR managers make data-driven retention decisions.\n" +
	"Keep answers professional, concise, and business-focused.\n"

// Message is one turn of the conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Assistant wraps the LLM collaborator. A nil client (no API key configured)
// degrades to a fixed unavailability sentence rather than an error.
type Assistant struct {
	client    anthropic.Client
	modelName string
	maxTokens int64
	temp      float64
}

// New creates an Assistant from configuration. Without an API key the
// assistant still works, answering every question with the unavailability
// sentinel.
func New(cfg config.AnthropicConfig) *Assistant {
	var client anthropic.Client
	if cfg.Key != "" {
		client = anthropic.NewClient(cfg.Key)
	}
	return NewWithClient(client, cfg.Model, cfg.MaxTokens, cfg.Temp)
}

// NewWithClient creates an Assistant over an explicit client. Used in tests.
func NewWithClient(client anthropic.Client, modelName string, maxTokens int64, temp float64) *Assistant {
	if maxTokens <= 0 {
		maxTokens = 500
	}
	return &Assistant{client: client, modelName: modelName, maxTokens: maxTokens, temp: temp}
}

// Chat sends the conversation to the LLM with the current workforce summary
// injected into the system prompt. It always returns a displayable string.
func (a *Assistant) Chat(ctx context.Context, messages []Message, summary *model.Summary) string {
	if a.client == nil {
		return unavailableMsg
	}

	req := anthropic.MessageRequest{
		Model:       a.modelName,
		MaxTokens:   a.maxTokens,
		System:      a.systemPrompt(summary),
		Messages:    toAnthropicMessages(messages),
		Temperature: &a.temp,
	}

	resp, err := a.client.CreateMessage(ctx, req)
	if err != nil {
		zap.L().Error("assistant: chat completion failed", zap.Error(err))
		return fmt.Sprintf("I apologize, but I'm having trouble connecting to the AI service right now. Error: %s", err.Error())
	}

	return resp.Text()
}

func (a *Assistant) systemPrompt(summary *model.Summary) string {
	var b strings.Builder
	b.WriteString(persona)

	if summary != nil {
		b.WriteString("\nCURRENT DATA CONTEXT:\n")
		fmt.Fprintf(&b, "- Total Employees: %d\n", summary.TotalEmployees)
		fmt.Fprintf(&b, "- High Risk: %d\n", summary.RiskBreakdown.High)
		fmt.Fprintf(&b, "- Critical Talent at Risk: %d\n", summary.CriticalTalent)
		if len(summary.Insights) > 0 {
			fmt.Fprintf(&b, "- Key Insights: %s\n", strings.Join(summary.Insights, "; "))
		}
	}

	return b.String()
}

func toAnthropicMessages(messages []Message) []anthropic.Message {
	out := make([]anthropic.Message, len(messages))
	for i, m := range messages {
		out[i] = anthropic.Message{Role: m.Role, Content: m.Content}
	}
	return out
}
