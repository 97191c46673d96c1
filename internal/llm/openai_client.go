// Package llm produces the weekly coaching report with the OpenAI API.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/blaisecz/sleep-journal/internal/domain"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var (
	// ErrOpenAIUnavailable indicates the OpenAI service is not configured or unavailable.
	ErrOpenAIUnavailable = errors.New("OpenAI service unavailable")
	// ErrOpenAIRequest indicates an error during the OpenAI API request.
	ErrOpenAIRequest = errors.New("OpenAI request failed")
	// ErrOpenAIResponse indicates an error parsing the OpenAI response.
	ErrOpenAIResponse = errors.New("failed to parse OpenAI response")
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini"

// DefaultSystemPrompt is used when no prompt could be loaded.
const DefaultSystemPrompt = `You are a friendly, non-medical sleep coach inside a sleep journal app.

You receive one week of a single user's sleep: a period summary (average score out of 100,
average duration, typical bedtime and wake time, bedtime spread, time spent per sleep stage)
and the individual nights. Base every statement only on this data.

Rules:
- Do NOT give medical advice or diagnoses, and do not mention disorders or treatment.
- Talk about routines: bedtime regularity, wind-down habits, getting closer to the sleep goal.
- If there are only one or two nights, say the picture is still incomplete.
- Be warm, concise and concrete.

Respond as strict JSON with exactly this shape:

{
  "summary": "2-3 sentences about the week compared with the user's sleep goal.",
  "observations": ["2-5 short observations about duration, score, timing and stages"],
  "guidance": ["2-4 concrete habits to try next week"]
}

No extra fields. No comments. No backticks.`

const userPromptTemplate = `Here is this user's past week as JSON. "summary" aggregates the week,
"nights" lists each night in the user's local time, "sleep_goal" is their nightly target.

JSON:

%s

Respond in the required JSON format.`

// WeeklyCoach generates a weekly sleep report from a week of data.
type WeeklyCoach interface {
	GenerateWeeklyReport(ctx context.Context, weekly *domain.WeeklyReportContext) (*domain.LLMWeeklyReport, error)
}

// OpenAIClient implements WeeklyCoach using the OpenAI chat completions API.
type OpenAIClient struct {
	client       openai.Client
	model        string
	systemPrompt string
}

// NewOpenAIClient creates a client for generating weekly reports. It
// returns nil when apiKey is empty; a nil client reports
// ErrOpenAIUnavailable.
func NewOpenAIClient(apiKey, model, systemPrompt string, opts ...option.RequestOption) *OpenAIClient {
	if apiKey == "" {
		return nil
	}
	if model == "" {
		model = DefaultModel
	}
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = DefaultSystemPrompt
	}

	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)

	return &OpenAIClient{
		client:       openai.NewClient(opts...),
		model:        model,
		systemPrompt: systemPrompt,
	}
}

func (c *OpenAIClient) GenerateWeeklyReport(ctx context.Context, weekly *domain.WeeklyReportContext) (*domain.LLMWeeklyReport, error) {
	if c == nil {
		return nil, ErrOpenAIUnavailable
	}

	contextJSON, err := json.MarshalIndent(weekly, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to serialize context: %v", ErrOpenAIRequest, err)
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.systemPrompt),
			openai.UserMessage(fmt.Sprintf(userPromptTemplate, string(contextJSON))),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIRequest, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", ErrOpenAIResponse)
	}

	return parseWeeklyReport(resp.Choices[0].Message.Content)
}

// parseWeeklyReport decodes the model output, tolerating a markdown code
// fence around the JSON.
func parseWeeklyReport(content string) (*domain.LLMWeeklyReport, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var report domain.LLMWeeklyReport
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &report); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIResponse, err)
	}
	if strings.TrimSpace(report.Summary) == "" {
		return nil, fmt.Errorf("%w: empty summary", ErrOpenAIResponse)
	}
	return &report, nil
}
