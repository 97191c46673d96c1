package langfuse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const promptFetchTimeout = 5 * time.Second

// PromptLoaderConfig describes where a prompt lives: a named Langfuse
// prompt, a local cache file, or both.
type PromptLoaderConfig struct {
	Config

	PromptName  string
	PromptLabel string
	SavePath    string
}

var errLangfuseDisabled = errors.New("langfuse integration disabled")

// LoadPrompt fetches the named prompt from Langfuse and caches it at
// SavePath. When Langfuse is unreachable or disabled the cached copy is
// returned instead.
func LoadPrompt(ctx context.Context, cfg PromptLoaderConfig, logger *zap.Logger) (string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.PromptName == "" {
		return readPromptFromFile(cfg.SavePath)
	}

	prompt, err := fetchPrompt(ctx, cfg)
	if err == nil {
		if err := savePromptToFile(cfg.SavePath, prompt); err != nil {
			logger.Warn("failed to cache prompt locally", zap.String("path", cfg.SavePath), zap.Error(err))
		}
		return prompt, nil
	}
	if !errors.Is(err, errLangfuseDisabled) {
		logger.Warn("prompt fetch failed", zap.String("prompt", cfg.PromptName), zap.Error(err))
	}

	return readPromptFromFile(cfg.SavePath)
}

func fetchPrompt(ctx context.Context, cfg PromptLoaderConfig) (string, error) {
	if !cfg.Enabled() {
		return "", errLangfuseDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, promptFetchTimeout)
	defer cancel()

	req := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetBasicAuth(cfg.PublicKey, cfg.SecretKey).
		R().
		SetContext(ctx).
		SetHeader("Accept", "application/json")
	if cfg.PromptLabel != "" {
		req.SetQueryParam("label", cfg.PromptLabel)
	}

	var body promptResponse
	resp, err := req.SetResult(&body).Get("/api/public/v2/prompts/" + url.PathEscape(cfg.PromptName))
	if err != nil {
		return "", fmt.Errorf("call prompt API: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("prompt API returned %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	return body.text()
}

type promptResponse struct {
	Type   string          `json:"type"`
	Prompt json.RawMessage `json:"prompt"`
}

func (p promptResponse) text() (string, error) {
	switch p.Type {
	case "", "text":
		var text string
		if err := json.Unmarshal(p.Prompt, &text); err != nil {
			return "", fmt.Errorf("parse text prompt: %w", err)
		}
		return text, nil
	case "chat":
		var messages []chatPromptMessage
		if err := json.Unmarshal(p.Prompt, &messages); err != nil {
			return "", fmt.Errorf("parse chat prompt: %w", err)
		}
		return flattenChatMessages(messages), nil
	default:
		return "", fmt.Errorf("unsupported prompt type %q", p.Type)
	}
}

type chatPromptMessage struct {
	Type    string `json:"type"`
	Role    string `json:"role"`
	Content string `json:"content"`
	Name    string `json:"name"`
}

// flattenChatMessages joins chat messages into "ROLE: content" blocks.
// Placeholders become {{name}}.
func flattenChatMessages(messages []chatPromptMessage) string {
	var b strings.Builder
	for _, msg := range messages {
		content := msg.Content
		if msg.Type == "placeholder" {
			content = ""
			if msg.Name != "" {
				content = "{{" + msg.Name + "}}"
			}
		}
		if content == "" {
			continue
		}

		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		role := msg.Role
		if role == "" {
			role = "message"
		}
		b.WriteString(strings.ToUpper(role))
		b.WriteString(": ")
		b.WriteString(content)
	}
	return b.String()
}

func readPromptFromFile(path string) (string, error) {
	if path == "" {
		return "", errors.New("no local prompt file configured")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read local prompt file: %w", err)
	}
	return string(data), nil
}

func savePromptToFile(path, prompt string) error {
	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(prompt), 0o600)
}
