// Checks the Langfuse integration: fetches the weekly report prompt, then
// sends a test trace and score.
// Usage: go run scripts/langfuse-check/main.go [--prompt-only]
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/blaisecz/sleep-journal/internal/config"
	"github.com/blaisecz/sleep-journal/internal/langfuse"
	"github.com/blaisecz/sleep-journal/internal/telemetry"
	"github.com/spf13/pflag"
)

func main() {
	promptOnly := pflag.Bool("prompt-only", false, "only fetch the prompt, skip the test trace")
	pflag.Parse()

	cfg := config.Load()
	logger, err := telemetry.NewLogger("debug", "console", "sleep-journal-langfuse-check")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	lf := cfg.Langfuse()
	fmt.Println("=== Langfuse Connection Check ===")
	fmt.Printf("Base URL:    %s\n", lf.BaseURL)
	fmt.Printf("Public Key:  %s\n", maskKey(lf.PublicKey))
	fmt.Printf("Secret Key:  %s\n", maskKey(lf.SecretKey))
	fmt.Printf("Environment: %s\n", lf.Environment)
	fmt.Println()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	prompt, err := langfuse.LoadPrompt(ctx, cfg.PromptLoader(), logger)
	if err != nil {
		log.Fatalf("Failed to load prompt %q: %v", cfg.LangfusePromptName, err)
	}
	fmt.Printf("✓ Prompt %q loaded (%d chars), cached at %s\n", cfg.LangfusePromptName, len(prompt), cfg.PromptCachePath)

	if *promptOnly {
		return
	}

	client := langfuse.NewClient(lf, logger)
	if !client.IsEnabled() {
		log.Fatal("Langfuse client is disabled. Check your env vars.")
	}

	traceID, err := client.CreateTrace(ctx, langfuse.TraceInput{
		UserID: "langfuse-check",
		Name:   "langfuse-check",
		Input: map[string]any{
			"message": "Hello from langfuse-check script",
			"time":    time.Now().Format(time.RFC3339),
		},
		Output: map[string]any{"status": "success"},
		Tags:   []string{"test", "manual"},
	})
	if err != nil {
		log.Fatalf("Failed to create trace: %v", err)
	}

	if err := client.CreateScore(ctx, langfuse.ScoreInput{
		TraceID: traceID,
		Name:    "user_rating",
		Value:   5,
		Comment: "langfuse-check",
	}); err != nil {
		log.Fatalf("Failed to create score: %v", err)
	}

	flushCtx, flushCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer flushCancel()
	if err := client.Flush(flushCtx); err != nil {
		log.Fatalf("Failed to deliver events: %v", err)
	}

	fmt.Println("✓ Test trace and score created")
	fmt.Printf("  Trace ID: %s\n", traceID)
	fmt.Printf("  View at:  %s/trace/%s\n", lf.BaseURL, traceID)
}

func maskKey(key string) string {
	if len(key) < 8 {
		if key == "" {
			return "(empty)"
		}
		return "***"
	}
	return key[:8] + "..."
}
