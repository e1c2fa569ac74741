// Package insight generates clinical narrative text for completed
// assessments by calling an OpenAI-compatible chat completion API. The
// narrative is advisory prose layered on top of the computed scores; a
// failure here never changes a score or fails an assessment.
package insight

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/preventive-care-server/internal/domain"
)

// chatCompleter is the slice of the OpenAI client the generator needs.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client generates narratives with caching, rate limiting and a circuit
// breaker around the upstream API.
type Client struct {
	api         chatCompleter
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration

	breaker *gobreaker.CircuitBreaker
	limiter *rate.Limiter
	cache   *Cache
	log     *logrus.Logger
}

var _ domain.InsightGenerator = (*Client)(nil)

// NewClient creates a narrative generator from the insight configuration.
func NewClient(cfg domain.InsightConfig, logger *logrus.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("insight API key is required")
	}

	apiConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiConfig.BaseURL = cfg.BaseURL
	}

	cache, err := NewCache(cfg.CacheSize, cfg.CacheTTL, cfg.RedisURL, logger)
	if err != nil {
		return nil, err
	}

	rateLimit := cfg.RateLimit
	if rateLimit <= 0 {
		rateLimit = 10
	}

	settings := gobreaker.Settings{
		Name:        "InsightAPI",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"circuit_breaker": name,
				"from_state":      from,
				"to_state":        to,
			}).Warn("Circuit breaker state changed")
		},
	}

	return &Client{
		api:         openai.NewClientWithConfig(apiConfig),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: float32(cfg.Temperature),
		timeout:     cfg.Timeout,
		breaker:     gobreaker.NewCircuitBreaker(settings),
		limiter:     rate.NewLimiter(rate.Limit(float64(rateLimit)/60.0), rateLimit),
		cache:       cache,
		log:         logger,
	}, nil
}

// GenerateInsights produces the clinical narrative for a completed result
// set. Identical inputs are served from cache.
func (c *Client) GenerateInsights(ctx context.Context, rec *domain.PatientRecord, results domain.RiskResultSet) (string, error) {
	key := Key(rec, results)
	if narrative, ok := c.cache.Get(ctx, key); ok {
		c.log.WithField("cache_key", key[:16]).Debug("Narrative served from cache")
		return narrative, nil
	}

	narrative, err := c.complete(ctx, buildAnalysisPrompt(rec, results))
	if err != nil {
		return "", err
	}

	c.cache.Set(ctx, key, narrative)
	return narrative, nil
}

// GenerateConditionAdvice produces targeted prevention advice for a single
// condition. Not cached: callers use it interactively, not per assessment.
func (c *Client) GenerateConditionAdvice(ctx context.Context, rec *domain.PatientRecord, condition domain.Condition) (string, error) {
	if !condition.IsValid() {
		return "", fmt.Errorf("unknown condition %q", condition)
	}
	return c.complete(ctx, buildConditionPrompt(rec, condition))
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       c.model,
			MaxTokens:   c.maxTokens,
			Temperature: c.temperature,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		})
		if err != nil {
			return nil, err
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("empty completion response")
		}
		return resp.Choices[0].Message.Content, nil
	})
	if err != nil {
		return "", fmt.Errorf("narrative generation failed: %w", err)
	}

	return result.(string), nil
}

// Close releases cache resources.
func (c *Client) Close() error {
	return c.cache.Close()
}
