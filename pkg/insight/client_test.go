package insight

import (
	"context"
	"errors"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/preventive-care-server/internal/domain"
)

// fakeCompleter returns a canned response and records call counts.
type fakeCompleter struct {
	calls    int
	response string
	err      error
}

func (f *fakeCompleter) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.calls++
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.response}},
		},
	}, nil
}

func newTestClient(t *testing.T, api chatCompleter) *Client {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	cache, err := NewCache(16, time.Hour, "", logger)
	require.NoError(t, err)

	return &Client{
		api:         api,
		model:       "test-model",
		maxTokens:   1000,
		temperature: 0.1,
		breaker:     gobreaker.NewCircuitBreaker(gobreaker.Settings{Name: "test"}),
		limiter:     rate.NewLimiter(rate.Inf, 1),
		cache:       cache,
		log:         logger,
	}
}

func insightRecord() *domain.PatientRecord {
	return &domain.PatientRecord{
		PatientID:        "p-1",
		Age:              50,
		Gender:           domain.FEMALE,
		HeightCM:         165,
		WeightKG:         70,
		SystolicBP:       128,
		DiastolicBP:      82,
		HeartRate:        72,
		FastingGlucose:   95,
		HbA1c:            5.6,
		TotalCholesterol: 190,
		LDLCholesterol:   110,
		HDLCholesterol:   55,
	}
}

func insightResults() domain.RiskResultSet {
	results := domain.RiskResultSet{}
	for _, cond := range domain.AllConditions {
		results[cond] = &domain.RiskResult{
			RiskPercentage: 20.0,
			RiskLevel:      domain.LOW,
		}
	}
	return results
}

func TestClient_GenerateInsights(t *testing.T) {
	api := &fakeCompleter{response: "Clinical narrative."}
	client := newTestClient(t, api)
	defer client.Close()

	narrative, err := client.GenerateInsights(context.Background(), insightRecord(), insightResults())

	require.NoError(t, err)
	assert.Equal(t, "Clinical narrative.", narrative)
	assert.Equal(t, 1, api.calls)
}

func TestClient_GenerateInsights_Cached(t *testing.T) {
	api := &fakeCompleter{response: "Clinical narrative."}
	client := newTestClient(t, api)
	defer client.Close()

	ctx := context.Background()
	rec := insightRecord()
	results := insightResults()

	first, err := client.GenerateInsights(ctx, rec, results)
	require.NoError(t, err)

	second, err := client.GenerateInsights(ctx, rec, results)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, api.calls, "Identical input should be served from cache")
}

func TestClient_GenerateInsights_DifferentInputNotCached(t *testing.T) {
	api := &fakeCompleter{response: "Clinical narrative."}
	client := newTestClient(t, api)
	defer client.Close()

	ctx := context.Background()

	_, err := client.GenerateInsights(ctx, insightRecord(), insightResults())
	require.NoError(t, err)

	other := insightRecord()
	other.SystolicBP = 150
	_, err = client.GenerateInsights(ctx, other, insightResults())
	require.NoError(t, err)

	assert.Equal(t, 2, api.calls)
}

func TestClient_GenerateInsights_UpstreamError(t *testing.T) {
	api := &fakeCompleter{err: errors.New("upstream down")}
	client := newTestClient(t, api)
	defer client.Close()

	narrative, err := client.GenerateInsights(context.Background(), insightRecord(), insightResults())

	require.Error(t, err)
	assert.Empty(t, narrative)
	assert.Contains(t, err.Error(), "narrative generation failed")
}

func TestClient_GenerateConditionAdvice(t *testing.T) {
	api := &fakeCompleter{response: "Condition advice."}
	client := newTestClient(t, api)
	defer client.Close()

	advice, err := client.GenerateConditionAdvice(context.Background(), insightRecord(), domain.DIABETES)

	require.NoError(t, err)
	assert.Equal(t, "Condition advice.", advice)
}

func TestClient_GenerateConditionAdvice_UnknownCondition(t *testing.T) {
	api := &fakeCompleter{response: "unused"}
	client := newTestClient(t, api)
	defer client.Close()

	_, err := client.GenerateConditionAdvice(context.Background(), insightRecord(), domain.Condition("gout"))

	require.Error(t, err)
	assert.Zero(t, api.calls)
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	client, err := NewClient(domain.InsightConfig{}, logger)

	assert.Error(t, err)
	assert.Nil(t, client)
}
