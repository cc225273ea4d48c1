// Package mlclient provides a minimal HTTP client for the clinic's
// prediction microservice. Every call is best-effort: callers are
// expected to degrade gracefully when the service is unreachable.
package mlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cliniquehq/clinique_backend/config"
)

var (
	ErrUnavailable        = errors.New("mlclient: prediction service unavailable")
	ErrUnexpectedResponse = errors.New("mlclient: unexpected response from prediction service")
)

// Predictor is the interface services depend on.
type Predictor interface {
	CancellationRisk(ctx context.Context, in RiskFeatures) (float64, error)
	RecommendTiming(ctx context.Context, lastProgressScore int) (int, error)
	AnalyzeSentiment(ctx context.Context, text string) (*Sentiment, error)
	ChurnRisk(ctx context.Context, in ChurnFeatures) (*Churn, error)
}

// RiskFeatures describe a newly booked session.
type RiskFeatures struct {
	LeadTimeDays int `json:"lead_time_days"`
	DayOfWeek    int `json:"day_of_week"`
	HourOfDay    int `json:"hour_of_day"`
}

// Sentiment is the analysis of a clinical note's free text.
type Sentiment struct {
	Polarity       float64 `json:"polarity"`
	Subjectivity   float64 `json:"subjectivity"`
	SentimentLabel string  `json:"sentiment_label"`
}

// ChurnFeatures summarize a patient's visit history.
type ChurnFeatures struct {
	DaysSinceLastVisit int     `json:"days_since_last_visit"`
	TotalVisits        int     `json:"total_visits"`
	CancellationRate   float64 `json:"cancellation_rate"`
}

// Churn is the dropout prediction for a patient.
type Churn struct {
	IsChurnRisk      bool    `json:"is_churn_risk"`
	ChurnProbability float64 `json:"churn_probability"`
}

// Client is a lightweight HTTP client for the prediction service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client from config.
func New(cfg config.MLConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// CancellationRisk returns the predicted probability (0..1) that the
// session will be cancelled.
func (c *Client) CancellationRisk(ctx context.Context, in RiskFeatures) (float64, error) {
	var resp struct {
		CancellationRiskScore float64 `json:"cancellation_risk_score"`
	}

	if err := c.post(ctx, "/predict", in, &resp); err != nil {
		return 0, err
	}

	return resp.CancellationRiskScore, nil
}

// RecommendTiming returns the recommended number of days until the next
// session given the patient's last progress score.
func (c *Client) RecommendTiming(ctx context.Context, lastProgressScore int) (int, error) {
	reqBody := map[string]any{
		"last_progress_score": lastProgressScore,
	}

	var resp struct {
		RecommendedDaysNextSession int `json:"recommended_days_next_session"`
	}

	if err := c.post(ctx, "/predict-timing", reqBody, &resp); err != nil {
		return 0, err
	}

	return resp.RecommendedDaysNextSession, nil
}

// AnalyzeSentiment scores the free text of a clinical note.
func (c *Client) AnalyzeSentiment(ctx context.Context, text string) (*Sentiment, error) {
	reqBody := map[string]any{
		"text": text,
	}

	var resp Sentiment
	if err := c.post(ctx, "/predict-sentiment", reqBody, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// ChurnRisk predicts whether a patient is likely to drop out of care.
func (c *Client) ChurnRisk(ctx context.Context, in ChurnFeatures) (*Churn, error) {
	var resp Churn
	if err := c.post(ctx, "/predict-churn", in, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// post sends a JSON POST request to baseURL+path and decodes the JSON
// response into out. Transport failures map to ErrUnavailable.
func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("%w (status=%d)", ErrUnexpectedResponse, res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrUnexpectedResponse, err)
	}
	return nil
}
