package prediction

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"homesight/server/config"

	"github.com/sirupsen/logrus"
)

// Model is the opaque scoring function: it declares the input columns it
// expects and scores a single row.
type Model interface {
	InputColumns() []string
	Score(row map[string]interface{}) (float64, error)
}

// HTTPModel scores rows against a remote model service. The column
// contract comes from the schema file loaded at startup, not from the
// service, so a request can be validated without a network round trip.
type HTTPModel struct {
	baseURL string
	columns []string
	client  *http.Client
	logger  *logrus.Logger
}

func NewHTTPModel(baseURL string, schema *config.ModelSchema, logger *logrus.Logger) *HTTPModel {
	return &HTTPModel{
		baseURL: baseURL,
		columns: schema.ColumnNames(),
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

func (m *HTTPModel) InputColumns() []string {
	return m.columns
}

type scoreRequest struct {
	Row map[string]interface{} `json:"row"`
}

type scoreResponse struct {
	Prediction *float64 `json:"prediction"`
	Error      string   `json:"error"`
}

func (m *HTTPModel) Score(row map[string]interface{}) (float64, error) {
	payload, err := json.Marshal(scoreRequest{Row: row})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal scoring request: %w", err)
	}

	resp, err := m.client.Post(m.baseURL+"/score", "application/json", bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("scoring request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read scoring response: %w", err)
	}

	var result scoreResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, fmt.Errorf("failed to parse scoring response: %w", err)
	}

	if result.Error != "" {
		return 0, fmt.Errorf("model error: %s", result.Error)
	}
	if result.Prediction == nil {
		return 0, fmt.Errorf("model returned no prediction (status %d)", resp.StatusCode)
	}

	return *result.Prediction, nil
}
