package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/deepcare-ai/deepcare/internal"
	"github.com/deepcare-ai/deepcare/pkg/models"
)

var log = internal.GetLogger()

const (
	DefaultTimeout     = 30 * time.Second
	DefaultMaxAttempts = 3

	// DefaultMinConfidence mirrors the extraction provider's guidance:
	// entities below this score are too noisy to analyze.
	DefaultMinConfidence = 0.7
)

var _ models.EntityExtractor = &Client{}

// Client calls the external medical NLP service that extracts clinical
// entity mentions from a transcript.
type Client struct {
	serverURL     string
	minConfidence float64
	httpClient    *http.Client
	maxAttempts   uint
}

// NewClient creates an entity extraction client for the given server URL.
// minConfidence at or below zero falls back to the default threshold.
func NewClient(serverURL string, minConfidence float64) *Client {
	if minConfidence <= 0 {
		minConfidence = DefaultMinConfidence
	}
	return &Client{
		serverURL:     serverURL,
		minConfidence: minConfidence,
		httpClient:    &http.Client{Timeout: DefaultTimeout},
		maxAttempts:   DefaultMaxAttempts,
	}
}

type extractRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type extractResponse struct {
	Entities []models.Entity `json:"entities"`
}

// ExtractEntities posts the transcript to the NLP service and returns the
// extracted mentions at or above the confidence threshold. Empty text
// yields no entities and no network call.
func (c *Client) ExtractEntities(ctx context.Context, text string) ([]models.Entity, error) {
	if text == "" {
		return nil, nil
	}

	requestBody, err := json.Marshal(extractRequest{Text: text, Language: "en"})
	if err != nil {
		return nil, err
	}

	var body []byte
	err = retry.Do(
		func() error {
			body, err = c.post(ctx, requestBody)
			return err
		},
		retry.Attempts(c.maxAttempts),
		retry.Context(ctx),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			log.Warnf("retrying entity extraction attempt #%d: %s", n, err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("entity extraction failed: %w", err)
	}

	var parsed extractResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse entity extraction response: %w", err)
	}

	entities := make([]models.Entity, 0, len(parsed.Entities))
	for _, entity := range parsed.Entities {
		if entity.Confidence < c.minConfidence {
			continue
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

func (c *Client) post(ctx context.Context, requestBody []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.serverURL, bytes.NewReader(requestBody),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("NLP server returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
