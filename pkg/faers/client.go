package faers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/deepcare-ai/deepcare/internal"
	"github.com/deepcare-ai/deepcare/pkg/models"
)

var log = internal.GetLogger()

const (
	DefaultBaseURL          = "https://api.fda.gov/drug/event.json"
	DefaultTimeout          = 10 * time.Second
	DefaultMaxRetryAttempts = 3

	profileLimit = 5
)

// Force compiler to validate the collaborator contracts.
var (
	_ models.ReportLookup = &Client{}
	_ models.DrugProfiler = &Client{}
)

// Client queries the openFDA adverse event API (FAERS). It implements both
// the correlation engine's lookup collaborator and the drug profile
// collaborator.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a FAERS client. Empty baseURL and zero timeout fall
// back to the package defaults.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: NewRetryableHTTPClient(DefaultMaxRetryAttempts, timeout),
	}
}

// NewRetryableHTTPClient returns a new retryable HTTP client with the given
// retryMax and timeout.
func NewRetryableHTTPClient(retryMax int, timeout time.Duration) *http.Client {
	retryableHTTPClient := retryablehttp.NewClient()
	retryableHTTPClient.RetryMax = retryMax
	retryableHTTPClient.HTTPClient.Timeout = timeout
	retryableHTTPClient.Logger = internal.NewLeveledLogrus(log)
	retryableHTTPClient.Backoff = retryablehttp.DefaultBackoff
	retryableHTTPClient.CheckRetry = retryablehttp.DefaultRetryPolicy

	return retryableHTTPClient.StandardClient()
}

type searchResponse struct {
	Meta struct {
		Results struct {
			Total int `json:"total"`
		} `json:"results"`
	} `json:"meta"`
}

type countResponse struct {
	Results []models.ReactionCount `json:"results"`
}

// CountReports returns the number of adverse event reports naming both the
// drug and the reaction. The registry answers 404 when no reports match;
// that is zero evidence, not an error.
func (c *Client) CountReports(ctx context.Context, drug, symptom string) (int, error) {
	if drug == "" || symptom == "" {
		return 0, nil
	}

	search := fmt.Sprintf(
		`patient.drug.medicinalproduct:%q AND patient.reaction.reactionmeddrapt:%q`,
		drug, symptom,
	)
	query := url.Values{}
	query.Set("search", search)
	query.Set("limit", "1")

	body, notFound, err := c.get(ctx, query)
	if err != nil {
		return 0, err
	}
	if notFound {
		return 0, nil
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, fmt.Errorf("parse FAERS search response: %w", err)
	}
	return parsed.Meta.Results.Total, nil
}

// DrugProfile returns the most commonly reported reactions for a drug,
// capped at the top five terms.
func (c *Client) DrugProfile(ctx context.Context, drug string) ([]models.ReactionCount, error) {
	query := url.Values{}
	query.Set("search", fmt.Sprintf(`patient.drug.medicinalproduct:%q`, drug))
	query.Set("count", "patient.reaction.reactionmeddrapt.exact")

	body, notFound, err := c.get(ctx, query)
	if err != nil {
		return nil, err
	}
	if notFound {
		return nil, nil
	}

	var parsed countResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse FAERS count response: %w", err)
	}
	if len(parsed.Results) > profileLimit {
		parsed.Results = parsed.Results[:profileLimit]
	}
	return parsed.Results, nil
}

func (c *Client) get(ctx context.Context, query url.Values) (body []byte, notFound bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, false, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, true, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("FAERS API returned status %d", resp.StatusCode)
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, err
	}
	return body, false, nil
}
