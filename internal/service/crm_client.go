package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// CRMClient wraps the CRM contact API.
type CRMClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	maxRetries int
	log        zerolog.Logger
}

// NewCRMClient creates a CRM API client from the environment.
func NewCRMClient(log zerolog.Logger) *CRMClient {
	token := os.Getenv("CRM_ACCESS_TOKEN")
	if token == "" {
		log.Warn().Msg("CRM_ACCESS_TOKEN not set, CRM sync disabled")
	}
	baseURL := os.Getenv("CRM_BASE_URL")
	if baseURL == "" {
		baseURL = "https://www.zohoapis.com/crm/v2"
	}

	return &CRMClient{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries: 5,
		log:        log,
	}
}

// IsConfigured returns true if an access token is set.
func (c *CRMClient) IsConfigured() bool {
	return c.token != ""
}

// CRMContact is the contact record pushed to the CRM.
type CRMContact struct {
	LastName    string `json:"Last_Name"`
	Email       string `json:"Email"`
	Phone       string `json:"Phone,omitempty"`
	ContactType string `json:"Contact_Type"`
	LeadSource  string `json:"Lead_Source"`
}

type crmUpsertRequest struct {
	Data           []CRMContact `json:"data"`
	DuplicateCheck []string     `json:"duplicate_check_fields"`
}

type crmUpsertResponse struct {
	Data []struct {
		Code    string `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
		Details struct {
			ID string `json:"id"`
		} `json:"details"`
	} `json:"data"`
}

// UpsertContact creates or updates a contact, deduplicated by email, and
// returns the CRM record id.
func (c *CRMClient) UpsertContact(ctx context.Context, contact CRMContact) (string, error) {
	payload, err := json.Marshal(crmUpsertRequest{
		Data:           []CRMContact{contact},
		DuplicateCheck: []string{"Email"},
	})
	if err != nil {
		return "", err
	}

	respBody, err := c.doRequest(ctx, "POST", "/Contacts/upsert", payload)
	if err != nil {
		return "", err
	}

	var resp crmUpsertResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("failed to parse upsert response: %w", err)
	}
	if len(resp.Data) == 0 {
		return "", fmt.Errorf("empty upsert response")
	}
	if resp.Data[0].Status == "error" {
		return "", fmt.Errorf("CRM rejected contact: %s %s", resp.Data[0].Code, resp.Data[0].Message)
	}

	return resp.Data[0].Details.ID, nil
}

// doRequest performs an HTTP request with retry and backoff on rate limits.
// The body is passed as bytes so each attempt gets a fresh reader.
func (c *CRMClient) doRequest(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	url := c.baseURL + path

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			c.log.Debug().Int("attempt", attempt).Str("path", path).Msg("retrying CRM request")
		}

		req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Authorization", "Zoho-oauthtoken "+c.token)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			backoff := time.Duration(math.Pow(2, float64(attempt))) * time.Second
			c.log.Warn().Dur("backoff", backoff).Str("path", path).Msg("CRM rate limited")
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("rate limited")
			continue
		}

		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("CRM API error %d: %s", resp.StatusCode, string(respBody))
		}

		return respBody, nil
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}
