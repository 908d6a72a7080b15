package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"standardspull/pkg/config"
	errs "standardspull/pkg/errors"
	"standardspull/pkg/logger"
	"standardspull/pkg/retry"
)

// Client represents a Common Standards Project API client
type Client struct {
	httpClient  *http.Client
	headers     map[string]string
	baseURL     string
	maxAttempts int
	backoff     retry.BackoffStrategy
	logger      logger.Logger
}

// NewClient creates a new catalog API client from the given configuration
func NewClient(cfg *config.Config, log logger.Logger) *Client {
	// Use default logger if none provided
	if log == nil {
		log = logger.GetLogger()
	}

	headers := map[string]string{
		"Accept":     "application/json",
		"User-Agent": "standardspull/1.0",
	}
	if cfg.API.Key != "" {
		headers["Api-Key"] = cfg.API.Key
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.API.RequestTimeout,
		},
		headers:     headers,
		baseURL:     cfg.API.BaseURL,
		maxAttempts: cfg.Retry.MaxAttempts,
		backoff: &retry.LinearBackoff{
			BaseDelay: cfg.Retry.BaseDelay,
			MaxDelay:  cfg.Retry.MaxDelay,
			Increment: cfg.Retry.BaseDelay,
		},
		logger: log,
	}
}

// SetHeader sets a custom header for the client
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// SetAPIKey sets the Api-Key header used to authenticate requests
func (c *Client) SetAPIKey(key string) {
	c.headers["Api-Key"] = key
}

// ListJurisdictions fetches every jurisdiction in the catalog
func (c *Client) ListJurisdictions() (*JurisdictionListing, error) {
	url := JurisdictionsURL(c.baseURL)

	c.logger.DebugWithFields("fetching jurisdiction listing", map[string]interface{}{
		"url": url,
	})

	raw, err := c.fetchJSON(url)
	if err != nil {
		c.logger.ErrorWithFields("failed to fetch jurisdiction listing", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	var jurisdictions []Jurisdiction
	if err := json.Unmarshal(raw, &jurisdictions); err != nil {
		return nil, &errs.Error{
			Type:    errs.ErrorTypeParsing,
			Message: fmt.Sprintf("failed to parse jurisdiction listing: %v", err),
			Code:    0,
		}
	}

	c.logger.DebugWithFields("fetched jurisdiction listing", map[string]interface{}{
		"count": len(jurisdictions),
	})

	return &JurisdictionListing{
		Jurisdictions: jurisdictions,
		Raw:           raw,
	}, nil
}

// GetJurisdiction fetches a single jurisdiction including its set summaries
func (c *Client) GetJurisdiction(jurisdictionID string) (*JurisdictionDetail, error) {
	url := JurisdictionURL(c.baseURL, jurisdictionID)

	c.logger.DebugWithFields("fetching jurisdiction", map[string]interface{}{
		"jurisdiction_id": jurisdictionID,
		"url":             url,
	})

	raw, err := c.fetchJSON(url)
	if err != nil {
		c.logger.ErrorWithFields("failed to fetch jurisdiction", map[string]interface{}{
			"jurisdiction_id": jurisdictionID,
			"error":           err.Error(),
		})
		return nil, err
	}

	var detail JurisdictionDetail
	if err := json.Unmarshal(raw, &detail); err != nil {
		return nil, &errs.Error{
			Type:    errs.ErrorTypeParsing,
			Message: fmt.Sprintf("failed to parse jurisdiction %s: %v", jurisdictionID, err),
			Code:    0,
		}
	}

	return &detail, nil
}

// GetStandardSet fetches one full standard set record verbatim
func (c *Client) GetStandardSet(setID string) (json.RawMessage, error) {
	url := StandardSetURL(c.baseURL, setID)

	c.logger.DebugWithFields("fetching standard set", map[string]interface{}{
		"set_id": setID,
		"url":    url,
	})

	raw, err := c.fetchJSON(url)
	if err != nil {
		c.logger.ErrorWithFields("failed to fetch standard set", map[string]interface{}{
			"set_id": setID,
			"error":  err.Error(),
		})
		return nil, err
	}

	return raw, nil
}

// fetchJSON performs a GET request with retry logic and returns the
// response payload with the {"data": ...} envelope removed
func (c *Client) fetchJSON(url string) (json.RawMessage, error) {
	cfg := &retry.Config{
		MaxAttempts: c.maxAttempts,
		Backoff:     c.backoff,
		RetryIf:     retry.DefaultRetryIf,
		Context:     context.Background(),
		Logger:      c.logger,
	}

	return retry.DoWithResult(func() (json.RawMessage, error) {
		return c.fetchOnce(url)
	}, cfg)
}

// fetchOnce performs a single GET request without retries
func (c *Client) fetchOnce(url string) (json.RawMessage, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, &errs.Error{
			Type:    errs.ErrorTypeUnknown,
			Message: fmt.Sprintf("failed to create request: %v", err),
			Code:    0,
		}
	}

	resp, err := c.doRequest(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkResponseStatus(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errs.Error{
			Type:    errs.ErrorTypeNetwork,
			Message: fmt.Sprintf("failed to read response body: %v", err),
			Code:    resp.StatusCode,
		}
	}

	payload, err := unwrapEnvelope(body)
	if err != nil {
		// Create a preview of the body for debugging
		bodyPreview := string(body)
		if len(bodyPreview) > 200 {
			bodyPreview = bodyPreview[:200] + "..."
		}

		c.logger.ErrorWithFields("failed to parse JSON response", map[string]interface{}{
			"url":          url,
			"status":       resp.StatusCode,
			"error":        err.Error(),
			"body_preview": bodyPreview,
		})
		return nil, &errs.Error{
			Type:    errs.ErrorTypeParsing,
			Message: fmt.Sprintf("failed to parse JSON: %v", err),
			Code:    resp.StatusCode,
		}
	}

	return payload, nil
}

// doRequest performs an HTTP request with the configured headers
func (c *Client) doRequest(req *http.Request) (*http.Response, error) {
	// Set all headers
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	// Log the request
	start := time.Now()
	c.logger.DebugWithFields("sending HTTP request", map[string]interface{}{
		"method": req.Method,
		"url":    req.URL.String(),
	})

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"method":   req.Method,
			"url":      req.URL.String(),
			"error":    err.Error(),
			"duration": duration,
		})
		return nil, &errs.Error{
			Type:    errs.ErrorTypeNetwork,
			Message: fmt.Sprintf("network error: %v", err),
			Code:    0,
		}
	}

	// Log successful response
	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"method":   req.Method,
		"url":      req.URL.String(),
		"status":   resp.StatusCode,
		"duration": duration,
	})

	return resp, nil
}

// checkResponseStatus checks the HTTP response status and returns appropriate errors
func (c *Client) checkResponseStatus(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		c.logger.WarnWithFields("authentication error", map[string]interface{}{
			"status": resp.StatusCode,
			"url":    resp.Request.URL.String(),
		})
		return &errs.Error{
			Type:    errs.ErrorTypeAuth,
			Message: "authentication required",
			Code:    resp.StatusCode,
		}
	case http.StatusNotFound:
		c.logger.WarnWithFields("resource not found", map[string]interface{}{
			"status": resp.StatusCode,
			"url":    resp.Request.URL.String(),
		})
		return &errs.Error{
			Type:    errs.ErrorTypeNotFound,
			Message: "resource not found",
			Code:    resp.StatusCode,
		}
	case http.StatusTooManyRequests:
		c.logger.WarnWithFields("rate limit exceeded", map[string]interface{}{
			"status": resp.StatusCode,
			"url":    resp.Request.URL.String(),
		})
		return &errs.Error{
			Type:    errs.ErrorTypeRateLimit,
			Message: "rate limit exceeded",
			Code:    resp.StatusCode,
		}
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		c.logger.ErrorWithFields("server error", map[string]interface{}{
			"status": resp.StatusCode,
			"url":    resp.Request.URL.String(),
		})
		return &errs.Error{
			Type:    errs.ErrorTypeServerError,
			Message: "server error",
			Code:    resp.StatusCode,
		}
	default:
		if resp.StatusCode >= 400 {
			c.logger.ErrorWithFields("unexpected API error", map[string]interface{}{
				"status": resp.StatusCode,
				"url":    resp.Request.URL.String(),
			})
			return &errs.Error{
				Type:    errs.ErrorTypeUnknown,
				Message: fmt.Sprintf("unexpected status code: %d", resp.StatusCode),
				Code:    resp.StatusCode,
			}
		}
		return nil
	}
}

// unwrapEnvelope strips the one-level {"data": ...} wrapper the API puts
// around its responses. Bodies without the wrapper are returned as is.
func unwrapEnvelope(body []byte) (json.RawMessage, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 {
		return envelope.Data, nil
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("response is not valid JSON")
	}
	return json.RawMessage(body), nil
}
