package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"standardspull/pkg/config"
	"standardspull/pkg/errors"
	"standardspull/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to build a client config pointed at a test server
func testConfig(baseURL string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.API.BaseURL = baseURL
	cfg.API.Key = "test-key"
	cfg.API.RequestTimeout = 5 * time.Second
	cfg.Retry.MaxAttempts = 3
	cfg.Retry.BaseDelay = 5 * time.Millisecond
	cfg.Retry.MaxDelay = 50 * time.Millisecond
	return cfg
}

func TestNewClient(t *testing.T) {
	log := logger.NewTestLogger()
	client := NewClient(testConfig(DefaultBaseURL), log)

	assert.NotNil(t, client)
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, log, client.logger)
	assert.Equal(t, "test-key", client.headers["Api-Key"])
	assert.Equal(t, "application/json", client.headers["Accept"])
}

func TestNewClientWithoutKey(t *testing.T) {
	cfg := testConfig(DefaultBaseURL)
	cfg.API.Key = ""
	client := NewClient(cfg, logger.NewTestLogger())

	_, exists := client.headers["Api-Key"]
	assert.False(t, exists)

	client.SetAPIKey("later-key")
	assert.Equal(t, "later-key", client.headers["Api-Key"])
}

func TestUnwrapEnvelope(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
		wantErr  bool
	}{
		{
			name:     "object envelope",
			body:     `{"data": {"id": "A", "title": "Alpha"}}`,
			expected: `{"id": "A", "title": "Alpha"}`,
		},
		{
			name:     "array envelope",
			body:     `{"data": [{"id": "A"}, {"id": "B"}]}`,
			expected: `[{"id": "A"}, {"id": "B"}]`,
		},
		{
			name:     "bare array without envelope",
			body:     `[{"id": "A"}]`,
			expected: `[{"id": "A"}]`,
		},
		{
			name:     "object without data key",
			body:     `{"id": "A", "title": "Alpha"}`,
			expected: `{"id": "A", "title": "Alpha"}`,
		},
		{
			name:    "invalid JSON",
			body:    `<html>not json</html>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := unwrapEnvelope([]byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(payload))
		})
	}
}

func TestCheckResponseStatus(t *testing.T) {
	client := NewClient(testConfig(DefaultBaseURL), logger.NewTestLogger())

	tests := []struct {
		name         string
		statusCode   int
		expectedType errors.ErrorType
	}{
		{
			name:       "200 OK",
			statusCode: http.StatusOK,
		},
		{
			name:         "401 Unauthorized",
			statusCode:   http.StatusUnauthorized,
			expectedType: errors.ErrorTypeAuth,
		},
		{
			name:         "403 Forbidden",
			statusCode:   http.StatusForbidden,
			expectedType: errors.ErrorTypeAuth,
		},
		{
			name:         "404 Not Found",
			statusCode:   http.StatusNotFound,
			expectedType: errors.ErrorTypeNotFound,
		},
		{
			name:         "429 Too Many Requests",
			statusCode:   http.StatusTooManyRequests,
			expectedType: errors.ErrorTypeRateLimit,
		},
		{
			name:         "500 Internal Server Error",
			statusCode:   http.StatusInternalServerError,
			expectedType: errors.ErrorTypeServerError,
		},
		{
			name:         "503 Service Unavailable",
			statusCode:   http.StatusServiceUnavailable,
			expectedType: errors.ErrorTypeServerError,
		},
		{
			name:         "400 Bad Request",
			statusCode:   http.StatusBadRequest,
			expectedType: errors.ErrorTypeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest("GET", "http://example.com", nil)
			resp := &http.Response{
				StatusCode: tt.statusCode,
				Request:    req,
			}

			err := client.checkResponseStatus(resp)
			if tt.expectedType == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				var apiErr *errors.Error
				assert.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tt.expectedType, apiErr.Type)
				assert.Equal(t, tt.statusCode, apiErr.Code)
			}
		})
	}
}

func TestListJurisdictions(t *testing.T) {
	log := logger.NewTestLogger()

	t.Run("successful listing", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, JurisdictionsEndpoint, r.URL.Path)
			assert.Equal(t, "test-key", r.Header.Get("Api-Key"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data": [
				{"id": "49FCDFBD2CF04033A9C347BEA4C2E369", "title": "North Dakota", "type": "state"},
				{"id": "73B5DA2C27B44EC0B102D3C55C78C5F1", "title": "Achieve", "type": "organization"}
			]}`))
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL), log)

		listing, err := client.ListJurisdictions()
		require.NoError(t, err)
		require.Len(t, listing.Jurisdictions, 2)
		assert.Equal(t, "49FCDFBD2CF04033A9C347BEA4C2E369", listing.Jurisdictions[0].ID)
		assert.Equal(t, "North Dakota", listing.Jurisdictions[0].Label())
		assert.Equal(t, "state", listing.Jurisdictions[0].Type)

		// Raw bytes carry the unwrapped listing verbatim
		var roundTrip []map[string]interface{}
		require.NoError(t, json.Unmarshal(listing.Raw, &roundTrip))
		assert.Len(t, roundTrip, 2)
	})

	t.Run("auth error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL), log)

		listing, err := client.ListJurisdictions()
		assert.Nil(t, listing)
		assert.Error(t, err)

		var apiErr *errors.Error
		assert.ErrorAs(t, err, &apiErr)
		assert.Equal(t, errors.ErrorTypeAuth, apiErr.Type)
	})
}

func TestGetJurisdiction(t *testing.T) {
	log := logger.NewTestLogger()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/jurisdictions/ABC123", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {
			"id": "ABC123",
			"title": "North Dakota",
			"standardSets": [
				{"id": "SET1", "title": "Mathematics Grade 5", "subject": "Math", "educationLevels": ["05"], "document": {"valid": "2017"}},
				{"id": "SET2", "title": "Science High School", "subject": "Science", "educationLevels": ["09", "10", "11", "12"]}
			]
		}}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), log)

	detail, err := client.GetJurisdiction("ABC123")
	require.NoError(t, err)
	assert.Equal(t, "North Dakota", detail.Label())

	sets, err := detail.Sets()
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Equal(t, "SET1", sets[0].ID)
	assert.Equal(t, "05", sets[0].GradeLabel())
	assert.Equal(t, "09-10-11-12", sets[1].GradeLabel())

	// Unknown fields like "document" survive in the raw array
	var rawSets []map[string]interface{}
	require.NoError(t, json.Unmarshal(detail.SetsRaw, &rawSets))
	assert.Contains(t, rawSets[0], "document")
}

func TestGetStandardSet(t *testing.T) {
	log := logger.NewTestLogger()

	setBody := `{"id": "SET1", "title": "Mathematics Grade 5", "standards": {"S1": {"description": "Count to 100"}}}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/standard_sets/SET1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": ` + setBody + `}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), log)

	raw, err := client.GetStandardSet("SET1")
	require.NoError(t, err)
	assert.JSONEq(t, setBody, string(raw))
}

func TestFetchRetries(t *testing.T) {
	log := logger.NewTestLogger()

	t.Run("retries on server error", func(t *testing.T) {
		attempts := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts++
			if attempts < 3 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(`{"data": {"id": "SET1"}}`))
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL), log)

		raw, err := client.GetStandardSet("SET1")
		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
		assert.JSONEq(t, `{"id": "SET1"}`, string(raw))
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		attempts := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts++
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL), log)

		_, err := client.GetStandardSet("SET1")
		assert.Error(t, err)
		assert.Equal(t, 3, attempts)

		var apiErr *errors.Error
		assert.ErrorAs(t, err, &apiErr)
		assert.Equal(t, errors.ErrorTypeServerError, apiErr.Type)
	})

	t.Run("no retry on parse failure", func(t *testing.T) {
		attempts := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts++
			w.Write([]byte("<html>definitely not json</html>"))
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL), log)

		_, err := client.GetStandardSet("SET1")
		assert.Error(t, err)
		assert.Equal(t, 1, attempts)

		var apiErr *errors.Error
		assert.ErrorAs(t, err, &apiErr)
		assert.Equal(t, errors.ErrorTypeParsing, apiErr.Type)
	})
}

func TestEndpointURLs(t *testing.T) {
	assert.Equal(t,
		"https://api.commonstandardsproject.com/api/v1/jurisdictions",
		JurisdictionsURL(DefaultBaseURL))
	assert.Equal(t,
		"https://api.commonstandardsproject.com/api/v1/jurisdictions/ABC123",
		JurisdictionURL(DefaultBaseURL, "ABC123"))
	assert.Equal(t,
		"https://api.commonstandardsproject.com/api/v1/standard_sets/D2636662B8E44350834EAEA63D30A63F",
		StandardSetURL(DefaultBaseURL, "D2636662B8E44350834EAEA63D30A63F"))
}
