// Package retry provides backoff and retry logic for handling transient
// failures in network operations, particularly for catalog API calls.
//
// Features:
//   - Linear and constant backoff strategies
//   - Context support for cancellation
//   - Configurable retry predicates
//   - Integration with the catalog client error types
//
// Basic usage:
//
//	// Simple retry with defaults
//	err := retry.Do(func() error {
//		return client.Ping()
//	}, nil)
//
//	// Custom configuration
//	cfg := &retry.Config{
//		MaxAttempts: 3,
//		Backoff: &retry.LinearBackoff{
//			BaseDelay: 1 * time.Second,
//			Increment: 1 * time.Second,
//		},
//		RetryIf: retry.DefaultRetryIf,
//		Logger:  logger.GetLogger(),
//	}
//	err := retry.Do(operation, cfg)
//
//	// Retry an operation that returns a value
//	body, err := retry.DoWithResult(func() ([]byte, error) {
//		return client.Fetch(url)
//	}, cfg)
//
// Every catalog request failure short of a successful-but-unparseable
// response is considered transient and retried up to the attempt bound.
package retry
