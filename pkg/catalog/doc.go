// Package catalog provides a client for the Common Standards Project API.
//
// This package includes:
//   - A configurable HTTP client with key-based auth and typed errors
//   - Bounded retry with linear backoff on every request
//   - Envelope unwrapping ({"data": ...} responses)
//   - Minimal structural models that pass unknown fields through verbatim
//
// Example usage:
//
//	client := catalog.NewClient(cfg, log)
//
//	listing, err := client.ListJurisdictions()
//	if err != nil {
//	    if apiErr, ok := err.(*errors.Error); ok {
//	        switch apiErr.Type {
//	        case errors.ErrorTypeAuth:
//	            // Handle bad API key
//	        case errors.ErrorTypeRateLimit:
//	            // Handle rate limit
//	        }
//	    }
//	}
//
//	for _, j := range listing.Jurisdictions {
//	    detail, err := client.GetJurisdiction(j.ID)
//	    // detail.SetsRaw holds the verbatim standardSets array
//	}
package catalog
