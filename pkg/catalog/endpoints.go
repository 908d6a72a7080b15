package catalog

import (
	"fmt"
	"net/url"
)

// API endpoints for the Common Standards Project catalog
const (
	// DefaultBaseURL is the public catalog host
	DefaultBaseURL = "https://api.commonstandardsproject.com"

	// JurisdictionsEndpoint lists every jurisdiction in the catalog
	JurisdictionsEndpoint = "/api/v1/jurisdictions"

	// JurisdictionEndpoint returns one jurisdiction with its set summaries
	JurisdictionEndpoint = "/api/v1/jurisdictions/%s"

	// StandardSetEndpoint returns one full standard set record
	StandardSetEndpoint = "/api/v1/standard_sets/%s"
)

// JurisdictionsURL builds the URL for the jurisdiction listing
func JurisdictionsURL(baseURL string) string {
	return baseURL + JurisdictionsEndpoint
}

// JurisdictionURL builds the URL for a single jurisdiction
func JurisdictionURL(baseURL, jurisdictionID string) string {
	return baseURL + fmt.Sprintf(JurisdictionEndpoint, url.PathEscape(jurisdictionID))
}

// StandardSetURL builds the URL for a single standard set
func StandardSetURL(baseURL, setID string) string {
	return baseURL + fmt.Sprintf(StandardSetEndpoint, url.PathEscape(setID))
}
