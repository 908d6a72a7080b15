package syncer

import (
	"encoding/json"

	"standardspull/pkg/catalog"
)

// CatalogClient defines the interface for catalog API operations
type CatalogClient interface {
	ListJurisdictions() (*catalog.JurisdictionListing, error)
	GetJurisdiction(jurisdictionID string) (*catalog.JurisdictionDetail, error)
	GetStandardSet(setID string) (json.RawMessage, error)
}
