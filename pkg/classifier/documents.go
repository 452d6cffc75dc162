package classifier

import (
	"math"
	"time"

	"github.com/fleetlens/fleetlens/pkg/fleet"
)

// DocumentTier is the health tier shown against a statutory document.
type DocumentTier string

const (
	DocumentTierOK      DocumentTier = "success"
	DocumentTierWarning DocumentTier = "warning"
	DocumentTierDanger  DocumentTier = "danger"
)

type DocumentStatus struct {
	Tier   DocumentTier `json:"status" groups:"basic"`
	Marker string       `json:"icon" groups:"basic"`
}

// Documents expiring within this many days of now are flagged as warnings.
const documentWarningWindowDays = 10

var documentStatusForTier = map[DocumentTier]DocumentStatus{
	DocumentTierOK:      {Tier: DocumentTierOK, Marker: "✓"},
	DocumentTierWarning: {Tier: DocumentTierWarning, Marker: "⚠"},
	DocumentTierDanger:  {Tier: DocumentTierDanger, Marker: "✗"},
}

// EvaluateExpiry grades a single expiry date against now. A missing date is
// treated the same as an expired one.
func EvaluateExpiry(expiry *fleet.ExpiryDate, now time.Time) DocumentStatus {
	if expiry == nil || expiry.IsZero() {
		return documentStatusForTier[DocumentTierDanger]
	}

	if expiry.Before(now) {
		return documentStatusForTier[DocumentTierDanger]
	}

	daysUntilExpiry := int(math.Ceil(expiry.Sub(now).Hours() / 24))

	switch {
	case daysUntilExpiry <= documentWarningWindowDays:
		return documentStatusForTier[DocumentTierWarning]
	default:
		return documentStatusForTier[DocumentTierOK]
	}
}

// DocumentRegistry indexes document records by vehicle number.
type DocumentRegistry map[string]fleet.DocumentRecord

// NewDocumentRegistry folds the raw registry array into its lookup form.
func NewDocumentRegistry(records []fleet.DocumentRecord) DocumentRegistry {
	registry := make(DocumentRegistry, len(records))

	for _, record := range records {
		registry[record.VehicleNumber] = record
	}

	return registry
}

// Lookup grades one document kind for one vehicle. A vehicle with no record
// in the registry is danger for every kind, as is an unknown kind - callers
// only pass the three known kinds so the fallback is defensive.
func (r DocumentRegistry) Lookup(vehicleNumber string, kind fleet.DocumentKind, now time.Time) DocumentStatus {
	record, found := r[vehicleNumber]
	if !found {
		return documentStatusForTier[DocumentTierDanger]
	}

	switch kind {
	case fleet.DocumentKindPUC:
		return EvaluateExpiry(record.PUCExpiry, now)
	case fleet.DocumentKindPermit:
		return EvaluateExpiry(record.PermitExpiry, now)
	case fleet.DocumentKindFitness:
		return EvaluateExpiry(record.FitnessExpiry, now)
	default:
		return documentStatusForTier[DocumentTierDanger]
	}
}
