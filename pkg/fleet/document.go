package fleet

import (
	"fmt"
	"strings"
	"time"
)

// DocumentKind identifies which statutory document an expiry check refers to.
type DocumentKind string

const (
	DocumentKindPUC     DocumentKind = "puc"
	DocumentKindPermit  DocumentKind = "permit"
	DocumentKindFitness DocumentKind = "fitness"
)

// DocumentRecord holds the statutory document expiries for one vehicle,
// keyed by vehicle number in the registry resource.
type DocumentRecord struct {
	VehicleNumber string `json:"vehicleNumber" groups:"basic"`

	PUCExpiry     *ExpiryDate `json:"pucExpiry,omitempty" groups:"basic"`
	PermitExpiry  *ExpiryDate `json:"permitExpiry,omitempty" groups:"basic"`
	FitnessExpiry *ExpiryDate `json:"fitnessExpiry,omitempty" groups:"basic"`
}

// ExpiryDate accepts both date-only and full timestamp strings, as the
// registry file mixes the two.
type ExpiryDate struct {
	time.Time
}

var expiryDateFormats = []string{time.RFC3339, "2006-01-02", "2006-01-02 15:04:05"}

func (d *ExpiryDate) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	for _, format := range expiryDateFormats {
		if parsed, err := time.Parse(format, value); err == nil {
			d.Time = parsed
			return nil
		}
	}

	return fmt.Errorf("unparseable expiry date %q", value)
}

func (d ExpiryDate) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.Format(time.RFC3339))), nil
}
