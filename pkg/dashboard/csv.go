package dashboard

import (
	"time"

	"github.com/fleetlens/fleetlens/pkg/fleet"
	"github.com/gocarina/gocsv"
)

// ExportRecord is one line of the CSV export, matching the dashboard's
// download columns.
type ExportRecord struct {
	VehicleNumber string `csv:"Vehicle Number"`
	VehicleType   string `csv:"Type"`
	Status        string `csv:"Status"`
	LastUpdated   string `csv:"Last Updated"`
	HaltHours     string `csv:"Halt Hrs"`
}

// ExportCSV renders the raw vehicle set as CSV. Vehicles with no halting
// hours export "N/A" rather than a number.
func ExportCSV(vehicles []fleet.Vehicle) (string, error) {
	records := make([]ExportRecord, 0, len(vehicles))

	for _, vehicle := range vehicles {
		haltHours := "N/A"
		if vehicle.HaltingHours > 0 {
			haltHours = formatHours(vehicle.HaltingHours)
		}

		records = append(records, ExportRecord{
			VehicleNumber: vehicle.VehicleNumber,
			VehicleType:   vehicle.VehicleType,
			Status:        string(vehicle.Status),
			LastUpdated:   vehicle.UpdatedAt.Format(time.RFC3339),
			HaltHours:     haltHours,
		})
	}

	return gocsv.MarshalString(&records)
}
