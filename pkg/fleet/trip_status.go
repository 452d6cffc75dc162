package fleet

// TripStatus is the operational state a vehicle reports against its current trip.
type TripStatus string

const (
	TripStatusAvailable        TripStatus = "available"
	TripStatusInTransit        TripStatus = "in-transit"
	TripStatusAtUnloading      TripStatus = "at-unloading"
	TripStatusEmptyMovement    TripStatus = "empty-movement"
	TripStatusOffDuty          TripStatus = "off-duty"
	TripStatusAtPickup         TripStatus = "at-pickup"
	TripStatusEnrouteForPickup TripStatus = "enroute-for-pickup"
	TripStatusMaintenance      TripStatus = "maintenance"
)

// AllTripStatuses is the closed set of statuses the dashboard buckets on, in
// the order the tables are rendered.
var AllTripStatuses = []TripStatus{
	TripStatusAvailable,
	TripStatusInTransit,
	TripStatusAtUnloading,
	TripStatusEmptyMovement,
	TripStatusOffDuty,
	TripStatusAtPickup,
	TripStatusEnrouteForPickup,
	TripStatusMaintenance,
}

func (s TripStatus) Recognized() bool {
	for _, status := range AllTripStatuses {
		if s == status {
			return true
		}
	}

	return false
}
