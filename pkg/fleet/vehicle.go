package fleet

import "time"

type Vehicle struct {
	PrimaryIdentifier string     `json:"_id" groups:"basic"`
	VehicleNumber     string     `json:"vehicleNumber" groups:"basic"`
	VehicleType       string     `json:"vehicleType" groups:"basic"`
	Status            TripStatus `json:"currentTripStatus" groups:"basic"`
	CurrentTripID     string     `json:"currentTripId,omitempty" groups:"detailed"`

	CreatedAt time.Time `json:"createdAt" groups:"detailed"`
	UpdatedAt time.Time `json:"updatedAt" groups:"basic"`

	// HaltingHours mirrors the waypoint value once the batch lookup has run.
	// Zero when the vehicle has no reported waypoint.
	HaltingHours float64 `json:"haltingHours" groups:"basic"`

	Waypoint *Waypoint `json:"waypoint,omitempty" groups:"detailed"`
}

// Waypoint is the vehicle's last reported position from the tracking provider.
type Waypoint struct {
	RecordedAt   string  `json:"dttime" groups:"detailed"`
	HaltingHours float64 `json:"haltingHours" groups:"basic"`
	VehicleName  string  `json:"vname" groups:"detailed"`
	Name         string  `json:"name" groups:"basic"`
	FullAddress  string  `json:"fullAddress" groups:"detailed"`

	// Pointers as the provider omits coordinates for stale fixes and the
	// equator is a legal position.
	Latitude  *float64 `json:"lat,omitempty" groups:"detailed"`
	Longitude *float64 `json:"lngt,omitempty" groups:"detailed"`
}
