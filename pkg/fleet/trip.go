package fleet

// TripState is the lifecycle state of a trip record. Anything outside the
// three known values is carried through untouched.
type TripState string

const (
	TripStateActive    TripState = "active"
	TripStateComplete  TripState = "complete"
	TripStateDiscarded TripState = "discarded"
)

type Trip struct {
	PrimaryIdentifier string `json:"_id" groups:"basic"`
	VehicleNumber     string `json:"vehicleNumber" groups:"basic"`

	Origin      TripEndpoint `json:"origin" groups:"basic"`
	Destination TripEndpoint `json:"destination" groups:"basic"`

	State TripState `json:"status" groups:"basic"`

	IntermediatePoints []IntermediatePoint `json:"intermediatePoints,omitempty" groups:"detailed"`
}

// TripEndpoint is an origin or destination. Older trip records carry flat
// latitude/longitude fields, newer ones a nested coordinates object - both
// shapes appear in live data so both are accepted.
type TripEndpoint struct {
	Name    string `json:"name" groups:"basic"`
	Address string `json:"address" groups:"detailed"`

	Latitude  *float64 `json:"latitude,omitempty" groups:"detailed"`
	Longitude *float64 `json:"longitude,omitempty" groups:"detailed"`

	Coordinates *Coordinates `json:"coordinates,omitempty" groups:"detailed"`
}

type Coordinates struct {
	Lat *float64 `json:"lat" groups:"detailed"`
	Lng *float64 `json:"lng" groups:"detailed"`
}

// LatLng resolves the endpoint position regardless of which shape the record
// uses. The flat fields win when present.
func (e *TripEndpoint) LatLng() (float64, float64, bool) {
	if e.Latitude != nil && e.Longitude != nil {
		return *e.Latitude, *e.Longitude, true
	}

	if e.Coordinates != nil && e.Coordinates.Lat != nil && e.Coordinates.Lng != nil {
		return *e.Coordinates.Lat, *e.Coordinates.Lng, true
	}

	return 0, 0, false
}

// IntermediatePoint is a recorded stop along a trip's route. At most one of
// the annotations is set.
type IntermediatePoint struct {
	Maintenance *MaintenanceStop `json:"maintenance,omitempty" groups:"detailed"`
	OffDuty     *OffDutyStop     `json:"offDuty,omitempty" groups:"detailed"`
}

type MaintenanceStop struct {
	ServiceStation NamedPlace `json:"serviceStation" groups:"detailed"`
}

type OffDutyStop struct {
	Area NamedPlace `json:"area" groups:"detailed"`
}

type NamedPlace struct {
	Name string `json:"name" groups:"detailed"`
}
