package classifier

import (
	"testing"

	"github.com/fleetlens/fleetlens/pkg/fleet"
)

func floatPtr(f float64) *float64 {
	return &f
}

func TestPendingDistanceOneDegreeAtEquator(t *testing.T) {
	vehicle := &fleet.Vehicle{
		Waypoint: &fleet.Waypoint{Latitude: floatPtr(0), Longitude: floatPtr(0)},
	}
	trip := &fleet.Trip{
		Destination: fleet.TripEndpoint{Latitude: floatPtr(0), Longitude: floatPtr(1)},
	}

	if distance := PendingDistance(vehicle, trip); distance != "111.19 km" {
		t.Fatalf("expected 111.19 km, got %q", distance)
	}
}

func TestPendingDistanceNestedCoordinatesShape(t *testing.T) {
	vehicle := &fleet.Vehicle{
		Waypoint: &fleet.Waypoint{Latitude: floatPtr(0), Longitude: floatPtr(0)},
	}
	trip := &fleet.Trip{
		Destination: fleet.TripEndpoint{
			Coordinates: &fleet.Coordinates{Lat: floatPtr(0), Lng: floatPtr(1)},
		},
	}

	if distance := PendingDistance(vehicle, trip); distance != "111.19 km" {
		t.Fatalf("expected 111.19 km, got %q", distance)
	}
}

func TestPendingDistanceMissingCoordinates(t *testing.T) {
	cases := []struct {
		name    string
		vehicle *fleet.Vehicle
		trip    *fleet.Trip
	}{
		{
			"no waypoint",
			&fleet.Vehicle{},
			&fleet.Trip{Destination: fleet.TripEndpoint{Latitude: floatPtr(10), Longitude: floatPtr(20)}},
		},
		{
			"waypoint missing longitude",
			&fleet.Vehicle{Waypoint: &fleet.Waypoint{Latitude: floatPtr(10)}},
			&fleet.Trip{Destination: fleet.TripEndpoint{Latitude: floatPtr(10), Longitude: floatPtr(20)}},
		},
		{
			"no latest trip",
			&fleet.Vehicle{Waypoint: &fleet.Waypoint{Latitude: floatPtr(10), Longitude: floatPtr(20)}},
			nil,
		},
		{
			"destination has neither shape",
			&fleet.Vehicle{Waypoint: &fleet.Waypoint{Latitude: floatPtr(10), Longitude: floatPtr(20)}},
			&fleet.Trip{Destination: fleet.TripEndpoint{Name: "Nameless"}},
		},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			if distance := PendingDistance(testCase.vehicle, testCase.trip); distance != DistanceUnavailable {
				t.Fatalf("expected %q, got %q", DistanceUnavailable, distance)
			}
		})
	}
}
