package classifier

import (
	"testing"

	"github.com/fleetlens/fleetlens/pkg/fleet"
)

func vehicleWithWaypoint(number string, waypointName string) *fleet.Vehicle {
	vehicle := &fleet.Vehicle{VehicleNumber: number}

	if waypointName != "" {
		vehicle.Waypoint = &fleet.Waypoint{Name: waypointName}
	}

	return vehicle
}

func maintenancePoint(name string) fleet.IntermediatePoint {
	return fleet.IntermediatePoint{
		Maintenance: &fleet.MaintenanceStop{ServiceStation: fleet.NamedPlace{Name: name}},
	}
}

func offDutyPoint(name string) fleet.IntermediatePoint {
	return fleet.IntermediatePoint{
		OffDuty: &fleet.OffDutyStop{Area: fleet.NamedPlace{Name: name}},
	}
}

func TestResolvePlaceAvailable(t *testing.T) {
	vehicle := vehicleWithWaypoint("V1", "Somewhere Live")

	t.Run("latest destination wins", func(t *testing.T) {
		trips := map[string][]fleet.Trip{
			"V1": {
				{State: fleet.TripStateComplete, Destination: fleet.TripEndpoint{Name: "Pune Depot"}},
			},
		}

		if place := ResolvePlace(vehicle, fleet.TripStatusAvailable, trips); place != "Pune Depot" {
			t.Fatalf("expected Pune Depot, got %q", place)
		}
	})

	t.Run("discarded latest falls back to completed trip", func(t *testing.T) {
		trips := map[string][]fleet.Trip{
			"V1": {
				{State: fleet.TripStateDiscarded},
				{State: fleet.TripStateActive, Destination: fleet.TripEndpoint{Name: "Should Not Win"}},
				{State: fleet.TripStateComplete, Destination: fleet.TripEndpoint{Name: "Nagpur Hub"}},
			},
		}

		if place := ResolvePlace(vehicle, fleet.TripStatusAvailable, trips); place != "Nagpur Hub" {
			t.Fatalf("expected Nagpur Hub, got %q", place)
		}
	})

	t.Run("discarded latest with nameless completed trip uses its maintenance stop", func(t *testing.T) {
		trips := map[string][]fleet.Trip{
			"V1": {
				{State: fleet.TripStateDiscarded},
				{State: fleet.TripStateComplete, IntermediatePoints: []fleet.IntermediatePoint{
					{},
					maintenancePoint("Highway Garage"),
				}},
			},
		}

		if place := ResolvePlace(vehicle, fleet.TripStatusAvailable, trips); place != "Highway Garage" {
			t.Fatalf("expected Highway Garage, got %q", place)
		}
	})

	t.Run("maintenance beats off-duty on the latest trip", func(t *testing.T) {
		trips := map[string][]fleet.Trip{
			"V1": {
				{State: fleet.TripStateActive, IntermediatePoints: []fleet.IntermediatePoint{
					offDutyPoint("Rest Area"),
					maintenancePoint("Highway Garage"),
				}},
			},
		}

		if place := ResolvePlace(vehicle, fleet.TripStatusAvailable, trips); place != "Highway Garage" {
			t.Fatalf("expected Highway Garage, got %q", place)
		}
	})

	t.Run("nothing resolvable yields the placeholder", func(t *testing.T) {
		trips := map[string][]fleet.Trip{
			"V1": {
				{State: fleet.TripStateDiscarded},
				{State: fleet.TripStateDiscarded},
			},
		}

		if place := ResolvePlace(vehicle, fleet.TripStatusAvailable, trips); place != PlaceUnknown {
			t.Fatalf("expected placeholder, got %q", place)
		}
	})

	t.Run("no trips at all yields the placeholder", func(t *testing.T) {
		if place := ResolvePlace(vehicle, fleet.TripStatusAvailable, map[string][]fleet.Trip{}); place != PlaceUnknown {
			t.Fatalf("expected placeholder, got %q", place)
		}
	})
}

func TestResolvePlaceLiveStatuses(t *testing.T) {
	trips := map[string][]fleet.Trip{
		"V1": {
			{State: fleet.TripStateActive, Origin: fleet.TripEndpoint{Name: "Mumbai Yard"}},
		},
	}

	withWaypoint := vehicleWithWaypoint("V1", "NH48 Toll Plaza")
	withoutWaypoint := vehicleWithWaypoint("V1", "")

	if place := ResolvePlace(withWaypoint, fleet.TripStatusInTransit, trips); place != "NH48 Toll Plaza" {
		t.Errorf("in-transit: expected waypoint name, got %q", place)
	}
	if place := ResolvePlace(withoutWaypoint, fleet.TripStatusInTransit, trips); place != PlaceUnknown {
		t.Errorf("in-transit without waypoint: expected placeholder, got %q", place)
	}

	// at-unloading keeps its genuinely-absent behaviour instead of the
	// placeholder.
	if place := ResolvePlace(withoutWaypoint, fleet.TripStatusAtUnloading, trips); place != "" {
		t.Errorf("at-unloading without waypoint: expected empty, got %q", place)
	}

	if place := ResolvePlace(withoutWaypoint, fleet.TripStatusAtPickup, trips); place != "Mumbai Yard" {
		t.Errorf("at-pickup: expected origin name, got %q", place)
	}
	if place := ResolvePlace(withoutWaypoint, fleet.TripStatusEnrouteForPickup, trips); place != "Mumbai Yard" {
		t.Errorf("enroute-for-pickup: expected origin name, got %q", place)
	}
}

func TestResolvePlaceFirstPointOnlyStatuses(t *testing.T) {
	vehicle := vehicleWithWaypoint("V1", "")

	// The annotation sits on the second point, so neither status may find it.
	trips := map[string][]fleet.Trip{
		"V1": {
			{State: fleet.TripStateActive, IntermediatePoints: []fleet.IntermediatePoint{
				{},
				offDutyPoint("Rest Area"),
				maintenancePoint("Highway Garage"),
			}},
		},
	}

	if place := ResolvePlace(vehicle, fleet.TripStatusOffDuty, trips); place != PlaceUnknown {
		t.Errorf("off-duty: expected placeholder, got %q", place)
	}
	if place := ResolvePlace(vehicle, fleet.TripStatusMaintenance, trips); place != PlaceUnknown {
		t.Errorf("maintenance: expected placeholder, got %q", place)
	}

	firstPointTrips := map[string][]fleet.Trip{
		"V1": {
			{State: fleet.TripStateActive, IntermediatePoints: []fleet.IntermediatePoint{
				offDutyPoint("Rest Area"),
			}},
		},
	}

	if place := ResolvePlace(vehicle, fleet.TripStatusOffDuty, firstPointTrips); place != "Rest Area" {
		t.Errorf("off-duty: expected Rest Area, got %q", place)
	}
}

func TestResolvePlaceUnknownStatus(t *testing.T) {
	vehicle := vehicleWithWaypoint("V1", "Weighbridge")

	if place := ResolvePlace(vehicle, fleet.TripStatus("breakdown"), nil); place != "Weighbridge" {
		t.Errorf("expected waypoint name, got %q", place)
	}

	if place := ResolvePlace(vehicleWithWaypoint("V1", ""), fleet.TripStatus("breakdown"), nil); place != PlaceUnknown {
		t.Errorf("expected placeholder, got %q", place)
	}
}
