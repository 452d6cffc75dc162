package classifier

import "github.com/fleetlens/fleetlens/pkg/fleet"

// PlaceUnknown is the placeholder shown when no positional field applies.
const PlaceUnknown = "-"

// ResolvePlace maps a vehicle to the one place string the dashboard shows for
// it. Which record carries the positional truth depends on the status: live
// trips read the GPS waypoint, idle vehicles read trip endpoints and route
// annotations.
//
// Trip lists are most-recent-first; entry 0 is always "the latest trip".
func ResolvePlace(vehicle *fleet.Vehicle, status fleet.TripStatus, tripsByVehicle map[string][]fleet.Trip) string {
	allTrips := tripsByVehicle[vehicle.VehicleNumber]

	var latestTrip *fleet.Trip
	if len(allTrips) > 0 {
		latestTrip = &allTrips[0]
	}

	switch status {
	case fleet.TripStatusAvailable:
		return resolveAvailablePlace(latestTrip, allTrips)

	case fleet.TripStatusInTransit:
		return waypointNameOr(vehicle, PlaceUnknown)

	case fleet.TripStatusAtUnloading:
		// Unlike in-transit this one may be genuinely empty.
		return waypointNameOr(vehicle, "")

	case fleet.TripStatusAtPickup, fleet.TripStatusEnrouteForPickup:
		if latestTrip != nil && latestTrip.Origin.Name != "" {
			return latestTrip.Origin.Name
		}
		return PlaceUnknown

	case fleet.TripStatusOffDuty:
		// Only the first intermediate point counts here.
		if latestTrip != nil && len(latestTrip.IntermediatePoints) > 0 {
			if offDuty := latestTrip.IntermediatePoints[0].OffDuty; offDuty != nil && offDuty.Area.Name != "" {
				return offDuty.Area.Name
			}
		}
		return PlaceUnknown

	case fleet.TripStatusMaintenance:
		if latestTrip != nil && len(latestTrip.IntermediatePoints) > 0 {
			if maintenance := latestTrip.IntermediatePoints[0].Maintenance; maintenance != nil && maintenance.ServiceStation.Name != "" {
				return maintenance.ServiceStation.Name
			}
		}
		return PlaceUnknown

	default:
		return waypointNameOr(vehicle, PlaceUnknown)
	}
}

// resolveAvailablePlace prefers where the vehicle finished working. When the
// latest trip got discarded the last completed trip is a better witness, so
// its fields are consulted first.
func resolveAvailablePlace(latestTrip *fleet.Trip, allTrips []fleet.Trip) string {
	if latestTrip != nil && latestTrip.State == fleet.TripStateDiscarded {
		completeTrip := firstTripInState(allTrips, fleet.TripStateComplete)

		if completeTrip != nil && completeTrip.Destination.Name != "" {
			return completeTrip.Destination.Name
		}
		if place := searchMaintenancePlace(completeTrip); place != "" {
			return place
		}
		if place := searchOffDutyArea(completeTrip); place != "" {
			return place
		}
	}

	if latestTrip != nil && latestTrip.Destination.Name != "" {
		return latestTrip.Destination.Name
	}
	if place := searchMaintenancePlace(latestTrip); place != "" {
		return place
	}
	if place := searchOffDutyArea(latestTrip); place != "" {
		return place
	}

	return PlaceUnknown
}

func firstTripInState(trips []fleet.Trip, state fleet.TripState) *fleet.Trip {
	for index := range trips {
		if trips[index].State == state {
			return &trips[index]
		}
	}

	return nil
}

func searchMaintenancePlace(trip *fleet.Trip) string {
	if trip == nil {
		return ""
	}

	for _, point := range trip.IntermediatePoints {
		if point.Maintenance != nil && point.Maintenance.ServiceStation.Name != "" {
			return point.Maintenance.ServiceStation.Name
		}
	}

	return ""
}

func searchOffDutyArea(trip *fleet.Trip) string {
	if trip == nil {
		return ""
	}

	for _, point := range trip.IntermediatePoints {
		if point.OffDuty != nil && point.OffDuty.Area.Name != "" {
			return point.OffDuty.Area.Name
		}
	}

	return ""
}

func waypointNameOr(vehicle *fleet.Vehicle, fallback string) string {
	if vehicle.Waypoint != nil && vehicle.Waypoint.Name != "" {
		return vehicle.Waypoint.Name
	}

	return fallback
}
