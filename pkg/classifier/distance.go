package classifier

import (
	"fmt"
	"math"

	"github.com/fleetlens/fleetlens/pkg/fleet"
)

// DistanceUnavailable is returned whenever either end of the computation is
// missing a coordinate.
const DistanceUnavailable = "N/A"

const earthRadiusKm = 6371

// PendingDistance formats the great-circle distance from the vehicle's last
// waypoint to the latest trip's destination.
func PendingDistance(vehicle *fleet.Vehicle, latestTrip *fleet.Trip) string {
	if vehicle.Waypoint == nil || vehicle.Waypoint.Latitude == nil || vehicle.Waypoint.Longitude == nil {
		return DistanceUnavailable
	}
	if latestTrip == nil {
		return DistanceUnavailable
	}

	destinationLat, destinationLng, found := latestTrip.Destination.LatLng()
	if !found {
		return DistanceUnavailable
	}

	distance := haversineKm(*vehicle.Waypoint.Latitude, *vehicle.Waypoint.Longitude, destinationLat, destinationLng)

	return fmt.Sprintf("%.2f km", distance)
}

func haversineKm(lat1Deg float64, lng1Deg float64, lat2Deg float64, lng2Deg float64) float64 {
	lat1 := degreesToRadians(lat1Deg)
	lng1 := degreesToRadians(lng1Deg)
	lat2 := degreesToRadians(lat2Deg)
	lng2 := degreesToRadians(lng2Deg)

	deltaLat := lat2 - lat1
	deltaLng := lng2 - lng1

	a := math.Pow(math.Sin(deltaLat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(deltaLng/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
