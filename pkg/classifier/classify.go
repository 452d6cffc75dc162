package classifier

import (
	"sort"

	"github.com/fleetlens/fleetlens/pkg/fleet"
	"golang.org/x/exp/slices"
)

// Classification is the result of one pass over a fleet snapshot. It is
// rebuilt wholesale on every refresh and never mutated afterwards.
type Classification struct {
	Buckets map[fleet.TripStatus][]fleet.Vehicle `json:"buckets" groups:"basic"`

	// Vehicles whose status is outside the known set. They land in no
	// bucket but are kept visible rather than silently vanishing.
	Unclassified []fleet.Vehicle `json:"unclassified,omitempty" groups:"basic"`

	Stats Stats `json:"stats" groups:"basic"`

	Branches []BranchAggregate `json:"branches" groups:"basic"`
}

type Stats struct {
	Total            int `json:"total" groups:"basic"`
	Available        int `json:"available" groups:"basic"`
	InTransit        int `json:"inTransit" groups:"basic"`
	AtUnloading      int `json:"atUnloading" groups:"basic"`
	EmptyMovement    int `json:"emptyMovement" groups:"basic"`
	OffDuty          int `json:"offDuty" groups:"basic"`
	AtPickup         int `json:"atPickup" groups:"basic"`
	EnrouteForPickup int `json:"enrouteForPickup" groups:"basic"`
	Maintenance      int `json:"maintenance" groups:"basic"`
}

// BranchAggregate counts available vehicles resolved to one place, feeding
// the branch availability charts.
type BranchAggregate struct {
	Place    string          `json:"branch" groups:"basic"`
	Count    int             `json:"count" groups:"basic"`
	Vehicles []BranchVehicle `json:"vehicles" groups:"basic"`
}

type BranchVehicle struct {
	VehicleNumber string  `json:"vehicleNumber" groups:"basic"`
	HaltingHours  float64 `json:"haltingHours" groups:"basic"`
}

// Classify partitions a fleet snapshot into the fixed status buckets, orders
// each bucket by halting priority and aggregates available vehicles by
// branch. The input slices are left untouched.
func Classify(vehicles []fleet.Vehicle, tripsByVehicle map[string][]fleet.Trip) Classification {
	classification := Classification{
		Buckets: map[fleet.TripStatus][]fleet.Vehicle{},
	}

	for _, status := range fleet.AllTripStatuses {
		classification.Buckets[status] = []fleet.Vehicle{}
	}

	for _, vehicle := range vehicles {
		if vehicle.Status.Recognized() {
			classification.Buckets[vehicle.Status] = append(classification.Buckets[vehicle.Status], vehicle)
		} else {
			classification.Unclassified = append(classification.Unclassified, vehicle)
		}
	}

	for status := range classification.Buckets {
		SortByHaltPriority(classification.Buckets[status])
	}

	classification.Stats = Stats{
		Total:            len(vehicles),
		Available:        len(classification.Buckets[fleet.TripStatusAvailable]),
		InTransit:        len(classification.Buckets[fleet.TripStatusInTransit]),
		AtUnloading:      len(classification.Buckets[fleet.TripStatusAtUnloading]),
		EmptyMovement:    len(classification.Buckets[fleet.TripStatusEmptyMovement]),
		OffDuty:          len(classification.Buckets[fleet.TripStatusOffDuty]),
		AtPickup:         len(classification.Buckets[fleet.TripStatusAtPickup]),
		EnrouteForPickup: len(classification.Buckets[fleet.TripStatusEnrouteForPickup]),
		Maintenance:      len(classification.Buckets[fleet.TripStatusMaintenance]),
	}

	classification.Branches = AggregateBranches(classification.Buckets[fleet.TripStatusAvailable], tripsByVehicle)

	return classification
}

// Halting hours bucket into alert tiers - the coarse tier dominates the raw
// hour count when ordering, so a 24h vehicle always outranks a 23h one while
// 13h and 23h stay adjacent.
func haltPriorityTier(haltingHours float64) int {
	switch {
	case haltingHours >= 24:
		return 3
	case haltingHours >= 12:
		return 2
	default:
		return 1
	}
}

// SortByHaltPriority orders vehicles by descending alert tier, then by
// descending raw halting hours within a tier. The sort is stable.
func SortByHaltPriority(vehicles []fleet.Vehicle) {
	slices.SortStableFunc(vehicles, func(a fleet.Vehicle, b fleet.Vehicle) int {
		aHours := waypointHaltingHours(&a)
		bHours := waypointHaltingHours(&b)

		if tierDelta := haltPriorityTier(bHours) - haltPriorityTier(aHours); tierDelta != 0 {
			return tierDelta
		}

		switch {
		case bHours > aHours:
			return 1
		case bHours < aHours:
			return -1
		default:
			return 0
		}
	})
}

func waypointHaltingHours(vehicle *fleet.Vehicle) float64 {
	if vehicle.Waypoint == nil {
		return 0
	}

	return vehicle.Waypoint.HaltingHours
}

// AggregateBranches tallies available vehicles per resolved place. Output is
// sorted by place name so identical snapshots aggregate identically.
func AggregateBranches(availableVehicles []fleet.Vehicle, tripsByVehicle map[string][]fleet.Trip) []BranchAggregate {
	byPlace := map[string]*BranchAggregate{}

	for _, vehicle := range availableVehicles {
		place := ResolvePlace(&vehicle, fleet.TripStatusAvailable, tripsByVehicle)

		aggregate := byPlace[place]
		if aggregate == nil {
			aggregate = &BranchAggregate{Place: place}
			byPlace[place] = aggregate
		}

		aggregate.Count += 1
		aggregate.Vehicles = append(aggregate.Vehicles, BranchVehicle{
			VehicleNumber: vehicle.VehicleNumber,
			HaltingHours:  vehicle.HaltingHours,
		})
	}

	branches := make([]BranchAggregate, 0, len(byPlace))
	for _, aggregate := range byPlace {
		branches = append(branches, *aggregate)
	}

	sort.Slice(branches, func(i, j int) bool {
		return branches[i].Place < branches[j].Place
	})

	return branches
}
