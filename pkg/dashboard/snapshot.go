package dashboard

import (
	"context"
	"time"

	"github.com/fleetlens/fleetlens/pkg/classifier"
	"github.com/fleetlens/fleetlens/pkg/fleet"
	"github.com/fleetlens/fleetlens/pkg/upstream"
	"github.com/jinzhu/copier"
)

// Snapshot is one fully classified and annotated view of a fleet group,
// ready for the rendering layer. Snapshots are immutable once built.
type Snapshot struct {
	Group      string    `json:"group" groups:"basic"`
	CapturedAt time.Time `json:"capturedAt" groups:"basic"`

	Stats classifier.Stats `json:"stats" groups:"basic"`

	Buckets map[fleet.TripStatus][]Row `json:"buckets" groups:"basic"`

	Unclassified []Row `json:"unclassified,omitempty" groups:"basic"`

	Branches []classifier.BranchAggregate `json:"branches" groups:"basic"`
}

// Row is one vehicle annotated with every derived display field the tables
// need.
type Row struct {
	Vehicle fleet.Vehicle `json:"vehicle" groups:"basic"`

	Place       string `json:"place" groups:"basic"`
	Destination string `json:"destination" groups:"basic"`

	PendingDistance string `json:"pendingDistance" groups:"basic"`

	HaltingHours float64 `json:"haltingHours" groups:"basic"`
	HaltDisplay  string  `json:"haltDisplay" groups:"basic"`

	PUC     classifier.DocumentStatus `json:"puc" groups:"basic"`
	Permit  classifier.DocumentStatus `json:"permit" groups:"basic"`
	Fitness classifier.DocumentStatus `json:"fitness" groups:"basic"`
}

// DocumentSource supplies the document registry for a build.
type DocumentSource interface {
	Registry(ctx context.Context) (classifier.DocumentRegistry, error)
}

// Builder assembles snapshots. Fetch, classify, annotate - one immutable
// working set per Build call, so concurrent builds don't interfere.
type Builder struct {
	Upstream  *upstream.Client
	Documents DocumentSource

	// Now is swappable for tests. Defaults to time.Now.
	Now func() time.Time
}

func (b *Builder) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}

	return time.Now()
}

// Build runs one full refresh for a fleet group. The vehicle listing and the
// document registry are fatal on failure; the halting-hours and trip batch
// lookups merge best-effort, so gaps there degrade rows to sentinels instead
// of failing the build.
func (b *Builder) Build(ctx context.Context, group string) (*Snapshot, error) {
	vehicles, err := b.Upstream.GetVehicles(ctx, group)
	if err != nil {
		return nil, err
	}

	registry, err := b.Documents.Registry(ctx)
	if err != nil {
		return nil, err
	}

	vehicleNumbers := make([]string, 0, len(vehicles))
	for _, vehicle := range vehicles {
		vehicleNumbers = append(vehicleNumbers, vehicle.VehicleNumber)
	}

	waypoints := b.Upstream.GetHaltingHours(ctx, vehicleNumbers)
	tripsByVehicle := b.Upstream.GetTrips(ctx, vehicleNumbers)

	enriched := enrichVehicles(vehicles, waypoints, tripsByVehicle)

	classification := classifier.Classify(enriched, tripsByVehicle)

	now := b.now()

	snapshot := &Snapshot{
		Group:      group,
		CapturedAt: now,
		Stats:      classification.Stats,
		Buckets:    map[fleet.TripStatus][]Row{},
		Branches:   classification.Branches,
	}

	for status, bucket := range classification.Buckets {
		rows := make([]Row, 0, len(bucket))
		for _, vehicle := range bucket {
			rows = append(rows, buildRow(vehicle, status, tripsByVehicle, registry, now))
		}
		snapshot.Buckets[status] = rows
	}

	for _, vehicle := range classification.Unclassified {
		snapshot.Unclassified = append(snapshot.Unclassified, buildRow(vehicle, vehicle.Status, tripsByVehicle, registry, now))
	}

	return snapshot, nil
}

// enrichVehicles joins the batch lookup results onto deep copies of the raw
// vehicles, keeping the fetched records untouched.
func enrichVehicles(vehicles []fleet.Vehicle, waypoints map[string]fleet.Waypoint, tripsByVehicle map[string][]fleet.Trip) []fleet.Vehicle {
	enriched := make([]fleet.Vehicle, 0, len(vehicles))

	for _, vehicle := range vehicles {
		var copied fleet.Vehicle
		copier.CopyWithOption(&copied, vehicle, copier.Option{DeepCopy: true})

		if waypoint, found := waypoints[vehicle.VehicleNumber]; found {
			copied.Waypoint = &waypoint
			copied.HaltingHours = waypoint.HaltingHours
		}

		if trips := tripsByVehicle[vehicle.VehicleNumber]; len(trips) > 0 {
			copied.CurrentTripID = trips[0].PrimaryIdentifier
		}

		enriched = append(enriched, copied)
	}

	return enriched
}

func buildRow(vehicle fleet.Vehicle, status fleet.TripStatus, tripsByVehicle map[string][]fleet.Trip, registry classifier.DocumentRegistry, now time.Time) Row {
	row := Row{
		Vehicle: vehicle,

		Place: classifier.ResolvePlace(&vehicle, status, tripsByVehicle),

		Destination:     classifier.PlaceUnknown,
		PendingDistance: classifier.DistanceUnavailable,

		PUC:     registry.Lookup(vehicle.VehicleNumber, fleet.DocumentKindPUC, now),
		Permit:  registry.Lookup(vehicle.VehicleNumber, fleet.DocumentKindPermit, now),
		Fitness: registry.Lookup(vehicle.VehicleNumber, fleet.DocumentKindFitness, now),
	}

	if vehicle.Waypoint != nil {
		row.HaltingHours = vehicle.Waypoint.HaltingHours
	}
	row.HaltDisplay = FormatHaltingHours(row.HaltingHours)

	var latestTrip *fleet.Trip
	if trips := tripsByVehicle[vehicle.VehicleNumber]; len(trips) > 0 {
		latestTrip = &trips[0]
	}

	if latestTrip != nil && latestTrip.Destination.Name != "" {
		row.Destination = latestTrip.Destination.Name
	}

	// Distance to destination only means anything for vehicles out working.
	if status != fleet.TripStatusAvailable {
		row.PendingDistance = classifier.PendingDistance(&vehicle, latestTrip)
	}

	return row
}
