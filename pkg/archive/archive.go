package archive

import (
	"context"
	"time"

	"github.com/fleetlens/fleetlens/pkg/classifier"
	"github.com/fleetlens/fleetlens/pkg/dashboard"
	"github.com/fleetlens/fleetlens/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "snapshot_archive"

// Entry is one archived refresh - enough to chart availability over time
// without storing every row.
type Entry struct {
	Group      string    `bson:"group" json:"group" groups:"basic"`
	CapturedAt time.Time `bson:"capturedat" json:"capturedAt" groups:"basic"`

	Stats    classifier.Stats             `bson:"stats" json:"stats" groups:"basic"`
	Branches []classifier.BranchAggregate `bson:"branches" json:"branches" groups:"basic"`
}

// RecordSnapshot archives the summary of one successful refresh.
func RecordSnapshot(ctx context.Context, snapshot *dashboard.Snapshot) error {
	entry := Entry{
		Group:      snapshot.Group,
		CapturedAt: snapshot.CapturedAt,
		Stats:      snapshot.Stats,
		Branches:   snapshot.Branches,
	}

	collection := database.GetCollection(collectionName)
	_, err := collection.InsertOne(ctx, entry)

	return err
}

// GetHistory returns the most recent archive entries for a group,
// newest first.
func GetHistory(ctx context.Context, group string, count int) ([]Entry, error) {
	collection := database.GetCollection(collectionName)

	findOptions := options.Find().
		SetSort(bson.D{{Key: "capturedat", Value: -1}}).
		SetLimit(int64(count))

	cursor, err := collection.Find(ctx, bson.M{"group": group}, findOptions)
	if err != nil {
		return nil, err
	}

	entries := []Entry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}
