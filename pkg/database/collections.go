package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func createIndexes() {
	createSnapshotArchiveIndexes()
	createAlertsIndexes()
}

func createSnapshotArchiveIndexes() {
	archiveCollection := GetCollection("snapshot_archive")
	archiveIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "group", Value: 1}, {Key: "capturedat", Value: -1}},
		},
	}

	_, err := archiveCollection.Indexes().CreateMany(context.Background(), archiveIndex)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create snapshot archive indexes")
	}
}

func createAlertsIndexes() {
	alertsCollection := GetCollection("alerts")
	alertsIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "vehiclenumber", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "raisedat", Value: -1}},
		},
	}

	_, err := alertsCollection.Indexes().CreateMany(context.Background(), alertsIndex)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create alerts indexes")
	}
}
