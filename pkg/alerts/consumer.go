package alerts

import (
	"context"
	"encoding/json"

	"github.com/adjust/rmq/v5"
	"github.com/fleetlens/fleetlens/pkg/database"
	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
)

// BatchConsumer drains the alerts queue into the alerts collection.
type BatchConsumer struct {
	id int
}

func NewBatchConsumer(id int) *BatchConsumer {
	return &BatchConsumer{id: id}
}

func (consumer *BatchConsumer) Consume(batch rmq.Deliveries) {
	alertsCollection := database.GetCollection("alerts")

	for _, payload := range batch.Payloads() {
		var alert Alert
		if err := json.Unmarshal([]byte(payload), &alert); err != nil {
			log.Error().Err(err).Msg("Failed to decode alert payload")
			pretty.Println(payload)
			continue
		}

		log.Info().
			Str("rule", alert.RuleName).
			Str("vehicle", alert.VehicleNumber).
			Float64("haltinghours", alert.HaltingHours).
			Msg("Recording alert")

		if _, err := alertsCollection.InsertOne(context.Background(), alert); err != nil {
			log.Error().Err(err).Msg("Failed to record alert")
		}
	}

	if ackErrors := batch.Ack(); len(ackErrors) > 0 {
		for _, err := range ackErrors {
			log.Fatal().Err(err).Msg("Failed to consume alert")
		}
	}
}
