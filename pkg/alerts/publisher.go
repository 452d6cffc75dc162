package alerts

import (
	"encoding/json"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/fleetlens/fleetlens/pkg/dashboard"
	"github.com/fleetlens/fleetlens/pkg/redis_client"
	"github.com/rs/zerolog/log"
)

const QueueName = "fleet-alerts"

// Alert is the queue payload raised when a rule matches a dashboard row.
type Alert struct {
	RuleName string `json:"ruleName" bson:"rulename"`

	Group         string  `json:"group" bson:"group"`
	VehicleNumber string  `json:"vehicleNumber" bson:"vehiclenumber"`
	Status        string  `json:"status" bson:"status"`
	Place         string  `json:"place" bson:"place"`
	HaltingHours  float64 `json:"haltingHours" bson:"haltinghours"`

	RaisedAt time.Time `json:"raisedAt" bson:"raisedat"`
}

// Publisher evaluates rules over each snapshot and pushes matches onto the
// alerts queue.
type Publisher struct {
	Rules []Rule

	queue rmq.Queue
}

func (p *Publisher) Setup() error {
	queue, err := redis_client.QueueConnection.OpenQueue(QueueName)
	if err != nil {
		return err
	}

	p.queue = queue

	return nil
}

// Evaluate runs every rule over every row of a snapshot. Rule and publish
// failures are logged and skipped - alerting never blocks a refresh.
func (p *Publisher) Evaluate(snapshot *dashboard.Snapshot) {
	for _, rows := range snapshot.Buckets {
		for _, row := range rows {
			p.evaluateRow(snapshot, row)
		}
	}

	for _, row := range snapshot.Unclassified {
		p.evaluateRow(snapshot, row)
	}
}

func (p *Publisher) evaluateRow(snapshot *dashboard.Snapshot, row dashboard.Row) {
	env := RuleEnv{
		VehicleNumber: row.Vehicle.VehicleNumber,
		VehicleType:   row.Vehicle.VehicleType,
		Status:        string(row.Vehicle.Status),
		Place:         row.Place,
		HaltingHours:  row.HaltingHours,
	}

	for index := range p.Rules {
		rule := &p.Rules[index]

		matched, err := rule.Matches(env)
		if err != nil {
			log.Error().Err(err).Str("rule", rule.Name).Msg("Failed to evaluate alert rule")
			continue
		}

		if !matched {
			continue
		}

		alert := Alert{
			RuleName: rule.Name,

			Group:         snapshot.Group,
			VehicleNumber: row.Vehicle.VehicleNumber,
			Status:        string(row.Vehicle.Status),
			Place:         row.Place,
			HaltingHours:  row.HaltingHours,

			RaisedAt: snapshot.CapturedAt,
		}

		alertJSON, _ := json.Marshal(alert)

		if err := p.queue.PublishBytes(alertJSON); err != nil {
			log.Error().Err(err).Str("rule", rule.Name).Msg("Failed to publish alert")
		}
	}
}
