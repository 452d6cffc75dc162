package redis_client

import (
	"context"
	"strconv"

	"github.com/adjust/rmq/v5"
	"github.com/fleetlens/fleetlens/pkg/util"
	"github.com/redis/go-redis/v9"
)

var Client *redis.Client
var QueueConnection rmq.Connection

const defaultConnectionAddress = "localhost:6379"
const defaultConnectionPassword = ""
const defaultDatabase = 0

func Connect() error {
	address := defaultConnectionAddress
	password := defaultConnectionPassword
	database := defaultDatabase

	env := util.GetEnvironmentVariables()

	if env["FLEETLENS_REDIS_ADDRESS"] != "" {
		address = env["FLEETLENS_REDIS_ADDRESS"]
	}

	if env["FLEETLENS_REDIS_PASSWORD"] != "" {
		password = env["FLEETLENS_REDIS_PASSWORD"]
	}

	if env["FLEETLENS_REDIS_DATABASE"] != "" {
		if n, err := strconv.Atoi(env["FLEETLENS_REDIS_DATABASE"]); err == nil {
			database = n
		} else {
			return err
		}
	}

	Client = redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       database,
	})

	if err := Client.Ping(context.Background()).Err(); err != nil {
		return err
	}

	var err error
	QueueConnection, err = rmq.OpenConnectionWithRedisClient("fleetlens", Client, nil)
	if err != nil {
		return err
	}

	return nil
}
