package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/fleetlens/fleetlens/pkg/classifier"
	"github.com/fleetlens/fleetlens/pkg/fleet"
	"github.com/fleetlens/fleetlens/pkg/redis_client"
)

const documentRegistryCacheKey = "fleetlens/document-registry"

// GetDocumentRegistry fetches the whole document registry resource. It is a
// static file on the upstream host, so there is no batching or pagination.
func (c *Client) GetDocumentRegistry(ctx context.Context) ([]fleet.DocumentRecord, error) {
	requestURL := fmt.Sprintf("%s/vehicle_documents.json", c.Endpoint)

	var records []fleet.DocumentRecord
	if err := c.getJSON(ctx, requestURL, &records); err != nil {
		return nil, err
	}

	return records, nil
}

// DocumentCache serves the document registry out of redis, refetching from
// upstream when the cached copy expires.
type DocumentCache struct {
	Client *Client

	Cache *cache.Cache[string]
}

func (d *DocumentCache) Setup() {
	redisStore := redisstore.NewRedis(redis_client.Client, store.WithExpiration(30*time.Minute))

	d.Cache = cache.New[string](redisStore)
}

func (d *DocumentCache) Registry(ctx context.Context) (classifier.DocumentRegistry, error) {
	cacheValue, err := d.Cache.Get(ctx, documentRegistryCacheKey)
	if err == nil {
		var records []fleet.DocumentRecord
		if err := json.Unmarshal([]byte(cacheValue), &records); err == nil {
			return classifier.NewDocumentRegistry(records), nil
		}
	}

	records, err := d.Client.GetDocumentRegistry(ctx)
	if err != nil {
		return nil, err
	}

	recordsJSON, _ := json.Marshal(records)
	d.Cache.Set(ctx, documentRegistryCacheKey, string(recordsJSON))

	return classifier.NewDocumentRegistry(records), nil
}
