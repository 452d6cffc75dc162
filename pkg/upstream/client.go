package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/fleetlens/fleetlens/pkg/fleet"
	"github.com/fleetlens/fleetlens/pkg/util"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

// BatchChunkSize is the most vehicle numbers the batch endpoints accept in
// one request.
const BatchChunkSize = 50

const batchFetchMaxGoroutines = 10

// MergePolicy names how per-chunk results combine into one batch result.
type MergePolicy string

// MergeBestEffort drops failed chunks and keeps whatever the successful ones
// returned. It is the only policy the batch endpoints are called with - a
// stale gap is preferable to failing the whole refresh.
const MergeBestEffort MergePolicy = "best-effort"

const apiStatusSuccess = "success"

// Client talks to the external fleet API. It holds no state beyond the
// endpoint so it is safe for concurrent use.
type Client struct {
	Endpoint string

	HTTPClient *http.Client
}

func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = util.GetEnvironmentVariable("FLEETLENS_UPSTREAM_ENDPOINT", "http://localhost:3000")
	}

	return &Client{
		Endpoint:   strings.TrimRight(endpoint, "/"),
		HTTPClient: &http.Client{},
	}
}

// GetVehicles lists every vehicle in a named fleet group. Unlike the batch
// lookups this call is fatal on failure - without the vehicle set there is
// nothing to classify.
func (c *Client) GetVehicles(ctx context.Context, group string) ([]fleet.Vehicle, error) {
	requestURL := fmt.Sprintf("%s/api/vehicles?group=%s", c.Endpoint, url.QueryEscape(group))

	var response struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Data    struct {
			Vehicles []fleet.Vehicle `json:"vehicles"`
		} `json:"data"`
	}

	if err := c.getJSON(ctx, requestURL, &response); err != nil {
		return nil, err
	}

	if response.Status != apiStatusSuccess {
		if response.Message != "" {
			return nil, errors.New(response.Message)
		}
		return nil, errors.New("failed to fetch vehicles")
	}

	return response.Data.Vehicles, nil
}

// GetHaltingHours looks up the latest waypoint for each vehicle number,
// chunked and fetched in parallel under MergeBestEffort.
func (c *Client) GetHaltingHours(ctx context.Context, vehicleNumbers []string) map[string]fleet.Waypoint {
	return fetchBatched(ctx, c, vehicleNumbers, func(chunk []string) string {
		return fmt.Sprintf("%s/api/halting-hours/batch?vnames=%s", c.Endpoint, url.QueryEscape(strings.Join(chunk, ",")))
	}, func(accumulator map[string]fleet.Waypoint, chunk map[string]fleet.Waypoint) {
		for vehicleNumber, waypoint := range chunk {
			accumulator[vehicleNumber] = waypoint
		}
	})
}

// GetTrips looks up the trip history (most-recent-first) for each vehicle
// number, chunked and fetched in parallel under MergeBestEffort.
func (c *Client) GetTrips(ctx context.Context, vehicleNumbers []string) map[string][]fleet.Trip {
	return fetchBatched(ctx, c, vehicleNumbers, func(chunk []string) string {
		return fmt.Sprintf("%s/api/trip/batch?vehicleNumbers=%s", c.Endpoint, url.QueryEscape(strings.Join(chunk, ",")))
	}, func(accumulator map[string][]fleet.Trip, chunk map[string][]fleet.Trip) {
		for vehicleNumber, trips := range chunk {
			accumulator[vehicleNumber] = trips
		}
	})
}

// fetchBatched runs one request per chunk of vehicle numbers through a
// bounded pool, joins them all, then folds the successful chunks into a
// single map. Failed chunks contribute nothing.
func fetchBatched[V any](ctx context.Context, c *Client, vehicleNumbers []string, buildURL func([]string) string, merge func(map[string]V, map[string]V)) map[string]V {
	chunkPool := pool.NewWithResults[map[string]V]()
	chunkPool.WithMaxGoroutines(batchFetchMaxGoroutines)

	for _, chunk := range util.ChunkSlice(vehicleNumbers, BatchChunkSize) {
		chunkPool.Go(func() map[string]V {
			requestURL := buildURL(chunk)

			var response struct {
				Status string       `json:"status"`
				Data   map[string]V `json:"data"`
			}

			if err := c.getJSON(ctx, requestURL, &response); err != nil {
				log.Debug().Err(err).Int("chunk", len(chunk)).Msg("Skipping failed batch chunk")
				return nil
			}

			if response.Status != apiStatusSuccess {
				log.Debug().Int("chunk", len(chunk)).Msg("Skipping non-success batch chunk")
				return nil
			}

			return response.Data
		})
	}

	accumulator := map[string]V{}
	for _, chunkResult := range chunkPool.Wait() {
		if chunkResult != nil {
			merge(accumulator, chunkResult)
		}
	}

	return accumulator
}

// Remark is the latest free-text note recorded against a vehicle.
type Remark struct {
	Remark   string `json:"remark" groups:"detailed"`
	UserName string `json:"userName" groups:"detailed"`
	UserRole string `json:"userRole" groups:"detailed"`
}

// GetLatestRemark fetches the newest remark for a vehicle by its internal
// identifier. No remark is not an error - the pointer is just nil.
func (c *Client) GetLatestRemark(ctx context.Context, fleetID string) (*Remark, error) {
	requestURL := fmt.Sprintf("%s/api/fleet-remarks?fleetId=%s", c.Endpoint, url.QueryEscape(fleetID))

	var response struct {
		Status string `json:"status"`
		Data   Remark `json:"data"`
	}

	if err := c.getJSON(ctx, requestURL, &response); err != nil {
		return nil, err
	}

	if response.Status != apiStatusSuccess || response.Data.Remark == "" {
		return nil, nil
	}

	return &response.Data, nil
}

func (c *Client) getJSON(ctx context.Context, requestURL string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(target)
}
