package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

func TestGetVehicles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/vehicles" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("group") != "LINE_17FEET" {
			t.Errorf("unexpected group %s", r.URL.Query().Get("group"))
		}

		fmt.Fprint(w, `{"status":"success","data":{"vehicles":[
			{"_id":"id1","vehicleNumber":"MH12AB1234","vehicleType":"17 Feet","currentTripStatus":"available"},
			{"_id":"id2","vehicleNumber":"MH12CD5678","vehicleType":"17 Feet","currentTripStatus":"in-transit"}
		]}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	vehicles, err := client.GetVehicles(context.Background(), "LINE_17FEET")
	if err != nil {
		t.Fatalf("GetVehicles: %v", err)
	}

	if len(vehicles) != 2 {
		t.Fatalf("expected 2 vehicles, got %d", len(vehicles))
	}
	if vehicles[0].VehicleNumber != "MH12AB1234" {
		t.Errorf("unexpected first vehicle %s", vehicles[0].VehicleNumber)
	}
}

func TestGetVehiclesServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"error","message":"group not found"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	if _, err := client.GetVehicles(context.Background(), "NOPE"); err == nil || err.Error() != "group not found" {
		t.Fatalf("expected server message error, got %v", err)
	}
}

func TestGetHaltingHoursChunksAndMerges(t *testing.T) {
	var mutex sync.Mutex
	var chunkSizes []int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		vnames := strings.Split(r.URL.Query().Get("vnames"), ",")

		mutex.Lock()
		chunkSizes = append(chunkSizes, len(vnames))
		mutex.Unlock()

		if len(vnames) > BatchChunkSize {
			t.Errorf("chunk of %d exceeds limit %d", len(vnames), BatchChunkSize)
		}

		entries := []string{}
		for _, vname := range vnames {
			entries = append(entries, fmt.Sprintf(`%q:{"haltingHours":5,"name":"Depot"}`, vname))
		}

		fmt.Fprintf(w, `{"status":"success","data":{%s}}`, strings.Join(entries, ","))
	}))
	defer server.Close()

	vehicleNumbers := make([]string, 120)
	for i := range vehicleNumbers {
		vehicleNumbers[i] = fmt.Sprintf("VEH%03d", i)
	}

	client := NewClient(server.URL)

	waypoints := client.GetHaltingHours(context.Background(), vehicleNumbers)

	if len(waypoints) != 120 {
		t.Fatalf("expected 120 waypoints, got %d", len(waypoints))
	}
	if len(chunkSizes) != 3 {
		t.Fatalf("expected 3 chunks, got %d (%v)", len(chunkSizes), chunkSizes)
	}
	if waypoints["VEH000"].HaltingHours != 5 {
		t.Errorf("unexpected waypoint %+v", waypoints["VEH000"])
	}
}

func TestGetTripsBestEffortMerge(t *testing.T) {
	var mutex sync.Mutex
	requestCount := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mutex.Lock()
		requestCount += 1
		failing := strings.Contains(r.URL.Query().Get("vehicleNumbers"), "VEH000")
		mutex.Unlock()

		// The chunk holding VEH000 fails; the rest succeed.
		if failing {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		vehicleNumbers := strings.Split(r.URL.Query().Get("vehicleNumbers"), ",")

		entries := []string{}
		for _, vehicleNumber := range vehicleNumbers {
			entries = append(entries, fmt.Sprintf(`%q:[{"_id":"t1","vehicleNumber":%q,"status":"complete","origin":{"name":"A"},"destination":{"name":"B"}}]`, vehicleNumber, vehicleNumber))
		}

		fmt.Fprintf(w, `{"status":"success","data":{%s}}`, strings.Join(entries, ","))
	}))
	defer server.Close()

	vehicleNumbers := make([]string, 100)
	for i := range vehicleNumbers {
		vehicleNumbers[i] = fmt.Sprintf("VEH%03d", i)
	}

	client := NewClient(server.URL)

	trips := client.GetTrips(context.Background(), vehicleNumbers)

	// First chunk (50 vehicles) dropped, second chunk kept.
	if len(trips) != 50 {
		t.Fatalf("expected 50 vehicles with trips, got %d", len(trips))
	}
	if _, found := trips["VEH000"]; found {
		t.Errorf("failed chunk leaked into the merge")
	}
	if tripList, found := trips["VEH099"]; !found || len(tripList) != 1 || tripList[0].Destination.Name != "B" {
		t.Errorf("successful chunk missing or malformed: %v", tripList)
	}
	if requestCount != 2 {
		t.Errorf("expected 2 requests, got %d", requestCount)
	}
}

func TestGetLatestRemark(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("fleetId") == "id1" {
			fmt.Fprint(w, `{"status":"success","data":{"remark":"sent for service","userName":"Asha","userRole":"supervisor"}}`)
			return
		}

		fmt.Fprint(w, `{"status":"success","data":{}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	remark, err := client.GetLatestRemark(context.Background(), "id1")
	if err != nil {
		t.Fatalf("GetLatestRemark: %v", err)
	}
	if remark == nil || remark.Remark != "sent for service" || remark.UserName != "Asha" {
		t.Fatalf("unexpected remark %+v", remark)
	}

	remark, err = client.GetLatestRemark(context.Background(), "id2")
	if err != nil {
		t.Fatalf("GetLatestRemark: %v", err)
	}
	if remark != nil {
		t.Fatalf("expected nil remark, got %+v", remark)
	}
}
