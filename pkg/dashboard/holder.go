package dashboard

import "sync"

// SnapshotHolder keeps the most recent successful snapshot so secondary
// routes (vehicle detail, exports) can serve without triggering a refresh.
type SnapshotHolder struct {
	mutex    sync.RWMutex
	snapshot *Snapshot
}

func (h *SnapshotHolder) Store(snapshot *Snapshot) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.snapshot = snapshot
}

func (h *SnapshotHolder) Latest() *Snapshot {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return h.snapshot
}

// FindRow locates a vehicle's annotated row in any bucket of a snapshot.
func (s *Snapshot) FindRow(vehicleNumber string) *Row {
	for _, rows := range s.Buckets {
		for index := range rows {
			if rows[index].Vehicle.VehicleNumber == vehicleNumber {
				return &rows[index]
			}
		}
	}

	for index := range s.Unclassified {
		if s.Unclassified[index].Vehicle.VehicleNumber == vehicleNumber {
			return &s.Unclassified[index]
		}
	}

	return nil
}
