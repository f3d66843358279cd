package http

import "time"

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Utilization reports decimals as strings to keep their exact value.
type Utilization struct {
	Locations      int    `json:"locations"`
	ItemCount      int    `json:"item_count"`
	CurrentWeight  string `json:"current_weight"`
	CurrentVolume  string `json:"current_volume"`
	MaxWeight      string `json:"max_weight"`
	MaxVolume      string `json:"max_volume"`
	WeightPercent  string `json:"weight_percent"`
	VolumePercent  string `json:"volume_percent"`
	AvailableCount int    `json:"available_count"`
}

type LocationPath struct {
	LocationID string   `json:"location_id"`
	Code       string   `json:"code"`
	Path       string   `json:"path"`
	Codes      []string `json:"codes"`
}

type UrgentItem struct {
	RecordID             string     `json:"record_id"`
	OrderID              string     `json:"order_id"`
	LocationCode         string     `json:"location_code"`
	Status               string     `json:"status"`
	AlertReason          string     `json:"alert_reason,omitempty"`
	PlannedMoveAt        *time.Time `json:"planned_move_at,omitempty"`
	Overdue              bool       `json:"overdue"`
	StorageDurationHours int64      `json:"storage_duration_hours"`
}
