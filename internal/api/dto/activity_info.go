package dto

import "time"

type ActivityInfo struct {
	Action      string    `json:"action"`
	Message     string    `json:"message"`
	GeofeedId   string    `json:"geofeed_id,omitempty"`
	GeofeedName string    `json:"geofeed_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
