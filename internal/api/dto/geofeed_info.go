package dto

import "time"

type GeofeedInfo struct {
	Id           string    `json:"id"`
	Name         string    `json:"name"`
	IsDraft      bool      `json:"is_draft"`
	Published    bool      `json:"published"`
	CreatedAt    time.Time `json:"created_at"`
	RangeCount   int64     `json:"range_count"`
	PublishedUrl string    `json:"published_url,omitempty"`
}
