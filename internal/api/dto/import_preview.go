package dto

type PreviewRow struct {
	Line             int    `json:"line"`
	Network          string `json:"network"`
	CountryCode      string `json:"country_code"`
	Subdivision      string `json:"subdivision"`
	City             string `json:"city"`
	PostalCode       string `json:"postal_code"`
	Original         string `json:"original"`
	Valid            bool   `json:"valid"`
	Reason           string `json:"reason,omitempty"`
	Duplicate        bool   `json:"duplicate"`
	Conflict         bool   `json:"conflict"`
	Selected         bool   `json:"selected"`
	SuggestedCountry string `json:"suggested_country,omitempty"`
}

type PreviewSummary struct {
	Valid     int `json:"valid"`
	Invalid   int `json:"invalid"`
	Duplicate int `json:"duplicate"`
	Conflict  int `json:"conflict"`
}

type ImportPreview struct {
	GeofeedId string         `json:"geofeed_id"`
	Rows      []PreviewRow   `json:"rows"`
	Summary   PreviewSummary `json:"summary"`
}
