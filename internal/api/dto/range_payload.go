package dto

type RangePayload struct {
	Network     string `json:"network"`
	CountryCode string `json:"country_code"`
	Subdivision string `json:"subdivision"`
	City        string `json:"city"`
	PostalCode  string `json:"postal_code"`
}

type RangeInfo struct {
	Id          string `json:"id"`
	Network     string `json:"network"`
	CountryCode string `json:"country_code"`
	Subdivision string `json:"subdivision"`
	City        string `json:"city"`
	PostalCode  string `json:"postal_code"`
}

type BulkDeleteRanges struct {
	RangeIds []string `json:"range_ids"`
}
