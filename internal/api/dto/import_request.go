package dto

type ImportPreviewRequest struct {
	CsvText string `json:"csv_text"`
	Url     string `json:"url"`
}

type ImportRow struct {
	Network     string `json:"network"`
	CountryCode string `json:"country_code"`
	Subdivision string `json:"subdivision"`
	City        string `json:"city"`
	PostalCode  string `json:"postal_code"`
	Original    string `json:"original"`
}

type ImportRequest struct {
	Finalize bool        `json:"finalize"`
	Rows     []ImportRow `json:"rows"`
}
