package model

// RegionCount pairs a region with its submission count.
type RegionCount struct {
	Region string `db:"region" json:"region"`
	Count  int64  `db:"count" json:"count"`
}

// Stats aggregates submission counts across the whole corpus.
type Stats struct {
	Total         int64            `json:"total_submissions"`
	ByCategory    map[string]int64 `json:"by_category"`
	ByContentType map[string]int64 `json:"by_content_type"`
	TopRegions    []RegionCount    `json:"top_regions"`
}
