package sdk

import "time"

// SearchParams holds federated search parameters.
type SearchParams struct {
	Query    string
	Type     string // "all", "products", "notes", "rooms", "rentals"; empty means all
	Page     int
	PageSize int
}

// SimilarParams holds similar-listing lookup parameters.
type SimilarParams struct {
	Type      string // "product", "note", "room"
	Category  string
	College   string
	ExcludeID string
	Page      int
	PageSize  int
}

// Listing is one normalized listing record. Price is nil when the
// listing has no price.
type Listing struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Price       *float64  `json:"price"`
	College     string    `json:"college,omitempty"`
	Location    string    `json:"location,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// SearchResult is a listing plus its sponsorship classification.
type SearchResult struct {
	Listing
	IsSponsored   bool `json:"is_sponsored"`
	SponsoredSlot *int `json:"sponsored_slot,omitempty"`
}

// Counts summarizes a search result set before pagination.
type Counts struct {
	Sponsored int `json:"sponsored"`
	Regular   int `json:"regular"`
	Total     int `json:"total"`
}

// SearchResponse is the federated search payload.
type SearchResponse struct {
	Success bool           `json:"success"`
	Query   string         `json:"query"`
	Type    string         `json:"type"`
	Results []SearchResult `json:"results"`
	Counts  Counts         `json:"counts"`
}

// FeedResponse is the browse feed / similar listings payload.
type FeedResponse struct {
	Success  bool      `json:"success"`
	Listings []Listing `json:"listings"`
	HasMore  bool      `json:"has_more"`
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
