package chi

import (
	"time"

	"github.com/studx-cloud/listdex/internal/domain/listing"
	"github.com/studx-cloud/listdex/internal/domain/search/result"
	healthuc "github.com/studx-cloud/listdex/internal/usecase/health"
)

// errorCode classifies error responses for clients.
type errorCode string

const (
	codeBadRequest    errorCode = "bad_request"
	codeInvalidQuery  errorCode = "invalid_query"
	codeInvalidType   errorCode = "invalid_type"
	codeUnauthorized  errorCode = "unauthorized"
	codeInternalError errorCode = "internal_error"
)

type errorResponse struct {
	Success bool      `json:"success"`
	Code    errorCode `json:"code"`
	Error   string    `json:"error"`
}

type countsResponse struct {
	Sponsored int `json:"sponsored"`
	Regular   int `json:"regular"`
	Total     int `json:"total"`
}

// listingItem is the wire shape of a normalized record. Price stays a
// pointer: a listing without a price serializes as null, not 0.
type listingItem struct {
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

// searchResultItem is a listing plus its sponsorship classification.
type searchResultItem struct {
	listingItem
	IsSponsored   bool `json:"is_sponsored"`
	SponsoredSlot *int `json:"sponsored_slot,omitempty"`
}

type searchResponse struct {
	Success bool               `json:"success"`
	Query   string             `json:"query"`
	Type    string             `json:"type"`
	Results []searchResultItem `json:"results"`
	Counts  countsResponse     `json:"counts"`
}

type feedResponse struct {
	Success  bool          `json:"success"`
	Listings []listingItem `json:"listings"`
	HasMore  bool          `json:"has_more"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func recordToItem(rec listing.Record) listingItem {
	return listingItem{
		ID:          rec.ID(),
		Type:        string(rec.SourceType()),
		Title:       rec.Title(),
		Description: rec.Description(),
		Category:    rec.Category(),
		Price:       rec.Price(),
		College:     rec.College(),
		Location:    rec.Location(),
		IsActive:    rec.IsActive(),
		CreatedAt:   rec.CreatedAt(),
	}
}

func resultToItem(res *result.Result) searchResultItem {
	item := searchResultItem{
		listingItem: recordToItem(res.Record()),
		IsSponsored: res.IsSponsored(),
	}
	if res.IsSponsored() {
		slot := res.Slot()
		item.SponsoredSlot = &slot
	}
	return item
}

func reportToResponse(report healthuc.Report) healthResponse {
	checks := make(map[string]string, len(report.Checks))
	for name, res := range report.Checks {
		checks[name] = string(res)
	}
	return healthResponse{Status: string(report.Status), Checks: checks}
}
