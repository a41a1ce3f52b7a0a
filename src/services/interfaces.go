package services

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/DrHac-GH/firstrade-tax-app/src/models"
)

var (
	// ErrNoDateRange means no transaction carries a parseable date, so
	// there is nothing to bound a rate fetch request with.
	ErrNoDateRange = errors.New("no transaction dates available to bound a rate fetch")
	// ErrRateFetchFailed wraps network or non-success responses from the
	// rate provider.
	ErrRateFetchFailed = errors.New("rate fetch failed")
	// ErrFetchInProgress gates overlapping rate fetches for one session.
	ErrFetchInProgress = errors.New("a rate fetch is already in progress")
	// ErrUnknownCategory is returned for an unrecognized export category.
	ErrUnknownCategory = errors.New("unknown export category")
)

// UploadResult reports what one upload contributed to the session.
type UploadResult struct {
	Schema       models.Schema `json:"schema"`
	GainLossRows int           `json:"gain_loss_rows"`
	DividendRows int           `json:"dividend_rows"`
	InterestRows int           `json:"interest_rows"`
	Recalculated bool          `json:"recalculated"`
}

// RateFetchResult reports the outcome of a completed rate fetch.
type RateFetchResult struct {
	RateCount int    `json:"rate_count"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Stale     bool   `json:"stale"` // superseded by a later fetch; result discarded
}

// UploadService is the core pipeline: classify and parse uploads, fetch
// rates, recalculate the derived collections, serve year-filtered views.
type UploadService interface {
	ProcessUpload(sess *Session, file io.Reader) (*UploadResult, error)
	RefreshRates(ctx context.Context, sess *Session) (*RateFetchResult, error)
	GetSummary(sess *Session, year int) *models.Summary
	GetAvailableYears(sess *Session) []int
}

// RateService fetches a USD→JPY daily rate series for an inclusive date
// range from the external provider.
type RateService interface {
	FetchDailyRates(ctx context.Context, start, end time.Time) (models.RateTable, error)
}
