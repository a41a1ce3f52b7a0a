package services

import (
	"context"
	"io"
	"time"

	"github.com/DrHac-GH/firstrade-tax-app/src/logger"
	"github.com/DrHac-GH/firstrade-tax-app/src/models"
	"github.com/DrHac-GH/firstrade-tax-app/src/parsers"
	"github.com/DrHac-GH/firstrade-tax-app/src/processors"
	"github.com/DrHac-GH/firstrade-tax-app/src/utils"
)

// rateFetchPadding extends the fetch range backward before the earliest
// transaction so the resolver's fallback window has data to search.
const rateFetchPadding = 10

type uploadServiceImpl struct {
	parser      parsers.Parser
	rateService RateService
}

func NewUploadService(parser parsers.Parser, rateService RateService) UploadService {
	return &uploadServiceImpl{
		parser:      parser,
		rateService: rateService,
	}
}

// ProcessUpload classifies and parses one uploaded file into the session.
// A gain/loss file replaces the capital-gains raw rows; a history file
// replaces both the dividend and interest subsets. Derived collections are
// recalculated immediately when a rate table is already present.
func (s *uploadServiceImpl) ProcessUpload(sess *Session, file io.Reader) (*UploadResult, error) {
	startTime := time.Now()
	parsed, err := s.parser.Parse(file)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	switch parsed.Schema {
	case models.SchemaGainLoss:
		sess.GainLossRows = parsed.GainLoss
	case models.SchemaHistory:
		sess.DividendRows = parsed.Dividends
		sess.InterestRows = parsed.Interest
	}

	recalculated := false
	if len(sess.Rates) > 0 {
		s.recalculateLocked(sess)
		recalculated = true
	}

	logger.L.Info("Upload processed",
		"sessionID", sess.ID, "schema", parsed.Schema,
		"gainLossRows", len(parsed.GainLoss),
		"dividendRows", len(parsed.Dividends),
		"interestRows", len(parsed.Interest),
		"duration", time.Since(startTime))

	return &UploadResult{
		Schema:       parsed.Schema,
		GainLossRows: len(parsed.GainLoss),
		DividendRows: len(parsed.Dividends),
		InterestRows: len(parsed.Interest),
		Recalculated: recalculated,
	}, nil
}

// RefreshRates fetches a fresh USD→JPY rate series spanning the session's
// transaction dates, swaps the table wholesale and recalculates. A busy
// flag rejects overlapping fetches up front; the generation counter
// additionally discards a stale response that lost the race to a later
// fetch, so it can never clobber newer state.
func (s *uploadServiceImpl) RefreshRates(ctx context.Context, sess *Session) (*RateFetchResult, error) {
	sess.mu.Lock()
	if sess.fetchBusy {
		sess.mu.Unlock()
		return nil, ErrFetchInProgress
	}
	start, end, ok := transactionDateRangeLocked(sess)
	if !ok {
		sess.mu.Unlock()
		return nil, ErrNoDateRange
	}
	sess.fetchBusy = true
	sess.fetchGeneration++
	generation := sess.fetchGeneration
	sess.mu.Unlock()

	fetchStart := start.AddDate(0, 0, -rateFetchPadding)
	table, err := s.rateService.FetchDailyRates(ctx, fetchStart, end)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.fetchBusy = false
	if err != nil {
		return nil, err
	}
	if generation != sess.fetchGeneration {
		logger.L.Warn("Discarding stale rate fetch response", "sessionID", sess.ID, "generation", generation)
		return &RateFetchResult{Stale: true}, nil
	}

	sess.Rates = table
	s.recalculateLocked(sess)

	return &RateFetchResult{
		RateCount: len(table),
		StartDate: fetchStart.Format(utils.ISODateFormat),
		EndDate:   end.Format(utils.ISODateFormat),
	}, nil
}

// GetSummary builds the year-filtered view. A year of 0 selects the most
// recent available year. Filtering never mutates the derived collections.
func (s *uploadServiceImpl) GetSummary(sess *Session, year int) *models.Summary {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	years := processors.AvailableYears(sess.CapitalGains, sess.Dividends, sess.Interest)
	if year <= 0 {
		year = years[0]
	}

	gains := processors.FilterCapitalGainsByYear(sess.CapitalGains, year)
	dividends := processors.FilterDividendsByYear(sess.Dividends, year)
	interest := processors.FilterInterestByYear(sess.Interest, year)

	return &models.Summary{
		Year:              year,
		AvailableYears:    years,
		SymbolGroups:      processors.GroupBySymbol(gains),
		CapitalGains:      gains,
		CapitalGainTotals: processors.SumCapitalGains(gains),
		Dividends:         dividends,
		DividendTotals:    processors.SumDividends(dividends),
		Interest:          interest,
		InterestTotals:    processors.SumInterest(interest),
		RateCount:         len(sess.Rates),
	}
}

func (s *uploadServiceImpl) GetAvailableYears(sess *Session) []int {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return processors.AvailableYears(sess.CapitalGains, sess.Dividends, sess.Interest)
}

// recalculateLocked rebuilds all three derived collections from the raw
// rows and the current rate table. Caller holds sess.mu.
func (s *uploadServiceImpl) recalculateLocked(sess *Session) {
	sess.CapitalGains = processors.CalculateCapitalGains(sess.GainLossRows, sess.Rates)
	sess.Dividends = processors.CalculateDividends(sess.DividendRows, sess.Rates)
	sess.Interest = processors.CalculateInterest(sess.InterestRows, sess.Rates)
}

// transactionDateRangeLocked scans the raw rows for the earliest and
// latest parseable dates. Acquisition dates count toward the lower bound so
// acquisition-rate lookups have coverage too. Caller holds sess.mu.
func transactionDateRangeLocked(sess *Session) (time.Time, time.Time, bool) {
	var min, max time.Time
	consider := func(t time.Time) {
		if min.IsZero() || t.Before(min) {
			min = t
		}
		if max.IsZero() || t.After(max) {
			max = t
		}
	}

	for _, row := range sess.GainLossRows {
		if t, ok := utils.ParseFlexibleDate(row.DateSold); ok {
			consider(t)
		}
		if t, ok := utils.ParseFlexibleDate(row.DateAcquired); ok {
			consider(t)
		}
	}
	for _, row := range sess.DividendRows {
		if t, ok := utils.ParseFlexibleDate(row.TradeDate); ok {
			consider(t)
		}
	}
	for _, row := range sess.InterestRows {
		if t, ok := utils.ParseFlexibleDate(row.TradeDate); ok {
			consider(t)
		}
	}

	if min.IsZero() {
		return time.Time{}, time.Time{}, false
	}
	return min, max, true
}
