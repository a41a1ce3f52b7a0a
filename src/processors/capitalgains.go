package processors

import (
	"math"
	"time"

	"github.com/DrHac-GH/firstrade-tax-app/src/models"
	"github.com/DrHac-GH/firstrade-tax-app/src/utils"
)

// Per-row annotations. A transaction carries at most one note; the
// various-date note takes precedence when both conditions hold.
const (
	NoteVariousDate  = "various acquisition date"
	NoteRateNotFound = "rate lookup failed"
)

// CalculateCapitalGains derives capital-gain transactions from raw
// gain/loss rows. Pure given its inputs; invoked again in full whenever
// either input changes. Rows whose sale date cannot be parsed are dropped:
// an undatable sale cannot be reported. IDs are dense, zero-based, in
// input order, and local to one calculation run.
func CalculateCapitalGains(rows []models.GainLossRow, rates models.RateTable) []models.CapitalGainTransaction {
	out := make([]models.CapitalGainTransaction, 0, len(rows))
	for _, row := range rows {
		dateSold, ok := utils.ParseFlexibleDate(row.DateSold)
		if !ok {
			continue
		}

		var dateAcquired *time.Time
		note := ""
		if t, ok := utils.ParseFlexibleDate(row.DateAcquired); ok {
			dateAcquired = &t
		} else if utils.IsVariousDate(row.DateAcquired) {
			note = NoteVariousDate
		} else {
			// Undated for some other reason: substitute the sale date so a
			// same-day rate is used rather than failing the row.
			t := dateSold
			dateAcquired = &t
		}

		proceedsUSD := utils.ParseMoney(row.SalesProceeds)
		costUSD := utils.ParseMoney(row.AdjustedCost)
		washUSD := utils.ParseMoney(row.WashSaleDisallowed)

		// An aggregated "VARIOUS" lot has no acquisition date to resolve a
		// rate for; the sale-date rate converts the cost and the note flags
		// the approximation.
		acquisitionDate := dateSold
		if dateAcquired != nil {
			acquisitionDate = *dateAcquired
		}
		rateAcquired, _ := ResolveRate(acquisitionDate, rates)
		rateSold, _ := ResolveRate(dateSold, rates)
		if rateSold == 0 && note == "" {
			note = NoteRateNotFound
		}

		// Flooring happens here, at the conversion step. The gain/loss is
		// the difference of the floored integers.
		proceedsJPY := int64(math.Floor(proceedsUSD * rateSold))
		costJPY := int64(math.Floor(costUSD * rateAcquired))

		out = append(out, models.CapitalGainTransaction{
			ID:                    len(out),
			Symbol:                row.Symbol,
			Quantity:              utils.ParseMoney(row.Quantity),
			DateAcquired:          dateAcquired,
			DateSold:              dateSold,
			ProceedsUSD:           proceedsUSD,
			CostUSD:               costUSD,
			WashSaleDisallowedUSD: washUSD,
			RateAcquired:          rateAcquired,
			RateSold:              rateSold,
			ProceedsJPY:           proceedsJPY,
			CostJPY:               costJPY,
			GainLossJPY:           proceedsJPY - costJPY,
			IsWashSale:            row.WashSaleFlag == "YES",
			Notes:                 note,
		})
	}
	return out
}
