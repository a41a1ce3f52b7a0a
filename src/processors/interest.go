package processors

import (
	"math"

	"github.com/DrHac-GH/firstrade-tax-app/src/models"
	"github.com/DrHac-GH/firstrade-tax-app/src/utils"
)

// CalculateInterest derives interest transactions from raw history rows.
// Structurally a dividend without the tax leg.
func CalculateInterest(rows []models.HistoryRow, rates models.RateTable) []models.InterestTransaction {
	out := make([]models.InterestTransaction, 0, len(rows))
	for _, row := range rows {
		date, ok := utils.ParseFlexibleDate(row.TradeDate)
		if !ok {
			continue
		}

		netUSD := utils.ParseMoney(row.Amount)
		rate, _ := ResolveRate(date, rates)

		out = append(out, models.InterestTransaction{
			ID:          len(out),
			Symbol:      row.Symbol,
			Date:        date,
			NetUSD:      netUSD,
			Rate:        rate,
			NetJPY:      int64(math.Floor(netUSD * rate)),
			Description: row.Description,
		})
	}
	return out
}
