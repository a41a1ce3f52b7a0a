package processors

import (
	"time"

	"github.com/DrHac-GH/firstrade-tax-app/src/models"
	"github.com/DrHac-GH/firstrade-tax-app/src/utils"
)

// RateDateNotFound is the sentinel dateUsed value returned when no rate
// exists within the lookback window. The accompanying rate of 0 is a
// detectable error condition downstream, never a legitimate rate.
const RateDateNotFound = "not found"

// maxRateLookups caps the backward search: the requested date plus up to
// nine prior calendar days. Rate providers publish business-day rates only,
// so weekend/holiday transactions fall back to the most recent prior
// published rate; the cap prevents unbounded walking when the table is
// incomplete or the date is outside the fetched range.
const maxRateLookups = 10

// ResolveRate finds the USD→JPY rate applicable to date. On a direct hit
// the stored rate and that exact ISO date are returned; otherwise the
// search steps backward one calendar day at a time. After maxRateLookups
// misses it returns (0, RateDateNotFound).
func ResolveRate(date time.Time, table models.RateTable) (float64, string) {
	d := date
	for i := 0; i < maxRateLookups; i++ {
		key := d.Format(utils.ISODateFormat)
		if rate, ok := table[key]; ok {
			return rate, key
		}
		d = d.AddDate(0, 0, -1)
	}
	return 0, RateDateNotFound
}
