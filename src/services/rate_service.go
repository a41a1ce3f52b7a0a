package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/DrHac-GH/firstrade-tax-app/src/logger"
	"github.com/DrHac-GH/firstrade-tax-app/src/models"
	"github.com/DrHac-GH/firstrade-tax-app/src/utils"
)

// rateSeriesResponse matches the provider's time-series payload:
// {"rates": {"2023-01-02": {"JPY": 130.0}, ...}}
type rateSeriesResponse struct {
	Base  string                        `json:"base"`
	Rates map[string]map[string]float64 `json:"rates"`
}

type rateServiceImpl struct {
	httpClient *http.Client
	baseURL    string
}

// NewRateService creates the client for the external exchange-rate
// provider. The provider publishes business-day rates only; gap handling
// is the resolver's job, not the client's.
func NewRateService(baseURL string, timeout time.Duration) RateService {
	return &rateServiceImpl{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

func (s *rateServiceImpl) FetchDailyRates(ctx context.Context, start, end time.Time) (models.RateTable, error) {
	url := fmt.Sprintf("%s/v1/%s..%s?base=USD&symbols=JPY",
		s.baseURL, start.Format(utils.ISODateFormat), end.Format(utils.ISODateFormat))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrRateFetchFailed, err)
	}

	logger.L.Info("Fetching USD/JPY daily rates", "start", start.Format(utils.ISODateFormat), "end", end.Format(utils.ISODateFormat))
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRateFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: provider returned status %d", ErrRateFetchFailed, resp.StatusCode)
	}

	var payload rateSeriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrRateFetchFailed, err)
	}

	table := make(models.RateTable, len(payload.Rates))
	for date, symbols := range payload.Rates {
		if rate, ok := symbols["JPY"]; ok {
			table[date] = rate
		}
	}

	logger.L.Info("Rate fetch complete", "observationCount", len(table))
	return table, nil
}
