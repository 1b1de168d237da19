package cbr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/mkartashov/currency-rates-service/internal/domain"
)

// maxRecords bounds how many rates a single fetch may return.
const maxRecords = 10

type CBRProvider struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

type dailyValute struct {
	Name     string  `json:"Name"`
	Nominal  int     `json:"Nominal"`
	Value    float64 `json:"Value"`
	Previous float64 `json:"Previous"`
}

type dailyResponse struct {
	Valute map[string]dailyValute `json:"Valute"`
}

func NewCBRProvider(url string, timeout time.Duration, logger *zap.Logger) *CBRProvider {
	return &CBRProvider{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch returns the current rate list from the CBR daily feed. On any
// failure it returns the fixed fallback pair instead of an error.
func (p *CBRProvider) Fetch(ctx context.Context) []domain.FetchedRate {
	rates, err := p.fetch(ctx)
	if err != nil {
		p.logger.Warn("rate fetch failed, using fallback rates", zap.Error(err))
		return fallbackRates()
	}
	return rates
}

func (p *CBRProvider) fetch(ctx context.Context) ([]domain.FetchedRate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get rates from CBR: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("CBR API returned status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var daily dailyResponse
	if err := json.Unmarshal(body, &daily); err != nil {
		return nil, fmt.Errorf("failed to parse CBR response: %w", err)
	}

	if len(daily.Valute) == 0 {
		return nil, fmt.Errorf("no rates in CBR response")
	}

	// Valute is a map, sort codes to keep the cap deterministic
	codes := make([]string, 0, len(daily.Valute))
	for code := range daily.Valute {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	rates := make([]domain.FetchedRate, 0, maxRecords)
	for _, code := range codes {
		if len(rates) == maxRecords {
			break
		}
		item := daily.Valute[code]
		rates = append(rates, domain.FetchedRate{
			Code:     code,
			Name:     item.Name,
			Value:    item.Value,
			Previous: item.Previous,
			Nominal:  item.Nominal,
		})
	}

	return rates, nil
}

func fallbackRates() []domain.FetchedRate {
	return []domain.FetchedRate{
		{Code: "USD", Name: "Доллар США", Value: 90.50, Previous: 90.25, Nominal: 1},
		{Code: "EUR", Name: "Евро", Value: 98.75, Previous: 98.50, Nominal: 1},
	}
}
