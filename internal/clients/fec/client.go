package fec

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"

	"github.com/capitolwatch/capitolwatch-backend/internal/clients/httpfetch"
	"github.com/capitolwatch/capitolwatch-backend/internal/logger"
	"github.com/capitolwatch/capitolwatch-backend/internal/utils"
)

const defaultBaseURL = "https://api.open.fec.gov/v1"

type Totals struct {
	TotalRaised          float64
	TotalSpent           float64
	OtherFederalReceipts float64
}

// BreakdownEntry is one aggregated line of a donor or industry breakdown.
type BreakdownEntry struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type Client struct {
	log      *logger.Logger
	fetcher  *httpfetch.Fetcher
	baseURL  string
	apiKey   string
	pageSize int
}

func NewClient(log *logger.Logger, fetcher *httpfetch.Fetcher) (*Client, error) {
	clientLog := log.With("client", "FECClient")

	apiKey := utils.GetEnv("OPENFEC_API_KEY", "", log)
	if apiKey == "" {
		return nil, fmt.Errorf("missing OPENFEC_API_KEY")
	}

	return &Client{
		log:      clientLog,
		fetcher:  fetcher,
		baseURL:  utils.GetEnv("FEC_BASE_URL", defaultBaseURL, log),
		apiKey:   apiKey,
		pageSize: utils.GetEnvAsInt("FEC_PAGE_SIZE", 100, log),
	}, nil
}

// FetchTotals returns nil when the API has no summary data for the
// candidate/cycle pair.
func (c *Client) FetchTotals(ctx context.Context, fecID string, cycle int) (*Totals, error) {
	endpoint := fmt.Sprintf("%s/candidate/%s/totals/?api_key=%s&cycle=%d", c.baseURL, url.PathEscape(fecID), url.QueryEscape(c.apiKey), cycle)
	body, err := c.fetcher.Get(ctx, endpoint)
	if err != nil {
		if errors.Is(err, httpfetch.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch totals for %s: %w", fecID, err)
	}

	var payload struct {
		Results []struct {
			Receipts             float64 `json:"receipts"`
			Disbursements        float64 `json:"disbursements"`
			OtherFederalReceipts float64 `json:"other_federal_receipts"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parse totals for %s: %w", fecID, err)
	}
	if len(payload.Results) == 0 {
		c.log.Warn("No totals data returned", "fec_id", fecID, "cycle", cycle)
		return nil, nil
	}

	rec := payload.Results[0]
	return &Totals{
		TotalRaised:          rec.Receipts,
		TotalSpent:           rec.Disbursements,
		OtherFederalReceipts: rec.OtherFederalReceipts,
	}, nil
}

// FetchItemized pages through Schedule A receipts and aggregates amounts
// by the given field (contributor organization or employer). Page fetch
// failures end the walk with whatever was aggregated so far; itemized
// data is best effort per the finance job contract.
func (c *Client) FetchItemized(ctx context.Context, fecID string, cycle int, key string) (map[string]float64, error) {
	sums := map[string]float64{}
	for page := 1; ; page++ {
		endpoint := fmt.Sprintf(
			"%s/schedules/schedule_a/?api_key=%s&candidate_id=%s&cycle=%d&per_page=%d&page=%d",
			c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(fecID), cycle, c.pageSize, page,
		)
		c.log.Debug("Fetching itemized data", "url", endpoint, "key", key, "page", page)

		body, err := c.fetcher.Get(ctx, endpoint)
		if err != nil {
			if errors.Is(err, httpfetch.ErrNotFound) {
				break
			}
			c.log.Error("Error fetching itemized data", "fec_id", fecID, "cycle", cycle, "error", err)
			break
		}

		var payload struct {
			Results []map[string]interface{} `json:"results"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			c.log.Error("Error parsing itemized data", "fec_id", fecID, "cycle", cycle, "error", err)
			break
		}
		if len(payload.Results) == 0 {
			break
		}

		for _, item := range payload.Results {
			name, _ := item[key].(string)
			if name == "" {
				name = "Unknown"
			}
			amount, _ := item["amount"].(float64)
			sums[name] += amount
		}
	}
	return sums, nil
}

// BuildBreakdown converts an aggregation map to its top-n entries,
// largest amount first, name ascending on ties.
func BuildBreakdown(sums map[string]float64, topN int) []BreakdownEntry {
	entries := make([]BreakdownEntry, 0, len(sums))
	for name, amount := range sums {
		entries = append(entries, BreakdownEntry{Name: name, Amount: amount})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Amount != entries[j].Amount {
			return entries[i].Amount > entries[j].Amount
		}
		return entries[i].Name < entries[j].Name
	})
	if len(entries) > topN {
		entries = entries[:topN]
	}
	return entries
}
