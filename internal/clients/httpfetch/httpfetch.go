package httpfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/capitolwatch/capitolwatch-backend/internal/logger"
	"github.com/capitolwatch/capitolwatch-backend/internal/utils"
)

// ErrNotFound marks a 404 from an upstream source. ETL callers treat it
// as "this roll/candidate does not exist", not as a transport failure.
var ErrNotFound = fmt.Errorf("resource not found")

// Fetcher is a GET client with exponential backoff, shared by the ETL
// source clients.
type Fetcher struct {
	log        *logger.Logger
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
}

func NewFetcher(log *logger.Logger) *Fetcher {
	fetchLog := log.With("client", "HTTPFetcher")
	timeoutSeconds := utils.GetEnvAsInt("HTTP_TIMEOUT_SECONDS", 15, log)
	maxRetries := utils.GetEnvAsInt("HTTP_MAX_RETRIES", 3, log)
	retryDelayMs := utils.GetEnvAsInt("HTTP_RETRY_DELAY_MS", 500, log)
	return &Fetcher{
		log:        fetchLog,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSeconds) * time.Second},
		maxRetries: maxRetries,
		retryDelay: time.Duration(retryDelayMs) * time.Millisecond,
	}
}

// Get fetches url, retrying transient failures. A 404 short-circuits to
// ErrNotFound without retrying.
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = f.retryDelay
	bo.MaxInterval = 10 * time.Second
	bo.MaxElapsedTime = 0

	attempts := 0
	operation := func() ([]byte, error) {
		attempts++
		f.log.Debug("Fetch attempt", "url", url, "attempt", attempts)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		resp, err := f.httpClient.Do(req)
		if err != nil {
			if attempts > f.maxRetries {
				return nil, backoff.Permanent(fmt.Errorf("fetch %s: %w", url, err))
			}
			return nil, err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return nil, backoff.Permanent(fmt.Errorf("read body: %w", err))
			}
			return body, nil
		case resp.StatusCode == http.StatusNotFound:
			return nil, backoff.Permanent(ErrNotFound)
		default:
			f.log.Warn("Unexpected status code", "url", url, "status", resp.StatusCode)
			if attempts > f.maxRetries {
				return nil, backoff.Permanent(fmt.Errorf("fetch %s: status %d", url, resp.StatusCode))
			}
			return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
		}
	}

	return backoff.RetryWithData(operation, backoff.WithContext(bo, ctx))
}
