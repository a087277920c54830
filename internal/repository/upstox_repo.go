package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"algooee/config"
	"algooee/internal/dto"
	"algooee/pkg/cache"
	"algooee/pkg/httpclient"
	"algooee/pkg/logger"
	"algooee/pkg/ratelimit"
	"algooee/pkg/utils"
)

const keyCandleWindow = "candles:%s:%s:%d:%s:%s"

var ErrNotConfigured = errors.New("upstox api client not configured")

type CandleRepository interface {
	Configured() bool
	GetHistoricalCandles(ctx context.Context, param dto.GetCandlesParam) ([]dto.Candle, error)
}

type upstoxRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	inmemoryCache  cache.Cache
	dates          utils.DateProvider
	requestLimiter *ratelimit.TokenLimiter
}

func NewUpstoxRepository(cfg *config.Config, log *logger.Logger, inmemoryCache cache.Cache, dates utils.DateProvider) CandleRepository {
	perMinute := cfg.Upstox.MaxRequestPerMin
	if perMinute <= 0 {
		perMinute = 250
	}
	return &upstoxRepository{
		httpClient:     httpclient.New(log, cfg.Upstox.BaseURL, cfg.Upstox.Timeout, cfg.Upstox.APIToken),
		cfg:            cfg,
		logger:         log,
		inmemoryCache:  inmemoryCache,
		dates:          dates,
		requestLimiter: ratelimit.NewTokenLimiter(perMinute),
	}
}

func (r *upstoxRepository) Configured() bool {
	return r.cfg.Upstox.Configured()
}

// GetHistoricalCandles returns the candles of the window in chronological
// order. Windows that ended before today are immutable and kept in cache.
func (r *upstoxRepository) GetHistoricalCandles(ctx context.Context, param dto.GetCandlesParam) ([]dto.Candle, error) {
	if !r.Configured() {
		return nil, ErrNotConfigured
	}

	unit, ok := dto.UpstoxUnit(param.Interval)
	if !ok {
		return nil, fmt.Errorf("unsupported interval %q", param.Interval)
	}
	count := param.Count
	if count <= 0 {
		count = dto.DefaultCount
	}

	start, err := utils.ParseISODate(param.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := utils.ParseISODate(param.EndDate)
	if err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, fmt.Errorf("start_date %s is after end_date %s", param.StartDate, param.EndDate)
	}

	today, err := utils.ParseISODate(utils.FormatISODate(r.dates.Today()))
	if err != nil {
		return nil, err
	}
	cacheKey := fmt.Sprintf(keyCandleWindow, param.ISIN, unit, count, param.StartDate, param.EndDate)
	cacheable := end.Before(today)
	if cacheable {
		if candles, found := cache.GetFromCache[[]dto.Candle](r.inmemoryCache, cacheKey); found {
			return candles, nil
		}
	}

	if !r.requestLimiter.TryTake(1) {
		r.logger.WarnContext(ctx, "Upstox API request limit reached, waiting",
			logger.IntField("max_request_per_min", r.cfg.Upstox.MaxRequestPerMin),
		)
		if err := r.requestLimiter.Wait(ctx, 1); err != nil {
			return nil, err
		}
	}

	instrumentKey := fmt.Sprintf("%s|%s", r.cfg.Upstox.Exchange, param.ISIN)
	endpoint := fmt.Sprintf("/v3/historical-candle/%s/%s/%d/%s/%s",
		url.PathEscape(instrumentKey), unit, count, param.EndDate, param.StartDate)

	var upstoxResp dto.UpstoxCandleResponse
	resp, err := r.httpClient.Get(ctx, endpoint, nil, nil, &upstoxResp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candles from upstox: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "Upstox API returned Non-OK status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return nil, fmt.Errorf("upstox api returned status %d: %s", resp.StatusCode, upstoxErrorMessage(resp.Body))
	}

	if upstoxResp.Status != "" && upstoxResp.Status != "success" {
		return nil, fmt.Errorf("upstox api returned status %q", upstoxResp.Status)
	}

	candles := upstoxResp.Data.Candles
	// Upstox returns the newest candle first.
	for i, j := 0, len(candles)-1; i < j; i, j = i+1, j-1 {
		candles[i], candles[j] = candles[j], candles[i]
	}

	if cacheable && len(candles) > 0 {
		r.inmemoryCache.Set(cacheKey, candles, 0)
	}
	return candles, nil
}

func upstoxErrorMessage(body []byte) string {
	var errResp dto.UpstoxCandleResponse
	if err := json.Unmarshal(body, &errResp); err != nil || len(errResp.Errors) == 0 {
		return strings.TrimSpace(string(body))
	}
	msgs := make([]string, 0, len(errResp.Errors))
	for _, e := range errResp.Errors {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}
