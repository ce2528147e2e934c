package loki

import (
	"context"
	"errors"
	"loki-mcp/internal/apperror"
	"loki-mcp/internal/metrics"
	"loki-mcp/internal/model"
	"loki-mcp/internal/repository"
	"net/http"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/rs/zerolog/log"
)

type retryingLogRepository struct {
	next       repository.LogRepository
	maxRetries uint64
	newBackOff func() backoff.BackOff
}

// NewRetryingLogRepository wraps next with exponential-backoff retries for
// transient failures. maxRetries == 0 returns next unchanged.
func NewRetryingLogRepository(next repository.LogRepository, maxRetries int) repository.LogRepository {
	if maxRetries <= 0 {
		return next
	}
	return &retryingLogRepository{
		next:       next,
		maxRetries: uint64(maxRetries),
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxInterval = 2 * time.Second
			b.MaxElapsedTime = 15 * time.Second
			return b
		},
	}
}

func (r *retryingLogRepository) QueryRange(ctx context.Context, q repository.RangeQuery) ([]model.LogRecord, error) {
	var records []model.LogRecord
	err := r.retry(ctx, "query_range", func() error {
		var err error
		records, err = r.next.QueryRange(ctx, q)
		return err
	})
	return records, err
}

func (r *retryingLogRepository) LabelValues(ctx context.Context, q repository.LabelValuesQuery) ([]string, error) {
	var values []string
	err := r.retry(ctx, "label_values", func() error {
		var err error
		values, err = r.next.LabelValues(ctx, q)
		return err
	})
	return values, err
}

func (r *retryingLogRepository) retry(ctx context.Context, operation string, call func() error) error {
	attempt := 0
	op := func() error {
		attempt++
		err := call()
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		metrics.BackendRetriesTotal.WithLabelValues(operation).Inc()
		log.Warn().Err(err).Str("operation", operation).Int("attempt", attempt).Dur("wait", wait).Msg("Retrying Loki request")
	}

	b := backoff.WithContext(backoff.WithMaxRetries(r.newBackOff(), r.maxRetries), ctx)
	return backoff.RetryNotify(op, b, notify)
}

// IsRetryable reports whether err is a transient backend failure.
func IsRetryable(err error) bool {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		return false
	}
	switch appErr.Kind {
	case apperror.KindBackendUnreachable, apperror.KindTimeout:
		return true
	case apperror.KindBackendError:
		return appErr.StatusCode >= http.StatusInternalServerError || appErr.StatusCode == http.StatusTooManyRequests
	default:
		return false
	}
}
