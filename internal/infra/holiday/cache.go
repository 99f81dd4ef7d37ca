package holiday

import (
	"context"
	"errors"
	"fmt"
	"time"

	"refuse_day_skill/internal/domain/collection"

	"github.com/sirupsen/logrus"
)

const keyPrefix = "holiday:"

// DefaultTTL outlives one NYC calendar day plus a DST shift.
const DefaultTTL = 26 * time.Hour

// ErrMiss is returned by a Store that has no value for a key.
var ErrMiss = errors.New("holiday cache miss")

// Store keeps holiday flags keyed by date.
type Store interface {
	GetFlag(ctx context.Context, key string) (bool, error)
	SetFlag(ctx context.Context, key string, value bool, ttl time.Duration) error
}

// CachedChecker answers IsHolidayToday from a Store keyed by the calendar date
// and asks upstream only on a miss. Store failures degrade to upstream calls.
type CachedChecker struct {
	upstream collection.HolidayChecker
	store    Store
	calendar *collection.Calendar
	ttl      time.Duration
	logger   *logrus.Entry
}

func NewCachedChecker(
	upstream collection.HolidayChecker,
	store Store,
	calendar *collection.Calendar,
	ttl time.Duration,
	logger *logrus.Entry,
) *CachedChecker {
	return &CachedChecker{
		upstream: upstream,
		store:    store,
		calendar: calendar,
		ttl:      ttl,
		logger:   logger.WithField("component", "holiday_cache"),
	}
}

// IsHolidayToday implements collection.HolidayChecker.
func (c *CachedChecker) IsHolidayToday(ctx context.Context) (bool, error) {
	key := c.key()

	flag, err := c.store.GetFlag(ctx, key)
	if err == nil {
		return flag, nil
	}
	if !errors.Is(err, ErrMiss) {
		c.logger.WithError(err).WithField("key", key).Warn("Holiday cache read failed")
	}

	return c.fetchAndStore(ctx, key)
}

// Refresh fetches today's flag from upstream and overwrites the cached one.
func (c *CachedChecker) Refresh(ctx context.Context) error {
	_, err := c.fetchAndStore(ctx, c.key())
	return err
}

func (c *CachedChecker) fetchAndStore(ctx context.Context, key string) (bool, error) {
	flag, err := c.upstream.IsHolidayToday(ctx)
	if err != nil {
		return false, fmt.Errorf("upstream holiday check: %w", err)
	}

	if err := c.store.SetFlag(ctx, key, flag, c.ttl); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Holiday cache write failed")
	}
	return flag, nil
}

func (c *CachedChecker) key() string {
	return keyPrefix + c.calendar.Date()
}
