package app

import (
	"context"
	"fmt"

	"refuse_day_skill/internal/domain/collection"

	"github.com/sirupsen/logrus"
)

// RefuseScheduleService resolves an address to its decoded collection schedule.
// Every call does fresh lookups; nothing is cached.
type RefuseScheduleService struct {
	resolver    collection.AddressResolver
	routingTime collection.RoutingTimeFetcher
	decoder     *collection.Decoder
	logger      *logrus.Entry
}

func NewRefuseScheduleService(
	resolver collection.AddressResolver,
	routingTime collection.RoutingTimeFetcher,
	decoder *collection.Decoder,
	logger *logrus.Entry,
) *RefuseScheduleService {
	return &RefuseScheduleService{
		resolver:    resolver,
		routingTime: routingTime,
		decoder:     decoder,
		logger:      logger.WithField("component", "refuse_schedule_service"),
	}
}

// GetSchedule returns the garbage and recycling days for address.
// An unknown address fails with an error matching collection.ErrAddressNotFound.
func (s *RefuseScheduleService) GetSchedule(ctx context.Context, address string) (collection.ScheduleSnapshot, error) {
	resolved, err := s.resolver.Resolve(ctx, address)
	if err != nil {
		return collection.ScheduleSnapshot{}, fmt.Errorf("failed to resolve address: %w", err)
	}

	logCtx := s.logger.WithField("district", resolved.District).WithField("section", resolved.Section)
	logCtx.WithField("garbage_code", resolved.GarbageCode).
		WithField("recycling_code", resolved.RecyclingCode).
		WithField("bulk_code", resolved.BulkCode).
		Debug("Address resolved")

	routingTime, err := s.routingTime.RoutingTime(ctx, resolved.District, resolved.Section)
	if err != nil {
		return collection.ScheduleSnapshot{}, fmt.Errorf("failed to fetch routing time: %w", err)
	}

	snapshot := collection.ScheduleSnapshot{
		Garbage:                s.decoder.Decode(resolved.GarbageCode),
		Recycling:              s.decoder.Decode(resolved.RecyclingCode),
		ResidentialRoutingTime: routingTime,
	}
	logCtx.WithField("garbage_days", snapshot.Garbage.String()).
		WithField("recycling_days", snapshot.Recycling.String()).
		Debug("Schedule decoded")

	return snapshot, nil
}
