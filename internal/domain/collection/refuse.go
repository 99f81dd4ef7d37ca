package collection

import (
	"context"
	"errors"
	"strings"
)

// ErrAddressNotFound is returned when the geocoder cannot place an address.
var ErrAddressNotFound = errors.New("address not found in DSNY database")

// ErrUnknownRefuseType is returned for slot values outside the refuse vocabulary.
var ErrUnknownRefuseType = errors.New("unknown refuse type")

// RefuseType is one of the two tracked schedules.
type RefuseType string

const (
	RefuseGarbage   RefuseType = "garbage"
	RefuseRecycling RefuseType = "recycling"
)

var refuseSynonyms = map[string]RefuseType{
	"garbage":     RefuseGarbage,
	"trash":       RefuseGarbage,
	"recycling":   RefuseRecycling,
	"recycle":     RefuseRecycling,
	"recyclables": RefuseRecycling,
}

// ParseRefuseType normalizes a spoken slot value.
func ParseRefuseType(value string) (RefuseType, error) {
	rt, ok := refuseSynonyms[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return "", ErrUnknownRefuseType
	}
	return rt, nil
}

// ScheduleSnapshot is the collection schedule of one address at lookup time.
type ScheduleSnapshot struct {
	Garbage                WeekdaySet
	Recycling              WeekdaySet
	ResidentialRoutingTime string
}

// Days returns a copy of the schedule for rt.
func (s ScheduleSnapshot) Days(rt RefuseType) WeekdaySet {
	var src WeekdaySet
	switch rt {
	case RefuseGarbage:
		src = s.Garbage
	case RefuseRecycling:
		src = s.Recycling
	}
	out := make(WeekdaySet, len(src))
	copy(out, src)
	return out
}

// ResolvedAddress is what the geocoder knows about an address.
type ResolvedAddress struct {
	District      string
	Section       string // collection scheduling section and subsection
	GarbageCode   string
	RecyclingCode string
	BulkCode      string
}

// AddressResolver looks up DSNY data for a street address.
// Unresolvable addresses yield ErrAddressNotFound.
type AddressResolver interface {
	Resolve(ctx context.Context, address string) (*ResolvedAddress, error)
}

// RoutingTimeFetcher returns the residential pickup window of a section.
type RoutingTimeFetcher interface {
	RoutingTime(ctx context.Context, district, section string) (string, error)
}

// HolidayChecker reports whether today runs on the holiday schedule.
type HolidayChecker interface {
	IsHolidayToday(ctx context.Context) (bool, error)
}
