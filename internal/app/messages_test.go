package app

import (
	"testing"
	"time"

	"refuse_day_skill/internal/domain/collection"

	"github.com/stretchr/testify/assert"
)

func TestSpokenRoutingTime(t *testing.T) {
	assert.Equal(t, "6 AM to 12 PM", SpokenRoutingTime("Daily: 6 AM - 12 PM"))
	assert.Equal(t, "7 PM to 6 AM", SpokenRoutingTime("  7 PM - 6 AM "))
	assert.Equal(t, "", SpokenRoutingTime(""))
}

func TestMessages_PickupReply(t *testing.T) {
	m := DefaultMessages()

	tests := []struct {
		name     string
		rt       collection.RefuseType
		next     collection.NextOccurrence
		holiday  bool
		expected string
	}{
		{
			name:     "today",
			rt:       collection.RefuseGarbage,
			next:     collection.NextOccurrence{Day: time.Tuesday},
			expected: "Your next garbage day is today, Tuesday. Pickup times are 6 AM to 12 PM.",
		},
		{
			name:     "today on holiday",
			rt:       collection.RefuseRecycling,
			next:     collection.NextOccurrence{Day: time.Tuesday},
			holiday:  true,
			expected: "Sanitation is on holiday schedule. Set your recycling out after 4 PM today for pickup tomorrow.",
		},
		{
			name:     "tomorrow ignores holiday",
			rt:       collection.RefuseRecycling,
			next:     collection.NextOccurrence{Day: time.Friday, DaysUntil: 1},
			holiday:  true,
			expected: "Your next recycling day is tomorrow, Friday. Set your recycling out after 4 PM today.",
		},
		{
			name:     "later",
			rt:       collection.RefuseGarbage,
			next:     collection.NextOccurrence{Day: time.Saturday, DaysUntil: 5},
			expected: "Your next garbage day is in 5 days, on Saturday.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, m.PickupReply(tc.rt, tc.next, "Daily: 6 AM - 12 PM", tc.holiday))
		})
	}
}
