package collection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDecoder_Decode(t *testing.T) {
	d := NewDecoder(DefaultCodeTable())

	tests := []struct {
		code     string
		expected WeekdaySet
	}{
		{"M", WeekdaySet{time.Monday}},
		{"TH", WeekdaySet{time.Thursday}},
		{"T", WeekdaySet{time.Tuesday}},
		{"6X", WeekdaySet{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday}},
		{"EM", WeekdaySet{time.Monday}},
		{"ETH", WeekdaySet{time.Thursday}},
		{"MTH", WeekdaySet{time.Monday, time.Thursday}},
		{"MWF", WeekdaySet{time.Monday, time.Wednesday, time.Friday}},
		{"TTHS", WeekdaySet{time.Tuesday, time.Thursday, time.Saturday}},
		{" EW ", WeekdaySet{time.Wednesday}},
		// lenient: unknown characters are skipped
		{"MQ", WeekdaySet{time.Monday}},
		{"MXF", WeekdaySet{time.Monday, time.Friday}},
		{"MM", WeekdaySet{time.Monday, time.Monday}},
		{"XYZ", WeekdaySet{}},
		// sentinels
		{"", WeekdaySet{}},
		{"NONE", WeekdaySet{}},
		{"Z", WeekdaySet{}},
		{"EZ", WeekdaySet{}},
		{"E", WeekdaySet{}},
		{"NO PICKUP", WeekdaySet{}},
		{"NO COLLECTION", WeekdaySet{}},
		{"PRIVATE COLLECTION", WeekdaySet{}},
	}

	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			got := d.Decode(tc.code)
			assert.NotNil(t, got)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestDecoder_DecodeIsIdempotent(t *testing.T) {
	d := NewDecoder(DefaultCodeTable())

	first := d.Decode("6X")
	first[0] = time.Sunday // callers may scribble on their copy

	second := d.Decode("6X")
	assert.Equal(t, time.Monday, second[0])
	assert.Len(t, second, 6)
}

func TestNewDecoder_LongestTokenFirst(t *testing.T) {
	table := CodeTable{
		Entries: []CodeEntry{
			{Token: "T", Days: []time.Weekday{time.Tuesday}},
			{Token: "TH", Days: []time.Weekday{time.Thursday}},
		},
	}
	d := NewDecoder(table)

	assert.Equal(t, WeekdaySet{time.Thursday}, d.Decode("TH"))
	assert.Equal(t, WeekdaySet{time.Tuesday, time.Thursday}, d.Decode("TTH"))
}

func TestNewDecoder_CopiesTable(t *testing.T) {
	table := DefaultCodeTable()
	d := NewDecoder(table)

	table.Entries[2].Days[0] = time.Sunday // "M"
	table.Sentinels = append(table.Sentinels, "M")

	assert.Equal(t, WeekdaySet{time.Monday}, d.Decode("M"))
}
