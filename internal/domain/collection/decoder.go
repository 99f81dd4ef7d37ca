package collection

import (
	"sort"
	"strings"
	"time"
)

// recurrencePrefix marks "every" schedules. Over a one-week horizon it means nothing.
const recurrencePrefix = "E"

// CodeEntry maps one DSNY schedule token to the days it stands for.
type CodeEntry struct {
	Token string
	Days  []time.Weekday
}

// CodeTable is the static configuration a Decoder works from.
type CodeTable struct {
	Entries   []CodeEntry
	Sentinels []string // codes meaning "no scheduled pickup"
}

// DefaultCodeTable returns the DSNY collection code table.
// See https://www1.nyc.gov/assets/planning/download/pdf/data-maps/open-data/upg.pdf
func DefaultCodeTable() CodeTable {
	return CodeTable{
		Entries: []CodeEntry{
			{Token: "6X", Days: []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday}},
			{Token: "TH", Days: []time.Weekday{time.Thursday}},
			{Token: "M", Days: []time.Weekday{time.Monday}},
			{Token: "T", Days: []time.Weekday{time.Tuesday}},
			{Token: "W", Days: []time.Weekday{time.Wednesday}},
			{Token: "F", Days: []time.Weekday{time.Friday}},
			{Token: "S", Days: []time.Weekday{time.Saturday}},
		},
		Sentinels: []string{"NONE", "EZ", "Z", "", "NO PICKUP", "NO COLLECTION", "PRIVATE COLLECTION"},
	}
}

// Decoder turns DSNY collection codes into weekdays. It holds its own copy of
// the table and is safe for concurrent use.
type Decoder struct {
	entries   []CodeEntry
	sentinels map[string]struct{}
}

// NewDecoder builds a Decoder from table. The table is copied.
func NewDecoder(table CodeTable) *Decoder {
	entries := make([]CodeEntry, 0, len(table.Entries))
	for _, e := range table.Entries {
		if e.Token == "" {
			continue
		}
		days := make([]time.Weekday, len(e.Days))
		copy(days, e.Days)
		entries = append(entries, CodeEntry{Token: e.Token, Days: days})
	}

	// longest token wins at each scan position: "TH" before "T"
	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i].Token) > len(entries[j].Token)
	})

	sentinels := make(map[string]struct{}, len(table.Sentinels))
	for _, s := range table.Sentinels {
		sentinels[s] = struct{}{}
	}

	return &Decoder{entries: entries, sentinels: sentinels}
}

// Decode returns the collection days for code. Sentinel codes yield an empty
// set. Characters matching no token are skipped, so Decode never fails.
func (d *Decoder) Decode(code string) WeekdaySet {
	code = strings.TrimPrefix(strings.TrimSpace(code), recurrencePrefix)

	if d.IsSentinel(code) {
		return WeekdaySet{}
	}

	days := WeekdaySet{}
	for pos := 0; pos < len(code); {
		entry, ok := d.match(code[pos:])
		if !ok {
			pos++
			continue
		}
		days = append(days, entry.Days...)
		pos += len(entry.Token)
	}
	return days
}

// IsSentinel reports whether code is one of the "no pickup" markers.
func (d *Decoder) IsSentinel(code string) bool {
	_, ok := d.sentinels[code]
	return ok
}

func (d *Decoder) match(rest string) (CodeEntry, bool) {
	for _, e := range d.entries {
		if strings.HasPrefix(rest, e.Token) {
			return e, true
		}
	}
	return CodeEntry{}, false
}
