package collection

import (
	"strings"
	"time"
)

// WeekdaySet is an ordered list of collection days as decoded from a DSNY code.
// Order follows the code, duplicates are kept.
type WeekdaySet []time.Weekday

// Names returns the English day names in set order.
func (s WeekdaySet) Names() []string {
	names := make([]string, 0, len(s))
	for _, d := range s {
		names = append(names, d.String())
	}
	return names
}

func (s WeekdaySet) String() string {
	return strings.Join(s.Names(), ", ")
}
