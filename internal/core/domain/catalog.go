package domain

import "time"

// DateLayout is the calendar-date encoding used for event and post dates.
// Dates stay strings end to end so they never shift across time zones.
const DateLayout = "2006-01-02"

// Towns is the fixed set of towns events and posts can be filed under.
var Towns = []string{
	"Banff",
	"Canmore",
	"Lake Louise",
	"Exshaw",
	"Harvie Heights",
	"Dead Man's Flats",
	"Cochrane",
	"Calgary",
}

// Categories is the fixed set of event categories.
var Categories = []string{
	"Market",
	"Music",
	"Festival",
	"Sports",
	"Outdoors",
	"Arts",
	"Food & Drink",
	"Community",
	"Family",
	"Nightlife",
}

// ValidTown reports whether s is one of Towns. Matching is exact.
func ValidTown(s string) bool { return contains(Towns, s) }

// ValidCategory reports whether s is one of Categories. Matching is exact.
func ValidCategory(s string) bool { return contains(Categories, s) }

// ValidDate reports whether s is a calendar date in DateLayout.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Today returns the current calendar date in loc, formatted with DateLayout.
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format(DateLayout)
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
