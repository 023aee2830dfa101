package model

import (
	"time"

	"pomade/shared/constant"
)

const EntityName = "slot"

const (
	PeriodMorning   = "morning"
	PeriodAfternoon = "afternoon"
	PeriodEvening   = "evening"
)

// CatalogEntry is one bookable time of day. The catalog is fixed: every
// operating day offers the same set of 30-minute slots.
type CatalogEntry struct {
	Time   string
	Period string
}

var Catalog = buildCatalog()

func buildCatalog() []CatalogEntry {
	entries := []CatalogEntry{}

	appendRange := func(period, from, to string) {
		start, _ := time.Parse(constant.BookingTimeFmt, from)
		end, _ := time.Parse(constant.BookingTimeFmt, to)

		for t := start; !t.After(end); t = t.Add(30 * time.Minute) {
			entries = append(entries, CatalogEntry{
				Time:   t.Format(constant.BookingTimeFmt),
				Period: period,
			})
		}
	}

	appendRange(PeriodMorning, "09:00", "12:30")
	appendRange(PeriodAfternoon, "13:00", "16:30")
	appendRange(PeriodEvening, "17:00", "20:00")

	return entries
}

// InCatalog reports whether t ("15:04") is a bookable time of day.
func InCatalog(t string) bool {
	for _, entry := range Catalog {
		if entry.Time == t {
			return true
		}
	}

	return false
}

// Slot is the availability of one catalog entry on a concrete date.
type Slot struct {
	Time      string
	Period    string
	IsBooked  bool
	IsPast    bool
	Available bool
}

// ComputeDay evaluates the whole catalog for one date. A slot is booked when
// its time appears in occupied, past when its wall-clock moment on date is
// not after now, and available only when it is neither.
func ComputeDay(date time.Time, occupied map[string]bool, now time.Time) []Slot {
	slots := make([]Slot, len(Catalog))

	for i, entry := range Catalog {
		clock, _ := time.Parse(constant.BookingTimeFmt, entry.Time)
		moment := time.Date(
			date.Year(), date.Month(), date.Day(),
			clock.Hour(), clock.Minute(), 0, 0,
			now.Location(),
		)

		slot := Slot{
			Time:     entry.Time,
			Period:   entry.Period,
			IsBooked: occupied[entry.Time],
			IsPast:   !moment.After(now),
		}
		slot.Available = !slot.IsBooked && !slot.IsPast

		slots[i] = slot
	}

	return slots
}
