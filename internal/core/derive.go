package core

import (
	"math"
	"strings"
	"time"
)

// FullName joins the non-empty name parts with single spaces. A nil or
// empty middle name is omitted.
func FullName(first string, middle *string, last string) string {
	parts := make([]string, 0, 3)
	if first != "" {
		parts = append(parts, first)
	}
	if middle != nil && *middle != "" {
		parts = append(parts, *middle)
	}
	if last != "" {
		parts = append(parts, last)
	}
	return strings.Join(parts, " ")
}

// Age returns whole years between dateOfBirth and now, decremented by one
// when the birthday has not yet occurred this year.
func Age(dateOfBirth, now time.Time) int {
	years := now.Year() - dateOfBirth.Year()
	if years < 0 {
		return 0
	}
	if now.Month() < dateOfBirth.Month() ||
		(now.Month() == dateOfBirth.Month() && now.Day() < dateOfBirth.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// AvailableBeds computes the derived bed availability.
func AvailableBeds(total, occupied int) int {
	return total - occupied
}

// SessionMinutes returns the floored number of whole minutes between login
// and logout, never negative.
func SessionMinutes(login, logout time.Time) int {
	m := int(logout.Sub(login) / time.Minute)
	if m < 0 {
		return 0
	}
	return m
}

// RoundHours converts a minute total to hours rounded to two decimals.
func RoundHours(totalMinutes int) float64 {
	return math.Round(float64(totalMinutes)/60*100) / 100
}

// LateMinutes returns how many minutes t lies past the workday start on the
// same calendar day, or zero when t is at or before the start.
func LateMinutes(t time.Time, startHour, startMinute int) int {
	m := (t.Hour()-startHour)*60 + (t.Minute() - startMinute)
	if m <= 0 {
		return 0
	}
	return m
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DayOf truncates t to midnight of its calendar day.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
