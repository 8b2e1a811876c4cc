package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/Turf-BookingService/pkg/types"
)

// slotLabelSeparator разделитель в метке слота: "10:00 - 11:00"
const slotLabelSeparator = " - "

// SlotLabel is the derived identity of one bookable interval, the string
// "HH:MM - HH:MM". Labels are never persisted as configuration - they are
// recomputed per request - but a booking stores the label it occupies, and
// exact (trimmed) string match on the label is what marks a slot as taken.
type SlotLabel string

// NewSlotLabel builds the label for the interval [start, end)
func NewSlotLabel(start, end types.TimeString) SlotLabel {
	return SlotLabel(start.String() + slotLabelSeparator + end.String())
}

// String returns the raw label
func (l SlotLabel) String() string {
	return string(l)
}

// Trimmed returns the label with surrounding whitespace removed.
// Старые записи в хранилище встречались с хвостовыми пробелами,
// поэтому сравнение меток всегда идёт по обрезанной форме.
func (l SlotLabel) Trimmed() SlotLabel {
	return SlotLabel(strings.TrimSpace(string(l)))
}

// StartTime returns the start of the interval the label denotes
func (l SlotLabel) StartTime() (types.TimeString, error) {
	start, _, err := l.split()
	return start, err
}

// EndTime returns the end of the interval the label denotes
func (l SlotLabel) EndTime() (types.TimeString, error) {
	_, end, err := l.split()
	return end, err
}

func (l SlotLabel) split() (types.TimeString, types.TimeString, error) {
	parts := strings.Split(string(l.Trimmed()), slotLabelSeparator)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid slot label %q", string(l))
	}

	start, err := types.NewTimeStringFromString(strings.TrimSpace(parts[0]))
	if err != nil {
		return "", "", fmt.Errorf("invalid slot label %q: %w", string(l), err)
	}
	end, err := types.NewTimeStringFromString(strings.TrimSpace(parts[1]))
	if err != nil {
		return "", "", fmt.Errorf("invalid slot label %q: %w", string(l), err)
	}

	return start, end, nil
}

// OperatingWindow is the bookable window of a turf or sport for one day
type OperatingWindow struct {
	OpenTime            types.TimeString
	CloseTime           types.TimeString
	SlotDurationMinutes int
}

// PartitionWindow turns an operating window into the ordered sequence of
// fixed-width slot labels starting at OpenTime. A trailing interval shorter
// than the slot duration is silently dropped. An empty or inverted window
// (OpenTime >= CloseTime) yields an empty sequence, not an error.
func PartitionWindow(window OperatingWindow) []SlotLabel {
	slots := make([]SlotLabel, 0)

	if window.SlotDurationMinutes <= 0 {
		return slots
	}
	if !window.OpenTime.IsBefore(window.CloseTime) {
		return slots
	}

	cursor := window.OpenTime
	for cursor.IsBefore(window.CloseTime) {
		end, err := cursor.AddMinutes(window.SlotDurationMinutes)
		if err != nil {
			// Слот пересёк границу суток - дальше слотов нет
			break
		}
		if end.IsAfter(window.CloseTime) {
			break
		}
		slots = append(slots, NewSlotLabel(cursor, end))
		cursor = end
	}

	return slots
}

// ResolveRate maps a slot's start time to a rate using the sport's pricing
// tiers. The first tier whose half-open range [StartTime, EndTime) contains
// the start wins; overlapping tiers are resolved by stored order, not merged.
// Returns nil when no tier matches.
func ResolveRate(slotStart types.TimeString, tiers []PricingTier) *float64 {
	for i := range tiers {
		if tiers[i].Contains(slotStart) {
			rate := tiers[i].Rate
			return &rate
		}
	}
	return nil
}

// AvailableSlot is one bookable interval with its resolved rate.
// Price is nil when no pricing tier covers the slot.
type AvailableSlot struct {
	Label SlotLabel
	Price *float64
}

// Availability is the full bookable picture for one (turf, sport, date)
type Availability struct {
	AvailableSlots []AvailableSlot
	BookedSlots    []SlotLabel
}

// BuildAvailability produces the availability picture for a single day:
// partitions the window, resolves a rate per slot, removes slots already
// reserved (exact trimmed-label match) and, for the current day, slots
// whose start time is not strictly after now. A sport closed for booking
// yields no available slots; reserved labels are still reported.
func BuildAvailability(
	window OperatingWindow,
	tiers []PricingTier,
	sportAvailable bool,
	reservedLabels []SlotLabel,
	date time.Time,
	now time.Time,
) Availability {
	booked := make([]SlotLabel, 0, len(reservedLabels))
	bookedSet := make(map[SlotLabel]struct{}, len(reservedLabels))
	for _, label := range reservedLabels {
		trimmed := label.Trimmed()
		booked = append(booked, trimmed)
		bookedSet[trimmed] = struct{}{}
	}

	result := Availability{
		AvailableSlots: make([]AvailableSlot, 0),
		BookedSlots:    booked,
	}

	if !sportAvailable {
		return result
	}

	sameDay := SameDay(date, now)
	nowTime := types.NewTimeString(now)

	for _, label := range PartitionWindow(window) {
		if _, taken := bookedSet[label.Trimmed()]; taken {
			continue
		}

		start, err := label.StartTime()
		if err != nil {
			continue
		}

		// Слоты на сегодня, которые уже начались или прошли, не предлагаем
		if sameDay && !start.IsAfter(nowTime) {
			continue
		}

		result.AvailableSlots = append(result.AvailableSlots, AvailableSlot{
			Label: label,
			Price: ResolveRate(start, tiers),
		})
	}

	return result
}

// SameDay reports whether two timestamps fall on the same calendar day
func SameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateInPast reports whether date is on a calendar day before now's day
func DateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
