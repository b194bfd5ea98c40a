package calendar

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// NegativeAlertThreshold is the count of negative-mood days inside a single
// month at which the support nudge activates.
const NegativeAlertThreshold = 5

// DayCell is one calendar cell for a day of the active month.
type DayCell struct {
	Day  int    `json:"day"`
	Mood *Entry `json:"mood,omitempty"`
}

// MonthView is the rendered state for one month: the day grid plus the
// derived streak state. It is recomputed from the stored set on every load
// and never persisted.
type MonthView struct {
	Year          int       `json:"year"`
	Month         int       `json:"month"`
	LeadingBlanks int       `json:"leading_blanks"`
	Days          []DayCell `json:"days"`
	NegativeCount int       `json:"negative_count"`
	AlertActive   bool      `json:"alert_active"`
}

// Engine owns per-day mood records for one identity and derives the
// month-scoped support alert.
type Engine struct {
	store Store
	log   *zap.SugaredLogger
}

func NewEngine(store Store, log *zap.SugaredLogger) *Engine {
	return &Engine{store: store, log: log}
}

// LoadMonth reads the full persisted mood set and builds the grid for the
// given zero-indexed month. A corrupt or unreadable store degrades to an
// empty mood set; the calendar stays usable.
func (e *Engine) LoadMonth(ctx context.Context, year, month int) MonthView {
	return buildMonthView(e.loadAll(ctx), year, month)
}

// SelectMood records a mood for one day, replacing any prior entry for that
// date, persists the whole mapping in a single write, and returns the
// recomputed view for the month containing the key. There is no delete
// operation; the only way to change a day is to pick a different mood for it.
func (e *Engine) SelectMood(ctx context.Context, key DateKey, mood Mood) (MonthView, error) {
	typ, ok := mood.Type()
	if !ok {
		return MonthView{}, fmt.Errorf("unknown mood %q", mood)
	}

	entries := e.loadAll(ctx)
	entries[key.String()] = Entry{Mood: mood, Type: typ}
	if err := e.store.Save(ctx, entries); err != nil {
		return MonthView{}, fmt.Errorf("save moods: %w", err)
	}
	return buildMonthView(entries, key.Year, key.Month), nil
}

func (e *Engine) loadAll(ctx context.Context) map[string]Entry {
	entries, err := e.store.Load(ctx)
	if err != nil {
		if e.log != nil {
			e.log.Warnf("mood store unreadable, continuing with empty set: %v", err)
		}
		return map[string]Entry{}
	}
	return entries
}

func buildMonthView(entries map[string]Entry, year, month int) MonthView {
	first := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	view := MonthView{
		Year:          year,
		Month:         month,
		LeadingBlanks: int(first.Weekday()),
		Days:          make([]DayCell, 0, daysInMonth),
	}

	for day := 1; day <= daysInMonth; day++ {
		cell := DayCell{Day: day}
		if entry, ok := entries[DateKey{Year: year, Month: month, Day: day}.String()]; ok {
			e := entry
			cell.Mood = &e
		}
		view.Days = append(view.Days, cell)
	}

	view.NegativeCount = countNegatives(entries, year, month)
	view.AlertActive = view.NegativeCount >= NegativeAlertThreshold
	return view
}

// countNegatives is a plain count-and-threshold over one month. Streaks that
// span a month boundary are not detected; the alert holds for as long as the
// month keeps five or more negative entries.
func countNegatives(entries map[string]Entry, year, month int) int {
	n := 0
	for raw, entry := range entries {
		key, err := ParseDateKey(raw)
		if err != nil {
			continue
		}
		if key.InMonth(year, month) && entry.Type == MoodTypeNegative {
			n++
		}
	}
	return n
}
