package calendar_test

import (
	"context"
	"errors"
	"testing"

	"github.com/unbem/unbem/calendar"
)

type fakeStore struct {
	entries map[string]calendar.Entry
	loadErr error
	saveErr error
	saves   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: map[string]calendar.Entry{}}
}

func (s *fakeStore) Load(ctx context.Context) (map[string]calendar.Entry, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	out := make(map[string]calendar.Entry, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out, nil
}

func (s *fakeStore) Save(ctx context.Context, entries map[string]calendar.Entry) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.entries = entries
	return nil
}

func TestEngine_SelectMood(t *testing.T) {
	t.Run("creates an entry for a day with none", func(t *testing.T) {
		t.Parallel()
		store := newFakeStore()
		engine := calendar.NewEngine(store, nil)

		key := calendar.DateKey{Year: 2024, Month: 2, Day: 15}
		view, err := engine.SelectMood(context.Background(), key, calendar.MoodHappy)
		if err != nil {
			t.Fatalf("SelectMood() error = %v", err)
		}

		got, ok := store.entries[key.String()]
		if !ok {
			t.Fatalf("entry for %s not persisted", key)
		}
		if got.Mood != calendar.MoodHappy || got.Type != calendar.MoodTypePositive {
			t.Errorf("stored entry = %+v", got)
		}
		if view.AlertActive {
			t.Error("one positive entry should not trigger the alert")
		}
	})

	t.Run("overwrite retains only the latest mood", func(t *testing.T) {
		t.Parallel()
		store := newFakeStore()
		engine := calendar.NewEngine(store, nil)
		key := calendar.DateKey{Year: 2024, Month: 2, Day: 15}

		for _, mood := range []calendar.Mood{calendar.MoodSad, calendar.MoodHappy, calendar.MoodStressed} {
			if _, err := engine.SelectMood(context.Background(), key, mood); err != nil {
				t.Fatalf("SelectMood(%s) error = %v", mood, err)
			}
		}

		if len(store.entries) != 1 {
			t.Fatalf("got %d entries, want 1", len(store.entries))
		}
		if got := store.entries[key.String()]; got.Mood != calendar.MoodStressed {
			t.Errorf("retained mood = %s, want %s", got.Mood, calendar.MoodStressed)
		}
	})

	t.Run("unknown mood is rejected without a write", func(t *testing.T) {
		t.Parallel()
		store := newFakeStore()
		engine := calendar.NewEngine(store, nil)

		_, err := engine.SelectMood(context.Background(), calendar.DateKey{Year: 2024, Month: 2, Day: 1}, "Euphoric")
		if err == nil {
			t.Fatal("SelectMood() accepted an unknown mood")
		}
		if store.saves != 0 {
			t.Errorf("store written %d times, want 0", store.saves)
		}
	})

	t.Run("save failure propagates", func(t *testing.T) {
		t.Parallel()
		store := newFakeStore()
		store.saveErr = errors.New("store offline")
		engine := calendar.NewEngine(store, nil)

		_, err := engine.SelectMood(context.Background(), calendar.DateKey{Year: 2024, Month: 2, Day: 1}, calendar.MoodCalm)
		if err == nil {
			t.Fatal("SelectMood() did not surface save failure")
		}
	})
}

func TestEngine_NegativeAlert(t *testing.T) {
	t.Run("five negative days in a month activate the alert", func(t *testing.T) {
		t.Parallel()
		store := newFakeStore()
		engine := calendar.NewEngine(store, nil)

		days := []struct {
			day  int
			mood calendar.Mood
		}{
			{1, calendar.MoodSad},
			{3, calendar.MoodStressed},
			{5, calendar.MoodAnxious},
			{8, calendar.MoodSad},
		}
		var view calendar.MonthView
		var err error
		for _, d := range days {
			view, err = engine.SelectMood(context.Background(), calendar.DateKey{Year: 2024, Month: 2, Day: d.day}, d.mood)
			if err != nil {
				t.Fatalf("SelectMood() error = %v", err)
			}
		}
		if view.NegativeCount != 4 || view.AlertActive {
			t.Fatalf("after 4 negatives: count=%d alert=%v", view.NegativeCount, view.AlertActive)
		}

		view, err = engine.SelectMood(context.Background(), calendar.DateKey{Year: 2024, Month: 2, Day: 9}, calendar.MoodSad)
		if err != nil {
			t.Fatalf("SelectMood() error = %v", err)
		}
		if view.NegativeCount != 5 || !view.AlertActive {
			t.Fatalf("after 5 negatives: count=%d alert=%v", view.NegativeCount, view.AlertActive)
		}

		// A sixth negative keeps the alert held, not re-edge-triggered
		view, err = engine.SelectMood(context.Background(), calendar.DateKey{Year: 2024, Month: 2, Day: 11}, calendar.MoodAnxious)
		if err != nil {
			t.Fatalf("SelectMood() error = %v", err)
		}
		if view.NegativeCount != 6 || !view.AlertActive {
			t.Fatalf("after 6 negatives: count=%d alert=%v", view.NegativeCount, view.AlertActive)
		}
	})

	t.Run("overwriting a negative day with a positive mood can clear the alert", func(t *testing.T) {
		t.Parallel()
		store := newFakeStore()
		engine := calendar.NewEngine(store, nil)

		for day := 1; day <= 5; day++ {
			if _, err := engine.SelectMood(context.Background(), calendar.DateKey{Year: 2024, Month: 0, Day: day}, calendar.MoodSad); err != nil {
				t.Fatalf("SelectMood() error = %v", err)
			}
		}
		view, err := engine.SelectMood(context.Background(), calendar.DateKey{Year: 2024, Month: 0, Day: 5}, calendar.MoodHappy)
		if err != nil {
			t.Fatalf("SelectMood() error = %v", err)
		}
		if view.NegativeCount != 4 || view.AlertActive {
			t.Errorf("count=%d alert=%v, want 4/false", view.NegativeCount, view.AlertActive)
		}
	})

	t.Run("negatives in other months do not count", func(t *testing.T) {
		t.Parallel()
		store := newFakeStore()
		engine := calendar.NewEngine(store, nil)

		for day := 1; day <= 5; day++ {
			if _, err := engine.SelectMood(context.Background(), calendar.DateKey{Year: 2024, Month: 1, Day: day}, calendar.MoodStressed); err != nil {
				t.Fatalf("SelectMood() error = %v", err)
			}
		}

		view := engine.LoadMonth(context.Background(), 2024, 2)
		if view.NegativeCount != 0 || view.AlertActive {
			t.Errorf("adjacent month: count=%d alert=%v", view.NegativeCount, view.AlertActive)
		}
	})
}

func TestEngine_LoadMonth(t *testing.T) {
	t.Run("grid has weekday offset and one cell per day", func(t *testing.T) {
		t.Parallel()
		engine := calendar.NewEngine(newFakeStore(), nil)

		// February 2024 (zero-indexed month 1): starts on a Thursday, 29 days
		view := engine.LoadMonth(context.Background(), 2024, 1)
		if view.LeadingBlanks != 4 {
			t.Errorf("LeadingBlanks = %d, want 4", view.LeadingBlanks)
		}
		if len(view.Days) != 29 {
			t.Errorf("len(Days) = %d, want 29", len(view.Days))
		}
	})

	t.Run("stored moods land on their day cells", func(t *testing.T) {
		t.Parallel()
		store := newFakeStore()
		engine := calendar.NewEngine(store, nil)
		if _, err := engine.SelectMood(context.Background(), calendar.DateKey{Year: 2024, Month: 1, Day: 10}, calendar.MoodCalm); err != nil {
			t.Fatalf("SelectMood() error = %v", err)
		}

		view := engine.LoadMonth(context.Background(), 2024, 1)
		cell := view.Days[9]
		if cell.Day != 10 || cell.Mood == nil || cell.Mood.Mood != calendar.MoodCalm {
			t.Errorf("cell for day 10 = %+v", cell)
		}
		if view.Days[0].Mood != nil {
			t.Error("day 1 should have no mood")
		}
	})

	t.Run("unreadable store degrades to an empty month", func(t *testing.T) {
		t.Parallel()
		store := newFakeStore()
		store.loadErr = errors.New("corrupt payload")
		engine := calendar.NewEngine(store, nil)

		view := engine.LoadMonth(context.Background(), 2024, 1)
		if len(view.Days) != 29 || view.NegativeCount != 0 || view.AlertActive {
			t.Errorf("degraded view = %+v", view)
		}
	})
}
