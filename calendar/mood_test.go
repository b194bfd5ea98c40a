package calendar_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/unbem/unbem/calendar"
)

func TestMoodTypes(t *testing.T) {
	cases := []struct {
		mood calendar.Mood
		want calendar.MoodType
	}{
		{calendar.MoodHappy, calendar.MoodTypePositive},
		{calendar.MoodCalm, calendar.MoodTypePositive},
		{calendar.MoodNeutral, calendar.MoodTypeNeutral},
		{calendar.MoodAnxious, calendar.MoodTypeNegative},
		{calendar.MoodSad, calendar.MoodTypeNegative},
		{calendar.MoodStressed, calendar.MoodTypeNegative},
	}
	for _, tc := range cases {
		got, ok := tc.mood.Type()
		if !ok || got != tc.want {
			t.Errorf("%s.Type() = %s/%v, want %s", tc.mood, got, ok, tc.want)
		}
	}

	if _, ok := calendar.Mood("Furious").Type(); ok {
		t.Error("Type() accepted a label outside the closed set")
	}
}

func TestMoodMapRoundTrip(t *testing.T) {
	in := map[string]calendar.Entry{
		"2024-2-1":  {Mood: calendar.MoodSad, Type: calendar.MoodTypeNegative},
		"2024-2-3":  {Mood: calendar.MoodHappy, Type: calendar.MoodTypePositive},
		"2023-11-9": {Mood: calendar.MoodNeutral, Type: calendar.MoodTypeNeutral},
	}

	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	out := map[string]calendar.Entry{}
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip changed the mapping:\n in=%+v\nout=%+v", in, out)
	}
}

func TestDateKey(t *testing.T) {
	t.Run("string form and parse round trip", func(t *testing.T) {
		key := calendar.DateKey{Year: 2024, Month: 2, Day: 5}
		if key.String() != "2024-2-5" {
			t.Fatalf("String() = %q", key.String())
		}
		parsed, err := calendar.ParseDateKey("2024-2-5")
		if err != nil {
			t.Fatalf("ParseDateKey() error = %v", err)
		}
		if parsed != key {
			t.Errorf("parsed = %+v, want %+v", parsed, key)
		}
	})

	t.Run("rejects malformed keys", func(t *testing.T) {
		for _, raw := range []string{"", "2024-2", "2024-2-5-1", "2024-x-5", "2024-12-5", "2024-2-0", "2024-2-32"} {
			if _, err := calendar.ParseDateKey(raw); err == nil {
				t.Errorf("ParseDateKey(%q) accepted invalid input", raw)
			}
		}
	})

	t.Run("month membership", func(t *testing.T) {
		key := calendar.DateKey{Year: 2024, Month: 2, Day: 5}
		if !key.InMonth(2024, 2) {
			t.Error("InMonth(2024, 2) = false")
		}
		if key.InMonth(2024, 3) || key.InMonth(2023, 2) {
			t.Error("InMonth matched a different month")
		}
	})
}
