package calendar

// MoodType is the coarse sentiment classification derived from a mood label.
type MoodType string

const (
	MoodTypePositive MoodType = "positive"
	MoodTypeNeutral  MoodType = "neutral"
	MoodTypeNegative MoodType = "negative"
)

// Mood is one of the closed set of daily mood labels a user can pick.
type Mood string

const (
	MoodHappy    Mood = "Happy"
	MoodCalm     Mood = "Calm"
	MoodNeutral  Mood = "Neutral"
	MoodAnxious  Mood = "Anxious"
	MoodSad      Mood = "Sad"
	MoodStressed Mood = "Stressed"
)

var moodTypes = map[Mood]MoodType{
	MoodHappy:    MoodTypePositive,
	MoodCalm:     MoodTypePositive,
	MoodNeutral:  MoodTypeNeutral,
	MoodAnxious:  MoodTypeNegative,
	MoodSad:      MoodTypeNegative,
	MoodStressed: MoodTypeNegative,
}

// Type returns the sentiment classification for a mood label. The second
// return value is false for labels outside the closed set.
func (m Mood) Type() (MoodType, bool) {
	t, ok := moodTypes[m]
	return t, ok
}

// Entry is one persisted daily mood record. The JSON field names match the
// on-store serialization, which holds a map of dateKey string to Entry.
type Entry struct {
	Mood Mood     `json:"name"`
	Type MoodType `json:"type"`
}
