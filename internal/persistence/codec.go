package persistence

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"example.com/fitlog/internal/domain"
)

// record is the stored shape of one activity.
type record struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Duration int    `json:"duration"`
	Calories int    `json:"calories"`
	Date     string `json:"date"`
}

// EncodeActivities serialises the list to its stored JSON form.
func EncodeActivities(activities []domain.Activity) ([]byte, error) {
	records := make([]record, 0, len(activities))
	for _, a := range activities {
		records = append(records, record{
			ID:       a.ID,
			Type:     a.Type,
			Duration: a.DurationMin,
			Calories: a.Calories,
			Date:     encodeDate(a.Date),
		})
	}
	return json.Marshal(records)
}

// DecodeActivities parses the stored JSON form. Missing numeric fields decode
// to zero. A missing or unparseable date decodes to the zero time, which
// keeps the record out of both summary buckets.
func DecodeActivities(raw []byte) ([]domain.Activity, error) {
	activities, _, err := decodeActivities(raw)
	return activities, err
}

// decodeActivities also returns the ids of records whose date could not be
// parsed. Only invalid JSON fails the whole snapshot.
func decodeActivities(raw []byte) ([]domain.Activity, []string, error) {
	var records []record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, nil, err
	}

	var undated []string
	activities := make([]domain.Activity, 0, len(records))
	for _, r := range records {
		date, err := decodeDate(r.Date)
		if err != nil {
			undated = append(undated, r.ID)
		}
		activities = append(activities, domain.Activity{
			ID:          r.ID,
			Type:        r.Type,
			DurationMin: r.Duration,
			Calories:    r.Calories,
			Date:        date,
		})
	}
	return activities, undated, nil
}

// encodeDate writes the instant in UTC; the original zone is not kept, so a
// reloaded date is Equal to the saved one but may differ in Location.
func encodeDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// Accepted ISO-8601 forms besides RFC 3339. A date without a time is UTC
// midnight; a date-time without an offset is local time.
const (
	localDateTimeLayout = "2006-01-02T15:04:05.999999999"
	dateOnlyLayout      = time.DateOnly
)

func decodeDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts, nil
	}
	if ts, err := time.ParseInLocation(localDateTimeLayout, value, time.Local); err == nil {
		return ts, nil
	}
	if ts, err := time.Parse(dateOnlyLayout, value); err == nil {
		return ts, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}
