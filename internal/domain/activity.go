package domain

import "time"

// Activity is one logged workout.
type Activity struct {
	ID          string
	Type        string
	DurationMin int
	Calories    int
	Date        time.Time
}
