package domain

import (
	"math"
	"time"
)

// DailyCalorieGoal is the calorie target the dashboard progress bar tracks.
const DailyCalorieGoal = 500

// weeklyWindowDays bounds the rolling weekly bucket. There is no
// lower bound: activities dated after now land in the weekly bucket.
const weeklyWindowDays = 7

// Summary holds the dashboard totals for today and the trailing week.
type Summary struct {
	DailyCalories  int
	WeeklyCalories int
	DailyDuration  int
	WeeklyDuration int
	DailyWorkouts  int
	WeeklyWorkouts int
}

// Summarize computes daily and weekly totals relative to now.
//
// The daily bucket matches the calendar day of now in now's location. The
// weekly bucket is a rolling window of seven 24-hour days.
func Summarize(activities []Activity, now time.Time) Summary {
	var s Summary

	for _, a := range activities {
		if sameCalendarDay(a.Date, now) {
			s.DailyCalories += a.Calories
			s.DailyDuration += a.DurationMin
			s.DailyWorkouts++
		}
	}

	for _, a := range activities {
		if withinWeek(a.Date, now) {
			s.WeeklyCalories += a.Calories
			s.WeeklyDuration += a.DurationMin
			s.WeeklyWorkouts++
		}
	}

	return s
}

func sameCalendarDay(date, now time.Time) bool {
	if date.IsZero() {
		return false
	}
	y1, m1, d1 := date.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func withinWeek(date, now time.Time) bool {
	if date.IsZero() {
		return false
	}
	diffDays := now.Sub(date).Hours() / 24
	return diffDays <= weeklyWindowDays
}

// GoalProgress is the fraction of DailyCalorieGoal reached today, clamped to [0, 1].
func (s Summary) GoalProgress() float64 {
	progress := float64(s.DailyCalories) / DailyCalorieGoal
	return math.Min(math.Max(progress, 0), 1)
}

// GoalPercent is the unclamped goal percentage rounded half-up; it may exceed 100.
func (s Summary) GoalPercent() int {
	return int(math.Floor(float64(s.DailyCalories)/DailyCalorieGoal*100 + 0.5))
}

// ChartSeries is one labelled bar series handed to a chart renderer.
type ChartSeries struct {
	Title  string
	Labels []string
	Values []int
}

// Charts returns the daily-versus-weekly bar series shown on the dashboard.
func (s Summary) Charts() []ChartSeries {
	return []ChartSeries{
		chartFor("Calories", s.DailyCalories, s.WeeklyCalories),
		chartFor("Duration (minutes)", s.DailyDuration, s.WeeklyDuration),
		chartFor("Workouts (count)", s.DailyWorkouts, s.WeeklyWorkouts),
	}
}

func chartFor(title string, daily, weekly int) ChartSeries {
	return ChartSeries{
		Title:  title,
		Labels: []string{"Daily", "Weekly"},
		Values: []int{daily, weekly},
	}
}
