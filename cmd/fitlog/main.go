package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"example.com/fitlog/internal/bootstrap"
	"example.com/fitlog/internal/config"
	"example.com/fitlog/internal/domain"
	"example.com/fitlog/internal/persistence"
)

const progressBarWidth = 20

type app struct {
	out       io.Writer
	now       func() time.Time
	tracker   *domain.Tracker
	closeFunc func()
}

func main() {
	if err := run(os.Args[1:], os.Stdout, time.Now); err != nil {
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// run executes one fitlog command and releases the store afterwards.
func run(args []string, out io.Writer, now func() time.Time) error {
	a := &app{out: out, now: now}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	return root.Execute()
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "fitlog",
		Short:         "Log workouts and view daily and weekly totals",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context())
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.out)

	root.AddCommand(
		&cobra.Command{
			Use:   "add TYPE DURATION CALORIES",
			Short: "Add an activity (duration in minutes, calories in kcal)",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.add(cmd.Context(), args[0], args[1], args[2])
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List activities, most recent first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				a.list()
				return nil
			},
		},
		&cobra.Command{
			Use:   "summary",
			Short: "Show the daily and weekly dashboard",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				a.summary()
				return nil
			},
		},
	)
	return root
}

func (a *app) open(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.InitLogger(os.Stderr)

	store, closeStore, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	a.closeFunc = closeStore

	form := domain.NewForm(domain.WithClock(a.now))
	a.tracker = domain.NewTracker(persistence.NewAdapter(store), domain.WithForm(form))
	a.tracker.Load(ctx)
	log.Debug().Int("activities", a.tracker.Len()).Msg("activity log loaded")
	return nil
}

func (a *app) close() {
	if a.closeFunc != nil {
		a.closeFunc()
	}
}

func (a *app) add(ctx context.Context, typeInput, durationInput, caloriesInput string) error {
	activity, err := a.tracker.Submit(ctx, typeInput, durationInput, caloriesInput)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(a.out, "%s: %s\n", verr.Title(), verr.Message())
		}
		return err
	}
	fmt.Fprintf(a.out, "Added %s: %s\n", activity.Type, describe(activity))
	return nil
}

func (a *app) list() {
	activities := a.tracker.Activities()
	if len(activities) == 0 {
		fmt.Fprintln(a.out, "No activities yet. Add one with `fitlog add`.")
		return
	}
	for _, activity := range activities {
		fmt.Fprintf(a.out, "%s  %-16s %s\n", activity.Date.Local().Format(time.DateOnly), activity.Type, describe(activity))
	}
}

func (a *app) summary() {
	s := a.tracker.Summary(a.now())

	fmt.Fprintf(a.out, "Daily Calories: %d kcal\n", s.DailyCalories)
	fmt.Fprintf(a.out, "Weekly Calories: %d kcal\n", s.WeeklyCalories)
	fmt.Fprintf(a.out, "Daily Goal Progress: %s %d%% of %d kcal\n", progressBar(s.GoalProgress()), s.GoalPercent(), domain.DailyCalorieGoal)

	for _, series := range s.Charts() {
		fmt.Fprintf(a.out, "\n%s\n", series.Title)
		for i, label := range series.Labels {
			fmt.Fprintf(a.out, "  %-7s %d\n", label, series.Values[i])
		}
	}
}

func describe(activity domain.Activity) string {
	duration := ""
	if activity.DurationMin != 0 {
		duration = fmt.Sprintf("%d min", activity.DurationMin)
	}
	return fmt.Sprintf("%s • %d kcal", duration, activity.Calories)
}

func progressBar(progress float64) string {
	filled := int(progress * progressBarWidth)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", progressBarWidth-filled) + "]"
}
