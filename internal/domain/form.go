package domain

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ValidationError describes rejected form input. Each variant carries the
// alert shown to the user.
type ValidationError struct {
	Field   string
	title   string
	message string
}

func (e *ValidationError) Error() string {
	return strings.ToLower(e.Field) + ": " + e.message
}

// Title is the short alert heading.
func (e *ValidationError) Title() string { return e.title }

// Message is the alert body.
func (e *ValidationError) Message() string { return e.message }

var (
	// ErrMissingType is returned when the activity type is blank.
	ErrMissingType = &ValidationError{Field: "Type", title: "Missing", message: "Please enter activity type"}
	// ErrInvalidDuration is returned when the duration is empty or not a number.
	ErrInvalidDuration = &ValidationError{Field: "Duration", title: "Invalid", message: "Enter valid duration (minutes)"}
	// ErrInvalidCalories is returned when the calories value is empty or not a number.
	ErrInvalidCalories = &ValidationError{Field: "Calories", title: "Invalid", message: "Enter valid calories"}
)

// fieldOrder fixes which error wins when several fields fail.
var fieldOrder = []*ValidationError{ErrMissingType, ErrInvalidDuration, ErrInvalidCalories}

// FormInput is the raw text captured by the entry form.
type FormInput struct {
	Type     string `validate:"required"`
	Duration string `validate:"required,numeric"`
	Calories string `validate:"required,numeric"`
}

// FormOption configures optional behaviour for the Form.
type FormOption func(*Form)

// WithClock overrides the time source used to stamp new activities.
func WithClock(now func() time.Time) FormOption {
	return func(f *Form) {
		f.now = now
	}
}

// WithIDGenerator overrides the activity id source.
func WithIDGenerator(newID func() string) FormOption {
	return func(f *Form) {
		f.newID = newID
	}
}

// Form validates entry-form input and builds new activities.
type Form struct {
	validate *validator.Validate
	now      func() time.Time
	newID    func() string
}

// NewForm constructs a Form.
func NewForm(opts ...FormOption) *Form {
	f := &Form{
		validate: validator.New(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Submit validates the three inputs and returns the activity they describe.
// The returned error is one of ErrMissingType, ErrInvalidDuration or
// ErrInvalidCalories, checked in that order.
func (f *Form) Submit(typeInput, durationInput, caloriesInput string) (Activity, error) {
	in := FormInput{
		Type:     strings.TrimSpace(typeInput),
		Duration: strings.TrimSpace(durationInput),
		Calories: strings.TrimSpace(caloriesInput),
	}
	if err := f.check(in); err != nil {
		return Activity{}, err
	}

	duration, ok := truncate(in.Duration)
	if !ok {
		return Activity{}, ErrInvalidDuration
	}
	calories, ok := truncate(in.Calories)
	if !ok {
		return Activity{}, ErrInvalidCalories
	}

	return Activity{
		ID:          f.newID(),
		Type:        in.Type,
		DurationMin: duration,
		Calories:    calories,
		Date:        f.now().Round(0),
	}, nil
}

func (f *Form) check(in FormInput) error {
	err := f.validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	failed := make(map[string]struct{}, len(fieldErrs))
	for _, fe := range fieldErrs {
		failed[fe.Field()] = struct{}{}
	}
	for _, candidate := range fieldOrder {
		if _, ok := failed[candidate.Field]; ok {
			return candidate
		}
	}
	return err
}

// truncate parses a validated decimal string and drops the fractional part.
// It fails only when the whole part overflows int; that is a parse limit,
// not a bounds check on the value.
func truncate(value string) (int, bool) {
	whole, _, _ := strings.Cut(value, ".")
	n, err := strconv.Atoi(whole)
	if err != nil {
		return 0, false
	}
	return n, true
}
