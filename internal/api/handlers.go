// Package api exposes the activity log to a local presentation layer over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"example.com/fitlog/internal/domain"
)

// Handler coordinates HTTP requests with the tracker.
type Handler struct {
	tracker *domain.Tracker
	now     func() time.Time
}

// NewHandler builds a Handler.
func NewHandler(tracker *domain.Tracker) *Handler {
	return &Handler{tracker: tracker, now: time.Now}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/activities", h.activities)
	mux.HandleFunc("/v1/summary", h.summary)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) activities(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createActivity(w, r)
	case http.MethodGet:
		h.listActivities(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) createActivity(w http.ResponseWriter, r *http.Request) {
	var req CreateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	activity, err := h.tracker.Submit(r.Context(), req.Type, req.Duration, req.Calories)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Type:   "validation_failed",
				Field:  strings.ToLower(verr.Field),
				Title:  verr.Title(),
				Detail: verr.Message(),
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, toActivityView(activity))
}

func (h *Handler) listActivities(w http.ResponseWriter, r *http.Request) {
	activities := h.tracker.Activities()
	items := make([]ActivityView, 0, len(activities))
	for _, a := range activities {
		items = append(items, toActivityView(a))
	}
	writeJSON(w, http.StatusOK, ListActivitiesResponse{Items: items})
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	summary := h.tracker.Summary(h.now())
	resp := SummaryResponse{
		DailyCalories:  summary.DailyCalories,
		WeeklyCalories: summary.WeeklyCalories,
		DailyDuration:  summary.DailyDuration,
		WeeklyDuration: summary.WeeklyDuration,
		DailyWorkouts:  summary.DailyWorkouts,
		WeeklyWorkouts: summary.WeeklyWorkouts,
		Goal: GoalView{
			Calories: domain.DailyCalorieGoal,
			Progress: summary.GoalProgress(),
			Percent:  summary.GoalPercent(),
		},
	}
	for _, series := range summary.Charts() {
		resp.Charts = append(resp.Charts, ChartView{
			Title:  series.Title,
			Labels: series.Labels,
			Values: series.Values,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateActivityRequest is the payload for POST /v1/activities. Numbers are
// sent as the raw text the user typed.
type CreateActivityRequest struct {
	Type     string `json:"type"`
	Duration string `json:"duration"`
	Calories string `json:"calories"`
}

// ActivityView exposes one activity.
type ActivityView struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	DurationMin int       `json:"duration"`
	Calories    int       `json:"calories"`
	Date        time.Time `json:"date"`
}

// ListActivitiesResponse packages the log, most recent first.
type ListActivitiesResponse struct {
	Items []ActivityView `json:"items"`
}

// ValidationErrorResponse carries the alert for a rejected submission.
type ValidationErrorResponse struct {
	Type   string `json:"type"`
	Field  string `json:"field"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// GoalView describes progress toward the daily calorie goal. Progress is
// clamped to [0,1]; Percent is not.
type GoalView struct {
	Calories int     `json:"calories"`
	Progress float64 `json:"progress"`
	Percent  int     `json:"percent"`
}

// ChartView is one bar series for the dashboard charts.
type ChartView struct {
	Title  string   `json:"title"`
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// SummaryResponse is the dashboard payload.
type SummaryResponse struct {
	DailyCalories  int         `json:"daily_calories"`
	WeeklyCalories int         `json:"weekly_calories"`
	DailyDuration  int         `json:"daily_duration"`
	WeeklyDuration int         `json:"weekly_duration"`
	DailyWorkouts  int         `json:"daily_workouts"`
	WeeklyWorkouts int         `json:"weekly_workouts"`
	Goal           GoalView    `json:"goal"`
	Charts         []ChartView `json:"charts"`
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toActivityView(a domain.Activity) ActivityView {
	return ActivityView{
		ID:          a.ID,
		Type:        a.Type,
		DurationMin: a.DurationMin,
		Calories:    a.Calories,
		Date:        a.Date,
	}
}
