package plan_test

import (
	"testing"
	"time"

	"github.com/2beens/runplan/internal/plan"

	"github.com/stretchr/testify/assert"
)

func TestCurrentWeek(t *testing.T) {
	// monday
	planStart := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		today time.Time
		want  int
	}{
		{name: "on plan start", today: planStart, want: 1},
		{name: "day before plan start", today: planStart.AddDate(0, 0, -1), want: 0},
		{name: "long before plan start", today: planStart.AddDate(0, -3, 0), want: 0},
		{name: "last day of week one", today: planStart.AddDate(0, 0, 6), want: 1},
		{name: "seven days in", today: planStart.AddDate(0, 0, 7), want: 2},
		{name: "mid plan", today: planStart.AddDate(0, 0, 7*22+3), want: 23},
		{name: "last plan day", today: planStart.AddDate(0, 0, 7*44-1), want: 44},
		{name: "past the plan, no clamping", today: planStart.AddDate(0, 0, 7*44), want: 45},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, plan.CurrentWeek(tc.today, planStart))
		})
	}
}

func TestCurrentWeek_IgnoresTimeOfDay(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skip("tzdata not available")
	}

	planStart := time.Date(2025, 1, 6, 0, 0, 0, 0, berlin)
	lateSunday := time.Date(2025, 1, 12, 23, 55, 0, 0, berlin)
	earlyMonday := time.Date(2025, 1, 13, 0, 5, 0, 0, berlin)

	assert.Equal(t, 1, plan.CurrentWeek(lateSunday, planStart))
	assert.Equal(t, 2, plan.CurrentWeek(earlyMonday, planStart))
}

func TestWeekDateRange(t *testing.T) {
	planStart := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	from, to := plan.WeekDateRange(planStart, 1)
	assert.Equal(t, "2025-01-06", from.Format("2006-01-02"))
	assert.Equal(t, "2025-01-12", to.Format("2006-01-02"))

	from, to = plan.WeekDateRange(planStart, 2)
	assert.Equal(t, "2025-01-13", from.Format("2006-01-02"))
	assert.Equal(t, "2025-01-19", to.Format("2006-01-02"))

	from, to = plan.WeekDateRange(planStart, 44)
	assert.Equal(t, "2025-11-03", from.Format("2006-01-02"))
	assert.Equal(t, "2025-11-09", to.Format("2006-01-02"))
}
