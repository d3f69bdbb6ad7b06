package plan

// TotalWeeks is the length of the half marathon training plan.
const TotalWeeks = 44

// Week is a single week of the training plan, with the planned
// long and short run distances.
type Week struct {
	Number     int     `json:"number"`
	LongRunKm  float64 `json:"longRunKm"`
	ShortRunKm float64 `json:"shortRunKm"`
	Recovery   bool    `json:"recovery"`
}

func (w Week) TotalKm() float64 {
	return w.LongRunKm + w.ShortRunKm
}

// Phase is a contiguous block of plan weeks. The four phases cover
// weeks 1..44 exactly, with no gaps and no overlaps.
type Phase struct {
	Number      int    `json:"number"`
	FromWeek    int    `json:"fromWeek"`
	ToWeek      int    `json:"toWeek"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Milestone is a one-time distance achievement target tied to a plan week.
type Milestone struct {
	Week       int     `json:"week"`
	DistanceKm float64 `json:"distanceKm"`
	Name       string  `json:"name"`
}

var phases = []Phase{
	{Number: 1, FromWeek: 1, ToWeek: 9, Name: "Base building", Description: "easy running, build the habit, first 10K"},
	{Number: 2, FromWeek: 10, ToWeek: 23, Name: "Endurance build", Description: "longer long runs, steady mileage growth"},
	{Number: 3, FromWeek: 24, ToWeek: 35, Name: "Strength and distance", Description: "tempo work, long runs up to 20K"},
	{Number: 4, FromWeek: 36, ToWeek: 44, Name: "Peak and race", Description: "sharpen, taper, race the half"},
}

var milestones = []Milestone{
	{Week: 9, DistanceKm: 10, Name: "First 10K"},
	{Week: 23, DistanceKm: 15, Name: "15K"},
	{Week: 35, DistanceKm: 20, Name: "20K"},
	{Week: 44, DistanceKm: 21.1, Name: "Half Marathon"},
}

var weeks = []Week{
	{Number: 1, LongRunKm: 4, ShortRunKm: 2.5},
	{Number: 2, LongRunKm: 5, ShortRunKm: 3},
	{Number: 3, LongRunKm: 5.5, ShortRunKm: 3},
	{Number: 4, LongRunKm: 4, ShortRunKm: 2.5, Recovery: true},
	{Number: 5, LongRunKm: 6.5, ShortRunKm: 3.5},
	{Number: 6, LongRunKm: 7.5, ShortRunKm: 4},
	{Number: 7, LongRunKm: 8.5, ShortRunKm: 4.5},
	{Number: 8, LongRunKm: 6, ShortRunKm: 3, Recovery: true},
	{Number: 9, LongRunKm: 10, ShortRunKm: 5},
	{Number: 10, LongRunKm: 10.5, ShortRunKm: 5},
	{Number: 11, LongRunKm: 11, ShortRunKm: 5.5},
	{Number: 12, LongRunKm: 8, ShortRunKm: 4, Recovery: true},
	{Number: 13, LongRunKm: 11.5, ShortRunKm: 5.5},
	{Number: 14, LongRunKm: 12, ShortRunKm: 6},
	{Number: 15, LongRunKm: 12.5, ShortRunKm: 6},
	{Number: 16, LongRunKm: 9, ShortRunKm: 4.5, Recovery: true},
	{Number: 17, LongRunKm: 13, ShortRunKm: 6.5},
	{Number: 18, LongRunKm: 13.5, ShortRunKm: 6.5},
	{Number: 19, LongRunKm: 14, ShortRunKm: 7},
	{Number: 20, LongRunKm: 10, ShortRunKm: 5, Recovery: true},
	{Number: 21, LongRunKm: 14.5, ShortRunKm: 7},
	{Number: 22, LongRunKm: 15, ShortRunKm: 7.5},
	{Number: 23, LongRunKm: 15.5, ShortRunKm: 7.5},
	{Number: 24, LongRunKm: 11, ShortRunKm: 5.5, Recovery: true},
	{Number: 25, LongRunKm: 16, ShortRunKm: 8},
	{Number: 26, LongRunKm: 16.5, ShortRunKm: 8},
	{Number: 27, LongRunKm: 17, ShortRunKm: 8.5},
	{Number: 28, LongRunKm: 12, ShortRunKm: 6, Recovery: true},
	{Number: 29, LongRunKm: 17.5, ShortRunKm: 8.5},
	{Number: 30, LongRunKm: 18, ShortRunKm: 9},
	{Number: 31, LongRunKm: 18.5, ShortRunKm: 9},
	{Number: 32, LongRunKm: 13, ShortRunKm: 6.5, Recovery: true},
	{Number: 33, LongRunKm: 19, ShortRunKm: 9.5},
	{Number: 34, LongRunKm: 19.5, ShortRunKm: 9.5},
	{Number: 35, LongRunKm: 20, ShortRunKm: 10},
	{Number: 36, LongRunKm: 14, ShortRunKm: 7, Recovery: true},
	{Number: 37, LongRunKm: 18, ShortRunKm: 9},
	{Number: 38, LongRunKm: 19, ShortRunKm: 9.5},
	{Number: 39, LongRunKm: 20, ShortRunKm: 10},
	{Number: 40, LongRunKm: 14, ShortRunKm: 7, Recovery: true},
	{Number: 41, LongRunKm: 21.1, ShortRunKm: 8},
	{Number: 42, LongRunKm: 16, ShortRunKm: 8},
	{Number: 43, LongRunKm: 12, ShortRunKm: 6},
	{Number: 44, LongRunKm: 21.1, ShortRunKm: 5},
}

// ForWeek returns the plan week for 1 <= n <= 44.
// The second return value is false for any other n.
func ForWeek(n int) (Week, bool) {
	if n < 1 || n > TotalWeeks {
		return Week{}, false
	}
	return weeks[n-1], true
}

// PhaseForWeek returns the phase whose week range contains n.
func PhaseForWeek(n int) (Phase, bool) {
	for _, p := range phases {
		if n >= p.FromWeek && n <= p.ToWeek {
			return p, true
		}
	}
	return Phase{}, false
}

// MilestoneForWeek returns the milestone targeted at week n, if any.
func MilestoneForWeek(n int) (Milestone, bool) {
	for _, m := range milestones {
		if m.Week == n {
			return m, true
		}
	}
	return Milestone{}, false
}

// RecoveryWeeks returns the numbers of all reduced-mileage weeks.
func RecoveryWeeks() []int {
	var recovery []int
	for _, w := range weeks {
		if w.Recovery {
			recovery = append(recovery, w.Number)
		}
	}
	return recovery
}

// Weeks returns a copy of the full 44 week plan.
func Weeks() []Week {
	weeksCopy := make([]Week, len(weeks))
	copy(weeksCopy, weeks)
	return weeksCopy
}

// Phases returns a copy of the four plan phases.
func Phases() []Phase {
	phasesCopy := make([]Phase, len(phases))
	copy(phasesCopy, phases)
	return phasesCopy
}

// Milestones returns a copy of the plan milestones,
// ordered by week and distance ascending.
func Milestones() []Milestone {
	milestonesCopy := make([]Milestone, len(milestones))
	copy(milestonesCopy, milestones)
	return milestonesCopy
}
