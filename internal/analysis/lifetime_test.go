package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nightowl-app/nightowl-backend-go/internal/models"
)

func TestLifetimeEmptyHistory(t *testing.T) {
	st := Lifetime(nil, anBase)

	assert.Zero(t, st.SessionCount)
	assert.Zero(t, st.TotalDistanceM)
	assert.Zero(t, st.AvgDistanceM)
	assert.Zero(t, st.AvgDwellDurationSecs)
	assert.Equal(t, time.Sunday.String(), st.BusiestWeekday)
	assert.Zero(t, st.BusiestWeekdayCount)
	assert.Zero(t, st.PeakHour)
}

func TestLifetimeTotalsAndAverages(t *testing.T) {
	now := anBase.Add(30 * 24 * time.Hour)
	sessions := []models.NightSession{
		sessionWith(anBase, []float64{0, 1000}, []time.Duration{30 * time.Minute}),
		sessionWith(anBase.Add(7*24*time.Hour), []float64{0, 3000}, []time.Duration{60 * time.Minute, 30 * time.Minute}),
	}

	st := Lifetime(sessions, now)

	assert.Equal(t, 2, st.SessionCount)
	assert.InDelta(t, 4000, st.TotalDistanceM, 5.0)
	assert.InDelta(t, 2000, st.AvgDistanceM, 2.5)
	assert.InDelta(t, (8 * time.Hour).Seconds(), st.TotalDurationSecs, 1e-6)
	assert.Equal(t, 3, st.TotalDwells)
	assert.InDelta(t, 1.5, st.AvgDwellsPerSession, 1e-9)
	assert.InDelta(t, (40 * time.Minute).Seconds(), st.AvgDwellDurationSecs, 1e-6)
}

func TestLifetimeSkipsInvalidDwells(t *testing.T) {
	now := anBase.Add(24 * time.Hour)
	s := sessionWith(anBase, nil, []time.Duration{45 * time.Minute})

	// A dwell ending two days in the future and one with negative span must
	// not drag the average around.
	s.Dwells = append(s.Dwells,
		models.DwellPoint{StartTime: now.Add(47 * time.Hour), EndTime: now.Add(48 * time.Hour)},
		models.DwellPoint{StartTime: anBase.Add(2 * time.Hour), EndTime: anBase.Add(time.Hour)},
	)

	st := Lifetime([]models.NightSession{s}, now)

	assert.Equal(t, 3, st.TotalDwells)
	assert.InDelta(t, (45 * time.Minute).Seconds(), st.AvgDwellDurationSecs, 1e-6)
}

func TestBusiestWeekdayAllTuesdays(t *testing.T) {
	tuesday := time.Date(2025, 3, 4, 21, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Tuesday, tuesday.Weekday())

	var sessions []models.NightSession
	for week := 0; week < 4; week++ {
		sessions = append(sessions, sessionWith(tuesday.Add(time.Duration(week)*7*24*time.Hour), nil, nil))
	}

	day, count := BusiestWeekday(sessions)
	assert.Equal(t, time.Tuesday, day)
	assert.Equal(t, len(sessions), count)
}

func TestBusiestWeekdayTieGoesToEarliestInWeekOrder(t *testing.T) {
	sunday := time.Date(2025, 3, 2, 20, 0, 0, 0, time.UTC)
	wednesday := time.Date(2025, 3, 5, 20, 0, 0, 0, time.UTC)

	sessions := []models.NightSession{
		sessionWith(wednesday, nil, nil),
		sessionWith(sunday, nil, nil),
	}

	day, count := BusiestWeekday(sessions)
	assert.Equal(t, time.Sunday, day)
	assert.Equal(t, 1, count)
}

func TestPeakHour(t *testing.T) {
	sessions := []models.NightSession{
		sessionWith(time.Date(2025, 3, 7, 22, 15, 0, 0, time.UTC), nil, nil),
		sessionWith(time.Date(2025, 3, 8, 22, 45, 0, 0, time.UTC), nil, nil),
		sessionWith(time.Date(2025, 3, 9, 19, 30, 0, 0, time.UTC), nil, nil),
	}

	hour, count := PeakHour(sessions)
	assert.Equal(t, 22, hour)
	assert.Equal(t, 2, count)
}
