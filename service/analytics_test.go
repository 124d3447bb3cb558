package service

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusparsh/erp_backend/models"
	"github.com/edusparsh/erp_backend/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

func TestZeroFillStatusCounts(t *testing.T) {
	t.Run("fills all three types from nil", func(t *testing.T) {
		counts := ZeroFillStatusCounts(nil)
		require.Len(t, counts, 3)
		assert.Equal(t, models.LeadTypeHOT, counts[0].LeadType)
		assert.Equal(t, models.LeadTypeCOLD, counts[1].LeadType)
		assert.Equal(t, models.LeadTypeNEGATIVE, counts[2].LeadType)
		for _, c := range counts {
			assert.Zero(t, c.Count)
		}
	})

	t.Run("keeps known counts and zero-fills the rest", func(t *testing.T) {
		counts := ZeroFillStatusCounts(map[string]int{"HOT LEAD": 7, "NEGATIVE": 2})
		require.Len(t, counts, 3)
		assert.Equal(t, 7, counts[0].Count)
		assert.Equal(t, 0, counts[1].Count)
		assert.Equal(t, 2, counts[2].Count)
	})

	t.Run("drops unknown status values", func(t *testing.T) {
		counts := ZeroFillStatusCounts(map[string]int{"HOT LEAD": 1, "WARM LEAD": 99})
		require.Len(t, counts, 3)
		for _, c := range counts {
			assert.NotEqual(t, 99, c.Count)
		}
	})
}

func TestComposeTrend(t *testing.T) {
	months := []string{"2026-06", "2026-07", "2026-08"}

	points := ComposeTrend(
		months,
		map[string]int{"2026-07": 12},
		map[string]int{"2026-07": 3, "2026-08": 1},
		map[string]float64{"2026-08": 45000},
	)

	require.Len(t, points, 3)

	assert.Equal(t, "2026-06", points[0].Month)
	assert.Zero(t, points[0].Leads)
	assert.Zero(t, points[0].Admissions)
	assert.Zero(t, points[0].Revenue)

	assert.Equal(t, 12, points[1].Leads)
	assert.Equal(t, 3, points[1].Admissions)

	assert.Equal(t, 1, points[2].Admissions)
	assert.Equal(t, 45000.0, points[2].Revenue)
}

func TestAggResult(t *testing.T) {
	t.Run("ok carries the value", func(t *testing.T) {
		r := Ok(42)
		assert.Equal(t, 42, r.Value)
		assert.NoError(t, r.Err)
	})

	t.Run("failed carries the zero value and the error", func(t *testing.T) {
		cause := errors.New("aggregation timed out")
		r := Failed[[]models.StatusCount]("statusDistribution", cause)
		assert.Nil(t, r.Value)
		assert.Equal(t, cause, r.Err)
	})
}

func TestFollowUpWindowDescribe(t *testing.T) {
	t.Run("no window yields nil", func(t *testing.T) {
		assert.Nil(t, FollowUpWindowParams{}.describe())
	})

	t.Run("date bounds are widened to full days", func(t *testing.T) {
		from := time.Date(2026, 8, 10, 15, 30, 0, 0, time.UTC)
		to := time.Date(2026, 8, 12, 9, 0, 0, 0, time.UTC)
		window := FollowUpWindowParams{From: &from, To: &to}.describe()
		require.NotNil(t, window)
		assert.Equal(t, utils.StartOfDay(from), window["from"])
		assert.Equal(t, utils.EndOfDay(to), window["to"])
		assert.NotContains(t, window, "timeOfDay")
	})

	t.Run("time of day renders as a clock range", func(t *testing.T) {
		window := FollowUpWindowParams{
			TimeOfDay: &TimeOfDayWindow{FromHour: 9, FromMinute: 30, ToHour: 18, ToMinute: 0},
		}.describe()
		require.NotNil(t, window)
		assert.Equal(t, "09:30-18:00", window["timeOfDay"])
	})
}
