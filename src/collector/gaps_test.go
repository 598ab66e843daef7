package collector

import (
	"testing"

	"lotus-ge/src/helpers"
	"lotus-ge/src/interfaces"
	"lotus-ge/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

// gapStore stubs the two store calls Plan makes. Everything else panics via
// the nil embedded interface, which a correct plan never touches.
type gapStore struct {
	interfaces.IMarketStore

	marker    int64
	hasMarker bool
	existing  map[int64]bool
}

func (s *gapStore) LatestTimestamp(interval int64) (int64, bool, error) {
	return s.marker, s.hasMarker, nil
}

func (s *gapStore) HasTimestamp(interval, timestamp int64) (bool, error) {
	return s.existing[timestamp], nil
}

// -----------------------------------------------------------------------------

func fiveMinute() models.MResolution {
	return models.MResolution{Endpoint: "5m/", Interval: 300, RetentionDays: 2}
}

// -----------------------------------------------------------------------------

func TestPlanStartsFromMarker(t *testing.T) {
	planner := NewGapPlanner(&gapStore{
		marker:    1000,
		hasMarker: true,
		existing:  map[int64]bool{1000: true, 1600: true},
	})

	missing, err := planner.Plan(fiveMinute(), 2200)
	require.NoError(t, err)

	// 1000 and 1600 exist; 1300 and 1900 do not. 2200 itself is excluded.
	assert.Equal(t, []int64{1300, 1900}, missing)
}

// -----------------------------------------------------------------------------

func TestPlanWithoutMarkerStartsAtRetentionHorizon(t *testing.T) {
	res := fiveMinute()
	latest := int64(1_000_000)
	horizon := latest - res.RetentionSeconds()

	store := &gapStore{existing: map[int64]bool{}}
	planner := NewGapPlanner(store)

	missing, err := planner.Plan(res, latest)
	require.NoError(t, err)

	require.NotEmpty(t, missing)
	assert.Equal(t, horizon, missing[0])
	assert.Equal(t, latest-res.Interval, missing[len(missing)-1])
	assert.Len(t, missing, int(res.RetentionSeconds()/res.Interval))
}

// -----------------------------------------------------------------------------

func TestPlanClampsStaleMarkerToRetention(t *testing.T) {
	res := fiveMinute()
	latest := int64(10_000_000)
	horizon := latest - res.RetentionSeconds()

	// Marker far below the horizon must not drag the walk out of retention.
	planner := NewGapPlanner(&gapStore{
		marker:    horizon - 50_000,
		hasMarker: true,
		existing:  map[int64]bool{},
	})

	missing, err := planner.Plan(res, latest)
	require.NoError(t, err)

	require.NotEmpty(t, missing)
	assert.Equal(t, horizon, missing[0])
}

// -----------------------------------------------------------------------------

func TestPlanStartAboveLatestIsEmpty(t *testing.T) {
	planner := NewGapPlanner(&gapStore{
		marker:    5000,
		hasMarker: true,
		existing:  map[int64]bool{},
	})

	missing, err := planner.Plan(fiveMinute(), 4000)
	require.NoError(t, err)
	assert.Empty(t, missing)
}

// -----------------------------------------------------------------------------

func TestPlanFullyPopulatedIsEmpty(t *testing.T) {
	existing := map[int64]bool{}
	for ts := int64(1000); ts < 4000; ts += 300 {
		existing[ts] = true
	}

	planner := NewGapPlanner(&gapStore{
		marker:    1000,
		hasMarker: true,
		existing:  existing,
	})

	missing, err := planner.Plan(fiveMinute(), 4000)
	require.NoError(t, err)
	assert.Empty(t, missing)
}

// -----------------------------------------------------------------------------

func TestPlanRejectsNonPositiveInterval(t *testing.T) {
	planner := NewGapPlanner(&gapStore{})

	_, err := planner.Plan(models.MResolution{Interval: 0, RetentionDays: 1}, 1000)
	require.Error(t, err)

	var vErr *helpers.ValidationError
	assert.ErrorAs(t, err, &vErr)
}
