package advisor

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/studiodesk/core/clock"
	"github.com/kilianp07/studiodesk/core/factory"
	"github.com/kilianp07/studiodesk/core/model"
)

var (
	now      = time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)
	tomorrow = time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)
	sydney   = model.Coordinate{Lat: -33.865143, Lng: 151.209900}
	// roughly 10 km north of sydney
	chatswood = model.Coordinate{Lat: -33.775143, Lng: 151.209900}
	melbourne = model.Coordinate{Lat: -37.8136, Lng: 144.9631}
)

func newAdvisor(t *testing.T, cfg Config, opts ...Option) *Advisor {
	t.Helper()
	a, err := New(cfg, clock.Fixed(now), opts...)
	require.NoError(t, err)
	return a
}

func loc(c model.Coordinate) *model.Coordinate { return &c }

func TestHaversine(t *testing.T) {
	assert.InDelta(t, 0, Haversine(sydney, sydney), 1e-9)
	assert.InDelta(t, 713.4, Haversine(sydney, melbourne), 5)
	assert.InDelta(t, 10.0, Haversine(sydney, chatswood), 0.1)
	assert.InDelta(t, Haversine(sydney, melbourne), Haversine(melbourne, sydney), 1e-9)
}

func TestEstimateDrivingTime(t *testing.T) {
	assert.InDelta(t, 30, EstimateDrivingTime(15), 1e-9)
	assert.InDelta(t, 15, FlatSpeed{SpeedKmh: 60}.DriveMinutes(15), 1e-9)
	assert.InDelta(t, 30, FlatSpeed{}.DriveMinutes(15), 1e-9, "zero speed falls back to the default")
}

func TestSuggestNearbySameLocation(t *testing.T) {
	a := newAdvisor(t, Config{})
	out := a.Suggest(model.SuggestRequest{
		Target:    &sydney,
		PriorJobs: []model.PriorJob{{ResourceID: "1", Location: loc(sydney), Date: now}},
		Resources: []model.Resource{{ID: "1", Name: "Alex Johnson", AvailableTimes: []string{"10:00 AM"}}},
	})
	require.Len(t, out, 1)
	s := out[0]
	assert.Equal(t, "1", s.ResourceID)
	assert.Equal(t, "10:00 AM", s.Time)
	assert.True(t, s.Date.Equal(tomorrow))
	assert.Equal(t, model.SuggestionNearby, s.Kind)
	require.NotNil(t, s.DistanceKm)
	assert.InDelta(t, 0, *s.DistanceKm, 1e-6)
	assert.Contains(t, s.Reason, "Alex Johnson")
	assert.Contains(t, s.Reason, "0.0 km")
	assert.Contains(t, s.Reason, "about 0 min drive")
}

func TestSuggestNearbyReasonUsesEstimator(t *testing.T) {
	a := newAdvisor(t, Config{}, WithEstimator(fixedEstimator(42)))
	out := a.Suggest(model.SuggestRequest{
		Target:    &sydney,
		PriorJobs: []model.PriorJob{{ResourceID: "1", Location: loc(chatswood)}},
		Resources: []model.Resource{{ID: "1", Name: "Sam", AvailableTimes: []string{"8:00 AM"}}},
	})
	require.NotEmpty(t, out)
	assert.Contains(t, out[0].Reason, "10.0 km")
	assert.Contains(t, out[0].Reason, "about 42 min drive")
}

type fixedEstimator float64

func (f fixedEstimator) DriveMinutes(float64) float64 { return float64(f) }

func TestSuggestNearbyClosestFirst(t *testing.T) {
	a := newAdvisor(t, Config{})
	out := a.Suggest(model.SuggestRequest{
		Target: &sydney,
		PriorJobs: []model.PriorJob{
			{ResourceID: "far", Location: loc(chatswood)},
			{ResourceID: "near", Location: loc(sydney)},
			{ResourceID: "away", Location: loc(melbourne)},
		},
		Resources: []model.Resource{
			{ID: "far", Name: "Far", AvailableTimes: []string{"9:00 AM"}},
			{ID: "near", Name: "Near", AvailableTimes: []string{"9:00 AM"}},
			{ID: "away", Name: "Away", AvailableTimes: []string{"9:00 AM"}},
		},
	})
	var nearby []string
	for _, s := range out {
		if s.Kind == model.SuggestionNearby {
			nearby = append(nearby, s.ResourceID)
		}
	}
	assert.Equal(t, []string{"near", "far"}, nearby)
}

func TestSuggestNearbyResolvesByName(t *testing.T) {
	a := newAdvisor(t, Config{})
	out := a.Suggest(model.SuggestRequest{
		Target:    &sydney,
		PriorJobs: []model.PriorJob{{ResourceName: "alex johnson", Location: loc(sydney)}},
		Resources: []model.Resource{{ID: "7", Name: "Alex Johnson", AvailableTimes: []string{"11:00 AM"}}},
	})
	require.NotEmpty(t, out)
	assert.Equal(t, model.SuggestionNearby, out[0].Kind)
	assert.Equal(t, "7", out[0].ResourceID)
}

func TestSuggestPreferred(t *testing.T) {
	a := newAdvisor(t, Config{})
	out := a.Suggest(model.SuggestRequest{
		PreferredResource: "alex JOHNSON",
		Resources:         []model.Resource{{ID: "1", Name: "Alex Johnson", AvailableTimes: []string{"9:00 AM", "1:00 PM"}}},
	})
	require.Len(t, out, 5)
	want := []struct {
		day  int
		slot string
	}{{1, "9:00 AM"}, {1, "1:00 PM"}, {2, "9:00 AM"}, {2, "1:00 PM"}, {3, "9:00 AM"}}
	for i, w := range want {
		assert.True(t, out[i].Date.Equal(tomorrow.AddDate(0, 0, w.day-1)), "suggestion %d date %v", i, out[i].Date)
		assert.Equal(t, w.slot, out[i].Time)
		assert.Equal(t, model.SuggestionPreferred, out[i].Kind)
	}
}

func TestSuggestPreferredUnknown(t *testing.T) {
	a := newAdvisor(t, Config{})
	out := a.Suggest(model.SuggestRequest{
		PreferredResource: "Nobody",
		Resources: []model.Resource{
			{ID: "1", Name: "Alex", AvailableTimes: []string{"9:00 AM"}},
			{ID: "2", Name: "Blair", AvailableTimes: []string{"10:00 AM", "2:00 PM"}},
		},
	})
	require.Len(t, out, 2)
	for _, s := range out {
		assert.Equal(t, model.SuggestionAvailable, s.Kind)
		assert.True(t, s.Date.Equal(tomorrow))
	}
	assert.Equal(t, "10:00 AM", out[1].Time)
}

func TestSuggestFallbackSkipsPreferred(t *testing.T) {
	a := newAdvisor(t, Config{PreferredDays: 1})
	out := a.Suggest(model.SuggestRequest{
		PreferredResource: "Alex",
		Resources: []model.Resource{
			{ID: "1", Name: "Alex", AvailableTimes: []string{"9:00 AM"}},
			{ID: "2", Name: "Blair", AvailableTimes: []string{"9:00 AM"}},
			{ID: "3", Name: "Casey"},
		},
	})
	require.Len(t, out, 2)
	assert.Equal(t, model.SuggestionPreferred, out[0].Kind)
	assert.Equal(t, "1", out[0].ResourceID)
	assert.Equal(t, model.SuggestionAvailable, out[1].Kind)
	assert.Equal(t, "2", out[1].ResourceID)
}

func TestSuggestFallbackNotNeeded(t *testing.T) {
	a := newAdvisor(t, Config{})
	out := a.Suggest(model.SuggestRequest{
		PreferredResource: "Alex",
		Resources: []model.Resource{
			{ID: "1", Name: "Alex", AvailableTimes: []string{"9:00 AM"}},
			{ID: "2", Name: "Blair", AvailableTimes: []string{"9:00 AM"}},
		},
	})
	require.Len(t, out, 3)
	for _, s := range out {
		assert.Equal(t, "1", s.ResourceID)
	}
}

func TestSuggestEmptyInputs(t *testing.T) {
	a := newAdvisor(t, Config{})
	out := a.Suggest(model.SuggestRequest{})
	assert.NotNil(t, out)
	assert.Empty(t, out)

	out = a.Suggest(model.SuggestRequest{
		Target:            &sydney,
		PreferredResource: "Alex",
		PriorJobs:         []model.PriorJob{{ResourceID: "1", Location: loc(sydney)}},
	})
	assert.Empty(t, out)
}

func TestSuggestNoTargetSkipsNearby(t *testing.T) {
	a := newAdvisor(t, Config{})
	out := a.Suggest(model.SuggestRequest{
		PriorJobs: []model.PriorJob{{ResourceID: "1", Location: loc(sydney)}},
		Resources: []model.Resource{{ID: "1", Name: "Alex", AvailableTimes: []string{"9:00 AM"}}},
	})
	require.Len(t, out, 1)
	assert.Equal(t, model.SuggestionAvailable, out[0].Kind)
}

func TestSuggestContextCancelled(t *testing.T) {
	a := newAdvisor(t, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out, err := a.SuggestContext(ctx, model.SuggestRequest{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, out)

	out, err = a.SuggestContext(context.Background(), model.SuggestRequest{
		Resources: []model.Resource{{ID: "1", Name: "Alex", AvailableTimes: []string{"9:00 AM"}}},
	})
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestDedupe(t *testing.T) {
	in := []model.Suggestion{
		{Date: tomorrow, Time: "9:00 AM", ResourceID: "1", Kind: model.SuggestionNearby},
		{Date: tomorrow, Time: "9:00 AM", ResourceID: "1", Kind: model.SuggestionAvailable},
		{Date: tomorrow, Time: "9:00 AM", ResourceID: "2"},
		{Date: tomorrow.AddDate(0, 0, 1), Time: "9:00 AM", ResourceID: "1"},
	}
	out := Dedupe(in)
	require.Len(t, out, 3)
	assert.Equal(t, model.SuggestionNearby, out[0].Kind, "first occurrence wins")
}

func TestNewConfig(t *testing.T) {
	_, err := New(Config{NearbyRadiusKm: -1}, nil)
	assert.Error(t, err)
	_, err = New(Config{DriveTime: factory.ModuleConfig{Type: "osrm"}}, nil)
	assert.Error(t, err)

	a, err := New(Config{DriveTime: factory.ModuleConfig{Type: "flat_speed", Conf: map[string]any{"speed_kmh": 60}}}, clock.Fixed(now))
	require.NoError(t, err)
	assert.InDelta(t, 10, a.estimator.DriveMinutes(10), 1e-9)
}

func TestSuggestProperties(t *testing.T) {
	a := newAdvisor(t, Config{})
	r := rand.New(rand.NewSource(11))
	slots := []string{"8:00 AM", "10:00 AM", "1:00 PM", "3:00 PM"}
	for iter := 0; iter < 200; iter++ {
		var pool []model.Resource
		for i, n := 0, r.Intn(5); i < n; i++ {
			pool = append(pool, model.Resource{
				ID:             fmt.Sprint(i),
				Name:           fmt.Sprintf("P%d", i),
				AvailableTimes: append([]string(nil), slots[:r.Intn(len(slots)+1)]...),
			})
		}
		var jobs []model.PriorJob
		for i, n := 0, r.Intn(8); i < n; i++ {
			c := model.Coordinate{Lat: sydney.Lat + (r.Float64()-0.5)*0.8, Lng: sydney.Lng + (r.Float64()-0.5)*0.8}
			jobs = append(jobs, model.PriorJob{ResourceID: fmt.Sprint(r.Intn(6)), Location: &c})
		}
		req := model.SuggestRequest{Target: &sydney, PriorJobs: jobs, Resources: pool}
		if r.Intn(2) == 0 {
			req.PreferredResource = fmt.Sprintf("p%d", r.Intn(5))
		}
		out := a.Suggest(req)

		require.LessOrEqual(t, len(out), 5)
		seen := map[string]bool{}
		for _, s := range out {
			require.False(t, seen[s.Key()], "duplicate %s", s.Key())
			seen[s.Key()] = true
			if s.Kind == model.SuggestionNearby {
				require.NotNil(t, s.DistanceKm)
				require.LessOrEqual(t, *s.DistanceKm, 30.0)
			}
		}
		if len(pool) == 0 {
			require.Empty(t, out)
		}
	}
}
