package advisor

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/kilianp07/studiodesk/core/clock"
	"github.com/kilianp07/studiodesk/core/logger"
	"github.com/kilianp07/studiodesk/core/model"
)

// Advisor generates ranked appointment suggestions. It is safe for
// concurrent use.
type Advisor struct {
	cfg       Config
	clock     clock.Clock
	estimator DriveTimeEstimator
	log       logger.Logger
}

// Option customises an Advisor.
type Option func(*Advisor)

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(a *Advisor) { a.log = logger.OrNop(l) }
}

// WithEstimator overrides the estimator selected by Config.DriveTime.
func WithEstimator(e DriveTimeEstimator) Option {
	return func(a *Advisor) {
		if e != nil {
			a.estimator = e
		}
	}
}

// New creates an Advisor. A nil clock reads the system clock.
func New(cfg Config, clk clock.Clock, opts ...Option) (*Advisor, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	est, err := NewEstimator(cfg.DriveTime)
	if err != nil {
		return nil, err
	}
	if clk == nil {
		clk = clock.System{}
	}
	a := &Advisor{cfg: cfg, clock: clk, estimator: est, log: logger.Nop{}}
	for _, o := range opts {
		o(a)
	}
	return a, nil
}

type nearbyJob struct {
	job      model.PriorJob
	distance float64
}

// Suggest returns up to Config.MaxSuggestions slots. It never fails: missing
// target, unknown preferred photographer or empty inputs only skip the
// corresponding pass.
func (a *Advisor) Suggest(req model.SuggestRequest) []model.Suggestion {
	now := a.clock.Now()
	today := model.StartOfDay(now)
	tomorrow := Tomorrow(now)
	var out []model.Suggestion

	if req.Target != nil {
		for _, n := range a.nearby(*req.Target, req.PriorJobs) {
			res, ok := findResource(req.Resources, n.job.ResourceID, n.job.ResourceName)
			if !ok {
				a.log.Debugf("nearby job resource %q not in pool", n.job.ResourceID)
				continue
			}
			slot, ok := res.FirstSlot()
			if !ok {
				continue
			}
			dist := n.distance
			minutes := a.estimator.DriveMinutes(dist)
			out = append(out, model.Suggestion{
				Date:         tomorrow,
				Time:         slot,
				ResourceID:   res.ID,
				ResourceName: res.Name,
				Kind:         model.SuggestionNearby,
				DistanceKm:   &dist,
				Reason: fmt.Sprintf("%s has a shoot %.1f km away (about %d min drive)",
					res.Name, math.Round(dist*10)/10, int(math.Round(minutes))),
			})
		}
	}

	var preferred *model.Resource
	if req.PreferredResource != "" {
		if res, ok := findResourceByName(req.Resources, req.PreferredResource); ok {
			preferred = &res
			for d := 1; d <= a.cfg.PreferredDays; d++ {
				date := today.AddDate(0, 0, d)
				for _, slot := range res.AvailableTimes {
					out = append(out, model.Suggestion{
						Date:         date,
						Time:         slot,
						ResourceID:   res.ID,
						ResourceName: res.Name,
						Kind:         model.SuggestionPreferred,
						Reason:       fmt.Sprintf("%s is the preferred photographer", res.Name),
					})
				}
			}
		} else {
			a.log.Debugf("preferred photographer %q not found", req.PreferredResource)
		}
	}

	if len(out) < a.cfg.MinSuggestions {
		for _, res := range req.Resources {
			if preferred != nil && res.ID == preferred.ID {
				continue
			}
			slot, ok := res.FirstSlot()
			if !ok {
				continue
			}
			out = append(out, model.Suggestion{
				Date:         tomorrow,
				Time:         slot,
				ResourceID:   res.ID,
				ResourceName: res.Name,
				Kind:         model.SuggestionAvailable,
				Reason:       fmt.Sprintf("%s is available tomorrow", res.Name),
			})
		}
	}

	out = Dedupe(out)
	if len(out) > a.cfg.MaxSuggestions {
		out = out[:a.cfg.MaxSuggestions]
	}
	if out == nil {
		out = []model.Suggestion{}
	}
	return out
}

// SuggestContext runs Suggest and discards the result when ctx is done.
func (a *Advisor) SuggestContext(ctx context.Context, req model.SuggestRequest) ([]model.Suggestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := a.Suggest(req)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// nearby returns prior jobs within the configured radius, closest first.
// Jobs at equal distance keep their input order.
func (a *Advisor) nearby(target model.Coordinate, jobs []model.PriorJob) []nearbyJob {
	var res []nearbyJob
	for _, j := range jobs {
		if j.Location == nil {
			continue
		}
		d := Haversine(target, *j.Location)
		if d > a.cfg.NearbyRadiusKm {
			continue
		}
		res = append(res, nearbyJob{job: j, distance: d})
	}
	sort.SliceStable(res, func(i, k int) bool { return res[i].distance < res[k].distance })
	return res
}

// Dedupe keeps the first suggestion for every (date, time, resource) key.
func Dedupe(in []model.Suggestion) []model.Suggestion {
	seen := make(map[string]struct{}, len(in))
	out := make([]model.Suggestion, 0, len(in))
	for _, s := range in {
		k := s.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}

func findResource(pool []model.Resource, id, name string) (model.Resource, bool) {
	for _, r := range pool {
		if id != "" && r.ID == id {
			return r, true
		}
	}
	if name == "" {
		name = id
	}
	return findResourceByName(pool, name)
}

func findResourceByName(pool []model.Resource, name string) (model.Resource, bool) {
	if name == "" {
		return model.Resource{}, false
	}
	for _, r := range pool {
		if strings.EqualFold(r.Name, name) {
			return r, true
		}
	}
	return model.Resource{}, false
}

// Tomorrow returns the day after now's calendar day.
func Tomorrow(now time.Time) time.Time {
	return model.StartOfDay(now).AddDate(0, 0, 1)
}
