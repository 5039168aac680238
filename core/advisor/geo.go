package advisor

import (
	"math"

	"github.com/kilianp07/studiodesk/core/factory"
	"github.com/kilianp07/studiodesk/core/model"
)

// EarthRadiusKm is the mean Earth radius used by Haversine.
const EarthRadiusKm = 6371.0

// DefaultSpeedKmh is the flat average speed assumed for drive times.
const DefaultSpeedKmh = 30.0

// Haversine returns the great-circle distance between a and b in kilometres.
func Haversine(a, b model.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// DriveTimeEstimator converts a distance in kilometres to minutes of driving.
type DriveTimeEstimator interface {
	DriveMinutes(distanceKm float64) float64
}

// FlatSpeed assumes a constant average speed. It ignores roads and traffic.
type FlatSpeed struct {
	SpeedKmh float64
}

func (f FlatSpeed) DriveMinutes(distanceKm float64) float64 {
	speed := f.SpeedKmh
	if speed <= 0 {
		speed = DefaultSpeedKmh
	}
	return distanceKm / speed * 60
}

// EstimateDrivingTime returns the drive time in minutes at DefaultSpeedKmh.
func EstimateDrivingTime(distanceKm float64) float64 {
	return FlatSpeed{SpeedKmh: DefaultSpeedKmh}.DriveMinutes(distanceKm)
}

var estimatorRegistry = factory.NewRegistry[DriveTimeEstimator]()

func init() {
	_ = estimatorRegistry.Register("flat_speed", func(conf map[string]any) (DriveTimeEstimator, error) {
		var c struct {
			SpeedKmh float64 `json:"speed_kmh"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return FlatSpeed{SpeedKmh: c.SpeedKmh}, nil
	})
}

// RegisterEstimator makes a drive-time estimator selectable from
// configuration, e.g. one backed by a routing service.
func RegisterEstimator(name string, f factory.Factory[DriveTimeEstimator]) error {
	return estimatorRegistry.Register(name, f)
}

// NewEstimator builds the estimator described by cfg. An empty type selects
// flat_speed.
func NewEstimator(cfg factory.ModuleConfig) (DriveTimeEstimator, error) {
	if cfg.Type == "" {
		cfg.Type = "flat_speed"
	}
	return estimatorRegistry.Create(cfg)
}
