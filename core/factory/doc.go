// Package factory builds pluggable modules from configuration blocks of the
// form {type, conf}. Metrics sinks, payment predicates and drive-time
// estimators are all selected this way.
//
//	reg := factory.NewRegistry[advisor.DriveTimeEstimator]()
//	_ = reg.Register("flat_speed", func(conf map[string]any) (advisor.DriveTimeEstimator, error) {
//	    var c struct{ SpeedKmh float64 `json:"speed_kmh"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return advisor.FlatSpeed{SpeedKmh: c.SpeedKmh}, nil
//	})
//	est, err := reg.Create(factory.ModuleConfig{Type: "flat_speed", Conf: map[string]any{"speed_kmh": 40}})
package factory
