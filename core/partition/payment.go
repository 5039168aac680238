package partition

import (
	"github.com/shopspring/decimal"

	"github.com/kilianp07/studiodesk/core/factory"
	"github.com/kilianp07/studiodesk/core/model"
)

// Payment predicate type names.
const (
	PaymentFlag           = "flag"
	PaymentPriceThreshold = "price_threshold"
)

// PaymentPredicate decides whether an order counts as paid.
type PaymentPredicate interface {
	IsPaid(o model.Order) bool
}

// PriceThreshold treats an order as paid when its price is strictly above
// Threshold. It stands in for a payment field the order source does not
// expose yet.
type PriceThreshold struct {
	Threshold decimal.Decimal
}

func (p PriceThreshold) IsPaid(o model.Order) bool {
	return o.Price.GreaterThan(p.Threshold)
}

// Flag uses Order.Paid and defers to Fallback for orders without the flag.
type Flag struct {
	Fallback PaymentPredicate
}

func (p Flag) IsPaid(o model.Order) bool {
	if o.Paid != nil {
		return *o.Paid
	}
	if p.Fallback == nil {
		return false
	}
	return p.Fallback.IsPaid(o)
}

var paymentRegistry = factory.NewRegistry[PaymentPredicate]()

func init() {
	_ = paymentRegistry.Register(PaymentPriceThreshold, func(conf map[string]any) (PaymentPredicate, error) {
		th, err := thresholdConf(conf)
		if err != nil {
			return nil, err
		}
		return PriceThreshold{Threshold: th}, nil
	})
	_ = paymentRegistry.Register(PaymentFlag, func(conf map[string]any) (PaymentPredicate, error) {
		th, err := thresholdConf(conf)
		if err != nil {
			return nil, err
		}
		return Flag{Fallback: PriceThreshold{Threshold: th}}, nil
	})
}

func thresholdConf(conf map[string]any) (decimal.Decimal, error) {
	var c struct {
		Threshold string `json:"threshold"`
	}
	if err := factory.Decode(conf, &c); err != nil {
		return decimal.Zero, err
	}
	if c.Threshold == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(c.Threshold)
}

// RegisterPaymentPredicate adds a predicate factory selectable from
// configuration.
func RegisterPaymentPredicate(name string, f factory.Factory[PaymentPredicate]) error {
	return paymentRegistry.Register(name, f)
}

// NewPaymentPredicate builds the predicate described by cfg. An empty type
// selects the flag predicate.
func NewPaymentPredicate(cfg factory.ModuleConfig) (PaymentPredicate, error) {
	if cfg.Type == "" {
		cfg.Type = PaymentFlag
	}
	return paymentRegistry.Create(cfg)
}
