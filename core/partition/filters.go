package partition

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/kilianp07/studiodesk/core/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateFilters checks the basic status and filter configuration and
// returns a *ConfigurationError describing the first problem found.
func ValidateFilters(basicStatus string, f model.FilterConfiguration) error {
	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &ConfigurationError{Field: fe.Field(), Reason: describe(fe)}
		}
		return &ConfigurationError{Field: "filters", Reason: err.Error()}
	}
	if !statusFilterValid(basicStatus, true) {
		return &ConfigurationError{Field: "basic_status", Reason: fmt.Sprintf("unknown status %q", basicStatus)}
	}
	if !statusFilterValid(f.Status, false) {
		return &ConfigurationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", f.Status)}
	}
	if err := checkRange("created", f.Created); err != nil {
		return err
	}
	return checkRange("appointment", f.Appointment)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("%q is not one of [%s]", fe.Value(), fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func statusFilterValid(s string, allowOutstanding bool) bool {
	switch s {
	case "", model.StatusAll:
		return true
	case model.StatusOutstanding:
		return allowOutstanding
	}
	return model.OrderStatus(s).Valid()
}

func checkRange(field string, r model.DateRange) error {
	if r.From == nil || r.To == nil {
		return nil
	}
	from := model.StartOfDay(*r.From)
	to := model.StartOfDay(r.To.In(r.From.Location()))
	if from.After(to) {
		return &ConfigurationError{
			Field:  field,
			Reason: fmt.Sprintf("from %s is after to %s", r.From.Format(model.DateLayout), r.To.Format(model.DateLayout)),
		}
	}
	return nil
}

// dated pairs an order with its parsed scheduled day.
type dated struct {
	order model.Order
	day   time.Time
}

// keepFunc reports whether an order survives a filter stage. A nil keepFunc
// is a stage that does not apply.
type keepFunc func(d dated) bool

func narrow(in []dated, keep keepFunc) []dated {
	if keep == nil {
		return in
	}
	out := make([]dated, 0, len(in))
	for _, d := range in {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}

func basicStatusFilter(status string) keepFunc {
	switch status {
	case "", model.StatusAll:
		return nil
	case model.StatusOutstanding:
		return func(d dated) bool { return d.order.Status != model.StatusCompleted }
	default:
		return exactStatus(status)
	}
}

func exactStatus(status string) keepFunc {
	return func(d dated) bool { return string(d.order.Status) == status }
}

// createdFilter matches the creation day. Orders without CreatedAt are
// matched on their scheduled day instead.
func createdFilter(r model.DateRange, loc *time.Location) keepFunc {
	if r.IsZero() {
		return nil
	}
	return func(d dated) bool {
		day := d.day
		if d.order.CreatedAt != nil {
			day = model.StartOfDay(d.order.CreatedAt.In(loc))
		}
		return r.Contains(day)
	}
}

func appointmentFilter(r model.DateRange) keepFunc {
	if r.IsZero() {
		return nil
	}
	return func(d dated) bool { return r.Contains(d.day) }
}

func statusOverride(status string) keepFunc {
	if status == "" || status == model.StatusAll {
		return nil
	}
	return exactStatus(status)
}

func paymentFilter(p model.PaymentFilter, pred PaymentPredicate) keepFunc {
	switch p {
	case model.PaymentPaid:
		return func(d dated) bool { return pred.IsPaid(d.order) }
	case model.PaymentUnpaid:
		return func(d dated) bool { return !pred.IsPaid(d.order) }
	default:
		return nil
	}
}
