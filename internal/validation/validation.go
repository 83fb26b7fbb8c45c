// Package validation checks campaign candidates and partial updates against
// the field rules of the campaign record. Every violated rule yields one
// FieldError; rules never short-circuit each other across fields.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"campaignhub/internal/models"
)

const (
	tagNotBlank          = "notblank"
	tagInstant           = "instant"
	tagAfterStart        = "afterstart"
	tagWithinImpressions = "withinimpressions"
)

// FieldError is a single violated rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is a non-empty set of violations returned to the caller as a
// validation failure.
type Errors []FieldError

func (e Errors) Error() string {
	return Format(e)
}

// Has reports whether any violation is attached to field.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

var messages = map[string]string{
	"name.notblank":            "Campaign name is required",
	"name.max":                 "Campaign name must be less than 255 characters",
	"advertiser.notblank":      "Advertiser name is required",
	"advertiser.max":           "Advertiser name must be less than 255 characters",
	"budget.required":          "Budget is required",
	"budget.gt":                "Budget must be greater than 0",
	"budget.lte":               "Budget is too large",
	"startDate.required":       "Start date is required",
	"endDate.required":         "End date is required",
	"startDate.instant":        "Invalid start date",
	"endDate.instant":          "Invalid end date",
	"endDate.afterstart":       "End date must be after start date",
	"status.required":          "Status is required",
	"status.oneof":             "Invalid campaign status",
	"impressions.gte":          "Impressions cannot be negative",
	"clicks.gte":               "Clicks cannot be negative",
	"clicks.withinimpressions": "Clicks cannot exceed impressions",
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	if err := validate.RegisterValidation(tagNotBlank, validateNotBlank); err != nil {
		panic(err)
	}

	validate.RegisterStructValidation(campaignInputStructLevel, models.CampaignInput{})
	validate.RegisterStructValidation(statsStructLevel, models.UpdateStatsRequest{})
}

// Validate checks a full campaign candidate. It returns nil when every rule
// holds.
func Validate(in models.CampaignInput) Errors {
	return collect(validate.Struct(in))
}

// ValidateStats checks an impressions/clicks pair. Nil counters are skipped,
// and the clicks ceiling only applies when both are present.
func ValidateStats(in models.UpdateStatsRequest) Errors {
	return collect(validate.Struct(in))
}

// ValidateStatus checks a requested status value.
func ValidateStatus(status string) Errors {
	return collect(validate.Struct(models.UpdateStatusRequest{Status: status}))
}

// IsValidID reports whether id has the shape of a native store key: 24
// hexadecimal characters, either case.
func IsValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// Format renders errs as one line: nothing for no errors, the bare message
// for one, and "field: message" pairs otherwise.
func Format(errs []FieldError) string {
	switch len(errs) {
	case 0:
		return ""
	case 1:
		return errs[0].Message
	}
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return strings.Join(parts, ", ")
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate parses an RFC 3339 timestamp, a datetime-local value or a plain
// date. Values without an offset are read as UTC.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

func collect(err error) Errors {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{{Field: "", Message: err.Error()}}
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func campaignInputStructLevel(sl validator.StructLevel) {
	in := sl.Current().Interface().(models.CampaignInput)

	// Dates are only checked against each other once both are present.
	if in.StartDate != "" && in.EndDate != "" {
		start, startErr := ParseDate(in.StartDate)
		if startErr != nil {
			sl.ReportError(in.StartDate, "startDate", "StartDate", tagInstant, "")
		}
		end, endErr := ParseDate(in.EndDate)
		if endErr != nil {
			sl.ReportError(in.EndDate, "endDate", "EndDate", tagInstant, "")
		}
		if startErr == nil && endErr == nil && !start.Before(end) {
			sl.ReportError(in.EndDate, "endDate", "EndDate", tagAfterStart, "startDate")
		}
	}

	// A new record starts from zero, so a missing counter counts as 0.
	if in.Clicks != nil {
		var impressions int64
		if in.Impressions != nil {
			impressions = *in.Impressions
		}
		if *in.Clicks > impressions {
			sl.ReportError(*in.Clicks, "clicks", "Clicks", tagWithinImpressions, "impressions")
		}
	}
}

func statsStructLevel(sl validator.StructLevel) {
	in := sl.Current().Interface().(models.UpdateStatsRequest)

	if in.Impressions != nil && in.Clicks != nil && *in.Clicks > *in.Impressions {
		sl.ReportError(*in.Clicks, "clicks", "Clicks", tagWithinImpressions, "impressions")
	}
}
