package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaignhub/internal/models"
)

func ptr[T any](v T) *T { return &v }

func validInput() models.CampaignInput {
	return models.CampaignInput{
		Name:       "Spring Sale",
		Advertiser: "Acme",
		Budget:     ptr(100.0),
		StartDate:  "2024-03-01",
		EndDate:    "2024-03-31",
	}
}

func fieldMessages(errs Errors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, e := range errs {
		out[e.Field] = e.Message
	}
	return out
}

func TestValidateAcceptsValidInput(t *testing.T) {
	in := validInput()
	in.Status = "paused"
	in.Impressions = ptr(int64(10))
	in.Clicks = ptr(int64(10))

	assert.Empty(t, Validate(in))
}

func TestValidateSingleRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.CampaignInput)
		field   string
		message string
	}{
		{"blank name", func(in *models.CampaignInput) { in.Name = "   " }, "name", "Campaign name is required"},
		{"long name", func(in *models.CampaignInput) { in.Name = strings.Repeat("a", 256) }, "name", "Campaign name must be less than 255 characters"},
		{"blank advertiser", func(in *models.CampaignInput) { in.Advertiser = "" }, "advertiser", "Advertiser name is required"},
		{"missing budget", func(in *models.CampaignInput) { in.Budget = nil }, "budget", "Budget is required"},
		{"zero budget", func(in *models.CampaignInput) { in.Budget = ptr(0.0) }, "budget", "Budget must be greater than 0"},
		{"negative budget", func(in *models.CampaignInput) { in.Budget = ptr(-5.0) }, "budget", "Budget must be greater than 0"},
		{"huge budget", func(in *models.CampaignInput) { in.Budget = ptr(2_000_000_000.0) }, "budget", "Budget is too large"},
		{"missing start", func(in *models.CampaignInput) { in.StartDate = "" }, "startDate", "Start date is required"},
		{"missing end", func(in *models.CampaignInput) { in.EndDate = "" }, "endDate", "End date is required"},
		{"bad start", func(in *models.CampaignInput) { in.StartDate = "March 1st" }, "startDate", "Invalid start date"},
		{"bad end", func(in *models.CampaignInput) { in.EndDate = "2024-13-45" }, "endDate", "Invalid end date"},
		{"end equals start", func(in *models.CampaignInput) { in.EndDate = in.StartDate }, "endDate", "End date must be after start date"},
		{"bad status", func(in *models.CampaignInput) { in.Status = "archived" }, "status", "Invalid campaign status"},
		{"negative impressions", func(in *models.CampaignInput) { in.Impressions = ptr(int64(-1)) }, "impressions", "Impressions cannot be negative"},
		{"negative clicks", func(in *models.CampaignInput) { in.Clicks = ptr(int64(-1)) }, "clicks", "Clicks cannot be negative"},
		{"clicks above impressions", func(in *models.CampaignInput) {
			in.Impressions = ptr(int64(5))
			in.Clicks = ptr(int64(6))
		}, "clicks", "Clicks cannot exceed impressions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			errs := Validate(in)
			require.Len(t, errs, 1, "errors: %v", errs)
			assert.Equal(t, tt.field, errs[0].Field)
			assert.Equal(t, tt.message, errs[0].Message)
		})
	}
}

func TestValidateAccumulates(t *testing.T) {
	start := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	in := models.CampaignInput{
		Name:       "",
		Advertiser: "A",
		Budget:     ptr(10.0),
		StartDate:  start.Format(time.RFC3339),
		EndDate:    start.AddDate(0, 0, -1).Format(time.RFC3339),
	}

	errs := Validate(in)
	require.GreaterOrEqual(t, len(errs), 2)
	assert.True(t, errs.Has("name"))
	assert.True(t, errs.Has("endDate"))
}

func TestValidateEverythingMissing(t *testing.T) {
	got := fieldMessages(Validate(models.CampaignInput{}))

	assert.Equal(t, map[string]string{
		"name":       "Campaign name is required",
		"advertiser": "Advertiser name is required",
		"budget":     "Budget is required",
		"startDate":  "Start date is required",
		"endDate":    "End date is required",
	}, got)
}

func TestValidateBadDateWithOtherMissing(t *testing.T) {
	in := validInput()
	in.StartDate = "garbage"
	in.EndDate = ""
	assert.Equal(t, map[string]string{"endDate": "End date is required"}, fieldMessages(Validate(in)))

	in = validInput()
	in.StartDate = ""
	in.EndDate = "garbage"
	assert.Equal(t, map[string]string{"startDate": "Start date is required"}, fieldMessages(Validate(in)))
}

func TestValidateClicksWithoutImpressions(t *testing.T) {
	in := validInput()
	in.Clicks = ptr(int64(5))
	assert.Equal(t, map[string]string{"clicks": "Clicks cannot exceed impressions"}, fieldMessages(Validate(in)))

	in.Clicks = ptr(int64(0))
	assert.Empty(t, Validate(in))
}

func TestValidateStats(t *testing.T) {
	assert.Empty(t, ValidateStats(models.UpdateStatsRequest{}))
	assert.Empty(t, ValidateStats(models.UpdateStatsRequest{Clicks: ptr(int64(99))}))
	assert.Empty(t, ValidateStats(models.UpdateStatsRequest{Impressions: ptr(int64(3)), Clicks: ptr(int64(3))}))

	errs := ValidateStats(models.UpdateStatsRequest{Impressions: ptr(int64(3)), Clicks: ptr(int64(4))})
	require.Len(t, errs, 1)
	assert.Equal(t, "Clicks cannot exceed impressions", errs[0].Message)

	errs = ValidateStats(models.UpdateStatsRequest{Impressions: ptr(int64(-1)), Clicks: ptr(int64(-1))})
	assert.Equal(t, map[string]string{
		"impressions": "Impressions cannot be negative",
		"clicks":      "Clicks cannot be negative",
	}, fieldMessages(errs))
}

func TestValidateStatus(t *testing.T) {
	for _, s := range models.CampaignStatuses {
		assert.Empty(t, ValidateStatus(string(s)), s)
	}
	assert.Equal(t, "Status is required", Format(ValidateStatus("")))
	assert.Equal(t, "Invalid campaign status", Format(ValidateStatus("ACTIVE")))
}

func TestIsValidID(t *testing.T) {
	assert.True(t, IsValidID("65a1b2c3d4e5f60718293a4b"))
	assert.True(t, IsValidID("65A1B2C3D4E5F60718293A4B"))
	assert.False(t, IsValidID("65a1b2c3d4e5f60718293a4"))
	assert.False(t, IsValidID("65a1b2c3d4e5f60718293a4g"))
	assert.False(t, IsValidID(""))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "", Format(nil))
	assert.Equal(t, "Budget is required", Format([]FieldError{{Field: "budget", Message: "Budget is required"}}))
	assert.Equal(t, "name: a, budget: b", Format([]FieldError{
		{Field: "name", Message: "a"},
		{Field: "budget", Message: "b"},
	}))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-03-01T09:30", time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)},
		{"2024-03-01T09:30:15", time.Date(2024, 3, 1, 9, 30, 15, 0, time.UTC)},
		{"2024-03-01T09:30:15+02:00", time.Date(2024, 3, 1, 7, 30, 15, 0, time.UTC)},
		{"2024-03-01T09:30:15.250Z", time.Date(2024, 3, 1, 9, 30, 15, 250_000_000, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), "%s: got %v", tt.in, got)
		assert.Equal(t, time.UTC, got.Location())
	}

	_, err := ParseDate("01/03/2024")
	assert.Error(t, err)
}
