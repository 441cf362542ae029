package clients

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nuvora-hq/crm-cli/internal/domain"
)

func testOptions(now time.Time) RenderOptions {
	return RenderOptions{Now: now, ReminderLeadDays: 7}
}

func TestRenderListShowsCardsAndCount(t *testing.T) {
	now := time.Date(2026, time.March, 1, 11, 0, 0, 0, time.UTC)

	output, err := RenderList([]domain.Client{
		{
			ID:              "42",
			Name:            "Acme Corp",
			Company:         "Acme",
			Email:           "ops@acme.test",
			Phone:           "555-0100",
			Services:        []string{"sms", "email", "billing", "support"},
			SubscriptionEnd: now.AddDate(0, 2, 0),
		},
		{
			ID:              "43",
			Name:            "Globex",
			Email:           "it@globex.test",
			SubscriptionEnd: now.AddDate(0, 0, 3),
		},
	}, testOptions(now))

	require.NoError(t, err)
	assert.Contains(t, output, "clients: 2")
	assert.Contains(t, output, "Acme Corp")
	assert.Contains(t, output, "[active]")
	assert.Contains(t, output, "Globex")
	assert.Contains(t, output, "[3 days]")
	assert.Contains(t, output, "+1 more", "only three service badges are shown")
}

func TestRenderListEmpty(t *testing.T) {
	output, err := RenderList(nil, testOptions(time.Now()))

	require.NoError(t, err)
	assert.Contains(t, output, "clients: 0")
	assert.Contains(t, output, "No clients yet.")
}

func TestRenderListExpiredBadge(t *testing.T) {
	now := time.Date(2026, time.March, 10, 11, 0, 0, 0, time.UTC)

	output, err := RenderList([]domain.Client{
		{ID: "42", Name: "Acme Corp", SubscriptionEnd: now.AddDate(0, 0, -1)},
	}, testOptions(now))

	require.NoError(t, err)
	assert.Contains(t, output, "[expired]")
	assert.Contains(t, output, "subscription expired")
}

func TestRenderDetailsShowsFullRecord(t *testing.T) {
	now := time.Date(2026, time.March, 1, 11, 0, 0, 0, time.UTC)

	output, err := RenderDetails(domain.Client{
		ID:                "42",
		Name:              "Acme Corp",
		Company:           "Acme",
		Email:             "ops@acme.test",
		Phone:             "555-0100",
		Notes:             "priority account",
		Services:          []string{"sms", "email"},
		SubscriptionStart: now.AddDate(0, -10, 0),
		SubscriptionEnd:   now.AddDate(0, 0, 5),
		CreatedAt:         now.AddDate(0, -10, 0),
		UpdatedAt:         now.AddDate(0, -1, 0),
	}, testOptions(now))

	require.NoError(t, err)
	assert.Contains(t, output, "Acme Corp")
	assert.Contains(t, output, "[5 days]")
	assert.Contains(t, output, "ops@acme.test")
	assert.Contains(t, output, "sms, email")
	assert.Contains(t, output, "priority account")
	assert.Contains(t, output, "5 days remaining")
}

func TestRenderDetailsHandlesMissingDates(t *testing.T) {
	output, err := RenderDetails(domain.Client{
		ID:    "42",
		Name:  "Acme Corp",
		Email: "ops@acme.test",
		Phone: "555-0100",
	}, testOptions(time.Now()))

	require.NoError(t, err)
	assert.Contains(t, output, "N/A")
	assert.Contains(t, output, "[expired]", "a zero end date reads as expired")
}
