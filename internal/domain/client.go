package domain

import "time"

type ClientID string

// Client mirrors the server-owned entity. Instances are immutable once
// fetched; edits go through a write request and a refetch.
type Client struct {
	ID                ClientID  `json:"_id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	Company           string    `json:"company"`
	Notes             string    `json:"notes"`
	Services          []string  `json:"services"`
	SubscriptionStart time.Time `json:"subscriptionStart"`
	SubscriptionEnd   time.Time `json:"subscriptionEnd"`
	CreatedBy         string    `json:"createdBy"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ClientFields is the mutable subset sent on create and update.
// The server assigns ID and audit fields.
type ClientFields struct {
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	Company           string    `json:"company"`
	Notes             string    `json:"notes"`
	Services          []string  `json:"services"`
	SubscriptionStart time.Time `json:"subscriptionStart"`
	SubscriptionEnd   time.Time `json:"subscriptionEnd"`
}

// DaysUntilExpiry reports whole days from now until the subscription
// end, comparing calendar days rather than elapsed hours. Zero or
// negative means expired.
func (c Client) DaysUntilExpiry(now time.Time) int {
	if c.SubscriptionEnd.IsZero() {
		return 0
	}

	end := truncateToDay(c.SubscriptionEnd)
	today := truncateToDay(now)
	return int(end.Sub(today).Hours() / 24)
}

func (c Client) Expired(now time.Time) bool {
	return c.DaysUntilExpiry(now) <= 0
}

// ExpiringSoon reports whether the subscription ends within leadDays
// but has not yet expired.
func (c Client) ExpiringSoon(now time.Time, leadDays int) bool {
	days := c.DaysUntilExpiry(now)
	return days > 0 && days <= leadDays
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
