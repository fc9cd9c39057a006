package domain

import (
	"sort"
	"time"
)

type AlertType string

const (
	AlertLowStock        AlertType = "low_stock"
	AlertOverstock       AlertType = "overstock"
	AlertTrendingProduct AlertType = "trending_product"
	AlertWeather         AlertType = "weather_alert"
	AlertReorder         AlertType = "reorder"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Severities lists the severities from least to most severe.
var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh}

// Rank orders severities; unknown values rank 0.
func (s Severity) Rank() int {
	for i, known := range Severities {
		if s == known {
			return i + 1
		}
	}
	return 0
}

// Escalates reports whether next is more severe than s.
func (s Severity) Escalates(next Severity) bool {
	return next.Rank() > s.Rank()
}

// Alert is a notice raised against a product. Message and severity follow the
// latest computation; a read alert becomes unread again when its severity
// escalates.
type Alert struct {
	ID        string    `json:"id" db:"id"`
	Type      AlertType `json:"type" db:"type"`
	ProductID string    `json:"product_id" db:"product_id"`
	Message   string    `json:"message" db:"message"`
	Severity  Severity  `json:"severity" db:"severity"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Read      bool      `json:"read" db:"read"`
}

// SortAlertsByCreatedDesc orders newest first. Alerts created at the same
// instant keep their relative order.
func SortAlertsByCreatedDesc(alerts []Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].CreatedAt.After(alerts[j].CreatedAt)
	})
}

// SortAlertsForListing orders newest first, breaking ties by ascending id.
// Stored alert listings use this order.
func SortAlertsForListing(alerts []Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		if !alerts[i].CreatedAt.Equal(alerts[j].CreatedAt) {
			return alerts[i].CreatedAt.After(alerts[j].CreatedAt)
		}
		return alerts[i].ID < alerts[j].ID
	})
}

// UnreadAlerts filters out alerts already marked read.
func UnreadAlerts(alerts []Alert) []Alert {
	out := make([]Alert, 0, len(alerts))
	for _, a := range alerts {
		if !a.Read {
			out = append(out, a)
		}
	}
	return out
}
