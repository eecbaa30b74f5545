package models

import "time"

// SystemMetrics is a JSON snapshot of the process counters for operators.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cacheHitRatio"`
	CacheHits                uint64    `json:"cacheHits"`
	CacheMisses              uint64    `json:"cacheMisses"`
	CacheInvalidations       uint64    `json:"cacheInvalidations"`
	RequestsTotal            uint64    `json:"requestsTotal"`
	AverageRequestDurationMs float64   `json:"avgRequestDurationMs"`
	ChangeRequestsSubmitted  uint64    `json:"changeRequestsSubmitted"`
	ChangeRequestsReviewed   uint64    `json:"changeRequestsReviewed"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generatedAt"`
}
