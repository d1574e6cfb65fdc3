package domain

import "time"

// RateSample is a station's link rate in bits per second.
type RateSample struct {
	UplinkBps   float64 `json:"uplink_bps"`
	DownlinkBps float64 `json:"downlink_bps"`
	// IsEstimated is set when either direction was derived from byte
	// counters (or defaulted to zero) instead of a reported rate.
	IsEstimated bool `json:"is_estimated"`
}

// RateSnapshot is a persisted RateSample for one station.
type RateSnapshot struct {
	ID        uint       `json:"id"`
	MAC       string     `json:"mac"`
	Sample    RateSample `json:"sample"`
	Timestamp time.Time  `json:"timestamp"`
}
