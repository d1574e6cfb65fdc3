package normalize

import (
	"math"

	"github.com/lcalzada-xor/wdash/internal/core/domain"
)

const (
	// mbpsThreshold splits reported rates by unit: values above it are taken
	// as bits per second, values at or below it as megabits per second. The
	// controller does not declare the unit, so a genuine link slower than
	// 1000 bps is misread as Mbps. Kept for compatibility.
	mbpsThreshold = 1000

	bitsPerMegabit = 1_000_000

	// defaultSessionSeconds approximates the session length when a station
	// reports no uptime. It is an assumption, not a measurement.
	defaultSessionSeconds = 3600
)

var (
	uplinkRatePaths     = []string{"transmittedRate", "txRate", "tx_rate"}
	downlinkRatePaths   = []string{"receivedRate", "rxRate", "rx_rate"}
	uplinkBytesPaths    = []string{"outBytes", "txBytes", "tx_bytes", "bytesSent"}
	downlinkBytesPaths  = []string{"inBytes", "rxBytes", "rx_bytes", "bytesReceived"}
	sessionSecondsPaths = []string{"uptime", "connectedTime", "sessionTime"}
)

// ResolveRate derives a station's uplink and downlink rate in bits per
// second. Each direction prefers a reported rate and falls back to an
// estimate from cumulative byte counters, then to zero. Malformed numbers
// degrade to zero; the result is never negative or NaN.
func ResolveRate(raw domain.RawRecord) domain.RateSample {
	up, upEstimated := resolveDirection(raw, uplinkRatePaths, uplinkBytesPaths)
	down, downEstimated := resolveDirection(raw, downlinkRatePaths, downlinkBytesPaths)
	return domain.RateSample{
		UplinkBps:   up,
		DownlinkBps: down,
		IsEstimated: upEstimated || downEstimated,
	}
}

func resolveDirection(raw domain.RawRecord, ratePaths, bytesPaths []string) (float64, bool) {
	if rate, ok := LookupNumber(raw, ratePaths...); ok && rate > 0 {
		return sanitize(disambiguateUnit(rate)), false
	}
	if transferred, ok := LookupNumber(raw, bytesPaths...); ok && transferred > 0 {
		return sanitize(transferred * 8 / sessionSeconds(raw)), true
	}
	return 0, true
}

// disambiguateUnit converts a reported rate of unknown unit to bits per second.
func disambiguateUnit(rate float64) float64 {
	if rate > mbpsThreshold {
		return rate
	}
	return rate * bitsPerMegabit
}

func sessionSeconds(raw domain.RawRecord) float64 {
	if uptime, ok := LookupNumber(raw, sessionSecondsPaths...); ok && uptime > 0 {
		return uptime
	}
	return defaultSessionSeconds
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
