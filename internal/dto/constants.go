package dto

const (
	IntervalMinute string = "minute"
	IntervalHour   string = "hour"
	IntervalDay    string = "day"
	IntervalWeek   string = "week"
	IntervalMonth  string = "month"
)

// Upstox v3 expresses the candle interval as a unit plus a count.
var upstoxUnits = map[string]string{
	IntervalMinute: "minutes",
	IntervalHour:   "hours",
	IntervalDay:    "days",
	IntervalWeek:   "weeks",
	IntervalMonth:  "months",
}

// UpstoxUnit maps an API interval to the Upstox unit segment.
func UpstoxUnit(interval string) (string, bool) {
	unit, ok := upstoxUnits[interval]
	return unit, ok
}

const (
	StatusHealthy = "healthy"

	DefaultStartDate = "2025-01-01"
	DefaultCount     = 1
)
