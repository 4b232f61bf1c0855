package domain

import "time"

type Severity string

const (
	SeverityNominal  Severity = "nominal"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

const (
	WarningThreshold  = 10 * time.Minute
	CriticalThreshold = 5 * time.Minute
)

// SeverityFor buckets the remaining reservation time into display bands:
// more than 10 minutes is nominal, 5 to 10 minutes is a warning, less than
// 5 minutes is critical.
func SeverityFor(remaining time.Duration) Severity {
	switch {
	case remaining > WarningThreshold:
		return SeverityNominal
	case remaining >= CriticalThreshold:
		return SeverityWarning
	default:
		return SeverityCritical
	}
}
