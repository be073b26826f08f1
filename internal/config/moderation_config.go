package config

import "time"

const (
	// Reputation
	InitialReputation        = 1000
	MaxReputation            = 1000
	MinReputation            = 0
	ConfirmedReportBonus     = 50
	ReputationRecoveryAmount = 100

	// Suspension
	SuspendThresholdReputation = 500
	SuspendThresholdFrequency  = 5
	SuspendFrequencyWindow     = 24 * time.Hour
	SuspendLevel1Duration      = 24 * time.Hour
	SuspendLevel2Duration      = 7 * 24 * time.Hour
	SuspendLevel3Duration      = 30 * 24 * time.Hour
)

// ReportWeights maps report severity to the reputation penalty it carries.
var ReportWeights = map[string]int{
	"Low":      5,
	"Medium":   50,
	"Critical": 250,
}
