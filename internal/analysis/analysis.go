// Package analysis provides functionality for analyzing reports filed
// against users, determining their severity and the impact on the
// reported user's reputation.
package analysis

import "billboardgo/backend/internal/config"

// GetWeight returns the reputation penalty for a given report severity.
// It returns 0 if the severity is not recognized.
func GetWeight(severity string) int {
	return config.ReportWeights[severity]
}
