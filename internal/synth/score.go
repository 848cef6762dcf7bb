package synth

// RiskScore computes the access risk score for one event. The score is a
// simple, interpretable sum: base from the role weight, plus penalties for
// high sensitivity, export actions, and off-hours access. It is the single
// scoring policy for the whole dataset; both the bulk sampler and every
// scenario injector must go through it.
func RiskScore(role Role, action Action, sensitivity Sensitivity, offHours bool) int {
	score := RiskWeightOf(role) * 10
	if sensitivity == SensitivityHigh {
		score += 30
	}
	if action == ActionExport {
		score += 20
	}
	if offHours {
		score += 20
	}
	return score
}
