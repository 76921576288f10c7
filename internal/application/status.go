package application

// Lifecycle states, in the wording the platform has always stored.
const (
	StatusApplied   = "Postulado"
	StatusInReview  = "En revisión"
	StatusInterview = "Entrevista"
	StatusHiring    = "Proceso de contratación"
	StatusHired     = "Contratado"
	StatusRejected  = "Rechazado"
)

func IsValidStatus(status string) bool {
	switch status {
	case StatusApplied, StatusInReview, StatusInterview, StatusHiring, StatusHired, StatusRejected:
		return true
	default:
		return false
	}
}

// IsTerminalStatus reports whether the state has no outgoing transitions.
func IsTerminalStatus(status string) bool {
	return status == StatusHired || status == StatusRejected
}

// isAllowedStatusTransition encodes the lifecycle graph: each state has one
// forward edge plus Rechazado, terminal states have none. Re-asserting the
// current state counts as a normal update while the state is non-terminal.
func isAllowedStatusTransition(currentStatus, targetStatus string) bool {
	if currentStatus == targetStatus {
		return !IsTerminalStatus(currentStatus)
	}

	switch currentStatus {
	case StatusApplied:
		return targetStatus == StatusInReview || targetStatus == StatusRejected
	case StatusInReview:
		return targetStatus == StatusInterview || targetStatus == StatusRejected
	case StatusInterview:
		return targetStatus == StatusHiring || targetStatus == StatusRejected
	case StatusHiring:
		return targetStatus == StatusHired || targetStatus == StatusRejected
	default:
		return false
	}
}
