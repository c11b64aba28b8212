package hermes

const (
	SubjectStats = "swarm.decision.stats"

	StreamName   = "THEMIS_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectProjectCreated(projectID string) string { return "swarm.decision." + projectID + ".created" }
func SubjectProjectUpdated(projectID string) string { return "swarm.decision." + projectID + ".updated" }
func SubjectProjectDeleted(projectID string) string { return "swarm.decision." + projectID + ".deleted" }

func SubjectPrioritized(projectID string) string { return "swarm.decision." + projectID + ".prioritized" }
func SubjectRiskAssessed(projectID string) string {
	return "swarm.decision." + projectID + ".risk_assessed"
}
