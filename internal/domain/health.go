package domain

// HealthStatus is the outcome of one doctor check.
type HealthStatus string

const (
	HealthOK    HealthStatus = "ok"
	HealthWarn  HealthStatus = "warn"
	HealthError HealthStatus = "error"
)

// HealthCheck is a single line of the doctor report.
type HealthCheck struct {
	Name    string
	Status  HealthStatus
	Details string
}

// HealthReport collects doctor checks in run order.
type HealthReport struct {
	Checks []HealthCheck
}

// Add appends a check.
func (r *HealthReport) Add(name string, status HealthStatus, details string) {
	r.Checks = append(r.Checks, HealthCheck{Name: name, Status: status, Details: details})
}

// Failed counts checks with HealthError.
func (r HealthReport) Failed() int {
	n := 0
	for _, c := range r.Checks {
		if c.Status == HealthError {
			n++
		}
	}
	return n
}
