package report

import "time"

// Filter narrows a visit history. Zero-valued fields never exclude
// anything, so the empty Filter returns its input unchanged.
type Filter struct {
	StartDate    *time.Time
	EndDate      *time.Time
	VisitReason  string
	HealthStatus string
}

// IsZero reports whether no criteria are set.
func (f Filter) IsZero() bool {
	return f.StartDate == nil && f.EndDate == nil && f.VisitReason == "" && f.HealthStatus == ""
}

// Apply returns the reports matching the filter, preserving input order.
// Date bounds are inclusive; the end date covers its entire day.
func Apply(reports []*Report, f Filter) []*Report {
	if f.IsZero() {
		return reports
	}

	var end time.Time
	if f.EndDate != nil {
		end = endOfDay(*f.EndDate)
	}

	out := make([]*Report, 0, len(reports))
	for _, r := range reports {
		if f.StartDate != nil && r.CreatedAt.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && r.CreatedAt.After(end) {
			continue
		}
		if f.VisitReason != "" && r.VisitReason != f.VisitReason {
			continue
		}
		if f.HealthStatus != "" {
			if r.HealthStatus == nil || *r.HealthStatus != f.HealthStatus {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999999999, t.Location())
}
