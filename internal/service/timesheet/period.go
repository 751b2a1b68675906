package timesheet

import (
	"time"

	"github.com/fieldworks/workforce-backend-go/internal/domain/timesheet"
)

// Period is the monthly reporting window used for payroll and attendance
// summaries: the 21st of one month through the 20th of the next, inclusive.
type Period struct {
	Start time.Time
	End   time.Time
}

// ReportingPeriodFor returns the reporting period for a reference date falling
// in month M: [21st of M-1, 20th of M]. time.Date normalizes month 0 to
// December of the prior year, so January rolls over correctly. Total over all
// valid dates; the aggregator never reads the clock, callers supply ref.
func ReportingPeriodFor(ref time.Time) Period {
	return Period{
		Start: time.Date(ref.Year(), ref.Month()-1, 21, 0, 0, 0, 0, time.UTC),
		End:   time.Date(ref.Year(), ref.Month(), 20, 0, 0, 0, 0, time.UTC),
	}
}

// Previous returns the reporting period immediately before p.
func (p Period) Previous() Period {
	return ReportingPeriodFor(p.Start)
}

// Contains reports whether the calendar day of t falls within [Start, End].
func (p Period) Contains(t time.Time) bool {
	d := dateOnly(t)
	return !d.Before(p.Start) && !d.After(p.End)
}

// dateOnly normalizes a timestamp to its canonical date representation,
// midnight UTC. All date comparisons inside the aggregator go through this so
// mixed timestamp inputs cannot skew bucketing.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CountWorkingDays counts the days in [start, end] whose weekday is neither
// Saturday nor Sunday. Ranges here are bounded to about a month, so a linear
// scan is fine. Returns timesheet.ErrInvalidRange when start > end.
func CountWorkingDays(start, end time.Time) (int, error) {
	s, e := dateOnly(start), dateOnly(end)
	if s.After(e) {
		return 0, timesheet.ErrInvalidRange
	}

	count := 0
	for day := s; !day.After(e); day = day.AddDate(0, 0, 1) {
		if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return count, nil
}

// Statistics is the per-period aggregate computed from time records. It is
// derived on demand and never persisted.
type Statistics struct {
	WorkingDays int
	FilledDays  int

	RegularHours float64
	ReducedHours float64
	WeekendHours float64

	VacationDays int
	SickDays     int
	AbsentDays   int

	// Records holds the in-period records for downstream display.
	Records []timesheet.Record
}

// ComputePeriodStatistics aggregates records against a reporting period.
//
// Single-date records are in period iff their date lies within it. Range
// records (vacation, sick) are attributed day by day: each day of the range
// inside the period counts as one filled day and one vacation/sick day, so a
// range spanning a period boundary splits across the two periods rather than
// landing wholly in either. Malformed records are skipped; partial statistics
// beat a hard failure in a reporting view.
//
// Pure and stateless: same inputs, same output, safe for concurrent callers.
func ComputePeriodStatistics(records []timesheet.Record, p Period) (Statistics, error) {
	workingDays, err := CountWorkingDays(p.Start, p.End)
	if err != nil {
		return Statistics{}, err
	}

	stats := Statistics{WorkingDays: workingDays}

	for _, rec := range records {
		if rec.WorkType.IsRange() {
			if rec.StartDate == nil || rec.EndDate == nil {
				continue
			}
			start, end := dateOnly(*rec.StartDate), dateOnly(*rec.EndDate)
			if start.After(end) {
				continue
			}

			inPeriod := 0
			for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
				if p.Contains(day) {
					inPeriod++
				}
			}
			if inPeriod == 0 {
				continue
			}

			stats.FilledDays += inPeriod
			switch rec.WorkType {
			case timesheet.WorkTypeVacation:
				stats.VacationDays += inPeriod
			case timesheet.WorkTypeSick:
				stats.SickDays += inPeriod
			}
			stats.Records = append(stats.Records, rec)
			continue
		}

		if rec.Date == nil || !p.Contains(*rec.Date) {
			continue
		}

		stats.FilledDays++
		switch rec.WorkType {
		case timesheet.WorkTypeRegular:
			if rec.TotalHours != nil {
				stats.RegularHours += *rec.TotalHours
			}
		case timesheet.WorkTypeReduced:
			if rec.TotalHours != nil {
				stats.ReducedHours += *rec.TotalHours
			}
		case timesheet.WorkTypeWeekend:
			if rec.TotalHours != nil {
				stats.WeekendHours += *rec.TotalHours
			}
		case timesheet.WorkTypeAbsence:
			stats.AbsentDays++
		}
		stats.Records = append(stats.Records, rec)
	}

	return stats, nil
}
