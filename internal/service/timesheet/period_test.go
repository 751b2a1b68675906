package timesheet

import (
	"testing"
	"time"

	"github.com/fieldworks/workforce-backend-go/internal/domain/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(t time.Time) *time.Time { return &t }

func hoursPtr(h float64) *float64 { return &h }

func TestReportingPeriodFor(t *testing.T) {
	cases := []struct {
		name      string
		ref       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"mid month", day(2024, time.March, 15), day(2024, time.February, 21), day(2024, time.March, 20)},
		{"first of month", day(2024, time.July, 1), day(2024, time.June, 21), day(2024, time.July, 20)},
		{"last of month", day(2024, time.July, 31), day(2024, time.June, 21), day(2024, time.July, 20)},
		{"january rolls to prior december", day(2024, time.January, 10), day(2023, time.December, 21), day(2024, time.January, 20)},
		{"leap february", day(2024, time.February, 29), day(2024, time.January, 21), day(2024, time.February, 20)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := ReportingPeriodFor(c.ref)
			assert.Equal(t, c.wantStart, p.Start)
			assert.Equal(t, c.wantEnd, p.End)
			assert.Equal(t, 21, p.Start.Day())
			assert.Equal(t, 20, p.End.Day())
		})
	}
}

func TestPeriod_Previous(t *testing.T) {
	p := ReportingPeriodFor(day(2024, time.March, 15))
	prev := p.Previous()
	assert.Equal(t, day(2024, time.January, 21), prev.Start)
	assert.Equal(t, day(2024, time.February, 20), prev.End)

	// Periods tile the calendar with no gap.
	assert.Equal(t, p.Start, prev.End.AddDate(0, 0, 1))
}

func TestCountWorkingDays(t *testing.T) {
	// 2024-03-04 is a Monday.
	n, err := CountWorkingDays(day(2024, time.March, 4), day(2024, time.March, 8))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	// Full week including the weekend still counts 5.
	n, err = CountWorkingDays(day(2024, time.March, 4), day(2024, time.March, 10))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	// Saturday alone.
	n, err = CountWorkingDays(day(2024, time.March, 9), day(2024, time.March, 9))
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// Single weekday.
	n, err = CountWorkingDays(day(2024, time.March, 4), day(2024, time.March, 4))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCountWorkingDays_InvalidRange(t *testing.T) {
	_, err := CountWorkingDays(day(2024, time.March, 10), day(2024, time.March, 4))
	assert.ErrorIs(t, err, timesheet.ErrInvalidRange)
}

func TestCountWorkingDays_BoundsOverPeriod(t *testing.T) {
	// Any reporting period is 28-31 days; the working-day count stays within
	// its length and equals the exhaustive weekday count.
	for month := time.January; month <= time.December; month++ {
		p := ReportingPeriodFor(day(2024, month, 15))
		n, err := CountWorkingDays(p.Start, p.End)
		require.NoError(t, err)

		total := 0
		expected := 0
		for d := p.Start; !d.After(p.End); d = d.AddDate(0, 0, 1) {
			total++
			if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
				expected++
			}
		}
		assert.Equal(t, expected, n)
		assert.GreaterOrEqual(t, n, 0)
		assert.LessOrEqual(t, n, total)
	}
}

func TestComputePeriodStatistics_ConcreteScenario(t *testing.T) {
	// Reference date 2024-03-15: period is [2024-02-21, 2024-03-20].
	p := ReportingPeriodFor(day(2024, time.March, 15))
	require.Equal(t, day(2024, time.February, 21), p.Start)
	require.Equal(t, day(2024, time.March, 20), p.End)

	records := []timesheet.Record{
		{WorkType: timesheet.WorkTypeRegular, Date: datePtr(day(2024, time.March, 1)), TotalHours: hoursPtr(8)},
		// 2024-03-02 is a Saturday.
		{WorkType: timesheet.WorkTypeWeekend, Date: datePtr(day(2024, time.March, 2)), TotalHours: hoursPtr(4)},
		{WorkType: timesheet.WorkTypeVacation, StartDate: datePtr(day(2024, time.February, 25)), EndDate: datePtr(day(2024, time.February, 27))},
	}

	stats, err := ComputePeriodStatistics(records, p)
	require.NoError(t, err)

	assert.Equal(t, 5, stats.FilledDays)
	assert.Equal(t, 8.0, stats.RegularHours)
	assert.Equal(t, 4.0, stats.WeekendHours)
	assert.Equal(t, 0.0, stats.ReducedHours)
	assert.Equal(t, 3, stats.VacationDays)
	assert.Equal(t, 0, stats.SickDays)
	assert.Equal(t, 0, stats.AbsentDays)
	assert.Len(t, stats.Records, 3)
}

func TestComputePeriodStatistics_EmptyRecords(t *testing.T) {
	p := ReportingPeriodFor(day(2024, time.March, 15))

	stats, err := ComputePeriodStatistics(nil, p)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.FilledDays)
	assert.Equal(t, 0.0, stats.RegularHours+stats.ReducedHours+stats.WeekendHours)
	assert.Equal(t, 0, stats.VacationDays+stats.SickDays+stats.AbsentDays)
	assert.Empty(t, stats.Records)

	// Working days come from the calendar alone.
	expected, err := CountWorkingDays(p.Start, p.End)
	require.NoError(t, err)
	assert.Equal(t, expected, stats.WorkingDays)
}

func TestComputePeriodStatistics_RangeSplitsAcrossBoundary(t *testing.T) {
	// Vacation [periodEnd-2, periodEnd+3]: 3 days belong to the current
	// period, 3 to the next, attributed day by day.
	p := ReportingPeriodFor(day(2024, time.March, 15))
	next := ReportingPeriodFor(day(2024, time.April, 15))

	vacation := timesheet.Record{
		WorkType:  timesheet.WorkTypeVacation,
		StartDate: datePtr(p.End.AddDate(0, 0, -2)),
		EndDate:   datePtr(p.End.AddDate(0, 0, 3)),
	}
	records := []timesheet.Record{vacation}

	current, err := ComputePeriodStatistics(records, p)
	require.NoError(t, err)
	assert.Equal(t, 3, current.VacationDays)
	assert.Equal(t, 3, current.FilledDays)

	following, err := ComputePeriodStatistics(records, next)
	require.NoError(t, err)
	assert.Equal(t, 3, following.VacationDays)
	assert.Equal(t, 3, following.FilledDays)
}

func TestComputePeriodStatistics_CategoryExclusivity(t *testing.T) {
	p := ReportingPeriodFor(day(2024, time.March, 15))

	records := []timesheet.Record{
		{WorkType: timesheet.WorkTypeRegular, Date: datePtr(day(2024, time.March, 4)), TotalHours: hoursPtr(8)},
		{WorkType: timesheet.WorkTypeReduced, Date: datePtr(day(2024, time.March, 5)), TotalHours: hoursPtr(6)},
		{WorkType: timesheet.WorkTypeWeekend, Date: datePtr(day(2024, time.March, 9)), TotalHours: hoursPtr(4)},
		// Hour values on non-work records must not leak into hour sums.
		{WorkType: timesheet.WorkTypeAbsence, Date: datePtr(day(2024, time.March, 6)), TotalHours: hoursPtr(5)},
		{WorkType: timesheet.WorkTypeVacation, StartDate: datePtr(day(2024, time.March, 11)), EndDate: datePtr(day(2024, time.March, 12))},
		{WorkType: timesheet.WorkTypeSick, StartDate: datePtr(day(2024, time.March, 13)), EndDate: datePtr(day(2024, time.March, 13))},
	}

	stats, err := ComputePeriodStatistics(records, p)
	require.NoError(t, err)

	assert.Equal(t, 18.0, stats.RegularHours+stats.ReducedHours+stats.WeekendHours)
	assert.Equal(t, 2, stats.VacationDays)
	assert.Equal(t, 1, stats.SickDays)
	assert.Equal(t, 1, stats.AbsentDays)
	assert.Equal(t, 7, stats.FilledDays)
}

func TestComputePeriodStatistics_Idempotent(t *testing.T) {
	p := ReportingPeriodFor(day(2024, time.March, 15))
	records := []timesheet.Record{
		{WorkType: timesheet.WorkTypeRegular, Date: datePtr(day(2024, time.March, 4)), TotalHours: hoursPtr(8)},
		{WorkType: timesheet.WorkTypeVacation, StartDate: datePtr(day(2024, time.March, 11)), EndDate: datePtr(day(2024, time.March, 15))},
	}

	first, err := ComputePeriodStatistics(records, p)
	require.NoError(t, err)
	second, err := ComputePeriodStatistics(records, p)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputePeriodStatistics_SkipsMalformedRecords(t *testing.T) {
	p := ReportingPeriodFor(day(2024, time.March, 15))

	records := []timesheet.Record{
		// Missing date on a single-day type.
		{WorkType: timesheet.WorkTypeRegular, TotalHours: hoursPtr(8)},
		// Missing end on a range type.
		{WorkType: timesheet.WorkTypeVacation, StartDate: datePtr(day(2024, time.March, 11))},
		// Inverted range.
		{WorkType: timesheet.WorkTypeSick, StartDate: datePtr(day(2024, time.March, 12)), EndDate: datePtr(day(2024, time.March, 10))},
		// One well-formed record to prove aggregation continues.
		{WorkType: timesheet.WorkTypeRegular, Date: datePtr(day(2024, time.March, 4)), TotalHours: hoursPtr(7.5)},
	}

	stats, err := ComputePeriodStatistics(records, p)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.FilledDays)
	assert.Equal(t, 7.5, stats.RegularHours)
	assert.Len(t, stats.Records, 1)
}

func TestComputePeriodStatistics_DuplicateDayRecordsAllCount(t *testing.T) {
	// Two records on the same day are both aggregated; none is silently
	// dropped.
	p := ReportingPeriodFor(day(2024, time.March, 15))
	records := []timesheet.Record{
		{WorkType: timesheet.WorkTypeRegular, Date: datePtr(day(2024, time.March, 4)), TotalHours: hoursPtr(4)},
		{WorkType: timesheet.WorkTypeRegular, Date: datePtr(day(2024, time.March, 4)), TotalHours: hoursPtr(3)},
	}

	stats, err := ComputePeriodStatistics(records, p)
	require.NoError(t, err)

	assert.Equal(t, 7.0, stats.RegularHours)
	assert.Equal(t, 2, stats.FilledDays)
	assert.Len(t, stats.Records, 2)
}

func TestComputePeriodStatistics_TimestampInputsNormalized(t *testing.T) {
	// Records arriving with wall-clock times or offsets bucket by calendar
	// day, not by instant.
	p := ReportingPeriodFor(day(2024, time.March, 15))
	noon := time.Date(2024, time.March, 20, 12, 30, 0, 0, time.FixedZone("CET", 3600))

	stats, err := ComputePeriodStatistics([]timesheet.Record{
		{WorkType: timesheet.WorkTypeRegular, Date: &noon, TotalHours: hoursPtr(8)},
	}, p)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.FilledDays)
	assert.Equal(t, 8.0, stats.RegularHours)
}
