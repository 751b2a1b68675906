package timesheet

import "time"

// WorkType is the fixed category set for time records.
type WorkType string

const (
	WorkTypeRegular  WorkType = "regular"
	WorkTypeReduced  WorkType = "reduced"
	WorkTypeWeekend  WorkType = "weekend"
	WorkTypeVacation WorkType = "vacation"
	WorkTypeSick     WorkType = "sick"
	WorkTypeAbsence  WorkType = "absence"
)

// AllWorkTypes lists every valid category, for validation messages.
var AllWorkTypes = []string{
	string(WorkTypeRegular),
	string(WorkTypeReduced),
	string(WorkTypeWeekend),
	string(WorkTypeVacation),
	string(WorkTypeSick),
	string(WorkTypeAbsence),
}

// IsRange reports whether records of this type carry a start/end date range
// instead of a single date.
func (t WorkType) IsRange() bool {
	return t == WorkTypeVacation || t == WorkTypeSick
}

// IsWork reports whether records of this type carry meaningful hours.
func (t WorkType) IsWork() bool {
	return t == WorkTypeRegular || t == WorkTypeReduced || t == WorkTypeWeekend
}

// Record is a single timesheet entry. Vacation and sick records carry
// StartDate/EndDate; every other type carries Date. TotalHours is only
// meaningful for the three work categories.
type Record struct {
	ID         string
	UserID     string
	WorkType   WorkType
	Date       *time.Time
	StartDate  *time.Time
	EndDate    *time.Time
	TotalHours *float64
	Note       *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	UserName *string
}
