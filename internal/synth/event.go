// Package synth generates synthetic PHI access-event datasets for privacy
// risk-analytics testing. It produces reproducible, schema-stable rows
// describing who accessed which patient record, when, and under what
// conditions, each annotated with a deterministic risk score.
package synth

import (
	"fmt"
	"time"
)

// Role identifies a staff role in the synthetic roster.
type Role string

const (
	RoleDoctor       Role = "Doctor"
	RoleNurse        Role = "Nurse"
	RoleAdmin        Role = "Admin"
	RoleReceptionist Role = "Receptionist"
	RolePharmacist   Role = "Pharmacist"
)

// Action is the kind of record access performed.
type Action string

const (
	ActionView   Action = "View"
	ActionEdit   Action = "Edit"
	ActionExport Action = "Export"
)

// Sensitivity is the data-sensitivity classification of the accessed record.
type Sensitivity string

const (
	SensitivityNormal Sensitivity = "Normal"
	SensitivityHigh   Sensitivity = "High"
)

// Location is where the access originated from.
type Location string

const (
	LocationOnsite Location = "Onsite"
	LocationRemote Location = "Remote"
)

// Clinic working hours are 08:00-18:00 inclusive; an access during the
// 18:00-18:59 hour is still in-hours. Downstream detection rules depend on
// this exact boundary.
const (
	workdayStartHour = 8
	workdayEndHour   = 18
)

// AccessEvent is one synthetic record-access row. Created once, immutable
// thereafter, written to the output in insertion order.
type AccessEvent struct {
	AccessID          string
	UserID            string
	UserRole          Role
	Department        string
	Timestamp         time.Time
	DayOfWeek         string
	HourOfDay         int
	PatientID         string
	ActionType        Action
	DataSensitivity   Sensitivity
	AccessLocation    Location
	AccessCountPerDay int
	IsOffHours        bool
	IsWeekend         bool
	RoleRiskWeight    int
	AccessRiskScore   int
}

// IsWeekendDay reports whether t falls on a Saturday or Sunday.
func IsWeekendDay(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsOffHours reports whether the given hour-of-day falls outside clinic
// working hours.
func IsOffHours(hour int) bool {
	return hour < workdayStartHour || hour > workdayEndHour
}

// NewEvent builds a fully-populated access event for the given staff member
// and attributes. Derived fields (day-of-week, hour, off-hours and weekend
// flags, role weight) and the risk score are computed here so that sampled
// and hand-crafted rows share one schema and one scoring policy. The
// AccessID is left empty; the dataset builder assigns it on append.
func NewEvent(member StaffMember, ts time.Time, patientID string, action Action, sensitivity Sensitivity, location Location, dailyVolume int) AccessEvent {
	hour := ts.Hour()
	return AccessEvent{
		UserID:            member.ID,
		UserRole:          member.Role,
		Department:        DepartmentOf(member.Role),
		Timestamp:         ts,
		DayOfWeek:         ts.Weekday().String(),
		HourOfDay:         hour,
		PatientID:         patientID,
		ActionType:        action,
		DataSensitivity:   sensitivity,
		AccessLocation:    location,
		AccessCountPerDay: dailyVolume,
		IsOffHours:        IsOffHours(hour),
		IsWeekend:         IsWeekendDay(ts),
		RoleRiskWeight:    RiskWeightOf(member.Role),
		AccessRiskScore:   RiskScore(member.Role, action, sensitivity, IsOffHours(hour)),
	}
}

// Validate checks that an event is internally consistent: derived flags
// match the timestamp, the department and weight match the role, and the
// score matches the scoring policy.
func (e AccessEvent) Validate() error {
	if e.UserID == "" {
		return fmt.Errorf("access event: empty user id")
	}
	if _, ok := roleRiskWeights[e.UserRole]; !ok {
		return fmt.Errorf("access event: unknown role %q", e.UserRole)
	}
	if e.Department != DepartmentOf(e.UserRole) {
		return fmt.Errorf("access event: department %q does not match role %q", e.Department, e.UserRole)
	}
	if e.HourOfDay != e.Timestamp.Hour() {
		return fmt.Errorf("access event: hour %d does not match timestamp %s", e.HourOfDay, e.Timestamp)
	}
	if e.DayOfWeek != e.Timestamp.Weekday().String() {
		return fmt.Errorf("access event: day %q does not match timestamp %s", e.DayOfWeek, e.Timestamp)
	}
	if e.IsOffHours != IsOffHours(e.HourOfDay) {
		return fmt.Errorf("access event: off-hours flag inconsistent for hour %d", e.HourOfDay)
	}
	if e.IsWeekend != IsWeekendDay(e.Timestamp) {
		return fmt.Errorf("access event: weekend flag inconsistent for %s", e.DayOfWeek)
	}
	if e.RoleRiskWeight != RiskWeightOf(e.UserRole) {
		return fmt.Errorf("access event: risk weight %d does not match role %q", e.RoleRiskWeight, e.UserRole)
	}
	if want := RiskScore(e.UserRole, e.ActionType, e.DataSensitivity, e.IsOffHours); e.AccessRiskScore != want {
		return fmt.Errorf("access event: score %d does not match policy (want %d)", e.AccessRiskScore, want)
	}
	return nil
}
