package synth

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"
)

// timestampLayout is the fixed, parseable encoding for event timestamps in
// tabular output.
const timestampLayout = "2006-01-02 15:04:05"

// csvHeader is the fixed column order of the tabular output.
var csvHeader = []string{
	"AccessID", "UserID", "UserRole", "Department", "Timestamp",
	"DayOfWeek", "HourOfDay", "PatientID", "ActionType", "DataSensitivity",
	"AccessLocation", "AccessCountPerDay", "IsOffHours", "IsWeekend",
	"RoleRiskWeight", "AccessRiskScore",
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func (e AccessEvent) record() []string {
	return []string{
		e.AccessID,
		e.UserID,
		string(e.UserRole),
		e.Department,
		e.Timestamp.Format(timestampLayout),
		e.DayOfWeek,
		strconv.Itoa(e.HourOfDay),
		e.PatientID,
		string(e.ActionType),
		string(e.DataSensitivity),
		string(e.AccessLocation),
		strconv.Itoa(e.AccessCountPerDay),
		boolFlag(e.IsOffHours),
		boolFlag(e.IsWeekend),
		strconv.Itoa(e.RoleRiskWeight),
		strconv.Itoa(e.AccessRiskScore),
	}
}

// WriteCSV writes the rows as CSV with the fixed header and column order,
// timestamps in a fixed parseable format and boolean flags as 0/1.
func WriteCSV(w io.Writer, rows []AccessEvent) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("dataset csv: write header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row.record()); err != nil {
			return fmt.Errorf("dataset csv: write row %s: %w", row.AccessID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("dataset csv: flush: %w", err)
	}
	return nil
}

// ndjsonRow mirrors AccessEvent with the timestamp pre-formatted and flags
// as 0/1, keeping both output formats field-for-field comparable.
type ndjsonRow struct {
	AccessID          string `json:"access_id"`
	UserID            string `json:"user_id"`
	UserRole          string `json:"user_role"`
	Department        string `json:"department"`
	Timestamp         string `json:"timestamp"`
	DayOfWeek         string `json:"day_of_week"`
	HourOfDay         int    `json:"hour_of_day"`
	PatientID         string `json:"patient_id"`
	ActionType        string `json:"action_type"`
	DataSensitivity   string `json:"data_sensitivity"`
	AccessLocation    string `json:"access_location"`
	AccessCountPerDay int    `json:"access_count_per_day"`
	IsOffHours        int    `json:"is_off_hours"`
	IsWeekend         int    `json:"is_weekend"`
	RoleRiskWeight    int    `json:"role_risk_weight"`
	AccessRiskScore   int    `json:"access_risk_score"`
}

func intFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// WriteNDJSON writes the rows as newline-delimited JSON, one event per line.
func WriteNDJSON(w io.Writer, rows []AccessEvent) error {
	enc := json.NewEncoder(w)
	for _, row := range rows {
		out := ndjsonRow{
			AccessID:          row.AccessID,
			UserID:            row.UserID,
			UserRole:          string(row.UserRole),
			Department:        row.Department,
			Timestamp:         row.Timestamp.Format(timestampLayout),
			DayOfWeek:         row.DayOfWeek,
			HourOfDay:         row.HourOfDay,
			PatientID:         row.PatientID,
			ActionType:        string(row.ActionType),
			DataSensitivity:   string(row.DataSensitivity),
			AccessLocation:    string(row.AccessLocation),
			AccessCountPerDay: row.AccessCountPerDay,
			IsOffHours:        intFlag(row.IsOffHours),
			IsWeekend:         intFlag(row.IsWeekend),
			RoleRiskWeight:    row.RoleRiskWeight,
			AccessRiskScore:   row.AccessRiskScore,
		}
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("dataset ndjson: encode row %s: %w", row.AccessID, err)
		}
	}
	return nil
}

// ParseTimestamp parses a timestamp in the output encoding. Kept alongside
// the layout so consumers and tests do not hard-code it.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(timestampLayout, s)
}
