package synth

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func sampleRows(t *testing.T) []AccessEvent {
	t.Helper()
	roster, err := BuildRoster(DefaultRoleCounts())
	if err != nil {
		t.Fatalf("build roster: %v", err)
	}
	doctor := roster.MembersWithRole(RoleDoctor)[0]
	admin := roster.MembersWithRole(RoleAdmin)[0]

	rows := []AccessEvent{
		NewEvent(doctor, time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC), "P123", ActionView, SensitivityNormal, LocationOnsite, 55),
		NewEvent(admin, time.Date(2025, 6, 7, 3, 15, 0, 0, time.UTC), "P456", ActionExport, SensitivityHigh, LocationRemote, 12),
	}
	rows[0].AccessID = "A00001"
	rows[1].AccessID = "A00002"
	return rows
}

// ---------------------------------------------------------------------------
// CSV
// ---------------------------------------------------------------------------

func TestWriteCSV_Header(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "AccessID,UserID,UserRole,Department,Timestamp,DayOfWeek,HourOfDay," +
		"PatientID,ActionType,DataSensitivity,AccessLocation,AccessCountPerDay," +
		"IsOffHours,IsWeekend,RoleRiskWeight,AccessRiskScore"
	got := strings.TrimRight(buf.String(), "\n")
	if got != want {
		t.Errorf("header mismatch:\n got %s\nwant %s", got, want)
	}
}

func TestWriteCSV_RowEncoding(t *testing.T) {
	rows := sampleRows(t)
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not parseable csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}

	first := records[1]
	if first[0] != "A00001" {
		t.Errorf("expected AccessID A00001, got %s", first[0])
	}
	if first[4] != "2025-06-02 10:30:00" {
		t.Errorf("expected fixed timestamp encoding, got %s", first[4])
	}
	if first[12] != "0" || first[13] != "0" {
		t.Errorf("expected 0/0 flags for an in-hours weekday view, got %s/%s", first[12], first[13])
	}

	second := records[2]
	if second[12] != "1" {
		t.Errorf("expected off-hours flag 1 for 03:15, got %s", second[12])
	}
	if second[13] != "1" {
		t.Errorf("expected weekend flag 1 for a Saturday, got %s", second[13])
	}
}

func TestWriteCSV_TimestampRoundTrips(t *testing.T) {
	rows := sampleRows(t)
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	ts, err := ParseTimestamp(records[1][4])
	if err != nil {
		t.Fatalf("timestamp not parseable: %v", err)
	}
	if !ts.Equal(rows[0].Timestamp) {
		t.Errorf("round-tripped timestamp %s != %s", ts, rows[0].Timestamp)
	}
}

// ---------------------------------------------------------------------------
// NDJSON
// ---------------------------------------------------------------------------

func TestWriteNDJSON_OneObjectPerLine(t *testing.T) {
	rows := sampleRows(t)
	var buf bytes.Buffer
	if err := WriteNDJSON(&buf, rows); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != len(rows) {
		t.Fatalf("expected %d lines, got %d", len(rows), len(lines))
	}

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(lines[1]), &obj); err != nil {
		t.Fatalf("line is not valid json: %v", err)
	}
	if obj["access_id"] != "A00002" {
		t.Errorf("expected access_id A00002, got %v", obj["access_id"])
	}
	if obj["is_off_hours"] != float64(1) {
		t.Errorf("expected is_off_hours 1, got %v", obj["is_off_hours"])
	}
	if obj["timestamp"] != "2025-06-07 03:15:00" {
		t.Errorf("expected fixed timestamp encoding, got %v", obj["timestamp"])
	}
}
