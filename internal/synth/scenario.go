package synth

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Scenario is a named injector producing hand-crafted rows that guarantee a
// specific detection condition appears in the dataset. Injectors draw from
// the same sampler (roster, window, random source) as the bulk generator and
// build rows through NewEvent, so their scores always follow the shared
// scoring policy.
type Scenario struct {
	Name        string
	Description string
	Build       func(s *Sampler) ([]AccessEvent, error)
}

// Scenarios returns the built-in injectors in their fixed execution order.
func Scenarios() []Scenario {
	return []Scenario{
		{
			Name:        "admin-offhours",
			Description: "Admin views a record at 03:00 on a Tuesday (off-hours on a weekday)",
			Build:       injectAdminOffHours,
		},
		{
			Name:        "volume-outlier",
			Description: "Receptionist with an anomalously large daily access volume",
			Build:       injectVolumeOutlier,
		},
		{
			Name:        "insider-burst",
			Description: "Non-clinical user with a burst of high-sensitivity remote accesses",
			Build:       injectInsiderBurst,
		},
		{
			Name:        "weekend-export",
			Description: "High-sensitivity export on a Sunday afternoon (weekend but in-hours)",
			Build:       injectWeekendExport,
		},
		{
			Name:        "clinical-baseline",
			Description: "Doctor performs an ordinary in-hours view (negative control)",
			Build:       injectClinicalBaseline,
		},
	}
}

// SelectScenarios resolves a configuration value to a set of injectors.
// "all" enables every built-in scenario, "none" or the empty string disables
// injection, and otherwise the value is a comma-separated list of scenario
// names.
func SelectScenarios(selection string) ([]Scenario, error) {
	all := Scenarios()
	switch strings.TrimSpace(strings.ToLower(selection)) {
	case "all":
		return all, nil
	case "", "none":
		return nil, nil
	}

	byName := make(map[string]Scenario, len(all))
	for _, sc := range all {
		byName[sc.Name] = sc
	}

	enabled := make(map[string]bool)
	for _, raw := range strings.Split(selection, ",") {
		name := strings.TrimSpace(strings.ToLower(raw))
		if name == "" {
			continue
		}
		if _, ok := byName[name]; !ok {
			known := make([]string, 0, len(byName))
			for n := range byName {
				known = append(known, n)
			}
			sort.Strings(known)
			return nil, fmt.Errorf("unknown scenario %q (known: %s)", name, strings.Join(known, ", "))
		}
		enabled[name] = true
	}

	// Preserve registration order regardless of how the list was written,
	// keeping the random stream consumption deterministic.
	var out []Scenario
	for _, sc := range all {
		if enabled[sc.Name] {
			out = append(out, sc)
		}
	}
	return out, nil
}

// injectAdminOffHours places an administrative actor at 03:00 on the first
// Tuesday of the window: off-hours on a weekday, normal view.
func injectAdminOffHours(s *Sampler) ([]AccessEvent, error) {
	member, err := s.PickMemberWithRole(RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("scenario admin-offhours: %w", err)
	}
	ts := s.TimeWindow().FirstWeekday(time.Tuesday).Add(3 * time.Hour)
	ev := NewEvent(member, ts, s.RandomPatientID(), ActionView, SensitivityNormal, LocationRemote, 10)
	return []AccessEvent{ev}, nil
}

// injectVolumeOutlier gives a low-privilege receptionist a daily volume far
// above the role's configured range, for volume-outlier detectors.
func injectVolumeOutlier(s *Sampler) ([]AccessEvent, error) {
	member, err := s.PickMemberWithRole(RoleReceptionist)
	if err != nil {
		return nil, fmt.Errorf("scenario volume-outlier: %w", err)
	}
	ts := s.RandomTimestamp()
	ev := NewEvent(member, ts, s.RandomPatientID(), ActionView, SensitivityNormal, LocationOnsite, 500)
	return []AccessEvent{ev}, nil
}

// insiderBurstSize is the number of high-sensitivity accesses attributed to
// a single non-clinical actor by the insider-burst scenario.
const insiderBurstSize = 30

// injectInsiderBurst attributes a burst of high-sensitivity remote accesses
// to one non-clinical actor, for insider-risk heuristics.
func injectInsiderBurst(s *Sampler) ([]AccessEvent, error) {
	member, err := s.PickMemberWithRole(RoleAdmin, RoleReceptionist)
	if err != nil {
		return nil, fmt.Errorf("scenario insider-burst: %w", err)
	}
	rows := make([]AccessEvent, 0, insiderBurstSize)
	for i := 0; i < insiderBurstSize; i++ {
		ts := s.RandomTimestamp()
		action := s.SampleAction()
		volume := s.IntBetween(5, 20)
		rows = append(rows, NewEvent(member, ts, s.RandomPatientID(), action, SensitivityHigh, LocationRemote, volume))
	}
	return rows, nil
}

// injectWeekendExport places a high-sensitivity export at 15:00 on the first
// Sunday of the window: weekend, but in-hours (15:00 is inside the 08-18
// working window).
func injectWeekendExport(s *Sampler) ([]AccessEvent, error) {
	member := s.PickMember()
	ts := s.TimeWindow().FirstWeekday(time.Sunday).Add(15 * time.Hour)
	ev := NewEvent(member, ts, s.RandomPatientID(), ActionExport, SensitivityHigh, LocationRemote, 20)
	return []AccessEvent{ev}, nil
}

// injectClinicalBaseline adds an ordinary in-hours view by a doctor as a
// negative control.
func injectClinicalBaseline(s *Sampler) ([]AccessEvent, error) {
	member, err := s.PickMemberWithRole(RoleDoctor)
	if err != nil {
		return nil, fmt.Errorf("scenario clinical-baseline: %w", err)
	}
	ts := s.TimeWindow().Start.Truncate(24 * time.Hour).Add(10 * time.Hour)
	ev := NewEvent(member, ts, s.RandomPatientID(), ActionView, SensitivityNormal, LocationOnsite, 50)
	return []AccessEvent{ev}, nil
}
