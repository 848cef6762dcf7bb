package synth

import (
	"fmt"
	"math/rand"
	"time"
)

// Window is the date range events are drawn from. Timestamps land on whole
// minutes inside [Start, Start+Days).
type Window struct {
	Start time.Time
	Days  int
}

// Contains reports whether ts falls inside the window.
func (w Window) Contains(ts time.Time) bool {
	return !ts.Before(w.Start) && ts.Before(w.Start.AddDate(0, 0, w.Days))
}

// FirstWeekday returns the first occurrence of the given weekday on or after
// the window start, at midnight.
func (w Window) FirstWeekday(day time.Weekday) time.Time {
	t := w.Start.Truncate(24 * time.Hour)
	for t.Weekday() != day {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// WeightedChoice draws from a fixed outcome set with explicit probability
// weights. It replaces inlining the same draw loop for every categorical
// field.
type WeightedChoice[T any] struct {
	outcomes []T
	cum      []float64
	total    float64
}

// NewWeightedChoice validates the outcome/weight vectors and returns a
// reusable sampler. Weights must be non-negative and sum to a positive
// value; they need not sum to 1.
func NewWeightedChoice[T any](outcomes []T, weights []float64) (*WeightedChoice[T], error) {
	if len(outcomes) == 0 || len(outcomes) != len(weights) {
		return nil, fmt.Errorf("weighted choice: %d outcomes for %d weights", len(outcomes), len(weights))
	}
	wc := &WeightedChoice[T]{outcomes: outcomes, cum: make([]float64, len(weights))}
	for i, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("weighted choice: negative weight %v", w)
		}
		wc.total += w
		wc.cum[i] = wc.total
	}
	if wc.total <= 0 {
		return nil, fmt.Errorf("weighted choice: weights sum to %v, want > 0", wc.total)
	}
	return wc, nil
}

// Draw picks one outcome according to the configured weights.
func (wc *WeightedChoice[T]) Draw(rng *rand.Rand) T {
	x := rng.Float64() * wc.total
	for i, c := range wc.cum {
		if x < c {
			return wc.outcomes[i]
		}
	}
	return wc.outcomes[len(wc.outcomes)-1]
}

// VolumeRange is an inclusive integer range for the simulated daily access
// volume of a role.
type VolumeRange struct {
	Min int
	Max int
}

// Distributions holds the categorical weights and per-role volume ranges
// used by the sampler.
type Distributions struct {
	ActionWeights      map[Action]float64
	SensitivityWeights map[Sensitivity]float64
	LocationWeights    map[Location]float64
	VolumeRanges       map[Role]VolumeRange
}

// DefaultDistributions mirrors observed access patterns: mostly views of
// normal-sensitivity records from onsite workstations, with clinical roles
// carrying the highest daily volumes.
func DefaultDistributions() Distributions {
	return Distributions{
		ActionWeights: map[Action]float64{
			ActionView:   0.75,
			ActionEdit:   0.20,
			ActionExport: 0.05,
		},
		SensitivityWeights: map[Sensitivity]float64{
			SensitivityNormal: 0.80,
			SensitivityHigh:   0.20,
		},
		LocationWeights: map[Location]float64{
			LocationOnsite: 0.75,
			LocationRemote: 0.25,
		},
		VolumeRanges: map[Role]VolumeRange{
			RoleDoctor:       {40, 90},
			RoleNurse:        {25, 60},
			RolePharmacist:   {10, 30},
			RoleAdmin:        {5, 20},
			RoleReceptionist: {5, 15},
		},
	}
}

// Patient reference identifiers are synthesized as P100..P999.
const (
	patientIDPrefix = "P"
	patientIDMin    = 100
	patientIDMax    = 999
)

// Sampler draws random access events from a roster within a date window.
// It owns no shared state beyond the injected random source, so two
// samplers built with equally-seeded sources produce identical sequences.
type Sampler struct {
	rng    *rand.Rand
	roster *Roster
	window Window

	actions       *WeightedChoice[Action]
	sensitivities *WeightedChoice[Sensitivity]
	locations     *WeightedChoice[Location]
	volumes       map[Role]VolumeRange
}

// NewSampler validates the window and distributions and returns a sampler
// bound to the given roster and random source.
func NewSampler(roster *Roster, window Window, dists Distributions, rng *rand.Rand) (*Sampler, error) {
	if roster == nil || roster.Size() == 0 {
		return nil, fmt.Errorf("sampler: empty roster")
	}
	if window.Days <= 0 {
		return nil, fmt.Errorf("sampler: window span must be positive, got %d days", window.Days)
	}
	if window.Start.IsZero() {
		return nil, fmt.Errorf("sampler: window start is unset")
	}
	if rng == nil {
		return nil, fmt.Errorf("sampler: nil random source")
	}

	actions, err := newChoiceFromMap(dists.ActionWeights, []Action{ActionView, ActionEdit, ActionExport})
	if err != nil {
		return nil, fmt.Errorf("sampler: action weights: %w", err)
	}
	sensitivities, err := newChoiceFromMap(dists.SensitivityWeights, []Sensitivity{SensitivityNormal, SensitivityHigh})
	if err != nil {
		return nil, fmt.Errorf("sampler: sensitivity weights: %w", err)
	}
	locations, err := newChoiceFromMap(dists.LocationWeights, []Location{LocationOnsite, LocationRemote})
	if err != nil {
		return nil, fmt.Errorf("sampler: location weights: %w", err)
	}

	for role, vr := range dists.VolumeRanges {
		if vr.Min < 0 || vr.Max < vr.Min {
			return nil, fmt.Errorf("sampler: invalid volume range [%d, %d] for role %q", vr.Min, vr.Max, role)
		}
	}

	return &Sampler{
		rng:           rng,
		roster:        roster,
		window:        window,
		actions:       actions,
		sensitivities: sensitivities,
		locations:     locations,
		volumes:       dists.VolumeRanges,
	}, nil
}

// newChoiceFromMap builds a weighted choice with a fixed outcome order so
// map iteration order cannot perturb the random stream.
func newChoiceFromMap[T comparable](weights map[T]float64, order []T) (*WeightedChoice[T], error) {
	ws := make([]float64, len(order))
	for i, o := range order {
		w, ok := weights[o]
		if !ok {
			return nil, fmt.Errorf("missing weight for %v", o)
		}
		ws[i] = w
	}
	return NewWeightedChoice(order, ws)
}

// Roster returns the staff population the sampler draws from.
func (s *Sampler) Roster() *Roster {
	return s.roster
}

// TimeWindow returns the date window the sampler draws timestamps from.
func (s *Sampler) TimeWindow() Window {
	return s.window
}

// Sample produces one fully-populated random access event without an
// AccessID; the dataset builder assigns IDs on append.
func (s *Sampler) Sample() AccessEvent {
	member := s.PickMember()
	ts := s.RandomTimestamp()
	action := s.SampleAction()
	sensitivity := s.sensitivities.Draw(s.rng)
	location := s.locations.Draw(s.rng)
	volume := s.SampleDailyVolume(member.Role)
	return NewEvent(member, ts, s.RandomPatientID(), action, sensitivity, location, volume)
}

// PickMember selects one staff identity uniformly at random.
func (s *Sampler) PickMember() StaffMember {
	members := s.roster.Members()
	return members[s.rng.Intn(len(members))]
}

// PickMemberWithRole selects uniformly among identities holding any of the
// given roles.
func (s *Sampler) PickMemberWithRole(roles ...Role) (StaffMember, error) {
	members := s.roster.MembersWithRole(roles...)
	if len(members) == 0 {
		return StaffMember{}, fmt.Errorf("sampler: roster has no members with roles %v", roles)
	}
	return members[s.rng.Intn(len(members))], nil
}

// RandomTimestamp draws a minute-resolution timestamp uniformly from the
// window.
func (s *Sampler) RandomTimestamp() time.Time {
	minutes := s.rng.Intn(s.window.Days * 24 * 60)
	return s.window.Start.Add(time.Duration(minutes) * time.Minute)
}

// SampleAction draws an action kind from the configured weights.
func (s *Sampler) SampleAction() Action {
	return s.actions.Draw(s.rng)
}

// SampleDailyVolume draws a simulated daily access volume from the role's
// configured inclusive range.
func (s *Sampler) SampleDailyVolume(role Role) int {
	vr := s.volumes[role]
	return vr.Min + s.rng.Intn(vr.Max-vr.Min+1)
}

// RandomPatientID synthesizes a patient reference identifier.
func (s *Sampler) RandomPatientID() string {
	return fmt.Sprintf("%s%d", patientIDPrefix, patientIDMin+s.rng.Intn(patientIDMax-patientIDMin+1))
}

// IntBetween draws an integer uniformly from [lo, hi].
func (s *Sampler) IntBetween(lo, hi int) int {
	return lo + s.rng.Intn(hi-lo+1)
}
