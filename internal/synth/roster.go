package synth

import (
	"fmt"
)

// RoleCount binds a role to the exact number of staff identities holding it.
// Roster order follows the slice order, keeping identity assignment stable.
type RoleCount struct {
	Role  Role
	Count int
}

// DefaultRoleCounts is the staff distribution of a mid-size clinic, 300
// identities total.
func DefaultRoleCounts() []RoleCount {
	return []RoleCount{
		{RoleDoctor, 86},
		{RoleNurse, 166},
		{RoleAdmin, 15},
		{RoleReceptionist, 21},
		{RolePharmacist, 12},
	}
}

var roleDepartments = map[Role]string{
	RoleDoctor:       "Clinical",
	RoleNurse:        "Clinical",
	RolePharmacist:   "Pharmacy",
	RoleAdmin:        "Admin",
	RoleReceptionist: "Admin",
}

var roleRiskWeights = map[Role]int{
	RoleDoctor:       2,
	RoleNurse:        3,
	RolePharmacist:   3,
	RoleAdmin:        5,
	RoleReceptionist: 4,
}

// DepartmentOf returns the department a role belongs to.
func DepartmentOf(role Role) string {
	return roleDepartments[role]
}

// RiskWeightOf returns the base risk multiplier for a role.
func RiskWeightOf(role Role) int {
	return roleRiskWeights[role]
}

// StaffMember is one roster identity bound to exactly one role.
type StaffMember struct {
	ID   string
	Role Role
}

// Roster is the fixed staff population for a generation run. Identities are
// assigned sequentially (U001, U002, ...) in role-count order, so the same
// counts always yield the same roster.
type Roster struct {
	members []StaffMember
	byRole  map[Role][]StaffMember
}

// BuildRoster creates a roster from exact per-role counts. It fails on
// negative counts, unknown roles, or an empty roster; no randomness is
// involved.
func BuildRoster(counts []RoleCount) (*Roster, error) {
	total := 0
	for _, rc := range counts {
		if rc.Count < 0 {
			return nil, fmt.Errorf("roster: negative count %d for role %q", rc.Count, rc.Role)
		}
		if _, ok := roleRiskWeights[rc.Role]; !ok {
			return nil, fmt.Errorf("roster: unknown role %q", rc.Role)
		}
		total += rc.Count
	}
	if total == 0 {
		return nil, fmt.Errorf("roster: no staff configured")
	}

	width := len(fmt.Sprintf("%d", total))
	if width < 3 {
		width = 3
	}

	r := &Roster{
		members: make([]StaffMember, 0, total),
		byRole:  make(map[Role][]StaffMember, len(counts)),
	}
	i := 0
	for _, rc := range counts {
		for n := 0; n < rc.Count; n++ {
			i++
			m := StaffMember{
				ID:   fmt.Sprintf("U%0*d", width, i),
				Role: rc.Role,
			}
			r.members = append(r.members, m)
			r.byRole[rc.Role] = append(r.byRole[rc.Role], m)
		}
	}
	return r, nil
}

// Size returns the total number of staff identities.
func (r *Roster) Size() int {
	return len(r.members)
}

// Members returns all staff identities in assignment order.
func (r *Roster) Members() []StaffMember {
	return r.members
}

// MembersWithRole returns the identities holding any of the given roles, in
// assignment order.
func (r *Roster) MembersWithRole(roles ...Role) []StaffMember {
	var out []StaffMember
	for _, role := range roles {
		out = append(out, r.byRole[role]...)
	}
	return out
}
