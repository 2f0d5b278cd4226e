// Package approval computes which deviations a user may decide on, through
// a rank-ordered organizational hierarchy, and gates bulk decisions.
package approval

import (
	"fmt"
	"strings"
)

// Role is a rank in the fixed organizational hierarchy, lowest authority
// first. The table is a process-wide constant.
type Role int

const (
	RoleOfficer Role = iota
	RoleBranchManager
	RoleAreaManager
	RoleStateHead
	RoleRegionalManager
	RoleZonalManager
	RoleHead
)

var roleNames = map[Role]string{
	RoleOfficer:         "officer",
	RoleBranchManager:   "branch_manager",
	RoleAreaManager:     "area_manager",
	RoleStateHead:       "state_head",
	RoleRegionalManager: "regional_manager",
	RoleZonalManager:    "zonal_manager",
	RoleHead:            "head",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}

	return fmt.Sprintf("role(%d)", int(r))
}

// labelRanks maps every authority label, including legacy aliases, onto its
// rank. Deviation records carry these labels verbatim, and several legacy
// labels denote the same rank, so the mapping is many-to-one.
var labelRanks = map[string]Role{
	"officer":                 RoleOfficer,
	"credit officer":          RoleOfficer,
	"loan officer":            RoleOfficer,
	"branch manager":          RoleBranchManager,
	"branch credit manager":   RoleBranchManager,
	"area manager":            RoleAreaManager,
	"area credit manager":     RoleAreaManager,
	"state head":              RoleStateHead,
	"state credit head":       RoleStateHead,
	"regional manager":        RoleRegionalManager,
	"regional credit manager": RoleRegionalManager,
	"zonal manager":           RoleZonalManager,
	"zonal credit manager":    RoleZonalManager,
	"head":                    RoleHead,
	"national credit head":    RoleHead,
}

// RoleForLabel resolves an authority label to its rank. Matching is
// case-insensitive on the trimmed label.
func RoleForLabel(label string) (Role, bool) {
	role, ok := labelRanks[strings.ToLower(strings.TrimSpace(label))]

	return role, ok
}

// ParseRole resolves a role name or authority label to a rank.
func ParseRole(s string) (Role, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))

	for role, name := range roleNames {
		if name == normalized {
			return role, nil
		}
	}

	if role, ok := RoleForLabel(s); ok {
		return role, nil
	}

	return 0, fmt.Errorf("unknown role '%s'", s)
}

// Authorizes reports whether a user holding this role may decide an item
// assigned to the given authority label: the label's rank must be the
// user's own or any strictly lower rank, mirroring an escalation chain
// where approval flows upward.
func (r Role) Authorizes(label string) bool {
	rank, ok := RoleForLabel(label)
	if !ok {
		return false
	}

	return rank <= r
}

// AuthorizesAny reports whether any of the labels falls within this role's
// authority.
func (r Role) AuthorizesAny(labels []string) bool {
	for _, label := range labels {
		if r.Authorizes(label) {
			return true
		}
	}

	return false
}
