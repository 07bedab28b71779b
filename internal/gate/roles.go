package gate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Role is one of the gate's access-control roles.
type Role uint8

const (
	// RoleAdmin may grant and revoke any role.
	RoleAdmin Role = iota
	// RoleOperator may change the gate's mutable configuration.
	RoleOperator
	// RolePauser may pause and unpause minting.
	RolePauser
)

// String returns the role's lowercase name.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleOperator:
		return "operator"
	case RolePauser:
		return "pauser"
	default:
		return fmt.Sprintf("role(%d)", uint8(r))
	}
}

// ParseRole converts a role name into a Role.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, nil
	case "operator":
		return RoleOperator, nil
	case "pauser":
		return RolePauser, nil
	default:
		return 0, fmt.Errorf("unknown role %q (want admin, operator, or pauser)", s)
	}
}

// Roles tracks which addresses hold which roles. Multiple addresses may hold
// the same role at once.
type Roles struct {
	members map[Role]map[common.Address]struct{}
}

// NewRoles creates a role set with admin holding all three roles, mirroring
// a deployer that grants itself admin, operator, and pauser at construction.
func NewRoles(admin common.Address) *Roles {
	r := &Roles{members: make(map[Role]map[common.Address]struct{})}
	for _, role := range []Role{RoleAdmin, RoleOperator, RolePauser} {
		r.members[role] = map[common.Address]struct{}{admin: {}}
	}
	return r
}

// Has reports whether addr holds role.
func (r *Roles) Has(role Role, addr common.Address) bool {
	_, ok := r.members[role][addr]
	return ok
}

// Grant gives addr the role. The caller must hold the admin role.
func (r *Roles) Grant(caller common.Address, role Role, addr common.Address) error {
	if !r.Has(RoleAdmin, caller) {
		return fmt.Errorf("grant %s: %w", role, ErrUnauthorized)
	}
	if r.members[role] == nil {
		r.members[role] = make(map[common.Address]struct{})
	}
	r.members[role][addr] = struct{}{}
	return nil
}

// Revoke removes the role from addr. The caller must hold the admin role.
// Revoking a role the address does not hold is a no-op.
func (r *Roles) Revoke(caller common.Address, role Role, addr common.Address) error {
	if !r.Has(RoleAdmin, caller) {
		return fmt.Errorf("revoke %s: %w", role, ErrUnauthorized)
	}
	delete(r.members[role], addr)
	return nil
}

// Holders returns the addresses holding role, sorted for stable output.
func (r *Roles) Holders(role Role) []common.Address {
	out := make([]common.Address, 0, len(r.members[role]))
	for addr := range r.members[role] {
		out = append(out, addr)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Hex() < out[j].Hex()
	})
	return out
}
