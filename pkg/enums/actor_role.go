package enums

// ActorRole identifies who is acting on an order.
type ActorRole string

const (
	RoleCustomer ActorRole = "customer"
	RoleAdmin    ActorRole = "admin"
	RoleSystem   ActorRole = "system"
)

// String implements fmt.Stringer.
func (r ActorRole) String() string { return string(r) }

// IsValid reports whether the role is a known value.
func (r ActorRole) IsValid() bool {
	switch r {
	case RoleCustomer, RoleAdmin, RoleSystem:
		return true
	}
	return false
}

// ParseActorRole converts raw input into an ActorRole.
func ParseActorRole(raw string) (ActorRole, bool) {
	role := ActorRole(raw)
	if role.IsValid() {
		return role, true
	}
	return "", false
}
