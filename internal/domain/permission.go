package domain

type Capability int

const (
	// CapManageContent covers subject/chapter/card CRUD.
	CapManageContent Capability = iota
	// CapViewPlatformStats covers the admin dashboard counters.
	CapViewPlatformStats
)

// Can is the single place role flags are interpreted. Viewing gated content is
// deliberately not a capability: access to a priced chapter is coin-based for
// every role, admins included.
func (p *Profile) Can(cap Capability) bool {
	switch cap {
	case CapManageContent, CapViewPlatformStats:
		return p.IsAdmin || p.Role == RoleAdmin
	}
	return false
}
