package constant

// Role names as carried in JWT claims and casbin policies.
const (
	RoleLearner  = "LEARNER"
	RoleEducator = "EDUCATOR"
	RoleAdmin    = "ADMIN"
)
