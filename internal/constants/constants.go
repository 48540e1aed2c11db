package constants

// Context keys set by the auth middleware
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserRoles = "user_roles"
)

// Roles
const (
	// RoleUser is the baseline role every principal carries implicitly.
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Validation bounds
const (
	MinPasswordLength = 4
	MinNameLength     = 2
	MaxNameLength     = 255
	MaxUsernameLength = 180
	MaxAbbreviation   = 10
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
