package domain

// ID is used across domain entities.
type ID int64

const (
	RoleUser    = "User"
	RoleManager = "Manager"
)

// RequestContext carries authenticated user info when available.
// The booking core trusts it as already validated by the auth middleware.
type RequestContext struct {
	UserID   ID     `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (rc RequestContext) IsManager() bool {
	return rc.Role == RoleManager
}
