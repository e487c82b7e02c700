package utils

// Account roles. The role is fixed at signup and never migrates.
const (
	RoleCitizen = "citizen"
	RoleVendor  = "vendor"
)

var ValidRoles = []string{RoleCitizen, RoleVendor}
