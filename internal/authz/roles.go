package authz

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

func IsElevated(role string) bool {
	return role == RoleAdmin
}

func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
