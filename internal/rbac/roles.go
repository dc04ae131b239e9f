package rbac

// Role names. Keep these stable; they are part of auth/RBAC contracts.
const (
	RoleReader = "reader"
	RoleEditor = "editor"
	RoleAdmin  = "admin"
)

func IsAdmin(role string) bool { return role == RoleAdmin }
