package domain

import "fmt"

// UserRole enumerates the roles a POS user can hold.
type UserRole string

const (
	RoleUser          UserRole = "ROLE_USER"
	RoleAdmin         UserRole = "ROLE_ADMIN"
	RoleCashier       UserRole = "ROLE_CASHIER"
	RoleBranchManager UserRole = "ROLE_BRANCH_MANAGER"
	RoleBranchAdmin   UserRole = "ROLE_BRANCH_ADMIN"
	RoleStoreManager  UserRole = "ROLE_STORE_MANAGER"
	RoleStoreAdmin    UserRole = "ROLE_STORE_ADMIN"
)

var knownRoles = map[UserRole]struct{}{
	RoleUser:          {},
	RoleAdmin:         {},
	RoleCashier:       {},
	RoleBranchManager: {},
	RoleBranchAdmin:   {},
	RoleStoreManager:  {},
	RoleStoreAdmin:    {},
}

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	_, ok := knownRoles[r]
	return ok
}

func (r UserRole) String() string {
	return string(r)
}

// ParseUserRole converts a role name into a UserRole.
func ParseUserRole(name string) (UserRole, error) {
	role := UserRole(name)
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", name)
	}
	return role, nil
}

// AssignableRoles lists the roles a user may pick for themselves at signup.
func AssignableRoles() []UserRole {
	return []UserRole{
		RoleUser,
		RoleCashier,
		RoleBranchManager,
		RoleBranchAdmin,
		RoleStoreManager,
		RoleStoreAdmin,
	}
}
