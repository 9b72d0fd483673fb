package constants

// Staff roles. RoleAdmin doubles as the system-administrator role for
// cross-tenant endpoints.
const (
	RoleAdmin     = "admin"
	RolePrincipal = "principal"
	RoleTeacher   = "teacher"
	RoleHOD       = "hod"
)

var StaffRoles = []string{RoleAdmin, RolePrincipal, RoleTeacher, RoleHOD}

func IsStaffRole(role string) bool {
	for _, r := range StaffRoles {
		if r == role {
			return true
		}
	}
	return false
}
