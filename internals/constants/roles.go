package constants

import "fmt"

const (
	RoleLandlord = "landlord"
	RoleTenant   = "tenant"
)

// Template pesan error role
const (
	ErrOnlyLandlordsCanAccess = "❌ Only landlords may access %s."
	ErrOnlyTenantsCanAccess   = "❌ Only tenants may access %s."
)

func RoleErrorLandlord(feature string) string {
	return fmt.Sprintf(ErrOnlyLandlordsCanAccess, feature)
}

func RoleErrorTenant(feature string) string {
	return fmt.Sprintf(ErrOnlyTenantsCanAccess, feature)
}

// RoleFromStaff maps the is_staff flag on a user to an API role.
func RoleFromStaff(isStaff bool) string {
	if isStaff {
		return RoleLandlord
	}
	return RoleTenant
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleLandlord,
		RoleTenant,
	}

	LandlordOnly = []string{
		RoleLandlord,
	}
)
