package constants

// Per-request access states.
const (
	AccessLandlord           = "landlord"
	AccessTenant             = "tenant"
	AccessTenantMustChangePw = "tenant_must_change_password"
)

// Error codes that clients branch on.
const (
	ErrCodePasswordChangeRequired = "PASSWORD_CHANGE_REQUIRED"
	ErrCodeRoomFull               = "ROOM_FULL"
	ErrCodeNoActiveAssignment     = "NO_ACTIVE_ASSIGNMENT"
	ErrCodeMultipleAssignments    = "MULTIPLE_ACTIVE_ASSIGNMENTS"
)

// Locals keys shared by middlewares and controllers.
const (
	LocUserID      = "user_id"
	LocUserRole    = "userRole"
	LocUserName    = "user_name"
	LocAccessState = "access_state"
	LocRawToken    = "raw_token"
)
