package authorize

type Action string
type Resource string
type Role string

// ----------------------------
// Actions
// ----------------------------

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionList   Action = "list"

	// Appointment lifecycle actions
	ActionCancel   Action = "cancel"
	ActionComplete Action = "complete"
)

const (
	WildcardAction Action = "*"
)

var KnownActions = map[Action]struct{}{
	ActionCreate: {}, ActionRead: {}, ActionUpdate: {}, ActionList: {},
	ActionCancel: {}, ActionComplete: {},
}

// ----------------------------
// Resources
// ----------------------------

const (
	WildcardResource Resource = "*"

	ResourceAppointment    Resource = "appointment"
	ResourceNote           Resource = "note"
	ResourceProfile        Resource = "profile"
	ResourcePatient        Resource = "patient"
	ResourceTherapist      Resource = "therapist"
	ResourceRecommendation Resource = "recommendation"
)

var KnownResources = map[Resource]struct{}{
	ResourceAppointment: {}, ResourceNote: {}, ResourceProfile: {},
	ResourcePatient: {}, ResourceTherapist: {}, ResourceRecommendation: {},
}

// ----------------------------
// Roles
// ----------------------------
//
// These are the policy subjects. Every authenticated account maps to
// exactly one of them via its stored role.

const (
	WildcardRole Role = "*"

	RolePatient   Role = "role:patient"
	RoleTherapist Role = "role:therapist"
	RoleAdmin     Role = "role:admin"
)

var KnownRoles = map[Role]struct{}{
	RolePatient:   {},
	RoleTherapist: {},
	RoleAdmin:     {},
}

// Account role strings (stored in the accounts.role column)
const (
	AccountRolePatient   = "PATIENT"
	AccountRoleTherapist = "THERAPIST"
	AccountRoleAdmin     = "ADMIN"
)

// AccountRoleToRBACRole maps stored role values to Casbin roles
var AccountRoleToRBACRole = map[string]Role{
	AccountRolePatient:   RolePatient,
	AccountRoleTherapist: RoleTherapist,
	AccountRoleAdmin:     RoleAdmin,
}

// RoleForAccount returns the Casbin role for a stored account role.
// Returns false for unknown role strings.
func RoleForAccount(accountRole string) (Role, bool) {
	r, ok := AccountRoleToRBACRole[accountRole]
	return r, ok
}

// ----------------------------
// Casbin tuple helpers
// ----------------------------

type PolicyEffect string

const (
	EffectAllow PolicyEffect = "allow"
	EffectDeny  PolicyEffect = "deny"
)

// Permission rows: p, role, resource, action, eft
type PermissionPolicy struct {
	Subject Role
	Object  Resource
	Action  Action
	Effect  PolicyEffect
}
