package authorize

import (
	"context"
	"log/slog"
)

// SeedDefaultPolicies sets up the baseline RBAC policies for the system.
// Ownership checks (a patient cancelling someone else's appointment, a
// therapist completing a colleague's session) live in the services; these
// policies gate which roles may reach an operation at all.
func SeedDefaultPolicies(ctx context.Context, auth IAuthorization) error {
	logger := slog.Default()

	policies := []PermissionPolicy{
		// Scheduling
		{RoleAdmin, ResourceAppointment, ActionCreate, EffectAllow},
		{RoleTherapist, ResourceAppointment, ActionCreate, EffectAllow},
		{RolePatient, ResourceAppointment, ActionCancel, EffectAllow},
		{RoleTherapist, ResourceAppointment, ActionComplete, EffectAllow},
		{RolePatient, ResourceAppointment, ActionRead, EffectAllow},
		{RoleTherapist, ResourceAppointment, ActionRead, EffectAllow},
		{RoleAdmin, ResourceAppointment, ActionRead, EffectAllow},
		{RolePatient, ResourceAppointment, ActionList, EffectAllow},
		{RoleTherapist, ResourceAppointment, ActionList, EffectAllow},
		{RoleAdmin, ResourceAppointment, ActionList, EffectAllow},

		// Session timing recommendation
		{RoleAdmin, ResourceRecommendation, ActionRead, EffectAllow},
		{RoleTherapist, ResourceRecommendation, ActionRead, EffectAllow},

		// Clinical notes
		{RoleTherapist, ResourceNote, ActionCreate, EffectAllow},
		{RoleTherapist, ResourceNote, ActionRead, EffectAllow},

		// Patient roster and churn
		{RoleTherapist, ResourcePatient, ActionList, EffectAllow},
		{RoleTherapist, ResourcePatient, ActionRead, EffectAllow},

		// Profiles and therapist directory: any authenticated role
		{RolePatient, ResourceProfile, ActionRead, EffectAllow},
		{RoleTherapist, ResourceProfile, ActionRead, EffectAllow},
		{RoleAdmin, ResourceProfile, ActionRead, EffectAllow},
		{RolePatient, ResourceProfile, ActionUpdate, EffectAllow},
		{RoleTherapist, ResourceProfile, ActionUpdate, EffectAllow},
		{RolePatient, ResourceTherapist, ActionList, EffectAllow},
		{RoleTherapist, ResourceTherapist, ActionList, EffectAllow},
		{RoleAdmin, ResourceTherapist, ActionList, EffectAllow},
	}

	for _, p := range policies {
		added, err := auth.AddPermission(ctx, p.Subject, p.Object, p.Action, p.Effect)
		if err != nil {
			logger.Error("failed to add policy", "policy", p, "error", err)
			return err
		}
		if added {
			logger.Debug("added policy", "role", p.Subject, "resource", p.Object, "action", p.Action)
		}
	}

	logger.Info("seeded default RBAC policies", "count", len(policies))
	return nil
}
