package authorize

import (
	"context"
	"errors"
	"testing"
)

func newTestAuthorization(t *testing.T) IAuthorization {
	t.Helper()

	auth, err := NewAuthorization()
	if err != nil {
		t.Fatalf("NewAuthorization: %v", err)
	}
	return auth
}

func TestEnforceSeededPolicies(t *testing.T) {
	auth := newTestAuthorization(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		role    Role
		object  Resource
		action  Action
		allowed bool
	}{
		{"therapist creates appointment", RoleTherapist, ResourceAppointment, ActionCreate, true},
		{"admin creates appointment", RoleAdmin, ResourceAppointment, ActionCreate, true},
		{"patient creates appointment", RolePatient, ResourceAppointment, ActionCreate, false},

		{"patient cancels appointment", RolePatient, ResourceAppointment, ActionCancel, true},
		{"therapist cancels appointment", RoleTherapist, ResourceAppointment, ActionCancel, false},
		{"admin cancels appointment", RoleAdmin, ResourceAppointment, ActionCancel, false},

		{"therapist completes appointment", RoleTherapist, ResourceAppointment, ActionComplete, true},
		{"patient completes appointment", RolePatient, ResourceAppointment, ActionComplete, false},

		{"therapist writes note", RoleTherapist, ResourceNote, ActionCreate, true},
		{"patient writes note", RolePatient, ResourceNote, ActionCreate, false},
		{"admin writes note", RoleAdmin, ResourceNote, ActionCreate, false},

		{"therapist reads recommendation", RoleTherapist, ResourceRecommendation, ActionRead, true},
		{"admin reads recommendation", RoleAdmin, ResourceRecommendation, ActionRead, true},
		{"patient reads recommendation", RolePatient, ResourceRecommendation, ActionRead, false},

		{"therapist lists patients", RoleTherapist, ResourcePatient, ActionList, true},
		{"patient lists patients", RolePatient, ResourcePatient, ActionList, false},
		{"admin lists patients", RoleAdmin, ResourcePatient, ActionList, false},

		{"patient reads profile", RolePatient, ResourceProfile, ActionRead, true},
		{"therapist reads profile", RoleTherapist, ResourceProfile, ActionRead, true},
		{"admin reads profile", RoleAdmin, ResourceProfile, ActionRead, true},

		{"patient lists therapists", RolePatient, ResourceTherapist, ActionList, true},
		{"admin lists therapists", RoleAdmin, ResourceTherapist, ActionList, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := auth.Enforce(ctx, tt.role, tt.object, tt.action)
			if err != nil {
				t.Fatalf("Enforce() error = %v", err)
			}
			if got != tt.allowed {
				t.Errorf("Enforce(%s, %s, %s) = %v, want %v", tt.role, tt.object, tt.action, got, tt.allowed)
			}
		})
	}
}

func TestEnforceRejectsUnknownInputs(t *testing.T) {
	auth := newTestAuthorization(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		role   Role
		object Resource
		action Action
	}{
		{"empty role", "", ResourceAppointment, ActionCreate},
		{"unknown role", Role("role:receptionist"), ResourceAppointment, ActionCreate},
		{"empty object", RoleAdmin, "", ActionCreate},
		{"unknown object", RoleAdmin, Resource("billing"), ActionCreate},
		{"empty action", RoleAdmin, ResourceAppointment, ""},
		{"unknown action", RoleAdmin, ResourceAppointment, Action("transmogrify")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.Enforce(ctx, tt.role, tt.object, tt.action)
			if !errors.Is(err, ErrInvalidArgs) {
				t.Errorf("Enforce() error = %v, want ErrInvalidArgs", err)
			}
		})
	}
}

func TestMustEnforce(t *testing.T) {
	auth := newTestAuthorization(t)
	ctx := context.Background()

	if err := auth.MustEnforce(ctx, RoleTherapist, ResourceNote, ActionCreate); err != nil {
		t.Errorf("MustEnforce() allowed case error = %v", err)
	}

	err := auth.MustEnforce(ctx, RolePatient, ResourceNote, ActionCreate)
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("MustEnforce() denied case error = %v, want ErrForbidden", err)
	}
}

func TestDenyOverridesAllow(t *testing.T) {
	auth := newTestAuthorization(t)
	ctx := context.Background()

	if _, err := auth.AddPermission(ctx, RoleTherapist, ResourceNote, ActionCreate, EffectDeny); err != nil {
		t.Fatalf("AddPermission: %v", err)
	}

	got, err := auth.Enforce(ctx, RoleTherapist, ResourceNote, ActionCreate)
	if err != nil {
		t.Fatalf("Enforce() error = %v", err)
	}
	if got {
		t.Error("deny policy did not override allow")
	}

	if _, err := auth.RemovePermission(ctx, RoleTherapist, ResourceNote, ActionCreate, EffectDeny); err != nil {
		t.Fatalf("RemovePermission: %v", err)
	}

	got, err = auth.Enforce(ctx, RoleTherapist, ResourceNote, ActionCreate)
	if err != nil {
		t.Fatalf("Enforce() error = %v", err)
	}
	if !got {
		t.Error("allow policy not restored after deny removal")
	}
}

func TestRoleForAccount(t *testing.T) {
	tests := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"PATIENT", RolePatient, true},
		{"THERAPIST", RoleTherapist, true},
		{"ADMIN", RoleAdmin, true},
		{"patient", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := RoleForAccount(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("RoleForAccount(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
