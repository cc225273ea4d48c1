package appointment

import (
	"reflect"
	"strings"
	"testing"
)

func TestCanCancel(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusScheduled, true},
		{StatusCancelledByPatient, true},
		{StatusCancelledByTherapist, true},
		{StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			a := &Appointment{Status: tt.status}
			if got := a.CanCancel(); got != tt.want {
				t.Errorf("CanCancel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClinicalNoteCascadesWithAppointment(t *testing.T) {
	f, ok := reflect.TypeOf(ClinicalNote{}).FieldByName("Appointment")
	if !ok {
		t.Fatal("ClinicalNote has no Appointment association")
	}

	tag := f.Tag.Get("gorm")
	if !strings.Contains(tag, "foreignKey:AppointmentID") {
		t.Errorf("association tag %q lacks the appointment foreign key", tag)
	}
	if !strings.Contains(tag, "OnDelete:CASCADE") {
		t.Errorf("association tag %q does not cascade deletes", tag)
	}
}
