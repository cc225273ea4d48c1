package note

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cliniquehq/clinique_backend/internal/domain/account"
	"github.com/cliniquehq/clinique_backend/internal/domain/appointment"
	"github.com/cliniquehq/clinique_backend/internal/domain/profile"
	"github.com/cliniquehq/clinique_backend/pkg/mlclient"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type memAppointments struct {
	byID map[uuid.UUID]*appointment.Appointment
}

func (m *memAppointments) Create(_ context.Context, a *appointment.Appointment) error {
	m.byID[a.ID] = a
	return nil
}

func (m *memAppointments) GetByID(_ context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	a, ok := m.byID[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	return a, nil
}

func (m *memAppointments) Update(_ context.Context, a *appointment.Appointment) error {
	m.byID[a.ID] = a
	return nil
}

func (m *memAppointments) ListByPatient(_ context.Context, _ uuid.UUID) ([]*appointment.Appointment, error) {
	return nil, nil
}

func (m *memAppointments) ListByTherapist(_ context.Context, _ uuid.UUID) ([]*appointment.Appointment, error) {
	return nil, nil
}

type memNotes struct {
	byAppt map[uuid.UUID]*appointment.ClinicalNote
	saves  int
}

func (m *memNotes) GetByAppointmentID(_ context.Context, apptID uuid.UUID) (*appointment.ClinicalNote, error) {
	n, ok := m.byAppt[apptID]
	if !ok {
		return nil, appointment.ErrNoteNotFound
	}
	cp := *n
	return &cp, nil
}

func (m *memNotes) Save(_ context.Context, n *appointment.ClinicalNote) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	m.saves++
	cp := *n
	m.byAppt[n.AppointmentID] = &cp
	return nil
}

func (m *memNotes) LatestScoredForPatient(_ context.Context, _ uuid.UUID) (*appointment.ClinicalNote, error) {
	return nil, appointment.ErrNoteNotFound
}

type memTherapists struct {
	byAccount map[uuid.UUID]*profile.TherapistProfile
}

func (m *memTherapists) Create(_ context.Context, p *profile.TherapistProfile) error {
	m.byAccount[p.AccountID] = p
	return nil
}

func (m *memTherapists) GetByID(_ context.Context, id uuid.UUID) (*profile.TherapistProfile, error) {
	for _, p := range m.byAccount {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, profile.ErrProfileNotFound
}

func (m *memTherapists) GetByAccountID(_ context.Context, accountID uuid.UUID) (*profile.TherapistProfile, error) {
	p, ok := m.byAccount[accountID]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	return p, nil
}

func (m *memTherapists) List(_ context.Context) ([]*profile.TherapistProfile, error) {
	return nil, nil
}

func (m *memTherapists) Update(_ context.Context, p *profile.TherapistProfile) error {
	m.byAccount[p.AccountID] = p
	return nil
}

type fakePredictor struct {
	sentiment *mlclient.Sentiment
	err       error
	calls     int
	lastText  string
}

func (f *fakePredictor) CancellationRisk(_ context.Context, _ mlclient.RiskFeatures) (float64, error) {
	return 0, mlclient.ErrUnavailable
}

func (f *fakePredictor) RecommendTiming(_ context.Context, _ int) (int, error) {
	return 0, mlclient.ErrUnavailable
}

func (f *fakePredictor) AnalyzeSentiment(_ context.Context, text string) (*mlclient.Sentiment, error) {
	f.calls++
	f.lastText = text
	if f.err != nil {
		return nil, f.err
	}
	return f.sentiment, nil
}

func (f *fakePredictor) ChurnRisk(_ context.Context, _ mlclient.ChurnFeatures) (*mlclient.Churn, error) {
	return nil, mlclient.ErrUnavailable
}

// ---------------------------------------------------------------------------
// Fixture
// ---------------------------------------------------------------------------

type fixture struct {
	svc       Service
	notes     *memNotes
	predictor *fakePredictor

	appt    *appointment.Appointment
	thActor account.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	appts := &memAppointments{byID: make(map[uuid.UUID]*appointment.Appointment)}
	notes := &memNotes{byAppt: make(map[uuid.UUID]*appointment.ClinicalNote)}
	therapists := &memTherapists{byAccount: make(map[uuid.UUID]*profile.TherapistProfile)}
	predictor := &fakePredictor{
		sentiment: &mlclient.Sentiment{Polarity: 0.6, Subjectivity: 0.4, SentimentLabel: "positive"},
	}

	th := &profile.TherapistProfile{ID: uuid.New(), AccountID: uuid.New()}
	if err := therapists.Create(context.Background(), th); err != nil {
		t.Fatal(err)
	}

	appt := &appointment.Appointment{
		ID:              uuid.New(),
		PatientID:       uuid.New(),
		TherapistID:     th.ID,
		SessionDateTime: time.Now().Add(-time.Hour),
		Status:          appointment.StatusCompleted,
	}
	if err := appts.Create(context.Background(), appt); err != nil {
		t.Fatal(err)
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &fixture{
		svc:       New(appts, notes, therapists, predictor, log),
		notes:     notes,
		predictor: predictor,
		appt:      appt,
		thActor:   account.Actor{AccountID: th.AccountID, Role: account.RoleTherapist},
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestAddNoteWithSentiment(t *testing.T) {
	f := newFixture(t)
	score := 7

	v, err := f.svc.AddOrUpdate(context.Background(), WriteRequest{
		AppointmentID: f.appt.ID,
		Summary:       "patient is responding well",
		PrivateNotes:  "consider reducing frequency",
		ProgressScore: &score,
	}, f.thActor)
	if err != nil {
		t.Fatalf("AddOrUpdate: %v", err)
	}

	if v.ProgressScore == nil || *v.ProgressScore != 7 {
		t.Errorf("ProgressScore = %v, want 7", v.ProgressScore)
	}
	if v.SentimentScore == nil || *v.SentimentScore != 0.6 {
		t.Errorf("SentimentScore = %v, want 0.6", v.SentimentScore)
	}
	if v.SentimentLabel == nil || *v.SentimentLabel != "positive" {
		t.Errorf("SentimentLabel = %v, want positive", v.SentimentLabel)
	}
	if f.predictor.lastText != "patient is responding well" {
		t.Errorf("text sent = %q", f.predictor.lastText)
	}
}

func TestUpdateOverwritesNotDuplicates(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.AddOrUpdate(context.Background(), WriteRequest{
		AppointmentID: f.appt.ID,
		Summary:       "initial impression",
	}, f.thActor)
	if err != nil {
		t.Fatalf("first write: %v", err)
	}

	second, err := f.svc.AddOrUpdate(context.Background(), WriteRequest{
		AppointmentID: f.appt.ID,
		Summary:       "revised after review",
	}, f.thActor)
	if err != nil {
		t.Fatalf("second write: %v", err)
	}

	if second.NoteID != first.NoteID {
		t.Errorf("second write created note %s, want %s overwritten", second.NoteID, first.NoteID)
	}
	if len(f.notes.byAppt) != 1 {
		t.Errorf("notes stored = %d, want 1", len(f.notes.byAppt))
	}
	if got := f.notes.byAppt[f.appt.ID].Summary; got != "revised after review" {
		t.Errorf("Summary = %q", got)
	}
}

func TestEmptySummarySkipsSentiment(t *testing.T) {
	f := newFixture(t)

	v, err := f.svc.AddOrUpdate(context.Background(), WriteRequest{
		AppointmentID: f.appt.ID,
		Summary:       "   ",
		PrivateNotes:  "no-show discussion",
	}, f.thActor)
	if err != nil {
		t.Fatalf("AddOrUpdate: %v", err)
	}

	if f.predictor.calls != 0 {
		t.Errorf("sentiment calls = %d, want 0", f.predictor.calls)
	}
	if v.SentimentScore != nil || v.SentimentLabel != nil {
		t.Error("sentiment set without a summary")
	}
}

func TestSentimentFailureStillSaves(t *testing.T) {
	f := newFixture(t)
	f.predictor.err = mlclient.ErrUnavailable

	v, err := f.svc.AddOrUpdate(context.Background(), WriteRequest{
		AppointmentID: f.appt.ID,
		Summary:       "difficult session",
	}, f.thActor)
	if err != nil {
		t.Fatalf("AddOrUpdate: %v", err)
	}

	if v.SentimentScore != nil {
		t.Errorf("SentimentScore = %v, want nil", v.SentimentScore)
	}
	if len(f.notes.byAppt) != 1 {
		t.Errorf("notes stored = %d, want 1", len(f.notes.byAppt))
	}
}

func TestWriteDenied(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name    string
		apptID  uuid.UUID
		actor   account.Actor
		wantErr error
	}{
		{"unknown appointment", uuid.New(), f.thActor, appointment.ErrAppointmentNotFound},
		{"patient caller", f.appt.ID, account.Actor{AccountID: uuid.New(), Role: account.RolePatient}, ErrAccessDenied},
		{"other therapist", f.appt.ID, account.Actor{AccountID: uuid.New(), Role: account.RoleTherapist}, ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.AddOrUpdate(context.Background(), WriteRequest{
				AppointmentID: tt.apptID,
				Summary:       "should not be written",
			}, tt.actor)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddOrUpdate error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if len(f.notes.byAppt) != 0 {
		t.Errorf("notes stored = %d, want 0", len(f.notes.byAppt))
	}
}
