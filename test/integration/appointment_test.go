package integration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/hms/hms/internal/domain/appointment"
	"github.com/hms/hms/internal/domain/department"
	"github.com/hms/hms/internal/domain/doctor"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/pkg/crud"
)

func TestAppointmentScheduling(t *testing.T) {
	ctx := context.Background()
	svc := appointment.NewService(appointment.NewRepository(globalDB.Pool))

	dept := createTestDepartment(t, ctx, "cardiology")
	doc := createTestDoctor(t, ctx, "Gregory", "Hsu", ptrInt64(dept.ID))
	pat := createTestPatient(t, ctx, "Nora", "Quinn")

	var appt *appointment.Appointment

	t.Run("Create_Defaults", func(t *testing.T) {
		a, err := svc.Create(ctx, &appointment.Appointment{
			PatientID:       pat.ID,
			DoctorID:        doc.ID,
			DepartmentID:    ptrInt64(dept.ID),
			ScheduledAt:     time.Now().Add(48 * time.Hour).UTC(),
			AppointmentType: appointment.TypeConsultation,
			Reason:          "chest pain follow-up",
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if !strings.HasPrefix(a.AppointmentNumber, "APT-") {
			t.Errorf("expected generated APT- number, got %s", a.AppointmentNumber)
		}
		if a.DurationMinutes != appointment.DefaultDurationMinutes {
			t.Errorf("expected default duration=%d, got %d", appointment.DefaultDurationMinutes, a.DurationMinutes)
		}
		if a.Status != appointment.StatusScheduled {
			t.Errorf("expected status=%s, got %s", appointment.StatusScheduled, a.Status)
		}
		appt = a
	})

	t.Run("ListByDoctor", func(t *testing.T) {
		results, total, err := svc.ListByDoctor(ctx, doc.ID, 100, 0)
		if err != nil {
			t.Fatalf("ListByDoctor: %v", err)
		}
		if total != 1 {
			t.Fatalf("expected 1 appointment for doctor, got %d", total)
		}
		if results[0].ID != appt.ID {
			t.Errorf("expected appointment %d, got %d", appt.ID, results[0].ID)
		}
	})

	t.Run("Cancel", func(t *testing.T) {
		appt.Status = appointment.StatusCancelled
		a, err := svc.Update(ctx, appt.ID, appt)
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if a.Status != appointment.StatusCancelled {
			t.Errorf("expected status=%s, got %s", appointment.StatusCancelled, a.Status)
		}
	})

	t.Run("DurationCheckConstraint", func(t *testing.T) {
		// Straight through the repository, so the database constraint is
		// what rejects it.
		repo := appointment.NewRepository(globalDB.Pool)
		_, err := repo.Create(ctx, &appointment.Appointment{
			AppointmentNumber: fmt.Sprintf("APT-TEST-%s", uniqueSuffix()),
			PatientID:         pat.ID,
			DoctorID:          doc.ID,
			ScheduledAt:       time.Now().UTC(),
			DurationMinutes:   -15,
			AppointmentType:   appointment.TypeConsultation,
			Status:            appointment.StatusScheduled,
			Reason:            "bad duration",
		})
		if err == nil {
			t.Fatal("expected check constraint violation for negative duration")
		}
	})
}

// Deleting a patient removes their appointments through the foreign key.
func TestAppointment_PatientDeleteCascades(t *testing.T) {
	ctx := context.Background()
	svc := appointment.NewService(appointment.NewRepository(globalDB.Pool))

	doc := createTestDoctor(t, ctx, "Imran", "Patel", nil)
	pat := createTestPatient(t, ctx, "Sasha", "Moore")

	appt, err := svc.Create(ctx, &appointment.Appointment{
		PatientID:       pat.ID,
		DoctorID:        doc.ID,
		ScheduledAt:     time.Now().Add(24 * time.Hour).UTC(),
		AppointmentType: appointment.TypeRoutineCheckup,
		Reason:          "annual physical",
	})
	if err != nil {
		t.Fatalf("create appointment: %v", err)
	}

	patients := patient.NewService(patient.NewRepository(globalDB.Pool))
	if err := patients.Delete(ctx, pat.ID); err != nil {
		t.Fatalf("delete patient: %v", err)
	}

	if _, err := svc.Get(ctx, appt.ID); !errors.Is(err, crud.ErrNotFound) {
		t.Fatalf("expected appointment gone after patient delete, got %v", err)
	}
}

// Deleting a department detaches its doctors rather than deleting them.
func TestDoctor_DepartmentDeleteSetsNull(t *testing.T) {
	ctx := context.Background()

	dept := createTestDepartment(t, ctx, "oncology")
	doc := createTestDoctor(t, ctx, "Lena", "Fischer", ptrInt64(dept.ID))

	departments := department.NewService(department.NewRepository(globalDB.Pool))
	if err := departments.Delete(ctx, dept.ID); err != nil {
		t.Fatalf("delete department: %v", err)
	}

	doctors := doctor.NewService(doctor.NewRepository(globalDB.Pool))
	got, err := doctors.Get(ctx, doc.ID)
	if err != nil {
		t.Fatalf("get doctor: %v", err)
	}
	if got.DepartmentID != nil {
		t.Errorf("expected department_id cleared, got %v", *got.DepartmentID)
	}
}
