package crud

import (
	"testing"
)

func TestBuildSelectByID(t *testing.T) {
	got := buildSelectByID("patients", []string{"id", "first_name", "last_name"})
	want := "SELECT id, first_name, last_name FROM patients WHERE id = $1"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestBuildCount(t *testing.T) {
	got := buildCount("doctors", "")
	if got != "SELECT COUNT(*) FROM doctors" {
		t.Errorf("unexpected count query: %q", got)
	}

	got = buildCount("doctors", "department_id = $1")
	if got != "SELECT COUNT(*) FROM doctors WHERE department_id = $1" {
		t.Errorf("unexpected filtered count query: %q", got)
	}
}

func TestBuildSelectPage(t *testing.T) {
	query, args := buildSelectPage("patients", []string{"id", "status"}, "", nil, 20, 40)
	want := "SELECT id, status FROM patients ORDER BY created_at DESC LIMIT $1 OFFSET $2"
	if query != want {
		t.Errorf("expected %q, got %q", want, query)
	}
	if len(args) != 2 || args[0] != 20 || args[1] != 40 {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestBuildSelectPage_WithWhere(t *testing.T) {
	query, args := buildSelectPage(
		"appointments",
		[]string{"id", "status"},
		"doctor_id = $1 AND status = $2",
		[]interface{}{int64(7), "scheduled"},
		10, 0,
	)
	want := "SELECT id, status FROM appointments WHERE doctor_id = $1 AND status = $2 ORDER BY created_at DESC LIMIT $3 OFFSET $4"
	if query != want {
		t.Errorf("expected %q, got %q", want, query)
	}
	if len(args) != 4 {
		t.Fatalf("expected 4 args, got %d", len(args))
	}
	if args[2] != 10 || args[3] != 0 {
		t.Errorf("limit/offset args misplaced: %v", args)
	}
}

func TestBuildInsert(t *testing.T) {
	got := buildInsert(
		"departments",
		[]string{"name", "description"},
		[]string{"id", "name", "description", "created_at", "updated_at"},
	)
	want := "INSERT INTO departments (name, description) VALUES ($1, $2) " +
		"RETURNING id, name, description, created_at, updated_at"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestBuildUpdate(t *testing.T) {
	got := buildUpdate(
		"departments",
		[]string{"name", "description"},
		[]string{"id", "name", "description", "created_at", "updated_at"},
	)
	want := "UPDATE departments SET name = $1, description = $2, updated_at = NOW() WHERE id = $3 " +
		"RETURNING id, name, description, created_at, updated_at"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
