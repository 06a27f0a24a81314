package database

import (
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	tmp := t.TempDir()
	dbPath := filepath.Join(tmp, "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func TestCreateStudent_AssignsID(t *testing.T) {
	db := newTestDB(t)

	created, err := db.CreateStudent("Ann", 20, "CS", "female")
	if err != nil {
		t.Fatalf("CreateStudent returned error: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected a non-zero id")
	}

	saved, err := db.GetStudent(created.ID)
	if err != nil {
		t.Fatalf("GetStudent returned error: %v", err)
	}
	if saved == nil {
		t.Fatal("expected student to be saved")
	}
	if *saved != *created {
		t.Fatalf("expected %+v, got %+v", *created, *saved)
	}
}

func TestCreateStudent_EmptyNameRejected(t *testing.T) {
	db := newTestDB(t)

	if _, err := db.CreateStudent("", 20, "CS", "female"); err == nil {
		t.Fatal("expected error for empty name")
	}

	students, err := db.ListStudents()
	if err != nil {
		t.Fatalf("ListStudents returned error: %v", err)
	}
	if len(students) != 0 {
		t.Fatalf("expected no rows, got %d", len(students))
	}
}

func TestGetStudent_Missing(t *testing.T) {
	db := newTestDB(t)

	student, err := db.GetStudent(42)
	if err != nil {
		t.Fatalf("GetStudent returned error: %v", err)
	}
	if student != nil {
		t.Fatalf("expected nil, got %+v", student)
	}
}

func TestListStudents_IncludesCreatedOnce(t *testing.T) {
	db := newTestDB(t)

	created, err := db.CreateStudent("Ann", 20, "CS", "female")
	if err != nil {
		t.Fatalf("CreateStudent returned error: %v", err)
	}

	students, err := db.ListStudents()
	if err != nil {
		t.Fatalf("ListStudents returned error: %v", err)
	}

	count := 0
	for _, s := range students {
		if s.ID == created.ID {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected created student exactly once, found %d times", count)
	}
}

func TestListStudents_EmptyIsNotNil(t *testing.T) {
	db := newTestDB(t)

	students, err := db.ListStudents()
	if err != nil {
		t.Fatalf("ListStudents returned error: %v", err)
	}
	if students == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(students) != 0 {
		t.Fatalf("expected no rows, got %d", len(students))
	}
}

func TestUpdateStudent_ReplacesAllFields(t *testing.T) {
	db := newTestDB(t)

	created, err := db.CreateStudent("Ann", 20, "CS", "female")
	if err != nil {
		t.Fatalf("CreateStudent returned error: %v", err)
	}

	updated, err := db.UpdateStudent(created.ID, "Anna", 21, "Math", "female")
	if err != nil {
		t.Fatalf("UpdateStudent returned error: %v", err)
	}
	if updated == nil {
		t.Fatal("expected updated record")
	}
	if updated.ID != created.ID {
		t.Fatalf("expected id %d, got %d", created.ID, updated.ID)
	}

	saved, err := db.GetStudent(created.ID)
	if err != nil {
		t.Fatalf("GetStudent returned error: %v", err)
	}
	if saved.Name != "Anna" || saved.Age != 21 || saved.Course != "Math" || saved.Gender != "female" {
		t.Fatalf("expected all fields replaced, got %+v", saved)
	}
}

func TestUpdateStudent_MissingDoesNotCreate(t *testing.T) {
	db := newTestDB(t)

	updated, err := db.UpdateStudent(42, "Ghost", 99, "None", "other")
	if err != nil {
		t.Fatalf("UpdateStudent returned error: %v", err)
	}
	if updated != nil {
		t.Fatalf("expected nil for missing id, got %+v", updated)
	}

	students, err := db.ListStudents()
	if err != nil {
		t.Fatalf("ListStudents returned error: %v", err)
	}
	if len(students) != 0 {
		t.Fatalf("expected no rows, got %d", len(students))
	}
}

func TestDeleteStudent(t *testing.T) {
	db := newTestDB(t)

	created, err := db.CreateStudent("Ann", 20, "CS", "female")
	if err != nil {
		t.Fatalf("CreateStudent returned error: %v", err)
	}

	deleted, err := db.DeleteStudent(created.ID)
	if err != nil {
		t.Fatalf("DeleteStudent returned error: %v", err)
	}
	if !deleted {
		t.Fatal("expected delete to report a removed row")
	}

	student, err := db.GetStudent(created.ID)
	if err != nil {
		t.Fatalf("GetStudent returned error: %v", err)
	}
	if student != nil {
		t.Fatalf("expected row to be gone, got %+v", student)
	}

	deleted, err = db.DeleteStudent(created.ID)
	if err != nil {
		t.Fatalf("DeleteStudent returned error: %v", err)
	}
	if deleted {
		t.Fatal("expected delete of missing id to report no removed row")
	}
}

func TestListStudentsByGender_ExactMatch(t *testing.T) {
	db := newTestDB(t)

	seed := []struct {
		name, course, gender string
		age                  int
	}{
		{"Ann", "CS", "female", 20},
		{"Bob", "CS", "male", 22},
		{"Cal", "Math", "Female", 23}, // case differs, must not match "female"
	}
	for _, s := range seed {
		if _, err := db.CreateStudent(s.name, s.age, s.course, s.gender); err != nil {
			t.Fatalf("CreateStudent returned error: %v", err)
		}
	}

	students, err := db.ListStudentsByGender("female")
	if err != nil {
		t.Fatalf("ListStudentsByGender returned error: %v", err)
	}
	if len(students) != 1 || students[0].Name != "Ann" {
		t.Fatalf("expected only Ann, got %+v", students)
	}

	students, err = db.ListStudentsByGender("unknown")
	if err != nil {
		t.Fatalf("ListStudentsByGender returned error: %v", err)
	}
	if students == nil || len(students) != 0 {
		t.Fatalf("expected empty slice for no matches, got %+v", students)
	}
}

func TestListStudentsByCourse_ExactMatch(t *testing.T) {
	db := newTestDB(t)

	if _, err := db.CreateStudent("Ann", 20, "CS", "female"); err != nil {
		t.Fatalf("CreateStudent returned error: %v", err)
	}
	if _, err := db.CreateStudent("Bob", 22, "cs", "male"); err != nil {
		t.Fatalf("CreateStudent returned error: %v", err)
	}

	students, err := db.ListStudentsByCourse("CS")
	if err != nil {
		t.Fatalf("ListStudentsByCourse returned error: %v", err)
	}
	if len(students) != 1 || students[0].Name != "Ann" {
		t.Fatalf("expected only Ann for course CS, got %+v", students)
	}
}

func TestGetStudentByName_DuplicateReturnsOne(t *testing.T) {
	db := newTestDB(t)

	first, err := db.CreateStudent("Ann", 20, "CS", "female")
	if err != nil {
		t.Fatalf("CreateStudent returned error: %v", err)
	}
	second, err := db.CreateStudent("Ann", 25, "Math", "female")
	if err != nil {
		t.Fatalf("CreateStudent returned error: %v", err)
	}

	student, err := db.GetStudentByName("Ann")
	if err != nil {
		t.Fatalf("GetStudentByName returned error: %v", err)
	}
	if student == nil {
		t.Fatal("expected a match")
	}
	if student.ID != first.ID && student.ID != second.ID {
		t.Fatalf("expected one of ids %d/%d, got %d", first.ID, second.ID, student.ID)
	}

	missing, err := db.GetStudentByName("Zed")
	if err != nil {
		t.Fatalf("GetStudentByName returned error: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown name, got %+v", missing)
	}
}
