package database

import (
	"database/sql"
	"fmt"
)

// StudentRecord represents a student row stored in the database.
type StudentRecord struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Course string `json:"course"`
	Gender string `json:"gender"`
}

// CreateStudent inserts a new student record and returns it with the
// assigned id.
func (db *DB) CreateStudent(name string, age int, course, gender string) (*StudentRecord, error) {
	result, err := db.Exec(`
		INSERT INTO students (name, age, course, gender)
		VALUES (?, ?, ?, ?)
	`, name, age, course, gender)
	if err != nil {
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get student id: %w", err)
	}

	return &StudentRecord{
		ID:     id,
		Name:   name,
		Age:    age,
		Course: course,
		Gender: gender,
	}, nil
}

// GetStudent retrieves a student by id. Returns nil without error when no
// row matches.
func (db *DB) GetStudent(id int64) (*StudentRecord, error) {
	student := &StudentRecord{}
	err := db.QueryRow(`
		SELECT id, name, age, course, gender
		FROM students WHERE id = ?
	`, id).Scan(&student.ID, &student.Name, &student.Age, &student.Course, &student.Gender)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return student, nil
}

// ListStudents returns all student records.
func (db *DB) ListStudents() ([]StudentRecord, error) {
	return db.listStudents("SELECT id, name, age, course, gender FROM students")
}

// ListStudentsByGender returns all students whose gender matches exactly.
func (db *DB) ListStudentsByGender(gender string) ([]StudentRecord, error) {
	return db.listStudents("SELECT id, name, age, course, gender FROM students WHERE gender = ?", gender)
}

// ListStudentsByCourse returns all students whose course matches exactly.
func (db *DB) ListStudentsByCourse(course string) ([]StudentRecord, error) {
	return db.listStudents("SELECT id, name, age, course, gender FROM students WHERE course = ?", course)
}

func (db *DB) listStudents(query string, args ...any) ([]StudentRecord, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	// Non-nil so an empty result serializes as [] rather than null
	students := []StudentRecord{}
	for rows.Next() {
		var s StudentRecord
		if err := rows.Scan(&s.ID, &s.Name, &s.Age, &s.Course, &s.Gender); err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate students: %w", err)
	}
	return students, nil
}

// GetStudentByName retrieves the first student whose name matches exactly.
// Names are not unique; which row wins is left to the storage engine.
// Returns nil without error when no row matches.
func (db *DB) GetStudentByName(name string) (*StudentRecord, error) {
	student := &StudentRecord{}
	err := db.QueryRow(`
		SELECT id, name, age, course, gender
		FROM students WHERE name = ? LIMIT 1
	`, name).Scan(&student.ID, &student.Name, &student.Age, &student.Course, &student.Gender)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get student by name: %w", err)
	}
	return student, nil
}

// UpdateStudent replaces all non-id fields of an existing student and
// returns the updated record. Returns nil without error when no row matches.
func (db *DB) UpdateStudent(id int64, name string, age int, course, gender string) (*StudentRecord, error) {
	result, err := db.Exec(`
		UPDATE students SET name = ?, age = ?, course = ?, gender = ? WHERE id = ?
	`, name, age, course, gender, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update student: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}

	return &StudentRecord{
		ID:     id,
		Name:   name,
		Age:    age,
		Course: course,
		Gender: gender,
	}, nil
}

// DeleteStudent removes a student by id. Returns false without error when
// no row matches.
func (db *DB) DeleteStudent(id int64) (bool, error) {
	result, err := db.Exec("DELETE FROM students WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete student: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return affected > 0, nil
}
