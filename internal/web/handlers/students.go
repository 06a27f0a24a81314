package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Generic client-facing messages. Storage errors are logged server-side
// and never echoed to the caller.
const (
	msgDatabaseError   = "Database error"
	msgStudentNotFound = "Student not found"
	msgStudentDeleted  = "Student deleted"
	msgInvalidBody     = "Invalid request body"
)

// studentPayload is the request body for create and update operations.
// Field constraints are enforced by the database schema, not here.
type studentPayload struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Course string `json:"course"`
	Gender string `json:"gender"`
}

// StudentCreate handles POST /students
func (h *Handlers) StudentCreate(w http.ResponseWriter, r *http.Request) {
	var payload studentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.jsonError(w, msgInvalidBody, http.StatusBadRequest)
		return
	}

	student, err := h.db.CreateStudent(payload.Name, payload.Age, payload.Course, payload.Gender)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create student")
		h.jsonError(w, msgDatabaseError, http.StatusInternalServerError)
		return
	}

	log.Info().Int64("id", student.ID).Msg("Student created")
	h.writeJSON(w, http.StatusCreated, student)
}

// StudentList handles GET /students
func (h *Handlers) StudentList(w http.ResponseWriter, r *http.Request) {
	students, err := h.db.ListStudents()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list students")
		h.jsonError(w, msgDatabaseError, http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, students)
}

// StudentGet handles GET /students/{id}
func (h *Handlers) StudentGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.studentID(w, r)
	if !ok {
		return
	}

	student, err := h.db.GetStudent(id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("Failed to get student")
		h.jsonError(w, msgDatabaseError, http.StatusInternalServerError)
		return
	}
	if student == nil {
		h.jsonError(w, msgStudentNotFound, http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, student)
}

// StudentUpdate handles PUT /students/{id}
// Replaces all four fields of the matching record; partial updates are
// not supported.
func (h *Handlers) StudentUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.studentID(w, r)
	if !ok {
		return
	}

	var payload studentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.jsonError(w, msgInvalidBody, http.StatusBadRequest)
		return
	}

	student, err := h.db.UpdateStudent(id, payload.Name, payload.Age, payload.Course, payload.Gender)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("Failed to update student")
		h.jsonError(w, msgDatabaseError, http.StatusInternalServerError)
		return
	}
	if student == nil {
		h.jsonError(w, msgStudentNotFound, http.StatusNotFound)
		return
	}

	log.Info().Int64("id", id).Msg("Student updated")
	h.writeJSON(w, http.StatusOK, student)
}

// StudentDelete handles DELETE /students/{id}
func (h *Handlers) StudentDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.studentID(w, r)
	if !ok {
		return
	}

	deleted, err := h.db.DeleteStudent(id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("Failed to delete student")
		h.jsonError(w, msgDatabaseError, http.StatusInternalServerError)
		return
	}
	if !deleted {
		h.jsonError(w, msgStudentNotFound, http.StatusNotFound)
		return
	}

	log.Info().Int64("id", id).Msg("Student deleted")
	h.jsonMessage(w, msgStudentDeleted)
}

// StudentListByGender handles GET /students/gender/{gender}
func (h *Handlers) StudentListByGender(w http.ResponseWriter, r *http.Request) {
	gender := chi.URLParam(r, "gender")

	students, err := h.db.ListStudentsByGender(gender)
	if err != nil {
		log.Error().Err(err).Str("gender", gender).Msg("Failed to list students by gender")
		h.jsonError(w, msgDatabaseError, http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, students)
}

// StudentListByCourse handles GET /students/course/{course}
func (h *Handlers) StudentListByCourse(w http.ResponseWriter, r *http.Request) {
	course := chi.URLParam(r, "course")

	students, err := h.db.ListStudentsByCourse(course)
	if err != nil {
		log.Error().Err(err).Str("course", course).Msg("Failed to list students by course")
		h.jsonError(w, msgDatabaseError, http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, students)
}

// StudentGetByName handles GET /students/name/{name}
// Names are not unique; when several records share the name this returns
// whichever one storage yields first.
func (h *Handlers) StudentGetByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	student, err := h.db.GetStudentByName(name)
	if err != nil {
		log.Error().Err(err).Str("name", name).Msg("Failed to get student by name")
		h.jsonError(w, msgDatabaseError, http.StatusInternalServerError)
		return
	}
	if student == nil {
		h.jsonError(w, msgStudentNotFound, http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, student)
}

// studentID extracts and parses the {id} path parameter. A value that is
// not an integer matches no record, so it reports not-found rather than a
// distinct client error.
func (h *Handlers) studentID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.jsonError(w, msgStudentNotFound, http.StatusNotFound)
		return 0, false
	}
	return id, true
}
