package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerpath/admin-backend/internal/model"
	"github.com/careerpath/admin-backend/internal/response"
	"github.com/careerpath/admin-backend/internal/service"
)

// FacultyHandler handles faculties and their courses.
type FacultyHandler struct {
	facultyService *service.FacultyService
}

// NewFacultyHandler creates a new FacultyHandler.
func NewFacultyHandler(facultyService *service.FacultyService) *FacultyHandler {
	return &FacultyHandler{facultyService: facultyService}
}

// ListFaculties godoc
// GET /api/admin/institutions/:id/faculties
func (h *FacultyHandler) ListFaculties(c *gin.Context) {
	faculties, err := h.facultyService.ListByInstitution(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"count": len(faculties), "faculties": faculties})
}

// CreateFaculty godoc
// POST /api/admin/institutions/:id/faculties
func (h *FacultyHandler) CreateFaculty(c *gin.Context) {
	var req model.CreateFacultyRequest
	if !bindJSON(c, &req) {
		return
	}

	id, err := h.facultyService.Create(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, created{ID: id, Message: "Faculty added successfully"})
}

// GetFaculty godoc
// GET /api/admin/faculties/:id
func (h *FacultyHandler) GetFaculty(c *gin.Context) {
	faculty, err := h.facultyService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"faculty": faculty})
}

// UpdateFaculty godoc
// PUT /api/admin/faculties/:id
func (h *FacultyHandler) UpdateFaculty(c *gin.Context) {
	var req model.UpdateFacultyRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.facultyService.Update(c.Request.Context(), c.Param("id"), req); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, response.Message{Message: "Faculty updated successfully"})
}

// DeleteFaculty godoc
// DELETE /api/admin/faculties/:id
// Fails with 409 while the faculty still has courses.
func (h *FacultyHandler) DeleteFaculty(c *gin.Context) {
	if err := h.facultyService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, response.Message{Message: "Faculty deleted successfully"})
}

// AddCourse godoc
// POST /api/admin/faculties/:id/courses
func (h *FacultyHandler) AddCourse(c *gin.Context) {
	var req model.CreateCourseRequest
	if !bindJSON(c, &req) {
		return
	}

	course, err := h.facultyService.AddCourse(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, created{ID: course.ID, Message: "Course added successfully"})
}

// DeleteCourse godoc
// DELETE /api/admin/faculties/:id/courses/:courseId
func (h *FacultyHandler) DeleteCourse(c *gin.Context) {
	if err := h.facultyService.DeleteCourse(c.Request.Context(), c.Param("id"), c.Param("courseId")); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, response.Message{Message: "Course deleted successfully"})
}

// ReconcileFaculty godoc
// POST /api/admin/faculties/:id/reconcile
// Rebuilds the faculty's embedded course list from the courses collection.
func (h *FacultyHandler) ReconcileFaculty(c *gin.Context) {
	changed, err := h.facultyService.Reconcile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	msg := "Faculty courses already consistent"
	if changed {
		msg = "Faculty courses reconciled"
	}
	response.Success(c, http.StatusOK, gin.H{"changed": changed, "message": msg})
}
