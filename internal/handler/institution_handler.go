package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerpath/admin-backend/internal/model"
	"github.com/careerpath/admin-backend/internal/response"
	"github.com/careerpath/admin-backend/internal/service"
)

// InstitutionHandler handles institution management.
type InstitutionHandler struct {
	institutionService *service.InstitutionService
}

// NewInstitutionHandler creates a new InstitutionHandler.
func NewInstitutionHandler(institutionService *service.InstitutionService) *InstitutionHandler {
	return &InstitutionHandler{institutionService: institutionService}
}

// ListInstitutions godoc
// GET /api/admin/institutions
func (h *InstitutionHandler) ListInstitutions(c *gin.Context) {
	institutions, err := h.institutionService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"count": len(institutions), "institutions": institutions})
}

// GetInstitution godoc
// GET /api/admin/institutions/:id
func (h *InstitutionHandler) GetInstitution(c *gin.Context) {
	institution, err := h.institutionService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"institution": institution})
}

// CreateInstitution godoc
// POST /api/admin/institutions
func (h *InstitutionHandler) CreateInstitution(c *gin.Context) {
	var req model.CreateInstitutionRequest
	if !bindJSON(c, &req) {
		return
	}

	id, err := h.institutionService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, created{ID: id, Message: "Institution added successfully"})
}

// UpdateInstitution godoc
// PUT /api/admin/institutions/:id
// Partial update of name, location, type and description.
func (h *InstitutionHandler) UpdateInstitution(c *gin.Context) {
	var req model.UpdateInstitutionRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.institutionService.Update(c.Request.Context(), c.Param("id"), req); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, response.Message{Message: "Institution updated successfully"})
}

// DeleteInstitution godoc
// DELETE /api/admin/institutions/:id
// Fails with 409 while the institution still has faculties.
func (h *InstitutionHandler) DeleteInstitution(c *gin.Context) {
	if err := h.institutionService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, response.Message{Message: "Institution deleted successfully"})
}
