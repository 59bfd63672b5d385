package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerpath/admin-backend/internal/model"
	"github.com/careerpath/admin-backend/internal/response"
	"github.com/careerpath/admin-backend/internal/service"
)

// AdmissionHandler handles admission listing and publishing.
type AdmissionHandler struct {
	admissionService *service.AdmissionService
}

// NewAdmissionHandler creates a new AdmissionHandler.
func NewAdmissionHandler(admissionService *service.AdmissionService) *AdmissionHandler {
	return &AdmissionHandler{admissionService: admissionService}
}

// ListAdmissions godoc
// GET /api/admin/admissions
func (h *AdmissionHandler) ListAdmissions(c *gin.Context) {
	admissions, err := h.admissionService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"count": len(admissions), "admissions": admissions})
}

// PublishAdmissions godoc
// POST /api/admin/admissions/publish
// All listed admissions are published together or not at all.
func (h *AdmissionHandler) PublishAdmissions(c *gin.Context) {
	var req model.PublishAdmissionsRequest
	if !bindJSON(c, &req) {
		return
	}

	count, err := h.admissionService.Publish(c.Request.Context(), req.AdmissionIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Admissions published successfully", "count": count})
}
