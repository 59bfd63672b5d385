package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerpath/admin-backend/internal/model"
	"github.com/careerpath/admin-backend/internal/response"
	"github.com/careerpath/admin-backend/internal/service"
)

// CompanyHandler handles company review.
type CompanyHandler struct {
	companyService *service.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(companyService *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// ListCompanies godoc
// GET /api/admin/companies
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	companies, err := h.companyService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"count": len(companies), "companies": companies})
}

// ApproveCompany godoc
// PATCH /api/admin/companies/:id/approve
// :id is a document ID or, failing that, an exact company name.
func (h *CompanyHandler) ApproveCompany(c *gin.Context) {
	match, err := h.companyService.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, statusChanged("approved", match))
}

// SuspendCompany godoc
// PATCH /api/admin/companies/:id/suspend
// :id is a document ID or, failing that, an exact company name.
func (h *CompanyHandler) SuspendCompany(c *gin.Context) {
	match, err := h.companyService.Suspend(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, statusChanged("suspended", match))
}

func statusChanged(verb string, match model.CompanyMatch) gin.H {
	by := "ID"
	if match == model.CompanyMatchByName {
		by = "name"
	}
	return gin.H{
		"message": "Company " + verb + " successfully (by " + by + ")",
		"matched": match,
	}
}
