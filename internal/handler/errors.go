package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/careerpath/admin-backend/internal/apperrors"
	"github.com/careerpath/admin-backend/internal/docstore"
	"github.com/careerpath/admin-backend/internal/response"
	"github.com/careerpath/admin-backend/internal/validator"
)

type errorMapping struct {
	target error
	status int
	code   response.ErrCode
}

// errorTable is matched in order; specific errors precede their base class.
var errorTable = []errorMapping{
	{apperrors.ErrInstitutionNotFound, http.StatusNotFound, response.ErrInstitutionNotFound},
	{apperrors.ErrFacultyNotFound, http.StatusNotFound, response.ErrFacultyNotFound},
	{apperrors.ErrCourseNotFound, http.StatusNotFound, response.ErrCourseNotFound},
	{apperrors.ErrCompanyNotFound, http.StatusNotFound, response.ErrCompanyNotFound},
	{apperrors.ErrUserNotFound, http.StatusNotFound, response.ErrUserNotFound},
	{apperrors.ErrAdmissionNotFound, http.StatusNotFound, response.ErrAdmissionNotFound},
	{apperrors.ErrNotFound, http.StatusNotFound, response.ErrNotFound},

	{apperrors.ErrInstitutionHasFaculties, http.StatusConflict, response.ErrDependencyExists},
	{apperrors.ErrFacultyHasCourses, http.StatusConflict, response.ErrDependencyExists},
	{apperrors.ErrConflict, http.StatusConflict, response.ErrConflict},
	{docstore.ErrAlreadyExists, http.StatusConflict, response.ErrConflict},

	{apperrors.ErrEmptyUpdate, http.StatusBadRequest, response.ErrEmptyUpdate},
	{apperrors.ErrNoAdmissionIDs, http.StatusBadRequest, response.ErrNoAdmissionIDs},
	{apperrors.ErrTooManyIDs, http.StatusBadRequest, response.ErrTooManyIDs},
	{apperrors.ErrValidation, http.StatusBadRequest, response.ErrValidation},

	{context.DeadlineExceeded, http.StatusGatewayTimeout, response.ErrTimeout},
}

// respondError writes the envelope for err. Errors outside the domain taxonomy
// are logged with the request logger and reported as INTERNAL_ERROR.
func respondError(c *gin.Context, err error) {
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			if m.status >= http.StatusInternalServerError {
				zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("Request timed out")
			}
			response.Fail(c, m.status, m.code)
			return
		}
	}

	zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("Request failed")
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}

// bindJSON decodes and validates the body into dst. On failure it writes the
// 400 response and returns false.
func bindJSON(c *gin.Context, dst any) bool {
	if fields := validator.Bind(c, dst); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return false
	}
	return true
}

// created is the payload returned by create endpoints.
type created struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
