package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrTokenRequired ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid  ErrCode = "TOKEN_INVALID"
	ErrTokenExpired  ErrCode = "TOKEN_EXPIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrAccountNotFound ErrCode = "ACCOUNT_NOT_FOUND"
	ErrAdminAccessOnly ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"
	ErrEmptyUpdate    ErrCode = "EMPTY_UPDATE"
	ErrNoAdmissionIDs ErrCode = "NO_ADMISSION_IDS"
	ErrTooManyIDs     ErrCode = "TOO_MANY_IDS"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound            ErrCode = "NOT_FOUND"
	ErrInstitutionNotFound ErrCode = "INSTITUTION_NOT_FOUND"
	ErrFacultyNotFound     ErrCode = "FACULTY_NOT_FOUND"
	ErrCourseNotFound      ErrCode = "COURSE_NOT_FOUND"
	ErrCompanyNotFound     ErrCode = "COMPANY_NOT_FOUND"
	ErrUserNotFound        ErrCode = "USER_NOT_FOUND"
	ErrAdmissionNotFound   ErrCode = "ADMISSION_NOT_FOUND"
	ErrConflict            ErrCode = "CONFLICT"
	ErrDependencyExists    ErrCode = "DEPENDENCY_EXISTS"

	// ─── Idempotency ───────────────────────────────────────────────────
	ErrIdempotencyInFlight ErrCode = "IDEMPOTENCY_IN_FLIGHT"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrTimeout  ErrCode = "REQUEST_TIMEOUT"
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrTokenRequired:
		return "Authentication token is required."
	case ErrTokenInvalid:
		return "Invalid authentication token."
	case ErrTokenExpired:
		return "Authentication token has expired."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrAccountNotFound:
		return "User not found."
	case ErrAdminAccessOnly:
		return "Access denied. Admins only."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPayload:
		return "Invalid request payload."
	case ErrEmptyUpdate:
		return "No updatable fields provided."
	case ErrNoAdmissionIDs:
		return "No admission IDs provided."
	case ErrTooManyIDs:
		return "Too many admission IDs in one request."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrInstitutionNotFound:
		return "Institution not found."
	case ErrFacultyNotFound:
		return "Faculty not found."
	case ErrCourseNotFound:
		return "Course not found."
	case ErrCompanyNotFound:
		return "Company not found."
	case ErrUserNotFound:
		return "User not found."
	case ErrAdmissionNotFound:
		return "Admission not found."
	case ErrConflict:
		return "Resource already exists."
	case ErrDependencyExists:
		return "Cannot delete: the resource still has dependent records."

	// ─── Idempotency ───────────────────────────────────────────────────
	case ErrIdempotencyInFlight:
		return "A request with this idempotency key is still in progress."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrTimeout:
		return "The request took too long to complete."
	case ErrInternal:
		return "Internal server error."
	default:
		return "An unexpected error occurred."
	}
}
