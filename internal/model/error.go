package model

import "errors"

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeMissingField     = "MISSING_FIELD"
	ErrCodeImageRequired    = "IMAGE_REQUIRED"
	ErrCodeInvalidImage     = "INVALID_IMAGE"
	ErrCodeUserNotFound     = "USER_NOT_FOUND"
	ErrCodeInvalidDaysCount = "INVALID_DAYS_COUNT"
	ErrCodeInvalidLimit     = "INVALID_LIMIT"
	ErrCodeInvalidDate      = "INVALID_DATE"
	ErrCodeInvalidMember    = "INVALID_FAMILY_MEMBER"
	ErrCodeInvalidCalories  = "INVALID_CALORIE_GOAL"
	ErrCodeAnalysisFailed   = "ANALYSIS_FAILED"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// DomainError is a business-logic failure with a stable code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrImageRequired    = NewDomainError(ErrCodeImageRequired, "Either imageBuffer or imageUrl is required")
	ErrInvalidImage     = NewDomainError(ErrCodeInvalidImage, "Image buffer is not valid base64 image data")
	ErrInvalidImageURL  = NewDomainError(ErrCodeInvalidImage, "imageUrl must be a public https URL")
	ErrUserIDRequired   = NewDomainError(ErrCodeMissingField, "userId is required")
	ErrNameRequired     = NewDomainError(ErrCodeMissingField, "name is required")
	ErrUserNotFound     = NewDomainError(ErrCodeUserNotFound, "User not found")
	ErrInvalidDaysCount = NewDomainError(ErrCodeInvalidDaysCount, "daysCount must be between 1 and 30")
	ErrInvalidLimit     = NewDomainError(ErrCodeInvalidLimit, "limit must be between 1 and 500")
	ErrInvalidDate      = NewDomainError(ErrCodeInvalidDate, "date must use the YYYY-MM-DD format")
	ErrInvalidMember    = NewDomainError(ErrCodeInvalidMember, "Family member requires name, gender, relationship and an age between 0 and 120")
	ErrInvalidCalories  = NewDomainError(ErrCodeInvalidCalories, "calorieGoal must be between 1200 and 4000")
	ErrAnalysisFailed   = NewDomainError(ErrCodeAnalysisFailed, "Food analysis failed")
)

// AsDomainError unwraps err into a DomainError when one is present in its chain.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
