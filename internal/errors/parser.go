package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ErrorInfo is a parsed error: a code from codes.go plus a message safe to
// show to clients.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts storage-layer errors into client-safe codes without
// leaking driver details. Postgres errors are matched by SQLSTATE when the
// driver exposes one, falling back to message inspection otherwise (the
// sqlite test driver, wrapped errors).
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "An internal error occurred"}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: notFoundMessage(context)}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return duplicateKeyInfo(string(pqErr.Constraint) + " " + pqErr.Detail)
		case "23503": // foreign_key_violation
			return ErrorInfo{Code: ResourceConflict, Message: "Related data prevents this operation"}
		case "23502": // not_null_violation
			return ErrorInfo{Code: ValidationRequired, Message: "A required field is missing"}
		case "23514": // check_violation
			return ErrorInfo{Code: ValidationInvalidInput, Message: "Invalid input"}
		}
	}

	errStr := strings.ToLower(err.Error())

	if strings.Contains(errStr, "duplicate key") || strings.Contains(errStr, "unique constraint") {
		return duplicateKeyInfo(errStr)
	}
	if strings.Contains(errStr, "foreign key constraint") {
		return ErrorInfo{Code: ResourceConflict, Message: "Related data prevents this operation"}
	}
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") {
		return ErrorInfo{Code: InternalDatabaseError, Message: "Storage is unavailable. Please try again later"}
	}

	return ErrorInfo{Code: InternalServerError, Message: "An internal error occurred. Please try again later"}
}

// ParseAndRespond parses a storage error and writes the response. The given
// status is a fallback; parsed not-found and conflict errors override it.
func ParseAndRespond(c *gin.Context, statusCode int, err error, context string) {
	info := ParseError(err, context)

	switch info.Code {
	case ResourceNotFound:
		statusCode = http.StatusNotFound
	case ResourceAlreadyExists, ResourceConflict, AuthEmailAlreadyExists, ProductSlugExists:
		statusCode = http.StatusConflict
	case ValidationRequired, ValidationInvalidInput:
		statusCode = http.StatusBadRequest
	}

	RespondWithError(c, statusCode, info.Code, info.Message)
}

func duplicateKeyInfo(detail string) ErrorInfo {
	detail = strings.ToLower(detail)

	if strings.Contains(detail, "email") {
		return ErrorInfo{Code: AuthEmailAlreadyExists, Message: "Email is already registered"}
	}
	if strings.Contains(detail, "slug") {
		return ErrorInfo{Code: ProductSlugExists, Message: "Product slug is already in use"}
	}
	if strings.Contains(detail, "order_number") {
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "Order number collision. Please retry"}
	}
	if strings.Contains(detail, "code") {
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "Coupon code already exists"}
	}
	return ErrorInfo{Code: ResourceAlreadyExists, Message: "Record already exists"}
}

func notFoundMessage(context string) string {
	context = strings.ToLower(context)

	switch {
	case strings.Contains(context, "product"):
		return "Product not found"
	case strings.Contains(context, "cart"):
		return "Cart item not found"
	case strings.Contains(context, "order"):
		return "Order not found"
	case strings.Contains(context, "user"):
		return "User not found"
	case strings.Contains(context, "shipping"):
		return "Shipping option not found"
	case strings.Contains(context, "coupon"):
		return "Coupon not found"
	}
	return "Requested record not found"
}
