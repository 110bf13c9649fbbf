package errors

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// ErrorInfo pairs a stable code with a user-facing message.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts database and transport errors into a code and a
// message safe to show an administrator. Sensitive details stay out of
// the response; the raw error is expected to be logged by the caller.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Something went wrong",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	// GORM base errors
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// PostgreSQL constraint violations

	// Unique constraint (23505)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStr)
	}

	// Foreign key constraint (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStr, context)
	}

	// Not null constraint (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "A required field is missing",
		}
	}

	// Network / connectivity
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "Could not reach an external service. Please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

// ParseBindingError extracts per-field messages from a gin binding
// failure. Returns nil when the error is not a field validation error
// (for example a malformed JSON body).
func ParseBindingError(err error) map[string]string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return nil
	}

	fields := make(map[string]string, len(fieldErrors))
	for _, fe := range fieldErrors {
		switch fe.Tag() {
		case "required":
			fields[fe.Field()] = "This field is required"
		case "oneof":
			fields[fe.Field()] = "Must be one of: " + fe.Param()
		case "min":
			fields[fe.Field()] = "Must be at least " + fe.Param()
		case "max":
			fields[fe.Field()] = "Must be at most " + fe.Param()
		default:
			fields[fe.Field()] = "Invalid value"
		}
	}
	return fields
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "idx_discount_coupons_code") || strings.Contains(errLower, "coupon") {
		return ErrorInfo{
			Code:    CouponCodeExists,
			Message: "That coupon code is already in use",
		}
	}
	if strings.Contains(errLower, "idx_polish_colors_name") || strings.Contains(errLower, "polish_colors") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "A polish color with that name already exists",
		}
	}
	if strings.Contains(errLower, "idx_categories_name") || strings.Contains(errLower, "categories") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "A category with that name already exists",
		}
	}
	if strings.Contains(errLower, "pkey") || strings.Contains(errLower, "primary key") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "That record already exists. Please try again",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "That record already exists",
	}
}

func parseForeignKeyError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	// Deleting something still referenced elsewhere
	if strings.Contains(errLower, "still referenced") || strings.Contains(errLower, "is still referenced by") {
		if strings.Contains(context, "category") {
			return ErrorInfo{
				Code:    ResourceConflict,
				Message: "Products still use this category, so it cannot be deleted",
			}
		}
		if strings.Contains(context, "color") {
			return ErrorInfo{
				Code:    ResourceConflict,
				Message: "Products still use this polish color, so it cannot be deleted",
			}
		}
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "Other records still reference this one, so it cannot be deleted",
		}
	}

	// Inserting a reference to something that does not exist
	if strings.Contains(errLower, "category_id") {
		return ErrorInfo{
			Code:    CatalogCategoryNotFound,
			Message: "That category does not exist",
		}
	}
	if strings.Contains(errLower, "polish_color_id") {
		return ErrorInfo{
			Code:    CatalogColorNotFound,
			Message: "That polish color does not exist",
		}
	}
	if strings.Contains(errLower, "product_id") {
		return ErrorInfo{
			Code:    CatalogProductNotFound,
			Message: "That product does not exist",
		}
	}

	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "A referenced record could not be found",
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "product") {
		return "Product not found"
	}
	if strings.Contains(contextLower, "category") {
		return "Category not found"
	}
	if strings.Contains(contextLower, "color") {
		return "Polish color not found"
	}
	if strings.Contains(contextLower, "discount") {
		return "Discount not found"
	}
	if strings.Contains(contextLower, "coupon") {
		return "Coupon not found"
	}
	if strings.Contains(contextLower, "order") {
		return "Order not found"
	}
	if strings.Contains(contextLower, "cart") {
		return "Cart item not found"
	}

	return "The requested record could not be found"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "create") {
		return "Creation failed. Please try again later"
	}
	if strings.Contains(contextLower, "update") {
		return "Update failed. Please try again later"
	}
	if strings.Contains(contextLower, "delete") {
		return "Deletion failed. Please try again later"
	}

	return "Something went wrong. Please try again later"
}
