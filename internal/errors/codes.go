package errors

// Error code constants, format: CATEGORY_SPECIFIC_DETAIL.
// The storefront and back office map these codes to display messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized = "AUTH_UNAUTHORIZED"
	AuthTokenExpired = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid = "AUTH_TOKEN_INVALID"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND"
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Catalog (CATALOG_) ====================
	CatalogProductNotFound   = "CATALOG_PRODUCT_NOT_FOUND"
	CatalogCategoryNotFound  = "CATALOG_CATEGORY_NOT_FOUND"
	CatalogColorNotFound     = "CATALOG_COLOR_NOT_FOUND"
	CatalogLastDimension     = "CATALOG_LAST_DIMENSION"     // a product keeps at least one dimension
	CatalogLastVariant       = "CATALOG_LAST_VARIANT"       // a product keeps at least one variant
	CatalogDimensionInUse    = "CATALOG_DIMENSION_IN_USE"   // referenced by a variant
	CatalogInvalidHexCode    = "CATALOG_INVALID_HEX_CODE"   // color code must be #RRGGBB
	CatalogInvalidDraft      = "CATALOG_INVALID_DRAFT"
	CatalogInsufficientStock = "CATALOG_INSUFFICIENT_STOCK"

	// ==================== Discounts (DISCOUNT_) ====================
	DiscountNotFound        = "DISCOUNT_NOT_FOUND"
	DiscountNameRequired    = "DISCOUNT_NAME_REQUIRED"
	DiscountInvalidDates    = "DISCOUNT_INVALID_DATES"
	DiscountValueOutOfRange = "DISCOUNT_VALUE_OUT_OF_RANGE"
	DiscountNoCategories    = "DISCOUNT_NO_CATEGORIES"
	DiscountNoProducts      = "DISCOUNT_NO_PRODUCTS"

	// ==================== Coupons (COUPON_) ====================
	CouponNotFound     = "COUPON_NOT_FOUND"
	CouponCodeRequired = "COUPON_CODE_REQUIRED"
	CouponTypeRequired = "COUPON_TYPE_REQUIRED"
	CouponCodeExists   = "COUPON_CODE_EXISTS"
	CouponNotActive    = "COUPON_NOT_ACTIVE"
	CouponExhausted    = "COUPON_EXHAUSTED"

	// ==================== Cart / Orders ====================
	CartItemNotFound = "CART_ITEM_NOT_FOUND"
	CartEmpty        = "CART_EMPTY"
	OrderNotFound    = "ORDER_NOT_FOUND"

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)
