package errors

// Error code constants returned in API responses.
// Format: CATEGORY_SPECIFIC_DETAIL. Clients map these to display text.

const (
	// Authentication (AUTH_)
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"

	// Authorization (AUTHZ_)
	AuthzForbidden = "AUTHZ_FORBIDDEN"
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY"

	// Validation (VALIDATION_)
	ValidationInvalidInput    = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID       = "VALIDATION_INVALID_ID"
	ValidationInvalidQuantity = "VALIDATION_INVALID_QUANTITY"
	ValidationInvalidPrice    = "VALIDATION_INVALID_PRICE"
	ValidationRequired        = "VALIDATION_REQUIRED"

	// Resources (RESOURCE_)
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// Catalog (PRODUCT_)
	ProductNotFound   = "PRODUCT_NOT_FOUND"
	ProductSlugExists = "PRODUCT_SLUG_EXISTS"
	ProductOutOfStock = "PRODUCT_OUT_OF_STOCK"

	// Cart (CART_)
	CartItemNotFound = "CART_ITEM_NOT_FOUND"
	CartEmpty        = "CART_EMPTY"

	// Orders (ORDER_)
	OrderNotFound      = "ORDER_NOT_FOUND"
	OrderInvalidStatus = "ORDER_INVALID_STATUS"

	// Checkout extras (CHECKOUT_)
	CouponInvalid    = "CHECKOUT_COUPON_INVALID"
	ShippingNotFound = "CHECKOUT_SHIPPING_NOT_FOUND"

	// Internal (INTERNAL_)
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
