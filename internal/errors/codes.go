package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// The storefront client maps these codes to display messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // token expired
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // malformed or forged token
	AuthNoActiveSession    = "AUTH_NO_ACTIVE_SESSION"   // operation needs a session

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // bad input
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // non-numeric or unknown id
	ValidationRequired     = "VALIDATION_REQUIRED"      // missing required field
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE" // value out of range

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound = "RESOURCE_NOT_FOUND" // resource missing

	// ==================== Catalog (CATALOG_) ====================
	CatalogNotLoaded      = "CATALOG_NOT_LOADED"       // catalog not loaded yet
	CatalogInvalidSortKey = "CATALOG_INVALID_SORT_KEY" // unknown sort key

	// ==================== Cart (CART_) ====================
	CartInvalidQuantity = "CART_INVALID_QUANTITY" // quantity below one

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError = "INTERNAL_SERVER_ERROR" // unexpected server error
	InternalStoreError  = "INTERNAL_STORE_ERROR"  // key-value store failure
)
