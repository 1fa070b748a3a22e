package errors

// Error code constants, format: CATEGORY_SPECIFIC_DETAIL.
// Clients map these codes to their own messages.

const (
	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // malformed input
	ValidationInvalidSlug  = "VALIDATION_INVALID_SLUG"  // slug fails canonical pattern
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // malformed id parameter

	// ==================== Product (PRODUCT_) ====================
	ProductNotFound            = "PRODUCT_NOT_FOUND"             // product missing or deleted
	ProductSlugExists          = "PRODUCT_SLUG_EXISTS"           // slug taken by a live product
	ProductVariantsNeedOptions = "PRODUCT_VARIANTS_NEED_OPTIONS" // variants without options
	ProductUnknownOption       = "PRODUCT_UNKNOWN_OPTION"        // variant selection names no option
	ProductUnknownOptionValue  = "PRODUCT_UNKNOWN_OPTION_VALUE"  // selection value not in option

	// ==================== Lookup entities (RESOURCE_) ====================
	ResourceNotFound       = "RESOURCE_NOT_FOUND"       // generic missing resource
	TagNotFound            = "TAG_NOT_FOUND"            // tag id does not exist
	MaterialNotFound       = "MATERIAL_NOT_FOUND"       // material id does not exist
	CategoryNotFound       = "CATEGORY_NOT_FOUND"       // category id does not exist
	ShippingOptionNotFound = "SHIPPING_OPTION_NOT_FOUND" // shipping option id does not exist

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // unexpected failure
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // store failure
)
