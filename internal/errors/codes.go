package errors

// Error code constants, format: CATEGORY_SPECIFIC_DETAIL.
// The frontend maps these codes to display messages.

const (
	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidDate   = "VALIDATION_INVALID_DATE"
	ValidationInvalidAmount = "VALIDATION_INVALID_AMOUNT"
	ValidationInvalidPeriod = "VALIDATION_INVALID_PERIOD"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Deductee (DEDUCTEE_) ====================
	DeducteeNotFound        = "DEDUCTEE_NOT_FOUND"
	DeducteeInvalidCategory = "DEDUCTEE_INVALID_CATEGORY"

	// ==================== Transaction (TRANSACTION_) ====================
	TransactionNotFound = "TRANSACTION_NOT_FOUND"

	// ==================== Challan (CHALLAN_) ====================
	ChallanNotFound         = "CHALLAN_NOT_FOUND"
	ChallanPeriodFiled      = "CHALLAN_PERIOD_ALREADY_FILED"
	ChallanMissingReceiptNo = "CHALLAN_MISSING_RECEIPT_NO"

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Resource (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
