package log

// Common field names for structured logging.
const (
	FieldComponent     = "component"
	FieldRequestID     = "request_id"
	FieldClientIP      = "client_ip"
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldStatusCode    = "status_code"
	FieldDuration      = "duration_ms"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldTransactionID = "transaction_id"
	FieldWalletID      = "wallet_id"
	FieldCategoryID    = "category_id"
	FieldAmount        = "amount"
	FieldNature        = "nature"
)

// Standard component names.
const (
	ComponentApp    = "app"
	ComponentHTTP   = "http"
	ComponentLedger = "ledger"
)

// Standard operation names.
const (
	OpCreate   = "create"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpParse    = "parse"
	OpCommit   = "commit"
	OpTransfer = "transfer"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
