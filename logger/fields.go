package logger

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldRoute      = "route"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldTenantID   = "tenant_id"
	FieldUserID     = "user_id"
	FieldBillingID  = "billing_id"
	FieldSubID      = "subscription_id"
	FieldStatus     = "status"
	FieldOutcome    = "outcome"
	FieldRows       = "rows"
)

const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentStorage   = "storage"
	ComponentBilling   = "billing"
	ComponentWebhook   = "webhook"
	ComponentWorker    = "worker"
	ComponentRateLimit = "rate_limit"
)

const (
	OpCreate   = "create"
	OpList     = "list"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpSync     = "sync"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
