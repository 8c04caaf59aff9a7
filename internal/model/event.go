package model

// Event log levels.
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event log categories.
const (
	EventCategoryAuth       = "auth"
	EventCategoryPage       = "page"
	EventCategoryUser       = "user"
	EventCategoryPermission = "permission"
	EventCategorySystem     = "system"
)
