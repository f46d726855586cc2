package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (E001-E019)
	// ============================================

	"E001": {
		Category: CategoryRuntime,
		Message:  "Hook called outside component evaluation",
		Detail:   "UseState and UseEffect must be called while a root evaluates a function or stateful component.",
		DocURL:   "https://weft.dev/docs/errors/E001",
	},
	"E002": {
		Category: CategoryHost,
		Message:  "Unknown host node",
		Detail:   "The platform was handed a node it did not create.",
		DocURL:   "https://weft.dev/docs/errors/E002",
	},
	"E010": {
		Category: CategoryRuntime,
		Message:  "Scheduler closed",
		Detail:   "Work was posted to a frame loop that has stopped running.",
		DocURL:   "https://weft.dev/docs/errors/E010",
	},

	// ============================================
	// Protocol Errors (E060-E079)
	// ============================================

	"E060": {
		Category: CategoryProtocol,
		Message:  "WebSocket upgrade failed",
		Detail:   "The preview client could not open a live connection.",
		DocURL:   "https://weft.dev/docs/errors/E060",
	},
	"E061": {
		Category: CategoryProtocol,
		Message:  "Invalid client message",
		Detail:   "A message from the preview client could not be decoded.",
		DocURL:   "https://weft.dev/docs/errors/E061",
	},
	"E062": {
		Category: CategoryHost,
		Message:  "Unknown event target",
		Detail:   "The event names a node that is not mounted or has no listener for it.",
		DocURL:   "https://weft.dev/docs/errors/E062",
	},

	// ============================================
	// Storage Errors (E100-E119)
	// ============================================

	"E100": {
		Category: CategoryStorage,
		Message:  "Snapshot store unavailable",
		Detail:   "The snapshot backend could not be opened.",
		DocURL:   "https://weft.dev/docs/errors/E100",
	},
	"E101": {
		Category: CategoryStorage,
		Message:  "Snapshot write failed",
		DocURL:   "https://weft.dev/docs/errors/E101",
	},
	"E102": {
		Category: CategoryStorage,
		Message:  "Snapshot not found",
		DocURL:   "https://weft.dev/docs/errors/E102",
	},
	"E103": {
		Category: CategoryStorage,
		Message:  "Snapshot read failed",
		DocURL:   "https://weft.dev/docs/errors/E103",
	},

	// ============================================
	// Config Errors (E120-E149)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Failed to read configuration",
		Detail:   "The configuration file could not be read or parsed.",
		DocURL:   "https://weft.dev/docs/errors/E120",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		DocURL:   "https://weft.dev/docs/errors/E122",
	},
	"E141": {
		Category: CategoryConfig,
		Message:  "Configuration not found",
		Detail:   "No weft.json or weft.yaml was found.",
		DocURL:   "https://weft.dev/docs/errors/E141",
	},

	// ============================================
	// CLI Errors (E150-E169)
	// ============================================

	"E150": {
		Category: CategoryCLI,
		Message:  "Unknown demo app",
		DocURL:   "https://weft.dev/docs/errors/E150",
	},
}

// Lookup returns the template for a code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Codes returns every registered code.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}
