package extractor

import "fmt"

// ConfigError means the completion service itself was unreachable or
// unauthenticated. Fatal for the AI path; the deterministic parser is
// unaffected.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("completion service unavailable: %v", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// FormatError means the model returned something that is not JSON even after
// stripping code fences. Raw keeps the original content so the caller can
// surface it for manual correction.
type FormatError struct {
	Raw string
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("failed to parse model response as JSON: %v", e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// SchemaError means the JSON parsed but required fields are missing or have
// the wrong type.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return "invalid structure returned: " + e.Reason
}
