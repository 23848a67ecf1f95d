package config

type ConfigInitError struct {
	msg string
}

func (e *ConfigInitError) Error() string {
	return e.msg
}

// UnknownFieldError is returned by Set for a field name that the settings
// record does not expose.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return "unknown settings field: " + e.Field
}
