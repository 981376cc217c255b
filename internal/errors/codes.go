package errors

const (
	// System errors
	ErrInternal        ErrorCode = "internal_error"
	ErrInvalidArgument ErrorCode = "invalid_argument"

	// Configuration errors
	ErrReadConfig  ErrorCode = "read_config_failed"
	ErrWriteConfig ErrorCode = "write_config_failed"

	// Dispatch errors
	ErrUnknownCommand   ErrorCode = "unknown_command"
	ErrDuplicateCommand ErrorCode = "duplicate_command"

	// Inference errors
	ErrInferenceRequest ErrorCode = "inference_request_failed"
	ErrInferenceDecode  ErrorCode = "inference_decode_failed"
	ErrInferenceStatus  ErrorCode = "inference_status_failed"

	// Host errors
	ErrHostInfo ErrorCode = "host_info_failed"
)

var errorMessages = map[ErrorCode]string{
	ErrInternal:         "Internal error occurred",
	ErrInvalidArgument:  "Invalid argument provided",
	ErrReadConfig:       "Failed to read configuration",
	ErrWriteConfig:      "Failed to write configuration",
	ErrUnknownCommand:   "Unknown command",
	ErrDuplicateCommand: "Command already registered",
	ErrInferenceRequest: "Inference request failed",
	ErrInferenceDecode:  "Failed to decode inference response",
	ErrInferenceStatus:  "Inference server returned an error",
	ErrHostInfo:         "Failed to get host info",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}

// CodeOf returns the code carried by err, or ErrInternal when err carries none
func CodeOf(err error) ErrorCode {
	var appErr Error
	if As(err, &appErr) {
		return appErr.Code()
	}
	return ErrInternal
}
