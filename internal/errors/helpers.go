package errors

import (
	"errors"
)

// As is a wrapper around errors.As that works with our Error type
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode extracts the error code from an error
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Code
	}

	return CodeInternal
}

// GetMeta extracts metadata from an error
func GetMeta(err error) map[string]interface{} {
	if err == nil {
		return nil
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Meta
	}

	return nil
}

// GetMessage extracts the user-friendly message from an error
func GetMessage(err error) string {
	if err == nil {
		return ""
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Message
	}

	return err.Error()
}

// Type checking helpers

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return GetCode(err) == CodeNotFound
}

// IsInvalidArgument checks if an error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return GetCode(err) == CodeInvalidArgument
}

// IsInternal checks if an error is an internal error
func IsInternal(err error) bool {
	return GetCode(err) == CodeInternal
}

// IsResourceExhausted checks if an error is a resource exhausted error
func IsResourceExhausted(err error) bool {
	return GetCode(err) == CodeResourceExhausted
}

// IsCanceled checks if an error is a canceled error
func IsCanceled(err error) bool {
	return GetCode(err) == CodeCanceled
}

// IsInvalidSpec checks if an error is an invalid dice spec error
func IsInvalidSpec(err error) bool {
	return GetCode(err) == CodeInvalidSpec
}

// IsUnknownScene checks if an error is an unknown scene error
func IsUnknownScene(err error) bool {
	return GetCode(err) == CodeUnknownScene
}

// IsUnknownFoe checks if an error is an unknown foe error
func IsUnknownFoe(err error) bool {
	return GetCode(err) == CodeUnknownFoe
}

// IsUnknownItem checks if an error is an unknown item error
func IsUnknownItem(err error) bool {
	return GetCode(err) == CodeUnknownItem
}

// IsNoMatch checks if an error is an encounter no match error
func IsNoMatch(err error) bool {
	return GetCode(err) == CodeNoMatch
}

// IsEmptyStack checks if an error is an empty scene stack error
func IsEmptyStack(err error) bool {
	return GetCode(err) == CodeEmptyStack
}

// IsInvalidSave checks if an error is an invalid save error
func IsInvalidSave(err error) bool {
	return GetCode(err) == CodeInvalidSave
}

// IsInvalidChoice checks if an error is an invalid choice error
func IsInvalidChoice(err error) bool {
	return GetCode(err) == CodeInvalidChoice
}

// IsDisconnected checks if an error is the input closure abort signal
func IsDisconnected(err error) bool {
	return GetCode(err) == CodeDisconnected
}
