// Package result defines the stable, numeric result-code domain returned by
// every Api verb, along with an Error type that carries one of these codes
// plus an optional underlying cause for logging.
package result

import (
	"errors"
	"fmt"
)

// Code is a stable, externally visible result code. Its numeric values are
// part of the Api contract: callers across process and language boundaries
// switch on Code, never on error string contents.
type Code int32

const (
	// Success

	OK Code = iota
	NewFeatureConfigured
	FeatureReconfigured

	// Input / identity

	InvalidID
	DuplicateID
	UnconfiguredID
	InvalidConfiguration
	InvalidParameter
	ParameterOutOfRange

	// Resources

	CameraAcquisitionFailed
	CameraSettingsFailed

	// Plug-in

	ModuleDlopenFailed
	ModuleDlsymFailed
	ModuleDlcloseFailed
	ModuleUnknown

	// Scene

	SceneUnknown
	SceneModuleNotTerminal
	UnsupportedConversion

	// Runtime

	NotImplemented
	InternalError
	UnknownError
	ExecThreadFailure
	CallbackMismatch
)

var codeNames = map[Code]string{
	OK:                      "OK",
	NewFeatureConfigured:    "NEW_FEATURE_CONFIGURED",
	FeatureReconfigured:     "FEATURE_RECONFIGURED",
	InvalidID:               "INVALID_ID",
	DuplicateID:             "DUPLICATE_ID",
	UnconfiguredID:          "UNCONFIGURED_ID",
	InvalidConfiguration:    "INVALID_CONFIGURATION",
	InvalidParameter:        "INVALID_PARAMETER",
	ParameterOutOfRange:     "PARAMETER_OUT_OF_RANGE",
	CameraAcquisitionFailed: "CAMERA_ACQUISITION_FAILED",
	CameraSettingsFailed:    "CAMERA_SETTINGS_FAILED",
	ModuleDlopenFailed:      "MODULE_DLOPEN_FAILED",
	ModuleDlsymFailed:       "MODULE_DLSYM_FAILED",
	ModuleDlcloseFailed:     "MODULE_DLCLOSE_FAILED",
	ModuleUnknown:           "MODULE_UNKNOWN",
	SceneUnknown:            "SCENE_UNKNOWN",
	SceneModuleNotTerminal:  "SCENE_MODULE_NOT_TERMINAL",
	UnsupportedConversion:   "UNSUPPORTED_CONVERSION",
	NotImplemented:          "NOT_IMPLEMENTED",
	InternalError:           "INTERNAL_ERROR",
	UnknownError:            "UNKNOWN_ERROR",
	ExecThreadFailure:       "EXEC_THREAD_FAILURE",
	CallbackMismatch:        "CALLBACK_MISMATCH",
}

// String returns the stable, human-readable contract identifier for code,
// backing the Api's result_string verb.
func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return "UNKNOWN_ERROR"
}

// OK reports whether c represents a successful outcome.
func (c Code) OK() bool {
	return c == OK || c == NewFeatureConfigured || c == FeatureReconfigured
}

// Error pairs a Code with an optional underlying cause. It implements the
// standard error interface so it can flow through Go-idiomatic call chains,
// while still exposing the stable Code for Api translation.
type Error struct {
	Code  Code
	Cause error
}

// New wraps code with no underlying cause.
func New(code Code) *Error {
	return &Error{Code: code}
}

// Wrap pairs code with the error that caused it, for logging.
func Wrap(code Code, cause error) *Error {
	return &Error{Code: code, Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Cause)
	}
	return e.Code.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// CodeOf extracts the Code from err if it is (or wraps) a *Error,
// and otherwise returns fallback.
func CodeOf(err error, fallback Code) Code {
	if err == nil {
		return OK
	}
	var re *Error
	if errors.As(err, &re) {
		return re.Code
	}
	return fallback
}
