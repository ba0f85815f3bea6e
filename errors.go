package docstamp

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes a render can end in.
var (
	ErrValidation       = errors.New("docstamp: invalid payload")
	ErrCapacityExceeded = errors.New("docstamp: template capacity exceeded")
	ErrAssetLoad        = errors.New("docstamp: asset load failed")
	ErrRender           = errors.New("docstamp: render failed")
)

// ValidationError reports a payload that cannot be rendered as given.
type ValidationError struct {
	Field  string // JSON field path, e.g. "items[2].rate"
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("docstamp: invalid payload: %s", e.Reason)
	}
	return fmt.Sprintf("docstamp: invalid payload: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// CapacityExceededError reports more line items than a fixed template has row slots for.
// It matches both ErrCapacityExceeded and ErrValidation.
type CapacityExceededError struct {
	Kind     Kind
	Capacity int
	Items    int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("docstamp: %s template supports up to %d line items, got %d", e.Kind, e.Capacity, e.Items)
}

func (e *CapacityExceededError) Is(target error) bool {
	return target == ErrCapacityExceeded || target == ErrValidation
}

// AssetLoadError reports a missing or corrupt font, logo, or template asset.
type AssetLoadError struct {
	Asset string // e.g. "font slab", "logo", "invoice template"
	Path  string // empty for embedded assets
	Err   error
}

func (e *AssetLoadError) Error() string {
	src := "embedded"
	if e.Path != "" {
		src = e.Path
	}
	if e.Err != nil {
		return fmt.Sprintf("docstamp: loading %s from %s: %v", e.Asset, src, e.Err)
	}
	return fmt.Sprintf("docstamp: loading %s from %s: unknown error", e.Asset, src)
}

func (e *AssetLoadError) Unwrap() error {
	return e.Err
}

func (e *AssetLoadError) Is(target error) bool {
	return target == ErrAssetLoad
}

// RenderError represents an unexpected failure while drawing or serializing.
type RenderError struct {
	Op  string // operation name, e.g. "measure", "write"
	Err error
}

func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("docstamp.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("docstamp.%s: unknown error", e.Op)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

func (e *RenderError) Is(target error) bool {
	return target == ErrRender
}

// Code is a machine-readable error class for transport layers.
type Code string

const (
	CodeValidation       Code = "VALIDATION_ERROR"
	CodeCapacityExceeded Code = "CAPACITY_EXCEEDED"
	CodeAssetLoad        Code = "ASSET_LOAD_ERROR"
	CodeRender           Code = "RENDER_ERROR"
	CodeInternal         Code = "INTERNAL_ERROR"
)

// CodeOf classifies err. Capacity is checked before the broader validation class.
func CodeOf(err error) Code {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrCapacityExceeded):
		return CodeCapacityExceeded
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrAssetLoad):
		return CodeAssetLoad
	case errors.Is(err, ErrRender):
		return CodeRender
	default:
		return CodeInternal
	}
}
