package docstamp

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestCapacityExceededMatchesValidation(t *testing.T) {
	err := fmt.Errorf("render: %w", &CapacityExceededError{Kind: KindInvoice, Capacity: 6, Items: 7})

	if !errors.Is(err, ErrCapacityExceeded) {
		t.Error("expected ErrCapacityExceeded")
	}
	if !errors.Is(err, ErrValidation) {
		t.Error("capacity errors are validation errors")
	}
	if errors.Is(err, ErrRender) {
		t.Error("capacity error must not match ErrRender")
	}
	want := "docstamp: invoice template supports up to 6 line items, got 7"
	if got := errors.Unwrap(err).Error(); got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}

func TestAssetLoadErrorUnwraps(t *testing.T) {
	err := &AssetLoadError{Asset: "logo", Path: "/missing.png", Err: fs.ErrNotExist}

	if !errors.Is(err, ErrAssetLoad) {
		t.Error("expected ErrAssetLoad")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("expected the cause to stay reachable")
	}
}

func TestRenderErrorFormat(t *testing.T) {
	err := &RenderError{Op: "write", Err: errors.New("boom")}
	if got := err.Error(); got != "docstamp.write: boom" {
		t.Errorf("Error() = %q", got)
	}
	empty := &RenderError{Op: "measure"}
	if got := empty.Error(); got != "docstamp.measure: unknown error" {
		t.Errorf("Error() = %q", got)
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		err  error
		want Code
	}{
		{nil, ""},
		{&ValidationError{Field: "type", Reason: "bad"}, CodeValidation},
		{&CapacityExceededError{Kind: KindInvoice, Capacity: 6, Items: 9}, CodeCapacityExceeded},
		{&AssetLoadError{Asset: "font mono"}, CodeAssetLoad},
		{fmt.Errorf("wrapped: %w", &RenderError{Op: "write"}), CodeRender},
		{errors.New("plain"), CodeInternal},
	}
	for _, tt := range tests {
		if got := CodeOf(tt.err); got != tt.want {
			t.Errorf("CodeOf(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
