package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeInvalidPageSize, "unknown page size: %s", "tabloid"),
			want: "INVALID_PAGE_SIZE: unknown page size: tabloid",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeUnreadableImage, stderrors.New("unexpected EOF"), "decode %s", "a.jpg"),
			want: "UNREADABLE_IMAGE: decode a.jpg: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidScale, "scale out of range")

	if !Is(err, ErrCodeInvalidScale) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeInvalidPageSize) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeInvalidScale) {
		t.Error("Is should not match a plain error")
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	err := Wrap(ErrCodeInternal, cause, "wrapped")

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeFileNotFound, "missing")); got != ErrCodeFileNotFound {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeFileNotFound)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode for plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidOrientation, "unknown orientation: upside-down")
	if got := UserMessage(err); strings.Contains(got, "INVALID_ORIENTATION") {
		t.Errorf("UserMessage should strip the code prefix, got %q", got)
	}

	plain := stderrors.New("plain error")
	if got := UserMessage(plain); got != "plain error" {
		t.Errorf("UserMessage for plain error = %q", got)
	}
}
