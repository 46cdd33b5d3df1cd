package errors

import "testing"

func TestValidateScale(t *testing.T) {
	tests := []struct {
		name    string
		scale   float64
		wantErr bool
	}{
		{name: "lower bound", scale: 0.1, wantErr: false},
		{name: "upper bound", scale: 1.0, wantErr: false},
		{name: "mid range", scale: 0.75, wantErr: false},
		{name: "below range", scale: 0.05, wantErr: true},
		{name: "above range", scale: 1.5, wantErr: true},
		{name: "zero", scale: 0, wantErr: true},
		{name: "negative", scale: -0.5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScale(tt.scale)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateScale(%v) error = %v, wantErr %v", tt.scale, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidScale) {
				t.Errorf("error code = %q, want %q", GetCode(err), ErrCodeInvalidScale)
			}
		})
	}
}

func TestValidateSpacing(t *testing.T) {
	if err := ValidateSpacing(0); err != nil {
		t.Errorf("zero spacing should be valid: %v", err)
	}
	if err := ValidateSpacing(0.3); err != nil {
		t.Errorf("positive spacing should be valid: %v", err)
	}
	if err := ValidateSpacing(-0.1); err == nil {
		t.Error("negative spacing should be rejected")
	}
}

func TestValidateDocumentName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple", input: "photobook", wantErr: false},
		{name: "with dash and digits", input: "summer-2025", wantErr: false},
		{name: "empty", input: "", wantErr: true},
		{name: "path separator", input: "out/book", wantErr: true},
		{name: "backslash", input: "out\\book", wantErr: true},
		{name: "traversal", input: "..book", wantErr: true},
		{name: "hidden", input: ".book", wantErr: true},
		{name: "control character", input: "book\x00name", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocumentName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDocumentName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
