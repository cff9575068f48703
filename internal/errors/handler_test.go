package apperrors

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

type MockColorProvider struct{}

func (MockColorProvider) Red() string    { return "[RED]" }
func (MockColorProvider) Yellow() string { return "[YELLOW]" }
func (MockColorProvider) Reset() string  { return "[RESET]" }

func TestHandleEstimationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		err          error
		duration     time.Duration
		colors       ColorProvider
		expectedCode int
		expectedMsg  string
	}{
		{
			name:         "No Error",
			expectedCode: ExitSuccess,
		},
		{
			name:         "Validation Error",
			err:          NewValidationError("chunks", "must be strictly positive", 0),
			colors:       MockColorProvider{},
			expectedCode: ExitErrorConfig,
			expectedMsg:  "[RED]Status: Invalid run parameters.[RESET] validation error for 'chunks'",
		},
		{
			name:         "Estimation Error",
			err:          NewEstimationError("integrand", errors.New("seed failure")),
			duration:     2 * time.Second,
			colors:       MockColorProvider{},
			expectedCode: ExitErrorEstimation,
			expectedMsg:  "The estimation stopped after [YELLOW]2s[RESET]: integrand: seed failure",
		},
		{
			name:         "Generic Error Default Colors",
			err:          errors.New("random error"),
			expectedCode: ExitErrorGeneric,
			expectedMsg:  "Status: Failure. An unexpected error occurred: random error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := new(bytes.Buffer)
			code := HandleEstimationError(tt.err, tt.duration, out, tt.colors)
			if code != tt.expectedCode {
				t.Errorf("HandleEstimationError() code = %v, want %v", code, tt.expectedCode)
			}
			if tt.expectedMsg != "" && !strings.Contains(out.String(), tt.expectedMsg) {
				t.Errorf("HandleEstimationError() output = %q, want %q", out.String(), tt.expectedMsg)
			}
			if tt.err == nil && out.Len() != 0 {
				t.Errorf("unexpected output for nil error: %q", out.String())
			}
		})
	}
}
