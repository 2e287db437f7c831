package redact

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCredential(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"spaces", "   ", ""},
		{"jwt", "eyJhbGciOiJIUzI1NiJ9.e30.sig", "[REDACTED_TOKEN]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Credential(tt.in))
		})
	}
}
