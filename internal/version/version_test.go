package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsureVPrefix(t *testing.T) {
	assert.Equal(t, "v1.2.3", EnsureVPrefix("1.2.3"))
	assert.Equal(t, "v1.2.3", EnsureVPrefix("v1.2.3"))
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		cmp  int
		ok   bool
	}{
		{a: "1.2.3", b: "v1.2.3", cmp: 0, ok: true},
		{a: "1.2.0", b: "1.10.0", cmp: -1, ok: true},
		{a: "v2.0.0", b: "1.9.9", cmp: 1, ok: true},
		{a: "dev", b: "1.0.0", ok: false},
	}
	for _, tt := range tests {
		cmp, ok := Compare(tt.a, tt.b)
		assert.Equal(t, tt.ok, ok, "%s vs %s", tt.a, tt.b)
		assert.Equal(t, tt.cmp, cmp, "%s vs %s", tt.a, tt.b)
	}
}
