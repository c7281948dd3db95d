package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIKeyStoreSwap(t *testing.T) {
	store := NewAPIKeyStore("initial-key")
	assert.Equal(t, "initial-key", store.Get())

	store.Set("  replacement-key  ")
	assert.Equal(t, "replacement-key", store.Get())
}

func TestAPIKeyStoreMasked(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "empty", key: "", want: ""},
		{name: "short key fully hidden", key: "abc123", want: "••••••"},
		{name: "boundary length fully hidden", key: "123456789012", want: "••••••••••••"},
		{name: "long key shows edges", key: "AIzaSyD-1234567890abcdef", want: "AIzaSyD-••••••••••••cdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewAPIKeyStore(tt.key)
			assert.Equal(t, tt.want, store.Masked())
		})
	}
}
