package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"prefixed ulid", "dash_01HZX3Q9V8K2M4N6P8R0T2V4W6", false},
		{"uuid", "0b5f3c2e-8f1a-4c6d-9e2b-7a1c3d5e7f90", false},
		{"empty", "", true},
		{"path traversal", "../etc", true},
		{"spaces", "a b", true},
		{"too long", strings.Repeat("a", MaxIDLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.id, "id", true)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Main Dashboard", "name"))
	assert.Error(t, ValidateName("   ", "name"))
	assert.Error(t, ValidateName("bad\x00name", "name"))
}

func TestValidateTitle(t *testing.T) {
	assert.NoError(t, ValidateTitle(""))
	assert.NoError(t, ValidateTitle("Hacker News"))
	assert.Error(t, ValidateTitle(strings.Repeat("x", MaxTitleLength+1)))
}

func TestValidateConfig(t *testing.T) {
	assert.NoError(t, ValidateConfig(nil))
	assert.NoError(t, ValidateConfig(map[string]interface{}{"url": "https://example.com/feed"}))

	huge := map[string]interface{}{"content": strings.Repeat("x", MaxConfigSize)}
	assert.Error(t, ValidateConfig(huge))

	var nested interface{} = "leaf"
	for i := 0; i < MaxConfigDepth+2; i++ {
		nested = map[string]interface{}{"n": nested}
	}
	assert.Error(t, ValidateConfig(nested.(map[string]interface{})))
}

func TestValidateImportSize(t *testing.T) {
	assert.Error(t, ValidateImportSize(nil))
	assert.NoError(t, ValidateImportSize([]byte(`{"dashboards":[]}`)))
	assert.Error(t, ValidateImportSize(make([]byte, MaxImportSize+1)))
}
