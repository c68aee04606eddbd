package api

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLabelKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr []string
	}{
		{name: "simple", key: "env"},
		{name: "with separators", key: "app.kubernetes_io-name"},
		{name: "max length", key: strings.Repeat("a", 63)},
		{name: "single char", key: "a"},
		{
			name:    "empty",
			key:     "",
			wantErr: []string{"must begin with an alphanumeric character", "must end with an alphanumeric character"},
		},
		{
			name:    "too long",
			key:     strings.Repeat("a", 64),
			wantErr: []string{"must be 63 characters or less"},
		},
		{
			name:    "leading dash",
			key:     "-env",
			wantErr: []string{"must begin with an alphanumeric character"},
		},
		{
			name:    "trailing dot",
			key:     "env.",
			wantErr: []string{"must end with an alphanumeric character"},
		},
		{
			name:    "bad characters",
			key:     "e nv/x",
			wantErr: []string{"must contain only alphanumeric characters, dashes, underscores, and dots"},
		},
		{
			name: "non ascii reports every failure",
			key:  "é",
			wantErr: []string{
				"must be ASCII",
				"must begin with an alphanumeric character",
				"must end with an alphanumeric character",
				"must contain only alphanumeric characters",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLabelKey(tt.key)
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "label key invalid")
			assert.Contains(t, err.Error(), `found key : "`)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestValidateLabelValue(t *testing.T) {
	assert.NoError(t, ValidateLabelValue(""))
	assert.NoError(t, ValidateLabelValue("v1.2"))

	err := ValidateLabelValue("_x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "label value invalid")
	assert.Contains(t, err.Error(), `found value : "_x"`)
}

func TestParseLabel(t *testing.T) {
	tests := []struct {
		raw       string
		wantKey   string
		wantValue string
		wantErr   string
	}{
		{raw: "env:prod", wantKey: "env", wantValue: "prod"},
		{raw: "env:", wantKey: "env", wantValue: ""},
		{raw: ":prod", wantKey: "", wantValue: "prod"},
		{raw: "env", wantErr: "must have a ':' character"},
		{raw: "a:b:c", wantErr: "must have only one ':' character"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			key, value, err := ParseLabel(tt.raw)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, key)
			assert.Equal(t, tt.wantValue, value)
		})
	}
}

func TestParseLabels(t *testing.T) {
	labels, err := ParseLabels([]string{"env:prod", "tier:"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"env": "prod", "tier": ""}, labels)

	_, err = ParseLabels([]string{"env:prod", "env:dev"})
	assert.ErrorContains(t, err, `duplicate label key "env"`)

	_, err = ParseLabels([]string{"-env:prod"})
	assert.ErrorContains(t, err, "label key invalid")
}
