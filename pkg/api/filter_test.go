package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLabelsFilter(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    LabelsFilter
		wantErr string
	}{
		{
			name: "single",
			raw:  "env:prod",
			want: LabelsFilter{"env": "prod"},
		},
		{
			name: "multiple with typed values",
			raw:  "env:prod,replicas:3,enabled:true",
			want: LabelsFilter{"env": "prod", "replicas": json.Number("3"), "enabled": true},
		},
		{
			name: "empty value",
			raw:  "env:",
			want: LabelsFilter{"env": ""},
		},
		{
			name:    "empty filter",
			raw:     "",
			wantErr: "must have at least one label",
		},
		{
			name:    "missing colon",
			raw:     "env",
			wantErr: "must have a ':' character",
		},
		{
			name:    "two colons",
			raw:     "env:a:b",
			wantErr: "must have only one ':' character",
		},
		{
			name:    "duplicate key",
			raw:     "env:prod,env:dev",
			wantErr: "query has duplicate key: env:dev",
		},
		{
			name:    "empty entry",
			raw:     "env:prod,,tier:web",
			wantErr: "must have a ':' character",
		},
		{
			name:    "empty key",
			raw:     ":prod",
			wantErr: "key invalid",
		},
		{
			name:    "invalid value",
			raw:     "env:-prod",
			wantErr: "value invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLabelsFilter(tt.raw)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid labels_eq filter")
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLabelsFilter_String(t *testing.T) {
	f := LabelsFilter{"tier": "web", "env": "prod", "replicas": json.Number("3")}
	assert.Equal(t, "env:prod,replicas:3,tier:web", f.String())
	assert.Equal(t, "", LabelsFilter(nil).String())
}

func TestLabelsFilter_RoundTripsThroughString(t *testing.T) {
	tests := []string{
		"enabled:true,env:prod",
		"version:1.0",
		"id:12345678901234567890",
		"n:1e3",
		"gone:null",
		"n:007",
		"size:10k",
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			f, err := ParseLabelsFilter(in)
			require.NoError(t, err)
			assert.Equal(t, in, f.String())
		})
	}
}

func TestParseLabelsFilter_KeepsNumberText(t *testing.T) {
	f, err := ParseLabelsFilter("version:1.0,id:12345678901234567890,bad:1x")
	require.NoError(t, err)
	assert.Equal(t, json.Number("1.0"), f["version"])
	assert.Equal(t, json.Number("12345678901234567890"), f["id"])
	assert.Equal(t, "1x", f["bad"])
}

func TestLabelsFilter_UnmarshalJSON(t *testing.T) {
	var p ExtractionPolicy
	require.NoError(t, json.Unmarshal([]byte(`{"name":"p","extractor":"e","filters_eq":"env:prod"}`), &p))
	assert.Equal(t, LabelsFilter{"env": "prod"}, p.FiltersEq)

	p = ExtractionPolicy{}
	require.NoError(t, json.Unmarshal([]byte(`{"name":"p","filters_eq":{"env":"prod"}}`), &p))
	assert.Equal(t, LabelsFilter{"env": "prod"}, p.FiltersEq)

	p = ExtractionPolicy{}
	require.NoError(t, json.Unmarshal([]byte(`{"name":"p","filters_eq":{"id":12345678901234567890}}`), &p))
	assert.Equal(t, LabelsFilter{"id": json.Number("12345678901234567890")}, p.FiltersEq)

	p = ExtractionPolicy{}
	require.NoError(t, json.Unmarshal([]byte(`{"name":"p","filters_eq":null}`), &p))
	assert.Nil(t, p.FiltersEq)

	err := json.Unmarshal([]byte(`{"filters_eq":"env"}`), &p)
	assert.ErrorContains(t, err, "must have a ':' character")
}
