package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListParamsNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   ListParams
		want ListParams
	}{
		{"zero_values", ListParams{}, ListParams{Page: 1, Limit: 10}},
		{"negative_values", ListParams{Page: -3, Limit: -1}, ListParams{Page: 1, Limit: 10}},
		{"passes_through_valid", ListParams{Page: 4, Limit: 25}, ListParams{Page: 4, Limit: 25}},
		{"caps_limit", ListParams{Page: 1, Limit: 500}, ListParams{Page: 1, Limit: 100}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.Normalize())
		})
	}
}

func TestListParamsOffset(t *testing.T) {
	assert.Equal(t, 0, ListParams{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 10, ListParams{Page: 2, Limit: 10}.Offset())
	assert.Equal(t, 50, ListParams{Page: 3, Limit: 25}.Offset())
}
