package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUnknownListing(t *testing.T) {
	l := NewUnknownListing("https://example.com/a")

	assert.Equal(t, "https://example.com/a", l.URL)
	assert.Equal(t, Unknown, l.Title)
	assert.Equal(t, Unknown, l.Price)
	assert.Equal(t, Unknown, l.Shipping)
	assert.Equal(t, Unknown, l.DescriptionHTML)
	assert.NotNil(t, l.Photos)
	assert.Empty(t, l.Photos)
}

func TestSpecsMissing(t *testing.T) {
	tests := []struct {
		name     string
		specs    Specs
		expected []string
	}{
		{"all unknown", NewUnknownSpecs(), []string{"brand", "model", "inch", "width", "holes", "pcd", "offset"}},
		{"partial", Specs{Brand: "RAYS", Model: "TE37", Inch: "15", Width: "7", Holes: Unknown, PCD: "100", Offset: ""}, []string{"holes", "offset"}},
		{"complete", Specs{"RAYS", "TE37", "15", "7", "4", "100", "+35"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.specs.Missing())
		})
	}
}
