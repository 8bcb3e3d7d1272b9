package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"scankey-catalog/internal/model"
)

func TestPreferredVariant(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want string
	}{
		{"hyphen first", []string{"TE8I", "TE-8I"}, "TE-8I"},
		{"shorter hyphenated", []string{"TE-8-I", "TE-8I"}, "TE-8I"},
		{"shorter without hyphen", []string{"TOK83DX", "TOK83D"}, "TOK83D"},
		{"stable among equals", []string{"TE-8I", "TE8-I"}, "TE-8I"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, preferredVariant(tt.in))
		})
	}
}

func TestNewSnapshot(t *testing.T) {
	snap := NewSnapshot(
		[]string{"te-8i", "", "U5D"},
		map[string][]string{"TE8I": {"TE8I", "TE-8I"}},
		map[string]model.RichData{"YA300D": {Brand: "YALE"}},
	)

	assert.Equal(t, 3, snap.Len())
	assert.True(t, snap.Contains("TE8I"))
	assert.True(t, snap.Contains("YA300D"))

	v, ok := snap.Preferred("TE8I")
	assert.True(t, ok)
	assert.Equal(t, "TE-8I", v)
	assert.Equal(t, "YALE", snap.Rich("YA300D").Brand)
}

func TestNilSnapshotIsEmpty(t *testing.T) {
	var snap *Snapshot

	assert.False(t, snap.Contains("TE8I"))
	assert.Zero(t, snap.Len())
	assert.True(t, snap.Rich("TE8I").IsZero())
	_, ok := snap.Preferred("TE8I")
	assert.False(t, ok)
	assert.NotNil(t, snap.Stats().Sources)
}
