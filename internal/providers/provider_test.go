package providers_test

import (
	"errors"
	"testing"

	"github.com/brogergvhs/chapterdl/internal/providers"
	_ "github.com/brogergvhs/chapterdl/internal/providers/generic"
	_ "github.com/brogergvhs/chapterdl/internal/providers/readmanga"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptorURL(t *testing.T) {
	cases := []struct {
		d    providers.Descriptor
		want string
	}{
		{providers.Descriptor{BaseURL: "https://h/", Path: "a/1.jpg"}, "https://h/a/1.jpg"},
		{providers.Descriptor{BaseURL: "https://h/", Path: "http://other/1.jpg"}, "http://other/1.jpg"},
		{providers.Descriptor{BaseURL: "https://h/", Path: "https://other/1.jpg"}, "https://other/1.jpg"},
		{providers.Descriptor{BaseURL: "https://h", Path: "1.jpg"}, "https://h1.jpg"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.d.URL())
	}
}

func TestSelect(t *testing.T) {
	assert.Equal(t, []string{"generic", "readmanga"}, providers.Names())
	assert.True(t, providers.Known(" Generic "))

	ex, err := providers.Select("GENERIC", "https://example.com/")
	require.NoError(t, err)
	assert.Equal(t, "generic", ex.Name())

	_, err = providers.Select("mangadex", "https://example.com/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generic, readmanga")
}

func TestRegister_Duplicate(t *testing.T) {
	assert.Panics(t, func() {
		providers.Register("readmanga", func(string) providers.Extractor { return nil })
	})
}

func TestExtractionError(t *testing.T) {
	err := error(&providers.ExtractionError{Provider: "readmanga", Kind: providers.ErrNoResources})

	assert.True(t, errors.Is(err, providers.ErrNoResources))
	assert.False(t, errors.Is(err, providers.ErrMarkerNotFound))
	assert.Equal(t, "readmanga: no image links found in the page list", err.Error())
}

func TestNumber(t *testing.T) {
	got := providers.Number(make([]providers.Descriptor, 4))
	for i, d := range got {
		assert.Equal(t, i+1, d.Index)
	}
}
