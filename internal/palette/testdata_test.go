package palette

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTestdataFormatsAgree(t *testing.T) {
	want, err := LoadFile(filepath.Join("testdata", "brand.yaml"))
	require.NoError(t, err)
	require.Equal(t, 6, want.Len())
	require.NoError(t, want.Validate())

	for _, name := range []string{"brand.toml", "brand.json"} {
		t.Run(name, func(t *testing.T) {
			got, err := LoadFile(filepath.Join("testdata", name))
			require.NoError(t, err)
			assert.Equal(t, want.Names(), got.Names())
			for _, key := range want.Names() {
				w, _ := want.Lookup(key)
				g, _ := got.Lookup(key)
				assert.Equal(t, w.String(), g.String(), key)
			}
		})
	}
}

func TestLoadTestdataOverride(t *testing.T) {
	p, err := LoadFiles(
		filepath.Join("testdata", "brand.yaml"),
		filepath.Join("testdata", "override.yaml"),
	)
	require.NoError(t, err)
	assert.Equal(t, 7, p.Len())

	brand, ok := p.Lookup("brand")
	require.True(t, ok)
	assert.Equal(t, "rebeccapurple", brand.String())

	focus, _ := p.Lookup("focus")
	assert.Equal(t, KindAdjusted, focus.Kind())
	assert.Equal(t, "darken", focus.Adjustments()[0].Func)
}
