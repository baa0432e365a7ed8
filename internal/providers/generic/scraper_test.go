package generic

import (
	"testing"

	"github.com/brogergvhs/chapterdl/internal/providers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const readerPage = `<html><body>
<header><img src="/static/logo.png"></header>
<div class="reader">
  <img data-src="/pages/001.jpg" src="/static/blank.gif">
  <img src="https://cdn.example.com/pages/002.webp">
  <img srcset="/pages/003.png 1x, /pages/003@2x.png 2x">
  <img src="https://cdn.example.com/pages/002.webp">
  <img src="data:image/png;base64,AAAA">
  <img src="/pages/readme.txt">
</div>
</body></html>`

func TestExtract_DocumentOrder(t *testing.T) {
	got, err := New("https://example.com/manga/ch-1/").Extract(readerPage)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, 1, got[0].Index)
	assert.Equal(t, "https://example.com/pages/001.jpg", got[0].URL())
	assert.Equal(t, 2, got[1].Index)
	assert.Equal(t, "https://cdn.example.com/pages/002.webp", got[1].URL())
	assert.Equal(t, 3, got[2].Index)
	assert.Equal(t, "https://example.com/pages/003.png", got[2].URL())
}

func TestExtract_NoImages(t *testing.T) {
	_, err := New("https://example.com/").Extract(`<html><body><p>nothing</p></body></html>`)
	assert.ErrorIs(t, err, providers.ErrMarkerNotFound)
}

func TestExtract_OnlyDecorations(t *testing.T) {
	_, err := New("https://example.com/").Extract(`<img src="/logo.png"><img src="/avatar.jpg">`)
	assert.ErrorIs(t, err, providers.ErrNoResources)
}

func TestExtract_ScriptFallback(t *testing.T) {
	page := `<html><head>
<script src="/js/app.js"></script>
<script>
  var pages = ["https:\/\/cdn.example.com\/ch1\/01.jpg", "https:\/\/cdn.example.com\/ch1\/02.png?t=9"];
  var cover = "https://cdn.example.com/cover.jpg";
  var other = "https://cdn.example.com/ch1/01.jpg";
</script></head><body><div id="reader"></div></body></html>`

	got, err := New("https://example.com/read/1").Extract(page)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "https://cdn.example.com/ch1/01.jpg", got[0].URL())
	assert.Equal(t, "https://cdn.example.com/ch1/02.png?t=9", got[1].URL())
	assert.Equal(t, 2, got[1].Index)
}

func TestExtract_ImgTagsWinOverScripts(t *testing.T) {
	page := `<img src="/p/1.jpg"><script>var x = "https://cdn.example.com/9.jpg";</script>`

	got, err := New("https://example.com/").Extract(page)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "https://example.com/p/1.jpg", got[0].URL())
}

func TestExtract_DecorationWordsInDirectories(t *testing.T) {
	page := `<html><body>
<img src="/discover/ch-1/001.jpg">
<img src="https://profile.cdn.example.com/recover/002.jpg">
<img src="/discover/ch-1/cover.jpg">
</body></html>`

	got, err := New("https://example.com/discover/ch-1/").Extract(page)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "https://example.com/discover/ch-1/001.jpg", got[0].URL())
	assert.Equal(t, "https://profile.cdn.example.com/recover/002.jpg", got[1].URL())
}
