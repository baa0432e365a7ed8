package readmanga

import (
	"fmt"
	"strings"
	"testing"

	"github.com/brogergvhs/chapterdl/internal/providers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_TwoEntries(t *testing.T) {
	raw := `<script>rm_h.readerInit(0, [['http://cdn/a','','p1.jpg'],['http://cdn/b','','p2.jpg']], false);</script>`

	got, err := New().Extract(raw)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, providers.Descriptor{Index: 1, BaseURL: "http://cdn/a", Path: "p1.jpg"}, got[0])
	assert.Equal(t, providers.Descriptor{Index: 2, BaseURL: "http://cdn/b", Path: "p2.jpg"}, got[1])
}

func TestExtract_DoubleQuotedPathsAndNoise(t *testing.T) {
	raw := `
<html><body>
<script type="text/javascript">
  var x = 1;
  rm_h.readerInit( 'chapter-7',
    [
      ['https://one.cdn.example/',  '',
          "auto/12/01.png?t=1", 1200, 1800],
      ['https://two.cdn.example/','',"auto/12/02.webp",1200,1800]
    ],
    false, [], {});
</script>
</body></html>`

	got, err := New().Extract(raw)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "https://one.cdn.example/auto/12/01.png?t=1", got[0].URL())
	assert.Equal(t, "https://two.cdn.example/auto/12/02.webp", got[1].URL())
}

func TestExtract_AbsolutePathPassesThrough(t *testing.T) {
	raw := `rm_h.readerInit(1, [['https://base/','',"https://other.host/x/003.jpg"]])`

	got, err := New().Extract(raw)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "https://base/", got[0].BaseURL)
	assert.Equal(t, "https://other.host/x/003.jpg", got[0].URL())
}

func TestExtract_IndicesAreContiguous(t *testing.T) {
	for _, k := range []int{1, 7, 40} {
		t.Run(fmt.Sprintf("k=%d", k), func(t *testing.T) {
			var sb strings.Builder
			sb.WriteString("rm_h.readerInit('c', [")
			for i := 1; i <= k; i++ {
				if i > 1 {
					sb.WriteString(",")
				}
				fmt.Fprintf(&sb, `['https://cdn/','',"p%03d.jpg"]`, i)
			}
			sb.WriteString("])")

			got, err := New().Extract(sb.String())
			require.NoError(t, err)
			require.Len(t, got, k)

			for i, d := range got {
				assert.Equal(t, i+1, d.Index)
				assert.Equal(t, fmt.Sprintf("p%03d.jpg", i+1), d.Path)
			}
		})
	}
}

func TestExtract_MarkerMissing(t *testing.T) {
	_, err := New().Extract(`<html><script>var pages = [];</script></html>`)
	require.Error(t, err)
	assert.ErrorIs(t, err, providers.ErrMarkerNotFound)

	var ee *providers.ExtractionError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, Name, ee.Provider)
}

func TestExtract_NoEntries(t *testing.T) {
	_, err := New().Extract(`rm_h.readerInit(0, [['not a url', '', "x.jpg"]])`)
	require.Error(t, err)
	assert.ErrorIs(t, err, providers.ErrNoResources)
}

func TestExtract_Registered(t *testing.T) {
	ex, err := providers.Select("ReadManga", "https://example.com/ch/1")
	require.NoError(t, err)
	assert.Equal(t, Name, ex.Name())
}
