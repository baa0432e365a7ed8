package downloader

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/brogergvhs/chapterdl/internal/providers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pageServer serves /p/<n>.<ext>. Pages listed in fail answer 500, pages in
// slow block until the client gives up.
func pageServer(t *testing.T, fail, slow map[int]bool) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/p/")
		n, err := strconv.Atoi(strings.TrimSuffix(name, filepath.Ext(name)))
		if err != nil {
			http.NotFound(w, r)
			return
		}

		if slow[n] {
			select {
			case <-r.Context().Done():
			case <-time.After(5 * time.Second):
			}
			return
		}
		if fail[n] {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		_, _ = fmt.Fprintf(w, "page-%d", n)
	}))
	t.Cleanup(srv.Close)

	return srv
}

func descriptors(base string, n int, ext string) []providers.Descriptor {
	out := make([]providers.Descriptor, n)
	for i := range out {
		out[i] = providers.Descriptor{
			Index:   i + 1,
			BaseURL: base + "/p/",
			Path:    fmt.Sprintf("%d%s", i+1, ext),
		}
	}

	return out
}

func TestEffectiveWorkers(t *testing.T) {
	cases := []struct {
		requested, n, want int
	}{
		{50, 10, 10},
		{8, 100, 8},
		{50, 100, MaxWorkers},
		{0, 10, 1},
		{-3, 5, 1},
		{16, 3, 3},
		{4, 1, 1},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, EffectiveWorkers(tc.requested, tc.n), "requested=%d n=%d", tc.requested, tc.n)
	}
}

func TestFetchAll_OneResultPerDescriptor(t *testing.T) {
	fail := map[int]bool{3: true, 7: true, 11: true}
	srv := pageServer(t, fail, nil)
	descs := descriptors(srv.URL, 12, ".png")

	for workers := 1; workers <= MaxWorkers; workers++ {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			d := New(Config{Workers: workers, OutputDir: t.TempDir(), Timeout: 5 * time.Second})

			results := d.FetchAll(context.Background(), descs, nil)
			require.Len(t, results, len(descs))

			seen := map[int]bool{}
			ok, failed := 0, 0
			for _, r := range results {
				assert.False(t, seen[r.Index], "index %d reported twice", r.Index)
				seen[r.Index] = true
				if r.OK() {
					ok++
				} else {
					failed++
					assert.True(t, fail[r.Index])
				}
			}

			assert.Equal(t, len(descs), ok+failed)
			assert.Equal(t, len(fail), failed)
		})
	}
}

func TestFetchAll_SavesZeroPaddedFiles(t *testing.T) {
	srv := pageServer(t, nil, nil)
	dir := t.TempDir()

	descs := []providers.Descriptor{
		{Index: 1, BaseURL: srv.URL + "/p/", Path: "1.jpeg"},
		{Index: 2, BaseURL: "https://ignored.example/", Path: srv.URL + "/p/2.wepb"},
		{Index: 3, BaseURL: srv.URL + "/p/", Path: "3"},
	}

	results := New(Config{Workers: 2, OutputDir: dir}).FetchAll(context.Background(), descs, nil)
	require.Len(t, results, 3)

	for _, name := range []string{"001.jpg", "002.webp", "003.png"} {
		b, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.True(t, strings.HasPrefix(string(b), "page-"))
	}

	for _, r := range results {
		require.NoError(t, r.Err)
		assert.Equal(t, filepath.Dir(r.Path), dir)
		assert.Nil(t, r.Data)
		assert.Equal(t, int64(len("page-1")), r.Size)
	}
}

func TestFetchAll_TimeoutIsUnitFailure(t *testing.T) {
	srv := pageServer(t, nil, map[int]bool{3: true})
	dir := t.TempDir()

	d := New(Config{Workers: 5, OutputDir: dir, Timeout: 300 * time.Millisecond})
	results := d.FetchAll(context.Background(), descriptors(srv.URL, 5, ".png"), nil)
	require.Len(t, results, 5)

	c := Collate(results)
	assert.Len(t, c.Successes, 4)
	require.Len(t, c.Failures, 1)
	assert.Contains(t, c.Failures[0], srv.URL+"/p/3.png")

	_, err := os.Stat(filepath.Join(dir, "003.png"))
	assert.True(t, os.IsNotExist(err))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestFetchAll_HTTPErrorDescription(t *testing.T) {
	srv := pageServer(t, map[int]bool{1: true}, nil)

	results := New(Config{Workers: 1, OutputDir: t.TempDir()}).
		FetchAll(context.Background(), descriptors(srv.URL, 1, ".jpg"), nil)
	require.Len(t, results, 1)

	assert.Equal(t, srv.URL+"/p/1.jpg (HTTP 500)", results[0].Failure())
}

func TestFetchAll_BytesOnly(t *testing.T) {
	srv := pageServer(t, nil, nil)
	dir := t.TempDir()

	results := New(Config{Workers: 3, OutputDir: dir, BytesOnly: true}).
		FetchAll(context.Background(), descriptors(srv.URL, 4, ""), nil)
	require.Len(t, results, 4)

	for _, r := range results {
		require.NoError(t, r.Err)
		assert.Empty(t, r.Path)
		assert.Equal(t, fmt.Sprintf("page-%d", r.Index), string(r.Data))
		assert.Equal(t, "image/png", r.ContentType)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFetchAll_ProgressOrdinals(t *testing.T) {
	srv := pageServer(t, map[int]bool{2: true}, nil)
	descs := descriptors(srv.URL, 9, ".png")

	var ordinals []int
	indices := map[int]int{}

	results := New(Config{Workers: 4, BytesOnly: true}).FetchAll(context.Background(), descs, func(p Progress) {
		assert.Equal(t, len(descs), p.Total)
		ordinals = append(ordinals, p.Done)
		indices[p.Result.Index]++
	})
	require.Len(t, results, len(descs))

	require.Len(t, ordinals, len(descs))
	for i, o := range ordinals {
		assert.Equal(t, i+1, o)
	}
	for _, d := range descs {
		assert.Equal(t, 1, indices[d.Index], "index %d", d.Index)
	}
}

func TestFetchAll_ClientPerWorker(t *testing.T) {
	srv := pageServer(t, nil, nil)

	var built atomic.Int32
	factory := func() *http.Client {
		built.Add(1)
		return &http.Client{Transport: &http.Transport{}, Timeout: 5 * time.Second}
	}

	d := New(Config{Workers: 50, BytesOnly: true}, WithClientFactory(factory))
	results := d.FetchAll(context.Background(), descriptors(srv.URL, 10, ".png"), nil)

	assert.Len(t, results, 10)
	assert.Equal(t, int32(10), built.Load())
}

func TestFetchAll_SendsDefaultHeaders(t *testing.T) {
	var referer, ua atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		referer.Store(r.Header.Get("Referer"))
		ua.Store(r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("x"))
	}))
	defer srv.Close()

	d := New(Config{Workers: 1, BytesOnly: true, UserAgent: "chapterdl-test", Referer: "https://example.com/ch/9"})
	results := d.FetchAll(context.Background(), []providers.Descriptor{{Index: 1, Path: srv.URL + "/a.jpg"}}, nil)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)

	assert.Equal(t, "https://example.com/ch/9", referer.Load())
	assert.Equal(t, "chapterdl-test", ua.Load())
}

func TestFetchAll_CancelledContext(t *testing.T) {
	srv := pageServer(t, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := New(Config{Workers: 4, BytesOnly: true}).FetchAll(ctx, descriptors(srv.URL, 6, ".png"), nil)
	require.Len(t, results, 6)

	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}

func TestFetchAll_Empty(t *testing.T) {
	assert.Empty(t, New(Config{}).FetchAll(context.Background(), nil, nil))
}

func TestReadBody_Limit(t *testing.T) {
	b, err := readBody(strings.NewReader("12345"), 5)
	require.NoError(t, err)
	assert.Equal(t, "12345", string(b))

	_, err = readBody(strings.NewReader("123456"), 5)
	assert.Error(t, err)
}

func TestFetchAll_StopsQueuingOnCancel(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(150*time.Millisecond, cancel)

	d := New(Config{Workers: 1, BytesOnly: true, Timeout: 5 * time.Second})
	results := d.FetchAll(ctx, descriptors(srv.URL, 6, ".png"), nil)
	require.Len(t, results, 6)

	seen := map[int]bool{}
	for _, r := range results {
		seen[r.Index] = true
		assert.ErrorIs(t, r.Err, context.Canceled, "index %d", r.Index)
	}
	assert.Len(t, seen, 6)
	assert.Equal(t, int32(1), hits.Load())
}
