package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte("hello"))
		case "/big":
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	ctx := context.Background()

	b, err := GetBytes(ctx, srv.URL+"/ok", 0)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))

	b, err = GetBytes(ctx, srv.URL+"/big", 64)
	require.NoError(t, err)
	assert.Len(t, b, 64)

	_, err = GetBytes(ctx, srv.URL+"/big", 10)
	assert.ErrorContains(t, err, "exceeds")

	_, err = GetBytes(ctx, srv.URL+"/missing", 0)
	assert.ErrorContains(t, err, "404")
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(dir))
	assert.DirExists(t, dir)
}
