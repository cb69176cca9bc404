package transport

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = "<html><body><table><tr><th>Casa \\ Fora</th></tr></table></body></html>"

func encoded(t *testing.T, encoding string) []byte {
	t.Helper()
	var buf bytes.Buffer
	switch encoding {
	case "gzip":
		w := gzip.NewWriter(&buf)
		_, err := w.Write([]byte(page))
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case "deflate":
		w, err := flate.NewWriter(&buf, flate.DefaultCompression)
		require.NoError(t, err)
		_, err = w.Write([]byte(page))
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case "br":
		w := brotli.NewWriter(&buf)
		_, err := w.Write([]byte(page))
		require.NoError(t, err)
		require.NoError(t, w.Close())
	default:
		buf.WriteString(page)
	}
	return buf.Bytes()
}

func TestGetDecodesContentEncodings(t *testing.T) {
	for _, encoding := range []string{"", "gzip", "deflate", "br"} {
		t.Run("encoding="+encoding, func(t *testing.T) {
			body := encoded(t, encoding)
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Contains(t, r.Header.Get("Accept-Encoding"), "br")
				assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla")
				if encoding != "" {
					w.Header().Set("Content-Encoding", encoding)
				}
				w.Write(body)
			}))
			defer srv.Close()

			got, err := Get(context.Background(), srv.URL, nil)
			require.NoError(t, err)
			assert.Equal(t, page, string(got))
		})
	}
}

func TestGetSendsCustomHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json;charset=UTF-8", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"rodada": 12}`))
	}))
	defer srv.Close()

	body, err := Get(context.Background(), srv.URL, map[string]string{
		"Authorization": "secret",
		"Content-Type":  "application/json;charset=UTF-8",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"rodada": 12}`, string(body))
}

func TestGetErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := Get(context.Background(), srv.URL, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Get(ctx, srv.URL, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
