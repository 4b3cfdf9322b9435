package clientip

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRealClientIP(t *testing.T) {
	t.Parallel()

	t.Run("strips port", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.9:54321"
		require.Equal(t, "203.0.113.9", RealClientIP(req))
	})

	t.Run("falls back to raw remote addr", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.9"
		require.Equal(t, "203.0.113.9", RealClientIP(req))
	})
}
