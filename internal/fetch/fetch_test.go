package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("<html>listing page</html>"))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Contains(t, result.HTML, "listing page")
}

func TestURL_CustomHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "custom-agent", r.Header.Get("User-Agent"))
		assert.Equal(t, "zh-CN", r.Header.Get("Accept-Language"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	opts := &Options{
		Timeout:   DefaultTimeout,
		UserAgent: "custom-agent",
		Headers:   map[string]string{"Accept-Language": "zh-CN"},
	}
	_, err := URL(context.Background(), server.URL, opts)
	require.NoError(t, err)
}

func TestURL_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	assert.Nil(t, result)
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Message, "403")
}

func TestURL_InvalidURL(t *testing.T) {
	result, err := URL(context.Background(), "not a url", nil)
	assert.Nil(t, result)
	assert.Error(t, err)
}

func TestURL_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := URL(ctx, server.URL, nil)
	assert.Error(t, err)
}
