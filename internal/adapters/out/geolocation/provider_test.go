package geolocation_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agenthub/internal/adapters/out/geolocation"
	"agenthub/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_Acquire(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		fmt.Fprint(w, `{"lat": 12.9, "lon": 77.6}`)
	}))
	defer server.Close()

	provider, err := geolocation.NewProvider(server.URL, time.Second)
	require.NoError(t, err)

	location, err := provider.Acquire(t.Context())

	require.NoError(t, err)
	assert.InEpsilon(t, 12.9, location.Lat(), 1e-9)
	assert.InEpsilon(t, 77.6, location.Lon(), 1e-9)
}

func TestProvider_Acquire_Denied(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	provider, err := geolocation.NewProvider(server.URL, time.Second)
	require.NoError(t, err)

	_, err = provider.Acquire(t.Context())

	require.ErrorIs(t, err, ports.ErrLocationUnavailable)
}

func TestProvider_Acquire_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	provider, err := geolocation.NewProvider(server.URL, 50*time.Millisecond)
	require.NoError(t, err)

	_, err = provider.Acquire(t.Context())

	require.ErrorIs(t, err, ports.ErrLocationUnavailable)
}

func TestProvider_Acquire_MalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `not json`)
	}))
	defer server.Close()

	provider, err := geolocation.NewProvider(server.URL, time.Second)
	require.NoError(t, err)

	_, err = provider.Acquire(t.Context())

	require.ErrorIs(t, err, ports.ErrLocationUnavailable)
}

func TestNewProvider_RequiresEndpoint(t *testing.T) {
	_, err := geolocation.NewProvider("", time.Second)

	require.Error(t, err)
}
