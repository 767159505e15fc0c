package httpserver

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"energyadvice/internal/platform/config"
)

func TestNewUsesRequestTimeout(t *testing.T) {
	srv := New(config.Server{Addr: ":9090", RequestTimeout: 10 * time.Second}, http.NotFoundHandler())

	assert.Equal(t, ":9090", srv.Addr)
	assert.Equal(t, 10*time.Second, srv.ReadTimeout)
	assert.Equal(t, 15*time.Second, srv.WriteTimeout)
	assert.Equal(t, readHeaderTimeout, srv.ReadHeaderTimeout)
}

func TestNewFallsBackToDefaultTimeout(t *testing.T) {
	srv := New(config.Server{Addr: ":8080"}, http.NotFoundHandler())

	assert.Equal(t, config.DefaultRequestTimeout, srv.ReadTimeout)
	assert.Equal(t, config.DefaultRequestTimeout+writeGrace, srv.WriteTimeout)
}
