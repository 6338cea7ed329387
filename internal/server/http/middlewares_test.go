package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterIP(t *testing.T) {
	tests := []struct {
		name          string
		trustedSubnet string
		remoteAddr    string
		statusCode    int
	}{
		{name: "No subnet", remoteAddr: "8.8.8.8:1234", statusCode: http.StatusOK},
		{name: "Trusted", trustedSubnet: "192.168.1.0/24", remoteAddr: "192.168.1.17:1234", statusCode: http.StatusOK},
		{name: "Untrusted", trustedSubnet: "192.168.1.0/24", remoteAddr: "10.0.0.1:1234", statusCode: http.StatusForbidden},
		{name: "Address without port", trustedSubnet: "10.0.0.0/8", remoteAddr: "10.1.2.3", statusCode: http.StatusOK},
		{name: "Invalid subnet", trustedSubnet: "10.0.0.0", remoteAddr: "10.0.0.1:1234", statusCode: http.StatusInternalServerError},
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/ping", nil)
			request.RemoteAddr = tt.remoteAddr
			recorder := httptest.NewRecorder()

			FilterIP(tt.trustedSubnet)(next).ServeHTTP(recorder, request)
			assert.Equal(t, tt.statusCode, recorder.Code)
		})
	}
}
