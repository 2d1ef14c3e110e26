package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mari/gift-list-website/internal/api"
	"github.com/mari/gift-list-website/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestConfigWarningRouter_AnswersEveryRoute(t *testing.T) {
	missing := []string{"DATABASE_URL", "JWT_SECRET"}
	server := httptest.NewServer(api.NewConfigWarningRouter(missing))
	defer server.Close()

	paths := []string{
		"/",
		"/health",
		"/api/v1/listas",
		"/api/v1/gift/alice",
		"/api/v1/auth/login",
	}

	for _, path := range paths {
		resp, err := http.Get(server.URL + path)
		if err != nil {
			t.Fatalf("request to %s failed: %v", path, err)
		}

		var warning api.ConfigWarningResponse
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode, "path %s", path)
		testutil.AssertJSONResponse(t, resp, &warning)
		resp.Body.Close()

		assert.Equal(t, "not configured", warning.Error)
		assert.Equal(t, missing, warning.Missing)
	}
}
