package selfupdate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		latest    string
		available bool
	}{
		{"newer release", "v1.0.0", "v1.2.0", true},
		{"same release", "v1.2.0", "v1.2.0", false},
		{"older release", "v2.0.0", "v1.9.9", false},
		{"missing v prefix", "1.0.0", "v1.0.1", true},
		{"dev build", "(devel)", "v1.0.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/repos/abhisek/worksheetai/releases/latest", r.URL.Path)
				_, _ = w.Write([]byte(`{"tag_name":"` + tt.latest + `","html_url":"https://example.com/release"}`))
			}))
			defer server.Close()

			res, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: tt.current})
			require.NoError(t, err)
			assert.Equal(t, tt.available, res.UpdateAvailable)
			assert.Equal(t, tt.latest, res.LatestVersion)
			assert.Equal(t, "https://example.com/release", res.ReleaseURL)
		})
	}
}

func TestCheck_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 403")
}

func TestWithRepository(t *testing.T) {
	c := NewChecker(WithRepository("someone", "fork"))
	assert.Equal(t, "someone", c.owner)
	assert.Equal(t, "fork", c.repo)
}
