package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func serveReleases(t *testing.T, releases []GithubRelease, status int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		if status == http.StatusOK {
			_ = json.NewEncoder(w).Encode(releases)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestOudatedVersion(t *testing.T) {
	releases := []GithubRelease{
		{"v0.10.0", false, time.Now().Add(-7 * 24 * time.Hour), "https://v0.10.0", "Release notes for v0.10.0"},
		{"v0.9.2", false, time.Now().Add(-31 * 24 * time.Hour), "https://v0.9.2", "Release notes for v0.9.0"},
		{"v0.9.1", false, time.Now().Add(-32 * 24 * time.Hour), "https://v0.9.1", "Release notes for v0.9.2"},
		{"v0.9.0", false, time.Now().Add(-33 * 24 * time.Hour), "https://v0.9.0", "Release notes for v0.9.1"},
		{"v0.6.0", false, time.Now().Add(-90 * 24 * time.Hour), "https://v0.6.0", "Release notes for v0.6.0"},
		{"v0.5.0", false, time.Now().Add(-90 * 24 * time.Hour), "https://v0.5.0", "Release notes for v0.5.0"},
		{"v0.4.0", false, time.Now().Add(-15 * 24 * time.Hour), "https://v0.4.0", "Release notes for v0.4.0"},
		{"v0.1.0", false, time.Now().Add(-90 * 24 * time.Hour), "https://v0.1.0", "Release notes for v0.1.0"},
	}

	server := serveReleases(t, releases, http.StatusOK)

	backendUrl, appUrl := GithubBackendReleaseUrl, GithubReleaseUrl
	GithubBackendReleaseUrl = server.URL
	GithubReleaseUrl = server.URL
	t.Cleanup(func() {
		GithubBackendReleaseUrl, GithubReleaseUrl = backendUrl, appUrl
	})

	tts := []struct {
		version  string
		expected bool
	}{
		{"dev", false},                 // Development version
		{"v0.100.0", true},             // Unknown version
		{"v0.10.0", false},             // Latest version
		{"v0.10.0-10-abcd1234", false}, // Ahead of latest version
		{"v0.6.0", false},              // Old version, within minor spread tolerance
		{"v0.4.0", false},              // Old version, within grace period
		{"v0.5.0", true},               // Outdated version
		{"v0.1.0", true},               // Outdated version
	}

	for _, tt := range tts {
		t.Run(tt.version, func(t *testing.T) {
			info := checkOutdated(context.Background(), tt.version)

			assert.Equal(t, tt.expected, info.Outdated)

			if tt.version != "dev" {
				assert.Equal(t, "v0.10.0", info.LatestVersion)
				assert.Equal(t, "https://v0.10.0", info.LatestUrl)

				if info.Outdated {
					assert.NotEmpty(t, info.ReleaseNotes)
				}
			}
		})
	}
}

func TestOudatedVersionError(t *testing.T) {
	server := serveReleases(t, nil, http.StatusUnavailableForLegalReasons)

	backendUrl := GithubBackendReleaseUrl
	GithubBackendReleaseUrl = server.URL
	t.Cleanup(func() { GithubBackendReleaseUrl = backendUrl })

	info := checkOutdated(context.Background(), "v0.5.0")

	assert.False(t, info.Outdated)
	assert.Empty(t, info.LatestVersion)
}
