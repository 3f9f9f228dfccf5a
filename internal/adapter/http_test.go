// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-repo-pulse/internal/config"
	"github.com/MKhiriev/go-repo-pulse/internal/logger"
	"github.com/MKhiriev/go-repo-pulse/internal/requests"
	"github.com/MKhiriev/go-repo-pulse/models"
)

func testConfig(apiURL string) *config.StructuredConfig {
	return &config.StructuredConfig{
		GitHub: config.GitHub{APIURL: apiURL, Token: "ghp_test"},
		HTTP: config.HTTP{
			Timeout:        2 * time.Second,
			UserAgent:      "repo-pulse-test",
			MaxAttempts:    3,
			WaitMultiplier: time.Millisecond,
			WaitMin:        time.Millisecond,
			WaitMax:        5 * time.Millisecond,
		},
	}
}

// newTestAdapter creates a githubAdapter pointed at the test server.
func newTestAdapter(t *testing.T, serverURL string) *githubAdapter {
	t.Helper()

	a, err := NewGitHubAdapter(testConfig(serverURL), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a.(*githubAdapter)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNewGitHubAdapter_InvalidURL(t *testing.T) {
	cfg := testConfig("   ")

	_, err := NewGitHubAdapter(cfg, logger.Nop())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidBaseURL)
}

func TestNewGitHubAdapter_InvalidRetrySettings(t *testing.T) {
	cfg := testConfig("https://api.github.com")
	cfg.HTTP.WaitMin = time.Minute
	cfg.HTTP.WaitMax = time.Second

	_, err := NewGitHubAdapter(cfg, logger.Nop())

	require.Error(t, err)
	assert.ErrorIs(t, err, requests.ErrInvalidRetryPolicy)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "full url", raw: "https://api.github.com", want: "https://api.github.com"},
		{name: "trailing slash", raw: "http://localhost:8080/", want: "http://localhost:8080"},
		{name: "no scheme", raw: "api.github.com", want: "https://api.github.com"},
		{name: "enterprise path", raw: "https://ghe.local/api/v3/", want: "https://ghe.local/api/v3"},
		{name: "empty", raw: "", wantErr: true},
		{name: "no host", raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRetryPolicyFromConfig(t *testing.T) {
	p := RetryPolicyFromConfig(config.HTTP{MaxAttempts: 7, WaitMax: 10 * time.Second}, logger.Nop())

	assert.Equal(t, 7, p.MaxAttempts)
	assert.Equal(t, 10*time.Second, p.WaitMax)
	assert.Equal(t, requests.DefaultWaitMin, p.WaitMin)
	assert.Equal(t, requests.DefaultWaitMultiplier, p.WaitMultiplier)
	assert.True(t, p.Reraise)
	assert.NotNil(t, p.Logger)
}

// ── GetRepository ───────────────────────────────────────────────────────────

func TestGetRepository_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/repos/PrefectHQ/prefect", r.URL.Path)
		assert.Equal(t, MediaTypeGitHubJSON, r.Header.Get("Accept"))
		assert.Equal(t, APIVersion, r.Header.Get("X-GitHub-Api-Version"))
		assert.Equal(t, "Bearer ghp_test", r.Header.Get("Authorization"))
		assert.Equal(t, "repo-pulse-test", r.Header.Get("User-Agent"))

		writeJSON(t, w, http.StatusOK, map[string]any{
			"id":               1,
			"name":             "prefect",
			"full_name":        "PrefectHQ/prefect",
			"owner":            map[string]any{"login": "PrefectHQ"},
			"stargazers_count": 17000,
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	repo, err := a.GetRepository(context.Background(), "PrefectHQ", "prefect")

	require.NoError(t, err)
	assert.Equal(t, "PrefectHQ/prefect", repo.FullName)
	assert.Equal(t, 17000, repo.StargazersCount)
	assert.Equal(t, "PrefectHQ", repo.Owner.Login)
}

func TestGetRepository_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]string{"message": "Not Found"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.GetRepository(context.Background(), "ghost", "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRepositoryNotFound)
	assert.ErrorIs(t, err, requests.ErrNotFound)

	reqErr, ok := requests.AsRequestError(err)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"message": "Not Found"}, reqErr.ResponseContent)
}

func TestGetRepository_TwoAttemptsOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.GetRepository(context.Background(), "PrefectHQ", "prefect")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, requests.ErrServer)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGetRepository_Unauthorized(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.GetRepository(context.Background(), "PrefectHQ", "prefect")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGetRepository_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.GetRepository(context.Background(), "PrefectHQ", "prefect")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, err, requests.ErrClient)
}

func TestGetRepository_ForbiddenRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.GetRepository(context.Background(), "PrefectHQ", "prefect")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.NotErrorIs(t, err, ErrForbidden)
}

func TestGetRepository_RateLimited(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"full_name": "PrefectHQ/prefect"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	repo, err := a.GetRepository(context.Background(), "PrefectHQ", "prefect")

	require.NoError(t, err)
	assert.Equal(t, "PrefectHQ/prefect", repo.FullName)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGetRepository_AfterClose(t *testing.T) {
	a := newTestAdapter(t, "http://127.0.0.1:1")
	a.Close()

	_, err := a.GetRepository(context.Background(), "PrefectHQ", "prefect")

	require.Error(t, err)
	assert.ErrorIs(t, err, requests.ErrSessionClosed)
}

// ── ListContributors ────────────────────────────────────────────────────────

func TestListContributors_FollowsLinkHeader(t *testing.T) {
	var srvURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/PrefectHQ/prefect/contributors", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))

		switch r.URL.Query().Get("page") {
		case "":
			w.Header().Set("Link", fmt.Sprintf(
				`<%s/repos/PrefectHQ/prefect/contributors?per_page=100&page=2>; rel="next", <%s/repos/PrefectHQ/prefect/contributors?per_page=100&page=2>; rel="last"`,
				srvURL, srvURL))
			writeJSON(t, w, http.StatusOK, []models.Contributor{{Login: "a"}, {Login: "b"}})
		case "2":
			w.Header().Set("Link", fmt.Sprintf(`<%s/repos/PrefectHQ/prefect/contributors?per_page=100&page=1>; rel="first"`, srvURL))
			writeJSON(t, w, http.StatusOK, []models.Contributor{{Login: "c"}})
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	}))
	defer srv.Close()
	srvURL = srv.URL

	a := newTestAdapter(t, srv.URL)
	got, err := a.ListContributors(context.Background(), models.Repository{
		Name:  "prefect",
		Owner: models.Owner{Login: "PrefectHQ"},
	})

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].Login)
	assert.Equal(t, "c", got[2].Login)
}

func TestListContributors_UsesContributorsURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/custom/contributors", r.URL.Path)
		writeJSON(t, w, http.StatusOK, []models.Contributor{{Login: "a", Contributions: 3}})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.ListContributors(context.Background(), models.Repository{ContributorsURL: srv.URL + "/custom/contributors"})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Contributions)
}

func TestListContributors_EmptyOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "empty repository",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			},
		},
		{
			name: "empty page",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte("[]"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			a := newTestAdapter(t, srv.URL)
			got, err := a.ListContributors(context.Background(), models.Repository{Name: "r", Owner: models.Owner{Login: "o"}})

			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestListContributors_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]string{"message": "not a list"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.ListContributors(context.Background(), models.Repository{Name: "r", Owner: models.Owner{Login: "o"}})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedResponse)
}

func TestListContributors_ServerErrorExhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.ListContributors(context.Background(), models.Repository{Name: "r", Owner: models.Owner{Login: "o"}})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(3), calls.Load())
}

// ── Actions secrets ─────────────────────────────────────────────────────────

func TestGetActionsPublicKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/o/r/actions/secrets/public-key", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.ActionsPublicKey{KeyID: "k1", Key: "cHVibGlj"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	key, err := a.GetActionsPublicKey(context.Background(), "o", "r")

	require.NoError(t, err)
	assert.Equal(t, "k1", key.KeyID)
	assert.Equal(t, "cHVibGlj", key.Key)
}

func TestGetActionsPublicKey_EmptyKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]string{})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.GetActionsPublicKey(context.Background(), "o", "r")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedResponse)
}

func TestPutActionsSecret(t *testing.T) {
	for _, status := range []int{http.StatusCreated, http.StatusNoContent} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPut, r.Method)
				assert.Equal(t, "/repos/o/r/actions/secrets/DOCKER_PASSWORD", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var body map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, map[string]string{"encrypted_value": "c2VhbGVk", "key_id": "k1"}, body)

				w.WriteHeader(status)
			}))
			defer srv.Close()

			a := newTestAdapter(t, srv.URL)
			err := a.PutActionsSecret(context.Background(), "o", "r", models.EncryptedSecret{
				Name:           "DOCKER_PASSWORD",
				EncryptedValue: "c2VhbGVk",
				KeyID:          "k1",
			})

			require.NoError(t, err)
		})
	}
}

func TestPutActionsSecret_UnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	err := a.PutActionsSecret(context.Background(), "o", "r", models.EncryptedSecret{Name: "X"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedResponse)
}

func TestPutActionsSecret_EmptyName(t *testing.T) {
	a := newTestAdapter(t, "http://127.0.0.1:1")

	err := a.PutActionsSecret(context.Background(), "o", "r", models.EncryptedSecret{})

	assert.ErrorIs(t, err, ErrEmptySecretName)
}

func TestPutActionsSecret_Unprocessable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnprocessableEntity, map[string]string{"message": "bad key"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	err := a.PutActionsSecret(context.Background(), "o", "r", models.EncryptedSecret{Name: "X"})

	require.Error(t, err)
	assert.ErrorIs(t, err, requests.ErrUnprocessableEntity)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func TestNextPageURL(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "empty", header: "", want: ""},
		{
			name:   "next and last",
			header: `<https://api.github.com/x?page=2>; rel="next", <https://api.github.com/x?page=5>; rel="last"`,
			want:   "https://api.github.com/x?page=2",
		},
		{
			name:   "last page",
			header: `<https://api.github.com/x?page=1>; rel="first", <https://api.github.com/x?page=4>; rel="prev"`,
			want:   "",
		},
		{
			name:   "multiple rel values",
			header: `<https://api.github.com/x?page=3>; rel="next last"`,
			want:   "https://api.github.com/x?page=3",
		},
		{
			name:   "extra params",
			header: `<https://api.github.com/x?page=2>; title="page two"; rel="next"`,
			want:   "https://api.github.com/x?page=2",
		},
		{name: "malformed", header: `https://api.github.com/x; rel="next"`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextPageURL(tt.header))
		})
	}
}

func TestMapRequestError(t *testing.T) {
	assert.NoError(t, mapRequestError("op", nil))

	plain := errors.New("boom")
	err := mapRequestError("op", plain)
	assert.ErrorIs(t, err, plain)
	assert.EqualError(t, err, "op: boom")

	transport := requests.NewError(requests.KindTransport, requests.ErrorDetails{Method: "GET", URL: "u", Err: plain})
	assert.ErrorIs(t, mapRequestError("op", transport), ErrUnavailable)

	forbidden := requests.NewError(requests.KindClient, requests.ErrorDetails{Status: 403, ResponseStatus: 403})
	assert.ErrorIs(t, mapRequestError("op", forbidden), ErrForbidden)

	teapot := requests.NewError(requests.KindClient, requests.ErrorDetails{Status: 418, ResponseStatus: 418})
	assert.NotErrorIs(t, mapRequestError("op", teapot), ErrForbidden)
}
