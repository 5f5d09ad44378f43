package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/logging"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

// fakePDF records the documents it is asked to render.
type fakePDF struct {
	mu    sync.Mutex
	html  []string
	err   error
	bytes []byte
}

func (f *fakePDF) RenderHTMLToPDF(_ context.Context, html string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.html = append(f.html, html)
	if f.err != nil {
		return nil, f.err
	}
	if f.bytes != nil {
		return f.bytes, nil
	}
	return []byte("%PDF-1.4 fake"), nil
}

func (f *fakePDF) rendered() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.html...)
}

type fakeLLM struct {
	response string
	err      error
}

func (f *fakeLLM) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) Close() error { return nil }

type testEnv struct {
	server *Server
	ts     *httptest.Server
	client *http.Client
	pdf    *fakePDF
	store  storage.Storage
}

type envOption func(*Deps)

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	pdfRenderer := &fakePDF{}
	backing := storage.NewMemoryStorage()
	deps := Deps{
		Config:    config.Default(),
		Logger:    logging.Discard(),
		Storage:   backing,
		Users:     db.NewMemoryUserStore(),
		Passwords: &config.PasswordConfig{BcryptCost: 10},
		JWT:       &config.JWTConfig{Secret: testJWTSecret, ExpirationHours: 24, Issuer: config.DefaultJWTIssuer},
		PDF:       pdfRenderer,
		RateLimit: &ratelimit.Config{Enabled: false},
		Workspace: []workspace.Option{workspace.WithExitDelay(0)},
	}
	for _, opt := range opts {
		opt(&deps)
	}

	s, err := New(deps)
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ts.Close()
		_ = s.Close(context.Background())
	})

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testEnv{server: s, ts: ts, client: &http.Client{Jar: jar}, pdf: pdfRenderer, store: backing}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, headers ...string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, e.ts.URL+path, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := e.client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

func TestNew_RequiresDeps(t *testing.T) {
	_, err := New(Deps{})
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]string{"status": "ok"}, decode[map[string]string](t, resp))
}

func TestSessionCookie_KeepsWorkspace(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/resume/skills", resume.Skill{Name: "Go", Level: resume.LevelExpert})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	added := decode[AddedResponse](t, resp)
	assert.Equal(t, "200", added.ID)

	var session *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookie {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)

	doc := decode[resume.Document](t, env.do(t, http.MethodGet, "/api/resume", nil))
	require.Len(t, doc.Skills, 1)

	raw, ok, err := env.store.Get(context.Background(), session.Value+":"+storage.DocumentKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, `"Go"`)

	// A browser without the cookie gets its own empty document.
	other := &http.Client{}
	resp, err = other.Get(env.ts.URL + "/api/resume")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Empty(t, decode[resume.Document](t, resp).Skills)
}

func TestResumeAPI_CRUD(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPatch, "/api/resume/personal-info", map[string]string{"firstName": "Ann", "city": "Oslo"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc := decode[resume.Document](t, resp)
	assert.Equal(t, "Ann", doc.PersonalInfo.FirstName)

	resp = env.do(t, http.MethodPatch, "/api/resume/personal-info", map[string]string{"lastName": "Lee"})
	doc = decode[resume.Document](t, resp)
	assert.Equal(t, "Ann", doc.PersonalInfo.FirstName, "patch merges")
	assert.Equal(t, "Lee", doc.PersonalInfo.LastName)

	added := decode[AddedResponse](t, env.do(t, http.MethodPost, "/api/resume/experience", resume.Experience{Company: "Acme", Position: "Engineer"}))
	resp = env.do(t, http.MethodPatch, "/api/resume/experience/"+added.ID, map[string]string{"position": "Lead"})
	doc = decode[resume.Document](t, resp)
	require.Len(t, doc.Experience, 1)
	assert.Equal(t, "Lead", doc.Experience[0].Position)
	assert.Equal(t, "Acme", doc.Experience[0].Company)

	resp = env.do(t, http.MethodDelete, "/api/resume/experience/999", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[resume.Document](t, resp).Experience, 1)

	resp = env.do(t, http.MethodDelete, "/api/resume/experience/"+added.ID, nil)
	assert.Empty(t, decode[resume.Document](t, resp).Experience)

	resp = env.do(t, http.MethodPut, "/api/resume/fresher", FresherRequest{IsFresher: true})
	assert.True(t, decode[resume.Document](t, resp).IsFresher)

	resp = env.do(t, http.MethodPost, "/api/resume/reset", nil)
	assert.Equal(t, resume.Empty(), decode[resume.Document](t, resp))
}

func TestResumeAPI_BadBody(t *testing.T) {
	env := newTestEnv(t)
	req, err := http.NewRequest(http.MethodPatch, env.ts.URL+"/api/resume/personal-info", strings.NewReader("{"))
	require.NoError(t, err)
	resp, err := env.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCORS_Preflight(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodOptions, "/api/resume", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "PATCH")
}

func TestCORS_AllowedOrigins(t *testing.T) {
	env := newTestEnv(t, func(d *Deps) {
		d.Config.AllowedOrigins = []string{"https://app.example.com"}
	})

	resp := env.do(t, http.MethodGet, "/health", nil, "Origin", "https://app.example.com")
	assert.Equal(t, "https://app.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))

	resp = env.do(t, http.MethodGet, "/health", nil, "Origin", "https://evil.example.com")
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	env := newTestEnv(t, func(d *Deps) {
		d.RateLimit = &ratelimit.Config{
			Enabled:       true,
			DefaultLimit:  100,
			DefaultWindow: time.Minute,
			EndpointConfigs: []ratelimit.EndpointConfig{
				{Path: "/api/login", Method: http.MethodPost, Limit: 2, Window: time.Minute, Burst: 2},
			},
		}
	})

	body := map[string]string{"email": "nobody@example.com", "password": "secret123"}
	for i := 0; i < 2; i++ {
		resp := env.do(t, http.MethodPost, "/api/login", body)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "2", resp.Header.Get("X-RateLimit-Limit"))
	}

	resp := env.do(t, http.MethodPost, "/api/login", body)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
	assert.Equal(t, "rate_limit_exceeded", decode[map[string]any](t, resp)["error"])

	resp = env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTailor_Disabled(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/tailor", map[string]any{"jobDescription": "Go", "summary": true})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestTailor(t *testing.T) {
	client := &fakeLLM{response: `{"summary": "Go engineer focused on APIs", "skills": [{"name": "Kubernetes", "level": "Advanced"}]}`}
	env := newTestEnv(t, func(d *Deps) { d.LLM = client })

	resp := env.do(t, http.MethodPost, "/api/tailor", map[string]any{"jobDescription": "", "summary": true})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/tailor", map[string]any{"jobDescription": "Platform engineer", "summary": true, "skills": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[TailorResponse](t, resp)
	assert.True(t, out.SummaryUpdated)
	assert.Equal(t, []string{"Kubernetes"}, out.SkillsAdded)
	assert.Equal(t, "Go engineer focused on APIs", out.Document.PersonalInfo.Summary)

	client.err = errors.New("quota exceeded")
	resp = env.do(t, http.MethodPost, "/api/tailor", map[string]any{"jobDescription": "Platform engineer", "summary": true})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}
