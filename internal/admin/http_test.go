package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalbodeule/loco-gate/ent"
	"github.com/dalbodeule/loco-gate/internal/logging"
	"github.com/dalbodeule/loco-gate/internal/session"
)

// fakeTunnelService answers from an in-memory map, no database.
type fakeTunnelService struct {
	tunnels map[string]string // subdomain -> token
}

func (f *fakeTunnelService) RegisterTunnel(_ context.Context, subdomain, _ string) (string, error) {
	if strings.Contains(subdomain, " ") {
		return "", ErrInvalidSubdomain
	}
	token := "tok-" + subdomain
	f.tunnels[subdomain] = token
	return token, nil
}

func (f *fakeTunnelService) UnregisterTunnel(_ context.Context, subdomain, authToken string) error {
	if f.tunnels[subdomain] != authToken {
		return ErrTunnelNotFound
	}
	delete(f.tunnels, subdomain)
	return nil
}

func (f *fakeTunnelService) IsTunnelRegistered(_ context.Context, subdomain string) (bool, error) {
	_, ok := f.tunnels[subdomain]
	return ok, nil
}

func (f *fakeTunnelService) GetTunnel(_ context.Context, subdomain string) (*ent.Tunnel, error) {
	if _, ok := f.tunnels[subdomain]; !ok {
		return nil, ErrTunnelNotFound
	}
	return &ent.Tunnel{Subdomain: subdomain, Memo: "test"}, nil
}

func newTestServer(t *testing.T, svc TunnelService, reg *session.Registry) *httptest.Server {
	t.Helper()
	h := NewHandler(logging.NewLeveledJSONLogger("test", logging.ErrorLevel), "admin-key", svc, reg)
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, apiKey, body string) (int, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, decoded
}

func TestAdminAuthRequired(t *testing.T) {
	srv := newTestServer(t, &fakeTunnelService{tunnels: map[string]string{}}, nil)

	status, body := doJSON(t, http.MethodGet, srv.URL+"/api/v1/admin/sessions", "", "")
	if status != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", status)
	}
	if body["success"] != false {
		t.Fatalf("body = %v", body)
	}

	status, _ = doJSON(t, http.MethodGet, srv.URL+"/api/v1/admin/sessions", "wrong-key", "")
	if status != http.StatusUnauthorized {
		t.Fatalf("status with wrong key = %d, want 401", status)
	}
}

func TestTunnelRegisterUnregister(t *testing.T) {
	svc := &fakeTunnelService{tunnels: map[string]string{}}
	srv := newTestServer(t, svc, nil)

	status, body := doJSON(t, http.MethodPost, srv.URL+"/api/v1/admin/tunnels/register",
		"admin-key", `{"subdomain":"my-app","memo":"test"}`)
	if status != http.StatusOK {
		t.Fatalf("register status = %d: %v", status, body)
	}
	token, _ := body["auth_token"].(string)
	if token == "" {
		t.Fatalf("no auth_token in response: %v", body)
	}

	status, body = doJSON(t, http.MethodGet, srv.URL+"/api/v1/admin/tunnels/exists?subdomain=my-app",
		"admin-key", "")
	if status != http.StatusOK || body["exists"] != true {
		t.Fatalf("exists = %v (%d)", body, status)
	}

	status, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/admin/tunnels/unregister",
		"admin-key", `{"subdomain":"my-app","auth_token":"`+token+`"}`)
	if status != http.StatusOK {
		t.Fatalf("unregister status = %d", status)
	}

	_, body = doJSON(t, http.MethodGet, srv.URL+"/api/v1/admin/tunnels/exists?subdomain=my-app",
		"admin-key", "")
	if body["exists"] != false {
		t.Fatalf("tunnel still exists after unregister: %v", body)
	}
}

func TestTunnelStatusReportsLiveSession(t *testing.T) {
	svc := &fakeTunnelService{tunnels: map[string]string{"my-app": "tok-my-app"}}
	reg := session.NewRegistry(logging.NewLeveledJSONLogger("test", logging.ErrorLevel), time.Second)
	srv := newTestServer(t, svc, reg)

	status, body := doJSON(t, http.MethodGet, srv.URL+"/api/v1/admin/tunnels/status?subdomain=my-app",
		"admin-key", "")
	if status != http.StatusOK || body["connected"] != false {
		t.Fatalf("status before connect = %v (%d)", body, status)
	}

	sess, err := reg.Register("my-app", "my-app")
	if err != nil {
		t.Fatal(err)
	}
	sess.AttachMux(nil)

	_, body = doJSON(t, http.MethodGet, srv.URL+"/api/v1/admin/tunnels/status?subdomain=my-app",
		"admin-key", "")
	if body["connected"] != true {
		t.Fatalf("status after connect = %v", body)
	}
}

func TestSessionsEndpoint(t *testing.T) {
	reg := session.NewRegistry(logging.NewLeveledJSONLogger("test", logging.ErrorLevel), time.Second)
	srv := newTestServer(t, nil, reg)

	sess, err := reg.Register("alice", "app")
	if err != nil {
		t.Fatal(err)
	}
	sess.AttachMux(nil)

	status, body := doJSON(t, http.MethodGet, srv.URL+"/api/v1/admin/sessions", "admin-key", "")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	sessions, _ := body["sessions"].([]any)
	if len(sessions) != 1 {
		t.Fatalf("sessions = %v", body)
	}
}

func TestTunnelAPIWithoutStore(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	status, _ := doJSON(t, http.MethodPost, srv.URL+"/api/v1/admin/tunnels/register",
		"admin-key", `{"subdomain":"x"}`)
	if status != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", status)
	}
}
