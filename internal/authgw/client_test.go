package authgw

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type call struct {
	Action          string `json:"action"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	CurrentEmail    string `json:"currentEmail"`
	CurrentPassword string `json:"currentPassword"`
	NewEmail        string `json:"newEmail"`
	NewPassword     string `json:"newPassword"`
}

func gatewayServer(t *testing.T, calls *[]call, respond func(call) (int, string)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body call
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		*calls = append(*calls, body)
		status, reply := respond(body)
		w.WriteHeader(status)
		w.Write([]byte(reply))
	}))
}

func TestLoginSuccess(t *testing.T) {
	var calls []call
	server := gatewayServer(t, &calls, func(c call) (int, string) {
		return http.StatusOK, `{"status":"success"}`
	})
	defer server.Close()

	client := New(server.URL, nil)
	if err := client.Login(context.Background(), "  admin@example.com ", " admin123 "); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if !client.LoggedIn() {
		t.Error("expected held credentials after login")
	}
	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calls))
	}
	if calls[0].Action != "login" {
		t.Errorf("expected login action, got %q", calls[0].Action)
	}
	if calls[0].Email != "admin@example.com" || calls[0].Password != "admin123" {
		t.Errorf("expected trimmed credentials, got %q/%q", calls[0].Email, calls[0].Password)
	}
}

func TestLoginRejected(t *testing.T) {
	var calls []call
	server := gatewayServer(t, &calls, func(c call) (int, string) {
		return http.StatusOK, `{"status":"error","message":"wrong password"}`
	})
	defer server.Close()

	client := New(server.URL, nil)
	err := client.Login(context.Background(), "admin@example.com", "nope")
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
	if client.LoggedIn() {
		t.Error("failed login must not hold credentials")
	}
}

func TestLoginNonJSONResponse(t *testing.T) {
	var calls []call
	server := gatewayServer(t, &calls, func(c call) (int, string) {
		return http.StatusOK, "<html>deployment error</html>"
	})
	defer server.Close()

	client := New(server.URL, nil)
	err := client.Login(context.Background(), "admin@example.com", "admin123")
	if !errors.Is(err, ErrProtocol) {
		t.Fatalf("expected ErrProtocol, got %v", err)
	}
}

func TestLoginUnconfigured(t *testing.T) {
	client := New("", nil)
	err := client.Login(context.Background(), "a@b.c", "pw")
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestLoginNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := New(server.URL, nil)
	if err := client.Login(context.Background(), "a@b.c", "pw"); err == nil {
		t.Fatal("expected network error")
	}
	if client.LoggedIn() {
		t.Error("failed login must not hold credentials")
	}
}

func TestUpdateCredentialsMismatchMakesNoCall(t *testing.T) {
	var calls []call
	server := gatewayServer(t, &calls, func(c call) (int, string) {
		return http.StatusOK, `{"status":"success"}`
	})
	defer server.Close()

	client := New(server.URL, nil)
	if err := client.Login(context.Background(), "admin@example.com", "admin123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	calls = calls[:0]

	err := client.UpdateCredentials(context.Background(), "", "newpass", "different")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(calls) != 0 {
		t.Errorf("expected no network call, got %d", len(calls))
	}
	if !client.LoggedIn() {
		t.Error("session state must be unchanged on local validation failure")
	}
}

func TestUpdateCredentialsNothingToUpdate(t *testing.T) {
	var calls []call
	server := gatewayServer(t, &calls, func(c call) (int, string) {
		return http.StatusOK, `{"status":"success"}`
	})
	defer server.Close()

	client := New(server.URL, nil)
	if err := client.Login(context.Background(), "admin@example.com", "admin123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	calls = calls[:0]

	err := client.UpdateCredentials(context.Background(), "", "", "")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(calls) != 0 {
		t.Errorf("expected no network call, got %d", len(calls))
	}
}

func TestUpdateCredentialsRequiresLogin(t *testing.T) {
	server := gatewayServer(t, &[]call{}, func(c call) (int, string) {
		return http.StatusOK, `{"status":"success"}`
	})
	defer server.Close()

	client := New(server.URL, nil)
	err := client.UpdateCredentials(context.Background(), "new@x.dev", "", "")
	if !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
}

func TestUpdateCredentialsSuccessForcesLogout(t *testing.T) {
	var calls []call
	server := gatewayServer(t, &calls, func(c call) (int, string) {
		return http.StatusOK, `{"status":"success"}`
	})
	defer server.Close()

	client := New(server.URL, nil)
	if err := client.Login(context.Background(), "admin@example.com", "admin123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	calls = calls[:0]

	if err := client.UpdateCredentials(context.Background(), "new@x.dev", "newpass", "newpass"); err != nil {
		t.Fatalf("UpdateCredentials failed: %v", err)
	}

	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calls))
	}
	if calls[0].Action != "update_credentials" {
		t.Errorf("expected update_credentials action, got %q", calls[0].Action)
	}
	if calls[0].CurrentEmail != "admin@example.com" || calls[0].CurrentPassword != "admin123" {
		t.Errorf("expected held credentials forwarded, got %q/%q", calls[0].CurrentEmail, calls[0].CurrentPassword)
	}
	if calls[0].NewEmail != "new@x.dev" || calls[0].NewPassword != "newpass" {
		t.Errorf("unexpected new credentials: %q/%q", calls[0].NewEmail, calls[0].NewPassword)
	}
	if client.LoggedIn() {
		t.Error("expected forced logout after rotation")
	}
}

func TestUpdateCredentialsRejectedKeepsSession(t *testing.T) {
	var calls []call
	server := gatewayServer(t, &calls, func(c call) (int, string) {
		if c.Action == "login" {
			return http.StatusOK, `{"status":"success"}`
		}
		return http.StatusOK, `{"status":"error","message":"current password incorrect"}`
	})
	defer server.Close()

	client := New(server.URL, nil)
	if err := client.Login(context.Background(), "admin@example.com", "admin123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	err := client.UpdateCredentials(context.Background(), "new@x.dev", "", "")
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
	if !client.LoggedIn() {
		t.Error("rejected rotation must leave session state unchanged")
	}
}
