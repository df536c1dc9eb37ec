package deploy

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"myself/console/internal/portfolio"
)

type recordedPut struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha"`
	Branch  string `json:"branch"`
}

type fakeHost struct {
	mu        sync.Mutex
	gets      int
	puts      []recordedPut
	getStatus int
	getBody   string
	putStatus int
	release   chan struct{} // when set, GET blocks until closed
}

func (h *fakeHost) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.mu.Lock()
			h.gets++
			release := h.release
			h.mu.Unlock()
			if release != nil {
				<-release
			}
			if auth := r.Header.Get("Authorization"); auth != "token test-pat" {
				t.Errorf("unexpected auth header %q", auth)
			}
			if ref := r.URL.Query().Get("ref"); ref != "main" {
				t.Errorf("unexpected ref %q", ref)
			}
			w.WriteHeader(h.getStatus)
			w.Write([]byte(h.getBody))
		case http.MethodPut:
			var body recordedPut
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("bad PUT body: %v", err)
			}
			h.mu.Lock()
			h.puts = append(h.puts, body)
			h.mu.Unlock()
			w.WriteHeader(h.putStatus)
			w.Write([]byte(`{"content":{}}`))
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}
}

func testTarget() portfolio.GitHubConfig {
	return portfolio.GitHubConfig{Username: "jane", Repo: "my-portfolio", PAT: "test-pat", Branch: "main"}
}

func TestDeployHappyPath(t *testing.T) {
	host := &fakeHost{getStatus: http.StatusOK, getBody: `{"sha":"abc"}`, putStatus: http.StatusOK}
	server := httptest.NewServer(host.handler(t))
	defer server.Close()

	doc := portfolio.DefaultDocument()
	publisher := New(server.URL, "constants.ts", nil)

	if err := publisher.Deploy(context.Background(), doc, testTarget()); err != nil {
		t.Fatalf("Deploy failed: %v", err)
	}

	if host.gets != 1 {
		t.Errorf("expected exactly 1 GET, got %d", host.gets)
	}
	if len(host.puts) != 1 {
		t.Fatalf("expected exactly 1 PUT, got %d", len(host.puts))
	}

	put := host.puts[0]
	if put.SHA != "abc" {
		t.Errorf("PUT sha must echo the fetched marker, got %q", put.SHA)
	}
	if put.Branch != "main" {
		t.Errorf("unexpected branch %q", put.Branch)
	}
	if put.Message != "Update content via Admin Panel" {
		t.Errorf("unexpected commit message %q", put.Message)
	}

	decoded, err := base64.StdEncoding.DecodeString(put.Content)
	if err != nil {
		t.Fatalf("PUT content is not base64: %v", err)
	}
	text := string(decoded)
	if !strings.Contains(text, "export const INITIAL_DATA: PortfolioData =") {
		t.Errorf("rendered artifact is not the data module:\n%s", text)
	}
	if !strings.Contains(text, doc.Hero.Name) {
		t.Error("rendered artifact is missing document content")
	}
}

func TestDeployFetchInfoFailureSkipsPut(t *testing.T) {
	host := &fakeHost{getStatus: http.StatusNotFound, getBody: `{"message":"Not Found"}`, putStatus: http.StatusOK}
	server := httptest.NewServer(host.handler(t))
	defer server.Close()

	publisher := New(server.URL, "constants.ts", nil)
	err := publisher.Deploy(context.Background(), portfolio.DefaultDocument(), testTarget())
	if !errors.Is(err, ErrFetchInfo) {
		t.Fatalf("expected ErrFetchInfo, got %v", err)
	}
	if len(host.puts) != 0 {
		t.Errorf("expected no PUT after failed GET, got %d", len(host.puts))
	}
}

func TestDeployPutFailure(t *testing.T) {
	host := &fakeHost{getStatus: http.StatusOK, getBody: `{"sha":"abc"}`, putStatus: http.StatusConflict}
	server := httptest.NewServer(host.handler(t))
	defer server.Close()

	publisher := New(server.URL, "constants.ts", nil)
	err := publisher.Deploy(context.Background(), portfolio.DefaultDocument(), testTarget())
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
}

func TestDeployIncompleteConfig(t *testing.T) {
	publisher := New("http://unused", "constants.ts", nil)

	for _, target := range []portfolio.GitHubConfig{
		{},
		{Username: "jane", Repo: "site"},
		{Username: "jane", PAT: "tok"},
		{Repo: "site", PAT: "tok"},
	} {
		err := publisher.Deploy(context.Background(), portfolio.DefaultDocument(), target)
		if !errors.Is(err, ErrConfigMissing) {
			t.Errorf("target %+v: expected ErrConfigMissing, got %v", target, err)
		}
	}
}

func TestDeployBranchDefaultsToMain(t *testing.T) {
	host := &fakeHost{getStatus: http.StatusOK, getBody: `{"sha":"abc"}`, putStatus: http.StatusOK}
	server := httptest.NewServer(host.handler(t))
	defer server.Close()

	target := testTarget()
	target.Branch = ""
	publisher := New(server.URL, "constants.ts", nil)
	if err := publisher.Deploy(context.Background(), portfolio.DefaultDocument(), target); err != nil {
		t.Fatalf("Deploy failed: %v", err)
	}
	if host.puts[0].Branch != "main" {
		t.Errorf("expected default branch main, got %q", host.puts[0].Branch)
	}
}

func TestDeployRejectsOverlappingRun(t *testing.T) {
	release := make(chan struct{})
	host := &fakeHost{getStatus: http.StatusOK, getBody: `{"sha":"abc"}`, putStatus: http.StatusOK, release: release}
	server := httptest.NewServer(host.handler(t))
	defer server.Close()

	publisher := New(server.URL, "constants.ts", nil)

	first := make(chan error, 1)
	go func() {
		first <- publisher.Deploy(context.Background(), portfolio.DefaultDocument(), testTarget())
	}()

	// wait for the first run to be inside its GET
	for {
		host.mu.Lock()
		started := host.gets > 0
		host.mu.Unlock()
		if started {
			break
		}
		time.Sleep(time.Millisecond)
	}

	err := publisher.Deploy(context.Background(), portfolio.DefaultDocument(), testTarget())
	if !errors.Is(err, ErrInFlight) {
		t.Fatalf("expected ErrInFlight, got %v", err)
	}

	close(release)
	if err := <-first; err != nil {
		t.Fatalf("first deploy failed: %v", err)
	}
}

func TestRenderDataFileShape(t *testing.T) {
	doc := portfolio.DefaultDocument()
	doc.Contact.FormActionURL = "https://forms.example.dev/submit"

	text, err := RenderDataFile(doc)
	if err != nil {
		t.Fatalf("RenderDataFile failed: %v", err)
	}
	if !strings.HasPrefix(text, "\nimport { PortfolioData } from './types';") {
		t.Errorf("unexpected header:\n%s", text[:60])
	}
	if !strings.HasSuffix(strings.TrimRight(text, "\n"), ";") {
		t.Error("expected trailing semicolon")
	}

	// the embedded JSON must be parseable back into the document shape
	start := strings.Index(text, "= ") + 2
	end := strings.LastIndex(text, ";")
	var roundtrip portfolio.Document
	if err := json.Unmarshal([]byte(text[start:end]), &roundtrip); err != nil {
		t.Fatalf("embedded JSON does not parse: %v", err)
	}
	if roundtrip.Contact.FormActionURL != doc.Contact.FormActionURL {
		t.Error("stamped form url missing from artifact")
	}
}
