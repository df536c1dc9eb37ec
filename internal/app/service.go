package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"myself/console/internal/authgw"
	"myself/console/internal/deploy"
	"myself/console/internal/export"
	"myself/console/internal/portfolio"
	"myself/console/internal/preview"
	"myself/console/internal/store"
)

// Store persists the draft document and the single admin session.
type Store interface {
	SaveDraft(ctx context.Context, payload []byte) error
	LoadDraft(ctx context.Context) ([]byte, error)
	ClearDraft(ctx context.Context) error
	SetSession(ctx context.Context, token string, ttl time.Duration) error
	SessionValid(ctx context.Context, token string) (bool, error)
	ClearSession(ctx context.Context) error
	Ping(ctx context.Context) error
}

// Gateway is the external auth endpoint client.
type Gateway interface {
	Configured() bool
	Endpoint() string
	Login(ctx context.Context, email, password string) error
	UpdateCredentials(ctx context.Context, newEmail, newPassword, confirmPassword string) error
	Logout()
	LoggedIn() bool
}

// Publisher pushes the document to the remote repository.
type Publisher interface {
	Deploy(ctx context.Context, doc portfolio.Document, target portfolio.GitHubConfig) error
}

// AssetStore uploads images and returns public URLs. Nil disables uploads.
type AssetStore interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error)
}

// Service owns the editing session: one in-memory draft document, guarded by
// a mutex, plus the persistence, auth and publishing collaborators.
type Service struct {
	store      Store
	gateway    Gateway
	publisher  Publisher
	assets     AssetStore
	sessionTTL time.Duration

	mu  sync.Mutex
	doc portfolio.Document
}

func NewService(st Store, gw Gateway, pub Publisher, assets AssetStore, sessionTTL time.Duration) *Service {
	return &Service{
		store:      st,
		gateway:    gw,
		publisher:  pub,
		assets:     assets,
		sessionTTL: sessionTTL,
		doc:        portfolio.DefaultDocument(),
	}
}

// Bootstrap hydrates the draft from storage. A missing or unreadable draft
// falls back to the defaults; the service always starts with a usable
// document.
func (s *Service) Bootstrap(ctx context.Context) {
	defaults := portfolio.DefaultDocument()

	raw, err := s.store.LoadDraft(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrAbsent) {
			log.Printf("load draft: %v", err)
		}
		return
	}

	doc, err := portfolio.Merge(defaults, raw)
	if err != nil {
		log.Printf("hydrate draft: %v, using defaults", err)
		doc = defaults
	}

	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
}

// Document returns a deep copy of the current draft.
func (s *Service) Document() portfolio.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// ── Draft editing ──

func (s *Service) UpdateField(section, field string, value any) (portfolio.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := portfolio.UpdateField(s.doc, section, field, value)
	if err != nil {
		return portfolio.Document{}, mapDraftError(err)
	}
	s.doc = doc
	return doc.Clone(), nil
}

func (s *Service) UpdateAboutFeature(index int, field string, value any) (portfolio.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := portfolio.UpdateAboutFeature(s.doc, index, field, value)
	if err != nil {
		return portfolio.Document{}, mapDraftError(err)
	}
	s.doc = doc
	return doc.Clone(), nil
}

func (s *Service) UpdateListItem(section, id, field string, value any) (portfolio.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := portfolio.UpdateListItem(s.doc, section, id, field, value)
	if err != nil {
		return portfolio.Document{}, mapDraftError(err)
	}
	s.doc = doc
	return doc.Clone(), nil
}

func (s *Service) AddListItem(section string, template map[string]any) (portfolio.Document, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, id, err := portfolio.AddListItem(s.doc, section, template)
	if err != nil {
		return portfolio.Document{}, "", mapDraftError(err)
	}
	s.doc = doc
	return doc.Clone(), id, nil
}

func (s *Service) RemoveListItem(section, id string) (portfolio.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := portfolio.RemoveListItem(s.doc, section, id)
	if err != nil {
		return portfolio.Document{}, mapDraftError(err)
	}
	s.doc = doc
	return doc.Clone(), nil
}

// Reset restores the defaults, clears the stored draft and ends the admin
// session. The operator lands back at the login screen with factory content.
func (s *Service) Reset(ctx context.Context) (portfolio.Document, error) {
	defaults := portfolio.DefaultDocument()

	if err := s.store.ClearDraft(ctx); err != nil {
		return portfolio.Document{}, fmt.Errorf("clear draft: %w", err)
	}
	if err := s.store.ClearSession(ctx); err != nil {
		return portfolio.Document{}, fmt.Errorf("clear session: %w", err)
	}
	s.gateway.Logout()

	s.mu.Lock()
	s.doc = defaults
	s.mu.Unlock()
	return defaults.Clone(), nil
}

// ── Auth ──

// Login verifies the credentials against the gateway and opens the single
// admin session. Any prior session token stops working.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	if err := s.gateway.Login(ctx, email, password); err != nil {
		return "", mapGatewayError(err, http.StatusUnauthorized)
	}

	token := randomToken()
	if err := s.store.SetSession(ctx, token, s.sessionTTL); err != nil {
		return "", fmt.Errorf("open session: %w", err)
	}
	return token, nil
}

func (s *Service) Logout(ctx context.Context) error {
	s.gateway.Logout()
	return s.store.ClearSession(ctx)
}

func (s *Service) SessionValid(ctx context.Context, token string) (bool, error) {
	return s.store.SessionValid(ctx, token)
}

// UpdateCredentials rotates the remote credentials. Success invalidates the
// current session: the operator has to log in with the new credentials.
func (s *Service) UpdateCredentials(ctx context.Context, newEmail, newPassword, confirmPassword string) error {
	if err := s.gateway.UpdateCredentials(ctx, newEmail, newPassword, confirmPassword); err != nil {
		return mapGatewayError(err, http.StatusUnauthorized)
	}
	if err := s.store.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// ── Preview ──

// InstantPreview persists the stamped draft and returns the preview
// location. When the draft does not fit the storage quota, nothing is
// persisted and no handoff happens.
func (s *Service) InstantPreview(ctx context.Context) (string, error) {
	s.mu.Lock()
	stamped := s.doc.Stamp(s.gateway.Endpoint())
	s.mu.Unlock()

	payload, err := portfolio.EncodeEnvelope(stamped)
	if err != nil {
		return "", fmt.Errorf("encode draft: %w", err)
	}
	if err := s.store.SaveDraft(ctx, payload); err != nil {
		if errors.Is(err, store.ErrCapacity) {
			return "", errStorageFull()
		}
		return "", fmt.Errorf("save draft: %w", err)
	}

	s.mu.Lock()
	s.doc = stamped
	s.mu.Unlock()
	return preview.Location, nil
}

// PreviewDocument reads the stored draft the way the preview page does: per
// request, falling back to defaults when nothing usable is stored.
func (s *Service) PreviewDocument(ctx context.Context) portfolio.Document {
	defaults := portfolio.DefaultDocument()

	raw, err := s.store.LoadDraft(ctx)
	if err != nil {
		return defaults
	}
	doc, err := portfolio.Merge(defaults, raw)
	if err != nil {
		return defaults
	}
	return doc
}

// ── Publishing ──

// Deploy stamps the draft and pushes it to the configured repository. On
// success the stamped draft is persisted so the local copy matches what was
// published.
func (s *Service) Deploy(ctx context.Context) error {
	s.mu.Lock()
	stamped := s.doc.Stamp(s.gateway.Endpoint())
	s.mu.Unlock()

	var target portfolio.GitHubConfig
	if stamped.Settings.GitHub != nil {
		target = *stamped.Settings.GitHub
	}
	if target.Username == "" || target.Repo == "" || target.PAT == "" {
		return errConfigMissing(
			"GitHub username, repository and token are required before deploying",
			map[string]any{"redirect": "settings"},
		)
	}

	if err := s.publisher.Deploy(ctx, stamped, target); err != nil {
		return mapDeployError(err)
	}

	payload, err := portfolio.EncodeEnvelope(stamped)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := s.store.SaveDraft(ctx, payload); err != nil {
		// The push already landed; losing the local save is not fatal.
		log.Printf("save draft after deploy: %v", err)
	}

	s.mu.Lock()
	s.doc = stamped
	s.mu.Unlock()
	return nil
}

// ── Supplements ──

func (s *Service) SnapshotPDF() (*export.Result, error) {
	return export.Snapshot(s.Document())
}

func (s *Service) UploadAsset(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error) {
	if s.assets == nil {
		return "", domainError(http.StatusServiceUnavailable, "ASSETS_UNAVAILABLE", "Asset storage is not configured", nil)
	}
	url, err := s.assets.Upload(ctx, filename, contentType, r, size)
	if err != nil {
		return "", fmt.Errorf("upload asset: %w", err)
	}
	return url, nil
}

// ── Error mapping ──

func mapDraftError(err error) error {
	switch {
	case errors.Is(err, portfolio.ErrUnknownSection),
		errors.Is(err, portfolio.ErrUnknownField),
		errors.Is(err, portfolio.ErrBadValue):
		return errValidation(err.Error())
	default:
		return err
	}
}

// mapGatewayError translates gateway sentinels into the domain taxonomy.
// rejectedStatus is the HTTP status a remote rejection carries in the
// caller's context.
func mapGatewayError(err error, rejectedStatus int) error {
	switch {
	case errors.Is(err, authgw.ErrNotConfigured):
		return errConfigMissing("Auth endpoint is not configured", nil)
	case errors.Is(err, authgw.ErrValidation):
		return errValidation(err.Error())
	case errors.Is(err, authgw.ErrNotLoggedIn):
		return domainError(http.StatusUnauthorized, "UNAUTHORIZED", "Log in before updating credentials", nil)
	case errors.Is(err, authgw.ErrRejected):
		return errRemoteRejected(rejectedStatus, err.Error())
	case errors.Is(err, authgw.ErrProtocol):
		return errUpstreamProtocol("Auth endpoint returned an unexpected response")
	default:
		return errUpstreamUnreachable("Could not reach the auth endpoint")
	}
}

func mapDeployError(err error) error {
	switch {
	case errors.Is(err, deploy.ErrConfigMissing):
		return errConfigMissing(
			"GitHub username, repository and token are required before deploying",
			map[string]any{"redirect": "settings"},
		)
	case errors.Is(err, deploy.ErrInFlight):
		return errDeployInFlight()
	case errors.Is(err, deploy.ErrFetchInfo):
		return domainError(http.StatusBadGateway, "UPSTREAM_UNREACHABLE", "Could not read the target file from the repository", nil)
	case errors.Is(err, deploy.ErrRejected):
		return errRemoteRejected(http.StatusBadGateway, "The repository rejected the update")
	default:
		return errUpstreamUnreachable("Could not reach the repository")
	}
}

func randomToken() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
