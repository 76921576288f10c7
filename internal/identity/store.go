package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// Store is the read-mostly surface of the external identity store. A nil
// Record with a nil error means "no mirrored row for this user"; a non-nil
// error means the store could not be reached and callers must fail closed.
//
//go:generate mockgen -source=store.go -destination=mock/store_mock.go -package=mock
type Store interface {
	GetByID(ctx context.Context, id string) (*Record, error)
	GetByEmail(ctx context.Context, email string) (*Record, error)
	UpdateRole(ctx context.Context, email string, role Role) error
}

// httpStore talks to a PostgREST-style endpoint
// (GET {base}/rest/v1/{table}?{col}=eq.{value}).
type httpStore struct {
	baseURL    string
	serviceKey string
	table      string
	client     *http.Client
	logger     *zap.Logger
}

type StoreConfig struct {
	BaseURL    string
	ServiceKey string
	Table      string // defaults to "usuarios"
}

func NewHTTPStore(cfg StoreConfig, logger ...*zap.Logger) Store {
	l := zap.L().Named("identity.store")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("identity.store")
	}
	table := cfg.Table
	if table == "" {
		table = "usuarios"
	}
	return &httpStore{
		baseURL:    cfg.BaseURL,
		serviceKey: cfg.ServiceKey,
		table:      table,
		client:     &http.Client{Timeout: 5 * time.Second},
		logger:     l,
	}
}

func (s *httpStore) GetByID(ctx context.Context, id string) (*Record, error) {
	return s.getByColumn(ctx, "id", id)
}

func (s *httpStore) GetByEmail(ctx context.Context, email string) (*Record, error) {
	return s.getByColumn(ctx, "email", email)
}

func (s *httpStore) getByColumn(ctx context.Context, column, value string) (*Record, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/%s?%s=eq.%s&select=*&limit=1",
		s.baseURL, s.table, column, url.QueryEscape(value))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("identity store unreachable", zap.String("column", column), zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("identity store returned %d: %s", resp.StatusCode, body)
	}

	var rows []map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	return recordFromRow(rows[0]), nil
}

func (s *httpStore) UpdateRole(ctx context.Context, email string, role Role) error {
	endpoint := fmt.Sprintf("%s/rest/v1/%s?email=eq.%s",
		s.baseURL, s.table, url.QueryEscape(email))

	payload, err := json.Marshal(map[string]string{"rol": string(role)})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	s.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("identity store role update returned %d: %s", resp.StatusCode, body)
	}

	return nil
}

func (s *httpStore) setHeaders(req *http.Request) {
	req.Header.Set("apikey", s.serviceKey)
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("Accept", "application/json")
}
