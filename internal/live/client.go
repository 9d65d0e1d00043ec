package live

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/five82/modsnap/internal/snapshot"
	"github.com/five82/modsnap/internal/store"
)

// Source produces the snapshot of the environment that is about to load a world.
type Source interface {
	FetchSnapshot(ctx context.Context) (snapshot.Snapshot, error)
}

// Ensure both sources implement Source at compile time.
var (
	_ Source = (*Client)(nil)
	_ Source = StoreSource{}
)

// Client talks to the host's introspection API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultHost      = "127.0.0.1:25585"
	defaultUserAgent = "modsnap/0.1"
	requestTimeout   = 5 * time.Second
)

// ModsResponse mirrors /api/mods.
type ModsResponse struct {
	Mods []ModPayload `json:"mods"`
}

// ModPayload is one active mod as reported by the host.
type ModPayload struct {
	ID      string `json:"id"`
	Version string `json:"version"`
	Name    string `json:"name"`
}

// RegistriesResponse mirrors /api/registries.
type RegistriesResponse struct {
	MCVersion  string              `json:"mcVersion"`
	Registries map[string][]string `json:"registries"`
}

// NewClient builds a Client for the given host:port or URL.
func NewClient(host string) (*Client, error) {
	base, err := parseBaseURL(host)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// FetchMods retrieves the currently active mods.
func (c *Client) FetchMods(ctx context.Context) ([]ModPayload, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload ModsResponse
	if err := c.do(ctx, http.MethodGet, "/api/mods", &payload); err != nil {
		return nil, err
	}
	return payload.Mods, nil
}

// FetchRegistries retrieves the registered content ids and the host version.
func (c *Client) FetchRegistries(ctx context.Context) (*RegistriesResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload RegistriesResponse
	if err := c.do(ctx, http.MethodGet, "/api/registries", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchSnapshot combines /api/mods and /api/registries into a Snapshot.
func (c *Client) FetchSnapshot(ctx context.Context) (snapshot.Snapshot, error) {
	mods, err := c.FetchMods(ctx)
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("fetch mods: %w", err)
	}
	regs, err := c.FetchRegistries(ctx)
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("fetch registries: %w", err)
	}

	entries := make([]snapshot.ModEntry, 0, len(mods))
	for _, m := range mods {
		id := strings.TrimSpace(m.ID)
		if id == "" {
			continue
		}
		entries = append(entries, snapshot.ModEntry{ID: id, Version: m.Version, Name: m.Name})
	}
	return snapshot.New(regs.MCVersion, entries, regs.Registries), nil
}

func (c *Client) do(ctx context.Context, method, path string, dest any) error {
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.String(), resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(host string) (*url.URL, error) {
	trimmed := strings.TrimSpace(host)
	if trimmed == "" {
		trimmed = defaultHost
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse host %q: %w", host, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// StoreSource serves a previously saved snapshot directory as the current
// environment.
type StoreSource struct {
	Store *store.Store
}

// FetchSnapshot loads the directory. A directory with no snapshot is an error
// here, since comparing against nothing would report every entry as lost.
func (s StoreSource) FetchSnapshot(context.Context) (snapshot.Snapshot, error) {
	if s.Store == nil {
		return snapshot.Snapshot{}, fmt.Errorf("store is nil")
	}
	snap := s.Store.Load()
	if !snap.Usable() {
		return snapshot.Snapshot{}, fmt.Errorf("no snapshot in %s", s.Store.Dir())
	}
	return snap, nil
}
