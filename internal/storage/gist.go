package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kojima2223-star/Fumotoppara/internal/availability"
)

const (
	defaultGistAPIURL  = "https://api.github.com"
	gistStatusFilename = "last_status.txt"
	gistTimeout        = 15 * time.Second
)

// GistCache keeps the status in a private GitHub gist, for schedulers whose
// workspace is thrown away between runs.
type GistCache struct {
	gistID      string
	githubToken string
	apiURL      string
	httpClient  *http.Client
}

// NewGistCache creates a gist-backed cache.
func NewGistCache(gistID, githubToken string) (*GistCache, error) {
	if gistID == "" {
		return nil, fmt.Errorf("gist ID is required")
	}
	if githubToken == "" {
		return nil, fmt.Errorf("GitHub token is required")
	}

	return &GistCache{
		gistID:      gistID,
		githubToken: githubToken,
		apiURL:      defaultGistAPIURL,
		httpClient: &http.Client{
			Timeout: gistTimeout,
		},
	}, nil
}

// Load retrieves the status from the gist. A gist without the status file
// yet means no previous observation.
func (g *GistCache) Load() (availability.Status, error) {
	url := fmt.Sprintf("%s/gists/%s", g.apiURL, g.gistID)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return availability.None, fmt.Errorf("creating request: %w", err)
	}
	g.setHeaders(req)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return availability.None, fmt.Errorf("fetching gist: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return availability.None, fmt.Errorf("GitHub API error (status %d)", resp.StatusCode)
	}

	var gistResp struct {
		Files map[string]struct {
			Content string `json:"content"`
		} `json:"files"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&gistResp); err != nil {
		return availability.None, fmt.Errorf("decoding gist response: %w", err)
	}

	file, exists := gistResp.Files[gistStatusFilename]
	if !exists {
		return availability.None, nil
	}
	return availability.ParseStatus(file.Content), nil
}

// Save updates the gist's status file.
func (g *GistCache) Save(status availability.Status) error {
	url := fmt.Sprintf("%s/gists/%s", g.apiURL, g.gistID)

	payload := map[string]interface{}{
		"files": map[string]interface{}{
			gistStatusFilename: map[string]string{
				"content": string(status),
			},
		},
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := http.NewRequest("PATCH", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	g.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("updating gist: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GitHub API error (status %d)", resp.StatusCode)
	}

	return nil
}

func (g *GistCache) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", fmt.Sprintf("token %s", g.githubToken))
	req.Header.Set("Accept", "application/vnd.github.v3+json")
}
