package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"askpdf-backend/internal/qa"
)

const semanticScholarBaseURL = "https://api.semanticscholar.org"

// SemanticScholar searches the Semantic Scholar Graph API.
type SemanticScholar struct {
	baseURL    string
	httpClient *http.Client
}

// NewSemanticScholar constructs a source. An empty baseURL uses the public API.
func NewSemanticScholar(baseURL string) *SemanticScholar {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = semanticScholarBaseURL
	}
	return &SemanticScholar{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type paperSearchResponse struct {
	Data []struct {
		Title    string `json:"title"`
		URL      string `json:"url"`
		Abstract string `json:"abstract"`
	} `json:"data"`
}

// Search returns up to qa.MaxResources papers, or an error for the caller to
// swallow.
func (s *SemanticScholar) Search(ctx context.Context, query string) ([]qa.Resource, error) {
	endpoint := fmt.Sprintf("%s/graph/v1/paper/search?query=%s&limit=%d&fields=title,url,abstract",
		s.baseURL, url.QueryEscape(query), qa.MaxResources)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("semanticscholar request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("semanticscholar status %d", resp.StatusCode)
	}

	var parsed paperSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("semanticscholar parse: %w", err)
	}

	resources := make([]qa.Resource, 0, len(parsed.Data))
	for _, p := range parsed.Data {
		title := strings.TrimSpace(p.Title)
		link := strings.TrimSpace(p.URL)
		if title == "" && link == "" {
			continue
		}
		resources = append(resources, qa.Resource{Title: title, Link: link})
	}
	return resources, nil
}

var _ qa.ResourceSource = (*SemanticScholar)(nil)
