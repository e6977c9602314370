package search

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"askpdf-backend/internal/qa"
)

const arxivBaseURL = "http://export.arxiv.org"

// Arxiv searches the arXiv Atom API for papers matching a query.
type Arxiv struct {
	baseURL    string
	httpClient *http.Client
}

// NewArxiv constructs an arXiv source. An empty baseURL uses the public API.
func NewArxiv(baseURL string) *Arxiv {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = arxivBaseURL
	}
	return &Arxiv{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title string `xml:"title"`
	ID    string `xml:"id"`
}

// Search returns up to qa.MaxResources papers. Errors are returned for the
// caller to swallow; a failing source is just an empty one.
func (a *Arxiv) Search(ctx context.Context, query string) ([]qa.Resource, error) {
	endpoint := fmt.Sprintf("%s/api/query?search_query=all:%s&start=0&max_results=%d",
		a.baseURL, url.QueryEscape(query), qa.MaxResources)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arxiv request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arxiv status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("arxiv read: %w", err)
	}

	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("arxiv parse: %w", err)
	}

	resources := make([]qa.Resource, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		title := collapseWhitespace(entry.Title)
		link := strings.TrimSpace(entry.ID)
		if title == "" && link == "" {
			continue
		}
		resources = append(resources, qa.Resource{Title: title, Link: link})
	}
	return resources, nil
}

// Atom titles arrive with hard-wrapped whitespace.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var _ qa.ResourceSource = (*Arxiv)(nil)
