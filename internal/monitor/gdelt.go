package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultGdeltBaseURL = "https://api.gdeltproject.org/api/v2/doc/doc"

// gdeltDateLayout matches the DOC API's seendate format, e.g. 20251202T224500Z.
const gdeltDateLayout = "20060102T150405Z"

// gdeltCategoryQueries holds the OR query per news category, in fetch order.
var gdeltCategoryQueries = []struct {
	Category string
	Query    string
}{
	{"politics", `(diplomacy OR "foreign policy" OR "international relations" OR summit OR treaty OR sanctions OR "bilateral talks")`},
	{"tech", `(technology OR cybersecurity OR "cyber attack" OR infrastructure OR "critical systems")`},
	{"finance", `(sanctions OR "trade war" OR tariff OR "economic policy" OR "central bank" OR "currency crisis")`},
	{"gov", `(government OR "state department" OR pentagon OR "defense ministry" OR NATO OR "united nations")`},
	{"ai", `("artificial intelligence" OR "machine learning" OR AI OR "autonomous weapons")`},
	{"intel", `(military OR "armed forces" OR conflict OR war OR "intelligence agency" OR espionage OR "security threat" OR geopolitics)`},
}

type gdeltArticle struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	SeenDate string `json:"seendate"`
	Domain   string `json:"domain"`
}

type gdeltResponse struct {
	Articles []gdeltArticle `json:"articles"`
}

// GdeltSource fetches recent articles from the GDELT DOC 2.0 API, one query
// per news category. Individual category failures are logged and skipped:
// the upstream is best-effort and a partial corpus is better than none.
type GdeltSource struct {
	name    string
	baseURL string
	client  *http.Client
}

// NewGdeltSource constructs a GDELT source with a default HTTP client.
func NewGdeltSource(name string) *GdeltSource {
	if name == "" {
		name = "gdelt"
	}
	return &GdeltSource{
		name:    name,
		baseURL: defaultGdeltBaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Name returns the source identifier.
func (s *GdeltSource) Name() string { return s.name }

// Fetch queries every category and returns the combined records within the
// requested timeframe.
func (s *GdeltSource) Fetch(ctx context.Context, from, to time.Time) ([]NewsItem, error) {
	var results []NewsItem
	for _, cq := range gdeltCategoryQueries {
		items, err := s.fetchCategory(ctx, cq.Category, cq.Query)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("gdelt: fetch %s: %v", cq.Category, err)
			continue
		}
		results = append(results, items...)
	}
	return filterWindow(results, from, to), nil
}

func (s *GdeltSource) fetchCategory(ctx context.Context, category, query string) ([]NewsItem, error) {
	params := url.Values{}
	params.Set("query", query+" sourcelang:english")
	params.Set("timespan", "7d")
	params.Set("mode", "artlist")
	params.Set("maxrecords", "20")
	params.Set("format", "json")
	params.Set("sort", "date")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var payload gdeltResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}

	items := make([]NewsItem, 0, len(payload.Articles))
	for idx, article := range payload.Articles {
		if article.Title == "" || article.URL == "" {
			continue
		}
		source := article.Domain
		if source == "" {
			source = "Unknown"
		}
		items = append(items, NewsItem{
			ID:        fmt.Sprintf("gdelt-%s-%s-%d", category, hashLink(article.URL), idx),
			Title:     article.Title,
			Link:      article.URL,
			Source:    source,
			Category:  category,
			Timestamp: parseGdeltDate(article.SeenDate).UnixMilli(),
		})
	}
	return items, nil
}

// parseGdeltDate parses the compact seendate format, falling back to the
// current time when the value is missing or malformed.
func parseGdeltDate(value string) time.Time {
	if value == "" {
		return time.Now()
	}
	ts, err := time.Parse(gdeltDateLayout, value)
	if err != nil {
		return time.Now()
	}
	return ts
}

func hashLink(link string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(link))
	return strconv.FormatUint(uint64(h.Sum32()), 36)
}
