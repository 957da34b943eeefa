package monitor

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// Feed describes a single RSS feed endpoint.
type Feed struct {
	Name     string
	URL      string
	Category string
}

// DefaultFeeds returns the built-in RSS feed catalog, grouped by category.
func DefaultFeeds() []Feed {
	return []Feed{
		{Name: "Reuters World", URL: "https://www.reutersagency.com/feed/?taxonomy=best-sectors&post_type=best", Category: "politics"},
		{Name: "AP News", URL: "https://apnews.com/hub/world-news/feed", Category: "politics"},
		{Name: "BBC World", URL: "https://feeds.bbci.co.uk/news/world/rss.xml", Category: "politics"},
		{Name: "Foreign Policy", URL: "https://foreignpolicy.com/feed/", Category: "politics"},
		{Name: "Ars Technica", URL: "https://feeds.arstechnica.com/arstechnica/technology-lab", Category: "tech"},
		{Name: "MIT Tech Review", URL: "https://www.technologyreview.com/feed/", Category: "tech"},
		{Name: "FT", URL: "https://www.ft.com/rss/home", Category: "finance"},
		{Name: "Bloomberg", URL: "https://feeds.bloomberg.com/politics/news.rss", Category: "finance"},
		{Name: "State Dept", URL: "https://www.state.gov/rss-feed/press-releases/feed/", Category: "gov"},
		{Name: "NATO News", URL: "https://www.nato.int/cps/en/natohq/news.xml", Category: "gov"},
		{Name: "UN News", URL: "https://news.un.org/feed/subscribe/en/news/all/rss.xml", Category: "gov"},
		{Name: "CSIS", URL: "https://www.csis.org/analysis/feed", Category: "intel"},
		{Name: "Brookings", URL: "https://www.brookings.edu/feed/", Category: "intel"},
		{Name: "War on the Rocks", URL: "https://warontherocks.com/feed/", Category: "intel"},
	}
}

type rssDocument struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// rssDateLayouts are tried in order when parsing pubDate values; feeds are
// inconsistent about zone formats.
var rssDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
}

// RSSSource fetches and parses a catalog of RSS 2.0 feeds. Individual feed
// failures are logged and skipped.
type RSSSource struct {
	name   string
	feeds  []Feed
	client *http.Client
}

// NewRSSSource constructs an RSS source over the given feed catalog; a nil
// catalog selects DefaultFeeds.
func NewRSSSource(name string, feeds []Feed) *RSSSource {
	if name == "" {
		name = "rss"
	}
	if feeds == nil {
		feeds = DefaultFeeds()
	}
	return &RSSSource{
		name:   name,
		feeds:  feeds,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Name returns the source identifier.
func (s *RSSSource) Name() string { return s.name }

// Fetch downloads every feed in the catalog and returns the combined records
// within the requested timeframe.
func (s *RSSSource) Fetch(ctx context.Context, from, to time.Time) ([]NewsItem, error) {
	var results []NewsItem
	for _, feed := range s.feeds {
		items, err := s.fetchFeed(ctx, feed)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("rss: fetch %s: %v", feed.Name, err)
			continue
		}
		results = append(results, items...)
	}
	return filterWindow(results, from, to), nil
}

func (s *RSSSource) fetchFeed(ctx context.Context, feed Feed) ([]NewsItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feed.URL, nil)
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

	return parseRSS(body, feed)
}

// parseRSS extracts headline records from an RSS 2.0 document.
func parseRSS(data []byte, feed Feed) ([]NewsItem, error) {
	var doc rssDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse XML: %w", err)
	}

	items := make([]NewsItem, 0, len(doc.Channel.Items))
	for idx, entry := range doc.Channel.Items {
		title := strings.TrimSpace(entry.Title)
		link := strings.TrimSpace(entry.Link)
		if title == "" || link == "" {
			continue
		}
		if !strings.HasPrefix(link, "http") {
			link = "https://" + link
		}

		description := strings.TrimSpace(htmlTagPattern.ReplaceAllString(entry.Description, ""))

		items = append(items, NewsItem{
			ID:          fmt.Sprintf("rss-%s-%s-%d", feed.Category, hashLink(link), idx),
			Title:       title,
			Description: description,
			Link:        link,
			Source:      feed.Name,
			Category:    feed.Category,
			Timestamp:   parseRSSDate(entry.PubDate).UnixMilli(),
		})
	}
	return items, nil
}

// parseRSSDate parses a pubDate value, falling back to the current time when
// the value is missing or malformed.
func parseRSSDate(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Now()
	}
	for _, layout := range rssDateLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Now()
}
