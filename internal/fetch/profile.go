// Package fetch retrieves raw player profile pages over HTTP and
// flattens them into field maps. It is polite by construction:
// robots.txt aware, rate limited per host, body size capped.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/afriquesports/factsheet/internal/facts"
	"github.com/afriquesports/factsheet/internal/model"
	"github.com/afriquesports/factsheet/internal/worker"
)

// URLResolver maps an entity name to its profile page URL.
type URLResolver func(name string) string

// SlugURL returns a resolver that appends a lowercase hyphenated slug
// of the name to base.
func SlugURL(base string) URLResolver {
	base = strings.TrimRight(base, "/")
	return func(name string) string {
		slug := strings.ToLower(strings.TrimSpace(name))
		slug = strings.Join(strings.Fields(slug), "-")
		return base + "/" + slug
	}
}

// ProfileFetcher fetches profile pages concurrently and extracts
// label/value tables into raw field maps.
type ProfileFetcher struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
	source    string
	robots    *robotsChecker
	limiter   *worker.Limiter
	urlFor    URLResolver
	workers   int
	log       *zap.SugaredLogger
}

// NewProfileFetcher creates a fetcher from HTTP settings. urlFor is
// required; workers bounds concurrent page loads.
func NewProfileFetcher(cfg model.HTTPConfig, urlFor URLResolver, workers int, log *zap.SugaredLogger) *ProfileFetcher {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if workers <= 0 {
		workers = 2
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	return &ProfileFetcher{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		source:    "transfermarkt",
		robots:    newRobotsChecker(cfg.UserAgent, timeout),
		limiter:   worker.NewLimiter(cfg.RequestsPerSecond, cfg.Burst),
		urlFor:    urlFor,
		workers:   workers,
		log:       log,
	}
}

type profileTask struct {
	f    *ProfileFetcher
	name string
}

type profileOutcome struct {
	outcome facts.Outcome
}

func (o profileOutcome) Err() error {
	if o.outcome.Success {
		return nil
	}
	return fmt.Errorf("fetch %s failed", o.outcome.Name)
}

func (t profileTask) Run(ctx context.Context) worker.Outcome {
	return profileOutcome{outcome: t.f.fetchOne(ctx, t.name)}
}

// FetchMany loads one profile page per name. Every name gets an
// outcome; transport and policy failures surface as Success=false.
func (f *ProfileFetcher) FetchMany(ctx context.Context, names []string) []facts.Outcome {
	if len(names) == 0 {
		return nil
	}

	size := f.workers
	if len(names) < size {
		size = len(names)
	}
	pool := worker.NewPool(ctx, size)
	pool.Start()
	for _, name := range names {
		pool.Submit(profileTask{f: f, name: name})
	}

	outcomes := make([]facts.Outcome, 0, len(names))
	for _, result := range pool.Drain() {
		if po, ok := result.(profileOutcome); ok {
			outcomes = append(outcomes, po.outcome)
		}
	}
	return outcomes
}

func (f *ProfileFetcher) fetchOne(ctx context.Context, name string) facts.Outcome {
	pageURL := f.urlFor(name)
	fail := func(format string, args ...any) facts.Outcome {
		msg := fmt.Sprintf(format, args...)
		f.log.Warnw("profile fetch failed", "name", name, "url", pageURL, "reason", msg)
		return facts.Outcome{Name: name, Source: f.source, Errors: []string{msg}}
	}

	ok, delay := f.robots.allowed(ctx, pageURL)
	if !ok {
		return fail("disallowed by robots.txt: %s", pageURL)
	}
	if err := f.limiter.Wait(ctx, pageURL); err != nil {
		return fail("rate limit wait: %v", err)
	}
	if delay > 0 {
		select {
		case <-ctx.Done():
			return fail("crawl delay wait: %v", ctx.Err())
		case <-time.After(delay):
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return fail("create request: %v", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9,en;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return fail("fetch: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fail("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return fail("read body: %v", err)
	}

	raw := ParseProfile(string(body), resp.Request.URL.String())
	if len(raw) == 0 {
		return fail("no profile fields found at %s", pageURL)
	}
	if _, ok := raw["name"]; !ok {
		raw["name"] = name
	}

	f.log.Debugw("profile fetched", "name", name, "fields", len(raw))
	return facts.Outcome{Name: name, Success: true, Source: f.source, Raw: raw}
}

var ageParen = regexp.MustCompile(`\((\d{1,2})\)\s*$`)

// labelKeys maps normalized page labels to raw field names.
var labelKeys = map[string]string{
	"date of birth/age": "birthDate",
	"date of birth":     "birthDate",
	"age":               "age",
	"citizenship":       "nationality",
	"nationality":       "nationality",
	"current club":      "currentClub",
	"club":              "currentClub",
	"position":          "position",
	"shirt number":      "shirtNumber",
	"foot":              "preferredFoot",
	"preferred foot":    "preferredFoot",
	"contract expires":  "contractUntil",
	"contract until":    "contractUntil",
	"market value":      "marketValue",
	"height":            "height",
	"weight":            "weight",
	"player agent":      "agent",
	"agent":             "agent",
}

// ParseProfile extracts label/value rows from a profile page. It reads
// the first h1 as the display name and walks every table row and
// definition list for known labels.
func ParseProfile(page, pageURL string) map[string]any {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil
	}

	raw := make(map[string]any)
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "h1":
				if _, ok := raw["name"]; !ok {
					if text := nodeText(n); text != "" {
						raw["name"] = text
					}
				}
			case "tr":
				label, value := rowPair(n, "th", "td")
				addField(raw, label, value)
			case "dt":
				if dd := nextElement(n, "dd"); dd != nil {
					addField(raw, nodeText(n), nodeText(dd))
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if len(raw) > 0 && pageURL != "" {
		raw["transfermarktUrl"] = pageURL
	}
	return raw
}

func addField(raw map[string]any, label, value string) {
	if label == "" || value == "" {
		return
	}
	normalized := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(label), ":"))
	key, ok := labelKeys[normalized]
	if !ok {
		return
	}
	switch key {
	case "birthDate":
		// "Jan 5, 2002 (24)" carries the age in a trailing parenthetical.
		if m := ageParen.FindStringSubmatch(value); m != nil {
			raw["age"] = m[1]
			value = strings.TrimSpace(ageParen.ReplaceAllString(value, ""))
		}
		raw[key] = value
	case "shirtNumber":
		raw[key] = strings.TrimPrefix(value, "#")
	default:
		if _, exists := raw[key]; !exists {
			raw[key] = value
		}
	}
}

// rowPair returns the first cell matching labelTag and the first
// matching valueTag in a row. Rows with two td cells fall back to
// positional pairing.
func rowPair(row *html.Node, labelTag, valueTag string) (string, string) {
	var cells []string
	var label string
	for c := row.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case labelTag:
			if label == "" {
				label = nodeText(c)
			}
		case valueTag:
			cells = append(cells, nodeText(c))
		}
	}
	if label != "" && len(cells) > 0 {
		return label, cells[0]
	}
	if len(cells) >= 2 {
		return cells[0], cells[1]
	}
	return "", ""
}

func nextElement(n *html.Node, tag string) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			if s.Data == tag {
				return s
			}
			return nil
		}
	}
	return nil
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
