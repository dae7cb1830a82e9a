// Package imdb reads title metadata from IMDb title and episode pages.
//
// IMDb pages embed their data as JSON in a Next.js script element; Parse
// functions locate that element with goquery and decode only the fields nfog
// renders. Fetching and parsing are separate so fixtures can be parsed
// without network access.
package imdb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"nfog/internal/catalog"
)

const (
	defaultBaseURL   = "https://www.imdb.com"
	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0"
	maxPageBytes     = 8 << 20
)

// Provider scrapes IMDb.
type Provider struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

var _ catalog.Provider = (*Provider)(nil)

// Option configures a Provider.
type Option func(*Provider)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Provider) {
		if client != nil {
			p.httpClient = client
		}
	}
}

// WithBaseURL points the provider at another host, mostly for tests.
func WithBaseURL(baseURL string) Option {
	return func(p *Provider) {
		if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
			p.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithUserAgent overrides the browser user agent sent with requests.
func WithUserAgent(ua string) Option {
	return func(p *Provider) {
		if ua = strings.TrimSpace(ua); ua != "" {
			p.userAgent = ua
		}
	}
}

// New creates an IMDb provider.
func New(opts ...Option) *Provider {
	p := &Provider{
		baseURL:    defaultBaseURL,
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (*Provider) Name() string { return "imdb" }

// Lookup fetches the title page and, for a season query, the season's
// episode page. Only the first page of episodes is read.
func (p *Provider) Lookup(ctx context.Context, q catalog.Query) (catalog.Title, error) {
	id := strings.TrimSpace(q.IDs.IMDb)
	if id == "" {
		return catalog.Title{}, &catalog.Error{Provider: p.Name(), Stage: "fetch", Err: errors.New("imdb id required")}
	}

	page, err := p.fetch(ctx, fmt.Sprintf("%s/title/%s/", p.baseURL, id))
	if err != nil {
		return catalog.Title{}, &catalog.Error{Provider: p.Name(), Stage: "fetch", Err: err}
	}
	title, err := ParseTitle(page)
	if err != nil {
		return catalog.Title{}, &catalog.Error{Provider: p.Name(), Stage: "parse", Err: err}
	}
	title.IMDbID = id

	if q.Season > 0 {
		page, err := p.fetch(ctx, fmt.Sprintf("%s/title/%s/episodes/?season=%d", p.baseURL, id, q.Season))
		if err != nil {
			return catalog.Title{}, &catalog.Error{Provider: p.Name(), Stage: "fetch", Err: err}
		}
		episodes, err := ParseEpisodes(page, q.Season)
		if err != nil {
			return catalog.Title{}, &catalog.Error{Provider: p.Name(), Stage: "parse", Err: err}
		}
		title.Season = q.Season
		title.Episodes = episodes
	}
	return title, nil
}

func (p *Provider) fetch(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	requestStart := time.Now()
	resp, err := p.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", catalog.ErrNotFound, pageURL)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("imdb returned %d for %s (latency=%v)", resp.StatusCode, pageURL, latency)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("read imdb page: %w", err)
	}
	return body, nil
}

type textField struct {
	Text string `json:"text"`
}

type titlePage struct {
	Props struct {
		PageProps struct {
			AboveTheFoldData struct {
				TitleText   textField `json:"titleText"`
				TitleType   textField `json:"titleType"`
				ReleaseYear *struct {
					Year    int  `json:"year"`
					EndYear *int `json:"endYear"`
				} `json:"releaseYear"`
			} `json:"aboveTheFoldData"`
			MainColumnData struct {
				SpokenLanguages *struct {
					SpokenLanguages []struct {
						ID   string `json:"id"`
						Text string `json:"text"`
					} `json:"spokenLanguages"`
				} `json:"spokenLanguages"`
			} `json:"mainColumnData"`
		} `json:"pageProps"`
	} `json:"props"`
}

// flexInt decodes numbers that IMDb sometimes sends as strings.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	text := strings.Trim(string(data), `"`)
	if text == "" || text == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return fmt.Errorf("not a number: %s", data)
	}
	*f = flexInt(n)
	return nil
}

type episodesPage struct {
	Props struct {
		PageProps struct {
			ContentData struct {
				Section struct {
					Episodes struct {
						Items []struct {
							TitleText string  `json:"titleText"`
							Season    flexInt `json:"season"`
							Episode   flexInt `json:"episode"`
						} `json:"items"`
					} `json:"episodes"`
				} `json:"section"`
			} `json:"contentData"`
		} `json:"pageProps"`
	} `json:"props"`
}

// ParseTitle extracts the title, type, years and spoken languages.
func ParseTitle(page []byte) (catalog.Title, error) {
	var data titlePage
	if err := decodeNextData(page, &data); err != nil {
		return catalog.Title{}, err
	}
	fold := data.Props.PageProps.AboveTheFoldData
	name := strings.TrimSpace(fold.TitleText.Text)
	if name == "" {
		return catalog.Title{}, errors.New("title text missing from page data")
	}
	title := catalog.Title{
		Name: name,
		Type: strings.ToLower(strings.TrimSpace(fold.TitleType.Text)),
	}
	if fold.ReleaseYear != nil {
		title.Year = fold.ReleaseYear.Year
		if fold.ReleaseYear.EndYear != nil {
			title.EndYear = *fold.ReleaseYear.EndYear
		}
	}
	if langs := data.Props.PageProps.MainColumnData.SpokenLanguages; langs != nil {
		for _, l := range langs.SpokenLanguages {
			if id := strings.TrimSpace(l.ID); id != "" {
				title.Languages = append(title.Languages, id)
			}
		}
	}
	return title, nil
}

// ParseEpisodes extracts the episodes of season from an episode list page.
func ParseEpisodes(page []byte, season int) ([]catalog.Episode, error) {
	var data episodesPage
	if err := decodeNextData(page, &data); err != nil {
		return nil, err
	}
	var out []catalog.Episode
	for _, item := range data.Props.PageProps.ContentData.Section.Episodes.Items {
		if int(item.Season) != season || item.Episode <= 0 {
			continue
		}
		out = append(out, catalog.Episode{Number: int(item.Episode), Title: strings.TrimSpace(item.TitleText)})
	}
	return out, nil
}

func decodeNextData(page []byte, v any) error {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return fmt.Errorf("parse html: %w", err)
	}
	script := strings.TrimSpace(doc.Find("script#__NEXT_DATA__").First().Text())
	if script == "" {
		return errors.New("page has no __NEXT_DATA__ payload")
	}
	if err := json.Unmarshal([]byte(script), v); err != nil {
		return fmt.Errorf("decode __NEXT_DATA__: %w", err)
	}
	return nil
}
