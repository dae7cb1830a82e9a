// Package preview turns a screenshot gallery page into linked thumbnails for
// the BBCode templates.
package preview

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"nfog/internal/release"
)

const maxPageBytes = 4 << 20

// Fetch downloads the gallery at pageURL and returns every anchor that wraps
// an image. Preview text that is not an http(s) URL yields no images.
func Fetch(ctx context.Context, client *http.Client, pageURL, userAgent string) ([]release.PreviewImage, error) {
	base, ok := galleryURL(pageURL)
	if !ok {
		return nil, nil
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	requestStart := time.Now()
	resp, err := client.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("fetch preview gallery (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("preview gallery returned %d (latency=%v)", resp.StatusCode, latency)
	}
	return Parse(io.LimitReader(resp.Body, maxPageBytes), base)
}

// Parse extracts linked thumbnails from gallery HTML. Relative links are
// resolved against base; duplicates keep their first position.
func Parse(r io.Reader, base *url.URL) ([]release.PreviewImage, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse preview gallery: %w", err)
	}
	var (
		out  []release.PreviewImage
		seen = map[string]struct{}{}
	)
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		img := a.Find("img[src]").First()
		if img.Length() == 0 {
			return
		}
		href, _ := a.Attr("href")
		src, _ := img.Attr("src")
		link, thumb := resolve(base, href), resolve(base, src)
		if link == "" || thumb == "" {
			return
		}
		if _, dup := seen[link]; dup {
			return
		}
		seen[link] = struct{}{}
		out = append(out, release.PreviewImage{Link: link, Thumb: thumb})
	})
	return out, nil
}

func galleryURL(text string) (*url.URL, bool) {
	u, err := url.Parse(strings.TrimSpace(text))
	if err != nil || u.Host == "" {
		return nil, false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, false
	}
	return u, true
}

func resolve(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(strings.ToLower(ref), "javascript:") {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	return u.String()
}
