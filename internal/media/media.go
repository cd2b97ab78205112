// Package media rewrites relative storage paths into absolute, externally
// reachable URLs before product data leaves the API.
package media

import (
	"net/url"
	"strings"

	"rooneyform-backend/internal/model"
)

const ngrokBypassParam = "ngrok-skip-browser-warning"

// appendNgrokBypass adds the query parameter that suppresses the ngrok
// free-tier browser-warning interstitial, which otherwise breaks image
// loading inside the Telegram WebApp.
func appendNgrokBypass(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if !strings.HasSuffix(parsed.Hostname(), "ngrok-free.app") {
		return raw
	}
	query := parsed.Query()
	if query.Has(ngrokBypassParam) {
		return raw
	}
	query.Set(ngrokBypassParam, "true")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// BuildAbsoluteURL resolves path against baseURL. Already-absolute URLs pass
// through untouched apart from the ngrok bypass parameter.
func BuildAbsoluteURL(baseURL, path string) string {
	if path == "" {
		return path
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return appendNgrokBypass(path)
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return path
	}
	ref, err := url.Parse(strings.TrimLeft(path, "/"))
	if err != nil {
		return path
	}
	return appendNgrokBypass(base.ResolveReference(ref).String())
}

// NormalizeProduct rewrites the primary image and every gallery image of p
// in place. Nil products are ignored.
func NormalizeProduct(baseURL string, p *model.Product) {
	if p == nil {
		return
	}
	p.ImageURL = BuildAbsoluteURL(baseURL, p.ImageURL)
	for i := range p.GalleryImages {
		p.GalleryImages[i].ImageURL = BuildAbsoluteURL(baseURL, p.GalleryImages[i].ImageURL)
	}
}
