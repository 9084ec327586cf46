package twitter

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

// BundleRefreshSource re-derives query ids by scraping the platform's web
// shell for its main JS bundle and pulling the operation table out of it.
// This is the same place the official web client gets its ids from, which
// is what makes it authoritative.
type BundleRefreshSource struct {
	http    *resty.Client
	homeURL string
}

var queryIDPattern = regexp.MustCompile(`queryId:"([\w-]+)"[^{}]*?operationName:"(\w+)"`)

func NewBundleRefreshSource(homeURL string) *BundleRefreshSource {
	client := resty.New()
	client.SetHeader("user-agent", browserUserAgent)
	return &BundleRefreshSource{http: client, homeURL: homeURL}
}

func (s *BundleRefreshSource) FetchQueryIDs(ctx context.Context, names []string) (map[string]string, error) {
	ctx, span := tracer.Start(ctx, "refresh:FetchQueryIDs")
	defer span.End()

	bundleURL, err := s.findBundleURL(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "failed to locate js bundle")
		return nil, err
	}

	res, err := s.http.R().SetContext(ctx).Get(bundleURL)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch js bundle")
		return nil, err
	}
	if !res.IsSuccess() {
		span.SetStatus(codes.Error, "unexpected bundle status")
		return nil, newHTTPError(res.StatusCode(), res.Body())
	}

	wanted := map[string]bool{}
	for _, name := range names {
		wanted[name] = true
	}

	ids := map[string]string{}
	for _, match := range queryIDPattern.FindAllStringSubmatch(string(res.Body()), -1) {
		queryID, operationName := match[1], match[2]
		if wanted[operationName] {
			ids[operationName] = queryID
		}
	}
	if len(ids) == 0 {
		span.SetStatus(codes.Error, "no query ids found in bundle")
		return nil, fmt.Errorf("no matching query ids in bundle %s", bundleURL)
	}
	return ids, nil
}

func (s *BundleRefreshSource) findBundleURL(ctx context.Context) (string, error) {
	res, err := s.http.R().SetContext(ctx).Get(s.homeURL)
	if err != nil {
		return "", err
	}
	if !res.IsSuccess() {
		return "", newHTTPError(res.StatusCode(), res.Body())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return "", err
	}

	var bundleURL string
	doc.Find("script[src], link[rel=preload][href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		src := sel.AttrOr("src", sel.AttrOr("href", ""))
		if strings.Contains(src, "/main.") && strings.HasSuffix(src, ".js") {
			bundleURL = src
			return false
		}
		return true
	})
	if bundleURL == "" {
		return "", fmt.Errorf("no main js bundle referenced by %s", s.homeURL)
	}
	return bundleURL, nil
}
