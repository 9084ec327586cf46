package commands

import (
	"time"

	"birdwatch/lib/configutil"
	"birdwatch/lib/platforms/twitter"
	"birdwatch/lib/restyutil"
	"birdwatch/lib/serviceutil"
)

type Config struct {
	AuthToken string `json:"auth_token"`
	CsrfToken string `json:"csrf_token"`
	// QueryIDCache is the sqlite file refreshed query ids persist to.
	QueryIDCache   string `json:"query_id_cache"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	QuoteDepth     *int   `json:"quote_depth"`
	IncludeRaw     bool   `json:"include_raw"`
}

func createClient() (*twitter.Client, func()) {
	cfg, err := configutil.ReadConfig[Config](*configPath)
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}

	if *verbose {
		twitter.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(".dev/resty/birdwatch"))
	}

	var cache *twitter.QueryIDCache
	cleanup := func() {}
	if cfg.QueryIDCache != "" {
		cache, err = twitter.OpenQueryIDCache(cfg.QueryIDCache)
		if err != nil {
			serviceutil.Fatal("failed to open query id cache", err)
		}
		cleanup = func() { cache.Close() }
	}

	client, err := twitter.NewClient(twitter.ClientOptions{
		Credentials: twitter.Credentials{
			AuthToken: cfg.AuthToken,
			CSRFToken: cfg.CsrfToken,
		},
		Timeout:    time.Duration(cfg.TimeoutSeconds) * time.Second,
		QuoteDepth: cfg.QuoteDepth,
		IncludeRaw: cfg.IncludeRaw,
		Cache:      cache,
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize client", err)
	}
	return client, cleanup
}
