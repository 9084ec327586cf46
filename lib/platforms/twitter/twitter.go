package twitter

import (
	"fmt"
	"net/http/cookiejar"
	"time"

	"birdwatch/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel"
	"golang.org/x/net/publicsuffix"
)

var tracer = otel.Tracer("platforms/twitter")

const (
	defaultBaseURL   = "https://x.com/i/api"
	defaultHomeURL   = "https://x.com"
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

	// the long-lived public bearer the web client ships with
	publicBearerToken = "AAAAAAAAAAAAAAAAAAAAANRILgAAAAAAnNwIzUejRCOuH5E6I8xnZz4puTs%3D1Zv7ttfk8LF81IUq16cHjhLTvJu4FA33AGWWjCpTnA"
)

// Credentials are the two opaque tokens required on every API request.
// Acquiring and validating them is entirely the caller's concern.
type Credentials struct {
	AuthToken string `json:"auth_token"`
	CSRFToken string `json:"csrf_token"`
}

type ClientOptions struct {
	Credentials Credentials
	// BaseURL defaults to the production API host.
	BaseURL string
	// Timeout bounds every single HTTP request.
	Timeout time.Duration
	// QuoteDepth is the recursion budget for quoted tweets, nil means 1,
	// zero disables quote resolution entirely.
	QuoteDepth *int
	// IncludeRaw echoes the wire payload on every output record.
	IncludeRaw bool
	// RefreshSource overrides the web-bundle scraper, mainly for tests.
	RefreshSource RefreshSource
	// Cache persists refreshed query ids across runs. Optional.
	Cache *QueryIDCache
}

type Client struct {
	http     *resty.Client
	registry *OperationRegistry

	quoteDepth int
	includeRaw bool
}

var restyOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput dumps every HTTP exchange made by clients
// created after this call. Debugging aid.
func SetRestyInstrumentOutput(output restyutil.InstrumentOutput) {
	restyOutput = output
}

func NewClient(opts ClientOptions) (*Client, error) {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetCookieJar(jar)
	client.SetTimeout(timeout)
	client.SetHeader("user-agent", browserUserAgent)
	client.SetHeader("authorization", "Bearer "+publicBearerToken)
	client.SetHeader("x-csrf-token", opts.Credentials.CSRFToken)
	client.SetHeader("x-twitter-auth-type", "OAuth2Session")
	client.SetHeader("x-twitter-active-user", "yes")
	client.SetHeader("cookie", fmt.Sprintf(
		"auth_token=%s; ct0=%s",
		opts.Credentials.AuthToken,
		opts.Credentials.CSRFToken,
	))
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		txid, err := random.String(32)
		if err != nil {
			return err
		}
		req.SetHeader("x-client-transaction-id", txid)
		return nil
	})

	restyutil.InstrumentClient(client, otel.Tracer("platforms/twitter/http"), restyOutput)

	source := opts.RefreshSource
	if source == nil {
		source = NewBundleRefreshSource(defaultHomeURL)
	}

	quoteDepth := 1
	if opts.QuoteDepth != nil {
		quoteDepth = *opts.QuoteDepth
	}

	return &Client{
		http:       client,
		registry:   NewOperationRegistry(source, opts.Cache),
		quoteDepth: quoteDepth,
		includeRaw: opts.IncludeRaw,
	}, nil
}

// Registry exposes the query id registry, the CLI uses it for explicit
// refreshes.
func (c *Client) Registry() *OperationRegistry {
	return c.registry
}

func (c *Client) mapOptions() mapOptions {
	return mapOptions{
		quoteDepth: c.quoteDepth,
		includeRaw: c.includeRaw,
	}
}
