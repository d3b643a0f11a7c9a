package videohub

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/2beens/healthtracker/internal/telemetry/metrics"
	"github.com/2beens/healthtracker/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultOEmbedURL = "https://www.youtube.com/oembed"
	oneDay           = 24 * 60 * 60
	linkCacheExpire  = oneDay
	checkConcurrency = 4
)

var (
	linkAlive = []byte{1}
	linkDead  = []byte{0}
)

// Checker validates video links against the YouTube oEmbed endpoint and
// memoizes each result for a day.
type Checker struct {
	cache          *freecache.Cache
	oembedURL      string
	httpClient     *http.Client
	timeout        time.Duration
	metricsManager *metrics.Manager
}

func NewChecker(oembedURL string, timeout time.Duration, httpClient *http.Client, metricsManager *metrics.Manager) *Checker {
	megabyte := 1024 * 1024
	cacheSize := 5 * megabyte

	if oembedURL == "" {
		oembedURL = DefaultOEmbedURL
	}

	return &Checker{
		cache:          freecache.NewCache(cacheSize),
		oembedURL:      oembedURL,
		httpClient:     httpClient,
		timeout:        timeout,
		metricsManager: metricsManager,
	}
}

// Validate returns the library with unreachable links left out. Categories
// keep their order, a category can end up with no links.
func (c *Checker) Validate(ctx context.Context, library Library) Library {
	ctx, span := tracing.GlobalTracer.Start(ctx, "videoChecker.validate")
	defer span.End()

	links := library.Links()
	alive := make(map[string]bool, len(links))

	var (
		mutex     sync.Mutex
		checkErrs error
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(checkConcurrency)
	for _, link := range links {
		g.Go(func() error {
			ok, err := c.check(gCtx, link)
			mutex.Lock()
			defer mutex.Unlock()
			alive[link] = ok
			if err != nil {
				checkErrs = multierr.Append(checkErrs, err)
			}
			// a dead link never cancels the others
			return nil
		})
	}
	_ = g.Wait()

	if checkErrs != nil {
		dead := len(multierr.Errors(checkErrs))
		span.SetAttributes(attribute.Int("links.unreachable", dead))
		log.Debugf("video hub: %d of %d links unreachable: %s", dead, len(links), checkErrs)
	}

	validated := make(Library, 0, len(library))
	for _, category := range library {
		active := make([]string, 0, len(category.Links))
		for _, link := range category.Links {
			if alive[link] {
				active = append(active, link)
			}
		}
		validated = append(validated, Category{
			ID:    category.ID,
			Name:  category.Name,
			Links: active,
		})
	}
	return validated
}

func (c *Checker) check(ctx context.Context, link string) (bool, error) {
	cacheKey := []byte("link::" + link)
	if cached, err := c.cache.Get(cacheKey); err == nil {
		if len(cached) == 1 && cached[0] == linkAlive[0] {
			return true, nil
		}
		return false, fmt.Errorf("%s: unreachable (cached)", link)
	}

	checkErr := c.fetch(ctx, link)
	value := linkAlive
	if checkErr != nil {
		value = linkDead
		if c.metricsManager != nil {
			c.metricsManager.CounterVideoLinksUnreachable.Inc()
		}
	}
	if err := c.cache.Set(cacheKey, value, linkCacheExpire); err != nil {
		log.Errorf("failed to cache link check for %s: %s", link, err)
	}

	return checkErr == nil, checkErr
}

func (c *Checker) fetch(ctx context.Context, link string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	checkURL := fmt.Sprintf("%s?url=%s&format=json", c.oembedURL, url.QueryEscape(link))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, checkURL, nil)
	if err != nil {
		return fmt.Errorf("%s: new request: %w", link, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: http client do: %w", link, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: oembed status %d", link, resp.StatusCode)
	}
	return nil
}
