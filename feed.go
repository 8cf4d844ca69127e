package tally

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// diskCache is an http.RoundTripper that caches successful responses on
// disk. The key includes the current day, so entries expire overnight and
// repeated fetch runs within a day do not hammer the quote services.
type diskCache struct {
	base http.RoundTripper
	log  *slog.Logger
}

func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	key := fmt.Sprintf("%s %s %s", time.Now().Format(time.DateOnly), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	if resp, err := c.get(key, req); err == nil {
		return resp, nil
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	c.log.Debug("fetched quote endpoint", "method", req.Method, "host", req.URL.Host, "status", resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	if err := c.put(key, resp); err != nil {
		c.log.Warn("quote cache write failed", "err", err)
	}
	return resp, nil
}

func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(os.TempDir(), key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(os.TempDir(), key), content, 0644)
}

// Quoter fetches market quotes from configured HTTP feeds.
type Quoter struct {
	client *http.Client
	log    *slog.Logger
}

// NewQuoter returns a quoter whose responses are disk-cached for a day.
// A nil logger falls back to slog.Default().
func NewQuoter(log *slog.Logger) *Quoter {
	if log == nil {
		log = slog.Default()
	}
	client := &http.Client{Transport: &diskCache{base: http.DefaultTransport, log: log}}
	return &Quoter{client: client, log: log}
}

// Fetch retrieves one quote per feed. Feeds that fail are reported joined
// in the error; the returned map holds the quotes that did come back.
func (q *Quoter) Fetch(ctx context.Context, feeds []FeedConfig) (map[string]float64, error) {
	quotes := make(map[string]float64, len(feeds))
	var errs []error
	for _, feed := range feeds {
		price, err := q.fetchOne(ctx, feed)
		if err != nil {
			errs = append(errs, fmt.Errorf("feed %q: %w", feed.Symbol, err))
			continue
		}
		quotes[feed.Symbol] = price
	}
	return quotes, errors.Join(errs...)
}

func (q *Quoter) fetchOne(ctx context.Context, feed FeedConfig) (float64, error) {
	var jobj any
	if err := q.jwget(ctx, feed.URL, &jobj); err != nil {
		return math.NaN(), err
	}

	jval, err := jsonpath.Get(feed.Path, jobj)
	if err != nil {
		return math.NaN(), fmt.Errorf("jsonpath %q: %w", feed.Path, err)
	}
	// jsonpath is never clear about whether it returns a list of one
	// answer or a single answer; keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	var price float64
	switch v := jval.(type) {
	case float64:
		price = v
	case string:
		// some endpoints quote prices as localized strings
		v = strings.ReplaceAll(v, ",", ".")
		v = strings.ReplaceAll(v, " ", "")
		price, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return math.NaN(), fmt.Errorf("jsonpath %q: %q is not a price: %w", feed.Path, v, err)
		}
	default:
		return math.NaN(), fmt.Errorf("jsonpath %q: %v is neither number nor string", feed.Path, jval)
	}
	// some endpoints quote in minor units, pence or cents; the scale
	// divides them back to currency units
	if feed.Scale > 0 {
		price /= feed.Scale
	}
	return price, nil
}

// jwget performs an HTTP GET and unmarshals the JSON response into data.
func (q *Quoter) jwget(ctx context.Context, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := q.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}
