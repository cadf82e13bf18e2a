// Package overpass is a small read-only client for the Overpass API.
package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Element is a node or way returned by an Overpass query. Ways carry their
// coordinates in Center.
type Element struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *Point            `json:"center,omitempty"`
	Tags   map[string]string `json:"tags"`
}

// Point is a coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Position returns the element's coordinates, using the center for ways.
func (e Element) Position() (float64, float64) {
	if e.Center != nil {
		return e.Center.Lat, e.Center.Lon
	}
	return e.Lat, e.Lon
}

type response struct {
	Elements []Element `json:"elements"`
}

// Client issues rate limited queries against one Overpass endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	limiter    *rate.Limiter
}

// NewClient returns a Client allowing rps requests per second.
func NewClient(endpoint string, rps float64, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// AroundQuery builds an Overpass QL query for nodes and ways whose amenity
// tag is one of amenities, within radius metres of (lat, lon).
func AroundQuery(lat, lon float64, radius int, amenities []string) string {
	around := fmt.Sprintf("(around:%d,%s,%s)", radius,
		strconv.FormatFloat(lat, 'f', -1, 64), strconv.FormatFloat(lon, 'f', -1, 64))

	var b strings.Builder
	b.WriteString("[out:json][timeout:25];(")
	for _, amenity := range amenities {
		for _, kind := range []string{"node", "way"} {
			fmt.Fprintf(&b, "%s[\"amenity\"=%q]%s;", kind, amenity, around)
		}
	}
	b.WriteString(");out center;")
	return b.String()
}

// Around runs AroundQuery and returns the matching elements.
func (c *Client) Around(ctx context.Context, lat, lon float64, radius int, amenities []string) ([]Element, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	form := url.Values{"data": {AroundQuery(lat, lon, radius, amenities)}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build Overpass request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query Overpass: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("Overpass API returned status %d: %s", resp.StatusCode, body)
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode Overpass response: %w", err)
	}
	return out.Elements, nil
}
