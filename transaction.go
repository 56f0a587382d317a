// Package xtid generates x-client-transaction-id headers for X (Twitter)
// API requests from cryptographic material embedded in x.com's homepage and
// its ondemand JavaScript bundle.
//
// Algorithm reverse-engineered from X's web app:
//   - https://github.com/iSarabjitDhiman/XClientTransaction (Python original, MIT)
//   - https://antibot.blog/posts/1741552025433 (analysis)
package xtid

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// homeURL is the page carrying the verification key and frame SVGs.
	homeURL = "https://x.com"

	// hashSalt is the secret keyword from X's client-side JavaScript.
	hashSalt = "obfiowerehiring"

	// xEpoch is X's custom epoch: 2023-05-01 00:00:00 UTC.
	xEpoch = 1_682_924_400

	// digestLength is how many bytes of the SHA-256 digest survive.
	digestLength = 16

	// protocolVersion is the trailing marker byte.
	protocolVersion = 3
)

// Client derives transaction IDs from key material extracted at
// construction. It holds no mutable state and is safe for concurrent use.
type Client struct {
	material     *KeyMaterial
	animationKey string
	rand         io.Reader
	now          func() time.Time
}

// Option adjusts a Client at construction.
type Option func(*Client)

// WithRandSource overrides the nonce byte source (default crypto/rand).
func WithRandSource(r io.Reader) Option {
	return func(c *Client) { c.rand = r }
}

// WithClock overrides the time source (default time.Now).
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New builds a Client from pre-fetched homepage HTML and ondemand bundle JS.
// Use this to bring your own HTTP transport; get the bundle URL with
// ExtractOndemandURL.
func New(homeHTML, ondemandJS string, opts ...Option) (*Client, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(homeHTML))
	if err != nil {
		return nil, &ExtractionError{Kind: ParseError, What: "homepage HTML", Err: err}
	}

	ondemandURL, err := findOndemandURL(homeHTML)
	if err != nil {
		return nil, err
	}
	keyBytes, err := findVerificationKey(doc)
	if err != nil {
		return nil, err
	}
	frames, err := findFrameTable(doc)
	if err != nil {
		return nil, err
	}
	indices, err := findIndexTable(ondemandJS)
	if err != nil {
		return nil, err
	}

	material, err := buildKeyMaterial(keyBytes, frames, indices, ondemandURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		material:     material,
		animationKey: deriveAnimationKey(material),
		rand:         rand.Reader,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Fetch retrieves x.com and the ondemand bundle through the supplied
// Fetcher and builds a Client. A nil fetcher uses the bundled stealth
// transport.
func Fetch(ctx context.Context, fetcher Fetcher, opts ...Option) (*Client, error) {
	if fetcher == nil {
		var err error
		fetcher, err = NewStealthFetcher(FetchConfig{})
		if err != nil {
			return nil, err
		}
	}

	homeHTML, err := fetcher.FetchText(ctx, homeURL)
	if err != nil {
		return nil, fmt.Errorf("fetch homepage: %w", err)
	}

	ondemandURL, err := ExtractOndemandURL(homeHTML)
	if err != nil {
		return nil, err
	}

	ondemandJS, err := fetcher.FetchText(ctx, ondemandURL)
	if err != nil {
		return nil, fmt.Errorf("fetch ondemand bundle: %w", err)
	}

	return New(homeHTML, ondemandJS, opts...)
}

// ExtractOndemandURL returns the ondemand bundle URL referenced by the
// homepage, for callers fetching the bundle with their own transport.
func ExtractOndemandURL(homeHTML string) (string, error) {
	return findOndemandURL(homeHTML)
}

// OndemandURL returns the bundle URL the key material was built against.
func (c *Client) OndemandURL() string { return c.material.ondemandURL }

// GenerateTransactionID computes the x-client-transaction-id header value
// for a request. The query string of path is ignored. It fails only on an
// empty method or path, or if the nonce source is exhausted.
func (c *Client) GenerateTransactionID(method, path string) (string, error) {
	if method == "" || path == "" {
		return "", fmt.Errorf("method and path must be non-empty")
	}
	if idx := strings.Index(path, "?"); idx >= 0 {
		path = path[:idx]
	}
	method = strings.ToUpper(method)

	sec := c.now().Unix() - xEpoch
	if sec < 0 {
		sec = 0
	}
	stamp := uint32(sec)
	var stampBytes [4]byte
	binary.LittleEndian.PutUint32(stampBytes[:], stamp)

	hashInput := fmt.Sprintf("%s!%s!%d%s%s", method, path, stamp, hashSalt, c.animationKey)
	digest := sha256.Sum256([]byte(hashInput))

	payload := make([]byte, 0, len(c.material.keyBytes)+len(stampBytes)+digestLength+1)
	payload = append(payload, c.material.keyBytes...)
	payload = append(payload, stampBytes[:]...)
	payload = append(payload, digest[:digestLength]...)
	payload = append(payload, protocolVersion)

	var nonce [1]byte
	if _, err := io.ReadFull(c.rand, nonce[:]); err != nil {
		return "", &RandomSourceError{Err: err}
	}

	out := make([]byte, len(payload)+1)
	out[0] = nonce[0]
	for i, b := range payload {
		out[i+1] = b ^ nonce[0]
	}

	return base64.RawStdEncoding.EncodeToString(out), nil
}
