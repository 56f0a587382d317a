package xtid

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Synthetic homepage and bundle with known key material:
// verification key "0123456789abcdefghijklmnopqrstuv" (32 bytes), frame
// selector byte key[5]='5' picks frame 1, index table [3 7 1] picks row
// key[3]%16=3 and frame time (key[7]%16)*(key[1]%16)=7, rounded to 10.
const (
	fixtureVerificationKey = "MDEyMzQ1Njc4OWFiY2RlZmdoaWprbG1ub3BxcnN0dXY="

	fixtureOndemandHash = "abc1234"
	fixtureOndemandURL  = "https://abs.twimg.com/responsive-web/client-web/ondemand.s.abc1234a.js"

	fixtureOndemandJS = `"use strict";(function(){var n=function(e){return parseInt(e[3], 16)*parseInt(e[7], 16)*parseInt(e[1], 16)};})();`

	// Reference values computed once from a pinned run over this fixture.
	fixtureAnimationKey = "6a1210170a3d70a3d70a0170a3d70a3d70a100"
)

const fixtureHomeHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8"/>
<meta name="twitter-site-verification" content="` + fixtureVerificationKey + `"/>
<script type="text/javascript">window.__INITIAL_STATE__={"ondemand.s":"` + fixtureOndemandHash + `"};</script>
</head>
<body>
<svg id="loading-x-anim-0" viewBox="0 0 100 100"><path d="M50 0C25 0 0 25 0 50"/><path d="M0 0 0 0C1 2 3 4 5 6 7 8 9 10 11" fill="#1d9bf008"/></svg>
<svg id="loading-x-anim-1" viewBox="0 0 100 100"><path d="M50 0C25 0 0 25 0 50"/><path d="M0 0 0 0C10 20 30 40 50 60 70 80 90 100 110C15 25 35 45 55 65 75 85 95 105 115C120 130 140 150 160 170 180 190 200 210 220C99 1 2 3 4 5 6 7 8 9 10" fill="#1d9bf008"/></svg>
<svg id="loading-x-anim-2" viewBox="0 0 100 100"><path d="M50 0C25 0 0 25 0 50"/><path d="M0 0 0 0C1 2 3 4 5 6 7 8 9 10 11" fill="#1d9bf008"/></svg>
<svg id="loading-x-anim-3" viewBox="0 0 100 100"><path d="M50 0C25 0 0 25 0 50"/><path d="M0 0 0 0C1 2 3 4 5 6 7 8 9 10 11" fill="#1d9bf008"/></svg>
</body>
</html>`

// fixtureTime pins the clock for golden tests: unix 1700000000 is 17075600
// seconds past X's epoch.
var fixtureTime = time.Unix(1700000000, 0)

// fixedByteReader yields the same nonce byte forever.
type fixedByteReader byte

func (r fixedByteReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r)
	}
	return len(p), nil
}

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func newFixtureClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	c, err := New(fixtureHomeHTML, fixtureOndemandJS, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return c
}
