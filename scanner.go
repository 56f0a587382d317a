package xtid

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ondemandBaseURL is where X hosts the responsive-web bundles.
const ondemandBaseURL = "https://abs.twimg.com/responsive-web/client-web"

// framePathFill marks the animation data <path> inside each loading SVG,
// distinguishing it from the decorative logo path.
const framePathFill = "#1d9bf008"

var (
	ondemandHashRegex = regexp.MustCompile(`['"]{1}ondemand\.s['"]{1}\s*:\s*['"]{1}(\w+)['"]{1}`)
	keyIndicesRegex   = regexp.MustCompile(`\(\w{1}\[(\d{1,2})\],\s*16\)`)
)

// findOndemandURL locates the ondemand.s bundle hash in the homepage HTML
// and returns the full bundle URL. Exactly one distinct hash must be present.
func findOndemandURL(html string) (string, error) {
	matches := ondemandHashRegex.FindAllStringSubmatch(html, -1)

	seen := make(map[string]struct{}, 1)
	var hash string
	for _, m := range matches {
		if _, ok := seen[m[1]]; !ok {
			seen[m[1]] = struct{}{}
			hash = m[1]
		}
	}

	switch len(seen) {
	case 0:
		return "", &ExtractionError{Kind: PatternNotFound, What: "ondemand.s bundle hash"}
	case 1:
		return ondemandBaseURL + "/ondemand.s." + hash + "a.js", nil
	default:
		return "", &ExtractionError{Kind: Ambiguous, What: "ondemand.s bundle hash"}
	}
}

// findVerificationKey extracts and decodes the twitter-site-verification
// meta tag content from the parsed homepage.
func findVerificationKey(doc *goquery.Document) ([]byte, error) {
	sel := doc.Find(`meta[name="twitter-site-verification"]`)
	switch sel.Length() {
	case 0:
		return nil, &ExtractionError{Kind: PatternNotFound, What: "twitter-site-verification meta tag"}
	case 1:
	default:
		return nil, &ExtractionError{Kind: Ambiguous, What: "twitter-site-verification meta tag"}
	}

	content, ok := sel.Attr("content")
	if !ok || content == "" {
		return nil, &ExtractionError{Kind: PatternNotFound, What: "twitter-site-verification content attribute"}
	}

	keyBytes, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return nil, &ExtractionError{Kind: DecodeError, What: "verification key", Err: err}
	}
	return keyBytes, nil
}

// frameTable holds the parsed coordinate rows of each loading animation
// frame, in frame id order.
type frameTable [frameCount][][]int

// findFrameTable extracts the loading-x-anim-0..3 SVG path data. All four
// frames must be present; the frame selector byte may address any of them.
func findFrameTable(doc *goquery.Document) (frameTable, error) {
	var frames frameTable
	for i := range frames {
		svg := doc.Find(fmt.Sprintf("svg#loading-x-anim-%d", i))
		switch svg.Length() {
		case 0:
			return frames, &ExtractionError{Kind: PatternNotFound, What: fmt.Sprintf("loading-x-anim-%d svg", i)}
		case 1:
		default:
			return frames, &ExtractionError{Kind: Ambiguous, What: fmt.Sprintf("loading-x-anim-%d svg", i)}
		}

		path := svg.Find(fmt.Sprintf(`path[fill="%s"]`, framePathFill))
		switch path.Length() {
		case 0:
			return frames, &ExtractionError{Kind: PatternNotFound, What: fmt.Sprintf("loading-x-anim-%d animation path", i)}
		case 1:
		default:
			return frames, &ExtractionError{Kind: Ambiguous, What: fmt.Sprintf("loading-x-anim-%d animation path", i)}
		}

		d, ok := path.Attr("d")
		if !ok {
			return frames, &ExtractionError{Kind: PatternNotFound, What: fmt.Sprintf("loading-x-anim-%d path d attribute", i)}
		}

		rows := parsePathData(d)
		if len(rows) == 0 {
			return frames, &ExtractionError{Kind: ParseError, What: fmt.Sprintf("loading-x-anim-%d path data", i)}
		}
		frames[i] = rows
	}
	return frames, nil
}

var pathNumberRegex = regexp.MustCompile(`-?\d+`)

// parsePathData splits an SVG path into its cubic curve segments and parses
// each segment's coordinates into one integer row. The leading move command
// before the first C carries no frame data and is skipped.
func parsePathData(d string) [][]int {
	segments := strings.Split(d, "C")
	rows := make([][]int, 0, len(segments))
	for i, segment := range segments {
		if i == 0 {
			continue
		}
		nums := pathNumberRegex.FindAllString(segment, -1)
		if len(nums) == 0 {
			continue
		}
		row := make([]int, 0, len(nums))
		for _, n := range nums {
			val, err := strconv.Atoi(n)
			if err != nil {
				continue
			}
			row = append(row, val)
		}
		rows = append(rows, row)
	}
	return rows
}

// indexTable maps key bytes into the frame table: rowSelector names the key
// byte that picks the animation row, frameTime names the key bytes whose
// product forms the animation frame time.
type indexTable struct {
	rowSelector int
	frameTime   []int
}

// findIndexTable locates the (e[N], 16) radix-parse calls in the ondemand
// bundle. Their argument indices, in source order, form the index table.
func findIndexTable(js string) (indexTable, error) {
	matches := keyIndicesRegex.FindAllStringSubmatch(js, -1)
	if len(matches) == 0 {
		return indexTable{}, &ExtractionError{Kind: PatternNotFound, What: "key byte indices"}
	}

	indices := make([]int, 0, len(matches))
	for _, m := range matches {
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			return indexTable{}, &ExtractionError{Kind: ParseError, What: "key byte index", Err: err}
		}
		indices = append(indices, idx)
	}

	return indexTable{rowSelector: indices[0], frameTime: indices[1:]}, nil
}
