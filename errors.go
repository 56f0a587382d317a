package xtid

import (
	"errors"
	"fmt"
)

// ExtractionKind categorizes scanner failures for targeted handling.
type ExtractionKind int

const (
	// PatternNotFound means the expected marker, tag or literal is absent.
	PatternNotFound ExtractionKind = iota
	// Ambiguous means more than one plausible match was found. Silently
	// taking the first one risks deriving a key the verifier rejects, so
	// ambiguity is always an error.
	Ambiguous
	// ParseError means the pattern was located but its payload is malformed.
	ParseError
	// DecodeError means a located value failed base64 decoding.
	DecodeError
)

func (k ExtractionKind) String() string {
	switch k {
	case PatternNotFound:
		return "pattern not found"
	case Ambiguous:
		return "ambiguous match"
	case ParseError:
		return "parse error"
	case DecodeError:
		return "decode error"
	}
	return "unknown"
}

// ExtractionError reports a failure to extract key material from the
// homepage HTML or the ondemand JS bundle. Extraction failures are permanent
// for a given document; retrying means re-fetching and rebuilding.
type ExtractionError struct {
	Kind ExtractionKind
	What string // which value was being extracted
	Err  error  // underlying cause, if any
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract %s: %s: %v", e.What, e.Kind, e.Err)
	}
	return fmt.Sprintf("extract %s: %s", e.What, e.Kind)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ErrInconsistentKeyMaterial is returned when individually well-formed
// extracted values do not agree with each other, e.g. a selector byte
// addressing a frame row that does not exist. Construction fails closed
// rather than clamping or defaulting.
var ErrInconsistentKeyMaterial = errors.New("inconsistent key material")

// TransportError wraps a failure of the HTTP capability. The engine never
// interprets transport failures beyond the status code.
type TransportError struct {
	URL    string
	Status int // non-zero when the request completed with a bad status
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RandomSourceError reports that the nonce byte could not be drawn at
// synthesis time. It is the only failure mode of token generation once a
// Client exists.
type RandomSourceError struct {
	Err error
}

func (e *RandomSourceError) Error() string {
	return fmt.Sprintf("random source: %v", e.Err)
}

func (e *RandomSourceError) Unwrap() error { return e.Err }
