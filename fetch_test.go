package xtid

import "testing"

func TestFetchConfig_Defaults(t *testing.T) {
	var cfg FetchConfig
	cfg.defaults()
	if cfg.UserAgent == "" {
		t.Fatal("expected default user agent")
	}
}

func TestBrowserHeaders(t *testing.T) {
	h := browserHeaders("test-agent/1.0")
	if h["user-agent"] != "test-agent/1.0" {
		t.Fatalf("unexpected user-agent %q", h["user-agent"])
	}
	for _, name := range fetchHeaderOrder {
		if _, ok := h[name]; !ok {
			t.Fatalf("header order names %q but header set lacks it", name)
		}
	}
}
