package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

func parse(t *testing.T, s string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		t.Fatalf("html.Parse: %v", err)
	}
	return doc
}

func TestText_CollapsesWhitespaceAndSkipsScripts(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<div class="d">  to   move <b>fast</b>
		<script>var x = 1;</script> on foot </div>`)

	got := First(doc, cascadia.MustCompile(".d"))
	if got != "to move fast on foot" {
		t.Errorf("Text = %q", got)
	}
}

func TestFirst_NoMatch(t *testing.T) {
	t.Parallel()

	if got := First(parse(t, `<p>x</p>`), cascadia.MustCompile(".missing")); got != "" {
		t.Errorf("First = %q, want empty", got)
	}
	if got := First(nil, cascadia.MustCompile("p")); got != "" {
		t.Errorf("First(nil) = %q, want empty", got)
	}
}

func TestFirstOf_FallsBack(t *testing.T) {
	t.Parallel()

	block := parse(t, `<div>no ipa here</div>`)
	page := parse(t, `<span class="ipa">rʌn</span>`)

	if got := FirstOf(cascadia.MustCompile(".ipa"), block, page); got != "rʌn" {
		t.Errorf("FirstOf = %q", got)
	}
}

func TestFetcher_Document(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "lingo-test" {
			t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
		}
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`<html><body><h1 class="hw">run</h1></body></html>`))
	}))
	defer srv.Close()

	f := NewFetcher(time.Second, "lingo-test")

	doc, err := f.Document(context.Background(), srv.URL+"/run")
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if got := First(doc, cascadia.MustCompile(".hw")); got != "run" {
		t.Errorf("headword = %q", got)
	}

	if _, err := f.Document(context.Background(), srv.URL+"/missing"); err == nil {
		t.Error("expected error for 404")
	}
}
