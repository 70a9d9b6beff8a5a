package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	gh "github.com/google/go-github/v68/github"

	"github.com/custodia-labs/blograg/internal/core/domain"
)

// newTestConnector points a connector at a local server standing in for
// both the GitHub API and the raw download host.
func newTestConnector(t *testing.T, handler http.Handler) (*Connector, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := gh.NewClient(srv.Client())
	base, err := url.Parse(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	client.BaseURL = base

	c := NewWithClients(Config{Owner: "acme", Repo: "blog"}, client, srv.Client())
	return c, srv
}

func TestListPostsFiltersAndSorts(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/blog/contents/_posts", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"type":"file","name":"2025-05-19-older.md","sha":"sha-old","download_url":"http://x/old","html_url":"http://x/h/old"},
			{"type":"file","name":"README.md","sha":"sha-readme","download_url":"http://x/r","html_url":"http://x/h/r"},
			{"type":"dir","name":"2025-05-26-a-directory.md","sha":"sha-dir"},
			{"type":"file","name":"2025-05-26-newer.md","sha":"sha-new","download_url":"http://x/new","html_url":"http://x/h/new"}
		]`)
	})

	c, _ := newTestConnector(t, mux)
	entries, err := c.ListPosts(context.Background())
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("got %d entries %v, want 2", len(entries), entries)
	}
	if entries[0].Name != "2025-05-26-newer.md" {
		t.Errorf("entries[0] = %q, want newest first", entries[0].Name)
	}
	if entries[1].Name != "2025-05-19-older.md" {
		t.Errorf("entries[1] = %q", entries[1].Name)
	}
	if entries[0].SHA != "sha-new" {
		t.Errorf("entries[0].SHA = %q", entries[0].SHA)
	}
}

func TestListPostsNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/blog/contents/_posts", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	})

	c, _ := newTestConnector(t, mux)
	_, err := c.ListPosts(context.Background())
	if err == nil {
		t.Fatal("expected error for missing posts directory")
	}
	if !errors.Is(err, domain.ErrFetch) {
		t.Errorf("error %v does not wrap ErrFetch", err)
	}
}

func TestDownload(t *testing.T) {
	const content = "---\ntitle: Hello\n---\nPost body."

	mux := http.NewServeMux()
	mux.HandleFunc("/raw/2025-05-26-hello.md", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, content)
	})

	c, srv := newTestConnector(t, mux)
	entry := domain.PostEntry{
		Name:        "2025-05-26-hello.md",
		SHA:         "abc123",
		DownloadURL: srv.URL + "/raw/2025-05-26-hello.md",
		HTMLURL:     "http://x/h/hello",
	}

	doc, err := c.Download(context.Background(), entry)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if doc.ID != "abc123" {
		t.Errorf("ID = %q, want the listing SHA", doc.ID)
	}
	if doc.RawText != content {
		t.Errorf("RawText = %q", doc.RawText)
	}
	if doc.Name != entry.Name || doc.SourceURL != entry.HTMLURL {
		t.Errorf("Name/SourceURL = %q/%q", doc.Name, doc.SourceURL)
	}
}

func TestDownloadNon200IsFatal(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/raw/gone.md", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, "rate limited")
	})

	c, srv := newTestConnector(t, mux)
	entry := domain.PostEntry{Name: "gone.md", DownloadURL: srv.URL + "/raw/gone.md"}

	_, err := c.Download(context.Background(), entry)
	if err == nil {
		t.Fatal("expected error for non-200 download")
	}
	if !errors.Is(err, domain.ErrFetch) {
		t.Errorf("error %v does not wrap ErrFetch", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusForbidden {
		t.Errorf("error %v does not carry the response status", err)
	}
}
