package reader

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func TestFlattenPages_RemapsToBottomLeft(t *testing.T) {
	pages := []parsePage{
		{
			Width: 612, Height: 792,
			Items: []parseItem{
				// Top-left origin: y=100 near the top of the page.
				{Text: "John Doe", X: 72, Y: 100, Width: 80, Height: 12},
				{Text: "john@x.com", X: 72, Y: 120, Width: 90, Height: 12},
			},
		},
		{
			Width: 612, Height: 792,
			Items: []parseItem{
				{Text: "Page two", X: 72, Y: 100, Width: 70, Height: 12},
			},
		},
	}

	frags := flattenPages(pages)

	if len(frags) != 3 {
		t.Fatalf("expected 3 fragments, got %d", len(frags))
	}
	// y' = pageHeight - y - height = 792 - 100 - 12 = 680.
	if frags[0].Y != 680 {
		t.Errorf("expected first Y 680, got %f", frags[0].Y)
	}
	// Lower on the page means smaller Y after remapping.
	if frags[1].Y >= frags[0].Y {
		t.Errorf("expected second fragment below first: %f >= %f", frags[1].Y, frags[0].Y)
	}
	// Second page sits strictly below the first.
	if frags[2].Y >= frags[1].Y {
		t.Errorf("expected page two below page one: %f >= %f", frags[2].Y, frags[1].Y)
	}
	// Page boundary is a hard line break.
	if !frags[1].HasEOL {
		t.Error("expected last fragment of page one to carry HasEOL")
	}
	if !frags[2].HasEOL {
		t.Error("expected last fragment of page two to carry HasEOL")
	}
}

func TestFlattenPages_Empty(t *testing.T) {
	if frags := flattenPages(nil); len(frags) != 0 {
		t.Errorf("expected no fragments, got %d", len(frags))
	}
}

func TestRemoteReader_ParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("unexpected auth header: %q", got)
		}
		if got := r.URL.Query().Get("filename"); got != "cv.pdf" {
			t.Errorf("unexpected filename: %q", got)
		}
		json.NewEncoder(w).Encode(parseResponse{
			Pages: []parsePage{
				{Width: 612, Height: 792, Items: []parseItem{
					{Text: "Jane Roe", X: 72, Y: 80, Width: 70, Height: 12},
				}},
			},
		})
	}))
	defer srv.Close()

	c := NewRemoteReader(srv.URL, "secret")
	frags, err := c.Read(context.Background(), strings.NewReader("%PDF-fake"), "cv.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frags) != 1 || frags[0].Text != "Jane Roe" {
		t.Fatalf("unexpected fragments: %+v", frags)
	}
	if c.Stats.Snapshot().Count != 1 {
		t.Errorf("expected 1 latency sample, got %d", c.Stats.Snapshot().Count)
	}
}

func TestRemoteReader_RetriesOn5xx(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(parseResponse{})
	}))
	defer srv.Close()

	c := NewRemoteReader(srv.URL, "secret")
	if _, err := c.Read(context.Background(), strings.NewReader("doc"), "cv.pdf"); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 calls, got %d", calls.Load())
	}
}

func TestRemoteReader_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"unreadable document"}`))
	}))
	defer srv.Close()

	c := NewRemoteReader(srv.URL, "secret")
	if _, err := c.Read(context.Background(), strings.NewReader("doc"), "cv.pdf"); err == nil {
		t.Fatal("expected error for 400 response")
	}
	if calls.Load() != 1 {
		t.Errorf("expected exactly 1 call, got %d", calls.Load())
	}
}
