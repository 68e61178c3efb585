package metagraph

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func testAdapter(serverURL string) *Adapter {
	a := New("test-token", "page1", "ig1", zap.NewNop())
	a.baseURL = serverURL
	return a
}

func TestPublishToFacebookText(t *testing.T) {
	var gotPath, gotMessage string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotMessage = r.FormValue("message")
		w.Write([]byte(`{"id":"page1_42"}`))
	}))
	defer server.Close()

	result := testAdapter(server.URL).PublishToFacebook(context.Background(), "Привет!", "")
	if !result.Success || result.PostID != "page1_42" {
		t.Fatalf("result = %+v", result)
	}
	if gotPath != "/page1/feed" {
		t.Fatalf("path = %s, text post must go to /feed", gotPath)
	}
	if gotMessage != "Привет!" {
		t.Fatalf("message = %q", gotMessage)
	}
}

func TestPublishToFacebookPhoto(t *testing.T) {
	var gotPath, gotURL string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		r.ParseForm()
		gotURL = r.FormValue("url")
		w.Write([]byte(`{"id":"photo_1"}`))
	}))
	defer server.Close()

	result := testAdapter(server.URL).PublishToFacebook(context.Background(), "Подпись", "https://example.com/a.jpg")
	if !result.Success {
		t.Fatalf("result = %+v", result)
	}
	if gotPath != "/page1/photos" {
		t.Fatalf("path = %s, photo post must go to /photos", gotPath)
	}
	if gotURL != "https://example.com/a.jpg" {
		t.Fatalf("url = %q", gotURL)
	}
}

func TestPublishToFacebookAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid OAuth access token"}}`))
	}))
	defer server.Close()

	result := testAdapter(server.URL).PublishToFacebook(context.Background(), "Привет!", "")
	if result.Success {
		t.Fatal("API error must not succeed")
	}
	if result.ErrorMessage != "Invalid OAuth access token" {
		t.Fatalf("error = %q", result.ErrorMessage)
	}
}

func TestPublishToInstagramTwoSteps(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		r.ParseForm()
		switch r.URL.Path {
		case "/ig1/media":
			w.Write([]byte(`{"id":"container_1"}`))
		case "/ig1/media_publish":
			if r.FormValue("creation_id") != "container_1" {
				t.Fatalf("creation_id = %q", r.FormValue("creation_id"))
			}
			w.Write([]byte(`{"id":"ig_post_1"}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	result := testAdapter(server.URL).PublishToInstagram(context.Background(), "https://example.com/a.jpg", "Подпись")
	if !result.Success || result.PostID != "ig_post_1" {
		t.Fatalf("result = %+v", result)
	}
	if len(paths) != 2 {
		t.Fatalf("paths = %v, want container then publish", paths)
	}
}

func TestPublishToInstagramContainerFailure(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Media URL is not accessible"}}`))
	}))
	defer server.Close()

	result := testAdapter(server.URL).PublishToInstagram(context.Background(), "https://example.com/a.jpg", "Подпись")
	if result.Success {
		t.Fatal("container failure must not succeed")
	}
	if calls != 1 {
		t.Fatalf("calls = %d, publish step must not run after container failure", calls)
	}
}

func TestPublishToInstagramRequiresImage(t *testing.T) {
	result := testAdapter("http://unreachable").PublishToInstagram(context.Background(), "  ", "Подпись")
	if result.Success {
		t.Fatal("missing image must fail before any request")
	}
}
