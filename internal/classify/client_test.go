package classify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mediaresolve/internal/upstream"
)

// completionResponse builds the minimal chat-completion payload carrying the
// given message content.
func completionResponse(t *testing.T, content string) []byte {
	t.Helper()
	payload := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	return body
}

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{APIKey: "test-key", BaseURL: server.URL, Model: "test-model"})
}

func TestNewClientWithoutKey(t *testing.T) {
	if NewClient(Config{}) != nil {
		t.Fatal("expected nil client without api key")
	}
	if NewClient(Config{APIKey: "   "}) != nil {
		t.Fatal("expected nil client for blank api key")
	}
}

func TestClassifyCollection(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("path = %q", r.URL.Path)
		}
		var request struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if request.Model != "test-model" {
			t.Errorf("model = %q", request.Model)
		}
		if len(request.Messages) != 2 || request.Messages[1].Role != "user" {
			t.Fatalf("messages = %+v", request.Messages)
		}
		if !strings.Contains(request.Messages[1].Content, "Parasite") {
			t.Errorf("user content missing titles: %q", request.Messages[1].Content)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(completionResponse(t, `{
			"media_type": "Movie",
			"year_min": 2016,
			"year_max": 2020,
			"language": "Korean",
			"region": "KR",
			"genre": "thriller",
			"description": "Korean thrillers",
			"confidence": 0.85
		}`))
	})

	collection, err := client.ClassifyCollection(context.Background(), []string{"Parasite", "Burning", "The Wailing"})
	if err != nil {
		t.Fatalf("ClassifyCollection: %v", err)
	}
	if collection.MediaType != "movie" {
		t.Errorf("media_type = %q, want lowercased movie", collection.MediaType)
	}
	if collection.YearMin != 2016 || collection.YearMax != 2020 {
		t.Errorf("years = %d..%d", collection.YearMin, collection.YearMax)
	}
	if collection.Language != "Korean" || collection.Region != "KR" {
		t.Errorf("language/region = %q/%q", collection.Language, collection.Region)
	}
	if collection.Confidence != 0.85 {
		t.Errorf("confidence = %v", collection.Confidence)
	}
}

func TestClassifyCollectionCapsTitles(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var request struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		lines := strings.Split(request.Messages[1].Content, "\n")
		if len(lines) != maxTitles {
			t.Errorf("got %d titles, want %d", len(lines), maxTitles)
		}
		w.Write(completionResponse(t, `{"media_type":"movie","confidence":0.8}`))
	})

	titles := make([]string, 0, 40)
	for i := 0; i < 40; i++ {
		titles = append(titles, "Some Title")
	}
	if _, err := client.ClassifyCollection(context.Background(), titles); err != nil {
		t.Fatalf("ClassifyCollection: %v", err)
	}
}

func TestClassifyCollectionDefaultsConfidence(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(completionResponse(t, `{"media_type":"tv","language":"Korean"}`))
	})

	collection, err := client.ClassifyCollection(context.Background(), []string{"Vincenzo", "The Glory"})
	if err != nil {
		t.Fatalf("ClassifyCollection: %v", err)
	}
	if collection.Confidence != 0.7 {
		t.Errorf("confidence = %v, want default 0.7", collection.Confidence)
	}
}

func TestClassifyCollectionToleratesCodeFences(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(completionResponse(t, "```json\n{\"media_type\":\"movie\",\"confidence\":0.9}\n```"))
	})

	collection, err := client.ClassifyCollection(context.Background(), []string{"Heat", "Casino"})
	if err != nil {
		t.Fatalf("ClassifyCollection: %v", err)
	}
	if collection.MediaType != "movie" {
		t.Errorf("media_type = %q", collection.MediaType)
	}
}

func TestClassifyCollectionErrorTagging(t *testing.T) {
	unavailable := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	_, err := unavailable.ClassifyCollection(context.Background(), []string{"Heat", "Casino"})
	if !errors.Is(err, upstream.ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}

	malformed := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(completionResponse(t, "the titles appear to be korean dramas"))
	})
	_, err = malformed.ClassifyCollection(context.Background(), []string{"Vincenzo", "The Glory"})
	if !errors.Is(err, upstream.ErrMalformed) {
		t.Fatalf("err = %v, want ErrMalformed", err)
	}

	var nilClient *Client
	_, err = nilClient.ClassifyCollection(context.Background(), []string{"Heat"})
	if !errors.Is(err, upstream.ErrUnavailable) {
		t.Fatalf("nil client err = %v, want ErrUnavailable", err)
	}
}

func TestClassifyCollectionRejectsEmptyInput(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	if _, err := client.ClassifyCollection(context.Background(), []string{"", "   "}); err == nil {
		t.Fatal("expected error for empty titles")
	}
}
