package catapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewClientValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(Config{BaseURL: "   "}); err == nil {
		t.Fatal("expected error for empty base url")
	}
	if _, err := NewClient(Config{BaseURL: "not a url"}); err == nil {
		t.Fatal("expected error for malformed base url")
	}
}

func TestSearchReturnsFirstMatch(t *testing.T) {
	t.Parallel()

	var gotQuery, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/breeds/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery = r.URL.Query().Get("q")
		gotKey = r.Header.Get("x-api-key")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"id":"sibe","name":"Siberian","origin":"Russia","temperament":"Curious","description":"A forest cat."},
			{"id":"sber","name":"Other","origin":"","temperament":"","description":""}
		]`)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL, APIKey: "secret"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	breed, err := client.Search(context.Background(), "siberian")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if breed.Name != "Siberian" || breed.Origin != "Russia" {
		t.Fatalf("unexpected breed: %+v", breed)
	}
	if gotQuery != "siberian" {
		t.Fatalf("query param q = %q", gotQuery)
	}
	if gotKey != "secret" {
		t.Fatalf("x-api-key = %q", gotKey)
	}
}

func TestSearchNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[]`)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	_, err = client.Search(context.Background(), "dograt")
	if !errors.Is(err, ErrBreedNotFound) {
		t.Fatalf("expected ErrBreedNotFound, got %v", err)
	}
}

func TestSearchServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if _, err := client.Search(context.Background(), "siberian"); err == nil {
		t.Fatal("expected error on 500 response")
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	t.Parallel()

	client, err := NewClient(Config{BaseURL: "https://example.com"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if _, err := client.Search(context.Background(), "   "); err == nil {
		t.Fatal("expected error for blank query")
	}
}
