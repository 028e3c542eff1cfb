package edamam

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexmuntean1/freshfridge/internal/domain"
	"github.com/alexmuntean1/freshfridge/internal/logger"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	log := logger.New(logger.LevelOff, nil)
	return NewClient(Credentials{AppID: "id", AppKey: "key"}, log,
		WithBaseURL(srv.URL+"/"),
		WithNutritionCredentials(Credentials{AppID: "nid", AppKey: "nkey"}),
	)
}

func TestSearchParams(t *testing.T) {
	tests := []struct {
		name   string
		query  domain.SearchQuery
		want   map[string]string
		absent []string
	}{
		{
			name:   "no filters",
			query:  domain.SearchQuery{Ingredients: []string{"Apples", "Bread"}},
			want:   map[string]string{"q": "Apples,Bread"},
			absent: []string{"diet", "mealType", "health", "cuisineType"},
		},
		{
			name: "all filters",
			query: domain.SearchQuery{
				Ingredients: []string{"Eggs"},
				Filters:     domain.Filters{Diet: "low-fat", MealType: "lunch", Health: "vegan", Cuisine: "Middle Eastern"},
			},
			want: map[string]string{
				"q": "Eggs", "diet": "low-fat", "mealType": "lunch",
				"health": "vegan", "cuisineType": "Middle Eastern",
			},
		},
		{
			name:   "one filter",
			query:  domain.SearchQuery{Filters: domain.Filters{MealType: "snack"}},
			want:   map[string]string{"q": "", "mealType": "snack"},
			absent: []string{"diet", "health", "cuisineType"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := SearchParams(tt.query)
			for k, want := range tt.want {
				if got := v.Get(k); got != want {
					t.Errorf("%s: got %q, want %q", k, got, want)
				}
			}
			for _, k := range tt.absent {
				if v.Has(k) {
					t.Errorf("%s should be omitted", k)
				}
			}
		})
	}
}

func TestSearch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/search" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "chicken,rice" || q.Get("app_id") != "id" || q.Get("app_key") != "key" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if q.Get("diet") != "balanced" {
			t.Errorf("expected diet=balanced, got %q", q.Get("diet"))
		}
		io.WriteString(w, `{"hits":[{"recipe":{"label":"Chicken Rice","image":"img","uri":"u1",
			"ingredients":[{"foodId":"f1","text":"1 cup rice","food":"rice"}]}}]}`)
	})

	hits, err := client.Search(context.Background(), domain.SearchQuery{
		Ingredients: []string{"chicken", "rice"},
		Filters:     domain.Filters{Diet: "balanced"},
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	r := hits[0].Recipe
	if r.Label != "Chicken Rice" || r.URI != "u1" || len(r.Ingredients) != 1 || r.Ingredients[0].Food != "rice" {
		t.Fatalf("unexpected recipe %+v", r)
	}
}

func TestSearchEmptyAndMalformedHits(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty hits", `{"hits":[]}`},
		{"absent hits", `{"count":0}`},
		{"null hits", `{"hits":null}`},
		{"hits not an array", `{"hits":"nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, tt.body)
			})
			hits, err := client.Search(context.Background(), domain.SearchQuery{Ingredients: []string{"x"}})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if hits == nil || len(hits) != 0 {
				t.Fatalf("expected empty non-nil hits, got %#v", hits)
			}
		})
	}
}

func TestSearchErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
	}{
		{"non-json body", http.StatusOK, "<html>oops</html>", 0},
		{"array body", http.StatusOK, "[]", 0},
		{"unauthorized", http.StatusUnauthorized, "bad key", http.StatusUnauthorized},
		{"server error", http.StatusInternalServerError, "", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})
			_, err := client.Search(context.Background(), domain.SearchQuery{})
			if err == nil {
				t.Fatal("expected error")
			}
			var apiErr *APIError
			if tt.wantStatus != 0 {
				if !errors.As(err, &apiErr) || apiErr.Status != tt.wantStatus {
					t.Fatalf("expected APIError %d, got %v", tt.wantStatus, err)
				}
			}
		})
	}
}

func TestSearchNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(Credentials{AppID: "id", AppKey: "key"}, logger.New(logger.LevelOff, nil), WithBaseURL(url))
	if _, err := client.Search(context.Background(), domain.SearchQuery{}); err == nil {
		t.Fatal("expected network error")
	}
}

func TestAnalyze(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/nutrition-details" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if r.URL.Query().Get("app_id") != "nid" || r.URL.Query().Get("app_key") != "nkey" {
			t.Errorf("expected nutrition credentials, got %s", r.URL.RawQuery)
		}
		var body struct {
			Ingr []string `json:"ingr"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if len(body.Ingr) != 2 || body.Ingr[0] != "1 cup rice" {
			t.Errorf("unexpected ingr %v", body.Ingr)
		}
		io.WriteString(w, `{"calories":420,"totalNutrients":{"FAT":{"label":"Fat","quantity":9.5,"unit":"g"}}}`)
	})

	n, err := client.Analyze(context.Background(), []string{"1 cup rice", "2 eggs"})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if n.Calories != 420 {
		t.Fatalf("expected 420 calories, got %v", n.Calories)
	}
	if q, ok := n.Quantity(domain.NutrientFat); !ok || q != 9.5 {
		t.Fatalf("unexpected fat %v (ok=%v)", q, ok)
	}
	if _, ok := n.Quantity(domain.NutrientCholesterol); ok {
		t.Fatal("cholesterol should be absent")
	}
}

func TestNutritionFallsBackToSearchCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("app_id") != "id" {
			t.Errorf("expected search credentials, got %s", r.URL.RawQuery)
		}
		io.WriteString(w, `{"calories":1}`)
	}))
	defer srv.Close()

	client := NewClient(Credentials{AppID: "id", AppKey: "key"}, logger.New(logger.LevelOff, nil), WithBaseURL(srv.URL))
	if _, err := client.Analyze(context.Background(), nil); err != nil {
		t.Fatalf("analyze: %v", err)
	}
}
