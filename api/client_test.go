package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, server.Client(), "aulasdk-test/1")
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func TestNewClientValidatesBaseURL(t *testing.T) {
	cases := []string{"", "not-a-url", "/relative/path", "://missing-scheme"}
	for _, base := range cases {
		if _, err := NewClient(base, http.DefaultClient, ""); err == nil {
			t.Fatalf("NewClient(%q) accepted invalid base", base)
		}
	}

	if _, err := NewClient("https://aula.example.edu", nil, ""); err == nil {
		t.Fatal("NewClient accepted nil http client")
	}
}

func TestListDecodesPaginationEnvelope(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/students/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("page = %q", got)
		}
		if got := r.URL.Query().Get("page_size"); got != "5" {
			t.Errorf("page_size = %q", got)
		}
		if got := r.URL.Query().Get("search"); got != "garcia" {
			t.Errorf("search = %q", got)
		}
		io.WriteString(w, `{
			"count": 11,
			"next": "http://x/api/students/?page=3",
			"previous": "http://x/api/students/?page=1",
			"results": [
				{"id": 6, "ci": "123", "nombre": "Maria", "apellido": "Garcia", "curso": 3, "activo": true}
			]
		}`)
	}))

	page, err := client.Students().List(context.Background(), ListParams{
		Page: 2, PageSize: 5, Search: "garcia",
	})
	if err != nil {
		t.Fatal(err)
	}

	if page.Count != 11 {
		t.Fatalf("count = %d", page.Count)
	}
	if page.Next == nil || page.Previous == nil {
		t.Fatal("pagination links not decoded")
	}
	if len(page.Results) != 1 {
		t.Fatalf("results = %d", len(page.Results))
	}
	s := page.Results[0]
	if s.ID != 6 || s.FirstName != "Maria" || s.LastName != "Garcia" || s.CourseID != 3 || !s.Active {
		t.Fatalf("student = %+v", s)
	}
}

func TestDoSendsHeadersAndBody(t *testing.T) {
	var gotAccept, gotContentType, gotUA string
	var gotBody map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotContentType = r.Header.Get("Content-Type")
		gotUA = r.Header.Get("User-Agent")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id": 1, "nombre": "Ana"}`)
	}))

	_, err := client.Students().Create(context.Background(), StudentInput{
		CI: "456", FirstName: "Ana", LastName: "Lopez", CourseID: 2, Active: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	if gotAccept != "application/json" {
		t.Fatalf("Accept = %q", gotAccept)
	}
	if gotContentType != "application/json" {
		t.Fatalf("Content-Type = %q", gotContentType)
	}
	if gotUA != "aulasdk-test/1" {
		t.Fatalf("User-Agent = %q", gotUA)
	}
	if gotBody["nombre"] != "Ana" || gotBody["curso"] != float64(2) {
		t.Fatalf("body = %v, Spanish field names expected on the wire", gotBody)
	}
}

func TestDeleteAcceptsNoContent(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := client.Students().Delete(context.Background(), 9); err != nil {
		t.Fatal(err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/students/9/" {
		t.Fatalf("%s %s", gotMethod, gotPath)
	}
}

func TestListByCourseAddsFilter(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("curso"); got != "4" {
			t.Errorf("curso = %q", got)
		}
		io.WriteString(w, `{"count": 0, "results": []}`)
	}))

	if _, err := client.Students().ListByCourse(context.Background(), 4, ListParams{}); err != nil {
		t.Fatal(err)
	}
}

func TestDoContextCancellation(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Students().List(ctx, ListParams{})
	if err == nil {
		t.Fatal("expected error on cancelled context")
	}
	if !IsNetworkError(err) {
		t.Fatalf("cancellation should surface as a transport failure, got %v", err)
	}
}
