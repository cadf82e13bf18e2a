package overpass

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestAroundQuery(t *testing.T) {
	got := AroundQuery(52.5, 13.4, 7000, []string{"clinic"})
	want := `[out:json][timeout:25];(node["amenity"="clinic"](around:7000,52.5,13.4);way["amenity"="clinic"](around:7000,52.5,13.4););out center;`
	if got != want {
		t.Errorf("AroundQuery =\n%s\nwant\n%s", got, want)
	}
}

func TestClientAround(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		gotQuery = r.PostForm.Get("data")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"elements":[
			{"type":"node","id":1,"lat":1.5,"lon":2.5,"tags":{"amenity":"clinic","name":"North"}},
			{"type":"way","id":2,"center":{"lat":3,"lon":4},"tags":{"amenity":"hospital"}}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 100, 5*time.Second)
	elems, err := c.Around(context.Background(), 1, 2, 500, []string{"clinic", "hospital"})
	if err != nil {
		t.Fatalf("Around: %v", err)
	}
	if !strings.Contains(gotQuery, `way["amenity"="hospital"](around:500,1,2);`) {
		t.Errorf("query sent = %s", gotQuery)
	}

	want := []Element{
		{Type: "node", ID: 1, Lat: 1.5, Lon: 2.5, Tags: map[string]string{"amenity": "clinic", "name": "North"}},
		{Type: "way", ID: 2, Center: &Point{Lat: 3, Lon: 4}, Tags: map[string]string{"amenity": "hospital"}},
	}
	if diff := cmp.Diff(want, elems); diff != "" {
		t.Errorf("elements mismatch (-want +got):\n%s", diff)
	}
	if lat, lon := elems[1].Position(); lat != 3 || lon != 4 {
		t.Errorf("way position = %v,%v", lat, lon)
	}
}

func TestClientAroundErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 100, 5*time.Second)
	if _, err := c.Around(context.Background(), 0, 0, 10, []string{"clinic"}); err == nil || !strings.Contains(err.Error(), "429") {
		t.Errorf("Around: got %v, want status 429 error", err)
	}
}
