package broker

import (
	"net/http/httptest"
	"testing"

	"aiwargame/internal/coord"
)

func TestPostThenGetMoveRoundTrips(t *testing.T) {
	srv := NewServer()
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := NewClient(ts.URL)
	from, to := coord.New(0, 0), coord.New(0, 1)
	if err := client.PostMove(from, to, 3); err != nil {
		t.Fatalf("PostMove failed: %v", err)
	}

	pair, err := client.GetMove()
	if err != nil {
		t.Fatalf("GetMove failed: %v", err)
	}
	if pair.From != from || pair.To != to {
		t.Fatalf("GetMove = %+v, want from=%v to=%v", pair, from, to)
	}
}

func TestGetMoveBeforeAnyPostFails(t *testing.T) {
	srv := NewServer()
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := NewClient(ts.URL)
	if _, err := client.GetMove(); err == nil {
		t.Fatal("expected an error fetching a move before any has been posted")
	}
}
