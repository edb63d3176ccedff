package server

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/veldt-labs/chemseek/pkg/catalog"
	"github.com/veldt-labs/chemseek/pkg/config"
)

func testIndex() *catalog.Index {
	return catalog.BuildIndex([]catalog.Product{
		{ID: "asp-100", Name: "Aspirin", Synonyms: []string{"asa"}, Summary: "NSAID", Popularity: 900},
		{ID: "caf-200", Name: "Caffeine", Popularity: 1500},
	})
}

// runServer feeds encoded requests through a server instance and returns a
// decoder over everything it wrote.
func runServer(t *testing.T, requests ...Request) *msgpack.Decoder {
	t.Helper()

	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, r := range requests {
		if err := enc.Encode(r); err != nil {
			t.Fatal(err)
		}
	}

	var out bytes.Buffer
	index := testIndex()
	srv := NewServerWithIO(index, index, config.DefaultConfig(), &in, &out)
	if err := srv.Start(); err != nil {
		t.Fatalf("server: %v", err)
	}

	dec := msgpack.NewDecoder(&out)
	var ready StatusResponse
	if err := dec.Decode(&ready); err != nil || ready.Status != "ready" {
		t.Fatalf("missing ready signal: %v %v", ready, err)
	}
	return dec
}

func TestSearchRequest(t *testing.T) {
	dec := runServer(t, Request{ID: "req1", Op: "search", Query: "aspirin", Limit: 10})

	var resp SearchResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.ID != "req1" || resp.Count != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Candidates[0].Name != "Aspirin" {
		t.Fatalf("unexpected candidate: %+v", resp.Candidates[0])
	}
	if resp.Candidates[0].Tier == "" {
		t.Fatal("candidates from the index must carry a tier label")
	}
}

func TestSearchValidation(t *testing.T) {
	long := strings.Repeat("a", 100)
	dec := runServer(t,
		Request{ID: "e1", Op: "search"},
		Request{ID: "e2", Op: "search", Query: long},
		Request{ID: "e3", Op: "bogus"},
	)

	for _, wantID := range []string{"e1", "e2", "e3"} {
		var resp ErrorResponse
		if err := dec.Decode(&resp); err != nil {
			t.Fatal(err)
		}
		if resp.ID != wantID || resp.Code != 400 {
			t.Fatalf("expected 400 for %s, got %+v", wantID, resp)
		}
	}
}

func TestDetailRequest(t *testing.T) {
	dec := runServer(t,
		Request{ID: "d1", Op: "detail", Name: "asa"},
		Request{ID: "d2", Op: "detail", Name: "nope"},
	)

	var detail DetailResponse
	if err := dec.Decode(&detail); err != nil {
		t.Fatal(err)
	}
	if detail.Name != "Aspirin" || detail.Summary != "NSAID" {
		t.Fatalf("unexpected detail: %+v", detail)
	}

	var missing ErrorResponse
	if err := dec.Decode(&missing); err != nil {
		t.Fatal(err)
	}
	if missing.ID != "d2" || missing.Code != 404 {
		t.Fatalf("expected 404, got %+v", missing)
	}
}

func TestHealthRequest(t *testing.T) {
	dec := runServer(t, Request{ID: "hb1", Op: "health"})

	var status StatusResponse
	if err := dec.Decode(&status); err != nil {
		t.Fatal(err)
	}
	if status.ID != "hb1" || status.Status != "ok" {
		t.Fatalf("unexpected status: %+v", status)
	}
}
