package cli

import (
	"context"
	"testing"
	"time"

	"github.com/veldt-labs/chemseek/pkg/catalog"
)

type signalSearcher struct {
	calls chan string
}

func (s *signalSearcher) Search(_ context.Context, query string, _ catalog.Options) (catalog.ResultSet, error) {
	s.calls <- query
	return nil, nil
}

func TestHandlerThreadsDebounceIntoComponent(t *testing.T) {
	searcher := &signalSearcher{calls: make(chan string, 1)}
	h := NewInputHandler(searcher, nil, 1, 60, 5, false, 80*time.Millisecond)
	defer h.component.Close()

	h.component.SetQuery("asp")

	select {
	case q := <-searcher.calls:
		t.Fatalf("lookup for %q fired before the configured quiet period", q)
	case <-time.After(20 * time.Millisecond):
	}

	select {
	case q := <-searcher.calls:
		if q != "asp" {
			t.Fatalf("lookup fired with %q, want asp", q)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("lookup never fired after the quiet period elapsed")
	}
}
