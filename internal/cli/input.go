// Package cli drives the incremental search component interactively for
// debugging and testing from a terminal.
package cli

import (
	"bufio"
	"context"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/veldt-labs/chemseek/internal/logger"
	"github.com/veldt-labs/chemseek/internal/utils"
	"github.com/veldt-labs/chemseek/pkg/catalog"
	"github.com/veldt-labs/chemseek/pkg/search"
)

// resultWait caps how long a line waits for its lookup to complete.
const resultWait = 2 * time.Second

// InputHandler reads queries from stdin, feeds them through the search
// component and renders the suggestion panel. Each entered line is treated as
// the final text of a keystroke burst, so the debounce timer is flushed
// instead of waited out.
type InputHandler struct {
	component *search.Component
	renderer  *search.Renderer
	detailer  catalog.Detailer
	updates   chan catalog.ResultSet
	out       *log.Logger

	minQuery int
	maxQuery int
	noFilter bool
}

// NewInputHandler wires a handler around a backend. detailer may be nil;
// ":open" then only echoes the navigation target. debounce is the component's
// quiet period; zero picks the built-in default.
func NewInputHandler(searcher catalog.Searcher, detailer catalog.Detailer, minQuery, maxQuery, limit int, noFilter bool, debounce time.Duration) *InputHandler {
	h := &InputHandler{
		renderer: search.NewRenderer(),
		detailer: detailer,
		updates:  make(chan catalog.ResultSet, 1),
		out:      logger.Default(""),
		minQuery: minQuery,
		maxQuery: maxQuery,
		noFilter: noFilter,
	}
	h.component = search.NewComponent(searcher, h, search.Config{
		Debounce: debounce,
		Limit:    limit,
		OnUpdate: func(_ string, results catalog.ResultSet) {
			select {
			case h.updates <- results:
			default:
			}
		},
	})
	return h
}

// Start begins the interface loop. Terminates when stdin closes.
func (h *InputHandler) Start() error {
	defer h.component.Close()

	h.out.Print("chemseek CLI")
	h.out.Print("type a query and press Enter for suggestions; ':open <query>' jumps to the top match (Ctrl+C to exit):")
	reader := bufio.NewReader(os.Stdin)

	for {
		h.out.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			h.component.SetQuery("")
			continue
		}
		h.handleInput(line)
	}
}

// handleInput treats one line as a finished keystroke burst.
func (h *InputHandler) handleInput(line string) {
	query, submit := strings.CutPrefix(line, ":open ")
	query = strings.TrimSpace(query)

	if len(query) < h.minQuery {
		log.Errorf("Query too short: %s", query)
		return
	}
	if len(query) > h.maxQuery {
		log.Errorf("Query too long: %s", query)
		return
	}
	if !h.noFilter && !utils.IsValidQuery(query) {
		h.out.Printf("no matches for '%s'", query)
		return
	}

	start := time.Now()
	h.component.SetQuery(query)
	h.component.Flush()

	select {
	case results := <-h.updates:
		log.Debugf("Took [ %v ] for query '%s'", time.Since(start), query)
		h.out.Print(h.renderer.ResultSet(query, results))
	case <-time.After(resultWait):
		log.Warnf("Timed out waiting for results for '%s'", query)
		return
	}

	if submit {
		h.component.Submit()
	}
}

// Navigate implements search.Navigator: it stands in for the detail-view
// transition by printing the product record for the selected candidate.
func (h *InputHandler) Navigate(name, imageURL string) error {
	if imageURL == "" {
		imageURL = search.PlaceholderImage
	}
	h.out.Printf("-> %s (%s)", name, imageURL)

	if h.detailer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), resultWait)
	defer cancel()

	product, err := h.detailer.Detail(ctx, name)
	if err != nil {
		// Permissive navigation: unmatched submissions are not errors.
		log.Debugf("No detail record for %q: %v", name, err)
		return nil
	}
	h.out.Printf("   %s", product.Summary)
	h.out.Printf("   popularity: %s", utils.FormatWithCommas(product.Popularity))
	return nil
}
