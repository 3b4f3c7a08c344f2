// Package viewer serves a rendered figure page on a local HTTP listener and
// blocks until the person viewing it closes the page.
//
// Closing is detected with a pagehide beacon carrying a per-run session id.
// Every page load counts as an open tab and every beacon closes one. When no
// tab is left a grace period starts; a fresh page load within that period
// cancels it, so reloading the page keeps the viewer alive.
//
// Chart scripts can be served from the same listener under AssetsPath, so the
// page needs nothing from outside the host.
package viewer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/flightplot/internal/httputil"
	"github.com/banshee-data/flightplot/internal/monitoring"
	"github.com/banshee-data/flightplot/internal/timeutil"
)

const shutdownTimeout = 5 * time.Second

// Options configures Serve.
type Options struct {
	// Listen is the TCP address to bind, "127.0.0.1:0" for an ephemeral port.
	Listen string
	// OpenBrowser launches the system browser at the page URL.
	OpenBrowser bool
	// CloseGrace is how long after a close beacon Serve waits for a reload.
	CloseGrace time.Duration
	// OnReady, if set, is called with the page URL once the listener is bound.
	OnReady func(url string)
	// Clock drives the close grace period; nil uses the real clock.
	Clock timeutil.Clock
	// Assets, if set, is served under AssetsPath.
	Assets fs.FS
}

const beaconScript = `<script>
window.addEventListener("pagehide", function () {
  navigator.sendBeacon("/closed?session=%s");
});
</script>
`

// Serve publishes page at "/" and blocks until the page is closed, ctx is
// done, or the server fails. Closing the page and cancelling ctx both return
// nil.
func Serve(ctx context.Context, page []byte, opts Options) error {
	if opts.Listen == "" {
		opts.Listen = "127.0.0.1:0"
	}

	ln, err := net.Listen("tcp", opts.Listen)
	if err != nil {
		return fmt.Errorf("failed to create listener for viewer: %w", err)
	}

	if opts.Clock == nil {
		opts.Clock = timeutil.RealClock{}
	}

	s := newSession(page, opts.CloseGrace, opts.Clock)
	s.assets = opts.Assets
	defer s.stop()

	server := &http.Server{
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- server.Serve(ln)
	}()

	url := pageURL(ln.Addr())
	monitoring.Logf("viewer listening on %s", url)
	if opts.OnReady != nil {
		opts.OnReady(url)
	}
	if opts.OpenBrowser {
		if err := launch(url); err != nil {
			monitoring.Logf("failed to open browser: %v", err)
		}
	}

	select {
	case <-ctx.Done():
		monitoring.Logf("viewer interrupted")
	case <-s.done:
		monitoring.Logf("viewer closed by page")
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("viewer server failed: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		monitoring.Logf("viewer shutdown error: %v", err)
	}
	<-errc
	return nil
}

// pageURL turns the bound address into a browsable URL. Wildcard hosts are
// replaced by localhost.
func pageURL(addr net.Addr) string {
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return "http://" + addr.String() + "/"
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + "/"
}

// session tracks one served page and its close state.
type session struct {
	id     string
	body   []byte
	assets fs.FS
	grace  time.Duration
	clock  timeutil.Clock
	opened time.Time

	mu      sync.Mutex
	open    int // page loads without a matching close beacon
	pending timeutil.Timer
	once    sync.Once
	done    chan struct{}
}

func newSession(page []byte, grace time.Duration, clock timeutil.Clock) *session {
	id := uuid.NewString()
	return &session{
		id:     id,
		body:   injectBeacon(page, id),
		grace:  grace,
		clock:  clock,
		opened: clock.Now(),
		done:   make(chan struct{}),
	}
}

// injectBeacon places the close beacon just before the closing body tag, or
// at the end when the page has none.
func injectBeacon(page []byte, id string) []byte {
	script := []byte(fmt.Sprintf(beaconScript, id))
	i := bytes.LastIndex(page, []byte("</body>"))
	if i < 0 {
		return append(append([]byte(nil), page...), script...)
	}
	out := make([]byte, 0, len(page)+len(script))
	out = append(out, page[:i]...)
	out = append(out, script...)
	return append(out, page[i:]...)
}

func (s *session) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handlePage)
	mux.HandleFunc("/closed", s.handleClosed)
	if s.assets != nil {
		mux.Handle(AssetsPath, assetHandler(s.assets))
	}
	return mux
}

func (s *session) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		httputil.NotFound(w, "not found")
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		httputil.MethodNotAllowed(w)
		return
	}

	if r.Method == http.MethodGet {
		s.pageOpened()
	}
	httputil.WriteHTML(w, s.body)
}

func (s *session) handleClosed(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("session") != s.id {
		httputil.NotFound(w, "unknown session")
		return
	}
	s.pageClosed()
	w.WriteHeader(http.StatusNoContent)
}

// pageOpened counts a tab and cancels any pending close.
func (s *session) pageOpened() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open++
	s.cancelLocked()
}

// pageClosed releases a tab. The grace timer starts once none are left.
func (s *session) pageClosed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.open > 0 {
		s.open--
	}
	if s.open > 0 || s.pending != nil {
		return
	}
	s.pending = s.clock.AfterFunc(s.grace, s.finish)
}

func (s *session) cancelLocked() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}

func (s *session) finish() {
	s.once.Do(func() {
		monitoring.Logf("viewer page closed after %s", s.clock.Now().Sub(s.opened).Round(time.Millisecond))
		close(s.done)
	})
}

func (s *session) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}
