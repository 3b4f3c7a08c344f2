package viewer

import (
	"context"
	"io"
	"net"
	"net/http"
	"regexp"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPage = "<html><body><h1>Position</h1></body></html>"

var sessionRe = regexp.MustCompile(`/closed\?session=([0-9a-f-]{36})`)

// startServe runs Serve in the background and returns the page URL and a
// channel that receives Serve's result.
func startServe(t *testing.T, ctx context.Context, opts Options) (string, <-chan error) {
	t.Helper()

	ready := make(chan string, 1)
	opts.Listen = "127.0.0.1:0"
	opts.OnReady = func(url string) { ready <- url }

	result := make(chan error, 1)
	go func() { result <- Serve(ctx, []byte(testPage), opts) }()

	select {
	case url := <-ready:
		return url, result
	case err := <-result:
		t.Fatalf("Serve returned early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("viewer did not become ready")
	}
	return "", nil
}

func fetchPage(t *testing.T, url string) (string, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	m := sessionRe.FindStringSubmatch(string(body))
	require.Len(t, m, 2, "page should carry a close beacon")
	return string(body), m[1]
}

func postClosed(t *testing.T, url, session string) int {
	t.Helper()
	resp, err := http.Post(url+"closed?session="+session, "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func waitResult(t *testing.T, result <-chan error) error {
	t.Helper()
	select {
	case err := <-result:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return")
		return nil
	}
}

func TestServe_ReturnsWhenPageCloses(t *testing.T) {
	url, result := startServe(t, context.Background(), Options{CloseGrace: 10 * time.Millisecond})

	body, session := fetchPage(t, url)
	assert.Contains(t, body, "<h1>Position</h1>")
	assert.Less(t, strings.Index(body, "sendBeacon"), strings.Index(body, "</body>"))

	assert.Equal(t, http.StatusNoContent, postClosed(t, url, session))
	assert.NoError(t, waitResult(t, result))
}

func TestServe_IgnoresForeignSession(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	url, result := startServe(t, ctx, Options{CloseGrace: 10 * time.Millisecond})

	assert.Equal(t, http.StatusNotFound, postClosed(t, url, "00000000-0000-0000-0000-000000000000"))

	select {
	case err := <-result:
		t.Fatalf("Serve returned on a foreign beacon: %v", err)
	case <-time.After(100 * time.Millisecond):
	}

	cancel()
	assert.NoError(t, waitResult(t, result))
}

func TestServe_ReloadCancelsClose(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	url, result := startServe(t, ctx, Options{CloseGrace: 300 * time.Millisecond})

	_, session := fetchPage(t, url)
	assert.Equal(t, http.StatusNoContent, postClosed(t, url, session))
	fetchPage(t, url) // reload within the grace period

	select {
	case err := <-result:
		t.Fatalf("Serve returned despite reload: %v", err)
	case <-time.After(600 * time.Millisecond):
	}

	cancel()
	assert.NoError(t, waitResult(t, result))
}

func TestServe_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	url, result := startServe(t, ctx, Options{})

	fetchPage(t, url)
	cancel()
	assert.NoError(t, waitResult(t, result))

	_, err := http.Get(url)
	assert.Error(t, err, "listener should be closed after Serve returns")
}

func TestServe_UnknownPathAndMethod(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	url, result := startServe(t, ctx, Options{})

	resp, err := http.Get(url + "favicon.ico")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Post(url, "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	cancel()
	assert.NoError(t, waitResult(t, result))
}

func TestServe_OpensBrowser(t *testing.T) {
	original := launch
	defer func() { launch = original }()

	opened := make(chan string, 1)
	launch = func(url string) error {
		opened <- url
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	url, result := startServe(t, ctx, Options{OpenBrowser: true})

	select {
	case got := <-opened:
		assert.Equal(t, url, got)
	case <-time.After(5 * time.Second):
		t.Fatal("browser was not launched")
	}

	cancel()
	assert.NoError(t, waitResult(t, result))
}

func TestServe_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	err = Serve(context.Background(), []byte(testPage), Options{Listen: ln.Addr().String()})
	assert.Error(t, err)
}

func TestPageURL(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{"127.0.0.1:8080", "http://127.0.0.1:8080/"},
		{"0.0.0.0:8080", "http://localhost:8080/"},
		{"[::]:9000", "http://localhost:9000/"},
		{"[::1]:9000", "http://[::1]:9000/"},
	}

	for _, tt := range tests {
		addr, err := net.ResolveTCPAddr("tcp", tt.addr)
		require.NoError(t, err)
		assert.Equal(t, tt.want, pageURL(addr), tt.addr)
	}
}

func TestInjectBeacon(t *testing.T) {
	out := string(injectBeacon([]byte("<p>no body tag</p>"), "abc"))
	assert.True(t, strings.HasPrefix(out, "<p>no body tag</p>"))
	assert.Contains(t, out, `/closed?session=abc`)

	page := []byte("<body></body>")
	out = string(injectBeacon(page, "abc"))
	assert.True(t, strings.HasSuffix(out, "</script>\n</body>"))
	assert.Equal(t, "<body></body>", string(page), "input page must not be modified")
}

func TestServe_SecondTabKeepsServing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	url, result := startServe(t, ctx, Options{CloseGrace: 10 * time.Millisecond})

	_, session := fetchPage(t, url)
	fetchPage(t, url)
	assert.Equal(t, http.StatusNoContent, postClosed(t, url, session))

	select {
	case err := <-result:
		t.Fatalf("Serve returned with a tab still open: %v", err)
	case <-time.After(200 * time.Millisecond):
	}

	assert.Equal(t, http.StatusNoContent, postClosed(t, url, session))
	assert.NoError(t, waitResult(t, result))
}

func TestServe_ServesAssets(t *testing.T) {
	assets := fstest.MapFS{
		"echarts.min.js":    {Data: []byte("var echarts;")},
		"echarts@4.min.js":  {Data: []byte("var echarts4;")},
		"echarts-gl.min.js": {Data: []byte("var gl;")},
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	url, result := startServe(t, ctx, Options{Assets: assets})

	resp, err := http.Get(url + "assets/echarts-gl.min.js")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "var gl;", string(body))

	resp, err = http.Get(url + "assets/missing.js")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	cancel()
	assert.NoError(t, waitResult(t, result))
}

func TestServe_NoAssetsRoute(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	url, result := startServe(t, ctx, Options{})

	resp, err := http.Get(url + "assets/echarts.min.js")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	cancel()
	assert.NoError(t, waitResult(t, result))
}

func TestCheckAssets(t *testing.T) {
	complete := fstest.MapFS{}
	for _, name := range AssetFiles {
		complete[name] = &fstest.MapFile{Data: []byte("//")}
	}
	assert.NoError(t, CheckAssets(complete))

	delete(complete, "echarts-gl.min.js")
	err := CheckAssets(complete)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "echarts-gl.min.js")
}

func TestBundledAssetsMatchCheck(t *testing.T) {
	fsys, ok := BundledAssets()
	if !ok {
		assert.Nil(t, fsys)
		return
	}
	assert.NoError(t, CheckAssets(fsys))
}
