package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Belphemur/OpenSubtitlesAuto/internal/client"
	"github.com/Belphemur/OpenSubtitlesAuto/internal/models"
	"github.com/Belphemur/OpenSubtitlesAuto/internal/services"
	"github.com/Belphemur/OpenSubtitlesAuto/internal/testutil"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

// freePort returns a port that was free a moment ago; the metrics server has no
// ephemeral port mode.
func freePort(t *testing.T) int {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}
	defer lis.Close()
	return lis.Addr().(*net.TCPAddr).Port
}

// waitForOK polls url until it answers 200 or five seconds pass.
func waitForOK(t *testing.T, url string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		if time.Now().After(deadline) {
			t.Fatalf("%s did not answer 200 in time (last error: %v)", url, err)
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestManifestCommand(t *testing.T) {
	out, err := execute(t, "manifest")
	if err != nil {
		t.Fatalf("manifest failed: %v", err)
	}

	var manifest models.Manifest
	if err := json.Unmarshal([]byte(out), &manifest); err != nil {
		t.Fatalf("Failed to decode %q: %v", out, err)
	}
	if want := models.NewManifest(); !reflect.DeepEqual(want, manifest) {
		t.Errorf("Expected manifest %+v, got %+v", want, manifest)
	}
}

func TestLookupCommand(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("imdb_id"); got != "0111161" {
			t.Errorf("Expected imdb_id 0111161, got %q", got)
		}
		if got := r.URL.Query().Get("languages"); got != "en" {
			t.Errorf("Expected languages en, got %q", got)
		}
		if got := r.Header.Get("Api-Key"); got != "cli-key" {
			t.Errorf("Expected Api-Key cli-key, got %q", got)
		}
		_, _ = w.Write([]byte(`{"data":[{"id":"abc","attributes":{"url":"http://x/y.srt"}}]}`))
	}))
	defer upstream.Close()

	path := writeConfig(t, "opensubtitles:\n  api_key: cli-key\n  base_url: "+upstream.URL+"\n")

	out, err := execute(t, "lookup", "tt0111161", "--lang", "eng", "--config", path)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	testutil.AssertJSONEqual(t, `{"subtitles":[{"id":"abc","lang":"en","url":"http://x/y.srt"}]}`, out)
}

func TestLookupCommand_UpstreamDownPrintsEmpty(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := upstream.URL
	upstream.Close()

	path := writeConfig(t, "opensubtitles:\n  base_url: "+baseURL+"\n")

	out, err := execute(t, "lookup", "tt0111161", "--config", path)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	testutil.AssertJSONEqual(t, `{"subtitles":[]}`, out)
}

func TestLookupCommand_RequiresID(t *testing.T) {
	if _, err := execute(t, "lookup"); err == nil {
		t.Error("Expected an error without a content id")
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	if _, err := execute(t, "lookup", "tt1", "--config", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected an error for a missing config file")
	}
}

func TestServe_HTTPAndGRPC(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer upstream.Close()

	cfg := testutil.NewTestConfig(upstream.URL)
	cfg.Server.Address = "127.0.0.1"
	cfg.GRPC.Enabled = true
	cfg.Metrics.Enabled = true
	cfg.Metrics.Port = freePort(t)

	var mu sync.Mutex
	addrs := map[string]net.Addr{}
	ready := make(chan struct{})
	onListen := func(name string, addr net.Addr) {
		mu.Lock()
		defer mu.Unlock()
		addrs[name] = addr
		if len(addrs) == 3 {
			close(ready)
		}
	}

	c := client.NewClient(cfg)
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, cfg, services.NewSubtitleLookup(c, cfg.DefaultLanguage), onListen)
	}()

	select {
	case <-ready:
	case err := <-done:
		t.Fatalf("serve returned early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("servers did not start")
	}

	mu.Lock()
	httpAddr := addrs["http"].String()
	metricsAddr := addrs["metrics"].String()
	mu.Unlock()

	waitForOK(t, "http://"+httpAddr+"/health")

	resp, err := http.Get("http://" + httpAddr + "/subtitles/movie/tt9999999.json")
	if err != nil {
		t.Fatalf("GET subtitles failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	testutil.AssertJSONEqual(t, `{"subtitles":[]}`, string(body))

	waitForOK(t, "http://"+metricsAddr+"/metrics")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("serve returned %v", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("serve did not stop after cancellation")
	}
}

func TestServe_ListenFailure(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}
	defer taken.Close()

	cfg := testutil.NewTestConfig("http://127.0.0.1:1")
	cfg.Server.Address = "127.0.0.1"
	cfg.Server.Port = taken.Addr().(*net.TCPAddr).Port

	err = serve(context.Background(), cfg, services.NewSubtitleLookup(client.NewClient(cfg), ""), nil)
	if err == nil || !strings.Contains(err.Error(), "http listener") {
		t.Errorf("Expected an http listener error, got %v", err)
	}
}
