package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"dvdenrich/internal/config"
	"dvdenrich/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	lockPath   string
	wiki       *fakeWiki
}

// fakeWiki serves MediaWiki responses from an in-memory title → director map.
type fakeWiki struct {
	mu        sync.Mutex
	directors map[string]string
	searches  []string
}

func (f *fakeWiki) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	w.Header().Set("Content-Type", "application/json")
	switch {
	case q.Get("list") == "search":
		query := q.Get("srsearch")
		f.mu.Lock()
		f.searches = append(f.searches, query)
		f.mu.Unlock()
		for title := range f.directors {
			if strings.HasPrefix(query, title) {
				fmt.Fprintf(w, `{"query":{"search":[{"title":%q}]}}`, title)
				return
			}
		}
		fmt.Fprint(w, `{"query":{"search":[]}}`)
	case q.Get("prop") == "revisions":
		director := f.directors[q.Get("titles")]
		fmt.Fprintf(w, `{"query":{"pages":{"1":{"revisions":[{"slots":{"main":{"*":%q}}}]}}}}`,
			"{{Infobox film\n| director = [["+director+"]]\n}}")
	default:
		fmt.Fprint(w, `{"query":{"pages":{"1":{"extract":""}}}}`)
	}
}

func (f *fakeWiki) searchQueries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.searches...)
}

func setupCLITestEnv(t *testing.T, rows ...testsupport.Row) *cliTestEnv {
	t.Helper()

	wiki := &fakeWiki{directors: map[string]string{}}
	server := httptest.NewServer(wiki)
	t.Cleanup(server.Close)

	cfg := testsupport.NewConfig(t, testsupport.WithEndpoint(server.URL+"/w/api.php"))
	testsupport.MustCreateCatalog(t, cfg, rows...)

	base := testsupport.BaseDir(cfg)
	configPath := filepath.Join(base, "config.ini")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		lockPath:   filepath.Join(base, "run.lock"),
		wiki:       wiki,
	}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[database]\ndriver = %s\ndbname = %s\ntable = %s\n\n[wikipedia]\nendpoint = %s\n\n[logging]\nformat = console\nlevel = info\n",
		cfg.Database.Driver,
		cfg.Database.Name,
		cfg.Database.Table,
		cfg.Wikipedia.Endpoint,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func (e *cliTestEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	base := []string{"--config", e.configPath, "--lock-file", e.lockPath, "--sleep", "0"}
	return runCLI(t, append(base, args...)...)
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
