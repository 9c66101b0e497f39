//go:build e2e

package e2e

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"
)

// vitrineServer manages a running Vitrine server process.
type vitrineServer struct {
	cmd     *exec.Cmd
	dataDir string
	address string
	apiKey  string
	logFile string
}

// startVitrine launches the Vitrine binary and waits for it to become
// healthy. The server is configured entirely via environment variables and
// seeds its catalog from the shared product fixture on first boot.
func startVitrine(t *testing.T) *vitrineServer {
	t.Helper()

	if vitrineBin == "" {
		t.Skip("vitrine binary not available")
	}

	dataDir := t.TempDir()
	apiKey := "e2e-test-api-key"
	port := freePort(t)
	address := fmt.Sprintf("127.0.0.1:%d", port)
	logFile := filepath.Join(dataDir, "vitrine.log")
	dbPath := filepath.Join(dataDir, "vitrine.db")

	cmd := exec.Command(vitrineBin)
	cmd.Env = append(os.Environ(),
		"VITRINE_PORT="+fmt.Sprintf("%d", port),
		"VITRINE_DB_PATH="+dbPath,
		"VITRINE_API_KEY="+apiKey,
		"VITRINE_CATALOG_PATH="+seedProductsPath(),
		"VITRINE_CONFIG_PATH="+filepath.Join(dataDir, "nonexistent.yaml"), // skip YAML file
		"VITRINE_DEV_MODE=true", // bypass OPENAI_API_KEY validation
	)

	lf, err := os.Create(logFile)
	if err != nil {
		t.Fatalf("create log file: %v", err)
	}
	cmd.Stdout = lf
	cmd.Stderr = lf

	if err := cmd.Start(); err != nil {
		lf.Close()
		t.Fatalf("start vitrine: %v", err)
	}

	s := &vitrineServer{
		cmd:     cmd,
		dataDir: dataDir,
		address: address,
		apiKey:  apiKey,
		logFile: logFile,
	}

	t.Cleanup(func() {
		s.stop()
		lf.Close()
	})

	if err := s.waitHealthy(10 * time.Second); err != nil {
		t.Fatalf("vitrine not healthy: %v", err)
	}

	return s
}

func (s *vitrineServer) stop() {
	if s.cmd != nil && s.cmd.Process != nil {
		_ = s.cmd.Process.Signal(os.Interrupt)
		_ = s.cmd.Wait()
	}
}

func (s *vitrineServer) baseURL() string {
	return fmt.Sprintf("http://%s", s.address)
}

func (s *vitrineServer) waitHealthy(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	url := fmt.Sprintf("%s/api/v1/health", s.baseURL())

	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("vitrine not healthy after %s", timeout)
}

// restartOnSameData stops the server and starts a new one on the same data
// directory. The catalog path points at a file that does not exist, so a
// healthy restart proves the catalog was reloaded from the database rather
// than re-seeded.
func (s *vitrineServer) restartOnSameData(t *testing.T) *vitrineServer {
	t.Helper()

	s.stop()
	time.Sleep(200 * time.Millisecond) // allow port release

	port := freePort(t)
	address := fmt.Sprintf("127.0.0.1:%d", port)
	logFile := filepath.Join(s.dataDir, "vitrine-restart.log")

	cmd := exec.Command(vitrineBin)
	cmd.Env = append(os.Environ(),
		"VITRINE_PORT="+fmt.Sprintf("%d", port),
		"VITRINE_DB_PATH="+filepath.Join(s.dataDir, "vitrine.db"),
		"VITRINE_API_KEY="+s.apiKey,
		"VITRINE_CATALOG_PATH="+filepath.Join(s.dataDir, "no-reseed.json"),
		"VITRINE_CONFIG_PATH="+filepath.Join(s.dataDir, "nonexistent.yaml"),
		"VITRINE_DEV_MODE=true",
	)

	lf, err := os.Create(logFile)
	if err != nil {
		t.Fatalf("create restart log file: %v", err)
	}
	cmd.Stdout = lf
	cmd.Stderr = lf

	if err := cmd.Start(); err != nil {
		lf.Close()
		t.Fatalf("restart vitrine: %v", err)
	}

	newSrv := &vitrineServer{
		cmd:     cmd,
		dataDir: s.dataDir,
		address: address,
		apiKey:  s.apiKey,
		logFile: logFile,
	}

	t.Cleanup(func() {
		newSrv.stop()
		lf.Close()
	})

	if err := newSrv.waitHealthy(10 * time.Second); err != nil {
		t.Fatalf("restarted vitrine not healthy: %v", err)
	}

	return newSrv
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("find free port: %v", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}
