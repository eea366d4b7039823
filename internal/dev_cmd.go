package hilbertviz

import (
	"context"
	"errors"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/chromy/hilbertviz/internal/logger"
	"go.uber.org/zap"
)

type DevServer struct {
	port            uint
	servePort       uint
	serveUrl        string
	executable      string
	enableMemcached bool
	latestError     []byte
	cmd             *exec.Cmd
	memcachedCmd    *exec.Cmd
	mu              sync.Mutex
	lastModTime     map[string]time.Time
	log             *zap.SugaredLogger
}

const memcachedAddr = "localhost:8082"

var watchedExtensions = map[string]bool{
	".go":   true,
	".html": true,
	".css":  true,
}

func DoDev(ctx context.Context, port uint, enableMemcached bool) error {
	servePort := port + 1
	serveUrl := "http://localhost:" + strconv.Itoa(int(servePort))

	executable, err := os.Executable()
	if err != nil {
		return err
	}

	dev := &DevServer{
		port:            port,
		servePort:       servePort,
		serveUrl:        serveUrl,
		executable:      executable,
		enableMemcached: enableMemcached,
		lastModTime:     make(map[string]time.Time),
		log:             logger.WithServiceName("dev"),
	}
	defer dev.stop()

	if dev.enableMemcached {
		dev.startMemcached()
	}
	dev.checkForChanges()
	dev.rebuildAndStartServe()

	targetUrl, err := url.Parse(serveUrl)
	if err != nil {
		return err
	}
	proxy := httputil.NewSingleHostReverseProxy(targetUrl)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if dev.checkForChanges() {
			dev.rebuildAndStartServe()
		}
		if latest := dev.buildError(); latest == nil {
			proxy.ServeHTTP(w, r)
		} else {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write(latest)
		}
	})

	server := &http.Server{
		Addr:              ":" + strconv.Itoa(int(port)),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		server.Close()
	}()

	dev.log.Infof("ready dev http://localhost:%d proxying to %s", port, serveUrl)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (dev *DevServer) buildError() []byte {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.latestError
}

func (dev *DevServer) rebuildAndStartServe() {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if dev.rebuildWithLock() {
		dev.startServeWithLock()
	}
}

func (dev *DevServer) stopServeWithLock() {
	if dev.cmd != nil {
		dev.cmd.Process.Kill()
		dev.cmd.Wait()
		dev.cmd = nil
	}
}

func (dev *DevServer) startServeWithLock() {
	dev.stopServeWithLock()

	args := []string{"serve", "-port", strconv.Itoa(int(dev.servePort))}
	if dev.enableMemcached {
		args = append(args, "-memcached", memcachedAddr)
	}
	dev.cmd = exec.Command(dev.executable, args...)
	dev.cmd.Stdout = os.Stdout
	dev.cmd.Stderr = os.Stderr

	err := dev.cmd.Start()
	if err != nil {
		dev.log.Errorf("failed to start serve subprocess: %v", err)
		dev.cmd = nil
		return
	}

	dev.waitForServer()
}

func (dev *DevServer) startMemcached() {
	dev.mu.Lock()
	defer dev.mu.Unlock()

	if dev.memcachedCmd != nil {
		dev.memcachedCmd.Process.Kill()
		dev.memcachedCmd.Wait()
	}

	dev.memcachedCmd = exec.Command("memcached", "-p", "8082", "-v")
	dev.memcachedCmd.Stdout = os.Stdout
	dev.memcachedCmd.Stderr = os.Stderr

	err := dev.memcachedCmd.Start()
	if err != nil {
		dev.log.Errorf("failed to start memcached: %v", err)
		dev.memcachedCmd = nil
		return
	}

	dev.log.Infof("started memcached on %s", memcachedAddr)
}

func (dev *DevServer) stop() {
	dev.mu.Lock()
	defer dev.mu.Unlock()

	dev.stopServeWithLock()
	if dev.memcachedCmd != nil {
		dev.memcachedCmd.Process.Kill()
		dev.memcachedCmd.Wait()
		dev.memcachedCmd = nil
	}
}

// rebuildWithLock rebuilds the binary in place. The running serve process
// is kept when the build fails.
func (dev *DevServer) rebuildWithLock() bool {
	start := time.Now()

	cmd := exec.Command("go", "build", "-o", dev.executable, "./cmd/hilbertviz")
	output, err := cmd.CombinedOutput()
	if err != nil {
		dev.log.Errorf("build failed:\n%s", output)
		dev.latestError = output
	} else {
		dev.latestError = nil
	}

	dev.log.Infof("rebuilt in %6dms", time.Since(start).Milliseconds())
	return err == nil
}

func (dev *DevServer) waitForServer() {
	for i := 0; i < 50; i++ {
		resp, err := http.Get(dev.serveUrl + "/api/varz")
		if err == nil {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
	dev.log.Warn("server may not be ready")
}

func (dev *DevServer) checkForChanges() bool {
	dev.mu.Lock()
	defer dev.mu.Unlock()

	start := time.Now()
	changed := false

	filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}

		base := filepath.Base(path)
		if path != "." && (base[0] == '.' || base[0] == '_') {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !watchedExtensions[filepath.Ext(path)] {
			return nil
		}

		modTime := info.ModTime()
		lastMod, exists := dev.lastModTime[path]
		if !exists || modTime.After(lastMod) {
			dev.lastModTime[path] = modTime
			if exists {
				changed = true
			}
		}

		return nil
	})

	dev.log.Debugf("checked in %6dms", time.Since(start).Milliseconds())
	return changed
}
