package hilbertviz

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/chromy/hilbertviz/internal/cache"
	"github.com/chromy/hilbertviz/internal/core"
	"github.com/chromy/hilbertviz/internal/logger"
	sentryhttp "github.com/getsentry/sentry-go/http"
)

type ServeOptions struct {
	Port          uint
	MemcachedAddr string
	CacheItems    int
	MaxOrder      uint16
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func withRequestLogging(next http.Handler) http.Handler {
	log := logger.WithServiceName("serve")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Infow("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// NewHandler serves every registered route, the embedded static files and
// the 404 page.
func NewHandler() http.Handler {
	router := core.NewRouter()
	router.ServeFiles("/static/*filepath", http.FS(staticFS))
	router.NotFound = http.HandlerFunc(NotFound)

	sentryHandler := sentryhttp.New(sentryhttp.Options{Repanic: true})
	return withRequestLogging(sentryHandler.Handle(router))
}

func configureCache(addr string, items int) {
	log := logger.WithServiceName("serve")
	if addr == "" {
		log.Infof("using in-memory cache of %d items", items)
		core.InitCache(cache.NewBoundedMemoryCache(items))
		return
	}

	c := cache.NewMemcachedCache(addr)
	if err := c.Ping(); err != nil {
		log.Warnf("memcached at %s not reachable yet: %v", addr, err)
	} else {
		log.Infof("using memcached at %s", addr)
	}
	core.InitCache(c)
}

func DoServe(ctx context.Context, opts ServeOptions) error {
	log := logger.WithServiceName("serve")
	configureCache(opts.MemcachedAddr, opts.CacheItems)
	core.SetMaxOrder(opts.MaxOrder)

	server := &http.Server{
		Addr:              ":" + strconv.Itoa(int(opts.Port)),
		Handler:           NewHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		errs <- server.ListenAndServe()
	}()

	log.Infof("ready serve http://localhost:%d max order %d", opts.Port, core.GetMaxOrder())

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
