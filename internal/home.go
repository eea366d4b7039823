package hilbertviz

import (
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/chromy/hilbertviz/internal/core"
	"github.com/chromy/hilbertviz/internal/logger"
	"github.com/julienschmidt/httprouter"
)

// homeOrder is the curve drawn on the home page.
const homeOrder = 5

type State struct {
	Templates map[string]*template.Template
}

var (
	mu    sync.RWMutex
	state State
)

type TemplateData struct {
	SentryDSN   string
	Environment string
	Version     string
	MaxOrder    uint16
	Order       uint16
	Width       uint32
	Path        string
}

func newTemplateData(r *http.Request) TemplateData {
	return TemplateData{
		SentryDSN:   os.Getenv("SENTRY_FRONTEND_DSN"),
		Environment: GetEnvironment(),
		Version:     core.GetVersion(),
		MaxOrder:    core.GetMaxOrder(),
		Order:       min(homeOrder, core.GetMaxOrder()),
		Width:       512,
		Path:        r.URL.Path,
	}
}

func execute(w http.ResponseWriter, name string, data TemplateData) {
	mu.RLock()
	t, found := state.Templates[name]
	mu.RUnlock()
	if !found {
		http.Error(w, "missing template "+name, http.StatusInternalServerError)
		return
	}

	err := t.Execute(w, data)
	if err != nil {
		logger.Sugar.Errorf("rendering %s: %v", name, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func Home(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	execute(w, "home.html", newTemplateData(r))
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	execute(w, "404.html", newTemplateData(r))
}

func init() {
	mu.Lock()
	defer mu.Unlock()
	state = State{}
	state.Templates = make(map[string]*template.Template)

	pagePaths, err := fs.Glob(templatesFS, "pages/*")
	if err != nil {
		panic(err)
	}

	for _, pagePath := range pagePaths {
		name := filepath.Base(pagePath)
		state.Templates[name] = template.Must(template.ParseFS(templatesFS, "base.html", pagePath))
	}

	core.RegisterRoute(core.Route{
		Id:      "home.index",
		Method:  http.MethodGet,
		Path:    "/",
		Handler: Home,
	})
}
