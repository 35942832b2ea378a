package ui

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/Homlet/argand/diagram"
	"github.com/Homlet/argand/format"
	"github.com/Homlet/argand/locus"
	"github.com/Homlet/argand/parser"
	"github.com/Homlet/argand/plot"
	"github.com/Homlet/argand/render"

	"github.com/tliron/commonlog"
)

//go:embed static templates
var embeddedFS embed.FS

var log = commonlog.GetLogger("argand.ui")

const (
	defaultWidth  = 800
	defaultHeight = 600
	maxDimension  = 4096
)

// Server serves a single diagram over HTTP.
type Server struct {
	mu       sync.Mutex
	diagram  *diagram.Diagram
	watcher  *Watcher
	staticFS fs.FS

	mux        *http.ServeMux
	templateFS fs.FS
	funcMap    template.FuncMap
}

// NewServer serves d. When d has a Path, edits are saved to it and
// external changes to the file are picked up.
func NewServer(d *diagram.Diagram) (*Server, error) {
	staticFS := overlayFS("ui/static", mustSub(embeddedFS, "static"))
	templateFS := overlayFS("ui/templates", mustSub(embeddedFS, "templates"))

	funcMap := template.FuncMap{
		"describe": func(p *plot.Plot) string {
			if !p.Valid() {
				return ""
			}
			return format.Describe(p.Result.Locus)
		},
		"formatFloat": func(f float64) string {
			return strconv.FormatFloat(f, 'g', 6, 64)
		},
	}

	if _, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "*.html"); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		diagram:    d,
		staticFS:   staticFS,
		mux:        http.NewServeMux(),
		templateFS: templateFS,
		funcMap:    funcMap,
	}

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	s.mux.HandleFunc("GET /diagram.svg", s.handleSVG)
	s.mux.HandleFunc("POST /compile", s.handleCompile)
	s.mux.HandleFunc("POST /plots", s.handleAddPlot)
	s.mux.HandleFunc("POST /plots/{index}/delete", s.handleDeletePlot)
	s.mux.HandleFunc("POST /view", s.handleView)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)

	if d.Path != "" {
		s.watcher = NewWatcher(d.Path, s.reload)
	}

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Start begins watching the diagram file, if any.
func (s *Server) Start() {
	if s.watcher != nil {
		s.watcher.Start()
	}
}

// Stop ends watching the diagram file.
func (s *Server) Stop() {
	if s.watcher != nil {
		s.watcher.Stop()
	}
}

func (s *Server) reload(d *diagram.Diagram) {
	s.mu.Lock()
	defer s.mu.Unlock()
	log.Infof("reloaded %s with %d plot(s)", d.Path, len(d.Plots))
	s.diagram = d
}

// save writes the diagram back to its file. Callers hold s.mu.
func (s *Server) save() error {
	if s.diagram.Path == "" {
		return nil
	}
	if err := s.diagram.Save(); err != nil {
		return err
	}
	if s.watcher != nil {
		s.watcher.Sync()
	}
	log.Debugf("saved %s", s.diagram.Path)
	return nil
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, err := template.New("").Funcs(s.funcMap).ParseFS(s.templateFS, "*.html")
	if err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Errorf("render %s: %s", name, err)
	}
}

type indexData struct {
	Path         string
	Plots        []*plot.Plot
	Zoom         float64
	Translation  locus.Vec
	Preferences  diagram.Preferences
	DefaultColor plot.Color
	SVG          template.HTML
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	var svg bytes.Buffer
	err := render.SVG(&svg, s.diagram, defaultWidth, defaultHeight)
	data := indexData{
		Path:         s.diagram.Path,
		Plots:        append([]*plot.Plot(nil), s.diagram.Plots...),
		Zoom:         s.diagram.Zoom,
		Translation:  s.diagram.Translation,
		Preferences:  s.diagram.Preferences,
		DefaultColor: plot.DefaultColor,
		SVG:          template.HTML(svg.String()),
	}
	s.mu.Unlock()

	if err != nil {
		http.Error(w, "render diagram: "+err.Error(), http.StatusInternalServerError)
		return
	}
	s.render(w, "index.html", data)
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	width, err := dimension(r, "width", defaultWidth)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	height, err := dimension(r, "height", defaultHeight)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	s.mu.Lock()
	err = render.SVG(&buf, s.diagram, width, height)
	s.mu.Unlock()
	if err != nil {
		http.Error(w, "render diagram: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(buf.Bytes())
}

func dimension(r *http.Request, name string, fallback int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > maxDimension {
		return 0, fmt.Errorf("%s must be an integer in [1, %d]", name, maxDimension)
	}
	return n, nil
}

type compileRequest struct {
	Equation string `json:"equation"`
}

type compileError struct {
	Error  string `json:"error"`
	Stage  string `json:"stage,omitempty"`
	Offset *int   `json:"offset,omitempty"`
	Token  string `json:"token,omitempty"`
}

// handleCompile validates a single equation, answering with its locus or
// 422 and the reason it is invalid.
func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	var req compileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	res, err := plot.Compile(req.Equation)
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(compileErrorOf(err))
		return
	}
	json.NewEncoder(w).Encode(format.ResultJSON(res))
}

func compileErrorOf(err error) compileError {
	out := compileError{Error: err.Error()}
	var ce *plot.CompileError
	if errors.As(err, &ce) {
		out.Error = ce.Err.Error()
		out.Stage = string(ce.Stage)
	}
	var se *parser.SyntaxError
	if errors.As(err, &se) {
		offset := se.Offset
		out.Offset = &offset
		out.Token = se.Text
	}
	return out
}

func (s *Server) handleAddPlot(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data: "+err.Error(), http.StatusBadRequest)
		return
	}
	equation := strings.TrimSpace(r.FormValue("equation"))
	if equation == "" {
		http.Error(w, "must provide equation", http.StatusBadRequest)
		return
	}
	if strings.ContainsAny(equation, ";\r\n") {
		http.Error(w, "equation must be a single line without ';'", http.StatusBadRequest)
		return
	}

	color := plot.DefaultColor
	if v := r.FormValue("color"); v != "" {
		c, err := plot.ParseColor(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		color = c
	}
	alpha := plot.DefaultAlpha
	if v := r.FormValue("alpha"); v != "" {
		a, err := strconv.ParseFloat(v, 64)
		if err != nil {
			http.Error(w, "invalid alpha: "+err.Error(), http.StatusBadRequest)
			return
		}
		alpha = a
	}

	s.mu.Lock()
	p := s.diagram.Add(equation)
	p.Color = color
	p.SetAlpha(alpha)
	err := s.save()
	s.mu.Unlock()

	if err != nil {
		http.Error(w, "save diagram: "+err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDeletePlot(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		http.Error(w, "invalid plot index", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	err = s.diagram.Remove(index)
	if err == nil {
		err = s.save()
	}
	s.mu.Unlock()

	switch {
	case errors.Is(err, diagram.ErrNoPlot):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, "save diagram: "+err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleView changes the view. Recognised fields are zoom, a zoom
// factor in pixels per unit; scale, multiplying the current zoom; dx and
// dy, a pan in complex-plane units; and reset.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data: "+err.Error(), http.StatusBadRequest)
		return
	}
	values := make(map[string]float64)
	for _, name := range []string{"zoom", "scale", "dx", "dy"} {
		v := r.FormValue(name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid %s: %s", name, err), http.StatusBadRequest)
			return
		}
		values[name] = f
	}

	s.mu.Lock()
	err := s.updateView(r.FormValue("reset") != "", values)
	if err == nil {
		err = s.save()
	}
	s.mu.Unlock()

	switch {
	case errors.Is(err, diagram.ErrZoomRange), errors.Is(err, diagram.ErrTranslationRange):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	case err != nil:
		http.Error(w, "save diagram: "+err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) updateView(reset bool, values map[string]float64) error {
	d := s.diagram
	if reset {
		d.Zoom = diagram.DefaultZoom
		d.Translation = locus.Vec{}
	}
	if zoom, ok := values["zoom"]; ok {
		if err := d.SetZoom(zoom); err != nil {
			return err
		}
	}
	if scale, ok := values["scale"]; ok {
		if err := d.SetZoom(d.Zoom * scale); err != nil {
			return err
		}
	}
	return d.Translate(locus.Vec{X: values["dx"], Y: values["dy"]})
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

type overlayFSType struct {
	primary   fs.FS
	secondary fs.FS
}

// overlayFS prefers files under primaryPath on disk, so templates can be
// edited without rebuilding.
func overlayFS(primaryPath string, secondary fs.FS) fs.FS {
	return &overlayFSType{
		primary:   os.DirFS(primaryPath),
		secondary: secondary,
	}
}

func (o *overlayFSType) Open(name string) (fs.File, error) {
	f, err := o.primary.Open(name)
	if err == nil {
		return f, nil
	}
	return o.secondary.Open(name)
}

func (o *overlayFSType) ReadDir(name string) ([]fs.DirEntry, error) {
	entries := make(map[string]fs.DirEntry)
	for _, fsys := range []fs.FS{o.secondary, o.primary} {
		if list, err := fs.ReadDir(fsys, name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	result := make([]fs.DirEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, e)
	}
	return result, nil
}
