package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/Axiom-208/Youtube-Clippa/internal/domain/timecode"
	"github.com/Axiom-208/Youtube-Clippa/internal/types"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Runner is the single operation the interface needs from the pipeline.
type Runner interface {
	ProcessVideo(ctx context.Context, url string) ([]types.Chapter, error)
}

type Server struct {
	runner   Runner
	clipsDir string
	tmpl     *template.Template

	// mu serializes pipeline runs: one job in flight at a time, so concurrent
	// form posts cannot interleave writes into the clips directory.
	mu sync.Mutex
}

func NewServer(runner Runner, clipsDir string) (*Server, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Server{runner: runner, clipsDir: clipsDir, tmpl: tmpl}, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/download", s.handleDownload)
	mux.Handle("/chapters/", http.StripPrefix("/chapters/", http.FileServer(http.Dir(s.clipsDir))))
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.render(w, "index.html", nil)
}

type chapterView struct {
	Title string
	Start string
	End   string
	File  string
}

type downloadView struct {
	Error    string
	Chapters []chapterView
	Files    []string
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	var view downloadView

	if r.Method == http.MethodPost {
		raw := strings.TrimSpace(r.FormValue("url"))
		if !IsYouTubeURL(raw) {
			view.Error = "Please enter a valid YouTube URL"
		} else {
			s.mu.Lock()
			chs, err := s.runner.ProcessVideo(r.Context(), raw)
			s.mu.Unlock()
			if err != nil {
				log.Printf("process %s: %v", raw, err)
				view.Error = "Video processing failed; no chapters were produced."
			} else {
				for _, ch := range chs {
					view.Chapters = append(view.Chapters, chapterView{
						Title: ch.Title,
						Start: timecode.Format(ch.Start),
						End:   timecode.Format(ch.End),
						File:  filepath.Base(ch.ClipPath),
					})
				}
			}
		}
	}

	view.Files = s.listClips()
	s.render(w, "download.html", view)
}

func (s *Server) listClips() []string {
	entries, err := os.ReadDir(s.clipsDir)
	if err != nil {
		return nil
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)
	return files
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("render %s: %v", name, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// IsYouTubeURL accepts the usual watch-page and short-link hosts.
func IsYouTubeURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	switch host {
	case "youtube.com", "www.youtube.com", "m.youtube.com", "youtu.be":
		return true
	}
	return false
}
