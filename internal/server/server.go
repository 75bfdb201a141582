package server

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jdelaney/slackline/internal/cpm"
	"github.com/jdelaney/slackline/internal/graph"
	"github.com/jdelaney/slackline/internal/project"
	"github.com/jdelaney/slackline/internal/report"
)

// Server feeds schedule data to a browser chart renderer. It holds one
// immutable project snapshot and recomputes the analysis per request; the
// engine is pure, so concurrent requests need no locking.
type Server struct {
	project *project.Project
	logger  *log.Logger
}

// New creates a Server over a loaded project.
func New(p *project.Project) *Server {
	return &Server{
		project: p,
		logger: log.NewWithOptions(os.Stderr, log.Options{
			Prefix:          "serve",
			ReportTimestamp: true,
		}),
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Get("/api/schedule", s.handleSchedule)
	r.Get("/api/graph", s.handleGraph)
	return r
}

// ListenAndServe runs the server on addr until it fails.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("serving schedule API", "addr", addr,
		"tasks", len(s.project.Tasks), "deps", len(s.project.Dependencies))
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) analyze() (*graph.ProjectGraph, *cpm.Result, error) {
	g := graph.Build(s.project.Tasks, s.project.Dependencies)
	result, err := cpm.Analyze(g)
	if err != nil {
		return nil, nil, err
	}
	return g, result, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	g, result, err := s.analyze()
	if err != nil {
		s.logger.Error("analysis failed", "err", err)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, report.Build(s.project.Name, g, result))
}

// GraphNode is one task in the renderer's graph feed.
type GraphNode struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	EarliestStart int    `json:"earliest_start"`
	Duration      int    `json:"duration_days"`
	TotalSlack    int    `json:"total_slack"`
	IsCritical    bool   `json:"is_critical"`
}

// GraphEdge is one dependency in the renderer's graph feed. Type drives
// arrow routing in the renderer; it never affects the schedule arithmetic.
type GraphEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type"`
}

// Graph is the normalised shape the chart renderer consumes.
type Graph struct {
	Nodes        []GraphNode `json:"nodes"`
	Edges        []GraphEdge `json:"edges"`
	CriticalPath []string    `json:"critical_path"`
	ProjectName  string      `json:"project_name"`
	TotalTasks   int         `json:"total_tasks"`
	DurationDays int         `json:"duration_days"`
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	g, result, err := s.analyze()
	if err != nil {
		s.logger.Error("analysis failed", "err", err)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}

	out := &Graph{
		CriticalPath: result.CriticalPath,
		ProjectName:  s.project.Name,
		TotalTasks:   g.TaskCount(),
		DurationDays: result.ProjectEnd,
	}
	sched := report.Build(s.project.Name, g, result)
	for _, row := range sched.Rows {
		out.Nodes = append(out.Nodes, GraphNode{
			ID:            row.TaskID,
			Name:          row.Name,
			StartDate:     row.StartDate,
			EndDate:       row.EndDate,
			EarliestStart: row.EarliestStart,
			Duration:      row.Duration,
			TotalSlack:    row.TotalSlack,
			IsCritical:    row.IsCritical,
		})
	}
	// Edges come from the raw dependency list so the renderer sees the
	// declared relation kinds; edges the graph builder dropped are
	// skipped here too.
	for _, d := range s.project.Dependencies {
		if _, ok := g.Nodes[d.PredecessorID]; !ok {
			continue
		}
		if _, ok := g.Nodes[d.SuccessorID]; !ok {
			continue
		}
		out.Edges = append(out.Edges, GraphEdge{
			From: d.PredecessorID,
			To:   d.SuccessorID,
			Type: string(d.Type),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
