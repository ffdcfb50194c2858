// Package web serves a localhost-only single-user UI; it intentionally has no
// auth/CSRF protection in this mode.
package web

import (
	"crypto/rand"
	"embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"jobcost/config"
	"jobcost/engine"
	"jobcost/overtime"
	"jobcost/report"
	"jobcost/roster"
)

//go:embed templates/*.html
var templateFS embed.FS

// uploadSet is one batch of uploaded source files, kept on disk until the
// caller finishes the run.
type uploadSet struct {
	week1   string
	week2   string
	paychex string
}

type Server struct {
	store *roster.SQLiteStore
	cfg   config.Config

	mux     *http.ServeMux
	workDir string

	mu      sync.Mutex
	uploads map[string]uploadSet
}

func NewServer(store *roster.SQLiteStore, cfg config.Config, workDir string) http.Handler {
	server := &Server{
		store:   store,
		cfg:     cfg,
		workDir: workDir,
		uploads: make(map[string]uploadSet),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", server.handleIndex)
	mux.HandleFunc("POST /upload", server.handleUpload)
	mux.HandleFunc("POST /process", server.handleProcess)
	mux.HandleFunc("GET /download/{file}", server.handleDownload)
	mux.HandleFunc("GET /roster", server.handleRosterList)
	mux.HandleFunc("POST /roster", server.handleRosterUpsert)
	server.mux = mux

	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

type indexView struct {
	Title     string
	Employees []roster.Employee
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	employees, err := s.store.List()
	if err != nil {
		httpError(w, http.StatusInternalServerError, err)
		return
	}

	tmpl, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		httpError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, indexView{Title: "Job Cost Allocation", Employees: employees}); err != nil {
		httpError(w, http.StatusInternalServerError, err)
	}
}

type uploadResponse struct {
	Token            string               `json:"token"`
	HasOvertime      bool                 `json:"has_overtime"`
	OTSituations     []overtime.Situation `json:"ot_situations"`
	UnknownEmployees []string             `json:"unknown_employees,omitempty"`
	EntryCount       int                  `json:"entry_count"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		httpError(w, http.StatusBadRequest, fmt.Errorf("parse upload: %w", err))
		return
	}

	token, err := newToken()
	if err != nil {
		httpError(w, http.StatusInternalServerError, err)
		return
	}

	week1, err := s.saveUpload(r, "week1File", token)
	if err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}
	week2, err := s.saveUpload(r, "week2File", token)
	if err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}
	paychex, err := s.saveOptionalUpload(r, "paychexFile", token)
	if err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	s.uploads[token] = uploadSet{week1: week1, week2: week2, paychex: paychex}
	s.mu.Unlock()

	directory, err := s.store.Snapshot()
	if err != nil {
		httpError(w, http.StatusInternalServerError, err)
		return
	}

	detection, err := engine.Detect(engine.Options{
		Week1Path:         week1,
		Week2Path:         week2,
		Directory:         directory,
		OvertimeThreshold: s.cfg.Payroll.OvertimeThreshold,
	})
	if errors.Is(err, engine.ErrUnknownEmployees) {
		writeJSON(w, http.StatusUnprocessableEntity, uploadResponse{
			Token:            token,
			UnknownEmployees: detection.UnknownEmployees,
		})
		return
	}
	if err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Token:        token,
		HasOvertime:  detection.HasOvertime(),
		OTSituations: detection.Situations,
		EntryCount:   detection.EntryCount,
	})
}

type processRequest struct {
	Token       string              `json:"token"`
	Allocations overtime.Allocation `json:"allocations"`
	Format      string              `json:"format"`
}

type processResponse struct {
	Download          string   `json:"download"`
	Employees         int      `json:"employees"`
	ActualHours       float64  `json:"actual_hours"`
	PayrolledHours    float64  `json:"payrolled_hours"`
	TotalCost         float64  `json:"total_cost"`
	Reconciled        int      `json:"reconciled"`
	Adjusted          int      `json:"adjusted"`
	Check             int      `json:"check"`
	OverallDifference *float64 `json:"overall_difference,omitempty"`
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	var request processRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpError(w, http.StatusBadRequest, fmt.Errorf("parse request: %w", err))
		return
	}

	s.mu.Lock()
	uploads, ok := s.uploads[request.Token]
	s.mu.Unlock()
	if !ok {
		httpError(w, http.StatusNotFound, fmt.Errorf("unknown upload token"))
		return
	}

	directory, err := s.store.Snapshot()
	if err != nil {
		httpError(w, http.StatusInternalServerError, err)
		return
	}

	outcome, err := engine.Process(engine.Options{
		Week1Path:         uploads.week1,
		Week2Path:         uploads.week2,
		PaychexPath:       uploads.paychex,
		Allocations:       request.Allocations,
		Directory:         directory,
		OvertimeThreshold: s.cfg.Payroll.OvertimeThreshold,
		StandardHours:     s.cfg.Payroll.StandardBiweeklyHours,
		Tolerance:         s.cfg.Payroll.ReconcileTolerance,
	})
	if errors.Is(err, engine.ErrUnknownEmployees) {
		writeJSON(w, http.StatusUnprocessableEntity, uploadResponse{
			Token:            request.Token,
			UnknownEmployees: outcome.UnknownEmployees,
		})
		return
	}
	if err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}

	format := request.Format
	if format == "" {
		format = s.cfg.Output.Format
	}
	writer, err := report.WriterForFormat(format)
	if err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}

	extension := "xlsx"
	if strings.EqualFold(format, "csv") {
		extension = "csv"
	}
	name := fmt.Sprintf("job_cost_allocation_%s.%s", request.Token, extension)
	if err := writer.Write(filepath.Join(s.workDir, name), outcome.Report); err != nil {
		httpError(w, http.StatusInternalServerError, err)
		return
	}

	response := processResponse{
		Download:       "/download/" + name,
		Employees:      len(outcome.Report.EmployeeTotals),
		ActualHours:    outcome.Report.Grand.ActualHours,
		PayrolledHours: outcome.Report.Grand.PayrolledHours,
		TotalCost:      outcome.Report.Grand.TotalCost,
	}
	if outcome.Reconciliation != nil {
		response.Reconciled, response.Adjusted, response.Check = outcome.Reconciliation.Counts()
		difference := outcome.Reconciliation.OverallDifference()
		response.OverallDifference = &difference
	}

	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("file")
	if name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		httpError(w, http.StatusBadRequest, fmt.Errorf("invalid file name"))
		return
	}

	path := filepath.Join(s.workDir, name)
	if _, err := os.Stat(path); err != nil {
		httpError(w, http.StatusNotFound, fmt.Errorf("no such report"))
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeFile(w, r, path)
}

func (s *Server) handleRosterList(w http.ResponseWriter, r *http.Request) {
	employees, err := s.store.List()
	if err != nil {
		httpError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, employees)
}

func (s *Server) handleRosterUpsert(w http.ResponseWriter, r *http.Request) {
	var employee roster.Employee
	if err := json.NewDecoder(r.Body).Decode(&employee); err != nil {
		httpError(w, http.StatusBadRequest, fmt.Errorf("parse employee: %w", err))
		return
	}

	if err := s.store.Upsert(employee); err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, employee)
}

func (s *Server) saveUpload(r *http.Request, field, token string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", fmt.Errorf("missing upload field %s", field)
	}
	defer file.Close()

	return s.persistUpload(file, header, token)
}

func (s *Server) saveOptionalUpload(r *http.Request, field, token string) (string, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read upload field %s: %w", field, err)
	}
	defer file.Close()

	return s.persistUpload(file, header, token)
}

func (s *Server) persistUpload(file multipart.File, header *multipart.FileHeader, token string) (string, error) {
	name := filepath.Base(header.Filename)
	if name == "" || name == "." {
		return "", fmt.Errorf("upload has no file name")
	}

	path := filepath.Join(s.workDir, token+"_"+name)
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	return path, nil
}

func newToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func httpError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
