// Package viewer serves the structure upload API and the embedded 3D
// viewer page.
package viewer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/structviz/cifview/internal/analysis"
	"github.com/structviz/cifview/internal/config"
	"github.com/structviz/cifview/internal/gallery"
	"github.com/structviz/cifview/internal/rcsb"
	"github.com/structviz/cifview/internal/structure"
)

// Viewer wires the store, event hub, examples gallery and RCSB client
// behind the HTTP API.
type Viewer struct {
	store     *Store
	hub       *Hub
	gallery   *gallery.Gallery
	rcsb      *rcsb.Client
	opts      config.ViewerOptions
	maxUpload int64
	helpHTML  []byte
}

// New creates a Viewer. The help page is rendered once at startup.
func New(store *Store, g *gallery.Gallery, client *rcsb.Client, cfg *config.Config) (*Viewer, error) {
	help, err := renderMarkdown(helpMD)
	if err != nil {
		return nil, err
	}
	return &Viewer{
		store:     store,
		hub:       NewHub(),
		gallery:   g,
		rcsb:      client,
		opts:      cfg.Viewer,
		maxUpload: int64(cfg.MaxUploadMB) << 20,
		helpHTML:  helpPage(help),
	}, nil
}

// Hub returns the websocket event hub.
func (v *Viewer) Hub() *Hub { return v.hub }

// RegisterRoutes mounts all viewer routes onto the given router.
func (v *Viewer) RegisterRoutes(r chi.Router) {
	r.Get("/", v.serveIndex)
	r.Get("/help", v.serveHelp)
	r.Get("/ws/events", v.hub.HandleWS)

	r.Route("/api/structures", func(r chi.Router) {
		r.Get("/", v.handleList)
		r.Post("/", v.handleUpload)
		r.Get("/{id}", v.handleGet)
		r.Delete("/{id}", v.handleDelete)
		r.Get("/{id}/summary", v.handleSummary)
		r.Get("/{id}/metadata", v.handleMetadata)
		r.Get("/{id}/raw", v.handleRaw)
		r.Get("/{id}/download", v.handleDownload)
		r.Get("/{id}/pdb", v.handlePDB)
		r.Get("/{id}/chart", v.handleChart)
	})

	r.Get("/api/options", v.handleOptions)
	r.Get("/api/examples", v.handleListExamples)
	r.Post("/api/examples/*", v.handleImportExample)
	r.Post("/api/fetch/{id}", v.handleFetch)
}

func (v *Viewer) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, v.maxUpload)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading upload: "+err.Error())
		return
	}

	rec, status, err := v.ingest(r, header.Filename, data)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// ingest parses raw bytes, persists them and broadcasts the created
// event. It is shared by uploads, example imports and RCSB fetches.
func (v *Viewer) ingest(r *http.Request, name string, data []byte) (Record, int, error) {
	s, format, err := structure.Parse(name, data)
	if err != nil {
		return Record{}, http.StatusUnprocessableEntity, err
	}
	if s.AtomCount() == 0 {
		return Record{}, http.StatusUnprocessableEntity, fmt.Errorf("%s contains no atom records", name)
	}

	sum := s.Summarize()
	rec := Record{
		Name:      filepath.Base(name),
		Format:    format,
		SizeBytes: int64(len(data)),
		Title:     s.Header.Title,
		Models:    sum.Models,
		Chains:    sum.Chains,
		Residues:  sum.Residues,
		Atoms:     sum.Atoms,
		HetAtoms:  sum.HetAtoms,
	}

	created, err := v.store.Create(r.Context(), rec, data)
	if err != nil {
		return Record{}, http.StatusInternalServerError, err
	}

	v.hub.Broadcast(Event{Type: "created", Structure: created})
	return created, http.StatusCreated, nil
}

func (v *Viewer) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := v.store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if records == nil {
		records = []Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (v *Viewer) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, ok := v.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (v *Viewer) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := v.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if err := v.store.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	v.hub.Broadcast(Event{Type: "deleted", Structure: *rec})
	w.WriteHeader(http.StatusNoContent)
}

func (v *Viewer) handleSummary(w http.ResponseWriter, r *http.Request) {
	s, _, ok := v.parse(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Summarize())
}

func (v *Viewer) handleMetadata(w http.ResponseWriter, r *http.Request) {
	s, _, ok := v.parse(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Header)
}

func (v *Viewer) handleRaw(w http.ResponseWriter, r *http.Request) {
	rec, ok := v.lookup(w, r)
	if !ok {
		return
	}
	data, err := v.store.ReadRaw(rec)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", contentType(rec.Format))
	w.Write(data)
}

func (v *Viewer) handleDownload(w http.ResponseWriter, r *http.Request) {
	rec, ok := v.lookup(w, r)
	if !ok {
		return
	}
	data, err := v.store.ReadRaw(rec)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", contentType(rec.Format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rec.Name))
	w.Write(data)
}

func (v *Viewer) handlePDB(w http.ResponseWriter, r *http.Request) {
	s, rec, ok := v.parse(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := structure.WritePDB(&buf, s); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	name := strings.TrimSuffix(rec.Name, filepath.Ext(rec.Name)) + ".pdb"
	w.Header().Set("Content-Type", contentType(structure.FormatPDB))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Write(buf.Bytes())
}

func (v *Viewer) handleChart(w http.ResponseWriter, r *http.Request) {
	s, rec, ok := v.parse(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := analysis.RenderChainChart(w, rec.Name, s.Summarize()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// optionsResponse carries the configured viewer defaults and the legal
// values for each selector.
type optionsResponse struct {
	Defaults config.ViewerOptions `json:"defaults"`
	Styles   []config.Style       `json:"styles"`
	Colors   []config.ColorScheme `json:"colors"`
}

func (v *Viewer) handleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, optionsResponse{
		Defaults: v.opts,
		Styles:   config.Styles,
		Colors:   config.ColorSchemes,
	})
}

func (v *Viewer) handleListExamples(w http.ResponseWriter, r *http.Request) {
	examples, err := v.gallery.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, examples)
}

func (v *Viewer) handleImportExample(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	data, err := v.gallery.Open(name)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	rec, status, err := v.ingest(r, name, data)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (v *Viewer) handleFetch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := rcsb.ValidateID(id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := v.rcsb.Fetch(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	rec, status, err := v.ingest(r, strings.ToUpper(id)+".cif", data)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// lookup resolves the {id} URL parameter to a stored record.
func (v *Viewer) lookup(w http.ResponseWriter, r *http.Request) (*Record, bool) {
	rec, err := v.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "not found")
		return nil, false
	}
	return rec, true
}

// parse resolves the record and re-parses its raw bytes. Derived views
// (summary, metadata, conversion, chart) always come from a fresh parse
// of the stored original, never from mutated state.
func (v *Viewer) parse(w http.ResponseWriter, r *http.Request) (*structure.Structure, *Record, bool) {
	rec, ok := v.lookup(w, r)
	if !ok {
		return nil, nil, false
	}
	data, err := v.store.ReadRaw(rec)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, nil, false
	}
	s, _, err := structure.Parse(rec.Name, data)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, nil, false
	}
	return s, rec, true
}

func contentType(format structure.Format) string {
	switch format {
	case structure.FormatCIF:
		return "chemical/x-cif"
	case structure.FormatPDB:
		return "chemical/x-pdb"
	}
	return "application/octet-stream"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
