package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aretw0/memedir/pkg/core"
	"github.com/aretw0/memedir/pkg/imageurl"
)

// item is a record prepared for rendering.
type item struct {
	core.Record
	Src      string
	Fallback string
}

type formView struct {
	ID       string
	Name     string
	ImageURL string
	Likes    int
	Preview  string
	Fallback string
	Errors   map[string]string
}

type page struct {
	Title  string
	Active string
	Error  string
	Items  []item
	Form   formView
	From   string

	HideForm bool
}

// imageSrc resolves the src for a record's image.
func (s *Server) imageSrc(raw string) string {
	res := imageurl.Classify(raw)
	if !res.Valid {
		s.logger.Debug("Invalid URL, using placeholder", "url", raw)
	}
	return res.URL
}

func (s *Server) items(records []core.Record, fallback string) []item {
	out := make([]item, 0, len(records))
	for _, r := range records {
		out = append(out, item{Record: r, Src: s.imageSrc(r.ImageURL), Fallback: fallback})
	}
	return out
}

func (s *Server) render(w http.ResponseWriter, status int, name string, p page) {
	var buf bytes.Buffer
	if err := s.pages[name].ExecuteTemplate(&buf, "layout", p); err != nil {
		s.logger.Error("failed to render view", "view", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// returnTo only allows redirects to the two collection views.
func returnTo(from, fallback string) string {
	switch from {
	case "/", "/list":
		return from
	}
	return fallback
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	s.renderCollection(w, r, "table", "Table", imageurl.FallbackThumb)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.renderCollection(w, r, "list", "List", imageurl.Placeholder)
}

func (s *Server) renderCollection(w http.ResponseWriter, r *http.Request, view, title, fallback string) {
	p := page{Title: title, Active: view}

	records, err := s.svc.ListRecords(r.Context())
	if err != nil {
		s.logger.Error("error fetching records", "error", err)
		p.Error = "Could not load memes: " + err.Error()
		s.render(w, http.StatusBadGateway, view, p)
		return
	}

	p.Items = s.items(records, fallback)
	s.render(w, http.StatusOK, view, p)
}

func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	from := returnTo(r.URL.Query().Get("from"), "/list")
	s.render(w, http.StatusOK, "form", page{
		Title:  "New meme",
		Active: activeFor(from),
		From:   from,
		Form:   formView{Fallback: imageurl.Placeholder},
	})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	from := returnTo(r.PostForm.Get("from"), "/list")
	f := core.Form{Name: r.PostForm.Get("name"), ImageURL: r.PostForm.Get("imgUrl")}

	if _, err := s.svc.CreateRecord(r.Context(), f); err != nil {
		s.renderFormError(w, err, "New meme", from, formView{Name: f.Name, ImageURL: f.ImageURL})
		return
	}
	http.Redirect(w, r, from, http.StatusSeeOther)
}

func (s *Server) handleEditForm(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	from := returnTo(r.URL.Query().Get("from"), "/")

	rec, err := s.svc.GetRecord(r.Context(), id)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, core.ErrNotFound) {
			status = http.StatusNotFound
		}
		s.logger.Error("error fetching record", "id", id, "error", err)
		s.render(w, status, "form", page{
			Title:  "Edit meme",
			Active: activeFor(from),
			From:   from,
			Error:  "Could not load meme: " + err.Error(),

			HideForm: true,
		})
		return
	}

	s.render(w, http.StatusOK, "form", page{
		Title:  "Edit meme",
		Active: activeFor(from),
		From:   from,
		Form: formView{
			ID:       rec.ID,
			Name:     rec.Name,
			ImageURL: rec.ImageURL,
			Likes:    rec.Likes,
			Preview:  s.imageSrc(rec.ImageURL),
			Fallback: imageurl.Placeholder,
		},
	})
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	from := returnTo(r.PostForm.Get("from"), "/")
	f := core.Form{Name: r.PostForm.Get("name"), ImageURL: r.PostForm.Get("imgUrl")}

	if _, err := s.svc.EditRecord(r.Context(), id, f); err != nil {
		s.logger.Error("error updating record", "id", id, "error", err)
		s.renderFormError(w, err, "Edit meme", from, formView{ID: id, Name: f.Name, ImageURL: f.ImageURL})
		return
	}
	http.Redirect(w, r, from, http.StatusSeeOther)
}

func (s *Server) renderFormError(w http.ResponseWriter, err error, title, from string, fv formView) {
	fv.Fallback = imageurl.Placeholder
	p := page{Title: title, Active: activeFor(from), From: from, Form: fv}

	var verr *core.ValidationError
	status := http.StatusBadGateway
	switch {
	case errors.As(err, &verr):
		status = http.StatusUnprocessableEntity
		fv.Errors = verr.Details
		p.Form = fv
		p.Error = "Please fix the highlighted fields."
	case errors.Is(err, core.ErrNotFound):
		status = http.StatusNotFound
		p.Error = err.Error()
	default:
		p.Error = "Could not save meme: " + err.Error()
	}
	s.render(w, status, "form", p)
}

func activeFor(from string) string {
	if from == "/" {
		return "table"
	}
	return "list"
}

// apiRecord is a record plus its resolved image source.
type apiRecord struct {
	core.Record
	ResolvedURL string `json:"resolvedUrl"`
}

func (s *Server) handleAPIList(w http.ResponseWriter, r *http.Request) {
	records, err := s.svc.ListRecords(r.Context())
	if err != nil {
		s.logger.Error("error fetching records", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}

	out := make([]apiRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, apiRecord{Record: rec, ResolvedURL: s.imageSrc(rec.ImageURL)})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": s.svc.State(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
