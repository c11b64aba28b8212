package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Themis/internal/hermes"
	"github.com/MikeSquared-Agency/Themis/internal/store"
)

type ProjectsHandler struct {
	store  store.Store
	hermes hermes.Client
}

func NewProjectsHandler(s store.Store, h hermes.Client) *ProjectsHandler {
	return &ProjectsHandler{store: s, hermes: h}
}

type CreateProjectRequest struct {
	Title        string             `json:"title"`
	Organization store.Organization `json:"organization,omitempty"`
}

func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title required"})
		return
	}

	project := &store.Project{
		Title:        req.Title,
		Organization: req.Organization,
	}
	if err := h.store.CreateProject(r.Context(), project); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.hermes != nil {
		_ = h.hermes.Publish(hermes.SubjectProjectCreated(project.ID.String()), hermes.ProjectEvent{
			ProjectID: project.ID.String(),
			Title:     project.Title,
		})
	}

	writeJSON(w, http.StatusCreated, project)
}

func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.ProjectFilter{
		Industry: r.URL.Query().Get("industry"),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	projects, err := h.store.ListProjects(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if projects == nil {
		projects = []*store.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid project id"})
		return
	}

	project, err := h.store.GetProject(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if project == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "project not found"})
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// Update replaces the project's decision inputs wholesale. The wizard shell
// owns sequencing; the server stores whatever snapshot it is handed.
func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid project id"})
		return
	}

	project, err := h.store.GetProject(r.Context(), id)
	if err != nil || project == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "project not found"})
		return
	}

	var patch store.Project
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if patch.Title != "" {
		project.Title = patch.Title
	}
	if patch.Organization != (store.Organization{}) {
		project.Organization = patch.Organization
	}
	if patch.Criteria != nil {
		project.Criteria = patch.Criteria
	}
	if patch.Comparisons != nil {
		project.Comparisons = patch.Comparisons
	}
	if patch.Directions != nil {
		project.Directions = patch.Directions
	}
	if patch.Alternatives != nil {
		project.Alternatives = patch.Alternatives
	}
	if patch.Assets != nil {
		project.Assets = patch.Assets
	}

	if err := h.store.UpdateProject(r.Context(), project); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.hermes != nil {
		_ = h.hermes.Publish(hermes.SubjectProjectUpdated(project.ID.String()), hermes.ProjectEvent{
			ProjectID: project.ID.String(),
			Title:     project.Title,
		})
	}

	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid project id"})
		return
	}

	if err := h.store.DeleteProject(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.hermes != nil {
		_ = h.hermes.Publish(hermes.SubjectProjectDeleted(id.String()), hermes.ProjectEvent{
			ProjectID: id.String(),
		})
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
