package handler

import (
	"net/http"

	"portfolio_pro/internal/api/middleware"
	"portfolio_pro/internal/app/service"
	"portfolio_pro/internal/common"

	"github.com/go-chi/chi/v5"
)

const maxProjectFormSize = 10 << 20 // 10 MiB

type ProjectHandler struct {
	projectService *service.ProjectService
}

func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (h *ProjectHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.createProject)
	r.Get("/", h.listActive)
	r.Get("/trash", h.listTrashed)
	r.Put("/{id}", h.updateProject)
	r.Delete("/{id}", h.softDelete)
	r.Post("/{id}/restore", h.restore)
	r.Delete("/{id}/permanent", h.permanentDelete)
}

func (h *ProjectHandler) createProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := r.ParseMultipartForm(maxProjectFormSize); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	req := service.CreateProjectRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		ProjectURL:  r.FormValue("project_url"),
		LiveDemoURL: r.FormValue("live_demo_url"),
	}

	image, cleanup := optionalFormFile(r, "image")
	defer cleanup()

	project, err := h.projectService.Create(r.Context(), userID, req, image)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, project)
}

func (h *ProjectHandler) listActive(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	projects, err := h.projectService.ListActive(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) listTrashed(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	projects, err := h.projectService.ListTrashed(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) updateProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	projectID := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(maxProjectFormSize); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	req := service.UpdateProjectRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		ProjectURL:  r.FormValue("project_url"),
		LiveDemoURL: r.FormValue("live_demo_url"),
	}

	image, cleanup := optionalFormFile(r, "image")
	defer cleanup()

	project, err := h.projectService.Update(r.Context(), projectID, userID, req, image)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) softDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	projectID := chi.URLParam(r, "id")

	if err := h.projectService.SoftDelete(r.Context(), projectID, userID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "Project moved to trash"})
}

func (h *ProjectHandler) restore(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	projectID := chi.URLParam(r, "id")

	if err := h.projectService.Restore(r.Context(), projectID, userID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "Project restored"})
}

func (h *ProjectHandler) permanentDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	projectID := chi.URLParam(r, "id")

	if err := h.projectService.PermanentDelete(r.Context(), projectID, userID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "Project permanently deleted"})
}

// optionalFormFile returns the upload under the given field, or nil when the
// field is absent. The cleanup func is always safe to defer.
func optionalFormFile(r *http.Request, field string) (*service.FileUpload, func()) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, func() {}
	}
	return &service.FileUpload{
		Reader:      file,
		ContentType: header.Header.Get("Content-Type"),
		Filename:    header.Filename,
		Size:        header.Size,
	}, func() { file.Close() }
}
