package handler

import (
	"encoding/json"
	"net/http"

	"portfolio_pro/internal/api/middleware"
	"portfolio_pro/internal/app/service"
	"portfolio_pro/internal/common"

	"github.com/go-chi/chi/v5"
)

const maxResumeSize = 10 << 20 // 10 MiB

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/", h.listUserCards)
}

func (h *UserHandler) RegisterAuthedRoutes(r chi.Router) {
	r.Get("/{id}", h.getUser)
}

func (h *UserHandler) RegisterOwnerRoutes(r chi.Router) {
	r.Put("/me", h.updateProfile)
	r.Post("/me/resume", h.uploadResume)
	r.Delete("/{id}", h.deleteUser)
}

func (h *UserHandler) listUserCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.userService.ListUserCards(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, cards)
}

func (h *UserHandler) getUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req service.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) uploadResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := r.ParseMultipartForm(maxResumeSize); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Resume file is required")
		return
	}
	defer file.Close()

	url, err := h.userService.UploadResume(r.Context(), userID, service.FileUpload{
		Reader:      file,
		ContentType: header.Header.Get("Content-Type"),
		Filename:    header.Filename,
		Size:        header.Size,
	})
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"resume_url": url})
}

func (h *UserHandler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.userService.DeleteUser(r.Context(), id); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "User deleted successfully"})
}
