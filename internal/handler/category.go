package handler

import (
	"net/http"

	"github.com/camrado/pritok/internal/ctxkeys"
	"github.com/camrado/pritok/internal/respond"
	"github.com/camrado/pritok/internal/service"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	params, err := parseQueryParams(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	categories, err := h.categoryService.List(user.ID, params)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) PageCount(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	limit, err := parsePageLimit(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	pages, err := h.categoryService.PageCount(user.ID, r.URL.Query().Get("search"), limit)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, pageCountResponse{Pages: pages})
}

func (h *CategoryHandler) ByID(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	category, err := h.categoryService.ByID(user.ID, r.PathValue("id"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	err := decodeJSON(r, &body)
	if err != nil {
		respond.Error(w, err)
		return
	}

	category, err := h.categoryService.Create(user.ID, body.Name, body.Description)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var patch service.CategoryPatch
	err := decodeJSON(r, &patch)
	if err != nil {
		respond.Error(w, err)
		return
	}

	category, err := h.categoryService.Update(user.ID, r.PathValue("id"), patch)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.categoryService.Delete(user.ID, r.PathValue("id"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, successResponse{Success: "Category was successfully deleted!"})
}
