package handler

import (
	"net/http"

	"github.com/camrado/pritok/internal/ctxkeys"
	"github.com/camrado/pritok/internal/respond"
	"github.com/camrado/pritok/internal/service"
)

type PurchaseHandler struct {
	purchaseService *service.PurchaseService
}

func NewPurchaseHandler(purchaseService *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

type pageCountResponse struct {
	Pages int `json:"pages"`
}

func dateRangeFromQuery(r *http.Request) service.DateRange {
	return service.DateRange{
		From: r.URL.Query().Get("fromDate"),
		To:   r.URL.Query().Get("toDate"),
	}
}

func (h *PurchaseHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	params, err := parseQueryParams(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	purchases, err := h.purchaseService.List(user.ID, dateRangeFromQuery(r), params)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, purchases)
}

func (h *PurchaseHandler) PageCount(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	limit, err := parsePageLimit(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	pages, err := h.purchaseService.PageCount(user.ID, dateRangeFromQuery(r), r.URL.Query().Get("search"), limit)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, pageCountResponse{Pages: pages})
}

func (h *PurchaseHandler) ByID(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	purchase, err := h.purchaseService.ByID(user.ID, r.PathValue("id"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, purchase)
}

func (h *PurchaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var fields service.PurchaseFields
	err := decodeJSON(r, &fields)
	if err != nil {
		respond.Error(w, err)
		return
	}

	purchase, err := h.purchaseService.Create(user.ID, fields)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, purchase)
}

func (h *PurchaseHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var patch service.PurchasePatch
	err := decodeJSON(r, &patch)
	if err != nil {
		respond.Error(w, err)
		return
	}

	purchase, err := h.purchaseService.Update(user.ID, r.PathValue("id"), patch)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, purchase)
}

func (h *PurchaseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.purchaseService.Delete(user.ID, r.PathValue("id"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, successResponse{Success: "Purchase was successfully deleted!"})
}
