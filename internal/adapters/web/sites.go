package web

import (
	"net/http"

	"plystore/internal/app"
)

func (h *Handler) apiListSites(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	sites, err := h.svc.ListSites(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, sites)
}

func (h *Handler) apiCreateSite(w http.ResponseWriter, r *http.Request) {
	var body app.SiteRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	site, err := h.svc.CreateSite(r.Context(), body)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, site)
}

func (h *Handler) apiUpdateSite(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var body app.SiteRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	site, err := h.svc.UpdateSite(r.Context(), id, body)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, site)
}

func (h *Handler) apiDeleteSite(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteSite(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) apiListLaminateEntries(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	entries, err := h.svc.ListLaminateEntries(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, entries)
}

func (h *Handler) apiCreateLaminateEntry(w http.ResponseWriter, r *http.Request) {
	var body app.LaminateEntryRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	entry, err := h.svc.CreateLaminateEntry(r.Context(), body)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, entry)
}

func (h *Handler) apiUpdateLaminateEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var body app.LaminateEntryRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	entry, err := h.svc.UpdateLaminateEntry(r.Context(), id, body)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, entry)
}

func (h *Handler) apiDeleteLaminateEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteLaminateEntry(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
