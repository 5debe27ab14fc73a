package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/circussync/backend/internal/domain"
	"github.com/circussync/backend/internal/store"
)

func (h *Handler) GetAllDocuments(w http.ResponseWriter, r *http.Request) {
	documents, err := h.services.Documents.GetAll(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "documents loaded", documents)
}

func (h *Handler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var document domain.Document

	if err := h.readJSON(r, &document); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if document.Name == "" {
		h.errorResponse(w, r, "document name is required")
		return
	}
	if document.URL == "" {
		h.errorResponse(w, r, "document url is required")
		return
	}
	if !document.RelatedTo.Type.Valid() {
		h.errorResponse(w, r, "invalid related entity type")
		return
	}
	if document.RelatedTo.ID == "" {
		h.errorResponse(w, r, "related entity id is required")
		return
	}

	// record who uploaded it from the session, not the request body
	document.UploadedBy = r.Context().Value(SubCtxKey).(string)

	id, err := h.services.Documents.Add(r.Context(), &document)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	created, err := h.services.Documents.Get(r.Context(), id)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "document created", created)
}

func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	document := r.Context().Value(DocumentCtx).(*domain.Document)
	h.successResponse(w, r, "document loaded", document)
}

func (h *Handler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	document := r.Context().Value(DocumentCtx).(*domain.Document)

	patch := map[string]any{}
	if err := h.readJSON(r, &patch); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if len(patch) == 0 {
		h.errorResponse(w, r, "nothing to update")
		return
	}
	// the uploader is fixed at creation time
	delete(patch, "uploadedBy")

	if err := h.services.Documents.Update(r.Context(), document.ID, patch); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			h.errorResponse(w, r, "document not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	updated, err := h.services.Documents.Get(r.Context(), document.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "document updated", updated)
}

func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	document := r.Context().Value(DocumentCtx).(*domain.Document)

	if err := h.services.Documents.Delete(r.Context(), document.ID); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			h.errorResponse(w, r, "document not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "document deleted", nil)
}

func (h *Handler) GetDocumentsByRelatedEntity(w http.ResponseWriter, r *http.Request) {
	entityType := domain.EntityType(chi.URLParam(r, "type"))
	if !entityType.Valid() {
		h.errorResponse(w, r, "invalid related entity type")
		return
	}

	entityID := chi.URLParam(r, "id")

	documents, err := h.services.Documents.GetByRelatedEntity(r.Context(), entityType, entityID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "documents loaded", documents)
}
