package handlers

import (
	"encoding/json"
	"net/http"

	"reliefsupply/models"
	"reliefsupply/repository"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// ResourceHandler serves the CRUD routes of one resource kind.
type ResourceHandler struct {
	Kind models.Kind
	Repo repository.DocumentRepository
	Log  logrus.FieldLogger
}

func (h *ResourceHandler) fault(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	h.Log.WithFields(logrus.Fields{
		"kind":   h.Kind.Name,
		"method": r.Method,
		"path":   r.URL.Path,
	}).WithError(err).Warn("resource request failed")
	writeFault(w, err, fallback)
}

func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var doc models.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		h.fault(w, r, err, h.Kind.Name+" create failed")
		return
	}

	ack, err := h.Repo.Create(r.Context(), doc)
	if err != nil {
		h.fault(w, r, err, h.Kind.Name+" create failed")
		return
	}

	writeData(w, http.StatusCreated, capitalize(h.Kind.Name)+" created successfully", ack)
}

func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.Repo.List(r.Context())
	if err != nil {
		h.fault(w, r, err, h.Kind.Plural+" retrieved failed")
		return
	}

	writeData(w, http.StatusOK, "successfully retrieved "+h.Kind.Plural+" data", docs)
}

// ListBy serves the documents whose field equals the {id} path variable.
func (h *ResourceHandler) ListBy(field string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docs, err := h.Repo.ListBy(r.Context(), field, mux.Vars(r)["id"])
		if err != nil {
			h.fault(w, r, err, h.Kind.Plural+" retrieved failed")
			return
		}

		writeData(w, http.StatusOK, "successfully retrieved "+h.Kind.Plural+" data", docs)
	}
}

// Get answers 200 with null data when the id is valid but unknown.
func (h *ResourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Repo.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fault(w, r, err, h.Kind.Name+" retrieved failed")
		return
	}

	var data interface{}
	if doc != nil {
		data = doc
	}
	writeData(w, http.StatusOK, "successfully retrieved "+h.Kind.Name+" data", data)
}

func (h *ResourceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.Document
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.fault(w, r, err, h.Kind.Name+" update failed")
		return
	}

	ack, err := h.Repo.Update(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		h.fault(w, r, err, h.Kind.Name+" update failed")
		return
	}

	writeData(w, http.StatusOK, h.Kind.Name+" updated successfully", ack)
}

func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ack, err := h.Repo.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fault(w, r, err, h.Kind.Name+" delete failed")
		return
	}

	writeData(w, http.StatusOK, "successfully delete "+h.Kind.Name+" data", ack)
}
