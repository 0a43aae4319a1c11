package handler

import (
	"net/http"

	"github.com/paramparahq/parampara/internal/config"
	"github.com/paramparahq/parampara/internal/model"
	"github.com/paramparahq/parampara/internal/service"
)

// MetaHandler exposes the fixed enumerations clients need to build the
// submission wizard.
type MetaHandler struct {
	cfg *config.Config
}

func NewMetaHandler(cfg *config.Config) *MetaHandler {
	return &MetaHandler{cfg: cfg}
}

func (h *MetaHandler) Meta(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"categories":         model.Categories,
		"content_types":      model.ContentTypes,
		"regions":            h.cfg.Regions,
		"languages":          h.cfg.Languages,
		"allowed_extensions": config.AllowedExtensions,
		"max_upload_size":    h.cfg.MaxUploadSize,
		"max_upload_human":   service.HumanSize(h.cfg.MaxUploadSize),
	})
}
