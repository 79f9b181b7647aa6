package server

import (
	"net/http"

	"petskub/internal/share"

	"go.uber.org/zap"
)

func (s *Server) handleShareArticle(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeText(w, http.StatusBadRequest, "Missing article id")
		return
	}

	res := s.resolver.Resolve(r.Context(), id)

	doc, err := share.Render(res.Payload)
	if err != nil {
		s.requestLogger(r).Error("Template error", zap.String("id", id), zap.Error(err))
		writeText(w, http.StatusInternalServerError, "Template error")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", res.CacheControl())
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}
