package http

import (
	"net/http"

	"github.com/aretw0/portico/pkg/imaging"
)

func toImagingRequest(in ImageRequest) imaging.Request {
	req := imaging.Request{Source: in.Src}
	if in.Fallback != nil {
		req.Fallback = *in.Fallback
	}
	if in.Label != nil {
		req.Label = *in.Label
	}
	if in.Priority != nil {
		req.Priority = *in.Priority
	}
	return req
}

func (s *Server) ResolveImage(w http.ResponseWriter, r *http.Request) {
	var body ResolveImageJSONRequestBody
	if err := decodeBody(w, r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	req := toImagingRequest(body)
	res, err := s.Resolver.Resolve(r.Context(), req)
	if err != nil {
		// Only cancellation reaches here; the client is gone.
		s.logger.Debug("Image resolution abandoned", "src", req.Source, "err", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) ResolveImages(w http.ResponseWriter, r *http.Request) {
	var body ResolveImagesJSONRequestBody
	if err := decodeBody(w, r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	reqs := make([]imaging.Request, len(body.Images))
	for i, img := range body.Images {
		reqs[i] = toImagingRequest(img)
	}
	results, err := s.Resolver.ResolveAll(r.Context(), reqs)
	if err != nil {
		s.logger.Debug("Batch image resolution abandoned", "count", len(reqs), "err", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}
