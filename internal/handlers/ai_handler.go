package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/careflow-api/internal/ai"
	"github.com/BruksfildServices01/careflow-api/internal/dto"
	"github.com/BruksfildServices01/careflow-api/internal/httperr"
	"github.com/BruksfildServices01/careflow-api/internal/httpresp"
	"github.com/BruksfildServices01/careflow-api/internal/middleware"
	"github.com/BruksfildServices01/careflow-api/internal/storage"
)

// allowed report content types, mapped to what the model receives
var reportTypes = map[string]string{
	"application/pdf": "application/pdf",
	"image/jpeg":      "image/jpeg",
	"image/jpg":       "image/jpeg",
	"image/png":       "image/png",
}

type AIHandler struct {
	gateway   *ai.Gateway
	store     storage.Store
	maxUpload int64
}

func NewAIHandler(gateway *ai.Gateway, store storage.Store, maxUpload int64) *AIHandler {
	return &AIHandler{
		gateway:   gateway,
		store:     store,
		maxUpload: maxUpload,
	}
}

// ======================================================
// NURSE
// ======================================================

func (h *AIHandler) AnalyzeReport(c *gin.Context) {
	// multipart overhead on top of the file itself
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload+1<<20)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httperr.FromError(c, httperr.ErrBusiness("file_too_large"))
			return
		}
		httperr.BadRequest(c, "invalid_request", "A report file is required in field \"file\".")
		return
	}

	mime, ok := reportTypes[fh.Header.Get("Content-Type")]
	if !ok {
		httperr.FromError(c, httperr.ErrBusiness("invalid_file_type"))
		return
	}
	if fh.Size > h.maxUpload {
		httperr.FromError(c, httperr.ErrBusiness("file_too_large"))
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxUpload+1))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if int64(len(data)) > h.maxUpload {
		httperr.FromError(c, httperr.ErrBusiness("file_too_large"))
		return
	}

	u := middleware.CurrentUser(c)
	key := storage.NewKey(u.ID.Hex(), fh.Filename)
	if err := h.store.Put(c.Request.Context(), key, mime, bytes.NewReader(data), int64(len(data))); err != nil {
		httperr.FromError(c, err)
		return
	}

	out := h.gateway.AnalyzeReport(c.Request.Context(), fh.Filename, ai.Attachment{
		MIMEType: mime,
		Data:     data,
	})
	httpresp.OK(c, out)
}

func (h *AIHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if !bindJSON(c, &req) {
		return
	}

	reportID := ""
	if req.ReportID != nil {
		reportID = *req.ReportID
	}

	reply, err := ai.Chat(req.Question, reportID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, reply)
}

// ======================================================
// TUTOR
// ======================================================

func (h *AIHandler) SearchTerm(c *gin.Context) {
	var req dto.TermSearchRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.gateway.SearchTerm(c.Request.Context(), req.Query)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *AIHandler) PopularTerms(c *gin.Context) {
	httpresp.OK(c, dto.PopularTermsResponse{Terms: ai.PopularTerms()})
}
