package payslip

import (
	"io"
	"net/http"
	"strconv"

	"github.com/davidvasconcellos/PayrollDataExtractor/internal/consolidation"
	paysliperrors "github.com/davidvasconcellos/PayrollDataExtractor/internal/payslip/errors"
	"github.com/davidvasconcellos/PayrollDataExtractor/internal/shared/apperror"
	"github.com/davidvasconcellos/PayrollDataExtractor/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// 20 MB is plenty for a multi-page payslip PDF.
const maxDocumentSize = 20 << 20

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) invalidateConsolidation(c *gin.Context, userID string) {
	if h.rdb == nil {
		return
	}
	_ = h.rdb.Del(c.Request.Context(), consolidation.CacheKey(userID)).Err()
}

func (h *Handler) Upload(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	var req UploadPayslipRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		h.writeServiceError(c, paysliperrors.ErrMissingDocument)
		return
	}
	if fileHeader.Size > maxDocumentSize {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Document too large", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.writeServiceError(c, paysliperrors.ErrMissingDocument)
		return
	}
	defer file.Close()

	document, err := io.ReadAll(io.LimitReader(file, maxDocumentSize+1))
	if err != nil {
		h.writeServiceError(c, paysliperrors.ErrDocumentUnreadable)
		return
	}

	resp, err := h.service.ProcessUpload(c.Request.Context(), userID, document, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.invalidateConsolidation(c, userID)

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString("user_id_validated")

	resp, err := h.service.GetAll(ctx, userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) GetById(c *gin.Context) {
	ctx := c.Request.Context()
	targetID := c.Param("id")
	userID := c.GetString("user_id_validated")

	resp, err := h.service.GetByID(ctx, userID, targetID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	userID := c.GetString("user_id_validated")

	if err := h.service.Delete(ctx, userID, id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.invalidateConsolidation(c, userID)

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
