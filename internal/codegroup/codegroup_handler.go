package codegroup

import (
	"net/http"

	"github.com/davidvasconcellos/PayrollDataExtractor/internal/consolidation"
	"github.com/davidvasconcellos/PayrollDataExtractor/internal/shared/apperror"
	"github.com/davidvasconcellos/PayrollDataExtractor/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

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

func (h *Handler) Create(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	var req CreateCodeGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.invalidateConsolidation(c, userID)

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	resp, err := h.service.GetAll(c.Request.Context(), userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetById(c *gin.Context) {
	userID := c.GetString("user_id_validated")
	id := c.Param("id")

	resp, err := h.service.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	userID := c.GetString("user_id_validated")
	id := c.Param("id")

	var req UpdateCodeGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.invalidateConsolidation(c, userID)

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	userID := c.GetString("user_id_validated")
	id := c.Param("id")

	if err := h.service.Delete(c.Request.Context(), userID, id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.invalidateConsolidation(c, userID)

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
