package consolidation

import (
	"fmt"
	"net/http"
	"time"

	"github.com/davidvasconcellos/PayrollDataExtractor/internal/shared/apperror"
	"github.com/davidvasconcellos/PayrollDataExtractor/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service  Service
	payslips PayslipSource
}

func NewHandler(service Service, payslips PayslipSource) *Handler {
	return &Handler{service: service, payslips: payslips}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetConsolidated(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	res, err := h.service.GetConsolidated(c.Request.Context(), userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Export(c *gin.Context) {
	userID := c.GetString("user_id_validated")
	format := c.DefaultQuery("format", "csv")

	res, err := h.service.GetConsolidated(c.Request.Context(), userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	stamp := time.Now().Format("2006-01-02")

	switch format {
	case "csv":
		payload, err := ExportCSV(res)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		writeAttachment(c, fmt.Sprintf("consolidado-%s.csv", stamp), "text/csv; charset=utf-8", payload)

	case "xlsx":
		payload, err := ExportXLSX(res)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		writeAttachment(
			c,
			fmt.Sprintf("consolidado-%s.xlsx", stamp),
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			payload,
		)

	case "json":
		payload, err := ExportJSON(res)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		writeAttachment(c, fmt.Sprintf("consolidado-%s.json", stamp), "application/json", payload)

	default:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unsupported export format", format)
	}
}

func (h *Handler) ExportLineItems(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	payslips, err := h.payslips.ListExtracted(c.Request.Context(), userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	payload, err := ExportLineItemsCSV(payslips)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	stamp := time.Now().Format("2006-01-02")
	writeAttachment(c, fmt.Sprintf("itens-%s.csv", stamp), "text/csv; charset=utf-8", payload)
}

func writeAttachment(c *gin.Context, filename, contentType string, payload []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, payload)
}
