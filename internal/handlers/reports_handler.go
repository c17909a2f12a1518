package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stockroom/internal/services"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: service}
}

// @Summary      Inventory expiry summary
// @Tags         Reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.InventorySummary
// @Failure      401  {object}  map[string]string
// @Router       /reports/summary [get]
func (h *ReportHandler) GetSummary(c *gin.Context) {
	data, err := h.Service.GetSummary()
	if err != nil {
		internalError(c, "Failed to build summary", err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// @Summary      Inventory report as PDF
// @Tags         Reports
// @Produce      application/pdf
// @Security     BearerAuth
// @Success      200  {file}    file
// @Failure      401  {object}  map[string]string
// @Router       /reports/inventory.pdf [get]
func (h *ReportHandler) InventoryPDF(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.Service.WriteInventoryPDF(&buf); err != nil {
		internalError(c, "Failed to render report", err)
		return
	}
	filename := fmt.Sprintf("inventory_%s.pdf", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
