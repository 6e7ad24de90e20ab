package handler

import (
	"fmt"
	"net/http"

	"github.com/D0uglasSantos/patrimonio-igreja/internal/dto"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/service"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type RelatoriosHandler struct{ svc service.RelatorioService }

func NewRelatoriosHandler(svc service.RelatorioService) *RelatoriosHandler {
	return &RelatoriosHandler{svc: svc}
}

// Gerar produces a report. formato=excel streams an xlsx attachment, the
// default is the JSON envelope.
func (h *RelatoriosHandler) Gerar(c *gin.Context) {
	var filter dto.RelatorioFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}

	if filter.Formato == "excel" {
		filename, b, err := h.svc.GerarExcel(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, xlsxContentType, b)
		return
	}

	resp, err := h.svc.Gerar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
