package handler

import (
	"net/http"

	"github.com/D0uglasSantos/patrimonio-igreja/internal/dto"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/service"

	"github.com/gin-gonic/gin"
)

type PastoraisHandler struct{ svc service.PastoralService }

func NewPastoraisHandler(svc service.PastoralService) *PastoraisHandler {
	return &PastoraisHandler{svc: svc}
}

func (h *PastoraisHandler) Criar(c *gin.Context) {
	var req dto.CriarPastoralRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PastoraisHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PastoraisHandler) Obter(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObterPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PastoraisHandler) Atualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.AtualizarPastoralRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PastoraisHandler) Excluir(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Excluir(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AdicionarMembro assigns a usuario to the pastoral with a role, subject to
// the role quotas.
func (h *PastoraisHandler) AdicionarMembro(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.AdicionarMembroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AdicionarMembro(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
