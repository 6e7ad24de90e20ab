package handler

import (
	"net/http"

	"github.com/D0uglasSantos/patrimonio-igreja/internal/apierror"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/dto"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/middleware"
	"github.com/D0uglasSantos/patrimonio-igreja/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EmprestimosHandler struct{ svc service.EmprestimoService }

func NewEmprestimosHandler(svc service.EmprestimoService) *EmprestimosHandler {
	return &EmprestimosHandler{svc: svc}
}

// RegistrarRetirada opens a loan. The authenticated admin is recorded as the
// entregador.
func (h *EmprestimosHandler) RegistrarRetirada(c *gin.Context) {
	var req dto.RegistrarRetiradaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	sess := middleware.GetSession(c)
	entregadorID, err := uuid.Parse(sess.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.Auth("Sessão inválida"))
		return
	}

	resp, err := h.svc.RegistrarRetirada(c.Request.Context(), entregadorID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RegistrarDevolucao closes an open loan.
func (h *EmprestimosHandler) RegistrarDevolucao(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.RegistrarDevolucaoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarDevolucao(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EmprestimosHandler) Listar(c *gin.Context) {
	var filter dto.EmprestimoFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EmprestimosHandler) Obter(c *gin.Context) {
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
