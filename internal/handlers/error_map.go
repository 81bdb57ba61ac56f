package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sharpcut-app/barber-marketplace/internal/httperr"
)

// writeBusinessError traduz erros de negócio para 4xx; qualquer outra
// coisa vira 500 sem vazar detalhe.
func writeBusinessError(c *gin.Context, err error, fallbackCode string) {
	var be httperr.BusinessError
	if !errors.As(err, &be) {
		httperr.Internal(c, fallbackCode, "Erro interno.")
		return
	}

	switch be.Kind {
	case httperr.KindValidation:
		httperr.BadRequest(c, be.Code, "Requisição inválida.")
	case httperr.KindNotFound:
		httperr.NotFound(c, be.Code, "Recurso não encontrado.")
	case httperr.KindConflict:
		httperr.Conflict(c, be.Code, "Conflito de agenda.")
	case httperr.KindInvalidState:
		httperr.UnprocessableEntity(c, be.Code, "Transição de status inválida.")
	case httperr.KindForbidden:
		httperr.Forbidden(c, be.Code, "Ação não permitida.")
	default:
		httperr.Internal(c, fallbackCode, "Erro interno.")
	}
}
