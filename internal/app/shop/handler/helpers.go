package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lavka/internal/app/shop/entity"
	"lavka/pkg/apperror"
	"lavka/pkg/logger"
)

// respondError переводит ошибку сервиса в конверт {"errors": [...]}
// Для валидации и referential-проверок - массив {field, message},
// для остальных - массив строк
func respondError(c *gin.Context, err error) {
	appErr := apperror.From(err)

	if appErr.Code == http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}

	var payload any
	if len(appErr.Fields) > 0 {
		payload = appErr.Fields
	} else {
		payload = []string{appErr.Message}
	}

	c.JSON(appErr.Code, entity.ErrorResponse{Errors: payload})
}

// respondFound отвечает сущностью или 404, если поиск вернул nil
func respondFound(c *gin.Context, result any, found bool, notFoundMsg string) {
	if !found {
		respondError(c, apperror.NotFound(notFoundMsg))
		return
	}
	c.JSON(http.StatusOK, result)
}

// notImplemented - общая заглушка DELETE-ручек
func notImplemented(c *gin.Context) {
	respondError(c, apperror.NotImplemented("Not implemented!"))
}

// bindJSON разбирает тело запроса; ошибка формата дает 400
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondError(c, apperror.BadRequestMsg("Invalid request body!"))
		return false
	}
	return true
}
