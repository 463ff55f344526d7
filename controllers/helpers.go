package controllers

import (
	"net/http"
	"strings"

	dbpkg "basix/db"
	"basix/logger"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

func ParamID(c *gin.Context, name string) (string, bool) {
	v := strings.TrimSpace(c.Param(name))
	if v == "" {
		RespondError(c, name+" é obrigatório", http.StatusBadRequest)
		return "", false
	}
	return v, true
}

func QueryRequired(c *gin.Context, name string) (string, bool) {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		RespondError(c, name+" é obrigatório", http.StatusBadRequest)
		return "", false
	}
	return v, true
}

func requireDB(c *gin.Context) (*gorm.DB, bool) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return nil, false
	}
	return db, true
}

// respondStorageError loga o erro real e devolve uma mensagem genérica.
func respondStorageError(c *gin.Context, op string, err error) {
	logger.FromContext(c.Request.Context(), log).Error("storage error",
		logger.FieldOperation, op,
		logger.FieldError, err,
	)
	RespondError(c, "erro ao acessar o banco de dados", http.StatusInternalServerError)
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, "JSON inválido", http.StatusBadRequest)
		return false
	}
	return true
}
