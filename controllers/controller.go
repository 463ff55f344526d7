package controllers

import (
	"basix/config"
	"basix/logger"

	"github.com/gin-gonic/gin"
)

var (
	conf config.Configuration
	log  = logger.Discard()
)

func SetConfigurations(configuration config.Configuration) {
	conf = configuration
}

func SetLogger(l *logger.Logger) {
	if l == nil {
		l = logger.Discard()
	}
	log = l.WithComponent(logger.ComponentHTTP)
}

func RespondError(c *gin.Context, msg string, code int) {
	c.JSON(code, gin.H{"error": msg})
}

func RespondSuccess(c *gin.Context, payload any) {
	c.JSON(200, payload)
}
