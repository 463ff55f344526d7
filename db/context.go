package db

import (
	"basix/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

const (
	dbKey       = "db"
	providerKey = "billing_provider"
)

// Use este middleware no setup do gin
func SetDBtoContext(database *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(dbKey, database)
		c.Next()
	}
}

func DBInstance(c *gin.Context) *gorm.DB {
	v, ok := c.Get(dbKey)
	if !ok {
		return nil
	}
	db, _ := v.(*gorm.DB)
	return db
}

// SetProviderToContext injeta o cliente de billing do mesmo jeito que o DB.
func SetProviderToContext(p tools.BillingProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(providerKey, p)
		c.Next()
	}
}

func ProviderInstance(c *gin.Context) tools.BillingProvider {
	v, ok := c.Get(providerKey)
	if !ok {
		return nil
	}
	p, _ := v.(tools.BillingProvider)
	return p
}
