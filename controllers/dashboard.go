package controllers

import (
	"basix/period"

	"github.com/gin-gonic/gin"
)

// GET /api/dashboard?tenantId=&month=YYYY-MM
func GetDashboard(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}
	tenantID, ok := QueryRequired(c, "tenantId")
	if !ok {
		return
	}

	f := period.Filter{TenantID: tenantID, Month: period.ResolveMonth(c.Query("month"))}
	summary, err := period.Summarize(c.Request.Context(), db, f)
	if err != nil {
		respondStorageError(c, "dashboard", err)
		return
	}
	RespondSuccess(c, summary)
}
