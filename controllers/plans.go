package controllers

import (
	"net/http"

	"basix/models"

	"github.com/gin-gonic/gin"
)

// GET /api/plans
func GetPlans(c *gin.Context) {
	plans := models.Plans()
	out := make([]models.PlanView, 0, len(plans))
	for _, p := range plans {
		out = append(out, p.View())
	}
	RespondSuccess(c, gin.H{"plans": out})
}

// GET /api/plans/:id
func GetPlanByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	plan, found := models.FindPlan(id)
	if !found {
		RespondError(c, "plano não encontrado", http.StatusNotFound)
		return
	}
	RespondSuccess(c, gin.H{"plan": plan.View()})
}
