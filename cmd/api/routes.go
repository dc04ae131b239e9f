package main

import (
	"net/http"

	"advocacy-platform/internal/auth"
	"advocacy-platform/internal/httpapi"
	"advocacy-platform/internal/rbac"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers delegate to internal modules.
func registerRoutes(r *gin.Engine, h httpapi.Handlers, authMW gin.HandlerFunc) {
	healthz := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	r.GET("/healthz", healthz)

	api := r.Group("/api")
	{
		api.GET("/health", healthz)

		// AUTH routes (token issuance).
		api.POST("/auth/login", h.Login)

		// Public reads: the knowledge base, audit trail, case timelines,
		// bookmarks, and insurance data serve anonymous patients.
		api.GET("/events/by-time", h.ListEvents)

		api.GET("/wiki-articles", h.ListArticles)
		api.GET("/wiki-articles/:id", h.GetArticle)

		api.GET("/timelines", h.ListTimelines)
		api.GET("/timelines/:id", h.GetTimeline)
		api.POST("/timelines", h.CreateTimeline)

		api.POST("/forensic/analyze", h.AnalyzeTimeline)

		api.GET("/bookmarks", h.ListBookmarks)
		api.POST("/bookmarks", h.CreateBookmark)
		api.DELETE("/bookmarks/:id", h.DeleteBookmark)

		api.GET("/insurance-rates", h.ListRates)
		api.GET("/insurance-heatmap", h.InsuranceHeatmap)
		api.GET("/insurance-counties", h.ListCounties)
		api.GET("/pid-filings", h.SearchFilings)
		api.POST("/insurance-calculator", h.CalculateSubsidy)

		// Writing to the audit log or the article library is editor-only:
		// appends are irrevocable, so the chain records WHO caused them.
		editors := api.Group("")
		editors.Use(authMW)
		editors.Use(rbac.RequireAnyRole(rbac.RoleEditor))
		{
			editors.POST("/events", h.AppendEvent)

			editors.POST("/wiki-articles", h.CreateArticle)
			editors.PUT("/wiki-articles/:id", h.UpdateArticle)
			editors.DELETE("/wiki-articles/:id", h.DeleteArticle)
		}

		// Identity echo, useful for session debugging in clients.
		me := api.Group("")
		me.Use(authMW)
		me.GET("/me", func(c *gin.Context) {
			uid, _ := auth.UserID(c.Request.Context())
			role, _ := auth.Role(c.Request.Context())
			c.JSON(http.StatusOK, gin.H{"user_id": uid, "role": role})
		})
	}
}
