package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"advocacy-platform/internal/auth"
	"advocacy-platform/internal/bookmark"
	"advocacy-platform/internal/eventlog"
	"advocacy-platform/internal/forensic"
	"advocacy-platform/internal/insurance"
	"advocacy-platform/internal/timeline"
	"advocacy-platform/internal/wiki"
	"advocacy-platform/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.
type Handlers struct {
	Auth      *auth.Manager
	Events    *eventlog.Service
	Wiki      *wiki.Service
	Timelines *timeline.Service
	Bookmarks *bookmark.Service
	Insurance *insurance.Service
}

// --- Auth ---

type loginRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// Login issues a JWT token pair.
//
// NOTE: This is a skeleton-only endpoint. Real systems must validate credentials.
func (h Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.UserID == "" || req.Role == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "user_id, role required"})
		return
	}
	pair, err := h.Auth.IssuePair(time.Now(), req.UserID, req.Role)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "token issuance failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": pair.AccessToken, "refresh_token": pair.RefreshToken})
}

// --- Audit log ---

// ListEvents serves GET /api/events/by-time. With resourceId, items are the
// resource-scoped view; isChainIntact always reflects a verification walk
// over the FULL log, since scoped subsets are not contiguous chain segments.
func (h Handlers) ListEvents(c *gin.Context) {
	ctx := c.Request.Context()

	all, err := h.Events.QueryAll(ctx)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "event query failed"})
		return
	}
	intact, offender := eventlog.VerifyIntegrity(eventlog.OldestFirst(all))
	if !intact {
		logger.FromGin(c).Error("audit chain verification failed", "event_id", offender)
	}

	items := all
	if resourceID := c.Query("resourceId"); resourceID != "" {
		items, err = h.Events.QueryByResource(ctx, resourceID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "event query failed"})
			return
		}
	}
	if items == nil {
		items = []eventlog.Event{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "isChainIntact": intact})
}

type appendEventRequest struct {
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	ResourceID string          `json:"resourceId,omitempty"`
}

// AppendEvent serves POST /api/events and returns the new chain state.
func (h Handlers) AppendEvent(c *gin.Context) {
	var req appendEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	_, state, err := h.Events.Append(c.Request.Context(), req.Type, req.Payload, req.ResourceID)
	switch {
	case errors.Is(err, eventlog.ErrInvalidEvent):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "type and payload required"})
	case errors.Is(err, eventlog.ErrConcurrentModification):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "concurrent modification, append not recorded"})
	case err != nil:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "append failed"})
	default:
		c.JSON(http.StatusOK, state)
	}
}

// --- Wiki articles ---

func (h Handlers) ListArticles(c *gin.Context) {
	items, err := h.Wiki.List(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "article query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h Handlers) GetArticle(c *gin.Context) {
	a, err := h.Wiki.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, wiki.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "article not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "article query failed"})
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h Handlers) CreateArticle(c *gin.Context) {
	var in wiki.ArticleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	a, err := h.Wiki.Create(c.Request.Context(), in)
	if !h.writeWikiError(c, err) {
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h Handlers) UpdateArticle(c *gin.Context) {
	var in wiki.ArticleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	a, err := h.Wiki.Update(c.Request.Context(), c.Param("id"), in)
	if !h.writeWikiError(c, err) {
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h Handlers) DeleteArticle(c *gin.Context) {
	err := h.Wiki.Delete(c.Request.Context(), c.Param("id"))
	if !h.writeWikiError(c, err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// writeWikiError maps wiki service errors to responses; returns true when
// the request may proceed to a success response.
//
// An audit failure is NOT reported as a failed save: the content write
// committed, so the response says so while still failing the request.
func (h Handlers) writeWikiError(c *gin.Context, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, wiki.ErrInvalidArticle):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "title, category, summary, content required"})
	case errors.Is(err, wiki.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "article not found"})
	case errors.Is(err, wiki.ErrAuditFailed):
		logger.FromGin(c).Error("wiki mutation saved but unaudited", "err", err)
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "content saved but audit log append failed; change is recorded but unaudited"})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "article write failed"})
	}
	return false
}

// --- Forensic analyzer ---

type analyzeRequest struct {
	Events []forensic.Event `json:"events"`
}

func (h Handlers) AnalyzeTimeline(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	results := forensic.Analyze(req.Events, time.Now())
	c.JSON(http.StatusOK, gin.H{"items": results})
}

// --- Case timelines ---

func (h Handlers) ListTimelines(c *gin.Context) {
	items, err := h.Timelines.List(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "timeline query failed"})
		return
	}
	if items == nil {
		items = []timeline.CaseTimeline{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h Handlers) GetTimeline(c *gin.Context) {
	t, err := h.Timelines.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, timeline.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "timeline not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "timeline query failed"})
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h Handlers) CreateTimeline(c *gin.Context) {
	var in timeline.CaseTimeline
	if err := c.ShouldBindJSON(&in); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	t, err := h.Timelines.Create(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, timeline.ErrInvalidTimeline) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "title and events required"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "timeline write failed"})
		return
	}
	c.JSON(http.StatusOK, t)
}

// --- Bookmarks ---

func (h Handlers) ListBookmarks(c *gin.Context) {
	items, err := h.Bookmarks.List(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "bookmark query failed"})
		return
	}
	if items == nil {
		items = []bookmark.Bookmark{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h Handlers) CreateBookmark(c *gin.Context) {
	var in bookmark.Bookmark
	if err := c.ShouldBindJSON(&in); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	b, err := h.Bookmarks.Create(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, bookmark.ErrInvalidBookmark) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "articleId required"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "bookmark write failed"})
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h Handlers) DeleteBookmark(c *gin.Context) {
	deleted, err := h.Bookmarks.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "bookmark delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// --- Insurance navigator ---

func (h Handlers) ListRates(c *gin.Context) {
	items, err := h.Insurance.ListRates(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "rate query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h Handlers) InsuranceHeatmap(c *gin.Context) {
	items, err := h.Insurance.Heatmap(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "heatmap query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h Handlers) ListCounties(c *gin.Context) {
	items, err := h.Insurance.ListCounties(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "county query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h Handlers) SearchFilings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.Insurance.SearchFilings(c.Query("q"))})
}

func (h Handlers) CalculateSubsidy(c *gin.Context) {
	var req insurance.SubsidyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	out, err := insurance.CalculateSubsidy(req)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "income, householdSize, benchmarkPremium required"})
		return
	}
	c.JSON(http.StatusOK, out)
}
