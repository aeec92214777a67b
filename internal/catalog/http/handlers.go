package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bionano-bdd/bddb-backend/internal/auth"
	"github.com/bionano-bdd/bddb-backend/internal/catalog/discovery"
	"github.com/bionano-bdd/bddb-backend/internal/catalog/domain"
	"github.com/bionano-bdd/bddb-backend/internal/catalog/links"
	"github.com/bionano-bdd/bddb-backend/internal/catalog/repository"
	"github.com/bionano-bdd/bddb-backend/internal/catalog/scoring"
)

// projectLister is the discovery pipeline as the handlers see it.
type projectLister interface {
	ListProjects(ctx context.Context, req discovery.ListRequest) ([]domain.Project, error)
}

type Handler struct {
	projects  *repository.ProjectRepository
	comments  *repository.CommentRepository
	pipeline  projectLister
	resolver  *links.Resolver
	scheduler *scoring.Scheduler
}

func NewHandler(
	projects *repository.ProjectRepository,
	comments *repository.CommentRepository,
	pipeline projectLister,
	resolver *links.Resolver,
	scheduler *scoring.Scheduler,
) *Handler {
	return &Handler{
		projects:  projects,
		comments:  comments,
		pipeline:  pipeline,
		resolver:  resolver,
		scheduler: scheduler,
	}
}

// list serves the gallery: sorted, filtered, searched, paginated, with
// image links resolved on the returned page.
func (h *Handler) list(c *gin.Context) {
	req := discovery.ListRequest{
		Sort:    domain.ParseSortKey(c.Query("sortby")),
		Search:  c.Query("search"),
		Filters: c.QueryArray("filter"),
		From:    intQuery(c, "from", 0),
		To:      intQuery(c, "to", 9),
	}

	projects, err := h.pipeline.ListProjects(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "data": gin.H{"message": err.Error()}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": false, "data": projects})
}

func (h *Handler) getProject(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("projectId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "data": gin.H{"message": "invalid project id"}})
		return
	}

	p, err := h.projects.GetByID(c.Request.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrProjectNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": true, "data": gin.H{"message": err.Error()}})
		return
	}

	h.resolver.ResolveDetail(c.Request.Context(), p)
	c.JSON(http.StatusOK, gin.H{"error": false, "data": p})
}

func (h *Handler) create(c *gin.Context) {
	var req projectPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "data": gin.H{"message": "invalid body"}})
		return
	}

	id, err := h.projects.Create(c.Request.Context(), req.toDomain(auth.UserID(c)))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "data": gin.H{"message": err.Error()}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "project_id": id})
}

// update patches the project's metadata and schedules a rescore of its
// documentation quality. The rescore runs after a settle delay, detached
// from this request; its outcome is not reported here.
func (h *Handler) update(c *gin.Context) {
	var req projectPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "data": gin.H{"message": "invalid body"}})
		return
	}

	p := req.toDomain(auth.UserID(c))
	if err := h.projects.Update(c.Request.Context(), p.UserID, p); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrProjectNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": true})
		return
	}

	h.scheduler.ScheduleRescore(p.ID, p)
	c.JSON(http.StatusOK, gin.H{"error": false})
}

func (h *Handler) updateAssociated(c *gin.Context) {
	var req associatedReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true})
		return
	}

	err := h.projects.UpdateAssociated(c.Request.Context(), auth.UserID(c), req.ID, req.AssociatedProject, req.Published)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrProjectNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": false})
}

func (h *Handler) incViews(c *gin.Context) {
	var req incViewsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true})
		return
	}

	if err := h.projects.IncrementViews(c.Request.Context(), req.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": false})
}

func (h *Handler) delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("project_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true})
		return
	}

	ok, err := h.projects.SoftDelete(c.Request.Context(), auth.UserID(c), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": true})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "project_id": id})
}

func (h *Handler) listComments(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("projectId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true})
		return
	}

	comments, err := h.comments.ListByProject(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (h *Handler) createComment(c *gin.Context) {
	var req commentReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Comment == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": true})
		return
	}

	comment := domain.Comment{
		ProjectID:     req.ProjectID,
		UserID:        req.UserID,
		Username:      req.Username,
		UserFirstname: req.UserFirstname,
		UserLastname:  req.UserLastname,
		Comment:       req.Comment,
	}
	if err := h.comments.Create(c.Request.Context(), &comment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": false, "success": true})
}

// intQuery parses an integer query parameter; anything malformed falls back
// to the default rather than erroring.
func intQuery(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
