package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/foodtracker/internal/domain/models"
	"github.com/mamadbah2/foodtracker/internal/service/reporting"
	"github.com/mamadbah2/foodtracker/internal/service/tracker"
	"github.com/mamadbah2/foodtracker/internal/view"
)

// NoticeBoard exposes the latest transient notification.
type NoticeBoard interface {
	Current() (string, bool)
}

// TrackerHandler adapts tracker operations to HTML form posts.
type TrackerHandler struct {
	tracker   *tracker.Tracker
	renderer  *view.Renderer
	notices   NoticeBoard
	reporting *reporting.Service
	noticeTTL time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// NewTrackerHandler constructs the HTTP handler adapter.
func NewTrackerHandler(t *tracker.Tracker, renderer *view.Renderer, notices NoticeBoard, reportingSvc *reporting.Service, noticeTTL time.Duration, logger *zap.Logger) *TrackerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrackerHandler{
		tracker:   t,
		renderer:  renderer,
		notices:   notices,
		reporting: reportingSvc,
		noticeTTL: noticeTTL,
		logger:    logger,
		now:       time.Now,
	}
}

type adjustForm struct {
	Amount string `form:"amount"`
	Filter string `form:"filter"`
}

type filterForm struct {
	Filter string `form:"filter"`
}

// Index renders the whole page, filtering orders by ?status=.
func (h *TrackerHandler) Index(c *gin.Context) {
	filter := c.DefaultQuery("status", models.OrderFilterAll)

	data := view.PageData{
		State:     h.tracker.Snapshot(),
		Orders:    h.tracker.Orders(filter),
		Filter:    filter,
		NoticeTTL: h.noticeTTL,
	}
	if message, visible := h.notices.Current(); visible {
		data.Notice = message
	}

	var buf bytes.Buffer
	if err := h.renderer.Page(&buf, data); err != nil {
		h.logger.Error("failed rendering page", zap.Error(err))
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// AddItem handles the inventory form.
func (h *TrackerHandler) AddItem(c *gin.Context) {
	var in tracker.ItemInput
	if err := c.ShouldBind(&in); err != nil {
		h.badForm(c, err)
		return
	}
	_, err := h.tracker.AddItem(c.Request.Context(), in)
	h.finish(c, err, c.PostForm("filter"))
}

// AdjustStock handles the inline stock adjustment form.
func (h *TrackerHandler) AdjustStock(c *gin.Context) {
	var form adjustForm
	if err := c.ShouldBind(&form); err != nil {
		h.badForm(c, err)
		return
	}
	err := h.tracker.Dispatch(c.Request.Context(), tracker.Action{Kind: tracker.ActionAdjustStock, ID: c.Param("id"), Amount: form.Amount})
	h.finish(c, err, form.Filter)
}

// AddOrder handles the order form.
func (h *TrackerHandler) AddOrder(c *gin.Context) {
	var in tracker.OrderInput
	if err := c.ShouldBind(&in); err != nil {
		h.badForm(c, err)
		return
	}
	_, err := h.tracker.AddOrder(c.Request.Context(), in)
	h.finish(c, err, c.PostForm("filter"))
}

// AddSupplier handles the supplier form.
func (h *TrackerHandler) AddSupplier(c *gin.Context) {
	var in tracker.SupplierInput
	if err := c.ShouldBind(&in); err != nil {
		h.badForm(c, err)
		return
	}
	_, err := h.tracker.AddSupplier(c.Request.Context(), in)
	h.finish(c, err, c.PostForm("filter"))
}

// RowAction returns a handler dispatching kind for the :id path parameter.
func (h *TrackerHandler) RowAction(kind tracker.ActionKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form filterForm
		if err := c.ShouldBind(&form); err != nil {
			h.badForm(c, err)
			return
		}
		err := h.tracker.Dispatch(c.Request.Context(), tracker.Action{Kind: kind, ID: c.Param("id")})
		h.finish(c, err, form.Filter)
	}
}

// State returns the current state as JSON.
func (h *TrackerHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.tracker.Snapshot())
}

// Summary returns the reporting summary as JSON.
func (h *TrackerHandler) Summary(c *gin.Context) {
	c.JSON(http.StatusOK, h.reporting.Summarize(h.tracker.Snapshot(), h.now()))
}

// finish redirects back to the page. Validation failures were already
// surfaced through the notice board; a vanished record is ignored.
func (h *TrackerHandler) finish(c *gin.Context, err error, filter string) {
	switch {
	case err == nil, tracker.IsValidation(err):
	case errors.Is(err, tracker.ErrRecordNotFound):
		h.logger.Debug("row action on missing record", zap.String("path", c.Request.URL.Path))
	case errors.Is(err, tracker.ErrUnknownAction):
		h.logger.Warn("unknown row action", zap.Error(err))
		c.String(http.StatusBadRequest, "unknown action")
		return
	default:
		h.logger.Error("tracker action failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "action failed")
		return
	}

	target := "/"
	if filter != "" && filter != models.OrderFilterAll {
		target += "?status=" + url.QueryEscape(filter)
	}
	c.Redirect(http.StatusSeeOther, target)
}

func (h *TrackerHandler) badForm(c *gin.Context, err error) {
	h.logger.Warn("invalid form payload", zap.Error(err))
	c.String(http.StatusBadRequest, "invalid form")
}
