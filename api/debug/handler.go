// Package debug serves a read-only HTTP inspector over the latest
// simulation snapshot.
package debug

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kasuganosora/arpgcore/game/geom"
	"github.com/kasuganosora/arpgcore/game/minimap"
	"github.com/kasuganosora/arpgcore/game/sim"
	mw "github.com/kasuganosora/arpgcore/middleware"
	"go.uber.org/zap"
)

const maxMinimapSize = 1024

// SnapshotSource yields the newest published snapshot.
type SnapshotSource interface {
	Latest() (sim.Snapshot, bool)
}

// Handler serves the inspector endpoints.
type Handler struct {
	snapshots SnapshotSource
	minimap   *minimap.Renderer
	logger    *zap.Logger
}

// NewHandler creates a Handler. mm may be nil, which disables the minimap.
func NewHandler(snapshots SnapshotSource, mm *minimap.Renderer, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{snapshots: snapshots, minimap: mm, logger: logger}
}

// Health reports liveness and the last simulated frame.
// GET /health
func (h *Handler) Health(c *gin.Context) {
	snap, ok := h.snapshots.Latest()
	c.JSON(http.StatusOK, gin.H{"status": "ok", "ticking": ok, "frame": snap.Frame})
}

// State returns the latest snapshot as JSON.
// GET /debug/state
func (h *Handler) State(c *gin.Context) {
	snap, ok := h.snapshots.Latest()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no snapshot yet"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Minimap renders the streamed area around the player.
// GET /debug/minimap.png?size=256
func (h *Handler) Minimap(c *gin.Context) {
	if h.minimap == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "minimap disabled"})
		return
	}
	snap, ok := h.snapshots.Latest()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no snapshot yet"})
		return
	}
	r := h.minimap
	if raw := c.Query("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 16 || size > maxMinimapSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "size must be an integer in [16, 1024]"})
			return
		}
		r = r.WithSize(size)
	}

	var buf bytes.Buffer
	if err := r.Encode(&buf, ViewOf(snap)); err != nil {
		h.logger.Error("minimap encode failed", zap.Error(err), zap.String("trace_id", mw.GetTraceID(c)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "encode failed"})
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// ViewOf centres a minimap view on the snapshot's player.
func ViewOf(s sim.Snapshot) minimap.View {
	v := minimap.View{
		Center:    s.Player.Position,
		Extent:    s.Extent,
		Player:    s.Player.Position,
		Monsters:  make([]geom.Vec2, 0, len(s.Monsters)),
		Drops:     make([]geom.Vec2, 0, len(s.Drops)),
		Chunks:    s.Chunks,
		ChunkSize: s.ChunkSize,
	}
	for _, m := range s.Monsters {
		v.Monsters = append(v.Monsters, m.Position)
	}
	for _, d := range s.Drops {
		v.Drops = append(v.Drops, d.Position)
	}
	return v
}

// Register mounts the inspector routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/health", h.Health)
	g := r.Group("/debug")
	g.GET("/state", h.State)
	g.GET("/minimap.png", h.Minimap)
}
