// Package rest exposes the administrative command surface over HTTP:
// version banner, config reload, and read-only catalog dumps.
package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kasuganosora/battlerewards/config"
	"github.com/kasuganosora/battlerewards/game/battle"
	"github.com/kasuganosora/battlerewards/game/reward"
	"github.com/kasuganosora/battlerewards/host"
)

// AdminHandler handles the admin endpoints. Routes other than the
// version banner should be protected by AdminAuth middleware.
type AdminHandler struct {
	mgr     *config.Manager
	store   *reward.Store
	tracker *battle.Tracker
	party   host.PartyStore // optional
	logger  *zap.Logger
}

// NewAdminHandler creates an AdminHandler. party may be nil when the
// host offers no party lookup.
func NewAdminHandler(mgr *config.Manager, store *reward.Store, tracker *battle.Tracker, party host.PartyStore, logger *zap.Logger) *AdminHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminHandler{mgr: mgr, store: store, tracker: tracker, party: party, logger: logger}
}

// Version is the base command: a version banner.
// GET /api/version
func (h *AdminHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "battlerewards",
		"version": config.Version,
	})
}

// Reload re-reads the configuration and swaps the rule catalog in place.
// In-flight battle state is unaffected.
// POST /api/admin/reload
func (h *AdminHandler) Reload(c *gin.Context) {
	if err := h.mgr.Reload(); err != nil {
		h.logger.Error("config reload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	cfg := h.mgr.Current()
	h.store.Replace(cfg.BuildRules(h.logger))
	h.logger.Info("configuration reloaded")
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type ruleInfo struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Message     string   `json:"message,omitempty"`
	Chance      float64  `json:"chance"`
	Cooldown    int64    `json:"cooldown,omitempty"`
	BattleTypes []string `json:"battle_types"`
	Conditions  []string `json:"conditions,omitempty"`
	Blacklist   bool     `json:"conditions_blacklist,omitempty"`
	MinLevel    int      `json:"min_level"`
	MaxLevel    int      `json:"max_level"`
	Order       int      `json:"order"`
}

// ListRewards dumps the current rule catalog grouped by trigger.
// GET /api/admin/rewards
func (h *AdminHandler) ListRewards(c *gin.Context) {
	out := make(map[string][]ruleInfo, len(reward.Triggers))
	catalog := h.store.All()
	for _, tr := range reward.Triggers {
		rules := catalog[tr]
		infos := make([]ruleInfo, 0, len(rules))
		for _, r := range rules {
			var conds []string
			for _, cl := range r.Clauses {
				for _, p := range cl.All {
					conds = append(conds, p)
				}
			}
			infos = append(infos, ruleInfo{
				Name:        r.Name,
				Type:        r.Type,
				Message:     r.Message,
				Chance:      r.Chance,
				Cooldown:    r.CooldownSeconds,
				BattleTypes: r.BattleKinds,
				Conditions:  conds,
				Blacklist:   r.Blacklist,
				MinLevel:    r.MinLevel,
				MaxLevel:    r.MaxLevel,
				Order:       r.Order,
			})
		}
		out[string(tr)] = infos
	}
	c.JSON(http.StatusOK, out)
}

// ListConditions lists the usable condition keys. With ?player=<uuid>
// and a party store, it returns the full attribute snapshot of that
// player's first creature instead.
// GET /api/admin/conditions
func (h *AdminHandler) ListConditions(c *gin.Context) {
	if raw := c.Query("player"); raw != "" && h.party != nil {
		playerID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid player id"})
			return
		}
		if creature, ok := h.party.FirstCreature(playerID); ok {
			snap := reward.NewSnapshot(creature, h.logger)
			c.JSON(http.StatusOK, gin.H{"snapshot": snap.Full})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"keys": reward.AttributeKeys})
}

// Stats reports tracker liveness for monitoring.
// GET /api/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"active_battles": h.tracker.ActiveCount(),
	})
}

// AdminAuth guards admin endpoints with a shared key header.
func AdminAuth(adminKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminKey == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable,
				gin.H{"error": "admin endpoints disabled: set server.admin_key in config"})
			return
		}
		if c.GetHeader("X-Admin-Key") != adminKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}
