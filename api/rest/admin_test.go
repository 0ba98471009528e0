package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasuganosora/battlerewards/config"
	"github.com/kasuganosora/battlerewards/game/battle"
	"github.com/kasuganosora/battlerewards/game/reward"
	"github.com/kasuganosora/battlerewards/host"
	"github.com/kasuganosora/battlerewards/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type adminFixture struct {
	router  *gin.Engine
	mgr     *config.Manager
	store   *reward.Store
	cfgPath string
}

func newAdminFixture(t *testing.T, party host.PartyStore) *adminFixture {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  admin_key: testkey\n"), 0o644))

	mgr := config.NewManager(path, nil)
	require.NoError(t, mgr.Load())

	store := reward.NewStore()
	store.Replace(mgr.Current().BuildRules(nil))
	tracker := battle.NewTracker(battle.TrackerConfig{})

	h := NewAdminHandler(mgr, store, tracker, party, nil)
	r := gin.New()
	r.GET("/api/version", h.Version)
	admin := r.Group("/api/admin", AdminAuth(mgr.Current().Server.AdminKey))
	admin.POST("/reload", h.Reload)
	admin.GET("/rewards", h.ListRewards)
	admin.GET("/conditions", h.ListConditions)
	admin.GET("/stats", h.Stats)
	return &adminFixture{router: r, mgr: mgr, store: store, cfgPath: path}
}

func (f *adminFixture) do(method, path, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if key != "" {
		req.Header.Set("X-Admin-Key", key)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestVersion(t *testing.T) {
	f := newAdminFixture(t, nil)
	w := f.do(http.MethodGet, "/api/version", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "battlerewards", body["name"])
	assert.Equal(t, config.Version, body["version"])
}

func TestAdminAuth_MissingKey(t *testing.T) {
	f := newAdminFixture(t, nil)
	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/admin/stats", "").Code)
	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/admin/stats", "wrong").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/admin/stats", "testkey").Code)
}

func TestAdminAuth_DisabledWithoutKey(t *testing.T) {
	r := gin.New()
	r.GET("/x", AdminAuth(""), func(c *gin.Context) { c.Status(http.StatusOK) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestListRewards(t *testing.T) {
	f := newAdminFixture(t, nil)
	w := f.do(http.MethodGet, "/api/admin/rewards", "testkey")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string][]map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Contains(t, body, "BattleWon")
	assert.Len(t, body["BattleWon"], 9, "default catalog is exposed")
	assert.Contains(t, body, "Captured")
}

func TestReload_SwapsCatalog(t *testing.T) {
	f := newAdminFixture(t, nil)

	updated := `
server:
  admin_key: testkey
rewards:
  battle_won:
    only_reward:
      type: command
      command: "say hi"
      chance: 100
`
	require.NoError(t, os.WriteFile(f.cfgPath, []byte(updated), 0o644))

	w := f.do(http.MethodPost, "/api/admin/reload", "testkey")
	require.Equal(t, http.StatusOK, w.Code)

	rules := f.store.Rules(reward.TriggerBattleWon)
	require.Len(t, rules, 1)
	assert.Equal(t, "only_reward", rules[0].Name)
}

func TestReload_BadConfig(t *testing.T) {
	f := newAdminFixture(t, nil)
	require.NoError(t, os.WriteFile(f.cfgPath, []byte("rewards: [oops\n"), 0o644))

	w := f.do(http.MethodPost, "/api/admin/reload", "testkey")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Len(t, f.store.Rules(reward.TriggerBattleWon), 9, "catalog untouched on failure")
}

func TestListConditions_Keys(t *testing.T) {
	f := newAdminFixture(t, nil)
	w := f.do(http.MethodGet, "/api/admin/conditions", "testkey")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, reward.AttributeKeys, body["keys"])
}

func TestListConditions_PlayerSnapshot(t *testing.T) {
	c := testutil.NewFakeCreature("cobblemon:gastly", 8)
	c.Props = map[string]string{"species": "cobblemon:gastly", "type": "ghost"}
	player := testutil.NewFakePlayer("Ash")
	party := testutil.FakeParty{player.UUID(): c}

	f := newAdminFixture(t, party)
	w := f.do(http.MethodGet, "/api/admin/conditions?player="+player.UUID().String(), "testkey")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "level=8 species=cobblemon:gastly type=ghost", body["snapshot"])
}

func TestListConditions_BadPlayerID(t *testing.T) {
	f := newAdminFixture(t, testutil.FakeParty{})
	w := f.do(http.MethodGet, "/api/admin/conditions?player=garbage", "testkey")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStats(t *testing.T) {
	f := newAdminFixture(t, nil)
	w := f.do(http.MethodGet, "/api/admin/stats", "testkey")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Zero(t, body["active_battles"])
}
