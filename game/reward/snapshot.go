package reward

import (
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kasuganosora/battlerewards/host"
)

// AttributeKeys is the canonical set of attribute names a condition may
// key on. Host extractors may return more; unknown keys in a predicate
// degrade to raw species-tag matching rather than failing.
var AttributeKeys = []string{
	"species", "level", "type", "gender", "shiny", "nature", "ability",
	"form", "ivs", "evs", "friendship", "aspects", "ball", "status",
	"nickname", "moves", "tera_type",
}

// Snapshot is an immutable copy of a creature's dynamic attributes,
// captured at a point in time. Matching never touches the live creature.
type Snapshot struct {
	SourceID uuid.UUID
	Species  string
	Level    int

	// Props maps lowercase attribute name to its string rendering.
	Props map[string]string

	// Full is a one-line rendering of every attribute, used for the
	// condition-listing command and debug logging.
	Full string
}

// NewSnapshot captures a creature's attributes. Extraction failure falls
// back to a minimal snapshot built from the creature's direct accessors,
// so empty-condition rules can still fire.
func NewSnapshot(c host.Creature, logger *zap.Logger) Snapshot {
	if logger == nil {
		logger = zap.NewNop()
	}

	level := c.Level()
	if level <= 0 {
		level = 1
	}

	props := make(map[string]string)
	raw, err := c.Properties()
	if err != nil {
		logger.Debug("attribute extraction failed, using fallback snapshot",
			zap.String("species", c.Species()), zap.Error(err))
	} else {
		for k, v := range raw {
			props[strings.ToLower(strings.TrimSpace(k))] = v
		}
	}
	if props["species"] == "" {
		props["species"] = c.Species()
	}
	if props["level"] == "" {
		props["level"] = strconv.Itoa(level)
	}

	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var full strings.Builder
	for i, k := range keys {
		if i > 0 {
			full.WriteByte(' ')
		}
		full.WriteString(k)
		full.WriteByte('=')
		full.WriteString(props[k])
	}

	return Snapshot{
		SourceID: c.UUID(),
		Species:  c.Species(),
		Level:    level,
		Props:    props,
		Full:     full.String(),
	}
}
