package reward

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kasuganosora/battlerewards/host"
)

// applyPlaceholders renders the template tokens supported in reward
// message and command strings.
func applyPlaceholders(text string, player host.Player, subject Snapshot, kind string, rule Rule, trigger Trigger) string {
	x, y, z := player.Position()
	repl := strings.NewReplacer(
		"%player%", player.Name(),
		"%pokemon%", subject.Species,
		"%level%", strconv.Itoa(subject.Level),
		"%battleType%", kind,
		"%chance%", formatChance(rule.Chance),
		"%coords%", fmt.Sprintf("%d,%d,%d", x, y, z),
		"%trigger%", string(trigger),
		"%dimension%", player.Dimension(),
	)
	return repl.Replace(text)
}

// formatChance renders whole-number chances without a decimal point,
// matching how rule files write them.
func formatChance(chance float64) string {
	return strconv.FormatFloat(chance, 'f', -1, 64)
}
