package reward

import "strings"

// Applies evaluates the rule's conditions against a subject snapshot.
//
// Empty conditions match unconditionally, and the blacklist flag is not
// consulted in that case: a blacklist of nothing still means "always",
// matching the behavior existing rule files depend on.
func (r Rule) Applies(subject Snapshot) bool {
	if len(r.Clauses) == 0 {
		return true
	}
	match := false
	for _, cl := range r.Clauses {
		if cl.matches(subject) {
			match = true
			break
		}
	}
	if r.Blacklist {
		return !match
	}
	return match
}

// matches reports whether every predicate in the clause holds.
func (cl Clause) matches(subject Snapshot) bool {
	if len(cl.All) == 0 {
		return false
	}
	for _, pred := range cl.All {
		if !checkPredicate(pred, subject.Props) {
			return false
		}
	}
	return true
}

// checkPredicate evaluates one predicate string.
//
// "key:value" or "key=value" with a known key is a case-insensitive
// substring match against that attribute, so "type:ghost" matches
// type="ghost,flying". Anything else — no separator, or a key the
// snapshot does not carry — is a raw species tag compared for exact
// case-insensitive equality, so "cobblemon:pikachu" matches only a
// subject whose species is exactly that.
func checkPredicate(pred string, props map[string]string) bool {
	if sep := strings.IndexAny(pred, ":="); sep != -1 {
		key := strings.ToLower(strings.TrimSpace(pred[:sep]))
		value := strings.TrimSpace(pred[sep+1:])
		if pv, ok := props[key]; ok {
			return containsFold(pv, value)
		}
	}
	return strings.EqualFold(props["species"], pred)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
