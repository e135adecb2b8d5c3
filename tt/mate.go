package tt

// Package tt implements the fixed-capacity, 2-way associative
// transposition table: high-multiplication bucket indexing, depth/EXACT
// preferred replacement, and the mate-score ply adjustment applied at
// store and load time.

// MATE is the maximum score magnitude; scores are clamped to ±MATE.
const MATE = 100000

// mateThreshold is the smallest magnitude that counts as a mate score.
const mateThreshold = MATE - 1000

// ToTT converts a score computed at ply into the ply-absolute form stored
// in the table: a mate score's distance is measured from the storing node
// rather than from the root, so it stays meaningful no matter how deep in
// the tree the entry is later read back from.
func ToTT(score, ply int) int {
	if score >= mateThreshold {
		return score + ply
	}
	if score <= -mateThreshold {
		return score - ply
	}
	return score
}

// FromTT is ToTT's inverse: it converts a ply-absolute score read out of
// the table back into a score relative to ply, the current node's distance
// from the root.
func FromTT(score, ply int) int {
	if score >= mateThreshold {
		return score - ply
	}
	if score <= -mateThreshold {
		return score + ply
	}
	return score
}

// IsMateScore reports whether score's magnitude encodes distance-to-mate.
func IsMateScore(score int) bool {
	return score >= mateThreshold || score <= -mateThreshold
}
