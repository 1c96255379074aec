package matcher

import "math"

// ScoreMin is the score of a non-matching (query, item) pair.
var ScoreMin = float32(math.Inf(-1))

const (
	// gapPenalty is applied per item byte skipped after the first match,
	// including the bytes after the last match.
	gapPenalty float32 = -0.01
	// consecutivePenalty is applied on the branch where a match directly
	// follows the previous one. With nonnegative bonuses that branch never
	// beats the bonus branch, so it does not change a score; contiguous runs
	// win because they skip no bytes and pay no gapPenalty.
	consecutivePenalty float32 = -0.005

	// bonusPathStart applies at the start of the item or after '/'.
	bonusPathStart float32 = 0.9
	// bonusWordStart applies after '-', '_', ' ', '.' or a digit.
	bonusWordStart float32 = 0.8
	// bonusCamel applies to a lowercase byte following an uppercase one.
	bonusCamel float32 = 0.7

	// shortItemLen is the item length up to which the stack-allocated
	// kernel is used. Must match the fixed array sizes in score_short.go.
	shortItemLen = 64
)

func fold(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// bonusAt returns the positional bonus for matching item[j]. Bonuses are
// computed on the original bytes; folding applies to comparison only.
func bonusAt(item []byte, j int) float32 {
	if j == 0 {
		return bonusPathStart
	}
	prev := item[j-1]
	switch {
	case prev == '/':
		return bonusPathStart
	case prev == '-' || prev == '_' || prev == ' ' || prev == '.' || isDigit(prev):
		return bonusWordStart
	case isLower(item[j]) && isUpper(prev):
		return bonusCamel
	}
	return 0
}

// Scorer scores items against queries. It carries reusable DP rows so that
// steady-state scoring does not allocate; each worker owns one Scorer.
// The zero value is ready to use. A Scorer is not safe for concurrent use.
type Scorer struct {
	bonus []float32
	rowD  []float32
	rowM  []float32
	prevD []float32
	prevM []float32
}

// Score returns the match score of query against item, or ScoreMin if the
// query does not match. The kernel is selected by input length; all kernels
// produce identical bits for inputs they share.
func (sc *Scorer) Score(query, item []byte) float32 {
	switch {
	case len(query) == 0:
		return 0
	case len(query) > len(item):
		return ScoreMin
	case len(query) == 1:
		return scoreSingle(query[0], item)
	case len(item) <= shortItemLen:
		return scoreShort(query, item)
	default:
		return sc.scoreGeneral(query, item)
	}
}

// Score is a convenience wrapper around a throwaway Scorer.
func Score(query, item []byte) float32 {
	var sc Scorer
	return sc.Score(query, item)
}

// scoreSingle handles one-byte queries: the score is the bonus of the best
// matching position, earliest position winning ties.
func scoreSingle(qc byte, item []byte) float32 {
	qf := fold(qc)
	best := ScoreMin
	for j := 0; j < len(item); j++ {
		if fold(item[j]) != qf {
			continue
		}
		if b := bonusAt(item, j); b > best {
			best = b
		}
	}
	return best
}

func (sc *Scorer) ensure(n int) {
	if cap(sc.bonus) < n {
		sc.bonus = make([]float32, n)
		sc.rowD = make([]float32, n)
		sc.rowM = make([]float32, n)
		sc.prevD = make([]float32, n)
		sc.prevM = make([]float32, n)
	}
}

// scoreGeneral runs the two-row dynamic program.
//
// D[i][j] is the best score matching query[:i+1] with the last match at
// item[j]; M[i][j] is the best score matching query[:i+1] ending anywhere
// at or before item[j]:
//
//	D[i][j] = match ? max(M[i-1][j-1] + bonus(j), D[i-1][j-1] + consecutivePenalty) : ScoreMin
//	M[i][j] = max(D[i][j], M[i][j-1] + gapPenalty)
//
// The final score is M[len(query)-1][len(item)-1]. Negative infinity
// propagates through the float arithmetic, so missing cells need no guards.
func (sc *Scorer) scoreGeneral(query, item []byte) float32 {
	n := len(item)
	sc.ensure(n)

	bonus := sc.bonus[:n]
	for j := 0; j < n; j++ {
		bonus[j] = bonusAt(item, j)
	}

	curD, curM := sc.rowD[:n], sc.rowM[:n]
	prevD, prevM := sc.prevD[:n], sc.prevM[:n]

	for i := 0; i < len(query); i++ {
		qc := fold(query[i])
		mLeft := ScoreMin
		for j := 0; j < n; j++ {
			d := ScoreMin
			if qc == fold(item[j]) {
				if i == 0 {
					d = bonus[j]
				} else if j > 0 {
					up := prevM[j-1] + bonus[j]
					cons := prevD[j-1] + consecutivePenalty
					if cons > up {
						up = cons
					}
					d = up
				}
			}
			m := d
			if g := mLeft + gapPenalty; g > m {
				m = g
			}
			curD[j], curM[j] = d, m
			mLeft = m
		}
		prevD, curD = curD, prevD
		prevM, curM = curM, prevM
	}
	return prevM[n-1]
}
