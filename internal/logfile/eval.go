package logfile

import (
	"fmt"
	"regexp"
	"strings"

	"catalogkernel/internal/predicate"
)

// EvalPredicate evaluates pred against tuple in memory, for the variants
// backed by MemStore. This is execution, not the capability check
// (IsAbleToSearch / CapabilityProfile.CanSearch) — a driver must already
// have claimed it can search pred before this is called.
func EvalPredicate(tuple Tuple, pred *predicate.Predicate) bool {
	if pred == nil {
		return true
	}
	switch pred.Kind {
	case predicate.KindAnd:
		for _, o := range pred.Operands {
			if !EvalPredicate(tuple, o) {
				return false
			}
		}
		return true
	case predicate.KindOr:
		for _, o := range pred.Operands {
			if EvalPredicate(tuple, o) {
				return true
			}
		}
		return false
	case predicate.KindEquals:
		return compare(tuple[pred.Field], pred.Value) == 0
	case predicate.KindNotEquals:
		return compare(tuple[pred.Field], pred.Value) != 0
	case predicate.KindGreaterThan:
		return compare(tuple[pred.Field], pred.Value) > 0
	case predicate.KindGreaterThanEquals:
		return compare(tuple[pred.Field], pred.Value) >= 0
	case predicate.KindLessThan:
		return compare(tuple[pred.Field], pred.Value) < 0
	case predicate.KindLessThanEquals:
		return compare(tuple[pred.Field], pred.Value) <= 0
	case predicate.KindBetween:
		return compare(tuple[pred.Field], pred.Value) >= 0 && compare(tuple[pred.Field], pred.High) <= 0
	case predicate.KindNotNull:
		return tuple[pred.Field] != nil
	case predicate.KindEqualsToNull:
		return tuple[pred.Field] == nil
	case predicate.KindLike:
		pattern, _ := pred.Value.(string)
		s, _ := tuple[pred.Field].(string)
		return likeMatch(s, pattern)
	default:
		return false
	}
}

func compare(a, b any) int {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	as, bs := fmt.Sprintf("%v", a), fmt.Sprintf("%v", b)
	return strings.Compare(as, bs)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// likeMatch implements SQL LIKE's % and _ wildcards over s.
func likeMatch(s, pattern string) bool {
	var b strings.Builder
	b.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	matched, err := regexp.MatchString(b.String(), s)
	return err == nil && matched
}
