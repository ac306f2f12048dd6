// Package predicate implements the closed predicate taxonomy the planner
// pushes down to isAbleToSearch: And, Or, Like, Equals, NotEquals,
// GreaterThan(Equals), LessThan(Equals), Between, NotNull, EqualsToNull,
// NeighborIn. It is deliberately a tagged union rather than a class
// hierarchy: a closed set of tagged variants per layer, walked with a
// visitor, replacing what would otherwise be deep single inheritance —
// for everything except the capability interface itself.
//
// Expressed as a closed Go enum with a String method instead of a class
// hierarchy, the way a small node-kind taxonomy is usually built.
package predicate

import "fmt"

// Kind discriminates a Predicate's variant. Every Kind below has a
// documented field subset it populates on Predicate; fields outside that
// subset are zero.
type Kind int

const (
	KindAnd Kind = iota
	KindOr
	KindLike
	KindEquals
	KindNotEquals
	KindGreaterThan
	KindGreaterThanEquals
	KindLessThan
	KindLessThanEquals
	KindBetween
	KindNotNull
	KindEqualsToNull
	KindNeighborIn
)

func (k Kind) String() string {
	switch k {
	case KindAnd:
		return "And"
	case KindOr:
		return "Or"
	case KindLike:
		return "Like"
	case KindEquals:
		return "Equals"
	case KindNotEquals:
		return "NotEquals"
	case KindGreaterThan:
		return "GreaterThan"
	case KindGreaterThanEquals:
		return "GreaterThanEquals"
	case KindLessThan:
		return "LessThan"
	case KindLessThanEquals:
		return "LessThanEquals"
	case KindBetween:
		return "Between"
	case KindNotNull:
		return "NotNull"
	case KindEqualsToNull:
		return "EqualsToNull"
	case KindNeighborIn:
		return "NeighborIn"
	default:
		return fmt.Sprintf("Predicate(%d)", int(k))
	}
}

// Predicate is the tagged union. And/Or use Operands; the comparison
// kinds use Field/Value (Between also uses High); NeighborIn uses
// Field/Vector/K.
type Predicate struct {
	Kind Kind

	Operands []*Predicate // And, Or

	Field string // comparison kinds, NeighborIn
	Value any    // Equals, NotEquals, GreaterThan(Equals), LessThan(Equals), Like, Between (low)
	High  any    // Between (high)

	Vector []float64 // NeighborIn
	K      int       // NeighborIn: how many neighbors
}

// And builds a conjunction node.
func And(operands ...*Predicate) *Predicate { return &Predicate{Kind: KindAnd, Operands: operands} }

// Or builds a disjunction node.
func Or(operands ...*Predicate) *Predicate { return &Predicate{Kind: KindOr, Operands: operands} }

// Like builds a pattern-match node.
func Like(field string, pattern string) *Predicate {
	return &Predicate{Kind: KindLike, Field: field, Value: pattern}
}

// Equals builds an equality node.
func Equals(field string, value any) *Predicate {
	return &Predicate{Kind: KindEquals, Field: field, Value: value}
}

// NotEquals builds an inequality node.
func NotEquals(field string, value any) *Predicate {
	return &Predicate{Kind: KindNotEquals, Field: field, Value: value}
}

// GreaterThan builds a strict lower-bound node.
func GreaterThan(field string, value any) *Predicate {
	return &Predicate{Kind: KindGreaterThan, Field: field, Value: value}
}

// GreaterThanEquals builds an inclusive lower-bound node.
func GreaterThanEquals(field string, value any) *Predicate {
	return &Predicate{Kind: KindGreaterThanEquals, Field: field, Value: value}
}

// LessThan builds a strict upper-bound node.
func LessThan(field string, value any) *Predicate {
	return &Predicate{Kind: KindLessThan, Field: field, Value: value}
}

// LessThanEquals builds an inclusive upper-bound node.
func LessThanEquals(field string, value any) *Predicate {
	return &Predicate{Kind: KindLessThanEquals, Field: field, Value: value}
}

// Between builds a closed-range node.
func Between(field string, low, high any) *Predicate {
	return &Predicate{Kind: KindBetween, Field: field, Value: low, High: high}
}

// NotNull builds a non-null test node.
func NotNull(field string) *Predicate { return &Predicate{Kind: KindNotNull, Field: field} }

// EqualsToNull builds a null-equality test node (distinct from NotEquals
// to a literal NULL, which SQL treats as unknown rather than false).
func EqualsToNull(field string) *Predicate { return &Predicate{Kind: KindEqualsToNull, Field: field} }

// NeighborIn builds a k-nearest-neighbor predicate.
func NeighborIn(field string, vector []float64, k int) *Predicate {
	cp := append([]float64(nil), vector...)
	return &Predicate{Kind: KindNeighborIn, Field: field, Vector: cp, K: k}
}

// Visitor dispatches on Kind for callers that want a case analysis
// instead of a type switch over Kind, a visitor that walks the variant
// tree one case at a time.
type Visitor[T any] struct {
	And           func(operands []*Predicate) T
	Or            func(operands []*Predicate) T
	Like          func(field string, pattern any) T
	Comparison    func(kind Kind, field string, value any) T
	Between       func(field string, low, high any) T
	NotNull       func(field string) T
	EqualsToNull  func(field string) T
	NeighborIn    func(field string, vector []float64, k int) T
}

// Visit applies the matching visitor function to p.
func Visit[T any](p *Predicate, v Visitor[T]) T {
	switch p.Kind {
	case KindAnd:
		return v.And(p.Operands)
	case KindOr:
		return v.Or(p.Operands)
	case KindLike:
		return v.Like(p.Field, p.Value)
	case KindEquals, KindNotEquals, KindGreaterThan, KindGreaterThanEquals, KindLessThan, KindLessThanEquals:
		return v.Comparison(p.Kind, p.Field, p.Value)
	case KindBetween:
		return v.Between(p.Field, p.Value, p.High)
	case KindNotNull:
		return v.NotNull(p.Field)
	case KindEqualsToNull:
		return v.EqualsToNull(p.Field)
	case KindNeighborIn:
		return v.NeighborIn(p.Field, p.Vector, p.K)
	default:
		var zero T
		return zero
	}
}

// Fields returns every field name referenced anywhere in the predicate
// tree, for capability checks that need to know which columns a pushdown
// touches.
func (p *Predicate) Fields() []string {
	if p == nil {
		return nil
	}
	var out []string
	var walk func(*Predicate)
	walk = func(n *Predicate) {
		if n == nil {
			return
		}
		if n.Field != "" {
			out = append(out, n.Field)
		}
		for _, o := range n.Operands {
			walk(o)
		}
	}
	walk(p)
	return out
}
