package predicate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	p := And(Equals("id", 5), Like("name", "%a%"))
	assert.Equal(t, KindAnd, p.Kind)
	assert.Len(t, p.Operands, 2)
	assert.Equal(t, KindEquals, p.Operands[0].Kind)
	assert.Equal(t, "id", p.Operands[0].Field)
	assert.Equal(t, 5, p.Operands[0].Value)
}

func TestBetween(t *testing.T) {
	p := Between("price", 10, 20)
	assert.Equal(t, KindBetween, p.Kind)
	assert.Equal(t, 10, p.Value)
	assert.Equal(t, 20, p.High)
}

func TestNeighborIn(t *testing.T) {
	p := NeighborIn("vec", []float64{1, 0, 0}, 5)
	assert.Equal(t, KindNeighborIn, p.Kind)
	assert.Equal(t, 5, p.K)
	assert.Equal(t, []float64{1, 0, 0}, p.Vector)
}

func TestFieldsCollectsAcrossTree(t *testing.T) {
	p := And(Equals("id", 5), Or(Like("name", "%a%"), NotNull("email")))
	assert.ElementsMatch(t, []string{"id", "name", "email"}, p.Fields())
}

func TestVisitDispatchesByKind(t *testing.T) {
	describe := func(p *Predicate) string {
		return Visit(p, Visitor[string]{
			And:  func(ops []*Predicate) string { return "and" },
			Or:   func(ops []*Predicate) string { return "or" },
			Like: func(field string, pattern any) string { return "like:" + field },
			Comparison: func(kind Kind, field string, value any) string {
				return kind.String() + ":" + field
			},
			Between:      func(field string, low, high any) string { return "between:" + field },
			NotNull:      func(field string) string { return "notnull:" + field },
			EqualsToNull: func(field string) string { return "isnull:" + field },
			NeighborIn:   func(field string, vector []float64, k int) string { return "neighbor:" + field },
		})
	}

	assert.Equal(t, "and", describe(And()))
	assert.Equal(t, "Equals:id", describe(Equals("id", 1)))
	assert.Equal(t, "neighbor:vec", describe(NeighborIn("vec", []float64{1}, 3)))
}
