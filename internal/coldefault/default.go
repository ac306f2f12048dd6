// Package coldefault implements Default: a column's default-value
// specification — a literal constant, a niladic function (CURRENT_TIMESTAMP
// or NEWID), an identity/generator sequence, or an array
// constructor for array-typed columns. Category and the
// UseOnUpdate/UseAlways flags are kept in separate fields of Default;
// this package does not combine them into one packed value and has no
// serialized form of Default.
//
// Validation of the closed variant set happens at construction time, the
// way a small enum-validation layer usually works.
package coldefault

import (
	"fmt"

	"catalogkernel/internal/kernelerr"
)

// Category is the default's kind discriminator.
type Category int

const (
	CategoryNone Category = iota
	CategoryConstant
	CategoryFunction
	CategoryIdentity
	CategoryConstantArray
)

// Function enumerates the niladic functions a Default may invoke.
// CURRENT_TIMESTAMP and NEWID (a fresh random UUID, valid only on a
// UniqueIdentifier column) are the only two currently supported;
// NotSupported is raised for anything else at parse time.
type Function int

const (
	FunctionNone Function = iota
	FunctionCurrentTimestamp
	FunctionNewID
)

// flag bits for UseOnUpdate/UseAlways, held in Default.flags.
type flag uint32

const (
	flagUseOnUpdate flag = 1 << iota
	flagUseAlways
)

// IdentitySpec describes an integer generator sequence. Start, MaxValue,
// and MinValue default to sentinel "unset" via the Has* booleans so
// resolveStart can apply the ascending/descending default rule.
type IdentitySpec struct {
	Start       int64
	HasStart    bool
	Increment   int64
	MaxValue    int64
	HasMaxValue bool
	MinValue    int64
	HasMinValue bool
	Cycle       bool
	GetMax      bool
}

// resolveStart applies "unset Start defaults to MinValue (ascending) or
// MaxValue (descending)".
func (s *IdentitySpec) resolveStart() int64 {
	if s.HasStart {
		return s.Start
	}
	if s.Increment < 0 {
		if s.HasMaxValue {
			return s.MaxValue
		}
		return 0
	}
	if s.HasMinValue {
		return s.MinValue
	}
	return 0
}

// validate enforces Increment != 0, MinValue < MaxValue, and
// MinValue <= Start <= MaxValue.
func (s *IdentitySpec) validate() error {
	if s.Increment == 0 {
		return kernelerr.New(kernelerr.KindSQLSyntaxError, kernelerr.ModuleCatalog, "identity increment must not be zero")
	}
	if s.HasMinValue && s.HasMaxValue && s.MinValue >= s.MaxValue {
		return kernelerr.New(kernelerr.KindSQLSyntaxError, kernelerr.ModuleCatalog, "identity MinValue (%d) must be less than MaxValue (%d)", s.MinValue, s.MaxValue)
	}
	start := s.resolveStart()
	if s.HasMinValue && start < s.MinValue {
		return kernelerr.New(kernelerr.KindSQLSyntaxError, kernelerr.ModuleCatalog, "identity start (%d) must be >= MinValue (%d)", start, s.MinValue)
	}
	if s.HasMaxValue && start > s.MaxValue {
		return kernelerr.New(kernelerr.KindSQLSyntaxError, kernelerr.ModuleCatalog, "identity start (%d) must be <= MaxValue (%d)", start, s.MaxValue)
	}
	return nil
}

// Default is the column default-value specification. Only the fields
// relevant to Category are populated; others stay zero-valued.
type Default struct {
	category Category
	flags    flag

	constant any // for CategoryConstant
	function Function
	identity IdentitySpec
	array    []any // for CategoryConstantArray
}

// NewConstant builds a literal default. The caller is responsible for the
// type-assign-compatibility check against the declared column type
// before calling this, at parse time; a failed check is reported as
// InvalidDefault by the caller, not by this constructor.
func NewConstant(value any) *Default {
	return &Default{category: CategoryConstant, constant: value}
}

// NewFunction builds a niladic-function default. USING ON UPDATE is
// recorded via useOnUpdate but never rejected: hard failures are
// reserved for genuinely malformed input, and this is treated as an
// info-level warning, not an error.
func NewFunction(fn Function, useOnUpdate bool) (*Default, error) {
	if fn != FunctionCurrentTimestamp && fn != FunctionNewID {
		return nil, kernelerr.New(kernelerr.KindNotSupported, kernelerr.ModuleCatalog, "unrecognized niladic default function")
	}
	d := &Default{category: CategoryFunction, function: fn}
	if useOnUpdate {
		d.flags |= flagUseOnUpdate
	}
	return d, nil
}

// NewIdentity builds an identity/generator default. useAlways corresponds
// to GENERATED ALWAYS (vs GENERATED BY DEFAULT).
func NewIdentity(spec IdentitySpec, useAlways bool) (*Default, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}
	d := &Default{category: CategoryIdentity, identity: spec}
	if useAlways {
		d.flags |= flagUseAlways
	}
	return d, nil
}

// NewConstantArray builds an array-constructor default, valid only for
// array-typed columns; the caller enforces that column-type check.
func NewConstantArray(values []any) *Default {
	cp := append([]any(nil), values...)
	return &Default{category: CategoryConstantArray, array: cp}
}

// Category reports the default's kind.
func (d *Default) Category() Category {
	if d == nil {
		return CategoryNone
	}
	return d.category
}

// IsIdentity reports whether d is an identity/generator default.
func (d *Default) IsIdentity() bool { return d.Category() == CategoryIdentity }

// IsUseAlways reports the GENERATED ALWAYS flag.
func (d *Default) IsUseAlways() bool { return d != nil && d.flags&flagUseAlways != 0 }

// IsUseOnUpdate reports the USING ON UPDATE flag.
func (d *Default) IsUseOnUpdate() bool { return d != nil && d.flags&flagUseOnUpdate != 0 }

// Constant returns the literal value and true, if d is a constant default.
func (d *Default) Constant() (any, bool) {
	if d == nil || d.category != CategoryConstant {
		return nil, false
	}
	return d.constant, true
}

// ConstantArray returns the array literal and true, if d is a
// constant-array default.
func (d *Default) ConstantArray() ([]any, bool) {
	if d == nil || d.category != CategoryConstantArray {
		return nil, false
	}
	return d.array, true
}

// FunctionID returns the niladic function and true, if d is a function
// default.
func (d *Default) FunctionID() (Function, bool) {
	if d == nil || d.category != CategoryFunction {
		return FunctionNone, false
	}
	return d.function, true
}

// GetIdentitySpec returns the identity spec and true, if d is an identity
// default. Start is resolved to a concrete value per the defaulting
// rule, so an identity declared without an explicit START always reports
// its resolved value; MinValue and MaxValue are returned as declared.
func (d *Default) GetIdentitySpec() (IdentitySpec, bool) {
	if d == nil || d.category != CategoryIdentity {
		return IdentitySpec{}, false
	}
	spec := d.identity
	spec.Start = spec.resolveStart()
	spec.HasStart = true
	return spec, true
}

// ToSQLStatement renders the default back to DDL fragment text, the
// inverse of Parse: Parse(d.ToSQLStatement()) round-trips constant,
// function and identity defaults. Parse rejects the text rendered for a
// constant-array default.
func (d *Default) ToSQLStatement() string {
	if d == nil {
		return ""
	}
	switch d.category {
	case CategoryConstant:
		return fmt.Sprintf("default %v", d.constant)
	case CategoryFunction:
		if d.function == FunctionNewID {
			return "default newid()"
		}
		s := "default current_timestamp"
		if d.flags&flagUseOnUpdate != 0 {
			s += " using on update current_timestamp"
		}
		return s
	case CategoryIdentity:
		spec := d.identity
		keyword := "generated by default as identity"
		if d.flags&flagUseAlways != 0 {
			keyword = "generated always as identity"
		}
		s := fmt.Sprintf("%s (start with %d increment by %d", keyword, spec.resolveStart(), spec.Increment)
		if spec.HasMinValue {
			s += fmt.Sprintf(" minvalue %d", spec.MinValue)
		}
		if spec.HasMaxValue {
			s += fmt.Sprintf(" maxvalue %d", spec.MaxValue)
		}
		if spec.Cycle {
			s += " cycle"
		}
		if spec.GetMax {
			s += " get max"
		}
		return s + ")"
	case CategoryConstantArray:
		return fmt.Sprintf("default %v", d.array)
	default:
		return ""
	}
}
