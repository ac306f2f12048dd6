package coldefault

import (
	"regexp"
	"strconv"
	"strings"

	"catalogkernel/internal/kernelerr"
)

var identityPattern = regexp.MustCompile(`(?i)^generated (always|by default) as identity \(start with (-?\d+) increment by (-?\d+)(?: minvalue (-?\d+))?(?: maxvalue (-?\d+))?( cycle)?( get max)?\)$`)

// Parse reconstructs a Default from the text ToSQLStatement produces, so
// constants, functions, and identity specs within representable ranges
// round-trip through ToSQLStatement/Parse. It only understands the
// fragment shapes ToSQLStatement itself emits; it is not a general SQL
// expression parser.
func Parse(text string) (*Default, error) {
	text = strings.TrimSpace(text)
	lower := strings.ToLower(text)

	switch {
	case strings.HasPrefix(lower, "default current_timestamp"):
		useOnUpdate := strings.Contains(lower, "using on update")
		return NewFunction(FunctionCurrentTimestamp, useOnUpdate)

	case lower == "default newid()" || lower == "default uuid()":
		return NewFunction(FunctionNewID, false)

	case strings.HasPrefix(lower, "generated"):
		m := identityPattern.FindStringSubmatch(text)
		if m == nil {
			return nil, kernelerr.New(kernelerr.KindSQLSyntaxError, kernelerr.ModuleCatalog, "malformed identity default %q", text)
		}
		useAlways := strings.EqualFold(m[1], "always")
		start, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			return nil, kernelerr.New(kernelerr.KindNumericValueOutOfRange, kernelerr.ModuleCatalog, "identity start out of range: %v", err)
		}
		increment, err := strconv.ParseInt(m[3], 10, 64)
		if err != nil {
			return nil, kernelerr.New(kernelerr.KindNumericValueOutOfRange, kernelerr.ModuleCatalog, "identity increment out of range: %v", err)
		}
		spec := IdentitySpec{Start: start, HasStart: true, Increment: increment, Cycle: m[6] != "", GetMax: m[7] != ""}
		if m[4] != "" {
			v, err := strconv.ParseInt(m[4], 10, 64)
			if err != nil {
				return nil, kernelerr.New(kernelerr.KindNumericValueOutOfRange, kernelerr.ModuleCatalog, "identity minvalue out of range: %v", err)
			}
			spec.MinValue, spec.HasMinValue = v, true
		}
		if m[5] != "" {
			v, err := strconv.ParseInt(m[5], 10, 64)
			if err != nil {
				return nil, kernelerr.New(kernelerr.KindNumericValueOutOfRange, kernelerr.ModuleCatalog, "identity maxvalue out of range: %v", err)
			}
			spec.MaxValue, spec.HasMaxValue = v, true
		}
		return NewIdentity(spec, useAlways)

	case strings.HasPrefix(lower, "default "):
		literal := strings.TrimSpace(text[len("default "):])
		if strings.HasPrefix(literal, "[") {
			return nil, kernelerr.New(kernelerr.KindNotSupported, kernelerr.ModuleCatalog, "array-constant default parsing requires column element type context")
		}
		if n, err := strconv.ParseInt(literal, 10, 64); err == nil {
			return NewConstant(n), nil
		}
		if f, err := strconv.ParseFloat(literal, 64); err == nil {
			return NewConstant(f), nil
		}
		return NewConstant(strings.Trim(literal, "'\"")), nil

	default:
		return nil, kernelerr.New(kernelerr.KindSQLSyntaxError, kernelerr.ModuleCatalog, "unrecognized default clause %q", text)
	}
}
