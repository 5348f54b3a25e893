package validation

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/andyballingall/schemaform/internal/keywords"
)

// printer renders messages for kinds without an entry in describe.
var printer = message.NewPrinter(language.English)

// describe returns a short display message and the diagnostic params for k.
//
//nolint:gocyclo,funlen // one case per error kind
func describe(k jsonschema.ErrorKind) (string, map[string]any) {
	switch k := k.(type) {
	case *kind.Type:
		want := strings.Join(k.Want, ",")
		return "must be " + want, map[string]any{"type": want}
	case *kind.Format:
		return fmt.Sprintf("must match format %q", k.Want), map[string]any{"format": k.Want}
	case *kind.Enum:
		return "must be equal to one of the allowed values", map[string]any{"allowedValues": k.Want}
	case *kind.Const:
		return "must be equal to constant", map[string]any{"allowedValue": k.Want}
	case *kind.MinLength:
		return fmt.Sprintf("must NOT have fewer than %d characters", k.Want), map[string]any{"limit": k.Want}
	case *kind.MaxLength:
		return fmt.Sprintf("must NOT have more than %d characters", k.Want), map[string]any{"limit": k.Want}
	case *kind.Pattern:
		return fmt.Sprintf("must match pattern %q", k.Want), map[string]any{"pattern": k.Want}
	case *kind.Minimum:
		return comparison(">=", k.Want)
	case *kind.Maximum:
		return comparison("<=", k.Want)
	case *kind.ExclusiveMinimum:
		return comparison(">", k.Want)
	case *kind.ExclusiveMaximum:
		return comparison("<", k.Want)
	case *kind.MultipleOf:
		n := ratString(k.Want)
		return "must be multiple of " + n, map[string]any{"multipleOf": json.Number(n)}
	case *kind.MinItems:
		return fmt.Sprintf("must NOT have fewer than %d items", k.Want), map[string]any{"limit": k.Want}
	case *kind.MaxItems:
		return fmt.Sprintf("must NOT have more than %d items", k.Want), map[string]any{"limit": k.Want}
	case *kind.AdditionalItems:
		return "must NOT have additional items", map[string]any{"count": k.Count}
	case *kind.UniqueItems:
		i, j := k.Duplicates[0], k.Duplicates[1]
		return fmt.Sprintf("must NOT have duplicate items (items ## %d and %d are identical)", j, i),
			map[string]any{"i": j, "j": i}
	case *kind.Contains:
		return "must contain at least 1 valid item(s)", map[string]any{"minContains": 1}
	case *kind.MinContains:
		return fmt.Sprintf("must contain at least %d valid item(s)", k.Want), map[string]any{"minContains": k.Want}
	case *kind.MaxContains:
		return fmt.Sprintf("must contain at most %d valid item(s)", k.Want), map[string]any{"maxContains": k.Want}
	case *kind.MinProperties:
		return fmt.Sprintf("must NOT have fewer than %d properties", k.Want), map[string]any{"limit": k.Want}
	case *kind.MaxProperties:
		return fmt.Sprintf("must NOT have more than %d properties", k.Want), map[string]any{"limit": k.Want}
	case *kind.Required:
		return requiredProperty(k.Missing[0])
	case *keywords.RequiredProperty:
		return requiredProperty(k.Missing)
	case *kind.Dependency:
		return dependency(k.Prop, k.Missing)
	case *kind.DependentRequired:
		return dependency(k.Prop, k.Missing)
	case *kind.AdditionalProperties:
		return "must NOT have additional properties", map[string]any{"additionalProperty": k.Properties[0]}
	case *kind.PropertyNames:
		return "property name must be valid", map[string]any{"propertyName": k.Property}
	case *kind.AnyOf:
		return "must match a schema in anyOf", map[string]any{}
	case *kind.OneOf:
		var passing any
		if len(k.Subschemas) > 0 {
			passing = k.Subschemas
		}
		return "must match exactly one schema in oneOf", map[string]any{"passingSchemas": passing}
	case *kind.Not:
		return "must NOT be valid", map[string]any{}
	case *kind.FalseSchema:
		return "boolean schema is false", map[string]any{}
	case *keywords.NotNull, *keywords.NotEmpty:
		return k.LocalizedString(printer), map[string]any{}
	case *keywords.PrecisionExceeded:
		return k.LocalizedString(printer), map[string]any{"precision": k.Want, "decimals": k.Got}
	case *keywords.InvalidPrecision:
		return k.LocalizedString(printer), map[string]any{"precision": k.Value}
	default:
		return k.LocalizedString(printer), map[string]any{}
	}
}

func requiredProperty(name string) (string, map[string]any) {
	return fmt.Sprintf("must have required property '%s'", name), map[string]any{"missingProperty": name}
}

func dependency(prop string, missing []string) (string, map[string]any) {
	deps := strings.Join(missing, ", ")
	return fmt.Sprintf("must have property %s when property %s is present", deps, prop),
		map[string]any{"property": prop, "missingProperty": deps, "depsCount": len(missing), "deps": deps}
}

func comparison(op string, limit *big.Rat) (string, map[string]any) {
	n := ratString(limit)
	return fmt.Sprintf("must be %s %s", op, n), map[string]any{"comparison": op, "limit": json.Number(n)}
}

// ratString renders r the way a JSON number would be written.
func ratString(r *big.Rat) string {
	if r == nil {
		return "0"
	}
	if r.IsInt() {
		return r.Num().String()
	}
	f, _ := r.Float64()
	return strconv.FormatFloat(f, 'f', -1, 64)
}
