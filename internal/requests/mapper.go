package requests

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/CivicLink/Civic311-Backend/internal/catalog"
)

// FormField is one raw submitted key/value pair, kept in body order.
type FormField struct {
	Key   string
	Value string
}

// ParseFormBody splits a URL-encoded form body into fields while
// preserving encounter order; url.ParseQuery would collapse the body into
// an unordered map, and the attributes blob is a pass-through of what the
// client sent, not a canonicalization.
func ParseFormBody(body string) ([]FormField, error) {
	var fields []FormField
	for _, segment := range strings.Split(body, "&") {
		if segment == "" {
			continue
		}
		key, value, _ := strings.Cut(segment, "=")
		k, err := url.QueryUnescape(key)
		if err != nil {
			return nil, fmt.Errorf("malformed form key %q: %w", key, err)
		}
		v, err := url.QueryUnescape(value)
		if err != nil {
			return nil, fmt.Errorf("malformed form value for %q: %w", k, err)
		}
		fields = append(fields, FormField{Key: k, Value: v})
	}
	return fields, nil
}

// FieldValue returns the first value submitted under key, or "".
func FieldValue(fields []FormField, key string) string {
	for _, f := range fields {
		if f.Key == key {
			return f.Value
		}
	}
	return ""
}

var attributeKeyPattern = regexp.MustCompile(`^attribute\[(.+)\]$`)

// MapAttributes turns the raw submitted fields into schema-bound attribute
// selections, in the order the fields were encountered.
//
//   - keys not shaped like attribute[<code>], and blank values, are skipped
//   - a non-integer <code> fails the whole submission
//   - codes absent from the schema are silently ignored so stale clients
//     with an outdated form cannot break submission
//   - any value that fails its datatype check aborts the entire mapping;
//     a partial selection list is never returned
func MapAttributes(fields []FormField, schema []catalog.ServiceAttribute) ([]AttributeSelection, error) {
	byCode := make(map[int]*catalog.ServiceAttribute, len(schema))
	for i := range schema {
		byCode[schema[i].Code] = &schema[i]
	}

	var selections []AttributeSelection
	for _, f := range fields {
		m := attributeKeyPattern.FindStringSubmatch(f.Key)
		if m == nil {
			continue
		}

		raw := strings.TrimSpace(f.Value)
		if raw == "" {
			continue // blank means "not provided"
		}

		code, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, invalidf("attribute code should be an integer, got %q", m[1])
		}

		attr, ok := byCode[code]
		if !ok {
			continue
		}

		values, err := selectedValues(attr, raw)
		if err != nil {
			return nil, err
		}

		selections = append(selections, AttributeSelection{
			Code:                attr.Code,
			Variable:            attr.Variable,
			Datatype:            attr.Datatype,
			Required:            attr.Required,
			Description:         attr.Description,
			Order:               attr.Order,
			DatatypeDescription: attr.DatatypeDescription,
			Values:              values,
		})
	}
	return selections, nil
}

// selectedValues type-checks the raw value against the attribute's
// datatype and produces the keyed values to store.
func selectedValues(attr *catalog.ServiceAttribute, raw string) ([]KeyedValue, error) {
	switch attr.Datatype {
	case catalog.DatatypeNumber:
		if _, err := strconv.Atoi(raw); err != nil {
			return nil, fmt.Errorf("attribute %d expects an integer value, got %q", attr.Code, raw)
		}
	case catalog.DatatypeDatetime:
		if _, err := time.Parse(time.RFC3339, raw); err != nil {
			return nil, fmt.Errorf("attribute %d expects an ISO-8601 datetime, got %q", attr.Code, raw)
		}
	}

	if attr.Datatype.IsList() {
		tokens := []string{raw}
		if attr.Datatype == catalog.DatatypeMultiValueList && strings.Contains(raw, ",") {
			tokens = strings.Split(raw, ",")
		}

		names := make(map[string]string, len(attr.Values))
		for _, v := range attr.Values {
			names[v.ID] = v.Name
		}

		values := make([]KeyedValue, 0, len(tokens))
		for _, tok := range tokens {
			name, ok := names[tok]
			if !ok {
				// Tolerate ids missing from the live catalog the same way
				// unknown codes are tolerated; the raw token stays readable.
				name = tok
			}
			values = append(values, KeyedValue{Key: tok, Name: name})
		}
		return values, nil
	}

	// Scalar datatypes keep the uniform selection shape: the schema code is
	// the key, the raw string the display value.
	return []KeyedValue{{Key: strconv.Itoa(attr.Code), Name: raw}}, nil
}
