// Package validate provides struct-tag validation for Vendix request input.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required            field must not be zero/empty
//	nullable            if empty, skip all remaining rules for this field
//	numeric             any number
//	min=N               string: min char length | number: min value
//	max=N               string: max char length | number: max value
//	gt=N                number > N
//	gte=N               number >= N
//	lt=N                number < N
//	lte=N               number <= N
//	in=a,b,c            value must be one of the listed items
//	regex=pattern       value must match the regex (avoid commas in pattern)
//
// Example:
//
//	type Input struct {
//	    Name     string  `json:"name"     validate:"required,min=1,max=120"`
//	    PriceUSD float64 `json:"priceUsd" validate:"required,gt=0"`
//	    Stock    int     `json:"stock"    validate:"gte=0"`
//	    Currency string  `json:"currency" validate:"required,in=USD,HTG"`
//	    Color    string  `json:"color"    validate:"nullable,regex=^#[0-9a-fA-F]{6}$"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// ─── Public API ───────────────────────────────────────────────────────────────

// Struct validates all exported fields of v that carry a `validate` tag.
// Returns a map of fieldName → error message; empty map means no errors.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		value := rv.Field(i)

		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}

		name := jsonFieldName(field)
		rules := splitRules(tag)

		// If `nullable` is present and field is empty — skip all rules.
		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			if rule == "nullable" {
				continue
			}
			if msg := applyRule(rule, name, value); msg != "" {
				errs[name] = msg
				break // first failing rule per field
			}
		}
	}

	return errs
}

// HasErrors returns true when the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

// ─── Core dispatcher ──────────────────────────────────────────────────────────

func applyRule(rule, field string, v reflect.Value) string {
	raw := fmt.Sprintf("%v", v.Interface())
	key, param, _ := strings.Cut(rule, "=")

	switch key {
	case "required":
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}

	case "numeric":
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return fmt.Sprintf("The %s field must be a number.", field)
		}

	case "min":
		limit, _ := strconv.ParseFloat(param, 64)
		if isNumber(v) {
			if num(v) < limit {
				return fmt.Sprintf("The %s field must be at least %s.", field, param)
			}
		} else if float64(len([]rune(raw))) < limit {
			return fmt.Sprintf("The %s field must be at least %s characters.", field, param)
		}

	case "max":
		limit, _ := strconv.ParseFloat(param, 64)
		if isNumber(v) {
			if num(v) > limit {
				return fmt.Sprintf("The %s field must not exceed %s.", field, param)
			}
		} else if float64(len([]rune(raw))) > limit {
			return fmt.Sprintf("The %s field must not exceed %s characters.", field, param)
		}

	case "gt":
		limit, _ := strconv.ParseFloat(param, 64)
		if !isNumber(v) || num(v) <= limit {
			return fmt.Sprintf("The %s field must be greater than %s.", field, param)
		}

	case "gte":
		limit, _ := strconv.ParseFloat(param, 64)
		if !isNumber(v) || num(v) < limit {
			return fmt.Sprintf("The %s field must be at least %s.", field, param)
		}

	case "lt":
		limit, _ := strconv.ParseFloat(param, 64)
		if !isNumber(v) || num(v) >= limit {
			return fmt.Sprintf("The %s field must be less than %s.", field, param)
		}

	case "lte":
		limit, _ := strconv.ParseFloat(param, 64)
		if !isNumber(v) || num(v) > limit {
			return fmt.Sprintf("The %s field must not exceed %s.", field, param)
		}

	case "in":
		options := strings.Split(param, ",")
		for _, opt := range options {
			if raw == opt {
				return ""
			}
		}
		return fmt.Sprintf("The %s field must be one of: %s.", field, strings.Join(options, ", "))

	case "regex":
		re, err := regexp.Compile(param)
		if err != nil || !re.MatchString(raw) {
			return fmt.Sprintf("The %s field format is invalid.", field)
		}
	}

	return ""
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

// splitRules splits the tag on commas, but keeps `in=` and `regex=`
// parameter lists intact by re-joining trailing fragments.
func splitRules(tag string) []string {
	parts := strings.Split(tag, ",")
	var rules []string
	for _, p := range parts {
		if len(rules) > 0 {
			last := rules[len(rules)-1]
			if strings.HasPrefix(last, "in=") || strings.HasPrefix(last, "regex=") {
				if !isKnownRule(p) {
					rules[len(rules)-1] = last + "," + p
					continue
				}
			}
		}
		rules = append(rules, p)
	}
	return rules
}

var knownRules = map[string]bool{
	"required": true, "nullable": true, "numeric": true,
	"min": true, "max": true, "gt": true, "gte": true,
	"lt": true, "lte": true, "in": true, "regex": true,
}

func isKnownRule(rule string) bool {
	key, _, _ := strings.Cut(rule, "=")
	return knownRules[key]
}

func hasRule(rules []string, name string) bool {
	for _, r := range rules {
		if r == name {
			return true
		}
	}
	return false
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.Len() == 0
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	}
	return v.IsZero()
}

func isNumber(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func num(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	}
	return 0
}

// jsonFieldName returns the json tag name of the field, falling back to
// the Go field name.
func jsonFieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return f.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return f.Name
	}
	return name
}
