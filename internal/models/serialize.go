package models

import (
	"strings"
)

// ruleSet holds dotted field paths excluded from a serialized record.
// A rule is written "-field" or "-relation.field"; rules without the
// leading dash are ignored.
type ruleSet map[string]struct{}

func parseRules(groups ...[]string) ruleSet {
	rs := ruleSet{}
	for _, rules := range groups {
		for _, rule := range rules {
			rule = strings.TrimSpace(rule)
			if !strings.HasPrefix(rule, "-") || len(rule) == 1 {
				continue
			}
			rs[rule[1:]] = struct{}{}
		}
	}
	return rs
}

// excludes reports whether field is excluded at this level
func (rs ruleSet) excludes(field string) bool {
	_, ok := rs[field]
	return ok
}

// child returns the rules that apply inside the given relation
func (rs ruleSet) child(relation string) ruleSet {
	prefix := relation + "."
	out := ruleSet{}
	for path := range rs {
		if strings.HasPrefix(path, prefix) {
			out[strings.TrimPrefix(path, prefix)] = struct{}{}
		}
	}
	return out
}

// with returns a copy of rs extended by rules
func (rs ruleSet) with(rules []string) ruleSet {
	out := parseRules(rules)
	for path := range rs {
		out[path] = struct{}{}
	}
	return out
}

func (rs ruleSet) put(out map[string]interface{}, field string, value interface{}) {
	if rs.excludes(field) {
		return
	}
	out[field] = value
}
