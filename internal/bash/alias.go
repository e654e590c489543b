// Package bash suggests shell aliases for frequently typed command prefixes.
package bash

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"mvdan.cc/sh/v3/syntax"
)

// AliasNamer derives short alias names from command prefixes. Names never
// collide with known command names, shell keywords or earlier suggestions.
type AliasNamer struct {
	taken map[string]bool
}

// NewAliasNamer creates a namer that avoids every name in reserved.
func NewAliasNamer(reserved []string) *AliasNamer {
	taken := make(map[string]bool, len(reserved))
	for _, name := range reserved {
		taken[name] = true
	}
	return &AliasNamer{taken: taken}
}

// Name returns a fresh alias name for tokens built from the first letter or
// digit of each token. It returns false when no token has one.
func (n *AliasNamer) Name(tokens []string) (string, bool) {
	var b strings.Builder
	for _, tok := range tokens {
		for _, r := range tok {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteRune(unicode.ToLower(r))
				break
			}
		}
	}
	base := b.String()
	if base == "" {
		return "", false
	}
	if !syntax.ValidName(base) {
		base = "a" + base
	}

	name := base
	for i := 2; n.unavailable(name); i++ {
		name = base + strconv.Itoa(i)
	}
	n.taken[name] = true
	return name, true
}

func (n *AliasNamer) unavailable(name string) bool {
	return n.taken[name] || syntax.IsKeyword(name)
}

// AliasDefinition renders "alias name=value" with value quoted for bash.
// The result is parsed back to make sure it is a single alias command.
func AliasDefinition(name, value string) (string, error) {
	if !syntax.ValidName(name) {
		return "", fmt.Errorf("invalid alias name %q", name)
	}
	quoted, err := syntax.Quote(value, syntax.LangBash)
	if err != nil {
		return "", fmt.Errorf("failed to quote alias %s: %w", name, err)
	}

	def := "alias " + name + "=" + quoted
	if err := checkAlias(def); err != nil {
		return "", fmt.Errorf("invalid alias definition %q: %w", def, err)
	}
	return def, nil
}

func checkAlias(def string) error {
	file, err := syntax.NewParser(syntax.Variant(syntax.LangBash)).Parse(strings.NewReader(def), "")
	if err != nil {
		return err
	}
	if len(file.Stmts) != 1 {
		return fmt.Errorf("expected one statement, got %d", len(file.Stmts))
	}
	call, ok := file.Stmts[0].Cmd.(*syntax.CallExpr)
	if !ok || len(call.Args) != 2 {
		return fmt.Errorf("expected a simple alias command")
	}
	return nil
}
