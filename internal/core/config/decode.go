package config

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cast"

	"github.com/kubeaccel/dockforge/internal/core/domain"
)

// splitList splits a cell on the given separators, trimming whitespace and
// dropping empty tokens.
func splitList(cell string, seps ...string) []string {
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	for _, s := range seps[1:] {
		cell = strings.ReplaceAll(cell, s, seps[0])
	}
	var out []string
	for _, tok := range strings.Split(cell, seps[0]) {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// parsePairs decodes a ";"-joined list of k=v tokens, preserving token order.
// Tokens without "=" are dropped; keys and values are trimmed.
func parsePairs(cell string) domain.Pairs {
	var pairs domain.Pairs
	for _, tok := range splitList(cell, ";") {
		k, v, ok := strings.Cut(tok, "=")
		if !ok {
			continue
		}
		pairs = pairs.Append(strings.TrimSpace(k), strings.TrimSpace(v))
	}
	return pairs
}

// parsePorts decodes a comma- or semicolon-separated port list. Tokens are
// coerced float-then-int so spreadsheet formatting like "8080.0" still parses;
// tokens that are not numeric are dropped.
func parsePorts(cell string) []int {
	var ports []int
	for _, tok := range splitList(cell, ";", ",") {
		f, err := cast.ToFloat64E(tok)
		if err != nil {
			continue
		}
		ports = append(ports, int(f))
	}
	return ports
}

// parseTokens whitespace-tokenizes a cell. A blank cell yields nil, which
// suppresses the directive entirely (distinct from an empty vector).
func parseTokens(cell string) []string {
	fields := strings.Fields(cell)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// decodeAddFiles decodes the add_files JSON cell. A cell that does not parse
// is treated as absent, never as an error.
func decodeAddFiles(cell string) []domain.AddInstruction {
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	var adds []domain.AddInstruction
	if err := json.Unmarshal([]byte(cell), &adds); err != nil {
		return nil
	}
	return adds
}

// decodeCopyPairs decodes the copy_pairs JSON cell, best-effort like
// decodeAddFiles.
func decodeCopyPairs(cell string) []domain.CopyInstruction {
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	var copies []domain.CopyInstruction
	if err := json.Unmarshal([]byte(cell), &copies); err != nil {
		return nil
	}
	return copies
}

// decodeShell decodes the shell override cell: a JSON array when it parses as
// one, otherwise whitespace tokens.
func decodeShell(cell string) []string {
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	var shell []string
	if err := json.Unmarshal([]byte(cell), &shell); err == nil {
		if len(shell) == 0 {
			return nil
		}
		return shell
	}
	return parseTokens(cell)
}
