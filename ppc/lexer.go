package ppc

import (
	"strings"
)

// sourceLine is one tokenized line of assembly: either a label
// declaration, a directive, an instruction, or blank/comment-only.
type sourceLine struct {
	LineNo    int
	Label     string
	Directive string
	Mnemonic  string
	Args      []string
}

// tokenizeLine splits one line of source into a label (if the line starts
// with "name:"), a directive (".data"/".zero"/".binary"/".offsetof"/
// ".include") or a mnemonic plus comma-separated arguments. "#" and ";"
// start a line comment.
func tokenizeLine(raw string, lineNo int) (*sourceLine, error) {
	line := stripComment(raw)
	line = strings.TrimSpace(line)
	if line == "" {
		return &sourceLine{LineNo: lineNo}, nil
	}

	sl := &sourceLine{LineNo: lineNo}

	for {
		idx := strings.IndexByte(line, ':')
		if idx < 0 {
			break
		}
		candidate := strings.TrimSpace(line[:idx])
		if candidate == "" || strings.ContainsAny(candidate, " \t") {
			break
		}
		sl.Label = candidate
		line = strings.TrimSpace(line[idx+1:])
		if line == "" {
			return sl, nil
		}
	}

	fields := strings.SplitN(line, " ", 2)
	head := fields[0]
	rest := ""
	if len(fields) == 2 {
		rest = strings.TrimSpace(fields[1])
	}
	head = strings.TrimRight(head, "\t")

	if strings.HasPrefix(head, ".") {
		sl.Directive = head
	} else {
		sl.Mnemonic = strings.ToLower(head)
	}

	if rest != "" {
		sl.Args = splitArgs(rest)
	}
	return sl, nil
}

// splitArgs splits a comma-separated argument list without breaking apart
// a "disp(rA)" memory operand, which contains no comma itself.
func splitArgs(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func stripComment(line string) string {
	for _, marker := range []string{"#", ";"} {
		if idx := strings.Index(line, marker); idx >= 0 {
			line = line[:idx]
		}
	}
	return line
}

// tokenizeSource splits a full source text into sourceLines, one per
// physical line (1-indexed, matching ParseError.Line).
func tokenizeSource(source string) ([]*sourceLine, error) {
	rawLines := strings.Split(strings.TrimSuffix(source, "\n"), "\n")
	out := make([]*sourceLine, 0, len(rawLines))
	for i, raw := range rawLines {
		sl, err := tokenizeLine(raw, i+1)
		if err != nil {
			return nil, err
		}
		out = append(out, sl)
	}
	return out, nil
}
