package pandoccmd

import "strings"

// quoteDouble wraps v in double quotes for a POSIX shell. Only the
// characters sh still interprets inside double quotes are escaped, so LaTeX
// macros such as \thepage pass through unchanged.
func quoteDouble(v string) string {
	var b strings.Builder
	b.Grow(len(v) + 2)
	b.WriteByte('"')
	for i := 0; i < len(v); i++ {
		c := v[i]
		switch c {
		case '"', '$', '`':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\\':
			// A backslash is consumed only before these characters or the
			// closing quote; double it there to keep it literal.
			if i+1 == len(v) || strings.IndexByte("\"$`\\\n", v[i+1]) >= 0 {
				b.WriteString(`\\`)
			} else {
				b.WriteByte('\\')
			}
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// quoteSingle wraps v in single quotes. Used for [HTML]{...} values, whose
// brackets and braces would otherwise be subject to glob expansion.
func quoteSingle(v string) string {
	return "'" + strings.ReplaceAll(v, "'", `'\''`) + "'"
}

// quoteValue chooses the quoting for an interpolated value.
func quoteValue(v string) string {
	if strings.Contains(v, "[HTML]{") {
		return quoteSingle(v)
	}
	return quoteDouble(v)
}

// needsQuoting reports whether v contains anything a shell would split or
// interpret.
func needsQuoting(v string) bool {
	if v == "" {
		return true
	}
	return strings.ContainsAny(v, " \t\n\"'`$\\|&;<>()[]{}*?!#~")
}

// quoteIfNeeded leaves plain words bare and quotes everything else.
func quoteIfNeeded(v string) string {
	if needsQuoting(v) {
		return quoteValue(v)
	}
	return v
}
