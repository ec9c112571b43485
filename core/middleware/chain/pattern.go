package chain

import "strings"

// MatchAll is the pattern that applies a filter to every path.
const MatchAll = "/*"

// pattern is a compiled URL pattern.
type pattern struct {
	raw      string
	segments []string
	prefix   bool
}

func compilePattern(raw string) (pattern, bool) {
	if !strings.HasPrefix(raw, "/") {
		return pattern{}, false
	}
	if raw == MatchAll {
		return pattern{raw: raw, prefix: true}, true
	}

	p := pattern{raw: raw}
	body := raw
	if strings.HasSuffix(raw, "/*") {
		p.prefix = true
		body = strings.TrimSuffix(raw, "/*")
	}
	if strings.Contains(body, "*") {
		return pattern{}, false
	}
	p.segments = splitPath(body)
	return p, true
}

// match reports whether path is covered by the pattern. Prefix patterns are
// compared segment by segment so that "/ratings/*" never matches "/ratingsX".
func (p pattern) match(path string) bool {
	if path == "" {
		path = "/"
	}
	if !p.prefix {
		return path == p.raw
	}

	segs := splitPath(path)
	if len(segs) < len(p.segments) {
		return false
	}
	for i, s := range p.segments {
		if segs[i] != s {
			return false
		}
	}
	return true
}

func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	out := parts[:0]
	for _, s := range parts {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Match reports whether path matches the URL pattern. Malformed patterns match nothing.
func Match(patternStr, path string) bool {
	p, ok := compilePattern(patternStr)
	if !ok {
		return false
	}
	return p.match(path)
}
