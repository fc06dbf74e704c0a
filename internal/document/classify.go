package document

import "strings"

// numberedWindow is how many leading bytes may hold the period of a clause
// number ("1." through "999.").
const numberedWindow = 4

// IsNumberedClause reports whether line starts with a digit and has a period
// within its first few characters. Scope lines such as "2.5 GB storage" match
// too; renderers treat that as a known limitation.
func IsNumberedClause(line string) bool {
	if line == "" || line[0] < '0' || line[0] > '9' {
		return false
	}
	head := line
	if len(head) > numberedWindow {
		head = head[:numberedWindow]
	}
	return strings.IndexByte(head[1:], '.') >= 0
}

// IsSignatureLine reports whether line belongs to the signature markers.
func IsSignatureLine(line string) bool {
	return strings.Contains(line, "Signature:") || strings.Contains(line, "SIGNED BY")
}
