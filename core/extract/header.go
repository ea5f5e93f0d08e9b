package extract

import (
	"regexp"
	"strings"
)

var (
	// 教師：王小明(兼) 物理組(導師)
	identityRe  = regexp.MustCompile(`教師：\s*([^\s(（]+)(\(兼\)|（兼）)?\s*(\S*)`)
	adminRoleRe = regexp.MustCompile(`[^\s(]*?(組長|主任|秘書|組)`)
)

const homeroomMarker = "導師"

// Identity is the teacher block found at the top of a timetable page.
type Identity struct {
	Name       string
	AdminRole  string
	IsAdjunct  bool
	IsHomeroom bool
}

// ParseIdentity finds the teacher identity block anywhere in page text.
// It reports false when the page carries no identity block.
func ParseIdentity(text string) (Identity, bool) {
	m := identityRe.FindStringSubmatch(text)
	if m == nil {
		return Identity{}, false
	}
	name := strings.TrimSpace(m[1])
	if name == "" {
		return Identity{}, false
	}
	raw := strings.TrimSpace(m[3])
	return Identity{
		Name:       name,
		AdminRole:  adminRoleRe.FindString(raw),
		IsAdjunct:  m[2] != "",
		IsHomeroom: strings.Contains(raw, homeroomMarker) || strings.Contains(text, homeroomMarker),
	}, true
}
