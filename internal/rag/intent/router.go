package intent

import (
	"regexp"
	"strings"
)

type Mode string

const (
	ModeGeneral  Mode = "general"
	ModeTargeted Mode = "targeted"
)

// Keyword tables are matched as lowercase substrings, so "summarized" hits "summarize"
// and "remake" hits "make". False positives are accepted.
var (
	SummaryKeywords    = []string{"summarize", "summary", "overview", "brief", "recap"}
	GenerateKeywords   = []string{"generate", "create", "make", "write", "compose", "develop"}
	StructuralKeywords = []string{"chapter", "lesson", "unit", "section"}
)

var documentName = regexp.MustCompile(`(?i)(\w+\.pdf)`)

type Intent struct {
	Mode           Mode
	TargetDocument string
	Summary        bool
	Generate       bool
	Structural     bool
	Matched        []string
}

func (i Intent) Targeted() bool {
	return i.Mode == ModeTargeted
}

// Classify routes a query to the targeted strategy when any cue family matches.
// Only targeted queries are searched for a document name.
func Classify(query string) Intent {
	lower := strings.ToLower(query)

	var in Intent
	var hit bool
	if hit, in.Matched = matchKeywords(lower, SummaryKeywords, in.Matched); hit {
		in.Summary = true
	}
	if hit, in.Matched = matchKeywords(lower, GenerateKeywords, in.Matched); hit {
		in.Generate = true
	}
	if hit, in.Matched = matchKeywords(lower, StructuralKeywords, in.Matched); hit {
		in.Structural = true
	}

	if !in.Summary && !in.Generate && !in.Structural {
		in.Mode = ModeGeneral
		return in
	}

	in.Mode = ModeTargeted
	if m := documentName.FindStringSubmatch(query); m != nil {
		in.TargetDocument = m[1]
	}
	return in
}

func matchKeywords(lower string, keywords []string, matched []string) (bool, []string) {
	hit := false
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			hit = true
			matched = append(matched, kw)
		}
	}
	return hit, matched
}
