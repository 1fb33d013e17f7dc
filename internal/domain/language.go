package domain

// LanguageGroup maps each primary language to the records written in it.
// Languages are kept in the order they were first seen so that iteration,
// and any stable sort over it, is deterministic.
type LanguageGroup struct {
	order   []string
	members map[string][]AnalysisRecord
}

// GroupByLanguage builds a LanguageGroup from records in their given order.
func GroupByLanguage(records []AnalysisRecord) *LanguageGroup {
	g := &LanguageGroup{members: make(map[string][]AnalysisRecord)}
	for _, r := range records {
		if _, ok := g.members[r.PrimaryLanguage]; !ok {
			g.order = append(g.order, r.PrimaryLanguage)
		}
		g.members[r.PrimaryLanguage] = append(g.members[r.PrimaryLanguage], r)
	}
	return g
}

// Languages returns the languages in first-seen order.
func (g *LanguageGroup) Languages() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Records returns the records for language in their original order.
func (g *LanguageGroup) Records(language string) []AnalysisRecord {
	return g.members[language]
}

// Len reports the number of distinct languages.
func (g *LanguageGroup) Len() int {
	return len(g.order)
}
