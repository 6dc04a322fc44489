package phrase

import (
	"sort"
	"strings"
)

// Relevance weights. The shape is deliberate: shortcut beats name beats
// content beats category, matching how clinicians look phrases up — by the
// dot-shortcut first, then by title.
const (
	scoreShortcutExact  = 100
	scoreShortcutSubstr = 50
	scoreName           = 25
	scoreContent        = 10
	scoreCategory       = 5
)

// phraseIndexEntry is a phrase plus its lowercased searchable text, built on
// demand per query and never persisted.
type phraseIndexEntry struct {
	phrase   *Phrase
	shortcut string
	name     string
	content  string
	category string
	score    int
}

// SearchPhrases scores every phrase against a free-text query and returns
// the matches in descending relevance, ties broken by input order. Phrases
// with zero accumulated score are excluded. Pure function: the collection is
// passed in, never held as package state.
func SearchPhrases(phrases []*Phrase, query string) []*Phrase {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var entries []phraseIndexEntry
	for _, p := range phrases {
		e := indexPhrase(p)
		e.score = scorePhrase(&e, q)
		if e.score > 0 {
			entries = append(entries, e)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].score > entries[j].score
	})

	results := make([]*Phrase, len(entries))
	for i, e := range entries {
		results[i] = e.phrase
	}
	return results
}

func indexPhrase(p *Phrase) phraseIndexEntry {
	e := phraseIndexEntry{
		phrase:   p,
		shortcut: strings.ToLower(p.Shortcut),
		name:     strings.ToLower(p.Name),
		content:  strings.ToLower(p.Content),
	}
	if p.Description != nil {
		e.content += " " + strings.ToLower(*p.Description)
	}
	if p.Category != nil {
		e.category = strings.ToLower(*p.Category)
	}
	return e
}

func scorePhrase(e *phraseIndexEntry, q string) int {
	score := 0
	if e.shortcut != "" {
		if e.shortcut == q || e.shortcut == "."+q {
			score += scoreShortcutExact
		} else if strings.Contains(e.shortcut, q) {
			score += scoreShortcutSubstr
		}
	}
	if e.name != "" && strings.Contains(e.name, q) {
		score += scoreName
	}
	if e.content != "" && strings.Contains(e.content, q) {
		score += scoreContent
	}
	if e.category != "" && strings.Contains(e.category, q) {
		score += scoreCategory
	}
	return score
}
