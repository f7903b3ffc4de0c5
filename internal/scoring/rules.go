// Package scoring computes the five-dimension composite quality score that
// gates publication. The phrase catalogs driving the voice and specificity
// dimensions are data records: defaults are compiled in, and a yaml file can
// replace any catalog wholesale.
package scoring

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Rule is one catalog entry. Weight scales how much each match contributes
// to the rule's density tally; most rules carry weight 1.
type Rule struct {
	ID      string  `yaml:"id"`
	Pattern string  `yaml:"pattern"`
	Weight  float64 `yaml:"weight,omitempty"`
	// Category groups rules in reports; it does not affect scoring.
	Category string `yaml:"category,omitempty"`
}

// Catalog holds the four rule tables. A zero table falls back to the
// built-in defaults when compiled.
type Catalog struct {
	FillerPhrases  []Rule `yaml:"filler_phrases"`
	VagueWords     []Rule `yaml:"vague_words"`
	Specificity    []Rule `yaml:"specificity_patterns"`
	Conversational []Rule `yaml:"conversational_devices"`
}

// DefaultCatalog returns the built-in rule tables.
func DefaultCatalog() Catalog {
	return Catalog{
		FillerPhrases:  defaultFillerPhrases,
		VagueWords:     defaultVagueWords,
		Specificity:    defaultSpecificity,
		Conversational: defaultConversational,
	}
}

// LoadCatalog reads a yaml catalog from path. Tables absent from the file
// keep the defaults.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read rules file: %w", err)
	}
	cat := Catalog{}
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return Catalog{}, fmt.Errorf("parse rules file: %w", err)
	}
	def := DefaultCatalog()
	if len(cat.FillerPhrases) == 0 {
		cat.FillerPhrases = def.FillerPhrases
	}
	if len(cat.VagueWords) == 0 {
		cat.VagueWords = def.VagueWords
	}
	if len(cat.Specificity) == 0 {
		cat.Specificity = def.Specificity
	}
	if len(cat.Conversational) == 0 {
		cat.Conversational = def.Conversational
	}
	return cat, nil
}

type compiledRule struct {
	id     string
	re     *regexp.Regexp
	weight float64
}

// RuleSet is a compiled catalog ready for matching.
type RuleSet struct {
	filler         []compiledRule
	vague          []compiledRule
	specificity    []compiledRule
	conversational []compiledRule
}

// Compile compiles every pattern in the catalog. Patterns carry their own
// case-sensitivity: word catalogs embed (?i), specificity patterns that key
// on capitalization do not.
func (c Catalog) Compile() (*RuleSet, error) {
	rs := &RuleSet{}
	for _, t := range []struct {
		rules []Rule
		dst   *[]compiledRule
	}{
		{c.FillerPhrases, &rs.filler},
		{c.VagueWords, &rs.vague},
		{c.Specificity, &rs.specificity},
		{c.Conversational, &rs.conversational},
	} {
		for _, r := range t.rules {
			re, err := regexp.Compile(r.Pattern)
			if err != nil {
				return nil, fmt.Errorf("rule %s: %w", r.ID, err)
			}
			w := r.Weight
			if w == 0 {
				w = 1
			}
			*t.dst = append(*t.dst, compiledRule{id: r.ID, re: re, weight: w})
		}
	}
	return rs, nil
}

// tally returns the weighted match count of rules in text and the ids of the
// rules that matched, in rule order.
func tally(rules []compiledRule, text string) (float64, []string) {
	total := 0.0
	var matched []string
	for _, r := range rules {
		n := len(r.re.FindAllStringIndex(text, -1))
		if n > 0 {
			total += float64(n) * r.weight
			matched = append(matched, r.id)
		}
	}
	return total, matched
}

var defaultFillerPhrases = []Rule{
	{ID: "filler.in_todays", Pattern: `(?i)\bin today['’]s (?:digital|modern|fast-paced)\b`},
	{ID: "filler.when_it_comes_to", Pattern: `(?i)\bwhen it comes to\b`},
	{ID: "filler.important_to_note", Pattern: `(?i)\bit['’]s important to (?:note|remember|understand)\b`},
	{ID: "filler.in_the_world_of", Pattern: `(?i)\bin the world of\b`},
	{ID: "filler.lets_dive", Pattern: `(?i)\blet['’]s dive (?:in|into)\b`},
	{ID: "filler.furthermore", Pattern: `(?i)\bfurthermore\b`},
	{ID: "filler.moreover", Pattern: `(?i)\bmoreover\b`},
	{ID: "filler.additionally", Pattern: `(?i)\badditionally\b`},
	{ID: "filler.in_order_to", Pattern: `(?i)\bin order to\b`},
	{ID: "filler.due_to_the_fact", Pattern: `(?i)\bdue to the fact that\b`},
	{ID: "filler.end_of_the_day", Pattern: `(?i)\bat the end of the day\b`},
	{ID: "filler.going_forward", Pattern: `(?i)\bgoing forward\b`},
	{ID: "filler.leverage", Pattern: `(?i)\bleverage\b`},
	{ID: "filler.utilize", Pattern: `(?i)\butilize\b`},
	{ID: "filler.synergy", Pattern: `(?i)\bsynergy\b`},
	{ID: "filler.holistic", Pattern: `(?i)\bholistic\b`},
	{ID: "filler.robust", Pattern: `(?i)\brobust\b`},
	{ID: "filler.seamless", Pattern: `(?i)\bseamless(?:ly)?\b`},
	{ID: "filler.game_changer", Pattern: `(?i)\bgame.?changer\b`},
	{ID: "filler.unlock_potential", Pattern: `(?i)\bunlock(?:ing)? (?:the )?(?:power|potential)\b`},
	{ID: "filler.next_level", Pattern: `(?i)\btake (?:your|it) to the next level\b`},
	{ID: "filler.journey", Pattern: `(?i)\bjourney\b`, Weight: 0.5},
	{ID: "filler.landscape", Pattern: `(?i)\blandscape\b`},
	{ID: "filler.paradigm", Pattern: `(?i)\bparadigm\b`},
	{ID: "filler.optimal", Pattern: `(?i)\boptimal\b`},
	{ID: "filler.facilitate", Pattern: `(?i)\bfacilitate\b`},
}

var defaultVagueWords = []Rule{
	{ID: "vague.many", Pattern: `(?i)\bmany\b`},
	{ID: "vague.some", Pattern: `(?i)\bsome\b`},
	{ID: "vague.various", Pattern: `(?i)\bvarious\b`},
	{ID: "vague.numerous", Pattern: `(?i)\bnumerous\b`},
	{ID: "vague.several", Pattern: `(?i)\bseveral\b`},
	{ID: "vague.often", Pattern: `(?i)\boften\b`},
	{ID: "vague.sometimes", Pattern: `(?i)\bsometimes\b`},
	{ID: "vague.usually", Pattern: `(?i)\busually\b`},
	{ID: "vague.generally", Pattern: `(?i)\bgenerally\b`},
	{ID: "vague.typically", Pattern: `(?i)\btypically\b`},
	{ID: "vague.significant", Pattern: `(?i)\bsignificant(?:ly)?\b`},
	{ID: "vague.substantial", Pattern: `(?i)\bsubstantial(?:ly)?\b`},
	{ID: "vague.considerable", Pattern: `(?i)\bconsiderable\b`},
	{ID: "vague.great", Pattern: `(?i)\bgreat(?:ly)?\b`},
	{ID: "vague.very", Pattern: `(?i)\bvery\b`},
	{ID: "vague.really", Pattern: `(?i)\breally\b`},
	{ID: "vague.quite", Pattern: `(?i)\bquite\b`},
	{ID: "vague.rather", Pattern: `(?i)\brather\b`},
	{ID: "vague.relatively", Pattern: `(?i)\brelatively\b`},
	{ID: "vague.recently", Pattern: `(?i)\brecently\b`},
	{ID: "vague.currently", Pattern: `(?i)\bcurrently\b`},
	{ID: "vague.effective", Pattern: `(?i)\beffective(?:ly)?\b`},
	{ID: "vague.important", Pattern: `(?i)\bimportant\b`},
	{ID: "vague.essential", Pattern: `(?i)\bessential\b`},
	{ID: "vague.critical", Pattern: `(?i)\bcritical\b`},
	{ID: "vague.key", Pattern: `(?i)\bkey\b`},
	{ID: "vague.crucial", Pattern: `(?i)\bcrucial\b`},
}

var defaultSpecificity = []Rule{
	{ID: "specific.percentage", Pattern: `\b\d{1,3}%`},
	{ID: "specific.dollar_amount", Pattern: `\$[\d,]+(?:\.\d{2})?\b`},
	{ID: "specific.year", Pattern: `\b\d{4}\b`},
	{ID: "specific.date", Pattern: `\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2}\b`},
	{ID: "specific.count", Pattern: `(?i)\b\d+(?:,\d{3})*\s*(?:downloads?|listeners?|subscribers?|episodes?|users?|customers?)\b`},
	{ID: "specific.attributed_quote", Pattern: `[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?\s+(?:said|says|explained|noted|mentioned)\b`},
	{ID: "specific.quoted_text", Pattern: `"[^"]{10,}"`},
}

var defaultConversational = []Rule{
	{ID: "conv.aside", Pattern: `\([^)]{5,50}\)`},
	{ID: "conv.question", Pattern: `\?(?:\s|$)`},
	{ID: "conv.dont", Pattern: `(?i)\bdon['’]t\b`},
	{ID: "conv.cant", Pattern: `(?i)\bcan['’]t\b`},
	{ID: "conv.wont", Pattern: `(?i)\bwon['’]t\b`},
	{ID: "conv.youre", Pattern: `(?i)\byou['’]re\b`},
	{ID: "conv.youve", Pattern: `(?i)\byou['’]ve\b`},
	{ID: "conv.its", Pattern: `(?i)\bit['’]s\b`},
	{ID: "conv.thats", Pattern: `(?i)\bthat['’]s\b`},
	{ID: "conv.heres", Pattern: `(?i)\bhere['’]s\b`},
	{ID: "conv.lets", Pattern: `(?i)\blet['’]s\b`},
	{ID: "conv.ive", Pattern: `(?i)\bI['’]ve\b`},
	{ID: "conv.im", Pattern: `(?i)\bI['’]m\b`},
	{ID: "conv.weve", Pattern: `(?i)\bwe['’]ve\b`},
	{ID: "conv.were_contraction", Pattern: `(?i)\bwe['’]re\b`},
	{ID: "conv.casual_opener", Pattern: `(?m)(?:^|\.\s+)(?:Look|Here['’]s the thing|The truth is|Sound familiar|Trust me)\b`},
}
