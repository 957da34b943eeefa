package monitor

import "strings"

// The taxonomy tables below are ordered slices on purpose: every lookup in
// this package stops at the first match (or accumulates in list order), so
// the position of a keyword is part of the contract. Matching is plain
// case-insensitive substring containment with no word boundaries, which
// means short keywords like "us" or "eu" can match inside unrelated words.
// That behavior is intentional and must not be tightened without changing
// which headlines get flagged.

// AlertKeywords is the default alert lexicon scanned in order by
// ContainsAlertKeyword.
var AlertKeywords = []string{
	"war",
	"invasion",
	"military",
	"nuclear",
	"sanctions",
	"missile",
	"attack",
	"troops",
	"conflict",
	"strike",
	"bomb",
	"casualties",
	"ceasefire",
	"treaty",
	"nato",
	"coup",
	"martial law",
	"emergency",
	"assassination",
	"terrorist",
	"hostage",
	"evacuation",
}

// KeywordSet pairs a taxonomy key with its keyword list. Slice position
// encodes lookup priority.
type KeywordSet struct {
	Key      string
	Keywords []string
}

// RegionKeywords maps region codes to their keyword sets. DetectRegion
// returns the first region with any match.
var RegionKeywords = []KeywordSet{
	{Key: "EUROPE", Keywords: []string{"nato", "eu", "european", "ukraine", "russia", "germany", "france", "uk", "britain", "poland"}},
	{Key: "MENA", Keywords: []string{"iran", "israel", "saudi", "syria", "iraq", "gaza", "lebanon", "yemen", "houthi", "middle east"}},
	{Key: "APAC", Keywords: []string{"china", "taiwan", "japan", "korea", "indo-pacific", "south china sea", "asean", "philippines"}},
	{Key: "AMERICAS", Keywords: []string{"us", "america", "canada", "mexico", "brazil", "venezuela", "latin"}},
	{Key: "AFRICA", Keywords: []string{"africa", "sahel", "niger", "sudan", "ethiopia", "somalia"}},
}

// TopicKeywords maps tagging topics to their keyword sets. DetectTopics
// accumulates every matching topic in list order.
var TopicKeywords = []KeywordSet{
	{Key: "CYBER", Keywords: []string{"cyber", "hack", "ransomware", "malware", "breach", "apt", "vulnerability"}},
	{Key: "NUCLEAR", Keywords: []string{"nuclear", "icbm", "warhead", "nonproliferation", "uranium", "plutonium"}},
	{Key: "CONFLICT", Keywords: []string{"war", "military", "troops", "invasion", "strike", "missile", "combat", "offensive"}},
	{Key: "INTEL", Keywords: []string{"intelligence", "espionage", "spy", "cia", "mossad", "fsb", "covert"}},
	{Key: "DEFENSE", Keywords: []string{"pentagon", "dod", "defense", "military", "army", "navy", "air force"}},
	{Key: "DIPLO", Keywords: []string{"diplomat", "embassy", "treaty", "sanctions", "talks", "summit", "bilateral"}},
}

// SentimentTierKeywords pairs a sentiment tier with its lexicon. Tier order
// (alarming first) determines the order matched keywords are reported in.
type SentimentTierKeywords struct {
	Tier     SentimentTier
	Keywords []string
}

// SentimentLexicon holds the geopolitically-focused sentiment keyword sets.
var SentimentLexicon = []SentimentTierKeywords{
	{Tier: SentimentAlarming, Keywords: []string{
		"war", "invasion", "attack", "bomb", "missile", "nuclear", "strike", "killed",
		"casualties", "emergency", "crisis", "collapse", "catastrophe", "disaster",
		"threat", "weapons", "troops", "military action", "escalation", "conflict",
		"assassination", "coup", "martial law", "genocide", "massacre",
	}},
	{Tier: SentimentCritical, Keywords: []string{
		"sanctions", "tensions", "clash", "dispute", "warning", "denounce", "condemn",
		"deadline", "ultimatum", "withdraw", "suspension", "expel", "protest", "riot",
		"unrest", "instability", "confrontation", "standoff", "brink", "deteriorating",
		"breakdown", "failed", "rejected", "veto", "hostile",
	}},
	{Tier: SentimentNegative, Keywords: []string{
		"decline", "fall", "drop", "loss", "fail", "cut", "concern", "worry", "fear",
		"delay", "setback", "struggle", "challenge", "problem", "issue", "downturn",
		"recession", "inflation", "deficit", "debt", "layoff", "shutdown",
	}},
	{Tier: SentimentPositive, Keywords: []string{
		"peace", "agreement", "deal", "treaty", "cooperation", "alliance", "progress",
		"success", "growth", "rise", "gain", "improve", "breakthrough", "resolution",
		"ceasefire", "summit", "partnership", "aid", "support", "stability", "reform",
		"recovery", "boost", "surge", "record high",
	}},
	{Tier: SentimentNeutral, Keywords: []string{
		"announce", "report", "says", "plan", "consider", "discuss", "meet", "visit",
		"statement", "review", "analysis", "update", "schedule", "propose",
	}},
}

// GeopoliticalThemes is the ordered theme catalog used for sentiment
// aggregation. The first theme with any match wins; "General" is the
// fallback when none match.
var GeopoliticalThemes = []KeywordSet{
	{Key: "US-China", Keywords: []string{"china", "beijing", "xi jinping", "taiwan", "south china sea", "us-china", "trade war"}},
	{Key: "Russia-Ukraine", Keywords: []string{"russia", "ukraine", "putin", "zelensky", "kremlin", "kyiv", "crimea", "donbas"}},
	{Key: "Middle East", Keywords: []string{"israel", "gaza", "iran", "saudi", "syria", "yemen", "hamas", "hezbollah", "netanyahu"}},
	{Key: "NATO/Europe", Keywords: []string{"nato", "eu", "european union", "brussels", "germany", "france", "uk"}},
	{Key: "North Korea", Keywords: []string{"north korea", "pyongyang", "kim jong", "dprk", "korean peninsula"}},
	{Key: "Indo-Pacific", Keywords: []string{"india", "japan", "australia", "asean", "quad", "indo-pacific"}},
	{Key: "Africa", Keywords: []string{"africa", "sahel", "ethiopia", "sudan", "libya", "african union"}},
	{Key: "Latin America", Keywords: []string{"venezuela", "brazil", "mexico", "cuba", "argentina", "latin america"}},
	{Key: "Energy", Keywords: []string{"oil", "gas", "opec", "energy", "pipeline", "lng", "petroleum"}},
	{Key: "Nuclear", Keywords: []string{"nuclear", "uranium", "iaea", "nonproliferation", "atomic"}},
	{Key: "Cyber", Keywords: []string{"cyber", "hack", "ransomware", "data breach", "cyber attack"}},
	{Key: "Climate", Keywords: []string{"climate", "emissions", "carbon", "cop", "environmental"}},
}

// AlertMatch reports whether a text contained an alert keyword and which one.
type AlertMatch struct {
	IsAlert bool   `json:"isAlert"`
	Keyword string `json:"keyword,omitempty"`
}

// ContainsAlertKeyword scans the keyword list in order and returns the first
// keyword contained in the lower-cased text. A nil keyword list selects the
// default AlertKeywords lexicon.
func ContainsAlertKeyword(text string, keywords []string) AlertMatch {
	lower := strings.ToLower(text)
	if keywords == nil {
		keywords = AlertKeywords
	}
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return AlertMatch{IsAlert: true, Keyword: keyword}
		}
	}
	return AlertMatch{}
}

// DetectRegion returns the first region whose keyword set matches the text,
// or "" when no region matches.
func DetectRegion(text string) string {
	lower := strings.ToLower(text)
	for _, region := range RegionKeywords {
		if containsAny(lower, region.Keywords) {
			return region.Key
		}
	}
	return ""
}

// DetectTopics returns every tagging topic whose keyword set matches the
// text, in taxonomy order. The result is empty (nil) when nothing matches.
func DetectTopics(text string) []string {
	lower := strings.ToLower(text)
	var detected []string
	for _, topic := range TopicKeywords {
		if containsAny(lower, topic.Keywords) {
			detected = append(detected, topic.Key)
		}
	}
	return detected
}

func containsAny(lower string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
