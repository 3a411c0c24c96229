package evidence

import "regexp"

// claimPattern tags a snippet with the kind of claim it makes. The
// vocabularies cover French first, with common English equivalents,
// since the corpus is mostly francophone sports press.
type claimPattern struct {
	tag     string
	pattern *regexp.Regexp
}

var claimPatterns = []claimPattern{
	{"transfer_rumor", regexp.MustCompile(`(?i)transfert|mercato|rumeur|intéressé|ciblé|pisté|approché|transfer|rumour`)},
	{"injury_update", regexp.MustCompile(`(?i)blessé|blessure|absent|forfait|indisponible|soigné|injury|injured|sidelined`)},
	{"contract_news", regexp.MustCompile(`(?i)contrat|prolongation|signature|engagement|officiel|contract|extension`)},
	{"match_report", regexp.MustCompile(`(?i)victoire|défaite|match|rencontre|score|résultat|victory|defeat`)},
	{"performance", regexp.MustCompile(`(?i)performance|statistique|but|passe|note|élu|goal|assist|rating`)},
	{"coach_quote", regexp.MustCompile(`(?i)déclaré|affirmé|expliqué|répondu|annoncé|said|stated|announced`)},
}

// DetectClaimTags classifies a snippet. Unclassifiable text gets the
// single tag "general".
func DetectClaimTags(text string) []string {
	var tags []string
	for _, cp := range claimPatterns {
		if cp.pattern.MatchString(text) {
			tags = append(tags, cp.tag)
		}
	}
	if len(tags) == 0 {
		return []string{"general"}
	}
	return tags
}
