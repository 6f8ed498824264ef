package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Government and document boilerplate found on identity documents.
var identityStopWords = []string{
	"REPUBLICA", "FEDERATIVA", "BRASIL", "DOCUMENTO", "IDENTIDADE",
	"CPF", "RG", "CNH", "ORGAO", "EXPEDICAO", "VALIDADE", "GOVERNO",
}

// Invoice boilerplate. Billing documents also carry the identity words, e.g.
// in bank names.
var billingStopWords = []string{
	"VALOR", "VENCIMENTO", "CODIGO", "FATURA",
}

// surnameParticles are the connective surname tokens. They are exempt from the
// short-token filter during extraction and may be stripped by the matcher.
var surnameParticles = map[string]struct{}{
	"da":  {},
	"de":  {},
	"do":  {},
	"dos": {},
}

type stopSet map[string]struct{}

func newStopSet(groups ...[]string) stopSet {
	set := make(stopSet)
	for _, group := range groups {
		for _, w := range group {
			if key := stopKey(w); key != "" {
				set[key] = struct{}{}
			}
		}
	}
	return set
}

func (s stopSet) contains(token string) bool {
	_, ok := s[stopKey(token)]
	return ok
}

// stopKey upper-cases and strips diacritics so "Órgão" and "ORGAO" collide.
func stopKey(w string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.TrimSpace(w))
	if err != nil {
		folded = w
	}
	return strings.ToUpper(folded)
}

func isParticle(token string) bool {
	_, ok := surnameParticles[strings.ToLower(token)]
	return ok
}
