package timesheet

import (
	"log/slog"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/samber/lo"
)

// similarityThresholds is the fallback cascade, strictest first. Alias
// containment is precise but requires the author to reference the ticket key;
// many real-world titles only restate the ticket's summary, so decreasing
// similarity cut-offs are the remaining signal.
var similarityThresholds = []float64{0.75, 0.50, 0.25}

// Aliases returns the candidate textual variants of an issue key a pull
// request author may have used: the key itself, the underscore-joined form,
// the segment after the first underscore, the bare suffix after the first
// hyphen, and the segment after a literal "FLIP" infix. Derivations whose
// separator is absent are skipped, so a trivial key still yields at least the
// literal.
func Aliases(key string) []string {
	names := []string{key, strings.ReplaceAll(key, "-", "_")}
	if _, rest, ok := strings.Cut(key, "_"); ok {
		names = append(names, rest)
	}
	if _, rest, ok := strings.Cut(key, "-"); ok {
		names = append(names, rest)
	}
	if _, rest, ok := strings.Cut(key, "FLIP"); ok {
		names = append(names, rest)
	}
	return names
}

// MatchesAlias reports whether any alias of key appears, case-insensitively,
// in the change request's title or branch name.
func MatchesAlias(key string, cr ChangeRequest) bool {
	title := strings.ToLower(cr.Title)
	branch := strings.ToLower(cr.Branch)
	return lo.SomeBy(Aliases(key), func(name string) bool {
		n := strings.ToLower(name)
		return strings.Contains(title, n) || strings.Contains(branch, n)
	})
}

// keyPatterns returns the containment patterns the alias pass tests for an
// issue key against the combined pull-request text. The numeric-suffix
// patterns only exist when the key has a hyphenated suffix.
func keyPatterns(key string) []string {
	k := strings.ToLower(key)
	pats := []string{
		k,
		strings.ReplaceAll(k, "-", ""),
		strings.ReplaceAll(k, "-", "_"),
	}
	if _, suffix, ok := strings.Cut(k, "-"); ok && suffix != "" {
		pats = append(pats,
			suffix+" ",
			strings.Join(strings.Split(suffix, ""), " "),
		)
	}
	return pats
}

// Correlate resolves which issues a change request implements.
//
// Pass 1 tests alias containment of every issue key against the lower-cased
// title+body+branch, accumulating unique matches in first-seen order. Only
// when that yields nothing does the similarity cascade run: each attempt
// returns the first issue whose summary/title ratio clears the threshold and
// short-circuits the looser attempts. With no signal at all a diagnostic is
// logged and the result is empty. Deterministic for identical inputs.
func Correlate(cr ChangeRequest, issues []Issue) []Issue {
	searchable := strings.ToLower(cr.Title + " " + cr.Body + " " + cr.Branch)

	var matched []Issue
	seen := map[string]struct{}{}
	for _, is := range issues {
		if _, dup := seen[is.Key]; dup {
			continue
		}
		for _, pat := range keyPatterns(is.Key) {
			if strings.Contains(searchable, pat) {
				matched = append(matched, is)
				seen[is.Key] = struct{}{}
				break
			}
		}
	}
	if len(matched) > 0 {
		return matched
	}

	title := strings.ToLower(cr.Title)
	for _, threshold := range similarityThresholds {
		if is, ok := lo.Find(issues, func(is Issue) bool {
			return SimilarityRatio(strings.ToLower(is.Summary), title) > threshold
		}); ok {
			return []Issue{is}
		}
	}

	slog.Warn("correlate.miss", "pr", cr.Number, "text", searchable)
	return nil
}

// SimilarityRatio is the classic sequence-matcher ratio over characters:
// twice the matched count divided by the summed lengths, in [0,1].
func SimilarityRatio(a, b string) float64 {
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}
