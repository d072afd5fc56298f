package textops

type lexiconEntry struct {
	polarity     float64
	subjectivity float64
}

// Компактный сентимент-лексикон; достаточно для демо-операций платформы.
var lexicon = map[string]lexiconEntry{
	"amazing":     {0.9, 0.9},
	"awesome":     {1.0, 1.0},
	"excellent":   {1.0, 1.0},
	"great":       {0.8, 0.75},
	"good":        {0.7, 0.6},
	"nice":        {0.6, 1.0},
	"love":        {0.5, 0.6},
	"happy":       {0.8, 1.0},
	"wonderful":   {1.0, 1.0},
	"best":        {1.0, 0.3},
	"fantastic":   {0.9, 0.9},
	"perfect":     {1.0, 1.0},
	"helpful":     {0.5, 0.5},
	"fast":        {0.2, 0.6},
	"reliable":    {0.4, 0.5},
	"easy":        {0.4, 0.8},
	"beautiful":   {0.85, 1.0},
	"interesting": {0.5, 0.5},

	"bad":           {-0.7, 0.65},
	"terrible":      {-1.0, 1.0},
	"awful":         {-1.0, 1.0},
	"horrible":      {-1.0, 1.0},
	"worst":         {-1.0, 0.3},
	"hate":          {-0.8, 0.9},
	"sad":           {-0.5, 1.0},
	"angry":         {-0.5, 0.9},
	"slow":          {-0.3, 0.4},
	"broken":        {-0.4, 0.4},
	"useless":       {-0.5, 0.4},
	"buggy":         {-0.5, 0.6},
	"poor":          {-0.4, 0.6},
	"wrong":         {-0.5, 0.5},
	"ugly":          {-0.7, 1.0},
	"boring":        {-0.8, 1.0},
	"annoying":      {-0.6, 0.8},
	"disappointing": {-0.6, 0.7},
}

var negations = map[string]bool{
	"not":     true,
	"no":      true,
	"never":   true,
	"n't":     true,
	"don't":   true,
	"doesn't": true,
	"isn't":   true,
	"wasn't":  true,
	"can't":   true,
	"won't":   true,
	"didn't":  true,
}

// Стоп-слова для выделения фраз-кандидатов.
var stopwords = map[string]bool{
	"a": true, "about": true, "above": true, "after": true, "again": true,
	"against": true, "all": true, "am": true, "an": true, "and": true,
	"any": true, "are": true, "aren't": true, "as": true, "at": true,
	"be": true, "because": true, "been": true, "before": true, "being": true,
	"below": true, "between": true, "both": true, "but": true, "by": true,
	"can": true, "can't": true, "could": true, "did": true, "didn't": true,
	"do": true, "does": true, "doesn't": true, "doing": true, "don't": true,
	"down": true, "during": true, "each": true, "few": true, "for": true,
	"from": true, "further": true, "had": true, "has": true, "have": true,
	"having": true, "he": true, "her": true, "here": true, "hers": true,
	"him": true, "his": true, "how": true, "i": true, "if": true,
	"in": true, "into": true, "is": true, "isn't": true, "it": true,
	"its": true, "it's": true, "itself": true, "just": true, "me": true,
	"more": true, "most": true, "my": true, "myself": true, "no": true,
	"nor": true, "not": true, "now": true, "of": true, "off": true,
	"on": true, "once": true, "only": true, "or": true, "other": true,
	"our": true, "ours": true, "out": true, "over": true, "own": true,
	"same": true, "she": true, "should": true, "so": true, "some": true,
	"such": true, "than": true, "that": true, "the": true, "their": true,
	"theirs": true, "them": true, "then": true, "there": true, "these": true,
	"they": true, "this": true, "those": true, "through": true, "to": true,
	"too": true, "under": true, "until": true, "up": true, "very": true,
	"was": true, "wasn't": true, "we": true, "were": true, "what": true,
	"when": true, "where": true, "which": true, "while": true, "who": true,
	"whom": true, "why": true, "will": true, "with": true, "won't": true,
	"would": true, "you": true, "your": true, "yours": true, "yourself": true,
}
