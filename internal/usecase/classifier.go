package usecase

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/yourusername/shop-chatbot/internal/domain/entity"
)

// notificationTriggers phrases that ask for a Telegram notification.
var notificationTriggers = []keywordRule[entity.NotifyKind]{
	{"kirim ke telegram", entity.NotifyForward},
	{"kirimkan ke telegram", entity.NotifyForward},
	{"kirim telegram", entity.NotifyForward},
	{"teruskan ke telegram", entity.NotifyForward},
	{"notifikasi telegram", entity.NotifyForward},
	{"notif telegram", entity.NotifyForward},
	{"beritahu via telegram", entity.NotifyForward},
	{"send to telegram", entity.NotifyForward},
	{"forward to telegram", entity.NotifyForward},
	{"urgent", entity.NotifyUrgent},
	{"penting", entity.NotifyUrgent},
	{"darurat", entity.NotifyUrgent},
}

// categoryKeywords phrases that precede a product name.
var categoryKeywords = []keywordRule[entity.Category]{
	{"berapa harga", entity.CategoryPrice},
	{"berapa harganya", entity.CategoryPrice},
	{"harga", entity.CategoryPrice},
	{"harganya", entity.CategoryPrice},
	{"price of", entity.CategoryPrice},
	{"price", entity.CategoryPrice},
	{"how much is", entity.CategoryPrice},
	{"berapa sisa", entity.CategoryStock},
	{"berapa stok", entity.CategoryStock},
	{"detail stok", entity.CategoryStock},
	{"sisa stok", entity.CategoryStock},
	{"berapa stoknya", entity.CategoryStock},
	{"stok", entity.CategoryStock},
	{"stoknya", entity.CategoryStock},
	{"stock of", entity.CategoryStock},
	{"stock", entity.CategoryStock},
	{"nama produk", entity.CategoryDetail},
	{"apa itu", entity.CategoryDetail},
	{"jelaskan", entity.CategoryDetail},
	{"deskripsi", entity.CategoryDetail},
	{"deskripsinya", entity.CategoryDetail},
	{"spesifikasi", entity.CategoryDetail},
	{"spesifikasinya", entity.CategoryDetail},
	{"detail", entity.CategoryDetail},
	{"detailnya", entity.CategoryDetail},
	{"details of", entity.CategoryDetail},
	{"what is", entity.CategoryDetail},
	{"describe", entity.CategoryDetail},
}

// smallTalk messages that never need product data when nothing else matched.
var smallTalk = []keywordRule[struct{}]{
	{"halo", struct{}{}},
	{"hai", struct{}{}},
	{"hi", struct{}{}},
	{"hello", struct{}{}},
	{"selamat pagi", struct{}{}},
	{"selamat siang", struct{}{}},
	{"selamat sore", struct{}{}},
	{"selamat malam", struct{}{}},
	{"terima kasih", struct{}{}},
	{"makasih", struct{}{}},
	{"thanks", struct{}{}},
	{"thank you", struct{}{}},
}

// fillers are dropped from both ends of an extracted term.
var fillers = map[string]struct{}{
	"berapa": {}, "ya": {}, "dong": {}, "kak": {}, "sih": {}, "ada": {},
	"masih": {}, "sekarang": {}, "tersedia": {}, "dari": {}, "untuk": {},
	"nya": {}, "the": {}, "of": {}, "for": {}, "please": {}, "pls": {},
}

// termRun is the leading run of word characters and spaces.
var termRun = regexp.MustCompile(`^[\p{L}\p{N}_ ]*`)

// Classifier derives an Intent from a free-text message using keyword tables.
type Classifier struct {
	triggers   keywordTable[entity.NotifyKind]
	categories keywordTable[entity.Category]
	smallTalk  keywordTable[struct{}]
}

// NewClassifier classifier with the built-in Indonesian/English tables
func NewClassifier() *Classifier {
	return &Classifier{
		triggers:   newKeywordTable(notificationTriggers),
		categories: newKeywordTable(categoryKeywords),
		smallTalk:  newKeywordTable(smallTalk),
	}
}

// Classify runs trigger removal, category matching and term extraction.
func (c *Classifier) Classify(message string) entity.Intent {
	text := strings.ToLower(strings.TrimSpace(message))

	intent := entity.Intent{Category: entity.CategoryNone, Notify: entity.NotifyNone}
	if trigger, _, ok := c.triggers.match(text); ok {
		intent.Notify = trigger.Tag
	}
	intent.Cleaned = c.triggers.strip(text)

	category := entity.CategoryDetail
	var rest string
	if kw, end, ok := c.categories.match(intent.Cleaned); ok {
		category = kw.Tag
		rest = intent.Cleaned[end:]
	} else {
		// greetings alone are not product names
		rest = c.smallTalk.strip(intent.Cleaned)
	}

	term := extractTerm(rest)
	if term == "" {
		return intent
	}

	intent.Term = term
	intent.Category = category
	return intent
}

// extractTerm takes the leading word run of s and trims filler words.
func extractTerm(s string) string {
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	run := termRun.FindString(s)
	words := strings.Fields(run)

	for len(words) > 0 {
		if _, ok := fillers[words[0]]; !ok {
			break
		}
		words = words[1:]
	}
	for len(words) > 0 {
		if _, ok := fillers[words[len(words)-1]]; !ok {
			break
		}
		words = words[:len(words)-1]
	}

	return strings.Join(words, " ")
}
