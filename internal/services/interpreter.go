// This file implements the natural-language transaction interpreter: a single
// forward pass of ordered pattern matches that turns one line of Portuguese
// free text ("paguei 55,90 da netflix mensal") into a draft transaction.
package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"grana/internal/core"

	"github.com/shopspring/decimal"
)

// Nature classifies how a parsed transaction repeats. Ambiguous drafts need
// an explicit user choice before they can be committed.
type Nature string

const (
	NatureOneTime   Nature = "one-time"
	NatureRecurring Nature = "recurring"
	NatureAmbiguous Nature = "ambiguous"
)

// ErrUnparseable is returned when no monetary amount is found in the input.
// It is the interpreter's only hard failure; callers surface it with a
// corrective example such as "gastei 50 reais no supermercado".
var ErrUnparseable = errors.New("could not understand transaction text")

// ErrAmbiguousDraft is returned when an ambiguous draft is committed without
// being resolved to one-time or recurring first.
var ErrAmbiguousDraft = errors.New("draft nature is ambiguous, resolve it first")

// Draft is the structured, unconfirmed output of the interpreter.
type Draft struct {
	Amount      decimal.Decimal      `json:"amount"`
	Description string               `json:"description"`
	CategoryID  string               `json:"categoryId,omitempty"`
	Type        core.TransactionType `json:"type"`
	Nature      Nature               `json:"nature"`
}

// Resolve settles an ambiguous draft with the user's explicit choice.
func (d *Draft) Resolve(nature Nature) error {
	if nature != NatureOneTime && nature != NatureRecurring {
		return errors.New("nature must be one-time or recurring")
	}
	d.Nature = nature
	return nil
}

var (
	amountPattern      = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(?:reais?|r\$)?`)
	incomePattern      = regexp.MustCompile(`(?i)ganhei|recebi|salário|entrada|freelance`)
	recurringPattern   = regexp.MustCompile(`(?i)mensal|todo mês|mensalmente|recorrente|sempre|vitalício|assinatura`)
	oneTimePattern     = regexp.MustCompile(`(?i)hoje|pontual|única|único|agora|uma vez`)
	prepositionPattern = regexp.MustCompile(`(?i)(?:no|na|em|para|com|da|do)\s+([^0-9]+)`)
	digitPattern       = regexp.MustCompile(`\d`)
	spacePattern       = regexp.MustCompile(`\s+`)
)

// fallbackDescription is used when no word in the input qualifies.
const fallbackDescription = "Transação"

type categoryRule struct {
	label    string
	keywords []string
}

// categoryRules is the ordered keyword table for category inference. The
// slice order is the tie-break: the first label with any keyword hit wins.
var categoryRules = []categoryRule{
	{"restaurante", []string{"restaurante", "outback", "mcdonald", "burger", "pizza", "comida"}},
	{"supermercado", []string{"supermercado", "mercado", "extra", "carrefour", "pão de açúcar"}},
	{"transporte", []string{"uber", "taxi", "combustível", "gasolina", "posto"}},
	{"lazer", []string{"cinema", "teatro", "show", "balada", "diversão", "netflix"}},
	{"saúde", []string{"farmácia", "médico", "hospital", "remédio"}},
	{"educação", []string{"escola", "curso", "livro", "faculdade"}},
	{"moradia", []string{"aluguel", "condomínio", "luz", "água", "internet"}},
	{"salário", []string{"salário", "pagamento", "trabalho"}},
	{"outras receitas", []string{"freelance", "extra", "bônus"}},
}

// Interpreter parses free-form transaction sentences. Delay simulates the
// latency of a classification backend and is context-cancellable; tests and
// the terminal client run with zero delay.
type Interpreter struct {
	delay time.Duration
}

func NewInterpreter(delay time.Duration) *Interpreter {
	return &Interpreter{delay: delay}
}

// Parse runs the single-pass interpretation against one line of input.
// categories is the live category list used to resolve the inferred label to
// a concrete category id. Returns ErrUnparseable when no amount is found.
func (i *Interpreter) Parse(ctx context.Context, text string, categories []core.TransactionCategory) (*Draft, error) {
	if i.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(i.delay):
		}
	}

	amountMatch := amountPattern.FindStringSubmatch(text)
	if amountMatch == nil {
		return nil, ErrUnparseable
	}
	amount, err := decimal.NewFromString(strings.ReplaceAll(amountMatch[1], ",", "."))
	if err != nil {
		return nil, ErrUnparseable
	}

	direction := core.Expense
	if incomePattern.MatchString(text) {
		direction = core.Income
	}

	nature := NatureAmbiguous
	switch {
	case recurringPattern.MatchString(text):
		nature = NatureRecurring
	case oneTimePattern.MatchString(text):
		nature = NatureOneTime
	}

	return &Draft{
		Amount:      amount,
		Description: extractDescription(text),
		CategoryID:  inferCategory(text, direction, categories),
		Type:        direction,
		Nature:      nature,
	}, nil
}

// extractDescription captures the text after a Portuguese preposition up to
// the next digit sequence, with recurrence classification words removed so
// "da netflix mensal" yields "Netflix" rather than "Netflix mensal". When no
// preposition matches it falls back to the first non-numeric word longer
// than two runes.
func extractDescription(text string) string {
	var description string
	if m := prepositionPattern.FindStringSubmatch(text); m != nil {
		description = recurringPattern.ReplaceAllString(m[1], "")
		description = oneTimePattern.ReplaceAllString(description, "")
		description = strings.TrimSpace(spacePattern.ReplaceAllString(description, " "))
	}
	if description == "" {
		for _, word := range strings.Fields(text) {
			if digitPattern.MatchString(word) {
				continue
			}
			if utf8.RuneCountInString(word) > 2 {
				description = word
				break
			}
		}
	}
	if description == "" {
		return fallbackDescription
	}
	return capitalizeFirst(description)
}

// capitalizeFirst upper-cases the first rune only, leaving the rest as typed.
func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return strings.ToUpper(string(r)) + s[size:]
}

// inferCategory walks the ordered keyword table and resolves the first
// matching label against the live category list, constrained to categories
// compatible with the transaction direction. An empty result means
// uncategorized.
func inferCategory(text string, direction core.TransactionType, categories []core.TransactionCategory) string {
	lower := strings.ToLower(text)
	for _, rule := range categoryRules {
		matched := false
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		for _, c := range categories {
			if !strings.Contains(strings.ToLower(c.Name), rule.label) {
				continue
			}
			if c.Type == core.CategoryKind(direction) || c.Type == core.KindBoth {
				return c.ID
			}
		}
		// First table hit ends the search even when no live category fits.
		return ""
	}
	return ""
}
