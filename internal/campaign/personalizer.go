package campaign

import (
	"regexp"
	"strings"

	appErrors "github.com/unclebandit/proposal-backend/internal/errors"
	"github.com/unclebandit/proposal-backend/internal/model"
	"github.com/unclebandit/proposal-backend/internal/money"
)

// Links are the static URLs dropped into messages.
type Links struct {
	CompanyReviews string
	OfficerReviews string
	Reviews        string
	Calendar       string
}

func DefaultLinks() Links {
	return Links{
		CompanyReviews: "https://westcapitallending.com/reviews",
		OfficerReviews: "https://www.philthemortgagepro.com/reviews",
		Reviews:        "https://www.philthemortgagepro.com/reviews",
		Calendar:       "https://calendly.com/philgustin",
	}
}

var (
	tokenPattern  = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)
	braceStripper = strings.NewReplacer("{", "", "}", "")
)

// RenderTemplate substitutes every {token} in template from data. Tokens with
// no entry in data render as the empty string, so the output never carries a
// placeholder.
func RenderTemplate(template string, data map[string]string) string {
	return tokenPattern.ReplaceAllStringFunc(template, func(match string) string {
		return data[match[1:len(match)-1]]
	})
}

type Personalizer struct {
	messages map[string]MessageTemplate
	links    Links
}

func NewPersonalizer(messages map[string]MessageTemplate, links Links) *Personalizer {
	return &Personalizer{messages: messages, links: links}
}

// Tokens builds the substitution set for a lead. Missing facts fall back to
// neutral defaults.
func (p *Personalizer) Tokens(facts model.BorrowerFacts) map[string]string {
	firstName, lastName := "there", ""
	if parts := strings.Fields(facts.Name); len(parts) > 0 {
		firstName = parts[0]
		lastName = strings.Join(parts[1:], " ")
	}

	email := facts.Email
	if strings.TrimSpace(email) == "" {
		email = "[email]"
	}

	tokens := map[string]string{
		"first_name":     firstName,
		"last_name":      lastName,
		"email":          email,
		"property_value": money.USD(facts.PropertyValue),
		"cash_out":       money.USD(facts.CashOutAmount),
		"wc_reviews":     p.links.CompanyReviews,
		"phil_reviews":   p.links.OfficerReviews,
		"review_link":    p.links.Reviews,
		"calendly_link":  p.links.Calendar,
	}
	for k, v := range tokens {
		tokens[k] = braceStripper.Replace(v)
	}
	return tokens
}

// Personalize renders the message stored under key for the lead.
func (p *Personalizer) Personalize(key string, facts model.BorrowerFacts) (model.Message, error) {
	tmpl, ok := p.messages[key]
	if !ok {
		return model.Message{}, appErrors.NewUnknownMessageTemplate(key)
	}

	tokens := p.Tokens(facts)
	return model.Message{
		Subject:    RenderTemplate(tmpl.Subject, tokens),
		Body:       RenderTemplate(tmpl.Body, tokens),
		Script:     RenderTemplate(tmpl.Script, tokens),
		Attachment: RenderTemplate(tmpl.Attachment, tokens),
	}, nil
}
