package campaign

import (
	"fmt"
	"sort"

	appErrors "github.com/unclebandit/proposal-backend/internal/errors"
	"github.com/unclebandit/proposal-backend/internal/model"
)

const (
	TypeNewLeadCashOut = "new_lead_cashout"
	TypeResponded      = "responded"
)

func sms(day int, at model.Timing, key string) model.TouchpointSpec {
	return model.TouchpointSpec{Day: day, Channel: model.ChannelSMS, Timing: at, MessageKey: key}
}

func email(day int, at model.Timing, key string) model.TouchpointSpec {
	return model.TouchpointSpec{Day: day, Channel: model.ChannelEmail, Timing: at, MessageKey: key}
}

func voicemail(day int, at model.Timing, key string) model.TouchpointSpec {
	return model.TouchpointSpec{Day: day, Channel: model.ChannelVoicemail, Timing: at, MessageKey: key}
}

func manual(spec model.TouchpointSpec) model.TouchpointSpec {
	spec.Manual = true
	return spec
}

// NewLeadCashOutTemplate is the 30-day sequence for a fresh cash-out inquiry.
func NewLeadCashOutTemplate() model.CampaignTemplate {
	d, at := model.Delay, model.At

	return model.CampaignTemplate{
		Name:    TypeNewLeadCashOut,
		Version: 1,
		Touchpoints: []model.TouchpointSpec{
			sms(1, d(0), "initial_contact"),
			email(1, d(0), "confirmation_email"),
			voicemail(1, d(3), "vm1_long_honest"),
			sms(1, d(15), "purpose_question"),
			manual(sms(1, d(170), "send_proposal")),
			manual(email(1, d(170), "proposal_email")),
			sms(1, d(228), "followup_proposal"),
			email(1, d(233), "custom_quote_finetune"),
			sms(1, d(297), "background_value"),

			sms(2, at("9:02am"), "good_morning"),
			sms(2, at("10:31am"), "texting_or_call"),
			sms(2, at("11:16am"), "5star_reviews"),
			email(2, at("12:16pm"), "know_who_working_with"),
			sms(2, at("3:16pm"), "gentle_reminder"),
			sms(2, at("5:06pm"), "shopping_best_deal"),

			sms(3, at("8:17am"), "easy_dob_income"),
			manual(sms(3, at("8:30am"), "day3_quote")),
			voicemail(3, at("10:52am"), "vm_999_time"),
			sms(3, at("12:22pm"), "verify_details"),
			sms(3, at("3:22pm"), "skip_2_payments"),
			email(3, at("4:27pm"), "couple_questions"),
			sms(3, at("5:37pm"), "evening_available"),

			manual(sms(4, at("8:30am"), "day4_quote")),
			sms(4, at("9:06am"), "not_be_bother"),
			voicemail(4, at("12:06pm"), "vm_short_sweet"),
			sms(4, at("4:36pm"), "told_no_elsewhere"),
			email(4, at("5:36pm"), "heloc_1day_close"),
			sms(4, at("6:36pm"), "heloc_fast_close"),

			manual(sms(5, at("8:30am"), "day5_quote")),
			voicemail(5, at("8:45am"), "vm_followup_proposal"),
			sms(5, at("9:30am"), "defer_payment"),
			sms(5, at("9:55am"), "payoff_high_interest"),
			sms(5, at("12:55pm"), "ensure_saw_texts"),
			email(5, at("2:19pm"), "figure_intro_video"),
			sms(5, at("4:49pm"), "rates_went_down"),

			sms(6, at("10:30am"), "confirm_name"),
			voicemail(6, at("12:52pm"), "vm_didnt_hear"),

			email(7, at("11:33am"), "rates_down_half_percent"),
			sms(7, at("2:48pm"), "updated_numbers_offer"),
			voicemail(7, at("5:48pm"), "vm_beat_anyone"),

			email(9, at("10:20am"), "cashout_great_idea"),
			sms(9, at("2:58pm"), "equity_purpose"),

			sms(11, at("8:44am"), "told_dont_qualify"),
			email(11, at("1:44pm"), "low_credit_no_problem"),

			sms(14, at("9:40am"), "started_elsewhere"),
			email(14, at("1:40pm"), "already_in_process"),

			sms(17, at("10:00am"), "rates_dropped"),
			sms(21, at("8:00am"), "updated_quote_question"),
			sms(24, at("12:36pm"), "ghost_me"),
			sms(27, at("4:00pm"), "rates_3_percent_joke"),

			sms(30, at("8:30am"), "last_ditch_effort"),
			email(30, at("1:00pm"), "rates_getting_better"),
		},
	}
}

// RespondedTemplate follows up after the lead has replied and received numbers.
func RespondedTemplate() model.CampaignTemplate {
	d, at := model.Delay, model.At

	return model.CampaignTemplate{
		Name:    TypeResponded,
		Version: 1,
		Touchpoints: []model.TouchpointSpec{
			sms(1, d(5), "numbers_sent_confirm"),
			sms(1, d(25), "review_proposal_which_option"),
			email(1, d(40), "saw_texts_above"),
			sms(1, d(70), "custom_loan_quote"),
			sms(1, d(134), "not_automated_reviews"),

			sms(2, at("8:52am"), "saw_numbers_yesterday"),
			manual(sms(2, at("8:52am"), "day2_quote_manual")),
			sms(2, at("9:31am"), "hope_reviewed_proposal"),
			voicemail(2, at("12:06pm"), "vm_150_lenders"),
			sms(2, at("12:51pm"), "5star_reviews"),
			email(2, at("1:51pm"), "know_who_working_with"),
			sms(2, at("4:51pm"), "gentle_reminder_email"),
			sms(2, at("5:40pm"), "what_think_numbers"),
		},
	}
}

// Registry holds the campaign templates a lead can be enrolled in.
type Registry struct {
	templates map[string]model.CampaignTemplate
}

// NewRegistry validates every template against the message catalogue and
// rejects the set if any step is malformed.
func NewRegistry(catalogue map[string]MessageTemplate, templates ...model.CampaignTemplate) (*Registry, error) {
	r := &Registry{templates: make(map[string]model.CampaignTemplate, len(templates))}
	for _, t := range templates {
		if err := ValidateTemplate(t, catalogue); err != nil {
			return nil, err
		}
		r.templates[t.Name] = t
	}
	return r, nil
}

// DefaultRegistry registers the shipped campaigns. It panics if they are
// inconsistent with the shipped message catalogue.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultMessages(), NewLeadCashOutTemplate(), RespondedTemplate())
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) Get(name string) (model.CampaignTemplate, error) {
	t, ok := r.templates[name]
	if !ok {
		return model.CampaignTemplate{}, appErrors.NewUnknownCampaignType(name)
	}
	return t, nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ValidateTemplate(t model.CampaignTemplate, catalogue map[string]MessageTemplate) error {
	if t.Name == "" {
		return fmt.Errorf("campaign template has no name")
	}
	for i, spec := range t.Touchpoints {
		if spec.Day < 1 {
			return fmt.Errorf("%s step %d: day must be 1 or later, got %d", t.Name, i, spec.Day)
		}
		if !spec.Timing.Valid() {
			return fmt.Errorf("%s step %d: neither a delay nor a clock time is set", t.Name, i)
		}
		switch spec.Channel {
		case model.ChannelSMS, model.ChannelEmail, model.ChannelVoicemail:
		default:
			return fmt.Errorf("%s step %d: unknown channel %q", t.Name, i, spec.Channel)
		}
		if _, ok := catalogue[spec.MessageKey]; !ok {
			return fmt.Errorf("%s step %d: no message template %q", t.Name, i, spec.MessageKey)
		}
	}
	return nil
}
