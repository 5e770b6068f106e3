package campaign

// MessageTemplate is the raw copy for one touchpoint. String fields may carry
// {token} placeholders resolved by the Personalizer.
type MessageTemplate struct {
	Subject    string
	Body       string
	Script     string
	Attachment string
}

// DefaultMessages returns the message catalogue referenced by the shipped campaigns.
func DefaultMessages() map[string]MessageTemplate {
	return map[string]MessageTemplate{
		// day 1
		"initial_contact": {
			Subject:    "Working on Your Proposal",
			Body:       "Hi {first_name}, this is Phil from West Cap. I am working on your proposal now. Can you confirm how much equity you are looking for? And does texting work for communicating?",
			Attachment: "business_card",
		},
		"confirmation_email": {
			Subject: "Confirmation: Your Inquiry with West Capital Lending",
			Body:    "Thank you for your interest in West Capital Lending. We've received your inquiry and Phil Gustin is working on your personalized proposal.",
		},
		"vm1_long_honest": {
			Subject: "Voicemail: Long Honest VM",
			Script:  "Hi {first_name}, this is Phil Gustin from West Capital Lending. I'm putting your numbers together now and wanted to introduce myself.",
		},
		"purpose_question": {
			Body: "{first_name}, I am working on your numbers. Is this for home improvement or debt consolidation?",
		},
		"send_proposal": {
			Body:       "{first_name}, here is a prelim quote based on the info you provided with our starting rates, and I also just sent it via email. Let me know what you think and if you have any adjustments. A lot of times the info is not entirely accurate, but happy to update if needed.",
			Attachment: "proposal",
		},
		"proposal_email": {
			Subject: "{first_name} {last_name} - West Capital Lending Rate Options",
			Body:    "Attached is your personalized rate quote for {cash_out} cash out on a home valued at {property_value}.",
		},
		"followup_proposal": {
			Body: "{first_name}, did you see my texts above? Sharing your goals and any other details will help me get you exactly what you need. Let me know when you have a few mins to talk. 5 mins max!",
		},
		"custom_quote_finetune": {
			Subject: "Your Custom Loan Quote - Let's fine tune it (product overview)",
			Body:    "Here's a detailed breakdown of your options.",
		},
		"background_value": {
			Body: "Hopefully you are not getting too blown up by texts and calls. I hope we can connect so you can see my background and the honest feedback I can give you. I look forward to speaking with you!",
		},

		// day 2
		"good_morning": {
			Body: "Good Morning {first_name}, do you have a few minutes today to connect and go through your goals?",
		},
		"texting_or_call": {
			Body: "Hey it's Phil, just seeing when a good time is to connect. Do you want to keep texting, or would a quick call at your ideal time work better? Let me know what day/time works best for you.",
		},
		"5star_reviews": {
			Body: "BTW, we are a 5 star lender with over 14,000 reviews for the company, and I personally have over 200 5 star reviews and 17 years in this industry. You are in good hands!\n\nWest Cap Reviews: {wc_reviews}\nPhil Gustin Reviews: {phil_reviews}",
		},
		"know_who_working_with": {
			Subject: "Know who you're working with",
			Body:    "Learn more about Phil Gustin and West Capital Lending.",
		},
		"gentle_reminder": {
			Body:       "Gentle reminder of the messages above. Is this email correct? {email}",
			Attachment: "did_you_get_it",
		},
		"shopping_best_deal": {
			Body: "{first_name}, I understand you're shopping for the best deal. What is important to you in deciding who to go with?",
		},

		// day 3
		"easy_dob_income": {
			Body:       "I'll make it easy. Want to text just your DOB and household income? I can send you an official offer with JUST that.",
			Attachment: "easy_button",
		},
		"day3_quote": {
			Body: "Day 3 Quote - Hi {first_name}, I wanted to see if any of these options might suit you best. This is me, not an automated system. As a broker we are wholesale priced, so it's worth at least having the conversation. Are you still interested?",
		},
		"vm_999_time": {
			Script: "99.9% of the time we can help. Give me a call back when you have a minute.",
		},
		"verify_details": {
			Body: "Since I'm sure you are busy, can you verify a couple things so I can confirm your options:\n\nWhat is your home worth?\nWhat is your first loan balance?\nWhat is your current interest rate?\nHow much cash are you requesting?\nWhat is your estimated credit score (if you know)?",
		},
		"skip_2_payments": {
			Body:       "We can skip 2 months of payments with a refinance and consolidate all your debt. Or if you want a 2nd, we have a 5 day HELOC with no appraisal and automated income approval. Just let me know what you prefer. Here's a little more about me too.",
			Attachment: "about_me",
		},
		"couple_questions": {
			Subject: "{first_name} - Couple of Questions for Your Best Options",
		},
		"evening_available": {
			Body: "{first_name}, easier to talk in the evening? I am available until 11pm EST. Is this for debt consolidation or renovations?",
		},

		// day 4
		"day4_quote": {
			Body: "Day 4 Quote - {first_name}, I don't want you to miss this chance at lower payments or extra cash for the things that matter. Let's connect today and make sure you don't leave money on the table.",
		},
		"not_be_bother": {
			Body: "I don't want to be a bother, {first_name}. Still weighing your options?",
		},
		"vm_short_sweet": {
			Script: "Short and sweet: call me back when you can.",
		},
		"told_no_elsewhere": {
			Body: "{first_name}, were you told NO elsewhere? That's usually why I don't hear back. 99.9% of the time we can help. Let's talk.",
		},
		"heloc_1day_close": {
			Subject: "Introducing 1 day close Fixed HELOC - 30/20/15 year options",
		},
		"heloc_fast_close": {
			Body: "Did you see we have a HELOC that can close in less than a week? Up to $400k, no income docs or appraisal needed. Send me your DOB and annual household income and I'll send a few options your way.",
		},

		// day 5
		"day5_quote": {
			Body: "Day 5 quote - {first_name}, here is a reminder of our starting options. Let's align this cash out with your exact goals so your mortgage works for you. Let me know when you have time or schedule here: {calendly_link}",
		},
		"vm_followup_proposal": {
			Script: "Following up on the proposal I sent over.",
		},
		"defer_payment": {
			Body: "Good Morning, we can help you defer at least 1 payment, possibly 2, with this cash out. Are you available for a 5 min call today?",
		},
		"payoff_high_interest": {
			Body: "A lot of my clients are paying off high interest debt. If you have any, I would love to show you how much we can save you monthly.",
		},
		"ensure_saw_texts": {
			Body: "Hi {first_name}, did you see my texts above? Do you have any questions?",
		},
		"figure_intro_video": {
			Subject: "A quick intro video",
		},
		"rates_went_down": {
			Body: "Update on today's rates: they went down! Would love to discuss your loan. Do you have time tonight or tomorrow?",
		},

		// days 6-30
		"confirm_name": {
			Body: "Is this {first_name}?",
		},
		"vm_didnt_hear": {
			Script: "I didn't hear back from you and wanted to check in.",
		},
		"rates_down_half_percent": {
			Subject: "Rates are down .5%!!!",
		},
		"updated_numbers_offer": {
			Body: "Hi, it's Phil again with West Capital Lending. Are you interested in updated numbers? If you have an offer from someone else, I can show you how much I can save you.",
		},
		"vm_beat_anyone": {
			Script: "We'll beat anyone. Call me back.",
		},
		"cashout_great_idea": {
			Subject: "Cash out is a great idea now",
		},
		"equity_purpose": {
			Body: "Hi {first_name}, if you were thinking about cash out: pulling equity can pay off debt, fund a remodel, or invest. What did you want to tap into your equity for, and how much do you need?",
		},
		"told_dont_qualify": {
			Body: "Hi {first_name}, most of the time when I don't hear back it means someone was told they don't qualify. We can go as low as 500 on credit scores and have bank statement, stated income and single-borrower HELOC programs. When do you have a few mins to talk?",
		},
		"low_credit_no_problem": {
			Subject: "Low Credit? No Problem!",
		},
		"started_elsewhere": {
			Body: "You may have started the process elsewhere. I promise you'll want to see what I can offer before you finalize. Do you have 5 mins?",
		},
		"already_in_process": {
			Subject: "Already in process?",
		},
		"rates_dropped": {
			Body: "{first_name}, rates dropped. Are you still interested? Y or N",
		},
		"updated_quote_question": {
			Body: "Hey {first_name}, do you want to see an updated quote based off today's rates?",
		},
		"ghost_me": {
			Body: "{first_name}, did you ghost me?",
		},
		"rates_3_percent_joke": {
			Body: "Did you see rates are in the 3% range? J/k, but they are getting better. Do you want to discuss your scenario?",
		},
		"last_ditch_effort": {
			Body: "Last ditch effort! Are you still looking into options for your home loan? Let me know what you owe now and how much cash you're looking for and I can get new numbers out in a few minutes.",
		},
		"rates_getting_better": {
			Subject: "{first_name} - Rates are getting Better!",
		},

		// responded
		"numbers_sent_confirm": {
			Body: "Numbers sent. Can you confirm you got my proposal? When is a good time to hop on a call to review options? 5 min max!",
		},
		"review_proposal_which_option": {
			Body: "Hi {first_name}, did you have a chance to review the proposal we sent? Which option looks best?",
		},
		"saw_texts_above": {
			Subject: "{first_name}, did you see my texts above?",
		},
		"custom_loan_quote": {
			Body: "{first_name}, I can tailor the quote for your {cash_out} cash out if anything changed. What should I adjust?",
		},
		"not_automated_reviews": {
			Body:       "FYI I'm not an automated system. I run my own branch here. See my reviews: {review_link}",
			Attachment: "about_me",
		},
		"saw_numbers_yesterday": {
			Body: "Good Morning {first_name}, did you see the numbers I sent you yesterday?",
		},
		"day2_quote_manual": {
			Body: "Day 2 Quote - Hi {first_name}, here is the proposal again for your review. I want to understand what you are looking to do and validate these numbers. Can you talk today? 5 min max!",
		},
		"hope_reviewed_proposal": {
			Body:       "Hey it's Phil again, I hope you had a chance to review my proposal. Which option are you leaning towards? If anything needs updating please let me know.",
			Attachment: "family_photo",
		},
		"vm_150_lenders": {
			Script: "We work with over 150 lenders to find your best option.",
		},
		"gentle_reminder_email": {
			Body:       "Gentle reminder of the messages above. Is this email correct? {email}",
			Attachment: "did_you_get_it",
		},
		"what_think_numbers": {
			Body: "{first_name}, I understand you're shopping for the best deal. What did you think of the numbers I sent over?",
		},
	}
}
