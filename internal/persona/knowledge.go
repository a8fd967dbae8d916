package persona

// KnowledgeEntry is one row of the local knowledge base: a topic keyword,
// the canned reply served when the AI provider is unavailable, and the
// services worth signposting alongside it.
type KnowledgeEntry struct {
	Topic     string
	Response  string
	Context   string
	Resources []string
}

// knowledgeBase is scanned in declaration order; the first topic whose
// keyword appears in the user message wins, so broader topics belong
// further down.
var knowledgeBase = []KnowledgeEntry{
	{
		Topic:   "housing",
		Context: "housing",
		Response: "I know housing worries can feel really heavy. Shelter's free advice line is a good first step, " +
			"and your council's Housing Options team has a duty to help if you're at risk of losing your home. " +
			"Citizens Advice can also walk you through your rights as a tenant.",
		Resources: []string{"Shelter Housing Advice", "Council Housing Options Team", "Citizens Advice"},
	},
	{
		Topic:   "benefits",
		Context: "money",
		Response: "I understand the benefits system can be confusing. Citizens Advice offers free, confidential help " +
			"with claims and appeals, and the Turn2us calculator can show what you may be entitled to in a few minutes.",
		Resources: []string{"Citizens Advice", "Turn2us Benefits Calculator"},
	},
	{
		Topic:   "nhs",
		Context: "health",
		Response: "I can point you in the right direction for health support. For anything that isn't an emergency, " +
			"NHS 111 is available around the clock, online or by phone, and they can tell you which local service to use.",
		Resources: []string{"NHS 111", "Healthwatch"},
	},
	{
		Topic:   "mental health",
		Context: "health",
		Response: "I'm glad you felt able to mention this. Mind has excellent information and local groups, and " +
			"Samaritans are there to listen any time, day or night, free on 116 123. You deserve support with how you're feeling.",
		Resources: []string{"Mind", "Samaritans"},
	},
	{
		Topic:   "lonely",
		Context: "connection",
		Response: "I'm sorry you're feeling this way. Lots of people in our community have felt the same, and the weekly " +
			"drop-in at the Community Hub is a friendly, no-pressure place to meet people. You'd be very welcome there.",
		Resources: []string{"Community Hub Drop-In"},
	},
	{
		Topic:   "food",
		Context: "money",
		Response: "I want you to know there's no shame in needing a hand with food. The local food bank runs sessions " +
			"through the week, and Citizens Advice can sort a referral quickly if you need one.",
		Resources: []string{"Local Food Bank", "Citizens Advice"},
	},
	{
		Topic:   "volunteer",
		Context: "community",
		Response: "I love that you're thinking about volunteering. The Community Hub is always looking for helpers for " +
			"the drop-in and events, and they'll match you with something that fits your time and interests.",
		Resources: []string{"Community Hub Drop-In"},
	},
	{
		Topic:   "event",
		Context: "community",
		Response: "I'd be happy to help you find something on. The Community Hub publishes the events list each week, " +
			"covering everything from coffee mornings to advice sessions, and everyone is welcome.",
		Resources: []string{"Community Hub Drop-In"},
	},
}

// resourceMapping links a keyword a person might use to the named services
// appended to a reply by the resource-seeking heuristic.
type resourceMapping struct {
	Keyword   string
	Resources []string
}

// resourceDirectory order is load-bearing: when several keywords match,
// their resource lists are unioned in this order with duplicates dropped.
var resourceDirectory = []resourceMapping{
	{"housing", []string{"Shelter Housing Advice", "Council Housing Options Team"}},
	{"benefits", []string{"Citizens Advice", "Turn2us Benefits Calculator"}},
	{"nhs", []string{"NHS 111", "Healthwatch"}},
	{"mental health", []string{"Mind", "Samaritans"}},
	{"support", []string{"Community Hub Drop-In"}},
	{"help", []string{"Community Hub Drop-In", "Citizens Advice"}},
	{"services", []string{"Community Hub Drop-In", "Healthwatch"}},
	{"legal", []string{"Citizens Advice Legal Clinic"}},
	{"rights", []string{"ACAS", "Equality Advisory Support Service"}},
	{"discrimination", []string{"Equality Advisory Support Service", "Citizens Advice Legal Clinic"}},
}

// supportKeywords trigger the community-solidarity sentence when any of
// them appears in the user's message.
var supportKeywords = []string{
	"help", "struggling", "difficult", "hard", "lonely", "sad",
	"depressed", "anxious", "worried", "scared", "alone",
}

// genericFallbacks are served when no knowledge base topic matches. One is
// chosen uniformly at random; callers must not rely on which.
var genericFallbacks = []string{
	"I'm here with you. Tell me a little more about what's going on, and we'll figure out the next step together.",
	"I may not have the perfect answer right now, but I'm listening. What would be most helpful to talk through?",
	"I'm glad you reached out. Whatever is on your mind, you don't have to work it out by yourself.",
	"I want to make sure I point you somewhere genuinely useful. Could you tell me a bit more about what you need?",
	"I'm here for you, and so is this community. Take your time and tell me what's happening.",
}
