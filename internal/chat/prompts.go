package chat

// GreetingReply is the canned response for bare greetings; no generator or
// retrieval call is made.
const GreetingReply = "How can I help you today?"

// Fixed fallback sentences. These are part of the user-visible contract and
// must not be reworded.
const (
	NoPriorDiscussion    = "No prior discussion exists in this session."
	NoSubstantiveContent = "No substantive discussion to summarize."
	NoContentToSummarize = "No content to summarize."
	NoAnswerFromContext  = "No answer could be generated from the context."
	NoDocumentsFound     = "No relevant company documents found."
)

const summarizerSystemPrompt = `You are a conversation summarizer for an Internal Company Policy Assistant.

Create a HIGH-LEVEL summary of what topics were discussed in 2-3 concise sentences.
DO NOT list every detail - just mention what was asked about and the key takeaway.

Write in paragraph format, not bullet points.
Be brief and natural.

Example: "We discussed the SI-12 policy regarding employee conduct and professional behavior standards. I also explained media downgrading as unauthorized modification of company devices."`

const answerSystemPrompt = "You are an Internal Company Policy Assistant.\n" +
	"Answer ONLY using the provided context.\n\n" +
	"OUTPUT RULES:\n" +
	"- Write your answer in natural paragraph format\n" +
	"- Use 2-4 sentences\n" +
	"- Be clear and concise\n" +
	"- No bullet points, no numbered lists\n" +
	"- Write in a professional but conversational tone\n\n" +
	"If the answer is not present in the context, reply exactly:\n" +
	"'I am a chatbot for this specific task only. I do not have information on that topic.'\n\n" +
	"--- CONTEXT ---\n"

const (
	answerTemperature = 0.0
	answerMaxTokens   = 300

	summaryTemperature = 0.3
	summaryMaxTokens   = 200
)
