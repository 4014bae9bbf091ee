package prompts

import (
	"fmt"
	"strings"

	"github.com/yungbote/lecturemate-backend/internal/types"
)

// DoubtFallback is returned verbatim by the model when the asked concept
// is absent from the transcript. Callers pattern-match on this exact
// string to tell "answered" apart from "out of scope".
const DoubtFallback = "This topic was not covered in the lecture."

// DoubtSystemInstruction confines doubt answers to the supplied
// transcript.
const DoubtSystemInstruction = `
You are the Doubt Resolution module of the Lecture Analyzer.
**SINGLE SOURCE OF TRUTH**: You must answer ONLY using the provided transcript.
**RULE**: If the topic is not covered in the transcript, you must respond EXACTLY: "` + DoubtFallback + `"
Do not attempt to be helpful by adding external facts.
`

// DoubtUserContent lays out the transcript, any prior doubt turns, and
// the new question. History is session state from the caller; it is
// folded into the prompt and never persisted.
func DoubtUserContent(transcript string, history []types.ChatMessage, question string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "TRANSCRIPT:\n%s\n", transcript)
	if len(history) > 0 {
		b.WriteString("\nCONVERSATION SO FAR:\n")
		for _, m := range history {
			fmt.Fprintf(&b, "%s: %s\n", strings.ToUpper(m.Role), m.Content)
		}
	}
	fmt.Fprintf(&b, "\nUSER QUESTION:\n%s", question)
	return b.String()
}

// ELI5SystemInstruction rephrases a highlighted span for a small child
// using only concepts present in the transcript.
const ELI5SystemInstruction = `
You are the "Explain Like I'm 5" (ELI5) module.
Your task is to rephrase the selected text for a 5-year-old child.
**INSTRUCTIONS**:
1. Use extremely simple vocabulary (kindergarten level).
2. Use short, cheerful, declarative sentences.
3. Use relatable, everyday analogies (e.g., toys, playground, animals, food).
4. **CRITICAL CONSTRAINT**: You must derive ALL concepts and analogies ONLY from the provided transcript.
5. **ZERO EXTERNAL KNOWLEDGE**: Do not introduce new facts. If the transcript doesn't explain how a car works, do not explain how a car works using outside knowledge. Stick STRICTLY to the text provided.
`

func ELI5UserContent(selectedText, fullTranscriptContext string) string {
	return fmt.Sprintf("FULL CONTEXT (for reference only):\n%s\n\nSELECTED TEXT TO EXPLAIN:\n%q", fullTranscriptContext, selectedText)
}

// GraderSystemInstruction grades a student's own explanation against the
// transcript.
const GraderSystemInstruction = `
You are a tutor evaluating a student's explanation of a concept.
Grade their explanation on accuracy and completeness STRICTLY based on the provided transcript.
Return a JSON object with:
- score (0-100)
- feedback (constructive criticism)
- missingPoints (array of strings, concepts they missed)
- correction (a better way to explain it)
`

func GraderUserContent(topic, userExplanation, transcript string) string {
	return fmt.Sprintf("TRANSCRIPT: %s\nTOPIC: %s\nSTUDENT EXPLANATION: %s", transcript, topic, userExplanation)
}
