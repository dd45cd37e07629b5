package aligner

import (
	"context"
	"fmt"

	"github.com/interviewkit/interview-flow/internal/session"
)

const alignPrompt = `You are a helpful assistant tasked with refining an interview transcript by using two versions of the same interview:

1. The reference transcript, which contains accurate timestamps and reliable speaker turns and should serve as the primary source for both structure and content.
2. The machine transcript, which has higher transcription quality but whose structure is less reliable.

Your objective is to enhance the reference transcript using the machine transcript while following these strict rules:

TIMESTAMPS
- Preserve all timestamps from the reference transcript. These are considered more reliable.
- If the machine transcript contains dialogue not captured in the reference version, integrate that content at the appropriate timestamp from the reference transcript, estimating placement based on context. Never invent timestamps.

CONTENT
- All final transcript content must originate from and be traceable to the reference transcript.
- Use the machine transcript only to clarify or fill in gaps in the reference version, such as correcting misheard phrases, completing truncated sentences, or adding missing words.
- Never introduce content from the machine transcript that cannot be matched to something from the reference transcript.
- If any of the interviewee, interview date, or duration information is not found in either transcript, simply write "N/A" for that field. ONLY DO THIS IF THE INFORMATION IS NOT PRESENT IN EITHER TRANSCRIPT.

FORMATTING
- The output should exactly match this format:
Interviewee: [Interviewee's Name]
Interview Date: [Interview Date]
Duration: [Interview Duration]

[Speaker Name hh:mm:ss]:
[Text spoken by that speaker]

- Do not include any additional commentary, headings, or section breaks.
- Do not include any extra asterisks or other formatting as this will be parsed as markdown and messes up the formatting.
- Do not include any opening or closing remarks not found in the original content.
- Do not add quotation marks around any lines.
- All timestamps should be formatted as hh:mm:ss and placed next to speaker names.
- Leave a blank line between each speaker's turn.

Use the reference transcript as the authoritative source and the machine transcript only to correct or complete it. Do not merge or paraphrase across both transcripts in a way that loses the structure of the reference version.

Return only the final formatted transcript, with no leading or trailing explanation.

Reference Transcript:
%s

Machine Transcript:
%s`

// Align performs the merge with a single non-streaming completion. A
// malformed model response is not recovered here; the error propagates to
// the pipeline caller.
func (a *implAligner) Align(ctx context.Context, reference, machine string) (string, error) {
	a.logger.Info(ctx, "Aligning transcripts (%d + %d chars)", len(reference), len(machine))

	aligned, err := a.llm.Complete(ctx, []session.Message{
		{Role: session.RoleUser, Content: fmt.Sprintf(alignPrompt, reference, machine)},
	})
	if err != nil {
		return "", &session.ServiceError{Stage: "align", Err: err}
	}

	return aligned, nil
}
