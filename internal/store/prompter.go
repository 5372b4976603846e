package store

import (
	"fmt"
	"io"
)

// MarkPrompter supplies marks while a student is being added.
//
// PromptMark returns the raw input for subject. RejectMark is called with
// the reason whenever that input is not a valid mark, before PromptMark is
// called again for the same subject.
type MarkPrompter interface {
	PromptMark(subject string) (string, error)
	RejectMark(subject string, err error)
}

// ScriptedMarks replays answers collected ahead of time, in order.
//
// Front-ends that gather input asynchronously (the TUI) use it to hand the
// collected marks to Store.Add. Rejections are recorded for inspection.
type ScriptedMarks struct {
	Answers    []string
	Rejections []error

	next int
}

// PromptMark returns the next answer, or io.ErrUnexpectedEOF when the
// answers run out.
func (p *ScriptedMarks) PromptMark(subject string) (string, error) {
	if p.next >= len(p.Answers) {
		return "", fmt.Errorf("no mark for %q: %w", subject, io.ErrUnexpectedEOF)
	}
	answer := p.Answers[p.next]
	p.next++
	return answer, nil
}

// RejectMark records err.
func (p *ScriptedMarks) RejectMark(subject string, err error) {
	p.Rejections = append(p.Rejections, err)
}
