package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/grovetools/launcher/input"
)

// ScriptedAnswer is one queued reply of a ScriptedInput.
type ScriptedAnswer struct {
	Value  string
	Cancel bool
}

// Answer queues a value the fake user enters.
func Answer(value string) ScriptedAnswer {
	return ScriptedAnswer{Value: value}
}

// Cancel queues a dismissed prompt.
func Cancel() ScriptedAnswer {
	return ScriptedAnswer{Cancel: true}
}

// PromptRecord captures one prompt the code under test issued.
type PromptRecord struct {
	Kind    string // text, choice or folder
	Prompt  string
	Initial string
	Options []string
}

// ScriptedInput implements input.Host with a queue of canned answers and a
// record of every prompt shown.
type ScriptedInput struct {
	mu      sync.Mutex
	answers []ScriptedAnswer
	records []PromptRecord
}

// NewScriptedInput creates a fake input host replying with answers in order.
func NewScriptedInput(answers ...ScriptedAnswer) *ScriptedInput {
	return &ScriptedInput{answers: answers}
}

func (s *ScriptedInput) PromptText(ctx context.Context, prompt, initial string, allowEmpty bool) (string, error) {
	return s.reply(PromptRecord{Kind: "text", Prompt: prompt, Initial: initial})
}

func (s *ScriptedInput) PromptChoice(ctx context.Context, options []string, placeholder, initial string, allowAdditional, allowEmpty bool) (string, error) {
	return s.reply(PromptRecord{Kind: "choice", Prompt: placeholder, Initial: initial, Options: append([]string(nil), options...)})
}

func (s *ScriptedInput) PromptFolder(ctx context.Context, placeholder, defaultPath string) (string, error) {
	return s.reply(PromptRecord{Kind: "folder", Prompt: placeholder, Initial: defaultPath})
}

func (s *ScriptedInput) reply(record PromptRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	if len(s.answers) == 0 {
		return "", fmt.Errorf("unexpected prompt %q: no scripted answer left", record.Prompt)
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	if answer.Cancel {
		return "", input.ErrCancelled
	}
	return answer.Value, nil
}

// Prompts returns the prompts issued so far, in order.
func (s *ScriptedInput) Prompts() []PromptRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]PromptRecord(nil), s.records...)
}
