package evaluate

import "fmt"

// Message is one user-visible diagnostic produced while folding.
type Message struct {
	Text string
}

// MessageBuffer collects diagnostics for the current analysis pass.
type MessageBuffer struct {
	messages []Message
}

// Say records a diagnostic.
func (b *MessageBuffer) Say(format string, args ...any) {
	b.messages = append(b.messages, Message{Text: fmt.Sprintf(format, args...)})
}

// Messages returns the recorded diagnostics in order.
func (b *MessageBuffer) Messages() []Message { return b.messages }

// Empty reports whether no diagnostics have been recorded.
func (b *MessageBuffer) Empty() bool { return len(b.messages) == 0 }

// DiscardMessages opens a suppression scope for speculative folding. The
// returned restorer drops every message said after the call; defer it so
// the buffer is restored on every exit path.
func (b *MessageBuffer) DiscardMessages() func() {
	mark := len(b.messages)
	return func() {
		b.messages = b.messages[:mark]
	}
}

// FoldingContext is the per-pass state threaded through every folding
// routine. Folding is single-threaded; the context must not be shared
// across goroutines.
type FoldingContext struct {
	messages MessageBuffer
}

// NewFoldingContext builds a context with an empty diagnostic sink.
func NewFoldingContext() *FoldingContext {
	return &FoldingContext{}
}

// Messages returns the diagnostic sink.
func (c *FoldingContext) Messages() *MessageBuffer { return &c.messages }
