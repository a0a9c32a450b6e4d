package game

// Transcript is an ordered, append-only conversation history. The
// backend keeps no session state between turns, so clients hold one of
// these and send a snapshot with every request. Entries are never
// reordered, trimmed, or deduplicated.
type Transcript struct {
	messages []Message
}

func NewTranscript() *Transcript {
	return &Transcript{}
}

func (t *Transcript) AddSystem(content string) {
	t.add(RoleSystem, content)
}

func (t *Transcript) AddPlayer(content string) {
	t.add(RoleUser, content)
}

func (t *Transcript) AddNarrator(content string) {
	t.add(RoleAssistant, content)
}

func (t *Transcript) add(role, content string) {
	t.messages = append(t.messages, Message{Role: role, Content: content})
}

// Messages returns a copy so callers cannot mutate the transcript out
// from under a request already holding a snapshot.
func (t *Transcript) Messages() []Message {
	result := make([]Message, len(t.messages))
	copy(result, t.messages)
	return result
}

// Tail returns a copy of at most the last n messages. Clients use it
// to bound request payloads while keeping the full transcript locally.
func (t *Transcript) Tail(n int) []Message {
	if n <= 0 {
		return []Message{}
	}
	if n >= len(t.messages) {
		return t.Messages()
	}
	result := make([]Message, n)
	copy(result, t.messages[len(t.messages)-n:])
	return result
}

func (t *Transcript) Len() int {
	return len(t.messages)
}
