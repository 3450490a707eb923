package vmp

import "strings"

// MemoryType tags the canonical memory-object shapes the VMP demo apps write.
type MemoryType string

const (
	MemoryTypePreference  MemoryType = "preference"
	MemoryTypeProfileFact MemoryType = "profile_fact"
	MemoryTypeTask        MemoryType = "task"
	MemoryTypeSummary     MemoryType = "summary"
)

// namespaceFor maps a memory type to the namespace prefix of its memory id.
func namespaceFor(t MemoryType) (string, bool) {
	switch t {
	case MemoryTypePreference:
		return "pref", true
	case MemoryTypeProfileFact:
		return "fact", true
	case MemoryTypeTask:
		return "task", true
	case MemoryTypeSummary:
		return "summary", true
	default:
		return "", false
	}
}

// MemoryObject is one of the canonical memory payloads. Variants are plain
// structs; Fields flattens to the open wire map only at serialization time.
// The memory id identifies the logical memory slot within a tenant and scope:
// the same type and key always derive the same id.
type MemoryObject interface {
	MemoryType() MemoryType
	MemoryID() string
	Fields() map[string]any
}

func memoryID(t MemoryType, key string) (string, error) {
	key = strings.TrimSpace(key)
	if err := validateMemoryKey(key); err != nil {
		return "", err
	}
	ns, ok := namespaceFor(t)
	if !ok {
		return "", newValidationError("memory_type", "unknown memory type "+string(t))
	}
	return ns + ":" + key, nil
}

// Preference records a stable user preference under a caller-chosen key.
type Preference struct {
	ID    string
	Key   string
	Value string
}

// NewPreference builds a preference memory. Identical inputs always produce
// an identical object with id "pref:<key>".
func NewPreference(key, value string) (Preference, error) {
	id, err := memoryID(MemoryTypePreference, key)
	if err != nil {
		return Preference{}, err
	}
	if err := validateNonEmpty("value", value); err != nil {
		return Preference{}, err
	}
	return Preference{ID: id, Key: strings.TrimSpace(key), Value: value}, nil
}

func (p Preference) MemoryType() MemoryType { return MemoryTypePreference }
func (p Preference) MemoryID() string       { return p.ID }

func (p Preference) Fields() map[string]any {
	return map[string]any{
		"memory_type": string(MemoryTypePreference),
		"memory_id":   p.ID,
		"key":         p.Key,
		"value":       p.Value,
	}
}

// ProfileFact records a durable fact about the user.
type ProfileFact struct {
	ID   string
	Key  string
	Fact string
}

// NewProfileFact builds a profile-fact memory with id "fact:<key>".
func NewProfileFact(key, fact string) (ProfileFact, error) {
	id, err := memoryID(MemoryTypeProfileFact, key)
	if err != nil {
		return ProfileFact{}, err
	}
	if err := validateNonEmpty("fact", fact); err != nil {
		return ProfileFact{}, err
	}
	return ProfileFact{ID: id, Key: strings.TrimSpace(key), Fact: fact}, nil
}

func (f ProfileFact) MemoryType() MemoryType { return MemoryTypeProfileFact }
func (f ProfileFact) MemoryID() string       { return f.ID }

func (f ProfileFact) Fields() map[string]any {
	return map[string]any{
		"memory_type": string(MemoryTypeProfileFact),
		"memory_id":   f.ID,
		"key":         f.Key,
		"fact":        f.Fact,
	}
}

// TaskStatus is the lifecycle state of a task memory.
type TaskStatus string

const (
	TaskStatusOpen TaskStatus = "open"
	TaskStatusDone TaskStatus = "done"
)

// Task records a tracked task with id "task:<key>".
type Task struct {
	ID     string
	Key    string
	Title  string
	Status TaskStatus
}

// NewTask builds an open task memory.
func NewTask(key, title string) (Task, error) {
	id, err := memoryID(MemoryTypeTask, key)
	if err != nil {
		return Task{}, err
	}
	if err := validateNonEmpty("title", title); err != nil {
		return Task{}, err
	}
	return Task{ID: id, Key: strings.TrimSpace(key), Title: title, Status: TaskStatusOpen}, nil
}

func (t Task) MemoryType() MemoryType { return MemoryTypeTask }
func (t Task) MemoryID() string       { return t.ID }

func (t Task) Fields() map[string]any {
	return map[string]any{
		"memory_type": string(MemoryTypeTask),
		"memory_id":   t.ID,
		"key":         t.Key,
		"title":       t.Title,
		"status":      string(t.Status),
	}
}

// Summary records a rolling conversation summary with id "summary:<key>".
type Summary struct {
	ID   string
	Key  string
	Text string
}

// NewSummary builds a summary memory.
func NewSummary(key, text string) (Summary, error) {
	id, err := memoryID(MemoryTypeSummary, key)
	if err != nil {
		return Summary{}, err
	}
	if err := validateNonEmpty("text", text); err != nil {
		return Summary{}, err
	}
	return Summary{ID: id, Key: strings.TrimSpace(key), Text: text}, nil
}

func (s Summary) MemoryType() MemoryType { return MemoryTypeSummary }
func (s Summary) MemoryID() string       { return s.ID }

func (s Summary) Fields() map[string]any {
	return map[string]any{
		"memory_type": string(MemoryTypeSummary),
		"memory_id":   s.ID,
		"key":         s.Key,
		"text":        s.Text,
	}
}

// DeleteTarget names the logical memory slot a delete event is aimed at. It
// derives the same deterministic id a builder would, so callers can target a
// slot without holding the original object.
type DeleteTarget struct {
	MemoryID string
}

// NewDeleteTarget derives the delete target for a memory type and key.
func NewDeleteTarget(t MemoryType, key string) (DeleteTarget, error) {
	id, err := memoryID(t, key)
	if err != nil {
		return DeleteTarget{}, err
	}
	return DeleteTarget{MemoryID: id}, nil
}
