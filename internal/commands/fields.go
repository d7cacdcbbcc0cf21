package commands

import (
	"strings"

	"github.com/sandeepkv93/todolist/internal/model"
)

// TaskFields is free text with optional inline tokens pulled out:
// "!low", "!medium", "!high" and "due:YYYY-MM-DD" ("due:none" clears).
type TaskFields struct {
	Text     string
	Priority model.Priority
	Due      model.Date
	// DueSet reports that a due token was present, including due:none.
	DueSet bool
}

func ParseTaskFields(input string) (TaskFields, error) {
	var out TaskFields
	words := make([]string, 0, 8)
	for _, tok := range strings.Fields(input) {
		lower := strings.ToLower(tok)
		switch {
		case isPriorityToken(lower):
			out.Priority = model.Priority(lower[1:])
		case strings.HasPrefix(lower, "due:"):
			v := lower[len("due:"):]
			out.DueSet = true
			if v == "none" || v == "" {
				out.Due = model.Date{}
				continue
			}
			d, err := model.ParseDate(v)
			if err != nil {
				return TaskFields{}, invalid("due date must be YYYY-MM-DD, got %q", v)
			}
			out.Due = d
		default:
			words = append(words, tok)
		}
	}
	out.Text = strings.Join(words, " ")
	return out, nil
}

// Values treats f as the whole field set: no priority token means medium
// and no due token means no date.
func (f TaskFields) Values() (string, model.Priority, model.Date) {
	prio := f.Priority
	if prio == "" {
		prio = model.PriorityMedium
	}
	return f.Text, prio, f.Due
}

// Merge fills fields the input left out from base.
func (f TaskFields) Merge(base model.Task) (string, model.Priority, model.Date) {
	text, prio, due := f.Text, f.Priority, f.Due
	if text == "" {
		text = base.Text
	}
	if prio == "" {
		prio = base.Priority
	}
	if !f.DueSet {
		due = base.DueDate
	}
	return text, prio, due
}

// isPriorityToken matches "!low", "!medium" and "!high". Other words that
// start with "!" stay in the text.
func isPriorityToken(lower string) bool {
	if !strings.HasPrefix(lower, "!") {
		return false
	}
	_, err := model.ParsePriority(lower[1:])
	return err == nil && lower != "!"
}

// FormatTaskFields renders t back into editable input.
func FormatTaskFields(t model.Task) string {
	var b strings.Builder
	b.WriteString(t.Text)
	if t.Priority != "" && t.Priority != model.PriorityMedium {
		b.WriteString(" !")
		b.WriteString(string(t.Priority))
	}
	if !t.DueDate.IsZero() {
		b.WriteString(" due:")
		b.WriteString(t.DueDate.String())
	}
	return b.String()
}
