package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/pantry/internal/model"
)

const (
	fieldName = iota
	fieldCategory
	fieldQuantity
	fieldExpires
	fieldNote
	fieldEmoji
)

var fieldLabels = []string{"Name", "Category", "Quantity", "Expires", "Note", "Emoji"}

var fieldPlaceholders = []string{
	"Eggs",
	"dairy, meat, vegetables, fruits, grains, condiments, snacks, beverages, other",
	"1 dozen",
	"YYYY-MM-DD, today, tomorrow or +N",
	"",
	"defaults to the category icon",
}

// form is the inline add-item form.
type form struct {
	inputs []textinput.Model
	focus  int
	err    string
}

func newForm() form {
	f := form{inputs: make([]textinput.Model, len(fieldLabels))}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = fieldPlaceholders[i]
		ti.CharLimit = 200
		f.inputs[i] = ti
	}
	return f
}

// focusField moves focus, wrapping around at both ends.
func (f *form) focusField(i int) tea.Cmd {
	n := len(f.inputs)
	i = ((i % n) + n) % n
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	f.focus = i
	return f.inputs[i].Focus()
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// draft collects the form values. Only the expiration can fail here;
// name and category are left to the store's validation.
func (f form) draft(now time.Time) (model.Draft, int, error) {
	exp, err := model.ParseExpiry(f.inputs[fieldExpires].Value(), now)
	if err != nil {
		return model.Draft{}, fieldExpires, err
	}
	return model.Draft{
		Name:      f.inputs[fieldName].Value(),
		Category:  f.inputs[fieldCategory].Value(),
		Quantity:  f.inputs[fieldQuantity].Value(),
		ExpiresAt: exp,
		Note:      f.inputs[fieldNote].Value(),
		Emoji:     f.inputs[fieldEmoji].Value(),
	}, 0, nil
}

func (f form) view() string {
	var b strings.Builder
	title := "Add item"
	if f.err != "" {
		title += "  " + errorStyle.Render(f.err)
	}
	b.WriteString(title)
	for i, in := range f.inputs {
		label := mutedStyle.Render(padRight(fieldLabels[i], 9))
		if i == f.focus {
			label = accentStyle.Render(padRight(fieldLabels[i], 9))
		}
		b.WriteString("\n" + label + in.View())
	}
	return b.String()
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
