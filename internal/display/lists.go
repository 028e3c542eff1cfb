package display

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexmuntean1/freshfridge/internal/grocery"
)

const (
	focusName = iota
	focusQuantity
)

// listScreen edits one grocery.List: the pantry or the grocery list.
type listScreen struct {
	title  string
	list   *grocery.List
	name   textinput.Model
	qty    textinput.Model
	focus  int
	cursor int
	status string
}

func newInput(prompt, placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	// Plain-text prompt: styled prompts break textinput's width math.
	ti.Prompt = prompt
	ti.Placeholder = placeholder
	ti.PromptStyle = promptStyle
	ti.TextStyle = inputTextStyle
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	ti.CharLimit = limit
	ti.Width = 30
	return ti
}

func newListScreen(title string, list *grocery.List) listScreen {
	s := listScreen{
		title: title,
		list:  list,
		name:  newInput("name> ", "Apples", 64),
		qty:   newInput("qty>  ", "1", 6),
	}
	s.name.Focus()
	return s
}

// mount clamps the cursor after the list was reloaded from storage.
func (s listScreen) mount() listScreen {
	s.cursor = clamp(s.cursor, s.list.Len())
	s.status = ""
	return s
}

func (s listScreen) update(msg tea.KeyMsg) (listScreen, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyShiftTab:
		if s.focus == focusName {
			s.focus = focusQuantity
			s.name.Blur()
			return s, s.qty.Focus()
		}
		s.focus = focusName
		s.qty.Blur()
		return s, s.name.Focus()

	case tea.KeyEnter:
		return s.submit()

	case tea.KeyUp:
		if s.cursor > 0 {
			s.cursor--
		}
		return s, nil

	case tea.KeyDown:
		if s.cursor < s.list.Len()-1 {
			s.cursor++
		}
		return s, nil

	case tea.KeyCtrlX:
		items := s.list.Items()
		if s.list.Delete(s.cursor) {
			s.status = fmt.Sprintf("removed %s", items[s.cursor].Name)
		}
		s.cursor = clamp(s.cursor, s.list.Len())
		return s, nil
	}

	var cmd tea.Cmd
	if s.focus == focusName {
		s.name, cmd = s.name.Update(msg)
	} else {
		s.qty, cmd = s.qty.Update(msg)
	}
	return s, cmd
}

// submit adds the form values. A rejected entry changes nothing: the form
// keeps its values and no message is shown.
func (s listScreen) submit() (listScreen, tea.Cmd) {
	name := s.name.Value()
	qty, err := strconv.Atoi(strings.TrimSpace(s.qty.Value()))
	if err != nil {
		qty = 0
	}
	if !s.list.Add(name, qty) {
		s.status = ""
		return s, nil
	}

	s.status = fmt.Sprintf("added %s", strings.TrimSpace(name))
	s.name.Reset()
	s.qty.Reset()
	s.cursor = s.list.Len() - 1
	if s.focus != focusName {
		s.focus = focusName
		s.qty.Blur()
		return s, s.name.Focus()
	}
	return s, nil
}

func (s listScreen) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(s.title))
	b.WriteString("\n\n")

	items := s.list.Items()
	if len(items) == 0 {
		b.WriteString(secondaryStyle.Render("  (empty)"))
		b.WriteByte('\n')
	}
	for i, it := range items {
		marker := "  "
		if i == s.cursor {
			marker = cursorStyle.Render("> ")
		}
		qty := secondaryStyle.Render("-")
		if it.Quantity != nil {
			qty = primaryStyle.Render(strconv.Itoa(*it.Quantity))
		}
		fmt.Fprintf(&b, "%s%-3d %s %s\n", marker, i+1, primaryStyle.Width(28).Render(it.Name), qty)
	}

	b.WriteByte('\n')
	b.WriteString(s.name.View())
	b.WriteByte('\n')
	b.WriteString(s.qty.View())
	b.WriteByte('\n')
	if s.status != "" {
		b.WriteString(statusStyle.Render(s.status))
		b.WriteByte('\n')
	}
	return b.String()
}

// clamp keeps a cursor inside [0, n).
func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
