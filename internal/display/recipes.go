package display

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexmuntean1/freshfridge/internal/domain"
	"github.com/alexmuntean1/freshfridge/internal/recipe"
)

type section int

const (
	sectionIngredients section = iota
	sectionFilters
	sectionResults
	sectionCount
)

func (s section) String() string {
	switch s {
	case sectionIngredients:
		return "Ingredients"
	case sectionFilters:
		return "Filters"
	default:
		return "Recipes"
	}
}

// Messages produced by the recipe screen's commands.
type (
	fetchDoneMsg struct{ hits int }

	nutritionDoneMsg struct{ uri string }

	// mergeMsg asks the top-level model to merge a recipe into the
	// grocery list and switch screens.
	mergeMsg struct{ recipe domain.Recipe }
)

// recipeScreen drives a recipe.Browser.
type recipeScreen struct {
	browser *recipe.Browser
	ctx     context.Context
	timeout time.Duration

	section      section
	ingCursor    int
	facetCursor  int
	resultCursor int
	fetching     bool
	pending      map[string]bool
	status       string
}

func newRecipeScreen(ctx context.Context, b *recipe.Browser, timeout time.Duration) recipeScreen {
	return recipeScreen{
		browser: b,
		ctx:     ctx,
		timeout: timeout,
		pending: make(map[string]bool),
	}
}

// mount resets the cursors; the browser itself is mounted by the session.
func (s recipeScreen) mount() recipeScreen {
	s.section = sectionIngredients
	s.ingCursor, s.facetCursor, s.resultCursor = 0, 0, 0
	s.fetching = false
	s.pending = make(map[string]bool)
	s.status = ""
	return s
}

func (s recipeScreen) update(msg tea.KeyMsg) (recipeScreen, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab:
		s.section = (s.section + 1) % sectionCount
		return s, nil
	case tea.KeyShiftTab:
		s.section = (s.section + sectionCount - 1) % sectionCount
		return s, nil
	case tea.KeyUp:
		s.move(-1)
		return s, nil
	case tea.KeyDown:
		s.move(1)
		return s, nil
	case tea.KeySpace:
		if s.section == sectionIngredients {
			s.browser.ToggleAt(s.ingCursor)
		}
		return s, nil
	case tea.KeyLeft:
		s.cycleFacet(-1)
		return s, nil
	case tea.KeyRight:
		s.cycleFacet(1)
		return s, nil
	case tea.KeyRunes:
		switch string(msg.Runes) {
		case " ":
			if s.section == sectionIngredients {
				s.browser.ToggleAt(s.ingCursor)
			}
			return s, nil
		case "f":
			return s.fetch()
		case "n":
			return s.nutrition()
		case "m":
			if r, ok := s.highlighted(); ok {
				return s, func() tea.Msg { return mergeMsg{recipe: r} }
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *recipeScreen) move(delta int) {
	switch s.section {
	case sectionIngredients:
		s.ingCursor = clamp(s.ingCursor+delta, len(s.browser.Ingredients()))
	case sectionFilters:
		s.facetCursor = clamp(s.facetCursor+delta, len(domain.Facets))
	case sectionResults:
		s.resultCursor = clamp(s.resultCursor+delta, len(s.browser.Results()))
	}
}

// cycleFacet steps the highlighted facet through "" and its options.
func (s *recipeScreen) cycleFacet(delta int) {
	if s.section != sectionFilters {
		return
	}
	f := domain.Facets[s.facetCursor]
	values := append([]string{""}, f.Options()...)
	cur := s.browser.Filters().Get(f)

	idx := 0
	for i, v := range values {
		if v == cur {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(values)) % len(values)
	if err := s.browser.SetFilter(f, values[idx]); err != nil {
		s.status = err.Error()
	}
}

func (s recipeScreen) fetch() (recipeScreen, tea.Cmd) {
	s.fetching = true
	s.status = "searching..."
	s.resultCursor = 0
	b, ctx, timeout := s.browser, s.ctx, s.timeout
	return s, func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return fetchDoneMsg{hits: len(b.Fetch(ctx))}
	}
}

func (s recipeScreen) nutrition() (recipeScreen, tea.Cmd) {
	r, ok := s.highlighted()
	if !ok {
		return s, nil
	}
	s.pending[r.URI] = true
	b, ctx, timeout := s.browser, s.ctx, s.timeout
	return s, func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		b.LookupNutrition(ctx, r)
		return nutritionDoneMsg{uri: r.URI}
	}
}

func (s recipeScreen) highlighted() (domain.Recipe, bool) {
	if s.section != sectionResults {
		return domain.Recipe{}, false
	}
	hits := s.browser.Results()
	if s.resultCursor < 0 || s.resultCursor >= len(hits) {
		return domain.Recipe{}, false
	}
	return hits[s.resultCursor].Recipe, true
}

func (s recipeScreen) done(msg tea.Msg) recipeScreen {
	switch msg := msg.(type) {
	case fetchDoneMsg:
		s.fetching = false
		s.resultCursor = clamp(s.resultCursor, msg.hits)
		if msg.hits == 0 {
			s.status = "no recipes"
		} else {
			s.status = fmt.Sprintf("%d recipe(s)", msg.hits)
			s.section = sectionResults
		}
	case nutritionDoneMsg:
		delete(s.pending, msg.uri)
	}
	return s
}

func (s recipeScreen) view() string {
	boxes := []string{
		s.box(sectionIngredients, s.ingredientsView()),
		s.box(sectionFilters, s.filtersView()),
		s.box(sectionResults, s.resultsView()),
	}
	out := strings.Join(boxes, "\n")
	if s.status != "" {
		out += "\n" + statusStyle.Render(s.status) + "\n"
	}
	return out
}

func (s recipeScreen) box(sec section, body string) string {
	style := sectionStyle
	if s.section == sec {
		style = activeSectionStyle
	}
	return style.Render(titleStyle.Render(sec.String()) + "\n" + strings.TrimRight(body, "\n"))
}

func (s recipeScreen) ingredientsView() string {
	ings := s.browser.Ingredients()
	if len(ings) == 0 {
		return secondaryStyle.Render("pantry is empty")
	}
	var b strings.Builder
	for i, ing := range ings {
		box := "[ ]"
		if s.browser.IsSelected(ing) {
			box = checkedStyle.Render("[x]")
		}
		fmt.Fprintf(&b, "%s%s %s\n", s.marker(sectionIngredients, i, s.ingCursor), box, primaryStyle.Render(ing.Name))
	}
	return b.String()
}

func (s recipeScreen) filtersView() string {
	fs := s.browser.Filters()
	var b strings.Builder
	for i, f := range domain.Facets {
		v := fs.Get(f)
		if v == "" {
			v = secondaryStyle.Render("any")
		} else {
			v = checkedStyle.Render(v)
		}
		fmt.Fprintf(&b, "%s%s < %s >\n", s.marker(sectionFilters, i, s.facetCursor), primaryStyle.Width(13).Render(f.String()), v)
	}
	return b.String()
}

func (s recipeScreen) resultsView() string {
	if s.fetching {
		return secondaryStyle.Render("searching...")
	}
	hits := s.browser.Results()
	if len(hits) == 0 {
		return secondaryStyle.Render("no recipes yet: select ingredients and press f")
	}

	var b strings.Builder
	for i, h := range hits {
		r := h.Recipe
		fmt.Fprintf(&b, "%s%s\n", s.marker(sectionResults, i, s.resultCursor), titleStyle.Render(r.Label))
		for _, line := range r.Lines() {
			b.WriteString(secondaryStyle.Render("    - " + line))
			b.WriteByte('\n')
		}
		switch n, ok := s.browser.Nutrition(r.URI); {
		case s.pending[r.URI]:
			b.WriteString(secondaryStyle.Render("    loading nutrition..."))
			b.WriteByte('\n')
		case ok:
			b.WriteString(nutritionView(n))
		}
	}
	return b.String()
}

func nutritionView(n *domain.Nutrition) string {
	var parts []string
	for _, f := range n.Facts() {
		v := f.Value
		if v != "" && f.Unit != "" {
			v += " " + f.Unit
		}
		parts = append(parts, f.Label+": "+v)
	}
	return "    " + checkedStyle.Render(strings.Join(parts, "  ")) + "\n"
}

func (s recipeScreen) marker(sec section, i, cursor int) string {
	if s.section == sec && i == cursor {
		return cursorStyle.Render("> ")
	}
	return "  "
}
