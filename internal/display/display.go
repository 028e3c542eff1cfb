// Package display provides the terminal UI using Bubble Tea.
//
// The [UI] renders one screen per route: the pantry (root), the grocery
// list and the recipe finder. Every screen works on the same
// engine.Session, so the terminal and the HTTP front-end share one core.
package display

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexmuntean1/freshfridge/internal/domain"
	"github.com/alexmuntean1/freshfridge/internal/engine"
	"github.com/alexmuntean1/freshfridge/internal/logger"
)

// DefaultTimeout bounds each network call started from the UI.
const DefaultTimeout = 15 * time.Second

// Option configures the UI.
type Option func(*UI)

// WithTimeout sets the per-request timeout for searches and lookups.
func WithTimeout(d time.Duration) Option {
	return func(u *UI) {
		if d > 0 {
			u.timeout = d
		}
	}
}

// WithAltScreen runs the program in the terminal's alternate screen.
func WithAltScreen() Option {
	return func(u *UI) { u.altScreen = true }
}

// UI manages the terminal through Bubble Tea.
//
// Call [NewUI] then [UI.Run] (blocking).
type UI struct {
	session   *engine.Session
	log       *logger.Logger
	timeout   time.Duration
	altScreen bool
	program   *tea.Program
}

// NewUI creates the display for one session. Call Run to start.
func NewUI(session *engine.Session, log *logger.Logger, opts ...Option) *UI {
	u := &UI{
		session: session,
		log:     log,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Run starts the Bubble Tea event loop. Blocks until the user quits or ctx
// is cancelled.
func (u *UI) Run(ctx context.Context) error {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if u.altScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	u.program = tea.NewProgram(newModel(ctx, u.session, u.timeout), opts...)

	u.log.Info("ui: starting on %s", u.session.Route())
	_, err := u.program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	session   *engine.Session
	pantry    listScreen
	groceries listScreen
	recipes   recipeScreen
	width     int
}

func newModel(ctx context.Context, s *engine.Session, timeout time.Duration) model {
	return model{
		session:   s,
		pantry:    newListScreen("Pantry", s.Pantry),
		groceries: newListScreen("Grocery list", s.Groceries),
		recipes:   newRecipeScreen(ctx, s.Recipes, timeout),
	}
}

func (m model) Init() tea.Cmd {
	return tea.SetWindowTitle("FreshFridge")
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyCtrlP:
			return m.navigate(domain.RoutePantry), nil
		case tea.KeyCtrlG:
			return m.navigate(domain.RouteGroceryList), nil
		case tea.KeyCtrlR:
			return m.navigate(domain.RouteRecipes), nil
		}
		return m.updateScreen(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case fetchDoneMsg, nutritionDoneMsg:
		m.recipes = m.recipes.done(msg)
		return m, nil

	case mergeMsg:
		added := m.session.MergeMissing(msg.recipe)
		m = m.mounted(domain.RouteGroceryList)
		m.groceries.status = mergeStatus(msg.recipe.Label, added)
		return m, nil
	}
	return m, nil
}

func (m model) updateScreen(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.session.Route() {
	case domain.RoutePantry:
		m.pantry, cmd = m.pantry.update(msg)
	case domain.RouteGroceryList:
		m.groceries, cmd = m.groceries.update(msg)
	case domain.RouteRecipes:
		m.recipes, cmd = m.recipes.update(msg)
	}
	return m, cmd
}

// navigate switches screens through the session, which mounts them.
func (m model) navigate(to domain.Route) model {
	if err := m.session.Navigate(to); err != nil {
		return m
	}
	return m.mounted(to)
}

func (m model) mounted(to domain.Route) model {
	switch to {
	case domain.RoutePantry:
		m.pantry = m.pantry.mount()
	case domain.RouteGroceryList:
		m.groceries = m.groceries.mount()
	case domain.RouteRecipes:
		m.recipes = m.recipes.mount()
	}
	return m
}

func mergeStatus(label string, added []string) string {
	if len(added) == 0 {
		return "nothing missing for " + label
	}
	return "added from " + label + ": " + strings.Join(added, ", ")
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(RenderBanner(m.width))
	b.WriteByte('\n')
	b.WriteString(m.tabs())
	b.WriteString("\n\n")

	route := m.session.Route()
	switch route {
	case domain.RoutePantry:
		b.WriteString(m.pantry.view())
	case domain.RouteGroceryList:
		b.WriteString(m.groceries.view())
	case domain.RouteRecipes:
		b.WriteString(m.recipes.view())
	}

	b.WriteByte('\n')
	b.WriteString(secondaryStyle.Render(help(route)))
	return b.String()
}

func (m model) tabs() string {
	current := m.session.Route()
	tabs := []struct {
		route domain.Route
		label string
	}{
		{domain.RoutePantry, "^P Pantry"},
		{domain.RouteGroceryList, "^G Grocery list"},
		{domain.RouteRecipes, "^R Recipes"},
	}
	var parts []string
	for _, t := range tabs {
		if t.route == current {
			parts = append(parts, activeTabStyle.Render(t.label))
		} else {
			parts = append(parts, tabStyle.Render(t.label))
		}
	}
	return strings.Join(parts, " ")
}

func help(r domain.Route) string {
	if r == domain.RouteRecipes {
		return "tab section · space toggle · ←/→ filter · f search · n nutrition · m add missing · ctrl+c quit"
	}
	return "tab field · enter add · ↑/↓ select · ctrl+x delete · ctrl+c quit"
}
