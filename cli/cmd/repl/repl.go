package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/phrasegen/log"
	"github.com/ardnew/phrasegen/modifier"
	"github.com/ardnew/phrasegen/phrase"
	"github.com/ardnew/phrasegen/variant"
)

// Session is the state templates entered in the REPL are built against.
type Session struct {
	Bindings      map[string]any
	Variants      variant.Dictionary
	Modifiers     *modifier.Registry
	MaxExpansions int
	Logger        log.Logger
}

// build expands a single template.
func (s Session) build(ctx context.Context, input string) ([]phrase.Result, error) {
	return phrase.New(
		phrase.WithModifiers(s.Modifiers),
		phrase.WithVariants(s.Variants),
		phrase.WithMaxExpansions(s.MaxExpansions),
		phrase.WithLogger(s.Logger),
	).With([]string{input}).Build(ctx, s.Bindings)
}

// editBindingsMsg is sent when bindings editing completes successfully.
type editBindingsMsg struct{ vars map[string]any }

// editCancelledMsg is sent when the user cleared the editor content.
type editCancelledMsg struct{}

// editDeclinedMsg is sent when the user declined to re-edit after a decode
// error.
type editDeclinedMsg struct{}

// editErrorMsg is sent when the edit process encounters any other error.
type editErrorMsg struct{ err error }

const (
	templatePrompt = "» "
	ctrlPrompt     = " :"
)

const helpMessage = `
: Commands (press Esc to toggle mode):

  help       Print this message
  modifiers  List modifiers
  variants   List variant sets
  vars       Print variable bindings
  edit       Edit variable bindings in external $EDITOR
  clear      Clear screen
  quit       Exit REPL

Usage:
  Type a phrase template to print its expansions
  Completions appear after '$' (bindings) and '|' (modifiers)
  Press Tab / Shift-Tab to cycle through candidates
  Press Esc to toggle between template and command modes
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Press Ctrl+C on empty line or Ctrl+D to exit
`

// inputMode is the kind of line being entered.
type inputMode int

const (
	modeTemplate inputMode = iota
	modeCtrl
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	hintNameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle      = suggestionStyle.Bold(true)
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
)

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc    func() context.Context
	input      textinput.Model
	session    Session
	history    *History
	historyIdx int
	matches    fuzzy.Matches // current fuzzy match results
	wordStart  int           // byte offset of current word start
	wordEnd    int           // byte offset of current word end
	suggIdx    int           // selected candidate index
	tabActive  bool          // whether user is tab-cycling
	preTab     string        // input text before tab-cycling began
	preTabPos  int           // cursor position before tab-cycling began
	width      int
	quitting   bool
	mode       inputMode
	saved      [2]savedInput // input of each mode while the other is active
}

type savedInput struct {
	text   string
	cursor int
}

// Run starts an interactive session that builds each entered template.
// History is persisted to historyPath, unless it is empty.
func Run(ctx context.Context, session Session, historyPath string) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if session.Modifiers == nil {
		session.Modifiers = modifier.Default()
	}

	if session.Bindings == nil {
		session.Bindings = map[string]any{}
	}

	history := NewHistory(historyPath)
	if err := history.Load(); err != nil {
		session.Logger.WarnContext(ctx, "could not load history",
			slog.String("path", historyPath),
			slog.Any("error", err),
		)
	}

	session.Logger.TraceContext(ctx, "repl start",
		slog.Int("history", history.Len()),
		slog.Int("bindings", len(session.Bindings)),
		slog.Int("variant_sets", session.Variants.Len()),
	)

	p := tea.NewProgram(newModel(ctx, session, history), tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(ctx context.Context, session Session, history *History) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(templatePrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		session:    session,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
		mode:       modeTemplate,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(templatePrompt) - 2

		return m, nil

	case editBindingsMsg:
		m.session.Bindings = msg.vars
		m.session.Logger.TraceContext(m.ctxFunc(), "repl edit complete",
			slog.Int("bindings", len(msg.vars)),
		)

		return m, tea.Println(resultStyle.Render("bindings updated"))

	case editCancelledMsg:
		return m, tea.Println(hintStyle.Render("edit cancelled"))

	case editDeclinedMsg:
		m.quitting = true

		return m, tea.Quit

	case editErrorMsg:
		return m, tea.Println(errorStyle.Render("error: " + msg.err.Error()))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	return m.input.View() + "\n" + m.statusLine() + "\n"
}

// statusLine renders the line beneath the input: the history position, a
// usage hint, the modifier under the cursor, or the completion candidates.
func (m model) statusLine() string {
	input := m.input.Value()

	switch {
	case m.historyIdx < m.history.Len():
		return hintStyle.Render(fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len()))

	case strings.TrimSpace(input) == "":
		if m.mode == modeTemplate {
			return hintStyle.Render("Type a phrase template or press Esc for commands")
		}

		return hintStyle.Render("Type: " + strings.Join(ctrlCommands, ", ") + " (press Esc to return)")

	case len(m.matches) > 0:
		return renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width)

	case m.mode == modeTemplate:
		return modifierHint(m.session.Modifiers, input, m.input.Position())
	}

	return ""
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		m.refreshMatches(false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if m.tabActive && len(m.matches) > 0 {
			// Lock in the current candidate without executing.
			m.tabActive = false
			m.refreshMatches(true)

			return m, nil
		}

		return m.executeInput()

	case tea.KeyTab:
		return m.cycle(+1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyStep(-1, false), nil

	case tea.KeyDown:
		return m.historyStep(+1, false), nil

	case tea.KeyShiftUp:
		return m.historyStep(-1, true), nil

	case tea.KeyShiftDown:
		return m.historyStep(+1, true), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTab)
			m.input.SetCursor(m.preTabPos)
			m.refreshMatches(false)

			return m, nil
		}

		return m.switchToMode(1 - m.mode), nil
	}

	var cmd tea.Cmd

	// Any other key ends tab-cycling and keeps the selected candidate.
	m.tabActive = false
	typed := msg.Type == tea.KeyRunes

	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refreshMatches(typed)

	return m, cmd
}

// cycle moves the selected completion candidate by dir, completing the word
// at the cursor. A sole candidate is accepted immediately.
func (m model) cycle(dir int) model {
	if len(m.matches) == 0 {
		return m
	}

	if len(m.matches) == 1 {
		m.replaceWord(m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	if m.tabActive {
		m.suggIdx = (m.suggIdx + dir + len(m.matches)) % len(m.matches)
	} else {
		m.tabActive = true
		m.preTab = m.input.Value()
		m.preTabPos = m.input.Position()

		m.suggIdx = 0
		if dir < 0 {
			m.suggIdx = len(m.matches) - 1
		}
	}

	m.replaceWord(m.matches[m.suggIdx].Str)

	return m
}

// replaceWord replaces the current word with s and moves the cursor after it.
func (m *model) replaceWord(s string) {
	input := m.input.Value()

	m.input.SetValue(input[:m.wordStart] + s + input[m.wordEnd:])
	m.input.SetCursor(m.wordStart + len(s))
	m.wordEnd = m.wordStart + len(s)
}

// refreshMatches recomputes the completion candidates. When autoConfirm is
// set, a typed word equal to the sole candidate is accepted.
func (m *model) refreshMatches(autoConfirm bool) {
	m.matches, _, m.wordStart, m.wordEnd = m.computeMatches()
	m.suggIdx = -1

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	if m.input.Value()[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.matches = nil
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.saved = [2]savedInput{}
	m.input.SetValue("")
	m.matches = nil

	if err := m.history.Add(input, m.mode); err != nil {
		m.session.Logger.WarnContext(m.ctxFunc(), "could not save history",
			slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	if m.mode == modeCtrl {
		return m.executeCommand(input)
	}

	return m, tea.Sequence(
		tea.Println(promptStyle.Render(templatePrompt)+inputStyle.Render(input)),
		tea.Println(m.expand(input)),
	)
}

// expand builds input and renders its results.
func (m model) expand(input string) string {
	ctx := m.ctxFunc()

	results, err := m.session.build(ctx, input)

	m.session.Logger.TraceContext(ctx, "repl build",
		slog.String("template", input),
		slog.Int("results", len(results)),
		slog.Bool("success", err == nil),
	)

	if err != nil {
		return errorStyle.Render("error: " + err.Error())
	}

	return renderResults(results)
}

// renderResults renders one result per line, followed by its annotations.
func renderResults(results []phrase.Result) string {
	if len(results) == 0 {
		return hintStyle.Render("(no results)")
	}

	lines := make([]string, len(results))

	for i, r := range results {
		lines[i] = resultStyle.Render(r.Text)

		if len(r.Annotations) > 0 {
			lines[i] += hintStyle.Render("  @" + strings.Join(r.Annotations, " @"))
		}
	}

	return strings.Join(lines, "\n")
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	echo := tea.Println(ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input))

	name, _, _ := strings.Cut(input, " ")

	m.session.Logger.TraceContext(m.ctxFunc(), "repl command",
		slog.String("command", name))

	switch name {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo, tea.Printf("%s", helpMessage))

	case "m", "modifiers":
		return m, tea.Sequence(echo, tea.Println(m.listModifiers()))

	case "v", "variants":
		return m, tea.Sequence(echo, tea.Println(m.listVariants()))

	case "vars":
		return m, tea.Sequence(echo, tea.Println(m.showBindings()))

	case "c", "clear":
		return m, tea.ClearScreen

	case "e", "edit":
		return m, tea.Sequence(echo, m.editBindings())
	}

	return m, tea.Println(errorStyle.Render("Unknown command: " + name + " (try 'help')"))
}

func (m model) listModifiers() string {
	var b strings.Builder

	for _, mod := range m.session.Modifiers.All() {
		b.WriteString("  " + renderModifierHint(mod) + "\n")
	}

	return b.String()
}

func (m model) listVariants() string {
	names := m.session.Variants.Names()
	if len(names) == 0 {
		return hintStyle.Render("  (no variant sets)")
	}

	var b strings.Builder

	for _, name := range names {
		set, _ := m.session.Variants.Set(name)
		fmt.Fprintf(&b, "  #%s %s\n", name, hintStyle.Render(fmt.Sprintf("{ %d words }", len(set))))
	}

	return b.String()
}

func (m model) showBindings() string {
	if len(m.session.Bindings) == 0 {
		return hintStyle.Render("  (no bindings)")
	}

	data, err := yaml.Marshal(m.session.Bindings)
	if err != nil {
		return errorStyle.Render("error: " + err.Error())
	}

	return strings.TrimRight(string(data), "\n")
}

func (m model) editBindings() tea.Cmd {
	cmd := &editBindingsCommand{
		vars:    m.session.Bindings,
		ctxFunc: m.ctxFunc,
		logger:  m.session.Logger,
	}

	return tea.Exec(cmd, func(err error) tea.Msg {
		switch {
		case errors.Is(err, ErrEditDeclined):
			return editDeclinedMsg{}
		case err != nil:
			return editErrorMsg{err: err}
		case cmd.edited == nil:
			return editCancelledMsg{}
		}

		return editBindingsMsg{vars: cmd.edited}
	})
}

// historyStep moves through history by dir. With sameMode, entries of the
// other mode are skipped; otherwise the mode follows the entry. Stepping past
// the newest entry clears the input.
func (m model) historyStep(dir int, sameMode bool) model {
	i := m.historyIdx + dir
	if sameMode {
		i = m.history.Search(m.historyIdx, dir, m.mode)
	}

	entry, err := m.history.Entry(i)
	if err != nil {
		if dir > 0 && m.historyIdx < m.history.Len() {
			m.historyIdx = m.history.Len()
			m.input.SetValue("")
			m.refreshMatches(false)
		}

		return m
	}

	m.historyIdx = i
	if entry.Mode != m.mode {
		m = m.switchToMode(entry.Mode)
	}

	m.input.SetValue(entry.Line)
	m.input.SetCursor(len(entry.Line))
	m.refreshMatches(false)

	return m
}

// switchToMode switches to mode, saving the input of the current mode and
// restoring that of the new one.
func (m model) switchToMode(mode inputMode) model {
	m.saved[m.mode].text = m.input.Value()
	m.saved[m.mode].cursor = m.input.Position()
	m.tabActive = false

	m.mode = mode
	if mode == modeTemplate {
		m.input.Prompt = promptStyle.Render(templatePrompt)
	} else {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
	}

	m.input.SetValue(m.saved[mode].text)
	m.input.SetCursor(m.saved[mode].cursor)
	m.refreshMatches(false)

	return m
}
