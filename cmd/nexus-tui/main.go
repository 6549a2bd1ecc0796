// Command nexus-tui runs the background network in a terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/A5-Website/atom-5-nexus/animation"
	"github.com/A5-Website/atom-5-nexus/config"
	"github.com/A5-Website/atom-5-nexus/logging"
	"github.com/A5-Website/atom-5-nexus/render"
	"github.com/A5-Website/atom-5-nexus/scene"
)

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginLeft(1)

	pausedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFF00"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)
)

// chromeRows is the height taken by the status and help lines.
const chromeRows = 2

type keyMap struct {
	Trigger key.Binding
	Pause   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Trigger: key.NewBinding(
		key.WithKeys(" ", "t"),
		key.WithHelp("space/t", "trigger"),
	),
	Pause: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "pause"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Trigger, k.Pause, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Trigger, k.Pause}, {k.Help, k.Quit}}
}

type tickMsg time.Time

type autoMsg time.Time

type model struct {
	driver   *scene.Driver
	auto     *scene.Spontaneous
	term     *render.Term
	guard    *render.Guard
	interval time.Duration
	autoIv   time.Duration
	clock    float64
	frame    animation.Frame
	paused   bool
	width    int
	height   int
	keys     keyMap
	help     help.Model
	err      error
}

func (m model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) autoTick() tea.Cmd {
	if m.autoIv <= 0 {
		return nil
	}
	return tea.Tick(m.autoIv, func(t time.Time) tea.Msg { return autoMsg(t) })
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.autoTick())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.term.Resize(msg.Width, max(1, msg.Height-chromeRows), render.DefaultCamera)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Trigger):
			_, m.err = m.auto.Fire()
		}
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if node, ok := m.nodeAt(msg.X, msg.Y); ok {
				m.err = m.driver.Trigger(node, scene.SourcePointer)
			}
		}
		return m, nil

	case autoMsg:
		if !m.paused {
			_, m.err = m.auto.Fire()
		}
		return m, m.autoTick()

	case tickMsg:
		if !m.paused {
			m.clock += m.interval.Seconds()
			m.frame = m.driver.Step(m.clock)
			if err := m.guard.Render(m.frame); err != nil {
				m.err = err
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// nodeAt returns the node drawn nearest to the terminal cell (x, y), within
// two cells.
func (m model) nodeAt(x, y int) (int, bool) {
	rows := max(1, m.height-chromeRows)
	proj := render.NewProjector(render.DefaultCamera, m.width, rows*2)
	best, bestD := -1, math.Inf(1)
	for _, n := range m.frame.Nodes {
		px, py, _, ok := proj.Project(n.Position)
		if !ok {
			continue
		}
		dx, dy := px-float64(x), (py-float64(y*2))/2
		if d := dx*dx + dy*dy; d < bestD {
			best, bestD = n.ID, d
		}
	}
	return best, best >= 0 && bestD <= 4
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(m.term.View())
	b.WriteByte('\n')

	status := fmt.Sprintf("t=%.1fs  nodes=%d  pulses=%d", m.clock, len(m.frame.Nodes), len(m.frame.VisiblePulses()))
	if m.paused {
		status += "  " + pausedStyle.Render("PAUSED")
	}
	if m.guard.FellBack() {
		status += "  " + errorStyle.Render("terminal unavailable")
	} else if m.err != nil {
		status += "  " + errorStyle.Render(m.err.Error())
	}
	b.WriteString(statusStyle.Render(status))
	b.WriteByte('\n')
	b.WriteString(statusStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	logPath := flag.String("log", "", "log file (default: discard, the terminal is in use)")
	flag.Parse()

	if err := run(*configPath, *logPath); err != nil {
		fmt.Fprintln(os.Stderr, "nexus-tui:", err)
		os.Exit(1)
	}
}

func run(configPath, logPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	var logOut io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	logger := logging.NewJSONLogger(logOut, cfg.LogLevel())

	sc, err := scene.Build(cfg.SceneParams())
	if err != nil {
		return err
	}
	driver, err := scene.NewDriver(sc, cfg.DriverOptions(logger, nil)...)
	if err != nil {
		return err
	}

	term := render.NewTerm(80, 24-chromeRows, render.DefaultCamera, render.DefaultTermStyles())
	guard := render.NewGuard(func() (render.Renderer, error) { return term, nil },
		render.WithGuardLogger(logger))
	defer guard.Close()

	m := model{
		driver:   driver,
		auto:     scene.NewSpontaneous(driver, cfg.Spontaneous.Interval, cfg.Scene.Seed+4, logger),
		term:     term,
		guard:    guard,
		interval: cfg.Server.FrameInterval,
		autoIv:   cfg.Spontaneous.Interval,
		frame:    driver.Latest(),
		width:    80,
		height:   24,
		keys:     keys,
		help:     help.New(),
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
