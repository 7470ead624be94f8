package viz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/quanticle/internal/dynamo"
	"github.com/san-kum/quanticle/internal/loop"
	"github.com/san-kum/quanticle/internal/params"
	"github.com/san-kum/quanticle/internal/sandbox"
	"github.com/san-kum/quanticle/internal/scene"
	"github.com/san-kum/quanticle/internal/sim"
	"go.uber.org/zap"
)

const (
	canvasWidth   = 60
	canvasHeight  = 20
	traceCapacity = 300
)

type frameMsg time.Time

type configLoadedMsg struct {
	session uuid.UUID
	loaded  sandbox.Loaded
}

type Options struct {
	Variant    params.Variant
	Initial    map[params.Variant]params.Parameters
	Configs    sandbox.ConfigSource
	ConfigID   string
	Policy     params.Policy
	Integrator string
	FPS        int
	Theme      string
	Engine     sandbox.EngineFactory
	Log        *zap.Logger
}

type noConfigs struct{}

func (noConfigs) Load(context.Context, string) (sandbox.SavedConfig, error) {
	return sandbox.SavedConfig{}, dynamo.ErrNotFound
}

// App is the terminal host. Every frameMsg presents one frame of the queue;
// key presses and config loads run between frames on the same goroutine.
type App struct {
	opts    Options
	log     *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
	queue   *loop.FrameQueue
	host    *sim.Host
	surface *BrailleSurface

	variant  params.Variant
	current  map[params.Variant]params.Parameters
	resetKey int
	selected int
	tool     sandbox.Toolbox

	last     dynamo.Sample
	have     bool
	trace    []float64
	loading  bool
	paused   bool
	showHelp bool
	status   string
	err      error
	theme    Theme
	st       styles
	frame    int
	quitting bool
}

func NewApp(opts Options) *App {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Configs == nil {
		opts.Configs = noConfigs{}
	}
	if opts.ConfigID == "" {
		opts.ConfigID = sandbox.DefaultConfigID
	}

	a := &App{
		opts:    opts,
		log:     opts.Log,
		queue:   loop.NewFrameQueue(),
		variant: opts.Variant,
		current: make(map[params.Variant]params.Parameters),
		trace:   make([]float64, 0, traceCapacity),
		tool:    sandbox.DefaultToolbox(),
		theme:   GetTheme(opts.Theme),
	}
	a.st = newStyles(a.theme)
	a.ctx, a.cancel = context.WithCancel(context.Background())

	for _, v := range params.Variants() {
		if p, ok := opts.Initial[v]; ok && p != nil {
			a.current[v] = p
			continue
		}
		a.current[v], _ = params.Defaults(v)
	}
	a.current[params.VariantSandbox] = params.Sandbox{ConfigID: opts.ConfigID}

	factory := BrailleFactory(canvasWidth, canvasHeight, func(s *BrailleSurface) { a.surface = s })
	a.host = sim.NewHost(sim.Options{
		Scenes:     scene.NewManager(factory, a.log),
		Scheduler:  a.queue,
		Engine:     opts.Engine,
		Publisher:  loop.PublisherFunc(a.publish),
		Policy:     opts.Policy,
		Integrator: opts.Integrator,
		Log:        a.log,
	})
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.remount(), a.tick())
}

func (a *App) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(a.opts.FPS), func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (a *App) publish(s dynamo.Sample) {
	a.last, a.have = s, true
	a.trace = append(a.trace, traceValue(s))
	if len(a.trace) > traceCapacity {
		a.trace = a.trace[1:]
	}
}

// remount pushes the current parameters and reset key to the host.
func (a *App) remount() tea.Cmd {
	s, d, err := a.host.Mount(a.ctx, params.Mount{Params: a.current[a.variant], ResetKey: a.resetKey})
	if err != nil {
		a.err = err
		a.log.Warn("mount rejected", zap.Error(err), zap.Stringer("variant", a.variant))
		return nil
	}
	a.err = nil
	if d == params.NoOp {
		return nil
	}
	a.current[a.variant] = s.Mount.Params
	a.have = false
	a.trace = a.trace[:0]
	a.status = ""

	sp, ok := s.Mount.Params.(params.Sandbox)
	if !ok {
		a.loading = false
		return nil
	}
	a.loading = true
	return a.loadConfig(s.ID, sp.ConfigID)
}

func (a *App) loadConfig(session uuid.UUID, configID string) tea.Cmd {
	ctx, src := a.ctx, a.opts.Configs
	return func() tea.Msg {
		cfg, err := sandbox.LoadOrDefault(ctx, src, configID)
		return configLoadedMsg{session: session, loaded: sandbox.Loaded{ID: configID, Config: cfg, Err: err}}
	}
}

func (a *App) applyConfig(msg configLoadedMsg) {
	s := a.host.Active()
	if s == nil || s.ID != msg.session || s.Sandbox() == nil {
		a.log.Debug("stale sandbox config dropped", zap.String("config", msg.loaded.ID))
		return
	}
	if msg.loaded.Err != nil {
		a.err = msg.loaded.Err
		a.log.Warn("sandbox config load failed", zap.Error(msg.loaded.Err), zap.String("config", msg.loaded.ID))
		return
	}
	if err := s.Sandbox().Apply(msg.loaded.Config); err != nil {
		a.err = err
		return
	}
	a.loading = false
	a.status = "config " + msg.loaded.ID + " ready"
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		if a.quitting {
			return a, nil
		}
		a.frame++
		if !a.paused {
			a.queue.Present()
		}
		return a, a.tick()
	case configLoadedMsg:
		a.applyConfig(msg)
	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		a.Shutdown()
		return a, tea.Quit
	case "1", "2", "3", "4":
		v := params.Variant(key[0] - '1')
		if v != a.variant {
			a.variant, a.selected = v, 0
			return a, a.remount()
		}
	case "tab":
		if n := len(params.Fields(a.current[a.variant])); n > 0 {
			a.selected = (a.selected + 1) % n
		}
	case "up", "k":
		return a, a.nudge(1)
	case "down", "j":
		return a, a.nudge(-1)
	case "r":
		a.resetKey++
		return a, a.remount()
	case " ":
		a.paused = !a.paused
	case "?":
		a.showHelp = !a.showHelp
	case "t":
		a.theme = NextTheme(a.theme.Name)
		a.st = newStyles(a.theme)
	case "left", "h":
		a.withCamera(func(c *scene.Camera) { c.Orbit(-0.1) })
	case "right", "l":
		a.withCamera(func(c *scene.Camera) { c.Orbit(0.1) })
	case "+", "=":
		a.withCamera(func(c *scene.Camera) { c.Dolly(0.9) })
	case "-", "_":
		a.withCamera(func(c *scene.Camera) { c.Dolly(1.1) })
	case "s", "b", "o", "c", "g", "enter":
		a.sandboxKey(key)
	case "m", "n", "p":
		a.toolKey(key)
	}
	return a, nil
}

func (a *App) nudge(delta int) tea.Cmd {
	p := a.current[a.variant]
	fields := params.Fields(p)
	if len(fields) == 0 {
		return nil
	}
	next, err := params.Nudge(p, fields[a.selected%len(fields)].Name, delta)
	if err != nil {
		a.err = err
		return nil
	}
	a.current[a.variant] = next
	return a.remount()
}

func (a *App) withCamera(fn func(*scene.Camera)) {
	if s := a.host.Active(); s != nil && !s.Scene().Disposed() {
		fn(&s.Scene().Scene().Camera)
	}
}

func (a *App) sandboxKey(key string) {
	s := a.host.Active()
	if s == nil || s.Sandbox() == nil {
		return
	}
	sb := s.Sandbox()
	var err error
	switch key {
	case "s":
		_, err = sb.SpawnDefault()
	case "b":
		a.tool.Shape = dynamo.ShapeBox
		_, err = sb.SpawnTool(a.tool)
	case "o":
		a.tool.Shape = dynamo.ShapeSphere
		_, err = sb.SpawnTool(a.tool)
	case "enter":
		_, err = sb.SpawnTool(a.tool)
	case "c":
		sb.ResetScene()
	case "g":
		err = sb.SetGravity(!sb.Gravity())
	}
	switch {
	case errors.Is(err, dynamo.ErrConfigNotReady):
		a.status = "still loading"
	case err != nil:
		a.err = err
	default:
		a.status = fmt.Sprintf("%d bodies, gravity %v", sb.Len(), sb.Gravity())
	}
}

// toolKey edits the spawn tool. It works in every variant so the tool can be
// prepared before the sandbox config has loaded.
func (a *App) toolKey(key string) {
	switch key {
	case "m":
		a.tool = a.tool.NudgeMass(1)
	case "n":
		a.tool = a.tool.NudgeMass(-1)
	case "p":
		a.tool = a.tool.NextColor()
	}
	a.status = "tool " + toolLabel(a.tool)
}

func toolLabel(t sandbox.Toolbox) string {
	return fmt.Sprintf("%s %.1fkg %s", t.Shape, t.Mass, t.Color)
}

// Shutdown cancels the session token, stops the loop and disposes the scene.
func (a *App) Shutdown() {
	if a.quitting {
		return
	}
	a.quitting = true
	a.cancel()
	a.host.Unmount()
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	var canvasView string
	switch {
	case a.loading:
		text := AnimatedSpinner(a.frame) + " loading sandbox config"
		if a.err != nil {
			text = a.st.err.Render("config unavailable: " + a.err.Error())
		}
		canvasView = lipgloss.Place(canvasWidth, canvasHeight, lipgloss.Center, lipgloss.Center, text)
	case a.surface != nil:
		canvasView = a.surface.Frame()
	}
	canvasView = a.st.canvas.Render(canvasView)

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, a.st.stats.Render(a.statsView()))
	view := a.tabsView() + "\n" + mainView
	if a.showHelp {
		return a.st.help.Render(helpText) + "\n\n" + view
	}
	return view
}

func (a *App) tabsView() string {
	tabs := make([]string, 0, 4)
	for i, v := range params.Variants() {
		label := fmt.Sprintf("%d %s", i+1, strings.ToUpper(v.String()))
		if v == a.variant {
			tabs = append(tabs, a.st.activeTab.Render(label))
		} else {
			tabs = append(tabs, a.st.tab.Render(label))
		}
	}
	return GradientText("QUANTICLE", a.theme.Primary, a.theme.Secondary) + "  " + strings.Join(tabs, " ")
}

func (a *App) statsView() string {
	var s strings.Builder
	s.WriteString(a.st.header.Render(strings.ToUpper(a.variant.String())) + "\n")
	s.WriteString(a.st.status.Render(a.phaseLabel()) + "\n\n")

	if a.have {
		s.WriteString(a.st.label.Render("time") + a.st.value.Render(fmt.Sprintf("%.2fs", a.last.Time)) + "\n")
		for _, kv := range FormatReadout(a.last.Readout) {
			s.WriteString(a.st.label.Render(kv[0]) + a.st.value.Render(kv[1]) + "\n")
		}
		if a.variant == params.VariantPendulum {
			s.WriteString(a.st.label.Render("energy") + a.st.value.Render(fmt.Sprintf("%.2f J", a.last.Energy)) + "\n")
		}
	}
	if len(a.trace) > 1 {
		chart := asciigraph.Plot(a.trace, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption(traceCaption(a.variant)))
		s.WriteString(a.st.graph.Render(chart) + "\n")
	}

	s.WriteString("\nPARAMETERS\n")
	fields := params.Fields(a.current[a.variant])
	if len(fields) == 0 {
		if sp, ok := a.current[a.variant].(params.Sandbox); ok {
			s.WriteString(a.st.label.Render("  config") + a.st.value.Render(sp.ConfigID) + "\n")
			swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(a.tool.Color)).Render("■")
			s.WriteString(a.st.label.Render("  tool") + a.st.value.Render(toolLabel(a.tool)) + " " + swatch + "\n")
		}
	}
	for i, f := range fields {
		line := fmt.Sprintf("%-10s %s %.2f %s", f.Name, ParamBar(f.Value, f.Range.Min, f.Range.Max, 10), f.Value, f.Unit)
		if i == a.selected {
			s.WriteString(a.st.activeParam.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + a.st.value.Render(line) + "\n")
		}
	}

	if a.status != "" {
		s.WriteString("\n" + a.st.warn.Render(a.status) + "\n")
	}
	if a.err != nil && !a.loading {
		s.WriteString("\n" + a.st.err.Render(a.err.Error()) + "\n")
	}
	s.WriteString(a.st.help.Render("1-4:Sim Tab:Param ↑↓:Tune R:Restart\nSP:Pause T:Theme ?:Help Q:Quit"))
	return s.String()
}

func (a *App) phaseLabel() string {
	if a.paused {
		return "PAUSED"
	}
	if a.loading {
		return "LOADING"
	}
	s := a.host.Active()
	if s == nil {
		return "IDLE"
	}
	switch s.Phase() {
	case loop.Running:
		return "RUNNING"
	case loop.Quiescent:
		if a.variant == params.VariantProjectile {
			return "LANDED"
		}
		return "DONE"
	default:
		return strings.ToUpper(s.Phase().String())
	}
}

func traceCaption(v params.Variant) string {
	switch v {
	case params.VariantPendulum:
		return "θ (deg)"
	case params.VariantSandbox:
		return "bodies"
	default:
		return "y (m)"
	}
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  1-4      - Switch simulation        ║
║  Tab      - Select parameter         ║
║  Up/K     - Increase parameter       ║
║  Down/J   - Decrease parameter       ║
║  R        - Restart                  ║
║  Space    - Pause/Resume             ║
║  ←/→ +/-  - Orbit / zoom camera      ║
║  T        - Cycle themes             ║
║  S        - Spawn from config        ║
║  B O Ent  - Spawn box/sphere/tool    ║
║  M N P    - Tool mass +/-, color     ║
║  C        - Clear bodies (sandbox)   ║
║  G        - Toggle gravity (sandbox) ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// Run starts the program on the alternate screen and tears the session down
// when it exits.
func Run(opts Options) error {
	app := NewApp(opts)
	defer app.Shutdown()
	_, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}
