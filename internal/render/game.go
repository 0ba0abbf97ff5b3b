// Package render draws a running simulation with ebiten and turns the control
// panel into messages for the world actor.
package render

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-automata/internal/simulation"
	"github.com/lao-tseu-is-alive/go-automata/pkg/steering"
	"github.com/lao-tseu-is-alive/go-automata/pkg/ui"
	"github.com/tochemey/goakt/v3/actor"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/structpb"
)

const askTimeout = time.Second

// sensor ranges above this are "unbounded" and not drawn
const maxDrawnRange = 5000

var (
	backgroundColor = color.RGBA{R: 10, G: 10, B: 30, A: 255}
	boidColor       = color.RGBA{R: 100, G: 200, B: 255, A: 255}
	predatorColor   = color.RGBA{R: 255, G: 80, B: 60, A: 255}
	sensorColor     = color.RGBA{R: 90, G: 90, B: 120, A: 120}
	activeColor     = color.RGBA{R: 255, G: 220, B: 0, A: 200}
	velocityColor   = color.RGBA{R: 50, G: 255, B: 50, A: 200}
	edgeColor       = color.RGBA{R: 255, G: 255, B: 255, A: 80}
)

type Game struct {
	ctx        context.Context
	worldPID   *actor.PID
	snapshotCh chan *simulation.Snapshot
	lastState  *simulation.Snapshot
	cfg        *simulation.Config
	logger     *zap.Logger
	dt         time.Duration
	seed       int64
	whiteImage *ebiten.Image

	// UI Controls
	panel            *ui.Panel
	groups           []*groupControls
	widgetDebug      *ui.Checkbox
	widgetWrap       *ui.Checkbox
	respawnRequested bool

	// Timing instrumentation
	updateAvg float64 // Rolling average in ms
	drawAvg   float64 // Rolling average in ms
}

// NewGame spawns the world actor around world and builds the control panel
// from the resolved group options.
func NewGame(ctx context.Context, system actor.ActorSystem, world *simulation.World, cfg *simulation.Config, logger *zap.Logger) (*Game, error) {
	boid, err := world.GroupOptions(simulation.GroupBoids)
	if err != nil {
		return nil, err
	}
	predator, err := world.GroupOptions(simulation.GroupPredators)
	if err != nil {
		return nil, err
	}

	// 1. Create Channels for communication
	snapshotCh := make(chan *simulation.Snapshot, 10) // Buffer to avoid blocking

	// 2. Spawn World Actor
	worldPID, err := system.Spawn(ctx, "world", simulation.NewWorldActor(world, snapshotCh))
	if err != nil {
		return nil, fmt.Errorf("failed to spawn world: %w", err)
	}

	g := &Game{
		ctx:        ctx,
		worldPID:   worldPID,
		snapshotCh: snapshotCh,
		lastState:  world.Snapshot(),
		cfg:        cfg,
		logger:     logger,
		dt:         time.Second / time.Duration(cfg.TickRate),
		seed:       int64(world.Seed()) + 1,
		whiteImage: ebiten.NewImage(3, 3),
	}
	g.whiteImage.Fill(color.White)

	// 3. Initialize UI Panel, one section per group
	panel := ui.NewPanel("Automata", 10, 10, 220)
	for _, gr := range []struct {
		group simulation.Group
		opts  steering.Options
	}{
		{simulation.GroupBoids, boid},
		{simulation.GroupPredators, predator},
	} {
		group := gr.group
		g.groups = append(g.groups, newGroupControls(panel, group, gr.opts, func() string {
			return activity(g.lastState, group)
		}))
	}

	panel.Header("World")
	g.widgetDebug = ui.NewCheckbox("Debug (D)", boid.Game.Debug)
	g.widgetWrap = ui.NewCheckbox("Wrap Edges", boid.Game.WrapWorldBounds)
	panel.Add(g.widgetDebug)
	panel.Add(g.widgetWrap)
	panel.Add(ui.NewButton("Respawn (R)", func() { g.respawnRequested = true }))

	g.panel = panel
	return g, nil
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		// Rolling average (exponential moving average)
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	// 1. Update UI Panel
	g.panel.Update()
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.widgetDebug.SetChecked(!g.widgetDebug.Checked())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.respawnRequested = true
	}

	// 2. Retrieve Latest State (Non-blocking)
	select {
	case snap := <-g.snapshotCh:
		g.lastState = snap
	default:
		// Use previous state if new one isn't ready
	}

	// 3. Push panel changes; world switches reconfigure every group
	world := g.widgetDebug.TakeChanged()
	world = g.widgetWrap.TakeChanged() || world
	for _, c := range g.groups {
		if c.takeChanged() || world {
			g.reconfigure(c)
		}
	}

	if g.respawnRequested {
		g.respawnRequested = false
		if err := actor.Tell(g.ctx, g.worldPID, simulation.RespawnMessage(g.seed)); err != nil {
			return err
		}
		g.seed++
	}

	// 4. Trigger Simulation Step
	return actor.Tell(g.ctx, g.worldPID, simulation.TickMessage(g.dt))
}

func (g *Game) reconfigure(c *groupControls) {
	group := c.group
	msg, err := simulation.ReconfigureMessage(group, c.overrides(g.widgetDebug.Checked(), g.widgetWrap.Checked()))
	if err != nil {
		g.logger.Error("building reconfigure message", zap.Error(err))
		return
	}
	resp, err := actor.Ask(g.ctx, g.worldPID, msg, askTimeout)
	if err != nil {
		g.logger.Error("reconfigure failed", zap.String("group", string(group)), zap.Error(err))
		return
	}
	if s, ok := resp.(*structpb.Struct); ok {
		if err := simulation.ReconfigureError(s); err != nil {
			g.logger.Warn("reconfigure rejected", zap.String("group", string(group)), zap.Error(err))
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	screen.Fill(backgroundColor)

	// 1. Draw all automata from the last known snapshot
	edgesDrawn := false
	for i := range g.lastState.Agents {
		agent := &g.lastState.Agents[i]
		clr := boidColor
		if agent.Group == simulation.GroupPredators {
			clr = predatorColor
		}
		g.drawAutomaton(screen, agent, clr)
		if len(agent.Reports) > 0 {
			edgesDrawn = drawReports(screen, agent, edgesDrawn)
		}
	}

	// 2. Draw UI Panel
	g.panel.Draw(screen)

	// 3. Performance stats on the right side
	msg := fmt.Sprintf("FPS: %.2f\nTPS: %.2f\nTick: %d\nAutomata: %d\n\nUpdate: %.2fms\nDraw:   %.2fms",
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		g.lastState.Tick,
		len(g.lastState.Agents),
		g.updateAvg,
		g.drawAvg)
	ebitenutil.DebugPrintAt(screen, msg, int(g.cfg.WorldWidth)-150, 10)
}

// drawAutomaton draws a triangle pointing along the automaton rotation.
func (g *Game) drawAutomaton(screen *ebiten.Image, a *simulation.AgentState, clr color.RGBA) {
	size := math.Max(a.Radius, 4)
	angle := a.Rotation
	x, y := a.Position.X, a.Position.Y

	// Visual geometry logic
	tipX := x + math.Cos(angle)*size
	tipY := y + math.Sin(angle)*size
	rightX := x + math.Cos(angle+2.5)*size*0.8
	rightY := y + math.Sin(angle+2.5)*size*0.8
	leftX := x + math.Cos(angle-2.5)*size*0.8
	leftY := y + math.Sin(angle-2.5)*size*0.8

	r, gr, b := float32(clr.R)/255, float32(clr.G)/255, float32(clr.B)/255
	vertices := []ebiten.Vertex{
		{DstX: float32(tipX), DstY: float32(tipY), SrcX: 1, SrcY: 1, ColorR: r, ColorG: gr, ColorB: b, ColorA: 1},
		{DstX: float32(rightX), DstY: float32(rightY), SrcX: 1, SrcY: 1, ColorR: r, ColorG: gr, ColorB: b, ColorA: 1},
		{DstX: float32(leftX), DstY: float32(leftY), SrcX: 1, SrcY: 1, ColorR: r, ColorG: gr, ColorB: b, ColorA: 1},
	}
	indices := []uint16{0, 1, 2}

	screen.DrawTriangles(vertices, indices, g.whiteImage, &ebiten.DrawTrianglesOptions{})
}

// drawReports renders the debug overlay of one automaton. The edge rectangle
// is shared by everyone, so it is only drawn once per frame.
func drawReports(screen *ebiten.Image, a *simulation.AgentState, edgesDrawn bool) bool {
	x, y := float32(a.Position.X), float32(a.Position.Y)

	// velocity line
	vx, vy := float32(a.Velocity.X*0.25), float32(a.Velocity.Y*0.25)
	vector.StrokeLine(screen, x, y, x+vx, y+vy, 1, velocityColor, true)

	labelY := int(y) + 8
	for _, r := range a.Reports {
		if r.Behavior == steering.BehaviorCheckBounds {
			if r.Edges != nil && !edgesDrawn {
				e := r.Edges
				vector.StrokeRect(screen, float32(e.Left), float32(e.Top),
					float32(e.Right-e.Left), float32(e.Bottom-e.Top), 1, edgeColor, true)
				edgesDrawn = true
			}
			if r.Active {
				ebitenutil.DebugPrintAt(screen, r.Label, int(x)+8, labelY)
				labelY += 12
			}
			continue
		}

		if r.ViewDistance > 0 && r.ViewDistance < maxDrawnRange {
			vector.StrokeCircle(screen, x, y, float32(r.ViewDistance), 1, sensorColor, true)
		}
		if r.SlowingRadius > 0 {
			clr := sensorColor
			if r.Slowing {
				clr = activeColor
			}
			vector.StrokeCircle(screen, x, y, float32(r.SlowingRadius), 1, clr, true)
		}
		if !r.Active {
			continue
		}
		for _, t := range r.Targets {
			vector.StrokeLine(screen, x, y, float32(t.X), float32(t.Y), 1, activeColor, true)
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s %.0f", r.Label, r.Distance), int(x)+8, labelY)
		labelY += 12
	}
	return edgesDrawn
}

func (g *Game) Layout(w, h int) (int, int) { return int(g.cfg.WorldWidth), int(g.cfg.WorldHeight) }
