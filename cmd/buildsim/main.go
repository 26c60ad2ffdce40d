// Package main is a terminal sandbox for the build tool. It renders
// the world top-down with tcell, aims the cursor ray from a virtual
// camera above the pointer cell, and drives the session controller at
// the configured frame rate.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/chewxy/math32"
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/buildmode/internal/authority"
	"github.com/Faultbox/buildmode/internal/buildmode"
	"github.com/Faultbox/buildmode/internal/catalog"
	"github.com/Faultbox/buildmode/internal/config"
	"github.com/Faultbox/buildmode/internal/input"
	"github.com/Faultbox/buildmode/internal/logger"
	"github.com/Faultbox/buildmode/internal/placement"
	"github.com/Faultbox/buildmode/internal/worldsim"
	"github.com/Faultbox/buildmode/pkg/vmath"
)

const (
	// Virtual camera offset relative to the aimed ground point. The
	// tilt keeps box side faces reachable, not just their tops.
	camHeight = 24
	camBack   = 8

	// Cells per world unit. Terminal cells are roughly twice as tall
	// as they are wide, so X gets two columns per unit.
	cellsPerUnitX = 2
	cellsPerUnitZ = 1

	statusRows = 2
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Console logging would tear the tcell screen, so logs always go
	// to a file here.
	logFile := cfg.Logging.LogFile
	if logFile == "" {
		logFile = "buildsim.log"
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, logger.DefaultFileConfig(logFile), false); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Buildmode Sandbox ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	cat, err := loadCatalog(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Catalog error: %v\n", err)
		os.Exit(1)
	}

	world := worldsim.New(cat, worldsim.Options{
		GroundY:  cfg.World.GroundY,
		MaxRange: cfg.Placement.MaxRange,
		GridSize: cfg.Placement.GridSize,
		UserID:   cfg.World.UserID,
	})
	seedWorld(world, cfg.World.GroundY)

	// Without a build server the world is its own authority.
	var auth buildmode.Authority = world
	if cfg.Authority.Server != "" {
		wire := authority.New()
		if err := wire.Connect(cfg.Authority.Server); err != nil {
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			os.Exit(1)
		}
		defer wire.Close()
		auth = remoteAuthority{wire: wire, local: world}
		logger.Info("placing through build server", zap.String("server", cfg.Authority.Server))
	}

	a, err := newApp(cfg, cat, world, auth)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Screen error: %v\n", err)
		os.Exit(1)
	}
	defer a.close()

	a.run(cfg.World.FrameRate)
	logger.Info("sandbox closed")
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog.Path != "" {
		return catalog.Load(cfg.Catalog.Path)
	}
	return catalog.Builtin(), nil
}

// seedWorld drops some fixed geometry in so raised and vertical
// surfaces exist to build against.
func seedWorld(w *worldsim.World, groundY float32) {
	w.AddStatic("platform", box(-8, groundY, -6, -3, groundY+1, -2))
	w.AddStatic("wall", box(3, groundY, -8, 9, groundY+4, -7))
	w.AddStatic("pillar", box(6, groundY, 4, 7, groundY+3, 5))
}

func box(x0, y0, z0, x1, y1, z1 float32) vmath.AABB {
	return vmath.NewAABB(vmath.Vec3{X: x0, Y: y0, Z: z0}, vmath.Vec3{X: x1, Y: y1, Z: z1})
}

// remoteAuthority forwards requests to the build server and mirrors
// them into the local world, which stands in for the server state
// feed the sandbox does not have.
type remoteAuthority struct {
	wire  *authority.Client
	local *worldsim.World
}

func (a remoteAuthority) RequestPlace(catalogID string, pose placement.Pose) {
	a.wire.RequestPlace(catalogID, pose)
	a.local.RequestPlace(catalogID, pose)
}

func (a remoteAuthority) RequestDelete(ref buildmode.Ref) {
	a.wire.RequestDelete(ref)
	a.local.RequestDelete(ref)
}

// app owns the screen and pumps frames and input into the controller.
type app struct {
	screen tcell.Screen
	world  *worldsim.World
	cat    *catalog.Catalog
	ctrl   *buildmode.Controller
	bind   input.Bindings

	width, height int

	// Pointer cell. The cursor ray drops toward the world point under
	// this cell.
	cursorX, cursorY int

	mouseHeld bool
	confirmUp bool // synthesize ConfirmUp after the next frame
}

func newApp(cfg *config.Config, cat *catalog.Catalog, world *worldsim.World, auth buildmode.Authority) (*app, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	a := &app{
		screen: screen,
		world:  world,
		cat:    cat,
		bind:   cfg.Input,
	}
	a.width, a.height = screen.Size()
	a.cursorX, a.cursorY = a.width/2, a.height/2

	a.ctrl = buildmode.NewController(world, auth, world, a, cat, tuningFromConfig(cfg))
	return a, nil
}

func tuningFromConfig(cfg *config.Config) buildmode.Tuning {
	return buildmode.Tuning{
		Placement: placement.Config{
			GridSize:         cfg.Placement.GridSize,
			GroundNormalMin:  cfg.Placement.GroundNormalMin,
			CeilingNormalMax: cfg.Placement.CeilingNormalMax,
			WallNormalMax:    cfg.Placement.WallNormalMax,
		},
		MoveSpeed:      cfg.Placement.MoveSpeed,
		RotateStep:     cfg.Placement.RotateStepDeg * math32.Pi / 180,
		PlaceCooldown:  time.Duration(cfg.Placement.PlaceCooldown),
		DeleteCooldown: time.Duration(cfg.Placement.DeleteCooldown),
	}
}

func (a *app) close() {
	a.screen.Fini()
}

// CursorRay aims from the virtual camera through the world point under
// the pointer cell. The pointer parks over the status rows to leave
// the scene.
func (a *app) CursorRay() (vmath.Ray, bool) {
	if a.cursorY >= a.height-statusRows {
		return vmath.Ray{}, false
	}
	x, z := a.toWorld(a.cursorX, a.cursorY)
	target := vmath.Vec3{X: x, Y: a.world.GroundY(), Z: z}
	origin := vmath.Vec3{X: x, Y: a.world.GroundY() + camHeight, Z: z - camBack}
	return vmath.Ray{Origin: origin, Direction: target.Sub(origin).Normalize()}, true
}

func (a *app) toCell(x, z float32) (int, int) {
	return a.width/2 + int(math32.Round(x*cellsPerUnitX)), a.height/2 + int(math32.Round(z*cellsPerUnitZ))
}

func (a *app) toWorld(col, row int) (x, z float32) {
	return float32(col-a.width/2) / cellsPerUnitX, float32(row-a.height/2) / cellsPerUnitZ
}

func (a *app) run(frameRate int) {
	if frameRate <= 0 {
		frameRate = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(frameRate))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	a.draw()

	last := time.Now()
	for {
		select {
		case ev := <-events:
			if !a.handleEvent(ev) {
				return
			}

		case now := <-ticker.C:
			dt := float32(now.Sub(last).Seconds())
			last = now

			a.ctrl.Update(dt)
			if a.confirmUp {
				a.confirmUp = false
				a.emit(input.EventConfirmUp)
			}
			a.draw()
		}
	}
}

func (a *app) emit(t input.EventType) {
	if err := a.ctrl.HandleEvent(input.Event{Type: t}); err != nil {
		logger.Error("command failed", zap.Stringer("event", t), zap.Error(err))
	}
}

func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyUp:
			a.moveCursor(0, -1)
		case ev.Key() == tcell.KeyDown:
			a.moveCursor(0, 1)
		case ev.Key() == tcell.KeyLeft:
			a.moveCursor(-1, 0)
		case ev.Key() == tcell.KeyRight:
			a.moveCursor(1, 0)
		case ev.Key() == tcell.KeyRune:
			a.handleRune(ev.Rune())
		}

	case *tcell.EventMouse:
		a.cursorX, a.cursorY = ev.Position()
		pressed := ev.Buttons()&tcell.Button1 != 0
		if pressed && !a.mouseHeld {
			a.emit(input.EventConfirmDown)
		}
		if !pressed && a.mouseHeld {
			a.emit(input.EventConfirmUp)
		}
		a.mouseHeld = pressed

	case *tcell.EventResize:
		a.width, a.height = ev.Size()
		a.clampCursor()
		a.screen.Sync()
	}
	return true
}

// handleRune maps a key press through the bindings. Terminals report
// no key releases, so a bound confirm is delivered as a one-frame tap
// and key auto-repeat stands in for holding.
func (a *app) handleRune(r rune) {
	t, ok := a.bind.Lookup(r)
	if !ok {
		return
	}
	a.emit(t)
	if t == input.EventConfirmDown {
		a.confirmUp = true
	}
}

func (a *app) moveCursor(dx, dy int) {
	a.cursorX += dx
	a.cursorY += dy
	a.clampCursor()
}

func (a *app) clampCursor() {
	if a.cursorX < 0 {
		a.cursorX = 0
	}
	if a.cursorX > a.width-1 {
		a.cursorX = a.width - 1
	}
	if a.cursorY < 0 {
		a.cursorY = 0
	}
	if a.cursorY > a.height-1 {
		a.cursorY = a.height - 1
	}
}

var (
	styleGround    = tcell.StyleDefault.Foreground(tcell.NewRGBColor(70, 70, 70))
	styleStatic    = tcell.StyleDefault.Foreground(tcell.NewRGBColor(150, 150, 150))
	stylePlaced    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleHighlight = tcell.StyleDefault.Foreground(tcell.ColorRed).Reverse(true)
	styleGhostOK   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleGhostBad  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleMarker    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleCursor    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	styleStatus    = tcell.StyleDefault.Foreground(tcell.NewRGBColor(180, 180, 180))
	styleHelp      = tcell.StyleDefault.Foreground(tcell.NewRGBColor(120, 120, 140))
)

func (a *app) draw() {
	s := a.screen
	s.Clear()

	a.drawGrid()

	// Ref order puts statics under placements and ghosts on top.
	for _, o := range a.world.All() {
		if !o.Visible {
			continue
		}
		a.drawObject(o)
	}

	a.drawStatus()
	s.SetContent(a.cursorX, a.cursorY, '+', nil, styleCursor)
	s.Show()
}

// drawGrid dots every whole-unit world coordinate in view.
func (a *app) drawGrid() {
	spanX := a.width / (2 * cellsPerUnitX)
	spanZ := a.height / (2 * cellsPerUnitZ)
	for zi := -spanZ; zi <= spanZ; zi++ {
		for xi := -spanX; xi <= spanX; xi++ {
			col, row := a.toCell(float32(xi), float32(zi))
			if row < a.height-statusRows {
				a.screen.SetContent(col, row, '.', nil, styleGround)
			}
		}
	}
}

func (a *app) drawObject(o *worldsim.Object) {
	glyph, style := objectLook(o)

	box := o.Bounds()
	left, top := a.toCell(box.Min.X, box.Min.Z)
	right, bottom := a.toCell(box.Max.X, box.Max.Z)
	for row := top; row <= bottom; row++ {
		if row >= a.height-statusRows {
			break
		}
		for col := left; col <= right; col++ {
			a.screen.SetContent(col, row, glyph, nil, style)
		}
	}
}

func objectLook(o *worldsim.Object) (rune, tcell.Style) {
	switch o.Kind {
	case worldsim.KindStatic:
		return '#', styleStatic
	case worldsim.KindPlaced:
		if o.Highlight {
			return 'o', styleHighlight
		}
		return 'o', stylePlaced
	case worldsim.KindGhost:
		if o.Valid {
			return '+', styleGhostOK
		}
		return 'x', styleGhostBad
	case worldsim.KindMarker:
		return '_', styleMarker
	default:
		return '?', stylePlaced
	}
}

func (a *app) drawStatus() {
	x, z := a.toWorld(a.cursorX, a.cursorY)
	line := fmt.Sprintf(" [%s] cursor (%.1f, %.1f)", a.ctrl.Mode(), x, z)

	switch a.ctrl.Mode() {
	case buildmode.ModeBuild:
		b := a.ctrl.Build()
		state := "blocked"
		if b.Valid() {
			state = "ok"
		}
		yawDeg := b.TargetPose().Yaw * 180 / math32.Pi
		line += fmt.Sprintf("  %d/%d %s  yaw %.0f  %s", b.Slot(), a.cat.Len(), b.Entry().Name, yawDeg, state)
	case buildmode.ModeDelete:
		d := a.ctrl.Delete()
		if target := d.Target(); target != buildmode.NoRef {
			if o := a.world.Get(target); o != nil {
				line += fmt.Sprintf("  target %s #%d", o.Name, target)
			}
		} else {
			line += "  no target"
		}
	}
	line += fmt.Sprintf("  placed %d", a.world.Count(worldsim.KindPlaced))

	help := fmt.Sprintf(" %s build  %s delete  %s rotate  %s/%s cycle  %s confirm  arrows/mouse aim  esc quit",
		keyName(a.bind.ToggleBuild), keyName(a.bind.ToggleDelete), keyName(a.bind.Rotate),
		keyName(a.bind.CycleNext), keyName(a.bind.CyclePrev), keyName(a.bind.Confirm))

	a.text(0, a.height-2, pad(line, a.width), styleStatus)
	a.text(0, a.height-1, pad(help, a.width), styleHelp)
}

func (a *app) text(x, y int, msg string, style tcell.Style) {
	col := x
	for _, r := range msg {
		a.screen.SetContent(col, y, r, nil, style)
		col++
	}
}

func keyName(k input.Key) string {
	if k == ' ' {
		return "space"
	}
	return string(rune(k))
}

func pad(s string, width int) string {
	for len(s) < width {
		s += " "
	}
	return s
}
