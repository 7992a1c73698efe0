package app

import (
	"math/rand"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/fbcterm/internal/application/input"
	"github.com/younwookim/fbcterm/internal/application/overlay"
	"github.com/younwookim/fbcterm/internal/application/scene"
	"github.com/younwookim/fbcterm/internal/application/scene/lockscreen"
	"github.com/younwookim/fbcterm/internal/infrastructure/config"
)

// scriptInput replays one batch of events per Poll.
type scriptInput struct {
	frames [][]input.Event
	held   input.Held
}

func (s *scriptInput) Poll() []input.Event {
	if len(s.frames) == 0 {
		return nil
	}
	ev := s.frames[0]
	s.frames = s.frames[1:]
	return ev
}

func (s *scriptInput) Pressed(k ebiten.Key) bool { return s.held[k] }

func (s *scriptInput) push(evs ...input.Event) {
	s.frames = append(s.frames, evs)
}

func (s *scriptInput) typeCode(code string) {
	var evs []input.Event
	for _, r := range code {
		evs = append(evs, input.Char(r))
	}
	evs = append(evs, input.KeyDown(ebiten.KeyEnter))
	s.push(evs...)
}

type stubScene struct {
	scene.Base
	name    string
	handled []input.Event
	updates int
	exited  bool
}

func (s *stubScene) Handle(ev input.Event) { s.handled = append(s.handled, ev) }
func (s *stubScene) Update(float64)        { s.updates++ }
func (s *stubScene) Exit() error           { s.exited = true; return nil }

func newApp(t *testing.T, start scene.ID, routes scene.Registry) (*App, *scriptInput) {
	t.Helper()
	in := &scriptInput{held: input.Held{}}
	a := New(Options{
		Config:   config.Default(),
		Input:    in,
		Rand:     rand.New(rand.NewSource(7)),
		Scenes:   routes,
		Start:    start,
		OnToggle: func() {},
	})
	return a, in
}

func run(t *testing.T, a *App, frames int) error {
	t.Helper()
	for i := 0; i < frames; i++ {
		if err := a.Update(); err != nil {
			return err
		}
	}
	return nil
}

func TestApp_LockDeniedQuits(t *testing.T) {
	menu := &stubScene{name: "menu"}
	a, in := newApp(t, scene.Lock, scene.Registry{
		scene.Lock: lockscreen.New,
		scene.Menu: func(scene.Host) scene.Scene { return menu },
	})

	in.typeCode("0000")
	in.typeCode("1111")
	in.typeCode("2222")
	require.NoError(t, run(t, a, 3))

	ls, ok := a.Active().(*lockscreen.Lock)
	require.True(t, ok)
	assert.Equal(t, "ACCESS DENIED", ls.Message())
	assert.False(t, a.Quitting(), "quit waits for the shutdown delay")

	require.NoError(t, run(t, a, 60), "still inside 1.2 s")
	err := run(t, a, 30)
	assert.ErrorIs(t, err, ebiten.Termination)
	assert.True(t, a.Quitting())
}

func TestApp_LockGrantedOpensMenu(t *testing.T) {
	menu := &stubScene{name: "menu"}
	a, in := newApp(t, scene.Lock, scene.Registry{
		scene.Lock: lockscreen.New,
		scene.Menu: func(scene.Host) scene.Scene { return menu },
	})

	in.typeCode("1968")
	require.NoError(t, run(t, a, 2))
	_, ok := a.Overlay().(*overlay.Decrypt)
	require.True(t, ok, "decrypt overlay expected")
	info, shown := a.Info()
	assert.True(t, shown)
	assert.Equal(t, "ACCESS GRANTED", info)

	require.NoError(t, run(t, a, 240))
	assert.Same(t, menu, a.Active())
	assert.Nil(t, a.Overlay())
	assert.Positive(t, menu.updates)
}

func TestApp_OverlayBlocksScene(t *testing.T) {
	menu := &stubScene{name: "menu"}
	a, in := newApp(t, scene.Menu, scene.Registry{
		scene.Menu: func(scene.Host) scene.Scene { return menu },
	})
	require.NoError(t, run(t, a, 1))

	in.push(input.KeyDown(ebiten.KeyJ))
	require.NoError(t, run(t, a, 1))
	ahti, ok := a.Overlay().(*overlay.Ahti)
	require.True(t, ok, "J opens Ahti")
	assert.Empty(t, menu.handled, "J is consumed by the application")

	updates := menu.updates
	in.push(input.KeyDown(ebiten.KeyDown))
	require.NoError(t, run(t, a, 1))
	assert.Empty(t, menu.handled, "scene gets no input under an overlay")
	assert.Equal(t, updates, menu.updates, "scene is paused under an overlay")

	in.push(input.KeyDown(ebiten.KeyJ))
	require.NoError(t, run(t, a, 60))
	assert.True(t, ahti.Done())
	assert.Nil(t, a.Overlay())

	in.push(input.KeyDown(ebiten.KeyDown))
	require.NoError(t, run(t, a, 1))
	assert.Len(t, menu.handled, 1)
}

func TestApp_KeyCapturerKeepsJ(t *testing.T) {
	a, in := newApp(t, scene.Lock, scene.Registry{scene.Lock: lockscreen.New})
	require.NoError(t, run(t, a, 1))

	in.push(input.KeyDown(ebiten.KeyJ), input.Char('j'))
	require.NoError(t, run(t, a, 1))
	assert.Nil(t, a.Overlay())
	assert.Equal(t, "J", a.Active().(*lockscreen.Lock).Input())
}

func TestApp_F11AndUnknownRoute(t *testing.T) {
	menu := &stubScene{name: "menu"}
	in := &scriptInput{held: input.Held{}}
	toggles := 0
	a := New(Options{
		Input:    in,
		Scenes:   scene.Registry{scene.Menu: func(scene.Host) scene.Scene { return menu }},
		Start:    scene.Menu,
		OnToggle: func() { toggles++ },
	})
	in.push(input.KeyDown(ebiten.KeyF11))
	require.NoError(t, run(t, a, 1))
	assert.Equal(t, 1, toggles)
	assert.Empty(t, menu.handled)

	a.Goto(scene.Hotline)
	msg, ok := a.Info()
	assert.True(t, ok)
	assert.Equal(t, "Not available.", msg)
	require.NoError(t, run(t, a, 1))
	assert.Same(t, menu, a.Active())
}

func TestApp_ScheduleQuitDoesNotPostpone(t *testing.T) {
	a, _ := newApp(t, scene.Menu, scene.Registry{
		scene.Menu: func(scene.Host) scene.Scene { return &stubScene{} },
	})
	a.ScheduleQuit(0.1)
	require.NoError(t, run(t, a, 3))
	a.ScheduleQuit(10)
	assert.ErrorIs(t, run(t, a, 10), ebiten.Termination)
}

func TestApp_ShutdownExitsScene(t *testing.T) {
	menu := &stubScene{}
	a, _ := newApp(t, scene.Menu, scene.Registry{
		scene.Menu: func(scene.Host) scene.Scene { return menu },
	})
	require.NoError(t, run(t, a, 1))
	a.Shutdown()
	assert.True(t, menu.exited)
}

type closingSong struct{ closes int }

func (s *closingSong) Play()        {}
func (s *closingSong) Close() error { s.closes++; return nil }

// bareOverlay has no lifecycle of its own, only the Overlay methods.
type bareOverlay struct{ disposed int }

func (o *bareOverlay) Update(float64)                {}
func (o *bareOverlay) Draw(*ebiten.Image)            {}
func (o *bareOverlay) Close()                        {}
func (o *bareOverlay) Done() bool                    { return o.disposed > 0 }
func (o *bareOverlay) Dispose()                      { o.disposed++ }
func (o *bareOverlay) DismissibleBy(ebiten.Key) bool { return false }

func TestApp_ReplacedOverlayIsReleased(t *testing.T) {
	a, _ := newApp(t, scene.Menu, scene.Registry{
		scene.Menu: func(scene.Host) scene.Scene { return &stubScene{} },
	})
	song := &closingSong{}
	a.SetOverlay(overlay.NewAhti(overlay.AhtiOptions{Song: song, Width: 1280, Height: 720}))

	bare := &bareOverlay{}
	a.SetOverlay(bare)
	assert.Equal(t, 1, song.closes, "song stops when Ahti is replaced")
	assert.Same(t, bare, a.Overlay())

	a.SetOverlay(bare)
	assert.Zero(t, bare.disposed, "setting the same overlay keeps it")

	a.Shutdown()
	assert.Equal(t, 1, bare.disposed)
	assert.Nil(t, a.Overlay())
	assert.Equal(t, 1, song.closes)
}

func TestApp_Layout(t *testing.T) {
	a, _ := newApp(t, scene.Menu, scene.Registry{})
	w, h := a.Layout(1920, 1080)
	assert.Equal(t, 1280, w)
	assert.Equal(t, 720, h)
}
