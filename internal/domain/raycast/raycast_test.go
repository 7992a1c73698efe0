package raycast

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRows = []string{
	"11111",
	"10001",
	"10001",
	"10201",
	"11111",
}

func newTestGrid(t *testing.T) *Grid {
	t.Helper()
	g, err := NewGrid(testRows)
	require.NoError(t, err)
	return g
}

func TestNewGrid(t *testing.T) {
	g := newTestGrid(t)
	assert.Equal(t, 5, g.Width())
	assert.Equal(t, 5, g.Height())
	assert.Equal(t, CodeDoor, g.At(2, 3))
	assert.Equal(t, CodeWall, g.At(-1, 2), "out of range reads as wall")
	assert.Equal(t, CodeWall, g.At(2, 99))
	assert.Equal(t, []Coord{{2, 3}}, g.Doors())
}

func TestNewGrid_SpacesAreEmpty(t *testing.T) {
	g, err := NewGrid([]string{"111", "1 1", "111"})
	require.NoError(t, err)
	assert.True(t, g.Passable(1, 1))
}

func TestNewGrid_Errors(t *testing.T) {
	tests := []struct {
		name   string
		rows   []string
		sealed bool
	}{
		{"too few rows", []string{"111", "111"}, false},
		{"ragged", []string{"111", "1011", "111"}, false},
		{"bad code", []string{"111", "191", "111"}, false},
		{"bad char", []string{"111", "1x1", "111"}, false},
		{"open top", []string{"101", "101", "111"}, true},
		{"open side", []string{"111", "100", "111"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrid(tt.rows)
			require.Error(t, err)
			assert.Equal(t, tt.sealed, errors.Is(err, ErrUnsealedGrid))
		})
	}
}

func TestGrid_SetKeepsBorderSealed(t *testing.T) {
	g := newTestGrid(t)
	assert.False(t, g.Set(0, 2, CodeEmpty))
	assert.False(t, g.Set(4, 4, CodeEmpty))
	assert.False(t, g.Set(2, 2, Code(42)))
	assert.True(t, g.Set(2, 3, CodeEmpty))
	assert.True(t, g.Passable(2, 3))
}

func TestGrid_Label(t *testing.T) {
	g := newTestGrid(t)
	assert.Equal(t, "DOOR", g.Label(Coord{2, 3}))
	g.SetLabel(Coord{2, 3}, "ROOM 101")
	assert.Equal(t, "ROOM 101", g.Label(Coord{2, 3}))
}

func TestCode_Kind(t *testing.T) {
	assert.False(t, CodeWall.IsDoor())
	assert.True(t, CodeCasino.IsDoor())
	assert.Equal(t, "JANITOR", CodeJanitor.Kind())
	assert.Equal(t, "UNKNOWN", Code(77).Kind())
}

func TestMarch_AxisAligned(t *testing.T) {
	g := newTestGrid(t)

	h := March(g, 1.5, 1.5, 0, DefaultStepLimit, 32)
	assert.InDelta(t, 2.5, h.Dist, 1e-9)
	assert.False(t, h.SideY)
	assert.Equal(t, CodeWall, h.Code)
	assert.Equal(t, Coord{4, 1}, h.Cell)
	assert.InDelta(t, 0.5, h.U, 1e-9)

	h = March(g, 2.5, 1.5, math.Pi/2, DefaultStepLimit, 32)
	assert.InDelta(t, 1.5, h.Dist, 1e-9)
	assert.True(t, h.SideY)
	assert.Equal(t, CodeDoor, h.Code)
	assert.Equal(t, Coord{2, 3}, h.Cell)
}

func TestMarch_StepLimit(t *testing.T) {
	g := newTestGrid(t)
	h := March(g, 1.5, 1.5, 0, 1, 32)
	assert.Equal(t, 1, h.Steps)
	assert.Equal(t, 32.0, h.Dist, "unterminated ray reports max depth")
	assert.Equal(t, CodeWall, h.Code)
}

func TestCast_BoundedAndPositive(t *testing.T) {
	g := newTestGrid(t)
	cam := DefaultCamera(64, 48)

	poses := []Pose{{1.5, 1.5, 0}, {3.2, 2.7, 1.1}, {1.01, 1.99, -2.5}, {3.99, 1.01, math.Pi}}
	for _, p := range poses {
		for a := 0.0; a < 2*math.Pi; a += 0.13 {
			p.Angle = a
			for _, h := range Cast(g, p, cam) {
				assert.LessOrEqual(t, h.Steps, cam.StepLimit)
				assert.Greater(t, h.Dist, 0.0)
				assert.NotEqual(t, CodeEmpty, h.Code)
			}
		}
	}
}

func TestCast_CenterColumnAndFisheye(t *testing.T) {
	g := newTestGrid(t)
	cam := DefaultCamera(64, 48)

	hits := Cast(g, Pose{1.5, 1.5, 0}, cam)
	require.Len(t, hits, 64)
	assert.InDelta(t, 2.5, hits[32].Dist, 1e-9)

	// A flat wall facing the camera has the same corrected distance in
	// every column that hits it.
	for x := 20; x < 44; x++ {
		if hits[x].Cell.X == 4 && !hits[x].SideY {
			assert.InDelta(t, 2.5, hits[x].Dist, 1e-9, "column %d", x)
		}
	}
	assert.Len(t, DepthBuffer(hits), 64)
}

func TestCamera_WallSpan(t *testing.T) {
	cam := DefaultCamera(640, 480)

	top, h := cam.WallSpan(1e-9)
	assert.Equal(t, 480, h, "height clamps to screen")
	assert.Equal(t, 0, top)

	top, h = cam.WallSpan(1000)
	assert.Equal(t, 1, h)
	assert.Equal(t, 240, top)

	_, near := cam.WallSpan(2)
	_, far := cam.WallSpan(4)
	assert.Greater(t, near, far)
}

func TestCamera_ColumnAngle(t *testing.T) {
	cam := DefaultCamera(100, 50)
	assert.InDelta(t, -math.Pi/6, cam.ColumnAngle(0), 1e-9)
	assert.InDelta(t, 0, cam.ColumnAngle(50), 1e-9)
}

func TestPose_WallSliding(t *testing.T) {
	g := newTestGrid(t)
	p := Pose{X: 3.9, Y: 1.5, Angle: 0}

	p.Step(g, Motion{Forward: 1, Strafe: 1}, Speeds{Move: 1, Strafe: 1, Rotate: 1}, 0.5)
	assert.InDelta(t, 3.9, p.X, 1e-9, "x blocked by wall")
	assert.InDelta(t, 2.0, p.Y, 1e-9, "y still moves")
	assert.True(t, g.Passable(p.Cell().X, p.Cell().Y))
}

func TestPose_SprintAndTurn(t *testing.T) {
	g := newTestGrid(t)
	p := Pose{X: 1.5, Y: 1.5}

	p.Step(g, Motion{Forward: 1, Sprint: true}, Speeds{Move: 1}, 0.5)
	assert.InDelta(t, 2.5, p.X, 1e-9)

	p.Step(g, Motion{Turn: -1}, DefaultSpeeds, 1)
	assert.InDelta(t, -2.4, p.Angle, 1e-9)
}

func TestPose_NeverEntersWall(t *testing.T) {
	g := newTestGrid(t)
	p := Pose{X: 1.5, Y: 1.5, Angle: 0.3}
	for i := 0; i < 600; i++ {
		p.Step(g, Motion{Forward: 1, Strafe: 0.3, Turn: 0.2}, DefaultSpeeds, 1.0/60)
		c := p.Cell()
		require.True(t, g.Passable(c.X, c.Y), "frame %d at %+v", i, p)
	}
}

func TestShader_WallColumn(t *testing.T) {
	s := DefaultShader()
	got := s.Shade(Hit{Dist: 1, Code: CodeWall, Cell: Coord{10, 1}, U: 0.5})
	assert.Equal(t, color.RGBA{69, 46, 22, 255}, got)
}

func TestShader_SideAndFrame(t *testing.T) {
	s := DefaultShader()
	base := Hit{Dist: 2, Code: CodeDoor, Cell: Coord{10, 1}, U: 0.5}

	side := base
	side.SideY = true
	assert.Less(t, s.Shade(side).R, s.Shade(base).R, "y-side is darker")

	frame := base
	frame.U = 0.01
	assert.Less(t, s.Shade(frame).R, s.Shade(base).R, "door frame band is darker")

	wall := base
	wall.Code = CodeWall
	wall.U = 0.01
	plain := wall
	plain.U = 0.02
	assert.InDelta(t, float64(s.Shade(plain).R), float64(s.Shade(wall).R), 1, "walls have no frame band")
}

func TestShader_WarmZone(t *testing.T) {
	s := DefaultShader()
	warm := s.Shade(Hit{Dist: 3, Code: CodeWall, Cell: Coord{2, 1}, U: 0.5})
	cool := s.Shade(Hit{Dist: 3, Code: CodeWall, Cell: Coord{12, 1}, U: 0.5})
	assert.Greater(t, warm.R, cool.R)
	assert.Less(t, warm.B, cool.B)
}

func TestShader_CasinoTintFadesWithDistance(t *testing.T) {
	s := DefaultShader()
	near := s.Shade(Hit{Dist: 1, Code: CodeCasino, Cell: Coord{12, 1}, U: 0.5})
	far := s.Shade(Hit{Dist: 12, Code: CodeCasino, Cell: Coord{12, 1}, U: 0.5})
	assert.Greater(t, near.R, far.R)
}

func TestShader_Slice(t *testing.T) {
	s := DefaultShader()
	cam := DefaultCamera(640, 480)
	sl := s.Slice(Hit{Dist: 2, Code: CodeWall, Cell: Coord{1, 1}, U: 0.3}, cam)

	top, h := cam.WallSpan(2)
	assert.Equal(t, top, sl.Top)
	assert.Equal(t, h, sl.Height)
	assert.Equal(t, h/12, sl.BaseH)
	assert.Equal(t, sl.Top+sl.Height-sl.BaseH, sl.BaseTop)
	assert.LessOrEqual(t, sl.Baseboard.R, sl.Color.R)
}

func TestCollectLabels(t *testing.T) {
	g := newTestGrid(t)
	g.SetLabel(Coord{2, 3}, "ROOM 101")
	cam := DefaultCamera(64, 48)

	hits := Cast(g, Pose{2.5, 1.5, math.Pi / 2}, cam)
	labels := CollectLabels(hits, g, cam, 9)
	require.Len(t, labels, 1)

	l := labels[0]
	assert.Equal(t, Coord{2, 3}, l.Cell)
	assert.Equal(t, "ROOM 101", l.Text)
	assert.LessOrEqual(t, l.MinX, 32)
	assert.GreaterOrEqual(t, l.MaxX, 32)
	assert.Equal(t, (l.MinX+l.MaxX)/2, l.CenterX())

	assert.Empty(t, CollectLabels(hits, g, cam, 0.5), "doors beyond label distance are skipped")
}

func TestComposite_VisibleAndOrdered(t *testing.T) {
	cam := DefaultCamera(64, 48)
	zbuf := make([]float64, 64)
	for i := range zbuf {
		zbuf[i] = 10
	}
	p := Pose{1.5, 1.5, 0}
	near := Sprite{X: 2.5, Y: 1.5, Color: color.RGBA{255, 0, 0, 255}, Size: 1}
	far := Sprite{X: 4.5, Y: 1.5, Color: color.RGBA{0, 255, 0, 255}, Size: 1, Emissive: 60}

	draws := Composite([]Sprite{near, far}, p, cam, zbuf)
	require.Len(t, draws, 2)
	assert.Equal(t, far, draws[0].Sprite, "farthest first")
	assert.Equal(t, near, draws[1].Sprite)
	assert.True(t, draws[0].Halo())
	assert.False(t, draws[1].Halo())

	d := draws[1]
	assert.InDelta(t, 1.0, d.Dist, 1e-9)
	assert.Equal(t, d.Height/2, d.Width)
	require.Len(t, d.Runs, 1)
	assert.Equal(t, max(0, d.Left), d.Runs[0].X0)
}

func TestComposite_Culling(t *testing.T) {
	cam := DefaultCamera(64, 48)
	zbuf := make([]float64, 64)
	for i := range zbuf {
		zbuf[i] = 10
	}
	p := Pose{5, 5, 0}

	behind := Sprite{X: 3, Y: 5, Size: 1}
	tooClose := Sprite{X: 5.1, Y: 5, Size: 1}
	assert.Empty(t, Composite([]Sprite{behind, tooClose}, p, cam, zbuf))
}

func TestComposite_OccludedByWall(t *testing.T) {
	cam := DefaultCamera(64, 48)
	zbuf := make([]float64, 64)
	for i := range zbuf {
		zbuf[i] = 1
	}
	// Left half of the screen has no wall in front of the sprite.
	for i := 0; i < 32; i++ {
		zbuf[i] = 10
	}

	draws := Composite([]Sprite{{X: 4, Y: 5, Size: 1}}, Pose{1, 5, 0}, cam, zbuf)
	require.Len(t, draws, 1)
	for _, r := range draws[0].Runs {
		assert.LessOrEqual(t, r.X1, 32, "no visible column behind a nearer wall")
	}
}

func TestNormalizeAngle(t *testing.T) {
	assert.InDelta(t, 0, NormalizeAngle(2*math.Pi), 1e-9)
	assert.InDelta(t, math.Pi, NormalizeAngle(-math.Pi), 1e-9)
	assert.InDelta(t, -math.Pi/2, NormalizeAngle(3*math.Pi/2), 1e-9)
	assert.InDelta(t, 0.5, NormalizeAngle(0.5+20*math.Pi), 1e-9)
}
