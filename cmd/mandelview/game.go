package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gogpu/mandelbrot/internal/viewer"
)

// game adapts a viewer session to ebiten's loop. ebiten calls Update and
// Draw on the same goroutine, never concurrently.
type game struct {
	session *viewer.Session
	img     *ebiten.Image
}

func newGame(s *viewer.Session) *game {
	g := s.Grid()
	return &game{
		session: s,
		img:     ebiten.NewImage(g.Width, g.Height),
	}
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.session.ToggleHUD()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.session.Click(ebiten.CursorPosition())
	}
	g.session.Update(pollInput())
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	fb, err := g.session.Render()
	if err != nil {
		return
	}
	g.img.WritePixels(fb.Data())
	screen.DrawImage(g.img, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	grid := g.session.Grid()
	return grid.Width, grid.Height
}

func (g *game) close() error {
	g.img.Deallocate()
	return g.session.Close()
}
