// File ui/input.go
package ui

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"hextrail_go/internal/game"
)

func cubeRound(xf, yf, zf float64) (int, int, int) {
	rx := math.Round(xf)
	ry := math.Round(yf)
	rz := math.Round(zf)

	dx := math.Abs(rx - xf)
	dy := math.Abs(ry - yf)
	dz := math.Abs(rz - zf)

	if dx >= dy && dx >= dz {
		rx = -ry - rz
	} else if dy >= dz {
		ry = -rx - rz
	} else {
		rz = -rx - ry
	}
	return int(rx), int(ry), int(rz)
}

// pixelToCell 把 offscreen 像素坐标反算成棋盘格
func pixelToCell(fx, fy float64) (game.Cell, bool) {
	scale, orgX, orgY, tileW, tileH, vs := boardTransform()
	dx := tileW * 0.75

	// 1. 去掉平移、缩放
	x := (fx - orgX) / scale
	y := (fy - orgY) / scale

	// 2. 再去掉把中心移到 (0,0)，并移回半个瓦片的中心
	x -= float64(BoardRadius)*dx + tileW/2
	y -= float64(BoardRadius)*vs + tileH/2

	// 3. 浮点轴向
	qf := x / dx
	rf := y/vs - qf/2

	// 4. 立方整体取整
	q, _, r := cubeRound(qf, -qf-rf, rf)

	c := game.Cell{X: q + BoardRadius, Y: r + BoardRadius}
	return c, game.InBounds(c)
}

// keyMove 读取本帧的转向按键
func keyMove() (game.Move, bool) {
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft), inpututil.IsKeyJustPressed(ebiten.KeyA):
		if shift {
			return -2, true
		}
		return -1, true
	case inpututil.IsKeyJustPressed(ebiten.KeyRight), inpututil.IsKeyJustPressed(ebiten.KeyD):
		if shift {
			return 2, true
		}
		return 1, true
	case inpututil.IsKeyJustPressed(ebiten.KeyUp), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		return 0, true
	}
	return 0, false
}

// clickMove 把鼠标点中的相邻格换算成走法
func clickMove(p game.PlayerState) (game.Move, bool) {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return 0, false
	}
	mx, my := ebiten.CursorPosition()
	c, ok := pixelToCell(float64(mx), float64(my))
	if !ok {
		return 0, false
	}
	for _, m := range game.AllMoves() {
		if to, _ := game.Step(p.Pos, p.Dir, m); to == c {
			return m, true
		}
	}
	return 0, false
}

// handleInput 为人类一方读取键盘/鼠标走法
func (gs *GameScreen) handleInput() {
	for _, side := range []game.Side{game.PlayerA, game.PlayerB} {
		i := side - 1
		if !gs.human(side) || gs.pending[i] != nil {
			continue
		}
		m, ok := keyMove()
		if !ok {
			m, ok = clickMove(gs.state.Player(side))
		}
		if !ok {
			continue
		}
		gs.pending[i] = &m
		gs.status = ""
		// 同一次按键只分给一方
		return
	}
}
