// File /ui/render.go
package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"hextrail_go/internal/assets"
	"hextrail_go/internal/game"
)

var headingColor = color.RGBA{0xf0, 0xf0, 0xf0, 0xf0}

// trailTiles 按轨迹归属挑选底图
var trailTiles = map[game.Side]string{
	game.PlayerA: "trail_a",
	game.PlayerB: "trail_b",
}

// LoadTiles 取出 DrawBoard 需要的全部贴图
func LoadTiles() (map[string]*ebiten.Image, error) {
	tiles := make(map[string]*ebiten.Image)
	for _, name := range []string{"hex_space", "hex_blocked", "trail_a", "trail_b", "head_a", "head_b", "hint"} {
		img, err := assets.LoadImage(name)
		if err != nil {
			return nil, err
		}
		tiles[name] = img
	}
	return tiles, nil
}

// DrawBoard 在 dst 上绘制棋盘、轨迹、提示和蛇头。
// dst 尺寸应当是 WindowWidth×WindowHeight（800×600）。
func DrawBoard(dst *ebiten.Image, state *game.GameState, tiles map[string]*ebiten.Image, hints []game.Cell) {
	// 1) 底板与轨迹
	for _, c := range game.AllCells() {
		name := "hex_space"
		if state.Board.Occupied(c) {
			name = "hex_blocked"
			if t, ok := trailTiles[state.Owner(c)]; ok {
				name = t
			}
		}
		drawHex(dst, tiles[name], c)
	}

	// 2) 提示：人类可走的目标格
	for _, c := range hints {
		drawHex(dst, tiles["hint"], c)
	}

	// 3) 蛇头 + 朝向
	for i, p := range state.Players {
		img := tiles["head_a"]
		if i == 1 {
			img = tiles["head_b"]
		}
		drawPiece(dst, img, p.Pos)
		if state.Alive[i] {
			drawHeading(dst, p)
		}
	}
}

// cellCenter 返回格子 c 在 offscreen 上的中心像素
func cellCenter(c game.Cell) (float64, float64) {
	scale, originX, originY, tileW, tileH, vs := boardTransform()
	q, r := c.X-BoardRadius, c.Y-BoardRadius

	// 瓦片左上角（已移到中心原点右下）
	x := float64(q+BoardRadius) * tileW * 0.75
	y := (float64(r+BoardRadius) + float64(q)/2) * vs

	return originX + (x+tileW/2)*scale, originY + (y+tileH/2)*scale
}

// drawHex 把一个瓦片或提示图等比放到 c 处
func drawHex(dst *ebiten.Image, img *ebiten.Image, c game.Cell) {
	scale, _, _, tileW, tileH, _ := boardTransform()
	cx, cy := cellCenter(c)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx-tileW*scale/2, cy-tileH*scale/2)
	dst.DrawImage(img, op)
}

// drawPiece 把棋子图居中绘制到瓦片 c 的正中心
func drawPiece(dst *ebiten.Image, img *ebiten.Image, c game.Cell) {
	scale, _, _, _, _, _ := boardTransform()
	cx, cy := cellCenter(c)
	pw, ph := float64(img.Bounds().Dx())*scale, float64(img.Bounds().Dy())*scale

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx-pw/2, cy-ph/2)
	dst.DrawImage(img, op)
}

// drawHeading 从蛇头中心朝当前方向画一条短线
func drawHeading(dst *ebiten.Image, p game.PlayerState) {
	scale, _, _, tileW, _, _ := boardTransform()
	x0, y0 := cellCenter(p.Pos)
	x1, y1 := cellCenter(p.Pos.Add(game.DirectionOffset(p.Dir)))
	ang := math.Atan2(y1-y0, x1-x0)
	l := tileW * scale * 0.45
	vector.StrokeLine(dst,
		float32(x0), float32(y0),
		float32(x0+l*math.Cos(ang)), float32(y0+l*math.Sin(ang)),
		float32(3*scale), headingColor, true)
}
