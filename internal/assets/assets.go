package assets

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// TileSize 是所有格子贴图的边长（正方形画布，平顶六边形居中）
const TileSize = 64

// 配色
var (
	ColorBackground = color.RGBA{0x10, 0x10, 0x1c, 0xff}
	ColorFree       = color.RGBA{0x2a, 0x2d, 0x3a, 0xff}
	ColorEdge       = color.RGBA{0x55, 0x5a, 0x70, 0xff}
	ColorBlocked    = color.RGBA{0x14, 0x15, 0x1b, 0xff}
	ColorTrailA     = color.RGBA{0x8c, 0x2a, 0x2a, 0xff}
	ColorTrailB     = color.RGBA{0x2a, 0x4a, 0x8c, 0xff}
	ColorHeadA      = color.RGBA{0xff, 0x5a, 0x4a, 0xff}
	ColorHeadB      = color.RGBA{0x5a, 0xa8, 0xff, 0xff}
	ColorHint       = color.RGBA{0xf0, 0xd0, 0x40, 0xff}
)

// whiteSub 是 DrawTriangles 用的纯白源图
var whiteSub = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

var (
	imagesOnce sync.Once
	images     map[string]*ebiten.Image
)

// LoadImage 按名称取程序生成的贴图
func LoadImage(name string) (*ebiten.Image, error) {
	imagesOnce.Do(buildImages)
	img, ok := images[name]
	if !ok {
		return nil, fmt.Errorf("未知贴图 %s", name)
	}
	return img, nil
}

func buildImages() {
	const r = TileSize/2 - 2
	images = map[string]*ebiten.Image{
		"hex_space":   NewHexTile(r, ColorFree, ColorEdge),
		"hex_blocked": NewHexTile(r, ColorBlocked, ColorEdge),
		"trail_a":     NewHexTile(r, ColorTrailA, ColorHeadA),
		"trail_b":     NewHexTile(r, ColorTrailB, ColorHeadB),
		"head_a":      newHeadPiece(ColorHeadA),
		"head_b":      newHeadPiece(ColorHeadB),
		"hint":        newHintRing(r),
	}
}

// HexPath 构造中心 (cx, cy)、外接圆半径 r 的平顶六边形路径
func HexPath(cx, cy, r float32) *vector.Path {
	var p vector.Path
	for i := 0; i < 6; i++ {
		a := float64(i) * math.Pi / 3
		x := cx + r*float32(math.Cos(a))
		y := cy + r*float32(math.Sin(a))
		if i == 0 {
			p.MoveTo(x, y)
		} else {
			p.LineTo(x, y)
		}
	}
	p.Close()
	return &p
}

// NewHexTile 生成一块填充 fill、描边 edge 的六边形贴图
func NewHexTile(r float32, fill, edge color.Color) *ebiten.Image {
	img := ebiten.NewImage(TileSize, TileSize)
	p := HexPath(TileSize/2, TileSize/2, r)
	FillPath(img, p, fill)
	StrokePath(img, p, 2, edge)
	return img
}

func newHeadPiece(c color.Color) *ebiten.Image {
	img := ebiten.NewImage(TileSize/2, TileSize/2)
	vector.DrawFilledCircle(img, TileSize/4, TileSize/4, TileSize/4-2, c, true)
	vector.StrokeCircle(img, TileSize/4, TileSize/4, TileSize/4-2, 2, color.White, true)
	return img
}

func newHintRing(r float32) *ebiten.Image {
	img := ebiten.NewImage(TileSize, TileSize)
	StrokePath(img, HexPath(TileSize/2, TileSize/2, r-2), 3, ColorHint)
	return img
}

// FillPath 用纯色填充路径
func FillPath(dst *ebiten.Image, p *vector.Path, c color.Color) {
	vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
	drawSolid(dst, vs, is, c)
}

// StrokePath 用纯色描边路径
func StrokePath(dst *ebiten.Image, p *vector.Path, width float32, c color.Color) {
	op := &vector.StrokeOptions{Width: width, LineJoin: vector.LineJoinRound}
	vs, is := p.AppendVerticesAndIndicesForStroke(nil, nil, op)
	drawSolid(dst, vs, is, c)
}

func drawSolid(dst *ebiten.Image, vs []ebiten.Vertex, is []uint16, c color.Color) {
	r, g, b, a := c.RGBA()
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(r) / 0xffff
		vs[i].ColorG = float32(g) / 0xffff
		vs[i].ColorB = float32(b) / 0xffff
		vs[i].ColorA = float32(a) / 0xffff
	}
	dst.DrawTriangles(vs, is, whiteSub, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}
