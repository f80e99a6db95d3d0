package assets

import (
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

type AnimData struct {
	Frames []*ebiten.Image
	AX, AY float64 // 锚点：帧图内与格子中心对齐的位置
	FPS    float64
}

var (
	animOnce  sync.Once
	animDatas map[string]AnimData
)

// Anim 返回 key 对应的动画；帧全部程序生成
func Anim(key string) (AnimData, bool) {
	animOnce.Do(func() {
		animDatas = map[string]AnimData{
			"crash":  ringFrames(12, color.RGBA{0xff, 0xe0, 0x60, 0xff}),
			"step_a": flashFrames(6, ColorHeadA),
			"step_b": flashFrames(6, ColorHeadB),
		}
	})
	a, ok := animDatas[key]
	return a, ok
}

// ringFrames 生成一个向外扩散、逐渐变淡的圆环
func ringFrames(n int, c color.RGBA) AnimData {
	const size = TileSize * 2
	frames := make([]*ebiten.Image, n)
	for i := range frames {
		img := ebiten.NewImage(size, size)
		t := float32(i+1) / float32(n)
		fc := c
		fc.A = uint8(float32(c.A) * (1 - t*0.8))
		fc.R, fc.G, fc.B = scale8(c.R, fc.A), scale8(c.G, fc.A), scale8(c.B, fc.A)
		vector.StrokeCircle(img, size/2, size/2, 6+t*(size/2-8), 4, fc, true)
		frames[i] = img
	}
	return AnimData{Frames: frames, AX: size / 2, AY: size / 2, FPS: 24}
}

// flashFrames 生成落点上的一次短暂高亮
func flashFrames(n int, c color.RGBA) AnimData {
	frames := make([]*ebiten.Image, n)
	for i := range frames {
		img := ebiten.NewImage(TileSize, TileSize)
		fc := c
		fc.A = uint8(0xc0 * (n - i) / n)
		fc.R, fc.G, fc.B = scale8(c.R, fc.A), scale8(c.G, fc.A), scale8(c.B, fc.A)
		FillPath(img, HexPath(TileSize/2, TileSize/2, TileSize/2-4), fc)
		frames[i] = img
	}
	return AnimData{Frames: frames, AX: TileSize / 2, AY: TileSize / 2, FPS: 24}
}

// scale8 把颜色分量预乘 alpha，ebiten 使用预乘颜色
func scale8(v, a uint8) uint8 {
	return uint8(uint16(v) * uint16(a) / 0xff)
}
