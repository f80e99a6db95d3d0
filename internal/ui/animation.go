// internal/ui/animation.go
package ui

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"hextrail_go/internal/assets"
	"hextrail_go/internal/game"
)

type FrameAnim struct {
	Frames []*ebiten.Image
	FPS    float64   // 每秒多少帧
	Start  time.Time // 动画开始时间
	Done   bool
	Cell   game.Cell // 要播放在哪个棋盘格
	AX, AY float64   // 帧图锚点
}

func (a *FrameAnim) Current() *ebiten.Image {
	if a.Done || len(a.Frames) == 0 {
		return nil
	}
	elapsed := time.Since(a.Start).Seconds()
	// 延迟播放：还没到 Start，就返回 nil
	if elapsed < 0 {
		return nil
	}
	idx := int(elapsed * a.FPS)
	if idx >= len(a.Frames) {
		a.Done = true
		return nil
	}
	return a.Frames[idx]
}

func (gs *GameScreen) addAnim(key string, c game.Cell) {
	data, ok := assets.Anim(key)
	if !ok {
		gs.logf("!动画资源缺失: %s", key)
		return
	}
	gs.anims = append(gs.anims, &FrameAnim{
		Frames: data.Frames,
		FPS:    data.FPS,
		Start:  time.Now(),
		Cell:   c,
		AX:     data.AX,
		AY:     data.AY,
	})
}

// addCrashAnim 在撞毁的蛇头处播放扩散圆环
func (gs *GameScreen) addCrashAnim(c game.Cell) {
	gs.addAnim("crash", c)
}

// addStepAnim 在新落点闪一下
func (gs *GameScreen) addStepAnim(c game.Cell, side game.Side) {
	key := "step_a"
	if side == game.PlayerB {
		key = "step_b"
	}
	gs.addAnim(key, c)
}

// drawAnims 绘制并清理已播完的动画
func (gs *GameScreen) drawAnims(dst *ebiten.Image) {
	scale, _, _, _, _, _ := boardTransform()
	alive := gs.anims[:0]
	for _, a := range gs.anims {
		frame := a.Current()
		if a.Done {
			continue
		}
		alive = append(alive, a)
		if frame == nil {
			continue
		}
		cx, cy := cellCenter(a.Cell)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-a.AX, -a.AY)
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(cx, cy)
		dst.DrawImage(frame, op)
	}
	gs.anims = alive
}
