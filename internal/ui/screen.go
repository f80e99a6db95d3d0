// File /ui/screen.go
package ui

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"hextrail_go/internal/assets"
	"hextrail_go/internal/game"
	"hextrail_go/internal/match"
)

const (
	// 窗口尺寸
	WindowWidth  = 800
	WindowHeight = 600
	// 棋盘半径
	BoardRadius = game.BoardSize / 2
	// 底部状态栏高度
	HUDHeight = 48
)

// Options 配置一局界面对局。
// Bots[i] 为 nil 表示该方由键盘/鼠标操控。
type Options struct {
	Bots   [2]match.Agent
	Runner match.Runner
	// Delay 是两回合之间的最短间隔，观战时放慢节奏
	Delay  time.Duration
	Logger *log.Logger
}

// decision 是后台 goroutine 送回的一次决策
type decision struct {
	side game.Side
	d    match.Decision
}

// GameScreen 实现 ebiten.Game 接口，管理游戏主循环和渲染
type GameScreen struct {
	opts    Options
	state   *game.GameState
	history []game.TurnRecord

	pending  [2]*game.Move // 本回合已定下的走法
	thinking [2]bool       // AI 是否在后台计算
	results  chan decision
	cancel   context.CancelFunc
	ctx      context.Context

	tiles        map[string]*ebiten.Image
	face         text.Face
	audioManager *assets.AudioManager
	nextTurnAt   time.Time
	offscreen    *ebiten.Image
	anims        []*FrameAnim // 正在播放的动画列表
	forfeits     [2]int
	status       string
}

// NewGameScreen 构造并初始化游戏界面。audioCtx 为 nil 时静音。
func NewGameScreen(audioCtx *audio.Context, opts Options) (*GameScreen, error) {
	tiles, err := LoadTiles()
	if err != nil {
		return nil, err
	}
	gs := &GameScreen{
		opts:  opts,
		tiles: tiles,
		face:  HUDFace(),
	}
	if audioCtx != nil {
		gs.audioManager = assets.NewAudioManager(audioCtx)
	}
	gs.offscreen = ebiten.NewImage(WindowWidth, WindowHeight)
	gs.reset()
	return gs, nil
}

// reset 开新局，丢弃仍在计算中的旧决策
func (gs *GameScreen) reset() {
	if gs.cancel != nil {
		gs.cancel()
	}
	gs.ctx, gs.cancel = context.WithCancel(context.Background())
	gs.results = make(chan decision, 2)
	gs.state = game.NewGameState()
	gs.history = nil
	gs.pending = [2]*game.Move{}
	gs.thinking = [2]bool{}
	gs.anims = nil
	gs.forfeits = [2]int{}
	gs.nextTurnAt = time.Time{}
	gs.status = ""
}

// human 报告 side 是否由人操控
func (gs *GameScreen) human(side game.Side) bool {
	return gs.opts.Bots[side-1] == nil
}

// Update 每帧更新：处理输入、收集 AI 决策、结算回合
func (gs *GameScreen) Update() error {
	gs.audioManager.Update()
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		gs.reset()
		return nil
	}
	gs.collect()
	if gs.state.GameOver {
		return nil
	}
	if time.Now().Before(gs.nextTurnAt) {
		return nil
	}

	gs.handleInput()
	gs.requestDecisions()
	gs.applyTurn()
	return nil
}

// requestDecisions 为还没出手的 AI 启动后台决策
func (gs *GameScreen) requestDecisions() {
	for _, side := range []game.Side{game.PlayerA, game.PlayerB} {
		side := side
		i := side - 1
		agent := gs.opts.Bots[i]
		if agent == nil || gs.pending[i] != nil || gs.thinking[i] {
			continue
		}
		gs.thinking[i] = true
		snap := gs.state.Snapshot(side)
		ctx, results, runner := gs.ctx, gs.results, gs.opts.Runner
		go func() {
			results <- decision{side: side, d: runner.Decide(ctx, agent, snap)}
		}()
	}
}

// collect 非阻塞地取回后台决策
func (gs *GameScreen) collect() {
	for {
		select {
		case r := <-gs.results:
			i := r.side - 1
			gs.thinking[i] = false
			mv := r.d.Move
			gs.pending[i] = &mv
			if r.d.Forfeited() {
				gs.forfeits[i]++
				gs.status = fmt.Sprintf("%s forfeited a turn: %v", r.side, r.d.Err)
				gs.audioManager.Play("forfeit")
				gs.logf("%s 弃权: %v", r.side, r.d.Err)
			}
		default:
			return
		}
	}
}

// applyTurn 双方都出手后结算一回合
func (gs *GameScreen) applyTurn() {
	if gs.pending[0] == nil || gs.pending[1] == nil {
		return
	}
	rec, err := gs.state.MakeMoves(*gs.pending[0], *gs.pending[1])
	gs.pending = [2]*game.Move{}
	if err != nil {
		gs.logf("结算失败: %v", err)
		return
	}
	gs.history = append(gs.history, rec)
	gs.nextTurnAt = time.Now().Add(gs.opts.Delay)

	for i, crashed := range rec.Crashed {
		p := gs.state.Players[i]
		if crashed {
			gs.addCrashAnim(p.Pos)
			continue
		}
		gs.addStepAnim(p.Pos, game.Side(i+1))
	}
	gs.playTurnSound(rec)
	gs.logf("turn %d: A %v B %v crashed %v", gs.state.Turn, rec.Moves[0], rec.Moves[1], rec.Crashed)
}

func (gs *GameScreen) playTurnSound(rec game.TurnRecord) {
	if !gs.state.GameOver {
		m := rec.Moves[0]
		if !gs.human(game.PlayerA) {
			m = rec.Moves[1]
		}
		switch {
		case m == 0:
		case m == 2 || m == -2:
			gs.audioManager.Play("turn_hard")
		default:
			gs.audioManager.Play("turn")
		}
		return
	}
	gs.audioManager.Play("crash")
	switch {
	case gs.state.Winner == game.NoSide:
		gs.audioManager.Play("draw")
	case gs.human(gs.state.Winner) || !gs.human(game.Opponent(gs.state.Winner)):
		gs.audioManager.Play("win")
	default:
		gs.audioManager.Play("lose")
	}
}

// Draw 每帧渲染：先清空背景，再绘制棋盘、动画与状态栏
func (gs *GameScreen) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	gs.offscreen.Fill(assets.ColorBackground)

	DrawBoard(gs.offscreen, gs.state, gs.tiles, gs.hints())
	gs.drawAnims(gs.offscreen)
	gs.drawHUD(gs.offscreen)

	// 把 offscreen 缩放、居中到 screen
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	scale := math.Min(float64(w)/WindowWidth, float64(h)/WindowHeight)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate((float64(w)-WindowWidth*scale)/2, (float64(h)-WindowHeight*scale)/2)
	screen.DrawImage(gs.offscreen, op)
}

// hints 返回人类玩家本回合可走的目标格
func (gs *GameScreen) hints() []game.Cell {
	if gs.state.GameOver {
		return nil
	}
	var cells []game.Cell
	for _, side := range []game.Side{game.PlayerA, game.PlayerB} {
		if !gs.human(side) || gs.pending[side-1] != nil {
			continue
		}
		p := gs.state.Player(side)
		for _, m := range game.LegalMoves(&gs.state.Board, p.Pos, p.Dir) {
			to, _ := game.Step(p.Pos, p.Dir, m)
			cells = append(cells, to)
		}
	}
	return cells
}

// HUDFace 是状态栏用的等宽字体
func HUDFace() text.Face {
	return text.NewGoXFace(basicfont.Face7x13)
}

// DrawText 在 (x, y) 处逐行绘制白色文字
func DrawText(dst *ebiten.Image, face text.Face, x, y float64, lines ...string) {
	for i, s := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, y+float64(i*18))
		op.ColorScale.ScaleWithColor(color.White)
		text.Draw(dst, s, face, op)
	}
}

func (gs *GameScreen) drawHUD(dst *ebiten.Image) {
	line1 := fmt.Sprintf("Turn %d   A: %s   B: %s   forfeits %d/%d",
		gs.state.Turn, gs.sideLabel(game.PlayerA), gs.sideLabel(game.PlayerB),
		gs.forfeits[0], gs.forfeits[1])
	line2 := "Left/Right turn (Shift = sharp)  Up/Space straight  R restart  Esc quit"
	if gs.state.GameOver {
		line2 = fmt.Sprintf("Game over (%s) after %d turns. Press R to play again.", gs.state.Winner, gs.state.Turn)
	} else if gs.status != "" {
		line2 = gs.status
	}
	DrawText(dst, gs.face, 12, WindowHeight-HUDHeight+6, line1, line2)
}

func (gs *GameScreen) sideLabel(side game.Side) string {
	i := side - 1
	switch {
	case gs.human(side) && gs.pending[i] != nil:
		return "you (ready)"
	case gs.human(side):
		return "you"
	case gs.thinking[i]:
		return gs.opts.Bots[i].Name() + " (thinking)"
	}
	return gs.opts.Bots[i].Name()
}

// Layout 定义窗口尺寸
func (gs *GameScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	return WindowWidth, WindowHeight
}

func (gs *GameScreen) logf(format string, args ...any) {
	if gs.opts.Logger != nil {
		gs.opts.Logger.Printf(format, args...)
	}
}

// boardTransform 返回 boardScale, originX, originY, tileW, tileH, vs
func boardTransform() (float64, float64, float64, float64, float64, float64) {
	tileW, tileH := float64(assets.TileSize), float64(assets.TileSize)
	vs := tileH * math.Sqrt(3) / 2

	cols, rows := 2*BoardRadius+1, 2*BoardRadius+1
	boardW := float64(cols-1)*tileW*0.75 + tileW
	boardH := vs*float64(rows-1) + tileH

	availH := float64(WindowHeight - HUDHeight)
	scale := math.Min(float64(WindowWidth)/boardW, availH/boardH)
	originX := (float64(WindowWidth) - boardW*scale) / 2
	originY := (availH - boardH*scale) / 2
	return scale, originX, originY, tileW, tileH, vs
}
