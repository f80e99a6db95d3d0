// cmd/hextrail/replay/main.go
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"hextrail_go/internal/assets"
	"hextrail_go/internal/game"
	"hextrail_go/internal/match"
	"hextrail_go/internal/ui"
)

type ReplayGame struct {
	records     []*match.Record
	mi          int
	state       *game.GameState
	turns       []game.TurnRecord // 已走过的回合，用于后退
	lastAdvance time.Time
	delay       time.Duration
	playing     bool // 是否自动播放

	tiles map[string]*ebiten.Image
	face  text.Face
}

func NewReplayGame(path string, delay time.Duration) (*ReplayGame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer f.Close()
	records, err := match.ReadRecords(f)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s 中没有对局", path)
	}
	tiles, err := ui.LoadTiles()
	if err != nil {
		return nil, err
	}
	// 先检查每盘的初始局面，坏记录直接报错
	for _, rec := range records {
		if _, err := rec.Start(); err != nil {
			return nil, err
		}
	}
	g := &ReplayGame{
		records:     records,
		lastAdvance: time.Now(),
		delay:       delay,
		tiles:       tiles,
		face:        ui.HUDFace(),
	}
	if err := g.load(0); err != nil {
		return nil, err
	}
	return g, nil
}

// load 切到第 mi 盘的初始局面
func (g *ReplayGame) load(mi int) error {
	state, err := g.records[mi].Start()
	if err != nil {
		return err
	}
	g.mi = mi
	g.state = state
	g.turns = g.turns[:0]
	return nil
}

func (g *ReplayGame) Layout(outsideWidth, outsideHeight int) (w, h int) {
	return ui.WindowWidth, ui.WindowHeight
}

func (g *ReplayGame) Update() error {
	// --- 1) 处理按键 ---
	// 空格：切换 播放/暂停
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.playing = !g.playing
	}
	// 右方向：单步前进
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		g.playing = false
		g.advance()
	}
	// 左方向：单步后退
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		g.playing = false
		g.rewind()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	// --- 2) 自动播放 ---
	if g.playing && time.Since(g.lastAdvance) >= g.delay {
		g.advance()
	}
	return nil
}

// advance 做一步前进（或切到下盘／结束）
func (g *ReplayGame) advance() {
	g.lastAdvance = time.Now()
	rec := g.records[g.mi]
	si := len(g.turns)
	if si >= len(rec.Steps) {
		if g.mi+1 < len(g.records) {
			if err := g.load(g.mi + 1); err != nil {
				log.Printf("对局 %d 无法载入: %v", g.records[g.mi+1].ID, err)
				g.playing = false
			}
		} else {
			g.playing = false
		}
		return
	}
	step := rec.Steps[si]
	t, err := g.state.MakeMoves(step.A, step.B)
	if err != nil {
		log.Printf("对局 %d 第 %d 步无法重放: %v", rec.ID, si, err)
		g.playing = false
		return
	}
	g.turns = append(g.turns, t)
}

// rewind 往回一步，用 Undo 撤销最后一回合
func (g *ReplayGame) rewind() {
	if n := len(g.turns); n > 0 {
		g.state.Undo(g.turns[n-1])
		g.turns = g.turns[:n-1]
		return
	}
	// 如果已经在初始，那就退到上一盘最后一步
	if g.mi == 0 {
		return
	}
	state, turns, err := g.records[g.mi-1].Replay()
	if err != nil {
		log.Printf("对局 %d 无法重放: %v", g.records[g.mi-1].ID, err)
		if state == nil {
			return
		}
	}
	g.mi--
	g.state, g.turns = state, turns
}

func (g *ReplayGame) Draw(screen *ebiten.Image) {
	screen.Fill(assets.ColorBackground)
	ui.DrawBoard(screen, g.state, g.tiles, nil)

	rec := g.records[g.mi]
	status := map[bool]string{true: "playing", false: "paused"}[g.playing]
	info := fmt.Sprintf("Match %d/%d  %s vs %s  Step %d/%d  Winner=%s  [%s]",
		g.mi+1, len(g.records),
		rec.AgentA, rec.AgentB,
		len(g.turns), len(rec.Steps),
		rec.Winner, status,
	)
	help := "Space play/pause   Right step   Left undo   Esc quit"
	if n := len(g.turns); n > 0 {
		s := rec.Steps[n-1]
		help = fmt.Sprintf("last: A %v (%.1fms)  B %v (%.1fms)   %s", s.A, s.MillisA, s.B, s.MillisB, help)
	}
	ui.DrawText(screen, g.face, 12, ui.WindowHeight-ui.HUDHeight+6, info, help)
	if g.state.GameOver {
		ui.DrawText(screen, g.face, 12, 12, "game over")
	}
}

func main() {
	jsonPath := flag.String("in", "selfplay.json", "自对弈 JSON 文件")
	delay := flag.Duration("delay", 200*time.Millisecond, "每步播放间隔")
	flag.Parse()

	g, err := NewReplayGame(*jsonPath, *delay)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(ui.WindowWidth, ui.WindowHeight)
	ebiten.SetWindowTitle("HexTrail 自对弈回放")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
