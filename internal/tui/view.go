// Package tui 在终端里渲染对局，供没有图形环境时观战。
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"hextrail_go/internal/game"
	"hextrail_go/internal/match"
)

// 棋盘在屏幕上的偏移
const (
	originX = 2
	originY = 1
)

var (
	defStyle   = tcell.StyleDefault.Background(tcell.ColorDefault).Foreground(tcell.ColorDefault)
	freeStyle  = defStyle.Foreground(tcell.ColorGray)
	trailStyle = [2]tcell.Style{
		defStyle.Foreground(tcell.ColorRed),
		defStyle.Foreground(tcell.ColorBlue),
	}
	headStyle = [2]tcell.Style{
		defStyle.Foreground(tcell.ColorRed).Bold(true),
		defStyle.Foreground(tcell.ColorBlue).Bold(true),
	}
)

// Position 返回格子 c 在终端上的列和行。相邻六格在文本里也相邻：
// 同行左右隔一列，上下行错开半格。
func Position(c game.Cell) (col, row int) {
	return originX + 2*c.X + c.Y - game.BoardSize/2, originY + c.Y
}

// Render 把 gs 画到 s 上，status 显示在棋盘下方。调用方负责 s.Show()。
func Render(s tcell.Screen, gs *game.GameState, status string) {
	s.Clear()
	for _, c := range game.AllCells() {
		col, row := Position(c)
		r, st := '.', freeStyle
		if gs.Board.Occupied(c) {
			r, st = '#', defStyle
			switch gs.Owner(c) {
			case game.PlayerA:
				r, st = 'a', trailStyle[0]
			case game.PlayerB:
				r, st = 'b', trailStyle[1]
			}
		}
		s.SetContent(col, row, r, nil, st)
	}
	for i, p := range gs.Players {
		r := rune('A' + i)
		if !gs.Alive[i] {
			r = 'X'
		}
		col, row := Position(p.Pos)
		s.SetContent(col, row, r, nil, headStyle[i])
	}
	drawText(s, originX, originY+game.BoardSize+1, status)
}

func drawText(s tcell.Screen, x, y int, text string) {
	for i, c := range text {
		s.SetContent(x+i, y, c, nil, defStyle)
	}
}

// Viewer 在终端里播放两个 AI 的对局。
// q 退出，空格暂停，r 重开。
type Viewer struct {
	Screen tcell.Screen
	Runner match.Runner
	Agents [2]match.Agent
	// Delay 是两回合之间的间隔
	Delay time.Duration
	// Loop 为 true 时一局结束后自动开下一局
	Loop bool
}

type turnResult struct {
	decisions [2]match.Decision
	state     *game.GameState // 发起决策时的局面，用于丢弃过期结果
}

// Run 运行主循环直到按下 q 或 ctx 结束。
func (v *Viewer) Run(ctx context.Context) error {
	s := v.Screen
	evChan := make(chan tcell.Event, 100)
	quitChan := make(chan struct{})
	go s.ChannelEvents(evChan, quitChan)
	defer close(quitChan)

	delay := v.Delay
	if delay <= 0 {
		delay = 200 * time.Millisecond
	}
	ticker := time.NewTicker(delay)
	defer ticker.Stop()

	var (
		gs       = game.NewGameState()
		paused   bool
		busy     bool
		games    int
		over     time.Time
		results  = make(chan turnResult, 1)
		forfeits [2]int
	)
	status := func() string {
		switch {
		case gs.GameOver:
			return fmt.Sprintf("game %d over after %d turns: %s   r restart  q quit", games+1, gs.Turn, gs.Winner)
		case paused:
			return fmt.Sprintf("turn %d  paused   space resume  q quit", gs.Turn)
		}
		return fmt.Sprintf("turn %d  %s vs %s  forfeits %d/%d   space pause  q quit",
			gs.Turn, v.Agents[0].Name(), v.Agents[1].Name(), forfeits[0], forfeits[1])
	}
	restart := func() {
		gs = game.NewGameState()
		forfeits = [2]int{}
		games++
	}

	for {
		Render(s, gs, status())
		s.Show()
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			if gs.GameOver && v.Loop && time.Since(over) > 2*time.Second {
				restart()
			}
			if busy || paused || gs.GameOver {
				continue
			}
			busy = true
			go v.decide(ctx, gs, results)

		case r := <-results:
			busy = false
			if r.state != gs || gs.GameOver {
				continue // 重开之前发起的决策
			}
			for i, d := range r.decisions {
				if d.Forfeited() {
					forfeits[i]++
				}
			}
			if _, err := gs.MakeMoves(r.decisions[0].Move, r.decisions[1].Move); err != nil {
				return err
			}
			if gs.GameOver {
				over = time.Now()
				s.Beep()
			}

		case ev := <-evChan:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				s.Sync()
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					return nil
				}
				if ev.Key() == tcell.KeyRune {
					switch ev.Rune() {
					case 'q':
						return nil
					case ' ':
						paused = !paused
					case 'r':
						restart()
					}
				}
			}
		}
	}
}

// decide 让双方在同一局面上并行决策
func (v *Viewer) decide(ctx context.Context, gs *game.GameState, out chan<- turnResult) {
	var r turnResult
	r.state = gs
	snaps := [2]game.Snapshot{gs.Snapshot(game.PlayerA), gs.Snapshot(game.PlayerB)}
	done := make(chan struct{})
	go func() {
		r.decisions[1] = v.Runner.Decide(ctx, v.Agents[1], snaps[1])
		close(done)
	}()
	r.decisions[0] = v.Runner.Decide(ctx, v.Agents[0], snaps[0])
	<-done
	out <- r
}
