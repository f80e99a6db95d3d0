package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"hextrail_go/internal/match"
	"hextrail_go/internal/ui"
)

func main() {
	const (
		sampleRate  = 44100
		ScreenScale = 1
	)

	// ───── 参数 ─────
	watch := flag.Bool("watch", false, "观战模式：双方都由 AI 操控")
	botA := flag.String("a", "raycast", "观战时 A 方 AI")
	botB := flag.String("b", "raycast", "B 方 AI")
	budget := flag.Duration("budget", match.DefaultBudget, "每步决策时限")
	workers := flag.Int("workers", match.DefaultWorkers, "每步并行评估的候选数")
	delay := flag.Duration("delay", 150*time.Millisecond, "两回合之间的最短间隔")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random AI 的随机种子")
	mute := flag.Bool("mute", false, "关闭音效")
	flag.Parse()

	debug := match.DebugLogger()
	newBot := func(name string, seed int64) match.Agent {
		a, err := match.NewAgent(name, match.AgentOptions{Seed: seed, Workers: *workers, Logger: debug})
		if err != nil {
			log.Fatal(err)
		}
		return a
	}

	opts := ui.Options{
		Runner: match.Runner{Budget: *budget, Logger: debug},
		Delay:  *delay,
		Logger: debug,
	}
	opts.Bots[1] = newBot(*botB, *seed+1)
	if *watch {
		opts.Bots[0] = newBot(*botA, *seed)
	}

	var ctx *audio.Context
	if !*mute {
		ctx = audio.NewContext(sampleRate)
	}

	screen, err := ui.NewGameScreen(ctx, opts)
	if err != nil {
		log.Fatal(err)
	}
	ebiten.SetTPS(30) // 每秒逻辑更新次数限制为30
	ebiten.SetWindowSize(ui.WindowWidth*ScreenScale, ui.WindowHeight*ScreenScale)
	ebiten.SetWindowTitle("HexTrail")

	if err := ebiten.RunGame(screen); err != nil {
		log.Fatal(err)
	}
}

// go build -ldflags="-s -w" -o hextrail ./cmd/hextrail
