// 终端观战：两个 AI 在 tcell 画出的棋盘上对局。
// q 退出，空格暂停，r 重开。
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	"hextrail_go/internal/match"
	"hextrail_go/internal/tui"
)

func main() {
	agentA := flag.String("a", "raycast", "A 方 AI")
	agentB := flag.String("b", "random", "B 方 AI")
	budget := flag.Duration("budget", match.DefaultBudget, "每步决策时限")
	workers := flag.Int("workers", match.DefaultWorkers, "每步并行评估的候选数")
	delay := flag.Duration("delay", 150*time.Millisecond, "两回合之间的间隔")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random AI 的随机种子")
	loop := flag.Bool("loop", false, "一局结束后自动开下一局")
	flag.Parse()

	var agents [2]match.Agent
	for i, name := range []string{*agentA, *agentB} {
		a, err := match.NewAgent(name, match.AgentOptions{Seed: *seed + int64(i), Workers: *workers})
		if err != nil {
			log.Fatal(err)
		}
		agents[i] = a
	}

	s, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := s.Init(); err != nil {
		log.Fatal(err)
	}
	defer s.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	v := &tui.Viewer{
		Screen: s,
		Runner: match.Runner{Budget: *budget},
		Agents: agents,
		Delay:  *delay,
		Loop:   *loop,
	}
	if err := v.Run(ctx); err != nil && ctx.Err() == nil {
		s.Fini()
		log.Fatal(err)
	}
}
