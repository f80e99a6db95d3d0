package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"hextrail_go/internal/match"
)

var csvHeader = []string{"game", "winner", "turns", "forfeitsA", "forfeitsB", "maxDecisionMs"}

func main() {
	// ───── 参数 ─────
	numGames := flag.Int("n", 1000, "目标总对局数")
	workers := flag.Int("workers", max(runtime.NumCPU()/2, 1), "并行对局数")
	budget := flag.Duration("budget", match.DefaultBudget, "每步决策时限")
	agentA := flag.String("a", "raycast", "A 方 AI")
	agentB := flag.String("b", "raycast", "B 方 AI")
	opening := flag.Int("opening", 2, "开局随机步数（让确定性 AI 的对局各不相同）")
	seed := flag.Int64("seed", time.Now().UnixNano(), "随机种子")
	outFile := flag.String("out", "selfplay.csv", "CSV 统计文件")
	logFile := flag.String("log", "", "JSON 对局记录（供回放），为空则不写")
	flag.Parse()

	debug := match.DebugLogger()
	for _, name := range []string{*agentA, *agentB} {
		if _, err := match.NewAgent(name, match.AgentOptions{}); err != nil {
			log.Fatal(err)
		}
	}

	// ───── 修复 CSV ─────
	lines, finished := repairCSV(*outFile, len(csvHeader))
	todo := pendingGames(*numGames, finished)

	// ───── 打开文件 + Writer + 互斥锁 ─────
	f, err := os.OpenFile(*outFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		log.Fatalf("open csv: %v", err)
	}
	w := csv.NewWriter(f)
	var wMu sync.Mutex
	defer func() { w.Flush(); f.Close() }()
	if lines == 0 {
		w.Write(csvHeader)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// ───── 并发 worker 池 ─────
	log.Printf("CPU=%d，启动 %d 个 worker 并行自对弈，已有 %d 局", runtime.NumCPU(), *workers, len(finished))
	runner := match.Runner{Budget: *budget, Logger: debug}

	jobs := make(chan int, *workers*2)
	var (
		wg      sync.WaitGroup
		recMu   sync.Mutex
		records []*match.Record
		wins    = map[string]int{}
	)
	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				rec, err := playOneGame(ctx, &runner, id, *seed, *agentA, *agentB, *opening, debug)
				if err != nil {
					log.Printf("对局 %d 中断: %v", id, err)
					continue
				}
				fa, fb := rec.Forfeits()
				row := []string{
					strconv.Itoa(id),
					rec.Winner,
					strconv.Itoa(len(rec.Steps)),
					strconv.Itoa(fa),
					strconv.Itoa(fb),
					strconv.FormatFloat(rec.MaxMillis(), 'f', 2, 64),
				}

				wMu.Lock()
				w.Write(row)
				w.Flush()
				wMu.Unlock()

				recMu.Lock()
				wins[rec.Winner]++
				if *logFile != "" {
					records = append(records, rec)
				}
				recMu.Unlock()
			}
		}()
	}

	// ───── 投任务 ─────
	for i, g := range todo {
		if ctx.Err() != nil {
			break
		}
		jobs <- g
		if (i+1)%100 == 0 {
			log.Printf("投放进度 %d/%d", i+1, len(todo))
		}
	}
	close(jobs)
	wg.Wait()
	if err := w.Error(); err != nil {
		log.Printf("写 CSV 出错: %v", err)
	}

	log.Printf("结果: A=%d B=%d draw=%d", wins["A"], wins["B"], wins["draw"])
	if *logFile != "" {
		writeLog(*logFile, records)
	}
}

// playOneGame 按 id 派生随机种子，保证同一 seed 下结果可复现
func playOneGame(ctx context.Context, runner *match.Runner, id int, seed int64, nameA, nameB string, opening int, debug *log.Logger) (*match.Record, error) {
	gameSeed := seed + int64(id)*7919
	a, err := match.NewAgent(nameA, match.AgentOptions{Seed: gameSeed, Logger: debug})
	if err != nil {
		return nil, err
	}
	b, err := match.NewAgent(nameB, match.AgentOptions{Seed: gameSeed + 1, Logger: debug})
	if err != nil {
		return nil, err
	}
	if opening > 0 {
		a = match.WithOpening(a, opening, gameSeed+2)
		b = match.WithOpening(b, opening, gameSeed+3)
	}
	rec, _, err := runner.Play(ctx, a, b)
	if err != nil {
		return nil, err
	}
	rec.ID = id
	return rec, nil
}

// writeLog 按局号排序后写出 JSON 记录
func writeLog(path string, records []*match.Record) {
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := match.WriteRecords(f, records); err != nil {
		log.Fatalf("write %s: %v", path, err)
	}
	log.Printf("已写出 %d 局记录到 %s", len(records), path)
}

// pendingGames 返回 [0, n) 中还没写进 CSV 的局号
func pendingGames(n int, finished map[int]bool) []int {
	var todo []int
	for g := 0; g < n; g++ {
		if !finished[g] {
			todo = append(todo, g)
		}
	}
	return todo
}

// repairCSV 打开文件检查尾行完整性，返回完整行数（含表头）和已完成的局号
func repairCSV(path string, expectCols int) (int, map[int]bool) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		log.Fatalf("repair open: %v", err)
	}
	defer f.Close()

	var offset int64
	rdr := bufio.NewReader(f)
	cols := 0
	lines := 0
	finished := map[int]bool{}
	for {
		line, err := rdr.ReadBytes('\n')
		if err == io.EOF {
			// 没有换行结尾的最后一行视为半行
			if len(line) > 0 {
				cols = -1
			}
			break
		} else if err != nil {
			log.Fatalf("read csv: %v", err)
		}
		cols = countCSVColumns(line)
		if cols == expectCols {
			offset += int64(len(line))
			lines++
			// 表头的第一列不是数字
			first, _, _ := strings.Cut(string(line), ",")
			if id, err := strconv.Atoi(first); err == nil {
				finished[id] = true
			}
		} else {
			break // 遇到半行
		}
	}
	if cols != 0 && cols != expectCols {
		// 截断到最后完整行末尾
		if err := f.Truncate(offset); err != nil {
			log.Fatalf("truncate: %v", err)
		}
		log.Printf("检测到残缺行，已截断到 %d 字节 (完整 %d 行)", offset, lines)
	}
	return lines, finished
}

// 简单统计逗号列数
func countCSVColumns(b []byte) int {
	n := 1
	for _, c := range b {
		if c == ',' {
			n++
		}
	}
	return n
}

// go build -ldflags="-s -w" -o selfplay ./cmd/selfplay
