package assets

import (
	"encoding/binary"
	"log"
	"math"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// note 是一段正弦音：频率 (Hz) 与时长
type note struct {
	freq float64
	dur  time.Duration
}

// 音效表，全部在启动时合成
var soundNotes = map[string][]note{
	"turn":      {{660, 45 * time.Millisecond}},
	"turn_hard": {{880, 45 * time.Millisecond}},
	"forfeit":   {{220, 90 * time.Millisecond}},
	"crash":     {{196, 120 * time.Millisecond}, {147, 220 * time.Millisecond}},
	"win":       {{523, 110 * time.Millisecond}, {659, 110 * time.Millisecond}, {784, 220 * time.Millisecond}},
	"lose":      {{392, 140 * time.Millisecond}, {311, 140 * time.Millisecond}, {262, 260 * time.Millisecond}},
	"draw":      {{440, 160 * time.Millisecond}, {440, 160 * time.Millisecond}},
}

type AudioManager struct {
	ctx     *audio.Context
	buffers map[string][]byte

	mu      sync.Mutex
	players []*audio.Player // 保留正在播放的 player，防止被 GC
}

// NewAudioManager 接收 main 创建好的 *audio.Context
func NewAudioManager(ctx *audio.Context) *AudioManager {
	buf := make(map[string][]byte, len(soundNotes))
	for name, notes := range soundNotes {
		buf[name] = synthesize(ctx.SampleRate(), notes...)
	}
	return &AudioManager{ctx: ctx, buffers: buf}
}

// Play 播放 key 对应音效。m 为 nil 时静音。
func (m *AudioManager) Play(key string) {
	if m == nil {
		return
	}
	data, ok := m.buffers[key]
	if !ok {
		log.Printf("AudioManager.Play：未找到音效 %s", key)
		return
	}
	p := m.ctx.NewPlayerFromBytes(data)
	p.Play()
	m.mu.Lock()
	m.players = append(m.players, p)
	m.mu.Unlock()
}

// Update 应每帧调用一次，清理已停止的播放器
func (m *AudioManager) Update() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	alive := m.players[:0]
	for _, p := range m.players {
		if p.IsPlaying() {
			alive = append(alive, p)
		} else {
			p.Close()
		}
	}
	m.players = alive
}

// Busy 报告是否还有音效在播放
func (m *AudioManager) Busy() bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.players {
		if p.IsPlaying() {
			return true
		}
	}
	return false
}

// synthesize 把若干音符依次合成为 16 位小端双声道 PCM
func synthesize(sampleRate int, notes ...note) []byte {
	const (
		volume = 0.25
		fade   = 5 * time.Millisecond
	)
	var out []byte
	fadeN := int(fade.Seconds() * float64(sampleRate))
	for _, n := range notes {
		total := int(n.dur.Seconds() * float64(sampleRate))
		for i := 0; i < total; i++ {
			// 首尾淡入淡出，避免爆音
			env := 1.0
			if i < fadeN {
				env = float64(i) / float64(fadeN)
			} else if total-i < fadeN {
				env = float64(total-i) / float64(fadeN)
			}
			v := volume * env * math.Sin(2*math.Pi*n.freq*float64(i)/float64(sampleRate))
			s := uint16(int16(v * math.MaxInt16))
			out = binary.LittleEndian.AppendUint16(out, s) // 左
			out = binary.LittleEndian.AppendUint16(out, s) // 右
		}
	}
	return out
}
