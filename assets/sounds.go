package assets

import (
	"bytes"
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

const SampleRate = 44100

var sampleRate = beep.SampleRate(SampleRate)

// maxSoundLength caps rendering for streamers that never drain.
const maxSoundLength = 30 * time.Second

// Track names understood by LoadAudioPlayer.
const (
	SoundCoin  = "coin"
	SoundKey   = "key"
	SoundChest = "chest"
	SoundJump  = "jump"
	MusicTheme = "theme"
)

type note struct {
	freq float64
	dur  time.Duration
}

var sounds = map[string]func() (beep.Streamer, error){
	SoundCoin: func() (beep.Streamer, error) {
		return melody([]note{{987.77, 70 * time.Millisecond}, {1318.51, 180 * time.Millisecond}}, 0.6)
	},
	SoundKey: func() (beep.Streamer, error) {
		return melody([]note{{659.25, 60 * time.Millisecond}, {880, 60 * time.Millisecond}, {1108.73, 160 * time.Millisecond}}, 0.6)
	},
	SoundJump: func() (beep.Streamer, error) {
		return melody([]note{{392, 40 * time.Millisecond}, {523.25, 40 * time.Millisecond}, {659.25, 70 * time.Millisecond}}, 0.5)
	},
	SoundChest: chord,
	MusicTheme: theme,
}

// decay fades a streamer linearly to silence over its length.
type decay struct {
	s     beep.Streamer
	pos   int
	total int
}

func (d *decay) Stream(samples [][2]float64) (int, bool) {
	n, ok := d.s.Stream(samples)
	for i := 0; i < n; i++ {
		k := 1 - float64(d.pos)/float64(d.total)
		if k < 0 {
			k = 0
		}
		samples[i][0] *= k
		samples[i][1] *= k
		d.pos++
	}
	return n, ok
}

func (d *decay) Err() error {
	return d.s.Err()
}

func tone(freq float64, dur time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil, err
	}
	n := sampleRate.N(dur)
	return &decay{s: beep.Take(n, sine), total: n}, nil
}

func gain(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func melody(notes []note, vol float64) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		t, err := tone(n.freq, n.dur)
		if err != nil {
			return nil, err
		}
		parts = append(parts, t)
	}
	return gain(beep.Seq(parts...), vol), nil
}

func chord() (beep.Streamer, error) {
	const dur = 450 * time.Millisecond
	var parts []beep.Streamer
	for _, f := range []float64{523.25, 659.25, 783.99, 1046.5} {
		t, err := tone(f, dur)
		if err != nil {
			return nil, err
		}
		parts = append(parts, t)
	}
	return gain(beep.Take(sampleRate.N(dur), beep.Mix(parts...)), 0.25), nil
}

func theme() (beep.Streamer, error) {
	beat := 220 * time.Millisecond
	line := []float64{261.63, 329.63, 392, 329.63, 349.23, 440, 523.25, 440, 392, 329.63, 293.66, 329.63, 261.63, 0, 196, 0}
	notes := make([]note, 0, len(line))
	for _, f := range line {
		notes = append(notes, note{f, beat})
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		if n.freq == 0 {
			parts = append(parts, beep.Silence(sampleRate.N(n.dur)))
			continue
		}
		t, err := tone(n.freq, n.dur)
		if err != nil {
			return nil, err
		}
		parts = append(parts, t)
	}
	return gain(beep.Seq(parts...), 0.35), nil
}

// PCM renders a named sound to 16-bit little-endian stereo at SampleRate.
func PCM(name string) ([]byte, error) {
	build, ok := sounds[cleanAssetName(name)]
	if !ok {
		return nil, unknownAsset("sound", name)
	}
	s, err := build()
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	buf := make([][2]float64, 512)
	frame := make([]byte, 4)
	limit := sampleRate.N(maxSoundLength)
	for rendered := 0; rendered < limit; {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			binary.LittleEndian.PutUint16(frame[0:], uint16(toInt16(buf[i][0])))
			binary.LittleEndian.PutUint16(frame[2:], uint16(toInt16(buf[i][1])))
			out.Write(frame)
		}
		rendered += n
		if !ok || n == 0 {
			break
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func toInt16(v float64) int16 {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int16(v * math.MaxInt16)
}

var (
	contextOnce sync.Once
	audioCtx    *audio.Context
)

// Context returns the process-wide audio context, creating it on first use.
func Context() *audio.Context {
	contextOnce.Do(func() {
		if ctx := audio.CurrentContext(); ctx != nil {
			audioCtx = ctx
			return
		}
		audioCtx = audio.NewContext(SampleRate)
	})
	return audioCtx
}

var (
	pcmMu    sync.Mutex
	pcmCache = map[string][]byte{}
)

func cachedPCM(name string) ([]byte, error) {
	key := cleanAssetName(name)
	pcmMu.Lock()
	defer pcmMu.Unlock()
	if b, ok := pcmCache[key]; ok {
		return b, nil
	}
	b, err := PCM(key)
	if err != nil {
		return nil, err
	}
	pcmCache[key] = b
	return b, nil
}

// LoadAudioPlayer creates a one-shot player for a sound effect.
func LoadAudioPlayer(name string) (*audio.Player, error) {
	b, err := cachedPCM(name)
	if err != nil {
		return nil, err
	}
	return Context().NewPlayerFromBytes(b), nil
}

// LoadLoopingPlayer creates a player that repeats the track forever.
func LoadLoopingPlayer(name string) (*audio.Player, error) {
	b, err := cachedPCM(name)
	if err != nil {
		return nil, err
	}
	loop := audio.NewInfiniteLoop(bytes.NewReader(b), int64(len(b)))
	return Context().NewPlayer(loop)
}
