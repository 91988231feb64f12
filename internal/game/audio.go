package game

import (
	"io"
	"math"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// SoundKind identifies the race cue sounds.
type SoundKind int

const (
	SoundGatePass SoundKind = iota
	SoundCrash
	SoundTumble
	SoundGraze
	SoundCorrect
	SoundWrong
	SoundFinish
	SoundMenuSelect
)

const sfxVolume = 0.58

// AudioSystem synthesizes cue sounds procedurally. Cues are fire-and-forget:
// playback failures and a missing context degrade to silence.
type AudioSystem struct {
	ctx   *oto.Context
	ready chan struct{}
}

func NewAudioSystem() (*AudioSystem, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, err
	}
	return &AudioSystem{ctx: ctx, ready: ready}, nil
}

// AttachTo wires cue playback to race events. A nil AudioSystem is a valid
// silent sink, so the caller can attach unconditionally after a failed init.
func (a *AudioSystem) AttachTo(bus *EventBus) {
	if a == nil {
		return
	}
	bus.Subscribe(EventGatePassed, func(Event) { a.Play(SoundGatePass) })
	bus.Subscribe(EventCrash, func(Event) { a.Play(SoundCrash) })
	bus.Subscribe(EventTumble, func(Event) { a.Play(SoundTumble) })
	bus.Subscribe(EventGraze, func(Event) { a.Play(SoundGraze) })
	bus.Subscribe(EventCorrectAnswer, func(Event) { a.Play(SoundCorrect) })
	bus.Subscribe(EventWrongAnswer, func(Event) { a.Play(SoundWrong) })
	bus.Subscribe(EventFinish, func(Event) { a.Play(SoundFinish) })
}

// Play synthesizes and plays one cue.
func (a *AudioSystem) Play(kind SoundKind) {
	if a == nil {
		return
	}
	select {
	case <-a.ready:
	default:
		return
	}
	samples := generateSound(kind)
	if len(samples) == 0 {
		return
	}
	go func() {
		reader := &soundReader{data: samples}
		player := a.ctx.NewPlayer(reader)
		player.SetVolume(sfxVolume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// softSat applies gentle tanh-like saturation — no harsh clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

// makeBuf allocates a stereo float32 buffer for n samples.
func makeBuf(n int) []byte { return make([]byte, n*8) }

func generateSound(kind SoundKind) []byte {
	switch kind {
	case SoundGatePass:
		return genGatePass()
	case SoundCrash:
		return genCrash()
	case SoundTumble:
		return genTumble()
	case SoundGraze:
		return genGraze()
	case SoundCorrect:
		return genCorrect()
	case SoundWrong:
		return genWrong()
	case SoundFinish:
		return genFinish()
	case SoundMenuSelect:
		return genMenuSelect()
	}
	return nil
}

// genGatePass: quick two-note rising chime.
func genGatePass() []byte {
	n := int(0.16 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.01, 0.5, 0.1, 0.25)
		freq := 660.0
		if p > 0.45 {
			freq = 880.0
		}
		s := fm(t, freq, 2.0, 2.2*env) * env * 0.42
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genCrash: broadband noise burst over a collapsing low thump.
func genCrash() []byte {
	n := int(0.45 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(0xC2A54)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := math.Exp(-p * 6)
		lp = lp*0.72 + lcg(&seed)*0.28
		thump := fm(t, 60, 0.5, 1.4) * math.Exp(-p*14)
		s := (lp*0.7 + thump*0.6) * env
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genTumble: softer, lower variant of the crash.
func genTumble() []byte {
	n := int(0.30 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(0x70B1E)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := math.Exp(-p * 8)
		lp = lp*0.85 + lcg(&seed)*0.15 // heavier lowpass than the crash
		thump := fm(t, 85, 0.5, 1.1) * math.Exp(-p*16)
		s := (lp*0.45 + thump*0.5) * env
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genGraze: short filtered-noise swish.
func genGraze() []byte {
	n := int(0.12 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(0x62A2E)
	hp := 0.0
	prev := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		env := adsr(p, 0.15, 0.4, 0.2, 0.3)
		white := lcg(&seed)
		hp = white - prev // crude highpass keeps it airy
		prev = white
		putStereoF32(buf, i, softSat(hp*env*0.5))
	}
	return buf
}

// genCorrect: major-triad arpeggio.
func genCorrect() []byte {
	notes := []float64{523.25, 659.25, 783.99}
	noteStep := int(0.07 * SampleRate)
	total := len(notes)*noteStep + int(0.18*SampleRate)
	mix := make([]float64, total)
	for fi, freq := range notes {
		start := fi * noteStep
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			np := float64(j) / float64(dur)
			env := adsr(np, 0.004, 0.6, 0.05, 0.3)
			mix[start+j] += fm(t, freq, 3.0, 4.0*env) * env * 0.26
		}
	}
	buf := makeBuf(total)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genWrong: flat descending buzz.
func genWrong() []byte {
	n := int(0.28 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.01, 0.2, 0.5, 0.35)
		freq := 220 - 60*p
		s := fm(t, freq, 1.0, 3.5) * env * 0.3
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genFinish: ascending fanfare, staggered notes held to the end.
func genFinish() []byte {
	notes := []float64{440, 554.37, 659.25, 880}
	noteStep := int(0.11 * SampleRate)
	total := len(notes)*noteStep + int(0.35*SampleRate)
	mix := make([]float64, total)
	for fi, freq := range notes {
		start := fi * noteStep
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			np := float64(j) / float64(dur)
			env := adsr(np, 0.003, 0.55, 0.08, 0.3)
			s := fm(t, freq, 3.5, 5.0*env) * env * 0.24
			s += math.Sin(2*math.Pi*freq*2*t) * env * 0.05
			mix[start+j] += s
		}
	}
	buf := makeBuf(total)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genMenuSelect: crisp click + brief high tone.
func genMenuSelect() []byte {
	n := SampleRate * 65 / 1000
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.004, 0.55, 0.0, 0.1)
		freq := 1400 - 700*p
		s := fm(t, freq, 1.0, 0.6) * env * 0.38
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}
