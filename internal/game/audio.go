package game

import (
	"io"
	"math"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// SoundKind identifies different sound effects.
type SoundKind int

const (
	SoundCrash SoundKind = iota
	SoundNitro
	SoundShield
	SoundNearMiss
	SoundMenuMove
	SoundMenuSelect
	SoundGameOver
)

// AudioSystem manages procedural sound effects and the streaming loops.
type AudioSystem struct {
	ctx          *oto.Context
	ready        chan struct{}
	musicPlayer  oto.Player
	enginePlayer oto.Player
}

var globalAudio *AudioSystem

// activeWhooshes limits simultaneous near-miss whooshes — rapid lane
// weaving can trigger them faster than they decay.
var activeWhooshes int32
var crashVariantCounter uint64

// InitAudio initializes the audio system.
func InitAudio() error {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return err
	}
	globalAudio = &AudioSystem{ctx: ctx, ready: ready}
	return nil
}

// PlaySound plays a procedurally generated sound effect.
func PlaySound(kind SoundKind) {
	if globalAudio == nil {
		return
	}
	select {
	case <-globalAudio.ready:
	default:
		return
	}
	if kind == SoundNearMiss {
		if atomic.LoadInt32(&activeWhooshes) >= 3 {
			return
		}
		atomic.AddInt32(&activeWhooshes, 1)
	}
	samples := generateSound(kind)
	if len(samples) == 0 {
		if kind == SoundNearMiss {
			atomic.AddInt32(&activeWhooshes, -1)
		}
		return
	}
	go func() {
		if kind == SoundNearMiss {
			defer atomic.AddInt32(&activeWhooshes, -1)
		}
		reader := &soundReader{data: samples}
		player := globalAudio.ctx.NewPlayer(reader)
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

// putStereoF32LR writes independent left/right samples in [-1,1].
func putStereoF32LR(buf []byte, i int, left, right float64) {
	lv := math.Float32bits(float32(left))
	rv := math.Float32bits(float32(right))
	buf[i*8] = byte(lv)
	buf[i*8+1] = byte(lv >> 8)
	buf[i*8+2] = byte(lv >> 16)
	buf[i*8+3] = byte(lv >> 24)
	buf[i*8+4] = byte(rv)
	buf[i*8+5] = byte(rv >> 8)
	buf[i*8+6] = byte(rv >> 16)
	buf[i*8+7] = byte(rv >> 24)
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
// carrier: base frequency, modRatio: modulator/carrier ratio, modIdx: modulation depth.
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

// ---- Sound effects -------------------------------------------------------

func generateSound(kind SoundKind) []byte {
	switch kind {
	case SoundCrash:
		return genCrash()
	case SoundNitro:
		return genNitro()
	case SoundShield:
		return genShield()
	case SoundNearMiss:
		return genNearMiss()
	case SoundMenuMove:
		return genMenuMove()
	case SoundMenuSelect:
		return genMenuSelect()
	case SoundGameOver:
		return genGameOver()
	}
	return nil
}

// genCrash: transient crack + sub pitch-drop + bandpassed crunch + metal ring.
func genCrash() []byte {
	n := int(0.48 * SampleRate)
	buf := makeBuf(n)
	seed := atomic.AddUint64(&crashVariantCounter, 1) ^ uint64(time.Now().UnixNano())
	lp1, lp2 := 0.0, 0.0
	subPhase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)

		// Hard transient: the initial impact.
		crack := 0.0
		if p < 0.025 {
			crack = lcg(&seed) * (1 - p/0.025) * 0.9
		}

		// Sub drop 170→30 Hz.
		subFreq := 170 * math.Pow(30.0/170.0, p*1.4)
		subPhase += 2 * math.Pi * subFreq / SampleRate
		sub := math.Sin(subPhase) * math.Exp(-p*8) * 0.55

		// Bandpassed crunch (~150–2500 Hz).
		raw := lcg(&seed)
		lp1 = lp1*0.74 + raw*0.26
		lp2 = lp2*0.972 + raw*0.028
		body := (lp1 - lp2) * math.Exp(-p*6.5) * 0.42

		// Detuned metal ring, a panel still vibrating.
		ring := (math.Sin(2*math.Pi*1850*t) + math.Sin(2*math.Pi*2330*t)*0.6) *
			math.Exp(-p*11) * 0.09

		s := crack + sub + body + ring
		putStereoF32(buf, i, softSat(s*0.85))
	}
	return buf
}

// genNitro: ignition whoosh — rising FM surge under opening hiss.
func genNitro() []byte {
	n := int(0.38 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(0x17B0)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.22, 0.18, 0.6, 0.35)

		freq := 110 + 340*p*p
		surge := fm(t, freq, 1.5, 2.4*env) * env * 0.4

		// Filter loosens as the boost spools up.
		raw := lcg(&seed)
		a := 0.82 - 0.3*p
		lp = lp*a + raw*(1-a)
		hiss := lp * env * 0.3

		whistle := math.Sin(2*math.Pi*(900+1300*p)*t) * env * 0.06
		s := surge + hiss + whistle
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genShield: two-note FM bell — bright, affirming.
func genShield() []byte {
	notes := []struct{ freq, onset float64 }{
		{659.25, 0.00}, // E5
		{987.77, 0.09}, // B5
	}
	n := int(0.30 * SampleRate)
	mix := make([]float64, n)
	for _, note := range notes {
		start := int(note.onset * SampleRate)
		for i := start; i < n; i++ {
			t := float64(i) / SampleRate
			np := float64(i-start) / float64(n-start)
			env := adsr(np, 0.006, 0.5, 0.06, 0.3)
			s := fm(t, note.freq, 2.756, 4.5*env) * env * 0.34
			s += math.Sin(2*math.Pi*note.freq*2*t) * env * 0.07
			mix[i] += s
		}
	}
	buf := makeBuf(n)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genNearMiss: doppler whoosh — bandpassed swell with a falling zip.
func genNearMiss() []byte {
	n := int(0.30 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(0x4EA2)
	lp1, lp2 := 0.0, 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.3, 0.2, 0.5, 0.4)

		// Band center sweeps downward as the car recedes.
		raw := lcg(&seed)
		a := 0.52 + 0.34*p
		lp1 = lp1*a + raw*(1-a)
		lp2 = lp2*0.985 + raw*0.015
		whoosh := (lp1 - lp2) * env * 0.7

		zip := math.Sin(2*math.Pi*(1400-900*p)*t) * env * 0.05
		s := whoosh + zip
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genMenuMove: tiny FM blip.
func genMenuMove() []byte {
	n := SampleRate * 50 / 1000
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.05, 0.5, 0.0, 0.2)
		s := fm(t, 880, 1.0, 0.8) * env * 0.3
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genMenuSelect: crisp ascending chirp.
func genMenuSelect() []byte {
	n := SampleRate * 70 / 1000
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.004, 0.55, 0.0, 0.1)
		freq := 900 + 500*p
		s := fm(t, freq, 1.0, 0.6) * env * 0.38
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genGameOver: slow descending minor chord, staggered.
func genGameOver() []byte {
	dur := 0.85
	n := int(dur * SampleRate)
	notes := []struct{ freq, onset float64 }{
		{440.00, 0.00}, // A4
		{349.23, 0.16}, // F4
		{293.66, 0.32}, // D4
	}
	mix := make([]float64, n)
	for _, note := range notes {
		start := int(note.onset * SampleRate)
		for i := start; i < n; i++ {
			t := float64(i) / SampleRate
			np := float64(i-start) / float64(n-start)
			env := adsr(np, 0.008, 0.25, 0.3, 0.45)
			freq := note.freq * (1 - np*0.03) // slight pitch drop
			s := fm(t, freq, 2.0, 2.0*env) * env * 0.3
			s += math.Sin(2*math.Pi*freq*0.5*t) * env * 0.1 // sub
			mix[i] += s
		}
	}
	buf := makeBuf(n)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// ---- Engine loop ----------------------------------------------------------

// engineSpeedBits holds the current speed as float64 bits so the streaming
// reader can pick up pitch changes without locking.
var engineSpeedBits uint64

type engineReader struct {
	t      float64
	phase  float64
	phase2 float64
	seed   uint64
	lp     float64
}

func (e *engineReader) Read(p []byte) (int, error) {
	samples := len(p) / 8
	if samples == 0 {
		return 0, nil
	}
	speed := math.Float64frombits(atomic.LoadUint64(&engineSpeedBits))
	norm := clampF((speed-PlayerMinSpeed)/(PlayerMaxSpeed-PlayerMinSpeed), 0, 1.3)
	base := 38.0 + 92.0*norm
	for i := 0; i < samples && i*8+7 < len(p); i++ {
		e.t += 1.0 / SampleRate
		// Slow flutter keeps the drone from sounding static.
		flutter := 1.0 + 0.012*math.Sin(2*math.Pi*7.3*e.t) + 0.006*math.Sin(2*math.Pi*3.1*e.t)
		f := base * flutter
		e.phase += 2 * math.Pi * f / SampleRate
		e.phase2 += 2 * math.Pi * f * 1.5 / SampleRate
		firing := math.Sin(e.phase)*0.5 + math.Sin(e.phase*2.0+0.4)*0.22
		firing += triWave(e.phase2) * 0.14
		e.lp = e.lp*0.92 + lcg(&e.seed)*0.08
		rumble := e.lp * (0.10 + 0.22*norm)
		putStereoF32(p, i, softSat((firing+rumble)*0.5))
	}
	return len(p), nil
}

// StartEngineSound begins the looping engine drone. Safe to call repeatedly.
func StartEngineSound() {
	if globalAudio == nil || globalAudio.enginePlayer != nil {
		return
	}
	select {
	case <-globalAudio.ready:
	default:
		return
	}
	player := globalAudio.ctx.NewPlayer(&engineReader{seed: uint64(time.Now().UnixNano())})
	player.SetVolume(sfxVolume * 0.14)
	globalAudio.enginePlayer = player
	player.Play()
}

func StopEngineSound() {
	if globalAudio == nil || globalAudio.enginePlayer == nil {
		return
	}
	globalAudio.enginePlayer.Close()
	globalAudio.enginePlayer = nil
}

// SetEngineSpeed feeds the current speed to the engine loop: pitch follows
// via the atomic, volume swells from idle to full throttle.
func SetEngineSpeed(speed float64) {
	atomic.StoreUint64(&engineSpeedBits, math.Float64bits(speed))
	if globalAudio == nil || globalAudio.enginePlayer == nil {
		return
	}
	norm := clampF((speed-PlayerMinSpeed)/(PlayerMaxSpeed-PlayerMinSpeed), 0, 1)
	globalAudio.enginePlayer.SetVolume(sfxVolume * 0.45 * (0.3 + 0.7*norm))
}

// ---- Music system ---------------------------------------------------------

type musicReader struct {
	t        float64
	seed     uint64
	measure  int
	chordIdx int
	menuMode bool
	section  int
}

var musicVolume float64 = 0.14
var sfxVolume float64 = 0.58

func StartMenuMusic()    { startMusic(true, 0.16) }
func StartDrivingMusic() { startMusic(false, 0.13) }

func StopMusic() {
	if globalAudio == nil || globalAudio.musicPlayer == nil {
		return
	}
	globalAudio.musicPlayer.Close()
	globalAudio.musicPlayer = nil
}

func SetMusicVolume(vol float64) {
	musicVolume = vol
	if globalAudio != nil && globalAudio.musicPlayer != nil {
		globalAudio.musicPlayer.SetVolume(vol)
	}
}

func SetSFXVolume(vol float64) {
	if vol < 0 {
		vol = 0
	} else if vol > 1 {
		vol = 1
	}
	sfxVolume = vol
}

func startMusic(menuMode bool, volume float64) {
	if globalAudio == nil {
		return
	}
	select {
	case <-globalAudio.ready:
	default:
		return
	}
	if globalAudio.musicPlayer != nil {
		globalAudio.musicPlayer.Close()
	}
	musicVolume = volume
	reader := &musicReader{
		seed:     uint64(time.Now().UnixNano()),
		menuMode: menuMode,
	}
	player := globalAudio.ctx.NewPlayer(reader)
	player.SetVolume(volume)
	globalAudio.musicPlayer = player
	player.Play()
}

func (m *musicReader) Read(p []byte) (int, error) {
	samples := len(p) / 8
	if samples == 0 {
		return 0, nil
	}
	if m.menuMode {
		return m.readMenuMusic(p, samples)
	}
	return m.readDrivingMusic(p, samples)
}

// ---- Music instruments (stateless per-sample, driven by m.t) --------------

// kick returns a kick drum sample given time-since-trigger (trig) in seconds.
func kick(trig float64) float64 {
	if trig > 0.25 {
		return 0
	}
	phase := 2 * math.Pi * 185 / 12.5 * (1 - math.Exp(-trig*12.5))
	body := math.Sin(phase) * math.Exp(-trig*18.0) * 0.80
	click := math.Sin(2*math.Pi*2100*trig) * math.Exp(-trig*250.0) * 0.24
	air := math.Sin(2*math.Pi*330*trig) * math.Exp(-trig*38.0) * 0.12
	return softSat(body + click + air)
}

// snare returns a snare sample given time-since-trigger.
func snare(trig float64, seed *uint64) float64 {
	if trig > 0.2 {
		return 0
	}
	env := math.Exp(-trig * 26.0)
	body := (math.Sin(2*math.Pi*188*trig)*0.24 + math.Sin(2*math.Pi*356*trig)*0.10) * env
	n1 := lcg(seed)
	n2 := lcg(seed)
	bandNoise := (n1 - n2*0.55) * env * (0.55 + 0.25*math.Exp(-trig*8.0))
	snap := math.Sin(2*math.Pi*2800*trig) * math.Exp(-trig*120.0) * 0.10
	return softSat(body + bandNoise + snap)
}

// hihat returns a closed hi-hat sample. open=true for longer decay.
func hihat(trig float64, open bool, seed *uint64) float64 {
	decay := 42.0
	limit := 0.06
	if open {
		decay = 15.0
		limit = 0.18
	}
	if trig > limit {
		return 0
	}
	n := lcg(seed)
	metal := math.Sin(2*math.Pi*7300*trig) + math.Sin(2*math.Pi*9200*trig)*0.6
	s := (n*0.8 + metal*0.2) * math.Exp(-trig*decay) * 0.07
	return softSat(s)
}

// fmBass returns a warm FM bass sample — low modRatio gives smooth tone.
func fmBass(t, freq, env float64) float64 {
	b := fm(t, freq, 0.5, 1.25*env) * env * 0.48
	b += math.Sin(2*math.Pi*freq*t) * env * 0.26
	b += math.Sin(2*math.Pi*freq*0.5*t) * env * 0.10
	return softSat(b)
}

// fmPad returns a lush pad sample from a chord — detuned FM oscillators per note.
func fmPad(t float64, chord []float64, env float64) float64 {
	s := 0.0
	detunes := [4]float64{-0.004, -0.001, 0.002, 0.005}
	for _, freq := range chord {
		for _, d := range detunes {
			f := freq * (1 + d)
			vib := 1 + 0.003*math.Sin(2*math.Pi*(0.23+f*0.0007)*t)
			s += fm(t, f*vib, 1.45, 0.75*env) * 0.048
		}
	}
	return softSat(s)
}

// fmArp returns an FM arpeggio sample for one note.
func fmArp(t, freq, env float64) float64 {
	s := fm(t, freq, 2.0, 3.2*env) * env * 0.20
	s += math.Sin(2*math.Pi*freq*2*t) * env * 0.08
	return softSat(s)
}

// fmLead returns an FM lead/melody sample.
func fmLead(t, freq, env float64) float64 {
	vib := 1 + 0.01*math.Sin(2*math.Pi*5.4*t)
	s := fm(t, freq*vib, 1.55, 2.7*env) * env * 0.26
	s += math.Sin(2*math.Pi*freq*2.98*t) * env * 0.07
	return softSat(s)
}

func triWave(phase float64) float64 {
	return (2.0 / math.Pi) * math.Asin(math.Sin(phase))
}

// ---- Menu music -----------------------------------------------------------

// readMenuMusic: laid-back synth bed — pad, pulse bass, light shaker, and a
// hook that only enters every other four bars.
func (m *musicReader) readMenuMusic(p []byte, samples int) (int, error) {
	chords := [][]float64{
		{220.0, 261.6, 329.6}, // Am
		{174.6, 220.0, 261.6}, // F
		{130.8, 164.8, 196.0}, // C
		{196.0, 246.9, 293.7}, // G
	}
	const tempo = 1.7 // 102 BPM
	const beatsPerChord = 4

	bassPattern := [8]bool{true, false, false, true, true, false, true, false}
	hookNotes := [16]float64{
		440.00, 0, 523.25, 0,
		659.25, 0, 523.25, 0,
		440.00, 0, 392.00, 0,
		440.00, 0, 523.25, 587.33,
	}

	for i := 0; i < samples && i*8+7 < len(p); i++ {
		m.t += 1.0 / SampleRate
		beatLen := 1.0 / tempo
		beatTrig := math.Mod(m.t, beatLen)
		step16Trig := math.Mod(m.t, 1.0/(tempo*4))
		step16 := int(m.t*tempo*4) % 16
		step8 := int(m.t*tempo*2) % 8
		currentBeat := int(m.t * tempo)

		if currentBeat/4 != m.measure {
			m.measure = currentBeat / 4
		}
		m.section = (m.measure / 4) % 2

		chord := chords[(currentBeat/beatsPerChord)%len(chords)]

		s := fmPad(m.t, chord, 0.7) * 0.9

		if bassPattern[step8] {
			bEnv := adsr(math.Mod(m.t*tempo*2, 1.0), 0.02, 0.5, 0.24, 0.2)
			s += fmBass(m.t, chord[0]/2, bEnv) * 0.8
		}

		// Soft shaker on offbeat 16ths.
		if step16%2 == 1 {
			s += lcg(&m.seed) * math.Exp(-step16Trig*22.0) * 0.05
		}
		if currentBeat%2 == 0 {
			s += kick(beatTrig) * 0.45
		}

		if m.section == 1 {
			note := hookNotes[step16]
			if note > 0 {
				leadEnv := adsr(math.Mod(m.t*tempo*4, 1.0), 0.02, 0.42, 0.32, 0.2)
				s += fmLead(m.t, note, leadEnv) * 0.7
			}
		}

		duck := 1.0 - 0.07*math.Exp(-beatTrig*12.0)
		s = softSat(s * duck * 0.9)
		pan := 0.1 * math.Sin(2*math.Pi*0.09*m.t)
		putStereoF32LR(p, i, softSat(s*(1-pan)), softSat(s*(1+pan)))
	}
	return len(p), nil
}

// ---- Driving music ---------------------------------------------------------

// readDrivingMusic: 140 BPM four-on-floor with 16th bass and arps.
func (m *musicReader) readDrivingMusic(p []byte, samples int) (int, error) {
	chords := [][]float64{
		{146.8, 185.0, 220.0}, // Dm
		{130.8, 164.8, 196.0}, // C
		{116.5, 146.8, 175.0}, // Bb
		{110.0, 138.6, 164.8}, // Am
		{146.8, 185.0, 233.1}, // Dm add7
		{130.8, 164.8, 207.7}, // C6
		{123.5, 155.6, 185.0}, // Bdim
		{110.0, 130.8, 164.8}, // Am7
	}
	const tempo = 2.33 // 140 BPM

	arpOrder := [8]int{0, 1, 2, 1, 0, 2, 1, 2}

	for i := 0; i < samples && i*8+7 < len(p); i++ {
		m.t += 1.0 / SampleRate
		beatLen := 1.0 / tempo
		trig := math.Mod(m.t, beatLen)
		step16Trig := math.Mod(m.t, 1.0/(tempo*4))
		step8Trig := math.Mod(m.t, 1.0/(tempo*2))
		step16 := int(m.t*tempo*4) % 16
		step8 := int(m.t*tempo*2) % 8
		currentBeat := int(m.t * tempo)

		if currentBeat/2 != m.measure {
			m.measure = currentBeat / 2
			m.chordIdx = (m.chordIdx + 1) % len(chords)
		}
		m.section = (currentBeat / 32) % 4 // 8-bar macro sections
		chord := chords[m.chordIdx]

		s := fmPad(m.t, chord, 0.55) * 0.55

		// Driving 16th bass, octave jump on the last step of each half-bar.
		bassFreq := chord[0] / 2
		if step16%8 == 7 {
			bassFreq = chord[0]
		}
		bEnv := math.Exp(-step16Trig * 18)
		s += fmBass(m.t, bassFreq, bEnv) * 0.85

		// Four-on-floor kick, snare backbeat, offbeat open hat.
		s += kick(trig) * 0.95
		if currentBeat%2 == 1 {
			s += snare(trig, &m.seed) * 0.75
		}
		s += hihat(step8Trig, step8%2 == 1, &m.seed) * 0.9

		// Arp follows the chord, lifted an octave in later sections.
		arpIdx := arpOrder[step8]
		if arpIdx >= len(chord) {
			arpIdx = len(chord) - 1
		}
		arpFreq := chord[arpIdx] * 2
		if m.section >= 2 && step8%2 == 1 {
			arpFreq *= 2
		}
		arpEnv := math.Exp(-step8Trig * 14)
		s += fmArp(m.t, arpFreq, arpEnv) * 0.6

		energy := [4]float64{0.78, 0.9, 1.0, 0.86}[m.section]
		if m.section == 3 && currentBeat%8 == 7 {
			s += snare(trig, &m.seed) * 0.45
		}
		duck := 1.0 - 0.15*math.Exp(-trig*20.0)
		s = softSat(s * energy * duck)
		pan := 0.08 * math.Sin(2*math.Pi*0.11*m.t)
		putStereoF32LR(p, i, softSat(s*(1-pan)), softSat(s*(1+pan)))
	}
	return len(p), nil
}
