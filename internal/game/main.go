package game

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// RunDesktop owns the window, the GL context, audio and the frame loop. It
// is the only place that touches the OS layer; the session underneath runs
// headless.
func RunDesktop() {
	runtime.LockOSThread()

	cfgDir, err := userConfigDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config dir unavailable, running with defaults: %v\n", err)
	}
	var settingsPath, scoresPath string
	if cfgDir != "" {
		settingsPath = filepath.Join(cfgDir, "settings.ini")
		scoresPath = filepath.Join(cfgDir, "highscores.json")
	}
	settings := LoadSettings(settingsPath)
	scores := LoadHighscores(scoresPath)

	bal, err := LoadBalance(os.Getenv("SPEEDRUSH_BALANCE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "balance file rejected, using defaults: %v\n", err)
		bal = DefaultBalance()
	}

	window, err := initWindow(settings.VSync)
	if err != nil {
		panic(err)
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		panic(fmt.Errorf("gl init: %w", err))
	}

	if err := InitAudio(); err != nil {
		fmt.Fprintf(os.Stderr, "audio init failed (continuing without sound): %v\n", err)
	} else {
		SetSFXVolume(settings.SFXVolume)
		SetMusicVolume(settings.MusicVolume)
		go func() {
			time.Sleep(100 * time.Millisecond) // let the audio context spin up
			StartMenuMusic()
		}()
	}

	// Seed from environment or clock.
	seed := uint64(time.Now().UnixNano())
	if s := os.Getenv("SPEEDRUSH_SEED"); s != "" {
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			seed = v
		}
	}

	// GL state.
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	rend, err := NewRenderer()
	if err != nil {
		panic(fmt.Errorf("renderer: %w", err))
	}
	defer rend.Destroy()
	rend.InitVehicleTextures()
	if err := rend.InitFont(); err != nil {
		panic(fmt.Errorf("font: %w", err))
	}

	session := NewGameSession(bal, seed, scores)
	session.FirstPerson = settings.FirstPerson

	input := NewInput()
	menuIndex := 0

	// Smoothed FPS for the HUD readout; the detail controller keeps its own
	// per-frame sample window inside the session.
	fpsShown := int(FrameRate)
	fpsFrames := 0
	fpsAcc := 0.0

	last := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > 0.1 {
			dt = 0.1
		}

		glfw.PollEvents()

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		fpsFrames++
		fpsAcc += dt
		if fpsAcc >= 0.25 {
			fpsShown = int(float64(fpsFrames)/fpsAcc + 0.5)
			fpsFrames = 0
			fpsAcc = 0
		}

		prevState := session.State

		switch session.State {
		case StateMenu:
			if input.JustPressedAny(window, glfw.KeyUp, glfw.KeyW) {
				menuIndex = (menuIndex + len(menuOptions) - 1) % len(menuOptions)
				PlaySound(SoundMenuMove)
			}
			if input.JustPressedAny(window, glfw.KeyDown, glfw.KeyS) {
				menuIndex = (menuIndex + 1) % len(menuOptions)
				PlaySound(SoundMenuMove)
			}
			if input.JustPressedAny(window, glfw.KeyEnter, glfw.KeySpace) {
				PlaySound(SoundMenuSelect)
				switch menuIndex {
				case 0:
					session.StartRun()
					StartDrivingMusic()
					StartEngineSound()
				case 1:
					session.State = StateInstructions
				case 2:
					session.State = StateHighscores
				case 3:
					window.SetShouldClose(true)
				}
			}
			if input.JustPressed(window, glfw.KeyEscape) {
				window.SetShouldClose(true)
			}

		case StateInstructions, StateHighscores:
			if input.JustPressedAny(window, glfw.KeyEscape, glfw.KeyEnter) {
				PlaySound(SoundMenuMove)
				session.State = StateMenu
			}

		case StatePlaying:
			switch {
			case input.JustPressed(window, glfw.KeyEscape):
				abandonRun(session)
			case input.JustPressed(window, glfw.KeyP):
				session.State = StatePaused
				StopEngineSound()
			default:
				if input.JustPressed(window, glfw.KeyV) {
					session.FirstPerson = !session.FirstPerson
					settings.FirstPerson = session.FirstPerson
					if err := settings.Save(); err != nil {
						fmt.Fprintf(os.Stderr, "settings: %v\n", err)
					}
				}
				ctl := ReadControls(window)
				session.Update(dt, ctl, LaneCommand(window, input))
				SetEngineSpeed(session.Player.Speed)
			}

		case StatePaused:
			if input.JustPressedAny(window, glfw.KeyP, glfw.KeyEnter) {
				session.State = StatePlaying
				StartEngineSound()
			} else if input.JustPressed(window, glfw.KeyEscape) {
				abandonRun(session)
			}

		case StateCrashing:
			session.Update(dt, Controls{}, 0)

		case StateGameOver:
			if input.JustPressedAny(window, glfw.KeyEnter, glfw.KeySpace) {
				PlaySound(SoundMenuSelect)
				session.State = StateMenu
				StartMenuMusic()
			}
			if input.JustPressed(window, glfw.KeyEscape) {
				window.SetShouldClose(true)
			}
		}

		// Crashes resolve inside Update; catch the edges here so the audio
		// layer tracks them without the session knowing it exists.
		if prevState == StatePlaying && session.State == StateCrashing {
			StopEngineSound()
		}
		if prevState == StateCrashing && session.State == StateGameOver {
			StopMusic()
			PlaySound(SoundGameOver)
		}

		clear := Palette.Background
		if session.State == StateGameOver {
			clear = Palette.GameOverBg
		}
		rend.BeginFrame(fbW, fbH, clear)
		RenderScene(rend, session, now)
		RenderHUD(rend, session, menuIndex, fpsShown, now)

		window.SwapBuffers()
	}

	StopMusic()
	StopEngineSound()
}

// abandonRun drops back to the menu without recording the unfinished score.
func abandonRun(s *GameSession) {
	s.State = StateMenu
	StopEngineSound()
	StartMenuMusic()
}
