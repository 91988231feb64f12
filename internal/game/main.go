package game

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"slalom/internal/logger"
	"slalom/internal/telemetry"
)

// Options configures a desktop session.
type Options struct {
	Seed          uint64
	Difficulty    Difficulty
	GateCount     int
	Obstacles     int
	TelemetryAddr string // empty disables the spectator stream
}

const telemetryInterval = 0.1 // seconds between spectator snapshots

func RunDesktop(opts Options) error {
	runtime.LockOSThread()
	log := logger.New("slalom")

	window, err := initWindow()
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	audio, err := NewAudioSystem()
	if err != nil {
		log.Printf("audio init failed (continuing without sound): %v", err)
		audio = nil
	}

	// GL state.
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.ClearColor(0.62, 0.74, 0.88, 1.0) // winter sky

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	terrain := NewCourseTerrain(opts.Seed)
	view := NewCourseView(terrain)
	input := NewInput()

	var stream *telemetry.Server
	if opts.TelemetryAddr != "" {
		stream = telemetry.NewServer(logger.New("telemetry"))
		stream.Start(opts.TelemetryAddr)
	}

	cfg := RaceConfig{
		Seed:       opts.Seed,
		Difficulty: opts.Difficulty,
		GateCount:  opts.GateCount,
		Obstacles:  opts.Obstacles,
	}
	newRace := func() (*RaceController, error) {
		bus := NewEventBus()
		audio.AttachTo(bus)
		questions, err := NewQuestionProvider(cfg.Difficulty, NewRand(cfg.Seed^0x0AE57))
		if err != nil {
			return nil, err
		}
		return NewRaceController(cfg, terrain, questions, bus)
	}
	rc, err := newRace()
	if err != nil {
		return err
	}

	questionLogged := false
	titleAcc := 0.0
	streamAcc := 0.0

	last := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > 0.1 {
			dt = 0.1
		}

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		switch rc.State {
		case StateMenu:
			if input.JustPressed(window, glfw.KeySpace) {
				audio.Play(SoundMenuSelect)
				rc.Start()
			}

		case StatePlaying:
			rc.Tick(dt, input.Frame(window))
			questionLogged = false

		case StateQuestion:
			q, ok := rc.CurrentQuestion()
			if ok && !questionLogged {
				log.Printf("gate %d/%d  %s  [1] %d  [2] %d  [3] %d  [4] %d",
					rc.Session.GatesPassed+1, rc.Session.TotalGates,
					q.Prompt, q.Choices[0], q.Choices[1], q.Choices[2], q.Choices[3])
				questionLogged = true
			}
			if ok {
				if i := input.AnswerKey(window); i >= 0 {
					rc.Answer(q.Choices[i])
				}
			}

		case StateEnded:
			if input.JustPressed(window, glfw.KeySpace) {
				audio.Play(SoundMenuSelect)
				next, err := newRace()
				if err != nil {
					return err
				}
				rc = next
				rc.Start()
			}
		}

		titleAcc += dt
		if titleAcc >= 0.15 {
			titleAcc = 0
			window.SetTitle(sessionTitle(rc))
		}

		if stream != nil {
			streamAcc += dt
			if streamAcc >= telemetryInterval {
				streamAcc = 0
				stream.Broadcast(telemetry.Snapshot{
					State:       stateName(rc.State),
					Score:       rc.Session.Score,
					ElapsedMs:   rc.Session.ElapsedMs,
					GatesPassed: rc.Session.GatesPassed,
					TotalGates:  rc.Session.TotalGates,
					X:           rc.Skier.X,
					Y:           rc.Skier.Y,
					Z:           rc.Skier.Z,
					Speed:       rc.Skier.Speed(),
				})
			}
		}

		view.BeginFrame(rc.Skier, fbW, fbH)
		view.AddTerrain()
		view.AddObstacles(rc.Obstacles)
		view.AddGates(rc.Gates)
		view.AddSkier(rc.Skier)
		view.AddHUD(rc)
		solid, glow := view.Buffers()

		rend.BeginFrame(fbW, fbH)
		rend.DrawSprites(solid, fbW, fbH)
		rend.DrawGlowSprites(glow, fbW, fbH)
		window.SwapBuffers()
	}
	return nil
}

func sessionTitle(rc *RaceController) string {
	s := rc.Session
	switch rc.State {
	case StateMenu:
		return "Slalom Drill — press SPACE to start"
	case StateQuestion:
		if q, ok := rc.CurrentQuestion(); ok {
			return fmt.Sprintf("Slalom Drill — %s  [1] %d  [2] %d  [3] %d  [4] %d",
				q.Prompt, q.Choices[0], q.Choices[1], q.Choices[2], q.Choices[3])
		}
	case StateEnded:
		return fmt.Sprintf("Slalom Drill — finished! score %d  gates %d/%d  answers %d/%d  time %.1fs — SPACE to restart",
			s.Score, s.GatesPassed, s.TotalGates, s.CorrectAnswers, s.TotalQuestions,
			float64(s.ElapsedMs)/1000)
	}
	return fmt.Sprintf("Slalom Drill — score %d  gates %d/%d  time %.1fs",
		s.Score, s.GatesPassed, s.TotalGates, float64(s.ElapsedMs)/1000)
}

func stateName(s RaceState) string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StateQuestion:
		return "question"
	case StateEnded:
		return "ended"
	}
	return "unknown"
}
