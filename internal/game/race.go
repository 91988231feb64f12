package game

import "fmt"

type RaceState int

const (
	StateMenu RaceState = iota
	StatePlaying
	StateQuestion // movement suspended until the gate question is answered
	StateEnded
)

// RaceSession accumulates one run's results. Frozen once the race ends.
type RaceSession struct {
	Score          int
	ElapsedMs      int64
	GatesPassed    int
	TotalGates     int
	Difficulty     Difficulty
	CorrectAnswers int
	TotalQuestions int
}

// RaceConfig is validated fail-fast before any course is built.
type RaceConfig struct {
	Seed       uint64
	Difficulty Difficulty
	GateCount  int
	Obstacles  int
}

func (c RaceConfig) Validate() error {
	if c.Difficulty < DifficultyEasy || c.Difficulty > DifficultyHard {
		return fmt.Errorf("invalid difficulty %d", c.Difficulty)
	}
	if c.GateCount <= 0 {
		return fmt.Errorf("gate count must be positive, got %d", c.GateCount)
	}
	if c.Obstacles < 0 {
		return fmt.Errorf("obstacle count must be non-negative, got %d", c.Obstacles)
	}
	return nil
}

// RaceController orchestrates the per-frame simulation: kinematics, obstacle
// pushback, flag classification, gate triggering, and the question pause, in
// that fixed order. All dependencies are injected; it owns no I/O.
type RaceController struct {
	State   RaceState
	Session RaceSession

	Terrain   HeightProvider
	Skier     *Skier
	Gates     *GateSequence
	Obstacles *ObstacleField

	cfg       RaceConfig
	questions QuestionProvider
	events    *EventBus

	current     Question
	hasQuestion bool
	clockAcc    float64 // fractional-millisecond remainder
}

// NewRaceController builds the course from the config seed. The terrain is
// the single height source shared by gates, obstacles, and the skier.
func NewRaceController(cfg RaceConfig, terrain HeightProvider, questions QuestionProvider, events *EventBus) (*RaceController, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("race config: %w", err)
	}
	if terrain == nil {
		return nil, fmt.Errorf("race config: terrain provider is required")
	}
	if questions == nil {
		return nil, fmt.Errorf("race config: question provider is required")
	}
	if events == nil {
		events = NewEventBus()
	}

	courseRng := NewRand(cfg.Seed ^ 0xC0E5E)
	gates := NewGateSequence(terrain, courseRng, cfg.GateCount)
	obstacles := NewObstacleField(terrain)
	obstacles.Populate(NewRand(cfg.Seed^0x0B57), cfg.Obstacles, gates)

	rc := &RaceController{
		State:     StateMenu,
		Terrain:   terrain,
		Skier:     NewSkier(terrain, NewRand(cfg.Seed^0x5C1E2)),
		Gates:     gates,
		Obstacles: obstacles,
		cfg:       cfg,
		questions: questions,
		events:    events,
	}
	rc.Session = RaceSession{
		TotalGates: cfg.GateCount,
		Difficulty: cfg.Difficulty,
	}
	return rc, nil
}

// Start leaves the menu. The skier stays Idle (and the clock frozen) until
// the first forward input.
func (rc *RaceController) Start() {
	if rc.State == StateMenu {
		rc.State = StatePlaying
	}
}

// Tick advances one simulated frame while Playing. During Question and Ended
// states the simulation is suspended: input is dropped and no kinematics or
// collision work runs.
func (rc *RaceController) Tick(dt float64, in InputFrame) {
	if rc.State != StatePlaying || dt <= 0 {
		return
	}

	rc.Skier.Update(dt, in)
	if rc.Skier.Motion != MotionIdle {
		rc.advanceClock(dt)
	}

	// Obstacle pushback lands before flag classification, so one frame can
	// bounce off a tree and still graze a pole.
	if pushX, pushZ, hit := rc.Obstacles.CheckCollision(rc.Skier.X, rc.Skier.Z, PlayerRadius); hit {
		rc.Skier.ApplyPushback(pushX, pushZ)
		rc.events.Emit(Event{Type: EventObstacleHit, GateIndex: -1, X: rc.Skier.X, Z: rc.Skier.Z})
	}

	if rc.Skier.Motion == MotionNormal {
		rc.resolveFlagCollision()
	}

	// A crash or tumble on the gate line does not also fire the question;
	// the skier recovers uphill and takes the gate again.
	if rc.Skier.Motion != MotionNormal {
		return
	}

	if idx := rc.Gates.CheckCollision(rc.Skier.X, rc.Skier.Z); idx >= 0 {
		rc.current = rc.questions.Generate()
		rc.hasQuestion = true
		rc.State = StateQuestion
		rc.events.Emit(Event{Type: EventGateTriggered, GateIndex: idx, X: rc.Skier.X, Z: rc.Skier.Z})
		return
	}

	if rc.Gates.CheckFinishLine(rc.Skier.Z) {
		rc.finish()
	}
}

func (rc *RaceController) resolveFlagCollision() {
	res := rc.Gates.CheckFlagCollision(rc.Skier.X, rc.Skier.Z, PlayerRadius)
	switch res.Kind {
	case FlagCrash:
		rc.addScore(-CrashScorePenalty)
		rc.Session.ElapsedMs += CrashTimePenaltyMs
		rc.Skier.EnterCrash(rc.Gates.Gates[res.GateIndex].Z)
		rc.events.Emit(Event{Type: EventCrash, GateIndex: res.GateIndex, X: rc.Skier.X, Z: rc.Skier.Z})
	case FlagTumble:
		rc.addScore(-TumbleScorePenalty)
		rc.Session.ElapsedMs += TumbleTimePenaltyMs
		rc.Skier.EnterTumble()
		rc.events.Emit(Event{Type: EventTumble, GateIndex: res.GateIndex, X: rc.Skier.X, Z: rc.Skier.Z})
	case FlagGraze:
		rc.events.Emit(Event{Type: EventGraze, GateIndex: res.GateIndex, X: rc.Skier.X, Z: rc.Skier.Z})
	}
}

// CurrentQuestion returns the pending gate question while in Question state.
func (rc *RaceController) CurrentQuestion() (Question, bool) {
	return rc.current, rc.hasQuestion
}

// Answer resolves the pending question. The gate advances to Passed either
// way (a gate fires exactly once per race); only a correct answer scores,
// a wrong one costs time. Ends the race when the last gate resolves.
func (rc *RaceController) Answer(selected int) {
	if rc.State != StateQuestion || !rc.hasQuestion {
		return
	}
	correct := rc.questions.Check(rc.current, selected)
	rc.Session.TotalQuestions++
	idx := rc.Gates.PassGate()
	rc.Session.GatesPassed = rc.Gates.Passed
	rc.hasQuestion = false

	if correct {
		rc.Session.CorrectAnswers++
		rc.addScore(CorrectAnswerScore)
		rc.events.Emit(Event{Type: EventCorrectAnswer, GateIndex: idx})
	} else {
		rc.Session.ElapsedMs += WrongTimePenaltyMs
		rc.events.Emit(Event{Type: EventWrongAnswer, GateIndex: idx})
	}
	rc.events.Emit(Event{Type: EventGatePassed, GateIndex: idx})

	if rc.Session.GatesPassed >= rc.Session.TotalGates {
		rc.finish()
		return
	}
	rc.State = StatePlaying
}

func (rc *RaceController) finish() {
	if rc.State == StateEnded {
		return
	}
	rc.State = StateEnded
	rc.events.Emit(Event{Type: EventFinish, GateIndex: -1, X: rc.Skier.X, Z: rc.Skier.Z})
}

// addScore applies a delta, flooring at zero: penalties never drive the score
// negative.
func (rc *RaceController) addScore(delta int) {
	rc.Session.Score += delta
	if rc.Session.Score < 0 {
		rc.Session.Score = 0
	}
}

func (rc *RaceController) advanceClock(dt float64) {
	rc.clockAcc += dt * 1000
	ms := int64(rc.clockAcc)
	rc.clockAcc -= float64(ms)
	rc.Session.ElapsedMs += ms
}
