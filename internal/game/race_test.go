package game

import "testing"

// stubProvider returns the same question every time so tests can answer it
// without reverse-engineering the arithmetic generators.
type stubProvider struct {
	q Question
}

func (p stubProvider) Generate() Question                  { return p.q }
func (p stubProvider) Check(q Question, selected int) bool { return q.Answer == selected }

var stubQuestion = Question{Prompt: "2 + 2 = ?", Answer: 4, Choices: [4]int{3, 4, 5, 6}}

func newTestRace(t *testing.T, gates int) (*RaceController, *EventBus) {
	t.Helper()
	cfg := RaceConfig{Seed: 11, Difficulty: DifficultyEasy, GateCount: gates}
	bus := NewEventBus()
	rc, err := NewRaceController(cfg, flatTerrain, stubProvider{q: stubQuestion}, bus)
	if err != nil {
		t.Fatal(err)
	}
	return rc, bus
}

// startNormal leaves the menu and gives one forward frame so the skier is in
// normal motion with negligible speed.
func startNormal(t *testing.T, rc *RaceController) {
	t.Helper()
	rc.Start()
	rc.Tick(testDt, InputFrame{Accelerate: true})
	if rc.Skier.Motion != MotionNormal {
		t.Fatalf("skier motion %v after forward input, want Normal", rc.Skier.Motion)
	}
}

func TestRaceConfigValidation(t *testing.T) {
	base := RaceConfig{Seed: 1, Difficulty: DifficultyEasy, GateCount: 5}

	bad := base
	bad.Difficulty = Difficulty(42)
	if _, err := NewRaceController(bad, flatTerrain, stubProvider{q: stubQuestion}, nil); err == nil {
		t.Fatal("expected error for invalid difficulty")
	}

	bad = base
	bad.GateCount = 0
	if _, err := NewRaceController(bad, flatTerrain, stubProvider{q: stubQuestion}, nil); err == nil {
		t.Fatal("expected error for zero gates")
	}

	bad = base
	bad.Obstacles = -1
	if _, err := NewRaceController(bad, flatTerrain, stubProvider{q: stubQuestion}, nil); err == nil {
		t.Fatal("expected error for negative obstacle count")
	}

	if _, err := NewRaceController(base, nil, stubProvider{q: stubQuestion}, nil); err == nil {
		t.Fatal("expected error for missing terrain")
	}
	if _, err := NewRaceController(base, flatTerrain, nil, nil); err == nil {
		t.Fatal("expected error for missing question provider")
	}
}

func TestRaceClockStartsOnFirstForwardInput(t *testing.T) {
	rc, _ := newTestRace(t, 3)
	rc.Start()
	for i := 0; i < 4; i++ {
		rc.Tick(0.25, InputFrame{SteerLeft: true})
	}
	if rc.Session.ElapsedMs != 0 {
		t.Fatalf("clock ran while idle: %dms", rc.Session.ElapsedMs)
	}
	rc.Tick(0.25, InputFrame{Accelerate: true})
	if rc.Session.ElapsedMs != 250 {
		t.Fatalf("clock %dms after first moving frame, want 250", rc.Session.ElapsedMs)
	}
}

func TestRaceGateTriggersQuestionAndFreezes(t *testing.T) {
	rc, _ := newTestRace(t, 3)
	startNormal(t, rc)

	g := rc.Gates.Gates[0]
	rc.Skier.X, rc.Skier.Z = g.X, g.Z-0.5
	rc.Tick(1e-6, InputFrame{})
	if rc.State != StateQuestion {
		t.Fatalf("state %v at the gate line, want Question", rc.State)
	}
	q, ok := rc.CurrentQuestion()
	if !ok || q != stubQuestion {
		t.Fatalf("pending question %+v ok=%v", q, ok)
	}

	// The simulation is suspended: ticks drop input and the clock holds.
	x, z, ms := rc.Skier.X, rc.Skier.Z, rc.Session.ElapsedMs
	for i := 0; i < 10; i++ {
		rc.Tick(0.5, InputFrame{Accelerate: true, SteerLeft: true})
	}
	if rc.Skier.X != x || rc.Skier.Z != z {
		t.Fatal("skier moved while a question was pending")
	}
	if rc.Session.ElapsedMs != ms {
		t.Fatal("clock advanced while a question was pending")
	}
}

func TestRaceCorrectAnswerScores(t *testing.T) {
	rc, _ := newTestRace(t, 3)
	startNormal(t, rc)

	g := rc.Gates.Gates[0]
	rc.Skier.X, rc.Skier.Z = g.X, g.Z-0.5
	rc.Tick(1e-6, InputFrame{})
	before := rc.Session.ElapsedMs

	rc.Answer(4)
	if rc.State != StatePlaying {
		t.Fatalf("state %v after answering, want Playing", rc.State)
	}
	if rc.Session.Score != CorrectAnswerScore {
		t.Fatalf("score %d, want %d", rc.Session.Score, CorrectAnswerScore)
	}
	if rc.Session.GatesPassed != 1 || rc.Session.CorrectAnswers != 1 || rc.Session.TotalQuestions != 1 {
		t.Fatalf("session %+v after one correct answer", rc.Session)
	}
	if rc.Session.ElapsedMs != before {
		t.Fatal("correct answer should not cost time")
	}
	if rc.Gates.Gates[0].State != GatePassed {
		t.Fatalf("gate state %v, want Passed", rc.Gates.Gates[0].State)
	}
}

func TestRaceWrongAnswerStillPassesGate(t *testing.T) {
	rc, _ := newTestRace(t, 3)
	startNormal(t, rc)

	g := rc.Gates.Gates[0]
	rc.Skier.X, rc.Skier.Z = g.X, g.Z-0.5
	rc.Tick(1e-6, InputFrame{})
	before := rc.Session.ElapsedMs

	rc.Answer(999)
	if rc.Session.Score != 0 || rc.Session.CorrectAnswers != 0 {
		t.Fatalf("wrong answer scored: %+v", rc.Session)
	}
	if rc.Session.GatesPassed != 1 || rc.Session.TotalQuestions != 1 {
		t.Fatalf("wrong answer should still pass the gate: %+v", rc.Session)
	}
	if rc.Session.ElapsedMs != before+WrongTimePenaltyMs {
		t.Fatalf("elapsed %dms, want %dms", rc.Session.ElapsedMs, before+WrongTimePenaltyMs)
	}
	if rc.State != StatePlaying {
		t.Fatalf("state %v after answering, want Playing", rc.State)
	}
}

func TestRaceAnswerOutsideQuestionStateIgnored(t *testing.T) {
	rc, _ := newTestRace(t, 3)
	startNormal(t, rc)
	rc.Answer(4)
	if rc.Session.TotalQuestions != 0 || rc.Session.GatesPassed != 0 {
		t.Fatalf("answer outside question state mutated session: %+v", rc.Session)
	}
}

func TestRaceCrashAtPole(t *testing.T) {
	rc, bus := newTestRace(t, 3)
	startNormal(t, rc)
	rc.Session.Score = 30

	var crashEvents []Event
	bus.Subscribe(EventCrash, func(e Event) { crashEvents = append(crashEvents, e) })

	g := rc.Gates.Gates[0]
	before := rc.Session.ElapsedMs
	rc.Skier.X, rc.Skier.Z = g.X+g.Width/2, g.Z
	rc.Tick(1e-6, InputFrame{})

	if rc.Skier.Motion != MotionCrashed {
		t.Fatalf("motion %v at the pole, want Crashed", rc.Skier.Motion)
	}
	// Penalty floors at zero, never negative.
	if rc.Session.Score != 0 {
		t.Fatalf("score %d after crash, want floor at 0", rc.Session.Score)
	}
	if rc.Session.ElapsedMs != before+CrashTimePenaltyMs {
		t.Fatalf("elapsed %dms, want %dms", rc.Session.ElapsedMs, before+CrashTimePenaltyMs)
	}
	// Crashing on the line is not a gate pass and fires no question.
	if rc.State != StatePlaying {
		t.Fatalf("state %v after crash, want Playing", rc.State)
	}
	if len(crashEvents) != 1 || crashEvents[0].GateIndex != 0 {
		t.Fatalf("crash events %v", crashEvents)
	}
}

func TestRaceTumbleInBannerZone(t *testing.T) {
	rc, _ := newTestRace(t, 3)
	startNormal(t, rc)
	rc.Session.Score = 30

	g := rc.Gates.Gates[0]
	before := rc.Session.ElapsedMs
	rc.Skier.X, rc.Skier.Z = g.X+g.Width/2+BannerWidth/2, g.Z
	rc.Tick(1e-6, InputFrame{})

	if rc.Skier.Motion != MotionTumbling {
		t.Fatalf("motion %v in the banner zone, want Tumbling", rc.Skier.Motion)
	}
	if rc.Session.Score != 30-TumbleScorePenalty {
		t.Fatalf("score %d after tumble, want %d", rc.Session.Score, 30-TumbleScorePenalty)
	}
	if rc.Session.ElapsedMs != before+TumbleTimePenaltyMs {
		t.Fatalf("elapsed %dms, want %dms", rc.Session.ElapsedMs, before+TumbleTimePenaltyMs)
	}
}

func TestRaceGrazeIsFreeOfPenalty(t *testing.T) {
	rc, bus := newTestRace(t, 3)
	startNormal(t, rc)
	rc.Session.Score = 30

	grazes := 0
	bus.Subscribe(EventGraze, func(Event) { grazes++ })

	g := rc.Gates.Gates[0]
	before := rc.Session.ElapsedMs
	rc.Skier.X = g.X + g.Width/2 + BannerWidth + PlayerRadius + PoleRadius + GrazeMargin*0.5
	rc.Skier.Z = g.Z
	rc.Tick(1e-6, InputFrame{})

	if rc.Skier.Motion != MotionNormal {
		t.Fatalf("motion %v after a graze, want Normal", rc.Skier.Motion)
	}
	if rc.Session.Score != 30 || rc.Session.ElapsedMs != before {
		t.Fatalf("graze cost score or time: %+v", rc.Session)
	}
	if grazes != 1 {
		t.Fatalf("graze events %d, want 1", grazes)
	}
}

func TestRaceAllGatesEndTheRun(t *testing.T) {
	const gates = 10
	rc, _ := newTestRace(t, gates)
	startNormal(t, rc)

	for i := 0; i < gates; i++ {
		g := rc.Gates.Gates[i]
		rc.Skier.X, rc.Skier.Z = g.X, g.Z-0.5
		rc.Tick(1e-6, InputFrame{})
		if rc.State != StateQuestion {
			t.Fatalf("gate %d did not raise a question, state %v", i, rc.State)
		}
		rc.Answer(4)
	}

	// The run ends when the final gate resolves, before any finish line.
	if rc.State != StateEnded {
		t.Fatalf("state %v after the last gate, want Ended", rc.State)
	}
	if rc.Session.GatesPassed != gates || rc.Session.TotalGates != gates {
		t.Fatalf("gates passed %d/%d, want %d/%d", rc.Session.GatesPassed, rc.Session.TotalGates, gates, gates)
	}
	if rc.Session.Score != gates*CorrectAnswerScore {
		t.Fatalf("score %d, want %d", rc.Session.Score, gates*CorrectAnswerScore)
	}

	// Frozen once ended.
	snap := rc.Session
	rc.Tick(0.5, InputFrame{Accelerate: true})
	rc.Answer(4)
	if rc.Session != snap {
		t.Fatalf("session mutated after the run ended: %+v", rc.Session)
	}
}

func TestRaceFinishLineEndsTheRun(t *testing.T) {
	rc, bus := newTestRace(t, 3)
	startNormal(t, rc)

	finishes := 0
	bus.Subscribe(EventFinish, func(Event) { finishes++ })

	rc.Skier.X, rc.Skier.Z = 0, rc.Gates.FinishZ-1
	rc.Tick(1e-6, InputFrame{})
	if rc.State != StateEnded {
		t.Fatalf("state %v past the finish line, want Ended", rc.State)
	}
	if finishes != 1 {
		t.Fatalf("finish events %d, want 1", finishes)
	}
}
