package main

import (
	"flag"
	"os"
	"strconv"
	"time"

	"slalom/internal/game"
	"slalom/internal/logger"
)

func main() {
	log := logger.New("main")

	var (
		seedFlag   = flag.Uint64("seed", 0, "course seed (0 = random, SLALOM_SEED overrides)")
		diffFlag   = flag.String("difficulty", "easy", "question difficulty: easy, medium, hard")
		gatesFlag  = flag.Int("gates", game.DefaultGateCount, "number of gates")
		obstFlag   = flag.Int("obstacles", game.DefaultObstacles, "number of trees and rocks")
		streamFlag = flag.String("telemetry", "", "spectator websocket address (e.g. :9100), empty disables")
	)
	flag.Parse()

	seed := *seedFlag
	if s := os.Getenv("SLALOM_SEED"); s != "" {
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			seed = v
		}
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	difficulty, err := game.ParseDifficulty(*diffFlag)
	if err != nil {
		log.Fatalf("bad -difficulty: %v", err)
	}

	opts := game.Options{
		Seed:          seed,
		Difficulty:    difficulty,
		GateCount:     *gatesFlag,
		Obstacles:     *obstFlag,
		TelemetryAddr: *streamFlag,
	}
	log.Printf("starting run: seed=%d difficulty=%s gates=%d", seed, difficulty, opts.GateCount)
	if err := game.RunDesktop(opts); err != nil {
		log.Fatalf("run failed: %v", err)
	}
}
