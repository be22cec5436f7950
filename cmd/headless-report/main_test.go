package main

import (
	"strings"
	"testing"

	"github.com/Garsondee/Fog-Tactics/internal/game"
)

func TestLeader(t *testing.T) {
	name, n := leader(map[string]int{"Player": 1, "CPU 1": 3, "CPU 2": 0})
	if name != "CPU 1" || n != 3 {
		t.Fatalf("expected CPU 1 with 3, got %s with %d", name, n)
	}
}

func TestLeader_NoneOnTieOrEmpty(t *testing.T) {
	if name, _ := leader(map[string]int{"A": 2, "B": 2}); name != "none" {
		t.Fatalf("expected none on a tie, got %s", name)
	}
	if name, n := leader(map[string]int{"A": 0}); name != "none" || n != 0 {
		t.Fatalf("expected none with 0, got %s with %d", name, n)
	}
}

func TestDetectStall_TrueWhenMostTurnsStuck(t *testing.T) {
	rs := runStats{turns: 20, stuckTurns: 12, steps: 40}
	stalled, reason := detectStall(rs)
	if !stalled {
		t.Fatalf("expected stall, got false (reason=%s)", reason)
	}
	if !strings.Contains(reason, "stuck_ratio") {
		t.Fatalf("expected reason to mention stuck_ratio, got: %s", reason)
	}
}

func TestDetectStall_FalseForAnActiveRun(t *testing.T) {
	rs := runStats{turns: 20, stuckTurns: 2, steps: 120}
	if stalled, reason := detectStall(rs); stalled {
		t.Fatalf("expected no stall (reason=%s)", reason)
	}
}

func TestDetectStall_NoTurns(t *testing.T) {
	if stalled, reason := detectStall(runStats{}); !stalled || reason != "no_turns_completed" {
		t.Fatalf("expected no_turns_completed, got %v %s", stalled, reason)
	}
}

func TestAutoplay_MakesEverySeatNPC(t *testing.T) {
	base := game.DefaultConfig()
	var c game.Config
	autoplay(base)(&c)
	for _, p := range c.Players {
		if !p.NPC {
			t.Fatalf("expected %s to be an NPC", p.Name)
		}
	}
	if base.Players[0].NPC {
		t.Fatalf("base roster must not be modified")
	}
}

func TestRunAutoplay_SmallMap(t *testing.T) {
	base := game.DefaultConfig()
	base.Map.Size = 32
	rs, err := runAutoplay(1, 7, 600, base)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if rs.frames != 600 {
		t.Fatalf("expected 600 frames, got %d", rs.frames)
	}
	if rs.turns == 0 {
		t.Fatalf("expected at least one completed turn in 10 simulated seconds")
	}
	if rs.revealed <= 0 {
		t.Fatalf("expected some fog to be revealed")
	}
	if rs.captures > 0 && rs.lastCaptureFrame < rs.firstCaptureFrame {
		t.Fatalf("last capture %d precedes first capture %d", rs.lastCaptureFrame, rs.firstCaptureFrame)
	}
	if rs.captures == 0 && rs.lastCapture != "none" {
		t.Fatalf("expected no last capture, got %q", rs.lastCapture)
	}
	if len(rs.owned) != len(base.Players) {
		t.Fatalf("expected ownership for %d players, got %d", len(base.Players), len(rs.owned))
	}
}

func TestFormatOwned(t *testing.T) {
	got := formatOwned(map[string]int{"b": 2, "a": 1})
	if got != "a=1 b=2" {
		t.Fatalf("unexpected format %q", got)
	}
	if formatOwned(nil) != "none" {
		t.Fatalf("expected none for an empty map")
	}
}
