package registry

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/commotion/internal/core"
)

type stubGame struct {
	variant string
}

func (g *stubGame) ID() string                           { return "stub" }
func (g *stubGame) Title() string                        { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterCreateList(t *testing.T) {
	Register(GameInfo{ID: "zz-stub", Title: "Stub"}, func(opts Options) (Game, error) {
		return &stubGame{variant: opts.Variant}, nil
	})
	Register(GameInfo{ID: "zz-broken", Title: "Broken"}, func(Options) (Game, error) {
		return nil, errors.New("bad config")
	})

	if !Exists("zz-stub") || Exists("zz-missing") {
		t.Fatal("Exists() gave wrong answers")
	}
	if Title("zz-stub") != "Stub" || Title("zz-missing") != "zz-missing" {
		t.Errorf("Title() fallback wrong")
	}

	g, err := Create("zz-stub", Options{Variant: "gentle"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.(*stubGame).variant != "gentle" {
		t.Error("options were not passed to the factory")
	}

	if _, err := Create("zz-broken", Options{}); err == nil || !strings.Contains(err.Error(), "bad config") {
		t.Errorf("factory error not wrapped: %v", err)
	}
	if _, err := Create("zz-missing", Options{}); err == nil {
		t.Error("expected error for unknown game")
	}

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Fatalf("List() not sorted: %v", list)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	f := func(Options) (Game, error) { return &stubGame{}, nil }
	Register(GameInfo{ID: "zz-dup"}, f)
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register(GameInfo{ID: "zz-dup"}, f)
}
