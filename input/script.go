package input

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/tilewalker/ecs/component"
	"github.com/milk9111/tilewalker/prefabs"
)

var scriptOutputs = [...]string{"forward", "backward", "left", "right"}

// ScriptSource runs a tengo script once per poll. The script reads __tick,
// the number of previous polls, and assigns the booleans forward, backward,
// left, and right.
type ScriptSource struct {
	name     string
	compiled *tengo.Compiled
	tick     int
	err      error
}

// LoadScriptSource compiles a script from prefabs/scripts.
func LoadScriptSource(name string) (*ScriptSource, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("input: load script %s: %w", name, err)
	}
	return NewScriptSource(name, src)
}

func NewScriptSource(name string, src []byte) (*ScriptSource, error) {
	script := tengo.NewScript(src)
	_ = script.Add("__tick", 0)
	for _, out := range scriptOutputs {
		_ = script.Add(out, false)
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("input: compile script %s: %w", name, err)
	}
	return &ScriptSource{name: name, compiled: compiled}, nil
}

// Poll runs the script. A runtime error stops the script; it reports no
// input from then on and the error is kept for Err.
func (s *ScriptSource) Poll() component.Input {
	if s == nil || s.compiled == nil || s.err != nil {
		return component.Input{}
	}

	if err := s.compiled.Set("__tick", s.tick); err != nil {
		s.err = err
		return component.Input{}
	}
	for _, out := range scriptOutputs {
		_ = s.compiled.Set(out, false)
	}
	s.tick++

	if err := s.compiled.Run(); err != nil {
		s.err = fmt.Errorf("input: run script %s: %w", s.name, err)
		return component.Input{}
	}

	return component.Input{
		Forward:  s.compiled.Get("forward").Bool(),
		Backward: s.compiled.Get("backward").Bool(),
		Left:     s.compiled.Get("left").Bool(),
		Right:    s.compiled.Get("right").Bool(),
	}
}

// Err returns the error that stopped the script, if any.
func (s *ScriptSource) Err() error {
	if s == nil {
		return nil
	}
	return s.err
}

func (s *ScriptSource) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}
