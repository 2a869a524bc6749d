package script

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/domain/flags"
)

// Host is the part of a simulation context that scripts may drive.
type Host interface {
	Jump(o entity.Object, height int)
	SetMoving(o entity.Object, dir entity.Direction)
}

// Store is a map shared by every program compiled against it. Values
// written by one callback are visible to the next.
type Store struct {
	m *tengo.Map
}

func NewStore() *Store {
	return &Store{m: &tengo.Map{Value: map[string]tengo.Object{}}}
}

// Get returns the Go value stored under key, or nil
func (st *Store) Get(key string) any {
	obj, ok := st.m.Value[key]
	if !ok {
		return nil
	}
	return objectToAny(obj)
}

// Int returns the stored integer under key, or 0
func (st *Store) Int(key string) int {
	if v, ok := st.Get(key).(int); ok {
		return v
	}
	return 0
}

// Program is a compiled event callback. Each run sees the firing sprite as
// the global `sprite` and the shared store as `store`.
type Program struct {
	name     string
	compiled *tengo.Compiled
	host     Host
	store    *Store
}

// Compile compiles src with the tengo standard library available for import.
// A nil store gives the program a private one.
func Compile(name, src string, host Host, store *Store) (*Program, error) {
	if store == nil {
		store = NewStore()
	}

	s := tengo.NewScript([]byte(src))
	// placeholders, replaced per run
	for _, g := range []string{"sprite", "store"} {
		if err := addGlobal(s, g, map[string]any{}); err != nil {
			return nil, fmt.Errorf("failed to compile script %s: %w", name, err)
		}
	}
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("failed to compile script %s: %w", name, err)
	}
	return &Program{name: name, compiled: compiled, host: host, store: store}, nil
}

func addGlobal(s *tengo.Script, name string, v any) error {
	if err := s.Add(name, v); err != nil {
		return fmt.Errorf("global %s: %w", name, err)
	}
	return nil
}

func (p *Program) Name() string { return p.name }

// Run executes the program for one sprite
func (p *Program) Run(s *entity.Sprite) error {
	if err := p.compiled.Set("sprite", p.spriteObject(s)); err != nil {
		return err
	}
	if err := p.compiled.Set("store", p.store.m); err != nil {
		return err
	}
	if err := p.compiled.Run(); err != nil {
		return fmt.Errorf("script %s: %w", p.name, err)
	}
	return nil
}

// Handler adapts the program to an event callback. Failures are logged and
// never stop the frame.
func (p *Program) Handler() func(*entity.Sprite) {
	return func(s *entity.Sprite) {
		if err := p.Run(s); err != nil {
			log.Printf("sprite kind=%d: %v", s.Kind, err)
		}
	}
}

func (p *Program) spriteObject(s *entity.Sprite) *tengo.ImmutableMap {
	facing := "right"
	if s.State.FacingLeft() {
		facing = "left"
	}

	values := map[string]tengo.Object{
		"x":          &tengo.Int{Value: int64(s.Left())},
		"y":          &tengo.Int{Value: int64(s.Top())},
		"vx":         &tengo.Int{Value: int64(s.VX.Int())},
		"vy":         &tengo.Int{Value: int64(s.VY.Int())},
		"kind":       &tengo.Int{Value: int64(s.Kind)},
		"player":     &tengo.Int{Value: int64(s.Player)},
		"jump_count": &tengo.Int{Value: int64(s.JumpCount)},
		"state":      &tengo.String{Value: s.State.String()},
		"facing":     &tengo.String{Value: facing},
	}

	values["has"] = &tengo.UserFunction{Name: "has", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		name := objectAsString(args[0])
		f, ok := flags.ParseState(name)
		if !ok {
			return nil, fmt.Errorf("has: unknown state %q", name)
		}
		if s.HasState(f) {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["jump"] = &tengo.UserFunction{Name: "jump", Value: func(args ...tengo.Object) (tengo.Object, error) {
		height := 0
		if len(args) > 0 {
			h, ok := tengo.ToInt(args[0])
			if !ok {
				return nil, tengo.ErrInvalidArgumentType{Name: "height", Expected: "int", Found: args[0].TypeName()}
			}
			height = h
		}
		p.host.Jump(s, height)
		return tengo.UndefinedValue, nil
	}}

	values["move"] = &tengo.UserFunction{Name: "move", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		dir, err := entity.ParseDirection(objectAsString(args[0]))
		if err != nil {
			return nil, err
		}
		p.host.SetMoving(s, dir)
		return tengo.UndefinedValue, nil
	}}

	values["destroy"] = &tengo.UserFunction{Name: "destroy", Value: func(args ...tengo.Object) (tengo.Object, error) {
		s.Destroy()
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectToAny(obj tengo.Object) any {
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	default:
		return nil
	}
}
