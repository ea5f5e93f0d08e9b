package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct{ Sheet string }

type sampleConf struct {
	Sheet string `json:"sheet"`
	Limit int    `json:"limit"`
}

// Test registry registration and instantiation using Decode.
func TestRegistry_Create(t *testing.T) {
	reg := NewRegistry[*sample]()
	if err := reg.Register("xlsx", func(conf map[string]any) (*sample, error) {
		var c sampleConf
		if err := Decode(conf, &c); err != nil {
			return nil, err
		}
		return &sample{Sheet: c.Sheet}, nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	inst, err := reg.Create(ModuleConfig{Type: "xlsx", Conf: map[string]any{"sheet": "國文"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if inst.Sheet != "國文" {
		t.Fatalf("expected 國文 got %s", inst.Sheet)
	}
}

// Test duplicate registration and unknown type errors.
func TestRegistry_Errors(t *testing.T) {
	reg := NewRegistry[int]()
	if err := reg.Register("x", func(map[string]any) (int, error) { return 1, nil }); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register("x", func(map[string]any) (int, error) { return 2, nil }); err == nil {
		t.Fatal("expected duplicate error")
	}
	if err := reg.Register("z", nil); err == nil {
		t.Fatal("expected nil factory error")
	}
	if _, err := reg.Create(ModuleConfig{Type: "y"}); err == nil {
		t.Fatal("expected unknown type error")
	}
	assert.Panics(t, func() { reg.MustRegister("x", func(map[string]any) (int, error) { return 0, nil }) })
}

func TestRegistry_Names(t *testing.T) {
	reg := NewRegistry[int]()
	reg.MustRegister("pdf", func(map[string]any) (int, error) { return 0, nil })
	reg.MustRegister("csv", func(map[string]any) (int, error) { return 0, nil })
	assert.Equal(t, []string{"csv", "pdf"}, reg.Names())
}

func TestDecode_WeakTypes(t *testing.T) {
	var c sampleConf
	if err := Decode(map[string]any{"limit": "7"}, &c); err != nil {
		t.Fatalf("decode: %v", err)
	}
	assert.Equal(t, 7, c.Limit)
}
