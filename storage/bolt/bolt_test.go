package bolt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Saidis18/model-checker/model"
)

func TestBasics(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "models.db")

	s, err := NewStore(filename)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Open(); err != nil {
		t.Fatal(err)
	}
	defer func() {
		if err := s.Close(); err != nil {
			t.Fatal(err)
		}
		if _, err := os.Stat(filename); err != nil {
			t.Fatal(err)
		}
	}()

	m := model.NewModel()
	m.Name = "demo"
	m.AddRewardState("A", 2)
	m.AddRewardState("B", 0)
	m.AddTransition("A", "B", model.NoAction, 1)
	m.AddTransition("B", "B", model.NoAction, 1)
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	n, err := m.Normalize()
	if err != nil {
		t.Fatal(err)
	}

	if err := s.PutModel("demo", n); err != nil {
		t.Fatal(err)
	}

	{ // Round trip, ready for analysis.
		got, err := s.GetModel("demo")
		if err != nil {
			t.Fatal(err)
		}
		if !got.Normalized {
			t.Fatal("lost the normalized flag")
		}
		if got.Reward("A") != 2 {
			t.Fatal("lost a reward")
		}
		p, err := got.Accessibility("A", "B", nil, 1)
		if err != nil {
			t.Fatal(err)
		}
		if p != 1.0 {
			t.Fatalf("expected 1.0; got %v", p)
		}
	}

	{ // Results cache.
		if _, have, err := s.GetResult("demo", "accessibility/A/B/1"); err != nil {
			t.Fatal(err)
		} else if have {
			t.Fatal("unexpected cached result")
		}
		if err := s.PutResult("demo", "accessibility/A/B/1", 1.0); err != nil {
			t.Fatal(err)
		}
		v, have, err := s.GetResult("demo", "accessibility/A/B/1")
		if err != nil {
			t.Fatal(err)
		}
		if !have || v != 1.0 {
			t.Fatalf("expected a cached 1.0; got %v (%v)", v, have)
		}
	}

	{ // Storing again drops the cache.
		if err := s.PutModel("demo", n); err != nil {
			t.Fatal(err)
		}
		if _, have, err := s.GetResult("demo", "accessibility/A/B/1"); err != nil {
			t.Fatal(err)
		} else if have {
			t.Fatal("cache should have been dropped")
		}
	}

	{ // Listing and removal.
		names, err := s.ListModels()
		if err != nil {
			t.Fatal(err)
		}
		if len(names) != 1 || names[0] != "demo" {
			t.Fatalf("unexpected names %v", names)
		}
		if err := s.RemModel("demo"); err != nil {
			t.Fatal(err)
		}
		if _, err := s.GetModel("demo"); err != NotFound {
			t.Fatalf("expected NotFound; got %v", err)
		}
	}
}
