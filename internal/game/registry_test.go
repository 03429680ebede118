package game

import (
	"errors"
	"sync"
	"testing"
)

func TestRegistryCreateJoin(t *testing.T) {
	r := NewRegistry()

	token, key1, err := r.Create(Config{Players: 2, Rounds: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(token) != 8 {
		t.Errorf("token %q, want 8 chars", token)
	}

	seat, ok := r.FromClaim(key1)
	if !ok || seat.Player != 1 || seat.Game != token {
		t.Errorf("creator claim resolves to %+v", seat)
	}

	p2, key2, err := r.Join(token)
	if err != nil {
		t.Fatal(err)
	}
	if p2 != 2 || key2 == key1 {
		t.Errorf("join gave seat %d, key collision %v", p2, key2 == key1)
	}

	if _, _, err := r.Join(token); !errors.Is(err, ErrGameFull) {
		t.Errorf("third join: %v", err)
	}
	if _, _, err := r.Join("nope1234"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("unknown game join: %v", err)
	}
}

func TestRegistryDelete(t *testing.T) {
	r := NewRegistry()
	token, key, err := r.Create(Config{Players: 2, Rounds: 1})
	if err != nil {
		t.Fatal(err)
	}

	if err := r.Delete(token); err != nil {
		t.Fatal(err)
	}
	if _, ok := r.FromClaim(key); ok {
		t.Error("claim key survived game deletion")
	}
	if err := r.Do(token, func(*State) error { return nil }); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("Do on deleted game: %v", err)
	}
}

func TestRegistrySerializesMutations(t *testing.T) {
	r := NewRegistry()
	token, _, err := r.Create(Config{Players: 2, Rounds: 1})
	if err != nil {
		t.Fatal(err)
	}

	// Hammer the same game from many goroutines; the per-game lock
	// must linearize them so the counter never loses an increment.
	const workers = 32
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Do(token, func(*State) error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()
	if counter != workers {
		t.Errorf("counter = %d, want %d", counter, workers)
	}
}

func TestRegistryTurnRace(t *testing.T) {
	r := NewRegistry()
	token, _, err := r.Create(Config{Players: 2, Rounds: 1})
	if err != nil {
		t.Fatal(err)
	}
	r.Join(token)

	r.Do(token, func(s *State) error {
		for i, c := range []City{parisCity, berlinCity, madridCity} {
			if err := s.AddVertex(i%2+1, c); err != nil {
				t.Fatal(err)
			}
		}
		return nil
	})

	// Both goroutines race to submit for the same turn; exactly one
	// may win, the loser must see ErrNotYourTurn or a duplicate.
	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Do(token, func(s *State) error {
				if _, err := s.Submit(2, lyonCity); err == nil {
					mu.Lock()
					accepted++
					mu.Unlock()
				}
				return nil
			})
		}()
	}
	wg.Wait()
	if accepted != 1 {
		t.Errorf("%d racing submissions accepted, want exactly 1", accepted)
	}
}
