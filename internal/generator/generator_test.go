package generator

import (
	"math/rand"
	"reflect"
	"sort"
	"testing"
)

func TestShuffleFixture(t *testing.T) {
	seq := []string{"ArrowDown", "ArrowUp", "ArrowRight", "ArrowLeft"}
	got := Shuffle(seq, 42)
	want := []string{"ArrowUp", "ArrowRight", "ArrowDown", "ArrowLeft"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if seq[0] != "ArrowDown" {
		t.Fatalf("expected input sequence to be left untouched, got %v", seq)
	}
}

func TestShuffleDeterministicPermutation(t *testing.T) {
	seq := []string{"ArrowDown", "ArrowUp", "ArrowRight", "ArrowLeft"}
	for seed := -50; seed <= 150; seed++ {
		first := Shuffle(seq, seed)
		second := Shuffle(seq, seed)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("seed %d: expected identical output, got %v and %v", seed, first, second)
		}
		sortedIn := append([]string(nil), seq...)
		sortedOut := append([]string(nil), first...)
		sort.Strings(sortedIn)
		sort.Strings(sortedOut)
		if !reflect.DeepEqual(sortedIn, sortedOut) {
			t.Fatalf("seed %d: output %v is not a permutation of %v", seed, first, seq)
		}
	}
}

func TestShuffleEmptyAndSingle(t *testing.T) {
	if got := Shuffle([]int{}, 7); len(got) != 0 {
		t.Fatalf("expected empty output, got %v", got)
	}
	if got := Shuffle([]int{9}, 7); !reflect.DeepEqual(got, []int{9}) {
		t.Fatalf("expected [9], got %v", got)
	}
}

func TestSeedRange(t *testing.T) {
	g := NewWithSource(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		seed := g.Seed()
		if seed < 1 || seed > 100 {
			t.Fatalf("seed %d out of range", seed)
		}
	}
}
