package lowpoly

import (
	"fmt"
	"math/rand"
	"sync"
)

// Source tells how the point of a variant was obtained.
type Source int

const (
	// SourceBase marks the base point of a member, carried unchanged.
	SourceBase Source = iota
	// SourceMutation marks a point moved by a random delta.
	SourceMutation
)

func (s Source) String() string {
	if s == SourceMutation {
		return "mutation"
	}
	return "base"
}

// Variant is the state of a member during a single round of a generation.
type Variant struct {
	Source  Source
	Delta   Point
	Point   Point
	Fitness float64
}

// Member is a mesh vertex evolving across the rounds of a generation.
//
// Round 0 holds the base point, each mutation round appends either a mutated
// candidate or an unchanged copy of the base, and the merge appends the
// aggregate of the beneficial mutations.
type Member struct {
	ID int

	mu       sync.Mutex
	variants []Variant
	width    float64
	height   float64
}

// NewMember creates a member at point p of an image with the given dimensions.
func NewMember(id int, p Point, width, height float64) *Member {
	return &Member{
		ID:       id,
		variants: []Variant{{Source: SourceBase, Point: p}},
		width:    width,
		height:   height,
	}
}

// Base returns the base point of the member.
func (m *Member) Base() Point {
	return m.variants[0].Point
}

// Rounds returns the number of rounds recorded so far.
func (m *Member) Rounds() int {
	return len(m.variants)
}

// Point returns the point the member had during the given round.
func (m *Member) Point(round int) Point {
	return m.variant(round).Point
}

// Variant returns a copy of the state recorded for the given round.
func (m *Member) Variant(round int) Variant {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.variant(round)
}

// Fitness returns the fitness accumulated during the given round.
func (m *Member) Fitness(round int) float64 {
	return m.Variant(round).Fitness
}

func (m *Member) variant(round int) *Variant {
	if round < 0 || round >= len(m.variants) {
		panic(fmt.Sprintf("lowpoly: member %d has no round %d (rounds: %d)", m.ID, round, len(m.variants)))
	}
	return &m.variants[round]
}

// AddFitness accumulates the fitness of a face onto the given round.
// It is safe to call from concurrent face evaluations. An unknown round panics.
func (m *Member) AddFitness(round int, amount float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.variant(round).Fitness += amount
}

// Mutate opens a new round. With probability rate the base point is moved by a
// gaussian delta of the given deviation, otherwise the base is carried unchanged.
// It returns the new round index.
func (m *Member) Mutate(r *rand.Rand, rate, deviation float64) int {
	v := Variant{Source: SourceBase, Point: m.Base()}
	if r.Float64() < rate {
		delta := gaussianDelta(r, deviation)
		v = Variant{
			Source: SourceMutation,
			Delta:  delta,
			Point:  m.Base().Mutate(delta, m.width, m.height),
		}
	}
	m.variants = append(m.variants, v)
	return len(m.variants) - 1
}

// Revert turns the given round back into an unchanged copy of the base.
func (m *Member) Revert(round int) {
	*m.variant(round) = Variant{Source: SourceBase, Point: m.Base()}
}

// Merge opens the final round of the generation. Mutations scoring better than
// the base are beneficial; the base point is moved by each beneficial delta,
// weighted by that mutation's share of the summed beneficial fitness.
// It returns the new round index.
func (m *Member) Merge() int {
	base := m.variants[0]

	var sum float64
	for _, v := range m.variants[1:] {
		if v.Source == SourceMutation && v.Fitness > base.Fitness {
			sum += v.Fitness
		}
	}

	point := base.Point
	for _, v := range m.variants[1:] {
		if v.Source == SourceMutation && v.Fitness > base.Fitness {
			point = point.Mutate(v.Delta.Scale(v.Fitness/sum), m.width, m.height)
		}
	}

	m.variants = append(m.variants, Variant{Source: SourceBase, Delta: point.Sub(base.Point), Point: point})
	return len(m.variants) - 1
}
