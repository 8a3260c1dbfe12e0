package wbtree

import "gopkg.in/yaml.v3"

// Policy selects when rebalancing is evaluated relative to the insertion or
// removal descent.
type Policy int

const (
	// TwoPass descends to the insertion/removal point first, then walks
	// back up to the root re-checking (and fixing) the balance condition
	// at every ancestor. This is the textbook approach and the default.
	TwoPass Policy = iota
	// SinglePass evaluates (and fixes) the balance condition on the way
	// down, at each ancestor, using sizes as they stand before the
	// insertion reaches that ancestor, and does not re-check balance on
	// the way back up (sizes are still corrected on the way up; only the
	// rebalancing decision is skipped). Cheaper per operation than
	// TwoPass; tolerates a looser bound on worst-case height in exchange.
	SinglePass
)

// WBTOptions configures the (Δ, γ) balance parameters and rebalancing
// policy of a Tree, per Hirai & Yamamoto's weight-balanced tree analysis.
//
// A node is considered balanced when both of its children's weights
// satisfy the Δ = DeltaNum/DeltaDen ratio against each other. When a
// rebalance is required, γ = GammaNum/GammaDen selects between a single
// and a double rotation.
type WBTOptions struct {
	DeltaNum, DeltaDen int
	GammaNum, GammaDen int
	Policy             Policy
	// Branchless selects an arithmetic-select formulation of the
	// single/double rotation predicate instead of an if/else branch.
	// Produces identical decisions; exists for callers benchmarking
	// branch-predictor-sensitive workloads.
	Branchless bool
}

// Preset balance parameters observed valid and performant in the
// literature and in production weight-balanced tree implementations.
var (
	// LaiWood31 is the classic Δ=3, γ=4/3 parameterization.
	LaiWood31 = WBTOptions{DeltaNum: 3, DeltaDen: 1, GammaNum: 4, GammaDen: 3}
	// Balanced uses Δ=2, γ=3/2.
	Balanced = WBTOptions{DeltaNum: 2, DeltaDen: 1, GammaNum: 3, GammaDen: 2}
	// SuperBalanced uses Δ=3/2, γ=5/4, trading more rotations for a
	// tighter height bound.
	SuperBalanced = WBTOptions{DeltaNum: 3, DeltaDen: 2, GammaNum: 5, GammaDen: 4}
	// Integral uses only integer Δ=3, γ=2 (shawnsmithdev/wbtree's
	// parameterization), convenient when avoiding rational arithmetic
	// entirely is desirable.
	Integral = WBTOptions{DeltaNum: 3, DeltaDen: 1, GammaNum: 2, GammaDen: 1}
)

// OptionsFromYAML decodes a WBTOptions from YAML, e.g.:
//
//	deltanum: 3
//	deltaden: 1
//	gammanum: 2
//	gammaden: 1
//	policy: 0
//	branchless: false
func OptionsFromYAML(data []byte) (WBTOptions, error) {
	var opts WBTOptions
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return WBTOptions{}, err
	}
	return opts, nil
}
