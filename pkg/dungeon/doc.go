// Package dungeon provides the generator's orchestrator: Config (YAML,
// validated, hashable for RNG derivation) and Generate, which runs room
// placement, required/optional connection selection, and passage routing
// against a single shared voxel map, deterministically from a seed.
package dungeon
