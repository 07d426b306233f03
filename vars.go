package eoncluster

import "math"

// Indices and boundaries travel to the device as 32-bit words.
const MAX_FLAT_LEN = math.MaxUint32

const ACCELERATOR_NONE = ""
const ACCELERATOR_ICICLE = "icicle"

const COMPONENT_ASSEMBLE = "assemble"
const COMPONENT_AGGREGATE = "aggregate"
const COMPONENT_PRECOMPUTE = "precompute"

// Below this many clusters per worker the goroutine overhead dominates.
const MIN_CLUSTERS_PER_WORKER = 256
