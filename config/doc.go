// SPDX-License-Identifier: MIT

// Package config decodes the detector's invocation arguments.
//
// The arguments arrive as one JSON object (the first process argument) or a
// YAML file with the same keys:
//
//	{
//	  "dataInput": "data.csv",
//	  "dataOutput": "scores.txt",
//	  "executionType": "execute",
//	  "customParameters": {"s": 20, "maxIt": 10, "h": 0.75}
//	}
//
// Missing custom parameters take their documented defaults; unrecognized
// keys are dropped silently. Validate rejects unknown execution types and
// out-of-range parameters before any computation starts.
package config
