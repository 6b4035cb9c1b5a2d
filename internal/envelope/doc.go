// Package envelope estimates residential heating and cooling energy from
// building-envelope choices and climate, and normalizes the result into a
// simplified HERS index against a code-minimum reference house.
//
// Every calculation is a pure function of its inputs. Nothing here validates,
// logs or fails on numeric input: callers range-check with the Validate methods
// first, and the only guards are the documented clamps (COP, SEER, window ratio
// divisor, story count and the HERS reference total).
package envelope
