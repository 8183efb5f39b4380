// Package ratelimit implements a fixed one-minute window limiter over a
// shared counter store. Each identity gets one counter per wall-clock
// minute; the counter expires on its own so no cleanup is needed.
package ratelimit
