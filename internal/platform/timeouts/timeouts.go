// Package timeouts defines shared timeout constants used across services.
// Centralizing these values prevents drift between service boundaries and
// makes the durations discoverable.
package timeouts

import "time"

// GRPCDial caps the wait time when dialing a gRPC peer.
const GRPCDial = 2 * time.Second

// GRPCRequest caps the time allowed for a single unary call from the
// ticketctl client to the ledger.
const GRPCRequest = 5 * time.Second

// HealthPoll is the interval between health probes while waiting for a peer.
const HealthPoll = 200 * time.Millisecond

// Shutdown limits how long the ledger server waits for in-flight calls
// during graceful shutdown before forcing a stop.
const Shutdown = 5 * time.Second
