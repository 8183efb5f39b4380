// Package events provides types and interfaces for an event-driven architecture.
//
// Services emit events without knowing which handlers will process them. The
// job package subscribes to turn events into background work, which keeps the
// service layer free of any dependency on the job runner.
//
// The primary components are:
//   - Event: a typed notification with a JSON payload
//   - EventHandler: interface for components that can handle events
//   - EventEmitter: interface for components that can emit events
package events
