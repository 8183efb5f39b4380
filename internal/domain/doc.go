// Package domain contains the core business entities, value objects, and
// domain logic of the application: users with their roles, tasks with their
// workflow status, and the partial-update value used to patch tasks. It is
// independent of any specific infrastructure or delivery mechanism.
package domain
