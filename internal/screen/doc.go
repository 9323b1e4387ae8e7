// Package screen holds headless view models for the client pages.
//
// A screen owns nothing global: it receives slices, services and collaborators
// from the app container, dispatches intents on user actions and reacts to
// terminal statuses through a binding. Rendering is left to the caller, which
// reads the screen's accessors after every change.
package screen
