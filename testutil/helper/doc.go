// Package helper provides test spies for the observability interfaces and
// shared arrange helpers for the package tests.
package helper
