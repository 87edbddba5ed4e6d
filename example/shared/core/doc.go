// Package core contains the domain type for the example:
// Book stock in a public library.
//
// The Book entity carries its own identity, so it can be stored through the
// repository contracts without any mapping layer. Domain operations like
// Borrowed and Returned return modified copies, keeping the type a plain
// value.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would
// be called the 'domain' layer.
package core
