// Package kernel contains shared value objects used across the domain model:
// UUID identifiers, customer-facing tracking codes, and structured delivery
// addresses. All types in this package are immutable and constructed through
// validating factory functions; zero values fail Validate().
package kernel
