// Package partition splits the order list shown in the back office into the
// "today", "this week" and "remaining" buckets.
//
// Only the remaining bucket is narrowed by the basic status filter and the
// advanced FilterConfiguration, and only it is sorted. Classification is
// relative to the injected clock, so a Partitioner returns the same Result for
// the same inputs and instant. Orders whose scheduled date cannot be parsed
// are left out of every bucket and reported as DataError values.
package partition
