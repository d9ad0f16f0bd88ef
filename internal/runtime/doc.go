// Package runtime implements the stage controller: it gates forward
// progress through the registration stages on partial validity and hands
// fully valid records to a submission handler.
package runtime
