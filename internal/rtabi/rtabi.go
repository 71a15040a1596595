// Package rtabi defines constants shared between the Lumina compiler and
// the Lumina runtime library. Compiler passes treat these as opaque values;
// changing them is an ABI break.
package rtabi

// I/O status codes returned by runtime I/O statements. IS_IOSTAT_END and
// IS_IOSTAT_EOR fold against these at compile time.
const (
	IostatOk  = 0
	IostatEnd = -1 // end of file
	IostatEor = -2 // end of record
)
