// Package daterange holds the framework-agnostic core shared by the range
// picker widgets: the range selection state machine, the 6x7 calendar grid
// generator, disable policies and MM/DD/YYYY range parsing and formatting.
package daterange
