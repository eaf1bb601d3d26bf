// Package tableio reads export files into tables and writes converted
// tables back out. It handles the physical concerns only: character
// encodings, delimiters, BOMs and workbook sheets. What the cells mean is
// the business of internal/reshape.
package tableio
