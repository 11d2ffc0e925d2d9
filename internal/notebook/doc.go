// Package notebook reads and writes Jupyter notebooks (nbformat v4) and
// generates the starter notebook of a new topic. Only the cell list and cell
// source are interpreted; everything else is carried through untouched.
package notebook
