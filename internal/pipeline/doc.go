// Package pipeline runs the output steps of a transformation in sequence.
//
// A transformation loads one license export and then writes up to three
// files from it: the CSV file, the JSON file and the summary report. Each
// file is a Step; the command adds the steps selected by its flags and the
// Pipeline executes them in order, stopping at the first failure.
package pipeline
