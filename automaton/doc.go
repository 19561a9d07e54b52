// Package automaton implements the Automaton execution model: tasks
// that declare outbound messages once, accumulate inbound messages
// until eligible, and then produce a value on a worker. A coordinator
// drives a group of automata through one stage, and three executors
// (serial, round-robin, work-stealing) provide different concurrency
// strategies for the same coordinator algorithm.
package automaton
