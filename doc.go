/*
Command intcode runs Intcode programs.

An Intcode program is a file of comma separated integers. The run command
executes one with a fixed list of inputs, printing each output value on its
own line:

	intcode run day5.ic -i 8

The other commands attach a program to one of the built in devices:

	intcode amp day7.ic --loop      # best feedback loop over phases 5 through 9
	intcode paint day11.ic          # hull painting robot
	intcode arcade day13.ic         # arcade cabinet, animated on a terminal
	intcode droid day15.ic          # repair droid searching for oxygen

Pass --verbose for debug logs, and --trace to log every input, output, and
halt of every machine.
*/
package main
