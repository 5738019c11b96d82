/*
Package intcode implements the Intcode virtual machine.

An Intcode program is a sequence of signed integers that is loaded as the
initial memory image of a VM. Each instruction word holds an opcode in its
low two decimal digits, and one parameter mode digit per parameter above
that, read right to left:

	ABCDE
	 1002

	DE - two-digit opcode,      02 == mul
	 C - mode of 1st parameter,  0 == position
	 B - mode of 2nd parameter,  1 == immediate
	 A - mode of 3rd parameter,  0 == position, omitted due to being a leading zero

Position mode parameters name an address, immediate mode parameters are
values, and relative mode parameters name an address offset by the relative
base register. Parameters that are written to are never in immediate mode.

Input and output instructions go through Devices. A device may be a simple
Queue of values, one end of a pipe.Pipe connecting two VMs, or a reactive
device that computes each input from the outputs it has seen so far.

As an extension to the instruction set, an input device may answer a read
with pipe.Stop, which halts the VM as if it had executed a halt
instruction. This lets a device end a program that would otherwise run
forever, and is distinct from handing back the empty token, which is a
fatal ErrEmptyInput.
*/
package intcode
