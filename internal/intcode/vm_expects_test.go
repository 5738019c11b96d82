package intcode

// @generated from vm_test.go

//go:generate go run ../../scripts/gen_vm_expects.go -- vm_test.go vm_expects_test.go

import (
	"time"

	"github.com/jcorbin/intcode/internal/pipe"
)

func withVMProgram(prog string) func(vmTestCase) vmTestCase {
	return func(vmt vmTestCase) vmTestCase {
		return vmt.withProgram(prog)
	}
}

func withVMOptions(opts ...VMOption) func(vmTestCase) vmTestCase {
	return func(vmt vmTestCase) vmTestCase {
		return vmt.withOptions(opts...)
	}
}

func withVMInput(values ...int64) func(vmTestCase) vmTestCase {
	return func(vmt vmTestCase) vmTestCase {
		return vmt.withInput(values...)
	}
}

func withVMTokens(toks ...pipe.Token) func(vmTestCase) vmTestCase {
	return func(vmt vmTestCase) vmTestCase {
		return vmt.withTokens(toks...)
	}
}

func withVMTimeout(timeout time.Duration) func(vmTestCase) vmTestCase {
	return func(vmt vmTestCase) vmTestCase {
		return vmt.withTimeout(timeout)
	}
}

func expectVMError(err error) func(vmTestCase) vmTestCase {
	return func(vmt vmTestCase) vmTestCase {
		return vmt.expectError(err)
	}
}

func expectVMErrorAs(err error) func(vmTestCase) vmTestCase {
	return func(vmt vmTestCase) vmTestCase {
		return vmt.expectErrorAs(err)
	}
}

func expectVMMemory(values ...int64) func(vmTestCase) vmTestCase {
	return func(vmt vmTestCase) vmTestCase {
		return vmt.expectMemory(values...)
	}
}

func expectVMMemAt(addr uint, values ...int64) func(vmTestCase) vmTestCase {
	return func(vmt vmTestCase) vmTestCase {
		return vmt.expectMemAt(addr, values...)
	}
}

func expectVMMemLen(n int) func(vmTestCase) vmTestCase {
	return func(vmt vmTestCase) vmTestCase {
		return vmt.expectMemLen(n)
	}
}

func expectVMImageError(err error) func(vmTestCase) vmTestCase {
	return func(vmt vmTestCase) vmTestCase {
		return vmt.expectImageError(err)
	}
}

func expectVMPC(pc int64) func(vmTestCase) vmTestCase {
	return func(vmt vmTestCase) vmTestCase {
		return vmt.expectPC(pc)
	}
}

func expectVMBase(base int64) func(vmTestCase) vmTestCase {
	return func(vmt vmTestCase) vmTestCase {
		return vmt.expectBase(base)
	}
}

func expectVMOutput(values ...int64) func(vmTestCase) vmTestCase {
	return func(vmt vmTestCase) vmTestCase {
		return vmt.expectOutput(values...)
	}
}

func expectVMOutputCheck(check outputCheck) func(vmTestCase) vmTestCase {
	return func(vmt vmTestCase) vmTestCase {
		return vmt.expectOutputCheck(check)
	}
}

func expectVMPrompts(prompts ...string) func(vmTestCase) vmTestCase {
	return func(vmt vmTestCase) vmTestCase {
		return vmt.expectPrompts(prompts...)
	}
}
