package intcode

import log "github.com/sirupsen/logrus"

// VMOption configures a VM built by New.
type VMOption interface{ apply(vm *VM) }

// VMOptions combines any number of options into one.
func VMOptions(opts ...VMOption) VMOption {
	var all vmOptions
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case vmOptions:
			all = append(all, impl...)
		default:
			all = append(all, opt)
		}
	}
	if len(all) == 1 {
		return all[0]
	}
	return all
}

type vmOptions []VMOption

func (opts vmOptions) apply(vm *VM) {
	for _, opt := range opts {
		opt.apply(vm)
	}
}

var defaultOptions = VMOptions(
	WithInput(Discard),
	WithOutput(Discard),
)

// WithName names the VM in logs and errors.
func WithName(name string) VMOption { return nameOption(name) }

// WithInput sets the device read by input instructions.
func WithInput(dev Device) VMOption { return inputOption{dev} }

// WithOutput sets the device written by output instructions.
func WithOutput(dev Device) VMOption { return outputOption{dev} }

// WithIO uses one device for both input and output, as reactive devices do.
func WithIO(dev Device) VMOption { return VMOptions(inputOption{dev}, outputOption{dev}) }

// WithMemAt stores values into memory at addr after the program is loaded.
func WithMemAt(addr uint, values ...int64) VMOption { return memAtOption{addr, values} }

// WithMemLimit caps the highest address the VM may load or store.
func WithMemLimit(limit uint) VMOption { return memLimitOption(limit) }

// WithPageSize sets the memory page allocation size.
func WithPageSize(size uint) VMOption { return pageSizeOption(size) }

// WithLogf sets a printf-style function that receives VM event logs.
func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return logfnOption(logfn) }

// WithLogger sends VM event logs to logger at debug level, tagged with the
// VM name.
func WithLogger(logger log.FieldLogger) VMOption { return loggerOption{logger} }

type nameOption string
type inputOption struct{ Device }
type outputOption struct{ Device }
type memAtOption struct {
	addr   uint
	values []int64
}
type memLimitOption uint
type pageSizeOption uint
type logfnOption func(mess string, args ...interface{})
type loggerOption struct{ log.FieldLogger }

func (name nameOption) apply(vm *VM)    { vm.name = string(name) }
func (o inputOption) apply(vm *VM)      { vm.in = o.Device }
func (o outputOption) apply(vm *VM)     { vm.out = o.Device }
func (lim memLimitOption) apply(vm *VM) { vm.mem.Limit = uint(lim) }
func (ps pageSizeOption) apply(vm *VM)  { vm.mem.PageSize = uint(ps) }
func (fn logfnOption) apply(vm *VM)     { vm.logfn = fn }

func (o memAtOption) apply(vm *VM) {
	vm.pokes = append(vm.pokes, o)
}

func (o loggerOption) apply(vm *VM) {
	logger := o.FieldLogger
	vm.logfn = func(mess string, args ...interface{}) {
		logger.WithField("vm", vm.name).Debugf(mess, args...)
	}
}
