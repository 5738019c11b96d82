// Command gen_vm_expects generates free function forms of the with and expect
// builder methods of a vmTestCase, so that test tables may list them as
// values.
package main

import (
	"bufio"
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type namedReader interface {
	io.ReadCloser
	Name() string
}

var (
	in  namedReader    = os.Stdin
	out io.WriteCloser = os.Stdout

	pkgName = flag.String("package", "intcode", "package name of the generated file")
	self    = flag.String("self", "../../scripts/gen_vm_expects.go", "path to this script from the package directory")
)

func parseFlags() {
	flag.Parse()

	args := flag.Args()

	if len(args) > 0 {
		name := args[0]
		f, err := os.Open(name)
		if err != nil {
			log.Fatalf("failed to open %v: %v", name, err)
		}
		args = args[1:]
		in = f
	}

	if len(args) > 0 {
		name := args[0]
		f, err := os.Create(name)
		if err != nil {
			log.Fatalf("failed to create %v: %v", name, err)
		}
		out = f
	}
}

func main() {
	parseFlags()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)

	ready := make(chan struct{})

	eg.Go(func() error {
		gofmt := exec.CommandContext(ctx, "goimports")
		fmtPipe, err := gofmt.StdinPipe()
		if err != nil {
			return err
		}

		defer out.Close()
		gofmt.Stdout = out
		gofmt.Stderr = os.Stderr

		out = fmtPipe

		close(ready)
		if err := gofmt.Run(); err != nil {
			return fmt.Errorf("goimports failed: %w", err)
		}
		return nil
	})

	eg.Go(func() (rerr error) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ready:
		}

		defer func() {
			if cerr := in.Close(); rerr == nil {
				rerr = cerr
			}
			if cerr := out.Close(); rerr == nil {
				rerr = cerr
			}
		}()

		return generate(ctx)
	})

	if err := eg.Wait(); err != nil {
		log.Fatalln(err)
	}
}

var builderMethod = regexp.MustCompile(`^func \(vmt vmTestCase\) (expect|with)(\w+)\((.+)\) vmTestCase \{$`)

func generate(ctx context.Context) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "package %v\n\n", *pkgName)
	fmt.Fprintf(&buf, "// @generated from %v\n\n", in.Name())
	if args := flag.Args(); len(args) >= 2 {
		fmt.Fprintf(&buf, "//go:generate go run %v --", *self)
		for _, arg := range args {
			buf.WriteByte(' ')
			buf.WriteString(arg)
		}
		buf.WriteString("\n\n")
	}

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		match := builderMethod.FindSubmatch(sc.Bytes())
		if match == nil {
			continue
		}
		kind, what, params := match[1], match[2], match[3]

		// expectOutput(values ...int64) becomes expectVMOutput(values ...int64)
		fmt.Fprintf(&buf, "func %sVM%s(%s) func(vmTestCase) vmTestCase {\n", kind, what, params)
		fmt.Fprintf(&buf, "\treturn func(vmt vmTestCase) vmTestCase {\n")
		fmt.Fprintf(&buf, "\t\treturn vmt.%s%s(", kind, what)
		for i, param := range bytes.Split(params, []byte(",")) {
			if i > 0 {
				buf.WriteString(", ")
			}
			fields := bytes.Fields(param)
			buf.Write(fields[0])
			if len(fields) > 1 && bytes.HasPrefix(fields[1], []byte("...")) {
				buf.WriteString("...")
			}
		}
		buf.WriteString(")\n\t}\n}\n\n")

		if _, err := buf.WriteTo(out); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	_, err := buf.WriteTo(out)
	return err
}
