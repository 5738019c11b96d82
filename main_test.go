package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the root command with a program written to a temporary
// file, returning what was written to stdout.
func runCLI(t *testing.T, prog string, args ...string) (string, error) {
	name := filepath.Join(t.TempDir(), "prog.ic")
	require.NoError(t, os.WriteFile(name, []byte(prog+"\n"), 0o644))

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(append(args[:1:1], name), args[1:]...))
	err := cmd.Execute()
	if errOut.Len() > 0 {
		t.Logf("stderr:\n%s", errOut.String())
	}
	return out.String(), err
}

func TestCLI(t *testing.T) {
	for _, tc := range []struct {
		name    string
		prog    string
		args    []string
		want    string
		wantErr string
	}{
		{
			name: "run",
			prog: "3,9,8,9,10,9,4,9,99,-1,8",
			args: []string{"run", "-i", "8"},
			want: "1\n",
		},
		{
			name: "run memory",
			prog: "1,9,10,3,2,3,11,0,99,30,40,50",
			args: []string{"run", "--memory"},
			want: "3500,9,10,70,2,3,11,0,99,30,40,50\n",
		},
		{
			name: "run stop",
			prog: "3,0,4,0,3,0,4,0,99",
			args: []string{"run", "-i", "5,<stop>"},
			want: "5\n",
		},
		{
			name:    "run missing input",
			prog:    "3,0,99",
			args:    []string{"run"},
			wantErr: "pipe closed",
		},
		{
			name:    "run mem limit",
			prog:    "1101,1,1,1000,99",
			args:    []string{"run", "--mem-limit", "100"},
			wantErr: "memory limit exceeded",
		},
		{
			name:    "bad program",
			prog:    "1,2,x",
			args:    []string{"run"},
			wantErr: `invalid program value "x"`,
		},
		{
			name: "amp phases",
			prog: "3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5",
			args: []string{"amp", "--loop", "--phases", "9,8,7,6,5"},
			want: "139629729\n",
		},
		{
			name: "amp max",
			prog: "3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0",
			args: []string{"amp"},
			want: "43210\t[4 3 2 1 0]\n",
		},
		{
			name: "paint",
			prog: "3,100,104,1,104,0,104,0,104,0,104,1,104,0,104,1,104,0," +
				"3,101,104,0,104,1,104,1,104,0,104,1,104,0,99",
			args: []string{"paint"},
			want: "painted 6 panels in 7 moves\n..#\n..#\n##.\n",
		},
		{
			name: "arcade",
			prog: "104,3,104,4,104,3,104,5,104,2,104,4,104,2,104,0,104,2," +
				"3,100,104,-1,104,0,4,100,99",
			args: []string{"arcade"},
			want: "Score: 1\n..+\n.....*\n..._\nblocks: 1\n",
		},
		{
			name: "droid",
			prog: "3,100,104,2,1105,1,0",
			args: []string{"droid"},
			want: ".\no\noxygen system at (0,1), 1 moves from start\n",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out, err := runCLI(t, tc.prog, tc.args...)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.True(t, strings.Contains(err.Error(), tc.wantErr),
					"expected error containing %q, got %v", tc.wantErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, out)
		})
	}
}
